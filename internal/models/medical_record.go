package models

import (
	"time"

	"gorm.io/datatypes"
)

const (
	DiagnosisConsultation = "Consultation"
	DiagnosisIntervention = "Intervention"
	DiagnosisFollowUp     = "FollowUp"
)

// Diagnosis is one entry of a medical record
type Diagnosis struct {
	Note        string     `json:"note" binding:"required"`
	Indication  string     `json:"indication" binding:"required"`
	Tests       []string   `json:"tests"`
	Type        string     `json:"type" binding:"required,oneof=Consultation Intervention FollowUp"`
	Treatment   string     `json:"treatment,omitempty"`
	DiagnosedAt *time.Time `json:"diagnosed_at,omitempty"`
}

// MedicalRecord represents the medical_records table
type MedicalRecord struct {
	Base
	RecordNumber string                         `gorm:"size:100;not null;uniqueIndex" json:"record_number"`
	PatientID    string                         `gorm:"type:varchar(36);not null;index" json:"patient_id"`
	Diagnoses    datatypes.JSONSlice[Diagnosis] `json:"diagnoses"`

	// Relationships
	Patient *Patient `gorm:"foreignKey:PatientID" json:"patient,omitempty"`
}

// TableName specifies the table name for MedicalRecord model
func (MedicalRecord) TableName() string {
	return "medical_records"
}
