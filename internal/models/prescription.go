package models

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Medication is one line of a prescription
type Medication struct {
	Name     string `json:"name" binding:"required"`
	Dosage   string `json:"dosage" binding:"required"`
	Duration string `json:"duration" binding:"required"`
}

// Prescription represents the prescriptions table
// Medications and recommended tests are stored as embedded JSON documents
type Prescription struct {
	Base
	PatientID        string                          `gorm:"type:varchar(36);not null;index" json:"patient_id"`
	PatientCode      string                          `gorm:"size:50;not null;index" json:"patient_code"`
	DoctorID         string                          `gorm:"type:varchar(36);not null;index" json:"doctor_id"`
	PrescribedAt     time.Time                       `json:"prescribed_at"`
	Medications      datatypes.JSONSlice[Medication] `json:"medications"`
	RecommendedTests datatypes.JSONSlice[string]     `json:"recommended_tests"`
	Remarks          string                          `gorm:"type:text" json:"remarks"`

	// Relationships
	Patient *Patient `gorm:"foreignKey:PatientID" json:"patient,omitempty"`
	Doctor  *Staff   `gorm:"foreignKey:DoctorID" json:"doctor,omitempty"`
}

// TableName specifies the table name for Prescription model
func (Prescription) TableName() string {
	return "prescriptions"
}

func (p *Prescription) BeforeCreate(tx *gorm.DB) error {
	if err := p.Base.BeforeCreate(tx); err != nil {
		return err
	}
	if p.PrescribedAt.IsZero() {
		p.PrescribedAt = time.Now().UTC()
	}
	return nil
}
