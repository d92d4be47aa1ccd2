package models

import (
	"time"

	"gorm.io/gorm"
)

// Patient represents the patients table
type Patient struct {
	Base
	Name                string    `gorm:"size:255;not null;index" json:"name"`
	PatientCode         string    `gorm:"size:50;not null;uniqueIndex" json:"patient_code"`
	InsuranceNumber     string    `gorm:"size:100;not null;index" json:"insurance_number"`
	PhoneNumber         string    `gorm:"size:20;not null;index" json:"phone_number"`
	AdmissionDate       time.Time `json:"admission_date"`
	MedicalRecordNumber string    `gorm:"size:100" json:"medical_record_number"`
}

// TableName specifies the table name for Patient model
func (Patient) TableName() string {
	return "patients"
}

// DefaultMedicalRecordNumber derives the record number from the patient code
func DefaultMedicalRecordNumber(patientCode string) string {
	return "D" + patientCode
}

// BeforeCreate fills the identifier, the admission date and the medical record number
func (p *Patient) BeforeCreate(tx *gorm.DB) error {
	if err := p.Base.BeforeCreate(tx); err != nil {
		return err
	}
	if p.AdmissionDate.IsZero() {
		p.AdmissionDate = time.Now().UTC()
	}
	if p.MedicalRecordNumber == "" {
		p.MedicalRecordNumber = DefaultMedicalRecordNumber(p.PatientCode)
	}
	return nil
}
