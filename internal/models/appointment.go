package models

import "time"

// Appointment represents the appointments table
type Appointment struct {
	Base
	PatientID string    `gorm:"type:varchar(36);not null;uniqueIndex:idx_appointment_slot" json:"patient_id"`
	DoctorID  string    `gorm:"type:varchar(36);not null;index;uniqueIndex:idx_appointment_slot" json:"doctor_id"`
	Date      time.Time `gorm:"not null;uniqueIndex:idx_appointment_slot" json:"date"`
	Time      string    `gorm:"size:5;not null;uniqueIndex:idx_appointment_slot" json:"time"`

	// Relationships
	Patient *Patient `gorm:"foreignKey:PatientID" json:"patient,omitempty"`
	Doctor  *Staff   `gorm:"foreignKey:DoctorID" json:"doctor,omitempty"`
}

// TableName specifies the table name for Appointment model
func (Appointment) TableName() string {
	return "appointments"
}
