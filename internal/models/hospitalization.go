package models

import "time"

const (
	StayStatusActive     = "active"
	StayStatusDischarged = "discharged"
)

// Hospitalization links a patient to a room for a date range
type Hospitalization struct {
	Base
	PatientID     string     `gorm:"type:varchar(36);not null;index" json:"patient_id"`
	RoomID        string     `gorm:"type:varchar(36);not null;index" json:"room_id"`
	AdmissionDate time.Time  `gorm:"not null" json:"admission_date"`
	DischargeDate *time.Time `gorm:"index" json:"discharge_date"`
	Notes         string     `gorm:"type:text" json:"notes"`
	Status        string     `gorm:"size:20;not null;default:'active';index" json:"status"`

	// Relationships
	Patient *Patient `gorm:"foreignKey:PatientID" json:"patient,omitempty"`
	Room    *Room    `gorm:"foreignKey:RoomID" json:"room,omitempty"`
}

// TableName specifies the table name for Hospitalization model
func (Hospitalization) TableName() string {
	return "hospitalizations"
}

// IsActive reports whether the stay still holds a place in its room
func (h *Hospitalization) IsActive() bool {
	return h.Status == StayStatusActive
}

// DischargeDue reports whether a planned discharge date has been reached
func (h *Hospitalization) DischargeDue(now time.Time) bool {
	return h.IsActive() && h.DischargeDate != nil && !h.DischargeDate.After(now)
}
