package models

import "gorm.io/datatypes"

// Services a staff member can belong to. The service doubles as the access role.
const (
	ServiceAdmin        = "Admin"
	ServiceDoctor       = "Doctor"
	ServiceLab          = "Lab"
	ServiceReceptionist = "Receptionist"
	ServiceAccountant   = "Accountant"
	ServiceSecurity     = "Security"
	ServiceNurse        = "Nurse"
	ServiceCleaning     = "Cleaning"
)

const (
	CategoryCaregiver    = "Caregiver"
	CategoryNonCaregiver = "NonCaregiver"
)

// Staff represents the staff table (doctors, receptionists, administrators...)
type Staff struct {
	Base
	Name         string                      `gorm:"size:255;not null;index" json:"name"`
	StaffCode    string                      `gorm:"size:50;not null;uniqueIndex" json:"staff_code"`
	Service      string                      `gorm:"size:30;not null;index" json:"service"`
	WorkingHours string                      `gorm:"size:20;not null" json:"working_hours"`
	Contact      string                      `gorm:"size:15;not null;uniqueIndex" json:"contact"`
	Category     string                      `gorm:"size:20;not null" json:"category"`
	WorkingDays  datatypes.JSONSlice[string] `json:"working_days"`
	PasswordHash string                      `gorm:"size:255;not null" json:"-"`
}

// TableName specifies the table name for Staff model
func (Staff) TableName() string {
	return "staff"
}

// IsDoctor reports whether the staff member can be booked and can prescribe
func (s *Staff) IsDoctor() bool {
	return s.Service == ServiceDoctor
}

// WorksOn reports whether the given day name is one of the staff member's working days
func (s *Staff) WorksOn(day string) bool {
	for _, d := range s.WorkingDays {
		if d == day {
			return true
		}
	}
	return false
}

// StaffSummary is the reduced view embedded in appointments and prescriptions
type StaffSummary struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Service string `json:"service"`
}
