package models

import "time"

// AuditLog is one line of the mutation trail.
// StaffID is nil for changes made by the system (discharge worker, CLI).
type AuditLog struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	StaffID   *string   `gorm:"type:varchar(36);index" json:"staff_id"`
	Action    string    `gorm:"size:100;not null;index" json:"action"`
	Details   string    `gorm:"type:text" json:"details"`
	CreatedAt time.Time `json:"created_at"`
}

func (AuditLog) TableName() string {
	return "audit_logs"
}
