package repository

import (
	"context"

	"hospital-backoffice/internal/models"

	"gorm.io/gorm"
)

type AuditRepository struct {
	db *gorm.DB
}

func NewAuditRepo(db *gorm.DB) *AuditRepository {
	return &AuditRepository{db: db}
}

// CreateAuditLog creates a new audit log entry
func (r *AuditRepository) CreateAuditLog(ctx context.Context, staffID *string, action string, details string) error {
	log := &models.AuditLog{
		StaffID: staffID,
		Action:  action,
		Details: details,
	}
	return r.db.WithContext(ctx).Create(log).Error
}

// ListByAction returns the most recent entries for an action
func (r *AuditRepository) ListByAction(ctx context.Context, action string, limit int) ([]models.AuditLog, error) {
	var logs []models.AuditLog
	err := r.db.WithContext(ctx).
		Where("action = ?", action).
		Order("id DESC").
		Limit(limit).
		Find(&logs).Error
	return logs, err
}
