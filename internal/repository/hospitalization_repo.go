package repository

import (
	"context"
	"time"

	"hospital-backoffice/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type HospitalizationRepository struct {
	db *gorm.DB
}

func NewHospitalizationRepo(db *gorm.DB) *HospitalizationRepository {
	return &HospitalizationRepository{db: db}
}

// GetAllHospitalizations retrieves a page of stays, newest admissions first.
// status may be empty to list every stay.
func (r *HospitalizationRepository) GetAllHospitalizations(ctx context.Context, status string, page Page) ([]models.Hospitalization, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.Hospitalization{})
	if status != "" {
		query = query.Where("status = ?", status)
	}
	query = query.Session(&gorm.Session{})

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var stays []models.Hospitalization
	err := page.apply(query).
		Preload("Patient").
		Preload("Room").
		Order("admission_date DESC").
		Find(&stays).Error
	return stays, total, err
}

// GetHospitalizationByID retrieves a stay with its patient and room
func (r *HospitalizationRepository) GetHospitalizationByID(ctx context.Context, id string) (*models.Hospitalization, error) {
	var stay models.Hospitalization
	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		Preload("Patient").
		Preload("Room").
		First(&stay).Error
	if err != nil {
		return nil, translate(err)
	}
	return &stay, nil
}

// CreateHospitalization inserts a stay without touching its associations
func (r *HospitalizationRepository) CreateHospitalization(ctx context.Context, stay *models.Hospitalization) error {
	return translate(r.db.WithContext(ctx).Omit(clause.Associations).Create(stay).Error)
}

// UpdateHospitalization saves every field of a stay without touching its associations
func (r *HospitalizationRepository) UpdateHospitalization(ctx context.Context, stay *models.Hospitalization) error {
	return translate(r.db.WithContext(ctx).Omit(clause.Associations).Save(stay).Error)
}

// GetDueDischarges retrieves active stays whose discharge date is at or before now
func (r *HospitalizationRepository) GetDueDischarges(ctx context.Context, now time.Time) ([]models.Hospitalization, error) {
	var stays []models.Hospitalization
	err := r.db.WithContext(ctx).
		Where("status = ? AND discharge_date IS NOT NULL AND discharge_date <= ?", models.StayStatusActive, now).
		Order("discharge_date ASC").
		Find(&stays).Error
	return stays, err
}
