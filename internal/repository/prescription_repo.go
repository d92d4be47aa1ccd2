package repository

import (
	"context"

	"hospital-backoffice/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type PrescriptionRepository struct {
	db *gorm.DB
}

func NewPrescriptionRepo(db *gorm.DB) *PrescriptionRepository {
	return &PrescriptionRepository{db: db}
}

// PrescriptionFilter narrows a prescription listing; empty fields match everything
type PrescriptionFilter struct {
	DoctorID  string
	PatientID string
}

// GetAllPrescriptions retrieves a page of prescriptions, most recent first
func (r *PrescriptionRepository) GetAllPrescriptions(ctx context.Context, filter PrescriptionFilter, page Page) ([]models.Prescription, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.Prescription{})
	if filter.DoctorID != "" {
		query = query.Where("doctor_id = ?", filter.DoctorID)
	}
	if filter.PatientID != "" {
		query = query.Where("patient_id = ?", filter.PatientID)
	}
	query = query.Session(&gorm.Session{})

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var prescriptions []models.Prescription
	err := page.apply(query).
		Preload("Patient").
		Preload("Doctor").
		Order("prescribed_at DESC").
		Find(&prescriptions).Error
	return prescriptions, total, err
}

// GetPrescriptionByID retrieves a prescription with its patient and doctor
func (r *PrescriptionRepository) GetPrescriptionByID(ctx context.Context, id string) (*models.Prescription, error) {
	var prescription models.Prescription
	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		Preload("Patient").
		Preload("Doctor").
		First(&prescription).Error
	if err != nil {
		return nil, translate(err)
	}
	return &prescription, nil
}

// CreatePrescription creates a new prescription
func (r *PrescriptionRepository) CreatePrescription(ctx context.Context, prescription *models.Prescription) error {
	return translate(r.db.WithContext(ctx).Omit(clause.Associations).Create(prescription).Error)
}

// UpdatePrescription saves every field of a prescription
func (r *PrescriptionRepository) UpdatePrescription(ctx context.Context, prescription *models.Prescription) error {
	return translate(r.db.WithContext(ctx).Omit(clause.Associations).Save(prescription).Error)
}

// DeletePrescription permanently deletes a prescription
func (r *PrescriptionRepository) DeletePrescription(ctx context.Context, id string) error {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Prescription{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
