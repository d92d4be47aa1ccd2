package repository

import (
	"context"

	"hospital-backoffice/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type MedicalRecordRepository struct {
	db *gorm.DB
}

func NewMedicalRecordRepo(db *gorm.DB) *MedicalRecordRepository {
	return &MedicalRecordRepository{db: db}
}

// GetAllMedicalRecords retrieves a page of medical records ordered by record number
func (r *MedicalRecordRepository) GetAllMedicalRecords(ctx context.Context, page Page) ([]models.MedicalRecord, int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&models.MedicalRecord{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var records []models.MedicalRecord
	err := page.apply(r.db.WithContext(ctx)).
		Preload("Patient").
		Order("record_number ASC").
		Find(&records).Error
	return records, total, err
}

// GetMedicalRecordByID retrieves a medical record by ID
func (r *MedicalRecordRepository) GetMedicalRecordByID(ctx context.Context, id string) (*models.MedicalRecord, error) {
	var record models.MedicalRecord
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&record).Error; err != nil {
		return nil, translate(err)
	}
	return &record, nil
}

// GetMedicalRecordByPatient retrieves the latest medical record of a patient
func (r *MedicalRecordRepository) GetMedicalRecordByPatient(ctx context.Context, patientID string) (*models.MedicalRecord, error) {
	var record models.MedicalRecord
	err := r.db.WithContext(ctx).
		Where("patient_id = ?", patientID).
		Preload("Patient").
		Order("created_at DESC").
		First(&record).Error
	if err != nil {
		return nil, translate(err)
	}
	return &record, nil
}

// CountByPatient returns how many medical records a patient has
func (r *MedicalRecordRepository) CountByPatient(ctx context.Context, patientID string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.MedicalRecord{}).
		Where("patient_id = ?", patientID).
		Count(&count).Error
	return count, err
}

// RecordNumberExists reports whether a record number is already used
func (r *MedicalRecordRepository) RecordNumberExists(ctx context.Context, number string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.MedicalRecord{}).
		Where("record_number = ?", number).
		Count(&count).Error
	return count > 0, err
}

// CreateMedicalRecord creates a new medical record
func (r *MedicalRecordRepository) CreateMedicalRecord(ctx context.Context, record *models.MedicalRecord) error {
	return translate(r.db.WithContext(ctx).Omit(clause.Associations).Create(record).Error)
}

// UpdateMedicalRecord saves every field of a medical record
func (r *MedicalRecordRepository) UpdateMedicalRecord(ctx context.Context, record *models.MedicalRecord) error {
	return translate(r.db.WithContext(ctx).Omit(clause.Associations).Save(record).Error)
}

// DeleteMedicalRecord permanently deletes a medical record
func (r *MedicalRecordRepository) DeleteMedicalRecord(ctx context.Context, id string) error {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.MedicalRecord{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
