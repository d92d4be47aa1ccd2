package repository

import (
	"context"
	"time"

	"hospital-backoffice/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type AppointmentRepository struct {
	db *gorm.DB
}

func NewAppointmentRepo(db *gorm.DB) *AppointmentRepository {
	return &AppointmentRepository{db: db}
}

// GetAllAppointments retrieves a page of appointments in chronological order.
// doctorID may be empty to list every doctor's appointments.
func (r *AppointmentRepository) GetAllAppointments(ctx context.Context, doctorID string, page Page) ([]models.Appointment, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.Appointment{})
	if doctorID != "" {
		query = query.Where("doctor_id = ?", doctorID)
	}
	query = query.Session(&gorm.Session{})

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var appointments []models.Appointment
	err := page.apply(query).
		Preload("Patient").
		Preload("Doctor").
		Order("date ASC, time ASC").
		Find(&appointments).Error
	return appointments, total, err
}

// GetAppointmentByID retrieves an appointment with its patient and doctor
func (r *AppointmentRepository) GetAppointmentByID(ctx context.Context, id string) (*models.Appointment, error) {
	var appointment models.Appointment
	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		Preload("Patient").
		Preload("Doctor").
		First(&appointment).Error
	if err != nil {
		return nil, translate(err)
	}
	return &appointment, nil
}

// SlotTaken reports whether the patient already has this doctor at the same date and time.
// excludeID may be empty.
func (r *AppointmentRepository) SlotTaken(ctx context.Context, patientID, doctorID string, date time.Time, at string, excludeID string) (bool, error) {
	var count int64
	query := r.db.WithContext(ctx).Model(&models.Appointment{}).
		Where("patient_id = ? AND doctor_id = ? AND date = ? AND time = ?", patientID, doctorID, date, at)
	if excludeID != "" {
		query = query.Where("id <> ?", excludeID)
	}
	err := query.Count(&count).Error
	return count > 0, err
}

// CreateAppointment creates a new appointment
func (r *AppointmentRepository) CreateAppointment(ctx context.Context, appointment *models.Appointment) error {
	return translate(r.db.WithContext(ctx).Omit(clause.Associations).Create(appointment).Error)
}

// UpdateAppointment saves every field of an appointment
func (r *AppointmentRepository) UpdateAppointment(ctx context.Context, appointment *models.Appointment) error {
	return translate(r.db.WithContext(ctx).Omit(clause.Associations).Save(appointment).Error)
}

// DeleteAppointment permanently deletes an appointment
func (r *AppointmentRepository) DeleteAppointment(ctx context.Context, id string) error {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Appointment{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
