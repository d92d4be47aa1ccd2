package repository

import (
	"context"

	"hospital-backoffice/internal/models"

	"gorm.io/gorm"
)

type PatientRepository struct {
	db *gorm.DB
}

func NewPatientRepo(db *gorm.DB) *PatientRepository {
	return &PatientRepository{db: db}
}

// PatientSearch holds the fields a patient can be looked up by.
// Empty fields are ignored; a patient matches when any non-empty field matches.
type PatientSearch struct {
	Name            string
	PatientCode     string
	InsuranceNumber string
	PhoneNumber     string
}

// IsEmpty reports whether no search field was given
func (s PatientSearch) IsEmpty() bool {
	return s.Name == "" && s.PatientCode == "" && s.InsuranceNumber == "" && s.PhoneNumber == ""
}

// GetAllPatients retrieves a page of patients ordered by name
func (r *PatientRepository) GetAllPatients(ctx context.Context, page Page) ([]models.Patient, int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&models.Patient{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var patients []models.Patient
	err := page.apply(r.db.WithContext(ctx)).
		Order("name ASC").
		Find(&patients).Error
	return patients, total, err
}

// GetPatientByID retrieves a patient by ID
func (r *PatientRepository) GetPatientByID(ctx context.Context, id string) (*models.Patient, error) {
	var patient models.Patient
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&patient).Error; err != nil {
		return nil, translate(err)
	}
	return &patient, nil
}

// GetPatientByCode retrieves a patient by its unique code
func (r *PatientRepository) GetPatientByCode(ctx context.Context, code string) (*models.Patient, error) {
	var patient models.Patient
	if err := r.db.WithContext(ctx).Where("patient_code = ?", code).First(&patient).Error; err != nil {
		return nil, translate(err)
	}
	return &patient, nil
}

// SearchPatient returns the first patient matching any of the search fields
func (r *PatientRepository) SearchPatient(ctx context.Context, search PatientSearch) (*models.Patient, error) {
	query := r.db.WithContext(ctx).Where("1 = 0")
	if search.Name != "" {
		query = query.Or("name = ?", search.Name)
	}
	if search.PatientCode != "" {
		query = query.Or("patient_code = ?", search.PatientCode)
	}
	if search.InsuranceNumber != "" {
		query = query.Or("insurance_number = ?", search.InsuranceNumber)
	}
	if search.PhoneNumber != "" {
		query = query.Or("phone_number = ?", search.PhoneNumber)
	}

	var patient models.Patient
	if err := query.Order("name ASC").First(&patient).Error; err != nil {
		return nil, translate(err)
	}
	return &patient, nil
}

// CreatePatient creates a new patient
func (r *PatientRepository) CreatePatient(ctx context.Context, patient *models.Patient) error {
	return translate(r.db.WithContext(ctx).Create(patient).Error)
}

// UpdatePatient saves every field of an existing patient
func (r *PatientRepository) UpdatePatient(ctx context.Context, patient *models.Patient) error {
	return translate(r.db.WithContext(ctx).Save(patient).Error)
}

// SetMedicalRecordNumber links a patient to its medical record
func (r *PatientRepository) SetMedicalRecordNumber(ctx context.Context, id, number string) error {
	result := r.db.WithContext(ctx).Model(&models.Patient{}).
		Where("id = ?", id).
		Update("medical_record_number", number)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// DeletePatient permanently deletes a patient without an active stay
func (r *PatientRepository) DeletePatient(ctx context.Context, id string) error {
	activeStays := r.db.Model(&models.Hospitalization{}).
		Select("1").
		Where("hospitalizations.patient_id = patients.id AND hospitalizations.status = ?", models.StayStatusActive)

	result := r.db.WithContext(ctx).
		Where("id = ? AND NOT EXISTS (?)", id, activeStays).
		Delete(&models.Patient{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		if _, err := r.GetPatientByID(ctx, id); err != nil {
			return err
		}
		return ErrPatientHospitalized
	}
	return nil
}
