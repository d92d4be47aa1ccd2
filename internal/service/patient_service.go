package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"hospital-backoffice/internal/models"
	"hospital-backoffice/internal/repository"
)

type PatientService struct {
	patientRepo *repository.PatientRepository
	auditRepo   *repository.AuditRepository
}

func NewPatientService(patientRepo *repository.PatientRepository, auditRepo *repository.AuditRepository) *PatientService {
	return &PatientService{
		patientRepo: patientRepo,
		auditRepo:   auditRepo,
	}
}

// CreatePatientInput is the body of a patient create request
type CreatePatientInput struct {
	Name                string     `json:"name" binding:"required"`
	PatientCode         string     `json:"patient_code" binding:"required"`
	InsuranceNumber     string     `json:"insurance_number" binding:"required"`
	PhoneNumber         string     `json:"phone_number" binding:"required"`
	AdmissionDate       *time.Time `json:"admission_date"`
	MedicalRecordNumber string     `json:"medical_record_number"`
}

// UpdatePatientInput is the body of a patient update request.
// Nil fields are left unchanged.
type UpdatePatientInput struct {
	Name                *string    `json:"name"`
	PatientCode         *string    `json:"patient_code"`
	InsuranceNumber     *string    `json:"insurance_number"`
	PhoneNumber         *string    `json:"phone_number"`
	AdmissionDate       *time.Time `json:"admission_date"`
	MedicalRecordNumber *string    `json:"medical_record_number"`
}

// GetAllPatients retrieves a page of patients
func (s *PatientService) GetAllPatients(ctx context.Context, page repository.Page) ([]models.Patient, int64, error) {
	return s.patientRepo.GetAllPatients(ctx, page)
}

// GetPatient retrieves a patient by ID
func (s *PatientService) GetPatient(ctx context.Context, id string) (*models.Patient, error) {
	patient, err := s.patientRepo.GetPatientByID(ctx, id)
	if err != nil {
		return nil, lookup(err, "patient")
	}
	return patient, nil
}

// SearchPatient returns the first patient matching any of the given fields
func (s *PatientService) SearchPatient(ctx context.Context, search repository.PatientSearch) (*models.Patient, error) {
	if search.IsEmpty() {
		return nil, invalid("at least one of name, patient_code, insurance_number or phone_number is required")
	}

	patient, err := s.patientRepo.SearchPatient(ctx, search)
	if err != nil {
		return nil, lookup(err, "patient")
	}
	return patient, nil
}

// CreatePatient registers a new patient.
// The medical record number defaults to "D" followed by the patient code.
func (s *PatientService) CreatePatient(ctx context.Context, input CreatePatientInput, actorID string) (*models.Patient, error) {
	patient := &models.Patient{
		Name:                input.Name,
		PatientCode:         input.PatientCode,
		InsuranceNumber:     input.InsuranceNumber,
		PhoneNumber:         input.PhoneNumber,
		MedicalRecordNumber: input.MedicalRecordNumber,
	}
	if input.AdmissionDate != nil {
		patient.AdmissionDate = input.AdmissionDate.UTC()
	}

	if err := s.patientRepo.CreatePatient(ctx, patient); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, conflict("patient code %s already exists", patient.PatientCode)
		}
		return nil, fmt.Errorf("failed to create patient: %w", err)
	}

	details := fmt.Sprintf("Created patient %s (code: %s)", patient.Name, patient.PatientCode)
	_ = s.auditRepo.CreateAuditLog(ctx, actorRef(actorID), "patient_create", details)

	return patient, nil
}

// UpdatePatient applies a partial update to a patient
func (s *PatientService) UpdatePatient(ctx context.Context, id string, input UpdatePatientInput, actorID string) (*models.Patient, error) {
	patient, err := s.patientRepo.GetPatientByID(ctx, id)
	if err != nil {
		return nil, lookup(err, "patient")
	}

	setString(&patient.Name, input.Name)
	setString(&patient.PatientCode, input.PatientCode)
	setString(&patient.InsuranceNumber, input.InsuranceNumber)
	setString(&patient.PhoneNumber, input.PhoneNumber)
	setString(&patient.MedicalRecordNumber, input.MedicalRecordNumber)
	if input.AdmissionDate != nil {
		patient.AdmissionDate = input.AdmissionDate.UTC()
	}
	if patient.Name == "" || patient.PatientCode == "" || patient.InsuranceNumber == "" || patient.PhoneNumber == "" {
		return nil, invalid("name, patient_code, insurance_number and phone_number cannot be empty")
	}

	if err := s.patientRepo.UpdatePatient(ctx, patient); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, conflict("patient code %s already exists", patient.PatientCode)
		}
		return nil, fmt.Errorf("failed to update patient: %w", err)
	}

	_ = s.auditRepo.CreateAuditLog(ctx, actorRef(actorID), "patient_update", fmt.Sprintf("Updated patient ID: %s", id))
	return patient, nil
}

// DeletePatient permanently deletes a patient.
// A patient still hospitalized must be discharged first.
func (s *PatientService) DeletePatient(ctx context.Context, id string, actorID string) error {
	if err := s.patientRepo.DeletePatient(ctx, id); err != nil {
		if errors.Is(err, repository.ErrPatientHospitalized) {
			return conflict("patient has an active hospitalization")
		}
		return lookup(err, "patient")
	}

	_ = s.auditRepo.CreateAuditLog(ctx, actorRef(actorID), "patient_delete", fmt.Sprintf("Deleted patient ID: %s", id))
	return nil
}

// setString overwrites dst when a new value was provided
func setString(dst *string, value *string) {
	if value != nil {
		*dst = *value
	}
}
