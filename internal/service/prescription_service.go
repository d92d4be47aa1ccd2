package service

import (
	"context"
	"fmt"
	"time"

	"hospital-backoffice/internal/models"
	"hospital-backoffice/internal/repository"
)

type PrescriptionService struct {
	prescriptionRepo *repository.PrescriptionRepository
	patientRepo      *repository.PatientRepository
	staffRepo        *repository.StaffRepository
	auditRepo        *repository.AuditRepository
}

func NewPrescriptionService(
	prescriptionRepo *repository.PrescriptionRepository,
	patientRepo *repository.PatientRepository,
	staffRepo *repository.StaffRepository,
	auditRepo *repository.AuditRepository,
) *PrescriptionService {
	return &PrescriptionService{
		prescriptionRepo: prescriptionRepo,
		patientRepo:      patientRepo,
		staffRepo:        staffRepo,
		auditRepo:        auditRepo,
	}
}

// PrescriptionInput is the body of prescription create and update requests
type PrescriptionInput struct {
	PatientID        string              `json:"patient_id" binding:"required"`
	PatientCode      string              `json:"patient_code" binding:"required"`
	DoctorID         string              `json:"doctor_id" binding:"required"`
	PrescribedAt     *time.Time          `json:"prescribed_at"`
	Medications      []models.Medication `json:"medications" binding:"required,min=1,dive"`
	RecommendedTests []string            `json:"recommended_tests"`
	Remarks          string              `json:"remarks"`
}

// GetAllPrescriptions retrieves a page of prescriptions
func (s *PrescriptionService) GetAllPrescriptions(ctx context.Context, filter repository.PrescriptionFilter, page repository.Page) ([]models.Prescription, int64, error) {
	return s.prescriptionRepo.GetAllPrescriptions(ctx, filter, page)
}

// GetPrescription retrieves a prescription with its patient and doctor
func (s *PrescriptionService) GetPrescription(ctx context.Context, id string) (*models.Prescription, error) {
	prescription, err := s.prescriptionRepo.GetPrescriptionByID(ctx, id)
	if err != nil {
		return nil, lookup(err, "prescription")
	}
	return prescription, nil
}

// CreatePrescription records a prescription written by a doctor
func (s *PrescriptionService) CreatePrescription(ctx context.Context, input PrescriptionInput, actorID string) (*models.Prescription, error) {
	prescription := &models.Prescription{}
	if err := s.apply(ctx, prescription, input); err != nil {
		return nil, err
	}

	if err := s.prescriptionRepo.CreatePrescription(ctx, prescription); err != nil {
		return nil, fmt.Errorf("failed to create prescription: %w", err)
	}

	details := fmt.Sprintf("Doctor %s prescribed %d medications to patient %s",
		prescription.DoctorID, len(prescription.Medications), prescription.PatientCode)
	_ = s.auditRepo.CreateAuditLog(ctx, actorRef(actorID), "prescription_create", details)

	return s.GetPrescription(ctx, prescription.ID)
}

// UpdatePrescription replaces the content of a prescription
func (s *PrescriptionService) UpdatePrescription(ctx context.Context, id string, input PrescriptionInput, actorID string) (*models.Prescription, error) {
	prescription, err := s.prescriptionRepo.GetPrescriptionByID(ctx, id)
	if err != nil {
		return nil, lookup(err, "prescription")
	}
	prescription.Patient = nil
	prescription.Doctor = nil

	if err := s.apply(ctx, prescription, input); err != nil {
		return nil, err
	}
	if err := s.prescriptionRepo.UpdatePrescription(ctx, prescription); err != nil {
		return nil, fmt.Errorf("failed to update prescription: %w", err)
	}

	_ = s.auditRepo.CreateAuditLog(ctx, actorRef(actorID), "prescription_update", fmt.Sprintf("Updated prescription ID: %s", id))
	return s.GetPrescription(ctx, id)
}

// DeletePrescription permanently deletes a prescription
func (s *PrescriptionService) DeletePrescription(ctx context.Context, id string, actorID string) error {
	if err := s.prescriptionRepo.DeletePrescription(ctx, id); err != nil {
		return lookup(err, "prescription")
	}

	_ = s.auditRepo.CreateAuditLog(ctx, actorRef(actorID), "prescription_delete", fmt.Sprintf("Deleted prescription ID: %s", id))
	return nil
}

func (s *PrescriptionService) apply(ctx context.Context, prescription *models.Prescription, input PrescriptionInput) error {
	if input.PatientID == "" || input.PatientCode == "" || input.DoctorID == "" || len(input.Medications) == 0 {
		return invalid("patient_id, patient_code, doctor_id and at least one medication are required")
	}
	for i, m := range input.Medications {
		if m.Name == "" || m.Dosage == "" || m.Duration == "" {
			return invalid("medication %d needs a name, a dosage and a duration", i+1)
		}
	}

	patient, err := s.patientRepo.GetPatientByID(ctx, input.PatientID)
	if err != nil {
		return lookup(err, "patient")
	}
	if patient.PatientCode != input.PatientCode {
		return invalid("patient_code %s does not belong to patient %s", input.PatientCode, input.PatientID)
	}
	doctor, err := s.staffRepo.GetStaffByID(ctx, input.DoctorID)
	if err != nil {
		return lookup(err, "doctor")
	}
	if !doctor.IsDoctor() {
		return invalid("%s is not a doctor", doctor.Name)
	}

	prescription.PatientID = input.PatientID
	prescription.PatientCode = input.PatientCode
	prescription.DoctorID = input.DoctorID
	prescription.Medications = input.Medications
	prescription.RecommendedTests = input.RecommendedTests
	prescription.Remarks = input.Remarks
	if input.PrescribedAt != nil {
		prescription.PrescribedAt = input.PrescribedAt.UTC()
	}
	if prescription.RecommendedTests == nil {
		prescription.RecommendedTests = []string{}
	}
	return nil
}
