package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"hospital-backoffice/internal/models"
	"hospital-backoffice/internal/repository"
)

type MedicalRecordService struct {
	recordRepo  *repository.MedicalRecordRepository
	patientRepo *repository.PatientRepository
	auditRepo   *repository.AuditRepository
	transactor  *repository.Transactor
}

func NewMedicalRecordService(
	recordRepo *repository.MedicalRecordRepository,
	patientRepo *repository.PatientRepository,
	auditRepo *repository.AuditRepository,
	transactor *repository.Transactor,
) *MedicalRecordService {
	return &MedicalRecordService{
		recordRepo:  recordRepo,
		patientRepo: patientRepo,
		auditRepo:   auditRepo,
		transactor:  transactor,
	}
}

// CreateMedicalRecordInput is the body of a medical record create request.
// RecordNumber defaults to the next number of the patient.
type CreateMedicalRecordInput struct {
	PatientID    string             `json:"patient_id" binding:"required"`
	RecordNumber string             `json:"record_number"`
	Diagnoses    []models.Diagnosis `json:"diagnoses" binding:"required,min=1,dive"`
}

// UpdateMedicalRecordInput is the body of a medical record update request
type UpdateMedicalRecordInput struct {
	RecordNumber *string            `json:"record_number"`
	Diagnoses    []models.Diagnosis `json:"diagnoses" binding:"required,min=1,dive"`
}

// NextRecordNumber returns the record number the patient's next medical record gets:
// the patient's base number followed by a sequence number.
func (s *MedicalRecordService) NextRecordNumber(ctx context.Context, patientID string) (string, error) {
	patient, err := s.patientRepo.GetPatientByID(ctx, patientID)
	if err != nil {
		return "", lookup(err, "patient")
	}
	return nextRecordNumber(ctx, s.recordRepo, patient)
}

// GetAllMedicalRecords retrieves a page of medical records
func (s *MedicalRecordService) GetAllMedicalRecords(ctx context.Context, page repository.Page) ([]models.MedicalRecord, int64, error) {
	return s.recordRepo.GetAllMedicalRecords(ctx, page)
}

// GetPatientRecord retrieves the latest medical record of a patient
func (s *MedicalRecordService) GetPatientRecord(ctx context.Context, patientID string) (*models.MedicalRecord, error) {
	record, err := s.recordRepo.GetMedicalRecordByPatient(ctx, patientID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, notFound("no medical record for this patient")
		}
		return nil, err
	}
	return record, nil
}

// CreateMedicalRecord opens a medical record and links the patient to it
func (s *MedicalRecordService) CreateMedicalRecord(ctx context.Context, input CreateMedicalRecordInput, actorID string) (*models.MedicalRecord, error) {
	if err := checkDiagnoses(input.Diagnoses); err != nil {
		return nil, err
	}

	record := &models.MedicalRecord{
		RecordNumber: input.RecordNumber,
		PatientID:    input.PatientID,
		Diagnoses:    stampDiagnoses(input.Diagnoses),
	}

	err := s.transactor.WithinTransaction(ctx, func(repos repository.TxRepositories) error {
		patient, err := repos.Patients.GetPatientByID(ctx, input.PatientID)
		if err != nil {
			return lookup(err, "patient")
		}
		if record.RecordNumber == "" {
			if record.RecordNumber, err = nextRecordNumber(ctx, repos.MedicalRecords, patient); err != nil {
				return err
			}
		}

		if err := repos.MedicalRecords.CreateMedicalRecord(ctx, record); err != nil {
			if errors.Is(err, repository.ErrDuplicate) {
				return conflict("record number %s already exists", record.RecordNumber)
			}
			return fmt.Errorf("failed to create medical record: %w", err)
		}
		return repos.Patients.SetMedicalRecordNumber(ctx, patient.ID, record.RecordNumber)
	})
	if err != nil {
		return nil, err
	}

	details := fmt.Sprintf("Created medical record %s for patient %s", record.RecordNumber, record.PatientID)
	_ = s.auditRepo.CreateAuditLog(ctx, actorRef(actorID), "medical_record_create", details)

	return record, nil
}

// UpdateMedicalRecord replaces the diagnoses and optionally the number of a record
func (s *MedicalRecordService) UpdateMedicalRecord(ctx context.Context, id string, input UpdateMedicalRecordInput, actorID string) (*models.MedicalRecord, error) {
	if err := checkDiagnoses(input.Diagnoses); err != nil {
		return nil, err
	}

	var record *models.MedicalRecord
	err := s.transactor.WithinTransaction(ctx, func(repos repository.TxRepositories) error {
		var err error
		record, err = repos.MedicalRecords.GetMedicalRecordByID(ctx, id)
		if err != nil {
			return lookup(err, "medical record")
		}

		record.Diagnoses = stampDiagnoses(input.Diagnoses)
		renumbered := input.RecordNumber != nil && *input.RecordNumber != record.RecordNumber
		if renumbered {
			if *input.RecordNumber == "" {
				return invalid("record_number cannot be empty")
			}
			record.RecordNumber = *input.RecordNumber
		}

		if err := repos.MedicalRecords.UpdateMedicalRecord(ctx, record); err != nil {
			if errors.Is(err, repository.ErrDuplicate) {
				return conflict("record number %s already exists", record.RecordNumber)
			}
			return fmt.Errorf("failed to update medical record: %w", err)
		}
		if renumbered {
			return repos.Patients.SetMedicalRecordNumber(ctx, record.PatientID, record.RecordNumber)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	_ = s.auditRepo.CreateAuditLog(ctx, actorRef(actorID), "medical_record_update", fmt.Sprintf("Updated medical record ID: %s", id))
	return record, nil
}

// DeleteMedicalRecord permanently deletes a medical record
func (s *MedicalRecordService) DeleteMedicalRecord(ctx context.Context, id string, actorID string) error {
	if err := s.recordRepo.DeleteMedicalRecord(ctx, id); err != nil {
		return lookup(err, "medical record")
	}

	_ = s.auditRepo.CreateAuditLog(ctx, actorRef(actorID), "medical_record_delete", fmt.Sprintf("Deleted medical record ID: %s", id))
	return nil
}

// nextRecordNumber skips numbers already taken, which happens after a record was renumbered
func nextRecordNumber(ctx context.Context, records *repository.MedicalRecordRepository, patient *models.Patient) (string, error) {
	count, err := records.CountByPatient(ctx, patient.ID)
	if err != nil {
		return "", err
	}

	base := models.DefaultMedicalRecordNumber(patient.PatientCode)
	for seq := count + 1; ; seq++ {
		number := fmt.Sprintf("%s-%d", base, seq)
		exists, err := records.RecordNumberExists(ctx, number)
		if err != nil {
			return "", err
		}
		if !exists {
			return number, nil
		}
	}
}

func checkDiagnoses(diagnoses []models.Diagnosis) error {
	if len(diagnoses) == 0 {
		return invalid("at least one diagnosis is required")
	}
	for i, d := range diagnoses {
		if d.Note == "" || d.Indication == "" {
			return invalid("diagnosis %d needs a note and an indication", i+1)
		}
		switch d.Type {
		case models.DiagnosisConsultation, models.DiagnosisIntervention, models.DiagnosisFollowUp:
		default:
			return invalid("diagnosis %d type must be Consultation, Intervention or FollowUp", i+1)
		}
	}
	return nil
}

// stampDiagnoses dates the diagnoses that carry no date
func stampDiagnoses(diagnoses []models.Diagnosis) []models.Diagnosis {
	now := time.Now().UTC()
	stamped := make([]models.Diagnosis, len(diagnoses))
	for i, d := range diagnoses {
		if d.DiagnosedAt == nil {
			d.DiagnosedAt = &now
		}
		if d.Tests == nil {
			d.Tests = []string{}
		}
		stamped[i] = d
	}
	return stamped
}
