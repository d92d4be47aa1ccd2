package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"hospital-backoffice/internal/models"
	"hospital-backoffice/internal/repository"
)

// HospitalizationService keeps a stay's room and the room's occupant list in step.
// Every change touching occupancy runs in one transaction.
type HospitalizationService struct {
	stayRepo    *repository.HospitalizationRepository
	patientRepo *repository.PatientRepository
	auditRepo   *repository.AuditRepository
	transactor  *repository.Transactor
	now         func() time.Time
}

func NewHospitalizationService(
	stayRepo *repository.HospitalizationRepository,
	patientRepo *repository.PatientRepository,
	auditRepo *repository.AuditRepository,
	transactor *repository.Transactor,
) *HospitalizationService {
	return &HospitalizationService{
		stayRepo:    stayRepo,
		patientRepo: patientRepo,
		auditRepo:   auditRepo,
		transactor:  transactor,
		now:         func() time.Time { return time.Now().UTC() },
	}
}

// CreateStayInput is the body of a hospitalization create request
type CreateStayInput struct {
	PatientID     string     `json:"patient_id" binding:"required"`
	RoomID        string     `json:"room_id" binding:"required"`
	AdmissionDate *time.Time `json:"admission_date" binding:"required"`
	DischargeDate *time.Time `json:"discharge_date"`
	Notes         string     `json:"notes" binding:"required"`
}

// UpdateStayInput is the body of a hospitalization update request.
// Nil fields are left unchanged.
type UpdateStayInput struct {
	PatientID     *string    `json:"patient_id"`
	RoomID        *string    `json:"room_id"`
	AdmissionDate *time.Time `json:"admission_date"`
	DischargeDate *time.Time `json:"discharge_date"`
	Notes         *string    `json:"notes"`
}

// GetAllHospitalizations retrieves a page of stays, optionally filtered by status
func (s *HospitalizationService) GetAllHospitalizations(ctx context.Context, status string, page repository.Page) ([]models.Hospitalization, int64, error) {
	if status != "" && status != models.StayStatusActive && status != models.StayStatusDischarged {
		return nil, 0, invalid("status must be %s or %s", models.StayStatusActive, models.StayStatusDischarged)
	}
	return s.stayRepo.GetAllHospitalizations(ctx, status, page)
}

// GetHospitalization retrieves a stay with its patient and room
func (s *HospitalizationService) GetHospitalization(ctx context.Context, id string) (*models.Hospitalization, error) {
	stay, err := s.stayRepo.GetHospitalizationByID(ctx, id)
	if err != nil {
		return nil, lookup(err, "hospitalization")
	}
	return stay, nil
}

// CreateHospitalization admits a patient into a room that still has a free bed
func (s *HospitalizationService) CreateHospitalization(ctx context.Context, input CreateStayInput, actorID string) (*models.Hospitalization, error) {
	if input.PatientID == "" || input.RoomID == "" || input.AdmissionDate == nil || input.Notes == "" {
		return nil, invalid("patient_id, room_id, admission_date and notes are required")
	}
	if err := checkDates(*input.AdmissionDate, input.DischargeDate); err != nil {
		return nil, err
	}

	if _, err := s.patientRepo.GetPatientByID(ctx, input.PatientID); err != nil {
		return nil, lookup(err, "patient")
	}

	stay := &models.Hospitalization{
		PatientID:     input.PatientID,
		RoomID:        input.RoomID,
		AdmissionDate: input.AdmissionDate.UTC(),
		DischargeDate: utcPtr(input.DischargeDate),
		Notes:         input.Notes,
		Status:        models.StayStatusActive,
	}

	err := s.transactor.WithinTransaction(ctx, func(repos repository.TxRepositories) error {
		if err := repos.Hospitalizations.CreateHospitalization(ctx, stay); err != nil {
			return fmt.Errorf("failed to create hospitalization: %w", err)
		}
		if err := assign(ctx, repos, stay.RoomID, stay.ID); err != nil {
			return err
		}
		if stay.DischargeDue(s.now()) {
			return discharge(ctx, repos, stay)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	details := fmt.Sprintf("Admitted patient %s into room %s (stay ID: %s)", stay.PatientID, stay.RoomID, stay.ID)
	_ = s.auditRepo.CreateAuditLog(ctx, actorRef(actorID), "hospitalization_create", details)

	return s.GetHospitalization(ctx, stay.ID)
}

// UpdateHospitalization edits a stay. A room change moves the stay out of its old room
// and into the new one, or leaves both rooms untouched when the new one is full.
// A discharge date at or before now releases the stay from its room.
func (s *HospitalizationService) UpdateHospitalization(ctx context.Context, id string, input UpdateStayInput, actorID string) (*models.Hospitalization, error) {
	var previousRoom string

	err := s.transactor.WithinTransaction(ctx, func(repos repository.TxRepositories) error {
		stay, err := repos.Hospitalizations.GetHospitalizationByID(ctx, id)
		if err != nil {
			return lookup(err, "hospitalization")
		}
		previousRoom = stay.RoomID

		if input.PatientID != nil && *input.PatientID != stay.PatientID {
			if _, err := repos.Patients.GetPatientByID(ctx, *input.PatientID); err != nil {
				return lookup(err, "patient")
			}
			stay.PatientID = *input.PatientID
			stay.Patient = nil
		}
		if input.Notes != nil {
			if *input.Notes == "" {
				return invalid("notes cannot be empty")
			}
			stay.Notes = *input.Notes
		}
		if input.AdmissionDate != nil {
			stay.AdmissionDate = input.AdmissionDate.UTC()
		}
		if input.DischargeDate != nil {
			if !stay.IsActive() {
				return invalid("hospitalization is already discharged")
			}
			stay.DischargeDate = utcPtr(input.DischargeDate)
		}
		if err := checkDates(stay.AdmissionDate, stay.DischargeDate); err != nil {
			return err
		}

		if input.RoomID != nil && *input.RoomID != stay.RoomID {
			if !stay.IsActive() {
				return invalid("cannot change the room of a discharged hospitalization")
			}
			// A failed assignment rolls the release back
			if _, err := repos.Rooms.ReleaseOccupant(ctx, stay.RoomID, stay.ID); err != nil {
				return fmt.Errorf("failed to release room %s: %w", stay.RoomID, err)
			}
			if err := assign(ctx, repos, *input.RoomID, stay.ID); err != nil {
				return err
			}
			stay.RoomID = *input.RoomID
			stay.Room = nil
		}

		if stay.DischargeDue(s.now()) {
			return discharge(ctx, repos, stay)
		}
		return repos.Hospitalizations.UpdateHospitalization(ctx, stay)
	})
	if err != nil {
		return nil, err
	}

	details := fmt.Sprintf("Updated hospitalization ID: %s", id)
	if input.RoomID != nil && *input.RoomID != previousRoom {
		details = fmt.Sprintf("Moved hospitalization %s from room %s to room %s", id, previousRoom, *input.RoomID)
	}
	_ = s.auditRepo.CreateAuditLog(ctx, actorRef(actorID), "hospitalization_update", details)

	return s.GetHospitalization(ctx, id)
}

// DischargeIfDue discharges a stay whose planned discharge date has passed.
// Returns false when the stay was not due anymore.
func (s *HospitalizationService) DischargeIfDue(ctx context.Context, id string) (bool, error) {
	discharged := false

	err := s.transactor.WithinTransaction(ctx, func(repos repository.TxRepositories) error {
		stay, err := repos.Hospitalizations.GetHospitalizationByID(ctx, id)
		if err != nil {
			return lookup(err, "hospitalization")
		}
		if !stay.DischargeDue(s.now()) {
			return nil
		}
		discharged = true
		return discharge(ctx, repos, stay)
	})
	if err != nil || !discharged {
		return false, err
	}

	_ = s.auditRepo.CreateAuditLog(ctx, nil, "hospitalization_discharge", fmt.Sprintf("Discharged hospitalization ID: %s", id))
	return true, nil
}

// DueDischarges lists the active stays whose discharge date has passed
func (s *HospitalizationService) DueDischarges(ctx context.Context) ([]models.Hospitalization, error) {
	return s.stayRepo.GetDueDischarges(ctx, s.now())
}

func assign(ctx context.Context, repos repository.TxRepositories, roomID, stayID string) error {
	err := repos.Rooms.AssignOccupant(ctx, roomID, stayID)
	switch {
	case err == nil:
		return nil
	case errors.Is(err, repository.ErrRoomFull):
		return invalid("room is full")
	case errors.Is(err, repository.ErrNotFound):
		return notFound("room not found")
	default:
		return fmt.Errorf("failed to assign room %s: %w", roomID, err)
	}
}

func discharge(ctx context.Context, repos repository.TxRepositories, stay *models.Hospitalization) error {
	if _, err := repos.Rooms.ReleaseOccupant(ctx, stay.RoomID, stay.ID); err != nil {
		return fmt.Errorf("failed to release room %s: %w", stay.RoomID, err)
	}
	stay.Status = models.StayStatusDischarged
	return repos.Hospitalizations.UpdateHospitalization(ctx, stay)
}

func checkDates(admission time.Time, discharge *time.Time) error {
	if discharge != nil && discharge.Before(admission) {
		return invalid("discharge_date cannot be before admission_date")
	}
	return nil
}

func utcPtr(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	utc := t.UTC()
	return &utc
}
