package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"hospital-backoffice/internal/models"
	"hospital-backoffice/internal/repository"
	"hospital-backoffice/internal/validation"

	"github.com/google/uuid"
)

type AppointmentService struct {
	appointmentRepo *repository.AppointmentRepository
	patientRepo     *repository.PatientRepository
	staffRepo       *repository.StaffRepository
	auditRepo       *repository.AuditRepository
}

func NewAppointmentService(
	appointmentRepo *repository.AppointmentRepository,
	patientRepo *repository.PatientRepository,
	staffRepo *repository.StaffRepository,
	auditRepo *repository.AuditRepository,
) *AppointmentService {
	return &AppointmentService{
		appointmentRepo: appointmentRepo,
		patientRepo:     patientRepo,
		staffRepo:       staffRepo,
		auditRepo:       auditRepo,
	}
}

// AppointmentInput is the body of appointment create and update requests.
// Date is a calendar day (YYYY-MM-DD), Time a clock time (HH:MM).
type AppointmentInput struct {
	PatientID string `json:"patient_id" binding:"required"`
	DoctorID  string `json:"doctor_id" binding:"required"`
	Date      string `json:"date" binding:"required"`
	Time      string `json:"time" binding:"required"`
}

// GetAllAppointments retrieves a page of appointments, optionally for one doctor
func (s *AppointmentService) GetAllAppointments(ctx context.Context, doctorID string, page repository.Page) ([]models.Appointment, int64, error) {
	if doctorID != "" {
		if _, err := uuid.Parse(doctorID); err != nil {
			return nil, 0, invalid("invalid doctor_id")
		}
	}
	return s.appointmentRepo.GetAllAppointments(ctx, doctorID, page)
}

// GetAppointment retrieves an appointment with its patient and doctor
func (s *AppointmentService) GetAppointment(ctx context.Context, id string) (*models.Appointment, error) {
	appointment, err := s.appointmentRepo.GetAppointmentByID(ctx, id)
	if err != nil {
		return nil, lookup(err, "appointment")
	}
	return appointment, nil
}

// CreateAppointment books a doctor for a patient
func (s *AppointmentService) CreateAppointment(ctx context.Context, input AppointmentInput, actorID string) (*models.Appointment, error) {
	appointment := &models.Appointment{}
	if err := s.apply(ctx, appointment, input); err != nil {
		return nil, err
	}

	if err := s.appointmentRepo.CreateAppointment(ctx, appointment); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, conflict("this appointment already exists")
		}
		return nil, fmt.Errorf("failed to create appointment: %w", err)
	}

	details := fmt.Sprintf("Booked doctor %s for patient %s on %s at %s",
		appointment.DoctorID, appointment.PatientID, input.Date, appointment.Time)
	_ = s.auditRepo.CreateAuditLog(ctx, actorRef(actorID), "appointment_create", details)

	return s.GetAppointment(ctx, appointment.ID)
}

// UpdateAppointment reschedules an appointment under the same rules as a booking
func (s *AppointmentService) UpdateAppointment(ctx context.Context, id string, input AppointmentInput, actorID string) (*models.Appointment, error) {
	appointment, err := s.appointmentRepo.GetAppointmentByID(ctx, id)
	if err != nil {
		return nil, lookup(err, "appointment")
	}
	appointment.Patient = nil
	appointment.Doctor = nil

	if err := s.apply(ctx, appointment, input); err != nil {
		return nil, err
	}

	if err := s.appointmentRepo.UpdateAppointment(ctx, appointment); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, conflict("this appointment already exists")
		}
		return nil, fmt.Errorf("failed to update appointment: %w", err)
	}

	_ = s.auditRepo.CreateAuditLog(ctx, actorRef(actorID), "appointment_update", fmt.Sprintf("Updated appointment ID: %s", id))
	return s.GetAppointment(ctx, id)
}

// DeleteAppointment cancels an appointment
func (s *AppointmentService) DeleteAppointment(ctx context.Context, id string, actorID string) error {
	if err := s.appointmentRepo.DeleteAppointment(ctx, id); err != nil {
		return lookup(err, "appointment")
	}

	_ = s.auditRepo.CreateAuditLog(ctx, actorRef(actorID), "appointment_delete", fmt.Sprintf("Deleted appointment ID: %s", id))
	return nil
}

// apply checks the booking rules and copies the input onto the appointment
func (s *AppointmentService) apply(ctx context.Context, appointment *models.Appointment, input AppointmentInput) error {
	if input.PatientID == "" || input.DoctorID == "" || input.Date == "" || input.Time == "" {
		return invalid("patient_id, doctor_id, date and time are required")
	}

	date, err := ParseDay(input.Date)
	if err != nil {
		return invalid("%s", err.Error())
	}
	minutes, err := validation.ParseClock(input.Time)
	if err != nil {
		return invalid("%s", err.Error())
	}

	if _, err := s.patientRepo.GetPatientByID(ctx, input.PatientID); err != nil {
		return lookup(err, "patient")
	}
	doctor, err := s.staffRepo.GetStaffByID(ctx, input.DoctorID)
	if err != nil {
		return lookup(err, "doctor")
	}
	if !doctor.IsDoctor() {
		return invalid("%s is not a doctor", doctor.Name)
	}

	if !doctor.WorksOn(date.Weekday().String()) {
		return invalid("%s does not work on %s", doctor.Name, date.Weekday())
	}
	start, end, err := validation.ParseWorkingHours(doctor.WorkingHours)
	if err != nil {
		return fmt.Errorf("doctor %s has invalid working hours: %w", doctor.ID, err)
	}
	if !validation.WithinWorkingHours(start, end, minutes) {
		return invalid("%s is outside the working hours of %s (%s)", input.Time, doctor.Name, doctor.WorkingHours)
	}

	taken, err := s.appointmentRepo.SlotTaken(ctx, input.PatientID, input.DoctorID, date, input.Time, appointment.ID)
	if err != nil {
		return err
	}
	if taken {
		return conflict("this appointment already exists")
	}

	appointment.PatientID = input.PatientID
	appointment.DoctorID = input.DoctorID
	appointment.Date = date
	appointment.Time = input.Time
	return nil
}

// ParseDay parses a calendar day, given as YYYY-MM-DD or RFC 3339, to midnight UTC
func ParseDay(s string) (time.Time, error) {
	if day, err := time.Parse("2006-01-02", s); err == nil {
		return day, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q, expected YYYY-MM-DD", s)
	}
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), nil
}
