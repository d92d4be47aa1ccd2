package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"hospital-backoffice/internal/models"
	"hospital-backoffice/internal/repository"
	"hospital-backoffice/internal/validation"
	"hospital-backoffice/pkg/utils"

	"github.com/go-playground/validator/v10"
	"github.com/patrickmn/go-cache"
)

const doctorsCacheKey = "doctors"

type StaffService struct {
	staffRepo *repository.StaffRepository
	auditRepo *repository.AuditRepository
	doctors   *cache.Cache
	validate  *validator.Validate
}

func NewStaffService(staffRepo *repository.StaffRepository, auditRepo *repository.AuditRepository, doctorsTTL time.Duration) *StaffService {
	return &StaffService{
		staffRepo: staffRepo,
		auditRepo: auditRepo,
		doctors:   cache.New(doctorsTTL, 2*doctorsTTL),
		validate:  validation.New(),
	}
}

// CreateStaffInput is the body of a staff create request
type CreateStaffInput struct {
	Name         string   `json:"name" binding:"required"`
	StaffCode    string   `json:"staff_code" binding:"required"`
	Service      string   `json:"service" binding:"required,oneof=Admin Doctor Lab Receptionist Accountant Security Nurse Cleaning"`
	WorkingHours string   `json:"working_hours" binding:"required,working_hours"`
	Contact      string   `json:"contact" binding:"required,contact"`
	Category     string   `json:"category" binding:"required,oneof=Caregiver NonCaregiver"`
	WorkingDays  []string `json:"working_days" binding:"required,min=1,dive,weekday"`
	Password     string   `json:"password" binding:"required,min=6"`
}

// UpdateStaffInput is the body of a staff update request.
// Nil fields are left unchanged; a password, when present, is re-hashed.
type UpdateStaffInput struct {
	Name         *string   `json:"name"`
	StaffCode    *string   `json:"staff_code"`
	Service      *string   `json:"service"`
	WorkingHours *string   `json:"working_hours"`
	Contact      *string   `json:"contact"`
	Category     *string   `json:"category"`
	WorkingDays  *[]string `json:"working_days"`
	Password     *string   `json:"password"`
}

// GetAllStaff retrieves a page of staff members
func (s *StaffService) GetAllStaff(ctx context.Context, page repository.Page) ([]models.Staff, int64, error) {
	return s.staffRepo.GetAllStaff(ctx, page)
}

// GetDoctors retrieves every doctor, served from cache between staff writes
func (s *StaffService) GetDoctors(ctx context.Context) ([]models.Staff, error) {
	if cached, found := s.doctors.Get(doctorsCacheKey); found {
		return cached.([]models.Staff), nil
	}

	doctors, err := s.staffRepo.GetStaffByService(ctx, models.ServiceDoctor)
	if err != nil {
		return nil, err
	}
	s.doctors.SetDefault(doctorsCacheKey, doctors)
	return doctors, nil
}

// GetStaff retrieves a staff member by ID
func (s *StaffService) GetStaff(ctx context.Context, id string) (*models.Staff, error) {
	staff, err := s.staffRepo.GetStaffByID(ctx, id)
	if err != nil {
		return nil, lookup(err, "staff member")
	}
	return staff, nil
}

// CreateStaff registers a staff member (admin only)
func (s *StaffService) CreateStaff(ctx context.Context, input CreateStaffInput, actorID string) (*models.Staff, error) {
	if err := s.validate.Struct(input); err != nil {
		return nil, invalid("%s", err.Error())
	}
	if err := utils.CheckPasswordPolicy(input.Password); err != nil {
		return nil, invalid("%s", err.Error())
	}
	if err := s.checkUnique(ctx, input.StaffCode, input.Contact, ""); err != nil {
		return nil, err
	}

	hash, err := utils.HashPassword(input.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	staff := &models.Staff{
		Name:         input.Name,
		StaffCode:    input.StaffCode,
		Service:      input.Service,
		WorkingHours: input.WorkingHours,
		Contact:      input.Contact,
		Category:     input.Category,
		WorkingDays:  input.WorkingDays,
		PasswordHash: hash,
	}
	if err := s.staffRepo.CreateStaff(ctx, staff); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, conflict("staff code or contact already in use")
		}
		return nil, fmt.Errorf("failed to create staff member: %w", err)
	}
	s.doctors.Delete(doctorsCacheKey)

	details := fmt.Sprintf("Created staff member %s (code: %s, service: %s)", staff.Name, staff.StaffCode, staff.Service)
	_ = s.auditRepo.CreateAuditLog(ctx, actorRef(actorID), "staff_create", details)

	return staff, nil
}

// UpdateStaff applies a partial update and re-validates the result (admin only)
func (s *StaffService) UpdateStaff(ctx context.Context, id string, input UpdateStaffInput, actorID string) (*models.Staff, error) {
	staff, err := s.staffRepo.GetStaffByID(ctx, id)
	if err != nil {
		return nil, lookup(err, "staff member")
	}

	form := CreateStaffInput{
		Name:         staff.Name,
		StaffCode:    staff.StaffCode,
		Service:      staff.Service,
		WorkingHours: staff.WorkingHours,
		Contact:      staff.Contact,
		Category:     staff.Category,
		WorkingDays:  staff.WorkingDays,
		// the stored hash is not re-validated
		Password: "unchanged",
	}
	setString(&form.Name, input.Name)
	setString(&form.StaffCode, input.StaffCode)
	setString(&form.Service, input.Service)
	setString(&form.WorkingHours, input.WorkingHours)
	setString(&form.Contact, input.Contact)
	setString(&form.Category, input.Category)
	setString(&form.Password, input.Password)
	if input.WorkingDays != nil {
		form.WorkingDays = *input.WorkingDays
	}
	if err := s.validate.Struct(form); err != nil {
		return nil, invalid("%s", err.Error())
	}
	if err := s.checkUnique(ctx, form.StaffCode, form.Contact, staff.ID); err != nil {
		return nil, err
	}

	if input.Password != nil {
		if err := utils.CheckPasswordPolicy(*input.Password); err != nil {
			return nil, invalid("%s", err.Error())
		}
		hash, err := utils.HashPassword(*input.Password)
		if err != nil {
			return nil, fmt.Errorf("failed to hash password: %w", err)
		}
		staff.PasswordHash = hash
	}
	staff.Name = form.Name
	staff.StaffCode = form.StaffCode
	staff.Service = form.Service
	staff.WorkingHours = form.WorkingHours
	staff.Contact = form.Contact
	staff.Category = form.Category
	staff.WorkingDays = form.WorkingDays

	if err := s.staffRepo.UpdateStaff(ctx, staff); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, conflict("staff code or contact already in use")
		}
		return nil, fmt.Errorf("failed to update staff member: %w", err)
	}
	s.doctors.Delete(doctorsCacheKey)

	_ = s.auditRepo.CreateAuditLog(ctx, actorRef(actorID), "staff_update", fmt.Sprintf("Updated staff member ID: %s", id))
	return staff, nil
}

// DeleteStaff permanently deletes a staff member (admin only).
// An administrator cannot delete their own account.
func (s *StaffService) DeleteStaff(ctx context.Context, id string, actorID string) error {
	if id == actorID {
		return forbidden("you cannot delete your own account")
	}
	if err := s.staffRepo.DeleteStaff(ctx, id); err != nil {
		return lookup(err, "staff member")
	}
	s.doctors.Delete(doctorsCacheKey)

	_ = s.auditRepo.CreateAuditLog(ctx, actorRef(actorID), "staff_delete", fmt.Sprintf("Deleted staff member ID: %s", id))
	return nil
}

// ResetPassword replaces the password of the staff member with the given code (admin only)
func (s *StaffService) ResetPassword(ctx context.Context, staffCode, password string, actorID string) error {
	if err := utils.CheckPasswordPolicy(password); err != nil {
		return invalid("%s", err.Error())
	}

	staff, err := s.staffRepo.FindStaffByCode(ctx, staffCode)
	if err != nil {
		return lookup(err, "staff member")
	}

	hash, err := utils.HashPassword(password)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	if err := s.staffRepo.UpdatePassword(ctx, staff.ID, hash); err != nil {
		return fmt.Errorf("failed to reset password: %w", err)
	}

	_ = s.auditRepo.CreateAuditLog(ctx, actorRef(actorID), "staff_password_reset", fmt.Sprintf("Reset password of staff code %s", staffCode))
	return nil
}

func (s *StaffService) checkUnique(ctx context.Context, code, contact, excludeID string) error {
	exists, err := s.staffRepo.ExistsByCodeOrContact(ctx, code, contact, excludeID)
	if err != nil {
		return err
	}
	if exists {
		return conflict("staff code or contact already in use")
	}
	return nil
}
