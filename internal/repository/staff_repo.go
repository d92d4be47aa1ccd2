package repository

import (
	"context"

	"hospital-backoffice/internal/models"

	"gorm.io/gorm"
)

type StaffRepository struct {
	db *gorm.DB
}

func NewStaffRepo(db *gorm.DB) *StaffRepository {
	return &StaffRepository{db: db}
}

// GetAllStaff retrieves a page of staff members ordered by name
func (r *StaffRepository) GetAllStaff(ctx context.Context, page Page) ([]models.Staff, int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&models.Staff{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var staff []models.Staff
	err := page.apply(r.db.WithContext(ctx)).
		Order("name ASC").
		Find(&staff).Error
	return staff, total, err
}

// GetStaffByService retrieves every staff member of a service
func (r *StaffRepository) GetStaffByService(ctx context.Context, service string) ([]models.Staff, error) {
	var staff []models.Staff
	err := r.db.WithContext(ctx).
		Where("service = ?", service).
		Order("name ASC").
		Find(&staff).Error
	return staff, err
}

// GetStaffByID retrieves a staff member by ID
func (r *StaffRepository) GetStaffByID(ctx context.Context, id string) (*models.Staff, error) {
	var staff models.Staff
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&staff).Error; err != nil {
		return nil, translate(err)
	}
	return &staff, nil
}

// FindStaffByName finds a staff member by name
func (r *StaffRepository) FindStaffByName(ctx context.Context, name string) (*models.Staff, error) {
	var staff models.Staff
	if err := r.db.WithContext(ctx).Where("name = ?", name).First(&staff).Error; err != nil {
		return nil, translate(err)
	}
	return &staff, nil
}

// FindStaffByCode finds a staff member by staff code
func (r *StaffRepository) FindStaffByCode(ctx context.Context, code string) (*models.Staff, error) {
	var staff models.Staff
	if err := r.db.WithContext(ctx).Where("staff_code = ?", code).First(&staff).Error; err != nil {
		return nil, translate(err)
	}
	return &staff, nil
}

// ExistsByCodeOrContact reports whether another staff member already uses the code or contact.
// excludeID may be empty.
func (r *StaffRepository) ExistsByCodeOrContact(ctx context.Context, code, contact, excludeID string) (bool, error) {
	var count int64
	query := r.db.WithContext(ctx).Model(&models.Staff{}).
		Where("(staff_code = ? OR contact = ?)", code, contact)
	if excludeID != "" {
		query = query.Where("id <> ?", excludeID)
	}
	err := query.Count(&count).Error
	return count > 0, err
}

// CreateStaff creates a new staff member
func (r *StaffRepository) CreateStaff(ctx context.Context, staff *models.Staff) error {
	return translate(r.db.WithContext(ctx).Create(staff).Error)
}

// UpdateStaff saves every field of an existing staff member
func (r *StaffRepository) UpdateStaff(ctx context.Context, staff *models.Staff) error {
	return translate(r.db.WithContext(ctx).Save(staff).Error)
}

// UpdatePassword replaces the password hash of a staff member
func (r *StaffRepository) UpdatePassword(ctx context.Context, id, hash string) error {
	return r.db.WithContext(ctx).Model(&models.Staff{}).
		Where("id = ?", id).
		Update("password_hash", hash).Error
}

// DeleteStaff permanently deletes a staff member
func (r *StaffRepository) DeleteStaff(ctx context.Context, id string) error {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Staff{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
