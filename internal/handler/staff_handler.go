package handler

import (
	"hospital-backoffice/internal/middleware"
	"hospital-backoffice/internal/service"
	"hospital-backoffice/pkg/pagination"
	"hospital-backoffice/pkg/utils"

	"github.com/gin-gonic/gin"
)

type StaffHandler struct {
	staffService *service.StaffService
}

func NewStaffHandler(staffService *service.StaffService) *StaffHandler {
	return &StaffHandler{
		staffService: staffService,
	}
}

type ResetPasswordRequest struct {
	StaffCode string `json:"staff_code" binding:"required"`
	Password  string `json:"password" binding:"required"`
}

// GetAllStaff lists staff members
func (h *StaffHandler) GetAllStaff(c *gin.Context) {
	params, p := page(c)
	staff, total, err := h.staffService.GetAllStaff(c.Request.Context(), p)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, pagination.NewResponse(staff, total, params))
}

// GetDoctors lists staff members of the Doctor service
func (h *StaffHandler) GetDoctors(c *gin.Context) {
	doctors, err := h.staffService.GetDoctors(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"doctors": doctors,
		"count":   len(doctors),
	})
}

// GetStaff retrieves a staff member by ID
func (h *StaffHandler) GetStaff(c *gin.Context) {
	staff, err := h.staffService.GetStaff(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, staff)
}

// CreateStaff creates a staff member (admin only)
func (h *StaffHandler) CreateStaff(c *gin.Context) {
	var input service.CreateStaffInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondBindError(c, err)
		return
	}

	staff, err := h.staffService.CreateStaff(c.Request.Context(), input, middleware.StaffID(c))
	if err != nil {
		respondError(c, err)
		return
	}

	utils.CreatedResponse(c, staff)
}

// UpdateStaff applies a partial update to a staff member (admin only)
func (h *StaffHandler) UpdateStaff(c *gin.Context) {
	var input service.UpdateStaffInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondBindError(c, err)
		return
	}

	staff, err := h.staffService.UpdateStaff(c.Request.Context(), c.Param("id"), input, middleware.StaffID(c))
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, staff)
}

// DeleteStaff deletes a staff member (admin only)
func (h *StaffHandler) DeleteStaff(c *gin.Context) {
	if err := h.staffService.DeleteStaff(c.Request.Context(), c.Param("id"), middleware.StaffID(c)); err != nil {
		respondError(c, err)
		return
	}

	utils.MessageResponse(c, "Staff member deleted successfully")
}

// ResetPassword sets a new password for the staff member with the given code (admin only)
func (h *StaffHandler) ResetPassword(c *gin.Context) {
	var req ResetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	if err := h.staffService.ResetPassword(c.Request.Context(), req.StaffCode, req.Password, middleware.StaffID(c)); err != nil {
		respondError(c, err)
		return
	}

	utils.MessageResponse(c, "Password reset successfully")
}
