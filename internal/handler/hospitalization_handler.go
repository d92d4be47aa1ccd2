package handler

import (
	"hospital-backoffice/internal/middleware"
	"hospital-backoffice/internal/service"
	"hospital-backoffice/pkg/pagination"
	"hospital-backoffice/pkg/utils"

	"github.com/gin-gonic/gin"
)

type HospitalizationHandler struct {
	stayService *service.HospitalizationService
}

func NewHospitalizationHandler(stayService *service.HospitalizationService) *HospitalizationHandler {
	return &HospitalizationHandler{
		stayService: stayService,
	}
}

// GetAllHospitalizations lists stays, optionally filtered with ?status=active|discharged
func (h *HospitalizationHandler) GetAllHospitalizations(c *gin.Context) {
	params, p := page(c)
	stays, total, err := h.stayService.GetAllHospitalizations(c.Request.Context(), c.Query("status"), p)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, pagination.NewResponse(stays, total, params))
}

// GetHospitalization retrieves a stay with its patient and room
func (h *HospitalizationHandler) GetHospitalization(c *gin.Context) {
	stay, err := h.stayService.GetHospitalization(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, stay)
}

// CreateHospitalization admits a patient into a room
func (h *HospitalizationHandler) CreateHospitalization(c *gin.Context) {
	var input service.CreateStayInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondBindError(c, err)
		return
	}

	stay, err := h.stayService.CreateHospitalization(c.Request.Context(), input, middleware.StaffID(c))
	if err != nil {
		respondError(c, err)
		return
	}

	utils.CreatedResponse(c, stay)
}

// UpdateHospitalization edits a stay, moving or discharging it when asked
func (h *HospitalizationHandler) UpdateHospitalization(c *gin.Context) {
	var input service.UpdateStayInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondBindError(c, err)
		return
	}

	stay, err := h.stayService.UpdateHospitalization(c.Request.Context(), c.Param("id"), input, middleware.StaffID(c))
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, stay)
}
