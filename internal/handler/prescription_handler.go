package handler

import (
	"hospital-backoffice/internal/middleware"
	"hospital-backoffice/internal/repository"
	"hospital-backoffice/internal/service"
	"hospital-backoffice/pkg/pagination"
	"hospital-backoffice/pkg/utils"

	"github.com/gin-gonic/gin"
)

type PrescriptionHandler struct {
	prescriptionService *service.PrescriptionService
}

func NewPrescriptionHandler(prescriptionService *service.PrescriptionService) *PrescriptionHandler {
	return &PrescriptionHandler{
		prescriptionService: prescriptionService,
	}
}

// GetAllPrescriptions lists prescriptions, newest first.
// Supports ?doctor_id= and ?patient_id= filters.
func (h *PrescriptionHandler) GetAllPrescriptions(c *gin.Context) {
	params, p := page(c)
	filter := repository.PrescriptionFilter{
		DoctorID:  c.Query("doctor_id"),
		PatientID: c.Query("patient_id"),
	}

	prescriptions, total, err := h.prescriptionService.GetAllPrescriptions(c.Request.Context(), filter, p)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, pagination.NewResponse(prescriptions, total, params))
}

func (h *PrescriptionHandler) GetPrescription(c *gin.Context) {
	prescription, err := h.prescriptionService.GetPrescription(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, prescription)
}

// CreatePrescription records a prescription written by a doctor
func (h *PrescriptionHandler) CreatePrescription(c *gin.Context) {
	var input service.PrescriptionInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondBindError(c, err)
		return
	}

	prescription, err := h.prescriptionService.CreatePrescription(c.Request.Context(), input, middleware.StaffID(c))
	if err != nil {
		respondError(c, err)
		return
	}

	utils.CreatedResponse(c, prescription)
}

func (h *PrescriptionHandler) UpdatePrescription(c *gin.Context) {
	var input service.PrescriptionInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondBindError(c, err)
		return
	}

	prescription, err := h.prescriptionService.UpdatePrescription(c.Request.Context(), c.Param("id"), input, middleware.StaffID(c))
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, prescription)
}

func (h *PrescriptionHandler) DeletePrescription(c *gin.Context) {
	if err := h.prescriptionService.DeletePrescription(c.Request.Context(), c.Param("id"), middleware.StaffID(c)); err != nil {
		respondError(c, err)
		return
	}

	utils.MessageResponse(c, "Prescription deleted successfully")
}
