package handler

import (
	"hospital-backoffice/internal/middleware"
	"hospital-backoffice/internal/service"
	"hospital-backoffice/pkg/pagination"
	"hospital-backoffice/pkg/utils"

	"github.com/gin-gonic/gin"
)

type MedicalRecordHandler struct {
	recordService *service.MedicalRecordService
}

func NewMedicalRecordHandler(recordService *service.MedicalRecordService) *MedicalRecordHandler {
	return &MedicalRecordHandler{
		recordService: recordService,
	}
}

// GetAllMedicalRecords lists medical records
func (h *MedicalRecordHandler) GetAllMedicalRecords(c *gin.Context) {
	params, p := page(c)
	records, total, err := h.recordService.GetAllMedicalRecords(c.Request.Context(), p)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, pagination.NewResponse(records, total, params))
}

// GetNextRecordNumber previews the record number the patient's next record gets
func (h *MedicalRecordHandler) GetNextRecordNumber(c *gin.Context) {
	number, err := h.recordService.NextRecordNumber(c.Request.Context(), c.Param("patientId"))
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{"record_number": number})
}

// GetPatientRecord returns the latest medical record of a patient
func (h *MedicalRecordHandler) GetPatientRecord(c *gin.Context) {
	record, err := h.recordService.GetPatientRecord(c.Request.Context(), c.Param("patientId"))
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, record)
}

func (h *MedicalRecordHandler) CreateMedicalRecord(c *gin.Context) {
	var input service.CreateMedicalRecordInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondBindError(c, err)
		return
	}

	record, err := h.recordService.CreateMedicalRecord(c.Request.Context(), input, middleware.StaffID(c))
	if err != nil {
		respondError(c, err)
		return
	}

	utils.CreatedResponse(c, record)
}

func (h *MedicalRecordHandler) UpdateMedicalRecord(c *gin.Context) {
	var input service.UpdateMedicalRecordInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondBindError(c, err)
		return
	}

	record, err := h.recordService.UpdateMedicalRecord(c.Request.Context(), c.Param("id"), input, middleware.StaffID(c))
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, record)
}

func (h *MedicalRecordHandler) DeleteMedicalRecord(c *gin.Context) {
	if err := h.recordService.DeleteMedicalRecord(c.Request.Context(), c.Param("id"), middleware.StaffID(c)); err != nil {
		respondError(c, err)
		return
	}

	utils.MessageResponse(c, "Medical record deleted successfully")
}
