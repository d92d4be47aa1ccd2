package handler

import (
	"hospital-backoffice/internal/middleware"
	"hospital-backoffice/internal/repository"
	"hospital-backoffice/internal/service"
	"hospital-backoffice/pkg/pagination"
	"hospital-backoffice/pkg/utils"

	"github.com/gin-gonic/gin"
)

type PatientHandler struct {
	patientService *service.PatientService
}

func NewPatientHandler(patientService *service.PatientService) *PatientHandler {
	return &PatientHandler{
		patientService: patientService,
	}
}

// GetAllPatients lists patients
func (h *PatientHandler) GetAllPatients(c *gin.Context) {
	params, p := page(c)
	patients, total, err := h.patientService.GetAllPatients(c.Request.Context(), p)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, pagination.NewResponse(patients, total, params))
}

// SearchPatient finds the first patient matching any of the query parameters
func (h *PatientHandler) SearchPatient(c *gin.Context) {
	search := repository.PatientSearch{
		Name:            c.Query("name"),
		PatientCode:     c.Query("patient_code"),
		InsuranceNumber: c.Query("insurance_number"),
		PhoneNumber:     c.Query("phone_number"),
	}

	patient, err := h.patientService.SearchPatient(c.Request.Context(), search)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, patient)
}

// GetPatient retrieves a patient by ID
func (h *PatientHandler) GetPatient(c *gin.Context) {
	patient, err := h.patientService.GetPatient(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, patient)
}

// CreatePatient registers a patient
func (h *PatientHandler) CreatePatient(c *gin.Context) {
	var input service.CreatePatientInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondBindError(c, err)
		return
	}

	patient, err := h.patientService.CreatePatient(c.Request.Context(), input, middleware.StaffID(c))
	if err != nil {
		respondError(c, err)
		return
	}

	utils.CreatedResponse(c, patient)
}

// UpdatePatient applies a partial update to a patient
func (h *PatientHandler) UpdatePatient(c *gin.Context) {
	var input service.UpdatePatientInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondBindError(c, err)
		return
	}

	patient, err := h.patientService.UpdatePatient(c.Request.Context(), c.Param("id"), input, middleware.StaffID(c))
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, patient)
}

// DeletePatient deletes a patient
func (h *PatientHandler) DeletePatient(c *gin.Context) {
	if err := h.patientService.DeletePatient(c.Request.Context(), c.Param("id"), middleware.StaffID(c)); err != nil {
		respondError(c, err)
		return
	}

	utils.MessageResponse(c, "Patient deleted successfully")
}
