package handler

import (
	"hospital-backoffice/internal/middleware"
	"hospital-backoffice/internal/service"
	"hospital-backoffice/pkg/pagination"
	"hospital-backoffice/pkg/utils"

	"github.com/gin-gonic/gin"
)

type AppointmentHandler struct {
	appointmentService *service.AppointmentService
}

func NewAppointmentHandler(appointmentService *service.AppointmentService) *AppointmentHandler {
	return &AppointmentHandler{
		appointmentService: appointmentService,
	}
}

// GetAllAppointments lists appointments, optionally for one doctor (?doctor_id=)
func (h *AppointmentHandler) GetAllAppointments(c *gin.Context) {
	params, p := page(c)
	appointments, total, err := h.appointmentService.GetAllAppointments(c.Request.Context(), c.Query("doctor_id"), p)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, pagination.NewResponse(appointments, total, params))
}

func (h *AppointmentHandler) GetAppointment(c *gin.Context) {
	appointment, err := h.appointmentService.GetAppointment(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, appointment)
}

// CreateAppointment books a patient with a doctor
func (h *AppointmentHandler) CreateAppointment(c *gin.Context) {
	var input service.AppointmentInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondBindError(c, err)
		return
	}

	appointment, err := h.appointmentService.CreateAppointment(c.Request.Context(), input, middleware.StaffID(c))
	if err != nil {
		respondError(c, err)
		return
	}

	utils.CreatedResponse(c, appointment)
}

func (h *AppointmentHandler) UpdateAppointment(c *gin.Context) {
	var input service.AppointmentInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondBindError(c, err)
		return
	}

	appointment, err := h.appointmentService.UpdateAppointment(c.Request.Context(), c.Param("id"), input, middleware.StaffID(c))
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, appointment)
}

func (h *AppointmentHandler) DeleteAppointment(c *gin.Context) {
	if err := h.appointmentService.DeleteAppointment(c.Request.Context(), c.Param("id"), middleware.StaffID(c)); err != nil {
		respondError(c, err)
		return
	}

	utils.MessageResponse(c, "Appointment deleted successfully")
}
