package handler

import (
	"fmt"

	"hospital-backoffice/internal/config"
	"hospital-backoffice/internal/middleware"
	"hospital-backoffice/internal/models"
	"hospital-backoffice/internal/service"
	"hospital-backoffice/internal/validation"
	"hospital-backoffice/pkg/utils"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"golang.org/x/time/rate"
)

// Services groups everything the HTTP layer calls into
type Services struct {
	Auth             *service.AuthService
	Revoked          *service.RevocationList
	Patients         *service.PatientService
	Staff            *service.StaffService
	Appointments     *service.AppointmentService
	Prescriptions    *service.PrescriptionService
	Rooms            *service.RoomService
	Hospitalizations *service.HospitalizationService
	MedicalRecords   *service.MedicalRecordService
}

// NewRouter builds the gin engine with middleware and every /api route
func NewRouter(cfg *config.Config, logger zerolog.Logger, svc Services) (*gin.Engine, error) {
	if err := validation.RegisterWithGin(); err != nil {
		return nil, fmt.Errorf("failed to register validators: %w", err)
	}

	r := gin.New()
	if err := r.SetTrustedProxies(cfg.Server.TrustedProxies); err != nil {
		return nil, fmt.Errorf("invalid trusted proxies: %w", err)
	}
	r.Use(middleware.RequestID())
	r.Use(middleware.Recovery(logger))
	r.Use(middleware.Logger(logger))
	r.Use(middleware.CORS(cfg.CORS))

	authHandler := NewAuthHandler(svc.Auth)
	patientHandler := NewPatientHandler(svc.Patients)
	staffHandler := NewStaffHandler(svc.Staff)
	appointmentHandler := NewAppointmentHandler(svc.Appointments)
	prescriptionHandler := NewPrescriptionHandler(svc.Prescriptions)
	roomHandler := NewRoomHandler(svc.Rooms)
	stayHandler := NewHospitalizationHandler(svc.Hospitalizations)
	recordHandler := NewMedicalRecordHandler(svc.MedicalRecords)

	// Health check endpoint
	r.GET("/health", func(c *gin.Context) {
		utils.SuccessResponse(c, gin.H{
			"status":  "healthy",
			"service": "hospital-backoffice",
		})
	})

	api := r.Group("/api")

	loginLimiter := middleware.NewIPRateLimiter(rate.Limit(cfg.RateLimit.LoginPerSecond), cfg.RateLimit.LoginBurst)
	api.POST("/auth/login", middleware.RateLimit(loginLimiter), authHandler.Login)

	protected := api.Group("")
	protected.Use(middleware.AuthMiddleware(svc.Revoked))

	auth := protected.Group("/auth")
	{
		auth.POST("/logout", authHandler.Logout)
		auth.GET("/me", authHandler.Me)
	}

	admin := middleware.RequireAdmin()
	reception := middleware.RequireService(models.ServiceReceptionist)
	doctor := middleware.RequireService(models.ServiceDoctor)
	records := middleware.RequireService(models.ServiceDoctor, models.ServiceReceptionist)

	patients := protected.Group("/patients")
	{
		patients.GET("", patientHandler.GetAllPatients)
		patients.GET("/search", patientHandler.SearchPatient)
		patients.GET("/:id", patientHandler.GetPatient)
		patients.POST("", reception, patientHandler.CreatePatient)
		patients.PUT("/:id", reception, patientHandler.UpdatePatient)
		patients.DELETE("/:id", reception, patientHandler.DeletePatient)
	}

	staff := protected.Group("/staff")
	{
		staff.GET("", staffHandler.GetAllStaff)
		staff.GET("/doctors", staffHandler.GetDoctors)
		staff.GET("/:id", staffHandler.GetStaff)
		staff.POST("", admin, staffHandler.CreateStaff)
		staff.POST("/reset-password", admin, staffHandler.ResetPassword)
		staff.PUT("/:id", admin, staffHandler.UpdateStaff)
		staff.DELETE("/:id", admin, staffHandler.DeleteStaff)
	}

	appointments := protected.Group("/appointments")
	{
		appointments.GET("", appointmentHandler.GetAllAppointments)
		appointments.GET("/:id", appointmentHandler.GetAppointment)
		appointments.POST("", reception, appointmentHandler.CreateAppointment)
		appointments.PUT("/:id", reception, appointmentHandler.UpdateAppointment)
		appointments.DELETE("/:id", reception, appointmentHandler.DeleteAppointment)
	}

	prescriptions := protected.Group("/prescriptions")
	{
		prescriptions.GET("", prescriptionHandler.GetAllPrescriptions)
		prescriptions.GET("/:id", prescriptionHandler.GetPrescription)
		prescriptions.POST("", doctor, prescriptionHandler.CreatePrescription)
		prescriptions.PUT("/:id", doctor, prescriptionHandler.UpdatePrescription)
		prescriptions.DELETE("/:id", doctor, prescriptionHandler.DeletePrescription)
	}

	rooms := protected.Group("/rooms")
	{
		rooms.GET("", roomHandler.GetAllRooms)
		rooms.GET("/:id", roomHandler.GetRoom)
		rooms.GET("/:id/availability", roomHandler.GetAvailability)
		rooms.POST("", admin, roomHandler.CreateRoom)
		rooms.PUT("/:id", admin, roomHandler.UpdateRoom)
		rooms.DELETE("/:id", admin, roomHandler.DeleteRoom)
		rooms.DELETE("", admin, roomHandler.DeleteAllRooms)
	}

	stays := protected.Group("/hospitalizations")
	{
		stays.GET("", stayHandler.GetAllHospitalizations)
		stays.GET("/:id", stayHandler.GetHospitalization)
		stays.POST("", reception, stayHandler.CreateHospitalization)
		stays.PUT("/:id", reception, stayHandler.UpdateHospitalization)
	}

	medicalRecords := protected.Group("/medical-records")
	{
		medicalRecords.GET("", recordHandler.GetAllMedicalRecords)
		medicalRecords.GET("/next-number/:patientId", recordHandler.GetNextRecordNumber)
		medicalRecords.GET("/patient/:patientId", recordHandler.GetPatientRecord)
		medicalRecords.POST("", records, recordHandler.CreateMedicalRecord)
		medicalRecords.PUT("/:id", records, recordHandler.UpdateMedicalRecord)
		medicalRecords.DELETE("/:id", records, recordHandler.DeleteMedicalRecord)
	}

	return r, nil
}
