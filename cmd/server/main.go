package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"hospital-backoffice/internal/config"
	"hospital-backoffice/internal/database"
	"hospital-backoffice/internal/handler"
	"hospital-backoffice/internal/logging"
	"hospital-backoffice/internal/models"
	"hospital-backoffice/internal/repository"
	"hospital-backoffice/internal/service"
	"hospital-backoffice/pkg/utils"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"gorm.io/gorm"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "hospital-backoffice",
		Short: "Hospital back-office API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer()
		},
	}

	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(migrateCmd())
	rootCmd.AddCommand(createAdminCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer()
		},
	}
}

func migrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the database schema",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.LoadConfig()
			db, err := database.Open(cfg)
			if err != nil {
				return err
			}
			defer closeDB(db)

			if err := database.Migrate(db); err != nil {
				return err
			}
			fmt.Println("Migrations applied successfully")
			return nil
		},
	}
}

func createAdminCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "create-admin",
		Short: "Create an administrator account",
		RunE: func(cmd *cobra.Command, args []string) error {
			name, _ := cmd.Flags().GetString("name")
			code, _ := cmd.Flags().GetString("code")
			password, _ := cmd.Flags().GetString("password")
			contact, _ := cmd.Flags().GetString("contact")
			if name == "" || code == "" || password == "" || contact == "" {
				return fmt.Errorf("--name, --code, --password and --contact are required")
			}

			cfg := config.LoadConfig()
			db, err := database.Open(cfg)
			if err != nil {
				return err
			}
			defer closeDB(db)

			if err := database.Migrate(db); err != nil {
				return err
			}

			staffService := service.NewStaffService(repository.NewStaffRepo(db), repository.NewAuditRepo(db), cfg.Workers.DoctorsCacheTTL)
			admin, err := staffService.CreateStaff(context.Background(), service.CreateStaffInput{
				Name:         name,
				StaffCode:    code,
				Service:      models.ServiceAdmin,
				WorkingHours: "08:00 - 17:00",
				Contact:      contact,
				Category:     models.CategoryNonCaregiver,
				WorkingDays:  []string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday"},
				Password:     password,
			}, "")
			if err != nil {
				return err
			}

			fmt.Printf("Administrator %s created (ID: %s)\n", admin.Name, admin.ID)
			return nil
		},
	}
	cmd.Flags().String("name", "", "Login name of the administrator")
	cmd.Flags().String("code", "", "Staff code")
	cmd.Flags().String("password", "", "Password (at least 6 characters)")
	cmd.Flags().String("contact", "", "Phone number (8 to 15 digits)")

	return cmd
}

func runServer() error {
	// 1. Load configuration
	cfg := config.LoadConfig()
	logger := logging.New(cfg.Server.GinMode)
	if err := cfg.Validate(); err != nil {
		logger.Fatal().Err(err).Msg("invalid configuration")
	}
	logger.Info().Str("db_driver", cfg.Database.Driver).Msg("configuration loaded")

	// 2. Initialize JWT utilities with config
	utils.InitJWT(cfg.JWT.Secret, cfg.JWT.Expiry)

	// 3. Initialize database connection
	db, err := database.Open(cfg)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer closeDB(db)

	if err := database.Migrate(db); err != nil {
		logger.Fatal().Err(err).Msg("failed to migrate database")
	}
	logger.Info().Msg("connected to database")

	// 4. Initialize repositories
	roomRepo := repository.NewRoomRepo(db)
	stayRepo := repository.NewHospitalizationRepo(db)
	patientRepo := repository.NewPatientRepo(db)
	staffRepo := repository.NewStaffRepo(db)
	auditRepo := repository.NewAuditRepo(db)
	transactor := repository.NewTransactor(db)

	// 5. Initialize services
	revoked := service.NewRevocationList()
	stayService := service.NewHospitalizationService(stayRepo, patientRepo, auditRepo, transactor)
	services := handler.Services{
		Auth:             service.NewAuthService(staffRepo, auditRepo, revoked),
		Revoked:          revoked,
		Patients:         service.NewPatientService(patientRepo, auditRepo),
		Staff:            service.NewStaffService(staffRepo, auditRepo, cfg.Workers.DoctorsCacheTTL),
		Appointments:     service.NewAppointmentService(repository.NewAppointmentRepo(db), patientRepo, staffRepo, auditRepo),
		Prescriptions:    service.NewPrescriptionService(repository.NewPrescriptionRepo(db), patientRepo, staffRepo, auditRepo),
		Rooms:            service.NewRoomService(roomRepo, auditRepo),
		Hospitalizations: stayService,
		MedicalRecords:   service.NewMedicalRecordService(repository.NewMedicalRecordRepo(db), patientRepo, auditRepo, transactor),
	}

	// 6. Start background worker in goroutine
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	worker := service.NewDischargeWorker(stayService, cfg.Workers.DischargeSweepInterval, logger)
	go worker.Start(ctx)

	// 7. Setup Gin mode and router
	gin.SetMode(cfg.Server.GinMode)
	router, err := handler.NewRouter(cfg, logger, services)
	if err != nil {
		return err
	}

	srv := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// 8. Setup graceful shutdown
	go func() {
		logger.Info().Str("addr", srv.Addr).Msg("starting server")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal().Err(err).Msg("server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info().Msg("shutting down server")

	// Stop the discharge worker before draining requests
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("server shutdown failed")
		return err
	}
	logger.Info().Msg("server stopped")
	return nil
}

func closeDB(db *gorm.DB) {
	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}
}
