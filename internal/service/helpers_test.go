package service

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"hospital-backoffice/internal/config"
	"hospital-backoffice/internal/database"
	"hospital-backoffice/internal/models"
	"hospital-backoffice/internal/repository"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type testEnv struct {
	db            *gorm.DB
	rooms         *RoomService
	stays         *HospitalizationService
	patients      *PatientService
	staff         *StaffService
	appointments  *AppointmentService
	prescriptions *PrescriptionService
	records       *MedicalRecordService
	auth          *AuthService
	revoked       *RevocationList
	roomRepo      *repository.RoomRepository
	auditRepo     *repository.AuditRepository
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	cfg := &config.Config{
		Database: config.DatabaseConfig{
			Driver:       "sqlite",
			DSN:          fmt.Sprintf("file:%s?mode=memory&cache=shared", name),
			MaxOpenConns: 1,
			MaxIdleConns: 1,
		},
		Server: config.ServerConfig{GinMode: "release"},
	}
	db, err := database.Open(cfg)
	require.NoError(t, err)
	sqlDB, _ := db.DB()
	t.Cleanup(func() { sqlDB.Close() })
	require.NoError(t, database.Migrate(db))

	roomRepo := repository.NewRoomRepo(db)
	stayRepo := repository.NewHospitalizationRepo(db)
	patientRepo := repository.NewPatientRepo(db)
	staffRepo := repository.NewStaffRepo(db)
	auditRepo := repository.NewAuditRepo(db)
	transactor := repository.NewTransactor(db)
	revoked := NewRevocationList()

	return &testEnv{
		db:            db,
		rooms:         NewRoomService(roomRepo, auditRepo),
		stays:         NewHospitalizationService(stayRepo, patientRepo, auditRepo, transactor),
		patients:      NewPatientService(patientRepo, auditRepo),
		staff:         NewStaffService(staffRepo, auditRepo, time.Minute),
		appointments:  NewAppointmentService(repository.NewAppointmentRepo(db), patientRepo, staffRepo, auditRepo),
		prescriptions: NewPrescriptionService(repository.NewPrescriptionRepo(db), patientRepo, staffRepo, auditRepo),
		records:       NewMedicalRecordService(repository.NewMedicalRecordRepo(db), patientRepo, auditRepo, transactor),
		auth:          NewAuthService(staffRepo, auditRepo, revoked),
		revoked:       revoked,
		roomRepo:      roomRepo,
		auditRepo:     auditRepo,
	}
}

func (e *testEnv) room(t *testing.T, number string, roomType string, capacity int) *models.Room {
	t.Helper()
	room, err := e.rooms.CreateRoom(context.Background(), RoomInput{Type: roomType, Number: number, Capacity: capacity}, "")
	require.NoError(t, err)
	return room
}

func (e *testEnv) patient(t *testing.T, code string) *models.Patient {
	t.Helper()
	patient, err := e.patients.CreatePatient(context.Background(), CreatePatientInput{
		Name:            "Patient " + code,
		PatientCode:     code,
		InsuranceNumber: "INS-" + code,
		PhoneNumber:     "7700" + code,
	}, "")
	require.NoError(t, err)
	return patient
}

func (e *testEnv) doctor(t *testing.T, code, contact string) *models.Staff {
	t.Helper()
	doctor, err := e.staff.CreateStaff(context.Background(), CreateStaffInput{
		Name:         "Dr " + code,
		StaffCode:    code,
		Service:      models.ServiceDoctor,
		WorkingHours: "08:00 - 16:00",
		Contact:      contact,
		Category:     models.CategoryCaregiver,
		WorkingDays:  []string{"Monday", "Wednesday"},
		Password:     "secret1",
	}, "")
	require.NoError(t, err)
	return doctor
}

func (e *testEnv) admit(t *testing.T, patientID, roomID string) *models.Hospitalization {
	t.Helper()
	admitted := time.Now().UTC().Add(-24 * time.Hour)
	stay, err := e.stays.CreateHospitalization(context.Background(), CreateStayInput{
		PatientID:     patientID,
		RoomID:        roomID,
		AdmissionDate: &admitted,
		Notes:         "observation",
	}, "")
	require.NoError(t, err)
	return stay
}

func requireKind(t *testing.T, err error, kind Kind) {
	t.Helper()
	require.Error(t, err)
	require.Equal(t, kind, KindOf(err), "unexpected error: %v", err)
}

func repositoryPage(limit, offset int) repository.Page {
	return repository.Page{Limit: limit, Offset: offset}
}
