package repository

import (
	"context"

	"gorm.io/gorm"
)

// TxRepositories are repositories bound to one database transaction
type TxRepositories struct {
	Rooms            *RoomRepository
	Hospitalizations *HospitalizationRepository
	Patients         *PatientRepository
	MedicalRecords   *MedicalRecordRepository
}

// Transactor runs units of work that must commit or roll back together
type Transactor struct {
	db *gorm.DB
}

func NewTransactor(db *gorm.DB) *Transactor {
	return &Transactor{db: db}
}

// WithinTransaction calls fn with transaction-bound repositories.
// Any error returned by fn rolls the transaction back.
func (t *Transactor) WithinTransaction(ctx context.Context, fn func(repos TxRepositories) error) error {
	return t.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(TxRepositories{
			Rooms:            NewRoomRepo(tx),
			Hospitalizations: NewHospitalizationRepo(tx),
			Patients:         NewPatientRepo(tx),
			MedicalRecords:   NewMedicalRecordRepo(tx),
		})
	})
}
