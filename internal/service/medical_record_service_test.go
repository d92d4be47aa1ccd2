package service

import (
	"context"
	"testing"

	"hospital-backoffice/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func consultation(note string) []models.Diagnosis {
	return []models.Diagnosis{{Note: note, Indication: "rest", Type: models.DiagnosisConsultation}}
}

func TestPatient_DerivedMedicalRecordNumber(t *testing.T) {
	env := newTestEnv(t)
	patient := env.patient(t, "P-7")

	assert.Equal(t, "DP-7", patient.MedicalRecordNumber)
}

func TestCreateMedicalRecord_NumbersAndLinksPatient(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	patient := env.patient(t, "P-1")

	next, err := env.records.NextRecordNumber(ctx, patient.ID)
	require.NoError(t, err)
	assert.Equal(t, "DP-1-1", next)

	record, err := env.records.CreateMedicalRecord(ctx, CreateMedicalRecordInput{PatientID: patient.ID, Diagnoses: consultation("fever")}, "")
	require.NoError(t, err)
	assert.Equal(t, "DP-1-1", record.RecordNumber)
	require.NotNil(t, record.Diagnoses[0].DiagnosedAt)

	reloaded, err := env.patients.GetPatient(ctx, patient.ID)
	require.NoError(t, err)
	assert.Equal(t, "DP-1-1", reloaded.MedicalRecordNumber)

	next, err = env.records.NextRecordNumber(ctx, patient.ID)
	require.NoError(t, err)
	assert.Equal(t, "DP-1-2", next)

	_, err = env.records.CreateMedicalRecord(ctx, CreateMedicalRecordInput{PatientID: patient.ID, RecordNumber: "DP-1-1", Diagnoses: consultation("cough")}, "")
	requireKind(t, err, KindConflict)

	_, err = env.records.CreateMedicalRecord(ctx, CreateMedicalRecordInput{PatientID: "missing", Diagnoses: consultation("cough")}, "")
	requireKind(t, err, KindNotFound)

	_, err = env.records.CreateMedicalRecord(ctx, CreateMedicalRecordInput{PatientID: patient.ID}, "")
	requireKind(t, err, KindInvalid)

	bad := []models.Diagnosis{{Note: "x", Indication: "y", Type: "Surgery"}}
	_, err = env.records.CreateMedicalRecord(ctx, CreateMedicalRecordInput{PatientID: patient.ID, Diagnoses: bad}, "")
	requireKind(t, err, KindInvalid)
}

func TestUpdateMedicalRecord(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	patient := env.patient(t, "P-1")
	record, err := env.records.CreateMedicalRecord(ctx, CreateMedicalRecordInput{PatientID: patient.ID, Diagnoses: consultation("fever")}, "")
	require.NoError(t, err)

	number := "ARCHIVE-9"
	diagnoses := append(consultation("fever"), models.Diagnosis{Note: "follow", Indication: "check", Type: models.DiagnosisFollowUp})
	updated, err := env.records.UpdateMedicalRecord(ctx, record.ID, UpdateMedicalRecordInput{RecordNumber: &number, Diagnoses: diagnoses}, "")
	require.NoError(t, err)
	assert.Len(t, updated.Diagnoses, 2)

	latest, err := env.records.GetPatientRecord(ctx, patient.ID)
	require.NoError(t, err)
	assert.Equal(t, "ARCHIVE-9", latest.RecordNumber)
	require.NotNil(t, latest.Patient)
	assert.Equal(t, "ARCHIVE-9", latest.Patient.MedicalRecordNumber)

	require.NoError(t, env.records.DeleteMedicalRecord(ctx, record.ID, ""))
	_, err = env.records.GetPatientRecord(ctx, patient.ID)
	requireKind(t, err, KindNotFound)
}
