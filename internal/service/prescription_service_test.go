package service

import (
	"context"
	"testing"

	"hospital-backoffice/internal/models"
	"hospital-backoffice/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreatePrescription(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	patient := env.patient(t, "P-1")
	doctor := env.doctor(t, "D-1", "0600000001")
	medications := []models.Medication{{Name: "Paracetamol", Dosage: "500mg", Duration: "5 days"}}

	_, err := env.prescriptions.CreatePrescription(ctx, PrescriptionInput{PatientID: patient.ID, PatientCode: "P-1", DoctorID: doctor.ID}, "")
	requireKind(t, err, KindInvalid)

	_, err = env.prescriptions.CreatePrescription(ctx, PrescriptionInput{PatientID: patient.ID, PatientCode: "P-2", DoctorID: doctor.ID, Medications: medications}, "")
	requireKind(t, err, KindInvalid)

	_, err = env.prescriptions.CreatePrescription(ctx, PrescriptionInput{PatientID: patient.ID, PatientCode: "P-1", DoctorID: "missing", Medications: medications}, "")
	requireKind(t, err, KindNotFound)

	prescription, err := env.prescriptions.CreatePrescription(ctx, PrescriptionInput{
		PatientID:        patient.ID,
		PatientCode:      "P-1",
		DoctorID:         doctor.ID,
		Medications:      medications,
		RecommendedTests: []string{"blood count"},
		Remarks:          "after meals",
	}, doctor.ID)
	require.NoError(t, err)
	assert.False(t, prescription.PrescribedAt.IsZero())
	require.Len(t, prescription.Medications, 1)
	assert.Equal(t, "Paracetamol", prescription.Medications[0].Name)
	require.NotNil(t, prescription.Patient)
	require.NotNil(t, prescription.Doctor)

	list, total, err := env.prescriptions.GetAllPrescriptions(ctx, repository.PrescriptionFilter{DoctorID: doctor.ID}, repositoryPage(10, 0))
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	assert.Equal(t, []string{"blood count"}, []string(list[0].RecommendedTests))

	medications = append(medications, models.Medication{Name: "Ibuprofen", Dosage: "200mg", Duration: "3 days"})
	updated, err := env.prescriptions.UpdatePrescription(ctx, prescription.ID, PrescriptionInput{
		PatientID: patient.ID, PatientCode: "P-1", DoctorID: doctor.ID, Medications: medications,
	}, doctor.ID)
	require.NoError(t, err)
	assert.Len(t, updated.Medications, 2)
	assert.Empty(t, updated.RecommendedTests)

	require.NoError(t, env.prescriptions.DeletePrescription(ctx, prescription.ID, doctor.ID))
	_, err = env.prescriptions.GetPrescription(ctx, prescription.ID)
	requireKind(t, err, KindNotFound)
}
