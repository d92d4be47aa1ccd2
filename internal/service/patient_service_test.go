package service

import (
	"context"
	"testing"
	"time"

	"hospital-backoffice/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeletePatient_RefusedWhileHospitalized(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	room := env.room(t, "101", models.RoomTypeCabinet, 1)
	patient := env.patient(t, "P-1")
	stay := env.admit(t, patient.ID, room.ID)

	err := env.patients.DeletePatient(ctx, patient.ID, "")
	requireKind(t, err, KindConflict)

	_, err = env.patients.GetPatient(ctx, patient.ID)
	require.NoError(t, err)
	stored, err := env.stays.GetHospitalization(ctx, stay.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StayStatusActive, stored.Status)
	require.NotNil(t, stored.Patient)

	now := time.Now().UTC()
	_, err = env.stays.UpdateHospitalization(ctx, stay.ID, UpdateStayInput{DischargeDate: &now}, "")
	require.NoError(t, err)

	require.NoError(t, env.patients.DeletePatient(ctx, patient.ID, ""))
	_, err = env.patients.GetPatient(ctx, patient.ID)
	requireKind(t, err, KindNotFound)

	availability, err := env.rooms.Availability(ctx, room.ID)
	require.NoError(t, err)
	assert.True(t, availability.Available)
}

func TestDeletePatient_Missing(t *testing.T) {
	env := newTestEnv(t)
	requireKind(t, env.patients.DeletePatient(context.Background(), "missing", ""), KindNotFound)
}
