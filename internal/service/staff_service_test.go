package service

import (
	"context"
	"testing"

	"hospital-backoffice/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validStaff(code, contact string) CreateStaffInput {
	return CreateStaffInput{
		Name:         "Staff " + code,
		StaffCode:    code,
		Service:      models.ServiceReceptionist,
		WorkingHours: "08:00 - 17:00",
		Contact:      contact,
		Category:     models.CategoryNonCaregiver,
		WorkingDays:  []string{"Monday", "Tuesday"},
		Password:     "secret1",
	}
}

func TestCreateStaff_ValidationAndUniqueness(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	staff, err := env.staff.CreateStaff(ctx, validStaff("S-1", "0600000001"), "")
	require.NoError(t, err)
	assert.NotEqual(t, "secret1", staff.PasswordHash)

	bad := validStaff("S-2", "0600000002")
	bad.WorkingHours = "8h-17h"
	_, err = env.staff.CreateStaff(ctx, bad, "")
	requireKind(t, err, KindInvalid)

	bad = validStaff("S-2", "12")
	_, err = env.staff.CreateStaff(ctx, bad, "")
	requireKind(t, err, KindInvalid)

	bad = validStaff("S-2", "0600000002")
	bad.Service = "Janitor"
	_, err = env.staff.CreateStaff(ctx, bad, "")
	requireKind(t, err, KindInvalid)

	_, err = env.staff.CreateStaff(ctx, validStaff("S-1", "0600000003"), "")
	requireKind(t, err, KindConflict)

	_, err = env.staff.CreateStaff(ctx, validStaff("S-3", "0600000001"), "")
	requireKind(t, err, KindConflict)
}

func TestUpdateStaff_PartialAndRevalidated(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	staff, err := env.staff.CreateStaff(ctx, validStaff("S-1", "0600000001"), "")
	require.NoError(t, err)
	_, err = env.staff.CreateStaff(ctx, validStaff("S-2", "0600000002"), "")
	require.NoError(t, err)

	hours := "09:00 - 18:00"
	updated, err := env.staff.UpdateStaff(ctx, staff.ID, UpdateStaffInput{WorkingHours: &hours}, "")
	require.NoError(t, err)
	assert.Equal(t, hours, updated.WorkingHours)
	assert.Equal(t, "S-1", updated.StaffCode)

	badHours := "all day"
	_, err = env.staff.UpdateStaff(ctx, staff.ID, UpdateStaffInput{WorkingHours: &badHours}, "")
	requireKind(t, err, KindInvalid)

	taken := "0600000002"
	_, err = env.staff.UpdateStaff(ctx, staff.ID, UpdateStaffInput{Contact: &taken}, "")
	requireKind(t, err, KindConflict)

	short := "abc"
	_, err = env.staff.UpdateStaff(ctx, staff.ID, UpdateStaffInput{Password: &short}, "")
	requireKind(t, err, KindInvalid)
}

func TestGetDoctors_CacheInvalidatedOnWrite(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	env.doctor(t, "D-1", "0600000001")

	doctors, err := env.staff.GetDoctors(ctx)
	require.NoError(t, err)
	assert.Len(t, doctors, 1)

	env.doctor(t, "D-2", "0600000002")

	doctors, err = env.staff.GetDoctors(ctx)
	require.NoError(t, err)
	assert.Len(t, doctors, 2)
}

func TestDeleteStaff(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	staff, err := env.staff.CreateStaff(ctx, validStaff("S-1", "0600000001"), "")
	require.NoError(t, err)

	requireKind(t, env.staff.DeleteStaff(ctx, staff.ID, staff.ID), KindForbidden)
	require.NoError(t, env.staff.DeleteStaff(ctx, staff.ID, "admin-1"))
	requireKind(t, env.staff.DeleteStaff(ctx, staff.ID, "admin-1"), KindNotFound)
}

func TestResetPasswordAndLogin(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	staff, err := env.staff.CreateStaff(ctx, validStaff("S-1", "0600000001"), "")
	require.NoError(t, err)

	requireKind(t, env.staff.ResetPassword(ctx, "S-1", "abc", ""), KindInvalid)
	requireKind(t, env.staff.ResetPassword(ctx, "S-9", "newsecret", ""), KindNotFound)
	require.NoError(t, env.staff.ResetPassword(ctx, "S-1", "newsecret", ""))

	_, err = env.auth.Login(ctx, staff.Name, "secret1", models.ServiceReceptionist)
	requireKind(t, err, KindInvalid)

	resp, err := env.auth.Login(ctx, staff.Name, "newsecret", models.ServiceReceptionist)
	require.NoError(t, err)
	assert.NotEmpty(t, resp.AccessToken)
	assert.Equal(t, staff.ID, resp.Staff.ID)
}
