package service

import (
	"context"
	"os"
	"testing"
	"time"

	"hospital-backoffice/internal/models"
	"hospital-backoffice/pkg/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestMain(m *testing.M) {
	utils.InitJWT("service-test-secret", time.Hour)
	utils.SetPasswordCost(bcrypt.MinCost)
	os.Exit(m.Run())
}

func TestLogin_Failures(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	doctor := env.doctor(t, "D-1", "0600000001")

	_, err := env.auth.Login(ctx, "Nobody", "secret1", models.ServiceDoctor)
	requireKind(t, err, KindNotFound)

	_, err = env.auth.Login(ctx, doctor.Name, "wrong", models.ServiceDoctor)
	requireKind(t, err, KindInvalid)

	_, err = env.auth.Login(ctx, doctor.Name, "secret1", models.ServiceAdmin)
	requireKind(t, err, KindInvalid)
}

func TestLogoutRevokesToken(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	doctor := env.doctor(t, "D-1", "0600000001")

	resp, err := env.auth.Login(ctx, doctor.Name, "secret1", models.ServiceDoctor)
	require.NoError(t, err)
	assert.Equal(t, int64(3600), resp.ExpiresIn)
	assert.False(t, env.revoked.IsRevoked(resp.AccessToken))

	require.NoError(t, env.auth.Logout(ctx, resp.AccessToken))
	assert.True(t, env.revoked.IsRevoked(resp.AccessToken))

	relogin, err := env.auth.Login(ctx, doctor.Name, "secret1", models.ServiceDoctor)
	require.NoError(t, err)
	assert.NotEqual(t, resp.AccessToken, relogin.AccessToken)
	assert.False(t, env.revoked.IsRevoked(relogin.AccessToken))

	requireKind(t, env.auth.Logout(ctx, "garbage"), KindUnauthorized)

	me, err := env.auth.Me(ctx, doctor.ID)
	require.NoError(t, err)
	assert.Equal(t, doctor.Name, me.Name)

	_, err = env.auth.Me(ctx, "deleted")
	requireKind(t, err, KindUnauthorized)
}

func TestRevocationList_IgnoresExpiredTokens(t *testing.T) {
	list := NewRevocationList()

	list.Revoke("old", time.Now().Add(-time.Minute))
	list.Revoke("fresh", time.Now().Add(time.Minute))

	assert.False(t, list.IsRevoked("old"))
	assert.True(t, list.IsRevoked("fresh"))
}
