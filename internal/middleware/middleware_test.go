package middleware

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"hospital-backoffice/internal/config"
	"hospital-backoffice/internal/models"
	"hospital-backoffice/pkg/utils"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"
)

type revokedSet map[string]bool

func (r revokedSet) IsRevoked(token string) bool { return r[token] }

func init() {
	gin.SetMode(gin.TestMode)
	utils.InitJWT("middleware-test-secret", time.Hour)
}

func protectedRouter(revoked RevocationChecker, gate gin.HandlerFunc) *gin.Engine {
	r := gin.New()
	r.GET("/private", AuthMiddleware(revoked), gate, func(c *gin.Context) {
		utils.SuccessResponse(c, gin.H{"staff_id": StaffID(c)})
	})
	return r
}

func get(r http.Handler, path, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestAuthMiddleware(t *testing.T) {
	token, err := utils.GenerateAccessToken("staff-1", models.ServiceDoctor)
	require.NoError(t, err)
	revoked, err := utils.GenerateAccessToken("staff-2", models.ServiceDoctor)
	require.NoError(t, err)

	r := protectedRouter(revokedSet{revoked: true}, RequireService(models.ServiceDoctor))

	assert.Equal(t, http.StatusUnauthorized, get(r, "/private", "").Code)
	assert.Equal(t, http.StatusUnauthorized, get(r, "/private", "garbage").Code)
	assert.Equal(t, http.StatusUnauthorized, get(r, "/private", revoked).Code)

	rec := get(r, "/private", token)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "staff-1")

	req := httptest.NewRequest(http.MethodGet, "/private", nil)
	req.Header.Set("Authorization", "Token "+token)
	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRequireService(t *testing.T) {
	r := protectedRouter(revokedSet{}, RequireService(models.ServiceReceptionist))

	tests := []struct {
		service string
		want    int
	}{
		{models.ServiceReceptionist, http.StatusOK},
		{models.ServiceAdmin, http.StatusOK},
		{models.ServiceDoctor, http.StatusForbidden},
		{models.ServiceCleaning, http.StatusForbidden},
	}
	for _, tt := range tests {
		t.Run(tt.service, func(t *testing.T) {
			token, err := utils.GenerateAccessToken("staff-1", tt.service)
			require.NoError(t, err)
			assert.Equal(t, tt.want, get(r, "/private", token).Code)
		})
	}
}

func TestRequireService_WithoutAuth(t *testing.T) {
	r := gin.New()
	r.GET("/admin", RequireAdmin(), func(c *gin.Context) { c.Status(http.StatusOK) })

	assert.Equal(t, http.StatusUnauthorized, get(r, "/admin", "").Code)
}

func TestCORS(t *testing.T) {
	r := gin.New()
	r.Use(CORS(config.CORSConfig{AllowedOrigins: []string{"http://localhost:3000"}}))
	r.GET("/health", func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodOptions, "/health", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "http://localhost:3000", rec.Header().Get("Access-Control-Allow-Origin"))

	req = httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set("Origin", "http://evil.example")
	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestRateLimit(t *testing.T) {
	r := gin.New()
	r.POST("/login", RateLimit(NewIPRateLimiter(rate.Every(time.Hour), 2)), func(c *gin.Context) { c.Status(http.StatusOK) })

	codes := []int{}
	for i := 0; i < 3; i++ {
		req := httptest.NewRequest(http.MethodPost, "/login", nil)
		req.RemoteAddr = "10.0.0.1:1234"
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, req)
		codes = append(codes, rec.Code)
	}
	assert.Equal(t, []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests}, codes)

	req := httptest.NewRequest(http.MethodPost, "/login", nil)
	req.RemoteAddr = "10.0.0.2:1234"
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code, "other clients keep their own budget")
}

func TestRateLimit_IgnoresForwardedForFromUntrustedPeers(t *testing.T) {
	limiter := NewIPRateLimiter(rate.Every(time.Hour), 1)
	r := gin.New()
	require.NoError(t, r.SetTrustedProxies(nil))
	r.POST("/login", RateLimit(limiter), func(c *gin.Context) { c.Status(http.StatusOK) })

	rejected := 0
	for i := 0; i < 5; i++ {
		req := httptest.NewRequest(http.MethodPost, "/login", nil)
		req.RemoteAddr = "10.0.0.1:1234"
		req.Header.Set("X-Forwarded-For", "203.0.113."+strconv.Itoa(i))
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, req)
		if rec.Code == http.StatusTooManyRequests {
			rejected++
		}
	}
	assert.Equal(t, 4, rejected)
	assert.Equal(t, 1, limiter.Len())
}

func TestRequestLoggingAndRecovery(t *testing.T) {
	var buf bytes.Buffer
	logger := zerolog.New(&buf)

	r := gin.New()
	r.Use(RequestID(), Recovery(logger), Logger(logger))
	r.GET("/boom", func(c *gin.Context) { panic("kaboom") })
	r.GET("/ok", func(c *gin.Context) { c.Status(http.StatusOK) })

	rec := get(r, "/boom", "")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, buf.String(), "panic recovered")
	assert.NotEmpty(t, rec.Header().Get(HeaderRequestID))

	buf.Reset()
	req := httptest.NewRequest(http.MethodGet, "/ok", nil)
	req.Header.Set(HeaderRequestID, "req-42")
	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	assert.Equal(t, "req-42", rec.Header().Get(HeaderRequestID))
	assert.Contains(t, buf.String(), `"request_id":"req-42"`)
	assert.Contains(t, buf.String(), `"status":200`)
}
