package utils

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var (
	accessSecret string
	accessExpiry time.Duration
)

// InitJWT initializes the signing secret and the token lifetime
func InitJWT(secret string, expiry time.Duration) {
	accessSecret = secret
	accessExpiry = expiry
}

// Claims represents JWT custom claims
type Claims struct {
	StaffID string `json:"staff_id"`
	Service string `json:"service"`
	jwt.RegisteredClaims
}

// GenerateAccessToken signs a token identifying a staff member and their service.
// Every token carries its own ID, so two logins in the same second never share a token.
func GenerateAccessToken(staffID, service string) (string, error) {
	now := time.Now()
	claims := Claims{
		StaffID: staffID,
		Service: service,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			ExpiresAt: jwt.NewNumericDate(now.Add(accessExpiry)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(accessSecret))
}

// ValidateAccessToken validates and parses a JWT access token
func ValidateAccessToken(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		// Verify signing method
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(accessSecret), nil
	})

	if err != nil {
		return nil, err
	}

	if claims, ok := token.Claims.(*Claims); ok && token.Valid {
		return claims, nil
	}

	return nil, errors.New("invalid token")
}

// HashToken creates a SHA-256 hash of a token so the raw value is never kept in memory stores
func HashToken(token string) string {
	hash := sha256.Sum256([]byte(token))
	return hex.EncodeToString(hash[:])
}

// GetAccessTokenExpiry returns the access token lifetime
func GetAccessTokenExpiry() time.Duration {
	return accessExpiry
}
