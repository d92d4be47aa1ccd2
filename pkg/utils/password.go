package utils

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// MinPasswordLength is the shortest password a staff account accepts
const MinPasswordLength = 6

var bcryptCost = 12

// ErrWeakPassword is returned by CheckPasswordPolicy
var ErrWeakPassword = fmt.Errorf("password must be at least %d characters", MinPasswordLength)

// SetPasswordCost overrides the bcrypt cost; tests lower it to bcrypt.MinCost
func SetPasswordCost(cost int) {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		return
	}
	bcryptCost = cost
}

// CheckPasswordPolicy rejects passwords that are too short or too long for bcrypt
func CheckPasswordPolicy(password string) error {
	if len(password) < MinPasswordLength {
		return ErrWeakPassword
	}
	if len(password) > 72 {
		return errors.New("password must be at most 72 bytes")
	}
	return nil
}

// HashPassword generates a bcrypt hash of a staff password
func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	return string(bytes), err
}

// ComparePassword reports whether password matches the stored bcrypt hash
func ComparePassword(hashedPassword, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(password)) == nil
}
