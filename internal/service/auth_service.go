package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"hospital-backoffice/internal/models"
	"hospital-backoffice/internal/repository"
	"hospital-backoffice/pkg/utils"

	"github.com/patrickmn/go-cache"
)

type AuthService struct {
	staffRepo *repository.StaffRepository
	auditRepo *repository.AuditRepository
	revoked   *RevocationList
}

func NewAuthService(staffRepo *repository.StaffRepository, auditRepo *repository.AuditRepository, revoked *RevocationList) *AuthService {
	return &AuthService{
		staffRepo: staffRepo,
		auditRepo: auditRepo,
		revoked:   revoked,
	}
}

// LoginResponse represents the response structure for login
type LoginResponse struct {
	AccessToken string        `json:"access_token"`
	ExpiresIn   int64         `json:"expires_in"`
	Staff       *models.Staff `json:"staff"`
}

// Login authenticates a staff member of the given service and returns an access token
func (s *AuthService) Login(ctx context.Context, name, password, service string) (*LoginResponse, error) {
	staff, err := s.staffRepo.FindStaffByName(ctx, name)
	if err != nil {
		return nil, lookup(err, "staff member")
	}

	if !utils.ComparePassword(staff.PasswordHash, password) {
		return nil, invalid("incorrect password")
	}
	if staff.Service != service {
		return nil, invalid("%s does not belong to the %s service", staff.Name, service)
	}

	accessToken, err := utils.GenerateAccessToken(staff.ID, staff.Service)
	if err != nil {
		return nil, fmt.Errorf("failed to generate access token: %w", err)
	}

	_ = s.auditRepo.CreateAuditLog(ctx, actorRef(staff.ID), "staff_login", fmt.Sprintf("Staff %s logged in", staff.Name))

	return &LoginResponse{
		AccessToken: accessToken,
		ExpiresIn:   int64(utils.GetAccessTokenExpiry().Seconds()),
		Staff:       staff,
	}, nil
}

// Logout revokes an access token until it expires on its own
func (s *AuthService) Logout(ctx context.Context, token string) error {
	claims, err := utils.ValidateAccessToken(token)
	if err != nil {
		return unauthorized("invalid or expired token")
	}

	s.revoked.Revoke(token, claims.ExpiresAt.Time)
	_ = s.auditRepo.CreateAuditLog(ctx, actorRef(claims.StaffID), "staff_logout", "Access token revoked")
	return nil
}

// Me returns the authenticated staff member
func (s *AuthService) Me(ctx context.Context, staffID string) (*models.Staff, error) {
	staff, err := s.staffRepo.GetStaffByID(ctx, staffID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, unauthorized("account no longer exists")
		}
		return nil, err
	}
	return staff, nil
}

// RevocationList remembers logged out tokens in memory until they expire.
// It is not persisted: a restart forgets every revocation.
type RevocationList struct {
	tokens *cache.Cache
}

func NewRevocationList() *RevocationList {
	return &RevocationList{tokens: cache.New(cache.NoExpiration, 10*time.Minute)}
}

// Revoke marks a token as unusable until the given expiry
func (r *RevocationList) Revoke(token string, expiresAt time.Time) {
	ttl := time.Until(expiresAt)
	if ttl <= 0 {
		return
	}
	r.tokens.Set(utils.HashToken(token), struct{}{}, ttl)
}

// IsRevoked reports whether the token was revoked by a logout
func (r *RevocationList) IsRevoked(token string) bool {
	_, found := r.tokens.Get(utils.HashToken(token))
	return found
}
