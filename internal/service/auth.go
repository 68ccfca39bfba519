package service

import "crypto/subtle"

// AuthService checks the shared admin secret
type AuthService struct {
	adminPassword string
}

// NewAuthService creates a new auth service
func NewAuthService(adminPassword string) *AuthService {
	return &AuthService{adminPassword: adminPassword}
}

// CheckPassword verifies if provided password matches.
// An unset secret never matches.
func (s *AuthService) CheckPassword(password string) bool {
	if s.adminPassword == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(password), []byte(s.adminPassword)) == 1
}
