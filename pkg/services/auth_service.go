package services

import (
	"log"

	"scrib/pkg/auth"
	"scrib/pkg/errors"
	"scrib/pkg/models"
)

// AuthService handles authentication business logic
type AuthService struct {
	authManager *auth.Manager
}

// NewAuthService creates a new authentication service
func NewAuthService(authManager *auth.Manager) *AuthService {
	return &AuthService{
		authManager: authManager,
	}
}

// Login checks the credentials and opens a session
func (s *AuthService) Login(email, password string) (models.Session, error) {
	if email == "" || password == "" {
		err := errors.ErrMissingFields
		err.Log()
		return models.Session{}, err
	}

	if !s.authManager.CheckCredentials(email, password) {
		err := errors.ErrInvalidCredentials.WithContext("email", email)
		err.Log()
		return models.Session{}, err
	}

	session := s.authManager.CreateSession(email)
	log.Printf("User signed in: %s", email)
	return session, nil
}

// Guest opens a session without an identity
func (s *AuthService) Guest() models.Session {
	session := s.authManager.CreateSession("")
	log.Printf("Guest session started")
	return session
}

// Register validates the account creation form. Accounts are not stored;
// the only account that can sign in is the demo one.
func (s *AuthService) Register(name, email, password, confirm string) error {
	validator := errors.NewValidator()
	if result := validator.ValidateRegistration(name, email, password, confirm); !result.IsValid {
		err := result.GetFirstError()
		err.Log()
		return err
	}
	log.Printf("Registration accepted for %s", email)
	return nil
}

// Logout ends a session
func (s *AuthService) Logout(sessionID string) {
	s.authManager.DeleteSession(sessionID)
}
