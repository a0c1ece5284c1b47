// internal/service/auth_service.go
package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/gurkanbulca/choreboard/internal/models"
	"github.com/gurkanbulca/choreboard/pkg/auth"
)

// AuthService is the account registry. It does not hash passwords unless
// given a hashing verifier and has no session expiry.
type AuthService struct {
	board          *Board
	verifier       auth.CredentialVerifier
	securityLogger *SecurityLogger
}

func NewAuthService(board *Board, verifier auth.CredentialVerifier) *AuthService {
	if verifier == nil {
		verifier = auth.PlainVerifier{}
	}
	return &AuthService{
		board:          board,
		verifier:       verifier,
		securityLogger: board.security,
	}
}

// Register creates an account and signs it in.
func (s *AuthService) Register(ctx context.Context, displayName, email, password string) (*models.Session, error) {
	name := strings.TrimSpace(displayName)
	key := models.NormalizeEmail(email)
	if name == "" || key == "" || strings.TrimSpace(password) == "" {
		return nil, fmt.Errorf("%w: name, email and password are required", ErrInvalidInput)
	}

	var session models.Session
	err := s.board.commit(ctx, "register", func(next *models.Snapshot) error {
		if _, exists := next.Users[key]; exists {
			return ErrAlreadyExists
		}

		sealed, err := s.verifier.Seal(password)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}

		next.Users[key] = models.Account{DisplayName: name, Password: sealed}
		session = models.Session{Email: key, DisplayName: name}
		next.CurrentUser = &session
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrAlreadyExists) {
			s.securityLogger.LogRegisterRejected(ctx, key, "email already registered")
		}
		return nil, err
	}

	s.securityLogger.LogRegistered(ctx, key)
	return &session, nil
}

// SignIn establishes a session for an existing account.
func (s *AuthService) SignIn(ctx context.Context, email, password string) (*models.Session, error) {
	key := models.NormalizeEmail(email)
	if key == "" || password == "" {
		return nil, fmt.Errorf("%w: email and password are required", ErrInvalidInput)
	}

	var session models.Session
	err := s.board.commit(ctx, "sign_in", func(next *models.Snapshot) error {
		account, ok := next.Users[key]
		if !ok {
			s.securityLogger.LogLoginFailed(ctx, key, "no such account")
			return ErrInvalidCredentials
		}
		if !s.verifier.Verify(account.Password, password) {
			s.securityLogger.LogLoginFailed(ctx, key, "password mismatch")
			return ErrInvalidCredentials
		}

		session = models.Session{Email: key, DisplayName: account.DisplayName}
		next.CurrentUser = &session
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.securityLogger.LogLoginSuccess(ctx, key)
	return &session, nil
}

// SignOut clears the session. Only a failed save is reported.
func (s *AuthService) SignOut(ctx context.Context) error {
	var email string
	err := s.board.commit(ctx, "sign_out", func(next *models.Snapshot) error {
		if next.CurrentUser != nil {
			email = next.CurrentUser.Email
		}
		next.CurrentUser = nil
		return nil
	})
	if err != nil {
		return err
	}

	if email != "" {
		s.securityLogger.LogLogout(ctx, email)
	}
	return nil
}

// CurrentSession returns a copy of the signed-in identity, or nil.
func (s *AuthService) CurrentSession() *models.Session {
	var out *models.Session
	s.board.read(func(snap *models.Snapshot) {
		if snap.CurrentUser != nil {
			session := *snap.CurrentUser
			out = &session
		}
	})
	return out
}
