// pkg/auth/password.go
package auth

import (
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

// Credential schemes selectable through configuration.
const (
	SchemePlain  = "plain"
	SchemeBcrypt = "bcrypt"
)

var ErrUnknownScheme = errors.New("unknown credential scheme")

// CredentialVerifier seals passwords for storage and checks them at sign-in.
type CredentialVerifier interface {
	Seal(password string) (string, error)
	Verify(sealed, password string) bool
}

// PlainVerifier stores passwords as given and compares them by exact
// equality. It is not a security mechanism.
type PlainVerifier struct{}

func (PlainVerifier) Seal(password string) (string, error) {
	return password, nil
}

func (PlainVerifier) Verify(sealed, password string) bool {
	return sealed == password
}

// PasswordManager handles password hashing with bcrypt
type PasswordManager struct {
	cost int
}

// NewPasswordManager creates a new password manager with default settings
func NewPasswordManager() *PasswordManager {
	return NewPasswordManagerWithCost(12)
}

// NewPasswordManagerWithCost clamps cost into bcrypt's accepted range.
func NewPasswordManagerWithCost(cost int) *PasswordManager {
	if cost < bcrypt.MinCost {
		cost = bcrypt.MinCost
	}
	if cost > bcrypt.MaxCost {
		cost = bcrypt.MaxCost
	}
	return &PasswordManager{cost: cost}
}

// HashPassword hashes a password using bcrypt
func (pm *PasswordManager) HashPassword(password string) (string, error) {
	hashedBytes, err := bcrypt.GenerateFromPassword([]byte(password), pm.cost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}

	return string(hashedBytes), nil
}

// ComparePassword compares a password with a hash
func (pm *PasswordManager) ComparePassword(hashedPassword, password string) error {
	return bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(password))
}

func (pm *PasswordManager) Seal(password string) (string, error) {
	return pm.HashPassword(password)
}

func (pm *PasswordManager) Verify(sealed, password string) bool {
	return pm.ComparePassword(sealed, password) == nil
}

// NewVerifier returns the verifier for a configured scheme.
func NewVerifier(scheme string, bcryptCost int) (CredentialVerifier, error) {
	switch strings.ToLower(strings.TrimSpace(scheme)) {
	case SchemePlain, "":
		return PlainVerifier{}, nil
	case SchemeBcrypt:
		return NewPasswordManagerWithCost(bcryptCost), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownScheme, scheme)
	}
}
