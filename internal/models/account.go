package models

import "strings"

// Account is keyed by normalized email in Snapshot.Users.
type Account struct {
	DisplayName string `json:"displayName"`
	Password    string `json:"password"` // sealed by the configured credential verifier
}

type Session struct {
	Email       string `json:"email"`
	DisplayName string `json:"displayName"`
}

// NormalizeEmail trims and lower-cases an email for use as an account key.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
