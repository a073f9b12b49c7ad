package models

import "time"

const (
	PurposeEmailVerification = "email_verification"
	PurposePasswordReset     = "password_reset"
)

// VerificationCode is one row per sent code. Only the bcrypt hash of the
// code is stored.
type VerificationCode struct {
	ID        int64     `json:"id"`
	UserID    int       `json:"user_id"`
	Purpose   string    `json:"purpose"`
	CodeHash  string    `json:"-"`
	SentAt    time.Time `json:"sent_at"`
	ExpiresAt time.Time `json:"expires_at"`
	Confirmed bool      `json:"confirmed"`
	Attempts  int       `json:"attempts"`
}
