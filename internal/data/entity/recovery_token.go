package entity

import (
	"time"
)

type TokenType string

const (
	TokenTypePasswordReset     TokenType = "password_reset"
	TokenTypeEmailVerification TokenType = "email_verification"
)

type RecoveryToken struct {
	BaseSimple
	AccountID int64     `db:"account_id"`
	Token     string    `db:"token"`
	TokenType TokenType `db:"token_type"`
	ExpiresAt time.Time `db:"expires_at"`
	Used      bool      `db:"is_used"`
}

// Valid: not yet used and not past expiry. Used is monotonic, a redeemed
// token never becomes valid again.
func (t *RecoveryToken) Valid(now time.Time) bool {
	return !t.Used && now.Before(t.ExpiresAt)
}
