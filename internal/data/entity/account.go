package entity

import (
	"time"
)

type Account struct {
	BaseNoDelete
	Email            string     `db:"email"`
	PasswordHash     string     `db:"password"`
	GivenName        string     `db:"given_name"`
	FamilyName       string     `db:"family_name"`
	Phone            *string    `db:"phone"`
	BirthDate        *time.Time `db:"birth_date"`
	Active           bool       `db:"active"`
	EmailVerified    bool       `db:"email_verified"`
	FailedLoginCount int        `db:"failed_login_count"`
	LockedUntil      *time.Time `db:"locked_until"`
	LastAccessAt     *time.Time `db:"last_access_at"`
}

// Locked reports whether the account is inside an active lockout window.
func (a *Account) Locked(now time.Time) bool {
	return a.LockedUntil != nil && a.LockedUntil.After(now)
}

// Enabled: active AND email verified AND not locked.
func (a *Account) Enabled(now time.Time) bool {
	return a.Active && a.EmailVerified && !a.Locked(now)
}

func (a *Account) FullName() string {
	if a.FamilyName == "" {
		return a.GivenName
	}
	return a.GivenName + " " + a.FamilyName
}
