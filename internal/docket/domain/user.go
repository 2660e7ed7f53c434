package domain

import (
	"regexp"
	"strings"
	"time"
)

type User struct {
	ID           string
	Email        string // lowercased, unique
	FullName     string
	Role         Role
	PhoneNumber  string
	PasswordHash string // argon2id, PHC encoded
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Session is one login. Access tokens carry its id in the sid claim, and the
// session outlives any single token.
type Session struct {
	ID        string
	UserID    string
	CreatedAt time.Time
	ExpiresAt time.Time
	RevokedAt *time.Time
}

// Active reports whether the session may still authenticate requests at now.
func (s Session) Active(now time.Time) bool {
	return s.RevokedAt == nil && now.Before(s.ExpiresAt)
}

type PasswordReset struct {
	ID        string
	UserID    string
	TokenHash string
	ExpiresAt time.Time
	UsedAt    *time.Time
	CreatedAt time.Time
}

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// NormalizeEmail trims and lowercases an address. Emails are compared and
// stored in this form.
func NormalizeEmail(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// ValidEmail is a shape check only: something@something.tld, no whitespace.
func ValidEmail(s string) bool {
	return emailPattern.MatchString(s)
}
