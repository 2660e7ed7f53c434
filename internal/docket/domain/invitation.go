package domain

import "time"

type InvitationStatus string

const (
	InvitationPending  InvitationStatus = "pending"
	InvitationAccepted InvitationStatus = "accepted"
	InvitationExpired  InvitationStatus = "expired"
)

// DefaultInvitationTTL is how long an invitation link stays valid.
const DefaultInvitationTTL = 7 * 24 * time.Hour

type Invitation struct {
	ID             string
	Email          string
	Role           Role
	TokenHash      string // fingerprint; the raw token is never stored
	InvitedBy      string
	OrganizationID string
	Status         InvitationStatus
	CreatedAt      time.Time
	ExpiresAt      time.Time
	AcceptedAt     *time.Time
	AcceptedBy     string
	ResentAt       *time.Time
}

// ExpiredAt reports whether the invitation is past its expiry at now. The
// expiry instant itself is still valid.
func (i Invitation) ExpiredAt(now time.Time) bool {
	return now.After(i.ExpiresAt)
}
