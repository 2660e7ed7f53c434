package store

import (
	"context"
	"errors"
	"time"

	"github.com/aussiebroadwan/docket/internal/docket/domain"
)

var (
	ErrNotFound      = errors.New("store: not found")
	ErrAlreadyExists = errors.New("store: already exists")
)

// Store is the root data access interface, implemented by the sqlite and
// postgres drivers. Repositories hang off it so a transaction scoped Store
// can hand out the same repositories bound to the transaction.
type Store interface {
	Users() Users
	Sessions() Sessions
	PasswordResets() PasswordResets
	Tasks() Tasks
	Timesheets() Timesheets
	Invitations() Invitations

	ApplyMigrations() error

	// Tx starts a read/write transaction. The caller MUST Commit or Rollback.
	Tx(ctx context.Context) (Tx, error)

	// WithTx runs fn in a transaction, committing when fn returns nil and
	// rolling back otherwise. Prefer it over Tx.
	//
	// Inside fn use only the tx argument. The sqlite driver runs on a single
	// connection, so touching the outer Store from fn blocks forever.
	WithTx(ctx context.Context, fn func(tx Tx) error) error

	Close() error
	Ping(ctx context.Context) error
}

// Tx is a transaction scoped Store.
type Tx interface {
	Store
	Commit() error
	Rollback() error
}

type Users interface {
	// CreateUser inserts u. A taken email is ErrAlreadyExists.
	CreateUser(ctx context.Context, u domain.User) error

	GetUserByID(ctx context.Context, id string) (domain.User, error)

	// GetUserByEmail expects an already normalised email.
	GetUserByEmail(ctx context.Context, email string) (domain.User, error)

	// ListUsers returns every user ordered by full name.
	ListUsers(ctx context.Context) ([]domain.User, error)

	UpdateProfile(ctx context.Context, id, fullName, phoneNumber string, at time.Time) error
	UpdateRole(ctx context.Context, id string, role domain.Role, at time.Time) error
	UpdatePasswordHash(ctx context.Context, id, hash string, at time.Time) error

	CountByRole(ctx context.Context, role domain.Role) (int, error)

	// IsEmpty reports whether no user exists yet (bootstrap).
	IsEmpty(ctx context.Context) (bool, error)
}

type Sessions interface {
	CreateSession(ctx context.Context, s domain.Session) error
	GetSessionByID(ctx context.Context, id string) (domain.Session, error)

	// RevokeSession sets revoked_at if not already set. Unknown or already
	// revoked sessions are ErrNotFound.
	RevokeSession(ctx context.Context, id string, at time.Time) error

	// RevokeUserSessions revokes every live session of a user.
	RevokeUserSessions(ctx context.Context, userID string, at time.Time) error

	// DeleteStaleSessions removes expired and revoked sessions.
	DeleteStaleSessions(ctx context.Context, now time.Time) (int64, error)
}

type PasswordResets interface {
	CreatePasswordReset(ctx context.Context, pr domain.PasswordReset) error

	// GetUnusedPasswordResetByHash returns a reset that has not been used.
	// Expiry is left to the caller.
	GetUnusedPasswordResetByHash(ctx context.Context, hash string) (domain.PasswordReset, error)

	// MarkPasswordResetUsed consumes the reset. A reset already used is
	// ErrNotFound, so two concurrent resets cannot both win.
	MarkPasswordResetUsed(ctx context.Context, id string, at time.Time) error

	// DeleteStalePasswordResets removes used and expired resets.
	DeleteStalePasswordResets(ctx context.Context, now time.Time) (int64, error)
}

type Tasks interface {
	CreateTask(ctx context.Context, t domain.Task) error
	GetTaskByID(ctx context.Context, id string) (domain.Task, error)

	// ListTasks applies f and orders by due date, then creation time.
	ListTasks(ctx context.Context, f domain.TaskFilter) ([]domain.Task, error)

	// UpdateTask overwrites every mutable column of t.ID.
	UpdateTask(ctx context.Context, t domain.Task) error

	DeleteTask(ctx context.Context, id string) error
}

type Timesheets interface {
	// CreateTimesheet inserts ts. One sheet per employee and week, a second
	// is ErrAlreadyExists.
	CreateTimesheet(ctx context.Context, ts domain.Timesheet) error

	GetTimesheetByID(ctx context.Context, id string) (domain.Timesheet, error)
	GetTimesheetForWeek(ctx context.Context, employeeID string, weekStart domain.Date) (domain.Timesheet, error)

	// UpdateSubmission replaces the task list and lunch hours of a sheet that
	// is not approved. An approved or unknown sheet is ErrNotFound.
	UpdateSubmission(ctx context.Context, id string, taskIDs []string, lunchHours float64, at time.Time) error

	// Approve flips approved on a sheet that is not yet approved. An approved
	// or unknown sheet is ErrNotFound.
	Approve(ctx context.Context, id, approverID, comments string, at time.Time) error

	ListTimesheetsForWeek(ctx context.Context, weekStart domain.Date) ([]domain.Timesheet, error)
}

type Invitations interface {
	// CreateInvitation inserts inv. A second pending invitation for the same
	// email is ErrAlreadyExists.
	CreateInvitation(ctx context.Context, inv domain.Invitation) error

	GetInvitationByID(ctx context.Context, id string) (domain.Invitation, error)
	GetPendingInvitationByTokenHash(ctx context.Context, hash string) (domain.Invitation, error)
	GetPendingInvitationByEmail(ctx context.Context, email string) (domain.Invitation, error)

	// ListPendingInvitations returns pending invitations newest first,
	// restricted to one organization when organizationID is not empty.
	ListPendingInvitations(ctx context.Context, organizationID string) ([]domain.Invitation, error)

	// AcceptInvitation moves a pending, unexpired invitation to accepted.
	// Anything else is ErrNotFound.
	AcceptInvitation(ctx context.Context, id, userID string, at time.Time) error

	// ExpireInvitation moves a pending invitation to expired.
	ExpireInvitation(ctx context.Context, id string) error

	// RotateInvitationToken gives a pending invitation a new token and expiry.
	RotateInvitationToken(ctx context.Context, id, tokenHash string, expiresAt, resentAt time.Time) error

	DeleteInvitation(ctx context.Context, id string) error

	// ExpireStaleInvitations expires every pending invitation past its expiry
	// and returns how many changed.
	ExpireStaleInvitations(ctx context.Context, now time.Time) (int64, error)
}
