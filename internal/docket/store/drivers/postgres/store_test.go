package postgres_test

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/aussiebroadwan/docket/internal/docket/domain"
	"github.com/aussiebroadwan/docket/internal/docket/store"
	"github.com/aussiebroadwan/docket/internal/docket/store/drivers/postgres"
	"github.com/aussiebroadwan/docket/pkg/idx"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

/*
 * These tests run against a real postgres in a container. They are skipped
 * with -short and when docker is not reachable.
 */

var (
	base  = time.Date(2025, 12, 8, 9, 0, 0, 0, time.UTC)
	pgURL string
)

func TestMain(m *testing.M) {
	flag.Parse()
	if testing.Short() {
		os.Exit(m.Run())
	}

	ctx := context.Background()
	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "postgres:16-alpine",
			ExposedPorts: []string{"5432/tcp"},
			Env: map[string]string{
				"POSTGRES_USER":     "docket",
				"POSTGRES_PASSWORD": "docket",
				"POSTGRES_DB":       "docket",
			},
			// postgres logs this twice: once for the init run, once for real
			WaitingFor: wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60 * time.Second),
		},
		Started: true,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "postgres container unavailable, skipping: %v\n", err)
		os.Exit(m.Run())
	}

	host, _ := container.Host(ctx)
	port, _ := container.MappedPort(ctx, "5432")
	pgURL = fmt.Sprintf("postgres://docket:docket@%s:%s/docket?sslmode=disable", host, port.Port())

	code := m.Run()
	_ = container.Terminate(ctx)
	os.Exit(code)
}

// newStore returns a migrated store with every table emptied.
func newStore(t *testing.T) *postgres.Store {
	t.Helper()
	if pgURL == "" {
		t.Skip("postgres not available")
	}
	ctx := context.Background()
	s, err := postgres.NewStore(ctx, pgURL)
	require.NoError(t, err)
	require.NoError(t, s.ApplyMigrations())
	require.NoError(t, s.Truncate(ctx))
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func seedUser(t *testing.T, s store.Store, email string, role domain.Role) domain.User {
	t.Helper()
	u := domain.User{
		ID:           idx.New().String(),
		Email:        email,
		FullName:     "User " + email,
		Role:         role,
		PasswordHash: "$argon2id$fake",
		CreatedAt:    base,
		UpdatedAt:    base,
	}
	require.NoError(t, s.Users().CreateUser(context.Background(), u))
	return u
}

func TestUsers(t *testing.T) {
	ctx := context.Background()
	s := newStore(t)

	empty, err := s.Users().IsEmpty(ctx)
	require.NoError(t, err)
	require.True(t, empty)

	ada := seedUser(t, s, "ada@firm.com", domain.RoleOrgAdmin)
	seedUser(t, s, "bob@firm.com", domain.RoleAttorney)

	dup := ada
	dup.ID = idx.New().String()
	require.ErrorIs(t, s.Users().CreateUser(ctx, dup), store.ErrAlreadyExists)

	got, err := s.Users().GetUserByEmail(ctx, "ada@firm.com")
	require.NoError(t, err)
	require.Equal(t, ada.ID, got.ID)
	require.True(t, got.CreatedAt.Equal(base))

	_, err = s.Users().GetUserByID(ctx, "missing")
	require.ErrorIs(t, err, store.ErrNotFound)

	require.NoError(t, s.Users().UpdateRole(ctx, ada.ID, domain.RoleLegalManager, base.Add(time.Hour)))
	n, err := s.Users().CountByRole(ctx, domain.RoleLegalManager)
	require.NoError(t, err)
	require.Equal(t, 1, n)

	require.ErrorIs(t, s.Users().UpdateProfile(ctx, "missing", "x", "", base), store.ErrNotFound)

	all, err := s.Users().ListUsers(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
}

func TestSessions(t *testing.T) {
	ctx := context.Background()
	s := newStore(t)
	u := seedUser(t, s, "ada@firm.com", domain.RoleAttorney)

	sess := domain.Session{ID: idx.New().String(), UserID: u.ID, CreatedAt: base, ExpiresAt: base.Add(time.Hour)}
	require.NoError(t, s.Sessions().CreateSession(ctx, sess))

	require.NoError(t, s.Sessions().RevokeSession(ctx, sess.ID, base.Add(time.Minute)))
	require.ErrorIs(t, s.Sessions().RevokeSession(ctx, sess.ID, base.Add(time.Minute)), store.ErrNotFound)

	got, err := s.Sessions().GetSessionByID(ctx, sess.ID)
	require.NoError(t, err)
	require.NotNil(t, got.RevokedAt)
	require.False(t, got.Active(base.Add(2*time.Minute)))

	n, err := s.Sessions().DeleteStaleSessions(ctx, base)
	require.NoError(t, err)
	require.EqualValues(t, 1, n)
}

func TestTasks(t *testing.T) {
	ctx := context.Background()
	s := newStore(t)
	u := seedUser(t, s, "ada@firm.com", domain.RoleAttorney)

	mk := func(title, due string, status domain.TaskStatus, prio int) domain.Task {
		task := domain.Task{
			ID:         idx.New().String(),
			Title:      title,
			DueDate:    domain.MustParseDate(due),
			Status:     status,
			AssigneeID: u.ID,
			Priority:   prio,
			CreatedBy:  u.ID,
			CreatedAt:  base,
			UpdatedAt:  base,
		}
		require.NoError(t, s.Tasks().CreateTask(ctx, task))
		return task
	}
	a := mk("brief", "2025-12-09", domain.TaskPending, 3)
	mk("filing", "2025-12-08", domain.TaskCompleted, 1)
	mk("later", "2025-12-20", domain.TaskInProgress, 5)

	all, err := s.Tasks().ListTasks(ctx, domain.TaskFilter{})
	require.NoError(t, err)
	require.Len(t, all, 3)
	require.Equal(t, "filing", all[0].Title)
	require.Empty(t, all[0].ReviewerID)

	week, err := s.Tasks().ListTasks(ctx, domain.TaskFilter{
		DueFrom:  domain.MustParseDate("2025-12-08"),
		DueTo:    domain.MustParseDate("2025-12-14"),
		Statuses: []domain.TaskStatus{domain.TaskPending, domain.TaskCompleted},
	})
	require.NoError(t, err)
	require.Len(t, week, 2)

	byPrio, err := s.Tasks().ListTasks(ctx, domain.TaskFilter{Priorities: []int{5}})
	require.NoError(t, err)
	require.Len(t, byPrio, 1)

	a.Status = domain.TaskCompleted
	a.ActualHours = 2.5
	a.UpdatedAt = base.Add(time.Hour)
	require.NoError(t, s.Tasks().UpdateTask(ctx, a))

	got, err := s.Tasks().GetTaskByID(ctx, a.ID)
	require.NoError(t, err)
	require.Equal(t, domain.TaskCompleted, got.Status)
	require.Equal(t, "2025-12-09", got.DueDate.String())
	require.InDelta(t, 2.5, got.ActualHours, 1e-9)

	require.NoError(t, s.Tasks().DeleteTask(ctx, a.ID))
	require.ErrorIs(t, s.Tasks().DeleteTask(ctx, a.ID), store.ErrNotFound)
}

func TestTimesheets(t *testing.T) {
	ctx := context.Background()
	s := newStore(t)
	emp := seedUser(t, s, "emp@firm.com", domain.RoleAttorney)
	boss := seedUser(t, s, "boss@firm.com", domain.RoleLegalManager)

	week := domain.MustParseDate("2025-12-08")
	ts := domain.Timesheet{
		ID:         idx.New().String(),
		EmployeeID: emp.ID,
		WeekStart:  week,
		WeekEnd:    domain.WeekEnd(week),
		TaskIDs:    []string{"t1", "t2"},
		LunchHours: 5,
		CreatedAt:  base,
		UpdatedAt:  base,
	}
	require.NoError(t, s.Timesheets().CreateTimesheet(ctx, ts))

	dup := ts
	dup.ID = idx.New().String()
	require.ErrorIs(t, s.Timesheets().CreateTimesheet(ctx, dup), store.ErrAlreadyExists)

	require.NoError(t, s.Timesheets().UpdateSubmission(ctx, ts.ID, nil, 2.5, base.Add(time.Hour)))
	got, err := s.Timesheets().GetTimesheetForWeek(ctx, emp.ID, week)
	require.NoError(t, err)
	require.Empty(t, got.TaskIDs)
	require.NotNil(t, got.TaskIDs)

	require.NoError(t, s.Timesheets().Approve(ctx, ts.ID, boss.ID, "ok", base.Add(2*time.Hour)))
	require.ErrorIs(t, s.Timesheets().Approve(ctx, ts.ID, boss.ID, "again", base), store.ErrNotFound)
	require.ErrorIs(t, s.Timesheets().UpdateSubmission(ctx, ts.ID, []string{"t3"}, 0, base), store.ErrNotFound)

	list, err := s.Timesheets().ListTimesheetsForWeek(ctx, week)
	require.NoError(t, err)
	require.Len(t, list, 1)
	require.True(t, list[0].Approved)
	require.Equal(t, boss.ID, list[0].ApprovedBy)
}

func TestInvitations(t *testing.T) {
	ctx := context.Background()
	s := newStore(t)
	admin := seedUser(t, s, "admin@firm.com", domain.RoleOrgAdmin)

	inv := domain.Invitation{
		ID:        idx.New().String(),
		Email:     "new@firm.com",
		Role:      domain.RoleCandidateAttorney,
		TokenHash: "hash-1",
		InvitedBy: admin.ID,
		Status:    domain.InvitationPending,
		CreatedAt: base,
		ExpiresAt: base.Add(domain.DefaultInvitationTTL),
	}
	require.NoError(t, s.Invitations().CreateInvitation(ctx, inv))

	second := inv
	second.ID = idx.New().String()
	second.TokenHash = "hash-2"
	require.ErrorIs(t, s.Invitations().CreateInvitation(ctx, second), store.ErrAlreadyExists)

	require.NoError(t, s.Invitations().RotateInvitationToken(ctx, inv.ID, "hash-3", base.Add(48*time.Hour), base.Add(time.Hour)))
	_, err := s.Invitations().GetPendingInvitationByTokenHash(ctx, "hash-1")
	require.ErrorIs(t, err, store.ErrNotFound)

	got, err := s.Invitations().GetPendingInvitationByTokenHash(ctx, "hash-3")
	require.NoError(t, err)
	require.NotNil(t, got.ResentAt)

	pending, err := s.Invitations().ListPendingInvitations(ctx, "")
	require.NoError(t, err)
	require.Len(t, pending, 1)

	n, err := s.Invitations().ExpireStaleInvitations(ctx, base.Add(72*time.Hour))
	require.NoError(t, err)
	require.EqualValues(t, 1, n)

	// the address is free again once the old invitation left pending
	require.NoError(t, s.Invitations().CreateInvitation(ctx, second))
	require.NoError(t, s.Invitations().AcceptInvitation(ctx, second.ID, admin.ID, base))
	require.ErrorIs(t, s.Invitations().AcceptInvitation(ctx, second.ID, admin.ID, base), store.ErrNotFound)
}

func TestAcceptInvitation_RejectsExpired(t *testing.T) {
	ctx := context.Background()
	s := newStore(t)
	admin := seedUser(t, s, "admin@firm.com", domain.RoleOrgAdmin)

	inv := domain.Invitation{
		ID: idx.New().String(), Email: "late@firm.com", Role: domain.RoleEmployee, TokenHash: "late",
		InvitedBy: admin.ID, Status: domain.InvitationPending,
		CreatedAt: base, ExpiresAt: base.Add(time.Hour),
	}
	require.NoError(t, s.Invitations().CreateInvitation(ctx, inv))

	// Still pending, but the expiry passed before the housekeeper ran.
	err := s.Invitations().AcceptInvitation(ctx, inv.ID, admin.ID, base.Add(2*time.Hour))
	require.ErrorIs(t, err, store.ErrNotFound)

	got, err := s.Invitations().GetInvitationByID(ctx, inv.ID)
	require.NoError(t, err)
	require.Equal(t, domain.InvitationPending, got.Status)

	require.NoError(t, s.Invitations().AcceptInvitation(ctx, inv.ID, admin.ID, base.Add(time.Hour)))
}

func TestWithTx_RollsBack(t *testing.T) {
	ctx := context.Background()
	s := newStore(t)

	boom := errors.New("boom")
	err := s.WithTx(ctx, func(tx store.Tx) error {
		seedUser(t, tx, "ghost@firm.com", domain.RoleAttorney)
		return boom
	})
	require.ErrorIs(t, err, boom)

	_, err = s.Users().GetUserByEmail(ctx, "ghost@firm.com")
	require.ErrorIs(t, err, store.ErrNotFound)
}
