package sqlite_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/aussiebroadwan/docket/internal/docket/domain"
	"github.com/aussiebroadwan/docket/internal/docket/store"
	"github.com/aussiebroadwan/docket/internal/docket/store/drivers/sqlite"
	"github.com/aussiebroadwan/docket/pkg/idx"
	"github.com/stretchr/testify/require"
)

var base = time.Date(2025, 12, 8, 9, 0, 0, 0, time.UTC)

func newStore(t *testing.T) *sqlite.Store {
	t.Helper()
	s, err := sqlite.NewStore(":memory:")
	require.NoError(t, err)
	require.NoError(t, s.ApplyMigrations())
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

func TestApplyMigrations_Idempotent(t *testing.T) {
	s := newStore(t)
	require.NoError(t, s.ApplyMigrations())
	require.NoError(t, s.Ping(context.Background()))
}

func TestUsers(t *testing.T) {
	ctx := context.Background()
	s := newStore(t)

	empty, err := s.Users().IsEmpty(ctx)
	require.NoError(t, err)
	require.True(t, empty)

	ada := seedUser(t, s, "ada@firm.com", domain.RoleOrgAdmin)
	seedUser(t, s, "bob@firm.com", domain.RoleAttorney)

	t.Run("duplicate email", func(t *testing.T) {
		dup := ada
		dup.ID = idx.New().String()
		require.ErrorIs(t, s.Users().CreateUser(ctx, dup), store.ErrAlreadyExists)
	})

	t.Run("lookups", func(t *testing.T) {
		got, err := s.Users().GetUserByEmail(ctx, "ada@firm.com")
		require.NoError(t, err)
		require.Equal(t, ada.ID, got.ID)
		require.Equal(t, domain.RoleOrgAdmin, got.Role)
		require.True(t, base.Equal(got.CreatedAt))

		_, err = s.Users().GetUserByID(ctx, "missing")
		require.ErrorIs(t, err, store.ErrNotFound)
	})

	t.Run("updates", func(t *testing.T) {
		later := base.Add(time.Hour)
		require.NoError(t, s.Users().UpdateProfile(ctx, ada.ID, "Ada L", "+61 400", later))
		require.NoError(t, s.Users().UpdateRole(ctx, ada.ID, domain.RoleManager, later))
		require.NoError(t, s.Users().UpdatePasswordHash(ctx, ada.ID, "new-hash", later))

		got, err := s.Users().GetUserByID(ctx, ada.ID)
		require.NoError(t, err)
		require.Equal(t, "Ada L", got.FullName)
		require.Equal(t, "+61 400", got.PhoneNumber)
		require.Equal(t, domain.RoleManager, got.Role)
		require.Equal(t, "new-hash", got.PasswordHash)
		require.True(t, later.Equal(got.UpdatedAt))

		require.ErrorIs(t, s.Users().UpdateRole(ctx, "missing", domain.RoleManager, later), store.ErrNotFound)
	})

	t.Run("list and count", func(t *testing.T) {
		users, err := s.Users().ListUsers(ctx)
		require.NoError(t, err)
		require.Len(t, users, 2)

		n, err := s.Users().CountByRole(ctx, domain.RoleAttorney)
		require.NoError(t, err)
		require.Equal(t, 1, n)
	})
}

func TestSessions(t *testing.T) {
	ctx := context.Background()
	s := newStore(t)
	u := seedUser(t, s, "ada@firm.com", domain.RoleEmployee)

	live := domain.Session{ID: idx.New().String(), UserID: u.ID, CreatedAt: base, ExpiresAt: base.Add(time.Hour)}
	old := domain.Session{ID: idx.New().String(), UserID: u.ID, CreatedAt: base, ExpiresAt: base.Add(time.Minute)}
	require.NoError(t, s.Sessions().CreateSession(ctx, live))
	require.NoError(t, s.Sessions().CreateSession(ctx, old))

	got, err := s.Sessions().GetSessionByID(ctx, live.ID)
	require.NoError(t, err)
	require.Nil(t, got.RevokedAt)
	require.True(t, got.Active(base.Add(30*time.Minute)))

	require.NoError(t, s.Sessions().RevokeSession(ctx, live.ID, base.Add(time.Second)))
	require.ErrorIs(t, s.Sessions().RevokeSession(ctx, live.ID, base.Add(time.Second)), store.ErrNotFound)

	got, err = s.Sessions().GetSessionByID(ctx, live.ID)
	require.NoError(t, err)
	require.NotNil(t, got.RevokedAt)

	// live is revoked, old is expired at base+10m.
	n, err := s.Sessions().DeleteStaleSessions(ctx, base.Add(10*time.Minute))
	require.NoError(t, err)
	require.EqualValues(t, 2, n)
}

func TestRevokeUserSessions(t *testing.T) {
	ctx := context.Background()
	s := newStore(t)
	u := seedUser(t, s, "ada@firm.com", domain.RoleEmployee)

	for range 3 {
		require.NoError(t, s.Sessions().CreateSession(ctx, domain.Session{
			ID: idx.New().String(), UserID: u.ID, CreatedAt: base, ExpiresAt: base.Add(time.Hour),
		}))
	}
	require.NoError(t, s.Sessions().RevokeUserSessions(ctx, u.ID, base))

	n, err := s.Sessions().DeleteStaleSessions(ctx, base)
	require.NoError(t, err)
	require.EqualValues(t, 3, n)
}

func TestPasswordResets(t *testing.T) {
	ctx := context.Background()
	s := newStore(t)
	u := seedUser(t, s, "ada@firm.com", domain.RoleEmployee)

	pr := domain.PasswordReset{
		ID: idx.New().String(), UserID: u.ID, TokenHash: "hash-1",
		ExpiresAt: base.Add(time.Hour), CreatedAt: base,
	}
	require.NoError(t, s.PasswordResets().CreatePasswordReset(ctx, pr))

	got, err := s.PasswordResets().GetUnusedPasswordResetByHash(ctx, "hash-1")
	require.NoError(t, err)
	require.Equal(t, pr.ID, got.ID)

	require.NoError(t, s.PasswordResets().MarkPasswordResetUsed(ctx, pr.ID, base))
	require.ErrorIs(t, s.PasswordResets().MarkPasswordResetUsed(ctx, pr.ID, base), store.ErrNotFound)

	_, err = s.PasswordResets().GetUnusedPasswordResetByHash(ctx, "hash-1")
	require.ErrorIs(t, err, store.ErrNotFound)

	n, err := s.PasswordResets().DeleteStalePasswordResets(ctx, base)
	require.NoError(t, err)
	require.EqualValues(t, 1, n)
}

func TestTasks(t *testing.T) {
	ctx := context.Background()
	s := newStore(t)
	boss := seedUser(t, s, "boss@firm.com", domain.RoleManager)
	ada := seedUser(t, s, "ada@firm.com", domain.RoleAttorney)

	mk := func(title, due string, st domain.TaskStatus, prio int, at time.Time) domain.Task {
		task := domain.Task{
			ID: idx.New().String(), Title: title, DueDate: domain.MustParseDate(due), Status: st,
			AssigneeID: ada.ID, Priority: prio, EstimateHours: 2, ActualHours: 1.5,
			CreatedBy: boss.ID, CreatedAt: at, UpdatedAt: at,
		}
		require.NoError(t, s.Tasks().CreateTask(ctx, task))
		return task
	}

	a := mk("a", "2025-12-10", domain.TaskPending, 1, base)
	mk("b", "2025-12-09", domain.TaskCompleted, 3, base)
	mk("c", "2025-12-20", domain.TaskInProgress, 5, base)
	d := mk("d", "2025-12-10", domain.TaskPending, 3, base.Add(-time.Hour))

	t.Run("order", func(t *testing.T) {
		all, err := s.Tasks().ListTasks(ctx, domain.TaskFilter{})
		require.NoError(t, err)
		titles := []string{}
		for _, x := range all {
			titles = append(titles, x.Title)
		}
		require.Equal(t, []string{"b", "d", "a", "c"}, titles)
	})

	t.Run("filters", func(t *testing.T) {
		got, err := s.Tasks().ListTasks(ctx, domain.TaskFilter{
			AssigneeID: ada.ID,
			Statuses:   []domain.TaskStatus{domain.TaskPending, domain.TaskInProgress},
			DueFrom:    domain.MustParseDate("2025-12-08"),
			DueTo:      domain.MustParseDate("2025-12-14"),
		})
		require.NoError(t, err)
		require.Len(t, got, 2)

		got, err = s.Tasks().ListTasks(ctx, domain.TaskFilter{Priorities: []int{5}})
		require.NoError(t, err)
		require.Len(t, got, 1)
		require.Equal(t, "c", got[0].Title)

		got, err = s.Tasks().ListTasks(ctx, domain.TaskFilter{AssigneeID: boss.ID})
		require.NoError(t, err)
		require.Empty(t, got)
	})

	t.Run("update and delete", func(t *testing.T) {
		a.Status = domain.TaskCompleted
		a.ActualHours = 4
		a.ReviewerID = boss.ID
		a.UpdatedAt = base.Add(time.Hour)
		require.NoError(t, s.Tasks().UpdateTask(ctx, a))

		got, err := s.Tasks().GetTaskByID(ctx, a.ID)
		require.NoError(t, err)
		require.Equal(t, domain.TaskCompleted, got.Status)
		require.InDelta(t, 4, got.ActualHours, 1e-9)
		require.Equal(t, boss.ID, got.ReviewerID)
		require.Equal(t, "2025-12-10", got.DueDate.String())

		require.NoError(t, s.Tasks().DeleteTask(ctx, d.ID))
		require.ErrorIs(t, s.Tasks().DeleteTask(ctx, d.ID), store.ErrNotFound)
		_, err = s.Tasks().GetTaskByID(ctx, d.ID)
		require.ErrorIs(t, err, store.ErrNotFound)
	})

	t.Run("unknown assignee violates foreign key", func(t *testing.T) {
		bad := domain.Task{
			ID: idx.New().String(), Title: "x", DueDate: domain.MustParseDate("2025-12-10"),
			Status: domain.TaskPending, AssigneeID: "ghost", Priority: 3,
			CreatedBy: boss.ID, CreatedAt: base, UpdatedAt: base,
		}
		require.Error(t, s.Tasks().CreateTask(ctx, bad))
	})
}

func TestTimesheets(t *testing.T) {
	ctx := context.Background()
	s := newStore(t)
	boss := seedUser(t, s, "boss@firm.com", domain.RoleManager)
	ada := seedUser(t, s, "ada@firm.com", domain.RoleAttorney)
	week := domain.MustParseDate("2025-12-08")

	ts := domain.Timesheet{
		ID: idx.New().String(), EmployeeID: ada.ID, WeekStart: week, WeekEnd: domain.WeekEnd(week),
		TaskIDs: []string{"t1", "t2"}, LunchHours: 5, CreatedAt: base, UpdatedAt: base,
	}
	require.NoError(t, s.Timesheets().CreateTimesheet(ctx, ts))

	dup := ts
	dup.ID = idx.New().String()
	require.ErrorIs(t, s.Timesheets().CreateTimesheet(ctx, dup), store.ErrAlreadyExists)

	got, err := s.Timesheets().GetTimesheetForWeek(ctx, ada.ID, week)
	require.NoError(t, err)
	require.Equal(t, []string{"t1", "t2"}, got.TaskIDs)
	require.Equal(t, "2025-12-14", got.WeekEnd.String())
	require.False(t, got.Approved)

	require.NoError(t, s.Timesheets().UpdateSubmission(ctx, ts.ID, nil, 3, base.Add(time.Hour)))
	got, err = s.Timesheets().GetTimesheetByID(ctx, ts.ID)
	require.NoError(t, err)
	require.Empty(t, got.TaskIDs)
	require.InDelta(t, 3, got.LunchHours, 1e-9)

	require.NoError(t, s.Timesheets().Approve(ctx, ts.ID, boss.ID, "good", base.Add(2*time.Hour)))
	require.ErrorIs(t, s.Timesheets().Approve(ctx, ts.ID, boss.ID, "again", base), store.ErrNotFound)
	require.ErrorIs(t, s.Timesheets().UpdateSubmission(ctx, ts.ID, nil, 1, base), store.ErrNotFound)

	got, err = s.Timesheets().GetTimesheetByID(ctx, ts.ID)
	require.NoError(t, err)
	require.True(t, got.Approved)
	require.Equal(t, boss.ID, got.ApprovedBy)
	require.Equal(t, "good", got.Comments)
	require.NotNil(t, got.ApprovedAt)

	list, err := s.Timesheets().ListTimesheetsForWeek(ctx, week)
	require.NoError(t, err)
	require.Len(t, list, 1)

	list, err = s.Timesheets().ListTimesheetsForWeek(ctx, week.AddDays(7))
	require.NoError(t, err)
	require.Empty(t, list)
}

func TestInvitations(t *testing.T) {
	ctx := context.Background()
	s := newStore(t)
	admin := seedUser(t, s, "admin@firm.com", domain.RoleOrgAdmin)

	mk := func(email, hash, org string, created time.Time) domain.Invitation {
		return domain.Invitation{
			ID: idx.New().String(), Email: email, Role: domain.RoleEmployee, TokenHash: hash,
			InvitedBy: admin.ID, OrganizationID: org, Status: domain.InvitationPending,
			CreatedAt: created, ExpiresAt: created.Add(domain.DefaultInvitationTTL),
		}
	}

	first := mk("new@firm.com", "h1", "org-a", base)
	require.NoError(t, s.Invitations().CreateInvitation(ctx, first))

	t.Run("one pending per email", func(t *testing.T) {
		err := s.Invitations().CreateInvitation(ctx, mk("new@firm.com", "h2", "", base))
		require.ErrorIs(t, err, store.ErrAlreadyExists)
	})

	t.Run("lookups", func(t *testing.T) {
		got, err := s.Invitations().GetPendingInvitationByTokenHash(ctx, "h1")
		require.NoError(t, err)
		require.Equal(t, first.ID, got.ID)

		got, err = s.Invitations().GetPendingInvitationByEmail(ctx, "new@firm.com")
		require.NoError(t, err)
		require.Equal(t, "org-a", got.OrganizationID)
	})

	t.Run("rotate", func(t *testing.T) {
		resent := base.Add(time.Hour)
		require.NoError(t, s.Invitations().RotateInvitationToken(ctx, first.ID, "h1b", resent.Add(time.Hour), resent))

		_, err := s.Invitations().GetPendingInvitationByTokenHash(ctx, "h1")
		require.ErrorIs(t, err, store.ErrNotFound)

		got, err := s.Invitations().GetPendingInvitationByTokenHash(ctx, "h1b")
		require.NoError(t, err)
		require.NotNil(t, got.ResentAt)
	})

	t.Run("list filters by org", func(t *testing.T) {
		require.NoError(t, s.Invitations().CreateInvitation(ctx, mk("other@firm.com", "h3", "org-b", base.Add(time.Minute))))

		all, err := s.Invitations().ListPendingInvitations(ctx, "")
		require.NoError(t, err)
		require.Len(t, all, 2)
		require.Equal(t, "other@firm.com", all[0].Email)

		orgA, err := s.Invitations().ListPendingInvitations(ctx, "org-a")
		require.NoError(t, err)
		require.Len(t, orgA, 1)
	})

	t.Run("accept once", func(t *testing.T) {
		u := seedUser(t, s, "new@firm.com", domain.RoleEmployee)
		require.NoError(t, s.Invitations().AcceptInvitation(ctx, first.ID, u.ID, base))
		require.ErrorIs(t, s.Invitations().AcceptInvitation(ctx, first.ID, u.ID, base), store.ErrNotFound)

		got, err := s.Invitations().GetInvitationByID(ctx, first.ID)
		require.NoError(t, err)
		require.Equal(t, domain.InvitationAccepted, got.Status)
		require.Equal(t, u.ID, got.AcceptedBy)

		// The address is free for a new pending invitation again.
		require.NoError(t, s.Invitations().CreateInvitation(ctx, mk("new@firm.com", "h4", "", base)))
	})

	t.Run("expire stale", func(t *testing.T) {
		n, err := s.Invitations().ExpireStaleInvitations(ctx, base.Add(8*24*time.Hour))
		require.NoError(t, err)
		require.EqualValues(t, 2, n)

		left, err := s.Invitations().ListPendingInvitations(ctx, "")
		require.NoError(t, err)
		require.Empty(t, left)
	})

	t.Run("delete", func(t *testing.T) {
		require.NoError(t, s.Invitations().DeleteInvitation(ctx, first.ID))
		require.ErrorIs(t, s.Invitations().DeleteInvitation(ctx, first.ID), store.ErrNotFound)
	})
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
		seedUser(t, tx, "ada@firm.com", domain.RoleEmployee)
		return boom
	})
	require.ErrorIs(t, err, boom)

	empty, err := s.Users().IsEmpty(ctx)
	require.NoError(t, err)
	require.True(t, empty)

	require.NoError(t, s.WithTx(ctx, func(tx store.Tx) error {
		seedUser(t, tx, "ada@firm.com", domain.RoleEmployee)
		return nil
	}))
	empty, err = s.Users().IsEmpty(ctx)
	require.NoError(t, err)
	require.False(t, empty)
}
