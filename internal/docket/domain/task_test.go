package domain_test

import (
	"testing"
	"time"

	"github.com/aussiebroadwan/docket/internal/docket/domain"
	"github.com/stretchr/testify/require"
)

func TestTaskValidate(t *testing.T) {
	valid := domain.Task{
		Title:      "Draft contract",
		DueDate:    domain.MustParseDate("2025-12-15"),
		Status:     domain.TaskPending,
		Priority:   domain.DefaultPriority,
		AssigneeID: "u1",
	}
	require.Empty(t, valid.Validate())

	bad := valid
	bad.Title = "  "
	bad.Priority = 6
	bad.ActualHours = -1
	bad.Status = "done"
	bad.DueDate = domain.Date{}

	errs := bad.Validate()
	for _, f := range []string{"title", "priority", "actual_hours", "status", "due_date"} {
		require.Contains(t, errs, f)
	}
	require.NotContains(t, errs, "estimate_hours")
}

func TestParseTaskStatus(t *testing.T) {
	st, err := domain.ParseTaskStatus("In-Progress")
	require.NoError(t, err)
	require.Equal(t, domain.TaskInProgress, st)

	_, err = domain.ParseTaskStatus("blocked")
	require.ErrorIs(t, err, domain.ErrUnknownTaskStatus)
}

func TestBuildBoard(t *testing.T) {
	today := domain.MustParseDate("2025-12-10")
	tasks := []domain.Task{
		{ID: "late", Status: domain.TaskPending, DueDate: today.AddDays(-2)},
		{ID: "today", Status: domain.TaskInProgress, DueDate: today},
		{ID: "done-late", Status: domain.TaskCompleted, DueDate: today.AddDays(-5)},
		{ID: "approved", Status: domain.TaskApproved, DueDate: today},
	}

	b := domain.BuildBoard(tasks, today)
	ids := func(ts []domain.Task) []string {
		out := []string{}
		for _, t := range ts {
			out = append(out, t.ID)
		}
		return out
	}
	require.Equal(t, []string{"late", "today"}, ids(b.Outstanding))
	require.Equal(t, []string{"done-late", "approved"}, ids(b.Completed))
	require.Equal(t, []string{"late"}, ids(b.Backlog))
}

func TestSessionActive(t *testing.T) {
	now := time.Now()
	s := domain.Session{ExpiresAt: now.Add(time.Hour)}
	require.True(t, s.Active(now))
	require.False(t, s.Active(now.Add(2*time.Hour)))

	s.RevokedAt = &now
	require.False(t, s.Active(now))
}

func TestEmailHelpers(t *testing.T) {
	require.Equal(t, "ada@firm.com", domain.NormalizeEmail("  Ada@Firm.COM "))
	require.True(t, domain.ValidEmail("ada@firm.com"))
	require.False(t, domain.ValidEmail("ada@firm"))
	require.False(t, domain.ValidEmail("ada firm@x.com"))
	require.False(t, domain.ValidEmail(""))
}

func TestInvitationExpiredAt(t *testing.T) {
	exp := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	inv := domain.Invitation{ExpiresAt: exp}
	require.False(t, inv.ExpiredAt(exp))
	require.True(t, inv.ExpiredAt(exp.Add(time.Nanosecond)))
}
