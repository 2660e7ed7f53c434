package domain_test

import (
	"strings"
	"testing"

	"github.com/aussiebroadwan/docket/internal/docket/domain"
	"github.com/aussiebroadwan/docket/pkg/idx"
	"github.com/stretchr/testify/require"
)

func TestAssigneeMatcher(t *testing.T) {
	m := domain.NewAssigneeMatcher("01JUSER", "Jane Doe", "jane@firm.com")

	tests := []struct {
		ref  string
		want bool
	}{
		{"01juser", true},
		{"  JANE DOE ", true},
		{"jane", true},               // contained in a key
		{"jane@firm.com (HR)", true}, // contains a key
		{"john", false},
		{"", false},
		{"   ", false},
	}
	for _, tt := range tests {
		require.Equal(t, tt.want, m.Matches(tt.ref), "%q", tt.ref)
	}

	empty := domain.NewAssigneeMatcher("", "  ")
	require.False(t, empty.Matches("anything"))
}

func TestMatcherFor(t *testing.T) {
	u := domain.User{ID: "u1", FullName: "Ada Lovelace", Email: "ada@firm.com"}
	m := domain.MatcherFor(u)

	require.True(t, m.MatchesTask(domain.Task{AssigneeID: "u1"}))
	require.True(t, m.MatchesTask(domain.Task{AssigneeID: "other", AssigneeRef: "Lovelace"}))
	require.False(t, m.MatchesTask(domain.Task{AssigneeID: "other"}))
}

func TestMatcherFor_AssigneeIDIsExact(t *testing.T) {
	ed := domain.User{ID: idx.New().String(), FullName: "Ed", Email: "ed@firm.com"}
	m := domain.MatcherFor(ed)

	// Other users' ids that contain "ed" must not be credited to Ed.
	for i := 0; i < 100; i++ {
		id := idx.New().String()
		other := domain.Task{AssigneeID: id[:10] + "ED" + id[12:]}
		require.True(t, strings.Contains(strings.ToLower(other.AssigneeID), "ed"))
		require.False(t, m.MatchesTask(other), other.AssigneeID)
	}

	require.True(t, m.MatchesTask(domain.Task{AssigneeID: ed.ID}))
	require.True(t, m.MatchesTask(domain.Task{AssigneeRef: "ed"}))
}

func TestExactMatcherFor(t *testing.T) {
	ann := domain.User{ID: "u-ann", FullName: "Ann Lee", Email: "ann@firm.com"}
	m := domain.ExactMatcherFor(ann)

	require.True(t, m.MatchesTask(domain.Task{AssigneeID: "u-ann"}))
	require.True(t, m.MatchesTask(domain.Task{AssigneeRef: " ann lee "}))
	require.True(t, m.MatchesTask(domain.Task{AssigneeRef: "ANN@firm.com"}))
	require.True(t, m.MatchesTask(domain.Task{AssigneeRef: "u-ann"}))
	require.False(t, m.MatchesTask(domain.Task{AssigneeRef: "Ann Leeds"}))
	require.False(t, m.MatchesTask(domain.Task{AssigneeRef: "Ann"}))
	require.False(t, m.MatchesTask(domain.Task{}))

	// The loose matcher would have taken both.
	require.True(t, domain.MatcherFor(ann).MatchesTask(domain.Task{AssigneeRef: "Ann Leeds"}))
}

func TestTasksInWeek(t *testing.T) {
	week := domain.MustParseDate("2025-12-08")
	m := domain.MatcherFor(domain.User{ID: "u1"})

	tasks := []domain.Task{
		{ID: "before", AssigneeID: "u1", DueDate: domain.MustParseDate("2025-12-07")},
		{ID: "monday", AssigneeID: "u1", DueDate: domain.MustParseDate("2025-12-08")},
		{ID: "sunday", AssigneeID: "u1", DueDate: domain.MustParseDate("2025-12-14")},
		{ID: "after", AssigneeID: "u1", DueDate: domain.MustParseDate("2025-12-15")},
		{ID: "other", AssigneeID: "u2", DueDate: domain.MustParseDate("2025-12-09")},
		{ID: "undated", AssigneeID: "u1"},
	}

	got := domain.TasksInWeek(tasks, m, week)
	ids := make([]string, 0, len(got))
	for _, t := range got {
		ids = append(ids, t.ID)
	}
	require.Equal(t, []string{"monday", "sunday"}, ids)
}

func TestHoursStatusFor(t *testing.T) {
	require.Equal(t, domain.HoursOnTarget, domain.HoursStatusFor(45, 45))
	require.Equal(t, domain.HoursOnTarget, domain.HoursStatusFor(0.1+0.2, 0.3))
	require.Equal(t, domain.HoursShort, domain.HoursStatusFor(44.5, 45))
	require.Equal(t, domain.HoursOver, domain.HoursStatusFor(45.5, 45))
}

func TestSummarize(t *testing.T) {
	tasks := []domain.Task{
		{EstimateHours: 2, ActualHours: 3, Status: domain.TaskCompleted},
		{EstimateHours: 5, ActualHours: 4, Status: domain.TaskPending},
	}

	s := domain.Summarize(tasks, 2, 0)
	require.InDelta(t, 9, s.TotalHours, 1e-9)
	require.InDelta(t, 7, s.TotalEstimate, 1e-9)
	require.InDelta(t, 7, s.TotalActual, 1e-9)
	require.InDelta(t, 2, s.LunchHours, 1e-9)
	require.InDelta(t, domain.DefaultRequiredWeeklyHours, s.RequiredHours, 1e-9)
	require.InDelta(t, 36, s.Shortfall, 1e-9)
	require.Equal(t, 1, s.CompletedTasks)
	require.Equal(t, domain.HoursShort, s.Status)

	over := domain.Summarize(tasks, 2, 8)
	require.InDelta(t, -1, over.Shortfall, 1e-9)
	require.Equal(t, domain.HoursOver, over.Status)

	empty := domain.Summarize(nil, 0, 40)
	require.Zero(t, empty.TotalHours)
	require.Equal(t, domain.HoursShort, empty.Status)
}

func TestBuildTeamRow(t *testing.T) {
	u := domain.User{ID: "u1"}
	tasks := []domain.Task{
		{ActualHours: 10, DueDate: domain.MustParseDate("2025-12-08")},
		{ActualHours: 10, DueDate: domain.MustParseDate("2025-12-08")},
		{ActualHours: 22, DueDate: domain.MustParseDate("2025-12-09")},
	}

	row := domain.BuildTeamRow(u, tasks, 45)
	require.Equal(t, 3, row.TaskCount)
	require.InDelta(t, 42, row.ActualHours, 1e-9)
	require.InDelta(t, 2, row.LunchHours, 1e-9)
	require.InDelta(t, 44, row.TotalHours, 1e-9)
	require.Equal(t, domain.TeamIncomplete, row.Status)

	row = domain.BuildTeamRow(u, tasks, 44)
	require.Equal(t, domain.TeamComplete, row.Status)
}
