package domain

import (
	"math"
	"strings"
	"time"
)

// DefaultRequiredWeeklyHours is the weekly target when none is configured.
const DefaultRequiredWeeklyHours = 45.0

type Timesheet struct {
	ID         string
	EmployeeID string
	WeekStart  Date
	WeekEnd    Date
	TaskIDs    []string
	LunchHours float64
	Approved   bool
	ApprovedBy string
	ApprovedAt *time.Time
	Comments   string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// AssigneeMatcher decides whether a task belongs to one employee. The
// assignee id is compared exactly. The free text reference is loose by
// default: it matches a key when either contains the other after trimming
// and lowercasing, so "jane" matches "Jane Doe" and "jane@firm.com".
type AssigneeMatcher struct {
	id    string
	keys  []string
	exact bool
}

// NewAssigneeMatcher matches free text references against the given names
// of one person, typically their full name and email. Blank keys are
// dropped.
func NewAssigneeMatcher(keys ...string) AssigneeMatcher {
	m := AssigneeMatcher{keys: make([]string, 0, len(keys))}
	for _, k := range keys {
		if k = normalizeRef(k); k != "" {
			m.keys = append(m.keys, k)
		}
	}
	return m
}

// MatcherFor owns tasks assigned to u.ID and loosely matches references
// against u's full name and email.
func MatcherFor(u User) AssigneeMatcher {
	m := NewAssigneeMatcher(u.FullName, u.Email)
	m.id = u.ID
	return m
}

// ExactMatcherFor is MatcherFor without containment: a reference must equal
// u's id, full name or email. The team overview uses it so no task lands on
// two rows.
func ExactMatcherFor(u User) AssigneeMatcher {
	m := NewAssigneeMatcher(u.ID, u.FullName, u.Email)
	m.id = u.ID
	m.exact = true
	return m
}

// Matches checks a single free text reference. Empty never matches.
func (m AssigneeMatcher) Matches(ref string) bool {
	ref = normalizeRef(ref)
	if ref == "" {
		return false
	}
	for _, k := range m.keys {
		if ref == k {
			return true
		}
		if !m.exact && (strings.Contains(ref, k) || strings.Contains(k, ref)) {
			return true
		}
	}
	return false
}

// MatchesTask checks the assignee id, then the free text reference.
func (m AssigneeMatcher) MatchesTask(t Task) bool {
	if m.id != "" && t.AssigneeID == m.id {
		return true
	}
	return m.Matches(t.AssigneeRef)
}

func normalizeRef(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// TasksInWeek keeps the tasks m matches that are due within the seven days
// starting at weekStart, both ends inclusive.
func TasksInWeek(tasks []Task, m AssigneeMatcher, weekStart Date) []Task {
	end := WeekEnd(weekStart)
	out := make([]Task, 0, len(tasks))
	for _, t := range tasks {
		if t.DueDate.IsZero() || !t.DueDate.Between(weekStart, end) {
			continue
		}
		if m.MatchesTask(t) {
			out = append(out, t)
		}
	}
	return out
}

type HoursStatus string

const (
	HoursOnTarget HoursStatus = "on_target"
	HoursShort    HoursStatus = "short"
	HoursOver     HoursStatus = "over"
)

const hoursEpsilon = 1e-9

// HoursStatusFor compares logged hours with the weekly requirement.
func HoursStatusFor(total, required float64) HoursStatus {
	diff := total - required
	switch {
	case math.Abs(diff) <= hoursEpsilon:
		return HoursOnTarget
	case diff < 0:
		return HoursShort
	default:
		return HoursOver
	}
}

type TimesheetSummary struct {
	TotalEstimate  float64
	TotalActual    float64
	LunchHours     float64
	TotalHours     float64
	RequiredHours  float64
	Shortfall      float64 // negative when over
	CompletedTasks int
	Status         HoursStatus
}

// Summarize totals a week of tasks. A non-positive required falls back to
// DefaultRequiredWeeklyHours.
func Summarize(tasks []Task, lunchHours, required float64) TimesheetSummary {
	if required <= 0 {
		required = DefaultRequiredWeeklyHours
	}

	s := TimesheetSummary{LunchHours: lunchHours, RequiredHours: required}
	for _, t := range tasks {
		s.TotalEstimate += t.EstimateHours
		s.TotalActual += t.ActualHours
		if t.Status.Done() {
			s.CompletedTasks++
		}
	}
	s.TotalHours = s.TotalActual + lunchHours
	s.Shortfall = required - s.TotalHours
	s.Status = HoursStatusFor(s.TotalHours, required)
	return s
}

// DistinctDueDays counts the different due dates among tasks. The team
// overview credits one lunch hour per working day.
func DistinctDueDays(tasks []Task) int {
	seen := make(map[Date]struct{}, len(tasks))
	for _, t := range tasks {
		if !t.DueDate.IsZero() {
			seen[t.DueDate] = struct{}{}
		}
	}
	return len(seen)
}

type TeamStatus string

const (
	TeamComplete   TeamStatus = "complete"
	TeamIncomplete TeamStatus = "incomplete"
)

// TeamRow is one person's line in the weekly team overview.
type TeamRow struct {
	User        User
	TaskCount   int
	ActualHours float64
	LunchHours  float64
	TotalHours  float64
	Status      TeamStatus
	Approved    bool
	TimesheetID string
}

// BuildTeamRow summarises one user's week for the overview.
func BuildTeamRow(u User, weekTasks []Task, required float64) TeamRow {
	if required <= 0 {
		required = DefaultRequiredWeeklyHours
	}

	row := TeamRow{User: u, TaskCount: len(weekTasks)}
	for _, t := range weekTasks {
		row.ActualHours += t.ActualHours
	}
	row.LunchHours = float64(DistinctDueDays(weekTasks))
	row.TotalHours = row.ActualHours + row.LunchHours

	row.Status = TeamIncomplete
	if row.TotalHours >= required {
		row.Status = TeamComplete
	}
	return row
}
