package service

import (
	"context"
	"errors"
	"log/slog"
	"slices"
	"time"

	"github.com/aussiebroadwan/docket/internal/docket/domain"
	"github.com/aussiebroadwan/docket/internal/docket/store"
	"github.com/aussiebroadwan/docket/pkg/idx"
	"github.com/aussiebroadwan/docket/pkg/slogx"
)

var (
	ErrTimesheetNotFound        = errors.New("timesheet not found")
	ErrTimesheetApproved        = errors.New("timesheet is approved and can no longer change")
	ErrTimesheetAlreadyApproved = errors.New("timesheet is already approved")
)

type TimesheetService struct {
	Store store.Store
	// RequiredHours defaults to domain.DefaultRequiredWeeklyHours.
	RequiredHours float64
	Now           func() time.Time
}

// TimesheetView is one employee's week: their tasks, the totals, and the
// stored sheet when one was submitted.
type TimesheetView struct {
	Employee   domain.User
	WeekStart  domain.Date
	WeekEnd    domain.Date
	Tasks      []domain.Task
	Summary    domain.TimesheetSummary
	Timesheet  *domain.Timesheet
	CanApprove bool
}

type TeamOverview struct {
	WeekStart     domain.Date
	WeekEnd       domain.Date
	RequiredHours float64
	Rows          []domain.TeamRow
}

func (s *TimesheetService) required() float64 {
	if s.RequiredHours <= 0 {
		return domain.DefaultRequiredWeeklyHours
	}
	return s.RequiredHours
}

// weekOf snaps any day to the Monday starting its week.
func weekOf(d domain.Date) domain.Date {
	return domain.WeekStartOf(d.Time())
}

func (s *TimesheetService) employee(ctx context.Context, st store.Store, id string) (domain.User, error) {
	u, err := st.Users().GetUserByID(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.User{}, ErrUserNotFound
		}
		return domain.User{}, err
	}
	return u, nil
}

// weekTasks loads every task due in the week and keeps those m matches.
func weekTasks(ctx context.Context, st store.Store, m domain.AssigneeMatcher, weekStart domain.Date) ([]domain.Task, error) {
	tasks, err := st.Tasks().ListTasks(ctx, domain.TaskFilter{
		DueFrom: weekStart,
		DueTo:   domain.WeekEnd(weekStart),
	})
	if err != nil {
		return nil, err
	}
	return domain.TasksInWeek(tasks, m, weekStart), nil
}

// sheetTasks loads the tasks recorded on ts, in submission order.
func sheetTasks(ctx context.Context, st store.Store, ts domain.Timesheet) ([]domain.Task, error) {
	out := make([]domain.Task, 0, len(ts.TaskIDs))
	for _, id := range ts.TaskIDs {
		t, err := st.Tasks().GetTaskByID(ctx, id)
		if errors.Is(err, store.ErrNotFound) {
			continue
		}
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, nil
}

// approvedSheetFor returns the approved sheet of the task's week that lists
// the task. ok is false when there is none.
func approvedSheetFor(ctx context.Context, st store.Store, t domain.Task) (domain.Timesheet, bool, error) {
	if t.DueDate.IsZero() {
		return domain.Timesheet{}, false, nil
	}
	sheets, err := st.Timesheets().ListTimesheetsForWeek(ctx, weekOf(t.DueDate))
	if err != nil {
		return domain.Timesheet{}, false, err
	}
	for _, ts := range sheets {
		if !ts.Approved {
			continue
		}
		if slices.Contains(ts.TaskIDs, t.ID) {
			return ts, true, nil
		}
	}
	return domain.Timesheet{}, false, nil
}

func (s *TimesheetService) GetTimesheet(ctx context.Context, viewer Actor, employeeID string, weekStart domain.Date) (TimesheetView, error) {
	log := slogx.FromContext(ctx)
	weekStart = weekOf(weekStart)

	// 1. Visibility
	emp, err := s.employee(ctx, s.Store, employeeID)
	if err != nil {
		return TimesheetView{}, err
	}
	if viewer.ID != emp.ID && !domain.CanViewTasksFor(viewer.Role, emp.Role) {
		log.Warn("timesheet view denied", slog.String("employee_id", employeeID))
		return TimesheetView{}, ErrForbidden
	}

	// 2. Stored sheet, if any
	view := TimesheetView{
		Employee:   emp,
		WeekStart:  weekStart,
		WeekEnd:    domain.WeekEnd(weekStart),
		CanApprove: domain.CanApproveTimesheets(viewer.Role) && viewer.ID != emp.ID,
	}
	var lunch float64
	ts, err := s.Store.Timesheets().GetTimesheetForWeek(ctx, emp.ID, weekStart)
	switch {
	case err == nil:
		view.Timesheet = &ts
		lunch = ts.LunchHours
		view.CanApprove = view.CanApprove && !ts.Approved
	case errors.Is(err, store.ErrNotFound):
	default:
		log.Error("failed to load timesheet", slog.Any("error", err))
		return TimesheetView{}, err
	}

	// 3. Tasks: the frozen list once approved, otherwise everything due
	var tasks []domain.Task
	if view.Timesheet != nil && ts.Approved {
		tasks, err = sheetTasks(ctx, s.Store, ts)
	} else {
		tasks, err = weekTasks(ctx, s.Store, domain.MatcherFor(emp), weekStart)
	}
	if err != nil {
		log.Error("failed to load week tasks", slog.Any("error", err))
		return TimesheetView{}, err
	}
	view.Tasks = tasks

	// 4. Totals
	view.Summary = domain.Summarize(tasks, lunch, s.required())
	return view, nil
}

// SubmitTimesheet records the employee's week with the tasks currently
// matched to them. Resubmitting replaces the previous submission until the
// sheet is approved.
func (s *TimesheetService) SubmitTimesheet(ctx context.Context, actor Actor, employeeID string, weekStart domain.Date, lunchHours float64) (domain.Timesheet, error) {
	log := slogx.FromContext(ctx)
	weekStart = weekOf(weekStart)

	if actor.ID != employeeID {
		log.Warn("timesheet submit for someone else denied", slog.String("employee_id", employeeID))
		return domain.Timesheet{}, ErrForbidden
	}
	if lunchHours < 0 {
		return domain.Timesheet{}, invalid(map[string]string{"lunch_hours": "lunch hours cannot be negative"})
	}

	now := clock(s.Now)
	var out domain.Timesheet
	err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		emp, err := s.employee(ctx, tx, employeeID)
		if err != nil {
			return err
		}
		tasks, err := weekTasks(ctx, tx, domain.MatcherFor(emp), weekStart)
		if err != nil {
			return err
		}
		ids := make([]string, len(tasks))
		for i, t := range tasks {
			ids[i] = t.ID
		}

		existing, err := tx.Timesheets().GetTimesheetForWeek(ctx, emp.ID, weekStart)
		switch {
		case errors.Is(err, store.ErrNotFound):
			out = domain.Timesheet{
				ID:         idx.New().String(),
				EmployeeID: emp.ID,
				WeekStart:  weekStart,
				WeekEnd:    domain.WeekEnd(weekStart),
				TaskIDs:    ids,
				LunchHours: lunchHours,
				CreatedAt:  now,
				UpdatedAt:  now,
			}
			return tx.Timesheets().CreateTimesheet(ctx, out)
		case err != nil:
			return err
		}

		if existing.Approved {
			return ErrTimesheetApproved
		}
		if err := tx.Timesheets().UpdateSubmission(ctx, existing.ID, ids, lunchHours, now); err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return ErrTimesheetApproved
			}
			return err
		}
		existing.TaskIDs = ids
		existing.LunchHours = lunchHours
		existing.UpdatedAt = now
		out = existing
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrTimesheetApproved) {
			log.Warn("submit against approved timesheet", slog.String("week_start", weekStart.String()))
		} else if !errors.Is(err, ErrUserNotFound) {
			log.Error("failed to submit timesheet", slog.Any("error", err))
		}
		return domain.Timesheet{}, err
	}

	log.Info("timesheet submitted",
		slog.String("timesheet_id", out.ID),
		slog.String("week_start", weekStart.String()),
		slog.Int("tasks", len(out.TaskIDs)),
	)
	return out, nil
}

// ApproveTimesheet signs off a sheet. It is one way: an approved sheet
// cannot be approved again or resubmitted.
func (s *TimesheetService) ApproveTimesheet(ctx context.Context, approver Actor, timesheetID, comments string) (domain.Timesheet, error) {
	log := slogx.FromContext(ctx)

	if !domain.CanApproveTimesheets(approver.Role) {
		log.Warn("timesheet approval denied", slog.String("timesheet_id", timesheetID))
		return domain.Timesheet{}, ErrForbidden
	}

	now := clock(s.Now)
	var out domain.Timesheet
	err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		ts, err := tx.Timesheets().GetTimesheetByID(ctx, timesheetID)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return ErrTimesheetNotFound
			}
			return err
		}
		if ts.EmployeeID == approver.ID {
			return ErrForbidden
		}
		if ts.Approved {
			return ErrTimesheetAlreadyApproved
		}

		if comments == "" {
			comments = ts.Comments
		}
		if err := tx.Timesheets().Approve(ctx, ts.ID, approver.ID, comments, now); err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return ErrTimesheetAlreadyApproved
			}
			return err
		}

		ts.Approved = true
		ts.ApprovedBy = approver.ID
		ts.ApprovedAt = &now
		ts.Comments = comments
		ts.UpdatedAt = now
		out = ts
		return nil
	})
	if err != nil {
		switch {
		case errors.Is(err, ErrTimesheetNotFound):
		case errors.Is(err, ErrForbidden), errors.Is(err, ErrTimesheetAlreadyApproved):
			log.Warn("timesheet approval rejected", slog.String("timesheet_id", timesheetID), slog.Any("error", err))
		default:
			log.Error("failed to approve timesheet", slog.String("timesheet_id", timesheetID), slog.Any("error", err))
		}
		return domain.Timesheet{}, err
	}

	log.Info("timesheet approved",
		slog.String("timesheet_id", out.ID),
		slog.String("employee_id", out.EmployeeID),
	)
	return out, nil
}

// TeamOverview summarises the week for the viewer and everyone whose tasks
// they may view. A zero weekStart means the current week. Tasks are matched
// to rows exactly, and approved rows show their frozen task list.
func (s *TimesheetService) TeamOverview(ctx context.Context, viewer Actor, weekStart domain.Date) (TeamOverview, error) {
	log := slogx.FromContext(ctx)
	if weekStart.IsZero() {
		weekStart = domain.WeekStartOf(clock(s.Now))
	}
	weekStart = weekOf(weekStart)

	users, err := s.Store.Users().ListUsers(ctx)
	if err != nil {
		log.Error("failed to list users", slog.Any("error", err))
		return TeamOverview{}, err
	}
	tasks, err := s.Store.Tasks().ListTasks(ctx, domain.TaskFilter{
		DueFrom: weekStart,
		DueTo:   domain.WeekEnd(weekStart),
	})
	if err != nil {
		log.Error("failed to list tasks", slog.Any("error", err))
		return TeamOverview{}, err
	}
	sheets, err := s.Store.Timesheets().ListTimesheetsForWeek(ctx, weekStart)
	if err != nil {
		log.Error("failed to list timesheets", slog.Any("error", err))
		return TeamOverview{}, err
	}
	byEmployee := make(map[string]domain.Timesheet, len(sheets))
	for _, ts := range sheets {
		byEmployee[ts.EmployeeID] = ts
	}

	out := TeamOverview{
		WeekStart:     weekStart,
		WeekEnd:       domain.WeekEnd(weekStart),
		RequiredHours: s.required(),
		Rows:          []domain.TeamRow{},
	}
	for _, u := range visibleUsers(users, viewer) {
		ts, hasSheet := byEmployee[u.ID]
		mine := domain.TasksInWeek(tasks, domain.ExactMatcherFor(u), weekStart)
		if hasSheet && ts.Approved {
			if mine, err = sheetTasks(ctx, s.Store, ts); err != nil {
				log.Error("failed to load approved tasks", slog.String("timesheet_id", ts.ID), slog.Any("error", err))
				return TeamOverview{}, err
			}
		}
		row := domain.BuildTeamRow(u, mine, s.required())
		if hasSheet {
			row.Approved = ts.Approved
			row.TimesheetID = ts.ID
		}
		out.Rows = append(out.Rows, row)
	}
	return out, nil
}
