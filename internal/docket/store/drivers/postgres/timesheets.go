package postgres

import (
	"context"
	"time"

	"github.com/aussiebroadwan/docket/internal/docket/domain"
	"github.com/jackc/pgx/v5"
)

type timesheetsRepo struct {
	db querier
}

const timesheetColumns = `id, employee_id, week_start, week_end, task_ids, lunch_hours,
	approved, approved_by, approved_at, comments, created_at, updated_at`

func scanTimesheet(row pgx.Row) (domain.Timesheet, error) {
	var (
		t          domain.Timesheet
		start, end time.Time
		approvedBy *string
	)
	err := row.Scan(
		&t.ID, &t.EmployeeID, &start, &end, &t.TaskIDs, &t.LunchHours,
		&t.Approved, &approvedBy, &t.ApprovedAt, &t.Comments, &t.CreatedAt, &t.UpdatedAt,
	)
	if err != nil {
		return domain.Timesheet{}, err
	}
	t.WeekStart = domain.DateOf(start)
	t.WeekEnd = domain.DateOf(end)
	if t.TaskIDs == nil {
		t.TaskIDs = []string{}
	}
	t.ApprovedBy = deref(approvedBy)
	t.ApprovedAt = utcPtr(t.ApprovedAt)
	t.CreatedAt = t.CreatedAt.UTC()
	t.UpdatedAt = t.UpdatedAt.UTC()
	return t, nil
}

func taskIDsArg(ids []string) []string {
	if ids == nil {
		return []string{}
	}
	return ids
}

func (r *timesheetsRepo) CreateTimesheet(ctx context.Context, t domain.Timesheet) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO timesheets (`+timesheetColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`,
		t.ID, t.EmployeeID, t.WeekStart.Time(), t.WeekEnd.Time(), taskIDsArg(t.TaskIDs), t.LunchHours,
		t.Approved, nullable(t.ApprovedBy), utcPtr(t.ApprovedAt), t.Comments,
		t.CreatedAt.UTC(), t.UpdatedAt.UTC(),
	)
	return mapWriteErr(err)
}

func (r *timesheetsRepo) GetTimesheetByID(ctx context.Context, id string) (domain.Timesheet, error) {
	t, err := scanTimesheet(r.db.QueryRow(ctx,
		`SELECT `+timesheetColumns+` FROM timesheets WHERE id = $1`, id))
	return t, mapNotFound(err)
}

func (r *timesheetsRepo) GetTimesheetForWeek(ctx context.Context, employeeID string, weekStart domain.Date) (domain.Timesheet, error) {
	t, err := scanTimesheet(r.db.QueryRow(ctx,
		`SELECT `+timesheetColumns+` FROM timesheets WHERE employee_id = $1 AND week_start = $2`,
		employeeID, weekStart.Time()))
	return t, mapNotFound(err)
}

func (r *timesheetsRepo) UpdateSubmission(ctx context.Context, id string, taskIDs []string, lunchHours float64, at time.Time) error {
	return expectOne(r.db.Exec(ctx, `
		UPDATE timesheets SET task_ids = $1, lunch_hours = $2, updated_at = $3
		WHERE id = $4 AND NOT approved`,
		taskIDsArg(taskIDs), lunchHours, at.UTC(), id,
	))
}

func (r *timesheetsRepo) Approve(ctx context.Context, id, approverID, comments string, at time.Time) error {
	return expectOne(r.db.Exec(ctx, `
		UPDATE timesheets
		SET approved = TRUE, approved_by = $1, approved_at = $2, comments = $3, updated_at = $2
		WHERE id = $4 AND NOT approved`,
		approverID, at.UTC(), comments, id,
	))
}

func (r *timesheetsRepo) ListTimesheetsForWeek(ctx context.Context, weekStart domain.Date) ([]domain.Timesheet, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+timesheetColumns+` FROM timesheets WHERE week_start = $1 ORDER BY employee_id`,
		weekStart.Time())
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Timesheet
	for rows.Next() {
		t, err := scanTimesheet(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}
