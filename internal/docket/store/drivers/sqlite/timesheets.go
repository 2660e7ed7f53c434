package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/aussiebroadwan/docket/internal/docket/domain"
)

type timesheetsRepo struct {
	db dbtx
}

const timesheetColumns = `id, employee_id, week_start, week_end, task_ids, lunch_hours,
	approved, approved_by, approved_at, comments, created_at, updated_at`

func scanTimesheet(row rowScanner) (domain.Timesheet, error) {
	var (
		t          domain.Timesheet
		start, end string
		taskIDs    string
		approvedBy sql.NullString
		approvedAt sql.NullTime
	)
	err := row.Scan(
		&t.ID, &t.EmployeeID, &start, &end, &taskIDs, &t.LunchHours,
		&t.Approved, &approvedBy, &approvedAt, &t.Comments, &t.CreatedAt, &t.UpdatedAt,
	)
	if err != nil {
		return domain.Timesheet{}, err
	}
	if t.WeekStart, err = parseDate(start); err != nil {
		return domain.Timesheet{}, err
	}
	if t.WeekEnd, err = parseDate(end); err != nil {
		return domain.Timesheet{}, err
	}
	if t.TaskIDs, err = decodeIDs(taskIDs); err != nil {
		return domain.Timesheet{}, err
	}
	t.ApprovedBy = approvedBy.String
	t.ApprovedAt = mapNullTimePtr(approvedAt)
	t.CreatedAt = t.CreatedAt.UTC()
	t.UpdatedAt = t.UpdatedAt.UTC()
	return t, nil
}

func (r *timesheetsRepo) CreateTimesheet(ctx context.Context, t domain.Timesheet) error {
	ids, err := encodeIDs(t.TaskIDs)
	if err != nil {
		return err
	}
	_, err = r.db.ExecContext(ctx, `
		INSERT INTO timesheets (`+timesheetColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		t.ID, t.EmployeeID, t.WeekStart.String(), t.WeekEnd.String(), ids, t.LunchHours,
		t.Approved, mapStringNull(t.ApprovedBy), mapOptionalTime(t.ApprovedAt), t.Comments,
		ts(t.CreatedAt), ts(t.UpdatedAt),
	)
	return mapWriteErr(err)
}

func (r *timesheetsRepo) GetTimesheetByID(ctx context.Context, id string) (domain.Timesheet, error) {
	t, err := scanTimesheet(r.db.QueryRowContext(ctx,
		`SELECT `+timesheetColumns+` FROM timesheets WHERE id = ?`, id))
	return t, mapNotFound(err)
}

func (r *timesheetsRepo) GetTimesheetForWeek(ctx context.Context, employeeID string, weekStart domain.Date) (domain.Timesheet, error) {
	t, err := scanTimesheet(r.db.QueryRowContext(ctx,
		`SELECT `+timesheetColumns+` FROM timesheets WHERE employee_id = ? AND week_start = ?`,
		employeeID, weekStart.String()))
	return t, mapNotFound(err)
}

func (r *timesheetsRepo) UpdateSubmission(ctx context.Context, id string, taskIDs []string, lunchHours float64, at time.Time) error {
	ids, err := encodeIDs(taskIDs)
	if err != nil {
		return err
	}
	return expectOne(r.db.ExecContext(ctx, `
		UPDATE timesheets SET task_ids = ?, lunch_hours = ?, updated_at = ?
		WHERE id = ? AND approved = 0`,
		ids, lunchHours, ts(at), id,
	))
}

func (r *timesheetsRepo) Approve(ctx context.Context, id, approverID, comments string, at time.Time) error {
	return expectOne(r.db.ExecContext(ctx, `
		UPDATE timesheets
		SET approved = 1, approved_by = ?, approved_at = ?, comments = ?, updated_at = ?
		WHERE id = ? AND approved = 0`,
		approverID, ts(at), comments, ts(at), id,
	))
}

func (r *timesheetsRepo) ListTimesheetsForWeek(ctx context.Context, weekStart domain.Date) ([]domain.Timesheet, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+timesheetColumns+` FROM timesheets WHERE week_start = ? ORDER BY employee_id`,
		weekStart.String())
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
