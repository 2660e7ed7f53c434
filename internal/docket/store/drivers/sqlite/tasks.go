package sqlite

import (
	"context"
	"database/sql"
	"strings"

	"github.com/aussiebroadwan/docket/internal/docket/domain"
)

type tasksRepo struct {
	db dbtx
}

const taskColumns = `id, title, description, due_date, status, assignee_id, assignee_ref,
	reviewer_id, priority, estimate_hours, actual_hours, notes, created_by, created_at, updated_at`

func scanTask(row rowScanner) (domain.Task, error) {
	var (
		t        domain.Task
		due      string
		status   string
		reviewer sql.NullString
	)
	err := row.Scan(
		&t.ID, &t.Title, &t.Description, &due, &status, &t.AssigneeID, &t.AssigneeRef,
		&reviewer, &t.Priority, &t.EstimateHours, &t.ActualHours, &t.Notes, &t.CreatedBy,
		&t.CreatedAt, &t.UpdatedAt,
	)
	if err != nil {
		return domain.Task{}, err
	}
	if t.DueDate, err = parseDate(due); err != nil {
		return domain.Task{}, err
	}
	t.Status = domain.TaskStatus(status)
	t.ReviewerID = reviewer.String
	t.CreatedAt = t.CreatedAt.UTC()
	t.UpdatedAt = t.UpdatedAt.UTC()
	return t, nil
}

func (r *tasksRepo) CreateTask(ctx context.Context, t domain.Task) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO tasks (`+taskColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		t.ID, t.Title, t.Description, t.DueDate.String(), string(t.Status), t.AssigneeID, t.AssigneeRef,
		mapStringNull(t.ReviewerID), t.Priority, t.EstimateHours, t.ActualHours, t.Notes, t.CreatedBy,
		ts(t.CreatedAt), ts(t.UpdatedAt),
	)
	return mapWriteErr(err)
}

func (r *tasksRepo) GetTaskByID(ctx context.Context, id string) (domain.Task, error) {
	t, err := scanTask(r.db.QueryRowContext(ctx, `SELECT `+taskColumns+` FROM tasks WHERE id = ?`, id))
	return t, mapNotFound(err)
}

func (r *tasksRepo) ListTasks(ctx context.Context, f domain.TaskFilter) ([]domain.Task, error) {
	var (
		where []string
		args  []any
	)

	if f.AssigneeID != "" {
		where = append(where, "assignee_id = ?")
		args = append(args, f.AssigneeID)
	}
	if len(f.Statuses) > 0 {
		where = append(where, "status IN ("+placeholders(len(f.Statuses))+")")
		for _, s := range f.Statuses {
			args = append(args, string(s))
		}
	}
	if len(f.Priorities) > 0 {
		where = append(where, "priority IN ("+placeholders(len(f.Priorities))+")")
		for _, p := range f.Priorities {
			args = append(args, p)
		}
	}
	// YYYY-MM-DD compares correctly as text.
	if !f.DueFrom.IsZero() {
		where = append(where, "due_date >= ?")
		args = append(args, f.DueFrom.String())
	}
	if !f.DueTo.IsZero() {
		where = append(where, "due_date <= ?")
		args = append(args, f.DueTo.String())
	}

	q := `SELECT ` + taskColumns + ` FROM tasks`
	if len(where) > 0 {
		q += ` WHERE ` + strings.Join(where, " AND ")
	}
	q += ` ORDER BY due_date, created_at, id`

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Task
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

func (r *tasksRepo) UpdateTask(ctx context.Context, t domain.Task) error {
	return expectOne(r.db.ExecContext(ctx, `
		UPDATE tasks SET
			title = ?, description = ?, due_date = ?, status = ?, assignee_id = ?,
			assignee_ref = ?, reviewer_id = ?, priority = ?, estimate_hours = ?,
			actual_hours = ?, notes = ?, updated_at = ?
		WHERE id = ?`,
		t.Title, t.Description, t.DueDate.String(), string(t.Status), t.AssigneeID,
		t.AssigneeRef, mapStringNull(t.ReviewerID), t.Priority, t.EstimateHours,
		t.ActualHours, t.Notes, ts(t.UpdatedAt),
		t.ID,
	))
}

func (r *tasksRepo) DeleteTask(ctx context.Context, id string) error {
	return expectOne(r.db.ExecContext(ctx, `DELETE FROM tasks WHERE id = ?`, id))
}

func placeholders(n int) string {
	return strings.TrimSuffix(strings.Repeat("?, ", n), ", ")
}
