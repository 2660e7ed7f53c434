package postgres

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/aussiebroadwan/docket/internal/docket/domain"
	"github.com/jackc/pgx/v5"
)

type tasksRepo struct {
	db querier
}

const taskColumns = `id, title, description, due_date, status, assignee_id, assignee_ref,
	reviewer_id, priority, estimate_hours, actual_hours, notes, created_by, created_at, updated_at`

func scanTask(row pgx.Row) (domain.Task, error) {
	var (
		t        domain.Task
		due      time.Time
		status   string
		reviewer *string
	)
	err := row.Scan(
		&t.ID, &t.Title, &t.Description, &due, &status, &t.AssigneeID, &t.AssigneeRef,
		&reviewer, &t.Priority, &t.EstimateHours, &t.ActualHours, &t.Notes, &t.CreatedBy,
		&t.CreatedAt, &t.UpdatedAt,
	)
	if err != nil {
		return domain.Task{}, err
	}
	t.DueDate = domain.DateOf(due)
	t.Status = domain.TaskStatus(status)
	t.ReviewerID = deref(reviewer)
	t.CreatedAt = t.CreatedAt.UTC()
	t.UpdatedAt = t.UpdatedAt.UTC()
	return t, nil
}

func (r *tasksRepo) CreateTask(ctx context.Context, t domain.Task) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO tasks (`+taskColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`,
		t.ID, t.Title, t.Description, t.DueDate.Time(), string(t.Status), t.AssigneeID, t.AssigneeRef,
		nullable(t.ReviewerID), t.Priority, t.EstimateHours, t.ActualHours, t.Notes, t.CreatedBy,
		t.CreatedAt.UTC(), t.UpdatedAt.UTC(),
	)
	return mapWriteErr(err)
}

func (r *tasksRepo) GetTaskByID(ctx context.Context, id string) (domain.Task, error) {
	t, err := scanTask(r.db.QueryRow(ctx, `SELECT `+taskColumns+` FROM tasks WHERE id = $1`, id))
	return t, mapNotFound(err)
}

func (r *tasksRepo) ListTasks(ctx context.Context, f domain.TaskFilter) ([]domain.Task, error) {
	var (
		where []string
		args  []any
	)
	arg := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if f.AssigneeID != "" {
		where = append(where, "assignee_id = "+arg(f.AssigneeID))
	}
	if len(f.Statuses) > 0 {
		statuses := make([]string, len(f.Statuses))
		for i, s := range f.Statuses {
			statuses[i] = string(s)
		}
		where = append(where, "status = ANY("+arg(statuses)+")")
	}
	if len(f.Priorities) > 0 {
		where = append(where, "priority = ANY("+arg(f.Priorities)+")")
	}
	if !f.DueFrom.IsZero() {
		where = append(where, "due_date >= "+arg(f.DueFrom.Time()))
	}
	if !f.DueTo.IsZero() {
		where = append(where, "due_date <= "+arg(f.DueTo.Time()))
	}

	q := `SELECT ` + taskColumns + ` FROM tasks`
	if len(where) > 0 {
		q += ` WHERE ` + strings.Join(where, " AND ")
	}
	q += ` ORDER BY due_date, created_at, id`

	rows, err := r.db.Query(ctx, q, args...)
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
	return expectOne(r.db.Exec(ctx, `
		UPDATE tasks SET
			title = $1, description = $2, due_date = $3, status = $4, assignee_id = $5,
			assignee_ref = $6, reviewer_id = $7, priority = $8, estimate_hours = $9,
			actual_hours = $10, notes = $11, updated_at = $12
		WHERE id = $13`,
		t.Title, t.Description, t.DueDate.Time(), string(t.Status), t.AssigneeID,
		t.AssigneeRef, nullable(t.ReviewerID), t.Priority, t.EstimateHours,
		t.ActualHours, t.Notes, t.UpdatedAt.UTC(),
		t.ID,
	))
}

func (r *tasksRepo) DeleteTask(ctx context.Context, id string) error {
	return expectOne(r.db.Exec(ctx, `DELETE FROM tasks WHERE id = $1`, id))
}
