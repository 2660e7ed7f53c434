package domain

import (
	"errors"
	"strings"
	"time"
)

type TaskStatus string

const (
	TaskPending    TaskStatus = "pending"
	TaskInProgress TaskStatus = "in-progress"
	TaskCompleted  TaskStatus = "completed"
	TaskApproved   TaskStatus = "approved"
)

var ErrUnknownTaskStatus = errors.New("unknown task status")

func ParseTaskStatus(s string) (TaskStatus, error) {
	st := TaskStatus(strings.ToLower(strings.TrimSpace(s)))
	if !st.Valid() {
		return "", ErrUnknownTaskStatus
	}
	return st, nil
}

func (s TaskStatus) Valid() bool {
	switch s {
	case TaskPending, TaskInProgress, TaskCompleted, TaskApproved:
		return true
	}
	return false
}

// Done is true for completed and approved work.
func (s TaskStatus) Done() bool {
	return s == TaskCompleted || s == TaskApproved
}

// Priority bounds. Tasks created without one get DefaultPriority.
const (
	MinPriority     = 1
	MaxPriority     = 5
	DefaultPriority = 3
)

type Task struct {
	ID          string
	Title       string
	Description string
	DueDate     Date
	Status      TaskStatus
	AssigneeID  string
	// AssigneeRef is a free text assignee (a name or email) on tasks that were
	// imported rather than created through the API. Usually empty.
	AssigneeRef   string
	ReviewerID    string
	Priority      int
	EstimateHours float64
	ActualHours   float64
	Notes         string
	CreatedBy     string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// Validate returns a field -> reason map, empty when the task is well formed.
func (t Task) Validate() map[string]string {
	errs := make(map[string]string)

	if strings.TrimSpace(t.Title) == "" {
		errs["title"] = "title is required"
	}
	if t.DueDate.IsZero() {
		errs["due_date"] = "due date is required"
	}
	if !t.Status.Valid() {
		errs["status"] = "status must be one of pending, in-progress, completed, approved"
	}
	if t.Priority < MinPriority || t.Priority > MaxPriority {
		errs["priority"] = "priority must be between 1 and 5"
	}
	if t.EstimateHours < 0 {
		errs["estimate_hours"] = "estimate hours cannot be negative"
	}
	if t.ActualHours < 0 {
		errs["actual_hours"] = "actual hours cannot be negative"
	}
	if t.AssigneeID == "" {
		errs["assignee_id"] = "assignee is required"
	}

	return errs
}

// TaskFilter narrows a task listing. Zero fields do not filter.
type TaskFilter struct {
	AssigneeID string
	Statuses   []TaskStatus
	Priorities []int
	DueFrom    Date
	DueTo      Date
}

// TaskBoard splits a person's tasks the way the dashboard shows them.
type TaskBoard struct {
	Outstanding []Task
	Completed   []Task
	Backlog     []Task
}

// BuildBoard groups tasks. A task past due and not done is both outstanding
// and in the backlog.
func BuildBoard(tasks []Task, today Date) TaskBoard {
	b := TaskBoard{
		Outstanding: []Task{},
		Completed:   []Task{},
		Backlog:     []Task{},
	}
	for _, t := range tasks {
		if t.Status.Done() {
			b.Completed = append(b.Completed, t)
			continue
		}
		b.Outstanding = append(b.Outstanding, t)
		if !t.DueDate.IsZero() && t.DueDate.Before(today) {
			b.Backlog = append(b.Backlog, t)
		}
	}
	return b
}
