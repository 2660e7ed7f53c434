package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/aussiebroadwan/docket/internal/docket/domain"
	"github.com/aussiebroadwan/docket/internal/docket/store"
	"github.com/aussiebroadwan/docket/pkg/idx"
	"github.com/aussiebroadwan/docket/pkg/slogx"
)

var ErrTaskNotFound = errors.New("task not found")

type TaskService struct {
	Store store.Store
	Now   func() time.Time
}

// TaskInput creates a task. Zero Status and Priority take the defaults, and
// an empty AssigneeID assigns the task to its creator.
type TaskInput struct {
	Title         string
	Description   string
	DueDate       domain.Date
	Status        string
	AssigneeID    string
	ReviewerID    string
	Priority      int
	EstimateHours float64
	ActualHours   float64
	Notes         string
}

// TaskPatch updates the non-nil fields of a task.
type TaskPatch struct {
	Title         *string
	Description   *string
	DueDate       *domain.Date
	Status        *string
	AssigneeID    *string
	ReviewerID    *string
	Priority      *int
	EstimateHours *float64
	ActualHours   *float64
	Notes         *string
}

// roleOf resolves a user's role, ErrUserNotFound when missing.
func (s *TaskService) roleOf(ctx context.Context, userID string) (domain.Role, error) {
	u, err := s.Store.Users().GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return "", ErrUserNotFound
		}
		return "", err
	}
	return u.Role, nil
}

func canViewTask(viewer Actor, t domain.Task, assignee domain.Role) bool {
	return viewer.ID == t.CreatedBy || viewer.ID == t.AssigneeID || domain.CanViewTasksFor(viewer.Role, assignee)
}

func canEditTask(actor Actor, t domain.Task, assignee domain.Role) bool {
	return actor.ID == t.CreatedBy || domain.CanCreateTaskFor(actor.Role, assignee)
}

// checkFrozen rejects changes to approved work. An approved task is left to
// approvers, and a task listed on an approved timesheet is read only.
func (s *TaskService) checkFrozen(ctx context.Context, actor Actor, t domain.Task) error {
	if t.Status == domain.TaskApproved && !domain.CanApproveTimesheets(actor.Role) {
		return ErrForbidden
	}
	_, locked, err := approvedSheetFor(ctx, s.Store, t)
	if err != nil {
		return err
	}
	if locked {
		return ErrTimesheetApproved
	}
	return nil
}

// parseStatus maps "" to pending and anything unknown to a field error.
func parseStatus(s string, fields map[string]string) domain.TaskStatus {
	if strings.TrimSpace(s) == "" {
		return domain.TaskPending
	}
	st, err := domain.ParseTaskStatus(s)
	if err != nil {
		fields["status"] = "status must be one of pending, in-progress, completed, approved"
	}
	return st
}

func (s *TaskService) CreateTask(ctx context.Context, creator Actor, in TaskInput) (domain.Task, error) {
	log := slogx.FromContext(ctx)

	// 1. Build and validate
	fields := map[string]string{}
	now := clock(s.Now)
	t := domain.Task{
		ID:            idx.New().String(),
		Title:         strings.TrimSpace(in.Title),
		Description:   in.Description,
		DueDate:       in.DueDate,
		Status:        parseStatus(in.Status, fields),
		AssigneeID:    strings.TrimSpace(in.AssigneeID),
		ReviewerID:    strings.TrimSpace(in.ReviewerID),
		Priority:      in.Priority,
		EstimateHours: in.EstimateHours,
		ActualHours:   in.ActualHours,
		Notes:         in.Notes,
		CreatedBy:     creator.ID,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if t.AssigneeID == "" {
		t.AssigneeID = creator.ID
	}
	if t.Priority == 0 {
		t.Priority = domain.DefaultPriority
	}
	for k, v := range t.Validate() {
		if _, ok := fields[k]; !ok {
			fields[k] = v
		}
	}
	if err := invalid(fields); err != nil {
		return domain.Task{}, err
	}

	// 2. Resolve the people involved
	assignee, err := s.roleOf(ctx, t.AssigneeID)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return domain.Task{}, invalid(map[string]string{"assignee_id": "unknown user"})
		}
		return domain.Task{}, err
	}
	if t.ReviewerID != "" {
		if _, err := s.roleOf(ctx, t.ReviewerID); err != nil {
			if errors.Is(err, ErrUserNotFound) {
				return domain.Task{}, invalid(map[string]string{"reviewer_id": "unknown user"})
			}
			return domain.Task{}, err
		}
	}

	// 3. Permission checks
	if !domain.CanCreateTaskFor(creator.Role, assignee) {
		log.Warn("task create denied",
			slog.String("assignee_id", t.AssigneeID),
			slog.String("assignee_role", string(assignee)),
		)
		return domain.Task{}, ErrForbidden
	}
	if t.Status == domain.TaskApproved && !domain.CanApproveTimesheets(creator.Role) {
		return domain.Task{}, ErrForbidden
	}

	if err := s.Store.Tasks().CreateTask(ctx, t); err != nil {
		log.Error("failed to create task", slog.Any("error", err))
		return domain.Task{}, err
	}

	log.Info("task created",
		slog.String("task_id", t.ID),
		slog.String("assignee_id", t.AssigneeID),
		slog.String("due_date", t.DueDate.String()),
	)
	return t, nil
}

func (s *TaskService) load(ctx context.Context, id string) (domain.Task, domain.Role, error) {
	t, err := s.Store.Tasks().GetTaskByID(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.Task{}, "", ErrTaskNotFound
		}
		slogx.FromContext(ctx).Error("failed to fetch task", slog.String("task_id", id), slog.Any("error", err))
		return domain.Task{}, "", err
	}
	role, err := s.roleOf(ctx, t.AssigneeID)
	if err != nil && !errors.Is(err, ErrUserNotFound) {
		return domain.Task{}, "", err
	}
	return t, role, nil
}

func (s *TaskService) GetTask(ctx context.Context, viewer Actor, id string) (domain.Task, error) {
	t, assignee, err := s.load(ctx, id)
	if err != nil {
		return domain.Task{}, err
	}
	if !canViewTask(viewer, t, assignee) {
		return domain.Task{}, ErrForbidden
	}
	return t, nil
}

// ListTasks returns the tasks matching f that the viewer may see, by due
// date then creation time.
func (s *TaskService) ListTasks(ctx context.Context, viewer Actor, f domain.TaskFilter) ([]domain.Task, error) {
	log := slogx.FromContext(ctx)

	tasks, err := s.Store.Tasks().ListTasks(ctx, f)
	if err != nil {
		log.Error("failed to list tasks", slog.Any("error", err))
		return nil, err
	}
	roles, err := s.roles(ctx)
	if err != nil {
		log.Error("failed to list users", slog.Any("error", err))
		return nil, err
	}

	out := make([]domain.Task, 0, len(tasks))
	for _, t := range tasks {
		if canViewTask(viewer, t, roles[t.AssigneeID]) {
			out = append(out, t)
		}
	}
	return out, nil
}

func (s *TaskService) roles(ctx context.Context) (map[string]domain.Role, error) {
	users, err := s.Store.Users().ListUsers(ctx)
	if err != nil {
		return nil, err
	}
	m := make(map[string]domain.Role, len(users))
	for _, u := range users {
		m[u.ID] = u.Role
	}
	return m, nil
}

func (s *TaskService) UpdateTask(ctx context.Context, actor Actor, id string, p TaskPatch) (domain.Task, error) {
	log := slogx.FromContext(ctx)

	t, assignee, err := s.load(ctx, id)
	if err != nil {
		return domain.Task{}, err
	}
	if !canEditTask(actor, t, assignee) {
		log.Warn("task update denied", slog.String("task_id", id))
		return domain.Task{}, ErrForbidden
	}
	if err := s.checkFrozen(ctx, actor, t); err != nil {
		if errors.Is(err, ErrForbidden) || errors.Is(err, ErrTimesheetApproved) {
			log.Warn("update of approved task rejected", slog.String("task_id", id), slog.Any("error", err))
		} else {
			log.Error("failed to check approval state", slog.String("task_id", id), slog.Any("error", err))
		}
		return domain.Task{}, err
	}

	// 1. Apply the patch
	fields := map[string]string{}
	prevStatus := t.Status
	if p.Title != nil {
		t.Title = strings.TrimSpace(*p.Title)
	}
	if p.Description != nil {
		t.Description = *p.Description
	}
	if p.DueDate != nil {
		t.DueDate = *p.DueDate
	}
	if p.Status != nil {
		t.Status = parseStatus(*p.Status, fields)
	}
	if p.ReviewerID != nil {
		t.ReviewerID = strings.TrimSpace(*p.ReviewerID)
	}
	if p.Priority != nil {
		t.Priority = *p.Priority
	}
	if p.EstimateHours != nil {
		t.EstimateHours = *p.EstimateHours
	}
	if p.ActualHours != nil {
		t.ActualHours = *p.ActualHours
	}
	if p.Notes != nil {
		t.Notes = *p.Notes
	}
	reassigned := false
	if p.AssigneeID != nil && strings.TrimSpace(*p.AssigneeID) != t.AssigneeID {
		t.AssigneeID = strings.TrimSpace(*p.AssigneeID)
		reassigned = true
	}
	for k, v := range t.Validate() {
		if _, ok := fields[k]; !ok {
			fields[k] = v
		}
	}
	if err := invalid(fields); err != nil {
		return domain.Task{}, err
	}

	// 2. Reassignment repeats the create check on the new assignee
	if reassigned {
		role, err := s.roleOf(ctx, t.AssigneeID)
		if err != nil {
			if errors.Is(err, ErrUserNotFound) {
				return domain.Task{}, invalid(map[string]string{"assignee_id": "unknown user"})
			}
			return domain.Task{}, err
		}
		if !domain.CanCreateTaskFor(actor.Role, role) {
			log.Warn("task reassignment denied", slog.String("task_id", id), slog.String("assignee_id", t.AssigneeID))
			return domain.Task{}, ErrForbidden
		}
	}
	if p.ReviewerID != nil && t.ReviewerID != "" {
		if _, err := s.roleOf(ctx, t.ReviewerID); err != nil {
			if errors.Is(err, ErrUserNotFound) {
				return domain.Task{}, invalid(map[string]string{"reviewer_id": "unknown user"})
			}
			return domain.Task{}, err
		}
	}

	// 3. Approval is reserved to approvers
	if t.Status == domain.TaskApproved && prevStatus != domain.TaskApproved && !domain.CanApproveTimesheets(actor.Role) {
		log.Warn("task approval denied", slog.String("task_id", id))
		return domain.Task{}, ErrForbidden
	}

	t.UpdatedAt = clock(s.Now)
	if err := s.Store.Tasks().UpdateTask(ctx, t); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.Task{}, ErrTaskNotFound
		}
		log.Error("failed to update task", slog.String("task_id", id), slog.Any("error", err))
		return domain.Task{}, err
	}

	log.Info("task updated", slog.String("task_id", id), slog.String("status", string(t.Status)))
	return t, nil
}

func (s *TaskService) DeleteTask(ctx context.Context, actor Actor, id string) error {
	log := slogx.FromContext(ctx)

	t, assignee, err := s.load(ctx, id)
	if err != nil {
		return err
	}
	if !canEditTask(actor, t, assignee) {
		log.Warn("task delete denied", slog.String("task_id", id))
		return ErrForbidden
	}
	if err := s.checkFrozen(ctx, actor, t); err != nil {
		if errors.Is(err, ErrForbidden) || errors.Is(err, ErrTimesheetApproved) {
			log.Warn("delete of approved task rejected", slog.String("task_id", id), slog.Any("error", err))
		} else {
			log.Error("failed to check approval state", slog.String("task_id", id), slog.Any("error", err))
		}
		return err
	}
	if err := s.Store.Tasks().DeleteTask(ctx, id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrTaskNotFound
		}
		log.Error("failed to delete task", slog.String("task_id", id), slog.Any("error", err))
		return err
	}

	log.Info("task deleted", slog.String("task_id", id))
	return nil
}

// Board groups one person's tasks into outstanding, completed and backlog.
// An empty assigneeID means the viewer.
func (s *TaskService) Board(ctx context.Context, viewer Actor, assigneeID string, today domain.Date) (domain.TaskBoard, error) {
	if assigneeID == "" {
		assigneeID = viewer.ID
	}
	if assigneeID != viewer.ID {
		role, err := s.roleOf(ctx, assigneeID)
		if err != nil {
			return domain.TaskBoard{}, err
		}
		if !domain.CanViewTasksFor(viewer.Role, role) {
			return domain.TaskBoard{}, ErrForbidden
		}
	}
	if today.IsZero() {
		today = domain.DateOf(clock(s.Now))
	}

	tasks, err := s.Store.Tasks().ListTasks(ctx, domain.TaskFilter{AssigneeID: assigneeID})
	if err != nil {
		slogx.FromContext(ctx).Error("failed to list tasks", slog.Any("error", err))
		return domain.TaskBoard{}, err
	}
	return domain.BuildBoard(tasks, today), nil
}
