package http

import (
	"net/http"
	"net/url"
	"strconv"

	"github.com/aussiebroadwan/docket/internal/docket/domain"
	"github.com/aussiebroadwan/docket/internal/docket/service"
	"github.com/aussiebroadwan/docket/pkg/docketsdk"
	"github.com/aussiebroadwan/docket/pkg/httpx"
)

type TasksHandler struct {
	TaskService *service.TaskService
}

// parseTaskFilter reads the list query. Bad values come back as field
// reasons rather than being ignored.
func parseTaskFilter(q url.Values) (domain.TaskFilter, map[string]string) {
	f := domain.TaskFilter{AssigneeID: q.Get("assignee_id")}
	errs := map[string]string{}

	for _, s := range q["status"] {
		st, err := domain.ParseTaskStatus(s)
		if err != nil {
			errs["status"] = "unknown status " + strconv.Quote(s)
			continue
		}
		f.Statuses = append(f.Statuses, st)
	}
	for _, s := range q["priority"] {
		p, err := strconv.Atoi(s)
		if err != nil || p < domain.MinPriority || p > domain.MaxPriority {
			errs["priority"] = "priority must be between 1 and 5"
			continue
		}
		f.Priorities = append(f.Priorities, p)
	}
	for key, dst := range map[string]*domain.Date{"due_from": &f.DueFrom, "due_to": &f.DueTo} {
		s := q.Get(key)
		if s == "" {
			continue
		}
		d, err := domain.ParseDate(s)
		if err != nil {
			errs[key] = "must be a date formatted YYYY-MM-DD"
			continue
		}
		*dst = d
	}

	if len(errs) == 0 {
		return f, nil
	}
	return f, errs
}

// HandleCreate godoc
//
//	@Summary		Create a task
//	@Description	Without an assignee the task goes to the caller. The caller's role must allow assigning to the assignee's role.
//	@Tags			Tasks
//	@Accept			json
//	@Produce		json
//	@Param			request	body		docketsdk.CreateTaskRequest			true	"Task"
//	@Success		201		{object}	docketsdk.Task
//	@Failure		400		{object}	docketsdk.ValidationErrorResponse	"Validation failed"
//	@Failure		403		{object}	docketsdk.ErrorResponse				"Cannot assign to that user"
//	@Security		BearerAuth
//	@Router			/v1/tasks [post].
func (h *TasksHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var req docketsdk.CreateTaskRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if errs := req.Validate(); errs != nil {
		httpx.WriteValidation(w, errs)
		return
	}
	due, _ := domain.ParseDate(req.DueDate) // checked by Validate

	t, err := h.TaskService.CreateTask(r.Context(), actorOf(r), service.TaskInput{
		Title:         req.Title,
		Description:   req.Description,
		DueDate:       due,
		Status:        req.Status,
		AssigneeID:    req.AssigneeID,
		ReviewerID:    req.ReviewerID,
		Priority:      req.Priority,
		EstimateHours: req.EstimateHours,
		ActualHours:   req.ActualHours,
		Notes:         req.Notes,
	})
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, toTask(t))
}

// HandleList godoc
//
//	@Summary		List tasks
//	@Description	Tasks the caller may view, ordered by due date. Repeat status or priority to match any of several values.
//	@Tags			Tasks
//	@Produce		json
//	@Param			assignee_id	query		string		false	"Assignee"
//	@Param			status		query		[]string	false	"Status"	collectionFormat(multi)
//	@Param			priority	query		[]int		false	"Priority"	collectionFormat(multi)
//	@Param			due_from	query		string		false	"First due date, YYYY-MM-DD"
//	@Param			due_to		query		string		false	"Last due date, YYYY-MM-DD"
//	@Success		200			{object}	docketsdk.TasksResponse
//	@Failure		400			{object}	docketsdk.ValidationErrorResponse	"Bad filter"
//	@Security		BearerAuth
//	@Router			/v1/tasks [get].
func (h *TasksHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	f, errs := parseTaskFilter(r.URL.Query())
	if errs != nil {
		httpx.WriteValidation(w, errs)
		return
	}

	tasks, err := h.TaskService.ListTasks(r.Context(), actorOf(r), f)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, docketsdk.TasksResponse{Tasks: toTasks(tasks)})
}

// HandleBoard godoc
//
//	@Summary		Task board
//	@Description	One person's tasks split into outstanding, completed and backlog (outstanding and past due).
//	@Tags			Tasks
//	@Produce		json
//	@Param			assignee_id	query		string	false	"Assignee, defaults to the caller"
//	@Success		200			{object}	docketsdk.TaskBoardResponse
//	@Failure		403			{object}	docketsdk.ErrorResponse	"Not visible to the caller"
//	@Failure		404			{object}	docketsdk.ErrorResponse	"Unknown user"
//	@Security		BearerAuth
//	@Router			/v1/tasks/board [get].
func (h *TasksHandler) HandleBoard(w http.ResponseWriter, r *http.Request) {
	b, err := h.TaskService.Board(r.Context(), actorOf(r), r.URL.Query().Get("assignee_id"), domain.Date{})
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, docketsdk.TaskBoardResponse{
		Outstanding: toTasks(b.Outstanding),
		Completed:   toTasks(b.Completed),
		Backlog:     toTasks(b.Backlog),
	})
}

// HandleGet godoc
//
//	@Summary		Get a task
//	@Tags			Tasks
//	@Produce		json
//	@Param			id	path		string	true	"Task ID"
//	@Success		200	{object}	docketsdk.Task
//	@Failure		403	{object}	docketsdk.ErrorResponse	"Not visible to the caller"
//	@Failure		404	{object}	docketsdk.ErrorResponse	"Unknown task"
//	@Security		BearerAuth
//	@Router			/v1/tasks/{id} [get].
func (h *TasksHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	t, err := h.TaskService.GetTask(r.Context(), actorOf(r), r.PathValue("id"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toTask(t))
}

// HandleUpdate godoc
//
//	@Summary		Update a task
//	@Description	Only the fields present in the body change.
//	@Tags			Tasks
//	@Accept			json
//	@Produce		json
//	@Param			id		path		string						true	"Task ID"
//	@Param			request	body		docketsdk.UpdateTaskRequest	true	"Changed fields"
//	@Success		200		{object}	docketsdk.Task
//	@Failure		400		{object}	docketsdk.ValidationErrorResponse	"Validation failed"
//	@Failure		403		{object}	docketsdk.ErrorResponse				"Caller may not edit this task"
//	@Failure		404		{object}	docketsdk.ErrorResponse				"Unknown task"
//	@Security		BearerAuth
//	@Router			/v1/tasks/{id} [patch].
func (h *TasksHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	var req docketsdk.UpdateTaskRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if errs := req.Validate(); errs != nil {
		httpx.WriteValidation(w, errs)
		return
	}

	patch := service.TaskPatch{
		Title:         req.Title,
		Description:   req.Description,
		Status:        req.Status,
		AssigneeID:    req.AssigneeID,
		ReviewerID:    req.ReviewerID,
		Priority:      req.Priority,
		EstimateHours: req.EstimateHours,
		ActualHours:   req.ActualHours,
		Notes:         req.Notes,
	}
	if req.DueDate != nil {
		due, _ := domain.ParseDate(*req.DueDate)
		patch.DueDate = &due
	}

	t, err := h.TaskService.UpdateTask(r.Context(), actorOf(r), r.PathValue("id"), patch)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toTask(t))
}

// HandleDelete godoc
//
//	@Summary		Delete a task
//	@Tags			Tasks
//	@Param			id	path	string	true	"Task ID"
//	@Success		204
//	@Failure		403	{object}	docketsdk.ErrorResponse	"Caller may not edit this task"
//	@Failure		404	{object}	docketsdk.ErrorResponse	"Unknown task"
//	@Security		BearerAuth
//	@Router			/v1/tasks/{id} [delete].
func (h *TasksHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	if err := h.TaskService.DeleteTask(r.Context(), actorOf(r), r.PathValue("id")); err != nil {
		writeServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
