package docketsdk

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
)

func (f TaskFilter) query() string {
	q := url.Values{}
	if f.AssigneeID != "" {
		q.Set("assignee_id", f.AssigneeID)
	}
	for _, st := range f.Statuses {
		q.Add("status", st)
	}
	for _, p := range f.Priorities {
		q.Add("priority", strconv.Itoa(p))
	}
	if f.DueFrom != "" {
		q.Set("due_from", f.DueFrom)
	}
	if f.DueTo != "" {
		q.Set("due_to", f.DueTo)
	}
	if len(q) == 0 {
		return ""
	}
	return "?" + q.Encode()
}

func (s *Session) CreateTask(ctx context.Context, req CreateTaskRequest) (*Task, error) {
	body, headers, err := jsonBody(req)
	if err != nil {
		return nil, err
	}

	resp, err := s.doAuthRequest(ctx, http.MethodPost, "/v1/tasks", body, headers)
	if err != nil {
		return nil, err
	}

	var task Task
	if err := decodeJSON(resp, &task, http.StatusCreated); err != nil {
		return nil, err
	}
	return &task, nil
}

// ListTasks returns the tasks matching f that the caller may view.
func (s *Session) ListTasks(ctx context.Context, f TaskFilter) ([]Task, error) {
	resp, err := s.doAuthRequest(ctx, http.MethodGet, "/v1/tasks"+f.query(), nil, nil)
	if err != nil {
		return nil, err
	}

	var out TasksResponse
	if err := decodeJSON(resp, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return out.Tasks, nil
}

// TaskBoard groups one assignee's tasks. An empty assigneeID means the caller.
func (s *Session) TaskBoard(ctx context.Context, assigneeID string) (*TaskBoardResponse, error) {
	path := "/v1/tasks/board"
	if assigneeID != "" {
		path += "?" + url.Values{"assignee_id": {assigneeID}}.Encode()
	}

	resp, err := s.doAuthRequest(ctx, http.MethodGet, path, nil, nil)
	if err != nil {
		return nil, err
	}

	var board TaskBoardResponse
	if err := decodeJSON(resp, &board, http.StatusOK); err != nil {
		return nil, err
	}
	return &board, nil
}

func (s *Session) GetTask(ctx context.Context, id string) (*Task, error) {
	resp, err := s.doAuthRequest(ctx, http.MethodGet, "/v1/tasks/"+url.PathEscape(id), nil, nil)
	if err != nil {
		return nil, err
	}

	var task Task
	if err := decodeJSON(resp, &task, http.StatusOK); err != nil {
		return nil, err
	}
	return &task, nil
}

func (s *Session) UpdateTask(ctx context.Context, id string, req UpdateTaskRequest) (*Task, error) {
	body, headers, err := jsonBody(req)
	if err != nil {
		return nil, err
	}

	resp, err := s.doAuthRequest(ctx, http.MethodPatch, "/v1/tasks/"+url.PathEscape(id), body, headers)
	if err != nil {
		return nil, err
	}

	var task Task
	if err := decodeJSON(resp, &task, http.StatusOK); err != nil {
		return nil, err
	}
	return &task, nil
}

func (s *Session) DeleteTask(ctx context.Context, id string) error {
	resp, err := s.doAuthRequest(ctx, http.MethodDelete, "/v1/tasks/"+url.PathEscape(id), nil, nil)
	if err != nil {
		return err
	}
	return checkStatusNoContent(resp)
}
