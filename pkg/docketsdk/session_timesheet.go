package docketsdk

import (
	"context"
	"net/http"
	"net/url"
)

func timesheetPath(employeeID, weekStart string) string {
	return "/v1/timesheets/" + url.PathEscape(employeeID) + "/" + url.PathEscape(weekStart)
}

// GetTimesheet returns an employee's week. weekStart may be any day of the
// week; the server snaps it to Monday.
func (s *Session) GetTimesheet(ctx context.Context, employeeID, weekStart string) (*TimesheetResponse, error) {
	resp, err := s.doAuthRequest(ctx, http.MethodGet, timesheetPath(employeeID, weekStart), nil, nil)
	if err != nil {
		return nil, err
	}

	var ts TimesheetResponse
	if err := decodeJSON(resp, &ts, http.StatusOK); err != nil {
		return nil, err
	}
	return &ts, nil
}

// SubmitTimesheet stores the week's task list and lunch hours. Fails with a
// 409 once the week is approved.
func (s *Session) SubmitTimesheet(ctx context.Context, employeeID, weekStart string, lunchHours float64) (*TimesheetRecord, error) {
	body, headers, err := jsonBody(SubmitTimesheetRequest{LunchHours: lunchHours})
	if err != nil {
		return nil, err
	}

	resp, err := s.doAuthRequest(ctx, http.MethodPut, timesheetPath(employeeID, weekStart), body, headers)
	if err != nil {
		return nil, err
	}

	var rec TimesheetRecord
	if err := decodeJSON(resp, &rec, http.StatusOK); err != nil {
		return nil, err
	}
	return &rec, nil
}

// ApproveTimesheet approves a submitted timesheet. Requires an approver role.
func (s *Session) ApproveTimesheet(ctx context.Context, id, comments string) (*TimesheetRecord, error) {
	body, headers, err := jsonBody(ApproveTimesheetRequest{Comments: comments})
	if err != nil {
		return nil, err
	}

	resp, err := s.doAuthRequest(ctx, http.MethodPost, "/v1/timesheets/"+url.PathEscape(id)+"/approve", body, headers)
	if err != nil {
		return nil, err
	}

	var rec TimesheetRecord
	if err := decodeJSON(resp, &rec, http.StatusOK); err != nil {
		return nil, err
	}
	return &rec, nil
}

// TeamOverview summarises the week for every user the caller may view. An
// empty weekStart means the current week.
func (s *Session) TeamOverview(ctx context.Context, weekStart string) (*TeamOverviewResponse, error) {
	path := "/v1/timesheets/team"
	if weekStart != "" {
		path += "?" + url.Values{"week_start": {weekStart}}.Encode()
	}

	resp, err := s.doAuthRequest(ctx, http.MethodGet, path, nil, nil)
	if err != nil {
		return nil, err
	}

	var out TeamOverviewResponse
	if err := decodeJSON(resp, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}
