package http

import (
	"net/http"

	"github.com/aussiebroadwan/docket/internal/docket/domain"
	"github.com/aussiebroadwan/docket/internal/docket/service"
	"github.com/aussiebroadwan/docket/pkg/docketsdk"
	"github.com/aussiebroadwan/docket/pkg/httpx"
)

type TimesheetsHandler struct {
	TimesheetService *service.TimesheetService
}

// weekStart parses the week_start path value, answering 400 itself when it
// is not a date.
func weekStart(w http.ResponseWriter, r *http.Request) (domain.Date, bool) {
	d, err := domain.ParseDate(r.PathValue("week_start"))
	if err != nil {
		httpx.WriteValidation(w, map[string]string{"week_start": "must be a date formatted YYYY-MM-DD"})
		return domain.Date{}, false
	}
	return d, true
}

// HandleGet godoc
//
//	@Summary		Weekly timesheet
//	@Description	An employee's tasks due in the week, the totals against the weekly requirement, and the stored submission if any. Any day of the week is accepted and snapped to Monday.
//	@Tags			Timesheets
//	@Produce		json
//	@Param			employee_id	path		string	true	"Employee ID"
//	@Param			week_start	path		string	true	"Day in the week, YYYY-MM-DD"
//	@Success		200			{object}	docketsdk.TimesheetResponse
//	@Failure		400			{object}	docketsdk.ValidationErrorResponse	"Bad date"
//	@Failure		403			{object}	docketsdk.ErrorResponse				"Not visible to the caller"
//	@Failure		404			{object}	docketsdk.ErrorResponse				"Unknown employee"
//	@Security		BearerAuth
//	@Router			/v1/timesheets/{employee_id}/{week_start} [get].
func (h *TimesheetsHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	week, ok := weekStart(w, r)
	if !ok {
		return
	}

	v, err := h.TimesheetService.GetTimesheet(r.Context(), actorOf(r), r.PathValue("employee_id"), week)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toTimesheetResponse(v))
}

// HandleSubmit godoc
//
//	@Summary		Submit a weekly timesheet
//	@Description	Records the week's task list and lunch hours. Resubmitting replaces them until the week is approved.
//	@Tags			Timesheets
//	@Accept			json
//	@Produce		json
//	@Param			employee_id	path		string							true	"Employee ID"
//	@Param			week_start	path		string							true	"Day in the week, YYYY-MM-DD"
//	@Param			request		body		docketsdk.SubmitTimesheetRequest	true	"Lunch hours"
//	@Success		200			{object}	docketsdk.TimesheetRecord
//	@Failure		400			{object}	docketsdk.ValidationErrorResponse	"Validation failed"
//	@Failure		403			{object}	docketsdk.ErrorResponse				"Not the caller's timesheet"
//	@Failure		409			{object}	docketsdk.ErrorResponse				"Already approved"
//	@Security		BearerAuth
//	@Router			/v1/timesheets/{employee_id}/{week_start} [put].
func (h *TimesheetsHandler) HandleSubmit(w http.ResponseWriter, r *http.Request) {
	week, ok := weekStart(w, r)
	if !ok {
		return
	}
	var req docketsdk.SubmitTimesheetRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if errs := req.Validate(); errs != nil {
		httpx.WriteValidation(w, errs)
		return
	}

	ts, err := h.TimesheetService.SubmitTimesheet(r.Context(), actorOf(r), r.PathValue("employee_id"), week, req.LunchHours)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toTimesheetRecord(ts))
}

// HandleApprove godoc
//
//	@Summary		Approve a timesheet
//	@Description	Approval is final. Nobody approves their own timesheet.
//	@Tags			Timesheets
//	@Accept			json
//	@Produce		json
//	@Param			id		path		string								true	"Timesheet ID"
//	@Param			request	body		docketsdk.ApproveTimesheetRequest	false	"Comments"
//	@Success		200		{object}	docketsdk.TimesheetRecord
//	@Failure		403		{object}	docketsdk.ErrorResponse	"Caller may not approve"
//	@Failure		404		{object}	docketsdk.ErrorResponse	"Unknown timesheet"
//	@Failure		409		{object}	docketsdk.ErrorResponse	"Already approved"
//	@Security		BearerAuth
//	@Router			/v1/timesheets/{id}/approve [post].
func (h *TimesheetsHandler) HandleApprove(w http.ResponseWriter, r *http.Request) {
	var req docketsdk.ApproveTimesheetRequest
	if r.ContentLength != 0 && !decodeBody(w, r, &req) {
		return
	}

	ts, err := h.TimesheetService.ApproveTimesheet(r.Context(), actorOf(r), r.PathValue("id"), req.Comments)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toTimesheetRecord(ts))
}

// HandleTeam godoc
//
//	@Summary		Team overview
//	@Description	One row per visible user with the week's task count, hours and approval state.
//	@Tags			Timesheets
//	@Produce		json
//	@Param			week_start	query		string	false	"Day in the week, YYYY-MM-DD. Defaults to the current week."
//	@Success		200			{object}	docketsdk.TeamOverviewResponse
//	@Failure		400			{object}	docketsdk.ValidationErrorResponse	"Bad date"
//	@Security		BearerAuth
//	@Router			/v1/timesheets/team [get].
func (h *TimesheetsHandler) HandleTeam(w http.ResponseWriter, r *http.Request) {
	var week domain.Date
	if s := r.URL.Query().Get("week_start"); s != "" {
		d, err := domain.ParseDate(s)
		if err != nil {
			httpx.WriteValidation(w, map[string]string{"week_start": "must be a date formatted YYYY-MM-DD"})
			return
		}
		week = d
	}

	o, err := h.TimesheetService.TeamOverview(r.Context(), actorOf(r), week)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toTeamOverview(o))
}
