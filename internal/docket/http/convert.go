package http

import (
	"github.com/aussiebroadwan/docket/internal/docket/domain"
	"github.com/aussiebroadwan/docket/internal/docket/service"
	"github.com/aussiebroadwan/docket/pkg/docketsdk"
)

// Domain values to wire types. Password hashes and token fingerprints never
// leave this package.

func toUser(u domain.User) docketsdk.User {
	return docketsdk.User{
		ID:          u.ID,
		Email:       u.Email,
		FullName:    u.FullName,
		Role:        string(u.Role),
		RoleLabel:   u.Role.Label(),
		PhoneNumber: u.PhoneNumber,
		CreatedAt:   u.CreatedAt,
		UpdatedAt:   u.UpdatedAt,
	}
}

func toUsers(us []domain.User) []docketsdk.User {
	out := make([]docketsdk.User, 0, len(us))
	for _, u := range us {
		out = append(out, toUser(u))
	}
	return out
}

func toTask(t domain.Task) docketsdk.Task {
	return docketsdk.Task{
		ID:            t.ID,
		Title:         t.Title,
		Description:   t.Description,
		DueDate:       t.DueDate.String(),
		Status:        string(t.Status),
		AssigneeID:    t.AssigneeID,
		AssigneeRef:   t.AssigneeRef,
		ReviewerID:    t.ReviewerID,
		Priority:      t.Priority,
		EstimateHours: t.EstimateHours,
		ActualHours:   t.ActualHours,
		Notes:         t.Notes,
		CreatedBy:     t.CreatedBy,
		CreatedAt:     t.CreatedAt,
		UpdatedAt:     t.UpdatedAt,
	}
}

func toTasks(ts []domain.Task) []docketsdk.Task {
	out := make([]docketsdk.Task, 0, len(ts))
	for _, t := range ts {
		out = append(out, toTask(t))
	}
	return out
}

func toTimesheetRecord(ts domain.Timesheet) docketsdk.TimesheetRecord {
	taskIDs := ts.TaskIDs
	if taskIDs == nil {
		taskIDs = []string{}
	}
	return docketsdk.TimesheetRecord{
		ID:         ts.ID,
		EmployeeID: ts.EmployeeID,
		WeekStart:  ts.WeekStart.String(),
		WeekEnd:    ts.WeekEnd.String(),
		TaskIDs:    taskIDs,
		LunchHours: ts.LunchHours,
		Approved:   ts.Approved,
		ApprovedBy: ts.ApprovedBy,
		ApprovedAt: ts.ApprovedAt,
		Comments:   ts.Comments,
		CreatedAt:  ts.CreatedAt,
		UpdatedAt:  ts.UpdatedAt,
	}
}

func toSummary(s domain.TimesheetSummary) docketsdk.TimesheetSummary {
	return docketsdk.TimesheetSummary{
		TotalEstimate:  s.TotalEstimate,
		TotalActual:    s.TotalActual,
		LunchHours:     s.LunchHours,
		TotalHours:     s.TotalHours,
		RequiredHours:  s.RequiredHours,
		Shortfall:      s.Shortfall,
		CompletedTasks: s.CompletedTasks,
		Status:         string(s.Status),
	}
}

func toTimesheetResponse(v service.TimesheetView) docketsdk.TimesheetResponse {
	resp := docketsdk.TimesheetResponse{
		Employee:   toUser(v.Employee),
		WeekStart:  v.WeekStart.String(),
		WeekEnd:    v.WeekEnd.String(),
		Tasks:      toTasks(v.Tasks),
		Summary:    toSummary(v.Summary),
		CanApprove: v.CanApprove,
	}
	if v.Timesheet != nil {
		rec := toTimesheetRecord(*v.Timesheet)
		resp.Timesheet = &rec
	}
	return resp
}

func toTeamOverview(o service.TeamOverview) docketsdk.TeamOverviewResponse {
	rows := make([]docketsdk.TeamRow, 0, len(o.Rows))
	for _, row := range o.Rows {
		rows = append(rows, docketsdk.TeamRow{
			User:        toUser(row.User),
			TaskCount:   row.TaskCount,
			ActualHours: row.ActualHours,
			LunchHours:  row.LunchHours,
			TotalHours:  row.TotalHours,
			Status:      string(row.Status),
			Approved:    row.Approved,
			TimesheetID: row.TimesheetID,
		})
	}
	return docketsdk.TeamOverviewResponse{
		WeekStart:     o.WeekStart.String(),
		WeekEnd:       o.WeekEnd.String(),
		RequiredHours: o.RequiredHours,
		Rows:          rows,
	}
}

func toInvitation(inv domain.Invitation) docketsdk.Invitation {
	return docketsdk.Invitation{
		ID:             inv.ID,
		Email:          inv.Email,
		Role:           string(inv.Role),
		InvitedBy:      inv.InvitedBy,
		OrganizationID: inv.OrganizationID,
		Status:         string(inv.Status),
		CreatedAt:      inv.CreatedAt,
		ExpiresAt:      inv.ExpiresAt,
		AcceptedAt:     inv.AcceptedAt,
		AcceptedBy:     inv.AcceptedBy,
		ResentAt:       inv.ResentAt,
	}
}

func toInvitationToken(res service.InvitationResult) docketsdk.InvitationTokenResponse {
	return docketsdk.InvitationTokenResponse{
		Invitation: toInvitation(res.Invitation),
		Token:      res.Token,
		Link:       res.Link,
	}
}
