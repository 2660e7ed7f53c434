package docket_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/aussiebroadwan/docket/pkg/docketsdk"
)

// TestBootstrapOnce verifies the bootstrap endpoint refuses a second admin.
func TestBootstrapOnce(t *testing.T) {
	client := setupDocketContainer(t)
	bootstrapAdmin(t, client)

	_, err := client.Bootstrap(t.Context(), bootstrapToken, docketsdk.BootstrapRequest{
		Email: "second@firm.com", FullName: "Second", Password: "password1",
	})
	require.ErrorIs(t, err, docketsdk.ErrConflict)
}

// TestWeeklyWorkflow runs a week end to end: invite staff, assign work,
// submit a timesheet and approve it.
func TestWeeklyWorkflow(t *testing.T) {
	client := setupDocketContainer(t)
	ctx := t.Context()

	admin := bootstrapAdmin(t, client)
	manager := inviteAndRegister(t, client, admin, "mia@firm.com", "Mia Manager", "manager")
	employee := inviteAndRegister(t, client, admin, "eve@firm.com", "Eve Employee", "employee")
	eve := employee.User()

	for _, due := range []string{"2025-12-08", "2025-12-09", "2025-12-10"} {
		_, err := manager.CreateTask(ctx, docketsdk.CreateTaskRequest{
			Title:         "Matter review " + due,
			DueDate:       due,
			AssigneeID:    eve.ID,
			EstimateHours: 14,
		})
		require.NoError(t, err)
	}

	tasks, err := employee.ListTasks(ctx, docketsdk.TaskFilter{AssigneeID: eve.ID})
	require.NoError(t, err)
	require.Len(t, tasks, 3)
	for _, task := range tasks {
		completed := "completed"
		actual := 14.0
		_, err := employee.UpdateTask(ctx, task.ID, docketsdk.UpdateTaskRequest{Status: &completed, ActualHours: &actual})
		require.NoError(t, err)
	}

	rec, err := employee.SubmitTimesheet(ctx, eve.ID, "2025-12-08", 3)
	require.NoError(t, err)
	require.Len(t, rec.TaskIDs, 3)

	view, err := manager.GetTimesheet(ctx, eve.ID, "2025-12-08")
	require.NoError(t, err)
	require.InDelta(t, 45.0, view.Summary.TotalHours, 0.001)
	require.True(t, view.CanApprove)

	approved, err := manager.ApproveTimesheet(ctx, rec.ID, "Good week")
	require.NoError(t, err)
	require.True(t, approved.Approved)

	team, err := manager.TeamOverview(ctx, "2025-12-08")
	require.NoError(t, err)
	var row *docketsdk.TeamRow
	for i := range team.Rows {
		if team.Rows[i].User.ID == eve.ID {
			row = &team.Rows[i]
		}
	}
	require.NotNil(t, row)
	require.True(t, row.Approved)
	require.Equal(t, 3, row.TaskCount)

	require.NoError(t, employee.Logout(ctx))
}

// TestRoleChangeRevokesSessions verifies a promoted user must log in again.
func TestRoleChangeRevokesSessions(t *testing.T) {
	client := setupDocketContainer(t)
	ctx := t.Context()

	admin := bootstrapAdmin(t, client)
	employee := inviteAndRegister(t, client, admin, "eve@firm.com", "Eve Employee", "employee")

	_, err := admin.SetUserRole(ctx, employee.User().ID, "attorney")
	require.NoError(t, err)

	_, err = employee.Me(ctx)
	require.ErrorIs(t, err, docketsdk.ErrUnauthorized)
}
