package http_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/aussiebroadwan/docket/internal/docket/domain"
	"github.com/aussiebroadwan/docket/pkg/docketsdk"
)

func TestUserAdministration(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()

	adminUser := h.seedUser("Olive Admin", domain.RoleOrgAdmin)
	empUser := h.seedUser("Eve Employee", domain.RoleEmployee)
	admin := h.sessionFor(adminUser)
	eve := h.sessionFor(empUser)

	t.Run("roles describe the caller", func(t *testing.T) {
		roles, err := eve.Roles(ctx)
		require.NoError(t, err)
		require.Equal(t, string(domain.RoleEmployee), roles.Role)
		require.False(t, roles.CanManageUsers)
		require.False(t, roles.CanApproveTimesheets)
		require.Equal(t, []string{string(domain.RoleEmployee)}, roles.Assignable)
		require.Len(t, roles.Roles, len(domain.Roles()))

		roles, err = admin.Roles(ctx)
		require.NoError(t, err)
		require.True(t, roles.CanManageUsers)
		require.Len(t, roles.Assignable, len(domain.Roles()))
	})

	t.Run("profile update", func(t *testing.T) {
		me, err := eve.UpdateProfile(ctx, docketsdk.UpdateProfileRequest{FullName: "Eve Q. Employee", PhoneNumber: "+61 400 000 000"})
		require.NoError(t, err)
		require.Equal(t, "Eve Q. Employee", me.FullName)
		require.Equal(t, "+61 400 000 000", me.PhoneNumber)
	})

	t.Run("list and get", func(t *testing.T) {
		users, err := admin.ListUsers(ctx)
		require.NoError(t, err)
		require.Len(t, users, 2)

		u, err := admin.GetUser(ctx, empUser.ID)
		require.NoError(t, err)
		require.Equal(t, empUser.Email, u.Email)

		_, err = admin.GetUser(ctx, "01JNOTAREALUSERID0000000000")
		require.ErrorIs(t, err, docketsdk.ErrNotFound)
	})

	t.Run("direct creation", func(t *testing.T) {
		_, err := eve.CreateUser(ctx, docketsdk.CreateUserRequest{Email: "x@firm.com", FullName: "X", Role: "employee"})
		require.ErrorIs(t, err, docketsdk.ErrForbidden)

		created, err := admin.CreateUser(ctx, docketsdk.CreateUserRequest{
			Email: "temp@firm.com", FullName: "Tess Temp", Role: string(domain.RoleDebtCollector),
		})
		require.NoError(t, err)
		require.Equal(t, string(domain.RoleDebtCollector), created.User.Role)
		require.NotEmpty(t, created.GeneratedPassword)

		_, err = admin.CreateUser(ctx, docketsdk.CreateUserRequest{
			Email: "temp@firm.com", FullName: "Tess Again", Role: "employee",
		})
		requireAPIError(t, err, http.StatusConflict, docketsdk.ErrorCodeEmailInUse)
	})

	t.Run("role change signs the user out", func(t *testing.T) {
		_, err := eve.SetUserRole(ctx, empUser.ID, string(domain.RoleAttorney))
		require.ErrorIs(t, err, docketsdk.ErrForbidden)

		_, err = admin.SetUserRole(ctx, empUser.ID, "emperor")
		require.ErrorIs(t, err, docketsdk.ErrValidation)

		updated, err := admin.SetUserRole(ctx, empUser.ID, string(domain.RoleAttorney))
		require.NoError(t, err)
		require.Equal(t, "Attorney", updated.RoleLabel)

		_, err = eve.Me(ctx)
		require.ErrorIs(t, err, docketsdk.ErrUnauthorized)

		fresh := h.sessionFor(empUser)
		me, err := fresh.Me(ctx)
		require.NoError(t, err)
		require.Equal(t, string(domain.RoleAttorney), me.Role)
	})

	t.Run("last admin keeps the role", func(t *testing.T) {
		_, err := admin.SetUserRole(ctx, adminUser.ID, string(domain.RoleEmployee))
		requireAPIError(t, err, http.StatusConflict, docketsdk.ErrorCodeLastAdmin)
	})
}
