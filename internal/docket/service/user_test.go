package service

import (
	"context"
	"testing"
	"time"

	"github.com/aussiebroadwan/docket/internal/docket/domain"
	"github.com/stretchr/testify/require"
)

func TestListAndGetUsers(t *testing.T) {
	ctx := context.Background()
	st := newStore(t)
	svc := &UserService{Store: st}

	admin := seedUser(t, st, "Admin", domain.RoleOrgAdmin)
	manager := seedUser(t, st, "Manager", domain.RoleManager)
	attorney := seedUser(t, st, "Attorney", domain.RoleAttorney)
	employee := seedUser(t, st, "Employee", domain.RoleEmployee)

	tests := []struct {
		name   string
		viewer domain.User
		want   []string
	}{
		{"admin sees everyone", admin, []string{"Admin", "Attorney", "Employee", "Manager"}},
		{"manager sees downwards", manager, []string{"Attorney", "Employee", "Manager"}},
		{"employee sees peers only", employee, []string{"Employee"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			users, err := svc.ListUsers(ctx, ActorOf(tt.viewer))
			require.NoError(t, err)
			names := make([]string, len(users))
			for i, u := range users {
				names[i] = u.FullName
			}
			require.Equal(t, tt.want, names)
		})
	}

	got, err := svc.GetUser(ctx, ActorOf(manager), attorney.ID)
	require.NoError(t, err)
	require.Equal(t, attorney.ID, got.ID)

	_, err = svc.GetUser(ctx, ActorOf(attorney), manager.ID)
	require.ErrorIs(t, err, ErrForbidden)

	_, err = svc.GetUser(ctx, ActorOf(admin), "missing")
	require.ErrorIs(t, err, ErrUserNotFound)

	me, err := svc.Me(ctx, ActorOf(employee))
	require.NoError(t, err)
	require.Equal(t, employee.Email, me.Email)
}

func TestUpdateProfile(t *testing.T) {
	ctx := context.Background()
	st := newStore(t)
	clk := newClock()
	svc := &UserService{Store: st, Now: clk.Now}
	u := seedUser(t, st, "Jane", domain.RoleAttorney)

	_, err := svc.UpdateProfile(ctx, ActorOf(u), "  ", "")
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)

	clk.Advance(time.Minute)
	got, err := svc.UpdateProfile(ctx, ActorOf(u), " Jane Doe ", "+27 21 555 0100")
	require.NoError(t, err)
	require.Equal(t, "Jane Doe", got.FullName)
	require.Equal(t, "+27 21 555 0100", got.PhoneNumber)
	require.True(t, got.UpdatedAt.After(got.CreatedAt))
}

func TestUpdateUserRole(t *testing.T) {
	ctx := context.Background()
	st := newStore(t)
	svc := &UserService{Store: st}

	admin := seedUser(t, st, "Admin", domain.RoleOrgAdmin)
	jane := seedUser(t, st, "Jane", domain.RoleEmployee)

	_, err := svc.UpdateUserRole(ctx, ActorOf(jane), jane.ID, "org_admin")
	require.ErrorIs(t, err, ErrForbidden)

	_, err = svc.UpdateUserRole(ctx, ActorOf(admin), jane.ID, "wizard")
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)

	_, err = svc.UpdateUserRole(ctx, ActorOf(admin), "missing", "attorney")
	require.ErrorIs(t, err, ErrUserNotFound)

	t.Run("last admin cannot step down", func(t *testing.T) {
		_, err := svc.UpdateUserRole(ctx, ActorOf(admin), admin.ID, "manager")
		require.ErrorIs(t, err, ErrLastAdmin)
	})

	t.Run("role change revokes sessions", func(t *testing.T) {
		sess := domain.Session{ID: "s1", UserID: jane.ID, CreatedAt: monday, ExpiresAt: monday.Add(24 * time.Hour)}
		require.NoError(t, st.Sessions().CreateSession(ctx, sess))

		got, err := svc.UpdateUserRole(ctx, ActorOf(admin), jane.ID, " Legal_Manager ")
		require.NoError(t, err)
		require.Equal(t, domain.RoleLegalManager, got.Role)

		stored, err := st.Sessions().GetSessionByID(ctx, "s1")
		require.NoError(t, err)
		require.NotNil(t, stored.RevokedAt)
	})

	t.Run("a second admin lets the first step down", func(t *testing.T) {
		_, err := svc.UpdateUserRole(ctx, ActorOf(admin), jane.ID, "org_admin")
		require.NoError(t, err)
		got, err := svc.UpdateUserRole(ctx, ActorOf(admin), admin.ID, "manager")
		require.NoError(t, err)
		require.Equal(t, domain.RoleManager, got.Role)
	})
}

func TestCreateUser(t *testing.T) {
	ctx := context.Background()
	st := newStore(t)
	svc := &UserService{Store: st}
	admin := seedUser(t, st, "Admin", domain.RoleOrgAdmin)

	res, err := svc.CreateUser(ctx, ActorOf(admin), CreateUserInput{
		Email: "New@Firm.com", FullName: "New Person", Role: "attorney",
	})
	require.NoError(t, err)
	require.Equal(t, "new@firm.com", res.User.Email)
	require.Len(t, res.GeneratedPassword, 16)

	_, err = svc.CreateUser(ctx, ActorOf(admin), CreateUserInput{
		Email: "new@firm.com", Password: "secret1", FullName: "Dup", Role: "employee",
	})
	require.ErrorIs(t, err, ErrEmailInUse)

	_, err = svc.CreateUser(ctx, ActorOf(admin), CreateUserInput{Email: "x", Password: "1", Role: "?"})
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	require.Len(t, verr.Fields, 4)

	_, err = svc.CreateUser(ctx, Actor{ID: "m", Role: domain.RoleManager}, CreateUserInput{})
	require.ErrorIs(t, err, ErrForbidden)
}
