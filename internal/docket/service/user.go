package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/aussiebroadwan/docket/internal/docket/domain"
	"github.com/aussiebroadwan/docket/internal/docket/store"
	"github.com/aussiebroadwan/docket/pkg/cryptox"
	"github.com/aussiebroadwan/docket/pkg/idx"
	"github.com/aussiebroadwan/docket/pkg/slogx"
)

var (
	ErrUserNotFound = errors.New("user not found")
	ErrLastAdmin    = errors.New("the last org admin cannot change their own role")
)

type UserService struct {
	Store store.Store
	Now   func() time.Time
}

// CreateUserInput is direct account creation by an administrator. An empty
// Password gets a generated one, returned once in CreateUserResult.
type CreateUserInput struct {
	Email       string
	Password    string
	FullName    string
	Role        string
	PhoneNumber string
}

type CreateUserResult struct {
	User domain.User
	// GeneratedPassword is set only when the input carried no password.
	GeneratedPassword string
}

func (s *UserService) lookup(ctx context.Context, id string) (domain.User, error) {
	u, err := s.Store.Users().GetUserByID(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.User{}, ErrUserNotFound
		}
		slogx.FromContext(ctx).Error("failed to fetch user", slog.String("user_id", id), slog.Any("error", err))
		return domain.User{}, err
	}
	return u, nil
}

// Me returns the caller's own record.
func (s *UserService) Me(ctx context.Context, actor Actor) (domain.User, error) {
	return s.lookup(ctx, actor.ID)
}

// GetUser returns a user the viewer is allowed to see: themselves, or anyone
// whose tasks they may view.
func (s *UserService) GetUser(ctx context.Context, viewer Actor, id string) (domain.User, error) {
	u, err := s.lookup(ctx, id)
	if err != nil {
		return domain.User{}, err
	}
	if u.ID != viewer.ID && !domain.CanViewTasksFor(viewer.Role, u.Role) {
		return domain.User{}, ErrForbidden
	}
	return u, nil
}

// ListUsers returns the viewer plus every user they may view, by name.
func (s *UserService) ListUsers(ctx context.Context, viewer Actor) ([]domain.User, error) {
	all, err := s.Store.Users().ListUsers(ctx)
	if err != nil {
		slogx.FromContext(ctx).Error("failed to list users", slog.Any("error", err))
		return nil, err
	}
	return visibleUsers(all, viewer), nil
}

func visibleUsers(all []domain.User, viewer Actor) []domain.User {
	out := make([]domain.User, 0, len(all))
	for _, u := range all {
		if u.ID == viewer.ID || domain.CanViewTasksFor(viewer.Role, u.Role) {
			out = append(out, u)
		}
	}
	return out
}

// UpdateProfile changes the caller's own name and phone number.
func (s *UserService) UpdateProfile(ctx context.Context, actor Actor, fullName, phoneNumber string) (domain.User, error) {
	log := slogx.FromContext(ctx)

	fullName = strings.TrimSpace(fullName)
	if fullName == "" {
		return domain.User{}, invalid(map[string]string{"full_name": "full name is required"})
	}

	now := clock(s.Now)
	if err := s.Store.Users().UpdateProfile(ctx, actor.ID, fullName, strings.TrimSpace(phoneNumber), now); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.User{}, ErrUserNotFound
		}
		log.Error("failed to update profile", slog.Any("error", err))
		return domain.User{}, err
	}

	log.Info("profile updated", slog.String("user_id", actor.ID))
	return s.lookup(ctx, actor.ID)
}

// UpdateUserRole changes a user's role. Their sessions are revoked so no
// token keeps carrying the old role.
func (s *UserService) UpdateUserRole(ctx context.Context, actor Actor, userID, role string) (domain.User, error) {
	log := slogx.FromContext(ctx)

	if !domain.CanManageUsers(actor.Role) {
		log.Warn("role change denied", slog.String("target_user_id", userID))
		return domain.User{}, ErrForbidden
	}
	r, err := domain.ParseRole(role)
	if err != nil {
		return domain.User{}, invalid(map[string]string{"role": "unknown role"})
	}

	now := clock(s.Now)
	var updated domain.User
	err = s.Store.WithTx(ctx, func(tx store.Tx) error {
		u, err := tx.Users().GetUserByID(ctx, userID)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return ErrUserNotFound
			}
			return err
		}
		if u.Role == r {
			updated = u
			return nil
		}

		if u.Role == domain.RoleOrgAdmin {
			admins, err := tx.Users().CountByRole(ctx, domain.RoleOrgAdmin)
			if err != nil {
				return err
			}
			if admins <= 1 {
				return ErrLastAdmin
			}
		}

		if err := tx.Users().UpdateRole(ctx, u.ID, r, now); err != nil {
			return err
		}
		if err := tx.Sessions().RevokeUserSessions(ctx, u.ID, now); err != nil {
			return err
		}
		u.Role = r
		u.UpdatedAt = now
		updated = u
		return nil
	})
	if err != nil {
		if !errors.Is(err, ErrUserNotFound) && !errors.Is(err, ErrLastAdmin) {
			log.Error("failed to update role", slog.String("target_user_id", userID), slog.Any("error", err))
		}
		return domain.User{}, err
	}

	log.Info("user role updated",
		slog.String("target_user_id", userID),
		slog.String("role", string(r)),
	)
	return updated, nil
}

// CreateUser adds an account directly, bypassing invitations.
func (s *UserService) CreateUser(ctx context.Context, actor Actor, in CreateUserInput) (CreateUserResult, error) {
	log := slogx.FromContext(ctx)

	if !domain.CanManageUsers(actor.Role) {
		return CreateUserResult{}, ErrForbidden
	}

	email := domain.NormalizeEmail(in.Email)
	fields := map[string]string{}
	if !domain.ValidEmail(email) {
		fields["email"] = "a valid email address is required"
	}
	if strings.TrimSpace(in.FullName) == "" {
		fields["full_name"] = "full name is required"
	}
	role, err := domain.ParseRole(in.Role)
	if err != nil {
		fields["role"] = "unknown role"
	}
	if in.Password != "" && len(in.Password) < MinPasswordLength {
		fields["password"] = ErrWeakPassword.Error()
	}
	if err := invalid(fields); err != nil {
		return CreateUserResult{}, err
	}

	var res CreateUserResult
	password := in.Password
	if password == "" {
		password, err = cryptox.GeneratePassword()
		if err != nil {
			log.Error("failed to generate password", slog.Any("error", err))
			return CreateUserResult{}, err
		}
		res.GeneratedPassword = password
	}

	hash, err := cryptox.HashPassword(password)
	if err != nil {
		log.Error("failed to hash password", slog.Any("error", err))
		return CreateUserResult{}, err
	}

	now := clock(s.Now)
	res.User = domain.User{
		ID:           idx.New().String(),
		Email:        email,
		FullName:     strings.TrimSpace(in.FullName),
		Role:         role,
		PhoneNumber:  strings.TrimSpace(in.PhoneNumber),
		PasswordHash: hash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.Store.Users().CreateUser(ctx, res.User); err != nil {
		if errors.Is(err, store.ErrAlreadyExists) {
			return CreateUserResult{}, ErrEmailInUse
		}
		log.Error("failed to create user", slog.Any("error", err))
		return CreateUserResult{}, err
	}

	log.Info("user created by admin",
		slog.String("user_id", res.User.ID),
		slog.String("role", string(role)),
		slog.String("created_by", actor.ID),
	)
	return res, nil
}
