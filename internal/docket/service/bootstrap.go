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
	ErrBootstrapAlready      = errors.New("system already bootstrapped")
	ErrBootstrapUnauthorized = errors.New("unauthorized bootstrap attempt")
)

type BootstrapService struct {
	Store store.Store
	Token string // DOCKET_BOOTSTRAP_TOKEN; empty disables bootstrap
	Now   func() time.Time
}

type BootstrapInput struct {
	Email    string
	FullName string
	Password string
}

func (s *BootstrapService) IsBootstrapped(ctx context.Context) (bool, error) {
	empty, err := s.Store.Users().IsEmpty(ctx)
	if err != nil {
		return false, err
	}
	return !empty, nil
}

// Bootstrap creates the first org_admin. It only works on an empty user
// table and with the configured token.
func (s *BootstrapService) Bootstrap(ctx context.Context, token string, in BootstrapInput) (domain.User, error) {
	l := slogx.FromContext(ctx)

	// 1. Check the token. Compared by fingerprint to keep it constant time.
	if s.Token == "" || !cryptox.EqualFingerprints(cryptox.FingerprintToken(token), cryptox.FingerprintToken(s.Token)) {
		l.Warn("unauthorized bootstrap attempt")
		return domain.User{}, ErrBootstrapUnauthorized
	}

	// 2. Validate the admin
	email := domain.NormalizeEmail(in.Email)
	fields := map[string]string{}
	if !domain.ValidEmail(email) {
		fields["email"] = "a valid email address is required"
	}
	if strings.TrimSpace(in.FullName) == "" {
		fields["full_name"] = "full name is required"
	}
	if len(in.Password) < MinPasswordLength {
		fields["password"] = ErrWeakPassword.Error()
	}
	if err := invalid(fields); err != nil {
		return domain.User{}, err
	}

	hash, err := cryptox.HashPassword(in.Password)
	if err != nil {
		l.Error("failed to hash admin password", slog.Any("error", err))
		return domain.User{}, err
	}

	// 3. Create the admin, re-checking emptiness inside the transaction
	now := clock(s.Now)
	admin := domain.User{
		ID:           idx.New().String(),
		Email:        email,
		FullName:     strings.TrimSpace(in.FullName),
		Role:         domain.RoleOrgAdmin,
		PasswordHash: hash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	err = s.Store.WithTx(ctx, func(tx store.Tx) error {
		empty, err := tx.Users().IsEmpty(ctx)
		if err != nil {
			return err
		}
		if !empty {
			return ErrBootstrapAlready
		}
		return tx.Users().CreateUser(ctx, admin)
	})
	if err != nil {
		if errors.Is(err, ErrBootstrapAlready) {
			l.Warn("attempted bootstrap on already-bootstrapped system")
		} else {
			l.Error("failed to create admin user", slog.Any("error", err))
		}
		return domain.User{}, err
	}

	l.Info("successfully bootstrapped system", slog.String("admin_user_id", admin.ID))
	return admin, nil
}
