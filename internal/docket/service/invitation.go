package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"strings"
	"time"

	"github.com/aussiebroadwan/docket/internal/docket/domain"
	"github.com/aussiebroadwan/docket/internal/docket/store"
	"github.com/aussiebroadwan/docket/pkg/cryptox"
	"github.com/aussiebroadwan/docket/pkg/idx"
	"github.com/aussiebroadwan/docket/pkg/slogx"
)

var (
	ErrInvitationNotFound   = errors.New("invitation not found")
	ErrInvitationExpired    = errors.New("invitation has expired")
	ErrInvitationExists     = errors.New("a pending invitation already exists for this email")
	ErrInvitationNotPending = errors.New("invitation is no longer pending")
	ErrEmailRegistered      = errors.New("email is already registered")
)

type InvitationService struct {
	Store  store.Store
	Mailer Mailer

	// PublicURL is the base of registration links, e.g. https://docket.example.com.
	PublicURL string
	// TTL defaults to domain.DefaultInvitationTTL.
	TTL time.Duration
	Now func() time.Time
}

// InvitationResult is what create and resend hand back. Token is the raw
// invitation token and is never retrievable again.
type InvitationResult struct {
	Invitation domain.Invitation
	Token      string
	Link       string
}

func (s *InvitationService) ttl() time.Duration {
	if s.TTL <= 0 {
		return domain.DefaultInvitationTTL
	}
	return s.TTL
}

// RegistrationLink is where an invitee completes sign up.
func (s *InvitationService) RegistrationLink(token string) string {
	return strings.TrimRight(s.PublicURL, "/") + "/register?token=" + url.QueryEscape(token)
}

// CreateInvitation invites email to join with role. An empty role means
// employee.
func (s *InvitationService) CreateInvitation(
	ctx context.Context,
	actor Actor,
	email string,
	role string,
	organizationID string,
) (InvitationResult, error) {
	log := slogx.FromContext(ctx)

	// 1. Only user managers may invite
	if !domain.CanManageUsers(actor.Role) {
		log.Warn("invitation create denied", slog.String("actor_role", string(actor.Role)))
		return InvitationResult{}, ErrForbidden
	}

	// 2. Normalise and validate input
	email = domain.NormalizeEmail(email)
	fields := map[string]string{}
	if !domain.ValidEmail(email) {
		fields["email"] = "a valid email address is required"
	}
	r := domain.RoleEmployee
	if strings.TrimSpace(role) != "" {
		parsed, err := domain.ParseRole(role)
		if err != nil {
			fields["role"] = "unknown role"
		}
		r = parsed
	}
	if err := invalid(fields); err != nil {
		return InvitationResult{}, err
	}

	// 3. Mint the token
	token, err := cryptox.GenerateHexToken(cryptox.TokenSize256)
	if err != nil {
		log.Error("failed to generate invitation token", slog.Any("error", err))
		return InvitationResult{}, err
	}

	now := clock(s.Now)
	inv := domain.Invitation{
		ID:             idx.New().String(),
		Email:          email,
		Role:           r,
		TokenHash:      cryptox.FingerprintToken(token),
		InvitedBy:      actor.ID,
		OrganizationID: strings.TrimSpace(organizationID),
		Status:         domain.InvitationPending,
		CreatedAt:      now,
		ExpiresAt:      now.Add(s.ttl()),
	}

	// 4. Check for duplicates and insert atomically. The pending email index
	// catches a concurrent create that slips past the lookup.
	err = s.Store.WithTx(ctx, func(tx store.Tx) error {
		_, err := tx.Invitations().GetPendingInvitationByEmail(ctx, email)
		switch {
		case err == nil:
			return ErrInvitationExists
		case !errors.Is(err, store.ErrNotFound):
			return err
		}

		_, err = tx.Users().GetUserByEmail(ctx, email)
		switch {
		case err == nil:
			return ErrEmailRegistered
		case !errors.Is(err, store.ErrNotFound):
			return err
		}

		if err := tx.Invitations().CreateInvitation(ctx, inv); err != nil {
			if errors.Is(err, store.ErrAlreadyExists) {
				return ErrInvitationExists
			}
			return err
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrInvitationExists) || errors.Is(err, ErrEmailRegistered) {
			log.Warn("invitation rejected", slog.String("email", email), slog.Any("error", err))
		} else {
			log.Error("failed to create invitation", slog.Any("error", err))
		}
		return InvitationResult{}, err
	}

	res := InvitationResult{Invitation: inv, Token: token, Link: s.RegistrationLink(token)}

	// 5. Mail the link. The invitation stands even if delivery fails; the
	// link is in the response and can be resent.
	s.sendInvitation(ctx, res)

	log.Info("invitation created",
		slog.String("invitation_id", inv.ID),
		slog.String("email", inv.Email),
		slog.String("role", string(inv.Role)),
		slog.Time("expires_at", inv.ExpiresAt),
	)
	return res, nil
}

// ValidateInvitation resolves a raw token to its pending invitation. A token
// past its expiry flips the record to expired.
func (s *InvitationService) ValidateInvitation(ctx context.Context, token string) (domain.Invitation, error) {
	log := slogx.FromContext(ctx)

	token = strings.TrimSpace(token)
	if token == "" {
		return domain.Invitation{}, ErrInvitationNotFound
	}

	inv, err := s.Store.Invitations().GetPendingInvitationByTokenHash(ctx, cryptox.FingerprintToken(token))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			log.Warn("invitation token not recognised")
			return domain.Invitation{}, ErrInvitationNotFound
		}
		log.Error("failed to fetch invitation", slog.Any("error", err))
		return domain.Invitation{}, err
	}

	if inv.ExpiredAt(clock(s.Now)) {
		if err := s.Store.Invitations().ExpireInvitation(ctx, inv.ID); err != nil && !errors.Is(err, store.ErrNotFound) {
			log.Error("failed to expire invitation", slog.String("invitation_id", inv.ID), slog.Any("error", err))
			return domain.Invitation{}, err
		}
		log.Info("invitation expired on validation", slog.String("invitation_id", inv.ID))
		return domain.Invitation{}, ErrInvitationExpired
	}

	return inv, nil
}

// AcceptInvitation marks a pending invitation as used by userID.
func (s *InvitationService) AcceptInvitation(ctx context.Context, invitationID, userID string) error {
	return s.accept(ctx, s.Store, invitationID, userID)
}

func (s *InvitationService) accept(ctx context.Context, st store.Store, invitationID, userID string) error {
	if err := st.Invitations().AcceptInvitation(ctx, invitationID, userID, clock(s.Now)); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrInvitationNotFound
		}
		return err
	}
	slogx.FromContext(ctx).Info("invitation accepted",
		slog.String("invitation_id", invitationID),
		slog.String("user_id", userID),
	)
	return nil
}

// ListPendingInvitations lists pending invitations, newest first. An empty
// organizationID lists all of them.
func (s *InvitationService) ListPendingInvitations(ctx context.Context, actor Actor, organizationID string) ([]domain.Invitation, error) {
	if !domain.CanManageUsers(actor.Role) {
		return nil, ErrForbidden
	}
	invs, err := s.Store.Invitations().ListPendingInvitations(ctx, strings.TrimSpace(organizationID))
	if err != nil {
		slogx.FromContext(ctx).Error("failed to list invitations", slog.Any("error", err))
		return nil, err
	}
	return invs, nil
}

// RevokeInvitation deletes the invitation whatever its state.
func (s *InvitationService) RevokeInvitation(ctx context.Context, actor Actor, id string) error {
	log := slogx.FromContext(ctx)

	if !domain.CanManageUsers(actor.Role) {
		return ErrForbidden
	}
	if err := s.Store.Invitations().DeleteInvitation(ctx, id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrInvitationNotFound
		}
		log.Error("failed to delete invitation", slog.String("invitation_id", id), slog.Any("error", err))
		return err
	}

	log.Info("invitation revoked", slog.String("invitation_id", id))
	return nil
}

// ResendInvitation rotates the token and expiry of a pending invitation and
// mails the new link. The previous token stops validating.
func (s *InvitationService) ResendInvitation(ctx context.Context, actor Actor, id string) (InvitationResult, error) {
	log := slogx.FromContext(ctx)

	if !domain.CanManageUsers(actor.Role) {
		return InvitationResult{}, ErrForbidden
	}

	inv, err := s.Store.Invitations().GetInvitationByID(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return InvitationResult{}, ErrInvitationNotFound
		}
		return InvitationResult{}, err
	}
	if inv.Status != domain.InvitationPending {
		return InvitationResult{}, ErrInvitationNotPending
	}

	token, err := cryptox.GenerateHexToken(cryptox.TokenSize256)
	if err != nil {
		log.Error("failed to generate invitation token", slog.Any("error", err))
		return InvitationResult{}, err
	}

	now := clock(s.Now)
	inv.TokenHash = cryptox.FingerprintToken(token)
	inv.ExpiresAt = now.Add(s.ttl())
	inv.ResentAt = &now

	err = s.Store.Invitations().RotateInvitationToken(ctx, inv.ID, inv.TokenHash, inv.ExpiresAt, now)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			// accepted or expired since the read
			return InvitationResult{}, ErrInvitationNotPending
		}
		log.Error("failed to rotate invitation token", slog.String("invitation_id", inv.ID), slog.Any("error", err))
		return InvitationResult{}, err
	}

	res := InvitationResult{Invitation: inv, Token: token, Link: s.RegistrationLink(token)}
	s.sendInvitation(ctx, res)

	log.Info("invitation resent",
		slog.String("invitation_id", inv.ID),
		slog.Time("expires_at", inv.ExpiresAt),
	)
	return res, nil
}

// CleanupExpiredInvitations flips every pending invitation past its expiry
// to expired and reports how many changed.
func (s *InvitationService) CleanupExpiredInvitations(ctx context.Context) (int64, error) {
	n, err := s.Store.Invitations().ExpireStaleInvitations(ctx, clock(s.Now))
	if err != nil {
		slogx.FromContext(ctx).Error("failed to expire stale invitations", slog.Any("error", err))
		return 0, err
	}
	if n > 0 {
		slogx.FromContext(ctx).Info("expired stale invitations", slog.Int64("count", n))
	}
	return n, nil
}

func (s *InvitationService) sendInvitation(ctx context.Context, res InvitationResult) {
	if s.Mailer == nil {
		return
	}
	err := s.Mailer.Send(ctx, Mail{
		To:      res.Invitation.Email,
		Subject: "You have been invited to docket",
		Body: fmt.Sprintf(
			"You have been invited to join docket as %s.\n\nComplete your registration here:\n%s\n\nThis link expires on %s.\n",
			res.Invitation.Role.Label(),
			res.Link,
			res.Invitation.ExpiresAt.Format(time.RFC1123),
		),
	})
	if err != nil {
		slogx.FromContext(ctx).Error("failed to send invitation mail",
			slog.String("invitation_id", res.Invitation.ID),
			slog.Any("error", err),
		)
	}
}
