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
	"github.com/aussiebroadwan/docket/pkg/jwtx"
	"github.com/aussiebroadwan/docket/pkg/slogx"
)

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrEmailInUse         = errors.New("email already in use")
	ErrWeakPassword       = errors.New("password should be at least 6 characters")
	ErrSessionRevoked     = errors.New("session has been revoked")
	ErrSessionExpired     = errors.New("session has expired")
	ErrInvalidResetToken  = errors.New("password reset token is invalid or expired")
	ErrNoSigningKey       = errors.New("no signing key available")
)

// MinPasswordLength is the shortest password accepted at registration,
// reset and direct user creation.
const MinPasswordLength = 6

// Lifetimes used when the config leaves them unset.
const (
	DefaultSessionTTL       = 7 * 24 * time.Hour
	DefaultPasswordResetTTL = time.Hour
)

// SignerSource hands out the key to sign the next access token with.
// *jwtx.KeyManager implements it.
type SignerSource interface {
	GetSigner() jwtx.Signer
}

type AuthService struct {
	Store       store.Store
	Signers     SignerSource
	Invitations *InvitationService
	Mailer      Mailer

	Issuer         string
	Audience       []string
	SessionTTL     time.Duration
	AccessTokenTTL time.Duration
	PublicURL      string
	Now            func() time.Time
}

type RegisterInput struct {
	Token           string
	FullName        string
	Email           string
	Password        string
	ConfirmPassword string
	PhoneNumber     string
}

// Validate checks the registration form. A short password is reported
// separately through ErrWeakPassword.
func (in RegisterInput) Validate() map[string]string {
	errs := make(map[string]string)
	if strings.TrimSpace(in.FullName) == "" {
		errs["full_name"] = "full name is required"
	}
	if !domain.ValidEmail(domain.NormalizeEmail(in.Email)) {
		errs["email"] = "a valid email address is required"
	}
	if in.Password == "" {
		errs["password"] = "password is required"
	}
	if in.Password != in.ConfirmPassword {
		errs["confirm_password"] = "passwords do not match"
	}
	if strings.TrimSpace(in.Token) == "" {
		errs["token"] = "invitation token is required"
	}
	return errs
}

// LoginResult is a signed access token and the session behind it.
type LoginResult struct {
	AccessToken string
	ExpiresAt   time.Time
	Session     domain.Session
	User        domain.User
}

func (s *AuthService) sessionTTL() time.Duration {
	if s.SessionTTL <= 0 {
		return DefaultSessionTTL
	}
	return s.SessionTTL
}

// Register creates an account from an invitation. The account takes the
// invitation's role, and the invitation is consumed in the same transaction.
func (s *AuthService) Register(ctx context.Context, in RegisterInput) (domain.User, error) {
	log := slogx.FromContext(ctx)

	// 1. Validate the form
	if err := invalid(in.Validate()); err != nil {
		return domain.User{}, err
	}
	if len(in.Password) < MinPasswordLength {
		return domain.User{}, ErrWeakPassword
	}
	email := domain.NormalizeEmail(in.Email)

	// 2. The invitation must be live and addressed to this email
	inv, err := s.Invitations.ValidateInvitation(ctx, in.Token)
	if err != nil {
		return domain.User{}, err
	}
	if inv.Email != email {
		log.Warn("registration email does not match invitation",
			slog.String("invitation_id", inv.ID),
		)
		return domain.User{}, invalid(map[string]string{"email": "email does not match the invitation"})
	}

	// 3. Hash the password
	hash, err := cryptox.HashPassword(in.Password)
	if err != nil {
		log.Error("failed to hash password", slog.Any("error", err))
		return domain.User{}, err
	}

	// 4. Create the user and accept the invitation atomically
	now := clock(s.Now)
	user := domain.User{
		ID:           idx.New().String(),
		Email:        email,
		FullName:     strings.TrimSpace(in.FullName),
		Role:         inv.Role,
		PhoneNumber:  strings.TrimSpace(in.PhoneNumber),
		PasswordHash: hash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	err = s.Store.WithTx(ctx, func(tx store.Tx) error {
		if err := tx.Users().CreateUser(ctx, user); err != nil {
			if errors.Is(err, store.ErrAlreadyExists) {
				return ErrEmailInUse
			}
			return err
		}
		return s.Invitations.accept(ctx, tx, inv.ID, user.ID)
	})
	if err != nil {
		if errors.Is(err, ErrEmailInUse) || errors.Is(err, ErrInvitationNotFound) {
			log.Warn("registration rejected", slog.String("email", email), slog.Any("error", err))
		} else {
			log.Error("failed to register user", slog.Any("error", err))
		}
		return domain.User{}, err
	}

	log.Info("user registered via invitation",
		slog.String("user_id", user.ID),
		slog.String("role", string(user.Role)),
		slog.String("invitation_id", inv.ID),
	)
	return user, nil
}

// Login checks credentials, opens a session and signs an access token for
// it. Unknown email and wrong password look the same to the caller.
func (s *AuthService) Login(ctx context.Context, email, password string) (LoginResult, error) {
	log := slogx.FromContext(ctx)
	email = domain.NormalizeEmail(email)

	// 1. Look the user up and verify the password
	user, err := s.Store.Users().GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			log.Warn("login for unknown email", slog.String("email", email))
			return LoginResult{}, ErrInvalidCredentials
		}
		log.Error("failed to fetch user", slog.Any("error", err))
		return LoginResult{}, err
	}
	if err := cryptox.VerifyPassword(password, user.PasswordHash); err != nil {
		if errors.Is(err, cryptox.ErrPasswordMismatch) {
			log.Warn("login with wrong password", slog.String("user_id", user.ID))
			return LoginResult{}, ErrInvalidCredentials
		}
		log.Error("failed to verify password", slog.String("user_id", user.ID), slog.Any("error", err))
		return LoginResult{}, err
	}

	signer := s.Signers.GetSigner()
	if signer == nil {
		log.Error("no signing key available")
		return LoginResult{}, ErrNoSigningKey
	}

	// 2. Open the session
	now := clock(s.Now)
	sess := domain.Session{
		ID:        idx.New().String(),
		UserID:    user.ID,
		CreatedAt: now,
		ExpiresAt: now.Add(s.sessionTTL()),
	}
	if err := s.Store.Sessions().CreateSession(ctx, sess); err != nil {
		log.Error("failed to create session", slog.Any("error", err))
		return LoginResult{}, err
	}

	// 3. Sign the access token. It never outlives its session.
	ttl := s.AccessTokenTTL
	if ttl <= 0 {
		ttl = jwtx.DefaultAccessTokenTTL
	}
	ttl = min(ttl, sess.ExpiresAt.Sub(now))

	claims := jwtx.NewAccessClaims(jwtx.AccessClaimsParams{
		Subject:   user.ID,
		SessionID: sess.ID,
		Role:      string(user.Role),
		Email:     user.Email,
		Name:      user.FullName,
		Issuer:    s.Issuer,
		Audience:  s.Audience,
		TTL:       ttl,
		Now:       now,
	})
	token, err := signer.Sign(claims)
	if err != nil {
		log.Error("failed to sign access token", slog.String("kid", signer.KID()), slog.Any("error", err))
		return LoginResult{}, err
	}

	log.Info("user logged in",
		slog.String("user_id", user.ID),
		slog.String("session_id", sess.ID),
	)
	return LoginResult{
		AccessToken: token,
		ExpiresAt:   claims.ExpiresAt.Time,
		Session:     sess,
		User:        user,
	}, nil
}

// Logout revokes the session. Revoking twice reports ErrSessionRevoked.
func (s *AuthService) Logout(ctx context.Context, sessionID string) error {
	log := slogx.FromContext(ctx)

	if err := s.Store.Sessions().RevokeSession(ctx, sessionID, clock(s.Now)); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrSessionRevoked
		}
		log.Error("failed to revoke session", slog.String("session_id", sessionID), slog.Any("error", err))
		return err
	}

	log.Info("session revoked", slog.String("session_id", sessionID))
	return nil
}

// Authenticate confirms the session is live and belongs to userID.
func (s *AuthService) Authenticate(ctx context.Context, sessionID, userID string) error {
	sess, err := s.Store.Sessions().GetSessionByID(ctx, sessionID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrSessionRevoked
		}
		return err
	}
	if sess.UserID != userID || sess.RevokedAt != nil {
		return ErrSessionRevoked
	}
	if !sess.Active(clock(s.Now)) {
		return ErrSessionExpired
	}
	return nil
}

// CheckSession lets the service act as the authn middleware's session check.
func (s *AuthService) CheckSession(ctx context.Context, sessionID, userID string) error {
	return s.Authenticate(ctx, sessionID, userID)
}

// RequestPasswordReset mails a one hour reset link when email belongs to a
// user. The result is the same whether or not it does.
func (s *AuthService) RequestPasswordReset(ctx context.Context, email string) error {
	log := slogx.FromContext(ctx)
	email = domain.NormalizeEmail(email)

	user, err := s.Store.Users().GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			log.Info("password reset requested for unknown email")
			return nil
		}
		log.Error("failed to fetch user", slog.Any("error", err))
		return err
	}

	token, err := cryptox.GenerateToken(cryptox.TokenSize256)
	if err != nil {
		log.Error("failed to generate reset token", slog.Any("error", err))
		return err
	}

	now := clock(s.Now)
	pr := domain.PasswordReset{
		ID:        idx.New().String(),
		UserID:    user.ID,
		TokenHash: cryptox.FingerprintToken(token),
		ExpiresAt: now.Add(DefaultPasswordResetTTL),
		CreatedAt: now,
	}
	if err := s.Store.PasswordResets().CreatePasswordReset(ctx, pr); err != nil {
		log.Error("failed to store password reset", slog.Any("error", err))
		return err
	}

	if s.Mailer != nil {
		link := strings.TrimRight(s.PublicURL, "/") + "/reset-password?token=" + url.QueryEscape(token)
		err := s.Mailer.Send(ctx, Mail{
			To:      user.Email,
			Subject: "Reset your docket password",
			Body: fmt.Sprintf(
				"Hi %s,\n\nUse this link to choose a new password:\n%s\n\nThe link expires in one hour. If you did not ask for this, ignore this mail.\n",
				user.FullName, link,
			),
		})
		if err != nil {
			log.Error("failed to send password reset mail", slog.String("user_id", user.ID), slog.Any("error", err))
		}
	}

	log.Info("password reset requested", slog.String("user_id", user.ID))
	return nil
}

// ResetPassword consumes a reset token, sets the new password and ends every
// session of the user.
func (s *AuthService) ResetPassword(ctx context.Context, token, newPassword string) error {
	log := slogx.FromContext(ctx)

	if len(newPassword) < MinPasswordLength {
		return ErrWeakPassword
	}

	pr, err := s.Store.PasswordResets().GetUnusedPasswordResetByHash(ctx, cryptox.FingerprintToken(strings.TrimSpace(token)))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			log.Warn("password reset with unknown token")
			return ErrInvalidResetToken
		}
		return err
	}
	now := clock(s.Now)
	if now.After(pr.ExpiresAt) {
		log.Warn("password reset with expired token", slog.String("user_id", pr.UserID))
		return ErrInvalidResetToken
	}

	hash, err := cryptox.HashPassword(newPassword)
	if err != nil {
		log.Error("failed to hash password", slog.Any("error", err))
		return err
	}

	err = s.Store.WithTx(ctx, func(tx store.Tx) error {
		if err := tx.PasswordResets().MarkPasswordResetUsed(ctx, pr.ID, now); err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return ErrInvalidResetToken
			}
			return err
		}
		if err := tx.Users().UpdatePasswordHash(ctx, pr.UserID, hash, now); err != nil {
			return err
		}
		return tx.Sessions().RevokeUserSessions(ctx, pr.UserID, now)
	})
	if err != nil {
		if !errors.Is(err, ErrInvalidResetToken) {
			log.Error("failed to reset password", slog.String("user_id", pr.UserID), slog.Any("error", err))
		}
		return err
	}

	log.Info("password reset", slog.String("user_id", pr.UserID))
	return nil
}
