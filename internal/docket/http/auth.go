package http

import (
	"net/http"

	"github.com/aussiebroadwan/docket/internal/docket/service"
	"github.com/aussiebroadwan/docket/pkg/docketsdk"
	"github.com/aussiebroadwan/docket/pkg/httpx"
)

type AuthHandler struct {
	AuthService *service.AuthService
}

// HandleLogin godoc
//
//	@Summary		Log in
//	@Description	Checks email and password, opens a session and returns an access token bound to it.
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		docketsdk.LoginRequest				true	"Credentials"
//	@Success		200		{object}	docketsdk.LoginResponse				"access_token, expires_at, session_id, user"
//	@Failure		400		{object}	docketsdk.ValidationErrorResponse	"Missing fields"
//	@Failure		401		{object}	docketsdk.ErrorResponse				"Invalid email or password"
//	@Failure		429		{object}	docketsdk.ErrorResponse				"Rate limited"
//	@Router			/v1/auth/login [post].
func (h *AuthHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	var req docketsdk.LoginRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if errs := req.Validate(); errs != nil {
		httpx.WriteValidation(w, errs)
		return
	}

	res, err := h.AuthService.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, docketsdk.LoginResponse{
		AccessToken: res.AccessToken,
		TokenType:   "Bearer",
		ExpiresIn:   int(res.ExpiresAt.Sub(res.Session.CreatedAt).Seconds()),
		ExpiresAt:   res.ExpiresAt,
		SessionID:   res.Session.ID,
		User:        toUser(res.User),
	})
}

// HandleLogout godoc
//
//	@Summary		Log out
//	@Description	Revokes the session behind the presented access token. Every token of that session stops working.
//	@Tags			Auth
//	@Success		204
//	@Failure		401	{object}	docketsdk.ErrorResponse	"Missing or invalid token"
//	@Security		BearerAuth
//	@Router			/v1/auth/logout [post].
func (h *AuthHandler) HandleLogout(w http.ResponseWriter, r *http.Request) {
	if err := h.AuthService.Logout(r.Context(), httpx.SessionID(r.Context())); err != nil {
		writeServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// HandleRegister godoc
//
//	@Summary		Register with an invitation
//	@Description	Creates an account with the invited role and accepts the invitation. The email must match the invitation.
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		docketsdk.RegisterRequest			true	"Registration form"
//	@Success		201		{object}	docketsdk.User						"The new user"
//	@Failure		400		{object}	docketsdk.ValidationErrorResponse	"Validation failed or weak password"
//	@Failure		404		{object}	docketsdk.ErrorResponse				"Unknown invitation token"
//	@Failure		409		{object}	docketsdk.ErrorResponse				"Email already in use or invitation already used"
//	@Failure		410		{object}	docketsdk.ErrorResponse				"Invitation expired"
//	@Router			/v1/auth/register [post].
func (h *AuthHandler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	var req docketsdk.RegisterRequest
	if !decodeBody(w, r, &req) {
		return
	}

	user, err := h.AuthService.Register(r.Context(), service.RegisterInput{
		Token:           req.Token,
		FullName:        req.FullName,
		Email:           req.Email,
		Password:        req.Password,
		ConfirmPassword: req.ConfirmPassword,
		PhoneNumber:     req.PhoneNumber,
	})
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, toUser(user))
}

// HandlePasswordReset godoc
//
//	@Summary		Request a password reset
//	@Description	Mails a one hour reset link when the address belongs to a user. The response is the same either way.
//	@Tags			Auth
//	@Accept			json
//	@Param			request	body	docketsdk.PasswordResetRequest	true	"Account email"
//	@Success		204
//	@Failure		400	{object}	docketsdk.ErrorResponse	"Invalid body"
//	@Router			/v1/auth/password-reset [post].
func (h *AuthHandler) HandlePasswordReset(w http.ResponseWriter, r *http.Request) {
	var req docketsdk.PasswordResetRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if err := h.AuthService.RequestPasswordReset(r.Context(), req.Email); err != nil {
		writeServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// HandlePasswordResetConfirm godoc
//
//	@Summary		Reset a password
//	@Description	Consumes a mailed reset token, sets the new password and revokes every session of the user.
//	@Tags			Auth
//	@Accept			json
//	@Param			request	body	docketsdk.PasswordResetConfirmRequest	true	"Token and new password"
//	@Success		204
//	@Failure		400	{object}	docketsdk.ErrorResponse	"Invalid or expired token, or weak password"
//	@Router			/v1/auth/password-reset/confirm [post].
func (h *AuthHandler) HandlePasswordResetConfirm(w http.ResponseWriter, r *http.Request) {
	var req docketsdk.PasswordResetConfirmRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if err := h.AuthService.ResetPassword(r.Context(), req.Token, req.Password); err != nil {
		writeServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
