package http

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/aussiebroadwan/docket/internal/docket/domain"
	"github.com/aussiebroadwan/docket/internal/docket/service"
	"github.com/aussiebroadwan/docket/pkg/docketsdk"
	"github.com/aussiebroadwan/docket/pkg/httpx"
	"github.com/aussiebroadwan/docket/pkg/slogx"
)

// writeServiceError maps a service error onto its status and error code.
// Anything unrecognised is logged and reported as a 500.
func writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	var verr *service.ValidationError
	if errors.As(err, &verr) {
		httpx.WriteValidation(w, verr.Fields)
		return
	}

	switch {
	// 400
	case errors.Is(err, service.ErrWeakPassword):
		httpx.WriteError(w, http.StatusBadRequest, docketsdk.ErrorCodeWeakPassword, err.Error())
	case errors.Is(err, service.ErrInvalidResetToken):
		httpx.WriteError(w, http.StatusBadRequest, docketsdk.ErrorCodeInvalidResetToken, err.Error())

	// 401
	case errors.Is(err, service.ErrInvalidCredentials):
		httpx.WriteError(w, http.StatusUnauthorized, docketsdk.ErrorCodeInvalidCredentials, err.Error())
	case errors.Is(err, service.ErrSessionRevoked), errors.Is(err, service.ErrSessionExpired):
		httpx.WriteError(w, http.StatusUnauthorized, docketsdk.ErrorCodeInvalidToken, err.Error())
	case errors.Is(err, service.ErrBootstrapUnauthorized):
		httpx.WriteError(w, http.StatusUnauthorized, docketsdk.ErrorCodeUnauthorized, "invalid bootstrap token")

	// 403
	case errors.Is(err, service.ErrForbidden):
		httpx.WriteError(w, http.StatusForbidden, docketsdk.ErrorCodeForbidden, "your role does not allow this operation")

	// 404
	case errors.Is(err, service.ErrUserNotFound),
		errors.Is(err, service.ErrTaskNotFound),
		errors.Is(err, service.ErrTimesheetNotFound),
		errors.Is(err, service.ErrInvitationNotFound):
		httpx.WriteError(w, http.StatusNotFound, docketsdk.ErrorCodeNotFound, err.Error())

	// 409
	case errors.Is(err, service.ErrEmailInUse), errors.Is(err, service.ErrEmailRegistered):
		httpx.WriteError(w, http.StatusConflict, docketsdk.ErrorCodeEmailInUse, err.Error())
	case errors.Is(err, service.ErrInvitationExists):
		httpx.WriteError(w, http.StatusConflict, docketsdk.ErrorCodeInvitationExists, err.Error())
	case errors.Is(err, service.ErrInvitationNotPending):
		httpx.WriteError(w, http.StatusConflict, docketsdk.ErrorCodeInvitationNotPending, err.Error())
	case errors.Is(err, service.ErrTimesheetApproved):
		httpx.WriteError(w, http.StatusConflict, docketsdk.ErrorCodeTimesheetApproved, err.Error())
	case errors.Is(err, service.ErrTimesheetAlreadyApproved):
		httpx.WriteError(w, http.StatusConflict, docketsdk.ErrorCodeAlreadyApproved, err.Error())
	case errors.Is(err, service.ErrLastAdmin):
		httpx.WriteError(w, http.StatusConflict, docketsdk.ErrorCodeLastAdmin, err.Error())
	case errors.Is(err, service.ErrBootstrapAlready):
		httpx.WriteError(w, http.StatusConflict, docketsdk.ErrorCodeAlreadyBootstrapped, err.Error())

	// 410
	case errors.Is(err, service.ErrInvitationExpired):
		httpx.WriteError(w, http.StatusGone, docketsdk.ErrorCodeInvitationExpired, err.Error())

	default:
		slogx.FromContext(r.Context()).Error("request failed", slog.Any("error", err))
		httpx.WriteError(w, http.StatusInternalServerError, docketsdk.ErrorCodeServerError, "internal server error")
	}
}

// decodeBody reads a JSON body into v, answering 400 itself on failure.
func decodeBody(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := httpx.DecodeJSON(r, v); err != nil {
		slogx.FromContext(r.Context()).Debug("rejected request body", slog.Any("error", err))
		httpx.WriteError(w, http.StatusBadRequest, docketsdk.ErrorCodeInvalidRequest, "invalid JSON body")
		return false
	}
	return true
}

// actorOf is the caller as carried by the verified access token.
func actorOf(r *http.Request) service.Actor {
	ctx := r.Context()
	return service.Actor{
		ID:   httpx.UserID(ctx),
		Role: domain.Role(httpx.Role(ctx)),
	}
}
