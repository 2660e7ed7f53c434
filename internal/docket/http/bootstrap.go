package http

import (
	"net/http"

	"github.com/aussiebroadwan/docket/internal/docket/service"
	"github.com/aussiebroadwan/docket/pkg/docketsdk"
	"github.com/aussiebroadwan/docket/pkg/httpx"
	"github.com/aussiebroadwan/docket/pkg/slogx"
)

type BootstrapHandler struct {
	BootstrapService *service.BootstrapService
}

// ServeHTTP handles the bootstrap endpoint for initial system setup.
//
//	@Summary		Bootstrap the first administrator
//	@Description	Creates the first org_admin. Only available when a bootstrap token is configured, and only while no user exists.
//	@Tags			Bootstrap
//	@Accept			json
//	@Produce		json
//	@Param			X-Bootstrap-Token	header		string								true	"Bootstrap token for authorization"
//	@Param			request				body		docketsdk.BootstrapRequest			true	"First administrator"
//	@Success		201					{object}	docketsdk.User						"The created administrator"
//	@Failure		400					{object}	docketsdk.ValidationErrorResponse	"Invalid request body or validation failed"
//	@Failure		401					{object}	docketsdk.ErrorResponse				"Missing or invalid bootstrap token"
//	@Failure		404					{object}	docketsdk.ErrorResponse				"Bootstrap not enabled (no token configured)"
//	@Failure		409					{object}	docketsdk.ErrorResponse				"A user already exists"
//	@Router			/v1/bootstrap [post].
func (h *BootstrapHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	l := slogx.FromContext(r.Context())

	// 1. Check if enabled
	if h.BootstrapService.Token == "" {
		httpx.WriteError(w, http.StatusNotFound, docketsdk.ErrorCodeNotFound, "Bootstrap endpoint is not enabled")
		return
	}

	// 2. Require bootstrap token header
	token := r.Header.Get("X-Bootstrap-Token")
	if token == "" {
		httpx.WriteError(w, http.StatusUnauthorized, docketsdk.ErrorCodeUnauthorized,
			"Bootstrap token is required in X-Bootstrap-Token header")
		return
	}

	// 3. Parse request body and validate
	var req docketsdk.BootstrapRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if errs := req.Validate(); errs != nil {
		httpx.WriteValidation(w, errs)
		return
	}

	// 4. Create the administrator
	admin, err := h.BootstrapService.Bootstrap(r.Context(), token, service.BootstrapInput{
		Email:    req.Email,
		FullName: req.FullName,
		Password: req.Password,
	})
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	l.Info("bootstrap complete")
	httpx.WriteJSON(w, http.StatusCreated, toUser(admin))
}
