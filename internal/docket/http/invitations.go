package http

import (
	"net/http"

	"github.com/aussiebroadwan/docket/internal/docket/service"
	"github.com/aussiebroadwan/docket/pkg/docketsdk"
	"github.com/aussiebroadwan/docket/pkg/httpx"
)

type InvitationsHandler struct {
	InvitationService *service.InvitationService
}

// HandleCreate godoc
//
//	@Summary		Invite a user
//	@Description	Creates a pending invitation and mails the registration link. The raw token is only returned here and on resend.
//	@Tags			Invitations
//	@Accept			json
//	@Produce		json
//	@Param			request	body		docketsdk.CreateInvitationRequest	true	"Invitation"
//	@Success		201		{object}	docketsdk.InvitationTokenResponse	"invitation, token, link"
//	@Failure		400		{object}	docketsdk.ValidationErrorResponse	"Validation failed"
//	@Failure		403		{object}	docketsdk.ErrorResponse				"Caller is not an org_admin"
//	@Failure		409		{object}	docketsdk.ErrorResponse				"Pending invitation exists or email registered"
//	@Security		BearerAuth
//	@Router			/v1/invitations [post].
func (h *InvitationsHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var req docketsdk.CreateInvitationRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if errs := req.Validate(); errs != nil {
		httpx.WriteValidation(w, errs)
		return
	}

	res, err := h.InvitationService.CreateInvitation(r.Context(), actorOf(r), req.Email, req.Role, req.OrganizationID)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, toInvitationToken(res))
}

// HandleList godoc
//
//	@Summary		List pending invitations
//	@Tags			Invitations
//	@Produce		json
//	@Param			organization_id	query		string	false	"Organisation filter"
//	@Success		200				{object}	docketsdk.InvitationsResponse
//	@Failure		403				{object}	docketsdk.ErrorResponse	"Caller is not an org_admin"
//	@Security		BearerAuth
//	@Router			/v1/invitations [get].
func (h *InvitationsHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	invs, err := h.InvitationService.ListPendingInvitations(r.Context(), actorOf(r), r.URL.Query().Get("organization_id"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	out := make([]docketsdk.Invitation, 0, len(invs))
	for _, inv := range invs {
		out = append(out, toInvitation(inv))
	}
	httpx.WriteJSON(w, http.StatusOK, docketsdk.InvitationsResponse{Invitations: out})
}

// HandleRevoke godoc
//
//	@Summary		Revoke an invitation
//	@Tags			Invitations
//	@Param			id	path	string	true	"Invitation ID"
//	@Success		204
//	@Failure		403	{object}	docketsdk.ErrorResponse	"Caller is not an org_admin"
//	@Failure		404	{object}	docketsdk.ErrorResponse	"Unknown invitation"
//	@Security		BearerAuth
//	@Router			/v1/invitations/{id} [delete].
func (h *InvitationsHandler) HandleRevoke(w http.ResponseWriter, r *http.Request) {
	if err := h.InvitationService.RevokeInvitation(r.Context(), actorOf(r), r.PathValue("id")); err != nil {
		writeServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// HandleResend godoc
//
//	@Summary		Resend an invitation
//	@Description	Rotates the token, extends the expiry and mails the new link. The old link stops working.
//	@Tags			Invitations
//	@Produce		json
//	@Param			id	path		string	true	"Invitation ID"
//	@Success		200	{object}	docketsdk.InvitationTokenResponse
//	@Failure		404	{object}	docketsdk.ErrorResponse	"Unknown invitation"
//	@Failure		409	{object}	docketsdk.ErrorResponse	"No longer pending"
//	@Security		BearerAuth
//	@Router			/v1/invitations/{id}/resend [post].
func (h *InvitationsHandler) HandleResend(w http.ResponseWriter, r *http.Request) {
	res, err := h.InvitationService.ResendInvitation(r.Context(), actorOf(r), r.PathValue("id"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toInvitationToken(res))
}

// HandleCleanup godoc
//
//	@Summary		Expire stale invitations
//	@Tags			Invitations
//	@Produce		json
//	@Success		200	{object}	docketsdk.CleanupResponse
//	@Security		BearerAuth
//	@Router			/v1/invitations/cleanup [post].
func (h *InvitationsHandler) HandleCleanup(w http.ResponseWriter, r *http.Request) {
	n, err := h.InvitationService.CleanupExpiredInvitations(r.Context())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, docketsdk.CleanupResponse{Expired: n})
}

// HandleValidate godoc
//
//	@Summary		Validate an invitation token
//	@Description	Used by the registration page before showing the form.
//	@Tags			Invitations
//	@Produce		json
//	@Param			token	query		string	true	"Raw invitation token"
//	@Success		200		{object}	docketsdk.Invitation
//	@Failure		400		{object}	docketsdk.ValidationErrorResponse	"Missing token"
//	@Failure		404		{object}	docketsdk.ErrorResponse				"Unknown token"
//	@Failure		410		{object}	docketsdk.ErrorResponse				"Expired"
//	@Router			/v1/invitations/validate [get].
func (h *InvitationsHandler) HandleValidate(w http.ResponseWriter, r *http.Request) {
	token := r.URL.Query().Get("token")
	if token == "" {
		httpx.WriteValidation(w, map[string]string{"token": "required"})
		return
	}

	inv, err := h.InvitationService.ValidateInvitation(r.Context(), token)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toInvitation(inv))
}
