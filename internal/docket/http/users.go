package http

import (
	"net/http"

	"github.com/aussiebroadwan/docket/internal/docket/service"
	"github.com/aussiebroadwan/docket/pkg/docketsdk"
	"github.com/aussiebroadwan/docket/pkg/httpx"
)

type UsersHandler struct {
	UserService *service.UserService
}

// HandleMe godoc
//
//	@Summary		Current user
//	@Tags			Users
//	@Produce		json
//	@Success		200	{object}	docketsdk.User
//	@Failure		401	{object}	docketsdk.ErrorResponse	"Missing or invalid token"
//	@Security		BearerAuth
//	@Router			/v1/me [get].
func (h *UsersHandler) HandleMe(w http.ResponseWriter, r *http.Request) {
	u, err := h.UserService.Me(r.Context(), actorOf(r))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toUser(u))
}

// HandleUpdateMe godoc
//
//	@Summary		Update own profile
//	@Tags			Users
//	@Accept			json
//	@Produce		json
//	@Param			request	body		docketsdk.UpdateProfileRequest		true	"Profile"
//	@Success		200		{object}	docketsdk.User
//	@Failure		400		{object}	docketsdk.ValidationErrorResponse	"Validation failed"
//	@Security		BearerAuth
//	@Router			/v1/me [patch].
func (h *UsersHandler) HandleUpdateMe(w http.ResponseWriter, r *http.Request) {
	var req docketsdk.UpdateProfileRequest
	if !decodeBody(w, r, &req) {
		return
	}

	u, err := h.UserService.UpdateProfile(r.Context(), actorOf(r), req.FullName, req.PhoneNumber)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toUser(u))
}

// HandleList godoc
//
//	@Summary		List visible users
//	@Description	The caller plus every user whose tasks the caller's role may view.
//	@Tags			Users
//	@Produce		json
//	@Success		200	{object}	docketsdk.UsersResponse
//	@Security		BearerAuth
//	@Router			/v1/users [get].
func (h *UsersHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	users, err := h.UserService.ListUsers(r.Context(), actorOf(r))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, docketsdk.UsersResponse{Users: toUsers(users)})
}

// HandleGet godoc
//
//	@Summary		Get a user
//	@Tags			Users
//	@Produce		json
//	@Param			id	path		string	true	"User ID"
//	@Success		200	{object}	docketsdk.User
//	@Failure		403	{object}	docketsdk.ErrorResponse	"Not visible to the caller"
//	@Failure		404	{object}	docketsdk.ErrorResponse	"Unknown user"
//	@Security		BearerAuth
//	@Router			/v1/users/{id} [get].
func (h *UsersHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	u, err := h.UserService.GetUser(r.Context(), actorOf(r), r.PathValue("id"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toUser(u))
}

// HandleCreate godoc
//
//	@Summary		Create a user directly
//	@Description	Administrator account creation. Without a password one is generated and returned once.
//	@Tags			Users
//	@Accept			json
//	@Produce		json
//	@Param			request	body		docketsdk.CreateUserRequest			true	"New user"
//	@Success		201		{object}	docketsdk.CreateUserResponse
//	@Failure		400		{object}	docketsdk.ValidationErrorResponse	"Validation failed"
//	@Failure		403		{object}	docketsdk.ErrorResponse				"Caller is not an org_admin"
//	@Failure		409		{object}	docketsdk.ErrorResponse				"Email already in use"
//	@Security		BearerAuth
//	@Router			/v1/users [post].
func (h *UsersHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var req docketsdk.CreateUserRequest
	if !decodeBody(w, r, &req) {
		return
	}

	res, err := h.UserService.CreateUser(r.Context(), actorOf(r), service.CreateUserInput{
		Email:       req.Email,
		Password:    req.Password,
		FullName:    req.FullName,
		Role:        req.Role,
		PhoneNumber: req.PhoneNumber,
	})
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, docketsdk.CreateUserResponse{
		User:              toUser(res.User),
		GeneratedPassword: res.GeneratedPassword,
	})
}

// HandleSetRole godoc
//
//	@Summary		Change a user's role
//	@Description	The user's sessions are revoked so their next token carries the new role.
//	@Tags			Users
//	@Accept			json
//	@Produce		json
//	@Param			id		path		string						true	"User ID"
//	@Param			request	body		docketsdk.UpdateRoleRequest	true	"New role"
//	@Success		200		{object}	docketsdk.User
//	@Failure		400		{object}	docketsdk.ValidationErrorResponse	"Unknown role"
//	@Failure		403		{object}	docketsdk.ErrorResponse				"Caller is not an org_admin"
//	@Failure		404		{object}	docketsdk.ErrorResponse				"Unknown user"
//	@Failure		409		{object}	docketsdk.ErrorResponse				"Would remove the last org_admin"
//	@Security		BearerAuth
//	@Router			/v1/users/{id}/role [put].
func (h *UsersHandler) HandleSetRole(w http.ResponseWriter, r *http.Request) {
	var req docketsdk.UpdateRoleRequest
	if !decodeBody(w, r, &req) {
		return
	}

	u, err := h.UserService.UpdateUserRole(r.Context(), actorOf(r), r.PathValue("id"), req.Role)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toUser(u))
}
