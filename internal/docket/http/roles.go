package http

import (
	"net/http"

	"github.com/aussiebroadwan/docket/internal/docket/domain"
	"github.com/aussiebroadwan/docket/pkg/docketsdk"
	"github.com/aussiebroadwan/docket/pkg/httpx"
)

// RolesHandler serves the role table. It needs no service: the table is
// static and the caller's role comes from the token.
type RolesHandler struct{}

// ServeHTTP godoc
//
//	@Summary		Role table
//	@Description	Every role with its label and rank, plus what the caller's own role allows.
//	@Tags			Roles
//	@Produce		json
//	@Success		200	{object}	docketsdk.RolesResponse
//	@Security		BearerAuth
//	@Router			/v1/roles [get].
func (h *RolesHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	caller := actorOf(r).Role

	roles := domain.Roles()
	infos := make([]docketsdk.RoleInfo, 0, len(roles))
	for _, role := range roles {
		infos = append(infos, docketsdk.RoleInfo{
			Role:  string(role),
			Label: role.Label(),
			Rank:  int(role.Rank()),
		})
	}

	assignable := []string{}
	for _, role := range domain.AssignableRoles(caller) {
		assignable = append(assignable, string(role))
	}

	httpx.WriteJSON(w, http.StatusOK, docketsdk.RolesResponse{
		Roles:                infos,
		Assignable:           assignable,
		Role:                 string(caller),
		CanApproveTimesheets: domain.CanApproveTimesheets(caller),
		CanManageUsers:       domain.CanManageUsers(caller),
	})
}
