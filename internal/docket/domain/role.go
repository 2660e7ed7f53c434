package domain

import (
	"errors"
	"slices"
	"strings"
)

var ErrUnknownRole = errors.New("unknown role")

// Role is a position in the firm. The set is closed: stores only ever hold
// the values below.
type Role string

const (
	RoleOrgAdmin          Role = "org_admin"
	RoleLegalManager      Role = "legal_manager"
	RoleConsultingManager Role = "consulting_manager"
	RoleOfficeManager     Role = "office_manager"
	RoleManager           Role = "manager"
	RoleAttorney          Role = "attorney"
	RoleCandidateAttorney Role = "candidate_attorney"
	RoleDebtCollector     Role = "debt_collector"
	RoleEmployee          Role = "employee"
)

// Rank orders roles for the permission checks. Roles sharing a rank are peers.
type Rank int

const (
	RankNone Rank = iota
	RankEmployee
	RankParaprofessional
	RankAttorney
	RankManager
	RankOfficeManager
	RankSeniorManager
	RankAdmin
)

type roleInfo struct {
	rank  Rank
	label string
}

// Highest rank first; Roles() returns this order.
var roleOrder = []Role{
	RoleOrgAdmin,
	RoleLegalManager,
	RoleConsultingManager,
	RoleOfficeManager,
	RoleManager,
	RoleAttorney,
	RoleCandidateAttorney,
	RoleDebtCollector,
	RoleEmployee,
}

var roleTable = map[Role]roleInfo{
	RoleOrgAdmin:          {RankAdmin, "Organisation Admin"},
	RoleLegalManager:      {RankSeniorManager, "Legal Manager"},
	RoleConsultingManager: {RankSeniorManager, "Consulting Manager"},
	RoleOfficeManager:     {RankOfficeManager, "Office Manager"},
	RoleManager:           {RankManager, "Manager"},
	RoleAttorney:          {RankAttorney, "Attorney"},
	RoleCandidateAttorney: {RankParaprofessional, "Candidate Attorney"},
	RoleDebtCollector:     {RankParaprofessional, "Debt Collector"},
	RoleEmployee:          {RankEmployee, "Employee"},
}

var approverRoles = []Role{
	RoleOrgAdmin,
	RoleManager,
	RoleLegalManager,
	RoleConsultingManager,
	RoleOfficeManager,
}

// ParseRole normalises s and checks it names a known role.
func ParseRole(s string) (Role, error) {
	r := Role(strings.ToLower(strings.TrimSpace(s)))
	if !r.Valid() {
		return "", ErrUnknownRole
	}
	return r, nil
}

// Roles lists every role, highest rank first.
func Roles() []Role {
	return slices.Clone(roleOrder)
}

func (r Role) Valid() bool {
	_, ok := roleTable[r]
	return ok
}

// Rank is RankNone for an unknown role.
func (r Role) Rank() Rank {
	return roleTable[r].rank
}

// Label is the display name, or the raw value for an unknown role.
func (r Role) Label() string {
	if info, ok := roleTable[r]; ok {
		return info.label
	}
	return string(r)
}

func (r Role) String() string { return string(r) }

// CanCreateTaskFor reports whether creator may assign work to assignee:
// admins always can, anyone can assign to a peer of the same role, and
// otherwise only strictly downwards.
func CanCreateTaskFor(creator, assignee Role) bool {
	if creator == RoleOrgAdmin || creator == assignee {
		return true
	}
	return creator.Rank() > assignee.Rank()
}

// CanViewTasksFor is like CanCreateTaskFor but inclusive, so peers of the
// same rank see each other's work.
func CanViewTasksFor(viewer, assignee Role) bool {
	if viewer == RoleOrgAdmin {
		return true
	}
	return viewer.Rank() >= assignee.Rank()
}

func CanApproveTimesheets(r Role) bool {
	return slices.Contains(approverRoles, r)
}

// CanManageUsers gates invitations, role changes and direct account creation.
func CanManageUsers(r Role) bool {
	return r == RoleOrgAdmin
}

// AssignableRoles lists the roles r may assign tasks to.
func AssignableRoles(r Role) []Role {
	if r == RoleOrgAdmin {
		return Roles()
	}
	if !r.Valid() {
		return nil
	}

	out := make([]Role, 0, len(roleOrder))
	for _, candidate := range roleOrder {
		if candidate.Rank() <= r.Rank() {
			out = append(out, candidate)
		}
	}
	return out
}
