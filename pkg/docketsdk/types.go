package docketsdk

import (
	"time"

	"github.com/aussiebroadwan/docket/pkg/jwtx"
)

// Dates on the wire are civil days formatted YYYY-MM-DD. Timestamps are
// RFC 3339 in UTC.

// ============================================================================
// Errors
// ============================================================================

// ErrorResponse is the body of every non-validation error.
type ErrorResponse struct {
	Error            string `json:"error"`
	ErrorDescription string `json:"error_description"`
}

// ValidationErrorResponse is returned when request fields fail validation.
type ValidationErrorResponse struct {
	Code    string            `json:"code"`
	Message string            `json:"message"`
	Details map[string]string `json:"details,omitempty"`
}

// ============================================================================
// System
// ============================================================================

type HealthChecks struct {
	Database string `json:"database"`
	Signer   string `json:"signer"`
}

type HealthResponse struct {
	Status  string        `json:"status"`
	Uptime  string        `json:"uptime"`
	Version string        `json:"version"`
	Checks  *HealthChecks `json:"checks,omitempty"`
}

// JWKSResponse is the public key set access tokens verify against.
type JWKSResponse jwtx.JWKS

// ============================================================================
// Auth
// ============================================================================

type BootstrapRequest struct {
	Email    string `json:"email"`
	FullName string `json:"full_name"`
	Password string `json:"password"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginResponse struct {
	AccessToken string    `json:"access_token"`
	TokenType   string    `json:"token_type"`
	ExpiresIn   int       `json:"expires_in"`
	ExpiresAt   time.Time `json:"expires_at"`
	SessionID   string    `json:"session_id"`
	User        User      `json:"user"`
}

type RegisterRequest struct {
	Token           string `json:"token"`
	FullName        string `json:"full_name"`
	Email           string `json:"email"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirm_password"`
	PhoneNumber     string `json:"phone_number,omitempty"`
}

type PasswordResetRequest struct {
	Email string `json:"email"`
}

type PasswordResetConfirmRequest struct {
	Token    string `json:"token"`
	Password string `json:"password"`
}

// ============================================================================
// Users and roles
// ============================================================================

type User struct {
	ID          string    `json:"id"`
	Email       string    `json:"email"`
	FullName    string    `json:"full_name"`
	Role        string    `json:"role"`
	RoleLabel   string    `json:"role_label"`
	PhoneNumber string    `json:"phone_number,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type UsersResponse struct {
	Users []User `json:"users"`
}

type UpdateProfileRequest struct {
	FullName    string `json:"full_name"`
	PhoneNumber string `json:"phone_number"`
}

type UpdateRoleRequest struct {
	Role string `json:"role"`
}

type CreateUserRequest struct {
	Email       string `json:"email"`
	Password    string `json:"password,omitempty"`
	FullName    string `json:"full_name"`
	Role        string `json:"role"`
	PhoneNumber string `json:"phone_number,omitempty"`
}

type CreateUserResponse struct {
	User User `json:"user"`
	// GeneratedPassword is only present when the request had no password.
	GeneratedPassword string `json:"generated_password,omitempty"`
}

type RoleInfo struct {
	Role  string `json:"role"`
	Label string `json:"label"`
	Rank  int    `json:"rank"`
}

type RolesResponse struct {
	Roles []RoleInfo `json:"roles"`
	// Assignable are the roles the caller may create tasks for.
	Assignable []string `json:"assignable"`
	// Caller's own role and what it allows.
	Role                 string `json:"role"`
	CanApproveTimesheets bool   `json:"can_approve_timesheets"`
	CanManageUsers       bool   `json:"can_manage_users"`
}

// ============================================================================
// Tasks
// ============================================================================

type Task struct {
	ID            string    `json:"id"`
	Title         string    `json:"title"`
	Description   string    `json:"description,omitempty"`
	DueDate       string    `json:"due_date"`
	Status        string    `json:"status"`
	AssigneeID    string    `json:"assignee_id"`
	AssigneeRef   string    `json:"assignee_ref,omitempty"`
	ReviewerID    string    `json:"reviewer_id,omitempty"`
	Priority      int       `json:"priority"`
	EstimateHours float64   `json:"estimate_hours"`
	ActualHours   float64   `json:"actual_hours"`
	Notes         string    `json:"notes,omitempty"`
	CreatedBy     string    `json:"created_by"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

type TasksResponse struct {
	Tasks []Task `json:"tasks"`
}

type CreateTaskRequest struct {
	Title         string  `json:"title"`
	Description   string  `json:"description,omitempty"`
	DueDate       string  `json:"due_date"`
	Status        string  `json:"status,omitempty"`
	AssigneeID    string  `json:"assignee_id,omitempty"`
	ReviewerID    string  `json:"reviewer_id,omitempty"`
	Priority      int     `json:"priority,omitempty"`
	EstimateHours float64 `json:"estimate_hours,omitempty"`
	ActualHours   float64 `json:"actual_hours,omitempty"`
	Notes         string  `json:"notes,omitempty"`
}

// UpdateTaskRequest changes only the fields that are present.
type UpdateTaskRequest struct {
	Title         *string  `json:"title,omitempty"`
	Description   *string  `json:"description,omitempty"`
	DueDate       *string  `json:"due_date,omitempty"`
	Status        *string  `json:"status,omitempty"`
	AssigneeID    *string  `json:"assignee_id,omitempty"`
	ReviewerID    *string  `json:"reviewer_id,omitempty"`
	Priority      *int     `json:"priority,omitempty"`
	EstimateHours *float64 `json:"estimate_hours,omitempty"`
	ActualHours   *float64 `json:"actual_hours,omitempty"`
	Notes         *string  `json:"notes,omitempty"`
}

// TaskFilter narrows GET /v1/tasks. Zero fields do not filter.
type TaskFilter struct {
	AssigneeID string
	Statuses   []string
	Priorities []int
	DueFrom    string
	DueTo      string
}

type TaskBoardResponse struct {
	Outstanding []Task `json:"outstanding"`
	Completed   []Task `json:"completed"`
	Backlog     []Task `json:"backlog"`
}

// ============================================================================
// Timesheets
// ============================================================================

type TimesheetSummary struct {
	TotalEstimate  float64 `json:"total_estimate"`
	TotalActual    float64 `json:"total_actual"`
	LunchHours     float64 `json:"lunch_hours"`
	TotalHours     float64 `json:"total_hours"`
	RequiredHours  float64 `json:"required_hours"`
	Shortfall      float64 `json:"shortfall"`
	CompletedTasks int     `json:"completed_tasks"`
	Status         string  `json:"status"`
}

// TimesheetRecord is a stored weekly submission.
type TimesheetRecord struct {
	ID         string     `json:"id"`
	EmployeeID string     `json:"employee_id"`
	WeekStart  string     `json:"week_start"`
	WeekEnd    string     `json:"week_end"`
	TaskIDs    []string   `json:"task_ids"`
	LunchHours float64    `json:"lunch_hours"`
	Approved   bool       `json:"approved"`
	ApprovedBy string     `json:"approved_by,omitempty"`
	ApprovedAt *time.Time `json:"approved_at,omitempty"`
	Comments   string     `json:"comments,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
}

type TimesheetResponse struct {
	Employee   User             `json:"employee"`
	WeekStart  string           `json:"week_start"`
	WeekEnd    string           `json:"week_end"`
	Tasks      []Task           `json:"tasks"`
	Summary    TimesheetSummary `json:"summary"`
	Timesheet  *TimesheetRecord `json:"timesheet,omitempty"`
	CanApprove bool             `json:"can_approve"`
}

type SubmitTimesheetRequest struct {
	LunchHours float64 `json:"lunch_hours"`
}

type ApproveTimesheetRequest struct {
	Comments string `json:"comments,omitempty"`
}

type TeamRow struct {
	User        User    `json:"user"`
	TaskCount   int     `json:"task_count"`
	ActualHours float64 `json:"actual_hours"`
	LunchHours  float64 `json:"lunch_hours"`
	TotalHours  float64 `json:"total_hours"`
	Status      string  `json:"status"`
	Approved    bool    `json:"approved"`
	TimesheetID string  `json:"timesheet_id,omitempty"`
}

type TeamOverviewResponse struct {
	WeekStart     string    `json:"week_start"`
	WeekEnd       string    `json:"week_end"`
	RequiredHours float64   `json:"required_hours"`
	Rows          []TeamRow `json:"rows"`
}

// ============================================================================
// Invitations
// ============================================================================

type Invitation struct {
	ID             string     `json:"id"`
	Email          string     `json:"email"`
	Role           string     `json:"role"`
	InvitedBy      string     `json:"invited_by"`
	OrganizationID string     `json:"organization_id,omitempty"`
	Status         string     `json:"status"`
	CreatedAt      time.Time  `json:"created_at"`
	ExpiresAt      time.Time  `json:"expires_at"`
	AcceptedAt     *time.Time `json:"accepted_at,omitempty"`
	AcceptedBy     string     `json:"accepted_by,omitempty"`
	ResentAt       *time.Time `json:"resent_at,omitempty"`
}

type CreateInvitationRequest struct {
	Email          string `json:"email"`
	Role           string `json:"role,omitempty"`
	OrganizationID string `json:"organization_id,omitempty"`
}

// InvitationTokenResponse carries the raw token. It is only ever returned by
// create and resend.
type InvitationTokenResponse struct {
	Invitation Invitation `json:"invitation"`
	Token      string     `json:"token"`
	Link       string     `json:"link"`
}

type InvitationsResponse struct {
	Invitations []Invitation `json:"invitations"`
}

type CleanupResponse struct {
	Expired int64 `json:"expired"`
}
