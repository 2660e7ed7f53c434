package docketsdk

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
)

// ============================================================================
// Error codes
// ============================================================================

const (
	ErrorCodeInvalidRequest       = "invalid_request"
	ErrorCodeValidation           = "validation_error"
	ErrorCodeInvalidCredentials   = "invalid_credentials"
	ErrorCodeInvalidToken         = "invalid_token"
	ErrorCodeUnauthorized         = "unauthorized"
	ErrorCodeForbidden            = "forbidden"
	ErrorCodeNotFound             = "not_found"
	ErrorCodeWeakPassword         = "weak_password"
	ErrorCodeInvalidResetToken    = "invalid_reset_token"
	ErrorCodeEmailInUse           = "email_in_use"
	ErrorCodeInvitationExists     = "invitation_exists"
	ErrorCodeInvitationNotPending = "invitation_not_pending"
	ErrorCodeInvitationExpired    = "invitation_expired"
	ErrorCodeTimesheetApproved    = "timesheet_approved"
	ErrorCodeAlreadyApproved      = "timesheet_already_approved"
	ErrorCodeLastAdmin            = "last_admin"
	ErrorCodeAlreadyBootstrapped  = "already_bootstrapped"
	ErrorCodeRateLimited          = "rate_limit_exceeded"
	ErrorCodeServerError          = "server_error"
)

// ErrNoSession is returned by Session calls made after Logout.
var ErrNoSession = errors.New("docketsdk: session has no access token")

// ============================================================================
// APIError
// ============================================================================

// APIError is a non-2xx response from the server.
type APIError struct {
	StatusCode  int
	Code        string
	Description string
	// Details holds per-field reasons for validation errors.
	Details map[string]string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Description)
}

// Is matches on status and code, so errors.Is(err, ErrNotFound) works for
// any 404 the server returns.
func (e *APIError) Is(target error) bool {
	t, ok := target.(*APIError)
	if !ok {
		return false
	}
	if t.StatusCode != 0 && t.StatusCode != e.StatusCode {
		return false
	}
	return t.Code == "" || t.Code == e.Code
}

var (
	ErrValidation         = &APIError{StatusCode: http.StatusBadRequest, Code: ErrorCodeValidation}
	ErrUnauthorized       = &APIError{StatusCode: http.StatusUnauthorized}
	ErrInvalidCredentials = &APIError{StatusCode: http.StatusUnauthorized, Code: ErrorCodeInvalidCredentials}
	ErrForbidden          = &APIError{StatusCode: http.StatusForbidden}
	ErrNotFound           = &APIError{StatusCode: http.StatusNotFound}
	ErrConflict           = &APIError{StatusCode: http.StatusConflict}
	ErrGone               = &APIError{StatusCode: http.StatusGone}
	ErrRateLimited        = &APIError{StatusCode: http.StatusTooManyRequests}
)

// ============================================================================
// Error Parsing Helpers
// ============================================================================

// parseErrorResponse turns an error body into an *APIError, falling back to
// the status text when the body is not one of ours.
func parseErrorResponse(resp *http.Response, body []byte) error {
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}

	var valErr ValidationErrorResponse
	if err := json.Unmarshal(body, &valErr); err == nil && valErr.Code != "" {
		return &APIError{
			StatusCode:  resp.StatusCode,
			Code:        valErr.Code,
			Description: valErr.Message,
			Details:     valErr.Details,
		}
	}

	var errResp ErrorResponse
	if err := json.Unmarshal(body, &errResp); err == nil && errResp.Error != "" {
		return &APIError{
			StatusCode:  resp.StatusCode,
			Code:        errResp.Error,
			Description: errResp.ErrorDescription,
		}
	}

	return &APIError{
		StatusCode:  resp.StatusCode,
		Code:        ErrorCodeServerError,
		Description: fmt.Sprintf("HTTP %d: %s", resp.StatusCode, http.StatusText(resp.StatusCode)),
	}
}
