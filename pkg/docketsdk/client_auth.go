package docketsdk

import (
	"context"
	"net/http"
	"net/url"
)

// ============================================================================
// Bootstrap
// ============================================================================

// Bootstrap creates the first org_admin. It only succeeds against an empty
// user table and with the server's bootstrap token.
func (c *Client) Bootstrap(ctx context.Context, token string, req BootstrapRequest) (*User, error) {
	body, headers, err := jsonBody(req)
	if err != nil {
		return nil, err
	}
	headers["X-Bootstrap-Token"] = token

	resp, err := c.doRequest(ctx, http.MethodPost, "/v1/bootstrap", body, headers)
	if err != nil {
		return nil, err
	}

	var user User
	if err := decodeJSON(resp, &user, http.StatusCreated); err != nil {
		return nil, err
	}
	return &user, nil
}

// ============================================================================
// Login and registration
// ============================================================================

// Login exchanges credentials for a Session.
func (c *Client) Login(ctx context.Context, email, password string) (*Session, error) {
	body, headers, err := jsonBody(LoginRequest{Email: email, Password: password})
	if err != nil {
		return nil, err
	}

	resp, err := c.doRequest(ctx, http.MethodPost, "/v1/auth/login", body, headers)
	if err != nil {
		return nil, err
	}

	var lr LoginResponse
	if err := decodeJSON(resp, &lr, http.StatusOK); err != nil {
		return nil, err
	}
	return newSession(c, &lr), nil
}

// Register creates an account from an invitation token. The new user still
// has to log in.
func (c *Client) Register(ctx context.Context, req RegisterRequest) (*User, error) {
	body, headers, err := jsonBody(req)
	if err != nil {
		return nil, err
	}

	resp, err := c.doRequest(ctx, http.MethodPost, "/v1/auth/register", body, headers)
	if err != nil {
		return nil, err
	}

	var user User
	if err := decodeJSON(resp, &user, http.StatusCreated); err != nil {
		return nil, err
	}
	return &user, nil
}

// ValidateInvitation looks an invitation up by its raw token.
func (c *Client) ValidateInvitation(ctx context.Context, token string) (*Invitation, error) {
	path := "/v1/invitations/validate?" + url.Values{"token": {token}}.Encode()
	resp, err := c.doRequest(ctx, http.MethodGet, path, nil, nil)
	if err != nil {
		return nil, err
	}

	var inv Invitation
	if err := decodeJSON(resp, &inv, http.StatusOK); err != nil {
		return nil, err
	}
	return &inv, nil
}

// ============================================================================
// Password reset
// ============================================================================

// RequestPasswordReset asks for a reset mail. The server answers the same
// whether or not the address exists.
func (c *Client) RequestPasswordReset(ctx context.Context, email string) error {
	body, headers, err := jsonBody(PasswordResetRequest{Email: email})
	if err != nil {
		return err
	}

	resp, err := c.doRequest(ctx, http.MethodPost, "/v1/auth/password-reset", body, headers)
	if err != nil {
		return err
	}
	return checkStatusNoContent(resp)
}

// ConfirmPasswordReset sets a new password with a mailed reset token. Every
// existing session of the user is revoked.
func (c *Client) ConfirmPasswordReset(ctx context.Context, token, password string) error {
	body, headers, err := jsonBody(PasswordResetConfirmRequest{Token: token, Password: password})
	if err != nil {
		return err
	}

	resp, err := c.doRequest(ctx, http.MethodPost, "/v1/auth/password-reset/confirm", body, headers)
	if err != nil {
		return err
	}
	return checkStatusNoContent(resp)
}
