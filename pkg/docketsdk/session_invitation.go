package docketsdk

import (
	"context"
	"net/http"
	"net/url"
)

// Invitation management. Every call here requires org_admin.

// CreateInvitation invites an email address. The raw token in the response
// is not retrievable later.
func (s *Session) CreateInvitation(ctx context.Context, req CreateInvitationRequest) (*InvitationTokenResponse, error) {
	body, headers, err := jsonBody(req)
	if err != nil {
		return nil, err
	}

	resp, err := s.doAuthRequest(ctx, http.MethodPost, "/v1/invitations", body, headers)
	if err != nil {
		return nil, err
	}

	var out InvitationTokenResponse
	if err := decodeJSON(resp, &out, http.StatusCreated); err != nil {
		return nil, err
	}
	return &out, nil
}

// ListInvitations returns pending invitations, newest first. An empty
// organizationID lists all of them.
func (s *Session) ListInvitations(ctx context.Context, organizationID string) ([]Invitation, error) {
	path := "/v1/invitations"
	if organizationID != "" {
		path += "?" + url.Values{"organization_id": {organizationID}}.Encode()
	}

	resp, err := s.doAuthRequest(ctx, http.MethodGet, path, nil, nil)
	if err != nil {
		return nil, err
	}

	var out InvitationsResponse
	if err := decodeJSON(resp, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return out.Invitations, nil
}

func (s *Session) RevokeInvitation(ctx context.Context, id string) error {
	resp, err := s.doAuthRequest(ctx, http.MethodDelete, "/v1/invitations/"+url.PathEscape(id), nil, nil)
	if err != nil {
		return err
	}
	return checkStatusNoContent(resp)
}

// ResendInvitation rotates the token, extends the expiry and mails it again.
func (s *Session) ResendInvitation(ctx context.Context, id string) (*InvitationTokenResponse, error) {
	resp, err := s.doAuthRequest(ctx, http.MethodPost, "/v1/invitations/"+url.PathEscape(id)+"/resend", nil, nil)
	if err != nil {
		return nil, err
	}

	var out InvitationTokenResponse
	if err := decodeJSON(resp, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

// CleanupInvitations marks every stale pending invitation expired.
func (s *Session) CleanupInvitations(ctx context.Context) (int64, error) {
	resp, err := s.doAuthRequest(ctx, http.MethodPost, "/v1/invitations/cleanup", nil, nil)
	if err != nil {
		return 0, err
	}

	var out CleanupResponse
	if err := decodeJSON(resp, &out, http.StatusOK); err != nil {
		return 0, err
	}
	return out.Expired, nil
}
