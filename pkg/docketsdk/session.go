package docketsdk

import (
	"context"
	"net/http"
	"sync"
	"time"
)

// Session is a logged in user. There is no refresh: once the access token
// or the session behind it expires, log in again.
type Session struct {
	client *Client

	mu          sync.RWMutex
	accessToken string
	sessionID   string
	expiresAt   time.Time
	user        User
}

func newSession(c *Client, lr *LoginResponse) *Session {
	return &Session{
		client:      c,
		accessToken: lr.AccessToken,
		sessionID:   lr.SessionID,
		expiresAt:   lr.ExpiresAt,
		user:        lr.User,
	}
}

func (s *Session) AccessToken() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.accessToken
}

func (s *Session) SessionID() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.sessionID
}

// ExpiresAt is zero for sessions built with Client.NewSession.
func (s *Session) ExpiresAt() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.expiresAt
}

// User is the user returned at login. Use Me for a fresh copy.
func (s *Session) User() User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.user
}

// Logout revokes the session server side and forgets the token.
func (s *Session) Logout(ctx context.Context) error {
	resp, err := s.doAuthRequest(ctx, http.MethodPost, "/v1/auth/logout", nil, nil)
	if err != nil {
		return err
	}
	if err := checkStatusNoContent(resp); err != nil {
		return err
	}

	s.mu.Lock()
	s.accessToken = ""
	s.mu.Unlock()
	return nil
}
