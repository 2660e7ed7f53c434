package service

import (
	"errors"
	"maps"
	"slices"
	"strings"
	"time"

	"github.com/aussiebroadwan/docket/internal/docket/domain"
)

// ErrForbidden is returned when the caller's role does not allow the action.
var ErrForbidden = errors.New("forbidden")

// Actor is the authenticated caller of a service method, as carried by the
// access token.
type Actor struct {
	ID   string
	Role domain.Role
}

// ActorOf is the actor for a loaded user.
func ActorOf(u domain.User) Actor {
	return Actor{ID: u.ID, Role: u.Role}
}

// ValidationError carries per field reasons for rejected input.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	keys := slices.Sorted(maps.Keys(e.Fields))
	return "validation failed: " + strings.Join(keys, ", ")
}

// invalid wraps a non-empty field map, or returns nil.
func invalid(fields map[string]string) error {
	if len(fields) == 0 {
		return nil
	}
	return &ValidationError{Fields: fields}
}

// clock returns now() in UTC, or time.Now when now is nil. Every service
// carries an injectable Now for tests.
func clock(now func() time.Time) time.Time {
	if now == nil {
		return time.Now().UTC()
	}
	return now().UTC()
}
