package docketsdk

import (
	"regexp"
	"strings"
	"time"
)

const (
	requiredReason    = "required"
	minPasswordLength = 6
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

func validEmail(s string) bool {
	return emailPattern.MatchString(strings.TrimSpace(s))
}

func validDate(s string) bool {
	_, err := time.Parse(time.DateOnly, s)
	return err == nil
}

func orNil(errs map[string]string) map[string]string {
	if len(errs) == 0 {
		return nil
	}
	return errs
}

// Validate checks the request shape. Returns nil when it is well formed.
func (b BootstrapRequest) Validate() map[string]string {
	errs := make(map[string]string)
	if !validEmail(b.Email) {
		errs["email"] = "must be a valid email address"
	}
	if strings.TrimSpace(b.FullName) == "" {
		errs["full_name"] = requiredReason
	}
	if len(b.Password) < minPasswordLength {
		errs["password"] = "must be at least 6 characters"
	}
	return orNil(errs)
}

func (l LoginRequest) Validate() map[string]string {
	errs := make(map[string]string)
	if strings.TrimSpace(l.Email) == "" {
		errs["email"] = requiredReason
	}
	if l.Password == "" {
		errs["password"] = requiredReason
	}
	return orNil(errs)
}

func (c CreateInvitationRequest) Validate() map[string]string {
	errs := make(map[string]string)
	if !validEmail(c.Email) {
		errs["email"] = "must be a valid email address"
	}
	return orNil(errs)
}

func (c CreateTaskRequest) Validate() map[string]string {
	errs := make(map[string]string)
	if strings.TrimSpace(c.Title) == "" {
		errs["title"] = requiredReason
	}
	if !validDate(c.DueDate) {
		errs["due_date"] = "must be a date formatted YYYY-MM-DD"
	}
	return orNil(errs)
}

func (u UpdateTaskRequest) Validate() map[string]string {
	errs := make(map[string]string)
	if u.DueDate != nil && !validDate(*u.DueDate) {
		errs["due_date"] = "must be a date formatted YYYY-MM-DD"
	}
	return orNil(errs)
}

func (s SubmitTimesheetRequest) Validate() map[string]string {
	errs := make(map[string]string)
	if s.LunchHours < 0 {
		errs["lunch_hours"] = "cannot be negative"
	}
	return orNil(errs)
}
