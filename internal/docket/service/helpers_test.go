package service

import (
	"context"
	"os"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/aussiebroadwan/docket/internal/docket/domain"
	"github.com/aussiebroadwan/docket/internal/docket/store"
	"github.com/aussiebroadwan/docket/internal/docket/store/drivers/sqlite"
	"github.com/aussiebroadwan/docket/pkg/cryptox"
	"github.com/aussiebroadwan/docket/pkg/idx"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	cryptox.SetPepper("test-pepper")
	os.Exit(m.Run())
}

// Monday 8 December 2025, 09:00 UTC.
var monday = time.Date(2025, 12, 8, 9, 0, 0, 0, time.UTC)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newClock() *fakeClock { return &fakeClock{now: monday} }

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func newStore(t *testing.T) store.Store {
	t.Helper()
	s, err := sqlite.NewStore(":memory:")
	require.NoError(t, err)
	require.NoError(t, s.ApplyMigrations())
	t.Cleanup(func() { _ = s.Close() })
	return s
}

// seedUser inserts a user with the password "password1" and an email built
// from the name.
func seedUser(t *testing.T, s store.Store, name string, role domain.Role) domain.User {
	t.Helper()
	hash, err := cryptox.HashPassword("password1")
	require.NoError(t, err)

	u := domain.User{
		ID:           idx.New().String(),
		Email:        domain.NormalizeEmail(strings.ReplaceAll(name, " ", ".") + "@firm.com"),
		FullName:     name,
		Role:         role,
		PasswordHash: hash,
		CreatedAt:    monday,
		UpdatedAt:    monday,
	}
	require.NoError(t, s.Users().CreateUser(context.Background(), u))
	return u
}

func seedTask(t *testing.T, s store.Store, assignee domain.User, due string, actual float64, status domain.TaskStatus) domain.Task {
	t.Helper()
	task := domain.Task{
		ID:          idx.New().String(),
		Title:       "task due " + due,
		DueDate:     domain.MustParseDate(due),
		Status:      status,
		AssigneeID:  assignee.ID,
		Priority:    domain.DefaultPriority,
		ActualHours: actual,
		CreatedBy:   assignee.ID,
		CreatedAt:   monday,
		UpdatedAt:   monday,
	}
	require.NoError(t, s.Tasks().CreateTask(context.Background(), task))
	return task
}
