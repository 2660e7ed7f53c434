package app

import (
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/aussiebroadwan/docket/internal/docket/service"
	"github.com/stretchr/testify/require"
)

func testConfig(t *testing.T) Config {
	t.Helper()
	dir := t.TempDir()
	return Config{
		Issuer:               "docket-test",
		BootstrapToken:       "bootstrap-secret",
		DatabaseDriver:       DriverSQLite,
		DatabaseFile:         ":memory:",
		PepperFile:           filepath.Join(dir, "pepper"),
		NumKeys:              2,
		SessionTTL:           time.Hour,
		AccessTokenTTL:       time.Minute,
		InvitationTTL:        time.Hour,
		RequiredWeeklyHours:  45,
		PublicURL:            "http://docket.test",
		Env:                  "test",
		LogLevel:             "error",
		LogFormat:            "text",
		Port:                 0,
		ShutdownGracePeriod:  time.Second,
		HousekeepingInterval: time.Hour,
	}
}

func TestNewWiresHandler(t *testing.T) {
	application, err := New(testConfig(t))
	require.NoError(t, err)
	t.Cleanup(func() { _ = application.db.Close() })

	require.Equal(t, 2, application.keyManager.NumSigners())
	require.IsType(t, service.LogMailer{}, application.mailer)

	for _, path := range []string{"/livez", "/readyz", "/.well-known/jwks.json"} {
		rec := httptest.NewRecorder()
		application.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
		require.Equal(t, http.StatusOK, rec.Code, path)
	}

	rec := httptest.NewRecorder()
	application.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/me", nil))
	require.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestNewSelectsSMTPMailer(t *testing.T) {
	cfg := testConfig(t)
	cfg.SMTPHost = "smtp.docket.test"
	cfg.SMTPPort = 2525
	cfg.SMTPFrom = "noreply@docket.test"

	application, err := New(cfg)
	require.NoError(t, err)
	t.Cleanup(func() { _ = application.db.Close() })

	mailer, ok := application.mailer.(*service.SMTPMailer)
	require.True(t, ok)
	require.Equal(t, "smtp.docket.test", mailer.Host)
	require.Equal(t, 2525, mailer.Port)
}

func TestNewFailsOnBadPostgresURL(t *testing.T) {
	cfg := testConfig(t)
	cfg.DatabaseDriver = DriverPostgres
	cfg.DatabaseURL = "not a url ::"

	_, err := New(cfg)
	require.ErrorContains(t, err, "failed to initialize database")
}
