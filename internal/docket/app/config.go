package app

import (
	"errors"
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Database drivers.
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

type Config struct {
	Issuer         string `env:"DOCKET_ISSUER"          envDefault:"docket"`
	BootstrapToken string `env:"DOCKET_BOOTSTRAP_TOKEN"` // empty disables /v1/bootstrap

	DatabaseDriver string `env:"DOCKET_DATABASE_DRIVER" envDefault:"sqlite"`
	DatabaseFile   string `env:"DOCKET_DATABASE_FILE"   envDefault:"docket.db"`
	DatabaseURL    string `env:"DOCKET_DATABASE_URL"`
	PepperFile     string `env:"DOCKET_PEPPER_FILE"     envDefault:"pepper"`
	NumKeys        int    `env:"DOCKET_NUM_KEYS"        envDefault:"3"`

	SessionTTL          time.Duration `env:"DOCKET_SESSION_TTL"           envDefault:"168h"`
	AccessTokenTTL      time.Duration `env:"DOCKET_ACCESS_TOKEN_TTL"      envDefault:"15m"`
	InvitationTTL       time.Duration `env:"DOCKET_INVITATION_TTL"        envDefault:"168h"`
	RequiredWeeklyHours float64       `env:"DOCKET_REQUIRED_WEEKLY_HOURS" envDefault:"45"`

	// PublicURL is where users reach the web client. Mailed links point there.
	PublicURL string `env:"DOCKET_PUBLIC_URL" envDefault:"http://localhost:8080"`

	// Without SMTPHost mail is only logged.
	SMTPHost     string `env:"DOCKET_SMTP_HOST"`
	SMTPPort     int    `env:"DOCKET_SMTP_PORT"     envDefault:"587"`
	SMTPUsername string `env:"DOCKET_SMTP_USERNAME"`
	SMTPPassword string `env:"DOCKET_SMTP_PASSWORD"`
	SMTPFrom     string `env:"DOCKET_SMTP_FROM"     envDefault:"docket@localhost"`

	Env                  string        `env:"ENV"                   envDefault:"dev"`
	LogLevel             string        `env:"LOG_LEVEL"             envDefault:"info"`
	LogFormat            string        `env:"LOG_FORMAT"            envDefault:"json"`
	Port                 int           `env:"PORT"                  envDefault:"8080"`
	ShutdownGracePeriod  time.Duration `env:"SHUTDOWN_GRACE_PERIOD" envDefault:"10s"`
	HousekeepingInterval time.Duration `env:"HOUSEKEEPING_INTERVAL" envDefault:"1h"`
}

// LoadConfig reads the environment and validates the result.
func LoadConfig() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	var errs []error

	switch c.DatabaseDriver {
	case DriverSQLite:
	case DriverPostgres:
		if c.DatabaseURL == "" {
			errs = append(errs, errors.New("DOCKET_DATABASE_URL is required for the postgres driver"))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown DOCKET_DATABASE_DRIVER %q", c.DatabaseDriver))
	}

	if c.Issuer == "" {
		errs = append(errs, errors.New("DOCKET_ISSUER must not be empty"))
	}
	for name, d := range map[string]time.Duration{
		"DOCKET_SESSION_TTL":      c.SessionTTL,
		"DOCKET_ACCESS_TOKEN_TTL": c.AccessTokenTTL,
		"DOCKET_INVITATION_TTL":   c.InvitationTTL,
		"HOUSEKEEPING_INTERVAL":   c.HousekeepingInterval,
	} {
		if d <= 0 {
			errs = append(errs, fmt.Errorf("%s must be positive, got %s", name, d))
		}
	}
	if c.RequiredWeeklyHours <= 0 {
		errs = append(errs, fmt.Errorf("DOCKET_REQUIRED_WEEKLY_HOURS must be positive, got %v", c.RequiredWeeklyHours))
	}
	if c.Port <= 0 || c.Port > 65535 {
		errs = append(errs, fmt.Errorf("PORT out of range: %d", c.Port))
	}

	return errors.Join(errs...)
}
