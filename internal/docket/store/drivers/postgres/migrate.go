package postgres

import (
	"errors"
	"fmt"
	"strings"

	"github.com/aussiebroadwan/docket/internal/docket/store/drivers/postgres/migrations"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/pgx/v5"
	"github.com/golang-migrate/migrate/v4/source/iofs"
)

// ApplyMigrations runs the embedded migrations. golang-migrate opens its own
// connection through the pgx5 scheme, separate from the pool.
func (s *Store) ApplyMigrations() error {
	// 1. Source the embedded .sql files
	src, err := iofs.New(migrations.Migrations, ".")
	if err != nil {
		return err
	}

	// 2. Point the migrate driver at the same database
	instance, err := migrate.NewWithSourceInstance("iofs", src, migrateURL(s.url))
	if err != nil {
		return fmt.Errorf("postgres: migrate: %w", err)
	}
	defer instance.Close()

	// 3. Apply all up migrations
	if err := instance.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return err
	}
	return nil
}

// migrateURL swaps the scheme for the one the pgx/v5 migrate driver registers.
func migrateURL(url string) string {
	for _, prefix := range []string{"postgresql://", "postgres://"} {
		if rest, ok := strings.CutPrefix(url, prefix); ok {
			return "pgx5://" + rest
		}
	}
	return url
}
