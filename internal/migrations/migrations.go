// Package migrations embeds the SQL schema and applies it with golang-migrate.
package migrations

import (
	"embed"
	"errors"
	"fmt"
	"strings"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/pgx/v5"
	"github.com/golang-migrate/migrate/v4/source/iofs"
)

//go:embed sql/*.sql
var files embed.FS

// New opens a migrator for databaseURL. The caller must Close it.
func New(databaseURL string) (*migrate.Migrate, error) {
	src, err := iofs.New(files, "sql")
	if err != nil {
		return nil, fmt.Errorf("migrations source: %w", err)
	}
	m, err := migrate.NewWithSourceInstance("iofs", src, DriverURL(databaseURL))
	if err != nil {
		return nil, fmt.Errorf("migrate init: %w", err)
	}
	return m, nil
}

const (
	DirectionUp   = "up"
	DirectionDown = "down"
)

var ErrInvalidDirection = errors.New("direction must be up or down")

// Up applies all pending migrations. No pending migrations is not an error.
func Up(databaseURL string) error {
	return Run(databaseURL, DirectionUp, 0)
}

// Run migrates in direction by steps; zero steps means all the way.
func Run(databaseURL, direction string, steps int) error {
	if direction != DirectionUp && direction != DirectionDown {
		return ErrInvalidDirection
	}
	if steps < 0 {
		return errors.New("steps must not be negative")
	}

	m, err := New(databaseURL)
	if err != nil {
		return err
	}
	defer m.Close()

	switch {
	case direction == DirectionUp && steps > 0:
		err = m.Steps(steps)
	case direction == DirectionUp:
		err = m.Up()
	case steps > 0:
		err = m.Steps(-steps)
	default:
		err = m.Down()
	}
	if err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("migrate %s: %w", direction, err)
	}
	return nil
}

// DriverURL rewrites postgres URLs to the scheme the golang-migrate pgx/v5
// driver registers ("pgx5").
func DriverURL(databaseURL string) string {
	for _, scheme := range []string{"postgres://", "postgresql://", "pgx://"} {
		if strings.HasPrefix(databaseURL, scheme) {
			return "pgx5://" + strings.TrimPrefix(databaseURL, scheme)
		}
	}
	return databaseURL
}
