package store

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/database/sqlite"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"
)

// Open connects to the database and runs schema migrations from sourceURL
// (e.g. "file://db/migrations"). Supported drivers are "sqlite" (default in
// main) and "postgres". An up-to-date schema is not an error.
func Open(dbDriver, dataSourceName, sourceURL string) (*sql.DB, error) {
	db, err := sql.Open(dbDriver, dataSourceName)
	if err != nil {
		return nil, err
	}

	var driver database.Driver
	switch dbDriver {
	case "sqlite":
		driver, err = sqlite.WithInstance(db, &sqlite.Config{})
	case "postgres":
		driver, err = postgres.WithInstance(db, &postgres.Config{})
	default:
		return nil, fmt.Errorf("unsupported database driver: %q", dbDriver)
	}
	if err != nil {
		return nil, err
	}

	m, err := migrate.NewWithDatabaseInstance(sourceURL, dbDriver, driver)
	if err != nil {
		return nil, err
	}

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return nil, err
	}

	return db, nil
}
