// Package migrations applies the embedded schema migrations with golang-migrate.
package migrations

import (
	"database/sql"
	"embed"
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/sirupsen/logrus"
)

//go:embed sql/*.sql
var files embed.FS

// Result reports the schema version before and after a run.
type Result struct {
	PreMigrationVersion  uint
	PostMigrationVersion uint
}

// Up migrates db to the latest version. An already current schema is not an error.
func Up(db *sql.DB, log *logrus.Logger) (*Result, error) {
	m, err := newMigrate(db)
	if err != nil {
		return nil, err
	}

	preMigrationVersion, _, err := m.Version()
	if errors.Is(err, migrate.ErrNilVersion) {
		preMigrationVersion = 0
	} else if err != nil {
		return nil, fmt.Errorf("migrations: pre version: %w", err)
	}

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return nil, fmt.Errorf("migrations: up: %w", err)
	}

	postMigrationVersion, _, err := m.Version()
	if err != nil {
		return nil, fmt.Errorf("migrations: post version: %w", err)
	}

	log.WithFields(logrus.Fields{
		"preMigrationVersion":  preMigrationVersion,
		"postMigrationVersion": postMigrationVersion,
	}).Info("Migration status")

	return &Result{
		PreMigrationVersion:  preMigrationVersion,
		PostMigrationVersion: postMigrationVersion,
	}, nil
}

func newMigrate(db *sql.DB) (*migrate.Migrate, error) {
	source, err := iofs.New(files, "sql")
	if err != nil {
		return nil, fmt.Errorf("migrations: source: %w", err)
	}

	driver, err := postgres.WithInstance(db, &postgres.Config{})
	if err != nil {
		return nil, fmt.Errorf("migrations: postgres.WithInstance: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", source, "postgres", driver)
	if err != nil {
		return nil, fmt.Errorf("migrations: migrate.NewWithInstance: %w", err)
	}
	return m, nil
}
