package db

import (
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/sirupsen/logrus"
)

// Migrate applies every pending migration found at sourceURL.
func Migrate(sourceURL, databaseURL string, log *logrus.Logger) error {
	m, err := migrate.New(sourceURL, databaseURL)
	if err != nil {
		return fmt.Errorf("failed to create migration instance: %w", err)
	}
	defer m.Close()

	if err := m.Up(); err != nil {
		if errors.Is(err, migrate.ErrNoChange) {
			log.Info("Database schema is up to date")
			return nil
		}
		return fmt.Errorf("failed to execute database migrations: %w", err)
	}

	version, dirty, err := m.Version()
	if err == nil {
		log.WithFields(logrus.Fields{"version": version, "dirty": dirty}).Info("Database migrated")
	}

	return nil
}
