package db

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/RehanAthallahAzhar/tokohobby-shippings/internal/models"
	_ "github.com/lib/pq"
)

func Connect(ctx context.Context, credential *models.Credential) (*sql.DB, error) {
	db, err := sql.Open("postgres", credential.DSN())
	if err != nil {
		return nil, fmt.Errorf("failed to open connection: %w", err)
	}

	if err := db.PingContext(ctx); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	db.SetMaxIdleConns(10)
	db.SetMaxOpenConns(100)
	db.SetConnMaxLifetime(time.Hour)

	return db, nil
}
