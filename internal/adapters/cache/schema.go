// Package cache provides durable station-key -> coordinate stores behind
// the CoordinateCache port: SQLite for single-node deployments, Postgres
// and Redis for shared ones.
package cache

import (
	"database/sql"
	"errors"
	"fmt"
)

// InitSQLiteSchema creates the coordinate cache table for a SQLite
// database file. Safe to run on every startup.
func InitSQLiteSchema(db *sql.DB) error {
	if db == nil {
		return errors.New("init schema: DB is nil")
	}

	createCacheQuery := `
	CREATE TABLE IF NOT EXISTS station_coordinates (
        station_key TEXT PRIMARY KEY,
        lat REAL NOT NULL,
        lon REAL NOT NULL
    );
	`

	if _, err := db.Exec(createCacheQuery); err != nil {
		return fmt.Errorf("init schema: create station_coordinates: %w", err)
	}
	return nil
}

// InitPostgresSchema creates the coordinate cache table on Postgres.
func InitPostgresSchema(db *sql.DB) error {
	if db == nil {
		return errors.New("init schema: DB is nil")
	}

	createCacheQuery := `
	CREATE TABLE IF NOT EXISTS station_coordinates (
        station_key TEXT PRIMARY KEY,
        lat DOUBLE PRECISION NOT NULL,
        lon DOUBLE PRECISION NOT NULL
    );
	`

	if _, err := db.Exec(createCacheQuery); err != nil {
		return fmt.Errorf("init schema: create station_coordinates: %w", err)
	}
	return nil
}
