// Package postgres opens the database handle and owns the schema DDL.
package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/lib/pq"
)

// Open connects to PostgreSQL and verifies the connection.
func Open(ctx context.Context, databaseURL string) (*sql.DB, error) {
	db, err := sql.Open("postgres", databaseURL)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(30 * time.Minute)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}
	return db, nil
}

// Schema is the full DDL, idempotent so tests and fresh deploys can apply it
// unconditionally.
const Schema = `
CREATE TABLE IF NOT EXISTS donors (
	id                 UUID PRIMARY KEY,
	name               TEXT NOT NULL,
	email              TEXT UNIQUE NOT NULL,
	blood_group        TEXT,
	last_donation_date DATE,
	location           TEXT,
	latitude           DOUBLE PRECISION,
	longitude          DOUBLE PRECISION,
	created_at         TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS blood_donations (
	id                 UUID PRIMARY KEY,
	donor_id           UUID NOT NULL REFERENCES donors(id),
	donor_name         TEXT NOT NULL,
	blood_group        TEXT NOT NULL,
	donation_date      DATE NOT NULL,
	contact_number     TEXT NOT NULL,
	location           TEXT NOT NULL,
	latitude           DOUBLE PRECISION,
	longitude          DOUBLE PRECISION,
	last_donation_date DATE,
	additional_notes   TEXT,
	is_available       BOOLEAN NOT NULL DEFAULT TRUE,
	created_at         TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE INDEX IF NOT EXISTS idx_donations_blood_group ON blood_donations(blood_group);

CREATE TABLE IF NOT EXISTS blood_requests (
	id               UUID PRIMARY KEY,
	requester_id     UUID NOT NULL REFERENCES donors(id),
	patient_name     TEXT NOT NULL,
	blood_group      TEXT NOT NULL,
	units_required   INTEGER NOT NULL DEFAULT 1,
	contact_number   TEXT NOT NULL,
	location         TEXT NOT NULL,
	latitude         DOUBLE PRECISION,
	longitude        DOUBLE PRECISION,
	required_date    DATE NOT NULL,
	hospital_name    TEXT,
	hospital_address TEXT,
	is_critical      BOOLEAN NOT NULL DEFAULT FALSE,
	additional_notes TEXT,
	fulfilled        BOOLEAN NOT NULL DEFAULT FALSE,
	fulfilled_by     UUID REFERENCES blood_donations(id),
	created_at       TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE INDEX IF NOT EXISTS idx_requests_blood_group ON blood_requests(blood_group);
`

// Migrate applies the schema.
func Migrate(ctx context.Context, db *sql.DB) error {
	if _, err := db.ExecContext(ctx, Schema); err != nil {
		return fmt.Errorf("apply schema: %w", err)
	}
	return nil
}
