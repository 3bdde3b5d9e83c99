package donor

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"dropofhope/pkg/domain"
	"dropofhope/pkg/platform/sentinel"
	"dropofhope/pkg/platform/tx"
)

// PostgresStore persists donor profiles in PostgreSQL.
// This store is pure I/O; profile rules belong in the callers.
type PostgresStore struct {
	db *sql.DB
}

// NewPostgres constructs a PostgreSQL-backed donor store.
func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

const donorColumns = `id, name, email, blood_group, last_donation_date, location, latitude, longitude, created_at`

func (s *PostgresStore) GetByID(ctx context.Context, id domain.DonorID) (*Donor, error) {
	query := `SELECT ` + donorColumns + ` FROM donors WHERE id = $1`
	d, err := scanDonor(tx.QuerierFrom(ctx, s.db).QueryRowContext(ctx, query, id.String()))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("get donor: %w", err)
	}
	return d, nil
}

func (s *PostgresStore) Save(ctx context.Context, d *Donor) error {
	query := `
		INSERT INTO donors (` + donorColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (id) DO UPDATE SET
			name = EXCLUDED.name,
			email = EXCLUDED.email
	`
	_, err := tx.QuerierFrom(ctx, s.db).ExecContext(ctx, query,
		d.ID.String(), d.Name, d.Email, nullBloodType(d.BloodType),
		d.LastDonationDate, nullString(d.Location), d.Latitude, d.Longitude, d.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("save donor: %w", err)
	}
	return nil
}

func (s *PostgresStore) UpdateProfile(ctx context.Context, d *Donor) error {
	query := `
		UPDATE donors SET
			name = $2, blood_group = $3, last_donation_date = $4,
			location = $5, latitude = $6, longitude = $7
		WHERE id = $1
	`
	res, err := tx.QuerierFrom(ctx, s.db).ExecContext(ctx, query,
		d.ID.String(), d.Name, nullBloodType(d.BloodType), d.LastDonationDate,
		nullString(d.Location), d.Latitude, d.Longitude,
	)
	if err != nil {
		return fmt.Errorf("update donor profile: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update donor profile: %w", err)
	}
	if affected == 0 {
		return sentinel.ErrNotFound
	}
	return nil
}

func scanDonor(row *sql.Row) (*Donor, error) {
	var (
		d          Donor
		id         string
		bloodGroup sql.NullString
		lastDate   sql.NullTime
		location   sql.NullString
		createdAt  time.Time
	)
	err := row.Scan(&id, &d.Name, &d.Email, &bloodGroup, &lastDate, &location, &d.Latitude, &d.Longitude, &createdAt)
	if err != nil {
		return nil, err
	}
	u, err := uuid.Parse(id)
	if err != nil {
		return nil, fmt.Errorf("parse donor id: %w", err)
	}
	d.ID = domain.DonorID(u)
	if bloodGroup.Valid {
		d.BloodType = domain.BloodType(bloodGroup.String)
	}
	if lastDate.Valid {
		t := lastDate.Time
		d.LastDonationDate = &t
	}
	d.Location = location.String
	d.CreatedAt = createdAt
	return &d, nil
}

func nullBloodType(bt domain.BloodType) sql.NullString {
	return sql.NullString{String: bt.String(), Valid: !bt.IsNil()}
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
