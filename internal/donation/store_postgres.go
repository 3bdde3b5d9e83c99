package donation

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"dropofhope/pkg/domain"
	"dropofhope/pkg/platform/sentinel"
	"dropofhope/pkg/platform/tx"
)

// PostgresStore persists donation listings in PostgreSQL. All methods resolve
// their querier per call so they transparently join a transaction carried in
// the context.
type PostgresStore struct {
	db *sql.DB
}

// NewPostgres constructs a PostgreSQL-backed donation store.
func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

const donationColumns = `id, donor_id, donor_name, blood_group, donation_date, contact_number,
	location, latitude, longitude, last_donation_date, additional_notes, is_available, created_at`

func (s *PostgresStore) GetByID(ctx context.Context, id domain.DonationID) (*Donation, error) {
	query := `SELECT ` + donationColumns + ` FROM blood_donations WHERE id = $1`
	rows, err := tx.QuerierFrom(ctx, s.db).QueryContext(ctx, query, id.String())
	if err != nil {
		return nil, fmt.Errorf("get donation: %w", err)
	}
	defer rows.Close()
	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return nil, fmt.Errorf("get donation: %w", err)
		}
		return nil, sentinel.ErrNotFound
	}
	d, err := scanDonation(rows)
	if err != nil {
		return nil, fmt.Errorf("get donation: %w", err)
	}
	return d, nil
}

func (s *PostgresStore) ListAvailable(ctx context.Context, bloodType domain.BloodType) ([]*Donation, error) {
	query := `SELECT ` + donationColumns + ` FROM blood_donations WHERE is_available`
	args := []any{}
	if !bloodType.IsNil() {
		query += ` AND blood_group = $1`
		args = append(args, bloodType.String())
	}
	query += ` ORDER BY created_at DESC`

	rows, err := tx.QuerierFrom(ctx, s.db).QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list available donations: %w", err)
	}
	defer rows.Close()
	return collectDonations(rows)
}

func (s *PostgresStore) ListByDonor(ctx context.Context, donorID domain.DonorID) ([]*Donation, error) {
	query := `SELECT ` + donationColumns + ` FROM blood_donations WHERE donor_id = $1 ORDER BY donation_date DESC`
	rows, err := tx.QuerierFrom(ctx, s.db).QueryContext(ctx, query, donorID.String())
	if err != nil {
		return nil, fmt.Errorf("list donations by donor: %w", err)
	}
	defer rows.Close()
	return collectDonations(rows)
}

func (s *PostgresStore) Create(ctx context.Context, d *Donation) error {
	query := `
		INSERT INTO blood_donations (` + donationColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
	`
	_, err := tx.QuerierFrom(ctx, s.db).ExecContext(ctx, query,
		d.ID.String(), d.DonorID.String(), d.DonorName, d.BloodType.String(),
		d.DonationDate, d.ContactNumber, d.Location, d.Latitude, d.Longitude,
		d.LastDonationDate, nullableString(d.AdditionalNotes), d.Available, d.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("create donation: %w", err)
	}
	return nil
}

func (s *PostgresStore) Update(ctx context.Context, d *Donation) error {
	query := `
		UPDATE blood_donations SET
			donor_name = $2, blood_group = $3, donation_date = $4,
			contact_number = $5, location = $6, latitude = $7, longitude = $8
		WHERE id = $1
	`
	res, err := tx.QuerierFrom(ctx, s.db).ExecContext(ctx, query,
		d.ID.String(), d.DonorName, d.BloodType.String(), d.DonationDate,
		d.ContactNumber, d.Location, d.Latitude, d.Longitude,
	)
	if err != nil {
		return fmt.Errorf("update donation: %w", err)
	}
	return requireAffected(res, "update donation")
}

func (s *PostgresStore) Delete(ctx context.Context, id domain.DonationID) error {
	res, err := tx.QuerierFrom(ctx, s.db).ExecContext(ctx,
		`DELETE FROM blood_donations WHERE id = $1`, id.String())
	if err != nil {
		return fmt.Errorf("delete donation: %w", err)
	}
	return requireAffected(res, "delete donation")
}

// Reserve atomically consumes an available donation. The availability guard
// lives in the WHERE clause so two racing reservations cannot both succeed.
func (s *PostgresStore) Reserve(ctx context.Context, id domain.DonationID) error {
	query := `
		UPDATE blood_donations SET is_available = FALSE
		WHERE id = $1 AND is_available
	`
	res, err := tx.QuerierFrom(ctx, s.db).ExecContext(ctx, query, id.String())
	if err != nil {
		return fmt.Errorf("reserve donation: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("reserve donation: %w", err)
	}
	if affected == 0 {
		return sentinel.ErrConflict
	}
	return nil
}

func (s *PostgresStore) SetAvailability(ctx context.Context, id domain.DonationID, available bool) error {
	res, err := tx.QuerierFrom(ctx, s.db).ExecContext(ctx,
		`UPDATE blood_donations SET is_available = $2 WHERE id = $1`, id.String(), available)
	if err != nil {
		return fmt.Errorf("set donation availability: %w", err)
	}
	return requireAffected(res, "set donation availability")
}

func requireAffected(res sql.Result, op string) error {
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if affected == 0 {
		return sentinel.ErrNotFound
	}
	return nil
}

func collectDonations(rows *sql.Rows) ([]*Donation, error) {
	var out []*Donation
	for rows.Next() {
		d, err := scanDonation(rows)
		if err != nil {
			return nil, fmt.Errorf("scan donation: %w", err)
		}
		out = append(out, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate donations: %w", err)
	}
	return out, nil
}

func scanDonation(rows *sql.Rows) (*Donation, error) {
	var (
		d            Donation
		id, donorID  string
		bloodGroup   string
		lastDate     sql.NullTime
		notes        sql.NullString
		donationDate time.Time
		createdAt    time.Time
	)
	err := rows.Scan(&id, &donorID, &d.DonorName, &bloodGroup, &donationDate,
		&d.ContactNumber, &d.Location, &d.Latitude, &d.Longitude,
		&lastDate, &notes, &d.Available, &createdAt)
	if err != nil {
		return nil, err
	}
	du, err := uuid.Parse(id)
	if err != nil {
		return nil, fmt.Errorf("parse donation id: %w", err)
	}
	ou, err := uuid.Parse(donorID)
	if err != nil {
		return nil, fmt.Errorf("parse donor id: %w", err)
	}
	d.ID = domain.DonationID(du)
	d.DonorID = domain.DonorID(ou)
	d.BloodType = domain.BloodType(bloodGroup)
	d.DonationDate = donationDate
	if lastDate.Valid {
		t := lastDate.Time
		d.LastDonationDate = &t
	}
	d.AdditionalNotes = notes.String
	d.CreatedAt = createdAt
	return &d, nil
}

func nullableString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
