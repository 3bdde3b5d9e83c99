package request

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

// PostgresStore persists blood requests in PostgreSQL. Every method resolves
// its querier per call so it transparently joins a transaction carried in the
// context.
type PostgresStore struct {
	db *sql.DB
}

// NewPostgres constructs a PostgreSQL-backed request store.
func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

const requestColumns = `id, requester_id, patient_name, blood_group, units_required, contact_number,
	location, latitude, longitude, required_date, hospital_name, hospital_address,
	is_critical, additional_notes, fulfilled, fulfilled_by, created_at`

func (s *PostgresStore) GetByID(ctx context.Context, id domain.RequestID) (*Request, error) {
	query := `SELECT ` + requestColumns + ` FROM blood_requests WHERE id = $1`
	return s.queryOne(ctx, query, id.String())
}

func (s *PostgresStore) FindByFulfillingDonation(ctx context.Context, donationID domain.DonationID) (*Request, error) {
	query := `SELECT ` + requestColumns + ` FROM blood_requests WHERE fulfilled_by = $1`
	return s.queryOne(ctx, query, donationID.String())
}

func (s *PostgresStore) queryOne(ctx context.Context, query string, arg any) (*Request, error) {
	rows, err := tx.QuerierFrom(ctx, s.db).QueryContext(ctx, query, arg)
	if err != nil {
		return nil, fmt.Errorf("query request: %w", err)
	}
	defer rows.Close()
	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return nil, fmt.Errorf("query request: %w", err)
		}
		return nil, sentinel.ErrNotFound
	}
	r, err := scanRequest(rows)
	if err != nil {
		return nil, fmt.Errorf("scan request: %w", err)
	}
	return r, nil
}

func (s *PostgresStore) List(ctx context.Context, f Filter) ([]*Request, error) {
	query := `SELECT ` + requestColumns + ` FROM blood_requests`
	var (
		where []string
		args  []any
	)
	if f.Fulfilled != nil {
		args = append(args, *f.Fulfilled)
		where = append(where, fmt.Sprintf("fulfilled = $%d", len(args)))
	}
	if !f.BloodType.IsNil() {
		args = append(args, f.BloodType.String())
		where = append(where, fmt.Sprintf("blood_group = $%d", len(args)))
	}
	if f.CriticalOnly {
		where = append(where, "is_critical")
	}
	for i, clause := range where {
		if i == 0 {
			query += " WHERE " + clause
		} else {
			query += " AND " + clause
		}
	}
	query += " ORDER BY is_critical DESC, created_at DESC"

	rows, err := tx.QuerierFrom(ctx, s.db).QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list requests: %w", err)
	}
	defer rows.Close()
	return collectRequests(rows)
}

func (s *PostgresStore) ListOpen(ctx context.Context) ([]*Request, error) {
	open := false
	return s.List(ctx, Filter{Fulfilled: &open})
}

func (s *PostgresStore) Create(ctx context.Context, r *Request) error {
	query := `
		INSERT INTO blood_requests (` + requestColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)
	`
	var fulfilledBy any
	if r.FulfilledBy != nil {
		fulfilledBy = r.FulfilledBy.String()
	}
	_, err := tx.QuerierFrom(ctx, s.db).ExecContext(ctx, query,
		r.ID.String(), r.RequesterID.String(), r.PatientName, r.BloodType.String(),
		r.UnitsRequired, r.ContactNumber, r.Location, r.Latitude, r.Longitude,
		r.RequiredDate, nullableString(r.HospitalName), nullableString(r.HospitalAddress),
		r.Critical, nullableString(r.AdditionalNotes), r.Fulfilled, fulfilledBy, r.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	return nil
}

// MarkFulfilled atomically transitions an open request to fulfilled. The
// openness guard lives in the WHERE clause so two racing fulfillments cannot
// both succeed.
func (s *PostgresStore) MarkFulfilled(ctx context.Context, id domain.RequestID, donationID domain.DonationID) error {
	query := `
		UPDATE blood_requests SET fulfilled = TRUE, fulfilled_by = $2
		WHERE id = $1 AND NOT fulfilled
	`
	res, err := tx.QuerierFrom(ctx, s.db).ExecContext(ctx, query, id.String(), donationID.String())
	if err != nil {
		return fmt.Errorf("mark request fulfilled: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("mark request fulfilled: %w", err)
	}
	if affected == 0 {
		return sentinel.ErrConflict
	}
	return nil
}

func collectRequests(rows *sql.Rows) ([]*Request, error) {
	var out []*Request
	for rows.Next() {
		r, err := scanRequest(rows)
		if err != nil {
			return nil, fmt.Errorf("scan request: %w", err)
		}
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate requests: %w", err)
	}
	return out, nil
}

func scanRequest(rows *sql.Rows) (*Request, error) {
	var (
		r               Request
		id, requesterID string
		bloodGroup      string
		requiredDate    time.Time
		hospitalName    sql.NullString
		hospitalAddress sql.NullString
		notes           sql.NullString
		fulfilledBy     sql.NullString
		createdAt       time.Time
	)
	err := rows.Scan(&id, &requesterID, &r.PatientName, &bloodGroup, &r.UnitsRequired,
		&r.ContactNumber, &r.Location, &r.Latitude, &r.Longitude, &requiredDate,
		&hospitalName, &hospitalAddress, &r.Critical, &notes, &r.Fulfilled,
		&fulfilledBy, &createdAt)
	if err != nil {
		return nil, err
	}
	ru, err := uuid.Parse(id)
	if err != nil {
		return nil, fmt.Errorf("parse request id: %w", err)
	}
	ou, err := uuid.Parse(requesterID)
	if err != nil {
		return nil, fmt.Errorf("parse requester id: %w", err)
	}
	r.ID = domain.RequestID(ru)
	r.RequesterID = domain.DonorID(ou)
	r.BloodType = domain.BloodType(bloodGroup)
	r.RequiredDate = requiredDate
	r.HospitalName = hospitalName.String
	r.HospitalAddress = hospitalAddress.String
	r.AdditionalNotes = notes.String
	if fulfilledBy.Valid {
		du, err := uuid.Parse(fulfilledBy.String)
		if err != nil {
			return nil, fmt.Errorf("parse fulfilling donation id: %w", err)
		}
		donationID := domain.DonationID(du)
		r.FulfilledBy = &donationID
	}
	r.CreatedAt = createdAt
	return &r, nil
}

func nullableString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
