package repository

// This file defines repository methods for hive records. Every read joins
// the owning user so responses can carry the trimmed-down owner summary
// without a second round trip. Uniqueness of (owner_id, name) is enforced
// by the database, not by application-level pre-checks, so concurrent
// creates cannot race past the constraint.

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/honeyflow/hive-api/internal/model"
)

// HiveRepo encapsulates all database queries related to hives. It depends
// on a sql.DB connection configured at startup.
type HiveRepo struct {
	db *sql.DB
}

// NewHiveRepo constructs a HiveRepo with the provided DB handle. This
// allows dependency injection of the database in tests and at startup.
func NewHiveRepo(db *sql.DB) *HiveRepo {
	return &HiveRepo{db: db}
}

const hiveColumns = `h.id, h.name, h.location, h.status, h.strength, h.owner_id, h.created_at,
	u.id, u.full_name, u.email`

func scanHive(row interface{ Scan(...any) error }) (*model.Hive, error) {
	var (
		h        model.Hive
		owner    model.OwnerSummary
		location sql.NullString
		status   sql.NullString
		strength sql.NullInt64
	)
	if err := row.Scan(&h.ID, &h.Name, &location, &status, &strength, &h.OwnerID, &h.CreatedAt,
		&owner.ID, &owner.FullName, &owner.Email); err != nil {
		return nil, err
	}
	if location.Valid {
		h.Location = &location.String
	}
	if status.Valid {
		h.Status = &status.String
	}
	if strength.Valid {
		n := int(strength.Int64)
		h.Strength = &n
	}
	h.Owner = &owner
	return &h, nil
}

// Create inserts a new hive. On success the record is re-read so the caller
// receives the DB-assigned id, created_at and the owner summary. A
// duplicate (owner_id, name) pair maps to ErrHiveNameExists.
func (r *HiveRepo) Create(ctx context.Context, h *model.Hive) (*model.Hive, error) {
	res, err := r.db.ExecContext(ctx,
		"INSERT INTO hives (name, location, status, strength, owner_id) VALUES (?,?,?,?,?)",
		h.Name, h.Location, h.Status, h.Strength, h.OwnerID)
	if err != nil {
		if strings.Contains(err.Error(), "1062") {
			return nil, ErrHiveNameExists
		}
		return nil, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}
	return r.GetByID(ctx, uint64(id))
}

// GetByID fetches a hive by its id regardless of owner, including the owner
// summary. It returns ErrHiveNotFound when no row matches. Authorization is
// decided by the caller; the repository never filters single-record reads.
func (r *HiveRepo) GetByID(ctx context.Context, id uint64) (*model.Hive, error) {
	const q = `SELECT ` + hiveColumns + `
	           FROM hives h JOIN users u ON u.id = h.owner_id
	           WHERE h.id = ?`
	h, err := scanHive(r.db.QueryRowContext(ctx, q, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrHiveNotFound
		}
		return nil, err
	}
	return h, nil
}

// ListAll returns every hive ordered newest-created first.
func (r *HiveRepo) ListAll(ctx context.Context) ([]*model.Hive, error) {
	const q = `SELECT ` + hiveColumns + `
	           FROM hives h JOIN users u ON u.id = h.owner_id
	           ORDER BY h.created_at DESC, h.id DESC`
	return r.list(ctx, q)
}

// ListByOwner returns the hives owned by a specific user, newest first.
func (r *HiveRepo) ListByOwner(ctx context.Context, ownerID uint64) ([]*model.Hive, error) {
	const q = `SELECT ` + hiveColumns + `
	           FROM hives h JOIN users u ON u.id = h.owner_id
	           WHERE h.owner_id = ?
	           ORDER BY h.created_at DESC, h.id DESC`
	return r.list(ctx, q, ownerID)
}

func (r *HiveRepo) list(ctx context.Context, q string, args ...any) ([]*model.Hive, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*model.Hive
	for rows.Next() {
		h, err := scanHive(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, h)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// Update persists the merged record produced by the handler. Name, location,
// status and strength are written as-is; id, owner_id and created_at are
// immutable. ErrHiveNotFound is returned when the id no longer exists and
// ErrHiveNameExists when the new name collides within the owner.
func (r *HiveRepo) Update(ctx context.Context, h *model.Hive) (*model.Hive, error) {
	_, err := r.db.ExecContext(ctx,
		"UPDATE hives SET name=?, location=?, status=?, strength=? WHERE id=?",
		h.Name, h.Location, h.Status, h.Strength, h.ID)
	if err != nil {
		if strings.Contains(err.Error(), "1062") {
			return nil, ErrHiveNameExists
		}
		return nil, err
	}
	// Affected-row counts can't distinguish a no-op update from a missing
	// row, so the follow-up read settles it and returns the fresh record.
	return r.GetByID(ctx, h.ID)
}

// Delete removes a hive by id. ErrHiveNotFound is returned when nothing was
// deleted.
func (r *HiveRepo) Delete(ctx context.Context, id uint64) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM hives WHERE id=?", id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrHiveNotFound
	}
	return nil
}
