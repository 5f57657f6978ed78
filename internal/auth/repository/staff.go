package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/mknoufi/stock-verify-backend/pkg/database"
	"github.com/mknoufi/stock-verify-backend/pkg/errors"
)

// Staff represents a warehouse staff member who can log in with a PIN
type Staff struct {
	ID        string    `db:"id" json:"id"`
	Username  string    `db:"username" json:"username"`
	Name      string    `db:"name" json:"name"`
	Role      string    `db:"role" json:"role"`
	PINHash   string    `db:"pin_hash" json:"-"`
	IsActive  bool      `db:"is_active" json:"is_active"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

// StaffRepository handles staff persistence
type StaffRepository struct {
	db *database.DB
}

// NewStaffRepository creates a new staff repository
func NewStaffRepository(db *database.DB) *StaffRepository {
	return &StaffRepository{db: db}
}

// Create creates a new staff member
func (r *StaffRepository) Create(ctx context.Context, staff *Staff) error {
	if staff.ID == "" {
		staff.ID = uuid.New().String()
	}

	query := `
		INSERT INTO staff (id, username, name, role, pin_hash, is_active)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at, updated_at
	`

	return r.db.QueryRowxContext(ctx, query,
		staff.ID, staff.Username, staff.Name, staff.Role, staff.PINHash, staff.IsActive,
	).Scan(&staff.CreatedAt, &staff.UpdatedAt)
}

// GetByID gets a staff member by ID
func (r *StaffRepository) GetByID(ctx context.Context, id string) (*Staff, error) {
	var staff Staff
	query := `SELECT * FROM staff WHERE id = $1`
	if err := r.db.GetContext(ctx, &staff, query, id); err != nil {
		if err == sql.ErrNoRows {
			return nil, errors.NotFound("staff")
		}
		return nil, err
	}
	return &staff, nil
}

// GetByUsername gets an active staff member by username
func (r *StaffRepository) GetByUsername(ctx context.Context, username string) (*Staff, error) {
	var staff Staff
	query := `SELECT * FROM staff WHERE username = $1 AND is_active = true`
	if err := r.db.GetContext(ctx, &staff, query, username); err != nil {
		if err == sql.ErrNoRows {
			return nil, errors.NotFound("staff")
		}
		return nil, err
	}
	return &staff, nil
}

// UpdatePINHash updates a staff member's PIN hash
func (r *StaffRepository) UpdatePINHash(ctx context.Context, id, pinHash string) error {
	query := `UPDATE staff SET pin_hash = $2, updated_at = NOW() WHERE id = $1`
	result, err := r.db.ExecContext(ctx, query, id, pinHash)
	if err != nil {
		return err
	}

	affected, _ := result.RowsAffected()
	if affected == 0 {
		return errors.NotFound("staff")
	}

	return nil
}
