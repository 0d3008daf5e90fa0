package repository

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"github.com/fabiobedeschi/iiot-userservice/pkg/models"
)

const uniqueViolation = "23505"

// UserRepository persists and retrieves user records. All operations are
// atomic with respect to a single row; no multi-row transactions.
type UserRepository struct {
	db *sql.DB
}

// NewUserRepository creates a new user repository over db.
func NewUserRepository(db *sql.DB) *UserRepository {
	return &UserRepository{db: db}
}

// FindUser returns the user with the given id, or ErrNotFound.
func (r *UserRepository) FindUser(id string) (*models.User, error) {
	row := r.db.QueryRow(
		"SELECT id, delta, area, created_at, updated_at FROM users WHERE id = $1", id)
	return scanUser(row)
}

// FindAllUsers returns every user record.
func (r *UserRepository) FindAllUsers() ([]models.User, error) {
	rows, err := r.db.Query(
		"SELECT id, delta, area, created_at, updated_at FROM users ORDER BY created_at")
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	return collectUsers(rows)
}

// FindUsersByArea returns every user currently assigned to area.
func (r *UserRepository) FindUsersByArea(area string) ([]models.User, error) {
	rows, err := r.db.Query(
		"SELECT id, delta, area, created_at, updated_at FROM users WHERE area = $1 ORDER BY created_at", area)
	if err != nil {
		return nil, fmt.Errorf("failed to list users by area: %w", err)
	}
	return collectUsers(rows)
}

// InsertUser creates a new user row. Returns ErrConflict if the id is
// already taken.
func (r *UserRepository) InsertUser(id string, delta int64, area string) (*models.User, error) {
	row := r.db.QueryRow(
		`INSERT INTO users (id, delta, area)
		 VALUES ($1, $2, $3)
		 RETURNING id, delta, area, created_at, updated_at`,
		id, delta, area)

	user, err := scanUser(row)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
			return nil, ErrConflict
		}
		return nil, err
	}
	return user, nil
}

// UpdateUser applies a partial update: a non-nil delta is added to the
// stored delta, a non-nil area replaces the stored area. It returns the
// resulting row together with the row's area before this update, or
// ErrNotFound if the id does not exist. The previous area is captured in
// the same statement so concurrent updates cannot race it.
func (r *UserRepository) UpdateUser(id string, delta *int64, area *string) (*models.User, string, error) {
	row := r.db.QueryRow(
		`UPDATE users u
		 SET delta = u.delta + COALESCE($2::bigint, 0),
		     area = COALESCE($3::varchar, u.area),
		     updated_at = NOW()
		 FROM (SELECT id, area AS old_area FROM users WHERE id = $1 FOR UPDATE) prev
		 WHERE u.id = prev.id
		 RETURNING u.id, u.delta, u.area, u.created_at, u.updated_at, prev.old_area`,
		id, delta, area)

	var u models.User
	var oldArea string
	err := row.Scan(&u.ID, &u.Delta, &u.Area, &u.CreatedAt, &u.UpdatedAt, &oldArea)
	if err == sql.ErrNoRows {
		return nil, "", ErrNotFound
	}
	if err != nil {
		return nil, "", fmt.Errorf("failed to update user: %w", err)
	}
	return &u, oldArea, nil
}

// SetUserDelta replaces the stored delta with an absolute value. This is
// the reconciliation path: re-applying the same value is idempotent.
func (r *UserRepository) SetUserDelta(id string, delta int64) (*models.User, error) {
	row := r.db.QueryRow(
		`UPDATE users
		 SET delta = $2, updated_at = NOW()
		 WHERE id = $1
		 RETURNING id, delta, area, created_at, updated_at`,
		id, delta)
	return scanUser(row)
}

// DeleteUser removes the user row and returns its final state, or
// ErrNotFound if the id does not exist.
func (r *UserRepository) DeleteUser(id string) (*models.User, error) {
	row := r.db.QueryRow(
		`DELETE FROM users
		 WHERE id = $1
		 RETURNING id, delta, area, created_at, updated_at`,
		id)
	return scanUser(row)
}

func scanUser(row *sql.Row) (*models.User, error) {
	var u models.User
	err := row.Scan(&u.ID, &u.Delta, &u.Area, &u.CreatedAt, &u.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan user: %w", err)
	}
	return &u, nil
}

func collectUsers(rows *sql.Rows) ([]models.User, error) {
	defer rows.Close()

	users := []models.User{}
	for rows.Next() {
		var u models.User
		if err := rows.Scan(&u.ID, &u.Delta, &u.Area, &u.CreatedAt, &u.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan user: %w", err)
		}
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate users: %w", err)
	}
	return users, nil
}
