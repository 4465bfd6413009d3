package sqlite

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"

	"github.com/urbanserve/urbanserve/internal/domain"
)

// UserRepository implements domain.UserRepository for SQLite
type UserRepository struct {
	db *sql.DB
}

// NewUserRepository creates a new UserRepository
func NewUserRepository(db *sql.DB) *UserRepository {
	return &UserRepository{db: db}
}

const userColumns = `
	id, first_name, last_name, email, phone_number, address, city, lat, lng, created_at
`

// Create inserts a new user
func (r *UserRepository) Create(ctx context.Context, user *domain.User) error {
	query := `
		INSERT INTO users (` + userColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err := r.db.ExecContext(ctx, query,
		user.ID, user.FirstName, user.LastName, user.Email, user.PhoneNumber,
		user.Address, user.City, user.Lat, user.Lng, formatTime(user.CreatedAt))
	return err
}

// GetByID retrieves a user by ID
func (r *UserRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = ?`

	user, err := scanUser(r.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return user, nil
}

// List retrieves all users, newest first
func (r *UserRepository) List(ctx context.Context) ([]*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users ORDER BY created_at DESC`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []*domain.User
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, user)
	}

	return users, rows.Err()
}

// Update updates a user
func (r *UserRepository) Update(ctx context.Context, user *domain.User) error {
	query := `
		UPDATE users SET
			first_name = ?, last_name = ?, email = ?, phone_number = ?,
			address = ?, city = ?, lat = ?, lng = ?
		WHERE id = ?
	`

	result, err := r.db.ExecContext(ctx, query,
		user.FirstName, user.LastName, user.Email, user.PhoneNumber,
		user.Address, user.City, user.Lat, user.Lng, user.ID)
	if err != nil {
		return err
	}

	return requireAffected(result)
}

// Delete deletes a user by ID
func (r *UserRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM users WHERE id = ?`, id)
	if err != nil {
		return err
	}

	return requireAffected(result)
}

func scanUser(row rowScanner) (*domain.User, error) {
	user := &domain.User{}
	var createdAt string

	err := row.Scan(
		&user.ID, &user.FirstName, &user.LastName, &user.Email, &user.PhoneNumber,
		&user.Address, &user.City, &user.Lat, &user.Lng, &createdAt,
	)
	if err != nil {
		return nil, err
	}

	user.CreatedAt, err = parseTime(createdAt)
	if err != nil {
		return nil, err
	}
	return user, nil
}
