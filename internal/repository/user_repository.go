package repository

import (
	"database/sql"
	"fmt"

	"github.com/c5sim/coverage-sim-go/internal/models"
)

// UserRepository handles database operations for operator accounts
type UserRepository struct {
	db *sql.DB
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *sql.DB) *UserRepository {
	return &UserRepository{db: db}
}

// GetByEmail retrieves a user by normalized email. Returns nil when the
// email is not registered.
func (r *UserRepository) GetByEmail(email string) (*models.User, error) {
	query := `SELECT id, nombre, primer_apellido, segundo_apellido, email, password_hash, created_at
		FROM usuarios WHERE email = ?`

	var u models.User
	err := r.db.QueryRow(query, email).Scan(
		&u.ID, &u.Name, &u.FirstSurname, &u.SecondSurname,
		&u.Email, &u.PasswordHash, &u.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	return &u, nil
}

// Create inserts a user and returns it with its id
func (r *UserRepository) Create(u *models.User) error {
	query := `INSERT INTO usuarios (nombre, primer_apellido, segundo_apellido, email, password_hash)
		VALUES (?, ?, ?, ?, ?)`

	res, err := r.db.Exec(query, u.Name, u.FirstSurname, u.SecondSurname, u.Email, u.PasswordHash)
	if err != nil {
		return fmt.Errorf("failed to insert user: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get user id: %w", err)
	}
	u.ID = id
	return nil
}
