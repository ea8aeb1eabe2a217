package repository

import (
	"database/sql"
	"fmt"

	"github.com/c5sim/coverage-sim-go/internal/models"
)

// CameraRepository handles database operations for registered cameras
type CameraRepository struct {
	db *sql.DB
}

// NewCameraRepository creates a new camera repository
func NewCameraRepository(db *sql.DB) *CameraRepository {
	return &CameraRepository{db: db}
}

// List retrieves all registered cameras in id order
func (r *CameraRepository) List() ([]models.Camera, error) {
	query := `SELECT id, latitud, longitud, tipo, descripcion FROM camaras ORDER BY id`

	rows, err := r.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to query cameras: %w", err)
	}
	defer rows.Close()

	var cameras []models.Camera
	for rows.Next() {
		var c models.Camera
		if err := rows.Scan(&c.ID, &c.Latitude, &c.Longitude, &c.Type, &c.Description); err != nil {
			return nil, fmt.Errorf("failed to scan camera: %w", err)
		}
		cameras = append(cameras, c)
	}

	return cameras, rows.Err()
}

// Create inserts a registered camera and returns it with its id
func (r *CameraRepository) Create(in models.CameraCreate) (*models.Camera, error) {
	query := `INSERT INTO camaras (latitud, longitud, tipo, descripcion) VALUES (?, ?, ?, ?)`

	res, err := r.db.Exec(query, in.Latitude, in.Longitude, in.Type, in.Description)
	if err != nil {
		return nil, fmt.Errorf("failed to insert camera: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("failed to get camera id: %w", err)
	}

	return &models.Camera{
		ID:          id,
		Latitude:    in.Latitude,
		Longitude:   in.Longitude,
		Type:        in.Type,
		Description: in.Description,
	}, nil
}
