package repository

import (
	"database/sql"
	"fmt"

	"github.com/c5sim/coverage-sim-go/internal/database"
	"github.com/c5sim/coverage-sim-go/internal/models"
)

// ProposalRepository handles database operations for proposed cameras
type ProposalRepository struct {
	db *sql.DB
}

// NewProposalRepository creates a new proposal repository
func NewProposalRepository(db *sql.DB) *ProposalRepository {
	return &ProposalRepository{db: db}
}

// List retrieves all saved camera proposals in id order
func (r *ProposalRepository) List() ([]models.ProposedCamera, error) {
	query := `SELECT id, latitud, longitud, cobertura, origen, descripcion
		FROM camaras_propuestas ORDER BY id`

	rows, err := r.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to query proposals: %w", err)
	}
	defer rows.Close()

	var proposals []models.ProposedCamera
	for rows.Next() {
		var p models.ProposedCamera
		if err := rows.Scan(&p.ID, &p.Latitude, &p.Longitude, &p.Coverage, &p.Origin, &p.Description); err != nil {
			return nil, fmt.Errorf("failed to scan proposal: %w", err)
		}
		proposals = append(proposals, p)
	}

	return proposals, rows.Err()
}

// SaveBatch inserts a batch of proposals in one transaction and returns
// them with their assigned ids
func (r *ProposalRepository) SaveBatch(batch []models.ProposedCameraCreate) ([]models.ProposedCamera, error) {
	saved := make([]models.ProposedCamera, 0, len(batch))

	err := database.Transaction(r.db, func(tx *sql.Tx) error {
		stmt, err := tx.Prepare(`INSERT INTO camaras_propuestas
			(latitud, longitud, cobertura, origen, descripcion)
			VALUES (?, ?, ?, ?, ?)`)
		if err != nil {
			return fmt.Errorf("failed to prepare insert: %w", err)
		}
		defer stmt.Close()

		for _, in := range batch {
			origin := in.Origin
			if origin == nil {
				def := "simulacion"
				origin = &def
			}

			res, err := stmt.Exec(in.Latitude, in.Longitude, in.Coverage, origin, in.Description)
			if err != nil {
				return fmt.Errorf("failed to insert proposal: %w", err)
			}
			id, err := res.LastInsertId()
			if err != nil {
				return fmt.Errorf("failed to get proposal id: %w", err)
			}

			saved = append(saved, models.ProposedCamera{
				ID:          id,
				Latitude:    in.Latitude,
				Longitude:   in.Longitude,
				Coverage:    in.Coverage,
				Origin:      origin,
				Description: in.Description,
			})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return saved, nil
}
