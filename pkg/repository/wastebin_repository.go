package repository

import (
	"database/sql"
	"fmt"

	"github.com/fabiobedeschi/iiot-userservice/pkg/models"
)

// WasteBinRepository persists and retrieves waste bin records.
type WasteBinRepository struct {
	db *sql.DB
}

// NewWasteBinRepository creates a new waste bin repository over db.
func NewWasteBinRepository(db *sql.DB) *WasteBinRepository {
	return &WasteBinRepository{db: db}
}

// FindWasteBin returns the waste bin with the given id, or ErrNotFound.
func (r *WasteBinRepository) FindWasteBin(id string) (*models.WasteBin, error) {
	row := r.db.QueryRow(
		"SELECT id, fill_level, updated_at FROM waste_bins WHERE id = $1", id)
	return scanWasteBin(row)
}

// FindAllWasteBins returns every waste bin record.
func (r *WasteBinRepository) FindAllWasteBins() ([]models.WasteBin, error) {
	rows, err := r.db.Query(
		"SELECT id, fill_level, updated_at FROM waste_bins ORDER BY id")
	if err != nil {
		return nil, fmt.Errorf("failed to list waste bins: %w", err)
	}
	defer rows.Close()

	bins := []models.WasteBin{}
	for rows.Next() {
		var b models.WasteBin
		if err := rows.Scan(&b.ID, &b.FillLevel, &b.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan waste bin: %w", err)
		}
		bins = append(bins, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate waste bins: %w", err)
	}
	return bins, nil
}

// UpdateWasteBin replaces the bin's fill level and returns the resulting
// row, or ErrNotFound if the id does not exist.
func (r *WasteBinRepository) UpdateWasteBin(id string, fillLevel int) (*models.WasteBin, error) {
	row := r.db.QueryRow(
		`UPDATE waste_bins
		 SET fill_level = $2, updated_at = NOW()
		 WHERE id = $1
		 RETURNING id, fill_level, updated_at`,
		id, fillLevel)
	return scanWasteBin(row)
}

func scanWasteBin(row *sql.Row) (*models.WasteBin, error) {
	var b models.WasteBin
	err := row.Scan(&b.ID, &b.FillLevel, &b.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan waste bin: %w", err)
	}
	return &b, nil
}
