package postgres

import (
	"database/sql"
	"log"
)

// RunMigrations executes database migrations.
func RunMigrations(db *sql.DB) error {
	migrations := []string{
		`CREATE TABLE IF NOT EXISTS users (
			id VARCHAR(64) PRIMARY KEY,
			delta BIGINT NOT NULL DEFAULT 0,
			area VARCHAR(255) NOT NULL DEFAULT '',
			created_at TIMESTAMP NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMP NOT NULL DEFAULT NOW()
		)`,
		`CREATE INDEX IF NOT EXISTS idx_users_area ON users (area)`,
		`CREATE TABLE IF NOT EXISTS waste_bins (
			id VARCHAR(64) PRIMARY KEY,
			fill_level INTEGER NOT NULL DEFAULT 0,
			updated_at TIMESTAMP NOT NULL DEFAULT NOW()
		)`,
	}

	for _, m := range migrations {
		if _, err := db.Exec(m); err != nil {
			return err
		}
	}
	log.Println("Migrations completed")
	return nil
}
