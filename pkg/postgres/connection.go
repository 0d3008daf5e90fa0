package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"time"

	_ "github.com/lib/pq"
)

// Overridable in tests.
var (
	openDB = func(databaseURL string) (*sql.DB, error) {
		return sql.Open("postgres", databaseURL)
	}
	sleep = time.Sleep
)

// RetryConfig controls the exponential backoff used when establishing a
// connection. The first retry waits Backoff; every subsequent retry
// multiplies the wait by Multiplier. With KeepRetrying set the attempts
// continue indefinitely, otherwise the first failure is returned.
type RetryConfig struct {
	Backoff      time.Duration
	Multiplier   float64
	KeepRetrying bool
}

// DefaultRetryConfig retries forever, starting at 1s and doubling.
func DefaultRetryConfig() RetryConfig {
	return RetryConfig{
		Backoff:      time.Second,
		Multiplier:   2,
		KeepRetrying: true,
	}
}

// Connect establishes a connection to PostgreSQL with a single attempt.
func Connect(databaseURL string) (*sql.DB, error) {
	db, err := openDB(databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if err := ping(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	log.Println("Connected to PostgreSQL")
	return db, nil
}

// ConnectWithBackoff establishes a connection to PostgreSQL, retrying
// per rc on failure.
func ConnectWithBackoff(databaseURL string, rc RetryConfig) (*sql.DB, error) {
	wait := rc.Backoff
	for {
		db, err := Connect(databaseURL)
		if err == nil {
			return db, nil
		}
		if !rc.KeepRetrying {
			return nil, err
		}

		log.Printf("Failed to connect to PostgreSQL: %v, retrying in %s...", err, wait)
		sleep(wait)
		wait = time.Duration(float64(wait) * rc.Multiplier)
	}
}

func ping(db *sql.DB) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return db.PingContext(ctx)
}
