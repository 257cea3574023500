// Package history keeps a record of every delivery attempt in a local
// sqlite database. Jobs themselves are never persisted; only the outcome
// of each channel attempt is, so operators can see why a job fell through
// to a later channel.
package history

import (
	"database/sql"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

type Store struct {
	db *sql.DB
}

type Attempt struct {
	ID          int64     `json:"id"`
	JobID       string    `json:"job_id"`
	JobType     string    `json:"job_type"`
	Destination string    `json:"destination"`
	Channel     string    `json:"channel"`
	Outcome     string    `json:"outcome"`
	Error       string    `json:"error,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open history database: %w", err)
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if _, err := db.Exec(createAttemptsTable); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create attempts table: %w", err)
	}

	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}
