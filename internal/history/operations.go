package history

import (
	"context"
	"database/sql"
	"fmt"
	"log"

	"github.com/cetakin/printd/internal/job"
)

// RecordAttempt satisfies the pipeline's recorder. Persistence failures are
// logged and swallowed; history must never block a delivery run.
func (s *Store) RecordAttempt(jobID string, jobType job.Type, destination, channel, outcome, errMsg string) {
	if err := s.InsertAttempt(context.Background(), &Attempt{
		JobID:       jobID,
		JobType:     string(jobType),
		Destination: destination,
		Channel:     channel,
		Outcome:     outcome,
		Error:       errMsg,
	}); err != nil {
		log.Printf("[history] failed to record attempt for job %s: %v", jobID, err)
	}
}

func (s *Store) InsertAttempt(ctx context.Context, a *Attempt) error {
	result, err := s.db.ExecContext(ctx, insertAttempt,
		a.JobID, a.JobType, a.Destination, a.Channel, a.Outcome, nullable(a.Error))
	if err != nil {
		return fmt.Errorf("failed to insert attempt: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get attempt id: %w", err)
	}
	a.ID = id
	return nil
}

func (s *Store) ListAttempts(ctx context.Context, limit, offset int) ([]*Attempt, error) {
	rows, err := s.db.QueryContext(ctx, listAttempts, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list attempts: %w", err)
	}
	defer rows.Close()
	return scanAttempts(rows)
}

func (s *Store) ListAttemptsByJob(ctx context.Context, jobID string) ([]*Attempt, error) {
	rows, err := s.db.QueryContext(ctx, listAttemptsByJob, jobID)
	if err != nil {
		return nil, fmt.Errorf("failed to list attempts for job: %w", err)
	}
	defer rows.Close()
	return scanAttempts(rows)
}

// PruneOlderThan deletes attempts older than the given number of days and
// reports how many rows went away.
func (s *Store) PruneOlderThan(ctx context.Context, days int) (int64, error) {
	result, err := s.db.ExecContext(ctx, pruneAttempts, fmt.Sprintf("-%d days", days))
	if err != nil {
		return 0, fmt.Errorf("failed to prune attempts: %w", err)
	}
	return result.RowsAffected()
}

func scanAttempts(rows *sql.Rows) ([]*Attempt, error) {
	var attempts []*Attempt
	for rows.Next() {
		a := &Attempt{}
		var errMsg sql.NullString
		if err := rows.Scan(
			&a.ID, &a.JobID, &a.JobType, &a.Destination,
			&a.Channel, &a.Outcome, &errMsg, &a.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan attempt: %w", err)
		}
		a.Error = errMsg.String
		attempts = append(attempts, a)
	}
	return attempts, rows.Err()
}

func nullable(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
