package history

const (
	createAttemptsTable = `
		CREATE TABLE IF NOT EXISTS delivery_attempts (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			job_id TEXT NOT NULL,
			job_type TEXT NOT NULL,
			destination TEXT NOT NULL,
			channel TEXT NOT NULL,
			outcome TEXT NOT NULL,
			error_message TEXT,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_attempts_job_id ON delivery_attempts(job_id);
		CREATE INDEX IF NOT EXISTS idx_attempts_created_at ON delivery_attempts(created_at);
	`

	insertAttempt = `
		INSERT INTO delivery_attempts (job_id, job_type, destination, channel, outcome, error_message)
		VALUES (?, ?, ?, ?, ?, ?)
	`

	listAttempts = `
		SELECT id, job_id, job_type, destination, channel, outcome, error_message, created_at
		FROM delivery_attempts ORDER BY created_at DESC, id DESC LIMIT ? OFFSET ?
	`

	listAttemptsByJob = `
		SELECT id, job_id, job_type, destination, channel, outcome, error_message, created_at
		FROM delivery_attempts WHERE job_id = ? ORDER BY id ASC
	`

	pruneAttempts = `
		DELETE FROM delivery_attempts WHERE created_at < datetime('now', ?)
	`
)
