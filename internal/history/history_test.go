package history

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cetakin/printd/internal/job"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func TestInsertAndListAttempts(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	a := &Attempt{
		JobID:       "job-1",
		JobType:     "receipt",
		Destination: "epson-tm-t82",
		Channel:     "direct-device",
		Outcome:     "failed",
		Error:       "transfer failed: chunk 2",
	}
	require.NoError(t, store.InsertAttempt(ctx, a))
	assert.NotZero(t, a.ID)

	require.NoError(t, store.InsertAttempt(ctx, &Attempt{
		JobID:       "job-1",
		JobType:     "receipt",
		Destination: "epson-tm-t82",
		Channel:     "host-bridge",
		Outcome:     "success",
	}))

	attempts, err := store.ListAttempts(ctx, 50, 0)
	require.NoError(t, err)
	require.Len(t, attempts, 2)

	byJob, err := store.ListAttemptsByJob(ctx, "job-1")
	require.NoError(t, err)
	require.Len(t, byJob, 2)
	assert.Equal(t, "direct-device", byJob[0].Channel)
	assert.Equal(t, "transfer failed: chunk 2", byJob[0].Error)
	assert.Equal(t, "host-bridge", byJob[1].Channel)
	assert.Empty(t, byJob[1].Error)
}

func TestListAttemptsUnknownJob(t *testing.T) {
	store := openTestStore(t)

	attempts, err := store.ListAttemptsByJob(context.Background(), "missing")
	require.NoError(t, err)
	assert.Empty(t, attempts)
}

func TestRecordAttemptSwallowsNothingOnHappyPath(t *testing.T) {
	store := openTestStore(t)

	store.RecordAttempt("job-9", job.TypeWorkOrder, "iware-pos80", "platform-spooler", "unavailable", "")

	attempts, err := store.ListAttemptsByJob(context.Background(), "job-9")
	require.NoError(t, err)
	require.Len(t, attempts, 1)
	assert.Equal(t, "work-order", attempts[0].JobType)
	assert.Equal(t, "unavailable", attempts[0].Outcome)
}

func TestPruneOlderThan(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.InsertAttempt(ctx, &Attempt{
		JobID: "job-1", JobType: "generic", Destination: "d", Channel: "c", Outcome: "success",
	}))

	// Fresh rows survive a 30-day retention pass.
	removed, err := store.PruneOlderThan(ctx, 30)
	require.NoError(t, err)
	assert.Zero(t, removed)

	attempts, err := store.ListAttempts(ctx, 10, 0)
	require.NoError(t, err)
	assert.Len(t, attempts, 1)
}
