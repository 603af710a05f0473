package metrics

import (
	"testing"

	"github.com/mauv0809/squad-scheduler/internal/database"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupTestDB creates an in-memory SQLite database for testing.
func setupTestDB(t *testing.T) (MetricsStore, func()) {
	t.Helper()

	db, teardown, err := database.InitDB(":memory:", "", "")
	require.NoError(t, err)

	return New(db), teardown
}

func TestIncrementAndGetAll(t *testing.T) {
	store, teardown := setupTestDB(t)
	defer teardown()

	// 1. Initially, there should be no metrics
	metrics, err := store.GetAll()
	require.NoError(t, err)
	assert.Empty(t, metrics)

	// 2. Increment a new key
	store.Increment("messages_generated")
	metrics, err = store.GetAll()
	require.NoError(t, err)
	assert.Equal(t, map[string]int{"messages_generated": 1}, metrics)

	// 3. Increment the same key again
	store.Increment("messages_generated")
	metrics, err = store.GetAll()
	require.NoError(t, err)
	assert.Equal(t, map[string]int{"messages_generated": 2}, metrics)

	// 4. Increment a different key
	store.Increment("roster_add")
	metrics, err = store.GetAll()
	require.NoError(t, err)
	assert.Equal(t, map[string]int{
		"messages_generated": 2,
		"roster_add":         1,
	}, metrics)
}

func TestServiceMirrorsIntoStore(t *testing.T) {
	store, teardown := setupTestDB(t)
	defer teardown()

	svc := NewService(prometheus.NewRegistry()).WithStore(store)
	svc.IncMessagesGenerated()
	svc.IncRosterChange("remove")
	svc.IncShareSent("slack")
	svc.IncAvailabilityEdit(true)

	assert.Equal(t, 1.0, testutil.ToFloat64(svc.MessagesGenerated))
	assert.Equal(t, 1.0, testutil.ToFloat64(svc.RosterChanges.WithLabelValues("remove")))
	assert.Equal(t, 1.0, testutil.ToFloat64(svc.AvailabilityEdits.WithLabelValues("true")))

	metrics, err := store.GetAll()
	require.NoError(t, err)
	assert.Equal(t, map[string]int{
		"messages_generated": 1,
		"roster_remove":      1,
		"shares_sent_slack":  1,
	}, metrics)
}
