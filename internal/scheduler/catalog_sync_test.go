package scheduler

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shelfstats/shelfstats/internal/database"
	auditdb "github.com/shelfstats/shelfstats/internal/database/audit"
	"github.com/shelfstats/shelfstats/internal/database/books"
	"github.com/shelfstats/shelfstats/internal/importers"
)

func setupScheduler(t *testing.T, cfg Config) (*CatalogSyncScheduler, func()) {
	t.Helper()

	dbPath := "./test_scheduler_" + t.Name() + ".db"
	db, err := database.NewDatabase(dbPath)
	require.NoError(t, err)

	importer := importers.NewCatalogImporter(books.NewRepository(db.DB))
	scheduler := NewCatalogSyncScheduler(importer, nil, auditdb.NewRepository(db.DB), cfg)

	cleanup := func() {
		db.Close()
		os.Remove(dbPath)
	}
	return scheduler, cleanup
}

func TestCatalogSyncScheduler_StartStop(t *testing.T) {
	scheduler, cleanup := setupScheduler(t, Config{AuditRetentionDays: 7})
	defer cleanup()

	require.NoError(t, scheduler.Start(context.Background()))
	assert.True(t, scheduler.IsRunning())

	scheduler.Stop()
	assert.False(t, scheduler.IsRunning())

	// A second Stop must be a no-op.
	scheduler.Stop()
	assert.False(t, scheduler.IsRunning())
}

func TestCatalogSyncScheduler_StopsOnContextCancel(t *testing.T) {
	scheduler, cleanup := setupScheduler(t, Config{AuditRetentionDays: 7})
	defer cleanup()

	ctx, cancel := context.WithCancel(context.Background())
	require.NoError(t, scheduler.Start(ctx))
	require.True(t, scheduler.IsRunning())

	cancel()
	require.Eventually(t, func() bool {
		return !scheduler.IsRunning()
	}, 2*time.Second, 10*time.Millisecond)
}

func TestCatalogSyncScheduler_NoJobsStaysIdle(t *testing.T) {
	scheduler, cleanup := setupScheduler(t, Config{})
	defer cleanup()

	require.NoError(t, scheduler.Start(context.Background()))
	assert.False(t, scheduler.IsRunning())
}
