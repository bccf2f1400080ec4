// Package scheduler runs periodic maintenance: catalog re-ingestion from
// the configured CSV and audit-trail retention cleanup.
package scheduler

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/shelfstats/shelfstats/internal/audit"
	auditrepo "github.com/shelfstats/shelfstats/internal/database/audit"
	"github.com/shelfstats/shelfstats/internal/importers"
)

// Config controls the catalog sync scheduler.
type Config struct {
	Enabled            bool
	Schedule           string // Cron format
	CatalogPath        string
	AuditRetentionDays int
}

// CatalogSyncScheduler manages periodic catalog re-imports and audit cleanup.
type CatalogSyncScheduler struct {
	importer  *importers.CatalogImporter
	auditor   *audit.Service
	auditRepo *auditrepo.Repository
	config    Config

	cron       *cron.Cron
	mu         sync.RWMutex
	isRunning  bool
	cancelFunc context.CancelFunc
}

// NewCatalogSyncScheduler creates a new scheduler instance.
func NewCatalogSyncScheduler(importer *importers.CatalogImporter, auditor *audit.Service, auditRepo *auditrepo.Repository, cfg Config) *CatalogSyncScheduler {
	return &CatalogSyncScheduler{
		importer:  importer,
		auditor:   auditor,
		auditRepo: auditRepo,
		config:    cfg,
		cron:      cron.New(cron.WithParser(cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow))),
	}
}

// Start begins the scheduler if sync is enabled.
func (s *CatalogSyncScheduler) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.isRunning {
		return nil
	}

	jobs := 0

	if s.config.Enabled {
		if s.config.CatalogPath == "" {
			log.Printf("Catalog sync scheduler: catalog path not configured, skipping")
		} else {
			if _, err := s.cron.AddFunc(s.config.Schedule, s.runSync); err != nil {
				return fmt.Errorf("failed to schedule catalog sync: %w", err)
			}
			log.Printf("Catalog sync scheduler: started with schedule '%s'", s.config.Schedule)
			jobs++
		}
	} else {
		log.Printf("Catalog sync scheduler: disabled")
	}

	if s.auditRepo != nil && s.config.AuditRetentionDays > 0 {
		// Daily cleanup of expired audit events
		if _, err := s.cron.AddFunc("30 3 * * *", s.runAuditCleanup); err != nil {
			return fmt.Errorf("failed to schedule audit cleanup: %w", err)
		}
		jobs++
	}

	if jobs == 0 {
		return nil
	}

	var cancelCtx context.Context
	cancelCtx, s.cancelFunc = context.WithCancel(ctx)

	s.cron.Start()
	s.isRunning = true

	go func() {
		<-cancelCtx.Done()
		s.Stop()
	}()

	return nil
}

// Stop gracefully stops the scheduler.
func (s *CatalogSyncScheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.isRunning {
		return
	}

	ctx := s.cron.Stop()
	<-ctx.Done()

	s.isRunning = false
	if s.cancelFunc != nil {
		// Release the cancel-watch goroutine started in Start.
		s.cancelFunc()
		s.cancelFunc = nil
	}

	log.Printf("Catalog sync scheduler: stopped")
}

// RunNow triggers an immediate catalog sync.
func (s *CatalogSyncScheduler) RunNow() {
	go s.runSync()
}

// IsRunning returns whether the scheduler is active.
func (s *CatalogSyncScheduler) IsRunning() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.isRunning
}

func (s *CatalogSyncScheduler) runSync() {
	if s.config.CatalogPath == "" {
		return
	}

	log.Printf("Catalog sync: importing %s", s.config.CatalogPath)
	startTime := time.Now()

	result, err := s.importer.ImportFile(s.config.CatalogPath)
	s.auditor.LogCatalogImport(s.config.CatalogPath, result.BooksProcessed, result.BooksCreated, err)
	if err != nil {
		log.Printf("Catalog sync: failed: %v", err)
		return
	}

	log.Printf("Catalog sync: %d processed, %d created, %d updated in %v",
		result.BooksProcessed, result.BooksCreated, result.BooksUpdated,
		time.Since(startTime).Round(time.Millisecond))
}

func (s *CatalogSyncScheduler) runAuditCleanup() {
	cutoff := time.Now().AddDate(0, 0, -s.config.AuditRetentionDays)
	deleted, err := s.auditRepo.DeleteOlderThan(cutoff)
	if err != nil {
		log.Printf("Audit cleanup: failed: %v", err)
		return
	}
	if deleted > 0 {
		log.Printf("Audit cleanup: removed %d events older than %d days", deleted, s.config.AuditRetentionDays)
	}
}
