package tasks

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/mikestefanello/backlite"

	"github.com/shelfstats/shelfstats/internal/audit"
	"github.com/shelfstats/shelfstats/internal/importers"
)

// ImportCatalogTask ingests the catalog CSV at Path into the book store.
type ImportCatalogTask struct {
	Path string `json:"path"`
}

// Config returns the queue configuration for catalog import tasks.
func (t ImportCatalogTask) Config() backlite.QueueConfig {
	return backlite.QueueConfig{
		Name:        "catalog_import",
		MaxAttempts: 3,
		Backoff:     30 * time.Second,
		Timeout:     2 * time.Minute,
		Retention: &backlite.Retention{
			Duration:   24 * time.Hour,
			OnlyFailed: false,
			Data:       &backlite.RetainData{OnlyFailed: true},
		},
	}
}

// ImportCatalogProcessor creates a processor function for ImportCatalogTask.
func ImportCatalogProcessor(importer *importers.CatalogImporter, auditor *audit.Service) backlite.QueueProcessor[ImportCatalogTask] {
	return func(ctx context.Context, task ImportCatalogTask) error {
		if importer == nil {
			return fmt.Errorf("catalog importer not configured")
		}

		result, err := importer.ImportFile(task.Path)
		auditor.LogCatalogImport(task.Path, result.BooksProcessed, result.BooksCreated, err)
		if err != nil {
			return fmt.Errorf("import catalog %s: %w", task.Path, err)
		}

		log.Printf("[TASK] Imported catalog %s: %d processed, %d created, %d updated, %d skipped",
			task.Path, result.BooksProcessed, result.BooksCreated, result.BooksUpdated, len(result.Skipped))
		return nil
	}
}

// NewImportCatalogQueue creates a backlite queue for catalog import tasks.
func NewImportCatalogQueue(importer *importers.CatalogImporter, auditor *audit.Service) backlite.Queue {
	return backlite.NewQueue(ImportCatalogProcessor(importer, auditor))
}
