// Package audit provides an append-only trail of catalog mutations.
// Analytics reads never produce audit events; only the lifecycle
// manager, the session recorder and the catalog importer write here.
package audit

import (
	"encoding/json"
	"fmt"
	"log"

	"github.com/shelfstats/shelfstats/internal/database/audit"
	"github.com/shelfstats/shelfstats/internal/entities"
)

// Service provides high-level audit logging functionality.
type Service struct {
	repo *audit.Repository
}

// NewService creates a new audit service.
func NewService(repo *audit.Repository) *Service {
	return &Service{repo: repo}
}

// Log records a generic audit event.
func (s *Service) Log(event *entities.AuditEvent) error {
	return s.repo.LogEvent(event)
}

// LogAsync records an audit event in the background (non-blocking).
func (s *Service) LogAsync(event *entities.AuditEvent) {
	go func() {
		if err := s.repo.LogEvent(event); err != nil {
			log.Printf("Failed to log audit event: %v", err)
		}
	}()
}

// LogStatusChange records a book lifecycle transition.
func (s *Service) LogStatusChange(bookID uint, action string, from, to entities.ReadingStatus, err error) {
	if s == nil {
		return
	}
	event := &entities.AuditEvent{
		EventType:   entities.AuditEventStatusChange,
		Action:      "book_" + action,
		Description: fmt.Sprintf("book %d: %s -> %s", bookID, from.Normalize(), to),
		EntityType:  "book",
		EntityID:    &bookID,
		Status:      entities.AuditStatusSuccess,
	}
	if err != nil {
		event.Status = entities.AuditStatusFailed
		event.ErrorMsg = truncate(err.Error(), 500)
	}
	s.LogAsync(event)
}

// LogSessionRecorded records a session append.
func (s *Service) LogSessionRecorded(sessionID, bookID uint, minutes int, err error) {
	if s == nil {
		return
	}
	event := &entities.AuditEvent{
		EventType:   entities.AuditEventSessionRecord,
		Action:      "session_record",
		Description: fmt.Sprintf("session %d for book %d (%d min)", sessionID, bookID, minutes),
		EntityType:  "session",
		EntityID:    &sessionID,
		Status:      entities.AuditStatusSuccess,
	}
	if err != nil {
		event.Status = entities.AuditStatusFailed
		event.ErrorMsg = truncate(err.Error(), 500)
	}
	s.LogAsync(event)
}

// LogCatalogImport records a catalog ingestion run.
func (s *Service) LogCatalogImport(source string, processed, created int, err error) {
	if s == nil {
		return
	}
	event := &entities.AuditEvent{
		EventType:   entities.AuditEventCatalogImport,
		Action:      "catalog_import",
		Description: fmt.Sprintf("imported catalog from %s", source),
		EntityType:  "book",
		Status:      entities.AuditStatusSuccess,
	}

	metadata := map[string]any{
		"books_processed": processed,
		"books_created":   created,
	}
	if mdBytes, e := json.Marshal(metadata); e == nil {
		event.Metadata = string(mdBytes)
	}

	if err != nil {
		event.Status = entities.AuditStatusFailed
		event.ErrorMsg = truncate(err.Error(), 500)
	}
	s.LogAsync(event)
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max]
}
