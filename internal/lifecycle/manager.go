// Package lifecycle enforces the legal reading-status transitions of a
// book. It is the only writer of the status column.
//
// The state machine:
//
//	start:    not_started -> in_progress
//	complete: in_progress -> completed   (idempotent from completed)
//	remove:   in_progress|completed -> not_started
//
// Every transition is a compare-and-swap against the catalog, so two
// concurrent transitions on the same book resolve to exactly one winner;
// the loser receives a conflict error.
package lifecycle

import (
	"github.com/shelfstats/shelfstats/internal/apperrors"
	"github.com/shelfstats/shelfstats/internal/audit"
	"github.com/shelfstats/shelfstats/internal/database/books"
	"github.com/shelfstats/shelfstats/internal/entities"
)

// Manager applies status transitions to catalog books.
type Manager struct {
	books   *books.Repository
	auditor *audit.Service
}

// NewManager creates a lifecycle manager. The auditor may be nil.
func NewManager(repo *books.Repository, auditor *audit.Service) *Manager {
	return &Manager{books: repo, auditor: auditor}
}

// Start moves a not_started book to in_progress.
func (m *Manager) Start(id uint) (*entities.Book, error) {
	swapped, err := m.books.UpdateStatusFrom(id, entities.StatusInProgress, entities.StatusNotStarted)
	if err != nil {
		return nil, apperrors.Internal("failed to start book", err)
	}
	if !swapped {
		book, err := m.fetch(id)
		if err != nil {
			return nil, err
		}
		return nil, apperrors.Conflict("cannot start reading book %d: status is %s", id, book.Status.Normalize())
	}

	m.auditor.LogStatusChange(id, "start", entities.StatusNotStarted, entities.StatusInProgress, nil)
	return m.fetch(id)
}

// Complete moves an in_progress book to completed. Completing an
// already-completed book is a no-op so retried requests do not fail.
func (m *Manager) Complete(id uint) (*entities.Book, error) {
	swapped, err := m.books.UpdateStatusFrom(id, entities.StatusCompleted, entities.StatusInProgress)
	if err != nil {
		return nil, apperrors.Internal("failed to complete book", err)
	}
	if !swapped {
		book, err := m.fetch(id)
		if err != nil {
			return nil, err
		}
		if book.Status == entities.StatusCompleted {
			return book, nil
		}
		return nil, apperrors.Conflict("cannot complete book %d: status is %s", id, book.Status.Normalize())
	}

	m.auditor.LogStatusChange(id, "complete", entities.StatusInProgress, entities.StatusCompleted, nil)
	return m.fetch(id)
}

// Remove returns a started or finished book to the selectable pool.
// Session history is retained; only the status degrades.
func (m *Manager) Remove(id uint) (*entities.Book, error) {
	swapped, err := m.books.UpdateStatusFrom(id, entities.StatusNotStarted,
		entities.StatusInProgress, entities.StatusCompleted)
	if err != nil {
		return nil, apperrors.Internal("failed to remove book", err)
	}
	if !swapped {
		book, err := m.fetch(id)
		if err != nil {
			return nil, err
		}
		return nil, apperrors.Conflict("cannot remove book %d: status is %s", id, book.Status.Normalize())
	}

	m.auditor.LogStatusChange(id, "remove", entities.StatusInProgress, entities.StatusNotStarted, nil)
	return m.fetch(id)
}

// Transition applies whichever transition reaches the requested target
// status. It backs the PUT /api/books/:id/status endpoint.
func (m *Manager) Transition(id uint, target entities.ReadingStatus) (*entities.Book, error) {
	switch target {
	case entities.StatusInProgress:
		return m.Start(id)
	case entities.StatusCompleted:
		return m.Complete(id)
	case entities.StatusNotStarted:
		return m.Remove(id)
	default:
		return nil, apperrors.Validation("unknown status %q", string(target))
	}
}

func (m *Manager) fetch(id uint) (*entities.Book, error) {
	book, err := m.books.GetByID(id)
	if err == books.ErrNotFound {
		return nil, apperrors.NotFound("book %d not found", id)
	}
	if err != nil {
		return nil, apperrors.Internal("failed to load book", err)
	}
	return book, nil
}
