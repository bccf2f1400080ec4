package http

import (
	"github.com/shelfstats/shelfstats/internal/entities"
	"github.com/shelfstats/shelfstats/internal/recorder"
)

// BookStore provides read access to the book catalog.
type BookStore interface {
	GetAll() ([]entities.Book, error)
	GetByID(id uint) (*entities.Book, error)
	Search(query string) ([]entities.Book, error)
}

// SessionStore provides read access to the reading session ledger.
type SessionStore interface {
	GetAll() ([]entities.ReadingSession, error)
	GetAllWithBooks() ([]entities.ReadingSession, error)
	GetForBook(bookID uint) ([]entities.ReadingSession, error)
}

// LifecycleManager drives book status transitions.
type LifecycleManager interface {
	Start(id uint) (*entities.Book, error)
	Complete(id uint) (*entities.Book, error)
	Remove(id uint) (*entities.Book, error)
	Transition(id uint, target entities.ReadingStatus) (*entities.Book, error)
}

// SessionRecorder validates and persists reading sessions.
type SessionRecorder interface {
	Record(in recorder.SessionInput) (*entities.ReadingSession, error)
}

// AuditReader provides read access to the audit trail.
type AuditReader interface {
	GetEvents(limit, offset int) ([]entities.AuditEvent, int64, error)
}
