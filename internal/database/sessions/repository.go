// Package sessions provides database operations for the reading-session
// ledger. The ledger is append-only: sessions are created once and never
// updated or deleted by the application.
package sessions

import (
	"errors"

	"gorm.io/gorm"

	"github.com/shelfstats/shelfstats/internal/entities"
)

// ErrNotFound is returned when a session id does not resolve to a record.
var ErrNotFound = errors.New("session not found")

// Repository handles all session-ledger database operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new sessions repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Create appends a session to the ledger.
func (r *Repository) Create(session *entities.ReadingSession) error {
	return r.db.Create(session).Error
}

// GetByID retrieves a single session.
func (r *Repository) GetByID(id uint) (*entities.ReadingSession, error) {
	var session entities.ReadingSession
	err := r.db.First(&session, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &session, nil
}

// GetAll retrieves the full ledger ordered by start time.
func (r *Repository) GetAll() ([]entities.ReadingSession, error) {
	var sessions []entities.ReadingSession
	err := r.db.Order("start_time ASC, id ASC").Find(&sessions).Error
	return sessions, err
}

// GetAllWithBooks retrieves the full ledger with each session's book
// preloaded, for views that join on the book title.
func (r *Repository) GetAllWithBooks() ([]entities.ReadingSession, error) {
	var sessions []entities.ReadingSession
	err := r.db.Preload("Book").Order("start_time ASC, id ASC").Find(&sessions).Error
	return sessions, err
}

// GetForBook retrieves all sessions recorded against one book.
func (r *Repository) GetForBook(bookID uint) ([]entities.ReadingSession, error) {
	var sessions []entities.ReadingSession
	err := r.db.Where("book_id = ?", bookID).Order("start_time ASC, id ASC").Find(&sessions).Error
	return sessions, err
}

// Count returns the total number of sessions in the ledger.
func (r *Repository) Count() (int64, error) {
	var count int64
	err := r.db.Model(&entities.ReadingSession{}).Count(&count).Error
	return count, err
}
