// Package books provides database operations for the reading catalog.
//
// The catalog is the single writer target for book status; all status
// changes go through UpdateStatusFrom so that concurrent transitions
// resolve to exactly one winner.
//
// # Usage
//
//	repo := books.NewRepository(db)
//	book, err := repo.GetByID(123)
package books

import (
	"errors"

	"gorm.io/gorm"

	"github.com/shelfstats/shelfstats/internal/entities"
)

// ErrNotFound is returned when a book id does not resolve to a record.
var ErrNotFound = errors.New("book not found")

// Repository handles all catalog database operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new books repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// GetByID retrieves a book by its ID.
func (r *Repository) GetByID(id uint) (*entities.Book, error) {
	var book entities.Book
	err := r.db.First(&book, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &book, nil
}

// GetAll retrieves every book in the catalog.
func (r *Repository) GetAll() ([]entities.Book, error) {
	var books []entities.Book
	err := r.db.Order("id ASC").Find(&books).Error
	return books, err
}

// Search finds books by title or author (case-insensitive partial match).
func (r *Repository) Search(query string) ([]entities.Book, error) {
	var books []entities.Book
	searchPattern := "%" + query + "%"
	err := r.db.
		Where("LOWER(title) LIKE LOWER(?) OR LOWER(author) LIKE LOWER(?)", searchPattern, searchPattern).
		Order("id ASC").
		Find(&books).Error
	return books, err
}

// Exists reports whether a book id resolves to a record.
func (r *Repository) Exists(id uint) (bool, error) {
	var count int64
	err := r.db.Model(&entities.Book{}).Where("id = ?", id).Count(&count).Error
	return count > 0, err
}

// UpdateStatusFrom performs a compare-and-swap on the status column: the
// row is updated only when its current status matches one of the expected
// values. Returns false when the swap lost (status already moved on) or
// the book does not exist; callers disambiguate with GetByID.
func (r *Repository) UpdateStatusFrom(id uint, to entities.ReadingStatus, from ...entities.ReadingStatus) (bool, error) {
	expected := make([]string, 0, len(from))
	acceptEmpty := false
	for _, s := range from {
		expected = append(expected, string(s))
		if s == entities.StatusNotStarted {
			// Books ingested before the lifecycle column existed carry
			// an empty status, which reads as not_started.
			acceptEmpty = true
		}
	}

	query := r.db.Model(&entities.Book{}).Where("id = ?", id)
	if acceptEmpty {
		query = query.Where("status IN ? OR status = '' OR status IS NULL", expected)
	} else {
		query = query.Where("status IN ?", expected)
	}

	result := query.Update("status", to)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// Upsert creates the book or, when a book with the same title and author
// already exists, refreshes its catalog metadata. The status column is
// owned by the lifecycle manager and is only written on first insert.
func (r *Repository) Upsert(book *entities.Book) (created bool, err error) {
	var existing entities.Book
	result := r.db.Where("title = ? AND author = ?", book.Title, book.Author).First(&existing)

	if errors.Is(result.Error, gorm.ErrRecordNotFound) {
		book.Status = book.Status.Normalize()
		return true, r.db.Create(book).Error
	}
	if result.Error != nil {
		return false, result.Error
	}

	book.ID = existing.ID
	book.Status = existing.Status
	err = r.db.Model(&existing).Updates(map[string]any{
		"genre":       book.Genre,
		"year":        book.Year,
		"total_pages": book.TotalPages,
	}).Error
	return false, err
}

// CountByStatus returns the number of books with the given effective status.
func (r *Repository) CountByStatus(status entities.ReadingStatus) (int64, error) {
	var count int64
	query := r.db.Model(&entities.Book{})
	if status == entities.StatusNotStarted {
		query = query.Where("status = ? OR status = '' OR status IS NULL", status)
	} else {
		query = query.Where("status = ?", status)
	}
	err := query.Count(&count).Error
	return count, err
}
