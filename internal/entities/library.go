package entities

import (
	"time"
)

type ReadingStatus string

const (
	StatusNotStarted ReadingStatus = "not_started"
	StatusInProgress ReadingStatus = "in_progress"
	StatusCompleted  ReadingStatus = "completed"
)

// Normalize maps the empty status (books imported before the lifecycle
// column existed) to not_started.
func (s ReadingStatus) Normalize() ReadingStatus {
	if s == "" {
		return StatusNotStarted
	}
	return s
}

func (s ReadingStatus) Valid() bool {
	switch s.Normalize() {
	case StatusNotStarted, StatusInProgress, StatusCompleted:
		return true
	}
	return false
}

type ReadingFormat string

const (
	FormatPhysical ReadingFormat = "physical"
	FormatDigital  ReadingFormat = "digital"
	FormatAudio    ReadingFormat = "audio"
)

func (f ReadingFormat) Valid() bool {
	switch f {
	case FormatPhysical, FormatDigital, FormatAudio:
		return true
	}
	return false
}

type Book struct {
	ID         uint          `gorm:"primaryKey" json:"id"`
	Title      string        `gorm:"index;size:512" json:"title"`
	Author     string        `gorm:"index;size:256" json:"author"`
	Genre      string        `gorm:"index;size:100" json:"genre,omitempty"`
	Year       int           `json:"year,omitempty"`
	TotalPages int           `json:"total_pages"`
	Status     ReadingStatus `gorm:"size:20;default:'not_started'" json:"status"`
	CreatedAt  time.Time     `json:"created_at"`
	UpdatedAt  time.Time     `json:"updated_at"`
}

func (Book) TableName() string {
	return "books"
}

// ReadingSession is one reading interval for one book. Sessions are
// immutable once recorded; derived progress and speed are always
// recomputed from the ledger, never stored on the book.
type ReadingSession struct {
	ID                  uint          `gorm:"primaryKey" json:"id"`
	BookID              uint          `gorm:"index" json:"book_id"`
	StartTime           time.Time     `json:"start_time"`
	EndTime             time.Time     `json:"end_time"`
	StartPage           *int          `json:"start_page,omitempty"`
	EndPage             *int          `json:"end_page,omitempty"`
	ReadingFormat       ReadingFormat `gorm:"size:20;default:'physical'" json:"reading_format"`
	ComprehensionRating *int          `json:"comprehension_rating,omitempty"`
	EnergyLevel         *int          `json:"energy_level,omitempty"`
	Location            string        `gorm:"size:256" json:"location,omitempty"`
	Distractions        bool          `json:"distractions"`
	Notes               string        `gorm:"type:text" json:"notes,omitempty"`

	Book Book `gorm:"foreignKey:BookID" json:"-"`

	CreatedAt time.Time `json:"created_at"`
}

func (ReadingSession) TableName() string {
	return "reading_sessions"
}

// DurationMinutes returns the session length in whole minutes.
func (s *ReadingSession) DurationMinutes() int {
	return int(s.EndTime.Sub(s.StartTime).Minutes())
}

// PagesRead returns pages covered by the session. The second return is
// false when either page boundary is missing.
func (s *ReadingSession) PagesRead() (int, bool) {
	if s.StartPage == nil || s.EndPage == nil {
		return 0, false
	}
	return *s.EndPage - *s.StartPage, true
}
