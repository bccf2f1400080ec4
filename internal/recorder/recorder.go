// Package recorder validates and appends reading sessions to the ledger.
// Recording a session never triggers a status transition; a book can
// accumulate sessions before being marked complete.
package recorder

import (
	"errors"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/shelfstats/shelfstats/internal/apperrors"
	"github.com/shelfstats/shelfstats/internal/audit"
	"github.com/shelfstats/shelfstats/internal/database/books"
	"github.com/shelfstats/shelfstats/internal/database/sessions"
	"github.com/shelfstats/shelfstats/internal/entities"
)

// SessionInput carries the client-supplied fields of a new session.
type SessionInput struct {
	BookID              uint      `json:"book_id"`
	StartTime           time.Time `json:"start_time"`
	EndTime             time.Time `json:"end_time"`
	StartPage           *int      `json:"start_page"`
	EndPage             *int      `json:"end_page"`
	ReadingFormat       string    `json:"reading_format"`
	ComprehensionRating *int      `json:"comprehension_rating"`
	EnergyLevel         *int      `json:"energy_level"`
	Location            string    `json:"location"`
	Distractions        bool      `json:"distractions"`
	Notes               string    `json:"notes"`
}

// Validate checks field-level constraints. Cross-field ordering rules
// live in Recorder.Record.
func (in SessionInput) Validate() error {
	return validation.ValidateStruct(&in,
		validation.Field(&in.BookID, validation.Required),
		validation.Field(&in.StartTime, validation.Required),
		validation.Field(&in.EndTime, validation.Required),
		validation.Field(&in.ReadingFormat, validation.In("",
			string(entities.FormatPhysical),
			string(entities.FormatDigital),
			string(entities.FormatAudio),
		)),
		validation.Field(&in.StartPage, validation.Min(0)),
		validation.Field(&in.EndPage, validation.Min(0)),
		validation.Field(&in.ComprehensionRating, validation.By(ratingRange)),
		validation.Field(&in.EnergyLevel, validation.By(ratingRange)),
	)
}

// ratingRange checks an optional 1-5 rating. Threshold rules treat a
// zero value as absent, so a pointer to 0 needs an explicit check.
func ratingRange(value interface{}) error {
	rating, _ := value.(*int)
	if rating == nil {
		return nil
	}
	if *rating < 1 || *rating > 5 {
		return errors.New("must be between 1 and 5")
	}
	return nil
}

// Recorder validates session input against the catalog and appends to
// the session ledger.
type Recorder struct {
	books    *books.Repository
	sessions *sessions.Repository
	auditor  *audit.Service
}

// NewRecorder creates a session recorder. The auditor may be nil.
func NewRecorder(bookRepo *books.Repository, sessionRepo *sessions.Repository, auditor *audit.Service) *Recorder {
	return &Recorder{books: bookRepo, sessions: sessionRepo, auditor: auditor}
}

// Record validates the input and persists a new immutable session.
func (r *Recorder) Record(in SessionInput) (*entities.ReadingSession, error) {
	if err := in.Validate(); err != nil {
		return nil, apperrors.Validation("invalid session: %v", err)
	}
	if !in.EndTime.After(in.StartTime) {
		return nil, apperrors.Validation("end_time must be after start_time")
	}
	if in.StartPage != nil && in.EndPage != nil && *in.EndPage < *in.StartPage {
		return nil, apperrors.Validation("end_page must be greater than or equal to start_page")
	}

	exists, err := r.books.Exists(in.BookID)
	if err != nil {
		return nil, apperrors.Internal("failed to check book existence", err)
	}
	if !exists {
		return nil, apperrors.NotFound("book %d not found", in.BookID)
	}

	format := entities.ReadingFormat(in.ReadingFormat)
	if format == "" {
		format = entities.FormatPhysical
	}

	session := &entities.ReadingSession{
		BookID:              in.BookID,
		StartTime:           in.StartTime,
		EndTime:             in.EndTime,
		StartPage:           in.StartPage,
		EndPage:             in.EndPage,
		ReadingFormat:       format,
		ComprehensionRating: in.ComprehensionRating,
		EnergyLevel:         in.EnergyLevel,
		Location:            in.Location,
		Distractions:        in.Distractions,
		Notes:               in.Notes,
	}

	if err := r.sessions.Create(session); err != nil {
		return nil, apperrors.Internal("failed to persist session", err)
	}

	r.auditor.LogSessionRecorded(session.ID, session.BookID, session.DurationMinutes(), nil)
	return session, nil
}
