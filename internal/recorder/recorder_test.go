package recorder

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/shelfstats/shelfstats/internal/apperrors"
	"github.com/shelfstats/shelfstats/internal/database/books"
	"github.com/shelfstats/shelfstats/internal/database/sessions"
	"github.com/shelfstats/shelfstats/internal/entities"
)

func setupRecorder(t *testing.T) (*Recorder, *gorm.DB, func()) {
	dbPath := "./test_recorder_" + t.Name() + ".db"

	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(&entities.Book{}, &entities.ReadingSession{}))

	rec := NewRecorder(books.NewRepository(db), sessions.NewRepository(db), nil)

	cleanup := func() {
		sqlDB, _ := db.DB()
		sqlDB.Close()
		os.Remove(dbPath)
	}

	return rec, db, cleanup
}

func intPtr(v int) *int { return &v }

func validInput(bookID uint) SessionInput {
	return SessionInput{
		BookID:    bookID,
		StartTime: time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC),
		EndTime:   time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC),
		StartPage: intPtr(10),
		EndPage:   intPtr(50),
		Location:  "home",
	}
}

func TestRecorder_Record(t *testing.T) {
	rec, db, cleanup := setupRecorder(t)
	defer cleanup()

	book := &entities.Book{Title: "Dune", Author: "Herbert", TotalPages: 400}
	require.NoError(t, db.Create(book).Error)

	t.Run("persists a valid session", func(t *testing.T) {
		session, err := rec.Record(validInput(book.ID))
		require.NoError(t, err)
		assert.NotZero(t, session.ID)
		assert.Equal(t, book.ID, session.BookID)
		assert.Equal(t, entities.FormatPhysical, session.ReadingFormat)
	})

	t.Run("keeps an explicit format", func(t *testing.T) {
		in := validInput(book.ID)
		in.ReadingFormat = "audio"

		session, err := rec.Record(in)
		require.NoError(t, err)
		assert.Equal(t, entities.FormatAudio, session.ReadingFormat)
	})

	t.Run("accepts a session without page numbers", func(t *testing.T) {
		in := validInput(book.ID)
		in.StartPage = nil
		in.EndPage = nil

		session, err := rec.Record(in)
		require.NoError(t, err)
		_, ok := session.PagesRead()
		assert.False(t, ok)
	})

	t.Run("stores boundary ratings", func(t *testing.T) {
		in := validInput(book.ID)
		in.ComprehensionRating = intPtr(5)
		in.EnergyLevel = intPtr(1)

		session, err := rec.Record(in)
		require.NoError(t, err)
		require.NotNil(t, session.ComprehensionRating)
		assert.Equal(t, 5, *session.ComprehensionRating)
		require.NotNil(t, session.EnergyLevel)
		assert.Equal(t, 1, *session.EnergyLevel)
	})

	t.Run("unknown book is not found", func(t *testing.T) {
		_, err := rec.Record(validInput(999))
		assert.True(t, apperrors.IsNotFound(err))
	})
}

func TestRecorder_Record_Validation(t *testing.T) {
	rec, db, cleanup := setupRecorder(t)
	defer cleanup()

	book := &entities.Book{Title: "Dune", Author: "Herbert"}
	require.NoError(t, db.Create(book).Error)

	tests := []struct {
		name   string
		mutate func(*SessionInput)
	}{
		{"missing book id", func(in *SessionInput) { in.BookID = 0 }},
		{"missing start time", func(in *SessionInput) { in.StartTime = time.Time{} }},
		{"missing end time", func(in *SessionInput) { in.EndTime = time.Time{} }},
		{"end before start", func(in *SessionInput) {
			in.EndTime = in.StartTime.Add(-time.Hour)
		}},
		{"end equals start", func(in *SessionInput) { in.EndTime = in.StartTime }},
		{"end page before start page", func(in *SessionInput) {
			in.StartPage = intPtr(50)
			in.EndPage = intPtr(10)
		}},
		{"negative start page", func(in *SessionInput) { in.StartPage = intPtr(-1) }},
		{"unknown reading format", func(in *SessionInput) { in.ReadingFormat = "braille" }},
		{"comprehension rating out of range", func(in *SessionInput) {
			in.ComprehensionRating = intPtr(6)
		}},
		{"energy level out of range", func(in *SessionInput) {
			in.EnergyLevel = intPtr(0)
		}},
		{"zero comprehension rating", func(in *SessionInput) {
			in.ComprehensionRating = intPtr(0)
		}},
		{"negative energy level", func(in *SessionInput) {
			in.EnergyLevel = intPtr(-2)
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := validInput(book.ID)
			tt.mutate(&in)

			_, err := rec.Record(in)
			assert.True(t, apperrors.IsValidation(err), "expected validation error, got %v", err)
		})
	}
}

func TestRecorder_Record_DoesNotTouchStatus(t *testing.T) {
	rec, db, cleanup := setupRecorder(t)
	defer cleanup()

	book := &entities.Book{Title: "Dune", Author: "Herbert", Status: entities.StatusNotStarted}
	require.NoError(t, db.Create(book).Error)

	_, err := rec.Record(validInput(book.ID))
	require.NoError(t, err)

	var stored entities.Book
	require.NoError(t, db.First(&stored, book.ID).Error)
	assert.Equal(t, entities.StatusNotStarted, stored.Status)
}
