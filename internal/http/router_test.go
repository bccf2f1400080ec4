package http

import (
	"os"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/shelfstats/shelfstats/internal/database"
	auditdb "github.com/shelfstats/shelfstats/internal/database/audit"
	"github.com/shelfstats/shelfstats/internal/database/books"
	"github.com/shelfstats/shelfstats/internal/database/sessions"
	"github.com/shelfstats/shelfstats/internal/entities"
	"github.com/shelfstats/shelfstats/internal/lifecycle"
	"github.com/shelfstats/shelfstats/internal/recorder"
)

type testEnv struct {
	db     *database.Database
	books  *books.Repository
	router *gin.Engine
}

func setupTestRouter(t *testing.T) (*testEnv, func()) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dbPath := "./test_http_" + strings.ReplaceAll(t.Name(), "/", "_") + ".db"
	db, err := database.NewDatabase(dbPath)
	require.NoError(t, err)

	bookRepo := books.NewRepository(db.DB)
	sessionRepo := sessions.NewRepository(db.DB)
	auditRepo := auditdb.NewRepository(db.DB)

	router := NewRouter(RouterConfig{
		Database:   db,
		Books:      bookRepo,
		Sessions:   sessionRepo,
		Lifecycle:  lifecycle.NewManager(bookRepo, nil),
		Recorder:   recorder.NewRecorder(bookRepo, sessionRepo, nil),
		Audit:      auditRepo,
		CORSOrigin: "http://localhost:5173",
		Version:    "test",
	})

	env := &testEnv{db: db, books: bookRepo, router: router}

	cleanup := func() {
		db.Close()
		os.Remove(dbPath)
	}
	return env, cleanup
}

func (e *testEnv) seedBook(t *testing.T, title string, status entities.ReadingStatus, totalPages int) *entities.Book {
	t.Helper()
	book := &entities.Book{
		Title:      title,
		Author:     "Test Author",
		Genre:      "Fiction",
		TotalPages: totalPages,
		Status:     status,
	}
	require.NoError(t, e.db.DB.Create(book).Error)
	return book
}

func (e *testEnv) seedSession(t *testing.T, bookID uint, start, end time.Time, startPage, endPage int) *entities.ReadingSession {
	t.Helper()
	session := &entities.ReadingSession{
		BookID:    bookID,
		StartTime: start,
		EndTime:   end,
		StartPage: &startPage,
		EndPage:   &endPage,
	}
	require.NoError(t, e.db.DB.Create(session).Error)
	return session
}
