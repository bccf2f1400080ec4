package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/shelfstats/shelfstats/internal/entities"
	"github.com/shelfstats/shelfstats/internal/recorder"
)

type SessionsController struct {
	store    SessionStore
	recorder SessionRecorder
}

func NewSessionsController(store SessionStore, rec SessionRecorder) *SessionsController {
	return &SessionsController{
		store:    store,
		recorder: rec,
	}
}

// SessionView decorates a session with its book's title for the ledger listing.
type SessionView struct {
	entities.ReadingSession
	BookTitle string `json:"book_title"`
}

// CreateSession validates and records a new reading session.
func (controller *SessionsController) CreateSession(c *gin.Context) {
	var input recorder.SessionInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondBadRequest(c, "Invalid request body", err.Error())
		return
	}

	session, err := controller.recorder.Record(input)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"id": session.ID})
}

// ListSessions returns the full session ledger in chronological order.
func (controller *SessionsController) ListSessions(c *gin.Context) {
	sessions, err := controller.store.GetAllWithBooks()
	if err != nil {
		respondInternalError(c, "Failed to retrieve sessions", err)
		return
	}

	views := make([]SessionView, 0, len(sessions))
	for _, session := range sessions {
		views = append(views, SessionView{
			ReadingSession: session,
			BookTitle:      session.Book.Title,
		})
	}
	c.JSON(http.StatusOK, views)
}

// ListBookSessions returns the sessions recorded against a single book.
func (controller *SessionsController) ListBookSessions(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	sessions, err := controller.store.GetForBook(id)
	if err != nil {
		respondInternalError(c, "Failed to retrieve sessions", err)
		return
	}
	if sessions == nil {
		sessions = []entities.ReadingSession{}
	}
	c.JSON(http.StatusOK, sessions)
}
