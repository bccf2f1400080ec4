package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/shelfstats/shelfstats/internal/stats"
)

type StatsController struct {
	books    BookStore
	sessions SessionStore
}

func NewStatsController(books BookStore, sessions SessionStore) *StatsController {
	return &StatsController{
		books:    books,
		sessions: sessions,
	}
}

// GetStats computes the full dashboard overview from the catalog and ledger.
func (controller *StatsController) GetStats(c *gin.Context) {
	books, err := controller.books.GetAll()
	if err != nil {
		respondInternalError(c, "Failed to retrieve books", err)
		return
	}

	sessions, err := controller.sessions.GetAll()
	if err != nil {
		respondInternalError(c, "Failed to retrieve sessions", err)
		return
	}

	c.JSON(http.StatusOK, stats.Compute(books, sessions))
}
