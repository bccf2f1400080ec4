package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/shelfstats/shelfstats/internal/database"
	"github.com/shelfstats/shelfstats/internal/tasks"
)

// RouterConfig collects the dependencies the router needs.
type RouterConfig struct {
	Database    *database.Database
	Books       BookStore
	Sessions    SessionStore
	Lifecycle   LifecycleManager
	Recorder    SessionRecorder
	Audit       AuditReader
	TaskClient  *tasks.Client
	CatalogPath string
	CORSOrigin  string
	Version     string
}

// NewRouter creates and configures the HTTP router with all endpoints.
func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.New()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())

	if cfg.CORSOrigin != "" {
		router.Use(CORSMiddleware(cfg.CORSOrigin))
	}

	health := NewHealthController(cfg.Database, cfg.Version)
	booksController := NewBooksController(cfg.Books, cfg.Lifecycle)
	sessionsController := NewSessionsController(cfg.Sessions, cfg.Recorder)
	statsController := NewStatsController(cfg.Books, cfg.Sessions)

	// Health endpoints
	router.GET("/health", health.Status)
	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	// Books API endpoints
	router.GET("/api/books", booksController.GetAllBooks)
	router.GET("/api/books/search", booksController.SearchBooks)
	router.GET("/api/books/:id", booksController.GetBook)
	router.PUT("/api/books/:id/status", booksController.UpdateStatus)
	router.POST("/api/books/:id/complete", booksController.CompleteBook)
	router.GET("/api/books/:id/sessions", sessionsController.ListBookSessions)

	// Session ledger endpoints
	router.GET("/api/sessions", sessionsController.ListSessions)
	router.POST("/api/sessions", sessionsController.CreateSession)

	// Dashboard statistics
	router.GET("/api/stats", statsController.GetStats)

	// Audit trail
	if cfg.Audit != nil {
		auditController := NewAuditController(cfg.Audit)
		router.GET("/api/audit", auditController.ListEvents)
	}

	// Catalog import and task status
	if cfg.TaskClient != nil {
		catalogController := NewCatalogController(cfg.TaskClient, cfg.CatalogPath)
		router.POST("/api/catalog/import", catalogController.TriggerImport)
		router.GET("/api/tasks/:id", catalogController.GetTaskStatus)
	}

	return router
}
