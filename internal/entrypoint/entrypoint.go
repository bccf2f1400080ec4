// Package entrypoint wires the application together and runs the HTTP server.
package entrypoint

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/shelfstats/shelfstats/internal/audit"
	"github.com/shelfstats/shelfstats/internal/config"
	"github.com/shelfstats/shelfstats/internal/database"
	auditdb "github.com/shelfstats/shelfstats/internal/database/audit"
	"github.com/shelfstats/shelfstats/internal/database/books"
	"github.com/shelfstats/shelfstats/internal/database/sessions"
	http_controllers "github.com/shelfstats/shelfstats/internal/http"
	"github.com/shelfstats/shelfstats/internal/importers"
	"github.com/shelfstats/shelfstats/internal/lifecycle"
	"github.com/shelfstats/shelfstats/internal/recorder"
	"github.com/shelfstats/shelfstats/internal/scheduler"
	"github.com/shelfstats/shelfstats/internal/tasks"
)

// ShutdownFunc is called during graceful shutdown to clean up resources.
type ShutdownFunc func(ctx context.Context)

func Serve(router *gin.Engine, cfg *config.Config, onShutdown ShutdownFunc) {
	timeout := time.Duration(cfg.Global.ShutdownTimeoutInSeconds) * time.Second

	srv := &http.Server{
		Addr:    fmt.Sprintf("%s:%d", cfg.HTTP.Host, cfg.HTTP.Port),
		Handler: router,
	}

	go func() {
		fmt.Printf("Starting server at %s:%d\n", cfg.HTTP.Host, cfg.HTTP.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s\n", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Printf("Shutdown Server, waiting %v before killing\n", timeout)

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	// Call shutdown callback first (e.g., to stop task queue and scheduler)
	if onShutdown != nil {
		onShutdown(ctx)
	}

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server Shutdown:", err)
	}

	log.Println("Server exiting")
}

func Run(cfg *config.Config, version string) {
	log.Printf("Starting ShelfStats v%s", version)

	// Initialize database
	db, err := database.NewDatabase(cfg.Database.Path)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Printf("Error closing database: %v", err)
		}
	}()

	// Repositories
	bookRepo := books.NewRepository(db.DB)
	sessionRepo := sessions.NewRepository(db.DB)
	auditRepo := auditdb.NewRepository(db.DB)

	// Domain services
	auditor := audit.NewService(auditRepo)
	lifecycleManager := lifecycle.NewManager(bookRepo, auditor)
	sessionRecorder := recorder.NewRecorder(bookRepo, sessionRepo, auditor)
	catalogImporter := importers.NewCatalogImporter(bookRepo)

	// Initialize task queue if enabled
	var taskClient *tasks.Client
	var taskCtxCancel context.CancelFunc
	if cfg.Tasks.Enabled {
		taskCfg := tasks.Config{
			Workers:         cfg.Tasks.Workers,
			ReleaseAfter:    cfg.Tasks.ReleaseAfter,
			CleanupInterval: cfg.Tasks.CleanupInterval,
		}

		taskClient, err = tasks.NewClient(cfg.Database.Path, taskCfg,
			tasks.NewImportCatalogQueue(catalogImporter, auditor),
		)
		if err != nil {
			log.Fatalf("Failed to initialize task queue: %v", err)
		}
		defer func() {
			if err := taskClient.Close(); err != nil {
				log.Printf("Error closing task client: %v", err)
			}
		}()

		var taskCtx context.Context
		taskCtx, taskCtxCancel = context.WithCancel(context.Background())
		go taskClient.Start(taskCtx)
	}

	// Start the catalog sync scheduler
	syncScheduler := scheduler.NewCatalogSyncScheduler(catalogImporter, auditor, auditRepo, scheduler.Config{
		Enabled:            cfg.Catalog.SyncEnabled,
		Schedule:           cfg.Catalog.SyncSchedule,
		CatalogPath:        cfg.Catalog.Path,
		AuditRetentionDays: cfg.Audit.RetentionDays,
	})
	if err := syncScheduler.Start(context.Background()); err != nil {
		log.Fatalf("Failed to start scheduler: %v", err)
	}

	// Build router configuration with all dependencies
	routerCfg := http_controllers.RouterConfig{
		Database:    db,
		Books:       bookRepo,
		Sessions:    sessionRepo,
		Lifecycle:   lifecycleManager,
		Recorder:    sessionRecorder,
		Audit:       auditRepo,
		TaskClient:  taskClient,
		CatalogPath: cfg.Catalog.Path,
		CORSOrigin:  cfg.CORS.AllowedOrigin,
		Version:     version,
	}

	router := http_controllers.NewRouter(routerCfg)

	// Shutdown callback for graceful cleanup
	onShutdown := func(ctx context.Context) {
		syncScheduler.Stop()
		if taskClient != nil && taskCtxCancel != nil {
			taskClient.Stop(ctx)
			taskCtxCancel()
		}
	}

	Serve(router, cfg, onShutdown)
}
