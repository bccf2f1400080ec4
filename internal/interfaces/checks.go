package interfaces

// This file contains compile-time interface implementation checks.
// These ensure that concrete types satisfy their interfaces at compile time,
// catching missing methods before runtime.
//
// To verify all checks pass: go build ./internal/interfaces/...

import (
	auditdb "github.com/shelfstats/shelfstats/internal/database/audit"
	"github.com/shelfstats/shelfstats/internal/database/books"
	"github.com/shelfstats/shelfstats/internal/database/sessions"
	"github.com/shelfstats/shelfstats/internal/http"
	"github.com/shelfstats/shelfstats/internal/lifecycle"
	"github.com/shelfstats/shelfstats/internal/recorder"
)

// =============================================================================
// Data Access Layer
// =============================================================================

// BookStore implementations
var _ http.BookStore = (*books.Repository)(nil)

// SessionStore implementations
var _ http.SessionStore = (*sessions.Repository)(nil)

// AuditReader implementations
var _ http.AuditReader = (*auditdb.Repository)(nil)

// =============================================================================
// Domain Services
// =============================================================================

// LifecycleManager implementations
var _ http.LifecycleManager = (*lifecycle.Manager)(nil)

// SessionRecorder implementations
var _ http.SessionRecorder = (*recorder.Recorder)(nil)
