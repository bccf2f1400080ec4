// Package interfaces documents the core abstractions used throughout the application.
//
// # Interface Categories
//
// ## Data Access Interfaces
//
//   - BookStore: Read access to the book catalog (internal/http/interfaces.go)
//   - SessionStore: Read access to the session ledger (internal/http/interfaces.go)
//   - AuditReader: Read access to the audit trail (internal/http/interfaces.go)
//
// ## Domain Service Interfaces
//
//   - LifecycleManager: Book status transitions (internal/http/interfaces.go)
//   - SessionRecorder: Session validation and persistence (internal/http/interfaces.go)
//
// # Adding a New Database Domain
//
// To add a new data domain (e.g., shelves):
//
//  1. Create sub-package: internal/database/shelves/
//
//  2. Define repository:
//
//     type Repository struct { db *gorm.DB }
//
//     func NewRepository(db *gorm.DB) *Repository
//
//  3. Implement interface methods
//
//  4. Add compile-time check:
//
//     var _ ShelfStore = (*Repository)(nil)
//
// # Compile-Time Interface Checks
//
// All implementations should include compile-time checks to ensure they satisfy
// their interfaces. This catches missing methods at compile time rather than runtime:
//
//	var _ SomeInterface = (*MyImplementation)(nil)
//
// See checks.go for the full list.
package interfaces
