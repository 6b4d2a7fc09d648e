// Package interfaces documents the core abstractions used throughout the application.
//
// # Data Access
//
//   - books.SessionProvider: request-scoped GORM handles (internal/database/books/repository.go),
//     implemented by *database.Database
//   - http.BookReader / http.BookWriter / http.BookStore: book operations used by the
//     controllers (internal/http/stores.go), implemented by *books.Repository
//   - http.Pinger: store connectivity for /health (internal/http/health.go)
//
// # Presentation
//
//   - http.Flasher: one-shot messages after redirects (internal/http/stores.go),
//     implemented by *session.Manager
//
// # Adding a New Store Driver
//
//  1. Add a constant in internal/config/constants.go
//
//  2. Return its dialector from dialectorFor in internal/database/database.go:
//
//     case config.DriverMySQL:
//         return mysql.Open(cfg.DSN), nil
//
//  3. The repository needs no changes; it only sees *gorm.DB sessions.
//
// # Compile-Time Interface Checks
//
// All implementations should include compile-time checks to ensure they satisfy
// their interfaces. This catches missing methods at compile time rather than runtime:
//
//	var _ SomeInterface = (*MyImplementation)(nil)
//
// See checks.go for examples.
package interfaces
