// Package database opens the relational store and creates its schema.
//
// # Architecture
//
//	database/
//	├── database.go      # Connection setup, dialect selection, schema creation
//	└── books/           # Book CRUD operations
//
// # Sessions
//
// Handlers never share a *gorm.DB across requests. Each request asks for a
// scoped session bound to its context:
//
//	db, err := database.NewDatabase(cfg.Database, logger)
//	repo := books.NewRepository(db)
//
//	// inside a handler
//	book, err := repo.GetByID(c.Request.Context(), id)
//
// The repository calls db.Session(ctx) for every operation. The connection
// behind a session is borrowed from the database/sql pool for the duration
// of a statement and returned on every exit path, so there is nothing for
// handlers to close.
//
// # Schema
//
// NewDatabase runs AutoMigrate for every entity. AutoMigrate only creates
// missing tables, columns and indexes, which makes startup idempotent.
package database
