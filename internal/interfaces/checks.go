package interfaces

// This file contains compile-time interface implementation checks.
// These ensure that concrete types satisfy their interfaces at compile time,
// catching missing methods before runtime.
//
// To verify all checks pass: go build ./internal/interfaces/...

import (
	"github.com/mrlokans/librarylite/internal/database"
	"github.com/mrlokans/librarylite/internal/database/books"
	"github.com/mrlokans/librarylite/internal/http"
	"github.com/mrlokans/librarylite/internal/session"
)

// BookStore implementations
var _ http.BookStore = (*books.Repository)(nil)

// Store sessions and health checks
var _ books.SessionProvider = (*database.Database)(nil)
var _ http.Pinger = (*database.Database)(nil)

// Flash messages
var _ http.Flasher = (*session.Manager)(nil)
