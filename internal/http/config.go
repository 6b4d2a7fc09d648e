package http

import (
	"github.com/rs/zerolog"

	"github.com/mrlokans/librarylite/internal/database"
	"github.com/mrlokans/librarylite/internal/session"
)

// RouterConfig contains all dependencies and configuration needed
// to create the HTTP router.
type RouterConfig struct {
	// Core dependencies
	BookStore BookStore
	Database  *database.Database

	// Request logging (optional)
	Logger *zerolog.Logger

	// Flash messages (optional)
	Sessions *session.Manager

	// UI paths
	TemplatesPath string
	StaticPath    string

	// Form protection; CSRF is enabled when the secret is set
	CSRFSecret    []byte
	SecureCookies bool

	// Reject every write request
	ReadOnly bool

	// Application info
	Version string
}
