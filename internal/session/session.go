// Package session keeps per-browser state between requests. The only value
// stored today is the flash message shown after a redirect-after-post.
package session

import (
	"context"
	"database/sql"
	"net/http"

	"github.com/alexedwards/scs/sqlite3store"
	"github.com/alexedwards/scs/v2"
	"github.com/alexedwards/scs/v2/memstore"

	"github.com/mrlokans/librarylite/internal/config"
)

// Session data keys
const (
	KeyFlash = "flash"
)

// Manager wraps scs.SessionManager with application-specific methods.
type Manager struct {
	*scs.SessionManager
}

// NewManager creates a configured session manager. Sessions are stored in
// the SQLite database when sqlDB is given; otherwise they live in memory.
func NewManager(sqlDB *sql.DB, cfg config.Session) (*Manager, error) {
	sm := scs.New()

	if sqlDB != nil {
		_, err := sqlDB.Exec(`CREATE TABLE IF NOT EXISTS sessions (
			token TEXT PRIMARY KEY,
			data BLOB NOT NULL,
			expiry REAL NOT NULL
		);
		CREATE INDEX IF NOT EXISTS sessions_expiry_idx ON sessions(expiry);`)
		if err != nil {
			return nil, err
		}
		sm.Store = sqlite3store.New(sqlDB)
	} else {
		sm.Store = memstore.New()
	}

	if cfg.Lifetime > 0 {
		sm.Lifetime = cfg.Lifetime
	}

	sm.Cookie.Name = "librarylite_session"
	sm.Cookie.HttpOnly = true
	sm.Cookie.Secure = cfg.SecureCookies
	sm.Cookie.SameSite = http.SameSiteLaxMode // Lax so the cookie survives the post-redirect hop
	sm.Cookie.Path = "/"

	return &Manager{SessionManager: sm}, nil
}

// Flash stores a one-shot message for the next page render.
func (m *Manager) Flash(ctx context.Context, message string) {
	m.Put(ctx, KeyFlash, message)
}

// PopFlash returns the pending flash message and clears it.
func (m *Manager) PopFlash(ctx context.Context) string {
	return m.PopString(ctx, KeyFlash)
}
