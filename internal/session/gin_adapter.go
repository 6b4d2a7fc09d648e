package session

import (
	"context"
	"net/http"
	"time"

	"github.com/alexedwards/scs/v2"
	"github.com/gin-gonic/gin"

	"github.com/mrlokans/librarylite/internal/logging"
)

// cookieWriter saves the session the first time the response starts, which
// is the last moment the Set-Cookie header can still be added.
type cookieWriter struct {
	gin.ResponseWriter
	manager *Manager
	ctx     context.Context
	saved   bool
}

func (w *cookieWriter) WriteHeader(code int) {
	w.save()
	w.ResponseWriter.WriteHeader(code)
}

func (w *cookieWriter) WriteHeaderNow() {
	w.save()
	w.ResponseWriter.WriteHeaderNow()
}

func (w *cookieWriter) Write(b []byte) (int, error) {
	w.save()
	return w.ResponseWriter.Write(b)
}

func (w *cookieWriter) WriteString(s string) (int, error) {
	w.save()
	return w.ResponseWriter.WriteString(s)
}

// save commits modified sessions and expires destroyed ones. Untouched
// sessions produce no cookie.
func (w *cookieWriter) save() {
	if w.saved {
		return
	}
	w.saved = true

	switch w.manager.Status(w.ctx) {
	case scs.Modified:
		token, expiry, err := w.manager.Commit(w.ctx)
		if err != nil {
			logging.FromContext(w.ctx).Error().Err(err).Msg("Failed to commit session")
			return
		}
		w.manager.WriteSessionCookie(w.ctx, w.ResponseWriter, token, expiry)
	case scs.Destroyed:
		w.manager.WriteSessionCookie(w.ctx, w.ResponseWriter, "", time.Time{})
	}
}

// LoadSave is the gin counterpart of scs's LoadAndSave. It must run before
// any handler that reads or writes session data.
func (m *Manager) LoadSave() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := ""
		if cookie, err := c.Request.Cookie(m.Cookie.Name); err == nil {
			token = cookie.Value
		}

		ctx, err := m.Load(c.Request.Context(), token)
		if err != nil {
			logging.FromContext(c.Request.Context()).Error().Err(err).Msg("Failed to load session")
			c.AbortWithStatus(http.StatusInternalServerError)
			return
		}
		c.Request = c.Request.WithContext(ctx)

		writer := &cookieWriter{ResponseWriter: c.Writer, manager: m, ctx: ctx}
		c.Writer = writer

		c.Next()

		// Handlers that never wrote still get their session saved
		writer.save()
	}
}
