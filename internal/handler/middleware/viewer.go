package middleware

import (
	"log/slog"
	"net/http"
	"time"

	"qomo-drops/internal/handler/httperr"
	"qomo-drops/internal/pkg/config"
	"qomo-drops/internal/pkg/errs"
	"qomo-drops/internal/pkg/session"

	"github.com/gin-gonic/gin"
)

const viewerIDKey = "viewer_id"

type ViewerMiddleware struct {
	sessions *session.Service
	cfg      config.SessionConfig
}

func NewViewerMiddleware(sessions *session.Service, cfg config.Config) *ViewerMiddleware {
	return &ViewerMiddleware{sessions: sessions, cfg: cfg.Session}
}

// ResolveViewer attaches a viewer identity to the request, minting a new one
// when the cookie is absent, expired, or tampered with. Every caller gets an
// identity; there is no login.
func (m *ViewerMiddleware) ResolveViewer() gin.HandlerFunc {
	return func(c *gin.Context) {
		if token := session.GetToken(c); token != "" {
			if viewerID, err := m.sessions.Validate(token); err == nil {
				c.Set(viewerIDKey, viewerID)
				c.Next()
				return
			}
		}

		viewerID, token, err := m.sessions.Issue(time.Now())
		if err != nil {
			slog.Error("failed to issue viewer session", "error", err)
			httperr.AbortWithError(c, http.StatusInternalServerError,
				errs.Wrap(err, "session issue failed"), "Internal server error", nil)
			return
		}

		session.SetCookie(c, m.cfg, token)
		c.Set(viewerIDKey, viewerID)
		c.Next()
	}
}

func GetViewerID(c *gin.Context) string {
	if v, exists := c.Get(viewerIDKey); exists {
		if id, ok := v.(string); ok {
			return id
		}
	}
	return ""
}
