package middleware

import (
	"crypto/rand"
	"encoding/hex"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/influenceai/influence-frontend/internal/api/metrics"
	"github.com/influenceai/influence-frontend/internal/core/domain"
	"github.com/influenceai/influence-frontend/internal/core/ports"
)

// Context keys populated by the session guard.
const (
	ContextUser  = "user"
	ContextToken = "token"
	ContextSID   = "sid"
)

// LoginPath is where anonymous browser navigations are sent.
const LoginPath = "/login"

// Session is the session guard: on every request it re-resolves the stored
// token against the backend and either authenticates the request or tears
// the session down. Resolution state never survives a request — only the
// stored token does — so a revoked or expired token is caught on the very
// next navigation at the cost of one whoami call each time.
//
// Any resolution failure clears the stored token before the request is
// turned away; the gateway itself never touches session state.
func Session(store ports.SessionStore, gateway ports.BackendGateway, cookieName string, log zerolog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			cookie, err := c.Cookie(cookieName)
			if err != nil || cookie.Value == "" {
				return anonymous(c, "no session cookie")
			}
			sid := cookie.Value
			ctx := c.Request().Context()

			rec, err := store.Get(ctx, sid)
			if err != nil {
				ClearSessionCookie(c, cookieName)
				return anonymous(c, "no stored session")
			}

			user, err := gateway.CurrentUser(ctx, rec.Token)
			if err != nil {
				// Whoami failed for any reason: the token is gone for good.
				if cerr := store.Clear(ctx, sid); cerr != nil {
					log.Warn().Err(cerr).Msg("failed to clear dead session")
				}
				ClearSessionCookie(c, cookieName)
				log.Debug().Err(err).Msg("session resolution failed")
				return anonymous(c, "token rejected")
			}

			if err := store.SetUser(ctx, sid, user); err != nil {
				log.Debug().Err(err).Msg("session user write-through failed")
			}

			metrics.SessionResolutionsTotal.WithLabelValues("authenticated").Inc()
			c.Set(ContextUser, user)
			c.Set(ContextToken, rec.Token)
			c.Set(ContextSID, sid)
			return next(c)
		}
	}
}

func anonymous(c echo.Context, reason string) error {
	metrics.SessionResolutionsTotal.WithLabelValues("anonymous").Inc()
	if WantsHTML(c) {
		return c.Redirect(http.StatusSeeOther, LoginPath)
	}
	return echo.NewHTTPError(http.StatusUnauthorized, "authentication required ("+reason+")")
}

// WantsHTML reports whether the request is a browser navigation rather than
// a data fetch, deciding between a redirect and a JSON error.
func WantsHTML(c echo.Context) bool {
	return strings.Contains(c.Request().Header.Get("Accept"), echo.MIMETextHTML)
}

// NewSessionID returns an opaque 128-bit session id.
func NewSessionID() string {
	buf := make([]byte, 16)
	if _, err := rand.Read(buf); err != nil {
		panic("session: entropy unavailable: " + err.Error())
	}
	return hex.EncodeToString(buf)
}

// SetSessionCookie installs the session id cookie on the response.
func SetSessionCookie(c echo.Context, name, sid string, ttl time.Duration) {
	c.SetCookie(&http.Cookie{
		Name:     name,
		Value:    sid,
		Path:     "/",
		MaxAge:   int(ttl / time.Second),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// ClearSessionCookie expires the session id cookie.
func ClearSessionCookie(c echo.Context, name string) {
	c.SetCookie(&http.Cookie{
		Name:     name,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// CurrentUser extracts the identity the session guard resolved for this
// request. The bool is false when the guard did not run or failed.
func CurrentUser(c echo.Context) (*domain.User, bool) {
	user, ok := c.Get(ContextUser).(*domain.User)
	return user, ok && user != nil
}

// Token extracts the backend access token for this request.
func Token(c echo.Context) string {
	token, _ := c.Get(ContextToken).(string)
	return token
}
