package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/influenceai/influence-frontend/internal/api/metrics"
	"github.com/influenceai/influence-frontend/internal/core/domain"
)

// RequireView enforces the role router: the request only proceeds when the
// session guard resolved a role allowed to reach view. Disallowed browser
// navigations are redirected to the role's default view; data fetches get a
// 403 carrying the same destination so the page can route itself.
func RequireView(view domain.View) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			user, ok := CurrentUser(c)
			if !ok {
				return echo.NewHTTPError(http.StatusUnauthorized, "authentication required")
			}

			if !view.CanAccess(user.Role) {
				metrics.ViewDenialsTotal.WithLabelValues(string(view), string(user.Role)).Inc()
				fallback := domain.DefaultView(user.Role).Path()
				if WantsHTML(c) {
					return c.Redirect(http.StatusSeeOther, fallback)
				}
				return c.JSON(http.StatusForbidden, map[string]string{
					"error":    "forbidden",
					"redirect": fallback,
				})
			}

			return next(c)
		}
	}
}
