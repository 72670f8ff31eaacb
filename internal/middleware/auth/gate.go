package auth

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/mkravtsov/fishshop/internal/auth"
	"github.com/mkravtsov/fishshop/internal/models"
	"github.com/mkravtsov/fishshop/internal/session"
)

// gate denies before the wrapped handler runs, so a denied request never
// reaches the route's side effects.
func gate(requiredRole string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			state := session.FromEchoContext(c)
			if state == nil {
				return echo.NewHTTPError(http.StatusInternalServerError, "session unavailable")
			}

			err := auth.Authorize(state.Identity, requiredRole)
			switch {
			case errors.Is(err, auth.ErrUnauthenticated):
				state.Flash("Please log in first.")
				return c.Redirect(http.StatusSeeOther, "/login")
			case errors.Is(err, auth.ErrForbidden):
				state.Flash("You do not have permission to do that.")
				return c.Redirect(http.StatusSeeOther, "/shop")
			case err != nil:
				return err
			}
			return next(c)
		}
	}
}

func RequireLogin() echo.MiddlewareFunc {
	return gate("")
}

func RequireAdmin() echo.MiddlewareFunc {
	return gate(models.RoleAdmin)
}
