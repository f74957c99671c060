package echoapi

import (
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

func adminMiddleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			claims, err := getContextClaims(ctx)
			if err != nil {
				return errors.Wrap(err, "getting context claims")
			}
			if claims.IsAdmin() {
				return next(ctx)
			}
			return errHttpForbidden
		}
	}
}

// selfOrAdminMiddleware guards student detail endpoints: admins see everyone,
// students only themselves.
func selfOrAdminMiddleware(param string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			claims, err := getContextClaims(ctx)
			if err != nil {
				return errors.Wrap(err, "getting context claims")
			}
			if claims.IsAdmin() {
				return next(ctx)
			}
			matric := strings.ToUpper(strings.TrimSpace(ctx.Param(param)))
			if claims.MatricNumber != "" && claims.MatricNumber == matric {
				return next(ctx)
			}
			return errHttpNotFound
		}
	}
}
