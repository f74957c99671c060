package echoapi

import (
	"net/http"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/pkg/errors"

	"github.com/trezcool/meritum/core"
	"github.com/trezcool/meritum/core/auth"
	"github.com/trezcool/meritum/core/event"
	"github.com/trezcool/meritum/core/level"
	"github.com/trezcool/meritum/core/merit"
	"github.com/trezcool/meritum/core/organizer"
	"github.com/trezcool/meritum/core/student"
)

var (
	errUnauthorized   = echo.NewHTTPError(http.StatusUnauthorized, "not authenticated")
	errRefreshExpired = echo.NewHTTPError(http.StatusForbidden, "refresh has expired")
	errHttpForbidden  = echo.NewHTTPError(http.StatusForbidden, "permission denied")
	errHttpNotFound   = echo.NewHTTPError(http.StatusNotFound, "not found")
)

// newAppHTTPErrorHandler returns a custom echo.HTTPErrorHandler that knows how to handle our errors.
// signalShutdown is called in order to gracefully shutdown the Server whenever a core.shutdown error is caught.
func newAppHTTPErrorHandler(logger core.Logger, translator ut.Translator, signalShutdown func()) echo.HTTPErrorHandler {
	return func(err error, ctx echo.Context) {
		var code int
		var message interface{}

		switch origErr := errors.Cause(err).(type) {
		case *echo.HTTPError:
			if origErr == middleware.ErrJWTMissing {
				code = http.StatusUnauthorized
				message = origErr.Message
				break
			}
			if origErr.Internal != nil {
				if herr, ok := origErr.Internal.(*echo.HTTPError); ok {
					origErr = herr
				}
			}
			code = origErr.Code
			message = origErr.Message
		case validator.ValidationErrors:
			fldErrs := make(map[string]string, len(origErr))
			for _, vErr := range origErr {
				fldErrs[vErr.Field()] = vErr.Translate(translator)
			}
			code = http.StatusBadRequest
			message = fldErrs
		case *core.ValidationError:
			if origErr.Fields != nil {
				fldErrs := make(map[string]string, len(origErr.Fields))
				for _, fErr := range origErr.Fields {
					fldErrs[fErr.Field] = fErr.Error
				}
				message = fldErrs
			} else {
				message = origErr.Error()
			}
			code = http.StatusBadRequest
		default:
			switch cause := errors.Cause(err); cause {
			case organizer.ErrNotFound, organizer.ErrSubNotFound, event.ErrNotFound,
				merit.ErrNotFound, level.ErrNotFound, student.ErrNotFound, auth.ErrAdminNotFound:
				code = http.StatusNotFound
				message = cause.Error()
			case auth.ErrPublicProvider, auth.ErrMatricExtraction:
				// rejected logins; the identity has already been signed out
				code = http.StatusForbidden
				message = cause.Error()
			default: // any other error is a server error
				code = http.StatusInternalServerError
				msg := http.StatusText(http.StatusInternalServerError)
				message = msg

				var sess auth.Session
				if claims, cErr := getContextClaims(ctx); cErr == nil {
					sess = claims.Session()
				}
				logger.Error(msg, errors.Wrap(err, msg), sess)

				// shutting down...
				if core.IsShutdown(err) {
					signalShutdown()
				}
			}
		}

		if ctx.Echo().Debug {
			message = err.Error()
		}
		if m, ok := message.(string); ok {
			message = echo.Map{"error": m}
		}

		// Send response
		if !ctx.Response().Committed {
			if ctx.Request().Method == http.MethodHead { // Issue #608
				err = ctx.NoContent(code)
			} else {
				err = ctx.JSON(code, message)
			}
			if err != nil {
				ctx.Echo().Logger.Error(err)
			}
		}
	}
}
