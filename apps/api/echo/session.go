package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/meritum/core/auth"
)

type authApi struct {
	deps ServerDeps
}

func registerAuthAPI(g *echo.Group, jwt echo.MiddlewareFunc, deps ServerDeps) {
	api := authApi{deps: deps}

	ag := g.Group("/auth")

	// un-authed endpoints
	ag.POST("/login", api.login)

	// authed endpoints
	tg := ag.Group("", jwt)
	tg.POST("/token-refresh", api.refreshToken)
	tg.GET("/session", api.session)
}

// login exchanges a provider-verified Identity for a resolved Session and a
// signed token. Rejected identities come back as 403.
func (api *authApi) login(ctx echo.Context) error {
	var data auth.Identity
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to Identity")
	}
	if err := api.deps.Validate.Struct(&data); err != nil {
		return err
	}

	sess, err := api.deps.Resolver.Resolve(ctx.Request().Context(), data)
	if err != nil {
		return err
	}

	token, err := GenerateToken(GetSessionClaims(sess))
	if err != nil {
		return errors.Wrap(err, "generating token")
	}
	return ctx.JSON(http.StatusOK, LoginResponse{Token: token, Session: sess})
}

func (api *authApi) refreshToken(ctx echo.Context) error {
	token, err := refreshToken(ctx)
	if err != nil {
		return errors.Wrap(err, "refreshing token")
	}

	claims, err := getContextClaims(ctx)
	if err != nil {
		return errors.Wrap(err, "getting context claims")
	}
	return ctx.JSON(http.StatusOK, LoginResponse{Token: token, Session: claims.Session()})
}

func (api *authApi) session(ctx echo.Context) error {
	claims, err := getContextClaims(ctx)
	if err != nil {
		return errors.Wrap(err, "getting context claims")
	}
	return ctx.JSON(http.StatusOK, claims.Session())
}

type LoginResponse struct {
	Token   string       `json:"token"`
	Session auth.Session `json:"session"`
}
