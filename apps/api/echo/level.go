package echoapi

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/meritum/core"
	"github.com/trezcool/meritum/core/level"
)

type levelApi struct {
	svc      *level.Service
	validate *validator.Validate
}

func registerLevelAPI(g *echo.Group, jwt echo.MiddlewareFunc, deps ServerDeps) {
	api := levelApi{
		svc:      deps.LevelSvc,
		validate: deps.Validate,
	}

	lg := g.Group("/levels", jwt)
	lg.GET("", api.query)
	lg.PUT("/:id", api.upsert, adminMiddleware())
	lg.DELETE("/:id", api.destroy, adminMiddleware())
}

// query lists active levels; admins may pass ?all=true to include inactive.
func (api *levelApi) query(ctx echo.Context) error {
	var levels []level.Level
	var err error
	if ctx.QueryParam("all") == "true" {
		claims, cErr := getContextClaims(ctx)
		if cErr != nil {
			return errors.Wrap(cErr, "getting context claims")
		}
		if !claims.IsAdmin() {
			return errHttpForbidden
		}
		levels, err = api.svc.QueryAll(ctx.Request().Context())
	} else {
		levels, err = api.svc.QueryActive(ctx.Request().Context())
	}
	if err != nil {
		return errors.Wrap(err, "querying levels")
	}
	if levels == nil {
		levels = []level.Level{}
	}
	return ctx.JSON(http.StatusOK, levels)
}

func (api *levelApi) upsert(ctx echo.Context) error {
	var data LevelRequest
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to LevelRequest")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	lvl, err := api.svc.Upsert(ctx.Request().Context(), level.Level{
		ID:          ctx.Param("id"),
		Name:        data.Name,
		ShortName:   data.ShortName,
		Order:       data.Order,
		Description: data.Description,
		IsActive:    data.IsActive,
		Color:       data.Color,
	})
	if err != nil {
		return errors.Wrap(err, "upserting level")
	}
	return ctx.JSON(http.StatusOK, lvl)
}

func (api *levelApi) destroy(ctx echo.Context) error {
	if err := api.svc.Delete(ctx.Request().Context(), ctx.Param("id")); err != nil {
		return err
	}
	return ctx.NoContent(http.StatusNoContent)
}

type LevelRequest struct {
	Name        string `json:"name" validate:"required"`
	ShortName   string `json:"shortName"`
	Order       int    `json:"order"`
	Description string `json:"description"`
	IsActive    bool   `json:"isActive"`
	Color       string `json:"color"`
}

func (lr *LevelRequest) Validate(validate *validator.Validate) error {
	lr.Name = core.CleanString(lr.Name)
	lr.ShortName = core.CleanString(lr.ShortName)
	return validate.Struct(lr)
}
