package echoapi

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/meritum/core/merit"
)

type meritApi struct {
	svc      *merit.Service
	validate *validator.Validate
}

func registerMeritAPI(g *echo.Group, jwt echo.MiddlewareFunc, deps ServerDeps) {
	api := meritApi{
		svc:      deps.MeritSvc,
		validate: deps.Validate,
	}

	mg := g.Group("/merits", jwt)
	mg.POST("", api.award, adminMiddleware())
	mg.GET("/values", api.values)
	mg.PUT("/values/:levelID", api.setLevelValues, adminMiddleware())
	mg.DELETE("/:matric/:id", api.revoke, adminMiddleware())

	// event-scoped merit endpoints
	g.GET("/events/:id/merits", api.queryByEvent, jwt, adminMiddleware())
	g.POST("/events/:id/merits/upload", api.upload, jwt, adminMiddleware())
}

func (api *meritApi) award(ctx echo.Context) error {
	var data merit.NewMerit
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewMerit")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	claims, err := getContextClaims(ctx)
	if err != nil {
		return errors.Wrap(err, "getting context claims")
	}

	m, err := api.svc.Award(ctx.Request().Context(), data, claims.Email)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusCreated, m)
}

func (api *meritApi) revoke(ctx echo.Context) error {
	if err := api.svc.Revoke(ctx.Request().Context(), ctx.Param("matric"), ctx.Param("id")); err != nil {
		return err
	}
	return ctx.NoContent(http.StatusNoContent)
}

func (api *meritApi) queryByEvent(ctx echo.Context) error {
	id, err := pathID(ctx, "id")
	if err != nil {
		return err
	}
	merits, err := api.svc.QueryByEvent(ctx.Request().Context(), id)
	if err != nil {
		return errors.Wrap(err, "querying merits by event")
	}
	if merits == nil {
		merits = []merit.Merit{}
	}
	return ctx.JSON(http.StatusOK, merits)
}

// upload takes a multipart CSV sheet ("file") plus a "merit_type" form value
// and awards one merit per row. Row failures are reported, not fatal.
func (api *meritApi) upload(ctx echo.Context) error {
	id, err := pathID(ctx, "id")
	if err != nil {
		return err
	}

	fh, err := ctx.FormFile("file")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "missing upload file")
	}
	f, err := fh.Open()
	if err != nil {
		return errors.Wrap(err, "opening upload file")
	}
	defer f.Close()

	records, err := merit.ParseUploadCSV(f)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	claims, err := getContextClaims(ctx)
	if err != nil {
		return errors.Wrap(err, "getting context claims")
	}

	report, err := api.svc.BulkAward(
		ctx.Request().Context(), id, ctx.FormValue("merit_type"), records, claims.Email)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, report)
}

func (api *meritApi) values(ctx echo.Context) error {
	values, err := api.svc.Values(ctx.Request().Context())
	if err != nil {
		return errors.Wrap(err, "loading merit values")
	}
	return ctx.JSON(http.StatusOK, values)
}

func (api *meritApi) setLevelValues(ctx echo.Context) error {
	var roles map[string]int
	if err := ctx.Bind(&roles); err != nil {
		return errors.Wrap(err, "binding level values")
	}
	if err := api.svc.SetLevelValues(ctx.Request().Context(), ctx.Param("levelID"), roles); err != nil {
		return err
	}
	return ctx.NoContent(http.StatusNoContent)
}
