package echoapi

import (
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/meritum/core/organizer"
)

type organizerApi struct {
	svc      organizer.ServiceInterface
	validate *validator.Validate
}

func registerOrganizerAPI(g *echo.Group, jwt echo.MiddlewareFunc, deps ServerDeps) {
	api := organizerApi{
		svc:      deps.OrganizerSvc,
		validate: deps.Validate,
	}

	og := g.Group("/organizers", jwt)
	og.GET("", api.query)
	og.POST("", api.create, adminMiddleware())

	dg := og.Group("/:id")
	dg.GET("", api.retrieve)
	dg.PUT("", api.update, adminMiddleware())
	dg.DELETE("", api.destroy, adminMiddleware())

	dg.GET("/subs", api.querySubs)
	dg.POST("/subs", api.createSub, adminMiddleware())
	dg.PUT("/subs/:subID", api.updateSub, adminMiddleware())
	dg.DELETE("/subs/:subID", api.destroySub, adminMiddleware())
}

func (api *organizerApi) query(ctx echo.Context) error {
	var orgs []organizer.Organizer
	var err error
	if ctx.QueryParam("active") == "true" {
		orgs, err = api.svc.QueryActive(ctx.Request().Context())
	} else {
		orgs, err = api.svc.QueryAll(ctx.Request().Context())
	}
	if err != nil {
		return errors.Wrap(err, "querying organizers")
	}
	if orgs == nil {
		orgs = []organizer.Organizer{}
	}
	return ctx.JSON(http.StatusOK, orgs)
}

func (api *organizerApi) create(ctx echo.Context) error {
	var data organizer.NewOrganizer
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewOrganizer")
	}
	if err := data.Validate(ctx.Request().Context(), api.validate, api.svc); err != nil {
		return err
	}

	claims, err := getContextClaims(ctx)
	if err != nil {
		return errors.Wrap(err, "getting context claims")
	}

	org, err := api.svc.Create(ctx.Request().Context(), data, claims.Email)
	if err != nil {
		return errors.Wrap(err, "creating organizer")
	}
	return ctx.JSON(http.StatusCreated, org)
}

func (api *organizerApi) retrieve(ctx echo.Context) error {
	id, err := pathID(ctx, "id")
	if err != nil {
		return err
	}
	org, err := api.svc.GetByID(ctx.Request().Context(), id)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, org)
}

func (api *organizerApi) update(ctx echo.Context) error {
	id, err := pathID(ctx, "id")
	if err != nil {
		return err
	}
	orig, err := api.svc.GetByID(ctx.Request().Context(), id)
	if err != nil {
		return err
	}

	var data organizer.UpdateOrganizer
	if err = ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to UpdateOrganizer")
	}
	if err = data.Validate(ctx.Request().Context(), orig, api.validate, api.svc); err != nil {
		return err
	}

	claims, err := getContextClaims(ctx)
	if err != nil {
		return errors.Wrap(err, "getting context claims")
	}

	org, err := api.svc.Update(ctx.Request().Context(), id, data, claims.Email)
	if err != nil {
		return errors.Wrap(err, "updating organizer")
	}
	return ctx.JSON(http.StatusOK, org)
}

func (api *organizerApi) destroy(ctx echo.Context) error {
	id, err := pathID(ctx, "id")
	if err != nil {
		return err
	}
	if err = api.svc.Delete(ctx.Request().Context(), id); err != nil {
		return err
	}
	return ctx.NoContent(http.StatusNoContent)
}

func (api *organizerApi) querySubs(ctx echo.Context) error {
	id, err := pathID(ctx, "id")
	if err != nil {
		return err
	}
	subs, err := api.svc.QuerySubs(ctx.Request().Context(), id)
	if err != nil {
		return errors.Wrap(err, "querying sub-organizers")
	}
	if subs == nil {
		subs = []organizer.SubOrganizer{}
	}
	return ctx.JSON(http.StatusOK, subs)
}

func (api *organizerApi) createSub(ctx echo.Context) error {
	id, err := pathID(ctx, "id")
	if err != nil {
		return err
	}

	var data organizer.NewSubOrganizer
	if err = ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewSubOrganizer")
	}
	if err = data.Validate(api.validate); err != nil {
		return err
	}

	claims, err := getContextClaims(ctx)
	if err != nil {
		return errors.Wrap(err, "getting context claims")
	}

	sub, err := api.svc.AddSub(ctx.Request().Context(), id, data, claims.Email)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusCreated, sub)
}

func (api *organizerApi) updateSub(ctx echo.Context) error {
	id, err := pathID(ctx, "id")
	if err != nil {
		return err
	}

	var data organizer.NewSubOrganizer
	if err = ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewSubOrganizer")
	}
	if err = data.Validate(api.validate); err != nil {
		return err
	}

	claims, err := getContextClaims(ctx)
	if err != nil {
		return errors.Wrap(err, "getting context claims")
	}

	sub, err := api.svc.UpdateSub(ctx.Request().Context(), id, ctx.Param("subID"), data, claims.Email)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, sub)
}

func (api *organizerApi) destroySub(ctx echo.Context) error {
	id, err := pathID(ctx, "id")
	if err != nil {
		return err
	}
	if err = api.svc.DeleteSub(ctx.Request().Context(), id, ctx.Param("subID")); err != nil {
		return err
	}
	return ctx.NoContent(http.StatusNoContent)
}

// pathID parses a numeric path param; unparseable IDs read as "not found".
func pathID(ctx echo.Context, param string) (int, error) {
	id, err := strconv.Atoi(ctx.Param(param))
	if err != nil {
		return 0, errHttpNotFound
	}
	return id, nil
}
