package echoapi

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/meritum/core/event"
)

type eventApi struct {
	svc      event.ServiceInterface
	validate *validator.Validate
}

func registerEventAPI(g *echo.Group, jwt echo.MiddlewareFunc, deps ServerDeps) {
	api := eventApi{
		svc:      deps.EventSvc,
		validate: deps.Validate,
	}

	eg := g.Group("/events", jwt)
	eg.GET("", api.query)
	eg.POST("", api.create, adminMiddleware())

	dg := eg.Group("/:id")
	dg.GET("", api.retrieve)
	dg.PUT("", api.update, adminMiddleware())
	dg.DELETE("", api.destroy, adminMiddleware())

	dg.GET("/activities", api.queryActivities)
	dg.POST("/activities", api.createActivity, adminMiddleware())
}

// query lists events; drafts are only visible to admins.
func (api *eventApi) query(ctx echo.Context) error {
	events, err := api.svc.QueryAll(ctx.Request().Context())
	if err != nil {
		return errors.Wrap(err, "querying events")
	}

	claims, err := getContextClaims(ctx)
	if err != nil {
		return errors.Wrap(err, "getting context claims")
	}
	if !claims.IsAdmin() {
		published := make([]event.Event, 0, len(events))
		for _, evt := range events {
			if !evt.IsDraft() {
				published = append(published, evt)
			}
		}
		events = published
	}
	if events == nil {
		events = []event.Event{}
	}
	return ctx.JSON(http.StatusOK, events)
}

func (api *eventApi) create(ctx echo.Context) error {
	var data event.NewEvent
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewEvent")
	}
	if err := data.Validate(ctx.Request().Context(), api.validate, api.svc); err != nil {
		return err
	}

	claims, err := getContextClaims(ctx)
	if err != nil {
		return errors.Wrap(err, "getting context claims")
	}

	evt, err := api.svc.Create(ctx.Request().Context(), data, claims.Email)
	if err != nil {
		return errors.Wrap(err, "creating event")
	}
	return ctx.JSON(http.StatusCreated, evt)
}

func (api *eventApi) retrieve(ctx echo.Context) error {
	evt, err := api.getVisibleEvent(ctx)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, evt)
}

func (api *eventApi) update(ctx echo.Context) error {
	id, err := pathID(ctx, "id")
	if err != nil {
		return err
	}
	orig, err := api.svc.GetByID(ctx.Request().Context(), id)
	if err != nil {
		return err
	}

	var data event.UpdateEvent
	if err = ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to UpdateEvent")
	}
	if err = data.Validate(ctx.Request().Context(), orig, api.validate, api.svc); err != nil {
		return err
	}

	claims, err := getContextClaims(ctx)
	if err != nil {
		return errors.Wrap(err, "getting context claims")
	}

	evt, err := api.svc.Update(ctx.Request().Context(), id, data, claims.Email)
	if err != nil {
		return errors.Wrap(err, "updating event")
	}
	return ctx.JSON(http.StatusOK, evt)
}

func (api *eventApi) destroy(ctx echo.Context) error {
	id, err := pathID(ctx, "id")
	if err != nil {
		return err
	}
	if err = api.svc.Delete(ctx.Request().Context(), id); err != nil {
		return err
	}
	return ctx.NoContent(http.StatusNoContent)
}

func (api *eventApi) queryActivities(ctx echo.Context) error {
	evt, err := api.getVisibleEvent(ctx)
	if err != nil {
		return err
	}
	children, err := api.svc.QueryChildActivities(ctx.Request().Context(), evt.ID)
	if err != nil {
		return errors.Wrap(err, "querying child activities")
	}
	if children == nil {
		children = []event.Event{}
	}
	return ctx.JSON(http.StatusOK, children)
}

func (api *eventApi) createActivity(ctx echo.Context) error {
	id, err := pathID(ctx, "id")
	if err != nil {
		return err
	}

	var data event.NewChildActivity
	if err = ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewChildActivity")
	}
	if err = data.Validate(api.validate); err != nil {
		return err
	}

	claims, err := getContextClaims(ctx)
	if err != nil {
		return errors.Wrap(err, "getting context claims")
	}

	child, err := api.svc.AddChildActivity(ctx.Request().Context(), id, data, claims.Email)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusCreated, child)
}

// getVisibleEvent loads the event at :id, hiding drafts from non-admins.
func (api *eventApi) getVisibleEvent(ctx echo.Context) (event.Event, error) {
	id, err := pathID(ctx, "id")
	if err != nil {
		return event.Event{}, err
	}
	evt, err := api.svc.GetByID(ctx.Request().Context(), id)
	if err != nil {
		return event.Event{}, err
	}

	claims, err := getContextClaims(ctx)
	if err != nil {
		return event.Event{}, errors.Wrap(err, "getting context claims")
	}
	if evt.IsDraft() && !claims.IsAdmin() {
		return event.Event{}, errHttpNotFound
	}
	return evt, nil
}
