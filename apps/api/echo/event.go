package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/Maar1i/Asistente-Escolar-APP/core/event"
)

const (
	eventsPath = "/eventos"

	msgEventSaved   = "Event saved successfully."
	msgEventDeleted = "Event deleted."
)

type eventApi struct {
	*views
	svc event.Service
}

func registerEventRoutes(e *echo.Echo, auth echo.MiddlewareFunc, v *views, svc event.Service) {
	api := eventApi{views: v, svc: svc}

	e.GET(eventsPath, api.list, auth)
	e.GET("/evento/nuevo", api.newForm, auth)
	e.POST("/evento/nuevo", api.create, auth)
	e.GET("/evento/:id/eliminar", api.destroy, auth)
}

// Handlers

func (api *eventApi) list(ctx echo.Context) error {
	acc, err := getContextAccount(ctx)
	if err != nil {
		return errors.Wrap(err, "getting context account")
	}
	events, err := api.svc.List(ctx.Request().Context(), acc.ID)
	if err != nil {
		return errors.Wrap(err, "listing events")
	}
	return api.render(ctx, http.StatusOK, "eventos.html", page{Title: "Events", Data: events})
}

func (api *eventApi) newForm(ctx echo.Context) error {
	return api.render(ctx, http.StatusOK, "evento_nuevo.html", page{Title: "New event", Form: event.NewEvent{}})
}

func (api *eventApi) create(ctx echo.Context) error {
	acc, err := getContextAccount(ctx)
	if err != nil {
		return errors.Wrap(err, "getting context account")
	}

	var data event.NewEvent
	if err = ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewEvent")
	}
	p := page{Title: "New event", Form: data}
	if err = data.Validate(api.validate); err != nil {
		return api.renderForm(ctx, err, "evento_nuevo.html", p)
	}

	if _, err = api.svc.Create(ctx.Request().Context(), acc.ID, data); err != nil {
		return api.renderForm(ctx, err, "evento_nuevo.html", p)
	}
	return redirectWithFlash(ctx, eventsPath, msgEventSaved)
}

func (api *eventApi) destroy(ctx echo.Context) error {
	acc, err := getContextAccount(ctx)
	if err != nil {
		return errors.Wrap(err, "getting context account")
	}
	id, ok := paramID(ctx)
	if !ok {
		return redirect(ctx, eventsPath)
	}

	if err = api.svc.Delete(ctx.Request().Context(), acc.ID, id); err != nil {
		return redirectIfMissing(ctx, err, eventsPath, "deleting event")
	}
	return redirectWithFlash(ctx, eventsPath, msgEventDeleted)
}
