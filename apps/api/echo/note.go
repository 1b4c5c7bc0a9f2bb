package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/Maar1i/Asistente-Escolar-APP/core/note"
)

const (
	notesPath = "/notas"

	msgNoteSaved   = "Note saved successfully."
	msgNoteDeleted = "Note deleted."
)

type noteApi struct {
	*views
	svc note.Service
}

func registerNoteRoutes(e *echo.Echo, auth echo.MiddlewareFunc, v *views, svc note.Service) {
	api := noteApi{views: v, svc: svc}

	e.GET(notesPath, api.list, auth)
	e.GET("/nota/nueva", api.newForm, auth)
	e.POST("/nota/nueva", api.create, auth)
	e.GET("/nota/:id/eliminar", api.destroy, auth)
}

// Handlers

func (api *noteApi) list(ctx echo.Context) error {
	acc, err := getContextAccount(ctx)
	if err != nil {
		return errors.Wrap(err, "getting context account")
	}
	notes, err := api.svc.List(ctx.Request().Context(), acc.ID)
	if err != nil {
		return errors.Wrap(err, "listing notes")
	}
	return api.render(ctx, http.StatusOK, "notas.html", page{Title: "Notes", Data: notes})
}

func (api *noteApi) newForm(ctx echo.Context) error {
	return api.render(ctx, http.StatusOK, "nota_nueva.html", page{Title: "New note", Form: note.NewNote{}})
}

func (api *noteApi) create(ctx echo.Context) error {
	acc, err := getContextAccount(ctx)
	if err != nil {
		return errors.Wrap(err, "getting context account")
	}

	var data note.NewNote
	if err = ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewNote")
	}
	p := page{Title: "New note", Form: data}
	if err = data.Validate(api.validate); err != nil {
		return api.renderForm(ctx, err, "nota_nueva.html", p)
	}

	if _, err = api.svc.Create(ctx.Request().Context(), acc.ID, data); err != nil {
		return errors.Wrap(err, "creating note")
	}
	return redirectWithFlash(ctx, notesPath, msgNoteSaved)
}

func (api *noteApi) destroy(ctx echo.Context) error {
	acc, err := getContextAccount(ctx)
	if err != nil {
		return errors.Wrap(err, "getting context account")
	}
	id, ok := paramID(ctx)
	if !ok {
		return redirect(ctx, notesPath)
	}

	if err = api.svc.Delete(ctx.Request().Context(), acc.ID, id); err != nil {
		return redirectIfMissing(ctx, err, notesPath, "deleting note")
	}
	return redirectWithFlash(ctx, notesPath, msgNoteDeleted)
}
