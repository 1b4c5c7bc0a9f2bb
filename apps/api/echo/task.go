package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/Maar1i/Asistente-Escolar-APP/core/task"
)

const (
	tasksPath = "/tareas"

	msgTaskAdded   = "Task added successfully."
	msgTaskDeleted = "Task deleted."
)

type taskApi struct {
	*views
	svc task.Service
}

func registerTaskRoutes(e *echo.Echo, auth echo.MiddlewareFunc, v *views, svc task.Service) {
	api := taskApi{views: v, svc: svc}

	e.GET(tasksPath, api.list, auth)
	e.GET("/tarea/nueva", api.newForm, auth)
	e.POST("/tarea/nueva", api.create, auth)
	e.GET("/tarea/:id/completar", api.toggle, auth)
	e.GET("/tarea/:id/eliminar", api.destroy, auth)
}

// Handlers

func (api *taskApi) list(ctx echo.Context) error {
	acc, err := getContextAccount(ctx)
	if err != nil {
		return errors.Wrap(err, "getting context account")
	}
	tasks, err := api.svc.List(ctx.Request().Context(), acc.ID)
	if err != nil {
		return errors.Wrap(err, "listing tasks")
	}
	return api.render(ctx, http.StatusOK, "tareas.html", page{Title: "Tasks", Data: tasks})
}

func (api *taskApi) newForm(ctx echo.Context) error {
	return api.render(ctx, http.StatusOK, "tarea_nueva.html", page{Title: "New task", Form: task.NewTask{}})
}

func (api *taskApi) create(ctx echo.Context) error {
	acc, err := getContextAccount(ctx)
	if err != nil {
		return errors.Wrap(err, "getting context account")
	}

	var data task.NewTask
	if err = ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewTask")
	}
	p := page{Title: "New task", Form: data}
	if err = data.Validate(api.validate); err != nil {
		return api.renderForm(ctx, err, "tarea_nueva.html", p)
	}

	if _, err = api.svc.Create(ctx.Request().Context(), acc.ID, data); err != nil {
		return api.renderForm(ctx, err, "tarea_nueva.html", p)
	}
	return redirectWithFlash(ctx, tasksPath, msgTaskAdded)
}

func (api *taskApi) toggle(ctx echo.Context) error {
	acc, err := getContextAccount(ctx)
	if err != nil {
		return errors.Wrap(err, "getting context account")
	}
	id, ok := paramID(ctx)
	if !ok {
		return redirect(ctx, tasksPath)
	}

	if _, err = api.svc.ToggleComplete(ctx.Request().Context(), acc.ID, id); err != nil {
		return redirectIfMissing(ctx, err, tasksPath, "toggling task")
	}
	return redirect(ctx, tasksPath)
}

func (api *taskApi) destroy(ctx echo.Context) error {
	acc, err := getContextAccount(ctx)
	if err != nil {
		return errors.Wrap(err, "getting context account")
	}
	id, ok := paramID(ctx)
	if !ok {
		return redirect(ctx, tasksPath)
	}

	if err = api.svc.Delete(ctx.Request().Context(), acc.ID, id); err != nil {
		return redirectIfMissing(ctx, err, tasksPath, "deleting task")
	}
	return redirectWithFlash(ctx, tasksPath, msgTaskDeleted)
}
