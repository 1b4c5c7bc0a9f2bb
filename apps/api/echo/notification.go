package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/Maar1i/Asistente-Escolar-APP/core/notification"
)

const (
	notificationsPath = "/notificaciones"

	msgNotificationScheduled = "Notification scheduled."
	msgNotificationDeleted   = "Notification deleted."
)

type notificationApi struct {
	*views
	svc notification.Service
}

func registerNotificationRoutes(e *echo.Echo, auth echo.MiddlewareFunc, v *views, svc notification.Service) {
	api := notificationApi{views: v, svc: svc}

	e.GET(notificationsPath, api.list, auth)
	e.POST(notificationsPath, api.create, auth)
	e.GET("/notificacion/:id/eliminar", api.destroy, auth)
}

func (api *notificationApi) loadPage(ctx echo.Context, ownerID int64, form notification.NewNotification) (page, error) {
	notifs, err := api.svc.ListUpcoming(ctx.Request().Context(), ownerID)
	if err != nil {
		return page{}, errors.Wrap(err, "listing notifications")
	}
	return page{Title: "Notifications", Form: form, Data: notifs}, nil
}

// Handlers

func (api *notificationApi) list(ctx echo.Context) error {
	acc, err := getContextAccount(ctx)
	if err != nil {
		return errors.Wrap(err, "getting context account")
	}
	p, err := api.loadPage(ctx, acc.ID, notification.NewNotification{})
	if err != nil {
		return err
	}
	return api.render(ctx, http.StatusOK, "notificaciones.html", p)
}

func (api *notificationApi) create(ctx echo.Context) error {
	acc, err := getContextAccount(ctx)
	if err != nil {
		return errors.Wrap(err, "getting context account")
	}

	var data notification.NewNotification
	if err = ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewNotification")
	}

	vErr := data.Validate(api.validate)
	if vErr == nil {
		if _, err = api.svc.Create(ctx.Request().Context(), acc.ID, data); err == nil {
			return redirectWithFlash(ctx, notificationsPath, msgNotificationScheduled)
		}
		vErr = err
	}

	p, err := api.loadPage(ctx, acc.ID, data)
	if err != nil {
		return err
	}
	return api.renderForm(ctx, vErr, "notificaciones.html", p)
}

func (api *notificationApi) destroy(ctx echo.Context) error {
	acc, err := getContextAccount(ctx)
	if err != nil {
		return errors.Wrap(err, "getting context account")
	}
	id, ok := paramID(ctx)
	if !ok {
		return redirect(ctx, notificationsPath)
	}

	if err = api.svc.Delete(ctx.Request().Context(), acc.ID, id); err != nil {
		return redirectIfMissing(ctx, err, notificationsPath, "deleting notification")
	}
	return redirectWithFlash(ctx, notificationsPath, msgNotificationDeleted)
}
