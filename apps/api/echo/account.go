package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/Maar1i/Asistente-Escolar-APP/core/account"
)

const (
	menuPath = "/menu"

	msgRegistered = "Registration successful. You can now log in."
)

type accountApi struct {
	*views
	svc      account.Service
	sessions *sessionManager
}

func registerAccountRoutes(e *echo.Echo, auth echo.MiddlewareFunc, v *views, sessions *sessionManager, svc account.Service) {
	api := accountApi{views: v, svc: svc, sessions: sessions}

	// un-authed endpoints
	e.GET(loginPath, api.loginForm)
	e.POST(loginPath, api.login)
	e.GET("/register", api.registerForm)
	e.POST("/register", api.register)

	// authed endpoints
	e.GET("/logout", api.logout, auth)
	e.GET(menuPath, api.menu, auth)
}

// Handlers

func (api *accountApi) loginForm(ctx echo.Context) error {
	return api.render(ctx, http.StatusOK, "login.html", page{Title: "Log in", Form: account.Credentials{}})
}

func (api *accountApi) login(ctx echo.Context) error {
	var data account.Credentials
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to Credentials")
	}
	p := page{Title: "Log in", Form: account.Credentials{Username: data.Username}}

	if err := data.Validate(api.validate); err != nil {
		return api.renderForm(ctx, err, "login.html", p)
	}

	acc, err := api.svc.Authenticate(ctx.Request().Context(), data)
	if err != nil {
		if errors.Cause(err) == account.ErrInvalidCredentials {
			p.Flash = account.ErrInvalidCredentials.Error()
			return api.render(ctx, http.StatusOK, "login.html", p)
		}
		return errors.Wrap(err, "authenticating")
	}

	if err = api.sessions.start(ctx, acc); err != nil {
		return errors.Wrap(err, "starting session")
	}
	return redirect(ctx, menuPath)
}

func (api *accountApi) registerForm(ctx echo.Context) error {
	return api.render(ctx, http.StatusOK, "register.html", page{Title: "Register", Form: account.NewAccount{}})
}

func (api *accountApi) register(ctx echo.Context) error {
	var data account.NewAccount
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewAccount")
	}
	p := page{Title: "Register", Form: account.NewAccount{Username: data.Username}}

	if err := data.Validate(api.validate); err != nil {
		return api.renderForm(ctx, err, "register.html", p)
	}
	if _, err := api.svc.Register(ctx.Request().Context(), data); err != nil {
		return api.renderForm(ctx, errors.Wrap(err, "registering account"), "register.html", p)
	}
	return redirectWithFlash(ctx, loginPath, msgRegistered)
}

func (api *accountApi) logout(ctx echo.Context) error {
	if err := api.sessions.end(ctx); err != nil {
		return errors.Wrap(err, "ending session")
	}
	return ctx.Redirect(http.StatusFound, loginPath)
}

func (api *accountApi) menu(ctx echo.Context) error {
	return api.render(ctx, http.StatusOK, "menu.html", page{Title: "Menu"})
}
