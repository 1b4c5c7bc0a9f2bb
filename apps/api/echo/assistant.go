package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/Maar1i/Asistente-Escolar-APP/core/assistant"
)

type assistantApi struct {
	*views
	gw assistant.Gateway
}

type answerPage struct {
	Action string
	Answer string
}

func registerAssistantRoutes(e *echo.Echo, auth echo.MiddlewareFunc, v *views, gw assistant.Gateway) {
	api := assistantApi{views: v, gw: gw}

	// grounded on the account's records
	e.GET("/buscador", api.searchForm, auth)
	e.POST("/buscador", api.search, auth)

	// question forwarded as is
	e.GET("/asistente", api.askForm, auth)
	e.POST("/asistente", api.ask, auth)
}

func newAnswerPage(title, action string, q assistant.Question, answer string) page {
	return page{Title: title, Form: q, Data: answerPage{Action: action, Answer: answer}}
}

// Handlers

func (api *assistantApi) searchForm(ctx echo.Context) error {
	p := newAnswerPage("Search", "/buscador", assistant.Question{}, "")
	return api.render(ctx, http.StatusOK, "asistente.html", p)
}

func (api *assistantApi) search(ctx echo.Context) error {
	acc, err := getContextAccount(ctx)
	if err != nil {
		return errors.Wrap(err, "getting context account")
	}

	var data assistant.Question
	if err = ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to Question")
	}
	if err = data.Validate(api.validate); err != nil {
		return api.renderForm(ctx, err, "asistente.html", newAnswerPage("Search", "/buscador", data, ""))
	}

	answer, err := api.gw.Ask(ctx.Request().Context(), acc, data.Question)
	if err != nil {
		return errors.Wrap(err, "asking assistant")
	}
	return api.render(ctx, http.StatusOK, "asistente.html", newAnswerPage("Search", "/buscador", data, answer))
}

func (api *assistantApi) askForm(ctx echo.Context) error {
	p := newAnswerPage("Assistant", "/asistente", assistant.Question{}, "")
	return api.render(ctx, http.StatusOK, "asistente.html", p)
}

func (api *assistantApi) ask(ctx echo.Context) error {
	acc, err := getContextAccount(ctx)
	if err != nil {
		return errors.Wrap(err, "getting context account")
	}

	var data assistant.Question
	if err = ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to Question")
	}
	if err = data.Validate(api.validate); err != nil {
		return api.renderForm(ctx, err, "asistente.html", newAnswerPage("Assistant", "/asistente", data, ""))
	}

	answer := api.gw.AskDirect(ctx.Request().Context(), acc, data.Question)
	return api.render(ctx, http.StatusOK, "asistente.html", newAnswerPage("Assistant", "/asistente", data, answer))
}
