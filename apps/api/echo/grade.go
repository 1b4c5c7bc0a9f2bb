package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/Maar1i/Asistente-Escolar-APP/core/grade"
)

const (
	statsPath = "/estadisticas"

	msgGradeRecorded = "Grade recorded."
)

type gradeApi struct {
	*views
	svc grade.Service
}

type statsPage struct {
	Grades []grade.Grade
	Stats  grade.Stats
}

func registerGradeRoutes(e *echo.Echo, auth echo.MiddlewareFunc, v *views, svc grade.Service) {
	api := gradeApi{views: v, svc: svc}

	e.GET(statsPath, api.stats, auth)
	e.POST(statsPath, api.create, auth)
}

// loadPage loads the grades and averages shown with the grade form.
func (api *gradeApi) loadPage(ctx echo.Context, ownerID int64, form grade.NewGrade) (page, error) {
	grades, err := api.svc.List(ctx.Request().Context(), ownerID)
	if err != nil {
		return page{}, errors.Wrap(err, "listing grades")
	}
	stats, err := api.svc.Stats(ctx.Request().Context(), ownerID)
	if err != nil {
		return page{}, errors.Wrap(err, "computing averages")
	}
	return page{Title: "Statistics", Form: form, Data: statsPage{Grades: grades, Stats: stats}}, nil
}

// Handlers

func (api *gradeApi) stats(ctx echo.Context) error {
	acc, err := getContextAccount(ctx)
	if err != nil {
		return errors.Wrap(err, "getting context account")
	}
	p, err := api.loadPage(ctx, acc.ID, grade.NewGrade{})
	if err != nil {
		return err
	}
	return api.render(ctx, http.StatusOK, "estadisticas.html", p)
}

func (api *gradeApi) create(ctx echo.Context) error {
	acc, err := getContextAccount(ctx)
	if err != nil {
		return errors.Wrap(err, "getting context account")
	}

	var data grade.NewGrade
	if err = ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewGrade")
	}

	vErr := data.Validate(api.validate)
	if vErr == nil {
		if _, err = api.svc.Create(ctx.Request().Context(), acc.ID, data); err == nil {
			return redirectWithFlash(ctx, statsPath, msgGradeRecorded)
		}
		vErr = err
	}

	p, err := api.loadPage(ctx, acc.ID, data)
	if err != nil {
		return err
	}
	return api.renderForm(ctx, vErr, "estadisticas.html", p)
}
