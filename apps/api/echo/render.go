package echoapi

import (
	"html/template"
	"io"
	"io/fs"
	"net/http"
	"net/url"
	"path"
	"strconv"
	"time"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/pkg/errors"

	"github.com/Maar1i/Asistente-Escolar-APP/core"
	"github.com/Maar1i/Asistente-Escolar-APP/core/account"
)

const (
	templatesDir   = "templates"
	layoutTemplate = "layout.html"
	flashCookie    = "flash"
)

// page is what every template receives.
type page struct {
	Title   string
	Account *account.Account
	CSRF    string
	Flash   string
	Errors  map[string]string
	Form    interface{}
	Data    interface{}
}

var templateFuncs = template.FuncMap{
	"date":     func(t time.Time) string { return t.Format("02/01/2006") },
	"datetime": func(t time.Time) string { return t.Format("02/01/2006 15:04") },
	"score":    func(f float64) string { return strconv.FormatFloat(f, 'f', 2, 64) },
}

type templateRenderer struct {
	templates map[string]*template.Template
}

var _ echo.Renderer = (*templateRenderer)(nil)

// newTemplateRenderer parses every page of fsys along with the layout.
func newTemplateRenderer(fsys fs.FS) (*templateRenderer, error) {
	pages, err := fs.Glob(fsys, path.Join(templatesDir, "*.html"))
	if err != nil {
		return nil, errors.Wrap(err, "listing templates")
	}

	r := &templateRenderer{templates: make(map[string]*template.Template, len(pages))}
	for _, p := range pages {
		name := path.Base(p)
		if name == layoutTemplate {
			continue
		}
		tmpl, err := template.New(name).Funcs(templateFuncs).ParseFS(fsys, path.Join(templatesDir, layoutTemplate), p)
		if err != nil {
			return nil, errors.Wrapf(err, "parsing template %s", name)
		}
		r.templates[name] = tmpl
	}
	return r, nil
}

func (r *templateRenderer) Render(w io.Writer, name string, data interface{}, _ echo.Context) error {
	tmpl, ok := r.templates[name]
	if !ok {
		return errors.Errorf("template %s not found", name)
	}
	return tmpl.ExecuteTemplate(w, "layout", data)
}

// views holds what the handlers need to bind, validate and render forms.
type views struct {
	validate   *validator.Validate
	translator ut.Translator
}

// render fills the session part of p then renders the template.
func (v *views) render(ctx echo.Context, code int, name string, p page) error {
	if acc, err := getContextAccount(ctx); err == nil {
		p.Account = &acc
	}
	if token, ok := ctx.Get(middleware.DefaultCSRFConfig.ContextKey).(string); ok {
		p.CSRF = token
	}
	if msg := popFlash(ctx); msg != "" && p.Flash == "" {
		p.Flash = msg
	}
	return ctx.Render(code, name, p)
}

// renderForm re-renders the form of p when err carries field errors, and returns err otherwise.
func (v *views) renderForm(ctx echo.Context, err error, name string, p page) error {
	msgs := core.FieldMessages(err, v.translator)
	if msgs == nil {
		return err
	}
	p.Errors = msgs
	return v.render(ctx, http.StatusOK, name, p)
}

// redirect sends the browser to path. POST answers use 303 so that the browser follows with a GET.
func redirect(ctx echo.Context, path string) error {
	code := http.StatusFound
	if ctx.Request().Method == http.MethodPost {
		code = http.StatusSeeOther
	}
	return ctx.Redirect(code, path)
}

// redirectWithFlash redirects to path and shows msg on the next page.
func redirectWithFlash(ctx echo.Context, path, msg string) error {
	setFlash(ctx, msg)
	return redirect(ctx, path)
}

// redirectIfMissing hides whether a record does not exist or belongs to another account.
func redirectIfMissing(ctx echo.Context, err error, path, msg string) error {
	switch errors.Cause(err) {
	case core.ErrNotFound, core.ErrForbidden:
		return redirect(ctx, path)
	}
	return errors.Wrap(err, msg)
}

// paramID parses the `:id` path parameter.
func paramID(ctx echo.Context) (int64, bool) {
	id, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	return id, err == nil
}

func setFlash(ctx echo.Context, msg string) {
	ctx.SetCookie(&http.Cookie{
		Name:     flashCookie,
		Value:    url.QueryEscape(msg),
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// popFlash returns the pending flash message, once.
func popFlash(ctx echo.Context) string {
	c, err := ctx.Cookie(flashCookie)
	if err != nil || c.Value == "" {
		return ""
	}
	ctx.SetCookie(&http.Cookie{Name: flashCookie, Path: "/", MaxAge: -1, Expires: time.Unix(0, 0)})

	msg, err := url.QueryUnescape(c.Value)
	if err != nil {
		return ""
	}
	return msg
}
