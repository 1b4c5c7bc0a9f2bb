package echoapi

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Maar1i/Asistente-Escolar-APP/core"
	"github.com/Maar1i/Asistente-Escolar-APP/core/account"
	"github.com/Maar1i/Asistente-Escolar-APP/core/assistant"
	"github.com/Maar1i/Asistente-Escolar-APP/core/event"
	"github.com/Maar1i/Asistente-Escolar-APP/core/grade"
	"github.com/Maar1i/Asistente-Escolar-APP/core/note"
	"github.com/Maar1i/Asistente-Escolar-APP/core/notification"
	"github.com/Maar1i/Asistente-Escolar-APP/core/task"
	"github.com/Maar1i/Asistente-Escolar-APP/services/metrics"
	"github.com/Maar1i/Asistente-Escolar-APP/storage/cache"
	inmemdb "github.com/Maar1i/Asistente-Escolar-APP/storage/database/inmem"
	"github.com/Maar1i/Asistente-Escolar-APP/tests"
)

type testApp struct {
	server   *Server
	conf     *core.Config
	accRepo  account.Repository
	tasks    task.Service
	events   event.Service
	notes    note.Service
	grades   grade.Service
	notifs   notification.Service
	grounded *testutil.Completer
	direct   *testutil.Completer
}

func setup(t *testing.T, configure ...func(*core.Config)) *testApp {
	t.Helper()

	conf := testutil.NewConfig()
	for _, fn := range configure {
		fn(conf)
	}
	validate, translator := testutil.NewValidator()
	logger := testutil.NewLogger(conf)

	db := inmemdb.Open()
	app := &testApp{
		conf:     conf,
		accRepo:  inmemdb.NewAccountRepository(db),
		tasks:    task.NewService(inmemdb.NewTaskRepository(db)),
		events:   event.NewService(inmemdb.NewEventRepository(db)),
		notes:    note.NewService(inmemdb.NewNoteRepository(db)),
		grades:   grade.NewService(inmemdb.NewGradeRepository(db)),
		notifs:   notification.NewService(inmemdb.NewNotificationRepository(db)),
		grounded: &testutil.Completer{Answer: "grounded answer"},
		direct:   &testutil.Completer{Answer: "direct answer"},
	}

	gw := assistant.NewGateway(assistant.Deps{
		Tasks:    app.tasks,
		Events:   app.events,
		Notes:    app.notes,
		Grounded: app.grounded,
		Direct:   app.direct,
		Timeout:  conf.Assistant.Timeout,
		Logger:   logger,
	})

	app.server = NewServer(ServerDeps{
		Conf:            conf,
		Logger:          logger,
		Validate:        validate,
		Translator:      translator,
		Sessions:        cache.NewMemoryStore(),
		Metrics:         metrics.New(),
		AccountSvc:      account.NewService(app.accRepo),
		TaskSvc:         app.tasks,
		EventSvc:        app.events,
		NoteSvc:         app.notes,
		GradeSvc:        app.grades,
		NotificationSvc: app.notifs,
		Assistant:       gw,
	})
	return app
}

type httpTest struct {
	name         string
	method       string
	path         string
	form         url.Values
	cookies      []*http.Cookie
	wantCode     int
	wantLocation string
	wantBody     []string
	notInBody    []string
}

func newRequest(method, path string, form url.Values, cookies ...*http.Cookie) (*http.Request, *httptest.ResponseRecorder) {
	if method == "" {
		method = http.MethodGet
	}
	var body *strings.Reader
	if form != nil {
		body = strings.NewReader(form.Encode())
	} else {
		body = strings.NewReader("")
	}
	req := httptest.NewRequest(method, path, body)
	if form != nil {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	}
	for _, c := range cookies {
		req.AddCookie(c)
	}
	return req, httptest.NewRecorder()
}

func (app *testApp) do(tt httpTest) *httptest.ResponseRecorder {
	req, rec := newRequest(tt.method, tt.path, tt.form, tt.cookies...)
	app.server.ServeHTTP(rec, req)
	return rec
}

func (app *testApp) run(t *testing.T, tests []httpTest) {
	t.Helper()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			checkResponse(t, tt, app.do(tt))
		})
	}
}

func checkResponse(t *testing.T, tt httpTest, rec *httptest.ResponseRecorder) {
	t.Helper()

	assert.Equal(t, tt.wantCode, rec.Code, "status code")
	if tt.wantLocation != "" {
		assert.Equal(t, tt.wantLocation, rec.Header().Get(echo.HeaderLocation))
	}
	body := rec.Body.String()
	for _, want := range tt.wantBody {
		assert.Contains(t, body, want)
	}
	for _, unwanted := range tt.notInBody {
		assert.NotContains(t, body, unwanted)
	}
}

func getCookie(rec *httptest.ResponseRecorder, name string) *http.Cookie {
	for _, c := range rec.Result().Cookies() {
		if c.Name == name {
			return c
		}
	}
	return nil
}

// register creates an account straight in the store and logs it in.
func (app *testApp) register(t *testing.T, uname, pwd string) (account.Account, *http.Cookie) {
	t.Helper()
	acc := testutil.CreateAccount(t, app.accRepo, uname, pwd)
	return acc, app.login(t, uname, pwd)
}

func (app *testApp) login(t *testing.T, uname, pwd string) *http.Cookie {
	t.Helper()

	rec := app.do(httpTest{
		method: http.MethodPost,
		path:   "/login",
		form:   url.Values{"username": {uname}, "password": {pwd}},
	})
	require.Equal(t, http.StatusSeeOther, rec.Code, rec.Body.String())
	require.Equal(t, "/menu", rec.Header().Get(echo.HeaderLocation))

	session := getCookie(rec, app.conf.Session.CookieName)
	require.NotNil(t, session, "session cookie")
	return session
}

func TestServer_routing(t *testing.T) {
	app := setup(t)

	app.run(t, []httpTest{
		{name: "root", path: "/", wantCode: http.StatusFound, wantLocation: "/login"},
		{name: "unknown route", path: "/nope", wantCode: http.StatusNotFound, wantBody: []string{"404: Not Found"}},
		{name: "trailing slash", path: "/login/", wantCode: http.StatusOK, wantBody: []string{`action="/login"`}},
	})
}

func TestServer_csrf(t *testing.T) {
	app := setup(t, func(conf *core.Config) { conf.Server.DisableCSRF = false })

	rec := app.do(httpTest{path: "/login"})
	require.Equal(t, http.StatusOK, rec.Code)
	csrf := getCookie(rec, "_csrf")
	require.NotNil(t, csrf)
	assert.Contains(t, rec.Body.String(), `name="csrf" value="`+csrf.Value+`"`)

	app.run(t, []httpTest{
		{
			name: "token mismatch", method: http.MethodPost, path: "/login",
			form:     url.Values{"username": {"ana"}, "password": {"p1"}, "csrf": {"forged"}},
			cookies:  []*http.Cookie{csrf},
			wantCode: http.StatusForbidden,
		},
		{
			name: "valid token", method: http.MethodPost, path: "/login",
			form:     url.Values{"username": {"ana"}, "password": {"p1"}, "csrf": {csrf.Value}},
			cookies:  []*http.Cookie{csrf},
			wantCode: http.StatusOK, wantBody: []string{"invalid username or password"},
		},
	})
}

func indexOf(s, substr string) int {
	return strings.Index(s, substr)
}
