package echoapi

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"

	"github.com/Maar1i/Asistente-Escolar-APP/core"
	"github.com/Maar1i/Asistente-Escolar-APP/core/account"
	"github.com/Maar1i/Asistente-Escolar-APP/core/assistant"
	"github.com/Maar1i/Asistente-Escolar-APP/core/event"
	"github.com/Maar1i/Asistente-Escolar-APP/core/grade"
	"github.com/Maar1i/Asistente-Escolar-APP/core/note"
	"github.com/Maar1i/Asistente-Escolar-APP/core/notification"
	"github.com/Maar1i/Asistente-Escolar-APP/core/task"
	appfs "github.com/Maar1i/Asistente-Escolar-APP/fs"
	"github.com/Maar1i/Asistente-Escolar-APP/services/metrics"
)

type (
	ServerDeps struct {
		Conf       *core.Config
		Logger     core.Logger
		Validate   *validator.Validate
		Translator ut.Translator
		Sessions   core.SessionStore
		Metrics    *metrics.Metrics // optional

		AccountSvc      account.Service
		TaskSvc         task.Service
		EventSvc        event.Service
		NoteSvc         note.Service
		GradeSvc        grade.Service
		NotificationSvc notification.Service
		Assistant       assistant.Gateway
	}

	Server struct {
		app      *echo.Echo
		addr     string
		shutdown chan os.Signal
		errors   chan error
	}
)

var _ http.Handler = (*Server)(nil)

func NewServer(deps ServerDeps) *Server {
	conf := deps.Conf
	s := &Server{
		app:      echo.New(),
		addr:     conf.Server.Host,
		shutdown: make(chan os.Signal, 1),
		errors:   make(chan error, 1),
	}
	signal.Notify(s.shutdown, os.Interrupt, syscall.SIGTERM)

	renderer, err := newTemplateRenderer(appfs.FS)
	if err != nil {
		deps.Logger.Fatal("loading templates", err)
	}

	s.app.HideBanner = true
	s.app.Debug = conf.Debug
	s.app.Renderer = renderer
	s.app.HTTPErrorHandler = newAppHTTPErrorHandler(deps.Logger, s.SignalShutdown)

	s.app.Pre(middleware.RemoveTrailingSlash())
	if !conf.Server.DisableReqLogs {
		s.app.Use(middleware.Logger())
	}
	if deps.Metrics != nil {
		s.app.Use(deps.Metrics.Middleware())
	}
	// do not recover in DEV|TEST mode
	if !(conf.Debug || conf.TestMode) {
		s.app.Use(middleware.RecoverWithConfig(middleware.RecoverConfig{LogLevel: log.ERROR}))
	}
	s.app.Use(middleware.CSRFWithConfig(middleware.CSRFConfig{
		Skipper:        func(echo.Context) bool { return conf.Server.DisableCSRF },
		TokenLookup:    "form:csrf",
		CookieName:     "_csrf",
		CookiePath:     "/",
		CookieHTTPOnly: true,
		CookieSecure:   !conf.Debug,
	}))

	v := &views{validate: deps.Validate, translator: deps.Translator}
	sessions := newSessionManager(conf, deps.Sessions, deps.AccountSvc)
	auth := sessions.middleware()

	s.app.GET("/", func(ctx echo.Context) error { return ctx.Redirect(http.StatusFound, loginPath) })

	registerAccountRoutes(s.app, auth, v, sessions, deps.AccountSvc)
	registerTaskRoutes(s.app, auth, v, deps.TaskSvc)
	registerEventRoutes(s.app, auth, v, deps.EventSvc)
	registerNoteRoutes(s.app, auth, v, deps.NoteSvc)
	registerGradeRoutes(s.app, auth, v, deps.GradeSvc)
	registerNotificationRoutes(s.app, auth, v, deps.NotificationSvc)
	registerAssistantRoutes(s.app, auth, v, deps.Assistant)

	return s
}

// Start blocks until the server stops; failures are sent to Errors().
func (s *Server) Start() {
	if err := s.app.Start(s.addr); err != nil && err != http.ErrServerClosed {
		s.errors <- err
	}
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.app.Shutdown(ctx)
}

func (s *Server) Close() error {
	return s.app.Close()
}

func (s *Server) Errors() <-chan error {
	return s.errors
}

func (s *Server) ShutdownSignal() <-chan os.Signal {
	return s.shutdown
}

// SignalShutdown asks the main goroutine to stop the server gracefully.
func (s *Server) SignalShutdown() {
	select {
	case s.shutdown <- syscall.SIGTERM:
	default: // already signaled
	}
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.app.ServeHTTP(w, r)
}
