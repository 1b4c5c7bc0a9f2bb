package dig_container

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"

	"github.com/go-playground/validator/v10"
	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
	"go.uber.org/dig"

	echoapi "github.com/Maar1i/Asistente-Escolar-APP/apps/api/echo"
	"github.com/Maar1i/Asistente-Escolar-APP/core"
	"github.com/Maar1i/Asistente-Escolar-APP/core/account"
	"github.com/Maar1i/Asistente-Escolar-APP/core/assistant"
	"github.com/Maar1i/Asistente-Escolar-APP/core/event"
	"github.com/Maar1i/Asistente-Escolar-APP/core/grade"
	"github.com/Maar1i/Asistente-Escolar-APP/core/note"
	"github.com/Maar1i/Asistente-Escolar-APP/core/notification"
	"github.com/Maar1i/Asistente-Escolar-APP/core/task"
	geminisvc "github.com/Maar1i/Asistente-Escolar-APP/services/completion/gemini"
	openaisvc "github.com/Maar1i/Asistente-Escolar-APP/services/completion/openai"
	logsvc "github.com/Maar1i/Asistente-Escolar-APP/services/logger"
	"github.com/Maar1i/Asistente-Escolar-APP/services/metrics"
	"github.com/Maar1i/Asistente-Escolar-APP/storage/cache"
	"github.com/Maar1i/Asistente-Escolar-APP/storage/database"
	inmemdb "github.com/Maar1i/Asistente-Escolar-APP/storage/database/inmem"
	sqlxrepos "github.com/Maar1i/Asistente-Escolar-APP/storage/database/sqlx"
)

type DBLoggerParam struct {
	dig.In
	Logger core.Logger `name:"dbLogger"`
}

type completers struct {
	dig.Out
	Grounded assistant.Completer `name:"grounded"`
	Direct   assistant.Completer `name:"direct"`
}

type gatewayParams struct {
	dig.In
	Conf     *core.Config
	Logger   core.Logger
	Tasks    task.Service
	Events   event.Service
	Notes    note.Service
	Grounded assistant.Completer `name:"grounded"`
	Direct   assistant.Completer `name:"direct"`
}

type serverParams struct {
	dig.In
	Conf            *core.Config
	Logger          core.Logger
	Validate        *validator.Validate
	Sessions        core.SessionStore
	Metrics         *metrics.Metrics
	AccountSvc      account.Service
	TaskSvc         task.Service
	EventSvc        event.Service
	NoteSvc         note.Service
	GradeSvc        grade.Service
	NotificationSvc notification.Service
	Assistant       assistant.Gateway
}

func newLogger(conf *core.Config) core.Logger {
	stdLogger := log.New(os.Stdout, "API : ", log.LstdFlags)
	logger := logsvc.NewRollbarLogger(stdLogger, conf)
	logger.Enable(!conf.Debug)
	return logger
}

func newDBLogger(conf *core.Config) core.Logger {
	stdLogger := log.New(os.Stdout, "DB : ", log.LstdFlags|log.Lmicroseconds|log.Lshortfile)
	logger := logsvc.NewRollbarLogger(stdLogger, conf)
	logger.Enable(!conf.Debug)
	return logger
}

func newDB(conf *core.Config, loggerParam DBLoggerParam) (*sqlx.DB, core.DBExecutor) {
	db, err := database.SetUp(context.Background(), conf)
	if err != nil {
		loggerParam.Logger.Fatal(fmt.Sprintf("setting up database: %v", err), err)
	}
	return db, db
}

// newSessionStore keeps revocations in redis when REDIS_URL is set, in memory otherwise.
func newSessionStore(conf *core.Config, logger core.Logger) core.SessionStore {
	if conf.RedisURL == "" {
		logger.Warn("REDIS_URL not set: revoked sessions are kept in memory")
		return cache.NewMemoryStore()
	}
	client, err := cache.OpenRedis(context.Background(), conf)
	if err != nil {
		logger.Fatal(fmt.Sprintf("connecting to redis: %v", err), err)
	}
	return cache.NewRedisStore(client)
}

func newCompleters(conf *core.Config, m *metrics.Metrics) completers {
	return completers{
		Grounded: m.InstrumentCompleter("openai", openaisvc.NewCompleter(conf)),
		Direct:   m.InstrumentCompleter("gemini", geminisvc.NewCompleter(conf, &http.Client{})),
	}
}

func newGateway(p gatewayParams) assistant.Gateway {
	return assistant.NewGateway(assistant.Deps{
		Tasks:    p.Tasks,
		Events:   p.Events,
		Notes:    p.Notes,
		Grounded: p.Grounded,
		Direct:   p.Direct,
		Timeout:  p.Conf.Assistant.Timeout,
		Logger:   p.Logger,
	})
}

func newServer(p serverParams) *echoapi.Server {
	translator := core.NewTranslator()
	core.InitValidators(p.Validate, translator)

	return echoapi.NewServer(echoapi.ServerDeps{
		Conf:            p.Conf,
		Logger:          p.Logger,
		Validate:        p.Validate,
		Translator:      translator,
		Sessions:        p.Sessions,
		Metrics:         p.Metrics,
		AccountSvc:      p.AccountSvc,
		TaskSvc:         p.TaskSvc,
		EventSvc:        p.EventSvc,
		NoteSvc:         p.NoteSvc,
		GradeSvc:        p.GradeSvc,
		NotificationSvc: p.NotificationSvc,
		Assistant:       p.Assistant,
	})
}

// New returns a new dependency injection dig.Container.
// With inMemory, records live in memory and no database is needed.
func New(inMemory bool) *dig.Container {
	c := dig.New()

	must(c.Provide(core.NewConfig))
	must(c.Provide(newLogger))
	must(c.Provide(newDBLogger, dig.Name("dbLogger")))
	must(c.Provide(newSessionStore))
	must(c.Provide(metrics.New))
	must(c.Provide(validator.New))

	// repositories
	if inMemory {
		must(c.Provide(inmemdb.Open))
		must(c.Provide(inmemdb.NewAccountRepository))
		must(c.Provide(inmemdb.NewTaskRepository))
		must(c.Provide(inmemdb.NewEventRepository))
		must(c.Provide(inmemdb.NewNoteRepository))
		must(c.Provide(inmemdb.NewGradeRepository))
		must(c.Provide(inmemdb.NewNotificationRepository))
	} else {
		must(c.Provide(newDB))
		must(c.Provide(sqlxrepos.NewAccountRepository, dig.As(new(account.Repository))))
		must(c.Provide(sqlxrepos.NewTaskRepository, dig.As(new(task.Repository))))
		must(c.Provide(sqlxrepos.NewEventRepository, dig.As(new(event.Repository))))
		must(c.Provide(sqlxrepos.NewNoteRepository, dig.As(new(note.Repository))))
		must(c.Provide(sqlxrepos.NewGradeRepository, dig.As(new(grade.Repository))))
		must(c.Provide(sqlxrepos.NewNotificationRepository, dig.As(new(notification.Repository))))
	}

	// services
	must(c.Provide(account.NewService))
	must(c.Provide(task.NewService))
	must(c.Provide(event.NewService))
	must(c.Provide(note.NewService))
	must(c.Provide(grade.NewService))
	must(c.Provide(notification.NewService))
	must(c.Provide(newCompleters))
	must(c.Provide(newGateway))

	must(c.Provide(newServer))

	return c
}

// must exits program if err happened
func must(err error) {
	if err != nil {
		log.Fatal(errors.Wrap(err, "failed to provide dependency").Error())
	}
}
