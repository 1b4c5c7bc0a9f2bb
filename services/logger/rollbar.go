// Package logsvc reports application log entries to Rollbar and to a std logger.
package logsvc

import (
	"log"
	"strconv"

	"github.com/rollbar/rollbar-go"
	"github.com/rollbar/rollbar-go/errors"

	"github.com/Maar1i/Asistente-Escolar-APP/core"
	"github.com/Maar1i/Asistente-Escolar-APP/core/account"
)

// RollbarLogger prints every entry and forwards it to Rollbar while reporting is enabled.
// An account.Account among the args becomes the Rollbar person of the entry.
type RollbarLogger struct {
	std *log.Logger
}

var _ core.Logger = (*RollbarLogger)(nil)

func NewRollbarLogger(std *log.Logger, conf *core.Config) *RollbarLogger {
	rollbar.SetToken(conf.RollbarToken)
	rollbar.SetEnvironment(conf.Env)
	rollbar.SetServerHost(conf.Server.Host)
	rollbar.SetCodeVersion(conf.Build)
	rollbar.SetStackTracer(errors.StackTracer)
	return &RollbarLogger{std: std}
}

// Enable turns reporting to Rollbar on or off.
func (l RollbarLogger) Enable(enabled bool) {
	rollbar.SetEnabled(enabled)
}

// splitAccount separates the first account of args from the other args.
func splitAccount(args []interface{}) (*account.Account, []interface{}) {
	var acc *account.Account
	rest := make([]interface{}, 0, len(args))
	for _, arg := range args {
		if a, ok := arg.(account.Account); ok {
			if acc == nil {
				acc = &a
			}
			continue
		}
		rest = append(rest, arg)
	}
	return acc, rest
}

func (l RollbarLogger) log(level, msg string, args []interface{}) {
	acc, rest := splitAccount(args)

	// accounts have no email
	if acc != nil {
		rollbar.SetPerson(strconv.FormatInt(acc.ID, 10), acc.Username, "")
	} else {
		rollbar.ClearPerson()
	}
	rollbar.Log(level, append([]interface{}{msg}, rest...)...)

	if acc != nil {
		l.std.Printf("[%s] %s (account %d %s)", level, msg, acc.ID, acc.Username)
	} else {
		l.std.Printf("[%s] %s", level, msg)
	}
	for _, arg := range rest {
		l.std.Printf("%+v", arg)
	}
}

func (l RollbarLogger) Debug(msg string, args ...interface{}) { l.log(rollbar.DEBUG, msg, args) }
func (l RollbarLogger) Info(msg string, args ...interface{})  { l.log(rollbar.INFO, msg, args) }
func (l RollbarLogger) Warn(msg string, args ...interface{})  { l.log(rollbar.WARN, msg, args) }
func (l RollbarLogger) Error(msg string, args ...interface{}) { l.log(rollbar.ERR, msg, args) }

// Fatal reports msg as critical then exits.
func (l RollbarLogger) Fatal(msg string, args ...interface{}) {
	l.log(rollbar.CRIT, msg, args)
	rollbar.Wait()
	l.std.Fatal(msg)
}
