// Package testutil holds helpers shared by the tests of every package.
package testutil

import (
	"context"
	"io"
	"log"
	"sync"
	"testing"
	"time"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"

	"github.com/Maar1i/Asistente-Escolar-APP/core"
	"github.com/Maar1i/Asistente-Escolar-APP/core/account"
	"github.com/Maar1i/Asistente-Escolar-APP/core/assistant"
	logsvc "github.com/Maar1i/Asistente-Escolar-APP/services/logger"
)

// NewConfig returns the configuration the tests run with.
func NewConfig() *core.Config {
	return &core.Config{
		Env:       "TEST",
		TestMode:  true,
		AppName:   "Asistente Escolar",
		Build:     "test",
		SecretKey: "test-secret",
		Session: core.SessionConfig{
			CookieName: "session",
			TTL:        time.Hour,
		},
		Assistant: core.AssistantConfig{Timeout: time.Second},
		Server: core.ServerConfig{
			DisableReqLogs: true,
			DisableCSRF:    true,
		},
	}
}

// NewLogger returns a logger that reports nowhere.
func NewLogger(conf *core.Config) core.Logger {
	logger := logsvc.NewRollbarLogger(log.New(io.Discard, "", 0), conf)
	logger.Enable(false)
	return logger
}

func NewValidator() (*validator.Validate, ut.Translator) {
	validate := validator.New()
	translator := core.NewTranslator()
	core.InitValidators(validate, translator)
	return validate, translator
}

func CreateAccount(t *testing.T, repo account.Repository, uname, pwd string) account.Account {
	t.Helper()

	acc := account.Account{
		Username:  uname,
		CreatedAt: time.Now().UTC(),
	}
	if err := acc.SetPassword(pwd); err != nil {
		t.Fatalf("CreateAccount() failed: %v", err)
	}
	acc, err := repo.CreateAccount(context.Background(), acc)
	if err != nil {
		t.Fatalf("CreateAccount() failed: %v", err)
	}
	return acc
}

// Completer records the requests it receives and answers with Answer, or fails with Err.
type Completer struct {
	mu       sync.Mutex
	requests []assistant.Request

	Answer string
	Err    error
}

var _ assistant.Completer = (*Completer)(nil)

func (c *Completer) Complete(_ context.Context, req assistant.Request) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.requests = append(c.requests, req)
	if c.Err != nil {
		return "", c.Err
	}
	return c.Answer, nil
}

func (c *Completer) Requests() []assistant.Request {
	c.mu.Lock()
	defer c.mu.Unlock()

	return append([]assistant.Request(nil), c.requests...)
}
