package logsvc

import (
	"bytes"
	"errors"
	"log"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Maar1i/Asistente-Escolar-APP/core"
	"github.com/Maar1i/Asistente-Escolar-APP/core/account"
)

func Test_splitAccount(t *testing.T) {
	ana := account.Account{ID: 1, Username: "ana"}
	bob := account.Account{ID: 2, Username: "bob"}
	err := errors.New("boom")

	tests := []struct {
		name     string
		args     []interface{}
		wantAcc  *account.Account
		wantRest []interface{}
	}{
		{"no args", nil, nil, []interface{}{}},
		{"no account", []interface{}{err}, nil, []interface{}{err}},
		{"account among args", []interface{}{err, ana}, &ana, []interface{}{err}},
		{"first account wins", []interface{}{bob, ana}, &bob, []interface{}{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			acc, rest := splitAccount(tt.args)
			assert.Equal(t, tt.wantAcc, acc)
			assert.Equal(t, tt.wantRest, rest)
		})
	}
}

func TestRollbarLogger(t *testing.T) {
	buf := new(bytes.Buffer)
	logger := NewRollbarLogger(log.New(buf, "", 0), &core.Config{Env: "TEST"})
	logger.Enable(false)

	logger.Warn("completion failed", errors.New("timeout"), account.Account{ID: 7, Username: "ana"})
	logger.Info("started")

	assert.Equal(t, "[warning] completion failed (account 7 ana)\ntimeout\n[info] started\n", buf.String())
}
