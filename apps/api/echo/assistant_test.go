package echoapi

import (
	"context"
	"net/http"
	"net/url"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Maar1i/Asistente-Escolar-APP/core/assistant"
	"github.com/Maar1i/Asistente-Escolar-APP/core/task"
)

func Test_assistantApi_search(t *testing.T) {
	app := setup(t)
	ana, session := app.register(t, "ana", "p1")
	cookies := []*http.Cookie{session}

	_, err := app.tasks.Create(context.Background(), ana.ID, task.NewTask{Title: "Homework", DueDate: "2025-01-10"})
	require.NoError(t, err)

	app.run(t, []httpTest{
		{name: "auth required", path: "/buscador", wantCode: http.StatusSeeOther, wantLocation: "/login"},
		{name: "form", path: "/buscador", cookies: cookies, wantCode: http.StatusOK, wantBody: []string{`action="/buscador"`}},
		{
			name: "empty question", method: http.MethodPost, path: "/buscador", form: url.Values{"question": {"  "}}, cookies: cookies,
			wantCode: http.StatusOK, wantBody: []string{"this field cannot be blank"},
		},
	})
	assert.Empty(t, app.grounded.Requests(), "provider called for an empty question")

	app.run(t, []httpTest{
		{
			name: "answer", method: http.MethodPost, path: "/buscador", form: url.Values{"question": {"What is pending?"}}, cookies: cookies,
			wantCode: http.StatusOK, wantBody: []string{"grounded answer", `value="What is pending?"`},
		},
	})

	reqs := app.grounded.Requests()
	require.Len(t, reqs, 1)
	assert.Equal(t, assistant.SystemInstruction, reqs[0].System)
	assert.Contains(t, reqs[0].Prompt, "Homework")
	assert.Contains(t, reqs[0].Prompt, "What is pending?")
	assert.Empty(t, app.direct.Requests())

	app.grounded.Err = errors.New("boom")
	app.run(t, []httpTest{
		{
			name: "provider failure", method: http.MethodPost, path: "/buscador", form: url.Values{"question": {"Anything?"}}, cookies: cookies,
			wantCode: http.StatusOK, wantBody: []string{"An error occurred with the AI: boom"},
		},
	})
}

func Test_assistantApi_ask(t *testing.T) {
	app := setup(t)
	_, session := app.register(t, "ana", "p1")
	cookies := []*http.Cookie{session}

	app.run(t, []httpTest{
		{name: "auth required", path: "/asistente", wantCode: http.StatusSeeOther, wantLocation: "/login"},
		{name: "form", path: "/asistente", cookies: cookies, wantCode: http.StatusOK, wantBody: []string{`action="/asistente"`}},
		{
			name: "answer", method: http.MethodPost, path: "/asistente", form: url.Values{"question": {" Explain photosynthesis "}}, cookies: cookies,
			wantCode: http.StatusOK, wantBody: []string{"direct answer"},
		},
	})

	reqs := app.direct.Requests()
	require.Len(t, reqs, 1)
	assert.Equal(t, "Explain photosynthesis", reqs[0].Prompt)
	assert.Empty(t, reqs[0].System)
	assert.Empty(t, app.grounded.Requests())

	app.direct.Err = context.DeadlineExceeded
	app.run(t, []httpTest{
		{
			name: "timeout", method: http.MethodPost, path: "/asistente", form: url.Values{"question": {"Hi"}}, cookies: cookies,
			wantCode: http.StatusOK, wantBody: []string{"An error occurred with the AI: context deadline exceeded"},
		},
	})
}
