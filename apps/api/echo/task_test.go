package echoapi

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Maar1i/Asistente-Escolar-APP/core/task"
)

func Test_taskApi_create(t *testing.T) {
	app := setup(t)
	ana, session := app.register(t, "ana", "p1")
	cookies := []*http.Cookie{session}

	form := func(title, due string) url.Values {
		return url.Values{"title": {title}, "due_date": {due}}
	}

	app.run(t, []httpTest{
		{name: "auth required", path: "/tareas", wantCode: http.StatusSeeOther, wantLocation: "/login"},
		{
			name: "auth required (create)", method: http.MethodPost, path: "/tarea/nueva", form: form("Homework", "2025-01-10"),
			wantCode: http.StatusSeeOther, wantLocation: "/login",
		},
		{name: "empty list", path: "/tareas", cookies: cookies, wantCode: http.StatusOK, wantBody: []string{"No tasks yet."}},
		{name: "form", path: "/tarea/nueva", cookies: cookies, wantCode: http.StatusOK, wantBody: []string{`action="/tarea/nueva"`}},
		{
			name: "blank title", method: http.MethodPost, path: "/tarea/nueva", form: form("  ", "2025-01-10"), cookies: cookies,
			wantCode: http.StatusOK, wantBody: []string{"this field cannot be blank"},
		},
		{
			name: "missing due date", method: http.MethodPost, path: "/tarea/nueva", form: form("Homework", ""), cookies: cookies,
			wantCode: http.StatusOK, wantBody: []string{"this field is required"},
		},
		{
			name: "invalid due date", method: http.MethodPost, path: "/tarea/nueva", form: form("Homework", "10/01/2025"), cookies: cookies,
			wantCode: http.StatusOK, wantBody: []string{"enter a valid date"},
		},
		{
			name: "title too long", method: http.MethodPost, path: "/tarea/nueva", form: form(strings.Repeat("a", 201), "2025-01-10"), cookies: cookies,
			wantCode: http.StatusOK, wantBody: []string{"title must be a maximum of 200 characters in length"},
		},
		{
			name: "create", method: http.MethodPost, path: "/tarea/nueva", form: form("Homework", "2025-01-10"), cookies: cookies,
			wantCode: http.StatusSeeOther, wantLocation: "/tareas",
		},
		{
			name: "list", path: "/tareas", cookies: cookies, wantCode: http.StatusOK,
			wantBody: []string{"Homework (10/01/2025)", `class="pending"`}, notInBody: []string{"No tasks yet."},
		},
	})

	tasks, err := app.tasks.List(context.Background(), ana.ID)
	require.NoError(t, err)
	require.Len(t, tasks, 1)
	assert.Equal(t, "Homework", tasks[0].Title)
	assert.Equal(t, "2025-01-10", tasks[0].DueDate.Format("2006-01-02"))
	assert.False(t, tasks[0].Completed)
	assert.Equal(t, ana.ID, tasks[0].UserID)
}

func Test_taskApi_listIsPerAccount(t *testing.T) {
	app := setup(t)
	ana, anaSession := app.register(t, "ana", "p1")
	bob, bobSession := app.register(t, "bob", "p2")

	ctx := context.Background()
	_, err := app.tasks.Create(ctx, ana.ID, task.NewTask{Title: "Essay", DueDate: "2025-03-01"})
	require.NoError(t, err)
	_, err = app.tasks.Create(ctx, ana.ID, task.NewTask{Title: "Homework", DueDate: "2025-01-10"})
	require.NoError(t, err)
	_, err = app.tasks.Create(ctx, bob.ID, task.NewTask{Title: "Lab report", DueDate: "2025-02-01"})
	require.NoError(t, err)

	rec := app.do(httpTest{path: "/tareas", cookies: []*http.Cookie{anaSession}})
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.NotContains(t, body, "Lab report")
	// ordered by due date
	assert.Less(t, indexOf(body, "Homework"), indexOf(body, "Essay"))

	app.run(t, []httpTest{
		{
			name: "bob only sees his", path: "/tareas", cookies: []*http.Cookie{bobSession}, wantCode: http.StatusOK,
			wantBody: []string{"Lab report"}, notInBody: []string{"Homework", "Essay"},
		},
	})
}

func Test_taskApi_toggle(t *testing.T) {
	app := setup(t)
	ana, anaSession := app.register(t, "ana", "p1")
	_, bobSession := app.register(t, "bob", "p2")

	ctx := context.Background()
	tsk, err := app.tasks.Create(ctx, ana.ID, task.NewTask{Title: "Homework", DueDate: "2025-01-10"})
	require.NoError(t, err)
	path := "/tarea/" + strconv.FormatInt(tsk.ID, 10) + "/completar"

	completed := func() bool {
		tasks, err := app.tasks.List(ctx, ana.ID)
		require.NoError(t, err)
		require.Len(t, tasks, 1)
		return tasks[0].Completed
	}

	app.run(t, []httpTest{
		{name: "other account", path: path, cookies: []*http.Cookie{bobSession}, wantCode: http.StatusFound, wantLocation: "/tareas"},
	})
	assert.False(t, completed(), "another account cannot toggle the task")

	app.run(t, []httpTest{{name: "toggle", path: path, cookies: []*http.Cookie{anaSession}, wantCode: http.StatusFound, wantLocation: "/tareas"}})
	assert.True(t, completed())

	rec := app.do(httpTest{path: "/tareas", cookies: []*http.Cookie{anaSession}})
	assert.Contains(t, rec.Body.String(), `class="done"`)

	app.run(t, []httpTest{{name: "toggle back", path: path, cookies: []*http.Cookie{anaSession}, wantCode: http.StatusFound, wantLocation: "/tareas"}})
	assert.False(t, completed(), "toggling twice restores the flag")

	app.run(t, []httpTest{
		{name: "not found", path: "/tarea/999/completar", cookies: []*http.Cookie{anaSession}, wantCode: http.StatusFound, wantLocation: "/tareas"},
		{name: "non-numeric id", path: "/tarea/abc/completar", cookies: []*http.Cookie{anaSession}, wantCode: http.StatusFound, wantLocation: "/tareas"},
	})
}

func Test_taskApi_destroy(t *testing.T) {
	app := setup(t)
	ana, anaSession := app.register(t, "ana", "p1")
	_, bobSession := app.register(t, "bob", "p2")

	ctx := context.Background()
	tsk, err := app.tasks.Create(ctx, ana.ID, task.NewTask{Title: "Homework", DueDate: "2025-01-10"})
	require.NoError(t, err)
	path := "/tarea/" + strconv.FormatInt(tsk.ID, 10) + "/eliminar"

	// another account is redirected silently and nothing changes
	rec := app.do(httpTest{path: path, cookies: []*http.Cookie{bobSession}})
	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/tareas", rec.Header().Get("Location"))
	assert.Nil(t, getCookie(rec, flashCookie))

	tasks, err := app.tasks.List(ctx, ana.ID)
	require.NoError(t, err)
	assert.Len(t, tasks, 1)

	// a missing task looks the same
	rec = app.do(httpTest{path: "/tarea/999/eliminar", cookies: []*http.Cookie{anaSession}})
	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Nil(t, getCookie(rec, flashCookie))

	// the owner deletes it
	rec = app.do(httpTest{path: path, cookies: []*http.Cookie{anaSession}})
	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/tareas", rec.Header().Get("Location"))
	flash := getCookie(rec, flashCookie)
	require.NotNil(t, flash)

	tasks, err = app.tasks.List(ctx, ana.ID)
	require.NoError(t, err)
	assert.Empty(t, tasks)

	app.run(t, []httpTest{
		{
			name: "flash shown after delete", path: "/tareas", cookies: []*http.Cookie{anaSession, flash},
			wantCode: http.StatusOK, wantBody: []string{msgTaskDeleted, "No tasks yet."},
		},
	})
}
