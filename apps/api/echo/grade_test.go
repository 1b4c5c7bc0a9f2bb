package echoapi

import (
	"context"
	"net/http"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_gradeApi(t *testing.T) {
	app := setup(t)
	ana, anaSession := app.register(t, "ana", "p1")
	_, bobSession := app.register(t, "bob", "p2")
	cookies := []*http.Cookie{anaSession}

	form := func(subject, score string) url.Values {
		return url.Values{"subject": {subject}, "score": {score}}
	}

	app.run(t, []httpTest{
		{name: "auth required", path: "/estadisticas", wantCode: http.StatusSeeOther, wantLocation: "/login"},
		{name: "no grades", path: "/estadisticas", cookies: cookies, wantCode: http.StatusOK, wantBody: []string{"No grades yet."}},
		{
			name: "score not a number", method: http.MethodPost, path: "/estadisticas", form: form("Math", "abc"), cookies: cookies,
			wantCode: http.StatusOK, wantBody: []string{"enter a number", `value="abc"`},
		},
		{
			name: "missing score", method: http.MethodPost, path: "/estadisticas", form: form("Math", ""), cookies: cookies,
			wantCode: http.StatusOK, wantBody: []string{"this field is required"},
		},
		{
			name: "blank subject", method: http.MethodPost, path: "/estadisticas", form: form("  ", "7"), cookies: cookies,
			wantCode: http.StatusOK, wantBody: []string{"this field cannot be blank"},
		},
		{
			name: "subject too long", method: http.MethodPost, path: "/estadisticas", form: form(strings.Repeat("a", 101), "7"), cookies: cookies,
			wantCode: http.StatusOK, wantBody: []string{"subject must be a maximum of 100 characters in length"},
		},
		{name: "Math 8", method: http.MethodPost, path: "/estadisticas", form: form("Math", "8"), cookies: cookies, wantCode: http.StatusSeeOther, wantLocation: "/estadisticas"},
		{name: "math 6", method: http.MethodPost, path: "/estadisticas", form: form("math", "6"), cookies: cookies, wantCode: http.StatusSeeOther, wantLocation: "/estadisticas"},
		{name: "Math 10", method: http.MethodPost, path: "/estadisticas", form: form("Math", " 10 "), cookies: cookies, wantCode: http.StatusSeeOther, wantLocation: "/estadisticas"},
		{
			name: "averages", path: "/estadisticas", cookies: cookies, wantCode: http.StatusOK,
			wantBody:  []string{"Overall average: 8.00", "Math: 9.00", "math: 6.00", "Math: 10.00"},
			notInBody: []string{"No grades yet."},
		},
		{name: "other account", path: "/estadisticas", cookies: []*http.Cookie{bobSession}, wantCode: http.StatusOK, wantBody: []string{"No grades yet."}},
	})

	stats, err := app.grades.Stats(context.Background(), ana.ID)
	require.NoError(t, err)
	require.NotNil(t, stats.Overall)
	assert.InDelta(t, 8.0, *stats.Overall, 1e-9)
	require.Len(t, stats.BySubject, 2)
	assert.Equal(t, "Math", stats.BySubject[0].Subject)
	assert.InDelta(t, 9.0, stats.BySubject[0].Average, 1e-9)
	assert.Equal(t, "math", stats.BySubject[1].Subject)
}
