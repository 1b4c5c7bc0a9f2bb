package grade_test

import (
	"context"
	"strings"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Maar1i/Asistente-Escolar-APP/core"
	"github.com/Maar1i/Asistente-Escolar-APP/core/grade"
	inmemdb "github.com/Maar1i/Asistente-Escolar-APP/storage/database/inmem"
	"github.com/Maar1i/Asistente-Escolar-APP/tests"
)

func TestNewGrade_Validate(t *testing.T) {
	validate, translator := testutil.NewValidator()

	tests := []struct {
		name    string
		in      grade.NewGrade
		wantErr map[string]string
	}{
		{"valid", grade.NewGrade{Subject: "Math", Score: " 8.5 "}, nil},
		{"negative", grade.NewGrade{Subject: "Math", Score: "-1"}, nil},
		{"blank subject", grade.NewGrade{Subject: " ", Score: "8"}, map[string]string{"subject": "this field cannot be blank"}},
		{"missing score", grade.NewGrade{Subject: "Math"}, map[string]string{"score": "this field is required"}},
		{"not a number", grade.NewGrade{Subject: "Math", Score: "eight"}, map[string]string{"score": "enter a number"}},
		{"subject too long", grade.NewGrade{Subject: strings.Repeat("a", 101), Score: "8"}, map[string]string{"subject": "subject must be a maximum of 100 characters in length"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.in.Validate(validate)
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.Equal(t, tt.wantErr, core.FieldMessages(err, translator))
		})
	}
}

func TestNewGrade_Validate_keepsSubject(t *testing.T) {
	validate, _ := testutil.NewValidator()

	ng := grade.NewGrade{Subject: " Math ", Score: "7"}
	require.NoError(t, ng.Validate(validate))
	assert.Equal(t, " Math ", ng.Subject)
}

func TestService_Stats(t *testing.T) {
	svc := grade.NewService(inmemdb.NewGradeRepository(inmemdb.Open()))
	ctx := context.Background()

	stats, err := svc.Stats(ctx, 1)
	require.NoError(t, err)
	assert.Nil(t, stats.Overall)
	assert.Empty(t, stats.BySubject)

	for _, ng := range []grade.NewGrade{
		{Subject: "Math", Score: "8"},
		{Subject: "math", Score: "6"},
		{Subject: "Math", Score: "10"},
	} {
		_, err = svc.Create(ctx, 1, ng)
		require.NoError(t, err)
	}
	_, err = svc.Create(ctx, 2, grade.NewGrade{Subject: "Math", Score: "1"})
	require.NoError(t, err)

	stats, err = svc.Stats(ctx, 1)
	require.NoError(t, err)
	require.NotNil(t, stats.Overall)
	assert.InDelta(t, 8.0, *stats.Overall, 1e-9)
	assert.Equal(t, []grade.SubjectAverage{
		{Subject: "Math", Average: 9},
		{Subject: "math", Average: 6},
	}, stats.BySubject)

	grades, err := svc.List(ctx, 1)
	require.NoError(t, err)
	assert.Len(t, grades, 3)
}

func TestService_Create_invalidScore(t *testing.T) {
	svc := grade.NewService(inmemdb.NewGradeRepository(inmemdb.Open()))

	_, err := svc.Create(context.Background(), 1, grade.NewGrade{Subject: "Math", Score: "n/a"})
	var vErr *core.ValidationError
	require.True(t, errors.As(err, &vErr))
	assert.Equal(t, []core.FieldError{{Field: "score", Error: "enter a number"}}, vErr.Fields)
}
