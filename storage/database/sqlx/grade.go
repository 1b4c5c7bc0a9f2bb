package sqlxrepos

import (
	"context"

	"github.com/Masterminds/squirrel"
	"github.com/volatiletech/null/v8"

	"github.com/Maar1i/Asistente-Escolar-APP/core"
	"github.com/Maar1i/Asistente-Escolar-APP/core/grade"
)

const gradeTable = "grades"

var gradeColumns = []string{"id", "user_id", "subject", "score"}

type gradeRepository struct {
	exec core.DBExecutor
}

var _ grade.Repository = (*gradeRepository)(nil)

func NewGradeRepository(exec core.DBExecutor) *gradeRepository {
	return &gradeRepository{exec: exec}
}

func (repo gradeRepository) CreateGrade(ctx context.Context, g grade.Grade) (grade.Grade, error) {
	q := psql.Insert(gradeTable).
		Columns("user_id", "subject", "score").
		Values(g.UserID, g.Subject, g.Score).
		Suffix("RETURNING " + joinColumns(gradeColumns))

	var created grade.Grade
	err := get(ctx, repo.exec, &created, q, core.ErrNotFound, "inserting grade")
	return created, err
}

func (repo gradeRepository) QueryGrades(ctx context.Context, userID int64) ([]grade.Grade, error) {
	q := psql.Select(gradeColumns...).
		From(gradeTable).
		Where(squirrel.Eq{"user_id": userID}).
		OrderBy("id")

	grades := make([]grade.Grade, 0)
	err := list(ctx, repo.exec, &grades, q, "querying grades")
	return grades, err
}

func (repo gradeRepository) OverallAverage(ctx context.Context, userID int64) (*float64, error) {
	q := psql.Select("AVG(score)").From(gradeTable).Where(squirrel.Eq{"user_id": userID})

	// AVG over zero rows is NULL
	var avg null.Float64
	if err := get(ctx, repo.exec, &avg, q, core.ErrNotFound, "averaging grades"); err != nil {
		return nil, err
	}
	return avg.Ptr(), nil
}

func (repo gradeRepository) AverageBySubject(ctx context.Context, userID int64) ([]grade.SubjectAverage, error) {
	q := psql.Select("subject", "AVG(score) AS average").
		From(gradeTable).
		Where(squirrel.Eq{"user_id": userID}).
		GroupBy("subject").
		OrderBy(`subject COLLATE "C"`) // byte order

	avgs := make([]grade.SubjectAverage, 0)
	err := list(ctx, repo.exec, &avgs, q, "averaging grades by subject")
	return avgs, err
}
