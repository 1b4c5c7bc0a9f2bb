package inmemdb

import (
	"context"
	"sort"

	"github.com/Maar1i/Asistente-Escolar-APP/core/grade"
)

type gradeRepository struct {
	db *table[grade.Grade]
}

var _ grade.Repository = (*gradeRepository)(nil)

func NewGradeRepository(db *DB) grade.Repository {
	return &gradeRepository{db: db.grade}
}

func (repo *gradeRepository) CreateGrade(_ context.Context, g grade.Grade) (grade.Grade, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	g.ID = repo.db.nextID()
	repo.db.rows[g.ID] = &g
	return g, nil
}

func (repo *gradeRepository) QueryGrades(_ context.Context, userID int64) ([]grade.Grade, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	return repo.db.filter(func(g grade.Grade) bool { return g.UserID == userID }), nil
}

func (repo *gradeRepository) OverallAverage(ctx context.Context, userID int64) (*float64, error) {
	grades, _ := repo.QueryGrades(ctx, userID)
	if len(grades) == 0 {
		return nil, nil
	}
	var sum float64
	for _, g := range grades {
		sum += g.Score
	}
	avg := sum / float64(len(grades))
	return &avg, nil
}

func (repo *gradeRepository) AverageBySubject(ctx context.Context, userID int64) ([]grade.SubjectAverage, error) {
	grades, _ := repo.QueryGrades(ctx, userID)

	type acc struct {
		sum float64
		n   int
	}
	groups := make(map[string]*acc)
	for _, g := range grades {
		a, ok := groups[g.Subject]
		if !ok {
			a = new(acc)
			groups[g.Subject] = a
		}
		a.sum += g.Score
		a.n++
	}

	avgs := make([]grade.SubjectAverage, 0, len(groups))
	for subject, a := range groups {
		avgs = append(avgs, grade.SubjectAverage{Subject: subject, Average: a.sum / float64(a.n)})
	}
	sort.Slice(avgs, func(i, j int) bool { return avgs[i].Subject < avgs[j].Subject })
	return avgs, nil
}
