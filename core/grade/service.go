package grade

import (
	"context"
	"strconv"

	"github.com/pkg/errors"

	"github.com/Maar1i/Asistente-Escolar-APP/core"
)

type (
	Repository interface {
		CreateGrade(ctx context.Context, g Grade) (Grade, error)
		QueryGrades(ctx context.Context, userID int64) ([]Grade, error)
		// OverallAverage returns nil when userID has no grades.
		OverallAverage(ctx context.Context, userID int64) (*float64, error)
		// AverageBySubject groups by the literal subject label, ordered by the subject bytes.
		AverageBySubject(ctx context.Context, userID int64) ([]SubjectAverage, error)
	}

	Service interface {
		Create(ctx context.Context, ownerID int64, ng NewGrade) (Grade, error)
		List(ctx context.Context, ownerID int64) ([]Grade, error)
		Stats(ctx context.Context, ownerID int64) (Stats, error)
	}

	service struct {
		repo Repository
	}
)

var _ Service = (*service)(nil)

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (svc *service) Create(ctx context.Context, ownerID int64, ng NewGrade) (Grade, error) {
	score, err := strconv.ParseFloat(ng.Score, 64)
	if err != nil {
		return Grade{}, core.NewValidationError(err, core.FieldError{Field: "score", Error: "enter a number"})
	}
	g, err := svc.repo.CreateGrade(ctx, Grade{
		UserID:  ownerID,
		Subject: ng.Subject,
		Score:   score,
	})
	return g, errors.Wrap(err, "creating grade")
}

func (svc *service) List(ctx context.Context, ownerID int64) ([]Grade, error) {
	return svc.repo.QueryGrades(ctx, ownerID)
}

func (svc *service) Stats(ctx context.Context, ownerID int64) (Stats, error) {
	overall, err := svc.repo.OverallAverage(ctx, ownerID)
	if err != nil {
		return Stats{}, errors.Wrap(err, "computing overall average")
	}
	bySubject, err := svc.repo.AverageBySubject(ctx, ownerID)
	if err != nil {
		return Stats{}, errors.Wrap(err, "computing averages by subject")
	}
	return Stats{Overall: overall, BySubject: bySubject}, nil
}
