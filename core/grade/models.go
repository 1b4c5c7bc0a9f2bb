package grade

import (
	"github.com/go-playground/validator/v10"

	"github.com/Maar1i/Asistente-Escolar-APP/core"
)

type Grade struct {
	ID      int64   `db:"id" json:"id"`
	UserID  int64   `db:"user_id" json:"user_id"`
	Subject string  `db:"subject" json:"subject"`
	Score   float64 `db:"score" json:"score"`
}

type NewGrade struct {
	Subject string `form:"subject" validate:"notblank,max=100"`
	Score   string `form:"score" validate:"required,numeric"`
}

// Validate trims the score but never the subject: subjects are grouped by exact string equality.
func (ng *NewGrade) Validate(validate *validator.Validate) error {
	ng.Score = core.CleanString(ng.Score)
	return validate.Struct(ng)
}

// SubjectAverage is the mean score of one subject.
type SubjectAverage struct {
	Subject string  `db:"subject" json:"subject"`
	Average float64 `db:"average" json:"average"`
}

// Stats aggregates the grades of one account.
// Overall is nil when the account has no grades.
type Stats struct {
	Overall   *float64         `json:"overall"`
	BySubject []SubjectAverage `json:"by_subject"`
}
