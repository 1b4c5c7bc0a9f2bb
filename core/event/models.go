package event

import (
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/Maar1i/Asistente-Escolar-APP/core"
)

// Event is a calendar entry. Events are immutable once created.
type Event struct {
	ID     int64     `db:"id" json:"id"`
	UserID int64     `db:"user_id" json:"user_id"`
	Title  string    `db:"title" json:"title"`
	Date   time.Time `db:"date" json:"date"`
}

type NewEvent struct {
	Title string `form:"title" validate:"notblank,max=200"`
	Date  string `form:"date" validate:"required,datetime=2006-01-02"`
}

func (ne *NewEvent) Validate(validate *validator.Validate) error {
	ne.Title = core.CleanString(ne.Title)
	ne.Date = core.CleanString(ne.Date)
	return validate.Struct(ne)
}
