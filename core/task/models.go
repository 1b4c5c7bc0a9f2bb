package task

import (
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/Maar1i/Asistente-Escolar-APP/core"
)

type Task struct {
	ID        int64     `db:"id" json:"id"`
	UserID    int64     `db:"user_id" json:"user_id"`
	Title     string    `db:"title" json:"title"`
	DueDate   time.Time `db:"due_date" json:"due_date"`
	Completed bool      `db:"completed" json:"completed"`
}

// NewTask is submitted by the new task form.
type NewTask struct {
	Title   string `form:"title" validate:"notblank,max=200"`
	DueDate string `form:"due_date" validate:"required,datetime=2006-01-02"`
}

func (nt *NewTask) Validate(validate *validator.Validate) error {
	nt.Title = core.CleanString(nt.Title)
	nt.DueDate = core.CleanString(nt.DueDate)
	return validate.Struct(nt)
}

// QueryFilter narrows the tasks of one account.
type QueryFilter struct {
	UserID    int64
	Completed *bool
}
