package note

import (
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/Maar1i/Asistente-Escolar-APP/core"
)

type Note struct {
	ID        int64     `db:"id" json:"id"`
	UserID    int64     `db:"user_id" json:"user_id"`
	Content   string    `db:"content" json:"content"`
	Tag       string    `db:"tag" json:"tag,omitempty"` // subject or label, optional
	CreatedAt time.Time `db:"created_at" json:"created_at"` // UTC
}

type NewNote struct {
	Content string `form:"content" validate:"notblank"`
	Tag     string `form:"tag" validate:"max=100"`
}

func (nn *NewNote) Validate(validate *validator.Validate) error {
	nn.Content = core.CleanString(nn.Content)
	nn.Tag = core.CleanString(nn.Tag)
	return validate.Struct(nn)
}
