package notification

import (
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/Maar1i/Asistente-Escolar-APP/core"
)

// Notification is a reminder scheduled by the student. Notifications are
// listed until NotifyAt has passed; nothing delivers them.
type Notification struct {
	ID       int64     `db:"id" json:"id"`
	UserID   int64     `db:"user_id" json:"user_id"`
	Message  string    `db:"message" json:"message"`
	NotifyAt time.Time `db:"notify_at" json:"notify_at"` // UTC
}

type NewNotification struct {
	Message  string `form:"message" validate:"notblank,max=200"`
	NotifyAt string `form:"notify_at" validate:"required,datetime=2006-01-02T15:04"`
}

func (nn *NewNotification) Validate(validate *validator.Validate) error {
	nn.Message = core.CleanString(nn.Message)
	nn.NotifyAt = core.CleanString(nn.NotifyAt)
	return validate.Struct(nn)
}
