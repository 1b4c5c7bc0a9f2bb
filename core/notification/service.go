package notification

import (
	"context"
	"time"

	"github.com/pkg/errors"

	"github.com/Maar1i/Asistente-Escolar-APP/core"
)

type (
	Repository interface {
		CreateNotification(ctx context.Context, n Notification) (Notification, error)
		GetNotification(ctx context.Context, id int64) (Notification, error)
		// QueryNotifications returns the notifications of userID scheduled at or after `from`, soonest first.
		QueryNotifications(ctx context.Context, userID int64, from time.Time) ([]Notification, error)
		DeleteNotification(ctx context.Context, id, userID int64) error
	}

	Service interface {
		Create(ctx context.Context, ownerID int64, nn NewNotification) (Notification, error)
		ListUpcoming(ctx context.Context, ownerID int64) ([]Notification, error)
		Delete(ctx context.Context, ownerID, id int64) error
	}

	service struct {
		repo Repository
	}
)

var _ Service = (*service)(nil)

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (svc *service) Create(ctx context.Context, ownerID int64, nn NewNotification) (Notification, error) {
	at, err := core.ParseDateTime(nn.NotifyAt)
	if err != nil {
		return Notification{}, core.NewValidationError(err, core.FieldError{Field: "notify_at", Error: "enter a valid date"})
	}
	n, err := svc.repo.CreateNotification(ctx, Notification{
		UserID:   ownerID,
		Message:  nn.Message,
		NotifyAt: at,
	})
	return n, errors.Wrap(err, "creating notification")
}

func (svc *service) ListUpcoming(ctx context.Context, ownerID int64) ([]Notification, error) {
	return svc.repo.QueryNotifications(ctx, ownerID, core.NowFunc().UTC())
}

func (svc *service) Delete(ctx context.Context, ownerID, id int64) error {
	n, err := svc.repo.GetNotification(ctx, id)
	if err != nil {
		return err
	}
	if err = core.CheckOwner(n.UserID, ownerID); err != nil {
		return err
	}
	return svc.repo.DeleteNotification(ctx, id, ownerID)
}
