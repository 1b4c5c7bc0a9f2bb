package event

import (
	"context"

	"github.com/pkg/errors"

	"github.com/Maar1i/Asistente-Escolar-APP/core"
)

type (
	Repository interface {
		CreateEvent(ctx context.Context, e Event) (Event, error)
		GetEvent(ctx context.Context, id int64) (Event, error)
		// QueryEvents returns the events of userID ordered by date.
		QueryEvents(ctx context.Context, userID int64) ([]Event, error)
		DeleteEvent(ctx context.Context, id, userID int64) error
	}

	Service interface {
		Create(ctx context.Context, ownerID int64, ne NewEvent) (Event, error)
		List(ctx context.Context, ownerID int64) ([]Event, error)
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

func (svc *service) Create(ctx context.Context, ownerID int64, ne NewEvent) (Event, error) {
	date, err := core.ParseDate(ne.Date)
	if err != nil {
		return Event{}, core.NewValidationError(err, core.FieldError{Field: "date", Error: "enter a valid date"})
	}
	e, err := svc.repo.CreateEvent(ctx, Event{
		UserID: ownerID,
		Title:  ne.Title,
		Date:   date,
	})
	return e, errors.Wrap(err, "creating event")
}

func (svc *service) List(ctx context.Context, ownerID int64) ([]Event, error) {
	return svc.repo.QueryEvents(ctx, ownerID)
}

func (svc *service) Delete(ctx context.Context, ownerID, id int64) error {
	e, err := svc.repo.GetEvent(ctx, id)
	if err != nil {
		return err
	}
	if err = core.CheckOwner(e.UserID, ownerID); err != nil {
		return err
	}
	return svc.repo.DeleteEvent(ctx, id, ownerID)
}
