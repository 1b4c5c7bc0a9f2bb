package sqlxrepos

import (
	"context"

	"github.com/Masterminds/squirrel"

	"github.com/Maar1i/Asistente-Escolar-APP/core"
	"github.com/Maar1i/Asistente-Escolar-APP/core/event"
)

const eventTable = "events"

var eventColumns = []string{"id", "user_id", "title", "date"}

type eventRepository struct {
	exec core.DBExecutor
}

var _ event.Repository = (*eventRepository)(nil)

func NewEventRepository(exec core.DBExecutor) *eventRepository {
	return &eventRepository{exec: exec}
}

func (repo eventRepository) CreateEvent(ctx context.Context, e event.Event) (event.Event, error) {
	q := psql.Insert(eventTable).
		Columns("user_id", "title", "date").
		Values(e.UserID, e.Title, e.Date).
		Suffix("RETURNING " + joinColumns(eventColumns))

	var created event.Event
	err := get(ctx, repo.exec, &created, q, core.ErrNotFound, "inserting event")
	return created, err
}

func (repo eventRepository) GetEvent(ctx context.Context, id int64) (event.Event, error) {
	q := psql.Select(eventColumns...).From(eventTable).Where(squirrel.Eq{"id": id})

	var e event.Event
	err := get(ctx, repo.exec, &e, q, core.ErrNotFound, "finding event")
	return e, err
}

func (repo eventRepository) QueryEvents(ctx context.Context, userID int64) ([]event.Event, error) {
	q := psql.Select(eventColumns...).
		From(eventTable).
		Where(squirrel.Eq{"user_id": userID}).
		OrderBy("date", "id")

	events := make([]event.Event, 0)
	err := list(ctx, repo.exec, &events, q, "querying events")
	return events, err
}

func (repo eventRepository) DeleteEvent(ctx context.Context, id, userID int64) error {
	q := psql.Delete(eventTable).Where(squirrel.Eq{"id": id, "user_id": userID})
	return execOne(ctx, repo.exec, q, core.ErrNotFound, "deleting event")
}
