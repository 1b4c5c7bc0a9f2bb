package inmemdb

import (
	"context"
	"sort"

	"github.com/Maar1i/Asistente-Escolar-APP/core"
	"github.com/Maar1i/Asistente-Escolar-APP/core/event"
)

type eventRepository struct {
	db *table[event.Event]
}

var _ event.Repository = (*eventRepository)(nil)

func NewEventRepository(db *DB) event.Repository {
	return &eventRepository{db: db.event}
}

func (repo *eventRepository) CreateEvent(_ context.Context, e event.Event) (event.Event, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	e.ID = repo.db.nextID()
	repo.db.rows[e.ID] = &e
	return e, nil
}

func (repo *eventRepository) GetEvent(_ context.Context, id int64) (event.Event, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	if e, ok := repo.db.rows[id]; ok {
		return *e, nil
	}
	return event.Event{}, core.ErrNotFound
}

func (repo *eventRepository) QueryEvents(_ context.Context, userID int64) ([]event.Event, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	events := repo.db.filter(func(e event.Event) bool { return e.UserID == userID })
	sort.SliceStable(events, func(i, j int) bool { return events[i].Date.Before(events[j].Date) })
	return events, nil
}

func (repo *eventRepository) DeleteEvent(_ context.Context, id, userID int64) error {
	repo.db.Lock()
	defer repo.db.Unlock()

	if e, ok := repo.db.rows[id]; !ok || e.UserID != userID {
		return core.ErrNotFound
	}
	delete(repo.db.rows, id)
	return nil
}
