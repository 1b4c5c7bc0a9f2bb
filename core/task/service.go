package task

import (
	"context"

	"github.com/pkg/errors"

	"github.com/Maar1i/Asistente-Escolar-APP/core"
)

type (
	Repository interface {
		CreateTask(ctx context.Context, t Task) (Task, error)
		// GetTask returns core.ErrNotFound when no task has the given ID.
		GetTask(ctx context.Context, id int64) (Task, error)
		// QueryTasks returns the tasks matching filter ordered by due date.
		QueryTasks(ctx context.Context, filter QueryFilter) ([]Task, error)
		ToggleTaskCompleted(ctx context.Context, id, userID int64) (Task, error)
		DeleteTask(ctx context.Context, id, userID int64) error
	}

	Service interface {
		Create(ctx context.Context, ownerID int64, nt NewTask) (Task, error)
		List(ctx context.Context, ownerID int64) ([]Task, error)
		ListPending(ctx context.Context, ownerID int64) ([]Task, error)
		ToggleComplete(ctx context.Context, ownerID, id int64) (Task, error)
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

func (svc *service) Create(ctx context.Context, ownerID int64, nt NewTask) (Task, error) {
	due, err := core.ParseDate(nt.DueDate)
	if err != nil {
		return Task{}, core.NewValidationError(err, core.FieldError{Field: "due_date", Error: "enter a valid date"})
	}
	t, err := svc.repo.CreateTask(ctx, Task{
		UserID:  ownerID,
		Title:   nt.Title,
		DueDate: due,
	})
	return t, errors.Wrap(err, "creating task")
}

func (svc *service) List(ctx context.Context, ownerID int64) ([]Task, error) {
	return svc.repo.QueryTasks(ctx, QueryFilter{UserID: ownerID})
}

func (svc *service) ListPending(ctx context.Context, ownerID int64) ([]Task, error) {
	pending := false
	return svc.repo.QueryTasks(ctx, QueryFilter{UserID: ownerID, Completed: &pending})
}

// owned fetches the task and checks that it belongs to ownerID.
func (svc *service) owned(ctx context.Context, ownerID, id int64) (Task, error) {
	t, err := svc.repo.GetTask(ctx, id)
	if err != nil {
		return Task{}, err
	}
	if err = core.CheckOwner(t.UserID, ownerID); err != nil {
		return Task{}, err
	}
	return t, nil
}

func (svc *service) ToggleComplete(ctx context.Context, ownerID, id int64) (Task, error) {
	if _, err := svc.owned(ctx, ownerID, id); err != nil {
		return Task{}, err
	}
	return svc.repo.ToggleTaskCompleted(ctx, id, ownerID)
}

func (svc *service) Delete(ctx context.Context, ownerID, id int64) error {
	if _, err := svc.owned(ctx, ownerID, id); err != nil {
		return err
	}
	return svc.repo.DeleteTask(ctx, id, ownerID)
}
