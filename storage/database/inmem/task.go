package inmemdb

import (
	"context"
	"sort"

	"github.com/Maar1i/Asistente-Escolar-APP/core"
	"github.com/Maar1i/Asistente-Escolar-APP/core/task"
)

type taskRepository struct {
	db *table[task.Task]
}

var _ task.Repository = (*taskRepository)(nil)

func NewTaskRepository(db *DB) task.Repository {
	return &taskRepository{db: db.task}
}

func (repo *taskRepository) CreateTask(_ context.Context, t task.Task) (task.Task, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	t.ID = repo.db.nextID()
	repo.db.rows[t.ID] = &t
	return t, nil
}

func (repo *taskRepository) GetTask(_ context.Context, id int64) (task.Task, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	if t, ok := repo.db.rows[id]; ok {
		return *t, nil
	}
	return task.Task{}, core.ErrNotFound
}

func (repo *taskRepository) QueryTasks(_ context.Context, filter task.QueryFilter) ([]task.Task, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	tasks := repo.db.filter(func(t task.Task) bool {
		if t.UserID != filter.UserID {
			return false
		}
		return filter.Completed == nil || t.Completed == *filter.Completed
	})
	sort.SliceStable(tasks, func(i, j int) bool { return tasks[i].DueDate.Before(tasks[j].DueDate) })
	return tasks, nil
}

func (repo *taskRepository) ToggleTaskCompleted(_ context.Context, id, userID int64) (task.Task, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	t, ok := repo.db.rows[id]
	if !ok || t.UserID != userID {
		return task.Task{}, core.ErrNotFound
	}
	t.Completed = !t.Completed
	return *t, nil
}

func (repo *taskRepository) DeleteTask(_ context.Context, id, userID int64) error {
	repo.db.Lock()
	defer repo.db.Unlock()

	if t, ok := repo.db.rows[id]; !ok || t.UserID != userID {
		return core.ErrNotFound
	}
	delete(repo.db.rows, id)
	return nil
}
