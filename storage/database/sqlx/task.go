package sqlxrepos

import (
	"context"

	"github.com/Masterminds/squirrel"

	"github.com/Maar1i/Asistente-Escolar-APP/core"
	"github.com/Maar1i/Asistente-Escolar-APP/core/task"
)

const taskTable = "tasks"

var taskColumns = []string{"id", "user_id", "title", "due_date", "completed"}

type taskRepository struct {
	exec core.DBExecutor
}

var _ task.Repository = (*taskRepository)(nil)

func NewTaskRepository(exec core.DBExecutor) *taskRepository {
	return &taskRepository{exec: exec}
}

func (repo taskRepository) CreateTask(ctx context.Context, t task.Task) (task.Task, error) {
	q := psql.Insert(taskTable).
		Columns("user_id", "title", "due_date", "completed").
		Values(t.UserID, t.Title, t.DueDate, t.Completed).
		Suffix("RETURNING " + joinColumns(taskColumns))

	var created task.Task
	err := get(ctx, repo.exec, &created, q, core.ErrNotFound, "inserting task")
	return created, err
}

func (repo taskRepository) GetTask(ctx context.Context, id int64) (task.Task, error) {
	q := psql.Select(taskColumns...).From(taskTable).Where(squirrel.Eq{"id": id})

	var t task.Task
	err := get(ctx, repo.exec, &t, q, core.ErrNotFound, "finding task")
	return t, err
}

func (repo taskRepository) QueryTasks(ctx context.Context, filter task.QueryFilter) ([]task.Task, error) {
	q := psql.Select(taskColumns...).From(taskTable).Where(squirrel.Eq{"user_id": filter.UserID})
	if filter.Completed != nil {
		q = q.Where(squirrel.Eq{"completed": *filter.Completed})
	}
	q = q.OrderBy("due_date", "id")

	tasks := make([]task.Task, 0)
	err := list(ctx, repo.exec, &tasks, q, "querying tasks")
	return tasks, err
}

func (repo taskRepository) ToggleTaskCompleted(ctx context.Context, id, userID int64) (task.Task, error) {
	q := psql.Update(taskTable).
		Set("completed", squirrel.Expr("NOT completed")).
		Where(squirrel.Eq{"id": id, "user_id": userID}).
		Suffix("RETURNING " + joinColumns(taskColumns))

	var t task.Task
	err := get(ctx, repo.exec, &t, q, core.ErrNotFound, "toggling task")
	return t, err
}

func (repo taskRepository) DeleteTask(ctx context.Context, id, userID int64) error {
	q := psql.Delete(taskTable).Where(squirrel.Eq{"id": id, "user_id": userID})
	return execOne(ctx, repo.exec, q, core.ErrNotFound, "deleting task")
}
