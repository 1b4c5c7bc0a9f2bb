package sqlxrepos

import (
	"context"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/Maar1i/Asistente-Escolar-APP/core"
	"github.com/Maar1i/Asistente-Escolar-APP/core/notification"
)

const notificationTable = "notifications"

var notificationColumns = []string{"id", "user_id", "message", "notify_at"}

type notificationRepository struct {
	exec core.DBExecutor
}

var _ notification.Repository = (*notificationRepository)(nil)

func NewNotificationRepository(exec core.DBExecutor) *notificationRepository {
	return &notificationRepository{exec: exec}
}

func (repo notificationRepository) CreateNotification(ctx context.Context, n notification.Notification) (notification.Notification, error) {
	q := psql.Insert(notificationTable).
		Columns("user_id", "message", "notify_at").
		Values(n.UserID, n.Message, n.NotifyAt.UTC()).
		Suffix("RETURNING " + joinColumns(notificationColumns))

	var created notification.Notification
	err := get(ctx, repo.exec, &created, q, core.ErrNotFound, "inserting notification")
	return created, err
}

func (repo notificationRepository) GetNotification(ctx context.Context, id int64) (notification.Notification, error) {
	q := psql.Select(notificationColumns...).From(notificationTable).Where(squirrel.Eq{"id": id})

	var n notification.Notification
	err := get(ctx, repo.exec, &n, q, core.ErrNotFound, "finding notification")
	return n, err
}

func (repo notificationRepository) QueryNotifications(ctx context.Context, userID int64, from time.Time) ([]notification.Notification, error) {
	q := psql.Select(notificationColumns...).
		From(notificationTable).
		Where(squirrel.Eq{"user_id": userID}).
		Where(squirrel.GtOrEq{"notify_at": from.UTC()}).
		OrderBy("notify_at", "id")

	notifs := make([]notification.Notification, 0)
	err := list(ctx, repo.exec, &notifs, q, "querying notifications")
	return notifs, err
}

func (repo notificationRepository) DeleteNotification(ctx context.Context, id, userID int64) error {
	q := psql.Delete(notificationTable).Where(squirrel.Eq{"id": id, "user_id": userID})
	return execOne(ctx, repo.exec, q, core.ErrNotFound, "deleting notification")
}
