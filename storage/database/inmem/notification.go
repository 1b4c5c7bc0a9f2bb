package inmemdb

import (
	"context"
	"sort"
	"time"

	"github.com/Maar1i/Asistente-Escolar-APP/core"
	"github.com/Maar1i/Asistente-Escolar-APP/core/notification"
)

type notificationRepository struct {
	db *table[notification.Notification]
}

var _ notification.Repository = (*notificationRepository)(nil)

func NewNotificationRepository(db *DB) notification.Repository {
	return &notificationRepository{db: db.notification}
}

func (repo *notificationRepository) CreateNotification(_ context.Context, n notification.Notification) (notification.Notification, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	n.ID = repo.db.nextID()
	repo.db.rows[n.ID] = &n
	return n, nil
}

func (repo *notificationRepository) GetNotification(_ context.Context, id int64) (notification.Notification, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	if n, ok := repo.db.rows[id]; ok {
		return *n, nil
	}
	return notification.Notification{}, core.ErrNotFound
}

func (repo *notificationRepository) QueryNotifications(_ context.Context, userID int64, from time.Time) ([]notification.Notification, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	notifs := repo.db.filter(func(n notification.Notification) bool {
		return n.UserID == userID && !n.NotifyAt.Before(from)
	})
	sort.SliceStable(notifs, func(i, j int) bool { return notifs[i].NotifyAt.Before(notifs[j].NotifyAt) })
	return notifs, nil
}

func (repo *notificationRepository) DeleteNotification(_ context.Context, id, userID int64) error {
	repo.db.Lock()
	defer repo.db.Unlock()

	if n, ok := repo.db.rows[id]; !ok || n.UserID != userID {
		return core.ErrNotFound
	}
	delete(repo.db.rows, id)
	return nil
}
