package notification_test

import (
	"context"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Maar1i/Asistente-Escolar-APP/core"
	"github.com/Maar1i/Asistente-Escolar-APP/core/notification"
	inmemdb "github.com/Maar1i/Asistente-Escolar-APP/storage/database/inmem"
	"github.com/Maar1i/Asistente-Escolar-APP/tests"
)

func TestNewNotification_Validate(t *testing.T) {
	validate, translator := testutil.NewValidator()

	tests := []struct {
		name    string
		in      notification.NewNotification
		wantErr map[string]string
	}{
		{"valid", notification.NewNotification{Message: "Study", NotifyAt: "2025-01-06T08:00"}, nil},
		{"blank message", notification.NewNotification{Message: " ", NotifyAt: "2025-01-06T08:00"}, map[string]string{"message": "this field cannot be blank"}},
		{"date only", notification.NewNotification{Message: "Study", NotifyAt: "2025-01-06"}, map[string]string{"notify_at": "enter a valid date"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.in.Validate(validate)
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.Equal(t, tt.wantErr, core.FieldMessages(err, translator))
		})
	}
}

func TestService(t *testing.T) {
	now := time.Date(2025, 1, 5, 10, 0, 0, 0, time.UTC)
	core.NowFunc = func() time.Time { return now }
	defer func() { core.NowFunc = time.Now }()

	svc := notification.NewService(inmemdb.NewNotificationRepository(inmemdb.Open()))
	ctx := context.Background()

	later, err := svc.Create(ctx, 1, notification.NewNotification{Message: "later", NotifyAt: "2025-01-07T08:00"})
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, 1, 7, 8, 0, 0, 0, time.UTC), later.NotifyAt)
	soon, _ := svc.Create(ctx, 1, notification.NewNotification{Message: "soon", NotifyAt: "2025-01-05T10:00"})
	_, _ = svc.Create(ctx, 1, notification.NewNotification{Message: "past", NotifyAt: "2025-01-05T09:59"})
	_, _ = svc.Create(ctx, 2, notification.NewNotification{Message: "other", NotifyAt: "2025-01-06T08:00"})

	upcoming, err := svc.ListUpcoming(ctx, 1)
	require.NoError(t, err)
	require.Len(t, upcoming, 2, "notifications due now are still upcoming")
	assert.Equal(t, soon.ID, upcoming[0].ID)
	assert.Equal(t, later.ID, upcoming[1].ID)

	now = now.Add(time.Minute)
	upcoming, _ = svc.ListUpcoming(ctx, 1)
	assert.Len(t, upcoming, 1)

	assert.Equal(t, core.ErrForbidden, errors.Cause(svc.Delete(ctx, 2, later.ID)))
	assert.Equal(t, core.ErrNotFound, errors.Cause(svc.Delete(ctx, 1, 999)))
	require.NoError(t, svc.Delete(ctx, 1, later.ID))
	upcoming, _ = svc.ListUpcoming(ctx, 1)
	assert.Empty(t, upcoming)
}
