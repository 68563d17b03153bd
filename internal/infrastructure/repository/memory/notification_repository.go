package memory

import (
	"context"
	"sync"

	"github.com/riskibarqy/tennispal/internal/domain/notification"
)

type NotificationRepository struct {
	mu     sync.RWMutex
	items  map[string]notification.Notification
	orders []string
}

func NewNotificationRepository() *NotificationRepository {
	return &NotificationRepository{
		items: make(map[string]notification.Notification),
	}
}

func (r *NotificationRepository) Create(_ context.Context, item notification.Notification) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.items[item.ID] = item
	r.orders = append(r.orders, item.ID)

	return nil
}

func (r *NotificationRepository) ListByUser(_ context.Context, userID string) ([]notification.Notification, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]notification.Notification, 0)
	// Newest first.
	for i := len(r.orders) - 1; i >= 0; i-- {
		if r.items[r.orders[i]].UserID == userID {
			out = append(out, r.items[r.orders[i]])
		}
	}

	return out, nil
}

func (r *NotificationRepository) MarkAllRead(_ context.Context, userID string) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	updated := 0
	for id, item := range r.items {
		if item.UserID != userID || item.IsRead {
			continue
		}
		item.IsRead = true
		r.items[id] = item
		updated++
	}

	return updated, nil
}
