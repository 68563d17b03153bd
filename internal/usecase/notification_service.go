package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/riskibarqy/tennispal/internal/domain/notification"
)

type NotificationService struct {
	noteRepo notification.Repository
}

func NewNotificationService(noteRepo notification.Repository) *NotificationService {
	return &NotificationService{noteRepo: noteRepo}
}

func (s *NotificationService) ListForUser(ctx context.Context, userID string) ([]notification.Notification, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return nil, fmt.Errorf("%w: user id is required", ErrInvalidInput)
	}

	items, err := s.noteRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list notifications by user: %w", err)
	}

	return items, nil
}

// MarkAllRead flags the user's unread notifications and returns how many
// were affected.
func (s *NotificationService) MarkAllRead(ctx context.Context, userID string) (int, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return 0, fmt.Errorf("%w: user id is required", ErrInvalidInput)
	}

	updated, err := s.noteRepo.MarkAllRead(ctx, userID)
	if err != nil {
		return 0, fmt.Errorf("mark notifications read: %w", err)
	}

	return updated, nil
}
