package notification

import "context"

// Repository describes notification persistence needs from use cases.
type Repository interface {
	Create(ctx context.Context, item Notification) error
	ListByUser(ctx context.Context, userID string) ([]Notification, error)

	// MarkAllRead flags every unread notification of the user as read
	// and returns how many were flagged.
	MarkAllRead(ctx context.Context, userID string) (int, error)
}
