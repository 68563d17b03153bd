package invite

import "context"

// Repository describes invite persistence needs from use cases.
type Repository interface {
	Create(ctx context.Context, item Invite) error
	GetByID(ctx context.Context, inviteID string) (Invite, bool, error)
	ListByUser(ctx context.Context, userID string) ([]Invite, error)

	// UpdateStatusIfPending resolves a still pending invite into the
	// given status, recording matchID when the resolution created a
	// match. It reports whether the invite was still pending.
	UpdateStatusIfPending(ctx context.Context, inviteID string, to Status, matchID string) (bool, error)
}
