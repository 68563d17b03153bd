package availability

import "context"

// Repository describes availability persistence needs from use cases.
type Repository interface {
	Create(ctx context.Context, item Slot) error
	GetByID(ctx context.Context, slotID string) (Slot, bool, error)
	ListByUser(ctx context.Context, userID string) ([]Slot, error)
	ListAll(ctx context.Context) ([]Slot, error)
	Delete(ctx context.Context, slotID string) error
}
