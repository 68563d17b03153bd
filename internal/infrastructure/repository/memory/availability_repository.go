package memory

import (
	"context"
	"sync"

	"github.com/riskibarqy/tennispal/internal/domain/availability"
)

type AvailabilityRepository struct {
	mu     sync.RWMutex
	items  map[string]availability.Slot
	orders []string
}

func NewAvailabilityRepository() *AvailabilityRepository {
	return &AvailabilityRepository{
		items: make(map[string]availability.Slot),
	}
}

func (r *AvailabilityRepository) Create(_ context.Context, item availability.Slot) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.items[item.ID] = item
	r.orders = append(r.orders, item.ID)

	return nil
}

func (r *AvailabilityRepository) GetByID(_ context.Context, slotID string) (availability.Slot, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	s, ok := r.items[slotID]
	if !ok {
		return availability.Slot{}, false, nil
	}

	return s, true, nil
}

func (r *AvailabilityRepository) ListByUser(_ context.Context, userID string) ([]availability.Slot, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]availability.Slot, 0)
	for _, id := range r.orders {
		if r.items[id].UserID == userID {
			out = append(out, r.items[id])
		}
	}

	return out, nil
}

func (r *AvailabilityRepository) ListAll(_ context.Context) ([]availability.Slot, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]availability.Slot, 0, len(r.orders))
	for _, id := range r.orders {
		out = append(out, r.items[id])
	}

	return out, nil
}

func (r *AvailabilityRepository) Delete(_ context.Context, slotID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.items[slotID]; !ok {
		return nil
	}
	delete(r.items, slotID)
	for i, id := range r.orders {
		if id == slotID {
			r.orders = append(r.orders[:i], r.orders[i+1:]...)
			break
		}
	}

	return nil
}
