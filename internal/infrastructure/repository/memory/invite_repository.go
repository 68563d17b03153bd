package memory

import (
	"context"
	"sync"
	"time"

	"github.com/riskibarqy/tennispal/internal/domain/invite"
)

type InviteRepository struct {
	mu     sync.RWMutex
	items  map[string]invite.Invite
	orders []string
}

func NewInviteRepository() *InviteRepository {
	return &InviteRepository{
		items: make(map[string]invite.Invite),
	}
}

func (r *InviteRepository) Create(_ context.Context, item invite.Invite) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.items[item.ID] = item
	r.orders = append(r.orders, item.ID)

	return nil
}

func (r *InviteRepository) GetByID(_ context.Context, inviteID string) (invite.Invite, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	i, ok := r.items[inviteID]
	if !ok {
		return invite.Invite{}, false, nil
	}

	return i, true, nil
}

func (r *InviteRepository) ListByUser(_ context.Context, userID string) ([]invite.Invite, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]invite.Invite, 0)
	for _, id := range r.orders {
		item := r.items[id]
		if item.FromUserID == userID || item.ToUserID == userID {
			out = append(out, item)
		}
	}

	return out, nil
}

func (r *InviteRepository) UpdateStatusIfPending(_ context.Context, inviteID string, to invite.Status, matchID string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.items[inviteID]
	if !ok || stored.Status != invite.StatusPending {
		return false, nil
	}

	stored.Status = to
	stored.MatchID = matchID
	stored.UpdatedAt = time.Now().UTC()
	r.items[inviteID] = stored

	return true, nil
}
