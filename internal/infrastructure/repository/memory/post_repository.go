package memory

import (
	"context"
	"sync"

	"github.com/riskibarqy/tennispal/internal/domain/post"
)

type PostRepository struct {
	mu     sync.RWMutex
	items  map[string]post.Post
	orders []string
}

func NewPostRepository() *PostRepository {
	return &PostRepository{
		items: make(map[string]post.Post),
	}
}

func (r *PostRepository) Create(_ context.Context, item post.Post) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.items[item.ID] = item
	r.orders = append(r.orders, item.ID)

	return nil
}

func (r *PostRepository) GetByID(_ context.Context, postID string) (post.Post, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.items[postID]
	if !ok {
		return post.Post{}, false, nil
	}

	return p, true, nil
}

func (r *PostRepository) ListOpen(_ context.Context) ([]post.Post, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]post.Post, 0)
	for _, id := range r.orders {
		if r.items[id].ClaimedByID == "" {
			out = append(out, r.items[id])
		}
	}

	return out, nil
}

func (r *PostRepository) ListByUser(_ context.Context, userID string) ([]post.Post, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]post.Post, 0)
	for _, id := range r.orders {
		if r.items[id].UserID == userID {
			out = append(out, r.items[id])
		}
	}

	return out, nil
}

func (r *PostRepository) ClaimIfOpen(_ context.Context, postID, claimerID, matchID string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.items[postID]
	if !ok || stored.ClaimedByID != "" {
		return false, nil
	}

	stored.ClaimedByID = claimerID
	stored.MatchID = matchID
	r.items[postID] = stored

	return true, nil
}
