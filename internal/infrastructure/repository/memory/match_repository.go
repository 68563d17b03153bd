package memory

import (
	"context"
	"sync"
	"time"

	"github.com/riskibarqy/tennispal/internal/domain/match"
)

type MatchRepository struct {
	mu     sync.RWMutex
	items  map[string]match.Match
	orders []string
}

func NewMatchRepository() *MatchRepository {
	return &MatchRepository{
		items: make(map[string]match.Match),
	}
}

func (r *MatchRepository) Create(_ context.Context, item match.Match) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.items[item.ID] = item
	r.orders = append(r.orders, item.ID)

	return nil
}

func (r *MatchRepository) GetByID(_ context.Context, matchID string) (match.Match, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	m, ok := r.items[matchID]
	if !ok {
		return match.Match{}, false, nil
	}

	return m, true, nil
}

func (r *MatchRepository) ListByUser(_ context.Context, userID string) ([]match.Match, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]match.Match, 0)
	for _, id := range r.orders {
		if r.items[id].HasParticipant(userID) {
			out = append(out, r.items[id])
		}
	}

	return out, nil
}

func (r *MatchRepository) ListConfirmed(_ context.Context) ([]match.Match, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]match.Match, 0)
	for _, id := range r.orders {
		m := r.items[id]
		if m.Status == match.StatusCompleted && m.ScoreConfirmed {
			out = append(out, m)
		}
	}

	return out, nil
}

func (r *MatchRepository) List(_ context.Context) ([]match.Match, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]match.Match, 0, len(r.orders))
	for _, id := range r.orders {
		out = append(out, r.items[id])
	}

	return out, nil
}

func (r *MatchRepository) SubmitScoreIfUnconfirmed(_ context.Context, item match.Match) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.items[item.ID]
	if !ok {
		return false, nil
	}
	if stored.ScoreConfirmed {
		return false, nil
	}
	if stored.Status != match.StatusScheduled && stored.Status != match.StatusCompleted {
		return false, nil
	}

	stored.Status = match.StatusCompleted
	stored.Score = item.Score
	stored.Sets = item.Sets
	stored.WinnerID = item.WinnerID
	stored.ScoreSubmittedBy = item.ScoreSubmittedBy
	stored.ScoreDisputed = false
	stored.UpdatedAt = item.UpdatedAt
	r.items[item.ID] = stored

	return true, nil
}

func (r *MatchRepository) ConfirmScoreIfUnconfirmed(_ context.Context, matchID string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.items[matchID]
	if !ok || stored.Status != match.StatusCompleted || stored.ScoreConfirmed {
		return false, nil
	}

	stored.ScoreConfirmed = true
	stored.ScoreDisputed = false
	stored.UpdatedAt = time.Now().UTC()
	r.items[matchID] = stored

	return true, nil
}

func (r *MatchRepository) DisputeScoreIfUnconfirmed(_ context.Context, matchID string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.items[matchID]
	if !ok || stored.Status != match.StatusCompleted || stored.ScoreConfirmed {
		return false, nil
	}

	stored.ScoreDisputed = true
	stored.UpdatedAt = time.Now().UTC()
	r.items[matchID] = stored

	return true, nil
}

func (r *MatchRepository) UpdateStatusIfActive(_ context.Context, matchID string, to match.Status) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.items[matchID]
	if !ok || stored.IsTerminal() {
		return false, nil
	}

	stored.Status = to
	stored.UpdatedAt = time.Now().UTC()
	r.items[matchID] = stored

	return true, nil
}
