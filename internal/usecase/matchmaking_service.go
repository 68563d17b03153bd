package usecase

import (
	"context"
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/sourcegraph/conc/pool"

	"github.com/riskibarqy/tennispal/internal/domain/availability"
	"github.com/riskibarqy/tennispal/internal/domain/match"
	"github.com/riskibarqy/tennispal/internal/domain/user"
)

const (
	ratingScoreCap      = 30.0
	skillScoreCap       = 20.0
	scheduleScoreCap    = 25.0
	freshnessScoreCap   = 15.0
	defaultWindowDays   = 30
	maxSuggestedPlayers = 10

	reasonSimilarRating  = "similar rating"
	reasonSimilarSkill   = "similar skill level"
	reasonScheduleMatch  = "schedules overlap"
	reasonNewOpponent    = "new opponent"
	reasonHighlyReliable = "highly reliable"
)

// Suggestion is one recommended opponent with its composite score and
// the human readable reasons behind it.
type Suggestion struct {
	User    user.User
	Score   float64
	Reasons []string
}

type MatchmakingService struct {
	userRepo   user.Repository
	slotRepo   availability.Repository
	matchRepo  match.Repository
	windowDays int
	workers    int
	now        func() time.Time
}

func NewMatchmakingService(
	userRepo user.Repository,
	slotRepo availability.Repository,
	matchRepo match.Repository,
	workers int,
) *MatchmakingService {
	if workers <= 0 {
		workers = 4
	}
	return &MatchmakingService{
		userRepo:   userRepo,
		slotRepo:   slotRepo,
		matchRepo:  matchRepo,
		windowDays: defaultWindowDays,
		workers:    workers,
		now:        time.Now,
	}
}

// Suggest ranks every other player as a potential opponent for the user.
// Candidates are scored concurrently; inputs are loaded once up front so
// scoring never touches the repositories.
func (s *MatchmakingService) Suggest(ctx context.Context, userID string, limit int) ([]Suggestion, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MatchmakingService.Suggest")
	defer span.End()

	userID = strings.TrimSpace(userID)
	if userID == "" {
		return nil, fmt.Errorf("%w: user id is required", ErrInvalidInput)
	}
	if limit <= 0 || limit > maxSuggestedPlayers {
		limit = maxSuggestedPlayers
	}

	self, exists, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("get user by id: %w", err)
	}
	if !exists {
		return nil, fmt.Errorf("%w: user=%s", ErrNotFound, userID)
	}

	users, err := s.userRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	slots, err := s.slotRepo.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list availability: %w", err)
	}
	matches, err := s.matchRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list matches: %w", err)
	}

	slotsByUser := make(map[string][]availability.Slot)
	for _, slot := range slots {
		slotsByUser[slot.UserID] = append(slotsByUser[slot.UserID], slot)
	}

	now := s.now().UTC()
	windowStart := now.AddDate(0, 0, -s.windowDays)
	recentByOpponent := make(map[string]int)
	for _, m := range matches {
		if !m.HasParticipant(userID) {
			continue
		}
		if m.Status != match.StatusCompleted || !m.ScoreConfirmed {
			continue
		}
		if !m.PlayDate.Before(windowStart) {
			recentByOpponent[m.Opponent(userID)]++
		}
	}

	candidates := make([]user.User, 0, len(users))
	for _, u := range users {
		if u.ID != userID {
			candidates = append(candidates, u)
		}
	}

	reliabilityByUser := make(map[string]int, len(candidates))
	for _, c := range candidates {
		reliabilityByUser[c.ID] = ComputeStats(c.ID, matchesOf(c.ID, matches)).Reliability
	}

	suggestions := make([]Suggestion, len(candidates))
	workers := pool.New().WithMaxGoroutines(s.workers)
	for i, candidate := range candidates {
		workers.Go(func() {
			suggestions[i] = s.score(
				self, candidate,
				slotsByUser[userID], slotsByUser[candidate.ID],
				recentByOpponent[candidate.ID],
				reliabilityByUser[candidate.ID],
			)
		})
	}
	workers.Wait()

	sort.Slice(suggestions, func(i, j int) bool {
		if suggestions[i].Score != suggestions[j].Score {
			return suggestions[i].Score > suggestions[j].Score
		}
		return suggestions[i].User.ID < suggestions[j].User.ID
	})

	if len(suggestions) > limit {
		suggestions = suggestions[:limit]
	}

	return suggestions, nil
}

func (s *MatchmakingService) score(
	self, candidate user.User,
	selfSlots, candidateSlots []availability.Slot,
	recentMatches, reliability int,
) Suggestion {
	item := Suggestion{User: candidate}

	eloGap := math.Abs(float64(self.Elo - candidate.Elo))
	ratingScore := math.Max(0, ratingScoreCap-eloGap/10)
	item.Score += ratingScore
	if eloGap <= 100 {
		item.Reasons = append(item.Reasons, reasonSimilarRating)
	}

	if self.NTRP != nil && candidate.NTRP != nil {
		skillGap := math.Abs(*self.NTRP - *candidate.NTRP)
		item.Score += math.Max(0, skillScoreCap-skillGap*10)
		if skillGap <= 0.5 {
			item.Reasons = append(item.Reasons, reasonSimilarSkill)
		}
	}

	overlap := 0
	for _, a := range selfSlots {
		for _, b := range candidateSlots {
			overlap += availability.OverlapMinutes(a, b)
		}
	}
	item.Score += math.Min(scheduleScoreCap, float64(overlap)/60*5)
	if overlap > 0 {
		item.Reasons = append(item.Reasons, reasonScheduleMatch)
	}

	item.Score += math.Max(0, freshnessScoreCap-5*float64(recentMatches))
	if recentMatches == 0 {
		item.Reasons = append(item.Reasons, reasonNewOpponent)
	}

	item.Score += float64(reliability) / 10
	if reliability >= 90 {
		item.Reasons = append(item.Reasons, reasonHighlyReliable)
	}

	return item
}

func matchesOf(userID string, matches []match.Match) []match.Match {
	out := make([]match.Match, 0, len(matches))
	for _, m := range matches {
		if m.HasParticipant(userID) {
			out = append(out, m)
		}
	}
	return out
}
