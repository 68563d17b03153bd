package usecase

import (
	"context"
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/riskibarqy/tennispal/internal/domain/match"
	"github.com/riskibarqy/tennispal/internal/domain/user"
)

// PlayerStats summarizes a player's confirmed match history.
type PlayerStats struct {
	UserID          string
	Wins            int
	Losses          int
	MatchesPlayed   int
	UniqueOpponents int
	Reliability     int
}

// HeadToHead compares two players across their confirmed meetings.
type HeadToHead struct {
	UserID       string
	OpponentID   string
	UserWins     int
	OpponentWins int
	Matches      []match.Match
}

// LeaderboardEntry is one row of the global win ranking.
type LeaderboardEntry struct {
	UserID string
	Name   string
	Elo    int
	Wins   int
	Losses int
}

type StatsService struct {
	matchRepo match.Repository
	userRepo  user.Repository
}

func NewStatsService(matchRepo match.Repository, userRepo user.Repository) *StatsService {
	return &StatsService{
		matchRepo: matchRepo,
		userRepo:  userRepo,
	}
}

// ComputeStats derives win/loss counts from confirmed matches and the
// reliability score from the full lifecycle history. Pure over its inputs.
func ComputeStats(userID string, matches []match.Match) PlayerStats {
	stats := PlayerStats{UserID: userID}

	opponents := make(map[string]struct{})
	var completed, closed int

	for _, m := range matches {
		if !m.HasParticipant(userID) {
			continue
		}

		switch m.Status {
		case match.StatusCompleted:
			completed++
			closed++
		case match.StatusCancelled, match.StatusNoShow:
			closed++
		}

		if m.Status != match.StatusCompleted || !m.ScoreConfirmed {
			continue
		}

		stats.MatchesPlayed++
		opponents[m.Opponent(userID)] = struct{}{}
		if m.WinnerID == userID {
			stats.Wins++
		} else {
			stats.Losses++
		}
	}

	stats.UniqueOpponents = len(opponents)
	if closed == 0 {
		stats.Reliability = 100
	} else {
		stats.Reliability = int(math.Round(100 * float64(completed) / float64(closed)))
	}

	return stats
}

func (s *StatsService) GetForUser(ctx context.Context, userID string) (PlayerStats, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.StatsService.GetForUser")
	defer span.End()

	userID = strings.TrimSpace(userID)
	if userID == "" {
		return PlayerStats{}, fmt.Errorf("%w: user id is required", ErrInvalidInput)
	}

	if _, exists, err := s.userRepo.GetByID(ctx, userID); err != nil {
		return PlayerStats{}, fmt.Errorf("get user by id: %w", err)
	} else if !exists {
		return PlayerStats{}, fmt.Errorf("%w: user=%s", ErrNotFound, userID)
	}

	matches, err := s.matchRepo.ListByUser(ctx, userID)
	if err != nil {
		return PlayerStats{}, fmt.Errorf("list matches by user: %w", err)
	}

	return ComputeStats(userID, matches), nil
}

// Leaderboard ranks all players by confirmed wins. Ties rank by name so
// repeated reads return a stable order.
func (s *StatsService) Leaderboard(ctx context.Context) ([]LeaderboardEntry, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.StatsService.Leaderboard")
	defer span.End()

	users, err := s.userRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	confirmed, err := s.matchRepo.ListConfirmed(ctx)
	if err != nil {
		return nil, fmt.Errorf("list confirmed matches: %w", err)
	}

	wins := make(map[string]int, len(users))
	losses := make(map[string]int, len(users))
	for _, m := range confirmed {
		wins[m.WinnerID]++
		losses[m.Opponent(m.WinnerID)]++
	}

	entries := make([]LeaderboardEntry, 0, len(users))
	for _, u := range users {
		entries = append(entries, LeaderboardEntry{
			UserID: u.ID,
			Name:   u.Name,
			Elo:    u.Elo,
			Wins:   wins[u.ID],
			Losses: losses[u.ID],
		})
	}

	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Wins != entries[j].Wins {
			return entries[i].Wins > entries[j].Wins
		}
		return entries[i].Name < entries[j].Name
	})

	return entries, nil
}

// RecentMatches returns the player's newest confirmed results, newest first.
func (s *StatsService) RecentMatches(ctx context.Context, userID string, limit int) ([]match.Match, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.StatsService.RecentMatches")
	defer span.End()

	userID = strings.TrimSpace(userID)
	if userID == "" {
		return nil, fmt.Errorf("%w: user id is required", ErrInvalidInput)
	}
	if limit <= 0 {
		limit = 10
	}

	matches, err := s.matchRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list matches by user: %w", err)
	}

	recent := make([]match.Match, 0, len(matches))
	for _, m := range matches {
		if m.Status != match.StatusCompleted || !m.ScoreConfirmed {
			continue
		}
		recent = append(recent, m)
	}
	sort.Slice(recent, func(i, j int) bool {
		return recent[i].PlayDate.After(recent[j].PlayDate)
	})
	if len(recent) > limit {
		recent = recent[:limit]
	}

	return recent, nil
}

// GetHeadToHead reports the confirmed record between the caller and one
// opponent, newest match first.
func (s *StatsService) GetHeadToHead(ctx context.Context, userID, opponentID string) (HeadToHead, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.StatsService.GetHeadToHead")
	defer span.End()

	userID = strings.TrimSpace(userID)
	opponentID = strings.TrimSpace(opponentID)
	if userID == "" || opponentID == "" {
		return HeadToHead{}, fmt.Errorf("%w: user id and opponent id are required", ErrInvalidInput)
	}
	if userID == opponentID {
		return HeadToHead{}, fmt.Errorf("%w: opponent must be another user", ErrInvalidInput)
	}

	if _, exists, err := s.userRepo.GetByID(ctx, opponentID); err != nil {
		return HeadToHead{}, fmt.Errorf("get opponent by id: %w", err)
	} else if !exists {
		return HeadToHead{}, fmt.Errorf("%w: user=%s", ErrNotFound, opponentID)
	}

	matches, err := s.matchRepo.ListByUser(ctx, userID)
	if err != nil {
		return HeadToHead{}, fmt.Errorf("list matches by user: %w", err)
	}

	result := HeadToHead{UserID: userID, OpponentID: opponentID}
	for _, m := range matches {
		if !m.HasParticipant(opponentID) {
			continue
		}
		if m.Status != match.StatusCompleted || !m.ScoreConfirmed {
			continue
		}
		result.Matches = append(result.Matches, m)
		if m.WinnerID == userID {
			result.UserWins++
		} else {
			result.OpponentWins++
		}
	}

	sort.Slice(result.Matches, func(i, j int) bool {
		return result.Matches[i].PlayDate.After(result.Matches[j].PlayDate)
	})

	return result, nil
}
