package usecase

import (
	"fmt"
	"testing"
	"time"

	"github.com/riskibarqy/tennispal/internal/domain/match"
	"github.com/riskibarqy/tennispal/internal/infrastructure/repository/memory"
)

func confirmedMatch(id, p1, p2, winner string, playDate time.Time) match.Match {
	return match.Match{
		ID:             id,
		Player1ID:      p1,
		Player2ID:      p2,
		PlayDate:       playDate,
		Status:         match.StatusCompleted,
		WinnerID:       winner,
		ScoreConfirmed: true,
	}
}

func TestComputeStats(t *testing.T) {
	playDate := time.Date(2026, 5, 20, 0, 0, 0, 0, time.UTC)
	matches := []match.Match{
		confirmedMatch("m1", "u1", "u2", "u1", playDate),
		confirmedMatch("m2", "u3", "u1", "u1", playDate),
		confirmedMatch("m3", "u1", "u2", "u2", playDate),
		// Submitted but unconfirmed, ignored by win/loss counts.
		{ID: "m4", Player1ID: "u1", Player2ID: "u4", Status: match.StatusCompleted, WinnerID: "u1"},
		{ID: "m5", Player1ID: "u1", Player2ID: "u4", Status: match.StatusCancelled},
		{ID: "m6", Player1ID: "u5", Player2ID: "u6", Status: match.StatusCompleted, WinnerID: "u5", ScoreConfirmed: true},
	}

	stats := ComputeStats("u1", matches)

	if stats.Wins != 2 || stats.Losses != 1 {
		t.Fatalf("expected 2 wins 1 loss, got %d/%d", stats.Wins, stats.Losses)
	}
	if stats.MatchesPlayed != 3 {
		t.Fatalf("expected 3 matches played, got %d", stats.MatchesPlayed)
	}
	if stats.UniqueOpponents != 2 {
		t.Fatalf("expected 2 unique opponents, got %d", stats.UniqueOpponents)
	}
	// 4 completed out of 5 closed matches rounds to 80.
	if stats.Reliability != 80 {
		t.Fatalf("expected reliability 80, got %d", stats.Reliability)
	}
}

func TestComputeStats_NoHistory(t *testing.T) {
	stats := ComputeStats("u1", nil)

	if stats.Reliability != 100 {
		t.Fatalf("expected full reliability with no history, got %d", stats.Reliability)
	}
	if stats.MatchesPlayed != 0 || stats.Wins != 0 || stats.Losses != 0 {
		t.Fatalf("expected empty stats, got %+v", stats)
	}
}

func TestComputeStats_ScheduledOnlyKeepsFullReliability(t *testing.T) {
	stats := ComputeStats("u1", []match.Match{
		{ID: "m1", Player1ID: "u1", Player2ID: "u2", Status: match.StatusScheduled},
	})

	if stats.Reliability != 100 {
		t.Fatalf("expected reliability 100, got %d", stats.Reliability)
	}
}

func TestStatsService_Leaderboard(t *testing.T) {
	userRepo := memory.NewUserRepository(memory.SeedUsers())
	matchRepo := memory.NewMatchRepository()
	playDate := time.Date(2026, 5, 20, 0, 0, 0, 0, time.UTC)

	for _, m := range []match.Match{
		confirmedMatch("m1", memory.UserIDAyu, memory.UserIDBima, memory.UserIDAyu, playDate),
		confirmedMatch("m2", memory.UserIDAyu, memory.UserIDCitra, memory.UserIDAyu, playDate),
		confirmedMatch("m3", memory.UserIDBima, memory.UserIDCitra, memory.UserIDBima, playDate),
		confirmedMatch("m4", memory.UserIDDanu, memory.UserIDCitra, memory.UserIDDanu, playDate),
	} {
		if err := matchRepo.Create(t.Context(), m); err != nil {
			t.Fatalf("seed match: %v", err)
		}
	}

	service := NewStatsService(matchRepo, userRepo)
	entries, err := service.Leaderboard(t.Context())
	if err != nil {
		t.Fatalf("leaderboard failed: %v", err)
	}

	if len(entries) != 4 {
		t.Fatalf("expected 4 entries, got %d", len(entries))
	}
	if entries[0].UserID != memory.UserIDAyu || entries[0].Wins != 2 {
		t.Fatalf("expected Ayu on top with 2 wins, got %+v", entries[0])
	}
	// Bima and Danu both hold one win; names break the tie.
	if entries[1].Name != "Bima Putra" || entries[2].Name != "Danu Wijaya" {
		t.Fatalf("expected name ordered tie, got %s then %s", entries[1].Name, entries[2].Name)
	}
	if entries[3].UserID != memory.UserIDCitra || entries[3].Losses != 3 {
		t.Fatalf("expected Citra last with 3 losses, got %+v", entries[3])
	}
}

func TestStatsService_RecentMatches(t *testing.T) {
	userRepo := memory.NewUserRepository(memory.SeedUsers())
	matchRepo := memory.NewMatchRepository()

	base := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 4; i++ {
		m := confirmedMatch(
			fmt.Sprintf("m%d", i+1),
			memory.UserIDAyu, memory.UserIDBima, memory.UserIDAyu,
			base.AddDate(0, 0, i),
		)
		if err := matchRepo.Create(t.Context(), m); err != nil {
			t.Fatalf("seed match: %v", err)
		}
	}
	// Unconfirmed result stays out of the public history.
	if err := matchRepo.Create(t.Context(), match.Match{
		ID: "m9", Player1ID: memory.UserIDAyu, Player2ID: memory.UserIDCitra,
		PlayDate: base.AddDate(0, 0, 30), Status: match.StatusCompleted, WinnerID: memory.UserIDAyu,
	}); err != nil {
		t.Fatalf("seed match: %v", err)
	}

	service := NewStatsService(matchRepo, userRepo)
	recent, err := service.RecentMatches(t.Context(), memory.UserIDAyu, 3)
	if err != nil {
		t.Fatalf("recent matches failed: %v", err)
	}

	if len(recent) != 3 {
		t.Fatalf("expected 3 matches, got %d", len(recent))
	}
	if !recent[0].PlayDate.After(recent[1].PlayDate) {
		t.Fatal("expected newest match first")
	}
	for _, m := range recent {
		if !m.ScoreConfirmed {
			t.Fatalf("expected only confirmed matches, got %s", m.ID)
		}
	}
}

func TestStatsService_GetHeadToHead(t *testing.T) {
	userRepo := memory.NewUserRepository(memory.SeedUsers())
	matchRepo := memory.NewMatchRepository()

	older := time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC)
	newer := time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC)
	for _, m := range []match.Match{
		confirmedMatch("m1", memory.UserIDAyu, memory.UserIDBima, memory.UserIDAyu, older),
		confirmedMatch("m2", memory.UserIDBima, memory.UserIDAyu, memory.UserIDBima, newer),
		confirmedMatch("m3", memory.UserIDAyu, memory.UserIDCitra, memory.UserIDAyu, newer),
		{ID: "m4", Player1ID: memory.UserIDAyu, Player2ID: memory.UserIDBima, Status: match.StatusCompleted, WinnerID: memory.UserIDAyu},
	} {
		if err := matchRepo.Create(t.Context(), m); err != nil {
			t.Fatalf("seed match: %v", err)
		}
	}

	service := NewStatsService(matchRepo, userRepo)
	h2h, err := service.GetHeadToHead(t.Context(), memory.UserIDAyu, memory.UserIDBima)
	if err != nil {
		t.Fatalf("head to head failed: %v", err)
	}

	if h2h.UserWins != 1 || h2h.OpponentWins != 1 {
		t.Fatalf("expected 1-1 record, got %d-%d", h2h.UserWins, h2h.OpponentWins)
	}
	if len(h2h.Matches) != 2 {
		t.Fatalf("expected 2 confirmed meetings, got %d", len(h2h.Matches))
	}
	if !h2h.Matches[0].PlayDate.After(h2h.Matches[1].PlayDate) {
		t.Fatal("expected newest match first")
	}
}
