package usecase

import (
	"testing"
	"time"

	"github.com/riskibarqy/tennispal/internal/domain/match"
	"github.com/riskibarqy/tennispal/internal/infrastructure/repository/memory"
)

func TestMatchmakingService_Suggest(t *testing.T) {
	userRepo := memory.NewUserRepository(memory.SeedUsers())
	slotRepo := memory.NewSeededAvailabilityRepository()
	matchRepo := memory.NewMatchRepository()

	service := NewMatchmakingService(userRepo, slotRepo, matchRepo, 2)
	now := time.Date(2026, 6, 10, 12, 0, 0, 0, time.UTC)
	service.now = func() time.Time { return now }

	suggestions, err := service.Suggest(t.Context(), memory.UserIDAyu, 10)
	if err != nil {
		t.Fatalf("suggest failed: %v", err)
	}

	if len(suggestions) != 3 {
		t.Fatalf("expected 3 candidates, got %d", len(suggestions))
	}
	for _, s := range suggestions {
		if s.User.ID == memory.UserIDAyu {
			t.Fatal("caller must never be suggested")
		}
	}
	for i := 1; i < len(suggestions); i++ {
		if suggestions[i].Score > suggestions[i-1].Score {
			t.Fatalf("suggestions not sorted by score: %v then %v", suggestions[i-1].Score, suggestions[i].Score)
		}
	}
}

func TestMatchmakingService_Suggest_Components(t *testing.T) {
	userRepo := memory.NewUserRepository(memory.SeedUsers())
	slotRepo := memory.NewSeededAvailabilityRepository()
	matchRepo := memory.NewMatchRepository()

	service := NewMatchmakingService(userRepo, slotRepo, matchRepo, 2)
	now := time.Date(2026, 6, 10, 12, 0, 0, 0, time.UTC)
	service.now = func() time.Time { return now }

	suggestions, err := service.Suggest(t.Context(), memory.UserIDAyu, 10)
	if err != nil {
		t.Fatalf("suggest failed: %v", err)
	}

	byID := make(map[string]Suggestion, len(suggestions))
	for _, s := range suggestions {
		byID[s.User.ID] = s
	}

	// Ayu (1250, 4.0) vs Bima (1180, 3.5): rating 30-7=23, skill 20-5=15,
	// one hour overlap on Tuesday evening 5, fresh 15, reliability 10.
	bima := byID[memory.UserIDBima]
	if bima.Score != 68 {
		t.Fatalf("expected Bima score 68, got %v", bima.Score)
	}
	wantReasons := map[string]bool{
		reasonSimilarRating:  true,
		reasonSimilarSkill:   true,
		reasonScheduleMatch:  true,
		reasonNewOpponent:    true,
		reasonHighlyReliable: true,
	}
	if len(bima.Reasons) != len(wantReasons) {
		t.Fatalf("expected all reasons for Bima, got %v", bima.Reasons)
	}
	for _, reason := range bima.Reasons {
		if !wantReasons[reason] {
			t.Fatalf("unexpected reason %q", reason)
		}
	}

	// Citra has no NTRP, so the skill component is skipped entirely.
	citra := byID[memory.UserIDCitra]
	for _, reason := range citra.Reasons {
		if reason == reasonSimilarSkill {
			t.Fatal("skill reason must not appear without both ratings")
		}
	}
	// Rating 30-15=15, overlap 120min on Saturday morning caps at 10,
	// fresh 15, reliability 10.
	if citra.Score != 50 {
		t.Fatalf("expected Citra score 50, got %v", citra.Score)
	}
}

func TestMatchmakingService_Suggest_RecentMatchesLowerFreshness(t *testing.T) {
	userRepo := memory.NewUserRepository(memory.SeedUsers())
	slotRepo := memory.NewAvailabilityRepository()
	matchRepo := memory.NewMatchRepository()

	now := time.Date(2026, 6, 10, 12, 0, 0, 0, time.UTC)
	recent := confirmedMatch("m1", memory.UserIDAyu, memory.UserIDBima, memory.UserIDAyu, now.AddDate(0, 0, -5))
	old := confirmedMatch("m2", memory.UserIDAyu, memory.UserIDDanu, memory.UserIDAyu, now.AddDate(0, 0, -90))
	for _, m := range []match.Match{recent, old} {
		if err := matchRepo.Create(t.Context(), m); err != nil {
			t.Fatalf("seed match: %v", err)
		}
	}

	service := NewMatchmakingService(userRepo, slotRepo, matchRepo, 2)
	service.now = func() time.Time { return now }

	suggestions, err := service.Suggest(t.Context(), memory.UserIDAyu, 10)
	if err != nil {
		t.Fatalf("suggest failed: %v", err)
	}

	byID := make(map[string]Suggestion, len(suggestions))
	for _, s := range suggestions {
		byID[s.User.ID] = s
	}

	for _, reason := range byID[memory.UserIDBima].Reasons {
		if reason == reasonNewOpponent {
			t.Fatal("recent opponent must not be marked new")
		}
	}

	danuIsNew := false
	for _, reason := range byID[memory.UserIDDanu].Reasons {
		if reason == reasonNewOpponent {
			danuIsNew = true
		}
	}
	if !danuIsNew {
		t.Fatal("opponent outside the window counts as new again")
	}
}
