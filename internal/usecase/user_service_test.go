package usecase

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/riskibarqy/tennispal/internal/domain/user"
	"github.com/riskibarqy/tennispal/internal/infrastructure/repository/memory"
)

type staticIDGenerator struct {
	id string
}

func (g staticIDGenerator) NewID() (string, error) {
	return g.id, nil
}

// sequenceIDGenerator hands out prefix-1, prefix-2, ... for flows that
// mint more than one id.
type sequenceIDGenerator struct {
	prefix string
	next   int
}

func (g *sequenceIDGenerator) NewID() (string, error) {
	g.next++
	return fmt.Sprintf("%s-%d", g.prefix, g.next), nil
}

func TestUserService_Register(t *testing.T) {
	userRepo := memory.NewUserRepository(nil)
	service := NewUserService(userRepo, memory.NewAvailabilityRepository(), staticIDGenerator{id: "user-001"})

	now := time.Date(2026, 6, 1, 10, 0, 0, 0, time.UTC)
	service.now = func() time.Time { return now }

	ntrp := 3.5
	created, err := service.Register(t.Context(), RegisterUserInput{
		Name:        "Ayu Lestari",
		Email:       "  AYU@Example.com ",
		Phone:       "+628111000001",
		NTRP:        &ntrp,
		NotifyEmail: true,
	})
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}

	if created.ID != "user-001" {
		t.Fatalf("expected user id user-001, got %s", created.ID)
	}
	if created.Email != "ayu@example.com" {
		t.Fatalf("expected normalized email, got %s", created.Email)
	}
	if created.Elo != user.DefaultElo {
		t.Fatalf("expected default elo %d, got %d", user.DefaultElo, created.Elo)
	}
	if !created.CreatedAt.Equal(now) {
		t.Fatalf("expected created_at %v, got %v", now, created.CreatedAt)
	}
}

func TestUserService_Register_DuplicateEmail(t *testing.T) {
	userRepo := memory.NewUserRepository(memory.SeedUsers())
	service := NewUserService(userRepo, memory.NewAvailabilityRepository(), staticIDGenerator{id: "user-002"})

	_, err := service.Register(t.Context(), RegisterUserInput{
		Name:  "Second Ayu",
		Email: "ayu@example.com",
	})
	if !errors.Is(err, ErrConflict) {
		t.Fatalf("expected ErrConflict, got %v", err)
	}
}

func TestUserService_Register_InvalidNTRP(t *testing.T) {
	service := NewUserService(memory.NewUserRepository(nil), memory.NewAvailabilityRepository(), staticIDGenerator{id: "user-003"})

	ntrp := 8.5
	_, err := service.Register(t.Context(), RegisterUserInput{
		Name:  "Out Of Range",
		Email: "oor@example.com",
		NTRP:  &ntrp,
	})
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestUserService_UpdateProfile_PartialFields(t *testing.T) {
	userRepo := memory.NewUserRepository(memory.SeedUsers())
	service := NewUserService(userRepo, memory.NewAvailabilityRepository(), staticIDGenerator{id: "unused"})

	now := time.Date(2026, 6, 2, 8, 0, 0, 0, time.UTC)
	service.now = func() time.Time { return now }

	name := "Ayu L."
	notifySMS := false
	updated, err := service.UpdateProfile(t.Context(), UpdateProfileInput{
		UserID:    memory.UserIDAyu,
		Name:      &name,
		NotifySMS: &notifySMS,
	})
	if err != nil {
		t.Fatalf("update profile failed: %v", err)
	}

	if updated.Name != "Ayu L." {
		t.Fatalf("expected updated name, got %s", updated.Name)
	}
	if updated.NotifySMS {
		t.Fatal("expected sms notifications disabled")
	}
	if updated.Email != "ayu@example.com" {
		t.Fatalf("expected email untouched, got %s", updated.Email)
	}
	if updated.NTRP == nil || *updated.NTRP != 4.0 {
		t.Fatalf("expected ntrp untouched, got %v", updated.NTRP)
	}
	if !updated.UpdatedAt.Equal(now) {
		t.Fatalf("expected updated_at %v, got %v", now, updated.UpdatedAt)
	}
}

func TestUserService_GetProfile_NotFound(t *testing.T) {
	service := NewUserService(memory.NewUserRepository(nil), memory.NewAvailabilityRepository(), staticIDGenerator{id: "unused"})

	_, err := service.GetProfile(t.Context(), "ghost")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestUserService_ListPlayers_DayFilter(t *testing.T) {
	userRepo := memory.NewUserRepository(memory.SeedUsers())
	slotRepo := memory.NewSeededAvailabilityRepository()
	service := NewUserService(userRepo, slotRepo, staticIDGenerator{id: "unused"})

	all, err := service.ListPlayers(t.Context(), nil)
	if err != nil {
		t.Fatalf("list players failed: %v", err)
	}
	if len(all) != 4 {
		t.Fatalf("expected 4 players, got %d", len(all))
	}

	saturday := 6
	available, err := service.ListPlayers(t.Context(), &saturday)
	if err != nil {
		t.Fatalf("list players with day filter failed: %v", err)
	}
	if len(available) != 2 {
		t.Fatalf("expected 2 players available on saturday, got %d", len(available))
	}
	for _, item := range available {
		if item.ID != memory.UserIDAyu && item.ID != memory.UserIDCitra {
			t.Fatalf("unexpected player %s in saturday list", item.ID)
		}
	}

	bad := 9
	if _, err := service.ListPlayers(t.Context(), &bad); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for day 9, got %v", err)
	}
}
