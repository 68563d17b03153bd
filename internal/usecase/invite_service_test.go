package usecase

import (
	"errors"
	"testing"
	"time"

	"github.com/riskibarqy/tennispal/internal/domain/invite"
	"github.com/riskibarqy/tennispal/internal/domain/match"
	"github.com/riskibarqy/tennispal/internal/infrastructure/repository/memory"
)

func newInviteFixture(t *testing.T) (*InviteService, *memory.MatchRepository, *recordingNotifier) {
	t.Helper()

	inviteRepo := memory.NewInviteRepository()
	matchRepo := memory.NewMatchRepository()
	userRepo := memory.NewUserRepository(memory.SeedUsers())
	noteRepo := memory.NewNotificationRepository()
	notifier := &recordingNotifier{}

	service := NewInviteService(inviteRepo, matchRepo, userRepo, noteRepo, notifier, &sequenceIDGenerator{prefix: "id"})
	service.now = func() time.Time { return time.Date(2026, 6, 10, 18, 0, 0, 0, time.UTC) }

	return service, matchRepo, notifier
}

func sendFixtureInvite(t *testing.T, service *InviteService) invite.Invite {
	t.Helper()

	created, err := service.Send(t.Context(), SendInviteInput{
		FromUserID: memory.UserIDAyu,
		ToUserID:   memory.UserIDBima,
		PlayDate:   time.Date(2026, 6, 16, 0, 0, 0, 0, time.UTC),
		StartTime:  "18:00",
		EndTime:    "20:00",
		Location:   "GBK Court 1",
	})
	if err != nil {
		t.Fatalf("send invite failed: %v", err)
	}

	return created
}

func TestInviteService_Send_NotifiesRecipient(t *testing.T) {
	service, _, notifier := newInviteFixture(t)

	created := sendFixtureInvite(t, service)
	if created.Status != invite.StatusPending {
		t.Fatalf("expected pending invite, got %s", created.Status)
	}
	if len(notifier.recipients) != 1 || notifier.recipients[0] != memory.UserIDBima {
		t.Fatalf("expected notification to recipient, got %v", notifier.recipients)
	}
}

func TestInviteService_Send_SelfInvite(t *testing.T) {
	service, _, _ := newInviteFixture(t)

	_, err := service.Send(t.Context(), SendInviteInput{
		FromUserID: memory.UserIDAyu,
		ToUserID:   memory.UserIDAyu,
		PlayDate:   time.Date(2026, 6, 16, 0, 0, 0, 0, time.UTC),
		StartTime:  "18:00",
		EndTime:    "20:00",
	})
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestInviteService_Accept_CreatesMatch(t *testing.T) {
	service, matchRepo, _ := newInviteFixture(t)
	created := sendFixtureInvite(t, service)

	accepted, m, err := service.Accept(t.Context(), memory.UserIDBima, created.ID)
	if err != nil {
		t.Fatalf("accept failed: %v", err)
	}

	if accepted.Status != invite.StatusAccepted {
		t.Fatalf("expected accepted status, got %s", accepted.Status)
	}
	if accepted.MatchID != m.ID {
		t.Fatalf("expected invite to reference match %s, got %s", m.ID, accepted.MatchID)
	}
	if m.Player1ID != memory.UserIDAyu || m.Player2ID != memory.UserIDBima {
		t.Fatalf("unexpected match participants: %s vs %s", m.Player1ID, m.Player2ID)
	}
	if m.Status != match.StatusScheduled {
		t.Fatalf("expected scheduled match, got %s", m.Status)
	}

	stored, exists, err := matchRepo.GetByID(t.Context(), m.ID)
	if err != nil || !exists {
		t.Fatalf("expected stored match, exists=%v err=%v", exists, err)
	}
	if !stored.PlayDate.Equal(created.PlayDate) {
		t.Fatalf("expected play date carried over, got %v", stored.PlayDate)
	}
}

func TestInviteService_Accept_OnlyRecipientOnlyOnce(t *testing.T) {
	service, _, _ := newInviteFixture(t)
	created := sendFixtureInvite(t, service)

	if _, _, err := service.Accept(t.Context(), memory.UserIDAyu, created.ID); !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden for sender accept, got %v", err)
	}
	if _, _, err := service.Accept(t.Context(), memory.UserIDCitra, created.ID); !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden for outsider accept, got %v", err)
	}

	if _, _, err := service.Accept(t.Context(), memory.UserIDBima, created.ID); err != nil {
		t.Fatalf("accept failed: %v", err)
	}
	if _, _, err := service.Accept(t.Context(), memory.UserIDBima, created.ID); !errors.Is(err, ErrConflict) {
		t.Fatalf("expected ErrConflict on second accept, got %v", err)
	}
}

func TestInviteService_Decline(t *testing.T) {
	service, matchRepo, _ := newInviteFixture(t)
	created := sendFixtureInvite(t, service)

	declined, err := service.Decline(t.Context(), memory.UserIDBima, created.ID)
	if err != nil {
		t.Fatalf("decline failed: %v", err)
	}
	if declined.Status != invite.StatusDeclined {
		t.Fatalf("expected declined status, got %s", declined.Status)
	}
	if declined.MatchID != "" {
		t.Fatalf("declined invite must not reference a match, got %s", declined.MatchID)
	}

	matches, err := matchRepo.List(t.Context())
	if err != nil || len(matches) != 0 {
		t.Fatalf("expected no matches created, got %d (err=%v)", len(matches), err)
	}

	if _, _, err := service.Accept(t.Context(), memory.UserIDBima, created.ID); !errors.Is(err, ErrConflict) {
		t.Fatalf("expected ErrConflict accepting declined invite, got %v", err)
	}
}
