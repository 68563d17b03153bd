package usecase

import (
	"errors"
	"testing"
	"time"

	"github.com/riskibarqy/tennispal/internal/domain/notification"
	"github.com/riskibarqy/tennispal/internal/infrastructure/repository/memory"
)

func TestNotificationService_ListAndMarkRead(t *testing.T) {
	noteRepo := memory.NewNotificationRepository()
	created := time.Date(2026, 6, 1, 9, 0, 0, 0, time.UTC)

	for _, n := range []notification.Notification{
		{ID: "n1", UserID: memory.UserIDAyu, Message: "Bima sent you an invite", CreatedAt: created},
		{ID: "n2", UserID: memory.UserIDAyu, Message: "Bima submitted a score", CreatedAt: created.Add(time.Hour)},
		{ID: "n3", UserID: memory.UserIDBima, Message: "Ayu claimed your post", CreatedAt: created},
	} {
		if err := noteRepo.Create(t.Context(), n); err != nil {
			t.Fatalf("seed notification: %v", err)
		}
	}

	service := NewNotificationService(noteRepo)

	items, err := service.ListForUser(t.Context(), memory.UserIDAyu)
	if err != nil {
		t.Fatalf("list notifications failed: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("expected 2 notifications, got %d", len(items))
	}
	if items[0].ID != "n2" {
		t.Fatalf("expected newest notification first, got %s", items[0].ID)
	}

	updated, err := service.MarkAllRead(t.Context(), memory.UserIDAyu)
	if err != nil {
		t.Fatalf("mark read failed: %v", err)
	}
	if updated != 2 {
		t.Fatalf("expected 2 notifications flipped, got %d", updated)
	}

	// A second pass finds nothing left to flip.
	updated, err = service.MarkAllRead(t.Context(), memory.UserIDAyu)
	if err != nil {
		t.Fatalf("mark read failed: %v", err)
	}
	if updated != 0 {
		t.Fatalf("expected no unread notifications, got %d", updated)
	}

	items, err = service.ListForUser(t.Context(), memory.UserIDBima)
	if err != nil {
		t.Fatalf("list notifications failed: %v", err)
	}
	if len(items) != 1 || items[0].IsRead {
		t.Fatalf("expected Bima's notification untouched, got %+v", items)
	}
}

func TestNotificationService_RequiresUserID(t *testing.T) {
	service := NewNotificationService(memory.NewNotificationRepository())

	if _, err := service.ListForUser(t.Context(), "  "); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
	if _, err := service.MarkAllRead(t.Context(), ""); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}
