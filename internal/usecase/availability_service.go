package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/riskibarqy/tennispal/internal/domain/availability"
	idgen "github.com/riskibarqy/tennispal/internal/platform/id"
)

type AddAvailabilityInput struct {
	UserID    string
	DayOfWeek int
	StartTime string
	EndTime   string
}

type AvailabilityService struct {
	slotRepo availability.Repository
	idGen    idgen.Generator
	now      func() time.Time
}

func NewAvailabilityService(slotRepo availability.Repository, idGen idgen.Generator) *AvailabilityService {
	return &AvailabilityService{
		slotRepo: slotRepo,
		idGen:    idGen,
		now:      time.Now,
	}
}

func (s *AvailabilityService) Add(ctx context.Context, input AddAvailabilityInput) (availability.Slot, error) {
	input.UserID = strings.TrimSpace(input.UserID)
	if input.UserID == "" {
		return availability.Slot{}, fmt.Errorf("%w: user id is required", ErrInvalidInput)
	}

	slotID, err := s.idGen.NewID()
	if err != nil {
		return availability.Slot{}, fmt.Errorf("generate availability id: %w", err)
	}

	item := availability.Slot{
		ID:        slotID,
		UserID:    input.UserID,
		DayOfWeek: input.DayOfWeek,
		StartTime: strings.TrimSpace(input.StartTime),
		EndTime:   strings.TrimSpace(input.EndTime),
		CreatedAt: s.now().UTC(),
	}
	if err := item.Validate(); err != nil {
		return availability.Slot{}, fmt.Errorf("%w: %s", ErrInvalidInput, err)
	}

	if err := s.slotRepo.Create(ctx, item); err != nil {
		return availability.Slot{}, fmt.Errorf("create availability: %w", err)
	}

	return item, nil
}

func (s *AvailabilityService) ListForUser(ctx context.Context, userID string) ([]availability.Slot, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return nil, fmt.Errorf("%w: user id is required", ErrInvalidInput)
	}

	items, err := s.slotRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list availability by user: %w", err)
	}

	return items, nil
}

// Remove deletes one of the caller's own availability windows.
func (s *AvailabilityService) Remove(ctx context.Context, actorID, slotID string) error {
	actorID = strings.TrimSpace(actorID)
	slotID = strings.TrimSpace(slotID)
	if actorID == "" || slotID == "" {
		return fmt.Errorf("%w: user id and availability id are required", ErrInvalidInput)
	}

	item, exists, err := s.slotRepo.GetByID(ctx, slotID)
	if err != nil {
		return fmt.Errorf("get availability by id: %w", err)
	}
	if !exists {
		return fmt.Errorf("%w: availability=%s", ErrNotFound, slotID)
	}
	if item.UserID != actorID {
		return fmt.Errorf("%w: availability belongs to another user", ErrForbidden)
	}

	if err := s.slotRepo.Delete(ctx, slotID); err != nil {
		return fmt.Errorf("delete availability: %w", err)
	}

	return nil
}
