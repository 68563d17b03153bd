package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/riskibarqy/tennispal/internal/infrastructure/repository/memory"
	idgen "github.com/riskibarqy/tennispal/internal/platform/id"
)

func newAvailabilityFixture(t *testing.T) *AvailabilityService {
	t.Helper()
	return NewAvailabilityService(memory.NewAvailabilityRepository(), idgen.NewRandomGenerator())
}

func TestAvailabilityService_AddAndList(t *testing.T) {
	svc := newAvailabilityFixture(t)
	ctx := context.Background()

	slot, err := svc.Add(ctx, AddAvailabilityInput{
		UserID:    "user-ayu",
		DayOfWeek: 2,
		StartTime: "18:00",
		EndTime:   "20:00",
	})
	require.NoError(t, err)
	require.NotEmpty(t, slot.ID)
	require.Equal(t, "user-ayu", slot.UserID)

	items, err := svc.ListForUser(ctx, "user-ayu")
	require.NoError(t, err)
	require.Len(t, items, 1)
	require.Equal(t, slot.ID, items[0].ID)
}

func TestAvailabilityService_AddRejectsInvalidWindow(t *testing.T) {
	svc := newAvailabilityFixture(t)

	_, err := svc.Add(context.Background(), AddAvailabilityInput{
		UserID:    "user-ayu",
		DayOfWeek: 2,
		StartTime: "20:00",
		EndTime:   "18:00",
	})
	require.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.Add(context.Background(), AddAvailabilityInput{
		UserID:    "user-ayu",
		DayOfWeek: 9,
		StartTime: "18:00",
		EndTime:   "20:00",
	})
	require.ErrorIs(t, err, ErrInvalidInput)
}

func TestAvailabilityService_RemoveEnforcesOwnership(t *testing.T) {
	svc := newAvailabilityFixture(t)
	ctx := context.Background()

	slot, err := svc.Add(ctx, AddAvailabilityInput{
		UserID:    "user-ayu",
		DayOfWeek: 6,
		StartTime: "07:00",
		EndTime:   "09:00",
	})
	require.NoError(t, err)

	err = svc.Remove(ctx, "user-bima", slot.ID)
	require.ErrorIs(t, err, ErrForbidden)

	require.NoError(t, svc.Remove(ctx, "user-ayu", slot.ID))

	err = svc.Remove(ctx, "user-ayu", slot.ID)
	require.ErrorIs(t, err, ErrNotFound)
}
