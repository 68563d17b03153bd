package memory

import (
	"time"

	"github.com/riskibarqy/tennispal/internal/domain/availability"
	"github.com/riskibarqy/tennispal/internal/domain/user"
)

const (
	UserIDAyu   = "user-ayu"
	UserIDBima  = "user-bima"
	UserIDCitra = "user-citra"
	UserIDDanu  = "user-danu"
)

func ntrp(v float64) *float64 {
	return &v
}

func SeedUsers() []user.User {
	created := time.Date(2026, 5, 1, 9, 0, 0, 0, time.UTC)
	return []user.User{
		{
			ID: UserIDAyu, Name: "Ayu Lestari", Email: "ayu@example.com", Phone: "+628111000001",
			NTRP: ntrp(4.0), Elo: 1250, NotifySMS: true, NotifyEmail: true,
			CreatedAt: created, UpdatedAt: created,
		},
		{
			ID: UserIDBima, Name: "Bima Putra", Email: "bima@example.com", Phone: "+628111000002",
			NTRP: ntrp(3.5), Elo: 1180, NotifyEmail: true,
			CreatedAt: created, UpdatedAt: created,
		},
		{
			ID: UserIDCitra, Name: "Citra Dewi", Email: "citra@example.com",
			Elo:       1400,
			CreatedAt: created, UpdatedAt: created,
		},
		{
			ID: UserIDDanu, Name: "Danu Wijaya", Email: "danu@example.com", Phone: "+628111000004",
			NTRP: ntrp(4.5), Elo: 1210, NotifySMS: true,
			CreatedAt: created, UpdatedAt: created,
		},
	}
}

func SeedAvailability() []availability.Slot {
	created := time.Date(2026, 5, 1, 9, 0, 0, 0, time.UTC)
	return []availability.Slot{
		{ID: "av-ayu-1", UserID: UserIDAyu, DayOfWeek: 2, StartTime: "18:00", EndTime: "20:00", CreatedAt: created},
		{ID: "av-ayu-2", UserID: UserIDAyu, DayOfWeek: 6, StartTime: "08:00", EndTime: "11:00", CreatedAt: created},
		{ID: "av-bima-1", UserID: UserIDBima, DayOfWeek: 2, StartTime: "19:00", EndTime: "21:00", CreatedAt: created},
		{ID: "av-citra-1", UserID: UserIDCitra, DayOfWeek: 6, StartTime: "09:00", EndTime: "12:00", CreatedAt: created},
		{ID: "av-danu-1", UserID: UserIDDanu, DayOfWeek: 4, StartTime: "06:00", EndTime: "08:00", CreatedAt: created},
	}
}

// NewSeededAvailabilityRepository is a convenience for local runs and tests.
func NewSeededAvailabilityRepository() *AvailabilityRepository {
	repo := NewAvailabilityRepository()
	for _, slot := range SeedAvailability() {
		repo.items[slot.ID] = slot
		repo.orders = append(repo.orders, slot.ID)
	}
	return repo
}
