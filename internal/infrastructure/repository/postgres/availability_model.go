package postgres

import (
	"time"

	"github.com/riskibarqy/tennispal/internal/domain/availability"
)

type availabilityTableModel struct {
	ID        string     `db:"id"`
	UserID    string     `db:"user_id"`
	DayOfWeek int        `db:"day_of_week"`
	StartTime string     `db:"start_time"`
	EndTime   string     `db:"end_time"`
	CreatedAt time.Time  `db:"created_at"`
	DeletedAt *time.Time `db:"deleted_at"`
}

func (m availabilityTableModel) toDomain() availability.Slot {
	return availability.Slot{
		ID:        m.ID,
		UserID:    m.UserID,
		DayOfWeek: m.DayOfWeek,
		StartTime: m.StartTime,
		EndTime:   m.EndTime,
		CreatedAt: m.CreatedAt,
	}
}
