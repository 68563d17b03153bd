package postgres

import (
	"time"

	"github.com/riskibarqy/tennispal/internal/domain/post"
)

type postTableModel struct {
	ID          string     `db:"id"`
	UserID      string     `db:"user_id"`
	PlayDate    time.Time  `db:"play_date"`
	StartTime   string     `db:"start_time"`
	EndTime     string     `db:"end_time"`
	Location    *string    `db:"location"`
	Notes       *string    `db:"notes"`
	ClaimedByID *string    `db:"claimed_by_id"`
	MatchID     *string    `db:"match_id"`
	CreatedAt   time.Time  `db:"created_at"`
	DeletedAt   *time.Time `db:"deleted_at"`
}

func (m postTableModel) toDomain() post.Post {
	return post.Post{
		ID:          m.ID,
		UserID:      m.UserID,
		PlayDate:    m.PlayDate,
		StartTime:   m.StartTime,
		EndTime:     m.EndTime,
		Location:    stringFromNullable(m.Location),
		Notes:       stringFromNullable(m.Notes),
		ClaimedByID: stringFromNullable(m.ClaimedByID),
		MatchID:     stringFromNullable(m.MatchID),
		CreatedAt:   m.CreatedAt,
	}
}
