package postgres

import (
	"time"

	"github.com/riskibarqy/tennispal/internal/domain/invite"
)

type inviteTableModel struct {
	ID         string     `db:"id"`
	FromUserID string     `db:"from_user_id"`
	ToUserID   string     `db:"to_user_id"`
	PlayDate   time.Time  `db:"play_date"`
	StartTime  string     `db:"start_time"`
	EndTime    string     `db:"end_time"`
	Location   *string    `db:"location"`
	Status     string     `db:"status"`
	MatchID    *string    `db:"match_id"`
	CreatedAt  time.Time  `db:"created_at"`
	UpdatedAt  time.Time  `db:"updated_at"`
	DeletedAt  *time.Time `db:"deleted_at"`
}

func (m inviteTableModel) toDomain() invite.Invite {
	return invite.Invite{
		ID:         m.ID,
		FromUserID: m.FromUserID,
		ToUserID:   m.ToUserID,
		PlayDate:   m.PlayDate,
		StartTime:  m.StartTime,
		EndTime:    m.EndTime,
		Location:   stringFromNullable(m.Location),
		Status:     invite.Status(m.Status),
		MatchID:    stringFromNullable(m.MatchID),
		CreatedAt:  m.CreatedAt,
		UpdatedAt:  m.UpdatedAt,
	}
}
