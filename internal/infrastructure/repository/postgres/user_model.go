package postgres

import (
	"time"

	"github.com/riskibarqy/tennispal/internal/domain/user"
)

type userTableModel struct {
	ID          string     `db:"id"`
	Name        string     `db:"name"`
	Email       string     `db:"email"`
	Phone       *string    `db:"phone"`
	NTRP        *float64   `db:"ntrp"`
	Elo         int        `db:"elo"`
	NotifySMS   bool       `db:"notify_sms"`
	NotifyEmail bool       `db:"notify_email"`
	CreatedAt   time.Time  `db:"created_at"`
	UpdatedAt   time.Time  `db:"updated_at"`
	DeletedAt   *time.Time `db:"deleted_at"`
}

func (m userTableModel) toDomain() user.User {
	return user.User{
		ID:          m.ID,
		Name:        m.Name,
		Email:       m.Email,
		Phone:       stringFromNullable(m.Phone),
		NTRP:        m.NTRP,
		Elo:         m.Elo,
		NotifySMS:   m.NotifySMS,
		NotifyEmail: m.NotifyEmail,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}
