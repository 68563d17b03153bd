package postgres

import (
	"time"

	"github.com/riskibarqy/tennispal/internal/domain/notification"
)

type notificationTableModel struct {
	ID        string    `db:"id"`
	UserID    string    `db:"user_id"`
	Message   string    `db:"message"`
	Link      *string   `db:"link"`
	IsRead    bool      `db:"is_read"`
	CreatedAt time.Time `db:"created_at"`
}

func (m notificationTableModel) toDomain() notification.Notification {
	return notification.Notification{
		ID:        m.ID,
		UserID:    m.UserID,
		Message:   m.Message,
		Link:      stringFromNullable(m.Link),
		IsRead:    m.IsRead,
		CreatedAt: m.CreatedAt,
	}
}
