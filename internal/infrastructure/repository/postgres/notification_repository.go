package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/tennispal/internal/domain/notification"
	qb "github.com/riskibarqy/tennispal/internal/platform/querybuilder"
)

type NotificationRepository struct {
	db *sqlx.DB
}

func NewNotificationRepository(db *sqlx.DB) *NotificationRepository {
	return &NotificationRepository{db: db}
}

func (r *NotificationRepository) Create(ctx context.Context, item notification.Notification) error {
	query, args, err := qb.InsertInto("notifications").
		Columns("id", "user_id", "message", "link", "is_read", "created_at").
		Values(item.ID, item.UserID, item.Message, nullableString(item.Link), item.IsRead, item.CreatedAt.UTC()).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build insert notification query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("insert notification: %w", err)
	}

	return nil
}

func (r *NotificationRepository) ListByUser(ctx context.Context, userID string) ([]notification.Notification, error) {
	query, args, err := qb.Select("*").From("notifications").
		Where(qb.Eq("user_id", userID)).
		OrderBy("created_at DESC", "id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select notifications query: %w", err)
	}

	var rows []notificationTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select notifications: %w", err)
	}

	out := make([]notification.Notification, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}

	return out, nil
}

func (r *NotificationRepository) MarkAllRead(ctx context.Context, userID string) (int, error) {
	query, args, err := qb.Update("notifications").
		Set("is_read", true).
		Where(
			qb.Eq("user_id", userID),
			qb.Eq("is_read", false),
		).
		ToSQL()
	if err != nil {
		return 0, fmt.Errorf("build mark notifications read query: %w", err)
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("mark notifications read: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("mark notifications read rows affected: %w", err)
	}

	return int(affected), nil
}
