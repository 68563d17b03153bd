package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/tennispal/internal/infrastructure/repository/memory"
)

// BootstrapSeed loads the demo players and their weekly availability into
// an empty database. It is a no-op once any user row exists.
func BootstrapSeed(ctx context.Context, db *sqlx.DB) error {
	var count int
	if err := db.GetContext(ctx, &count, `SELECT COUNT(1) FROM users WHERE deleted_at IS NULL`); err != nil {
		return fmt.Errorf("count users for bootstrap seed: %w", err)
	}
	if count > 0 {
		return nil
	}

	tx, err := db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin seed tx: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	for _, u := range memory.SeedUsers() {
		sqlQuery, args, err := sqlx.Named(`
INSERT INTO users (id, name, email, phone, ntrp, elo, notify_sms, notify_email, created_at, updated_at)
VALUES (:id, :name, :email, :phone, :ntrp, :elo, :notify_sms, :notify_email, :created_at, :updated_at)
ON CONFLICT (id) DO NOTHING`, map[string]any{
			"id":           u.ID,
			"name":         u.Name,
			"email":        u.Email,
			"phone":        nullableString(u.Phone),
			"ntrp":         u.NTRP,
			"elo":          u.Elo,
			"notify_sms":   u.NotifySMS,
			"notify_email": u.NotifyEmail,
			"created_at":   u.CreatedAt.UTC(),
			"updated_at":   u.UpdatedAt.UTC(),
		})
		if err != nil {
			return fmt.Errorf("bind seed user %s query: %w", u.ID, err)
		}
		sqlQuery = tx.Rebind(sqlQuery)
		if _, err := tx.ExecContext(ctx, sqlQuery, args...); err != nil {
			return fmt.Errorf("seed user %s: %w", u.ID, err)
		}
	}

	for _, slot := range memory.SeedAvailability() {
		sqlQuery, args, err := sqlx.Named(`
INSERT INTO availabilities (id, user_id, day_of_week, start_time, end_time, created_at)
VALUES (:id, :user_id, :day_of_week, :start_time, :end_time, :created_at)
ON CONFLICT (id) DO NOTHING`, map[string]any{
			"id":          slot.ID,
			"user_id":     slot.UserID,
			"day_of_week": slot.DayOfWeek,
			"start_time":  slot.StartTime,
			"end_time":    slot.EndTime,
			"created_at":  slot.CreatedAt.UTC(),
		})
		if err != nil {
			return fmt.Errorf("bind seed availability %s query: %w", slot.ID, err)
		}
		sqlQuery = tx.Rebind(sqlQuery)
		if _, err := tx.ExecContext(ctx, sqlQuery, args...); err != nil {
			return fmt.Errorf("seed availability %s: %w", slot.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit seed tx: %w", err)
	}

	return nil
}
