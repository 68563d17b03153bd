package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/tennispal/internal/domain/availability"
	qb "github.com/riskibarqy/tennispal/internal/platform/querybuilder"
)

type AvailabilityRepository struct {
	db *sqlx.DB
}

func NewAvailabilityRepository(db *sqlx.DB) *AvailabilityRepository {
	return &AvailabilityRepository{db: db}
}

func (r *AvailabilityRepository) Create(ctx context.Context, item availability.Slot) error {
	query, args, err := qb.InsertInto("availabilities").
		Columns("id", "user_id", "day_of_week", "start_time", "end_time", "created_at").
		Values(item.ID, item.UserID, item.DayOfWeek, item.StartTime, item.EndTime, item.CreatedAt.UTC()).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build insert availability query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("insert availability: %w", err)
	}

	return nil
}

func (r *AvailabilityRepository) GetByID(ctx context.Context, slotID string) (availability.Slot, bool, error) {
	query, args, err := qb.Select("*").From("availabilities").
		Where(
			qb.Eq("id", slotID),
			qb.IsNull("deleted_at"),
		).
		ToSQL()
	if err != nil {
		return availability.Slot{}, false, fmt.Errorf("build get availability by id query: %w", err)
	}

	var row availabilityTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return availability.Slot{}, false, nil
		}
		return availability.Slot{}, false, fmt.Errorf("get availability by id: %w", err)
	}

	return row.toDomain(), true, nil
}

func (r *AvailabilityRepository) ListByUser(ctx context.Context, userID string) ([]availability.Slot, error) {
	query, args, err := qb.Select("*").From("availabilities").
		Where(
			qb.Eq("user_id", userID),
			qb.IsNull("deleted_at"),
		).
		OrderBy("day_of_week", "start_time", "id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select availabilities by user query: %w", err)
	}

	var rows []availabilityTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select availabilities by user: %w", err)
	}

	out := make([]availability.Slot, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}

	return out, nil
}

func (r *AvailabilityRepository) ListAll(ctx context.Context) ([]availability.Slot, error) {
	query, args, err := qb.Select("*").From("availabilities").
		Where(qb.IsNull("deleted_at")).
		OrderBy("user_id", "day_of_week", "start_time").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select availabilities query: %w", err)
	}

	var rows []availabilityTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select availabilities: %w", err)
	}

	out := make([]availability.Slot, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}

	return out, nil
}

func (r *AvailabilityRepository) Delete(ctx context.Context, slotID string) error {
	query, args, err := qb.Update("availabilities").
		SetExpr("deleted_at", "NOW()").
		Where(
			qb.Eq("id", slotID),
			qb.IsNull("deleted_at"),
		).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build delete availability query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("delete availability: %w", err)
	}

	return nil
}
