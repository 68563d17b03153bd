package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/tennispal/internal/domain/invite"
	qb "github.com/riskibarqy/tennispal/internal/platform/querybuilder"
)

type InviteRepository struct {
	db *sqlx.DB
}

func NewInviteRepository(db *sqlx.DB) *InviteRepository {
	return &InviteRepository{db: db}
}

func (r *InviteRepository) Create(ctx context.Context, item invite.Invite) error {
	query, args, err := qb.InsertInto("match_invites").
		Columns("id", "from_user_id", "to_user_id", "play_date", "start_time", "end_time",
			"location", "status", "match_id", "created_at", "updated_at").
		Values(item.ID, item.FromUserID, item.ToUserID, item.PlayDate.UTC(), item.StartTime, item.EndTime,
			nullableString(item.Location), string(item.Status), nullableString(item.MatchID),
			item.CreatedAt.UTC(), item.UpdatedAt.UTC()).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build insert invite query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("insert invite: %w", err)
	}

	return nil
}

func (r *InviteRepository) GetByID(ctx context.Context, inviteID string) (invite.Invite, bool, error) {
	query, args, err := qb.Select("*").From("match_invites").
		Where(
			qb.Eq("id", inviteID),
			qb.IsNull("deleted_at"),
		).
		ToSQL()
	if err != nil {
		return invite.Invite{}, false, fmt.Errorf("build get invite by id query: %w", err)
	}

	var row inviteTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return invite.Invite{}, false, nil
		}
		return invite.Invite{}, false, fmt.Errorf("get invite by id: %w", err)
	}

	return row.toDomain(), true, nil
}

func (r *InviteRepository) ListByUser(ctx context.Context, userID string) ([]invite.Invite, error) {
	query, args, err := qb.Select("*").From("match_invites").
		Where(
			qb.Expr("(from_user_id = ? OR to_user_id = ?)", userID, userID),
			qb.IsNull("deleted_at"),
		).
		OrderBy("created_at DESC", "id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select invites by user query: %w", err)
	}

	var rows []inviteTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select invites by user: %w", err)
	}

	out := make([]invite.Invite, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}

	return out, nil
}

func (r *InviteRepository) UpdateStatusIfPending(ctx context.Context, inviteID string, to invite.Status, matchID string) (bool, error) {
	query, args, err := qb.Update("match_invites").
		Set("status", string(to)).
		Set("match_id", nullableString(matchID)).
		SetExpr("updated_at", "NOW()").
		Where(
			qb.Eq("id", inviteID),
			qb.EqLiteral("status", string(invite.StatusPending)),
			qb.IsNull("deleted_at"),
		).
		ToSQL()
	if err != nil {
		return false, fmt.Errorf("build resolve invite query: %w", err)
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return false, fmt.Errorf("resolve invite: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("resolve invite rows affected: %w", err)
	}

	return affected > 0, nil
}
