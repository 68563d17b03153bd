package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/tennispal/internal/domain/match"
	qb "github.com/riskibarqy/tennispal/internal/platform/querybuilder"
)

type MatchRepository struct {
	db *sqlx.DB
}

func NewMatchRepository(db *sqlx.DB) *MatchRepository {
	return &MatchRepository{db: db}
}

func (r *MatchRepository) Create(ctx context.Context, item match.Match) error {
	sets, err := marshalSets(item.Sets)
	if err != nil {
		return err
	}

	query, args, err := qb.InsertInto("matches").
		Columns("id", "player1_id", "player2_id", "play_date", "location", "match_type", "format",
			"status", "score", "sets", "winner_id", "score_submitted_by", "score_confirmed",
			"score_disputed", "created_at", "updated_at").
		Values(item.ID, item.Player1ID, item.Player2ID, item.PlayDate.UTC(), nullableString(item.Location),
			string(item.MatchType), string(item.Format), string(item.Status), nullableString(item.Score),
			sets, nullableString(item.WinnerID), nullableString(item.ScoreSubmittedBy),
			item.ScoreConfirmed, item.ScoreDisputed, item.CreatedAt.UTC(), item.UpdatedAt.UTC()).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build insert match query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("insert match: %w", err)
	}

	return nil
}

func (r *MatchRepository) GetByID(ctx context.Context, matchID string) (match.Match, bool, error) {
	query, args, err := qb.Select("*").From("matches").
		Where(
			qb.Eq("id", matchID),
			qb.IsNull("deleted_at"),
		).
		ToSQL()
	if err != nil {
		return match.Match{}, false, fmt.Errorf("build get match by id query: %w", err)
	}

	var row matchTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return match.Match{}, false, nil
		}
		return match.Match{}, false, fmt.Errorf("get match by id: %w", err)
	}

	item, err := row.toDomain()
	if err != nil {
		return match.Match{}, false, err
	}

	return item, true, nil
}

func (r *MatchRepository) ListByUser(ctx context.Context, userID string) ([]match.Match, error) {
	query, args, err := qb.Select("*").From("matches").
		Where(
			qb.Expr("(player1_id = ? OR player2_id = ?)", userID, userID),
			qb.IsNull("deleted_at"),
		).
		OrderBy("play_date DESC", "id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select matches by user query: %w", err)
	}

	return r.selectMatches(ctx, query, args)
}

func (r *MatchRepository) ListConfirmed(ctx context.Context) ([]match.Match, error) {
	query, args, err := qb.Select("*").From("matches").
		Where(
			qb.EqLiteral("status", string(match.StatusCompleted)),
			qb.Eq("score_confirmed", true),
			qb.IsNull("deleted_at"),
		).
		OrderBy("play_date DESC", "id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select confirmed matches query: %w", err)
	}

	return r.selectMatches(ctx, query, args)
}

func (r *MatchRepository) List(ctx context.Context) ([]match.Match, error) {
	query, args, err := qb.Select("*").From("matches").
		Where(qb.IsNull("deleted_at")).
		OrderBy("play_date DESC", "id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select matches query: %w", err)
	}

	return r.selectMatches(ctx, query, args)
}

func (r *MatchRepository) SubmitScoreIfUnconfirmed(ctx context.Context, item match.Match) (bool, error) {
	sets, err := marshalSets(item.Sets)
	if err != nil {
		return false, err
	}

	query, args, err := qb.Update("matches").
		Set("status", string(match.StatusCompleted)).
		Set("score", nullableString(item.Score)).
		Set("sets", sets).
		Set("winner_id", nullableString(item.WinnerID)).
		Set("score_submitted_by", nullableString(item.ScoreSubmittedBy)).
		Set("score_disputed", false).
		Set("updated_at", item.UpdatedAt.UTC()).
		Where(
			qb.Eq("id", item.ID),
			qb.Eq("score_confirmed", false),
			qb.Expr("status IN (?, ?)", string(match.StatusScheduled), string(match.StatusCompleted)),
			qb.IsNull("deleted_at"),
		).
		ToSQL()
	if err != nil {
		return false, fmt.Errorf("build submit score query: %w", err)
	}

	return r.execReportingChange(ctx, query, args, "submit score")
}

func (r *MatchRepository) ConfirmScoreIfUnconfirmed(ctx context.Context, matchID string) (bool, error) {
	query, args, err := qb.Update("matches").
		Set("score_confirmed", true).
		Set("score_disputed", false).
		SetExpr("updated_at", "NOW()").
		Where(
			qb.Eq("id", matchID),
			qb.EqLiteral("status", string(match.StatusCompleted)),
			qb.Eq("score_confirmed", false),
			qb.IsNull("deleted_at"),
		).
		ToSQL()
	if err != nil {
		return false, fmt.Errorf("build confirm score query: %w", err)
	}

	return r.execReportingChange(ctx, query, args, "confirm score")
}

func (r *MatchRepository) DisputeScoreIfUnconfirmed(ctx context.Context, matchID string) (bool, error) {
	query, args, err := qb.Update("matches").
		Set("score_disputed", true).
		SetExpr("updated_at", "NOW()").
		Where(
			qb.Eq("id", matchID),
			qb.EqLiteral("status", string(match.StatusCompleted)),
			qb.Eq("score_confirmed", false),
			qb.IsNull("deleted_at"),
		).
		ToSQL()
	if err != nil {
		return false, fmt.Errorf("build dispute score query: %w", err)
	}

	return r.execReportingChange(ctx, query, args, "dispute score")
}

func (r *MatchRepository) UpdateStatusIfActive(ctx context.Context, matchID string, to match.Status) (bool, error) {
	query, args, err := qb.Update("matches").
		Set("status", string(to)).
		SetExpr("updated_at", "NOW()").
		Where(
			qb.Eq("id", matchID),
			qb.Expr("(status = ? OR (status = ? AND score_confirmed = FALSE))",
				string(match.StatusScheduled), string(match.StatusCompleted)),
			qb.IsNull("deleted_at"),
		).
		ToSQL()
	if err != nil {
		return false, fmt.Errorf("build update match status query: %w", err)
	}

	return r.execReportingChange(ctx, query, args, "update match status")
}

func (r *MatchRepository) selectMatches(ctx context.Context, query string, args []any) ([]match.Match, error) {
	var rows []matchTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select matches: %w", err)
	}

	out := make([]match.Match, 0, len(rows))
	for _, row := range rows {
		item, err := row.toDomain()
		if err != nil {
			return nil, err
		}
		out = append(out, item)
	}

	return out, nil
}

func (r *MatchRepository) execReportingChange(ctx context.Context, query string, args []any, op string) (bool, error) {
	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("%s rows affected: %w", op, err)
	}

	return affected > 0, nil
}
