package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/tennispal/internal/domain/post"
	qb "github.com/riskibarqy/tennispal/internal/platform/querybuilder"
)

type PostRepository struct {
	db *sqlx.DB
}

func NewPostRepository(db *sqlx.DB) *PostRepository {
	return &PostRepository{db: db}
}

func (r *PostRepository) Create(ctx context.Context, item post.Post) error {
	query, args, err := qb.InsertInto("posts").
		Columns("id", "user_id", "play_date", "start_time", "end_time", "location", "notes",
			"claimed_by_id", "match_id", "created_at").
		Values(item.ID, item.UserID, item.PlayDate.UTC(), item.StartTime, item.EndTime,
			nullableString(item.Location), nullableString(item.Notes),
			nullableString(item.ClaimedByID), nullableString(item.MatchID), item.CreatedAt.UTC()).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build insert post query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("insert post: %w", err)
	}

	return nil
}

func (r *PostRepository) GetByID(ctx context.Context, postID string) (post.Post, bool, error) {
	query, args, err := qb.Select("*").From("posts").
		Where(
			qb.Eq("id", postID),
			qb.IsNull("deleted_at"),
		).
		ToSQL()
	if err != nil {
		return post.Post{}, false, fmt.Errorf("build get post by id query: %w", err)
	}

	var row postTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return post.Post{}, false, nil
		}
		return post.Post{}, false, fmt.Errorf("get post by id: %w", err)
	}

	return row.toDomain(), true, nil
}

func (r *PostRepository) ListOpen(ctx context.Context) ([]post.Post, error) {
	query, args, err := qb.Select("*").From("posts").
		Where(
			qb.IsNull("claimed_by_id"),
			qb.IsNull("deleted_at"),
		).
		OrderBy("play_date", "created_at", "id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select open posts query: %w", err)
	}

	return r.selectPosts(ctx, query, args)
}

func (r *PostRepository) ListByUser(ctx context.Context, userID string) ([]post.Post, error) {
	query, args, err := qb.Select("*").From("posts").
		Where(
			qb.Eq("user_id", userID),
			qb.IsNull("deleted_at"),
		).
		OrderBy("created_at DESC", "id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select posts by user query: %w", err)
	}

	return r.selectPosts(ctx, query, args)
}

func (r *PostRepository) ClaimIfOpen(ctx context.Context, postID, claimerID, matchID string) (bool, error) {
	query, args, err := qb.Update("posts").
		Set("claimed_by_id", claimerID).
		Set("match_id", matchID).
		Where(
			qb.Eq("id", postID),
			qb.IsNull("claimed_by_id"),
			qb.IsNull("deleted_at"),
		).
		ToSQL()
	if err != nil {
		return false, fmt.Errorf("build claim post query: %w", err)
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return false, fmt.Errorf("claim post: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("claim post rows affected: %w", err)
	}

	return affected > 0, nil
}

func (r *PostRepository) selectPosts(ctx context.Context, query string, args []any) ([]post.Post, error) {
	var rows []postTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select posts: %w", err)
	}

	out := make([]post.Post, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}

	return out, nil
}
