package post

import "context"

// Repository describes post persistence needs from use cases.
type Repository interface {
	Create(ctx context.Context, item Post) error
	GetByID(ctx context.Context, postID string) (Post, bool, error)
	ListOpen(ctx context.Context) ([]Post, error)
	ListByUser(ctx context.Context, userID string) ([]Post, error)

	// ClaimIfOpen assigns the post to claimerID and records the created
	// match, provided nobody claimed it first.
	ClaimIfOpen(ctx context.Context, postID, claimerID, matchID string) (bool, error)
}
