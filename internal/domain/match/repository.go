package match

import "context"

// Repository describes match persistence needs from use cases.
//
// The *If* methods are compare-and-set updates: they apply the change only
// while the stored row still satisfies the stated precondition and report
// whether a row was changed, so concurrent submissions and confirmations
// cannot override a finalized score.
type Repository interface {
	Create(ctx context.Context, item Match) error
	GetByID(ctx context.Context, matchID string) (Match, bool, error)
	ListByUser(ctx context.Context, userID string) ([]Match, error)
	ListConfirmed(ctx context.Context) ([]Match, error)
	List(ctx context.Context) ([]Match, error)

	// SubmitScoreIfUnconfirmed stores item's score fields and marks the
	// match completed, provided the score is not yet confirmed and the
	// match is still scheduled or completed.
	SubmitScoreIfUnconfirmed(ctx context.Context, item Match) (bool, error)

	// ConfirmScoreIfUnconfirmed flips score_confirmed on a completed,
	// not yet confirmed match and clears any dispute flag.
	ConfirmScoreIfUnconfirmed(ctx context.Context, matchID string) (bool, error)

	// DisputeScoreIfUnconfirmed flips score_disputed on a completed,
	// not yet confirmed match.
	DisputeScoreIfUnconfirmed(ctx context.Context, matchID string) (bool, error)

	// UpdateStatusIfActive moves a match that is scheduled, or completed
	// with an unconfirmed score, into the given terminal status.
	UpdateStatusIfActive(ctx context.Context, matchID string, to Status) (bool, error)
}
