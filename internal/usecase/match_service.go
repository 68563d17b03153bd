package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/riskibarqy/tennispal/internal/domain/match"
	"github.com/riskibarqy/tennispal/internal/domain/notification"
	"github.com/riskibarqy/tennispal/internal/domain/user"
	idgen "github.com/riskibarqy/tennispal/internal/platform/id"
)

type ScheduleMatchInput struct {
	ActorID    string
	OpponentID string
	PlayDate   time.Time
	Location   string
	MatchType  match.Type
	Format     match.Format
}

// ScoreSubmission is a tagged union: structured submissions carry Sets,
// legacy submissions carry LegacyText plus an explicit winner. Exactly
// one of the two shapes must be populated.
type ScoreSubmission struct {
	Sets           []match.SetScore
	LegacyText     string
	LegacyWinnerID string
}

func (s ScoreSubmission) isLegacy() bool {
	return strings.TrimSpace(s.LegacyText) != "" || strings.TrimSpace(s.LegacyWinnerID) != ""
}

type MatchService struct {
	matchRepo match.Repository
	userRepo  user.Repository
	noteRepo  notification.Repository
	notifier  Notifier
	idGen     idgen.Generator
	now       func() time.Time
}

func NewMatchService(
	matchRepo match.Repository,
	userRepo user.Repository,
	noteRepo notification.Repository,
	notifier Notifier,
	idGen idgen.Generator,
) *MatchService {
	if notifier == nil {
		notifier = NopNotifier{}
	}
	return &MatchService{
		matchRepo: matchRepo,
		userRepo:  userRepo,
		noteRepo:  noteRepo,
		notifier:  notifier,
		idGen:     idGen,
		now:       time.Now,
	}
}

// Schedule books a future match between the caller and an opponent.
func (s *MatchService) Schedule(ctx context.Context, input ScheduleMatchInput) (match.Match, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MatchService.Schedule")
	defer span.End()

	input.ActorID = strings.TrimSpace(input.ActorID)
	input.OpponentID = strings.TrimSpace(input.OpponentID)
	input.Location = strings.TrimSpace(input.Location)

	if input.ActorID == "" {
		return match.Match{}, fmt.Errorf("%w: user id is required", ErrInvalidInput)
	}
	if input.OpponentID == "" {
		return match.Match{}, fmt.Errorf("%w: opponent id is required", ErrInvalidInput)
	}
	if input.OpponentID == input.ActorID {
		return match.Match{}, fmt.Errorf("%w: cannot schedule a match against yourself", ErrInvalidInput)
	}
	if input.PlayDate.IsZero() {
		return match.Match{}, fmt.Errorf("%w: play date is required", ErrInvalidInput)
	}
	if _, ok := match.AllTypes[input.MatchType]; !ok {
		return match.Match{}, fmt.Errorf("%w: unknown match type %q", ErrInvalidInput, input.MatchType)
	}
	if _, ok := match.AllFormats[input.Format]; !ok {
		return match.Match{}, fmt.Errorf("%w: unknown match format %q", ErrInvalidInput, input.Format)
	}

	if _, exists, err := s.userRepo.GetByID(ctx, input.OpponentID); err != nil {
		return match.Match{}, fmt.Errorf("get opponent by id: %w", err)
	} else if !exists {
		return match.Match{}, fmt.Errorf("%w: user=%s", ErrNotFound, input.OpponentID)
	}

	matchID, err := s.idGen.NewID()
	if err != nil {
		return match.Match{}, fmt.Errorf("generate match id: %w", err)
	}

	now := s.now().UTC()
	item := match.Match{
		ID:        matchID,
		Player1ID: input.ActorID,
		Player2ID: input.OpponentID,
		PlayDate:  input.PlayDate,
		Location:  input.Location,
		MatchType: input.MatchType,
		Format:    input.Format,
		Status:    match.StatusScheduled,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.matchRepo.Create(ctx, item); err != nil {
		return match.Match{}, fmt.Errorf("create match: %w", err)
	}

	return item, nil
}

func (s *MatchService) Get(ctx context.Context, actorID, matchID string) (match.Match, error) {
	item, err := s.getParticipantMatch(ctx, actorID, matchID)
	if err != nil {
		return match.Match{}, err
	}

	return item, nil
}

func (s *MatchService) ListForUser(ctx context.Context, userID string) ([]match.Match, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return nil, fmt.Errorf("%w: user id is required", ErrInvalidInput)
	}

	items, err := s.matchRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list matches by user: %w", err)
	}

	return items, nil
}

// SubmitScore records a result for the match. The submission is rejected
// once the opponent has confirmed a score; before that, resubmission
// overrides the previous result and clears any dispute.
func (s *MatchService) SubmitScore(ctx context.Context, actorID, matchID string, submission ScoreSubmission) (match.Match, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MatchService.SubmitScore")
	defer span.End()

	item, err := s.getParticipantMatch(ctx, actorID, matchID)
	if err != nil {
		return match.Match{}, err
	}
	if item.ScoreConfirmed {
		return match.Match{}, fmt.Errorf("%w: score is already confirmed", ErrConflict)
	}
	if item.Status == match.StatusCancelled || item.Status == match.StatusNoShow {
		return match.Match{}, fmt.Errorf("%w: match is %s", ErrConflict, item.Status)
	}

	var (
		score    string
		winnerID string
		sets     []match.SetScore
	)
	if submission.isLegacy() {
		if len(submission.Sets) > 0 {
			return match.Match{}, fmt.Errorf("%w: provide either sets or score text, not both", ErrInvalidInput)
		}
		score, err = match.ValidateLegacyScore(submission.LegacyText, submission.LegacyWinnerID, item.Player1ID, item.Player2ID)
		if err != nil {
			return match.Match{}, fmt.Errorf("%w: %s", ErrInvalidInput, err)
		}
		winnerID = submission.LegacyWinnerID
	} else {
		var side match.Side
		score, side, err = match.ValidateScore(submission.Sets, item.Format)
		if err != nil {
			return match.Match{}, fmt.Errorf("%w: %s", ErrInvalidInput, err)
		}
		if side == match.SideOne {
			winnerID = item.Player1ID
		} else {
			winnerID = item.Player2ID
		}
		sets = submission.Sets
	}

	item.Status = match.StatusCompleted
	item.Score = score
	item.Sets = sets
	item.WinnerID = winnerID
	item.ScoreSubmittedBy = strings.TrimSpace(actorID)
	item.ScoreDisputed = false
	item.UpdatedAt = s.now().UTC()

	applied, err := s.matchRepo.SubmitScoreIfUnconfirmed(ctx, item)
	if err != nil {
		return match.Match{}, fmt.Errorf("submit score: %w", err)
	}
	if !applied {
		return match.Match{}, fmt.Errorf("%w: score is already confirmed", ErrConflict)
	}

	opponentID := item.Opponent(item.ScoreSubmittedBy)
	s.recordAndSend(ctx, opponentID,
		"Score reported for your match: "+score+". Please confirm or dispute it.",
		"/matches/"+item.ID,
		"Match score reported")

	return item, nil
}

// ConfirmScore finalizes a submitted score. Only the non-submitting
// participant may confirm.
func (s *MatchService) ConfirmScore(ctx context.Context, actorID, matchID string) (match.Match, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MatchService.ConfirmScore")
	defer span.End()

	item, err := s.getParticipantMatch(ctx, actorID, matchID)
	if err != nil {
		return match.Match{}, err
	}
	if item.Status != match.StatusCompleted {
		return match.Match{}, fmt.Errorf("%w: no score submitted for match", ErrConflict)
	}
	if item.ScoreConfirmed {
		return match.Match{}, fmt.Errorf("%w: score is already confirmed", ErrConflict)
	}
	if item.ScoreSubmittedBy == strings.TrimSpace(actorID) {
		return match.Match{}, fmt.Errorf("%w: submitter cannot confirm their own score", ErrForbidden)
	}

	applied, err := s.matchRepo.ConfirmScoreIfUnconfirmed(ctx, matchID)
	if err != nil {
		return match.Match{}, fmt.Errorf("confirm score: %w", err)
	}
	if !applied {
		return match.Match{}, fmt.Errorf("%w: score is already confirmed", ErrConflict)
	}

	item.ScoreConfirmed = true
	item.ScoreDisputed = false

	return item, nil
}

// DisputeScore flags a submitted score as contested. The submitter may
// then correct it with a new submission.
func (s *MatchService) DisputeScore(ctx context.Context, actorID, matchID string) (match.Match, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MatchService.DisputeScore")
	defer span.End()

	item, err := s.getParticipantMatch(ctx, actorID, matchID)
	if err != nil {
		return match.Match{}, err
	}
	if item.Status != match.StatusCompleted {
		return match.Match{}, fmt.Errorf("%w: no score submitted for match", ErrConflict)
	}
	if item.ScoreConfirmed {
		return match.Match{}, fmt.Errorf("%w: score is already confirmed", ErrConflict)
	}
	if item.ScoreSubmittedBy == strings.TrimSpace(actorID) {
		return match.Match{}, fmt.Errorf("%w: submitter cannot dispute their own score", ErrForbidden)
	}

	applied, err := s.matchRepo.DisputeScoreIfUnconfirmed(ctx, matchID)
	if err != nil {
		return match.Match{}, fmt.Errorf("dispute score: %w", err)
	}
	if !applied {
		return match.Match{}, fmt.Errorf("%w: score is already confirmed", ErrConflict)
	}

	item.ScoreDisputed = true

	return item, nil
}

// Cancel moves an active match into the cancelled state. Either
// participant may cancel until the score is confirmed.
func (s *MatchService) Cancel(ctx context.Context, actorID, matchID string) (match.Match, error) {
	return s.close(ctx, actorID, matchID, match.StatusCancelled)
}

// MarkNoShow closes an active match because the opponent never appeared.
func (s *MatchService) MarkNoShow(ctx context.Context, actorID, matchID string) (match.Match, error) {
	return s.close(ctx, actorID, matchID, match.StatusNoShow)
}

func (s *MatchService) close(ctx context.Context, actorID, matchID string, to match.Status) (match.Match, error) {
	item, err := s.getParticipantMatch(ctx, actorID, matchID)
	if err != nil {
		return match.Match{}, err
	}
	if item.IsTerminal() {
		return match.Match{}, fmt.Errorf("%w: match is already %s", ErrConflict, item.Status)
	}

	applied, err := s.matchRepo.UpdateStatusIfActive(ctx, matchID, to)
	if err != nil {
		return match.Match{}, fmt.Errorf("update match status: %w", err)
	}
	if !applied {
		return match.Match{}, fmt.Errorf("%w: match can no longer be closed", ErrConflict)
	}

	item.Status = to

	return item, nil
}

func (s *MatchService) getParticipantMatch(ctx context.Context, actorID, matchID string) (match.Match, error) {
	actorID = strings.TrimSpace(actorID)
	matchID = strings.TrimSpace(matchID)
	if actorID == "" || matchID == "" {
		return match.Match{}, fmt.Errorf("%w: user id and match id are required", ErrInvalidInput)
	}

	item, exists, err := s.matchRepo.GetByID(ctx, matchID)
	if err != nil {
		return match.Match{}, fmt.Errorf("get match by id: %w", err)
	}
	if !exists {
		return match.Match{}, fmt.Errorf("%w: match=%s", ErrNotFound, matchID)
	}
	if !item.HasParticipant(actorID) {
		return match.Match{}, fmt.Errorf("%w: not a participant of match", ErrForbidden)
	}

	return item, nil
}

// recordAndSend persists an in-app notification and hands the message to
// the outbound notifier. Delivery failures never fail the request.
func (s *MatchService) recordAndSend(ctx context.Context, userID, message, link, subject string) {
	noteID, err := s.idGen.NewID()
	if err == nil {
		_ = s.noteRepo.Create(ctx, notification.Notification{
			ID:        noteID,
			UserID:    userID,
			Message:   message,
			Link:      link,
			CreatedAt: s.now().UTC(),
		})
	}

	recipient, exists, err := s.userRepo.GetByID(ctx, userID)
	if err != nil || !exists {
		return
	}
	s.notifier.Notify(ctx, recipient, subject, message)
}
