package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/riskibarqy/tennispal/internal/domain/match"
	"github.com/riskibarqy/tennispal/internal/domain/notification"
	"github.com/riskibarqy/tennispal/internal/domain/post"
	"github.com/riskibarqy/tennispal/internal/domain/user"
	idgen "github.com/riskibarqy/tennispal/internal/platform/id"
)

type CreatePostInput struct {
	UserID    string
	PlayDate  time.Time
	StartTime string
	EndTime   string
	Location  string
	Notes     string
}

type PostService struct {
	postRepo  post.Repository
	matchRepo match.Repository
	userRepo  user.Repository
	noteRepo  notification.Repository
	notifier  Notifier
	idGen     idgen.Generator
	now       func() time.Time
}

func NewPostService(
	postRepo post.Repository,
	matchRepo match.Repository,
	userRepo user.Repository,
	noteRepo notification.Repository,
	notifier Notifier,
	idGen idgen.Generator,
) *PostService {
	if notifier == nil {
		notifier = NopNotifier{}
	}
	return &PostService{
		postRepo:  postRepo,
		matchRepo: matchRepo,
		userRepo:  userRepo,
		noteRepo:  noteRepo,
		notifier:  notifier,
		idGen:     idGen,
		now:       time.Now,
	}
}

// Create publishes an open "looking to play" announcement.
func (s *PostService) Create(ctx context.Context, input CreatePostInput) (post.Post, error) {
	input.UserID = strings.TrimSpace(input.UserID)
	if input.UserID == "" {
		return post.Post{}, fmt.Errorf("%w: user id is required", ErrInvalidInput)
	}

	postID, err := s.idGen.NewID()
	if err != nil {
		return post.Post{}, fmt.Errorf("generate post id: %w", err)
	}

	item := post.Post{
		ID:        postID,
		UserID:    input.UserID,
		PlayDate:  input.PlayDate,
		StartTime: strings.TrimSpace(input.StartTime),
		EndTime:   strings.TrimSpace(input.EndTime),
		Location:  strings.TrimSpace(input.Location),
		Notes:     strings.TrimSpace(input.Notes),
		CreatedAt: s.now().UTC(),
	}
	if err := item.Validate(); err != nil {
		return post.Post{}, fmt.Errorf("%w: %s", ErrInvalidInput, err)
	}
	if item.IsExpired(s.now().UTC()) {
		return post.Post{}, fmt.Errorf("%w: play date is in the past", ErrInvalidInput)
	}

	if err := s.postRepo.Create(ctx, item); err != nil {
		return post.Post{}, fmt.Errorf("create post: %w", err)
	}

	return item, nil
}

// ListOpen returns posts still open for claiming, hiding expired ones.
func (s *PostService) ListOpen(ctx context.Context) ([]post.Post, error) {
	items, err := s.postRepo.ListOpen(ctx)
	if err != nil {
		return nil, fmt.Errorf("list open posts: %w", err)
	}

	now := s.now().UTC()
	active := make([]post.Post, 0, len(items))
	for _, item := range items {
		if item.IsActive(now) {
			active = append(active, item)
		}
	}

	return active, nil
}

// Claim takes an open post, creating a scheduled match between the
// poster and the claimer and notifying the poster.
func (s *PostService) Claim(ctx context.Context, actorID, postID string) (post.Post, match.Match, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PostService.Claim")
	defer span.End()

	actorID = strings.TrimSpace(actorID)
	postID = strings.TrimSpace(postID)
	if actorID == "" || postID == "" {
		return post.Post{}, match.Match{}, fmt.Errorf("%w: user id and post id are required", ErrInvalidInput)
	}

	item, exists, err := s.postRepo.GetByID(ctx, postID)
	if err != nil {
		return post.Post{}, match.Match{}, fmt.Errorf("get post by id: %w", err)
	}
	if !exists {
		return post.Post{}, match.Match{}, fmt.Errorf("%w: post=%s", ErrNotFound, postID)
	}
	if item.UserID == actorID {
		return post.Post{}, match.Match{}, fmt.Errorf("%w: cannot claim your own post", ErrInvalidInput)
	}
	if !item.IsActive(s.now().UTC()) {
		return post.Post{}, match.Match{}, fmt.Errorf("%w: post is no longer open", ErrConflict)
	}

	matchID, err := s.idGen.NewID()
	if err != nil {
		return post.Post{}, match.Match{}, fmt.Errorf("generate match id: %w", err)
	}

	applied, err := s.postRepo.ClaimIfOpen(ctx, item.ID, actorID, matchID)
	if err != nil {
		return post.Post{}, match.Match{}, fmt.Errorf("claim post: %w", err)
	}
	if !applied {
		return post.Post{}, match.Match{}, fmt.Errorf("%w: post is no longer open", ErrConflict)
	}

	now := s.now().UTC()
	created := match.Match{
		ID:        matchID,
		Player1ID: item.UserID,
		Player2ID: actorID,
		PlayDate:  item.PlayDate,
		Location:  item.Location,
		MatchType: match.TypeSingles,
		Format:    match.FormatBestOfThree,
		Status:    match.StatusScheduled,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.matchRepo.Create(ctx, created); err != nil {
		return post.Post{}, match.Match{}, fmt.Errorf("create match from post: %w", err)
	}

	item.ClaimedByID = actorID
	item.MatchID = matchID

	if poster, exists, err := s.userRepo.GetByID(ctx, item.UserID); err == nil && exists {
		claimer, _, _ := s.userRepo.GetByID(ctx, actorID)
		message := claimer.Name + " claimed your post for " + item.PlayDate.Format("2006-01-02") + "."
		noteID, err := s.idGen.NewID()
		if err == nil {
			_ = s.noteRepo.Create(ctx, notification.Notification{
				ID:        noteID,
				UserID:    poster.ID,
				Message:   message,
				Link:      "/matches/" + matchID,
				CreatedAt: now,
			})
		}
		s.notifier.Notify(ctx, poster, "Post claimed", message)
	}

	return item, created, nil
}
