package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/riskibarqy/tennispal/internal/domain/invite"
	"github.com/riskibarqy/tennispal/internal/domain/match"
	"github.com/riskibarqy/tennispal/internal/domain/notification"
	"github.com/riskibarqy/tennispal/internal/domain/user"
	idgen "github.com/riskibarqy/tennispal/internal/platform/id"
)

type SendInviteInput struct {
	FromUserID string
	ToUserID   string
	PlayDate   time.Time
	StartTime  string
	EndTime    string
	Location   string
}

type InviteService struct {
	inviteRepo invite.Repository
	matchRepo  match.Repository
	userRepo   user.Repository
	noteRepo   notification.Repository
	notifier   Notifier
	idGen      idgen.Generator
	now        func() time.Time
}

func NewInviteService(
	inviteRepo invite.Repository,
	matchRepo match.Repository,
	userRepo user.Repository,
	noteRepo notification.Repository,
	notifier Notifier,
	idGen idgen.Generator,
) *InviteService {
	if notifier == nil {
		notifier = NopNotifier{}
	}
	return &InviteService{
		inviteRepo: inviteRepo,
		matchRepo:  matchRepo,
		userRepo:   userRepo,
		noteRepo:   noteRepo,
		notifier:   notifier,
		idGen:      idGen,
		now:        time.Now,
	}
}

// Send creates a pending invite and notifies the recipient.
func (s *InviteService) Send(ctx context.Context, input SendInviteInput) (invite.Invite, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.InviteService.Send")
	defer span.End()

	input.FromUserID = strings.TrimSpace(input.FromUserID)
	input.ToUserID = strings.TrimSpace(input.ToUserID)
	input.Location = strings.TrimSpace(input.Location)

	sender, exists, err := s.userRepo.GetByID(ctx, input.FromUserID)
	if err != nil {
		return invite.Invite{}, fmt.Errorf("get sender by id: %w", err)
	}
	if !exists {
		return invite.Invite{}, fmt.Errorf("%w: user=%s", ErrNotFound, input.FromUserID)
	}
	recipient, exists, err := s.userRepo.GetByID(ctx, input.ToUserID)
	if err != nil {
		return invite.Invite{}, fmt.Errorf("get recipient by id: %w", err)
	}
	if !exists {
		return invite.Invite{}, fmt.Errorf("%w: user=%s", ErrNotFound, input.ToUserID)
	}

	inviteID, err := s.idGen.NewID()
	if err != nil {
		return invite.Invite{}, fmt.Errorf("generate invite id: %w", err)
	}

	now := s.now().UTC()
	item := invite.Invite{
		ID:         inviteID,
		FromUserID: input.FromUserID,
		ToUserID:   input.ToUserID,
		PlayDate:   input.PlayDate,
		StartTime:  strings.TrimSpace(input.StartTime),
		EndTime:    strings.TrimSpace(input.EndTime),
		Location:   input.Location,
		Status:     invite.StatusPending,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := item.Validate(); err != nil {
		return invite.Invite{}, fmt.Errorf("%w: %s", ErrInvalidInput, err)
	}

	if err := s.inviteRepo.Create(ctx, item); err != nil {
		return invite.Invite{}, fmt.Errorf("create invite: %w", err)
	}

	message := sender.Name + " invited you to play on " + item.PlayDate.Format("2006-01-02") + "."
	s.recordAndSend(ctx, recipient, message, "/invites/"+item.ID, "New match invite")

	return item, nil
}

// Accept resolves a pending invite and creates the scheduled match.
// Only the invited user may accept, and only once.
func (s *InviteService) Accept(ctx context.Context, actorID, inviteID string) (invite.Invite, match.Match, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.InviteService.Accept")
	defer span.End()

	item, err := s.getInvite(ctx, actorID, inviteID)
	if err != nil {
		return invite.Invite{}, match.Match{}, err
	}
	if item.ToUserID != strings.TrimSpace(actorID) {
		return invite.Invite{}, match.Match{}, fmt.Errorf("%w: only the invited user can accept", ErrForbidden)
	}
	if item.Status != invite.StatusPending {
		return invite.Invite{}, match.Match{}, fmt.Errorf("%w: invite is already %s", ErrConflict, item.Status)
	}

	matchID, err := s.idGen.NewID()
	if err != nil {
		return invite.Invite{}, match.Match{}, fmt.Errorf("generate match id: %w", err)
	}

	// Resolve the invite first so a racing second accept loses before
	// any match exists.
	applied, err := s.inviteRepo.UpdateStatusIfPending(ctx, item.ID, invite.StatusAccepted, matchID)
	if err != nil {
		return invite.Invite{}, match.Match{}, fmt.Errorf("accept invite: %w", err)
	}
	if !applied {
		return invite.Invite{}, match.Match{}, fmt.Errorf("%w: invite is no longer pending", ErrConflict)
	}

	now := s.now().UTC()
	created := match.Match{
		ID:        matchID,
		Player1ID: item.FromUserID,
		Player2ID: item.ToUserID,
		PlayDate:  item.PlayDate,
		Location:  item.Location,
		MatchType: match.TypeSingles,
		Format:    match.FormatBestOfThree,
		Status:    match.StatusScheduled,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.matchRepo.Create(ctx, created); err != nil {
		return invite.Invite{}, match.Match{}, fmt.Errorf("create match from invite: %w", err)
	}

	item.Status = invite.StatusAccepted
	item.MatchID = matchID
	item.UpdatedAt = now

	if sender, exists, err := s.userRepo.GetByID(ctx, item.FromUserID); err == nil && exists {
		message := "Your invite for " + item.PlayDate.Format("2006-01-02") + " was accepted."
		s.recordAndSend(ctx, sender, message, "/matches/"+matchID, "Invite accepted")
	}

	return item, created, nil
}

// Decline resolves a pending invite without creating a match.
func (s *InviteService) Decline(ctx context.Context, actorID, inviteID string) (invite.Invite, error) {
	item, err := s.getInvite(ctx, actorID, inviteID)
	if err != nil {
		return invite.Invite{}, err
	}
	if item.ToUserID != strings.TrimSpace(actorID) {
		return invite.Invite{}, fmt.Errorf("%w: only the invited user can decline", ErrForbidden)
	}
	if item.Status != invite.StatusPending {
		return invite.Invite{}, fmt.Errorf("%w: invite is already %s", ErrConflict, item.Status)
	}

	applied, err := s.inviteRepo.UpdateStatusIfPending(ctx, item.ID, invite.StatusDeclined, "")
	if err != nil {
		return invite.Invite{}, fmt.Errorf("decline invite: %w", err)
	}
	if !applied {
		return invite.Invite{}, fmt.Errorf("%w: invite is no longer pending", ErrConflict)
	}

	item.Status = invite.StatusDeclined
	item.UpdatedAt = s.now().UTC()

	return item, nil
}

// ListForUser returns invites the user sent or received.
func (s *InviteService) ListForUser(ctx context.Context, userID string) ([]invite.Invite, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return nil, fmt.Errorf("%w: user id is required", ErrInvalidInput)
	}

	items, err := s.inviteRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list invites by user: %w", err)
	}

	return items, nil
}

func (s *InviteService) getInvite(ctx context.Context, actorID, inviteID string) (invite.Invite, error) {
	actorID = strings.TrimSpace(actorID)
	inviteID = strings.TrimSpace(inviteID)
	if actorID == "" || inviteID == "" {
		return invite.Invite{}, fmt.Errorf("%w: user id and invite id are required", ErrInvalidInput)
	}

	item, exists, err := s.inviteRepo.GetByID(ctx, inviteID)
	if err != nil {
		return invite.Invite{}, fmt.Errorf("get invite by id: %w", err)
	}
	if !exists {
		return invite.Invite{}, fmt.Errorf("%w: invite=%s", ErrNotFound, inviteID)
	}
	if item.FromUserID != actorID && item.ToUserID != actorID {
		return invite.Invite{}, fmt.Errorf("%w: not a participant of invite", ErrForbidden)
	}

	return item, nil
}

func (s *InviteService) recordAndSend(ctx context.Context, recipient user.User, message, link, subject string) {
	noteID, err := s.idGen.NewID()
	if err == nil {
		_ = s.noteRepo.Create(ctx, notification.Notification{
			ID:        noteID,
			UserID:    recipient.ID,
			Message:   message,
			Link:      link,
			CreatedAt: s.now().UTC(),
		})
	}

	s.notifier.Notify(ctx, recipient, subject, message)
}
