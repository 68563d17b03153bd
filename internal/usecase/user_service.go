package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/riskibarqy/tennispal/internal/domain/availability"
	"github.com/riskibarqy/tennispal/internal/domain/user"
	idgen "github.com/riskibarqy/tennispal/internal/platform/id"
)

type RegisterUserInput struct {
	Name        string
	Email       string
	Phone       string
	NTRP        *float64
	NotifySMS   bool
	NotifyEmail bool
}

type UpdateProfileInput struct {
	UserID      string
	Name        *string
	Phone       *string
	NTRP        *float64
	NotifySMS   *bool
	NotifyEmail *bool
}

type UserService struct {
	userRepo user.Repository
	slotRepo availability.Repository
	idGen    idgen.Generator
	now      func() time.Time
}

func NewUserService(userRepo user.Repository, slotRepo availability.Repository, idGen idgen.Generator) *UserService {
	return &UserService{
		userRepo: userRepo,
		slotRepo: slotRepo,
		idGen:    idGen,
		now:      time.Now,
	}
}

// Register creates a new player account with the default starting rating.
func (s *UserService) Register(ctx context.Context, input RegisterUserInput) (user.User, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.UserService.Register")
	defer span.End()

	input.Name = strings.TrimSpace(input.Name)
	input.Email = strings.ToLower(strings.TrimSpace(input.Email))
	input.Phone = strings.TrimSpace(input.Phone)

	userID, err := s.idGen.NewID()
	if err != nil {
		return user.User{}, fmt.Errorf("generate user id: %w", err)
	}

	now := s.now().UTC()
	item := user.User{
		ID:          userID,
		Name:        input.Name,
		Email:       input.Email,
		Phone:       input.Phone,
		NTRP:        input.NTRP,
		Elo:         user.DefaultElo,
		NotifySMS:   input.NotifySMS,
		NotifyEmail: input.NotifyEmail,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := item.Validate(); err != nil {
		return user.User{}, fmt.Errorf("%w: %s", ErrInvalidInput, err)
	}

	if err := s.userRepo.Create(ctx, item); err != nil {
		if errors.Is(err, user.ErrDuplicateIdentifier) {
			return user.User{}, fmt.Errorf("%w: email or phone already registered", ErrConflict)
		}
		return user.User{}, fmt.Errorf("create user: %w", err)
	}

	return item, nil
}

func (s *UserService) GetProfile(ctx context.Context, userID string) (user.User, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.UserService.GetProfile")
	defer span.End()

	userID = strings.TrimSpace(userID)
	if userID == "" {
		return user.User{}, fmt.Errorf("%w: user id is required", ErrInvalidInput)
	}

	item, exists, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return user.User{}, fmt.Errorf("get user by id: %w", err)
	}
	if !exists {
		return user.User{}, fmt.Errorf("%w: user=%s", ErrNotFound, userID)
	}

	return item, nil
}

// ListPlayers returns all registered players. When day is non-nil only
// players with an availability window on that weekday are returned.
func (s *UserService) ListPlayers(ctx context.Context, day *int) ([]user.User, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.UserService.ListPlayers")
	defer span.End()

	if day != nil && (*day < 0 || *day > 6) {
		return nil, fmt.Errorf("%w: day must be between 0 and 6", ErrInvalidInput)
	}

	items, err := s.userRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	if day == nil {
		return items, nil
	}

	slots, err := s.slotRepo.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list availability: %w", err)
	}
	availableOn := make(map[string]struct{}, len(slots))
	for _, slot := range slots {
		if slot.DayOfWeek == *day {
			availableOn[slot.UserID] = struct{}{}
		}
	}

	filtered := make([]user.User, 0, len(items))
	for _, item := range items {
		if _, ok := availableOn[item.ID]; ok {
			filtered = append(filtered, item)
		}
	}

	return filtered, nil
}

// UpdateProfile applies the provided fields to the caller's account.
// Nil pointers leave the stored value untouched.
func (s *UserService) UpdateProfile(ctx context.Context, input UpdateProfileInput) (user.User, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.UserService.UpdateProfile")
	defer span.End()

	input.UserID = strings.TrimSpace(input.UserID)
	if input.UserID == "" {
		return user.User{}, fmt.Errorf("%w: user id is required", ErrInvalidInput)
	}

	item, exists, err := s.userRepo.GetByID(ctx, input.UserID)
	if err != nil {
		return user.User{}, fmt.Errorf("get user by id: %w", err)
	}
	if !exists {
		return user.User{}, fmt.Errorf("%w: user=%s", ErrNotFound, input.UserID)
	}

	if input.Name != nil {
		item.Name = strings.TrimSpace(*input.Name)
	}
	if input.Phone != nil {
		item.Phone = strings.TrimSpace(*input.Phone)
	}
	if input.NTRP != nil {
		item.NTRP = input.NTRP
	}
	if input.NotifySMS != nil {
		item.NotifySMS = *input.NotifySMS
	}
	if input.NotifyEmail != nil {
		item.NotifyEmail = *input.NotifyEmail
	}
	item.UpdatedAt = s.now().UTC()

	if err := item.Validate(); err != nil {
		return user.User{}, fmt.Errorf("%w: %s", ErrInvalidInput, err)
	}

	if err := s.userRepo.Update(ctx, item); err != nil {
		if errors.Is(err, user.ErrDuplicateIdentifier) {
			return user.User{}, fmt.Errorf("%w: phone already registered", ErrConflict)
		}
		return user.User{}, fmt.Errorf("update user: %w", err)
	}

	return item, nil
}
