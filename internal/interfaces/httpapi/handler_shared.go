package httpapi

import (
	"context"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/riskibarqy/tennispal/internal/domain/availability"
	"github.com/riskibarqy/tennispal/internal/domain/invite"
	"github.com/riskibarqy/tennispal/internal/domain/match"
	"github.com/riskibarqy/tennispal/internal/domain/notification"
	"github.com/riskibarqy/tennispal/internal/domain/post"
	"github.com/riskibarqy/tennispal/internal/domain/user"
	"github.com/riskibarqy/tennispal/internal/platform/logging"
	"github.com/riskibarqy/tennispal/internal/usecase"
)

const datePathLayout = "2006-01-02"

type Handler struct {
	userService         *usecase.UserService
	availabilityService *usecase.AvailabilityService
	matchService        *usecase.MatchService
	inviteService       *usecase.InviteService
	postService         *usecase.PostService
	statsService        *usecase.StatsService
	matchmakingService  *usecase.MatchmakingService
	notificationService *usecase.NotificationService
	logger              *logging.Logger
	validator           *validator.Validate
}

func NewHandler(
	userService *usecase.UserService,
	availabilityService *usecase.AvailabilityService,
	matchService *usecase.MatchService,
	inviteService *usecase.InviteService,
	postService *usecase.PostService,
	statsService *usecase.StatsService,
	matchmakingService *usecase.MatchmakingService,
	notificationService *usecase.NotificationService,
	logger *logging.Logger,
) *Handler {
	if logger == nil {
		logger = logging.Default()
	}

	return &Handler{
		userService:         userService,
		availabilityService: availabilityService,
		matchService:        matchService,
		inviteService:       inviteService,
		postService:         postService,
		statsService:        statsService,
		matchmakingService:  matchmakingService,
		notificationService: notificationService,
		logger:              logger,
		validator:           validator.New(),
	}
}

func (h *Handler) validateRequest(ctx context.Context, payload any) error {
	ctx, span := startSpan(ctx, "httpapi.Handler.validateRequest")
	defer span.End()

	if err := h.validator.StructCtx(ctx, payload); err != nil {
		return fmt.Errorf("%w: validation failed: %v", usecase.ErrInvalidInput, err)
	}

	return nil
}

type registerUserRequest struct {
	Name        string   `json:"name" validate:"required,max=100"`
	Email       string   `json:"email" validate:"required,email"`
	Phone       string   `json:"phone" validate:"omitempty,max=20"`
	NTRP        *float64 `json:"ntrp" validate:"omitempty,gte=1,lte=7"`
	NotifySMS   bool     `json:"notify_sms"`
	NotifyEmail bool     `json:"notify_email"`
}

type updateProfileRequest struct {
	Name        *string  `json:"name" validate:"omitempty,max=100"`
	Phone       *string  `json:"phone" validate:"omitempty,max=20"`
	NTRP        *float64 `json:"ntrp" validate:"omitempty,gte=1,lte=7"`
	NotifySMS   *bool    `json:"notify_sms"`
	NotifyEmail *bool    `json:"notify_email"`
}

type addAvailabilityRequest struct {
	DayOfWeek int    `json:"day_of_week" validate:"gte=0,lte=6"`
	StartTime string `json:"start_time" validate:"required"`
	EndTime   string `json:"end_time" validate:"required"`
}

type scheduleMatchRequest struct {
	OpponentID string `json:"opponent_id" validate:"required"`
	PlayDate   string `json:"play_date" validate:"required"`
	Location   string `json:"location" validate:"omitempty,max=200"`
	MatchType  string `json:"match_type" validate:"required,oneof=singles doubles"`
	Format     string `json:"format" validate:"required,oneof=best_of_3 best_of_5 pro_set"`
}

type submitScoreRequest struct {
	Sets      []setScoreDTO `json:"sets" validate:"omitempty,max=5,dive"`
	ScoreText string        `json:"score_text" validate:"omitempty,max=100"`
	WinnerID  string        `json:"winner_id" validate:"omitempty"`
}

type setScoreDTO struct {
	P1Games  int          `json:"p1_games"`
	P2Games  int          `json:"p2_games"`
	Tiebreak *tiebreakDTO `json:"tiebreak,omitempty"`
}

type tiebreakDTO struct {
	P1Points int `json:"p1_points"`
	P2Points int `json:"p2_points"`
}

type sendInviteRequest struct {
	ToUserID  string `json:"to_user_id" validate:"required"`
	PlayDate  string `json:"play_date" validate:"required"`
	StartTime string `json:"start_time" validate:"required"`
	EndTime   string `json:"end_time" validate:"required"`
	Location  string `json:"location" validate:"omitempty,max=200"`
}

type createPostRequest struct {
	PlayDate  string `json:"play_date" validate:"required"`
	StartTime string `json:"start_time" validate:"required"`
	EndTime   string `json:"end_time" validate:"required"`
	Location  string `json:"location" validate:"omitempty,max=200"`
	Notes     string `json:"notes" validate:"omitempty,max=500"`
}

type userDTO struct {
	ID           string   `json:"id"`
	Name         string   `json:"name"`
	Email        string   `json:"email"`
	Phone        string   `json:"phone,omitempty"`
	NTRP         *float64 `json:"ntrp,omitempty"`
	Elo          int      `json:"elo"`
	NotifySMS    bool     `json:"notify_sms"`
	NotifyEmail  bool     `json:"notify_email"`
	CreatedAtUTC string   `json:"created_at_utc"`
}

type playerPublicDTO struct {
	ID   string   `json:"id"`
	Name string   `json:"name"`
	NTRP *float64 `json:"ntrp,omitempty"`
	Elo  int      `json:"elo"`
}

type playerProfileDTO struct {
	Player        playerPublicDTO   `json:"player"`
	Stats         playerStatsDTO    `json:"stats"`
	Availability  []availabilityDTO `json:"availability"`
	RecentMatches []matchDTO        `json:"recent_matches"`
}

type availabilityDTO struct {
	ID        string `json:"id"`
	DayOfWeek int    `json:"day_of_week"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
}

type matchDTO struct {
	ID               string        `json:"id"`
	Player1ID        string        `json:"player1_id"`
	Player2ID        string        `json:"player2_id"`
	PlayDate         string        `json:"play_date"`
	Location         string        `json:"location,omitempty"`
	MatchType        string        `json:"match_type"`
	Format           string        `json:"format"`
	Status           string        `json:"status"`
	Score            string        `json:"score,omitempty"`
	Sets             []setScoreDTO `json:"sets,omitempty"`
	WinnerID         string        `json:"winner_id,omitempty"`
	ScoreSubmittedBy string        `json:"score_submitted_by,omitempty"`
	ScoreConfirmed   bool          `json:"score_confirmed"`
	ScoreDisputed    bool          `json:"score_disputed"`
}

type inviteDTO struct {
	ID         string `json:"id"`
	FromUserID string `json:"from_user_id"`
	ToUserID   string `json:"to_user_id"`
	PlayDate   string `json:"play_date"`
	StartTime  string `json:"start_time"`
	EndTime    string `json:"end_time"`
	Location   string `json:"location,omitempty"`
	Status     string `json:"status"`
	MatchID    string `json:"match_id,omitempty"`
}

type postDTO struct {
	ID          string `json:"id"`
	UserID      string `json:"user_id"`
	PlayDate    string `json:"play_date"`
	StartTime   string `json:"start_time"`
	EndTime     string `json:"end_time"`
	Location    string `json:"location,omitempty"`
	Notes       string `json:"notes,omitempty"`
	ClaimedByID string `json:"claimed_by_id,omitempty"`
	MatchID     string `json:"match_id,omitempty"`
}

type claimPostResponseDTO struct {
	Post  postDTO  `json:"post"`
	Match matchDTO `json:"match"`
}

type acceptInviteResponseDTO struct {
	Invite inviteDTO `json:"invite"`
	Match  matchDTO  `json:"match"`
}

type playerStatsDTO struct {
	UserID          string `json:"user_id"`
	Wins            int    `json:"wins"`
	Losses          int    `json:"losses"`
	MatchesPlayed   int    `json:"matches_played"`
	UniqueOpponents int    `json:"unique_opponents"`
	Reliability     int    `json:"reliability"`
}

type headToHeadDTO struct {
	UserID       string     `json:"user_id"`
	OpponentID   string     `json:"opponent_id"`
	UserWins     int        `json:"user_wins"`
	OpponentWins int        `json:"opponent_wins"`
	Matches      []matchDTO `json:"matches"`
}

type leaderboardEntryDTO struct {
	Rank   int    `json:"rank"`
	UserID string `json:"user_id"`
	Name   string `json:"name"`
	Elo    int    `json:"elo"`
	Wins   int    `json:"wins"`
	Losses int    `json:"losses"`
}

type suggestionDTO struct {
	Player  playerPublicDTO `json:"player"`
	Score   float64         `json:"score"`
	Reasons []string        `json:"reasons"`
}

type notificationDTO struct {
	ID           string `json:"id"`
	Message      string `json:"message"`
	Link         string `json:"link,omitempty"`
	IsRead       bool   `json:"is_read"`
	CreatedAtUTC string `json:"created_at_utc"`
}

type markReadResponseDTO struct {
	Updated int `json:"updated"`
}

func userToDTO(ctx context.Context, v user.User) userDTO {
	ctx, span := startSpan(ctx, "httpapi.userToDTO")
	defer span.End()

	return userDTO{
		ID:           v.ID,
		Name:         v.Name,
		Email:        v.Email,
		Phone:        v.Phone,
		NTRP:         v.NTRP,
		Elo:          v.Elo,
		NotifySMS:    v.NotifySMS,
		NotifyEmail:  v.NotifyEmail,
		CreatedAtUTC: v.CreatedAt.UTC().Format(time.RFC3339),
	}
}

func userToPublicDTO(ctx context.Context, v user.User) playerPublicDTO {
	ctx, span := startSpan(ctx, "httpapi.userToPublicDTO")
	defer span.End()

	return playerPublicDTO{
		ID:   v.ID,
		Name: v.Name,
		NTRP: v.NTRP,
		Elo:  v.Elo,
	}
}

func availabilityToDTO(ctx context.Context, v availability.Slot) availabilityDTO {
	ctx, span := startSpan(ctx, "httpapi.availabilityToDTO")
	defer span.End()

	return availabilityDTO{
		ID:        v.ID,
		DayOfWeek: v.DayOfWeek,
		StartTime: v.StartTime,
		EndTime:   v.EndTime,
	}
}

func matchToDTO(ctx context.Context, v match.Match) matchDTO {
	ctx, span := startSpan(ctx, "httpapi.matchToDTO")
	defer span.End()

	sets := make([]setScoreDTO, 0, len(v.Sets))
	for _, s := range v.Sets {
		dto := setScoreDTO{P1Games: s.P1Games, P2Games: s.P2Games}
		if s.Tiebreak != nil {
			dto.Tiebreak = &tiebreakDTO{
				P1Points: s.Tiebreak.P1Points,
				P2Points: s.Tiebreak.P2Points,
			}
		}
		sets = append(sets, dto)
	}

	return matchDTO{
		ID:               v.ID,
		Player1ID:        v.Player1ID,
		Player2ID:        v.Player2ID,
		PlayDate:         v.PlayDate.UTC().Format(datePathLayout),
		Location:         v.Location,
		MatchType:        string(v.MatchType),
		Format:           string(v.Format),
		Status:           string(v.Status),
		Score:            v.Score,
		Sets:             sets,
		WinnerID:         v.WinnerID,
		ScoreSubmittedBy: v.ScoreSubmittedBy,
		ScoreConfirmed:   v.ScoreConfirmed,
		ScoreDisputed:    v.ScoreDisputed,
	}
}

func inviteToDTO(ctx context.Context, v invite.Invite) inviteDTO {
	ctx, span := startSpan(ctx, "httpapi.inviteToDTO")
	defer span.End()

	return inviteDTO{
		ID:         v.ID,
		FromUserID: v.FromUserID,
		ToUserID:   v.ToUserID,
		PlayDate:   v.PlayDate.UTC().Format(datePathLayout),
		StartTime:  v.StartTime,
		EndTime:    v.EndTime,
		Location:   v.Location,
		Status:     string(v.Status),
		MatchID:    v.MatchID,
	}
}

func postToDTO(ctx context.Context, v post.Post) postDTO {
	ctx, span := startSpan(ctx, "httpapi.postToDTO")
	defer span.End()

	return postDTO{
		ID:          v.ID,
		UserID:      v.UserID,
		PlayDate:    v.PlayDate.UTC().Format(datePathLayout),
		StartTime:   v.StartTime,
		EndTime:     v.EndTime,
		Location:    v.Location,
		Notes:       v.Notes,
		ClaimedByID: v.ClaimedByID,
		MatchID:     v.MatchID,
	}
}

func notificationToDTO(ctx context.Context, v notification.Notification) notificationDTO {
	ctx, span := startSpan(ctx, "httpapi.notificationToDTO")
	defer span.End()

	return notificationDTO{
		ID:           v.ID,
		Message:      v.Message,
		Link:         v.Link,
		IsRead:       v.IsRead,
		CreatedAtUTC: v.CreatedAt.UTC().Format(time.RFC3339),
	}
}

func statsToDTO(ctx context.Context, v usecase.PlayerStats) playerStatsDTO {
	ctx, span := startSpan(ctx, "httpapi.statsToDTO")
	defer span.End()

	return playerStatsDTO{
		UserID:          v.UserID,
		Wins:            v.Wins,
		Losses:          v.Losses,
		MatchesPlayed:   v.MatchesPlayed,
		UniqueOpponents: v.UniqueOpponents,
		Reliability:     v.Reliability,
	}
}

func setsFromDTO(sets []setScoreDTO) []match.SetScore {
	out := make([]match.SetScore, 0, len(sets))
	for _, s := range sets {
		item := match.SetScore{P1Games: s.P1Games, P2Games: s.P2Games}
		if s.Tiebreak != nil {
			item.Tiebreak = &match.TiebreakScore{
				P1Points: s.Tiebreak.P1Points,
				P2Points: s.Tiebreak.P2Points,
			}
		}
		out = append(out, item)
	}
	return out
}

func parsePlayDate(v string) (time.Time, error) {
	parsed, err := time.Parse(datePathLayout, v)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: play_date must be YYYY-MM-DD", usecase.ErrInvalidInput)
	}
	return parsed.UTC(), nil
}
