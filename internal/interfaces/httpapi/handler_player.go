package httpapi

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/riskibarqy/tennispal/internal/usecase"
)

func (h *Handler) ListPlayers(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListPlayers")
	defer span.End()

	var day *int
	if raw := strings.TrimSpace(r.URL.Query().Get("day")); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			writeError(ctx, w, fmt.Errorf("%w: day must be an integer between 0 and 6", usecase.ErrInvalidInput))
			return
		}
		day = &parsed
	}

	items, err := h.userService.ListPlayers(ctx, day)
	if err != nil {
		h.logger.ErrorContext(ctx, "list players failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	out := make([]playerPublicDTO, 0, len(items))
	for _, item := range items {
		out = append(out, userToPublicDTO(ctx, item))
	}

	writeSuccess(ctx, w, http.StatusOK, out)
}

func (h *Handler) GetPlayer(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetPlayer")
	defer span.End()

	playerID := strings.TrimSpace(r.PathValue("playerID"))
	item, err := h.userService.GetProfile(ctx, playerID)
	if err != nil {
		h.logger.WarnContext(ctx, "get player failed", "player_id", playerID, "error", err)
		writeError(ctx, w, err)
		return
	}

	stats, err := h.statsService.GetForUser(ctx, playerID)
	if err != nil {
		h.logger.WarnContext(ctx, "get player stats failed", "player_id", playerID, "error", err)
		writeError(ctx, w, err)
		return
	}

	slots, err := h.availabilityService.ListForUser(ctx, playerID)
	if err != nil {
		h.logger.WarnContext(ctx, "list player availability failed", "player_id", playerID, "error", err)
		writeError(ctx, w, err)
		return
	}

	recent, err := h.statsService.RecentMatches(ctx, playerID, 10)
	if err != nil {
		h.logger.WarnContext(ctx, "list player recent matches failed", "player_id", playerID, "error", err)
		writeError(ctx, w, err)
		return
	}

	profile := playerProfileDTO{
		Player:        userToPublicDTO(ctx, item),
		Stats:         statsToDTO(ctx, stats),
		Availability:  make([]availabilityDTO, 0, len(slots)),
		RecentMatches: make([]matchDTO, 0, len(recent)),
	}
	for _, slot := range slots {
		profile.Availability = append(profile.Availability, availabilityToDTO(ctx, slot))
	}
	for _, m := range recent {
		profile.RecentMatches = append(profile.RecentMatches, matchToDTO(ctx, m))
	}

	writeSuccess(ctx, w, http.StatusOK, profile)
}

func (h *Handler) GetMyStats(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetMyStats")
	defer span.End()

	principal, ok := principalFromContext(ctx)
	if !ok {
		writeError(ctx, w, fmt.Errorf("%w: principal is missing from request context", usecase.ErrUnauthorized))
		return
	}

	stats, err := h.statsService.GetForUser(ctx, principal.UserID)
	if err != nil {
		h.logger.WarnContext(ctx, "get my stats failed", "user_id", principal.UserID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, statsToDTO(ctx, stats))
}

func (h *Handler) GetPlayerStats(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetPlayerStats")
	defer span.End()

	playerID := strings.TrimSpace(r.PathValue("playerID"))
	stats, err := h.statsService.GetForUser(ctx, playerID)
	if err != nil {
		h.logger.WarnContext(ctx, "get player stats failed", "player_id", playerID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, statsToDTO(ctx, stats))
}

func (h *Handler) GetHeadToHead(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetHeadToHead")
	defer span.End()

	principal, ok := principalFromContext(ctx)
	if !ok {
		writeError(ctx, w, fmt.Errorf("%w: principal is missing from request context", usecase.ErrUnauthorized))
		return
	}

	opponentID := strings.TrimSpace(r.PathValue("playerID"))
	h2h, err := h.statsService.GetHeadToHead(ctx, principal.UserID, opponentID)
	if err != nil {
		h.logger.WarnContext(ctx, "get head to head failed", "user_id", principal.UserID, "opponent_id", opponentID, "error", err)
		writeError(ctx, w, err)
		return
	}

	matches := make([]matchDTO, 0, len(h2h.Matches))
	for _, m := range h2h.Matches {
		matches = append(matches, matchToDTO(ctx, m))
	}

	writeSuccess(ctx, w, http.StatusOK, headToHeadDTO{
		UserID:       h2h.UserID,
		OpponentID:   h2h.OpponentID,
		UserWins:     h2h.UserWins,
		OpponentWins: h2h.OpponentWins,
		Matches:      matches,
	})
}

func (h *Handler) GetLeaderboard(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetLeaderboard")
	defer span.End()

	entries, err := h.statsService.Leaderboard(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "get leaderboard failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	out := make([]leaderboardEntryDTO, 0, len(entries))
	for i, entry := range entries {
		out = append(out, leaderboardEntryDTO{
			Rank:   i + 1,
			UserID: entry.UserID,
			Name:   entry.Name,
			Elo:    entry.Elo,
			Wins:   entry.Wins,
			Losses: entry.Losses,
		})
	}

	writeSuccess(ctx, w, http.StatusOK, out)
}

func (h *Handler) GetSuggestions(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetSuggestions")
	defer span.End()

	principal, ok := principalFromContext(ctx)
	if !ok {
		writeError(ctx, w, fmt.Errorf("%w: principal is missing from request context", usecase.ErrUnauthorized))
		return
	}

	limit := 0
	if raw := strings.TrimSpace(r.URL.Query().Get("limit")); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			writeError(ctx, w, fmt.Errorf("%w: limit must be a positive integer", usecase.ErrInvalidInput))
			return
		}
		limit = parsed
	}

	suggestions, err := h.matchmakingService.Suggest(ctx, principal.UserID, limit)
	if err != nil {
		h.logger.WarnContext(ctx, "get suggestions failed", "user_id", principal.UserID, "error", err)
		writeError(ctx, w, err)
		return
	}

	out := make([]suggestionDTO, 0, len(suggestions))
	for _, s := range suggestions {
		out = append(out, suggestionDTO{
			Player:  userToPublicDTO(ctx, s.User),
			Score:   s.Score,
			Reasons: s.Reasons,
		})
	}

	writeSuccess(ctx, w, http.StatusOK, out)
}
