package httpapi

import (
	"fmt"
	"net/http"
	"strings"

	sonic "github.com/bytedance/sonic"
	"github.com/riskibarqy/tennispal/internal/usecase"
)

func (h *Handler) ListOpenPosts(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListOpenPosts")
	defer span.End()

	items, err := h.postService.ListOpen(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "list open posts failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	out := make([]postDTO, 0, len(items))
	for _, item := range items {
		out = append(out, postToDTO(ctx, item))
	}

	writeSuccess(ctx, w, http.StatusOK, out)
}

func (h *Handler) CreatePost(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.CreatePost")
	defer span.End()

	principal, ok := principalFromContext(ctx)
	if !ok {
		writeError(ctx, w, fmt.Errorf("%w: principal is missing from request context", usecase.ErrUnauthorized))
		return
	}

	var req createPostRequest
	decoder := sonic.ConfigDefault.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&req); err != nil {
		writeError(ctx, w, fmt.Errorf("%w: invalid JSON payload: %v", usecase.ErrInvalidInput, err))
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	playDate, err := parsePlayDate(req.PlayDate)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	created, err := h.postService.Create(ctx, usecase.CreatePostInput{
		UserID:    principal.UserID,
		PlayDate:  playDate,
		StartTime: req.StartTime,
		EndTime:   req.EndTime,
		Location:  req.Location,
		Notes:     req.Notes,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "create post failed", "user_id", principal.UserID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, postToDTO(ctx, created))
}

func (h *Handler) ClaimPost(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ClaimPost")
	defer span.End()

	principal, ok := principalFromContext(ctx)
	if !ok {
		writeError(ctx, w, fmt.Errorf("%w: principal is missing from request context", usecase.ErrUnauthorized))
		return
	}

	postID := strings.TrimSpace(r.PathValue("postID"))
	claimed, created, err := h.postService.Claim(ctx, principal.UserID, postID)
	if err != nil {
		h.logger.WarnContext(ctx, "claim post failed", "user_id", principal.UserID, "post_id", postID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, claimPostResponseDTO{
		Post:  postToDTO(ctx, claimed),
		Match: matchToDTO(ctx, created),
	})
}
