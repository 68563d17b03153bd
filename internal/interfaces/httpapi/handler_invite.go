package httpapi

import (
	"fmt"
	"net/http"
	"strings"

	sonic "github.com/bytedance/sonic"
	"github.com/riskibarqy/tennispal/internal/usecase"
)

func (h *Handler) ListMyInvites(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListMyInvites")
	defer span.End()

	principal, ok := principalFromContext(ctx)
	if !ok {
		writeError(ctx, w, fmt.Errorf("%w: principal is missing from request context", usecase.ErrUnauthorized))
		return
	}

	items, err := h.inviteService.ListForUser(ctx, principal.UserID)
	if err != nil {
		h.logger.WarnContext(ctx, "list invites failed", "user_id", principal.UserID, "error", err)
		writeError(ctx, w, err)
		return
	}

	out := make([]inviteDTO, 0, len(items))
	for _, item := range items {
		out = append(out, inviteToDTO(ctx, item))
	}

	writeSuccess(ctx, w, http.StatusOK, out)
}

func (h *Handler) SendInvite(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.SendInvite")
	defer span.End()

	principal, ok := principalFromContext(ctx)
	if !ok {
		writeError(ctx, w, fmt.Errorf("%w: principal is missing from request context", usecase.ErrUnauthorized))
		return
	}

	var req sendInviteRequest
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

	created, err := h.inviteService.Send(ctx, usecase.SendInviteInput{
		FromUserID: principal.UserID,
		ToUserID:   req.ToUserID,
		PlayDate:   playDate,
		StartTime:  req.StartTime,
		EndTime:    req.EndTime,
		Location:   req.Location,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "send invite failed", "user_id", principal.UserID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, inviteToDTO(ctx, created))
}

func (h *Handler) AcceptInvite(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.AcceptInvite")
	defer span.End()

	principal, ok := principalFromContext(ctx)
	if !ok {
		writeError(ctx, w, fmt.Errorf("%w: principal is missing from request context", usecase.ErrUnauthorized))
		return
	}

	inviteID := strings.TrimSpace(r.PathValue("inviteID"))
	accepted, created, err := h.inviteService.Accept(ctx, principal.UserID, inviteID)
	if err != nil {
		h.logger.WarnContext(ctx, "accept invite failed", "user_id", principal.UserID, "invite_id", inviteID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, acceptInviteResponseDTO{
		Invite: inviteToDTO(ctx, accepted),
		Match:  matchToDTO(ctx, created),
	})
}

func (h *Handler) DeclineInvite(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.DeclineInvite")
	defer span.End()

	principal, ok := principalFromContext(ctx)
	if !ok {
		writeError(ctx, w, fmt.Errorf("%w: principal is missing from request context", usecase.ErrUnauthorized))
		return
	}

	inviteID := strings.TrimSpace(r.PathValue("inviteID"))
	declined, err := h.inviteService.Decline(ctx, principal.UserID, inviteID)
	if err != nil {
		h.logger.WarnContext(ctx, "decline invite failed", "user_id", principal.UserID, "invite_id", inviteID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, inviteToDTO(ctx, declined))
}
