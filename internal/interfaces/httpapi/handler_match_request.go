package httpapi

import (
	"context"
	"net/http"
	"strings"

	"github.com/riskibarqy/findrival/internal/domain/matchrequest"
	"github.com/riskibarqy/findrival/internal/usecase"
)

func (h *Handler) SendMatchRequest(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.SendMatchRequest")
	defer span.End()

	var req matchRequestCreateRequest
	if err := h.decodeJSON(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	item, err := h.matchRequestService.Send(ctx, usecase.SendMatchRequestInput{
		Caller:       callerFromContext(ctx),
		FromTeamID:   req.FromTeamID,
		ToTeamID:     req.ToTeamID,
		ProposedTime: req.ProposedTime,
		Notes:        req.Notes,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "send match request failed",
			"from_team_id", req.FromTeamID,
			"to_team_id", req.ToTeamID,
			"error", err,
		)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, matchRequestToPublicDTO(ctx, item))
}

func (h *Handler) AcceptMatchRequest(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.AcceptMatchRequest")
	defer span.End()

	h.transitionMatchRequest(ctx, w, r, h.matchRequestService.Accept)
}

func (h *Handler) RejectMatchRequest(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RejectMatchRequest")
	defer span.End()

	h.transitionMatchRequest(ctx, w, r, h.matchRequestService.Reject)
}

func (h *Handler) ConfirmMatchRequest(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ConfirmMatchRequest")
	defer span.End()

	h.transitionMatchRequest(ctx, w, r, h.matchRequestService.Confirm)
}

type transitionFunc func(ctx context.Context, input usecase.TransitionInput) (matchrequest.MatchRequest, error)

func (h *Handler) transitionMatchRequest(ctx context.Context, w http.ResponseWriter, r *http.Request, transition transitionFunc) {
	requestID := strings.TrimSpace(r.PathValue("requestID"))
	item, err := transition(ctx, usecase.TransitionInput{
		Caller:    callerFromContext(ctx),
		RequestID: requestID,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "match request transition failed", "request_id", requestID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, matchRequestToPublicDTO(ctx, item))
}

func (h *Handler) ListMatchRequests(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListMatchRequests")
	defer span.End()

	teamID := strings.TrimSpace(r.URL.Query().Get("team_id"))
	items, err := h.matchRequestService.List(ctx, teamID)
	if err != nil {
		h.logger.WarnContext(ctx, "list match requests failed", "team_id", teamID, "error", err)
		writeError(ctx, w, err)
		return
	}

	out := make([]matchRequestPublicDTO, 0, len(items))
	for _, item := range items {
		out = append(out, matchRequestToPublicDTO(ctx, item))
	}
	writeSuccess(ctx, w, http.StatusOK, out)
}
