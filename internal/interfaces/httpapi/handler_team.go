package httpapi

import (
	"math"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/riskibarqy/findrival/internal/domain/team"
	"github.com/riskibarqy/findrival/internal/usecase"
)

func (h *Handler) RegisterTeam(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RegisterTeam")
	defer span.End()

	var req teamCreateRequest
	if err := h.decodeJSON(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	item, err := h.teamService.Register(ctx, usecase.RegisterTeamInput{
		Caller: callerFromContext(ctx),
		Team:   req.toDomain(),
	})
	if err != nil {
		h.logger.WarnContext(ctx, "register team failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, teamToPublicDTO(ctx, item))
}

func (h *Handler) ListTeams(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListTeams")
	defer span.End()

	sport := strings.TrimSpace(r.URL.Query().Get("sport"))
	items, err := h.teamService.List(ctx, team.Sport(sport))
	if err != nil {
		h.logger.WarnContext(ctx, "list teams failed", "sport", sport, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, teamsToPublicDTO(ctx, items))
}

func (h *Handler) FindNearbyTeams(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.FindNearbyTeams")
	defer span.End()

	input, err := parseNearbyQuery(r.URL.Query())
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	items, err := h.teamService.FindNearby(ctx, input)
	if err != nil {
		h.logger.WarnContext(ctx, "find nearby teams failed",
			"lng", input.Longitude,
			"lat", input.Latitude,
			"error", err,
		)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, teamsToPublicDTO(ctx, items))
}

func parseNearbyQuery(query url.Values) (usecase.FindNearbyInput, error) {
	var (
		input      usecase.FindNearbyInput
		violations []fieldViolation
	)

	lng, violation := requiredFloat(query, "lng")
	if violation != nil {
		violations = append(violations, *violation)
	}
	lat, violation := requiredFloat(query, "lat")
	if violation != nil {
		violations = append(violations, *violation)
	}

	if raw := strings.TrimSpace(query.Get("max_km")); raw != "" {
		maxKm, err := strconv.ParseFloat(raw, 64)
		switch {
		case err != nil:
			violations = append(violations, fieldViolation{Location: "max_km", Message: "value is not a valid float"})
		case !isFinite(maxKm):
			violations = append(violations, fieldViolation{Location: "max_km", Message: "value is not a finite number"})
		default:
			input.MaxDistanceKm = &maxKm
		}
	}
	if len(violations) > 0 {
		return usecase.FindNearbyInput{}, newValidationError("query", violations...)
	}

	input.Longitude = lng
	input.Latitude = lat
	input.Sport = team.Sport(strings.TrimSpace(query.Get("sport")))
	input.Timeslot = team.Timeslot(strings.TrimSpace(query.Get("timeslot")))
	return input, nil
}

func requiredFloat(query url.Values, key string) (float64, *fieldViolation) {
	raw := strings.TrimSpace(query.Get(key))
	if raw == "" {
		return 0, &fieldViolation{Location: key, Message: "field required"}
	}
	value, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, &fieldViolation{Location: key, Message: "value is not a valid float"}
	}
	if !isFinite(value) {
		return 0, &fieldViolation{Location: key, Message: "value is not a finite number"}
	}
	return value, nil
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
