package httpapi

import (
	"context"
	"io"

	sonic "github.com/bytedance/sonic"
	"github.com/riskibarqy/findrival/internal/domain/matchrequest"
	"github.com/riskibarqy/findrival/internal/domain/team"
)

func decodeBody(body io.Reader, dst any) error {
	return sonic.ConfigDefault.NewDecoder(body).Decode(dst)
}

type serviceInfoDTO struct {
	Service string `json:"service"`
	Version string `json:"version"`
}

type geoPointDTO struct {
	Type        string    `json:"type" validate:"omitempty,eq=Point"`
	Coordinates []float64 `json:"coordinates" validate:"required,len=2"`
}

type availabilityDTO struct {
	Days     []string `json:"days" validate:"omitempty,dive,oneof=mon tue wed thu fri sat sun"`
	Timeslot *string  `json:"timeslot" validate:"omitempty,oneof=morning afternoon evening any"`
}

type teamCreateRequest struct {
	OwnerUID     string           `json:"owner_uid"`
	Name         string           `json:"name" validate:"required"`
	Sport        string           `json:"sport" validate:"required,oneof=soccer basketball tennis cricket volleyball badminton rugby hockey other"`
	Location     *geoPointDTO     `json:"location" validate:"required"`
	Address      *string          `json:"address"`
	Players      []string         `json:"players"`
	Availability *availabilityDTO `json:"availability"`
	DeviceTokens []string         `json:"device_tokens"`
}

func (r teamCreateRequest) toDomain() team.Team {
	item := team.Team{
		OwnerUID:     r.OwnerUID,
		Name:         r.Name,
		Sport:        team.Sport(r.Sport),
		Address:      r.Address,
		Players:      r.Players,
		DeviceTokens: r.DeviceTokens,
	}
	if r.Location != nil {
		item.Location = team.Point{Type: r.Location.Type, Coordinates: r.Location.Coordinates}
	}
	if r.Availability != nil {
		days := make([]team.Weekday, 0, len(r.Availability.Days))
		for _, day := range r.Availability.Days {
			days = append(days, team.Weekday(day))
		}
		item.Availability.Days = days
		if r.Availability.Timeslot != nil {
			item.Availability.Timeslot = team.Timeslot(*r.Availability.Timeslot)
		}
	}
	return item
}

type teamPublicDTO struct {
	ID           string                `json:"id"`
	Name         string                `json:"name"`
	Sport        string                `json:"sport"`
	Location     geoPointDTO           `json:"location"`
	Address      *string               `json:"address"`
	Players      []string              `json:"players"`
	Availability availabilityPublicDTO `json:"availability"`
}

type availabilityPublicDTO struct {
	Days     []string `json:"days"`
	Timeslot string   `json:"timeslot"`
}

func teamToPublicDTO(ctx context.Context, v team.Team) teamPublicDTO {
	_, span := startSpan(ctx, "httpapi.teamToPublicDTO")
	defer span.End()

	v = v.Normalize()
	days := make([]string, 0, len(v.Availability.Days))
	for _, day := range v.Availability.Days {
		days = append(days, string(day))
	}

	return teamPublicDTO{
		ID:    v.ID,
		Name:  v.Name,
		Sport: string(v.Sport),
		Location: geoPointDTO{
			Type:        v.Location.Type,
			Coordinates: append([]float64(nil), v.Location.Coordinates...),
		},
		Address: v.Address,
		Players: append([]string{}, v.Players...),
		Availability: availabilityPublicDTO{
			Days:     days,
			Timeslot: string(v.Availability.Timeslot),
		},
	}
}

func teamsToPublicDTO(ctx context.Context, items []team.Team) []teamPublicDTO {
	out := make([]teamPublicDTO, 0, len(items))
	for _, item := range items {
		out = append(out, teamToPublicDTO(ctx, item))
	}
	return out
}

// Status is accepted for compatibility with older clients and always
// replaced by pending.
type matchRequestCreateRequest struct {
	FromTeamID   string  `json:"from_team_id" validate:"required"`
	ToTeamID     string  `json:"to_team_id" validate:"required"`
	Status       string  `json:"status" validate:"omitempty,oneof=pending accepted rejected confirmed"`
	ProposedTime *string `json:"proposed_time"`
	Notes        *string `json:"notes"`
}

type matchRequestPublicDTO struct {
	ID           string  `json:"id"`
	FromTeamID   string  `json:"from_team_id"`
	ToTeamID     string  `json:"to_team_id"`
	Status       string  `json:"status"`
	ProposedTime *string `json:"proposed_time"`
	Notes        *string `json:"notes"`
}

func matchRequestToPublicDTO(ctx context.Context, v matchrequest.MatchRequest) matchRequestPublicDTO {
	_, span := startSpan(ctx, "httpapi.matchRequestToPublicDTO")
	defer span.End()

	status := v.Status
	if status == "" {
		status = matchrequest.StatusPending
	}

	return matchRequestPublicDTO{
		ID:           v.ID,
		FromTeamID:   v.FromTeamID,
		ToTeamID:     v.ToTeamID,
		Status:       string(status),
		ProposedTime: v.ProposedTime,
		Notes:        v.Notes,
	}
}
