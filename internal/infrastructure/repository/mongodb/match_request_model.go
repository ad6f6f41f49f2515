package mongodb

import (
	"time"

	"github.com/riskibarqy/findrival/internal/domain/matchrequest"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type matchRequestDocument struct {
	ID           primitive.ObjectID `bson:"_id,omitempty"`
	FromTeamID   string             `bson:"from_team_id"`
	ToTeamID     string             `bson:"to_team_id"`
	Status       string             `bson:"status"`
	ProposedTime *string            `bson:"proposed_time"`
	Notes        *string            `bson:"notes"`
	CreatedAt    time.Time          `bson:"created_at,omitempty"`
	UpdatedAt    time.Time          `bson:"updated_at,omitempty"`
}

func newMatchRequestDocument(item matchrequest.MatchRequest) matchRequestDocument {
	status := item.Status
	if status == "" {
		status = matchrequest.StatusPending
	}

	return matchRequestDocument{
		FromTeamID:   item.FromTeamID,
		ToTeamID:     item.ToTeamID,
		Status:       string(status),
		ProposedTime: item.ProposedTime,
		Notes:        item.Notes,
		CreatedAt:    item.CreatedAt,
		UpdatedAt:    item.UpdatedAt,
	}
}

func (d matchRequestDocument) toDomain() matchrequest.MatchRequest {
	status := matchrequest.Status(d.Status)
	if status == "" {
		status = matchrequest.StatusPending
	}

	return matchrequest.MatchRequest{
		ID:           d.ID.Hex(),
		FromTeamID:   d.FromTeamID,
		ToTeamID:     d.ToTeamID,
		Status:       status,
		ProposedTime: d.ProposedTime,
		Notes:        d.Notes,
		CreatedAt:    d.CreatedAt,
		UpdatedAt:    d.UpdatedAt,
	}
}
