package mongodb

import (
	"time"

	"github.com/riskibarqy/findrival/internal/domain/team"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type geoPointDocument struct {
	Type        string    `bson:"type"`
	Coordinates []float64 `bson:"coordinates"`
}

type availabilityDocument struct {
	Days     []string `bson:"days"`
	Timeslot string   `bson:"timeslot"`
}

type teamDocument struct {
	ID           primitive.ObjectID   `bson:"_id,omitempty"`
	OwnerUID     string               `bson:"owner_uid"`
	Name         string               `bson:"name"`
	Sport        string               `bson:"sport"`
	Location     geoPointDocument     `bson:"location"`
	Address      *string              `bson:"address"`
	Players      []string             `bson:"players"`
	Availability availabilityDocument `bson:"availability"`
	DeviceTokens []string             `bson:"device_tokens"`
	CreatedAt    time.Time            `bson:"created_at,omitempty"`
	UpdatedAt    time.Time            `bson:"updated_at,omitempty"`
}

func newTeamDocument(item team.Team, now time.Time) teamDocument {
	item = item.Normalize()

	days := make([]string, 0, len(item.Availability.Days))
	for _, day := range item.Availability.Days {
		days = append(days, string(day))
	}

	return teamDocument{
		OwnerUID: item.OwnerUID,
		Name:     item.Name,
		Sport:    string(item.Sport),
		Location: geoPointDocument{
			Type:        item.Location.Type,
			Coordinates: item.Location.Coordinates,
		},
		Address:      item.Address,
		Players:      item.Players,
		Availability: availabilityDocument{Days: days, Timeslot: string(item.Availability.Timeslot)},
		DeviceTokens: item.DeviceTokens,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

// toDomain fills defaults for fields older documents may lack.
func (d teamDocument) toDomain() team.Team {
	days := make([]team.Weekday, 0, len(d.Availability.Days))
	for _, day := range d.Availability.Days {
		days = append(days, team.Weekday(day))
	}

	return team.Team{
		ID:       d.ID.Hex(),
		OwnerUID: d.OwnerUID,
		Name:     d.Name,
		Sport:    team.Sport(d.Sport),
		Location: team.Point{
			Type:        d.Location.Type,
			Coordinates: d.Location.Coordinates,
		},
		Address:      d.Address,
		Players:      d.Players,
		Availability: team.Availability{Days: days, Timeslot: team.Timeslot(d.Availability.Timeslot)},
		DeviceTokens: d.DeviceTokens,
	}.Normalize()
}
