package mongodb

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/riskibarqy/findrival/internal/domain/matchrequest"
	"github.com/riskibarqy/findrival/internal/domain/team"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

func TestBuildNearbyFilter(t *testing.T) {
	filter := buildNearbyFilter(team.NearbyQuery{
		Longitude:     106.8,
		Latitude:      -6.2,
		MaxDistanceKm: 2.5,
		Sport:         team.SportSoccer,
		Timeslot:      team.TimeslotEvening,
	})

	if len(filter) != 3 || filter[0].Key != "location" {
		t.Fatalf("expected location, sport and timeslot clauses, got %v", filter)
	}
	near := filter[0].Value.(bson.D)[0]
	if near.Key != "$near" {
		t.Fatalf("expected $near operator, got %s", near.Key)
	}
	nearArgs := near.Value.(bson.D)
	if nearArgs[1].Key != "$maxDistance" || nearArgs[1].Value != int64(2500) {
		t.Fatalf("expected $maxDistance 2500, got %v", nearArgs[1])
	}
	coords := nearArgs[0].Value.(bson.D)[1].Value.(bson.A)
	if coords[0] != 106.8 || coords[1] != -6.2 {
		t.Fatalf("expected [lng, lat] order, got %v", coords)
	}
	if filter[1] != (bson.E{Key: "sport", Value: "soccer"}) {
		t.Fatalf("expected sport filter, got %v", filter[1])
	}
	if filter[2] != (bson.E{Key: "availability.timeslot", Value: "evening"}) {
		t.Fatalf("expected timeslot filter, got %v", filter[2])
	}
}

func TestBuildNearbyFilter_OmitsEmptyFilters(t *testing.T) {
	filter := buildNearbyFilter(team.NearbyQuery{MaxDistanceKm: 25})
	if len(filter) != 1 {
		t.Fatalf("expected only the location clause, got %v", filter)
	}
}

func TestBuildParticipationFilter(t *testing.T) {
	if got := buildParticipationFilter(""); len(got) != 0 {
		t.Fatalf("expected empty filter without team id, got %v", got)
	}

	got := buildParticipationFilter("team-a")
	if len(got) != 1 || got[0].Key != "$or" {
		t.Fatalf("expected $or filter, got %v", got)
	}
	if clauses := got[0].Value.(bson.A); len(clauses) != 2 {
		t.Fatalf("expected sender and receiver clauses, got %v", clauses)
	}
}

func TestTeamDocument_ToDomainFillsDefaults(t *testing.T) {
	oid := primitive.NewObjectID()
	doc := teamDocument{
		ID:       oid,
		Name:     "Legacy FC",
		Sport:    "soccer",
		Location: geoPointDocument{Type: "Point", Coordinates: []float64{1, 2}},
	}

	got := doc.toDomain()
	if got.ID != oid.Hex() {
		t.Fatalf("expected hex id %s, got %s", oid.Hex(), got.ID)
	}
	if got.Players == nil || got.Availability.Days == nil || got.DeviceTokens == nil {
		t.Fatalf("expected empty slices for absent fields, got %+v", got)
	}
	if got.Availability.Timeslot != team.TimeslotAny {
		t.Fatalf("expected default timeslot any, got %q", got.Availability.Timeslot)
	}
}

func TestMatchRequestDocument_ToDomainDefaultsStatus(t *testing.T) {
	got := matchRequestDocument{ID: primitive.NewObjectID(), FromTeamID: "a", ToTeamID: "b"}.toDomain()
	if got.Status != matchrequest.StatusPending {
		t.Fatalf("expected pending for missing status, got %q", got.Status)
	}
}

func TestWrapNearbyError(t *testing.T) {
	serverErr := mongo.CommandError{Code: 291, Message: "unable to find index for $geoNear query", Name: "NoQueryExecutionPlans"}
	if err := wrapNearbyError(serverErr, "find nearby teams"); !errors.Is(err, team.ErrGeoQuery) {
		t.Fatalf("expected server rejection to be a geo query error, got %v", err)
	}

	if err := wrapNearbyError(fmt.Errorf("dial: %w", context.DeadlineExceeded), "find nearby teams"); errors.Is(err, team.ErrGeoQuery) {
		t.Fatalf("expected deadline to stay a plain error, got %v", err)
	}
	if wrapNearbyError(nil, "noop") != nil {
		t.Fatalf("expected nil for nil error")
	}
}

func TestParseObjectID(t *testing.T) {
	if _, ok := parseObjectID("not-an-object-id"); ok {
		t.Fatalf("expected malformed id to be rejected")
	}
	oid := primitive.NewObjectID()
	got, ok := parseObjectID(oid.Hex())
	if !ok || got != oid {
		t.Fatalf("expected %s to parse, got %s ok=%v", oid.Hex(), got.Hex(), ok)
	}
}
