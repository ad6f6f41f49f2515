package memory

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/riskibarqy/findrival/internal/domain/team"
)

type sequenceIDs struct {
	next int
}

func (s *sequenceIDs) NewID() (string, error) {
	s.next++
	return string(rune('a'+s.next-1)) + "-id", nil
}

func newTeam(name string, sport team.Sport, lng, lat float64, slot team.Timeslot) team.Team {
	return team.Team{
		OwnerUID:     "uid-" + name,
		Name:         name,
		Sport:        sport,
		Location:     team.NewPoint(lng, lat),
		Availability: team.Availability{Days: []team.Weekday{}, Timeslot: slot},
	}.Normalize()
}

func seedTeams(t *testing.T, repo *TeamRepository, items ...team.Team) []team.Team {
	t.Helper()

	out := make([]team.Team, 0, len(items))
	for _, item := range items {
		created, err := repo.Create(context.Background(), item)
		if err != nil {
			t.Fatalf("create team %s: %v", item.Name, err)
		}
		out = append(out, created)
	}
	return out
}

func TestTeamRepository_CreateAssignsID(t *testing.T) {
	repo := NewTeamRepository(&sequenceIDs{})

	created := seedTeams(t, repo, newTeam("A", team.SportSoccer, 0, 0, team.TimeslotAny))[0]
	if created.ID != "a-id" {
		t.Fatalf("expected generated id a-id, got %q", created.ID)
	}

	got, exists, err := repo.GetByID(context.Background(), created.ID)
	if err != nil || !exists {
		t.Fatalf("expected stored team, exists=%v err=%v", exists, err)
	}
	if got.Name != "A" {
		t.Fatalf("unexpected team: %+v", got)
	}
}

func TestTeamRepository_FindNearby_RadiusAndOrder(t *testing.T) {
	repo := NewTeamRepository(nil)
	seeded := seedTeams(t, repo,
		newTeam("B", team.SportSoccer, 0, 0.01, team.TimeslotAny),
		newTeam("A", team.SportSoccer, 0, 0, team.TimeslotAny),
	)

	got, err := repo.FindNearby(context.Background(), team.NearbyQuery{MaxDistanceKm: 1, Limit: 50})
	if err != nil {
		t.Fatalf("find nearby: %v", err)
	}
	if len(got) != 1 || got[0].ID != seeded[1].ID {
		t.Fatalf("expected only team A within 1km, got %+v", got)
	}

	got, err = repo.FindNearby(context.Background(), team.NearbyQuery{MaxDistanceKm: 2, Limit: 50})
	if err != nil {
		t.Fatalf("find nearby: %v", err)
	}
	if len(got) != 2 || got[0].Name != "A" || got[1].Name != "B" {
		t.Fatalf("expected A then B within 2km, got %+v", got)
	}
}

func TestTeamRepository_FindNearby_FiltersAndLimit(t *testing.T) {
	repo := NewTeamRepository(nil)
	seedTeams(t, repo,
		newTeam("soccer-evening", team.SportSoccer, 0, 0.001, team.TimeslotEvening),
		newTeam("tennis-evening", team.SportTennis, 0, 0.002, team.TimeslotEvening),
		newTeam("soccer-morning", team.SportSoccer, 0, 0.003, team.TimeslotMorning),
		newTeam("soccer-evening-2", team.SportSoccer, 0, 0.004, team.TimeslotEvening),
	)

	got, err := repo.FindNearby(context.Background(), team.NearbyQuery{
		MaxDistanceKm: 25,
		Sport:         team.SportSoccer,
		Timeslot:      team.TimeslotEvening,
		Limit:         1,
	})
	if err != nil {
		t.Fatalf("find nearby: %v", err)
	}
	if len(got) != 1 || got[0].Name != "soccer-evening" {
		t.Fatalf("expected nearest matching team only, got %+v", got)
	}
}

func TestTeamRepository_FindNearby_InvalidPoint(t *testing.T) {
	repo := NewTeamRepository(nil)

	_, err := repo.FindNearby(context.Background(), team.NearbyQuery{Longitude: 200, MaxDistanceKm: 1})
	if !errors.Is(err, team.ErrGeoQuery) {
		t.Fatalf("expected ErrGeoQuery, got %v", err)
	}
}

func TestTeamRepository_FindNearby_NonFiniteQuery(t *testing.T) {
	repo := NewTeamRepository(nil)
	seedTeams(t, repo,
		newTeam("A", team.SportSoccer, 0, 0, team.TimeslotAny),
		newTeam("B", team.SportSoccer, 170, 80, team.TimeslotAny),
	)

	queries := []team.NearbyQuery{
		{Longitude: math.NaN(), MaxDistanceKm: 1, Limit: 50},
		{Latitude: math.Inf(1), MaxDistanceKm: 1, Limit: 50},
		{MaxDistanceKm: math.NaN(), Limit: 50},
		{MaxDistanceKm: math.Inf(1), Limit: 50},
	}
	for _, query := range queries {
		got, err := repo.FindNearby(context.Background(), query)
		if !errors.Is(err, team.ErrGeoQuery) {
			t.Fatalf("expected ErrGeoQuery for %+v, got %v (%d teams)", query, err, len(got))
		}
	}
}

func TestTeamRepository_List_SportFilterAndLimit(t *testing.T) {
	repo := NewTeamRepository(nil)
	seedTeams(t, repo,
		newTeam("one", team.SportSoccer, 0, 0, team.TimeslotAny),
		newTeam("two", team.SportHockey, 0, 0, team.TimeslotAny),
		newTeam("three", team.SportSoccer, 0, 0, team.TimeslotAny),
	)

	got, err := repo.List(context.Background(), team.ListFilter{Sport: team.SportSoccer})
	if err != nil {
		t.Fatalf("list teams: %v", err)
	}
	if len(got) != 2 || got[0].Name != "one" || got[1].Name != "three" {
		t.Fatalf("expected soccer teams in insertion order, got %+v", got)
	}

	got, err = repo.List(context.Background(), team.ListFilter{Limit: 1})
	if err != nil {
		t.Fatalf("list teams: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("expected limit to apply, got %d", len(got))
	}
}
