package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/riskibarqy/findrival/internal/domain/team"
	"github.com/riskibarqy/findrival/internal/platform/id"
)

// TeamRepository keeps teams in insertion order, the natural order of a
// collection scan.
type TeamRepository struct {
	mu    sync.RWMutex
	order []string
	items map[string]team.Team
	ids   id.Generator
}

func NewTeamRepository(ids id.Generator, seed ...team.Team) *TeamRepository {
	if ids == nil {
		ids = id.NewHexGenerator(0)
	}
	repo := &TeamRepository{items: make(map[string]team.Team), ids: ids}
	for _, item := range seed {
		repo.order = append(repo.order, item.ID)
		repo.items[item.ID] = cloneTeam(item)
	}

	return repo
}

func (r *TeamRepository) EnsureGeoIndex(context.Context) error {
	return nil
}

func (r *TeamRepository) Create(_ context.Context, item team.Team) (team.Team, error) {
	teamID, err := r.ids.NewID()
	if err != nil {
		return team.Team{}, fmt.Errorf("generate team id: %w", err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	item.ID = teamID
	r.order = append(r.order, teamID)
	r.items[teamID] = cloneTeam(item)

	return cloneTeam(item), nil
}

func (r *TeamRepository) GetByID(_ context.Context, teamID string) (team.Team, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.items[teamID]
	if !ok {
		return team.Team{}, false, nil
	}

	return cloneTeam(item), true, nil
}

func (r *TeamRepository) List(_ context.Context, filter team.ListFilter) ([]team.Team, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]team.Team, 0, len(r.order))
	for _, teamID := range r.order {
		if filter.Limit > 0 && len(out) >= filter.Limit {
			break
		}
		item := r.items[teamID]
		if filter.Sport != "" && item.Sport != filter.Sport {
			continue
		}
		out = append(out, cloneTeam(item))
	}

	return out, nil
}

func (r *TeamRepository) FindNearby(_ context.Context, query team.NearbyQuery) ([]team.Team, error) {
	if err := validateNearbyQuery(query); err != nil {
		return nil, err
	}
	maxMeters := float64(query.MaxDistanceMeters())

	r.mu.RLock()
	defer r.mu.RUnlock()

	type candidate struct {
		item     team.Team
		distance float64
	}
	candidates := make([]candidate, 0)
	for _, teamID := range r.order {
		item := r.items[teamID]
		if query.Sport != "" && item.Sport != query.Sport {
			continue
		}
		if query.Timeslot != "" && item.Availability.Timeslot != query.Timeslot {
			continue
		}
		distance := haversineMeters(query.Longitude, query.Latitude, item.Location.Longitude(), item.Location.Latitude())
		if distance > maxMeters {
			continue
		}
		candidates = append(candidates, candidate{item: item, distance: distance})
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].distance < candidates[j].distance
	})
	if query.Limit > 0 && len(candidates) > query.Limit {
		candidates = candidates[:query.Limit]
	}

	out := make([]team.Team, 0, len(candidates))
	for _, c := range candidates {
		out = append(out, cloneTeam(c.item))
	}

	return out, nil
}

func cloneTeam(item team.Team) team.Team {
	copied := item
	copied.Location.Coordinates = append([]float64(nil), item.Location.Coordinates...)
	copied.Players = append([]string{}, item.Players...)
	copied.Availability.Days = append([]team.Weekday{}, item.Availability.Days...)
	copied.DeviceTokens = append([]string{}, item.DeviceTokens...)
	if item.Address != nil {
		address := *item.Address
		copied.Address = &address
	}
	return copied
}
