package usecase

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/riskibarqy/findrival/internal/domain/team"
	"github.com/riskibarqy/findrival/internal/domain/user"
	"github.com/riskibarqy/findrival/internal/platform/logging"
)

const (
	DefaultNearbyMaxDistanceKm = 25.0
	DefaultNearbyLimit         = 50
	DefaultTeamListLimit       = 500
)

type TeamServiceConfig struct {
	ListLimit        int
	NearbyLimit      int
	EnforceOwnership bool
}

type RegisterTeamInput struct {
	Caller *user.Principal
	Team   team.Team
}

type FindNearbyInput struct {
	Longitude     float64
	Latitude      float64
	MaxDistanceKm *float64
	Sport         team.Sport
	Timeslot      team.Timeslot
}

type TeamService struct {
	teamRepo team.Repository
	cfg      TeamServiceConfig
	access   accessPolicy
	logger   *logging.Logger
}

func NewTeamService(teamRepo team.Repository, cfg TeamServiceConfig, logger *logging.Logger) *TeamService {
	if cfg.ListLimit <= 0 {
		cfg.ListLimit = DefaultTeamListLimit
	}
	if cfg.NearbyLimit <= 0 {
		cfg.NearbyLimit = DefaultNearbyLimit
	}
	if logger == nil {
		logger = logging.Default()
	}

	return &TeamService{
		teamRepo: teamRepo,
		cfg:      cfg,
		access:   accessPolicy{enforce: cfg.EnforceOwnership},
		logger:   logger,
	}
}

// Register stores a new team. Duplicate names or owners are allowed.
func (s *TeamService) Register(ctx context.Context, input RegisterTeamInput) (team.Team, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.TeamService.Register")
	defer span.End()

	item := input.Team
	item.ID = ""
	if err := s.access.requireCaller(input.Caller); err != nil {
		return team.Team{}, err
	}
	if s.access.enforce {
		owner := strings.TrimSpace(item.OwnerUID)
		switch {
		case owner == "":
			item.OwnerUID = input.Caller.UserID
		case owner != input.Caller.UserID:
			return team.Team{}, fmt.Errorf("%w: owner_uid must match the authenticated user", ErrForbidden)
		}
	}

	item = item.Normalize()
	if err := item.Validate(); err != nil {
		return team.Team{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	if err := s.teamRepo.EnsureGeoIndex(ctx); err != nil {
		s.logger.WarnContext(ctx, "ensure team geo index failed", "error", err)
	}

	created, err := s.teamRepo.Create(ctx, item)
	if err != nil {
		return team.Team{}, fmt.Errorf("create team: %w", err)
	}

	return created, nil
}

func (s *TeamService) List(ctx context.Context, sport team.Sport) ([]team.Team, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.TeamService.List")
	defer span.End()

	items, err := s.teamRepo.List(ctx, team.ListFilter{Sport: sport, Limit: s.cfg.ListLimit})
	if err != nil {
		return nil, fmt.Errorf("list teams: %w", err)
	}

	return items, nil
}

// FindNearby returns teams nearest-first within the radius. Store rejections
// of the query surface as ErrQueryFailed with the store message attached.
func (s *TeamService) FindNearby(ctx context.Context, input FindNearbyInput) ([]team.Team, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.TeamService.FindNearby")
	defer span.End()

	maxKm := DefaultNearbyMaxDistanceKm
	if input.MaxDistanceKm != nil {
		maxKm = *input.MaxDistanceKm
	}
	for _, v := range []float64{input.Longitude, input.Latitude, maxKm} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, fmt.Errorf("%w: nearby coordinates and radius must be finite", ErrInvalidInput)
		}
	}

	items, err := s.teamRepo.FindNearby(ctx, team.NearbyQuery{
		Longitude:     input.Longitude,
		Latitude:      input.Latitude,
		MaxDistanceKm: maxKm,
		Sport:         input.Sport,
		Timeslot:      input.Timeslot,
		Limit:         s.cfg.NearbyLimit,
	})
	if err != nil {
		if errors.Is(err, team.ErrGeoQuery) {
			return nil, fmt.Errorf("%w: %v", ErrQueryFailed, err)
		}
		return nil, fmt.Errorf("find nearby teams: %w", err)
	}

	return items, nil
}
