package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/riskibarqy/findrival/internal/domain/matchrequest"
	"github.com/riskibarqy/findrival/internal/domain/notification"
	"github.com/riskibarqy/findrival/internal/domain/team"
	"github.com/riskibarqy/findrival/internal/domain/user"
	"github.com/riskibarqy/findrival/internal/platform/logging"
	"github.com/sourcegraph/conc/iter"
)

const (
	DefaultMatchRequestListLimit = 100
	DefaultNotifyTimeout         = 10 * time.Second

	matchRequestNotificationTitle = "New Match Request"
	matchRequestNotificationBody  = "You have a new match request"
	matchRequestNotificationType  = "match_request"
)

// TaskRunner executes work off the request path.
type TaskRunner interface {
	Submit(task func()) error
}

type goroutineRunner struct{}

func (goroutineRunner) Submit(task func()) error {
	go task()
	return nil
}

type MatchRequestServiceConfig struct {
	ListLimit        int
	NotifyTimeout    time.Duration
	EnforceOwnership bool
}

type SendMatchRequestInput struct {
	Caller       *user.Principal
	FromTeamID   string
	ToTeamID     string
	ProposedTime *string
	Notes        *string
}

type TransitionInput struct {
	Caller    *user.Principal
	RequestID string
}

type MatchRequestService struct {
	requestRepo matchrequest.Repository
	teamRepo    team.Repository
	sender      notification.Sender
	runner      TaskRunner
	cfg         MatchRequestServiceConfig
	access      accessPolicy
	logger      *logging.Logger
	now         func() time.Time
}

func NewMatchRequestService(
	requestRepo matchrequest.Repository,
	teamRepo team.Repository,
	sender notification.Sender,
	runner TaskRunner,
	cfg MatchRequestServiceConfig,
	logger *logging.Logger,
) *MatchRequestService {
	if cfg.ListLimit <= 0 {
		cfg.ListLimit = DefaultMatchRequestListLimit
	}
	if cfg.NotifyTimeout <= 0 {
		cfg.NotifyTimeout = DefaultNotifyTimeout
	}
	if runner == nil {
		runner = goroutineRunner{}
	}
	if logger == nil {
		logger = logging.Default()
	}

	return &MatchRequestService{
		requestRepo: requestRepo,
		teamRepo:    teamRepo,
		sender:      sender,
		runner:      runner,
		cfg:         cfg,
		access:      accessPolicy{enforce: cfg.EnforceOwnership},
		logger:      logger,
		now:         time.Now,
	}
}

// Send creates a pending request between two existing teams and schedules a
// push to the receiving team. Push problems never fail the call.
func (s *MatchRequestService) Send(ctx context.Context, input SendMatchRequestInput) (matchrequest.MatchRequest, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MatchRequestService.Send")
	defer span.End()

	if err := s.access.requireCaller(input.Caller); err != nil {
		return matchrequest.MatchRequest{}, err
	}

	fromID := strings.TrimSpace(input.FromTeamID)
	toID := strings.TrimSpace(input.ToTeamID)
	if fromID == "" {
		return matchrequest.MatchRequest{}, fmt.Errorf("%w: from_team_id is required", ErrInvalidInput)
	}
	if toID == "" {
		return matchrequest.MatchRequest{}, fmt.Errorf("%w: to_team_id is required", ErrInvalidInput)
	}

	teams, err := s.lookupTeams(ctx, fromID, toID)
	if err != nil {
		return matchrequest.MatchRequest{}, err
	}
	if err := s.access.requireOwnerOfAny(input.Caller, teams[0]); err != nil {
		return matchrequest.MatchRequest{}, err
	}

	now := s.now().UTC()
	created, err := s.requestRepo.Create(ctx, matchrequest.MatchRequest{
		FromTeamID:   fromID,
		ToTeamID:     toID,
		Status:       matchrequest.StatusPending,
		ProposedTime: input.ProposedTime,
		Notes:        input.Notes,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if err != nil {
		return matchrequest.MatchRequest{}, fmt.Errorf("create match request: %w", err)
	}

	s.scheduleNotification(ctx, created)
	return created, nil
}

func (s *MatchRequestService) Accept(ctx context.Context, input TransitionInput) (matchrequest.MatchRequest, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MatchRequestService.Accept")
	defer span.End()

	return s.transition(ctx, input, matchrequest.StatusAccepted)
}

func (s *MatchRequestService) Reject(ctx context.Context, input TransitionInput) (matchrequest.MatchRequest, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MatchRequestService.Reject")
	defer span.End()

	return s.transition(ctx, input, matchrequest.StatusRejected)
}

func (s *MatchRequestService) Confirm(ctx context.Context, input TransitionInput) (matchrequest.MatchRequest, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MatchRequestService.Confirm")
	defer span.End()

	return s.transition(ctx, input, matchrequest.StatusConfirmed)
}

// List returns requests the team sent or received, or every request when
// teamID is empty.
func (s *MatchRequestService) List(ctx context.Context, teamID string) ([]matchrequest.MatchRequest, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MatchRequestService.List")
	defer span.End()

	items, err := s.requestRepo.List(ctx, matchrequest.ListFilter{
		TeamID: strings.TrimSpace(teamID),
		Limit:  s.cfg.ListLimit,
	})
	if err != nil {
		return nil, fmt.Errorf("list match requests: %w", err)
	}

	return items, nil
}

// transition overwrites the status whatever it currently is.
func (s *MatchRequestService) transition(ctx context.Context, input TransitionInput, status matchrequest.Status) (matchrequest.MatchRequest, error) {
	requestID := strings.TrimSpace(input.RequestID)
	if requestID == "" {
		return matchrequest.MatchRequest{}, fmt.Errorf("%w: match request id is required", ErrInvalidInput)
	}
	if err := s.authorizeTransition(ctx, input.Caller, requestID, status); err != nil {
		return matchrequest.MatchRequest{}, err
	}

	updated, exists, err := s.requestRepo.UpdateStatus(ctx, requestID, status)
	if err != nil {
		return matchrequest.MatchRequest{}, fmt.Errorf("update match request status: %w", err)
	}
	if !exists {
		return matchrequest.MatchRequest{}, fmt.Errorf("%w: Match request %s not found", ErrNotFound, requestID)
	}

	return updated, nil
}

// authorizeTransition lets the receiver accept or reject and either side
// confirm.
func (s *MatchRequestService) authorizeTransition(ctx context.Context, caller *user.Principal, requestID string, status matchrequest.Status) error {
	if !s.access.enforce {
		return nil
	}
	if err := s.access.requireCaller(caller); err != nil {
		return err
	}

	current, exists, err := s.requestRepo.GetByID(ctx, requestID)
	if err != nil {
		return fmt.Errorf("get match request: %w", err)
	}
	if !exists {
		return fmt.Errorf("%w: Match request %s not found", ErrNotFound, requestID)
	}

	teamIDs := []string{current.ToTeamID}
	if status == matchrequest.StatusConfirmed {
		teamIDs = []string{current.FromTeamID, current.ToTeamID}
	}

	teams := make([]team.Team, 0, len(teamIDs))
	for _, teamID := range teamIDs {
		item, exists, err := s.teamRepo.GetByID(ctx, teamID)
		if err != nil {
			return fmt.Errorf("get team by id: %w", err)
		}
		if exists {
			teams = append(teams, item)
		}
	}
	if len(teams) == 0 {
		return fmt.Errorf("%w: user=%s does not own a team on request=%s", ErrForbidden, caller.UserID, requestID)
	}

	return s.access.requireOwnerOfAny(caller, teams...)
}

type teamLookup struct {
	item   team.Team
	exists bool
	err    error
}

// lookupTeams reads all ids concurrently and reports the first missing one
// in argument order.
func (s *MatchRequestService) lookupTeams(ctx context.Context, teamIDs ...string) ([]team.Team, error) {
	results := iter.Map(teamIDs, func(teamID *string) teamLookup {
		item, exists, err := s.teamRepo.GetByID(ctx, *teamID)
		return teamLookup{item: item, exists: exists, err: err}
	})

	out := make([]team.Team, 0, len(results))
	for i, res := range results {
		if res.err != nil {
			return nil, fmt.Errorf("get team by id: %w", res.err)
		}
		if !res.exists {
			return nil, fmt.Errorf("%w: Team %s not found", ErrNotFound, teamIDs[i])
		}
		out = append(out, res.item)
	}

	return out, nil
}

func (s *MatchRequestService) scheduleNotification(ctx context.Context, item matchrequest.MatchRequest) {
	if s.sender == nil {
		return
	}

	taskCtx := context.WithoutCancel(ctx)
	err := s.runner.Submit(func() {
		notifyCtx, cancel := context.WithTimeout(taskCtx, s.cfg.NotifyTimeout)
		defer cancel()
		s.notifyReceiver(notifyCtx, item)
	})
	if err != nil {
		s.logger.WarnContext(ctx, "schedule match request notification failed",
			"match_request_id", item.ID,
			"error", err,
		)
	}
}

func (s *MatchRequestService) notifyReceiver(ctx context.Context, item matchrequest.MatchRequest) {
	receiver, exists, err := s.teamRepo.GetByID(ctx, item.ToTeamID)
	if err != nil {
		s.logger.WarnContext(ctx, "load notification receiver failed",
			"match_request_id", item.ID,
			"team_id", item.ToTeamID,
			"error", err,
		)
		return
	}
	if !exists || len(receiver.DeviceTokens) == 0 {
		s.logger.DebugContext(ctx, "skip match request notification: no device tokens",
			"match_request_id", item.ID,
			"team_id", item.ToTeamID,
		)
		return
	}

	result := s.sender.Send(ctx, notification.Message{
		Tokens: receiver.DeviceTokens,
		Title:  matchRequestNotificationTitle,
		Body:   matchRequestNotificationBody,
		Data: map[string]string{
			"type": matchRequestNotificationType,
			"id":   item.ID,
		},
	})
	if result.Err != nil {
		s.logger.WarnContext(ctx, "send match request notification failed",
			"match_request_id", item.ID,
			"team_id", item.ToTeamID,
			"error", result.Err,
		)
		return
	}
	if result.Failed > 0 {
		s.logger.WarnContext(ctx, "match request notification partially delivered",
			"match_request_id", item.ID,
			"sent", result.Sent,
			"failed", result.Failed,
		)
	}
}
