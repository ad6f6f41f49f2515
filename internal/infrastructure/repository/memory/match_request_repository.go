package memory

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/riskibarqy/findrival/internal/domain/matchrequest"
	"github.com/riskibarqy/findrival/internal/platform/id"
)

type MatchRequestRepository struct {
	mu    sync.RWMutex
	order []string
	items map[string]matchrequest.MatchRequest
	ids   id.Generator
	now   func() time.Time
}

func NewMatchRequestRepository(ids id.Generator) *MatchRequestRepository {
	if ids == nil {
		ids = id.NewHexGenerator(0)
	}
	return &MatchRequestRepository{
		items: make(map[string]matchrequest.MatchRequest),
		ids:   ids,
		now:   time.Now,
	}
}

func (r *MatchRequestRepository) Create(_ context.Context, item matchrequest.MatchRequest) (matchrequest.MatchRequest, error) {
	requestID, err := r.ids.NewID()
	if err != nil {
		return matchrequest.MatchRequest{}, fmt.Errorf("generate match request id: %w", err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	item.ID = requestID
	if item.Status == "" {
		item.Status = matchrequest.StatusPending
	}
	r.order = append(r.order, requestID)
	r.items[requestID] = cloneMatchRequest(item)

	return cloneMatchRequest(item), nil
}

func (r *MatchRequestRepository) GetByID(_ context.Context, requestID string) (matchrequest.MatchRequest, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.items[requestID]
	if !ok {
		return matchrequest.MatchRequest{}, false, nil
	}

	return cloneMatchRequest(item), true, nil
}

func (r *MatchRequestRepository) UpdateStatus(_ context.Context, requestID string, status matchrequest.Status) (matchrequest.MatchRequest, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	item, ok := r.items[requestID]
	if !ok {
		return matchrequest.MatchRequest{}, false, nil
	}
	item.Status = status
	item.UpdatedAt = r.now().UTC()
	r.items[requestID] = item

	return cloneMatchRequest(item), true, nil
}

func (r *MatchRequestRepository) List(_ context.Context, filter matchrequest.ListFilter) ([]matchrequest.MatchRequest, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]matchrequest.MatchRequest, 0)
	for _, requestID := range r.order {
		if filter.Limit > 0 && len(out) >= filter.Limit {
			break
		}
		item := r.items[requestID]
		if filter.TeamID != "" && !item.Involves(filter.TeamID) {
			continue
		}
		out = append(out, cloneMatchRequest(item))
	}

	return out, nil
}

func cloneMatchRequest(item matchrequest.MatchRequest) matchrequest.MatchRequest {
	copied := item
	if item.ProposedTime != nil {
		v := *item.ProposedTime
		copied.ProposedTime = &v
	}
	if item.Notes != nil {
		v := *item.Notes
		copied.Notes = &v
	}
	return copied
}
