package matchrequest

import "context"

// Repository describes match request persistence needs from use cases.
type Repository interface {
	Create(ctx context.Context, item MatchRequest) (MatchRequest, error)
	GetByID(ctx context.Context, requestID string) (MatchRequest, bool, error)
	// UpdateStatus overwrites the status and returns the stored record.
	// The bool is false when no record has requestID.
	UpdateStatus(ctx context.Context, requestID string, status Status) (MatchRequest, bool, error)
	List(ctx context.Context, filter ListFilter) ([]MatchRequest, error)
}
