package team

import "context"

// Repository describes team persistence needs from use cases.
type Repository interface {
	EnsureGeoIndex(ctx context.Context) error
	Create(ctx context.Context, item Team) (Team, error)
	GetByID(ctx context.Context, teamID string) (Team, bool, error)
	List(ctx context.Context, filter ListFilter) ([]Team, error)
	// FindNearby returns teams nearest-first as ordered by the store.
	FindNearby(ctx context.Context, query NearbyQuery) ([]Team, error)
}
