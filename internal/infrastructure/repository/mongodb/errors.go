package mongodb

import (
	"context"
	"errors"
	"fmt"

	crerr "github.com/cockroachdb/errors"
	"github.com/riskibarqy/findrival/internal/domain/team"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// wrapNearbyError marks server-side rejections of a proximity query as geo
// query failures. Transport and context errors are returned as plain errors.
func wrapNearbyError(err error, msg string) error {
	if err == nil {
		return nil
	}
	wrapped := crerr.Wrap(err, msg)
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return wrapped
	}
	if mongo.IsNetworkError(err) || mongo.IsTimeout(err) {
		return wrapped
	}

	var serverErr mongo.ServerError
	if errors.As(err, &serverErr) {
		return fmt.Errorf("%w: %w", team.ErrGeoQuery, wrapped)
	}
	return wrapped
}

// parseObjectID reports false for ids that cannot name a stored document.
func parseObjectID(raw string) (primitive.ObjectID, bool) {
	oid, err := primitive.ObjectIDFromHex(raw)
	if err != nil {
		return primitive.NilObjectID, false
	}
	return oid, true
}
