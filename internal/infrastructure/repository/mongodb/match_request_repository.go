package mongodb

import (
	"context"
	"errors"
	"time"

	crerr "github.com/cockroachdb/errors"
	"github.com/riskibarqy/findrival/internal/domain/matchrequest"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type MatchRequestRepository struct {
	coll *mongo.Collection
	now  func() time.Time
}

func NewMatchRequestRepository(db *mongo.Database) *MatchRequestRepository {
	return &MatchRequestRepository{
		coll: db.Collection(MatchRequestCollection),
		now:  time.Now,
	}
}

func (r *MatchRequestRepository) Create(ctx context.Context, item matchrequest.MatchRequest) (matchrequest.MatchRequest, error) {
	now := r.now().UTC()
	if item.CreatedAt.IsZero() {
		item.CreatedAt = now
	}
	if item.UpdatedAt.IsZero() {
		item.UpdatedAt = now
	}
	doc := newMatchRequestDocument(item)

	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		return matchrequest.MatchRequest{}, crerr.Wrap(err, "insert match request")
	}
	oid, ok := res.InsertedID.(primitive.ObjectID)
	if !ok {
		return matchrequest.MatchRequest{}, crerr.Newf("unexpected inserted id type %T", res.InsertedID)
	}
	doc.ID = oid

	return doc.toDomain(), nil
}

func (r *MatchRequestRepository) GetByID(ctx context.Context, requestID string) (matchrequest.MatchRequest, bool, error) {
	oid, ok := parseObjectID(requestID)
	if !ok {
		return matchrequest.MatchRequest{}, false, nil
	}

	var doc matchRequestDocument
	err := r.coll.FindOne(ctx, bson.D{{Key: "_id", Value: oid}}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return matchrequest.MatchRequest{}, false, nil
	}
	if err != nil {
		return matchrequest.MatchRequest{}, false, crerr.Wrapf(err, "find match request %s", requestID)
	}

	return doc.toDomain(), true, nil
}

// UpdateStatus sets the status and returns the document as stored after the
// update, in one round trip.
func (r *MatchRequestRepository) UpdateStatus(ctx context.Context, requestID string, status matchrequest.Status) (matchrequest.MatchRequest, bool, error) {
	oid, ok := parseObjectID(requestID)
	if !ok {
		return matchrequest.MatchRequest{}, false, nil
	}

	update := bson.D{{Key: "$set", Value: bson.D{
		{Key: "status", Value: string(status)},
		{Key: "updated_at", Value: r.now().UTC()},
	}}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var doc matchRequestDocument
	err := r.coll.FindOneAndUpdate(ctx, bson.D{{Key: "_id", Value: oid}}, update, opts).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return matchrequest.MatchRequest{}, false, nil
	}
	if err != nil {
		return matchrequest.MatchRequest{}, false, crerr.Wrapf(err, "update match request %s status", requestID)
	}

	return doc.toDomain(), true, nil
}

func (r *MatchRequestRepository) List(ctx context.Context, filter matchrequest.ListFilter) ([]matchrequest.MatchRequest, error) {
	opts := options.Find()
	if filter.Limit > 0 {
		opts.SetLimit(int64(filter.Limit))
	}

	cursor, err := r.coll.Find(ctx, buildParticipationFilter(filter.TeamID), opts)
	if err != nil {
		return nil, crerr.Wrap(err, "find match requests")
	}

	var docs []matchRequestDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, crerr.Wrap(err, "decode match requests")
	}

	out := make([]matchrequest.MatchRequest, 0, len(docs))
	for _, doc := range docs {
		out = append(out, doc.toDomain())
	}
	return out, nil
}

func buildParticipationFilter(teamID string) bson.D {
	if teamID == "" {
		return bson.D{}
	}
	return bson.D{{Key: "$or", Value: bson.A{
		bson.D{{Key: "from_team_id", Value: teamID}},
		bson.D{{Key: "to_team_id", Value: teamID}},
	}}}
}
