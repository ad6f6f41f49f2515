package mongodb

import (
	"context"
	"errors"
	"time"

	crerr "github.com/cockroachdb/errors"
	"github.com/riskibarqy/findrival/internal/domain/team"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"golang.org/x/sync/singleflight"
)

const geoIndexName = "location_2dsphere"

type TeamRepository struct {
	coll   *mongo.Collection
	flight singleflight.Group
	now    func() time.Time
}

func NewTeamRepository(db *mongo.Database) *TeamRepository {
	return &TeamRepository{
		coll: db.Collection(TeamCollection),
		now:  time.Now,
	}
}

// EnsureGeoIndex creates the 2dsphere index on location. Creating an index
// that already exists is a no-op on the server.
func (r *TeamRepository) EnsureGeoIndex(ctx context.Context) error {
	_, err, _ := r.flight.Do(geoIndexName, func() (any, error) {
		_, err := r.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
			Keys:    bson.D{{Key: "location", Value: "2dsphere"}},
			Options: options.Index().SetName(geoIndexName),
		})
		return nil, err
	})
	if err != nil {
		return crerr.Wrap(err, "create team geo index")
	}
	return nil
}

func (r *TeamRepository) Create(ctx context.Context, item team.Team) (team.Team, error) {
	doc := newTeamDocument(item, r.now().UTC())

	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		return team.Team{}, crerr.Wrap(err, "insert team")
	}
	oid, ok := res.InsertedID.(primitive.ObjectID)
	if !ok {
		return team.Team{}, crerr.Newf("unexpected inserted id type %T", res.InsertedID)
	}
	doc.ID = oid

	return doc.toDomain(), nil
}

func (r *TeamRepository) GetByID(ctx context.Context, teamID string) (team.Team, bool, error) {
	oid, ok := parseObjectID(teamID)
	if !ok {
		return team.Team{}, false, nil
	}

	var doc teamDocument
	err := r.coll.FindOne(ctx, bson.D{{Key: "_id", Value: oid}}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return team.Team{}, false, nil
	}
	if err != nil {
		return team.Team{}, false, crerr.Wrapf(err, "find team %s", teamID)
	}

	return doc.toDomain(), true, nil
}

func (r *TeamRepository) List(ctx context.Context, filter team.ListFilter) ([]team.Team, error) {
	query := bson.D{}
	if filter.Sport != "" {
		query = append(query, bson.E{Key: "sport", Value: string(filter.Sport)})
	}

	opts := options.Find()
	if filter.Limit > 0 {
		opts.SetLimit(int64(filter.Limit))
	}

	cursor, err := r.coll.Find(ctx, query, opts)
	if err != nil {
		return nil, crerr.Wrap(err, "find teams")
	}

	var docs []teamDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, crerr.Wrap(err, "decode teams")
	}

	return teamsToDomain(docs), nil
}

// FindNearby relies on $near for distance filtering and nearest-first order.
func (r *TeamRepository) FindNearby(ctx context.Context, query team.NearbyQuery) ([]team.Team, error) {
	opts := options.Find()
	if query.Limit > 0 {
		opts.SetLimit(int64(query.Limit))
	}

	cursor, err := r.coll.Find(ctx, buildNearbyFilter(query), opts)
	if err != nil {
		return nil, wrapNearbyError(err, "find nearby teams")
	}

	var docs []teamDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, wrapNearbyError(err, "decode nearby teams")
	}

	return teamsToDomain(docs), nil
}

func buildNearbyFilter(query team.NearbyQuery) bson.D {
	filter := bson.D{{
		Key: "location",
		Value: bson.D{{
			Key: "$near",
			Value: bson.D{
				{Key: "$geometry", Value: bson.D{
					{Key: "type", Value: team.PointType},
					{Key: "coordinates", Value: bson.A{query.Longitude, query.Latitude}},
				}},
				{Key: "$maxDistance", Value: query.MaxDistanceMeters()},
			},
		}},
	}}
	if query.Sport != "" {
		filter = append(filter, bson.E{Key: "sport", Value: string(query.Sport)})
	}
	if query.Timeslot != "" {
		filter = append(filter, bson.E{Key: "availability.timeslot", Value: string(query.Timeslot)})
	}
	return filter
}

func teamsToDomain(docs []teamDocument) []team.Team {
	out := make([]team.Team, 0, len(docs))
	for _, doc := range docs {
		out = append(out, doc.toDomain())
	}
	return out
}
