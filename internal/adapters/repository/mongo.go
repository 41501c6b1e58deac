package repository

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/okian/maulas/internal/domain/model"
)

const defaultWriteTimeout = 5 * time.Second

// predictionDoc is the stored shape. _id is "<round>_<member>" so repeated
// runs overwrite instead of duplicating.
type predictionDoc struct {
	ID        string   `bson:"_id"`
	Round     int      `bson:"round"`
	MemberID  int      `bson:"member_id"`
	Selection []string `bson:"selection"`
}

// MongoStore upserts predictions into a MongoDB collection.
type MongoStore struct {
	coll         *mongo.Collection
	client       *mongo.Client
	writeTimeout time.Duration
}

var _ Store = (*MongoStore)(nil)

// NewMongoStore wraps an existing collection.
func NewMongoStore(coll *mongo.Collection, opts ...MongoOption) *MongoStore {
	s := &MongoStore{coll: coll, writeTimeout: defaultWriteTimeout}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ConnectMongo dials uri and returns a store over database.collection.
// Close releases the client.
func ConnectMongo(ctx context.Context, uri, database, collection string, opts ...MongoOption) (*MongoStore, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("%w: connect: %w", ErrSinkWrite, err)
	}
	s := NewMongoStore(client.Database(database).Collection(collection), opts...)
	s.client = client
	return s, nil
}

// Upsert writes p keyed by (round, member).
func (s *MongoStore) Upsert(ctx context.Context, p model.Prediction) error {
	if p.Round < 1 || p.MemberID < 1 {
		return fmt.Errorf("%w: %s", ErrInvalidRound, p.Key())
	}
	ctx, cancel := context.WithTimeout(ctx, s.writeTimeout)
	defer cancel()

	doc := toDoc(p)
	filter := bson.M{"_id": doc.ID}
	update := bson.M{
		"$set": bson.M{
			"round":     doc.Round,
			"member_id": doc.MemberID,
			"selection": doc.Selection,
		},
	}
	if _, err := s.coll.UpdateOne(ctx, filter, update, options.Update().SetUpsert(true)); err != nil {
		return fmt.Errorf("%w: %s: %w", ErrSinkWrite, doc.ID, err)
	}
	return nil
}

// Close disconnects a client opened by ConnectMongo.
func (s *MongoStore) Close(ctx context.Context) error {
	if s.client == nil {
		return nil
	}
	return s.client.Disconnect(ctx)
}

func toDoc(p model.Prediction) predictionDoc {
	sel := make([]string, len(p.Selection))
	for i, pick := range p.Selection {
		sel[i] = pick.String()
	}
	return predictionDoc{ID: p.Key(), Round: p.Round, MemberID: p.MemberID, Selection: sel}
}
