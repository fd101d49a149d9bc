package storage

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/good-yellow-bee/innohub/internal/models"
)

const (
	backendMongo        = "mongodb"
	defaultMongoDatabase = "innohub"
)

// MongoStorage implements Storage using MongoDB collections.
type MongoStorage struct {
	uri      string
	database string
	client   *mongo.Client
	db       *mongo.Database

	repos
}

// NewMongoStorage creates a new MongoDB storage.
func NewMongoStorage(uri, database string) *MongoStorage {
	if database == "" {
		database = defaultMongoDatabase
	}
	return &MongoStorage{uri: uri, database: database}
}

// Open connects to the deployment and verifies the primary is reachable.
func (s *MongoStorage) Open(ctx context.Context) error {
	opts := options.Client().
		ApplyURI(s.uri).
		SetServerSelectionTimeout(10 * time.Second).
		SetAppName("innohub")

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return fmt.Errorf("connect mongodb: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx, readpref.Primary()); err != nil {
		client.Disconnect(context.Background())
		return fmt.Errorf("ping mongodb: %w", err)
	}

	s.client = client
	s.db = client.Database(s.database)
	s.repos = newRepos(
		newMongoCollection[models.User](s.db, collUsers),
		newMongoCollection[models.Profile](s.db, collProfiles),
		newMongoCollection[models.Project](s.db, collProjects),
		newMongoCollection[models.Mentor](s.db, collMentors),
		newMongoCollection[models.Grant](s.db, collGrants),
		newMongoCollection[models.Launch](s.db, collLaunches),
		newMongoCollection[models.Subscriber](s.db, collSubscribers),
	)
	return nil
}

// Close disconnects the client.
func (s *MongoStorage) Close() error {
	if s.client == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return s.client.Disconnect(ctx)
}

// Migrate creates the unique and lookup indexes.
func (s *MongoStorage) Migrate(ctx context.Context) error {
	indexes := []struct {
		collection string
		field      string
		unique     bool
	}{
		{collUsers, "username", true},
		{collUsers, "email", true},
		{collUsers, "role", false},
		{collProfiles, "userId", true},
		{collLaunches, "projectId", true},
		{collSubscribers, "email", true},
		{collProjects, "ownerId", false},
		{collProjects, "contributions.actorId", false},
		{collGrants, "type", false},
	}

	for _, idx := range indexes {
		model := mongo.IndexModel{
			Keys:    bson.D{{Key: idx.field, Value: 1}},
			Options: options.Index().SetUnique(idx.unique),
		}
		if _, err := s.db.Collection(idx.collection).Indexes().CreateOne(ctx, model); err != nil {
			return fmt.Errorf("create index %s.%s: %w", idx.collection, idx.field, err)
		}
	}

	for _, name := range []string{collUsers, collProfiles, collProjects, collMentors, collGrants, collLaunches, collSubscribers} {
		model := mongo.IndexModel{Keys: bson.D{{Key: "createdAt", Value: -1}}}
		if _, err := s.db.Collection(name).Indexes().CreateOne(ctx, model); err != nil {
			return fmt.Errorf("create index %s.createdAt: %w", name, err)
		}
	}
	return nil
}

// Ping checks that the primary is reachable.
func (s *MongoStorage) Ping(ctx context.Context) error {
	if s.client == nil {
		return fmt.Errorf("mongodb not connected")
	}
	return s.client.Ping(ctx, readpref.Primary())
}

// Backend returns "mongodb".
func (s *MongoStorage) Backend() string {
	return backendMongo
}

// mongoCollection maps Collection onto a MongoDB collection. Documents carry
// their own _id, so the id arguments only address existing documents.
type mongoCollection[T any] struct {
	coll *mongo.Collection
	name string
}

func newMongoCollection[T any](db *mongo.Database, name string) *mongoCollection[T] {
	return &mongoCollection[T]{coll: db.Collection(name), name: name}
}

func (c *mongoCollection[T]) Insert(ctx context.Context, id string, createdAt time.Time, doc *T) (err error) {
	defer observe(backendMongo, c.name, "insert", time.Now(), &err)

	if _, err = c.coll.InsertOne(ctx, doc); err != nil {
		return mapMongoError(err)
	}
	return nil
}

func (c *mongoCollection[T]) Replace(ctx context.Context, id string, doc *T) (err error) {
	defer observe(backendMongo, c.name, "replace", time.Now(), &err)

	if _, err = c.coll.ReplaceOne(ctx, bson.M{"_id": id}, doc); err != nil {
		return mapMongoError(err)
	}
	return nil
}

func (c *mongoCollection[T]) Get(ctx context.Context, id string) (doc *T, err error) {
	defer observe(backendMongo, c.name, "get", time.Now(), &err)

	var out T
	err = c.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&out)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get %s: %w", c.name, err)
	}
	return &out, nil
}

func (c *mongoCollection[T]) FindOne(ctx context.Context, q Query) (*T, error) {
	q.Limit = 1
	docs, err := c.Find(ctx, q)
	if err != nil || len(docs) == 0 {
		return nil, err
	}
	return docs[0], nil
}

func (c *mongoCollection[T]) Find(ctx context.Context, q Query) (docs []*T, err error) {
	defer observe(backendMongo, c.name, "find", time.Now(), &err)

	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	if q.Limit > 0 {
		opts.SetLimit(int64(q.Limit))
	}

	cursor, err := c.coll.Find(ctx, mongoFilter(q), opts)
	if err != nil {
		return nil, fmt.Errorf("find %s: %w", c.name, err)
	}
	if err = cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode %s: %w", c.name, err)
	}
	return docs, nil
}

func (c *mongoCollection[T]) Delete(ctx context.Context, id string) (deleted bool, err error) {
	defer observe(backendMongo, c.name, "delete", time.Now(), &err)

	res, err := c.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return false, fmt.Errorf("delete %s: %w", c.name, err)
	}
	return res.DeletedCount > 0, nil
}

func (c *mongoCollection[T]) Count(ctx context.Context, q Query) (n int64, err error) {
	defer observe(backendMongo, c.name, "count", time.Now(), &err)

	n, err = c.coll.CountDocuments(ctx, mongoFilter(q))
	if err != nil {
		return 0, fmt.Errorf("count %s: %w", c.name, err)
	}
	return n, nil
}

// mongoFilter translates a Query into a filter document. Dotted HasElement
// paths match array elements natively.
func mongoFilter(q Query) bson.M {
	var conds []bson.M

	for _, field := range sortedKeys(q.Equals) {
		conds = append(conds, bson.M{mongoField(field): q.Equals[field]})
	}
	if q.ExcludeID != "" {
		conds = append(conds, bson.M{"_id": bson.M{"$ne": q.ExcludeID}})
	}
	for _, path := range sortedKeys(q.HasElement) {
		conds = append(conds, bson.M{path: q.HasElement[path]})
	}
	if search := strings.TrimSpace(q.Search); search != "" && len(q.SearchFields) > 0 {
		pattern := regexp.QuoteMeta(search)
		ors := make(bson.A, 0, len(q.SearchFields))
		for _, field := range q.SearchFields {
			ors = append(ors, bson.M{field: bson.M{"$regex": pattern, "$options": "i"}})
		}
		conds = append(conds, bson.M{"$or": ors})
	}

	switch len(conds) {
	case 0:
		return bson.M{}
	case 1:
		return conds[0]
	}
	and := make(bson.A, len(conds))
	for i, c := range conds {
		and[i] = c
	}
	return bson.M{"$and": and}
}

func mongoField(field string) string {
	if field == "id" {
		return "_id"
	}
	return field
}

func mapMongoError(err error) error {
	if mongo.IsDuplicateKeyError(err) {
		return fmt.Errorf("%w: %v", ErrDuplicate, err)
	}
	return err
}
