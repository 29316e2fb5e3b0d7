// Package mongostore backs the document store with MongoDB.
package mongostore

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/JoyCmollik/eyeside-niche-website-server-side-react/config"
	"github.com/JoyCmollik/eyeside-niche-website-server-side-react/internal/store"
)

type Options struct {
	URI       string
	Database  string
	ConnectTO time.Duration
	PingTO    time.Duration
}

// URI builds the connection string from the database config unless an
// explicit MONGODB_URI was given.
func URI(cfg *config.DatabaseConfig) string {
	if cfg.URI != "" {
		return cfg.URI
	}

	u := url.URL{Scheme: cfg.Scheme, Host: cfg.Host, Path: "/" + cfg.Name}
	if cfg.User != "" {
		u.User = url.UserPassword(cfg.User, cfg.Password)
	}
	q := url.Values{}
	q.Set("retryWrites", "true")
	q.Set("w", "majority")
	u.RawQuery = q.Encode()

	return u.String()
}

type Store struct {
	client *mongo.Client
	db     *mongo.Database
}

func Open(ctx context.Context, opt Options) (*Store, error) {
	if opt.URI == "" {
		return nil, fmt.Errorf("mongo uri is not set")
	}
	if opt.ConnectTO == 0 {
		opt.ConnectTO = 10 * time.Second
	}
	if opt.PingTO == 0 {
		opt.PingTO = 5 * time.Second
	}

	cctx, cancel := context.WithTimeout(ctx, opt.ConnectTO)
	defer cancel()

	clientOpts := options.Client().
		ApplyURI(opt.URI).
		SetBSONOptions(&options.BSONOptions{DefaultDocumentM: true})

	client, err := mongo.Connect(cctx, clientOpts)
	if err != nil {
		return nil, fmt.Errorf("mongo connect: %w", err)
	}

	pctx, pcancel := context.WithTimeout(ctx, opt.PingTO)
	defer pcancel()

	if err := client.Ping(pctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("mongo ping: %w", err)
	}

	return &Store{client: client, db: client.Database(opt.Database)}, nil
}

func (s *Store) Collection(name string) store.Collection {
	return &Collection{coll: s.db.Collection(name)}
}

func (s *Store) Ping(ctx context.Context) error {
	return s.client.Ping(ctx, readpref.Primary())
}

func (s *Store) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

type Collection struct {
	coll *mongo.Collection
}

func (c *Collection) FindOne(ctx context.Context, f store.Filter) (store.Document, error) {
	var m bson.M
	err := c.coll.FindOne(ctx, filterOf(f)).Decode(&m)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find one in %s: %w", c.coll.Name(), err)
	}
	return toDocument(m), nil
}

func (c *Collection) Find(ctx context.Context, f store.Filter, limit int64) ([]store.Document, error) {
	opts := options.Find()
	if limit > 0 {
		opts.SetLimit(limit)
	}

	cur, err := c.coll.Find(ctx, filterOf(f), opts)
	if err != nil {
		return nil, fmt.Errorf("find in %s: %w", c.coll.Name(), err)
	}

	var ms []bson.M
	if err := cur.All(ctx, &ms); err != nil {
		return nil, fmt.Errorf("read cursor of %s: %w", c.coll.Name(), err)
	}

	docs := make([]store.Document, 0, len(ms))
	for _, m := range ms {
		docs = append(docs, toDocument(m))
	}
	return docs, nil
}

func (c *Collection) InsertOne(ctx context.Context, doc store.Document) (*store.InsertResult, error) {
	res, err := c.coll.InsertOne(ctx, insertDoc(doc))
	if err != nil {
		return nil, fmt.Errorf("insert into %s: %w", c.coll.Name(), err)
	}
	return &store.InsertResult{Acknowledged: true, InsertedID: idString(res.InsertedID)}, nil
}

func (c *Collection) UpdateOne(ctx context.Context, f store.Filter, set store.Document, upsert bool) (*store.UpdateResult, error) {
	set = set.Without(store.IDField)
	filter := filterOf(f)

	// Mongo rejects an empty $set; report the match without writing.
	if len(set) == 0 {
		n, err := c.coll.CountDocuments(ctx, filter, options.Count().SetLimit(1))
		if err != nil {
			return nil, fmt.Errorf("count in %s: %w", c.coll.Name(), err)
		}
		return &store.UpdateResult{Acknowledged: true, MatchedCount: n}, nil
	}

	res, err := c.coll.UpdateOne(ctx, filter, bson.M{"$set": bson.M(set)}, options.Update().SetUpsert(upsert))
	if err != nil {
		return nil, fmt.Errorf("update in %s: %w", c.coll.Name(), err)
	}

	out := &store.UpdateResult{
		Acknowledged:  true,
		MatchedCount:  res.MatchedCount,
		ModifiedCount: res.ModifiedCount,
		UpsertedCount: res.UpsertedCount,
	}
	if res.UpsertedID != nil {
		id := idString(res.UpsertedID)
		out.UpsertedID = &id
	}
	return out, nil
}

func (c *Collection) DeleteOne(ctx context.Context, f store.Filter) (*store.DeleteResult, error) {
	res, err := c.coll.DeleteOne(ctx, filterOf(f))
	if err != nil {
		return nil, fmt.Errorf("delete from %s: %w", c.coll.Name(), err)
	}
	return &store.DeleteResult{Acknowledged: true, DeletedCount: res.DeletedCount}, nil
}

// insertDoc prepares doc for insertion. A client-supplied _id is kept only
// when it is an ObjectID in hex, so every stored document is reachable by
// ByID; any other _id is dropped and the driver assigns one.
func insertDoc(doc store.Document) bson.M {
	m := bson.M(doc.Without(store.IDField))
	if hex, ok := doc[store.IDField].(string); ok {
		if oid, err := primitive.ObjectIDFromHex(hex); err == nil {
			m[store.IDField] = oid
		}
	}
	return m
}

// filterOf translates a store filter. Identifiers that are not valid
// ObjectIDs never match.
func filterOf(f store.Filter) bson.M {
	switch {
	case f.MatchesAll():
		return bson.M{}
	case f.MatchesByID():
		oids := make([]primitive.ObjectID, 0, len(f.IDs))
		for _, id := range f.IDs {
			if oid, err := primitive.ObjectIDFromHex(id); err == nil {
				oids = append(oids, oid)
			}
		}
		if len(f.IDs) == 1 && len(oids) == 1 {
			return bson.M{store.IDField: oids[0]}
		}
		return bson.M{store.IDField: bson.M{"$in": oids}}
	default:
		return bson.M{f.Field: f.Value}
	}
}

func idString(v any) string {
	switch id := v.(type) {
	case primitive.ObjectID:
		return id.Hex()
	case string:
		return id
	default:
		return fmt.Sprint(id)
	}
}

// toDocument turns a decoded bson.M into plain Go maps and slices so callers
// never see driver types other than scalars.
func toDocument(m bson.M) store.Document {
	doc := make(store.Document, len(m))
	for k, v := range m {
		doc[k] = plain(v)
	}
	if id, ok := doc[store.IDField]; ok {
		doc[store.IDField] = idString(id)
	}
	return doc
}

func plain(v any) any {
	switch t := v.(type) {
	case bson.M:
		out := make(map[string]any, len(t))
		for k, vv := range t {
			out[k] = plain(vv)
		}
		return out
	case bson.D:
		out := make(map[string]any, len(t))
		for _, e := range t {
			out[e.Key] = plain(e.Value)
		}
		return out
	case bson.A:
		out := make([]any, len(t))
		for i, vv := range t {
			out[i] = plain(vv)
		}
		return out
	default:
		return v
	}
}
