// Package store defines the document store used by the API: four named
// collections of schema-flexible documents with single-document CRUD.
package store

import (
	"context"
	"errors"
)

const (
	CollectionUsers    = "users"
	CollectionProducts = "products"
	CollectionOrders   = "orders"
	CollectionReviews  = "reviews"

	// IDField is the key under which a document's identifier is exposed.
	IDField = "_id"
)

var ErrNotFound = errors.New("document not found")

// Document is a free-form record as received from or returned to clients.
type Document map[string]any

// String returns the value of key when it is a string.
func (d Document) String(key string) string {
	s, _ := d[key].(string)
	return s
}

// Without returns a shallow copy of d minus the given keys.
func (d Document) Without(keys ...string) Document {
	out := make(Document, len(d))
	for k, v := range d {
		out[k] = v
	}
	for _, k := range keys {
		delete(out, k)
	}
	return out
}

// Filter selects documents. The zero value matches everything.
type Filter struct {
	byID  bool
	IDs   []string
	Field string
	Value string
}

func All() Filter { return Filter{} }

func ByID(id string) Filter { return Filter{byID: true, IDs: []string{id}} }

// ByIDs matches any of ids. An empty set matches nothing.
func ByIDs(ids []string) Filter { return Filter{byID: true, IDs: ids} }

// Eq matches documents whose top-level field equals value.
func Eq(field, value string) Filter { return Filter{Field: field, Value: value} }

func (f Filter) MatchesByID() bool { return f.byID }

func (f Filter) MatchesAll() bool { return !f.byID && f.Field == "" }

type InsertResult struct {
	Acknowledged bool   `json:"acknowledged"`
	InsertedID   string `json:"insertedId"`
}

type UpdateResult struct {
	Acknowledged  bool    `json:"acknowledged"`
	MatchedCount  int64   `json:"matchedCount"`
	ModifiedCount int64   `json:"modifiedCount"`
	UpsertedCount int64   `json:"upsertedCount"`
	UpsertedID    *string `json:"upsertedId"`
}

type DeleteResult struct {
	Acknowledged bool  `json:"acknowledged"`
	DeletedCount int64 `json:"deletedCount"`
}

// Collection is one named group of documents.
type Collection interface {
	// FindOne returns the first matching document or ErrNotFound.
	FindOne(ctx context.Context, f Filter) (Document, error)
	// Find returns matching documents in natural order; limit <= 0 means no limit.
	Find(ctx context.Context, f Filter, limit int64) ([]Document, error)
	InsertOne(ctx context.Context, doc Document) (*InsertResult, error)
	// UpdateOne sets the fields of set on the first matching document. With
	// upsert and no match, a new document is created from set plus the filter's
	// equality field.
	UpdateOne(ctx context.Context, f Filter, set Document, upsert bool) (*UpdateResult, error)
	DeleteOne(ctx context.Context, f Filter) (*DeleteResult, error)
}

// Store is the long-lived connection shared by all handlers.
type Store interface {
	Collection(name string) Collection
	Ping(ctx context.Context) error
	Close(ctx context.Context) error
}

// Users and friends are shorthands for the four known collections.
func Users(s Store) Collection    { return s.Collection(CollectionUsers) }
func Products(s Store) Collection { return s.Collection(CollectionProducts) }
func Orders(s Store) Collection   { return s.Collection(CollectionOrders) }
func Reviews(s Store) Collection  { return s.Collection(CollectionReviews) }

// Collections lists the collection names every backend must provide.
func Collections() []string {
	return []string{CollectionUsers, CollectionProducts, CollectionOrders, CollectionReviews}
}
