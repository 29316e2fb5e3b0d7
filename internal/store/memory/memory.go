// Package memory is an in-process Store used by tests and local runs.
package memory

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/JoyCmollik/eyeside-niche-website-server-side-react/internal/store"
)

type Store struct {
	mu          sync.Mutex
	collections map[string]*Collection
}

func New() *Store {
	return &Store{collections: make(map[string]*Collection)}
}

func (s *Store) Collection(name string) store.Collection {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.collections[name]
	if !ok {
		c = &Collection{}
		s.collections[name] = c
	}
	return c
}

func (s *Store) Ping(context.Context) error { return nil }

func (s *Store) Close(context.Context) error { return nil }

// Collection keeps documents in insertion order.
type Collection struct {
	mu   sync.RWMutex
	docs []store.Document
}

// Len reports how many documents are stored.
func (c *Collection) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.docs)
}

func (c *Collection) FindOne(_ context.Context, f store.Filter) (store.Document, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	for _, d := range c.docs {
		if matches(d, f) {
			return copyDoc(d), nil
		}
	}
	return nil, store.ErrNotFound
}

func (c *Collection) Find(_ context.Context, f store.Filter, limit int64) ([]store.Document, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := []store.Document{}
	for _, d := range c.docs {
		if limit > 0 && int64(len(out)) >= limit {
			break
		}
		if matches(d, f) {
			out = append(out, copyDoc(d))
		}
	}
	return out, nil
}

func (c *Collection) InsertOne(_ context.Context, doc store.Document) (*store.InsertResult, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	d := copyDoc(doc)
	id, _ := d[store.IDField].(string)
	if id == "" {
		id = uuid.NewString()
		d[store.IDField] = id
	}
	c.docs = append(c.docs, d)

	return &store.InsertResult{Acknowledged: true, InsertedID: id}, nil
}

func (c *Collection) UpdateOne(_ context.Context, f store.Filter, set store.Document, upsert bool) (*store.UpdateResult, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	set = set.Without(store.IDField)

	for _, d := range c.docs {
		if !matches(d, f) {
			continue
		}
		modified := false
		for k, v := range set {
			if old, ok := d[k]; !ok || !equal(old, v) {
				modified = true
			}
			d[k] = copyValue(v)
		}
		res := &store.UpdateResult{Acknowledged: true, MatchedCount: 1}
		if modified {
			res.ModifiedCount = 1
		}
		return res, nil
	}

	if !upsert {
		return &store.UpdateResult{Acknowledged: true}, nil
	}

	d := copyDoc(set)
	id := uuid.NewString()
	if f.MatchesByID() && len(f.IDs) == 1 {
		id = f.IDs[0]
	}
	if f.Field != "" {
		d[f.Field] = f.Value
	}
	d[store.IDField] = id
	c.docs = append(c.docs, d)

	return &store.UpdateResult{Acknowledged: true, UpsertedCount: 1, UpsertedID: &id}, nil
}

func (c *Collection) DeleteOne(_ context.Context, f store.Filter) (*store.DeleteResult, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for i, d := range c.docs {
		if matches(d, f) {
			c.docs = append(c.docs[:i], c.docs[i+1:]...)
			return &store.DeleteResult{Acknowledged: true, DeletedCount: 1}, nil
		}
	}
	return &store.DeleteResult{Acknowledged: true}, nil
}

func matches(d store.Document, f store.Filter) bool {
	switch {
	case f.MatchesAll():
		return true
	case f.MatchesByID():
		id, _ := d[store.IDField].(string)
		for _, want := range f.IDs {
			if id == want {
				return true
			}
		}
		return false
	default:
		v, ok := d[f.Field].(string)
		return ok && v == f.Value
	}
}

// equal only compares scalars; composite values always count as modified.
func equal(a, b any) bool {
	switch a.(type) {
	case map[string]any, []any, store.Document:
		return false
	}
	switch b.(type) {
	case map[string]any, []any, store.Document:
		return false
	}
	return a == b
}

// copyDoc deep-copies d so stored documents never share maps or slices
// with callers.
func copyDoc(d store.Document) store.Document {
	out := make(store.Document, len(d))
	for k, v := range d {
		out[k] = copyValue(v)
	}
	return out
}

func copyValue(v any) any {
	switch t := v.(type) {
	case store.Document:
		return map[string]any(copyDoc(t))
	case map[string]any:
		return map[string]any(copyDoc(t))
	case []any:
		out := make([]any, len(t))
		for i, vv := range t {
			out[i] = copyValue(vv)
		}
		return out
	default:
		return v
	}
}
