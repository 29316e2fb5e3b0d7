package orders

import (
	"context"
	"fmt"

	"github.com/JoyCmollik/eyeside-niche-website-server-side-react/internal/store"
)

const (
	// FieldOwner is the canonical owner field on an order.
	FieldOwner = "user_uid"
	// FieldStatus is the canonical status field on an order.
	FieldStatus = "order_status"

	legacyOwnerParent = "user"
)

type Service struct {
	orders store.Collection
}

func NewService(s store.Store) *Service {
	return &Service{orders: store.Orders(s)}
}

// Normalize copies a legacy nested user.user_uid to the top-level owner
// field when the latter is missing. doc is not modified.
func Normalize(doc store.Document) store.Document {
	if doc.String(FieldOwner) != "" {
		return doc
	}
	uid := legacyOwner(doc)
	if uid == "" {
		return doc
	}
	out := doc.Without()
	out[FieldOwner] = uid
	return out
}

func legacyOwner(doc store.Document) string {
	user, ok := doc[legacyOwnerParent].(map[string]any)
	if !ok {
		return ""
	}
	uid, _ := user[FieldOwner].(string)
	return uid
}

func (s *Service) ListByOwner(ctx context.Context, uid string) ([]store.Document, error) {
	return s.orders.Find(ctx, store.Eq(FieldOwner, uid), 0)
}

func (s *Service) ListAll(ctx context.Context) ([]store.Document, error) {
	return s.orders.Find(ctx, store.All(), 0)
}

// Get returns the order or store.ErrNotFound.
func (s *Service) Get(ctx context.Context, id string) (store.Document, error) {
	return s.orders.FindOne(ctx, store.ByID(id))
}

func (s *Service) Place(ctx context.Context, doc store.Document) (*store.InsertResult, error) {
	return s.orders.InsertOne(ctx, Normalize(doc))
}

// Update merges fields into an existing order, typically payment confirmation.
func (s *Service) Update(ctx context.Context, id string, set store.Document) (*store.UpdateResult, error) {
	return s.orders.UpdateOne(ctx, store.ByID(id), Normalize(set), false)
}

// SetStatus changes the order status. Unknown ids are not created.
func (s *Service) SetStatus(ctx context.Context, id, status string) (*store.UpdateResult, error) {
	return s.orders.UpdateOne(ctx, store.ByID(id), store.Document{FieldStatus: status}, false)
}

func (s *Service) Delete(ctx context.Context, id string) (*store.DeleteResult, error) {
	return s.orders.DeleteOne(ctx, store.ByID(id))
}

// BackfillOwners sets the canonical owner field on orders that only carry
// the legacy nested one. It returns how many orders were updated.
func (s *Service) BackfillOwners(ctx context.Context) (int, error) {
	all, err := s.orders.Find(ctx, store.All(), 0)
	if err != nil {
		return 0, fmt.Errorf("list orders: %w", err)
	}

	updated := 0
	for _, doc := range all {
		if doc.String(FieldOwner) != "" {
			continue
		}
		uid := legacyOwner(doc)
		if uid == "" {
			continue
		}

		id := doc.String(store.IDField)
		res, err := s.orders.UpdateOne(ctx, store.ByID(id), store.Document{FieldOwner: uid}, false)
		if err != nil {
			return updated, fmt.Errorf("backfill order %s: %w", id, err)
		}
		updated += int(res.ModifiedCount)
	}
	return updated, nil
}
