package users

import (
	"context"
	"errors"
	"fmt"

	"github.com/JoyCmollik/eyeside-niche-website-server-side-react/internal/store"
)

const (
	FieldEmail = "email"
	FieldRole  = "role"
	RoleAdmin  = "admin"
)

var (
	ErrEmailRequired = errors.New("email is required")
	ErrNotAdmin      = errors.New("requester is not an admin")
)

// Service owns the users collection. Email is the identity key.
type Service struct {
	users          store.Collection
	upsertOnCreate bool
}

func NewService(s store.Store, upsertOnCreate bool) *Service {
	return &Service{users: store.Users(s), upsertOnCreate: upsertOnCreate}
}

// IsAdmin reports whether the user stored under email has the admin role.
// Unknown emails are not admins.
func (s *Service) IsAdmin(ctx context.Context, email string) (bool, error) {
	if email == "" {
		return false, nil
	}

	u, err := s.users.FindOne(ctx, store.Eq(FieldEmail, email))
	if errors.Is(err, store.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("find user: %w", err)
	}
	return u.String(FieldRole) == RoleAdmin, nil
}

// Register stores a newly signed-up user verbatim, so repeated sign-ups
// produce separate documents. With upsert-on-create it upserts by email
// instead, unless the document has no email to key on.
func (s *Service) Register(ctx context.Context, doc store.Document) (any, error) {
	if !s.upsertOnCreate || doc.String(FieldEmail) == "" {
		res, err := s.users.InsertOne(ctx, doc)
		if err != nil {
			return nil, fmt.Errorf("insert user: %w", err)
		}
		return res, nil
	}
	return s.Save(ctx, doc)
}

// Save creates or updates the user keyed by the document's email.
func (s *Service) Save(ctx context.Context, doc store.Document) (*store.UpdateResult, error) {
	email := doc.String(FieldEmail)
	if email == "" {
		return nil, ErrEmailRequired
	}

	res, err := s.users.UpdateOne(ctx, store.Eq(FieldEmail, email), doc, true)
	if err != nil {
		return nil, fmt.Errorf("upsert user: %w", err)
	}
	return res, nil
}

// GrantAdmin sets the admin role on target when requester is an admin.
// Nothing is written otherwise.
func (s *Service) GrantAdmin(ctx context.Context, requester, target string) (*store.UpdateResult, error) {
	if target == "" {
		return nil, ErrEmailRequired
	}

	ok, err := s.IsAdmin(ctx, requester)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrNotAdmin
	}

	res, err := s.users.UpdateOne(ctx, store.Eq(FieldEmail, target), store.Document{FieldRole: RoleAdmin}, false)
	if err != nil {
		return nil, fmt.Errorf("grant admin: %w", err)
	}
	return res, nil
}
