// Package pgstore keeps documents as JSONB rows in PostgreSQL, one table
// shared by every collection.
package pgstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/JoyCmollik/eyeside-niche-website-server-side-react/internal/store"
)

const schema = `
CREATE TABLE IF NOT EXISTS documents (
  collection text NOT NULL,
  id text NOT NULL,
  seq bigserial,
  doc jsonb NOT NULL,
  PRIMARY KEY (collection, id)
);
CREATE INDEX IF NOT EXISTS documents_collection_seq_idx ON documents (collection, seq);
`

type Options struct {
	DSN       string
	MaxConns  int32
	ConnectTO time.Duration
	PingTO    time.Duration
}

type Store struct {
	pool *pgxpool.Pool
}

func Open(ctx context.Context, opt Options) (*Store, error) {
	if opt.DSN == "" {
		return nil, fmt.Errorf("POSTGRES_DSN is not set")
	}
	if opt.ConnectTO == 0 {
		opt.ConnectTO = 5 * time.Second
	}
	if opt.PingTO == 0 {
		opt.PingTO = 2 * time.Second
	}

	cfg, err := pgxpool.ParseConfig(opt.DSN)
	if err != nil {
		return nil, fmt.Errorf("parse dsn: %w", err)
	}
	if opt.MaxConns > 0 {
		cfg.MaxConns = opt.MaxConns
	}
	cfg.MaxConnIdleTime = 5 * time.Minute
	cfg.HealthCheckPeriod = 30 * time.Second

	cctx, cancel := context.WithTimeout(ctx, opt.ConnectTO)
	defer cancel()

	pool, err := pgxpool.NewWithConfig(cctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("db connect: %w", err)
	}

	pctx, pcancel := context.WithTimeout(ctx, opt.PingTO)
	defer pcancel()

	if err := pool.Ping(pctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("db ping: %w", err)
	}

	if _, err := pool.Exec(ctx, schema); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ensure documents table: %w", err)
	}

	return &Store{pool: pool}, nil
}

func (s *Store) Collection(name string) store.Collection {
	return &Collection{pool: s.pool, name: name}
}

func (s *Store) Ping(ctx context.Context) error {
	return s.pool.Ping(ctx)
}

func (s *Store) Close(context.Context) error {
	s.pool.Close()
	return nil
}

type Collection struct {
	pool *pgxpool.Pool
	name string
}

func (c *Collection) FindOne(ctx context.Context, f store.Filter) (store.Document, error) {
	where, args := whereOf(c.name, f)
	row := c.pool.QueryRow(ctx, `SELECT id, doc FROM documents WHERE `+where+` ORDER BY seq LIMIT 1`, args...)

	doc, err := scanDocument(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find one in %s: %w", c.name, err)
	}
	return doc, nil
}

func (c *Collection) Find(ctx context.Context, f store.Filter, limit int64) ([]store.Document, error) {
	where, args := whereOf(c.name, f)
	q := `SELECT id, doc FROM documents WHERE ` + where + ` ORDER BY seq`
	if limit > 0 {
		q += ` LIMIT ` + strconv.FormatInt(limit, 10)
	}

	rows, err := c.pool.Query(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("find in %s: %w", c.name, err)
	}
	defer rows.Close()

	docs := []store.Document{}
	for rows.Next() {
		doc, err := scanDocument(rows)
		if err != nil {
			return nil, fmt.Errorf("scan %s: %w", c.name, err)
		}
		docs = append(docs, doc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read %s: %w", c.name, err)
	}
	return docs, nil
}

func (c *Collection) InsertOne(ctx context.Context, doc store.Document) (*store.InsertResult, error) {
	id := doc.String(store.IDField)
	if id == "" {
		id = uuid.NewString()
	}

	body, err := json.Marshal(doc.Without(store.IDField))
	if err != nil {
		return nil, fmt.Errorf("marshal document: %w", err)
	}

	if _, err := c.pool.Exec(ctx,
		`INSERT INTO documents (collection, id, doc) VALUES ($1, $2, $3::jsonb)`,
		c.name, id, body,
	); err != nil {
		return nil, fmt.Errorf("insert into %s: %w", c.name, err)
	}

	return &store.InsertResult{Acknowledged: true, InsertedID: id}, nil
}

func (c *Collection) UpdateOne(ctx context.Context, f store.Filter, set store.Document, upsert bool) (*store.UpdateResult, error) {
	set = set.Without(store.IDField)

	where, args := whereOf(c.name, f)
	var id string
	err := c.pool.QueryRow(ctx, `SELECT id FROM documents WHERE `+where+` ORDER BY seq LIMIT 1`, args...).Scan(&id)

	switch {
	case errors.Is(err, pgx.ErrNoRows):
		if !upsert {
			return &store.UpdateResult{Acknowledged: true}, nil
		}
		return c.upsertInsert(ctx, f, set)
	case err != nil:
		return nil, fmt.Errorf("locate in %s: %w", c.name, err)
	}

	body, err := json.Marshal(set)
	if err != nil {
		return nil, fmt.Errorf("marshal update: %w", err)
	}

	// Top-level fields are replaced whole; rows the merge leaves equal are
	// not counted as modified.
	tag, err := c.pool.Exec(ctx,
		`UPDATE documents SET doc = doc || $3::jsonb
		 WHERE collection = $1 AND id = $2 AND doc IS DISTINCT FROM (doc || $3::jsonb)`,
		c.name, id, body,
	)
	if err != nil {
		return nil, fmt.Errorf("update in %s: %w", c.name, err)
	}

	return &store.UpdateResult{
		Acknowledged:  true,
		MatchedCount:  1,
		ModifiedCount: tag.RowsAffected(),
	}, nil
}

func (c *Collection) upsertInsert(ctx context.Context, f store.Filter, set store.Document) (*store.UpdateResult, error) {
	doc := set.Without()
	if f.Field != "" {
		doc[f.Field] = f.Value
	}
	if f.MatchesByID() && len(f.IDs) == 1 {
		doc[store.IDField] = f.IDs[0]
	}

	res, err := c.InsertOne(ctx, doc)
	if err != nil {
		return nil, err
	}
	return &store.UpdateResult{Acknowledged: true, UpsertedCount: 1, UpsertedID: &res.InsertedID}, nil
}

func (c *Collection) DeleteOne(ctx context.Context, f store.Filter) (*store.DeleteResult, error) {
	where, args := whereOf(c.name, f)
	tag, err := c.pool.Exec(ctx,
		`DELETE FROM documents WHERE collection = $1 AND id = (
		   SELECT id FROM documents WHERE `+where+` ORDER BY seq LIMIT 1)`,
		args...,
	)
	if err != nil {
		return nil, fmt.Errorf("delete from %s: %w", c.name, err)
	}
	return &store.DeleteResult{Acknowledged: true, DeletedCount: tag.RowsAffected()}, nil
}

// whereOf renders a filter; $1 is always the collection name.
func whereOf(collection string, f store.Filter) (string, []any) {
	switch {
	case f.MatchesAll():
		return `collection = $1`, []any{collection}
	case f.MatchesByID():
		ids := f.IDs
		if ids == nil {
			ids = []string{}
		}
		return `collection = $1 AND id = ANY($2)`, []any{collection, ids}
	default:
		return `collection = $1 AND doc->>$2 = $3`, []any{collection, f.Field, f.Value}
	}
}

func scanDocument(row pgx.Row) (store.Document, error) {
	var (
		id  string
		raw []byte
	)
	if err := row.Scan(&id, &raw); err != nil {
		return nil, err
	}

	doc := store.Document{}
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("decode document %s: %w", id, err)
	}
	doc[store.IDField] = id
	return doc, nil
}
