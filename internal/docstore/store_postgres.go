package docstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const dbTimeout = 5 * time.Second

// Schema creates the documents table used by PostgresStore.
const Schema = `
CREATE TABLE IF NOT EXISTS documents (
	collection TEXT        NOT NULL,
	id         TEXT        NOT NULL,
	fields     JSONB       NOT NULL,
	position   BIGSERIAL,
	updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	PRIMARY KEY (collection, id)
);
CREATE INDEX IF NOT EXISTS documents_collection_position_idx ON documents (collection, position);
`

// PostgresStore is a PostgreSQL-backed Store. Each document is a JSONB row;
// iteration order is first-insert order.
type PostgresStore struct {
	pool *pgxpool.Pool
}

// NewPostgresStore creates a document store on an existing pool.
func NewPostgresStore(pool *pgxpool.Pool) (*PostgresStore, error) {
	if pool == nil {
		return nil, fmt.Errorf("pool is nil")
	}
	return &PostgresStore{pool: pool}, nil
}

func (s *PostgresStore) FetchAll(ctx context.Context, collection string) ([]Document, error) {
	if err := validateCollection(collection); err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, dbTimeout)
	defer cancel()

	rows, err := s.pool.Query(ctx,
		`SELECT id, fields
		 FROM documents
		 WHERE collection = $1
		 ORDER BY position ASC`,
		collection,
	)
	if err != nil {
		return nil, fmt.Errorf("query documents: %w", err)
	}
	defer rows.Close()

	var docs []Document
	for rows.Next() {
		var id string
		var raw []byte
		if err := rows.Scan(&id, &raw); err != nil {
			return nil, fmt.Errorf("scan document: %w", err)
		}
		fields, err := decodeFields(raw)
		if err != nil {
			return nil, fmt.Errorf("decode document %s: %w", id, err)
		}
		docs = append(docs, Document{ID: id, Fields: fields})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate documents: %w", err)
	}

	return docs, nil
}

func (s *PostgresStore) Fetch(ctx context.Context, collection, id string) (Document, bool, error) {
	if err := validateCollection(collection); err != nil {
		return Document{}, false, err
	}

	ctx, cancel := context.WithTimeout(ctx, dbTimeout)
	defer cancel()

	var raw []byte
	err := s.pool.QueryRow(ctx,
		`SELECT fields
		 FROM documents
		 WHERE collection = $1 AND id = $2
		 LIMIT 1`,
		collection,
		id,
	).Scan(&raw)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Document{}, false, nil
		}
		return Document{}, false, fmt.Errorf("get document: %w", err)
	}

	fields, err := decodeFields(raw)
	if err != nil {
		return Document{}, false, fmt.Errorf("decode document %s: %w", id, err)
	}
	return Document{ID: id, Fields: fields}, true, nil
}

// Upsert inserts a document or replaces its fields, keeping its original position.
func (s *PostgresStore) Upsert(ctx context.Context, collection string, doc Document) error {
	if err := validateCollection(collection); err != nil {
		return err
	}
	if doc.ID == "" {
		return fmt.Errorf("document id is required")
	}

	payload := doc.Fields
	if payload == nil {
		payload = map[string]any{}
	}
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal document %s: %w", doc.ID, err)
	}

	ctx, cancel := context.WithTimeout(ctx, dbTimeout)
	defer cancel()

	_, err = s.pool.Exec(ctx,
		`INSERT INTO documents (collection, id, fields)
		 VALUES ($1, $2, $3::jsonb)
		 ON CONFLICT (collection, id)
		 DO UPDATE SET fields = EXCLUDED.fields, updated_at = NOW()`,
		collection,
		doc.ID,
		string(data),
	)
	if err != nil {
		return fmt.Errorf("upsert document %s: %w", doc.ID, err)
	}
	return nil
}

// Delete removes a document. Deleting a missing document is not an error.
func (s *PostgresStore) Delete(ctx context.Context, collection, id string) error {
	ctx, cancel := context.WithTimeout(ctx, dbTimeout)
	defer cancel()

	if _, err := s.pool.Exec(ctx,
		`DELETE FROM documents WHERE collection = $1 AND id = $2`,
		collection,
		id,
	); err != nil {
		return fmt.Errorf("delete document %s: %w", id, err)
	}
	return nil
}

func decodeFields(raw []byte) (map[string]any, error) {
	if len(raw) == 0 {
		return map[string]any{}, nil
	}
	var fields map[string]any
	if err := json.Unmarshal(raw, &fields); err != nil {
		return nil, err
	}
	return fields, nil
}
