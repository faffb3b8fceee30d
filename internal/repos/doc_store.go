package repos

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

var ErrNotFound = errors.New("document not found")

// Collections used by the app.
const (
	Products = "products"
	Users    = "users"
)

// fixed width so that lexical order equals time order
const tsLayout = "2006-01-02T15:04:05.000000000Z"

// Document is a stored JSON body plus its server-assigned envelope.
type Document struct {
	Collection string
	ID         string
	CreatedAt  time.Time
	Data       []byte
}

// Decode unmarshals the document body into out.
func (d Document) Decode(out any) error {
	if err := json.Unmarshal(d.Data, out); err != nil {
		return fmt.Errorf("decode %s/%s: %w", d.Collection, d.ID, err)
	}
	return nil
}

type docRow struct {
	Collection string `db:"collection"`
	ID         string `db:"id"`
	Data       string `db:"data"`
	CreatedAt  string `db:"created_at"`
}

func (r docRow) doc() (Document, error) {
	ts, err := time.Parse(tsLayout, r.CreatedAt)
	if err != nil {
		return Document{}, fmt.Errorf("document %s/%s: bad created_at %q: %w", r.Collection, r.ID, r.CreatedAt, err)
	}
	return Document{Collection: r.Collection, ID: r.ID, CreatedAt: ts, Data: []byte(r.Data)}, nil
}

// DocStore keeps schema-less documents grouped by collection. Ids and
// creation timestamps are assigned here, never by callers.
type DocStore struct {
	db  *sqlx.DB
	now func() time.Time
}

func NewDocStore(db *sqlx.DB) *DocStore {
	return &DocStore{db: db, now: time.Now}
}

// Add inserts doc under a fresh id and returns that id.
func (s *DocStore) Add(ctx context.Context, collection string, doc any) (string, error) {
	b, err := json.Marshal(doc)
	if err != nil {
		return "", err
	}
	id := uuid.NewString()
	_, err = s.db.ExecContext(ctx, s.db.Rebind(`
		INSERT INTO documents(collection, id, data, created_at)
		VALUES (?, ?, ?, ?)
	`), collection, id, string(b), s.now().UTC().Format(tsLayout))
	if err != nil {
		return "", err
	}
	return id, nil
}

// Set writes doc under a caller-chosen id, replacing the body of an existing
// document but keeping its creation time.
func (s *DocStore) Set(ctx context.Context, collection, id string, doc any) error {
	b, err := json.Marshal(doc)
	if err != nil {
		return err
	}
	_, err = s.db.ExecContext(ctx, s.db.Rebind(`
		INSERT INTO documents(collection, id, data, created_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(collection, id) DO UPDATE SET data = excluded.data
	`), collection, id, string(b), s.now().UTC().Format(tsLayout))
	return err
}

func (s *DocStore) Get(ctx context.Context, collection, id string) (Document, error) {
	var row docRow
	err := s.db.GetContext(ctx, &row, s.db.Rebind(`
		SELECT collection, id, data, created_at
		FROM documents
		WHERE collection = ? AND id = ?
	`), collection, id)
	if errors.Is(err, sql.ErrNoRows) {
		return Document{}, ErrNotFound
	}
	if err != nil {
		return Document{}, err
	}
	return row.doc()
}

// List returns every document of collection, newest first.
func (s *DocStore) List(ctx context.Context, collection string) ([]Document, error) {
	var rows []docRow
	err := s.db.SelectContext(ctx, &rows, s.db.Rebind(`
		SELECT collection, id, data, created_at
		FROM documents
		WHERE collection = ?
		ORDER BY created_at DESC, seq DESC
	`), collection)
	if err != nil {
		return nil, err
	}
	out := make([]Document, 0, len(rows))
	for _, r := range rows {
		d, err := r.doc()
		if err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, nil
}

// Delete removes a document. Deleting an absent id is not an error.
func (s *DocStore) Delete(ctx context.Context, collection, id string) error {
	_, err := s.db.ExecContext(ctx, s.db.Rebind(`
		DELETE FROM documents WHERE collection = ? AND id = ?
	`), collection, id)
	return err
}
