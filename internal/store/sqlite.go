package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

// SQLiteStore keeps documents in the documents table.
type SQLiteStore struct {
	db    *sql.DB
	locks *userLocks
}

// NewSQLiteStore creates a SQLiteStore over an already migrated database.
func NewSQLiteStore(db *sql.DB) *SQLiteStore {
	return &SQLiteStore{db: db, locks: newUserLocks()}
}

func (s *SQLiteStore) Get(ctx context.Context, ref Ref, dest any) (bool, error) {
	var body string
	err := s.db.QueryRowContext(ctx,
		`SELECT body FROM documents WHERE user_id = ? AND collection = ? AND doc_key = ?`,
		ref.UserID, ref.Collection, ref.Key,
	).Scan(&body)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, nil
		}
		return false, fmt.Errorf("failed to get document %s/%s: %w", ref.Collection, ref.Key, err)
	}

	if err := json.Unmarshal([]byte(body), dest); err != nil {
		return false, fmt.Errorf("failed to unmarshal document %s/%s: %w", ref.Collection, ref.Key, err)
	}
	return true, nil
}

func (s *SQLiteStore) Put(ctx context.Context, ref Ref, value any) error {
	body, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to marshal document %s/%s: %w", ref.Collection, ref.Key, err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO documents (user_id, collection, doc_key, body, updated_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT (user_id, collection, doc_key)
		DO UPDATE SET body = excluded.body, updated_at = excluded.updated_at`,
		ref.UserID, ref.Collection, ref.Key, string(body), time.Now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("failed to save document %s/%s: %w", ref.Collection, ref.Key, err)
	}
	return nil
}

func (s *SQLiteStore) Delete(ctx context.Context, ref Ref) (bool, error) {
	res, err := s.db.ExecContext(ctx,
		`DELETE FROM documents WHERE user_id = ? AND collection = ? AND doc_key = ?`,
		ref.UserID, ref.Collection, ref.Key,
	)
	if err != nil {
		return false, fmt.Errorf("failed to delete document %s/%s: %w", ref.Collection, ref.Key, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to read rows affected: %w", err)
	}
	return n > 0, nil
}

func (s *SQLiteStore) List(ctx context.Context, userID, collection string) ([]Document, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT doc_key, body FROM documents WHERE user_id = ? AND collection = ? ORDER BY doc_key`,
		userID, collection,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list %s documents: %w", collection, err)
	}
	defer rows.Close()

	var docs []Document
	for rows.Next() {
		var key, body string
		if err := rows.Scan(&key, &body); err != nil {
			return nil, fmt.Errorf("failed to scan %s document: %w", collection, err)
		}
		docs = append(docs, Document{Key: key, Body: []byte(body)})
	}
	return docs, rows.Err()
}

func (s *SQLiteStore) Lock(_ context.Context, userID string) (func(), error) {
	return s.locks.lock(userID), nil
}
