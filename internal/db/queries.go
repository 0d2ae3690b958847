package db

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/hpungsan/snip/internal/errors"
	"github.com/hpungsan/snip/internal/snippet"
)

// Store is a store.Store backed by the snippets table.
type Store struct {
	db *sql.DB
}

// NewStore wraps an initialized database.
func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

// Load returns all snippets ordered by insertion position.
func (s *Store) Load(ctx context.Context) ([]snippet.Snippet, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, title, code, language, tags_json, category, description, created_at
		FROM snippets
		ORDER BY position ASC
	`)
	if err != nil {
		return nil, errors.NewInternal(err)
	}
	defer rows.Close()

	snippets := []snippet.Snippet{}
	for rows.Next() {
		sn, err := scanSnippet(rows)
		if err != nil {
			return nil, errors.NewInternal(err)
		}
		snippets = append(snippets, *sn)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.NewInternal(err)
	}

	return snippets, nil
}

// Save replaces every row with the given collection in one transaction.
func (s *Store) Save(ctx context.Context, snippets []snippet.Snippet) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return errors.NewInternal(err)
	}
	defer tx.Rollback() //nolint:errcheck

	if _, err := tx.ExecContext(ctx, `DELETE FROM snippets`); err != nil {
		return errors.NewInternal(err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO snippets (
			position, id, title, code, language, tags_json, category, description, created_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return errors.NewInternal(err)
	}
	defer stmt.Close()

	for i, sn := range snippets {
		tags := sn.Tags
		if tags == nil {
			tags = []string{}
		}
		tagsJSON, err := json.Marshal(tags)
		if err != nil {
			return errors.NewInternal(err)
		}

		_, err = stmt.ExecContext(ctx,
			i, sn.ID, sn.Title, sn.Code, sn.Language, string(tagsJSON),
			sn.Category, sn.Description, sn.CreatedAt.UTC().Format(time.RFC3339Nano),
		)
		if err != nil {
			return errors.NewInternal(fmt.Errorf("insert snippet %d: %w", sn.ID, err))
		}
	}

	if err := tx.Commit(); err != nil {
		return errors.NewInternal(err)
	}
	return nil
}

// scanSnippet scans one row into a Snippet.
func scanSnippet(rows *sql.Rows) (*snippet.Snippet, error) {
	var (
		sn        snippet.Snippet
		tagsJSON  string
		createdAt string
	)

	err := rows.Scan(
		&sn.ID, &sn.Title, &sn.Code, &sn.Language, &tagsJSON,
		&sn.Category, &sn.Description, &createdAt,
	)
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal([]byte(tagsJSON), &sn.Tags); err != nil {
		return nil, fmt.Errorf("snippet %d: invalid tags_json: %w", sn.ID, err)
	}
	if sn.Tags == nil {
		sn.Tags = []string{}
	}

	sn.CreatedAt, err = time.Parse(time.RFC3339Nano, createdAt)
	if err != nil {
		return nil, fmt.Errorf("snippet %d: invalid created_at: %w", sn.ID, err)
	}

	return &sn, nil
}
