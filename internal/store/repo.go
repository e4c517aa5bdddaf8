package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/starford/quicknote/internal/apperr"
	"github.com/starford/quicknote/internal/models"
)

// Insert adds n and returns it with the id assigned by SQLite.
// A note that already carries an id replaces the row with that id.
func (db *DB) Insert(ctx context.Context, n models.Note) (models.Note, error) {
	var (
		res sql.Result
		err error
	)
	if n.Persisted() {
		res, err = db.conn.ExecContext(ctx,
			`INSERT OR REPLACE INTO notes (id, text, modified_at) VALUES (?, ?, ?)`,
			n.ID, n.Text, n.ModifiedAt)
	} else {
		res, err = db.conn.ExecContext(ctx,
			`INSERT INTO notes (text, modified_at) VALUES (?, ?)`,
			n.Text, n.ModifiedAt)
	}
	if err != nil {
		return models.Note{}, fmt.Errorf("store: insert: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return models.Note{}, fmt.Errorf("store: insert id: %w", err)
	}
	n.ID = id
	return n, nil
}

// Update overwrites text and timestamp of the row matching n.ID.
func (db *DB) Update(ctx context.Context, n models.Note) error {
	res, err := db.conn.ExecContext(ctx,
		`UPDATE notes SET text = ?, modified_at = ? WHERE id = ?`,
		n.Text, n.ModifiedAt, n.ID)
	if err != nil {
		return fmt.Errorf("store: update %d: %w", n.ID, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("store: update %d: %w", n.ID, err)
	}
	if affected == 0 {
		return fmt.Errorf("store: update %d: %w", n.ID, apperr.ErrNotFound)
	}
	return nil
}

// Delete removes every row whose id is in ids.
func (db *DB) Delete(ctx context.Context, ids ...int64) error {
	if len(ids) == 0 {
		return nil
	}
	placeholders := strings.TrimSuffix(strings.Repeat("?,", len(ids)), ",")
	args := make([]any, len(ids))
	for i, id := range ids {
		args[i] = id
	}
	if _, err := db.conn.ExecContext(ctx, `DELETE FROM notes WHERE id IN (`+placeholders+`)`, args...); err != nil {
		return fmt.Errorf("store: delete: %w", err)
	}
	return nil
}

// GetAll returns every note ordered by id.
func (db *DB) GetAll(ctx context.Context) ([]models.Note, error) {
	rows, err := db.conn.QueryContext(ctx, `SELECT id, text, modified_at FROM notes ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("store: get all: %w", err)
	}
	defer rows.Close()

	out := []models.Note{}
	for rows.Next() {
		var n models.Note
		if err := rows.Scan(&n.ID, &n.Text, &n.ModifiedAt); err != nil {
			return nil, fmt.Errorf("store: scan: %w", err)
		}
		out = append(out, n)
	}
	return out, rows.Err()
}

// GetByID returns the note with the given id.
func (db *DB) GetByID(ctx context.Context, id int64) (models.Note, error) {
	var n models.Note
	err := db.conn.QueryRowContext(ctx,
		`SELECT id, text, modified_at FROM notes WHERE id = ?`, id).
		Scan(&n.ID, &n.Text, &n.ModifiedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Note{}, fmt.Errorf("store: note %d: %w", id, apperr.ErrNotFound)
	}
	if err != nil {
		return models.Note{}, fmt.Errorf("store: get %d: %w", id, err)
	}
	return n, nil
}
