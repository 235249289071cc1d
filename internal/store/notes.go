package store

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/blackwell-systems/pathnotes/internal/hierarchy"
	"github.com/google/uuid"
)

var _ hierarchy.Tree = (*DB)(nil)

const noteColumns = "id, parent_id, text, path, url, created_at"

// FindOne returns the note with the given ID, or nil if it does not exist.
func (db *DB) FindOne(ctx context.Context, id string) (*hierarchy.Note, error) {
	row := db.conn.QueryRowContext(ctx, "SELECT "+noteColumns+" FROM notes WHERE id = ?", id)
	return db.scanOne(ctx, row)
}

// FindByName returns the first note below parentID whose text equals name.
// An empty parentID searches the top level.
func (db *DB) FindByName(ctx context.Context, parentID, name string) (*hierarchy.Note, error) {
	var row *sql.Row
	if parentID == "" {
		row = db.conn.QueryRowContext(ctx,
			"SELECT "+noteColumns+" FROM notes WHERE parent_id IS NULL AND text = ? ORDER BY rowid LIMIT 1",
			name)
	} else {
		row = db.conn.QueryRowContext(ctx,
			"SELECT "+noteColumns+" FROM notes WHERE parent_id = ? AND text = ? ORDER BY rowid LIMIT 1",
			parentID, name)
	}
	return db.scanOne(ctx, row)
}

// Parent returns the parent of n, or nil for top-level notes.
func (db *DB) Parent(ctx context.Context, n *hierarchy.Note) (*hierarchy.Note, error) {
	if n.ParentID == "" {
		return nil, nil
	}
	return db.FindOne(ctx, n.ParentID)
}

// Children returns the notes directly below n in creation order.
func (db *DB) Children(ctx context.Context, n *hierarchy.Note) ([]hierarchy.Note, error) {
	rows, err := db.conn.QueryContext(ctx,
		"SELECT "+noteColumns+" FROM notes WHERE parent_id = ? ORDER BY rowid", n.ID)
	if err != nil {
		return nil, err
	}

	var notes []hierarchy.Note
	for rows.Next() {
		note, err := scanNote(rows)
		if err != nil {
			_ = rows.Close()
			return nil, err
		}
		notes = append(notes, *note)
	}
	if err := rows.Err(); err != nil {
		_ = rows.Close()
		return nil, err
	}
	_ = rows.Close()

	tags, err := db.childTags(ctx, n.ID)
	if err != nil {
		return nil, err
	}
	for i := range notes {
		notes[i].Tags = tags[notes[i].ID]
	}
	return notes, nil
}

// Tags returns the tags attached to n.
func (db *DB) Tags(ctx context.Context, n *hierarchy.Note) ([]string, error) {
	rows, err := db.conn.QueryContext(ctx,
		"SELECT tag FROM note_tags WHERE note_id = ? ORDER BY tag", n.ID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tags []string
	for rows.Next() {
		var tag string
		if err := rows.Scan(&tag); err != nil {
			return nil, err
		}
		tags = append(tags, tag)
	}
	return tags, rows.Err()
}

// Create inserts n with a fresh ID and returns the stored note.
func (db *DB) Create(ctx context.Context, n *hierarchy.Note) (*hierarchy.Note, error) {
	created := *n
	created.ID = uuid.NewString()
	created.CreatedAt = time.Now().UTC()
	created.Tags = append([]string(nil), n.Tags...)

	tx, err := db.conn.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx,
		`INSERT INTO notes (id, parent_id, text, path, url, created_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		created.ID, nullable(created.ParentID), created.Text, created.Path, created.URL,
		created.CreatedAt.Format(time.RFC3339Nano),
	); err != nil {
		return nil, err
	}
	if err := insertTags(ctx, tx, created.ID, created.Tags); err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return &created, nil
}

// Update rewrites the text, path, URL, parent, and tags of an existing note.
func (db *DB) Update(ctx context.Context, n *hierarchy.Note) error {
	tx, err := db.conn.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx,
		"UPDATE notes SET parent_id = ?, text = ?, path = ?, url = ? WHERE id = ?",
		nullable(n.ParentID), n.Text, n.Path, n.URL, n.ID)
	if err != nil {
		return err
	}
	if affected, _ := res.RowsAffected(); affected == 0 {
		return hierarchy.ErrNotFound
	}

	if _, err := tx.ExecContext(ctx, "DELETE FROM note_tags WHERE note_id = ?", n.ID); err != nil {
		return err
	}
	if err := insertTags(ctx, tx, n.ID, n.Tags); err != nil {
		return err
	}
	return tx.Commit()
}

// Remove deletes a note together with its descendants and tags.
func (db *DB) Remove(ctx context.Context, id string) error {
	res, err := db.conn.ExecContext(ctx, "DELETE FROM notes WHERE id = ?", id)
	if err != nil {
		return err
	}
	if affected, _ := res.RowsAffected(); affected == 0 {
		return hierarchy.ErrNotFound
	}
	return nil
}

func (db *DB) childTags(ctx context.Context, parentID string) (map[string][]string, error) {
	rows, err := db.conn.QueryContext(ctx,
		`SELECT t.note_id, t.tag FROM note_tags t
		JOIN notes n ON n.id = t.note_id
		WHERE n.parent_id = ? ORDER BY t.tag`, parentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	tags := make(map[string][]string)
	for rows.Next() {
		var id, tag string
		if err := rows.Scan(&id, &tag); err != nil {
			return nil, err
		}
		tags[id] = append(tags[id], tag)
	}
	return tags, rows.Err()
}

func (db *DB) scanOne(ctx context.Context, row *sql.Row) (*hierarchy.Note, error) {
	n, err := scanNote(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if n.Tags, err = db.Tags(ctx, n); err != nil {
		return nil, err
	}
	return n, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanNote(s scanner) (*hierarchy.Note, error) {
	var (
		n         hierarchy.Note
		parentID  sql.NullString
		createdAt string
	)
	if err := s.Scan(&n.ID, &parentID, &n.Text, &n.Path, &n.URL, &createdAt); err != nil {
		return nil, err
	}
	n.ParentID = parentID.String
	n.CreatedAt, _ = time.Parse(time.RFC3339Nano, createdAt)
	return &n, nil
}

func insertTags(ctx context.Context, tx *sql.Tx, id string, tags []string) error {
	for _, tag := range tags {
		tag = strings.TrimSpace(tag)
		if tag == "" {
			continue
		}
		if _, err := tx.ExecContext(ctx,
			"INSERT OR IGNORE INTO note_tags (note_id, tag) VALUES (?, ?)", id, tag); err != nil {
			return err
		}
	}
	return nil
}

func nullable(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
