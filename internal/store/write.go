package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Hero-Over/TachiyomiSY-sub001/internal/category"
)

// Insert adds a category. A duplicate ID is a constraint error.
func (s *Store) Insert(ctx context.Context, c category.Category) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO categories (id, collection, name, sort_order, flags)
		VALUES (?, ?, ?, ?, ?)
	`, c.ID, c.Collection, c.Name, c.Order, c.Flags)
	if err != nil {
		return fmt.Errorf("insert category: %w", err)
	}
	return nil
}

// ApplyBatch applies every update in a single transaction.
//
// Absent fields are bound as NULL and keep their stored value. If any update
// names an ID that does not exist the transaction is rolled back and
// category.ErrNotFound is returned (wrapped). An empty batch is a no-op.
func (s *Store) ApplyBatch(ctx context.Context, updates []category.PartialUpdate) error {
	if len(updates) == 0 {
		return nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("apply batch: begin tx: %w", err)
	}
	defer tx.Rollback() // No-op if committed

	stmt, err := tx.PrepareContext(ctx, `
		UPDATE categories
		SET sort_order = COALESCE(?, sort_order),
		    name       = COALESCE(?, name),
		    flags      = COALESCE(?, flags)
		WHERE id = ?
	`)
	if err != nil {
		return fmt.Errorf("apply batch: prepare: %w", err)
	}
	defer stmt.Close()

	for _, u := range updates {
		result, err := stmt.ExecContext(ctx, nullInt(u.Order), nullString(u.Name), nullInt(u.Flags), u.ID)
		if err != nil {
			return fmt.Errorf("apply batch: update %s: %w", u.ID, err)
		}
		n, err := result.RowsAffected()
		if err != nil {
			return fmt.Errorf("apply batch: rows affected: %w", err)
		}
		if n == 0 {
			return fmt.Errorf("apply batch: update %s: %w", u.ID, category.ErrNotFound)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("apply batch: commit: %w", err)
	}
	return nil
}

// DeleteAndRenumber deletes id from collectionID and renumbers the remaining
// categories 0..N-2 in their existing order, in one transaction.
// Returns the renumbering that was applied.
func (s *Store) DeleteAndRenumber(ctx context.Context, collectionID, id string) ([]category.PartialUpdate, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("delete category: begin tx: %w", err)
	}
	defer tx.Rollback()

	result, err := tx.ExecContext(ctx, `
		DELETE FROM categories WHERE id = ? AND collection = ?
	`, id, collectionID)
	if err != nil {
		return nil, fmt.Errorf("delete category: %w", err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("delete category: rows affected: %w", err)
	}
	if n == 0 {
		return nil, fmt.Errorf("delete category %s: %w", id, category.ErrNotFound)
	}

	ids, err := collectionIDs(ctx, tx, collectionID)
	if err != nil {
		return nil, fmt.Errorf("delete category: %w", err)
	}

	updates := make([]category.PartialUpdate, len(ids))
	for i, survivor := range ids {
		updates[i] = category.OrderUpdate(survivor, int64(i))
		if _, err := tx.ExecContext(ctx, `
			UPDATE categories SET sort_order = ? WHERE id = ?
		`, i, survivor); err != nil {
			return nil, fmt.Errorf("delete category: renumber %s: %w", survivor, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("delete category: commit: %w", err)
	}
	return updates, nil
}

func collectionIDs(ctx context.Context, tx *sql.Tx, collectionID string) ([]string, error) {
	rows, err := tx.QueryContext(ctx, `
		SELECT id FROM categories
		WHERE collection = ?
		ORDER BY sort_order ASC, id COLLATE BINARY ASC
	`, collectionID)
	if err != nil {
		return nil, fmt.Errorf("query survivors: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan survivor: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate survivors: %w", err)
	}
	return ids, nil
}

func nullInt(v *int64) sql.NullInt64 {
	if v == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: *v, Valid: true}
}

func nullString(v *string) sql.NullString {
	if v == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *v, Valid: true}
}
