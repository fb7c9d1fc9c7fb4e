package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Hero-Over/TachiyomiSY-sub001/internal/category"
)

// rowScanner is satisfied by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

// FetchAll returns every category in collectionID ordered by
// sort_order ASC, id ASC COLLATE BINARY.
//
// Returns an empty slice (not nil) if the collection has no categories.
func (s *Store) FetchAll(ctx context.Context, collectionID string) ([]category.Category, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, collection, name, sort_order, flags
		FROM categories
		WHERE collection = ?
		ORDER BY sort_order ASC, id COLLATE BINARY ASC
	`, collectionID)
	if err != nil {
		return nil, fmt.Errorf("query categories: %w", err)
	}
	defer rows.Close()

	cats := []category.Category{}
	for rows.Next() {
		c, err := scanCategory(rows)
		if err != nil {
			return nil, err
		}
		cats = append(cats, c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate categories: %w", err)
	}

	return cats, nil
}

// Get retrieves a single category by ID.
// Returns category.ErrNotFound (wrapped) if it does not exist.
func (s *Store) Get(ctx context.Context, id string) (category.Category, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, collection, name, sort_order, flags
		FROM categories
		WHERE id = ?
	`, id)

	c, err := scanCategory(row)
	if errors.Is(err, sql.ErrNoRows) {
		return category.Category{}, fmt.Errorf("get category %s: %w", id, category.ErrNotFound)
	}
	return c, err
}

// Collections returns the distinct collection IDs in binary order.
func (s *Store) Collections(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT DISTINCT collection FROM categories
		ORDER BY collection COLLATE BINARY ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("query collections: %w", err)
	}
	defer rows.Close()

	collections := []string{}
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("scan collection: %w", err)
		}
		collections = append(collections, name)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate collections: %w", err)
	}
	return collections, nil
}

func scanCategory(row rowScanner) (category.Category, error) {
	var c category.Category
	err := row.Scan(&c.ID, &c.Collection, &c.Name, &c.Order, &c.Flags)
	if errors.Is(err, sql.ErrNoRows) {
		return category.Category{}, err
	}
	if err != nil {
		return category.Category{}, fmt.Errorf("scan category: %w", err)
	}
	return c, nil
}
