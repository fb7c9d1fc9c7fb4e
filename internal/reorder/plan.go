package reorder

import (
	"fmt"
	"slices"

	"github.com/Hero-Over/TachiyomiSY-sub001/internal/category"
)

// IndexOf returns the index of id in items, or -1.
func IndexOf(items []category.Category, id string) int {
	return slices.IndexFunc(items, func(c category.Category) bool { return c.ID == id })
}

// Move returns a new slice with the item identified by id removed from its
// current index and reinserted at newPosition. items is not modified.
//
// Returns ErrEntityNotFound or ErrPositionOutOfRange (wrapped) on bad input.
func Move(items []category.Category, id string, newPosition int) ([]category.Category, error) {
	from := IndexOf(items, id)
	if from < 0 {
		return nil, fmt.Errorf("move %s: %w", id, ErrEntityNotFound)
	}
	if newPosition < 0 || newPosition >= len(items) {
		return nil, fmt.Errorf("move %s to %d of %d: %w", id, newPosition, len(items), ErrPositionOutOfRange)
	}

	moving := items[from]
	result := make([]category.Category, 0, len(items))
	result = append(result, items[:from]...)
	result = append(result, items[from+1:]...)
	result = slices.Insert(result, newPosition, moving)
	return result, nil
}

// Renumber returns one order update per item, assigning each its index.
// Unmoved items are included.
func Renumber(items []category.Category) []category.PartialUpdate {
	updates := make([]category.PartialUpdate, len(items))
	for i, c := range items {
		updates[i] = category.OrderUpdate(c.ID, int64(i))
	}
	return updates
}

// IsNumbered reports whether every item's Order already equals its index.
func IsNumbered(items []category.Category) bool {
	for i, c := range items {
		if c.Order != int64(i) {
			return false
		}
	}
	return true
}

// CheckContiguous verifies that the Order values of items are exactly
// {0 .. N-1} with no duplicates or gaps. Item order in the slice is ignored.
func CheckContiguous(items []category.Category) error {
	seen := make([]bool, len(items))
	for _, c := range items {
		if c.Order < 0 || c.Order >= int64(len(items)) {
			return fmt.Errorf("%s has order %d outside [0, %d]: %w", c.ID, c.Order, len(items)-1, ErrNotContiguous)
		}
		if seen[c.Order] {
			return fmt.Errorf("order %d assigned twice (at %s): %w", c.Order, c.ID, ErrNotContiguous)
		}
		seen[c.Order] = true
	}
	return nil
}
