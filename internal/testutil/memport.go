package testutil

import (
	"cmp"
	"context"
	"fmt"
	"maps"
	"slices"
	"strings"
	"sync"

	"github.com/Hero-Over/TachiyomiSY-sub001/internal/category"
)

// MemoryPort is a thread-safe in-memory category store.
type MemoryPort struct {
	mu   sync.Mutex
	rows map[string]category.Category

	batches [][]category.PartialUpdate
	fetches int

	fetchErr error
	batchErr error

	// BeforeFetch runs at the start of FetchAll, outside the lock.
	BeforeFetch func(ctx context.Context)

	// BeforeBatch runs at the start of ApplyBatch, outside the lock.
	BeforeBatch func(ctx context.Context, updates []category.PartialUpdate)
}

// NewMemoryPort creates a port holding cats.
func NewMemoryPort(cats ...category.Category) *MemoryPort {
	p := &MemoryPort{rows: make(map[string]category.Category, len(cats))}
	for _, c := range cats {
		p.rows[c.ID] = c
	}
	return p
}

// Collection builds categories for collection with IDs ids, named after their
// IDs and numbered 0..N-1 in argument order.
func Collection(collection string, ids ...string) []category.Category {
	cats := make([]category.Category, len(ids))
	for i, id := range ids {
		cats[i] = category.Category{ID: id, Collection: collection, Name: id, Order: int64(i)}
	}
	return cats
}

// FailFetch makes every subsequent FetchAll return err. Nil clears it.
func (p *MemoryPort) FailFetch(err error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.fetchErr = err
}

// FailBatch makes every subsequent ApplyBatch return err. Nil clears it.
func (p *MemoryPort) FailBatch(err error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.batchErr = err
}

// FetchAll returns the collection ordered by Order, then ID.
func (p *MemoryPort) FetchAll(ctx context.Context, collectionID string) ([]category.Category, error) {
	if p.BeforeFetch != nil {
		p.BeforeFetch(ctx)
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	p.fetches++
	if p.fetchErr != nil {
		return nil, p.fetchErr
	}
	return p.collectionLocked(collectionID), nil
}

// ApplyBatch applies updates atomically. An unknown ID fails the whole batch
// with category.ErrNotFound. Failed batches are not recorded.
func (p *MemoryPort) ApplyBatch(ctx context.Context, updates []category.PartialUpdate) error {
	if p.BeforeBatch != nil {
		p.BeforeBatch(ctx, updates)
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if p.batchErr != nil {
		return p.batchErr
	}

	next := maps.Clone(p.rows)
	for _, u := range updates {
		c, ok := next[u.ID]
		if !ok {
			return fmt.Errorf("apply update %s: %w", u.ID, category.ErrNotFound)
		}
		next[u.ID] = u.Apply(c)
	}
	p.rows = next
	p.batches = append(p.batches, slices.Clone(updates))
	return nil
}

// Get returns one category by ID.
func (p *MemoryPort) Get(ctx context.Context, id string) (category.Category, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	c, ok := p.rows[id]
	if !ok {
		return category.Category{}, fmt.Errorf("get %s: %w", id, category.ErrNotFound)
	}
	return c, nil
}

// Insert adds c. Inserting an existing ID is an error.
func (p *MemoryPort) Insert(ctx context.Context, c category.Category) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.batchErr != nil {
		return p.batchErr
	}
	if _, ok := p.rows[c.ID]; ok {
		return fmt.Errorf("insert %s: duplicate id", c.ID)
	}
	p.rows[c.ID] = c
	return nil
}

// DeleteAndRenumber removes id from collectionID and renumbers the survivors
// 0..N-2 in their existing order, atomically.
func (p *MemoryPort) DeleteAndRenumber(ctx context.Context, collectionID, id string) ([]category.PartialUpdate, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.batchErr != nil {
		return nil, p.batchErr
	}
	c, ok := p.rows[id]
	if !ok || c.Collection != collectionID {
		return nil, fmt.Errorf("delete %s: %w", id, category.ErrNotFound)
	}

	delete(p.rows, id)
	survivors := p.collectionLocked(collectionID)
	updates := make([]category.PartialUpdate, len(survivors))
	for i, s := range survivors {
		updates[i] = category.OrderUpdate(s.ID, int64(i))
		s.Order = int64(i)
		p.rows[s.ID] = s
	}
	p.batches = append(p.batches, slices.Clone(updates))
	return updates, nil
}

// Snapshot returns the collection without counting as a fetch.
func (p *MemoryPort) Snapshot(collectionID string) []category.Category {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.collectionLocked(collectionID)
}

// Batches returns a copy of every successfully applied batch, in order.
func (p *MemoryPort) Batches() [][]category.PartialUpdate {
	p.mu.Lock()
	defer p.mu.Unlock()
	return slices.Clone(p.batches)
}

// Fetches returns the number of FetchAll calls.
func (p *MemoryPort) Fetches() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.fetches
}

func (p *MemoryPort) collectionLocked(collectionID string) []category.Category {
	out := []category.Category{}
	for _, c := range p.rows {
		if c.Collection == collectionID {
			out = append(out, c)
		}
	}
	slices.SortFunc(out, func(a, b category.Category) int {
		if c := cmp.Compare(a.Order, b.Order); c != 0 {
			return c
		}
		return strings.Compare(a.ID, b.ID)
	})
	return out
}
