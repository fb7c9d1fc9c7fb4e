package testutil

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Hero-Over/TachiyomiSY-sub001/internal/category"
)

func TestMemoryPort_FetchAllOrdersAndFilters(t *testing.T) {
	cats := append(Collection("lib", "a", "b", "c"), Collection("other", "x")...)
	// Shuffle input order; FetchAll must sort by Order.
	p := NewMemoryPort(cats[2], cats[0], cats[3], cats[1])

	got, err := p.FetchAll(context.Background(), "lib")
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b", "c"}, category.IDs(got))
	assert.Equal(t, 1, p.Fetches())

	empty, err := p.FetchAll(context.Background(), "missing")
	require.NoError(t, err)
	assert.NotNil(t, empty)
	assert.Empty(t, empty)
}

func TestMemoryPort_ApplyBatchIsAtomic(t *testing.T) {
	p := NewMemoryPort(Collection("lib", "a", "b")...)

	err := p.ApplyBatch(context.Background(), []category.PartialUpdate{
		category.OrderUpdate("a", 1),
		category.OrderUpdate("ghost", 0),
	})
	require.ErrorIs(t, err, category.ErrNotFound)

	// First update must not be visible.
	assert.Equal(t, Collection("lib", "a", "b"), p.Snapshot("lib"))
	assert.Empty(t, p.Batches())
}

func TestMemoryPort_FailBatch(t *testing.T) {
	p := NewMemoryPort(Collection("lib", "a", "b")...)
	boom := errors.New("disk full")
	p.FailBatch(boom)

	err := p.ApplyBatch(context.Background(), []category.PartialUpdate{category.OrderUpdate("a", 1)})
	assert.ErrorIs(t, err, boom)

	p.FailBatch(nil)
	err = p.ApplyBatch(context.Background(), []category.PartialUpdate{
		category.OrderUpdate("a", 1),
		category.OrderUpdate("b", 0),
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"b", "a"}, category.IDs(p.Snapshot("lib")))
	assert.Len(t, p.Batches(), 1)
}

func TestMemoryPort_DeleteAndRenumber(t *testing.T) {
	p := NewMemoryPort(Collection("lib", "a", "b", "c")...)

	updates, err := p.DeleteAndRenumber(context.Background(), "lib", "a")
	require.NoError(t, err)
	assert.Equal(t, []category.PartialUpdate{
		category.OrderUpdate("b", 0),
		category.OrderUpdate("c", 1),
	}, updates)

	got := p.Snapshot("lib")
	require.Len(t, got, 2)
	assert.Equal(t, int64(0), got[0].Order)
	assert.Equal(t, int64(1), got[1].Order)

	_, err = p.DeleteAndRenumber(context.Background(), "lib", "a")
	assert.ErrorIs(t, err, category.ErrNotFound)

	// Wrong collection is treated as absent.
	_, err = p.DeleteAndRenumber(context.Background(), "other", "b")
	assert.ErrorIs(t, err, category.ErrNotFound)
}

func TestMemoryPort_InsertAndGet(t *testing.T) {
	p := NewMemoryPort()
	c := category.Category{ID: "a", Collection: "lib", Name: "Reading"}

	require.NoError(t, p.Insert(context.Background(), c))
	assert.Error(t, p.Insert(context.Background(), c))

	got, err := p.Get(context.Background(), "a")
	require.NoError(t, err)
	assert.Equal(t, c, got)

	_, err = p.Get(context.Background(), "b")
	assert.ErrorIs(t, err, category.ErrNotFound)
}
