package reorder

import (
	"slices"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Hero-Over/TachiyomiSY-sub001/internal/category"
	"github.com/Hero-Over/TachiyomiSY-sub001/internal/testutil"
)

func TestMove(t *testing.T) {
	items := testutil.Collection("lib", "A", "B", "C", "D")

	tests := []struct {
		name     string
		id       string
		position int
		want     []string
	}{
		{"to front", "C", 0, []string{"C", "A", "B", "D"}},
		{"to back", "A", 3, []string{"B", "C", "D", "A"}},
		{"one down", "B", 2, []string{"A", "C", "B", "D"}},
		{"one up", "D", 2, []string{"A", "B", "D", "C"}},
		{"in place", "B", 1, []string{"A", "B", "C", "D"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Move(items, tt.id, tt.position)
			require.NoError(t, err)
			assert.Equal(t, tt.want, category.IDs(got))
		})
	}

	// Input is never modified.
	assert.Equal(t, []string{"A", "B", "C", "D"}, category.IDs(items))
}

func TestMove_Errors(t *testing.T) {
	items := testutil.Collection("lib", "A", "B")

	_, err := Move(items, "Z", 0)
	assert.ErrorIs(t, err, ErrEntityNotFound)

	_, err = Move(items, "A", 2)
	assert.ErrorIs(t, err, ErrPositionOutOfRange)

	_, err = Move(items, "A", -1)
	assert.ErrorIs(t, err, ErrPositionOutOfRange)

	_, err = Move(nil, "A", 0)
	assert.ErrorIs(t, err, ErrEntityNotFound)
}

// Every (target, position) pair yields the original sequence with the target
// removed and reinserted at position.
func TestMove_PermutationCorrectness(t *testing.T) {
	ids := []string{"A", "B", "C", "D", "E"}
	items := testutil.Collection("lib", ids...)

	for from, id := range ids {
		for to := range ids {
			got, err := Move(items, id, to)
			require.NoError(t, err)

			want := slices.Delete(slices.Clone(ids), from, from+1)
			want = slices.Insert(want, to, id)
			if diff := cmp.Diff(want, category.IDs(got)); diff != "" {
				t.Errorf("Move(%s, %d) mismatch (-want +got):\n%s", id, to, diff)
			}
		}
	}
}

func TestRenumber(t *testing.T) {
	items := []category.Category{
		{ID: "C", Order: 2},
		{ID: "A", Order: 0},
		{ID: "B", Order: 1},
	}

	want := []category.PartialUpdate{
		category.OrderUpdate("C", 0),
		category.OrderUpdate("A", 1),
		category.OrderUpdate("B", 2),
	}
	if diff := cmp.Diff(want, Renumber(items)); diff != "" {
		t.Errorf("Renumber mismatch (-want +got):\n%s", diff)
	}
	assert.Empty(t, Renumber(nil))
}

func TestIsNumbered(t *testing.T) {
	assert.True(t, IsNumbered(testutil.Collection("lib", "A", "B")))
	assert.True(t, IsNumbered(nil))
	assert.False(t, IsNumbered([]category.Category{{ID: "A", Order: 1}, {ID: "B", Order: 0}}))
}

func TestCheckContiguous(t *testing.T) {
	tests := []struct {
		name    string
		orders  []int64
		wantErr bool
	}{
		{"empty", nil, false},
		{"dense", []int64{0, 1, 2}, false},
		{"permuted", []int64{2, 0, 1}, false},
		{"gap", []int64{0, 2}, true},
		{"duplicate", []int64{0, 0}, true},
		{"negative", []int64{-1, 0}, true},
		{"starts at one", []int64{1, 2}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			items := make([]category.Category, len(tt.orders))
			for i, o := range tt.orders {
				items[i] = category.Category{ID: string(rune('A' + i)), Order: o}
			}
			err := CheckContiguous(items)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrNotContiguous)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
