package category

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPartialUpdate_ApplyOnlyPresentFields(t *testing.T) {
	c := Category{ID: "c1", Collection: "default", Name: "Reading", Order: 3, Flags: 4}

	got := OrderUpdate("c1", 0).Apply(c)
	assert.Equal(t, Category{ID: "c1", Collection: "default", Name: "Reading", Order: 0, Flags: 4}, got)

	got = NameUpdate("c1", "Done").Apply(c)
	assert.Equal(t, "Done", got.Name)
	assert.Equal(t, int64(3), got.Order)

	got = FlagsUpdate("c1", 9).Apply(c)
	assert.Equal(t, int64(9), got.Flags)
	assert.Equal(t, "Reading", got.Name)
}

func TestPartialUpdate_IsEmpty(t *testing.T) {
	assert.True(t, PartialUpdate{ID: "c1"}.IsEmpty())
	assert.False(t, OrderUpdate("c1", 0).IsEmpty())
}

func TestPartialUpdate_String(t *testing.T) {
	tests := []struct {
		name   string
		update PartialUpdate
		want   string
	}{
		{"order only", OrderUpdate("a", 2), "a{order=2}"},
		{"name only", NameUpdate("a", "X"), `a{name="X"}`},
		{"empty", PartialUpdate{ID: "a"}, "a{}"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.update.String())
		})
	}

	order, flags, name := int64(1), int64(2), "N"
	all := PartialUpdate{ID: "a", Order: &order, Name: &name, Flags: &flags}
	assert.Equal(t, `a{order=1,name="N",flags=2}`, all.String())
}

func TestIDs(t *testing.T) {
	cats := []Category{{ID: "b"}, {ID: "a"}}
	assert.Equal(t, []string{"b", "a"}, IDs(cats))
	assert.Empty(t, IDs(nil))
}
