package category

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeName(t *testing.T) {
	// "é" decomposed (e + combining acute) becomes the composed form.
	assert.Equal(t, "Café", NormalizeName("  Café "))
	assert.Equal(t, "", NormalizeName("   "))
}

func TestNameKey_FoldsCaseAndForm(t *testing.T) {
	assert.Equal(t, NameKey("CAFÉ"), NameKey("café"))
	assert.NotEqual(t, NameKey("Reading"), NameKey("Read"))
}

func TestValidName(t *testing.T) {
	assert.True(t, ValidName("Plan to read"))
	assert.False(t, ValidName(""))
	assert.False(t, ValidName("\t \n"))
}

func TestHasName(t *testing.T) {
	cats := []Category{
		{ID: "a", Name: "Reading"},
		{ID: "b", Name: "Completed"},
	}

	assert.True(t, HasName(cats, "reading", ""))
	assert.True(t, HasName(cats, " COMPLETED ", ""))
	assert.False(t, HasName(cats, "Dropped", ""))

	// A category never collides with itself.
	assert.False(t, HasName(cats, "Reading", "a"))
	assert.True(t, HasName(cats, "Reading", "b"))
}
