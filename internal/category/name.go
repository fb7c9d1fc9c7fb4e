package category

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"
)

// NormalizeName trims surrounding whitespace and NFC-normalizes name.
// This is the form names are stored in.
func NormalizeName(name string) string {
	return norm.NFC.String(strings.TrimSpace(name))
}

// NameKey returns the comparison key for name: normalized and case-folded.
func NameKey(name string) string {
	return cases.Fold().String(NormalizeName(name))
}

// ValidName reports whether name is non-blank after normalization.
func ValidName(name string) bool {
	return NormalizeName(name) != ""
}

// HasName reports whether any category in cats other than skipID has a name
// equal to name under NameKey.
func HasName(cats []Category, name, skipID string) bool {
	key := NameKey(name)
	for _, c := range cats {
		if c.ID == skipID {
			continue
		}
		if NameKey(c.Name) == key {
			return true
		}
	}
	return false
}
