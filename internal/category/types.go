package category

import "fmt"

// DefaultCollection is the collection used when callers do not name one.
const DefaultCollection = "default"

// Category is a named entry in a user-ordered sequence.
type Category struct {
	ID         string `json:"id"`
	Collection string `json:"collection"`
	Name       string `json:"name"`
	Order      int64  `json:"order"`
	Flags      int64  `json:"flags"`
}

// PartialUpdate is a sparse update for one category.
// Nil fields leave the stored value unchanged.
type PartialUpdate struct {
	ID    string  `json:"id"`
	Order *int64  `json:"order,omitempty"`
	Name  *string `json:"name,omitempty"`
	Flags *int64  `json:"flags,omitempty"`
}

// OrderUpdate returns an update that only sets Order.
func OrderUpdate(id string, order int64) PartialUpdate {
	return PartialUpdate{ID: id, Order: &order}
}

// NameUpdate returns an update that only sets Name.
func NameUpdate(id, name string) PartialUpdate {
	return PartialUpdate{ID: id, Name: &name}
}

// FlagsUpdate returns an update that only sets Flags.
func FlagsUpdate(id string, flags int64) PartialUpdate {
	return PartialUpdate{ID: id, Flags: &flags}
}

// IsEmpty reports whether the update carries no fields.
func (u PartialUpdate) IsEmpty() bool {
	return u.Order == nil && u.Name == nil && u.Flags == nil
}

// Apply returns c with the present fields of u applied.
// The caller is responsible for checking that the IDs match.
func (u PartialUpdate) Apply(c Category) Category {
	if u.Order != nil {
		c.Order = *u.Order
	}
	if u.Name != nil {
		c.Name = *u.Name
	}
	if u.Flags != nil {
		c.Flags = *u.Flags
	}
	return c
}

// String renders the update compactly for logs and traces, e.g. "c1{order=0}".
func (u PartialUpdate) String() string {
	s := u.ID + "{"
	sep := ""
	if u.Order != nil {
		s += fmt.Sprintf("order=%d", *u.Order)
		sep = ","
	}
	if u.Name != nil {
		s += fmt.Sprintf("%sname=%q", sep, *u.Name)
		sep = ","
	}
	if u.Flags != nil {
		s += fmt.Sprintf("%sflags=%d", sep, *u.Flags)
	}
	return s + "}"
}

// IDs returns the IDs of cats in slice order.
func IDs(cats []Category) []string {
	ids := make([]string, len(cats))
	for i, c := range cats {
		ids[i] = c.ID
	}
	return ids
}
