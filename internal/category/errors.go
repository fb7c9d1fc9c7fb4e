package category

import "errors"

// ErrNotFound is returned (wrapped) by storage when a category ID does not exist.
var ErrNotFound = errors.New("category not found")
