// Package category defines the value types shared by the ordering, storage and
// interactor layers: the ordered Category entity and the sparse PartialUpdate
// record applied to it.
//
// # Order Invariant
//
// Within one collection the Order values of N categories are exactly
// {0 .. N-1}: dense, zero-based, unique and contiguous. Nothing in this
// package enforces the invariant; reorder.CheckContiguous verifies it and
// every writer in the repository restores it before committing.
//
// # Names
//
// Names are compared through NormalizeName and NameKey so that visually
// identical names (composed vs decomposed accents, differing case) collide.
package category
