// Package interactor implements the category use-cases: create, rename,
// delete, batch update, alphabetical sort and reorder.
//
// Every mutating operation is shielded from cancellation of the caller's
// context and reports its outcome as a Result rather than an error. Reorder is
// delegated to reorder.Reconciler and keeps its exact result variants.
package interactor
