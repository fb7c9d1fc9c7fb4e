package interactor

import (
	"fmt"

	"github.com/Hero-Over/TachiyomiSY-sub001/internal/category"
)

// Kind identifies the variant of a Result.
type Kind int

const (
	// KindSuccess means the operation wrote to the store.
	KindSuccess Kind = iota + 1
	// KindUnchanged means there was nothing to write.
	KindUnchanged
	// KindNotFound means the category does not exist in the collection.
	KindNotFound
	// KindInvalidName means the name is blank after normalization.
	KindInvalidName
	// KindNameAlreadyExists means a sibling already has the name under
	// category.NameKey.
	KindNameAlreadyExists
	// KindInternalError means the store failed; Result.Err holds the cause.
	KindInternalError
)

var kindNames = map[Kind]string{
	KindSuccess:           "Success",
	KindUnchanged:         "Unchanged",
	KindNotFound:          "NotFound",
	KindInvalidName:       "InvalidName",
	KindNameAlreadyExists: "NameAlreadyExists",
	KindInternalError:     "InternalError",
}

// String returns the variant name used in logs, traces and CLI output.
func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Result is the outcome of a category operation.
type Result struct {
	Kind Kind

	// Category is the created or renamed category, when there is one.
	Category *category.Category

	// Updates is the batch written to the store on Success.
	Updates []category.PartialUpdate

	// Err is set for KindInternalError.
	Err error
}

// OK reports whether the result is Success or Unchanged.
func (r Result) OK() bool {
	return r.Kind == KindSuccess || r.Kind == KindUnchanged
}

func (r Result) String() string {
	if r.Err != nil {
		return fmt.Sprintf("%s(%v)", r.Kind, r.Err)
	}
	return r.Kind.String()
}

func succeeded(c *category.Category, updates []category.PartialUpdate) Result {
	return Result{Kind: KindSuccess, Category: c, Updates: updates}
}

func failed(kind Kind) Result {
	return Result{Kind: kind}
}

func internalError(err error) Result {
	return Result{Kind: KindInternalError, Err: err}
}
