package reorder

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/Hero-Over/TachiyomiSY-sub001/internal/category"
)

// ErrPortPanic wraps a panic raised by the Port during a reorder.
var ErrPortPanic = errors.New("persistence port panicked")

// Port is the persistence capability the Reconciler depends on.
//
// FetchAll must return the collection in ascending Order. ApplyBatch must be
// atomic: either every update lands or none does.
type Port interface {
	FetchAll(ctx context.Context, collectionID string) ([]category.Category, error)
	ApplyBatch(ctx context.Context, updates []category.PartialUpdate) error
}

// Kind identifies the variant of a Result.
type Kind int

const (
	// KindSuccess means the renumbering batch was applied.
	KindSuccess Kind = iota + 1
	// KindUnchanged means the target was already at the requested position.
	KindUnchanged
	// KindInternalError means the reorder failed; Result.Err holds the cause.
	KindInternalError
)

// String returns the variant name used in logs, traces and CLI output.
func (k Kind) String() string {
	switch k {
	case KindSuccess:
		return "Success"
	case KindUnchanged:
		return "Unchanged"
	case KindInternalError:
		return "InternalError"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Result is the outcome of Reorder: Success, Unchanged or InternalError.
type Result struct {
	Kind Kind

	// Updates is the batch submitted to the Port. Set only on Success.
	Updates []category.PartialUpdate

	// Err is the cause of an InternalError. Nil otherwise.
	Err error
}

// Success builds a KindSuccess result.
func Success(updates []category.PartialUpdate) Result {
	return Result{Kind: KindSuccess, Updates: updates}
}

// Unchanged builds a KindUnchanged result.
func Unchanged() Result {
	return Result{Kind: KindUnchanged}
}

// InternalError builds a KindInternalError result carrying cause.
func InternalError(cause error) Result {
	return Result{Kind: KindInternalError, Err: cause}
}

// OK reports whether the result is not an error.
func (r Result) OK() bool {
	return r.Kind == KindSuccess || r.Kind == KindUnchanged
}

func (r Result) String() string {
	if r.Err != nil {
		return fmt.Sprintf("%s(%v)", r.Kind, r.Err)
	}
	return r.Kind.String()
}

// Reconciler moves categories within their collection.
//
// Thread-safety: safe for concurrent use. Without WithSerializedCollections
// concurrent calls on the same collection race at the Port.
type Reconciler struct {
	port   Port
	logger *zap.Logger
	locks  *Locks
}

// Option configures a Reconciler.
type Option func(*Reconciler)

// WithLogger sets the logger. Default: zap.NewNop().
func WithLogger(logger *zap.Logger) Option {
	return func(r *Reconciler) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// WithSerializedCollections serializes reorders per collection inside this
// process when enabled. Default: disabled (last write wins).
func WithSerializedCollections(enabled bool) Option {
	return func(r *Reconciler) {
		if enabled {
			r.locks = NewLocks()
		} else {
			r.locks = nil
		}
	}
}

// WithLocks serializes reorders through locks, which may be shared with
// other writers of the same collections. A nil locks disables serialization.
func WithLocks(locks *Locks) Option {
	return func(r *Reconciler) {
		r.locks = locks
	}
}

// New creates a Reconciler writing through port.
func New(port Port, opts ...Option) *Reconciler {
	r := &Reconciler{
		port:   port,
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Reorder moves targetID to newPosition within collectionID.
//
// The call is shielded from cancellation of ctx: once started it finishes its
// fetch-compute-write sequence and returns a normal Result.
func (r *Reconciler) Reorder(ctx context.Context, collectionID, targetID string, newPosition int) (res Result) {
	ctx = context.WithoutCancel(ctx)
	log := r.logger.With(
		zap.String("collection", collectionID),
		zap.String("target", targetID),
		zap.Int("position", newPosition),
	)

	unlock := r.locks.Lock(collectionID)
	defer unlock()

	defer func() {
		if p := recover(); p != nil {
			res = InternalError(fmt.Errorf("%w: %v", ErrPortPanic, p))
			log.Error("reorder failed", zap.Error(res.Err))
		}
	}()

	res = r.reorder(ctx, collectionID, targetID, newPosition)
	switch res.Kind {
	case KindInternalError:
		log.Error("reorder failed", zap.Error(res.Err))
	case KindSuccess:
		log.Debug("reorder applied", zap.Int("updates", len(res.Updates)))
	default:
		log.Debug("reorder skipped: already in position")
	}
	return res
}

func (r *Reconciler) reorder(ctx context.Context, collectionID, targetID string, newPosition int) Result {
	items, err := r.port.FetchAll(ctx, collectionID)
	if err != nil {
		return InternalError(fmt.Errorf("fetch collection %s: %w", collectionID, err))
	}

	from := IndexOf(items, targetID)
	if from < 0 {
		return InternalError(fmt.Errorf("reorder %s in %s: %w", targetID, collectionID, ErrEntityNotFound))
	}
	if newPosition < 0 || newPosition >= len(items) {
		return InternalError(fmt.Errorf("reorder %s to %d of %d: %w", targetID, newPosition, len(items), ErrPositionOutOfRange))
	}
	if from == newPosition {
		return Unchanged()
	}

	moved, err := Move(items, targetID, newPosition)
	if err != nil {
		return InternalError(err)
	}
	updates := Renumber(moved)

	if err := r.port.ApplyBatch(ctx, updates); err != nil {
		return InternalError(fmt.Errorf("apply batch of %d: %w", len(updates), err))
	}
	return Success(updates)
}
