package interactor

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"

	"go.uber.org/zap"

	"github.com/Hero-Over/TachiyomiSY-sub001/internal/category"
	"github.com/Hero-Over/TachiyomiSY-sub001/internal/reorder"
)

// Store is the persistence the interactors need: the reorder port plus
// lookup, insert and delete.
type Store interface {
	reorder.Port
	Get(ctx context.Context, id string) (category.Category, error)
	Insert(ctx context.Context, c category.Category) error
	DeleteAndRenumber(ctx context.Context, collectionID, id string) ([]category.PartialUpdate, error)
}

// Interactor runs category operations against a Store.
type Interactor struct {
	store      Store
	reconciler *reorder.Reconciler
	ids        category.IDGenerator
	logger     *zap.Logger
	locks      *reorder.Locks
}

// Option configures an Interactor.
type Option func(*Interactor)

// WithLogger sets the logger shared with the reconciler. Default: zap.NewNop().
func WithLogger(logger *zap.Logger) Option {
	return func(i *Interactor) {
		if logger != nil {
			i.logger = logger
		}
	}
}

// WithIDGenerator sets the generator for new category IDs.
// Default: category.UUIDv7Generator.
func WithIDGenerator(gen category.IDGenerator) Option {
	return func(i *Interactor) {
		if gen != nil {
			i.ids = gen
		}
	}
}

// WithSerializedCollections serializes every read-modify-write on a
// collection (create, rename, delete, sort and reorder) inside this process.
// Default: disabled.
func WithSerializedCollections(enabled bool) Option {
	return func(i *Interactor) {
		if enabled {
			i.locks = reorder.NewLocks()
		} else {
			i.locks = nil
		}
	}
}

// New creates an Interactor over store.
func New(store Store, opts ...Option) *Interactor {
	i := &Interactor{
		store:  store,
		ids:    category.UUIDv7Generator{},
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(i)
	}
	i.reconciler = reorder.New(store,
		reorder.WithLogger(i.logger.Named("reorder")),
		reorder.WithLocks(i.locks),
	)
	return i
}

// List returns the collection in order.
func (i *Interactor) List(ctx context.Context, collectionID string) ([]category.Category, error) {
	cats, err := i.store.FetchAll(ctx, collectionID)
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", collectionID, err)
	}
	return cats, nil
}

// Check verifies the order invariant of a collection.
func (i *Interactor) Check(ctx context.Context, collectionID string) error {
	cats, err := i.List(ctx, collectionID)
	if err != nil {
		return err
	}
	return reorder.CheckContiguous(cats)
}

// Reorder moves id to position within collectionID.
func (i *Interactor) Reorder(ctx context.Context, collectionID, id string, position int) reorder.Result {
	return i.reconciler.Reorder(ctx, collectionID, id, position)
}

// Create appends a new category named name to collectionID.
//
// Blank names yield InvalidName; a name equal to an existing one under
// category.NameKey yields NameAlreadyExists.
func (i *Interactor) Create(ctx context.Context, collectionID, name string) Result {
	ctx = context.WithoutCancel(ctx)
	if !category.ValidName(name) {
		return failed(KindInvalidName)
	}

	unlock := i.locks.Lock(collectionID)
	defer unlock()

	existing, err := i.store.FetchAll(ctx, collectionID)
	if err != nil {
		return i.fail("create", fmt.Errorf("fetch collection %s: %w", collectionID, err))
	}
	if category.HasName(existing, name, "") {
		return failed(KindNameAlreadyExists)
	}

	c := category.Category{
		ID:         i.ids.Generate(),
		Collection: collectionID,
		Name:       category.NormalizeName(name),
		Order:      int64(len(existing)),
	}
	if err := i.store.Insert(ctx, c); err != nil {
		return i.fail("create", err)
	}

	i.logger.Debug("category created",
		zap.String("collection", collectionID),
		zap.String("id", c.ID),
		zap.Int64("order", c.Order),
	)
	return succeeded(&c, nil)
}

// Rename sets the name of id. Renaming to the current name is Unchanged.
func (i *Interactor) Rename(ctx context.Context, id, name string) Result {
	ctx = context.WithoutCancel(ctx)
	if !category.ValidName(name) {
		return failed(KindInvalidName)
	}

	c, err := i.store.Get(ctx, id)
	if errors.Is(err, category.ErrNotFound) {
		return failed(KindNotFound)
	}
	if err != nil {
		return i.fail("rename", err)
	}

	unlock := i.locks.Lock(c.Collection)
	defer unlock()

	normalized := category.NormalizeName(name)
	if normalized == c.Name {
		return Result{Kind: KindUnchanged, Category: &c}
	}

	siblings, err := i.store.FetchAll(ctx, c.Collection)
	if err != nil {
		return i.fail("rename", fmt.Errorf("fetch collection %s: %w", c.Collection, err))
	}
	if category.HasName(siblings, normalized, c.ID) {
		return failed(KindNameAlreadyExists)
	}

	updates := []category.PartialUpdate{category.NameUpdate(c.ID, normalized)}
	if err := i.store.ApplyBatch(ctx, updates); err != nil {
		return i.storeFailure("rename", err)
	}
	c.Name = normalized
	return succeeded(&c, updates)
}

// Delete removes id from collectionID and closes the gap it leaves.
func (i *Interactor) Delete(ctx context.Context, collectionID, id string) Result {
	ctx = context.WithoutCancel(ctx)
	unlock := i.locks.Lock(collectionID)
	defer unlock()

	updates, err := i.store.DeleteAndRenumber(ctx, collectionID, id)
	if err != nil {
		return i.storeFailure("delete", err)
	}

	i.logger.Debug("category deleted",
		zap.String("collection", collectionID),
		zap.String("id", id),
		zap.Int("renumbered", len(updates)),
	)
	return succeeded(nil, updates)
}

// Update applies a caller-built batch as-is. The caller is responsible for
// keeping orders contiguous; the batch may span collections, so it takes no
// collection lock. An empty batch is Unchanged.
func (i *Interactor) Update(ctx context.Context, updates []category.PartialUpdate) Result {
	ctx = context.WithoutCancel(ctx)
	if len(updates) == 0 {
		return failed(KindUnchanged)
	}
	if err := i.store.ApplyBatch(ctx, updates); err != nil {
		return i.storeFailure("update", err)
	}
	return succeeded(nil, updates)
}

// SortAlphabetically orders collectionID by name (case- and form-insensitive,
// stable for ties) and renumbers it. Unchanged if already in that order.
func (i *Interactor) SortAlphabetically(ctx context.Context, collectionID string) Result {
	ctx = context.WithoutCancel(ctx)
	unlock := i.locks.Lock(collectionID)
	defer unlock()

	cats, err := i.store.FetchAll(ctx, collectionID)
	if err != nil {
		return i.fail("sort", fmt.Errorf("fetch collection %s: %w", collectionID, err))
	}

	sorted := slices.Clone(cats)
	slices.SortStableFunc(sorted, func(a, b category.Category) int {
		return strings.Compare(category.NameKey(a.Name), category.NameKey(b.Name))
	})

	if slices.Equal(category.IDs(sorted), category.IDs(cats)) && reorder.IsNumbered(cats) {
		return failed(KindUnchanged)
	}

	updates := reorder.Renumber(sorted)
	if err := i.store.ApplyBatch(ctx, updates); err != nil {
		return i.storeFailure("sort", err)
	}
	return succeeded(nil, updates)
}

// storeFailure maps category.ErrNotFound to NotFound and anything else to
// InternalError.
func (i *Interactor) storeFailure(op string, err error) Result {
	if errors.Is(err, category.ErrNotFound) {
		return failed(KindNotFound)
	}
	return i.fail(op, err)
}

func (i *Interactor) fail(op string, err error) Result {
	i.logger.Error("category operation failed", zap.String("op", op), zap.Error(err))
	return internalError(fmt.Errorf("%s: %w", op, err))
}
