package harness

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"github.com/Hero-Over/TachiyomiSY-sub001/internal/category"
	"github.com/Hero-Over/TachiyomiSY-sub001/internal/interactor"
	"github.com/Hero-Over/TachiyomiSY-sub001/internal/reorder"
	"github.com/Hero-Over/TachiyomiSY-sub001/internal/store"
	"github.com/Hero-Over/TachiyomiSY-sub001/internal/testutil"
)

// outcome is what a step handler reports back to the trace.
type outcome struct {
	kind    string
	id      string
	updates []category.PartialUpdate
}

type stepHandler struct {
	needsID       bool
	needsName     bool
	needsPosition bool
	run           func(ctx context.Context, it *interactor.Interactor, collection string, step Step) outcome
}

// stepHandlers maps each scenario op to its handler.
var stepHandlers = map[string]stepHandler{
	"reorder": {needsID: true, needsPosition: true, run: runReorder},
	"create":  {needsName: true, run: runCreate},
	"rename":  {needsID: true, needsName: true, run: runRename},
	"delete":  {needsID: true, run: runDelete},
	"sort":    {run: runSort},
}

func runReorder(ctx context.Context, it *interactor.Interactor, collection string, step Step) outcome {
	res := it.Reorder(ctx, collection, step.ID, *step.Position)
	return outcome{kind: res.Kind.String(), id: step.ID, updates: res.Updates}
}

func runCreate(ctx context.Context, it *interactor.Interactor, collection string, step Step) outcome {
	res := it.Create(ctx, collection, step.Name)
	out := outcome{kind: res.Kind.String()}
	if res.Category != nil {
		out.id = res.Category.ID
	}
	return out
}

func runRename(ctx context.Context, it *interactor.Interactor, _ string, step Step) outcome {
	res := it.Rename(ctx, step.ID, step.Name)
	return outcome{kind: res.Kind.String(), id: step.ID, updates: res.Updates}
}

func runDelete(ctx context.Context, it *interactor.Interactor, collection string, step Step) outcome {
	res := it.Delete(ctx, collection, step.ID)
	return outcome{kind: res.Kind.String(), id: step.ID, updates: res.Updates}
}

func runSort(ctx context.Context, it *interactor.Interactor, collection string, _ Step) outcome {
	res := it.SortAlphabetically(ctx, collection)
	return outcome{kind: res.Kind.String(), updates: res.Updates}
}

// Run executes scenario against a fresh store and returns the trace.
//
// An error is returned only when the scenario cannot be set up; failed
// expectations are reported in Result.Errors.
func Run(scenario *Scenario) (*Result, error) {
	collection := scenario.collection()
	ctx := context.Background()
	st, cleanup, err := openStore(ctx, scenario, collection)
	if err != nil {
		return nil, err
	}
	defer cleanup()

	it := interactor.New(st, interactor.WithIDGenerator(category.NewSequenceGenerator("cat")))

	result := NewResult()
	for i, step := range scenario.Steps {
		handler, ok := stepHandlers[step.Op]
		if !ok {
			return nil, fmt.Errorf("steps[%d]: unknown op %q", i, step.Op)
		}

		out := handler.run(ctx, it, collection, step)
		result.Trace = append(result.Trace, TraceEvent{
			Seq:      i + 1,
			Op:       step.Op,
			ID:       out.id,
			Name:     step.Name,
			Position: step.Position,
			Result:   out.kind,
			Updates:  formatUpdates(out.updates),
		})

		if step.Expect != "" && step.Expect != out.kind {
			result.AddError("steps[%d] %s: expected %s, got %s", i, step.Op, step.Expect, out.kind)
		}
	}

	final, err := st.FetchAll(ctx, collection)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch final collection: %w", err)
	}
	result.FinalOrder = category.IDs(final)

	if err := reorder.CheckContiguous(final); err != nil {
		result.AddError("final collection: %v", err)
	}
	if scenario.ExpectOrder != nil && !slices.Equal(scenario.ExpectOrder, result.FinalOrder) {
		result.AddError("final order: expected %v, got %v", scenario.ExpectOrder, result.FinalOrder)
	}

	return result, nil
}

// openStore seeds a fresh in-memory SQLite store, or a MemoryPort with
// failing writes when the scenario sets fail_batch.
func openStore(ctx context.Context, scenario *Scenario, collection string) (interactor.Store, func(), error) {
	seed := testutil.Collection(collection, scenario.Seed...)

	if scenario.FailBatch != "" {
		port := testutil.NewMemoryPort(seed...)
		port.FailBatch(errors.New(scenario.FailBatch))
		return port, func() {}, nil
	}

	st, err := store.Open(":memory:")
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create in-memory store: %w", err)
	}
	for _, c := range seed {
		if err := st.Insert(ctx, c); err != nil {
			st.Close()
			return nil, nil, fmt.Errorf("failed to seed %s: %w", c.ID, err)
		}
	}
	return st, func() { st.Close() }, nil
}

func formatUpdates(updates []category.PartialUpdate) []string {
	if len(updates) == 0 {
		return nil
	}
	out := make([]string, len(updates))
	for i, u := range updates {
		out[i] = u.String()
	}
	return out
}
