package harness

import "fmt"

// TraceEvent records one executed step.
type TraceEvent struct {
	Seq      int      `json:"seq"`
	Op       string   `json:"op"`
	ID       string   `json:"id,omitempty"`
	Name     string   `json:"name,omitempty"`
	Position *int     `json:"position,omitempty"`
	Result   string   `json:"result"`
	Updates  []string `json:"updates,omitempty"`
}

// Result is the outcome of running a scenario.
type Result struct {
	// Pass is true when every expectation held.
	Pass bool `json:"pass"`

	// Trace holds one event per step, in order.
	Trace []TraceEvent `json:"trace"`

	// FinalOrder is the collection's ID order after the last step.
	FinalOrder []string `json:"final_order"`

	// Errors lists failed expectations. Empty if Pass is true.
	Errors []string `json:"errors,omitempty"`
}

// NewResult creates a passing result.
func NewResult() *Result {
	return &Result{
		Pass:   true,
		Trace:  []TraceEvent{},
		Errors: []string{},
	}
}

// AddError records a failed expectation and marks the result failed.
func (r *Result) AddError(format string, args ...any) {
	r.Errors = append(r.Errors, fmt.Sprintf(format, args...))
	r.Pass = false
}
