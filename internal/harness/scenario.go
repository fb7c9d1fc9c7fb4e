package harness

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/Hero-Over/TachiyomiSY-sub001/internal/category"
)

// Scenario is one conformance scenario.
type Scenario struct {
	// Name identifies the scenario and its golden file.
	Name string `yaml:"name"`

	// Description explains what the scenario checks.
	Description string `yaml:"description,omitempty"`

	// Collection is the collection all steps act on. Defaults to "default".
	Collection string `yaml:"collection,omitempty"`

	// Seed lists the initial IDs in order. Each is named after its ID.
	Seed []string `yaml:"seed"`

	// FailBatch, when set, makes every write fail with this message.
	FailBatch string `yaml:"fail_batch,omitempty"`

	// Steps run in order.
	Steps []Step `yaml:"steps"`

	// ExpectOrder is the expected final ID order. Nil skips the check.
	ExpectOrder []string `yaml:"expect_order,omitempty"`
}

func (s *Scenario) collection() string {
	if s.Collection == "" {
		return category.DefaultCollection
	}
	return s.Collection
}

// Step is one operation. Which fields apply depends on Op.
type Step struct {
	Op       string `yaml:"op"`
	ID       string `yaml:"id,omitempty"`
	Name     string `yaml:"name,omitempty"`
	Position *int   `yaml:"position,omitempty"`

	// Expect is the expected result kind, e.g. "Success" or "Unchanged".
	// Empty skips the check.
	Expect string `yaml:"expect,omitempty"`
}

// LoadScenario reads and validates a scenario file. Unknown fields are
// rejected.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario file: %w", err)
	}
	return ParseScenario(data)
}

// ParseScenario decodes and validates scenario YAML.
func ParseScenario(data []byte) (*Scenario, error) {
	var scenario Scenario
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&scenario); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := validateScenario(&scenario); err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}
	return &scenario, nil
}

func validateScenario(s *Scenario) error {
	if s.Name == "" {
		return fmt.Errorf("name is required")
	}
	if len(s.Steps) == 0 {
		return fmt.Errorf("steps list is required and must be non-empty")
	}

	seen := make(map[string]bool, len(s.Seed))
	for i, id := range s.Seed {
		if id == "" {
			return fmt.Errorf("seed[%d]: empty id", i)
		}
		if seen[id] {
			return fmt.Errorf("seed[%d]: duplicate id %q", i, id)
		}
		seen[id] = true
	}

	for i, step := range s.Steps {
		h, ok := stepHandlers[step.Op]
		if !ok {
			return fmt.Errorf("steps[%d]: unknown op %q", i, step.Op)
		}
		if h.needsID && step.ID == "" {
			return fmt.Errorf("steps[%d]: id is required for %s", i, step.Op)
		}
		if h.needsName && step.Name == "" {
			return fmt.Errorf("steps[%d]: name is required for %s", i, step.Op)
		}
		if h.needsPosition && step.Position == nil {
			return fmt.Errorf("steps[%d]: position is required for %s", i, step.Op)
		}
	}
	return nil
}
