package harness

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/roach88/qbank/internal/question"
)

// Scenario is one scripted sequence of question operations.
type Scenario struct {
	// Name uniquely identifies this scenario and names its golden file.
	Name string `yaml:"name"`

	// Description explains what this scenario validates.
	Description string `yaml:"description"`

	// Store selects the backend: "memory" (default) or "sqlite".
	Store string `yaml:"store,omitempty"`

	// Seed is "default" (the built-in records, also used when empty),
	// "none", or the path of a CUE seed file.
	Seed string `yaml:"seed,omitempty"`

	// IDs are handed out to added questions in order. There must be at
	// least one per add step.
	IDs []string `yaml:"ids,omitempty"`

	// Watch opens a question-list subscription before the first step.
	Watch bool `yaml:"watch,omitempty"`

	// Steps run in order.
	Steps []Step `yaml:"steps"`

	// Final, if set, is the expected id order of the store after the
	// last step.
	Final []string `yaml:"final,omitempty"`
}

// Step operations.
const (
	OpList   = "list"
	OpGet    = "get"
	OpAdd    = "add"
	OpUpdate = "update"
	OpDelete = "delete"
)

// Store backends.
const (
	StoreMemory = "memory"
	StoreSQLite = "sqlite"
)

// Seed sources other than a file path.
const (
	SeedDefault = "default"
	SeedNone    = "none"
)

// Step is one API call.
type Step struct {
	// Op is list, get, add, update or delete.
	Op string `yaml:"op"`

	// ID is the target of get and delete.
	ID string `yaml:"id,omitempty"`

	// Input is the new question for add.
	Input *question.Input `yaml:"input,omitempty"`

	// Patch is the partial update for update.
	Patch *question.Patch `yaml:"patch,omitempty"`

	// Expect, if set, is checked against the step's outcome.
	Expect *Expect `yaml:"expect,omitempty"`
}

// Expect describes a step's expected outcome. Unset fields are not
// checked.
type Expect struct {
	// Error is the expected error code (VALIDATION, NOT_FOUND,
	// TRANSPORT). Empty means the step must succeed.
	Error string `yaml:"error,omitempty"`

	// Count is the expected list length (list).
	Count *int `yaml:"count,omitempty"`

	// IDs is the expected list id order (list).
	IDs []string `yaml:"ids,omitempty"`

	// ID is the expected record id (get, add, update, delete).
	ID string `yaml:"id,omitempty"`

	// Title, Tags and Difficulty are checked on the returned record.
	Title      string         `yaml:"title,omitempty"`
	Tags       *question.Tags `yaml:"tags,omitempty"`
	Difficulty string         `yaml:"difficulty,omitempty"`
}

// LoadScenario reads and parses a scenario YAML file.
// Returns an error if the file doesn't exist, is malformed,
// contains unknown fields (typos), or is missing required fields.
// A relative seed path is resolved against the scenario's directory.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario file: %w", err)
	}

	scenario, err := ParseScenario(data)
	if err != nil {
		return nil, err
	}

	if isSeedFile(scenario.Seed) && !filepath.IsAbs(scenario.Seed) {
		scenario.Seed = filepath.Join(filepath.Dir(path), scenario.Seed)
	}
	return scenario, nil
}

// ParseScenario parses and validates scenario YAML.
func ParseScenario(data []byte) (*Scenario, error) {
	var scenario Scenario
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true) // Reject unknown fields
	if err := decoder.Decode(&scenario); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := validateScenario(&scenario); err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}
	return &scenario, nil
}

func isSeedFile(seed string) bool {
	return seed != "" && seed != SeedDefault && seed != SeedNone
}

// validateScenario checks that required fields are present and valid.
func validateScenario(s *Scenario) error {
	if s.Name == "" {
		return fmt.Errorf("name is required")
	}

	if s.Description == "" {
		return fmt.Errorf("description is required")
	}

	switch s.Store {
	case "", StoreMemory, StoreSQLite:
	default:
		return fmt.Errorf("unknown store %q (want memory or sqlite)", s.Store)
	}

	if len(s.Steps) == 0 {
		return fmt.Errorf("steps list is required and must be non-empty")
	}

	adds := 0
	for i, step := range s.Steps {
		if err := validateStep(i, &step); err != nil {
			return err
		}
		if step.Op == OpAdd {
			adds++
		}
	}
	if adds > len(s.IDs) {
		return fmt.Errorf("ids: %d add steps but only %d ids", adds, len(s.IDs))
	}

	return nil
}

// validateStep validates a single step based on its op.
func validateStep(index int, st *Step) error {
	switch st.Op {
	case "":
		return fmt.Errorf("steps[%d]: op is required", index)
	case OpList:
	case OpGet, OpDelete:
		if st.ID == "" {
			return fmt.Errorf("steps[%d]: id is required for %s", index, st.Op)
		}
	case OpAdd:
		if st.Input == nil {
			return fmt.Errorf("steps[%d]: input is required for add", index)
		}
	case OpUpdate:
		if st.Patch == nil || st.Patch.ID == "" {
			return fmt.Errorf("steps[%d]: patch with id is required for update", index)
		}
	default:
		return fmt.Errorf("steps[%d]: unknown op %q", index, st.Op)
	}

	if st.Expect != nil {
		switch question.ErrorCode(st.Expect.Error) {
		case "", question.ErrCodeValidation, question.ErrCodeNotFound, question.ErrCodeTransport:
		default:
			return fmt.Errorf("steps[%d].expect: unknown error code %q", index, st.Expect.Error)
		}
	}
	return nil
}
