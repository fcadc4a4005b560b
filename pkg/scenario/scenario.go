// Package scenario loads and runs evaluation scenarios for compiled
// expressions.
//
// A scenario is a TOML file naming one expression and a sequence of runs.
// Each run assigns input values and optionally states the expected output:
//
//	name = "reference"
//	expression = "add(x1, mul(x2, sin(add(x2, pow(x3, 3)))))"
//	precision = 5
//
//	[[run]]
//	values = { x1 = 1, x2 = 2, x3 = 3 }
//	expect = -0.32727
//
//	[[run]]
//	values = { x1 = 2, x2 = 3, x3 = 4 }
//	expect = -0.56656
//
// All runs share one graph. Inputs a run does not mention keep the value
// from the previous run, and only the parts of the graph reached by changed
// inputs are recomputed.
package scenario

import (
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/compgraph/pkg/errors"
)

// DefaultPrecision is the number of decimal places used when a scenario does
// not set one.
const DefaultPrecision = 5

// Scenario is a decoded scenario file.
type Scenario struct {
	Name       string `toml:"name"`
	Expression string `toml:"expression"`
	Precision  int    `toml:"precision"`
	Runs       []Run  `toml:"run"`
}

// Run is one evaluation of a scenario's expression.
type Run struct {
	Label  string             `toml:"label"`
	Values map[string]float64 `toml:"values"`
	Expect *float64           `toml:"expect"`
}

// Load reads and validates a scenario file. If the file does not set a name,
// the file's base name without extension is used.
func Load(path string) (*Scenario, error) {
	if err := errors.ValidateScenarioPath(path); err != nil {
		return nil, err
	}

	f, err := os.Open(path)
	if os.IsNotExist(err) {
		return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "scenario file not found: %s", path)
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "open %s", path)
	}
	defer f.Close()

	s, err := Parse(f)
	if err != nil {
		return nil, err
	}
	if s.Name == "" {
		s.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	return s, nil
}

// Parse decodes and validates a scenario from r. Unknown keys are rejected.
func Parse(r io.Reader) (*Scenario, error) {
	var s Scenario
	md, err := toml.NewDecoder(r).Decode(&s)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidScenario, err, "decode scenario")
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return nil, errors.New(errors.ErrCodeInvalidScenario, "unknown key %q", undecoded[0].String())
	}
	if !md.IsDefined("precision") {
		s.Precision = DefaultPrecision
	}

	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

// Validate checks the scenario's structure. It does not compile the
// expression.
func (s *Scenario) Validate() error {
	if strings.TrimSpace(s.Expression) == "" {
		return errors.New(errors.ErrCodeInvalidScenario, "expression cannot be empty")
	}
	if err := errors.ValidatePrecision(s.Precision); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidScenario, err, "invalid precision")
	}
	if len(s.Runs) == 0 {
		return errors.New(errors.ErrCodeInvalidScenario, "scenario must define at least one [[run]]")
	}
	for i, run := range s.Runs {
		for name := range run.Values {
			if err := errors.ValidateInputName(name); err != nil {
				return errors.Wrap(errors.ErrCodeInvalidScenario, err, "run %d", i+1)
			}
		}
	}
	return nil
}
