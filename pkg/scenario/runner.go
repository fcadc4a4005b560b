package scenario

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/matzehuels/compgraph/pkg/expr"
	"github.com/matzehuels/compgraph/pkg/observability"
)

// Runner executes scenarios.
//
// The Runner keeps no state between calls. Each call to Run compiles a fresh
// graph shared by all of the scenario's runs.
type Runner struct {
	Logger *log.Logger
}

// NewRunner creates a runner. If logger is nil, log.Default() is used.
func NewRunner(logger *log.Logger) *Runner {
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{Logger: logger}
}

// Result is the outcome of a single run.
type Result struct {
	Index    int                // 1-based position in the scenario
	Label    string             // optional label from the scenario file
	Values   map[string]float64 // values assigned by this run
	Value    float64            // raw output
	Rounded  float64            // output rounded to the scenario precision
	Expect   *float64           // expected output, if any
	Passed   bool               // false only if an expectation was set and not met
	Duration time.Duration
}

// Name returns the run's label, or "run N" if it has none.
func (r Result) Name() string {
	if r.Label != "" {
		return r.Label
	}
	return fmt.Sprintf("run %d", r.Index)
}

// Report collects the results of one scenario.
type Report struct {
	// ID identifies this execution in log output. Every call to Run gets a
	// new one.
	ID         string
	Scenario   string
	Expression string
	Inputs     []string
	Precision  int
	Results    []Result
}

// Failures returns the results whose expectation was not met.
func (r *Report) Failures() []Result {
	var failed []Result
	for _, res := range r.Results {
		if !res.Passed {
			failed = append(failed, res)
		}
	}
	return failed
}

// Run compiles the scenario's expression once and applies its runs in order.
// It stops at the first run referring to an unknown input, or when ctx is
// canceled; the report then holds the results completed so far.
// Unmet expectations are recorded in the report, not returned as errors.
func (r *Runner) Run(ctx context.Context, s *Scenario) (*Report, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}

	p, err := expr.Compile(s.Expression)
	if err != nil {
		return nil, fmt.Errorf("compile %s: %w", s.Name, err)
	}

	report := &Report{
		ID:         uuid.NewString(),
		Scenario:   s.Name,
		Expression: s.Expression,
		Inputs:     p.Inputs(),
		Precision:  s.Precision,
	}
	logger := r.Logger.With("report", report.ID)
	logger.Debug("compiled expression", "scenario", s.Name, "inputs", report.Inputs)

	hooks := observability.Scenario()
	for i, run := range s.Runs {
		if err := ctx.Err(); err != nil {
			return report, err
		}

		hooks.OnRunStart(ctx, s.Name, i+1)
		start := time.Now()

		if err := p.Set(run.Values); err != nil {
			hooks.OnRunComplete(ctx, s.Name, i+1, math.NaN(), time.Since(start), err)
			return report, fmt.Errorf("run %d: %w", i+1, err)
		}
		value := p.Eval()

		res := Result{
			Index:    i + 1,
			Label:    run.Label,
			Values:   run.Values,
			Value:    value,
			Rounded:  Round(value, s.Precision),
			Expect:   run.Expect,
			Passed:   true,
			Duration: time.Since(start),
		}
		if run.Expect != nil {
			res.Passed = matches(res.Rounded, Round(*run.Expect, s.Precision))
		}
		report.Results = append(report.Results, res)
		hooks.OnRunComplete(ctx, s.Name, i+1, value, res.Duration, nil)

		logger.Debug("evaluated run",
			"scenario", s.Name,
			"run", res.Name(),
			"value", res.Rounded,
			"duration", res.Duration)
		if !res.Passed {
			logger.Warn("unexpected result",
				"scenario", s.Name,
				"run", res.Name(),
				"got", res.Rounded,
				"want", *run.Expect)
		}
	}

	logger.Info("scenario complete",
		"scenario", s.Name,
		"runs", len(report.Results),
		"failed", len(report.Failures()))
	return report, nil
}

// matches compares a rounded result with a rounded expectation. An expected
// NaN is met by a NaN result.
func matches(got, want float64) bool {
	return got == want || (math.IsNaN(got) && math.IsNaN(want))
}

// maxFraction is the magnitude from which float64 values have no fractional
// part.
const maxFraction = 1 << 52

// Round rounds x half away from zero to the given number of decimal places.
// NaN, infinities and values too large to carry a fraction are returned
// unchanged.
func Round(x float64, precision int) float64 {
	if math.IsNaN(x) || math.Abs(x) >= maxFraction {
		return x
	}
	m := math.Pow10(precision)
	scaled := x * m
	if math.IsInf(scaled, 0) {
		return x
	}
	return math.Round(scaled) / m
}
