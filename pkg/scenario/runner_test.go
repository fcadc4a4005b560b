package scenario

import (
	"bytes"
	"context"
	"math"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/compgraph/pkg/errors"
	"github.com/matzehuels/compgraph/pkg/observability"
)

func newTestRunner(buf *bytes.Buffer) *Runner {
	return NewRunner(log.NewWithOptions(buf, log.Options{Level: log.DebugLevel}))
}

func TestRunReference(t *testing.T) {
	s, err := Load(filepath.Join("testdata", "reference.toml"))
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	var buf bytes.Buffer
	report, err := newTestRunner(&buf).Run(context.Background(), s)
	if err != nil {
		t.Fatalf("Run() error: %v", err)
	}

	if len(report.Results) != 2 {
		t.Fatalf("len(Results) = %d, want 2", len(report.Results))
	}
	want := []float64{-0.32727, -0.56656}
	for i, res := range report.Results {
		if res.Rounded != want[i] {
			t.Errorf("%s = %v, want %v", res.Name(), res.Rounded, want[i])
		}
		if !res.Passed {
			t.Errorf("%s should pass", res.Name())
		}
	}
	if len(report.Failures()) != 0 {
		t.Errorf("Failures() = %v, want none", report.Failures())
	}
	if got := strings.Join(report.Inputs, ","); got != "x1,x2,x3" {
		t.Errorf("Inputs = %q", got)
	}
	if !strings.Contains(buf.String(), "scenario complete") {
		t.Error("runner should log completion")
	}
}

func TestRunKeepsUnchangedInputs(t *testing.T) {
	s, err := Load(filepath.Join("testdata", "reassign.toml"))
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	report, err := NewRunner(nil).Run(context.Background(), s)
	if err != nil {
		t.Fatalf("Run() error: %v", err)
	}
	if report.Results[0].Value != 3 || report.Results[1].Value != 0 {
		t.Errorf("values = %v, %v; want 3, 0", report.Results[0].Value, report.Results[1].Value)
	}
}

func TestRunReportsFailedExpectation(t *testing.T) {
	want := 4.0
	s := &Scenario{
		Name:       "wrong",
		Expression: "a * b",
		Precision:  2,
		Runs: []Run{
			{Values: map[string]float64{"a": 2, "b": 2}, Expect: &want},
			{Values: map[string]float64{"b": 3}, Expect: &want},
			{Values: map[string]float64{"a": 1}},
		},
	}

	var buf bytes.Buffer
	report, err := newTestRunner(&buf).Run(context.Background(), s)
	if err != nil {
		t.Fatalf("Run() error: %v", err)
	}

	failed := report.Failures()
	if len(failed) != 1 || failed[0].Index != 2 {
		t.Fatalf("Failures() = %+v, want only run 2", failed)
	}
	if failed[0].Rounded != 6 {
		t.Errorf("Rounded = %v, want 6", failed[0].Rounded)
	}
	if !report.Results[2].Passed {
		t.Error("run without expectation should pass")
	}
	if !strings.Contains(buf.String(), "unexpected result") {
		t.Error("runner should warn about unmet expectations")
	}
}

func TestRunUnknownInput(t *testing.T) {
	s := &Scenario{
		Name:       "typo",
		Expression: "a + 1",
		Precision:  DefaultPrecision,
		Runs: []Run{
			{Values: map[string]float64{"a": 1}},
			{Values: map[string]float64{"b": 1}},
		},
	}

	report, err := NewRunner(nil).Run(context.Background(), s)
	if !errors.Is(err, errors.ErrCodeUnknownVariable) {
		t.Fatalf("Run() error = %v, want %s", err, errors.ErrCodeUnknownVariable)
	}
	if report == nil || len(report.Results) != 1 {
		t.Errorf("report should hold the completed first run")
	}
}

func TestRunCompileError(t *testing.T) {
	s := &Scenario{Name: "bad", Expression: "tan(x)", Runs: []Run{{}}}
	_, err := NewRunner(nil).Run(context.Background(), s)
	if !errors.Is(err, errors.ErrCodeUnknownFunction) {
		t.Errorf("Run() error = %v, want %s", err, errors.ErrCodeUnknownFunction)
	}
}

func TestRunCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	s := &Scenario{Name: "c", Expression: "x", Runs: []Run{{}}}
	_, err := NewRunner(nil).Run(ctx, s)
	if err != context.Canceled {
		t.Errorf("Run() error = %v, want context.Canceled", err)
	}
}

type recordingHooks struct {
	observability.NoopScenarioHooks
	started, completed []int
}

func (h *recordingHooks) OnRunStart(_ context.Context, _ string, run int) {
	h.started = append(h.started, run)
}

func (h *recordingHooks) OnRunComplete(_ context.Context, _ string, run int, _ float64, _ time.Duration, _ error) {
	h.completed = append(h.completed, run)
}

func TestRunEmitsHooks(t *testing.T) {
	hooks := &recordingHooks{}
	observability.SetScenarioHooks(hooks)
	defer observability.Reset()

	s := &Scenario{Name: "h", Expression: "x", Runs: []Run{{}, {}, {}}}
	if _, err := NewRunner(nil).Run(context.Background(), s); err != nil {
		t.Fatalf("Run() error: %v", err)
	}
	if len(hooks.started) != 3 || len(hooks.completed) != 3 || hooks.completed[2] != 3 {
		t.Errorf("hooks started=%v completed=%v", hooks.started, hooks.completed)
	}
}

func TestRound(t *testing.T) {
	tests := []struct {
		x         float64
		precision int
		want      float64
	}{
		{-0.327267768, 5, -0.32727},
		{1.25, 1, 1.3},
		{-1.25, 1, -1.3},
		{2.5, 0, 3},
		{1234.5678, 2, 1234.57},
		{1e300, 15, 1e300},
		{1e300, 5, 1e300},
		{-1e300, 0, -1e300},
		{1 << 53, 3, 1 << 53},
		{1e200, 15, 1e200},
	}
	for _, tt := range tests {
		if got := Round(tt.x, tt.precision); got != tt.want {
			t.Errorf("Round(%v, %d) = %v, want %v", tt.x, tt.precision, got, tt.want)
		}
	}

	if !math.IsNaN(Round(math.NaN(), 3)) {
		t.Error("Round(NaN) should be NaN")
	}
	if !math.IsInf(Round(math.Inf(-1), 3), -1) {
		t.Error("Round(-Inf) should be -Inf")
	}
}

func TestRunExpectNaN(t *testing.T) {
	s, err := Parse(strings.NewReader(`
expression = "log(x)"

[[run]]
values = { x = -1 }
expect = nan

[[run]]
values = { x = 1 }
expect = nan
`))
	if err != nil {
		t.Fatalf("Parse() error: %v", err)
	}

	var buf bytes.Buffer
	report, err := newTestRunner(&buf).Run(context.Background(), s)
	if err != nil {
		t.Fatalf("Run() error: %v", err)
	}

	if !report.Results[0].Passed {
		t.Error("NaN result should meet an expected NaN")
	}
	if report.Results[1].Passed {
		t.Error("log(1) = 0 should not meet an expected NaN")
	}
}

func TestRunLargeValues(t *testing.T) {
	s := &Scenario{
		Name:       "large",
		Expression: "x",
		Precision:  15,
		Runs:       []Run{{Values: map[string]float64{"x": 1e300}, Expect: ptr(1e300)}},
	}

	report, err := NewRunner(nil).Run(context.Background(), s)
	if err != nil {
		t.Fatalf("Run() error: %v", err)
	}
	res := report.Results[0]
	if res.Rounded != 1e300 || !res.Passed {
		t.Errorf("Rounded = %v, Passed = %v; want 1e300, true", res.Rounded, res.Passed)
	}
}

func ptr(v float64) *float64 { return &v }

func TestRunReportIDs(t *testing.T) {
	s := &Scenario{
		Name:       "ids",
		Expression: "x",
		Precision:  DefaultPrecision,
		Runs:       []Run{{Values: map[string]float64{"x": 1}}},
	}

	var buf bytes.Buffer
	r := newTestRunner(&buf)
	first, err := r.Run(context.Background(), s)
	if err != nil {
		t.Fatalf("Run() error: %v", err)
	}
	second, err := r.Run(context.Background(), s)
	if err != nil {
		t.Fatalf("Run() error: %v", err)
	}

	if first.ID == "" || first.ID == second.ID {
		t.Errorf("report IDs = %q, %q; want distinct non-empty", first.ID, second.ID)
	}
	if !strings.Contains(buf.String(), first.ID) {
		t.Error("log output should carry the report ID")
	}
}
