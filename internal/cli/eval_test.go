package cli

import (
	"testing"

	"github.com/matzehuels/compgraph/pkg/errors"
)

func TestParseAssignments(t *testing.T) {
	got, err := parseAssignments([]string{"x1=1", " x2 = -2.5", "x3=1e3", "x1=4"})
	if err != nil {
		t.Fatalf("parseAssignments() error: %v", err)
	}

	want := map[string]float64{"x1": 4, "x2": -2.5, "x3": 1000}
	if len(got) != len(want) {
		t.Fatalf("parseAssignments() = %v, want %v", got, want)
	}
	for k, v := range want {
		if got[k] != v {
			t.Errorf("%s = %v, want %v", k, got[k], v)
		}
	}
}

func TestParseAssignmentsErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"missing equals", "x1"},
		{"empty name", "=1"},
		{"invalid name", "1x=1"},
		{"not a number", "x=abc"},
		{"empty value", "x="},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := parseAssignments([]string{tt.input})
			if !errors.Is(err, errors.ErrCodeInvalidInput) {
				t.Errorf("parseAssignments(%q) error = %v, want %s", tt.input, err, errors.ErrCodeInvalidInput)
			}
		})
	}
}

func TestFormatValues(t *testing.T) {
	values := map[string]float64{"b": 2, "a": 0.5, "c": -1}
	if got := formatValues([]string{"a", "b", "c"}, values); got != "a=0.5 b=2 c=-1" {
		t.Errorf("formatValues() = %q", got)
	}
	if got := formatValues([]string{"a", "z"}, values); got != "a=0.5" {
		t.Errorf("formatValues() with missing name = %q", got)
	}
}

func TestFormatNumber(t *testing.T) {
	if got := formatNumber(-0.327267768, 5); got != "-0.32727" {
		t.Errorf("formatNumber() = %q, want %q", got, "-0.32727")
	}
	if got := formatNumber(3, 0); got != "3" {
		t.Errorf("formatNumber() = %q, want %q", got, "3")
	}
}

func TestWithDefaults(t *testing.T) {
	got := withDefaults([]string{"a", "b"}, map[string]float64{"a": 1})
	if got["a"] != 1 || got["b"] != 0 || len(got) != 2 {
		t.Errorf("withDefaults() = %v", got)
	}
}
