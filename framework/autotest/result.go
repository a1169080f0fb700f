package autotest

import (
	"fmt"
	"strings"
	"time"

	"github.com/flashboot/autotest/framework"
)

// FeatureID identifies a feature within a run. Index is the 1-based position among executed
// features; it is zero for features that were skipped.
type FeatureID struct {
	Index int
	Name  string
}

func (id FeatureID) String() string {
	if id.Index == 0 {
		return id.Name
	}
	return fmt.Sprintf("%d: %s", id.Index, id.Name)
}

// FeatureResult is the outcome of executing one feature.
type FeatureResult struct {
	ID          FeatureID
	Passed      bool
	Args        []string
	Errors      []error
	DebugOutput framework.CapturedOutput
	Duration    time.Duration
}

// CommandLine returns the invocation that was used for the feature, as typed in a shell.
func (r FeatureResult) CommandLine() string {
	return strings.Join(r.Args, " ")
}

// Results accumulates the outcome of a test run.
type Results struct {
	Features []FeatureResult
	Failures []FeatureResult
	Skipped  []FeatureID
}

// OK is true if no executed feature failed. A run with no features is OK.
func (r Results) OK() bool {
	return len(r.Failures) == 0
}

func (r *Results) add(result FeatureResult) {
	r.Features = append(r.Features, result)
	if !result.Passed {
		r.Failures = append(r.Failures, result)
	}
}
