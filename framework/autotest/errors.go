package autotest

import (
	"fmt"
	"strings"
)

// ArtifactKind says which side of a comparison a missing file was on.
type ArtifactKind string

const (
	ExpectedArtifact ArtifactKind = "expected"
	OutputArtifact   ArtifactKind = "output"
)

// MissingArtifactError means an expected fixture or an output file did not exist when the
// scenario was checked.
type MissingArtifactError struct {
	Kind ArtifactKind
	Path string
}

func (e *MissingArtifactError) Error() string {
	return fmt.Sprintf("%s Not found", e.Path)
}

// ContentMismatchError means both files existed but their contents differ.
type ContentMismatchError struct {
	OutputPath   string
	ExpectedPath string
}

func (e *ContentMismatchError) Error() string {
	return fmt.Sprintf("Comparison between %s and %s Unmatched", e.OutputPath, e.ExpectedPath)
}

// ComparisonError means the files could not be read for comparison.
type ComparisonError struct {
	OutputPath   string
	ExpectedPath string
	Err          error
}

func (e *ComparisonError) Error() string {
	return fmt.Sprintf("cannot compare %s with %s: %s", e.OutputPath, e.ExpectedPath, e.Err)
}

func (e *ComparisonError) Unwrap() error { return e.Err }

// InvocationError means the binary could not be run for a feature. It aborts the test run.
type InvocationError struct {
	Feature string
	Args    []string
	Err     error
}

func (e *InvocationError) Error() string {
	return fmt.Sprintf("feature %q: %s", e.Feature, e.Err)
}

func (e *InvocationError) Unwrap() error { return e.Err }

// ConfigurationError describes a feature declaration that cannot be run meaningfully.
type ConfigurationError struct {
	Feature  string
	Problems []string
}

func (e *ConfigurationError) Error() string {
	name := e.Feature
	if name == "" {
		name = "(unnamed)"
	}
	return fmt.Sprintf("invalid feature %q: %s", name, strings.Join(e.Problems, "; "))
}
