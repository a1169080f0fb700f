package autotest

import (
	"errors"
	"fmt"
	"strings"

	"golang.org/x/exp/slices"
)

// Feature is one named test case. All of its scenarios are sent to the binary in a single
// invocation, in declaration order.
type Feature struct {
	Name      string     `json:"name"`
	Scenarios []Scenario `json:"scenarios"`
}

// Validate returns a *ConfigurationError describing everything wrong with the feature, or nil.
// If knownCommands is non-empty, every scenario's command must be one of them.
func (f Feature) Validate(knownCommands []string) error {
	var problems []string
	if strings.TrimSpace(f.Name) == "" {
		problems = append(problems, "feature has no name")
	}
	if len(f.Scenarios) == 0 {
		problems = append(problems, "feature declares no scenarios")
	}
	outputs := make(map[string]int, len(f.Scenarios))
	for i, s := range f.Scenarios {
		if err := s.Validate(); err != nil {
			problems = append(problems, fmt.Sprintf("scenario %d: %s", i+1, err))
			continue
		}
		if len(knownCommands) != 0 && !slices.Contains(knownCommands, s.Command) {
			problems = append(problems, fmt.Sprintf("scenario %d: unknown command %q (known: %s)",
				i+1, s.Command, strings.Join(knownCommands, ", ")))
		}
		if prev, ok := outputs[s.OutputName()]; ok {
			problems = append(problems, fmt.Sprintf("scenarios %d and %d both write %s",
				prev, i+1, s.OutputName()))
			continue
		}
		outputs[s.OutputName()] = i + 1
	}
	if len(problems) == 0 {
		return nil
	}
	return &ConfigurationError{Feature: f.Name, Problems: problems}
}

// ValidateFeatures validates every feature and also rejects duplicate feature names. All problems
// are reported together.
func ValidateFeatures(features []Feature, knownCommands []string) error {
	var errs []error
	var names []string
	for _, f := range features {
		if err := f.Validate(knownCommands); err != nil {
			errs = append(errs, err)
		}
		if f.Name != "" && slices.Contains(names, f.Name) {
			errs = append(errs, &ConfigurationError{Feature: f.Name, Problems: []string{"duplicate feature name"}})
		}
		names = append(names, f.Name)
	}
	return errors.Join(errs...)
}
