package autotest

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

// OutputPrefix is prepended to a scenario's expected file name to form its output file name.
const OutputPrefix = "result_"

// Directories are the three fixed roots that scenario file names are resolved against.
type Directories struct {
	InputDir    string `json:"input"`
	OutputDir   string `json:"output"`
	ExpectedDir string `json:"expected"`
}

// Scenario is a single command invocation within a Feature, as declared in the test list. Input
// and Expected are file names relative to the input and expected directories.
type Scenario struct {
	Command  string `json:"command"`
	Input    string `json:"input"`
	Expected string `json:"expected"`
}

// ResolvedScenario is a Scenario whose file names have been rooted in a set of Directories. It
// is created only by Scenario.Resolve and cannot be resolved again.
type ResolvedScenario struct {
	Command      string
	InputPath    string
	ExpectedPath string
	OutputPath   string
}

// Resolve returns the scenario's paths rooted in dirs. The Scenario itself is not modified.
func (s Scenario) Resolve(dirs Directories) ResolvedScenario {
	return ResolvedScenario{
		Command:      s.Command,
		InputPath:    filepath.Join(dirs.InputDir, s.Input),
		ExpectedPath: filepath.Join(dirs.ExpectedDir, s.Expected),
		OutputPath:   filepath.Join(dirs.OutputDir, OutputPrefix+s.Expected),
	}
}

// OutputName is the file name, relative to the output directory, that the scenario's output is
// written to.
func (s Scenario) OutputName() string {
	return OutputPrefix + s.Expected
}

// Validate checks that the scenario has every field set, and that its expected file name is a
// plain name so the derived output file stays inside the output directory.
func (s Scenario) Validate() error {
	switch {
	case strings.TrimSpace(s.Command) == "":
		return errors.New("scenario has no command")
	case s.Input == "":
		return fmt.Errorf("scenario %q has no input file", s.Command)
	case s.Expected == "":
		return fmt.Errorf("scenario %q has no expected file", s.Command)
	case strings.ContainsAny(s.Expected, `/\`) || s.Expected == "." || s.Expected == "..":
		return fmt.Errorf("scenario %q: expected file %q must be a plain file name", s.Command, s.Expected)
	}
	return nil
}

// Triple returns the three arguments that request this scenario from the binary.
func (r ResolvedScenario) Triple() []string {
	return []string{r.Command, r.InputPath, r.OutputPath}
}

// BuildArgs returns the full argument list for one invocation: the binary path followed by each
// scenario's triple, in order.
func BuildArgs(binaryPath string, scenarios []ResolvedScenario) []string {
	args := make([]string, 0, 1+3*len(scenarios))
	args = append(args, binaryPath)
	for _, s := range scenarios {
		args = append(args, s.Triple()...)
	}
	return args
}
