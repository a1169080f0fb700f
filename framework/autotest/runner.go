package autotest

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/flashboot/autotest/framework"
	"github.com/flashboot/autotest/framework/harness"
)

// RunnerConfig contains everything a Runner needs to know about the binary under test and the
// fixture layout.
type RunnerConfig struct {
	// BinaryPath is the executable under test. Required.
	BinaryPath string

	// Directories are the fixture and output roots. OutputDir is required and is cleared when the
	// Runner is created.
	Directories Directories

	// Invoker launches the binary. If nil, a ProcessInvoker with no timeout is used.
	Invoker harness.Invoker

	// DiffViewer, if set, is shown every pair of files that fail comparison.
	DiffViewer harness.DiffViewer

	// TestLogger receives the report for each executed feature.
	TestLogger TestLogger

	// DebugLogger receives diagnostic messages as they happen. The same messages are also
	// captured into each FeatureResult.
	DebugLogger framework.Logger

	// CaptureBinaryOutput makes the binary's standard output part of the captured debug output
	// instead of being discarded.
	CaptureBinaryOutput bool
}

// Runner executes features against the binary under test. A Runner owns its output directory;
// only one Runner may use a given directory at a time. It is not safe for concurrent use.
type Runner struct {
	config    RunnerConfig
	caseIndex int
}

// NewRunner creates a Runner and removes everything inside the output directory, creating the
// directory if necessary, so that artifacts of an earlier run cannot satisfy a comparison.
func NewRunner(config RunnerConfig) (*Runner, error) {
	if config.BinaryPath == "" {
		return nil, errors.New("no binary under test was specified")
	}
	if config.Invoker == nil {
		config.Invoker = harness.ProcessInvoker{}
	}
	if config.TestLogger == nil {
		config.TestLogger = nullTestLogger{}
	}
	if config.DebugLogger == nil {
		config.DebugLogger = framework.NullLogger()
	}
	if err := clearDirectory(config.Directories.OutputDir); err != nil {
		return nil, err
	}
	return &Runner{config: config}, nil
}

// Directories returns the roots that scenarios are resolved against.
func (r *Runner) Directories() Directories {
	return r.config.Directories
}

// CaseIndex returns the number of features executed so far.
func (r *Runner) CaseIndex() int {
	return r.caseIndex
}

// Execute runs one feature: it invokes the binary once with every scenario's triple, compares
// every output file with its expected fixture, and reports the outcome to the TestLogger.
//
// Scenario failures are reported in the returned FeatureResult. A non-nil error means the run
// cannot continue: the binary could not be launched, the context was cancelled, or stale output
// files could not be removed. The feature is still reported to the TestLogger as failed.
func (r *Runner) Execute(ctx context.Context, feature Feature) (FeatureResult, error) {
	r.caseIndex++
	startTime := time.Now()
	id := FeatureID{Index: r.caseIndex, Name: feature.Name}
	debugLogger := &framework.CapturingLogger{Forward: framework.LoggerWithPrefix(r.config.DebugLogger,
		fmt.Sprintf("[case %d] ", id.Index))}
	r.config.TestLogger.FeatureStarted(id)

	scenarios := make([]ResolvedScenario, 0, len(feature.Scenarios))
	for _, s := range feature.Scenarios {
		scenarios = append(scenarios, s.Resolve(r.config.Directories))
	}
	result := FeatureResult{ID: id, Args: BuildArgs(r.config.BinaryPath, scenarios)}

	if len(scenarios) == 0 {
		err := &ConfigurationError{Feature: feature.Name, Problems: []string{"feature declares no scenarios"}}
		result.Errors = append(result.Errors, err)
		r.config.TestLogger.FeatureError(id, err, "")
	} else {
		if err := r.invoke(ctx, feature.Name, result.Args, scenarios, debugLogger); err != nil {
			result.Errors = append(result.Errors, err)
			r.config.TestLogger.FeatureError(id, err, result.CommandLine())
			r.finish(&result, startTime, debugLogger)
			return result, err
		}
		for _, s := range scenarios {
			if err := r.verify(s, debugLogger); err != nil {
				result.Errors = append(result.Errors, err)
				r.config.TestLogger.FeatureError(id, err, result.CommandLine())
			}
		}
	}

	r.finish(&result, startTime, debugLogger)
	return result, nil
}

func (r *Runner) finish(result *FeatureResult, startTime time.Time, debugLogger *framework.CapturingLogger) {
	result.Passed = len(result.Errors) == 0
	result.Duration = time.Since(startTime)
	result.DebugOutput = debugLogger.Output()
	r.config.TestLogger.FeatureFinished(*result)
}

func (r *Runner) invoke(
	ctx context.Context,
	featureName string,
	args []string,
	scenarios []ResolvedScenario,
	debugLogger framework.Logger,
) error {
	for _, s := range scenarios {
		if err := os.Remove(s.OutputPath); err != nil && !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("cannot remove stale output %s: %w", s.OutputPath, err)
		}
	}

	var stdout io.Writer
	var logWriter *harness.LogWriter
	if r.config.CaptureBinaryOutput {
		logWriter = harness.NewLogWriter(framework.LoggerWithPrefix(debugLogger, "[binary] "))
		stdout = logWriter
	}

	debugLogger.Printf("invoking %v", args)
	inv, err := r.config.Invoker.Invoke(ctx, args, stdout)
	if logWriter != nil {
		logWriter.Flush()
	}
	if err != nil {
		return &InvocationError{Feature: featureName, Args: args, Err: err}
	}
	if inv.TimedOut {
		debugLogger.Printf("binary was killed after running for %s", inv.Duration)
	} else {
		debugLogger.Printf("binary exited with status %d after %s", inv.ExitCode, inv.Duration)
	}
	return nil
}

func (r *Runner) verify(s ResolvedScenario, debugLogger framework.Logger) error {
	if !fileExists(s.ExpectedPath) {
		return &MissingArtifactError{Kind: ExpectedArtifact, Path: s.ExpectedPath}
	}
	if !fileExists(s.OutputPath) {
		return &MissingArtifactError{Kind: OutputArtifact, Path: s.OutputPath}
	}
	equal, err := FilesEqual(s.OutputPath, s.ExpectedPath)
	if err != nil {
		return &ComparisonError{OutputPath: s.OutputPath, ExpectedPath: s.ExpectedPath, Err: err}
	}
	if equal {
		debugLogger.Printf("%s matches %s", s.OutputPath, s.ExpectedPath)
		return nil
	}
	if r.config.DiffViewer != nil {
		if err := r.config.DiffViewer.ShowDiff(s.OutputPath, s.ExpectedPath); err != nil {
			debugLogger.Printf("cannot show diff of %s: %s", s.OutputPath, err)
		}
	}
	return &ContentMismatchError{OutputPath: s.OutputPath, ExpectedPath: s.ExpectedPath}
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

func clearDirectory(dir string) error {
	if dir == "" {
		return errors.New("no output directory was specified")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil { //nolint:gosec
		return fmt.Errorf("cannot create output directory: %w", err)
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("cannot read output directory: %w", err)
	}
	for _, e := range entries {
		if err := os.RemoveAll(filepath.Join(dir, e.Name())); err != nil {
			return fmt.Errorf("cannot clear output directory: %w", err)
		}
	}
	return nil
}
