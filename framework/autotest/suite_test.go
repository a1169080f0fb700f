package autotest

import (
	"context"
	"errors"
	"testing"

	m "github.com/launchdarkly/go-test-helpers/v2/matchers"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// scriptedExecutor passes or fails features by name, and records which ones it was asked to run.
type scriptedExecutor struct {
	outcomes map[string]bool
	errs     map[string]error
	executed []string
}

func (s *scriptedExecutor) Execute(_ context.Context, feature Feature) (FeatureResult, error) {
	s.executed = append(s.executed, feature.Name)
	id := FeatureID{Index: len(s.executed), Name: feature.Name}
	if err := s.errs[feature.Name]; err != nil {
		return FeatureResult{ID: id}, err
	}
	return FeatureResult{ID: id, Passed: s.outcomes[feature.Name]}, nil
}

func namedFeatures(names ...string) []Feature {
	ret := make([]Feature, 0, len(names))
	for _, n := range names {
		ret = append(ret, Feature{Name: n, Scenarios: []Scenario{{Command: "ProgramMemoryLoad", Input: n, Expected: n}}})
	}
	return ret
}

func TestRunSuiteStopsAtFirstFailure(t *testing.T) {
	executor := &scriptedExecutor{outcomes: map[string]bool{"A": true, "B": false, "C": true}}

	results, err := RunSuite(context.Background(), SuiteConfig{Executor: executor}, namedFeatures("A", "B", "C"))
	require.NoError(t, err)

	assert.False(t, results.OK())
	m.In(t).Assert(executor.executed, m.Equal([]string{"A", "B"}))
	require.Len(t, results.Features, 2)
	require.Len(t, results.Failures, 1)
	assert.Equal(t, "B", results.Failures[0].ID.Name)
}

func TestRunSuitePassesWhenAllFeaturesPass(t *testing.T) {
	executor := &scriptedExecutor{outcomes: map[string]bool{"A": true, "B": true}}

	results, err := RunSuite(context.Background(), SuiteConfig{Executor: executor}, namedFeatures("A", "B"))
	require.NoError(t, err)

	assert.True(t, results.OK())
	assert.Equal(t, []string{"A", "B"}, executor.executed)
	assert.Len(t, results.Features, 2)
}

func TestRunSuiteWithNoFeaturesIsOK(t *testing.T) {
	results, err := RunSuite(context.Background(), SuiteConfig{Executor: &scriptedExecutor{}}, nil)
	require.NoError(t, err)
	assert.True(t, results.OK())
	assert.Empty(t, results.Features)
}

func TestRunSuiteSkipsFilteredFeatures(t *testing.T) {
	executor := &scriptedExecutor{outcomes: map[string]bool{"Backup success": true, "Bootloader CRC error": false}}
	logger := &recordingTestLogger{}
	var filters RegexFilters
	require.NoError(t, filters.MustNotMatch.Set("CRC"))

	results, err := RunSuite(context.Background(),
		SuiteConfig{Executor: executor, Filter: filters, TestLogger: logger},
		namedFeatures("Bootloader CRC error", "Backup success"))
	require.NoError(t, err)

	assert.True(t, results.OK())
	assert.Equal(t, []string{"Backup success"}, executor.executed)
	assert.Equal(t, []FeatureID{{Name: "Bootloader CRC error"}}, results.Skipped)
	assert.Equal(t, results.Skipped, logger.skipped)
}

func TestRunSuiteAbortsOnExecutorError(t *testing.T) {
	launchFailure := errors.New("cannot launch")
	executor := &scriptedExecutor{
		outcomes: map[string]bool{"A": true, "C": true},
		errs:     map[string]error{"B": launchFailure},
	}

	results, err := RunSuite(context.Background(), SuiteConfig{Executor: executor}, namedFeatures("A", "B", "C"))

	assert.ErrorIs(t, err, launchFailure)
	assert.Equal(t, []string{"A", "B"}, executor.executed)
	assert.Len(t, results.Features, 2)
	assert.False(t, results.OK())
	require.Len(t, results.Failures, 1)
	assert.Equal(t, FeatureID{Index: 2, Name: "B"}, results.Failures[0].ID)
}

func TestRunSuiteStopsWhenContextIsCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	executor := &scriptedExecutor{outcomes: map[string]bool{"A": true}}

	_, err := RunSuite(ctx, SuiteConfig{Executor: executor}, namedFeatures("A"))

	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, executor.executed)
}

func TestRunSuiteWithRunnerShortCircuits(t *testing.T) {
	f := newFixture(t)
	for _, name := range []string{"A.txt", "B.txt", "C.txt"} {
		f.writeInput(t, name, "ok\n")
		f.writeExpected(t, name, "ok\n")
	}
	f.writeExpected(t, "B.txt", "different\n")
	invoker := &fakeInvoker{}
	logger := &recordingTestLogger{}
	runner := f.newRunner(t, invoker, func(c *RunnerConfig) { c.TestLogger = logger })

	features := []Feature{
		{Name: "A", Scenarios: []Scenario{{Command: "ProgramMemoryLoad", Input: "A.txt", Expected: "A.txt"}}},
		{Name: "B", Scenarios: []Scenario{{Command: "ProgramMemoryLoad", Input: "B.txt", Expected: "B.txt"}}},
		{Name: "C", Scenarios: []Scenario{{Command: "ProgramMemoryLoad", Input: "C.txt", Expected: "C.txt"}}},
	}
	results, err := RunSuite(context.Background(), SuiteConfig{Executor: runner, TestLogger: logger}, features)
	require.NoError(t, err)

	assert.False(t, results.OK())
	assert.Len(t, invoker.calls, 2)
	require.Len(t, logger.finished, 2)
	assert.Equal(t, "A", logger.finished[0].ID.Name)
	assert.Equal(t, "B", logger.finished[1].ID.Name)
}
