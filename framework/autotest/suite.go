package autotest

import "context"

// FeatureExecutor is the part of Runner that RunSuite depends on. When Execute returns an error
// for a feature it has started, the returned FeatureResult still identifies that feature.
type FeatureExecutor interface {
	Execute(ctx context.Context, feature Feature) (FeatureResult, error)
}

// SuiteConfig contains options for a whole test run.
type SuiteConfig struct {
	Executor FeatureExecutor

	// Filter is optional. Features it rejects are reported as skipped and are not executed.
	Filter Filter

	// TestLogger receives skip notifications. Executed features are reported by the executor.
	TestLogger TestLogger
}

// RunSuite executes features in order and stops at the first one that fails; later features
// are neither executed nor reported. The returned error is non-nil only if the run had to be
// aborted, in which case Results covers the features executed up to then, with the aborted one
// counted as a failure.
func RunSuite(ctx context.Context, config SuiteConfig, features []Feature) (Results, error) {
	testLogger := config.TestLogger
	if testLogger == nil {
		testLogger = nullTestLogger{}
	}
	var results Results
	for _, feature := range features {
		if err := ctx.Err(); err != nil {
			return results, err
		}
		if config.Filter != nil && !config.Filter.Match(feature.Name) {
			id := FeatureID{Name: feature.Name}
			results.Skipped = append(results.Skipped, id)
			testLogger.FeatureSkipped(id, "excluded by filter parameters")
			continue
		}
		result, err := config.Executor.Execute(ctx, feature)
		if err != nil {
			if result.ID.Index != 0 {
				result.Passed = false
				results.add(result)
			}
			return results, err
		}
		results.add(result)
		if !result.Passed {
			break
		}
	}
	return results, nil
}
