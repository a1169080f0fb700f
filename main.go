package main

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"os/signal"
	"time"

	"github.com/flashboot/autotest/features"
	"github.com/flashboot/autotest/framework"
	"github.com/flashboot/autotest/framework/autotest"
	"github.com/flashboot/autotest/framework/harness"
	o "github.com/flashboot/autotest/framework/opt"
)

func main() {
	var params commandParams
	if !params.Read(os.Args) {
		os.Exit(1)
	}

	results, err := run(params)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if !results.OK() {
		os.Exit(1)
	}
}

func run(params commandParams) (*autotest.Results, error) {
	logger := framework.NewLevelLogger(os.Stdout, params.logLevel, 0)
	infoLogger := logger.At(framework.LevelInfo)

	list, err := loadFeatureList(params)
	if err != nil {
		return nil, err
	}
	if err := list.Validate(); err != nil {
		return nil, err
	}
	dirs := resolveDirectories(list, params)

	var diffViewer harness.DiffViewer
	if params.showDiff {
		diffViewer = harness.SelectDiffViewer(exec.LookPath, infoLogger)
	}

	consoleLogger := autotest.ConsoleTestLogger{
		Output:               infoLogger,
		DebugOutputOnFailure: params.debug,
	}
	var testLogger autotest.TestLogger = consoleLogger
	if params.jUnitFile != "" {
		testLogger = &autotest.MultiTestLogger{Loggers: []autotest.TestLogger{
			consoleLogger,
			autotest.NewJUnitTestLogger(params.jUnitFile, params.binaryPath, dirs, params.filters, timeoutSetting(params)),
		}}
	}

	runner, err := autotest.NewRunner(autotest.RunnerConfig{
		BinaryPath:          params.binaryPath,
		Directories:         dirs,
		Invoker:             harness.ProcessInvoker{Timeout: params.timeout},
		DiffViewer:          diffViewer,
		TestLogger:          testLogger,
		DebugLogger:         logger.At(framework.LevelDebug),
		CaptureBinaryOutput: params.debug,
	})
	if err != nil {
		return nil, err
	}

	consoleLogger.PrintBanner()
	autotest.PrintFilterDescription(infoLogger, params.filters)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	results, runErr := autotest.RunSuite(ctx, autotest.SuiteConfig{
		Executor:   runner,
		Filter:     params.filters,
		TestLogger: testLogger,
	}, list.Features)

	logErr := testLogger.EndLog(results)
	if runErr != nil {
		return nil, runErr
	}
	if logErr != nil {
		return nil, fmt.Errorf("error writing log: %w", logErr)
	}
	return &results, nil
}

func timeoutSetting(params commandParams) o.Maybe[time.Duration] {
	if params.timeout > 0 {
		return o.Some(params.timeout)
	}
	return o.None[time.Duration]()
}

func loadFeatureList(params commandParams) (features.List, error) {
	if params.featuresFile == "" {
		return features.Default(), nil
	}
	return features.LoadFile(params.featuresFile)
}

// resolveDirectories applies command-line overrides on top of the directories declared in the
// feature list. A list that declares none is resolved against the current directory.
func resolveDirectories(list features.List, params commandParams) autotest.Directories {
	dirs := list.Directories.OrElse(autotest.Directories{
		InputDir:    ".",
		OutputDir:   "output",
		ExpectedDir: ".",
	})
	if params.inputDir != "" {
		dirs.InputDir = params.inputDir
	}
	if params.outputDir != "" {
		dirs.OutputDir = params.outputDir
	}
	if params.expectedDir != "" {
		dirs.ExpectedDir = params.expectedDir
	}
	return dirs
}
