package autotest

import (
	"errors"
	"strings"

	"github.com/flashboot/autotest/framework"

	"github.com/fatih/color"
)

var consoleTestErrorColor = color.New(color.FgYellow)              //nolint:gochecknoglobals
var consoleTestFailedColor = color.New(color.FgRed)                //nolint:gochecknoglobals
var consoleTestApprovedColor = color.New(color.FgGreen)            //nolint:gochecknoglobals
var consoleTestSkippedColor = color.New(color.Faint, color.FgBlue) //nolint:gochecknoglobals
var consoleDebugOutputColor = color.New(color.Faint)               //nolint:gochecknoglobals

// TestLogger receives progress and results of a test run.
type TestLogger interface {
	FeatureStarted(id FeatureID)
	// FeatureError is called once for each failing scenario, with the command line that the
	// feature was run with.
	FeatureError(id FeatureID, err error, commandLine string)
	FeatureFinished(result FeatureResult)
	FeatureSkipped(id FeatureID, reason string)
	EndLog(results Results) error
}

type nullTestLogger struct{}

func (n nullTestLogger) FeatureStarted(FeatureID)              {}
func (n nullTestLogger) FeatureError(FeatureID, error, string) {}
func (n nullTestLogger) FeatureFinished(FeatureResult)         {}
func (n nullTestLogger) FeatureSkipped(FeatureID, string)      {}
func (n nullTestLogger) EndLog(Results) error                  { return nil }

// NullTestLogger returns a TestLogger that does nothing.
func NullTestLogger() TestLogger { return nullTestLogger{} }

// ConsoleTestLogger writes the boxed test report. All of its output goes through Output, which
// is normally the info level of the process's leveled logger.
type ConsoleTestLogger struct {
	Output               framework.Logger
	DebugOutputOnFailure bool
	DebugOutputOnSuccess bool
}

// PrintBanner writes the heading that starts a test run.
func (c ConsoleTestLogger) PrintBanner() {
	c.Output.Println(RuleLine())
	c.Output.Println(BannerLine("STARTING AUTO TEST"))
	c.Output.Println(RuleLine())
}

func (c ConsoleTestLogger) FeatureStarted(FeatureID) {}

func (c ConsoleTestLogger) FeatureError(id FeatureID, err error, commandLine string) {
	for _, line := range strings.Split(err.Error(), "\n") {
		c.Output.Println(consoleTestErrorColor.Sprint(line))
	}
	var configErr *ConfigurationError
	if commandLine != "" && !errors.As(err, &configErr) {
		c.Output.Println("Failed to run: " + commandLine)
	}
}

func (c ConsoleTestLogger) FeatureFinished(result FeatureResult) {
	paint := consoleTestApprovedColor.Sprint
	if !result.Passed {
		paint = consoleTestFailedColor.Sprint
	}
	c.Output.Println(caseLine(result.ID.Index, result.ID.Name, result.Passed,
		func(s string) string { return paint(s) }))
	if len(result.DebugOutput) > 0 &&
		((!result.Passed && c.DebugOutputOnFailure) || (result.Passed && c.DebugOutputOnSuccess)) {
		c.Output.Println(consoleDebugOutputColor.Sprint(result.DebugOutput.ToString("    DEBUG ")))
	}
	c.Output.Println(RuleLine())
}

func (c ConsoleTestLogger) FeatureSkipped(id FeatureID, reason string) {
	if reason == "" {
		c.Output.Println(consoleTestSkippedColor.Sprintf("  SKIPPED: %s", id.Name))
	} else {
		c.Output.Println(consoleTestSkippedColor.Sprintf("  SKIPPED: %s (%s)", id.Name, reason))
	}
}

func (c ConsoleTestLogger) EndLog(results Results) error {
	PrintResults(c.Output, results)
	return nil
}

// PrintResults writes a summary of the run.
func PrintResults(out framework.Logger, results Results) {
	if results.OK() {
		out.Println(consoleTestApprovedColor.Sprintf("All %d executed features approved", len(results.Features)))
		return
	}
	out.Println(consoleTestFailedColor.Sprintf("FAILED FEATURES (%d):", len(results.Failures)))
	for _, f := range results.Failures {
		out.Println(consoleTestFailedColor.Sprintf("  * %s", f.ID))
	}
}

// MultiTestLogger sends every event to each of its loggers in turn.
type MultiTestLogger struct {
	Loggers []TestLogger
}

func (m *MultiTestLogger) FeatureStarted(id FeatureID) {
	for _, l := range m.Loggers {
		l.FeatureStarted(id)
	}
}

func (m *MultiTestLogger) FeatureError(id FeatureID, err error, commandLine string) {
	for _, l := range m.Loggers {
		l.FeatureError(id, err, commandLine)
	}
}

func (m *MultiTestLogger) FeatureFinished(result FeatureResult) {
	for _, l := range m.Loggers {
		l.FeatureFinished(result)
	}
}

func (m *MultiTestLogger) FeatureSkipped(id FeatureID, reason string) {
	for _, l := range m.Loggers {
		l.FeatureSkipped(id, reason)
	}
}

func (m *MultiTestLogger) EndLog(results Results) error {
	var errs []error
	for _, l := range m.Loggers {
		if err := l.EndLog(results); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
