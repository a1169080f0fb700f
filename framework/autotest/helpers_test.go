package autotest

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/flashboot/autotest/framework"
	"github.com/flashboot/autotest/framework/harness"

	"github.com/fatih/color"
	"github.com/stretchr/testify/require"
)

func init() {
	color.NoColor = true
}

type fixture struct {
	dirs Directories
}

func newFixture(t *testing.T) fixture {
	t.Helper()
	root := t.TempDir()
	f := fixture{dirs: Directories{
		InputDir:    filepath.Join(root, "mock"),
		OutputDir:   filepath.Join(root, "build"),
		ExpectedDir: filepath.Join(root, "mock", "expected"),
	}}
	require.NoError(t, os.MkdirAll(f.dirs.ExpectedDir, 0o755))
	return f
}

func (f fixture) writeInput(t *testing.T, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(f.dirs.InputDir, name), []byte(content), 0o600))
}

func (f fixture) writeExpected(t *testing.T, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(f.dirs.ExpectedDir, name), []byte(content), 0o600))
}

func (f fixture) newRunner(t *testing.T, invoker harness.Invoker, modify ...func(*RunnerConfig)) *Runner {
	t.Helper()
	config := RunnerConfig{
		BinaryPath:  "./simulator",
		Directories: f.dirs,
		Invoker:     invoker,
	}
	for _, m := range modify {
		m(&config)
	}
	r, err := NewRunner(config)
	require.NoError(t, err)
	return r
}

// fakeInvoker records invocations and, by default, behaves like a binary that copies each input
// file to its output file.
type fakeInvoker struct {
	calls  [][]string
	err    error
	action func(args []string) error
}

func (f *fakeInvoker) Invoke(_ context.Context, args []string, stdout io.Writer) (harness.Invocation, error) {
	f.calls = append(f.calls, append([]string(nil), args...))
	if f.err != nil {
		return harness.Invocation{}, f.err
	}
	action := f.action
	if action == nil {
		action = copyTriples
	}
	if err := action(args); err != nil {
		return harness.Invocation{}, err
	}
	if stdout != nil {
		_, _ = io.WriteString(stdout, "Test: done\n")
	}
	return harness.Invocation{Args: args}, nil
}

func copyTriples(args []string) error {
	for i := 1; i+2 < len(args); i += 3 {
		data, err := os.ReadFile(args[i+1])
		if err != nil {
			continue // like the simulator, a missing input produces no output
		}
		if err := os.WriteFile(args[i+2], data, 0o600); err != nil {
			return err
		}
	}
	return nil
}

type recordingTestLogger struct {
	started  []FeatureID
	errors   []error
	finished []FeatureResult
	skipped  []FeatureID
}

func (r *recordingTestLogger) FeatureStarted(id FeatureID) { r.started = append(r.started, id) }
func (r *recordingTestLogger) FeatureError(_ FeatureID, err error, _ string) {
	r.errors = append(r.errors, err)
}
func (r *recordingTestLogger) FeatureFinished(result FeatureResult) {
	r.finished = append(r.finished, result)
}
func (r *recordingTestLogger) FeatureSkipped(id FeatureID, _ string) {
	r.skipped = append(r.skipped, id)
}
func (r *recordingTestLogger) EndLog(Results) error { return nil }

func messages(output framework.CapturedOutput) []string {
	var ret []string
	for _, m := range output {
		ret = append(ret, m.Message)
	}
	return ret
}
