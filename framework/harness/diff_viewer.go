package harness

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/flashboot/autotest/framework"

	"github.com/pmezard/go-difflib/difflib"
)

// PreferredDiffTool is the graphical tool used to display mismatches when it is installed.
const PreferredDiffTool = "meld"

// DiffViewer displays the difference between an actual output file and its expected fixture.
// It is only called for files that are known to differ.
type DiffViewer interface {
	ShowDiff(actualPath, expectedPath string) error
}

// ExternalDiffViewer launches an external tool with the absolute paths of the actual and expected
// files, in that order, and waits for it to exit. The tool's standard output is discarded.
type ExternalDiffViewer struct {
	Tool string
}

func (v ExternalDiffViewer) ShowDiff(actualPath, expectedPath string) error {
	actual, err := filepath.Abs(actualPath)
	if err != nil {
		return err
	}
	expected, err := filepath.Abs(expectedPath)
	if err != nil {
		return err
	}
	cmd := exec.Command(v.Tool, actual, expected) //nolint:gosec
	cmd.Stderr = os.Stderr
	err = cmd.Run()
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return nil // diff tools conventionally exit non-zero when the inputs differ
	}
	return err
}

// UnifiedDiffViewer writes a unified diff of the two files to a Logger, one line per call.
type UnifiedDiffViewer struct {
	Logger  framework.Logger
	Context int
}

func (v UnifiedDiffViewer) ShowDiff(actualPath, expectedPath string) error {
	expected, err := os.ReadFile(expectedPath) //nolint:gosec
	if err != nil {
		return err
	}
	actual, err := os.ReadFile(actualPath) //nolint:gosec
	if err != nil {
		return err
	}
	context := v.Context
	if context <= 0 {
		context = 3
	}
	text, err := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        difflib.SplitLines(string(expected)),
		B:        difflib.SplitLines(string(actual)),
		FromFile: expectedPath,
		ToFile:   actualPath,
		Context:  context,
	})
	if err != nil {
		return fmt.Errorf("cannot compute diff: %w", err)
	}
	if text == "" {
		v.Logger.Printf("%s and %s have no line differences to show", actualPath, expectedPath)
		return nil
	}
	for _, line := range strings.Split(strings.TrimRight(text, "\n"), "\n") {
		v.Logger.Println(line)
	}
	return nil
}

// SelectDiffViewer returns an ExternalDiffViewer for PreferredDiffTool if lookPath can find it,
// or else a UnifiedDiffViewer writing to logger. Pass exec.LookPath for normal use.
func SelectDiffViewer(lookPath func(string) (string, error), logger framework.Logger) DiffViewer {
	if path, err := lookPath(PreferredDiffTool); err == nil {
		return ExternalDiffViewer{Tool: path}
	}
	return UnifiedDiffViewer{Logger: logger}
}
