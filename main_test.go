package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/flashboot/autotest/features"
	"github.com/flashboot/autotest/framework"
	"github.com/flashboot/autotest/framework/autotest"
	o "github.com/flashboot/autotest/framework/opt"

	testhelpers "github.com/launchdarkly/go-test-helpers/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const copyingSimulator = `#!/bin/sh
while [ $# -ge 3 ]; do
  cat "$2" > "$3"
  shift 3
done
`

type testProject struct {
	root   string
	params commandParams
}

func newTestProject(t *testing.T) testProject {
	t.Helper()
	root := t.TempDir()
	for _, dir := range []string{"mock", "mock/expected"} {
		require.NoError(t, os.MkdirAll(filepath.Join(root, dir), 0o755))
	}
	bin := filepath.Join(root, "sim.sh")
	require.NoError(t, os.WriteFile(bin, []byte(copyingSimulator), 0o755)) //nolint:gosec
	write := func(name, content string) {
		require.NoError(t, os.WriteFile(filepath.Join(root, name), []byte(content), 0o600))
	}
	write("mock/FW_1.txt", "OK\n")
	write("mock/FW_crcError.txt", "CRC error\n")
	write("mock/expected/FW_1_Ok.txt", "OK\n")
	write("mock/expected/FW_crcError.txt", "CRC mismatch\n")
	write("features.yaml", `
features:
  - name: Bootloader success
    scenarios:
      - {command: ProgramMemoryLoad, input: FW_1.txt, expected: FW_1_Ok.txt}
  - name: Bootloader CRC error
    scenarios:
      - {command: ProgramMemoryLoad, input: FW_crcError.txt, expected: FW_crcError.txt}
  - name: Backup success
    scenarios:
      - {command: BackupMemoryLoad, input: FW_1.txt, expected: FW_1_Ok.txt}
`)
	return testProject{
		root: root,
		params: commandParams{
			logLevel:     framework.LevelCritical,
			binaryPath:   bin,
			featuresFile: filepath.Join(root, "features.yaml"),
			inputDir:     filepath.Join(root, "mock"),
			outputDir:    filepath.Join(root, "build"),
			expectedDir:  filepath.Join(root, "mock", "expected"),
		},
	}
}

func TestRunStopsAtFirstFailedFeature(t *testing.T) {
	p := newTestProject(t)

	results, err := run(p.params)
	require.NoError(t, err)

	assert.False(t, results.OK())
	require.Len(t, results.Features, 2)
	assert.Equal(t, "Bootloader CRC error", results.Failures[0].ID.Name)
}

func TestRunPassesWhenFailingFeatureIsSkipped(t *testing.T) {
	p := newTestProject(t)
	require.NoError(t, p.params.filters.MustNotMatch.Set("CRC"))
	p.params.jUnitFile = filepath.Join(p.root, "junit.xml")

	results, err := run(p.params)
	require.NoError(t, err)

	assert.True(t, results.OK())
	assert.Len(t, results.Features, 2)
	assert.True(t, testhelpers.FilePathExists(p.params.jUnitFile))
}

func TestRunReportsInvalidFeatureList(t *testing.T) {
	p := newTestProject(t)
	require.NoError(t, os.WriteFile(p.params.featuresFile, []byte("features:\n  - name: Empty\n"), 0o600))

	_, err := run(p.params)
	assert.ErrorContains(t, err, "feature declares no scenarios")
}

func TestRunFailsWhenBinaryIsMissing(t *testing.T) {
	p := newTestProject(t)
	p.params.binaryPath = filepath.Join(p.root, "missing-sim")

	_, err := run(p.params)
	assert.Error(t, err)
}

func TestResolveDirectories(t *testing.T) {
	withDirs := features.List{Directories: o.Some(autotest.Directories{
		InputDir: "test/mock/", OutputDir: "build/x86/", ExpectedDir: "test/mock/expected/",
	})}

	assert.Equal(t, withDirs.Directories.Value(), resolveDirectories(withDirs, commandParams{}))
	assert.Equal(t,
		autotest.Directories{InputDir: "test/mock/", OutputDir: "/tmp/out", ExpectedDir: "test/mock/expected/"},
		resolveDirectories(withDirs, commandParams{outputDir: "/tmp/out"}))
	assert.Equal(t,
		autotest.Directories{InputDir: ".", OutputDir: "output", ExpectedDir: "."},
		resolveDirectories(features.List{}, commandParams{}))
}
