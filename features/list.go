// Package features holds the declarations of the test cases that are run against the binary:
// the built-in Flashboot list and the loader for user-supplied list files.
package features

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/flashboot/autotest/framework/autotest"
	o "github.com/flashboot/autotest/framework/opt"
)

// List is the content of a feature list file.
//
//	directories:            # optional
//	  input: test/mock/
//	  output: build/x86/
//	  expected: test/mock/expected/
//	commands: [ProgramMemoryLoad, DataMemoryLoad]   # optional
//	features:
//	  - name: Bootloader success
//	    scenarios:
//	      - {command: ProgramMemoryLoad, input: FW_1.txt, expected: FW_1_Ok.txt}
type List struct {
	Directories o.Maybe[autotest.Directories] `json:"directories"`

	// Commands are the commands the binary under test understands. If present, every scenario
	// must use one of them.
	Commands []string `json:"commands"`

	Features []autotest.Feature `json:"features"`
}

// Validate checks every feature in the list.
func (l List) Validate() error {
	return autotest.ValidateFeatures(l.Features, l.Commands)
}

// Parse reads a list from JSON or YAML data. The name is used only in error messages.
func Parse(name string, data []byte) (List, error) {
	var list List
	if err := ParseJSONOrYAML(data, &list); err != nil {
		return List{}, fmt.Errorf("error parsing %q: %w", name, err)
	}
	return list, nil
}

// LoadFile reads a list from a file. Relative directories in the file are taken to be relative
// to the current working directory, like the command-line directory options.
func LoadFile(path string) (List, error) {
	data, err := os.ReadFile(path) //nolint:gosec
	if err != nil {
		return List{}, fmt.Errorf("failed to read %q: %w", path, err)
	}
	return Parse(filepath.Base(path), data)
}
