package main

import (
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/flashboot/autotest/framework"
	"github.com/flashboot/autotest/framework/autotest"
)

type commandParams struct {
	logLevel     framework.Level
	binaryPath   string
	showDiff     boolArg
	featuresFile string
	inputDir     string
	outputDir    string
	expectedDir  string
	timeout      time.Duration
	filters      autotest.RegexFilters
	jUnitFile    string
	debug        bool
}

// boolArg is a boolean option that takes its value as a separate argument, as in
// "--show-diff true".
type boolArg bool

func (b *boolArg) String() string { return strconv.FormatBool(bool(*b)) }

func (b *boolArg) Set(value string) error {
	v, err := strconv.ParseBool(value)
	if err != nil {
		return fmt.Errorf("expected true or false: %w", err)
	}
	*b = boolArg(v)
	return nil
}

func (c *commandParams) Read(args []string) bool {
	c.logLevel = framework.LevelInfo
	fs := flag.NewFlagSet("", flag.ContinueOnError)
	fs.Var(&c.logLevel, "logging",
		fmt.Sprintf("logging level (%s)", strings.Join(framework.LevelNames(), ", ")))
	fs.StringVar(&c.binaryPath, "elf", "", "the binary under test")
	fs.Var(&c.showDiff, "show-diff", "true to display a diff of each mismatching output")
	fs.StringVar(&c.featuresFile, "features", "", "YAML or JSON feature list (default: built-in Flashboot list)")
	fs.StringVar(&c.inputDir, "input-dir", "", "directory of input fixtures (overrides the feature list)")
	fs.StringVar(&c.outputDir, "output-dir", "", "directory for output files, cleared on startup (overrides the feature list)")
	fs.StringVar(&c.expectedDir, "expected-dir", "", "directory of expected fixtures (overrides the feature list)")
	fs.DurationVar(&c.timeout, "timeout", 0, "kill the binary if one invocation runs longer than this (0 = no limit)")
	fs.Var(&c.filters.MustMatch, "run", "regex pattern(s) to select features to run")
	fs.Var(&c.filters.MustNotMatch, "skip", "regex pattern(s) to select features not to run")
	fs.StringVar(&c.jUnitFile, "junit", "", "write JUnit XML output to the specified path")
	fs.BoolVar(&c.debug, "debug", false, "show captured debug output, including the binary's output, for failed features")

	if err := fs.Parse(args[1:]); err != nil {
		if err != flag.ErrHelp {
			fmt.Fprintln(os.Stderr, err)
		}
		return false
	}
	if c.binaryPath == "" {
		fmt.Fprintln(os.Stderr, "--elf is required")
		fs.Usage()
		return false
	}
	if c.timeout < 0 {
		fmt.Fprintln(os.Stderr, "--timeout cannot be negative")
		fs.Usage()
		return false
	}
	return true
}
