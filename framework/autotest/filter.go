package autotest

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/flashboot/autotest/framework"
)

// Filter decides whether a feature should be run, based on its name.
type Filter interface {
	Match(featureName string) bool
}

// FilterFunc adapts a function to the Filter interface.
type FilterFunc func(featureName string) bool

func (f FilterFunc) Match(featureName string) bool { return f(featureName) }

type RegexFilters struct {
	MustMatch    PatternList
	MustNotMatch PatternList
}

func (r RegexFilters) Match(featureName string) bool {
	return (!r.MustMatch.IsDefined() || r.MustMatch.AnyMatch(featureName)) &&
		!r.MustNotMatch.AnyMatch(featureName)
}

func (r RegexFilters) IsDefined() bool {
	return r.MustMatch.IsDefined() || r.MustNotMatch.IsDefined()
}

// PatternList is a list of regular expressions that can be built up from repeated command-line
// options.
type PatternList []*regexp.Regexp

func (l PatternList) String() string {
	ss := make([]string, 0, len(l))
	for _, p := range l {
		ss = append(ss, `"`+p.String()+`"`)
	}
	return strings.Join(ss, " or ")
}

// Set is called by the command line parser
func (l *PatternList) Set(value string) error {
	rx, err := regexp.Compile(value)
	if err != nil {
		return fmt.Errorf("invalid regex: %w", err)
	}
	*l = append(*l, rx)
	return nil
}

func (l PatternList) IsDefined() bool {
	return len(l) != 0
}

func (l PatternList) AnyMatch(featureName string) bool {
	for _, p := range l {
		if p.MatchString(featureName) {
			return true
		}
	}
	return false
}

func PrintFilterDescription(out framework.Logger, filters RegexFilters) {
	if !filters.IsDefined() {
		return
	}
	out.Println("Some features will be skipped based on the filter criteria for this test run:")
	if filters.MustMatch.IsDefined() {
		out.Printf("  skip any not matching %s", filters.MustMatch)
	}
	if filters.MustNotMatch.IsDefined() {
		out.Printf("  skip any matching %s", filters.MustNotMatch)
	}
}
