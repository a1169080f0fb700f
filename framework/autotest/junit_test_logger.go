package autotest

import (
	"encoding/xml"
	"fmt"
	"os"
	"strings"
	"sync"
	"time"

	o "github.com/flashboot/autotest/framework/opt"
)

// JUnitTestLogger collects feature results and writes them as a JUnit XML document when EndLog
// is called, so that CI systems can display them.
type JUnitTestLogger struct {
	filePath    string
	binaryPath  string
	directories Directories
	filters     RegexFilters
	timeout     o.Maybe[time.Duration]
	names       []string // preserves the order that features were reported in
	features    map[string]jUnitFeatureStatus
	lock        sync.Mutex
}

type jUnitFeatureStatus struct {
	index    int
	failures []string
	skipped  o.Maybe[string]
	output   string
	duration time.Duration
}

// Struct definitions for the JUnit XML schema - see https://github.com/jstemmer/go-junit-report

type jUnitXMLDocument struct {
	XMLName xml.Name            `xml:"testsuites"`
	Suites  []jUnitXMLTestSuite `xml:"testsuite"`
}

type jUnitXMLTestSuite struct {
	XMLName    xml.Name           `xml:"testsuite"`
	Tests      int                `xml:"tests,attr"`
	Failures   int                `xml:"failures,attr"`
	Skipped    int                `xml:"skipped,attr"`
	Time       string             `xml:"time,attr"`
	Name       string             `xml:"name,attr"`
	Properties []jUnitXMLProperty `xml:"properties>property,omitempty"`
	TestCases  []jUnitXMLTestCase `xml:"testcase"`
}

type jUnitXMLTestCase struct {
	XMLName     xml.Name             `xml:"testcase"`
	Classname   string               `xml:"classname,attr"`
	Name        string               `xml:"name,attr"`
	Time        string               `xml:"time,attr"`
	SkipMessage *jUnitXMLSkipMessage `xml:"skipped,omitempty"`
	Failure     *jUnitXMLFailure     `xml:"failure,omitempty"`
}

type jUnitXMLSkipMessage struct {
	Message string `xml:"message,attr"`
}

type jUnitXMLProperty struct {
	Name  string `xml:"name,attr"`
	Value string `xml:"value,attr"`
}

type jUnitXMLFailure struct {
	Message  string `xml:"message,attr"`
	Type     string `xml:"type,attr"`
	Contents string `xml:",chardata"`
}

func NewJUnitTestLogger(
	filePath string,
	binaryPath string,
	directories Directories,
	filters RegexFilters,
	timeout o.Maybe[time.Duration],
) *JUnitTestLogger {
	return &JUnitTestLogger{
		filePath:    filePath,
		binaryPath:  binaryPath,
		directories: directories,
		filters:     filters,
		timeout:     timeout,
		features:    make(map[string]jUnitFeatureStatus),
	}
}

func (j *JUnitTestLogger) FeatureStarted(id FeatureID) {
	j.lock.Lock()
	defer j.lock.Unlock()
	j.names = append(j.names, id.Name)
	j.features[id.Name] = jUnitFeatureStatus{index: id.Index}
}

func (j *JUnitTestLogger) FeatureError(id FeatureID, err error, commandLine string) {
	j.lock.Lock()
	defer j.lock.Unlock()
	status := j.features[id.Name]
	message := err.Error()
	if commandLine != "" {
		message += "\n  Failed to run: " + commandLine
	}
	status.failures = append(status.failures, message)
	j.features[id.Name] = status
}

func (j *JUnitTestLogger) FeatureFinished(result FeatureResult) {
	j.lock.Lock()
	defer j.lock.Unlock()
	status := j.features[result.ID.Name]
	status.output = result.DebugOutput.ToString("")
	status.duration = result.Duration
	j.features[result.ID.Name] = status
}

func (j *JUnitTestLogger) FeatureSkipped(id FeatureID, reason string) {
	j.lock.Lock()
	defer j.lock.Unlock()
	if _, ok := j.features[id.Name]; !ok {
		j.names = append(j.names, id.Name)
	}
	status := j.features[id.Name]
	status.skipped = o.Some(reason)
	j.features[id.Name] = status
}

func (j *JUnitTestLogger) EndLog(Results) error {
	j.lock.Lock()
	defer j.lock.Unlock()

	suite := jUnitXMLTestSuite{
		Name: "Auto test: " + j.binaryPath,
		Properties: []jUnitXMLProperty{
			{Name: "autotest.binary", Value: j.binaryPath},
			{Name: "autotest.dir.input", Value: j.directories.InputDir},
			{Name: "autotest.dir.output", Value: j.directories.OutputDir},
			{Name: "autotest.dir.expected", Value: j.directories.ExpectedDir},
			{Name: "autotest.filter.mustMatch", Value: j.filters.MustMatch.String()},
			{Name: "autotest.filter.mustNotMatch", Value: j.filters.MustNotMatch.String()},
			{Name: "autotest.timeout", Value: j.timeout.String()},
		},
	}
	totalDuration := time.Duration(0)
	for _, name := range j.names {
		status := j.features[name]
		suite.Tests++
		totalDuration += status.duration

		testCase := jUnitXMLTestCase{
			Classname: "autotest",
			Name:      name,
			Time:      jUnitDurationString(status.duration),
		}
		if status.skipped.IsDefined() {
			suite.Skipped++
			testCase.SkipMessage = &jUnitXMLSkipMessage{Message: status.skipped.Value()}
		}
		if len(status.failures) != 0 {
			suite.Failures++
			testCase.Failure = &jUnitXMLFailure{
				Message:  strings.Join(status.failures, "\n"),
				Type:     fmt.Sprintf("Test case %d", status.index),
				Contents: status.output,
			}
		}
		suite.TestCases = append(suite.TestCases, testCase)
	}
	suite.Time = jUnitDurationString(totalDuration)

	bytes, err := xml.MarshalIndent(jUnitXMLDocument{Suites: []jUnitXMLTestSuite{suite}}, "", "  ")
	if err != nil {
		return err
	}
	bytes = append(bytes, '\n')

	return os.WriteFile(j.filePath, bytes, 0644) //nolint:gosec
}

func jUnitDurationString(d time.Duration) string {
	return fmt.Sprintf("%.3f", d.Seconds())
}
