package regtest

import (
	"encoding/xml"
	"fmt"
	"os"
	"strings"
	"time"

	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"

	"github.com/tokharness/tok-test-harness/framework"
)

const jUnitSuiteName = "tokenizer regression tests"

// JUnitTestLogger writes a JUnit XML report when the run ends, for CI systems that display them.
type JUnitTestLogger struct {
	filePath   string
	properties map[string]string
	caseIDs    []CaseID // this slice preserves the order that the cases were run in
	cases      map[CaseID]jUnitCaseStatus
}

type jUnitCaseStatus struct {
	outcome   Outcome
	output    string
	startTime time.Time
	duration  time.Duration
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
	Errors     int                `xml:"errors,attr"`
	Time       string             `xml:"time,attr"`
	Name       string             `xml:"name,attr"`
	Properties []jUnitXMLProperty `xml:"properties>property,omitempty"`
	TestCases  []jUnitXMLTestCase `xml:"testcase"`
}

type jUnitXMLTestCase struct {
	XMLName   xml.Name         `xml:"testcase"`
	Classname string           `xml:"classname,attr"`
	Name      string           `xml:"name,attr"`
	Time      string           `xml:"time,attr"`
	Failure   *jUnitXMLFailure `xml:"failure,omitempty"`
	Error     *jUnitXMLFailure `xml:"error,omitempty"`
	SystemOut string           `xml:"system-out,omitempty"`
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

// NewJUnitTestLogger creates a logger that will write to filePath. The properties are copied into
// the report as-is.
func NewJUnitTestLogger(filePath string, properties map[string]string) *JUnitTestLogger {
	return &JUnitTestLogger{
		filePath:   filePath,
		properties: properties,
		cases:      make(map[CaseID]jUnitCaseStatus),
	}
}

func (j *JUnitTestLogger) CaseStarted(id CaseID) {
	j.caseIDs = append(j.caseIDs, id)
	j.cases[id] = jUnitCaseStatus{startTime: time.Now()}
}

func (j *JUnitTestLogger) CaseFinished(id CaseID, outcome Outcome, debugOutput framework.CapturedOutput) {
	status := j.cases[id]
	status.outcome = outcome
	status.output = debugOutput.ToString("")
	status.duration = time.Since(status.startTime)
	j.cases[id] = status
}

func (j *JUnitTestLogger) EndLog(results Results) error {
	fmt.Printf("Writing JUnit data to %s\n", j.filePath)

	bytes, err := xml.MarshalIndent(j.document(), "", "  ")
	if err != nil {
		return err
	}
	bytes = append([]byte(xml.Header), bytes...)
	bytes = append(bytes, '\n')

	return os.WriteFile(j.filePath, bytes, 0644) //nolint:gosec
}

func (j *JUnitTestLogger) document() jUnitXMLDocument {
	suite := jUnitXMLTestSuite{Name: jUnitSuiteName}
	names := maps.Keys(j.properties)
	slices.Sort(names)
	for _, name := range names {
		suite.Properties = append(suite.Properties, jUnitXMLProperty{Name: name, Value: j.properties[name]})
	}

	total := time.Duration(0)
	for _, id := range j.caseIDs {
		status := j.cases[id]
		total += status.duration
		suite.Tests++

		testCase := jUnitXMLTestCase{
			Classname: id.Lang,
			Name:      id.String(),
			Time:      jUnitDurationString(status.duration),
			SystemOut: status.output,
		}
		problem := &jUnitXMLFailure{
			Type:     status.outcome.Kind.String(),
			Contents: strings.Join(status.outcome.Artifacts, "\n"),
		}
		switch status.outcome.Kind {
		case Failed:
			problem.Message = "output does not match reference"
			testCase.Failure = problem
			suite.Failures++
		case Missing:
			problem.Message = "no reference file"
			testCase.Failure = problem
			suite.Failures++
		case Crashed:
			problem.Message = fmt.Sprintf("tool exited with status %d", status.outcome.ExitStatus)
			testCase.Error = problem
			suite.Errors++
		case OKWithLeaks:
			testCase.SystemOut = strings.TrimSpace(fmt.Sprintf("instrumentation reported %s\n%s",
				status.outcome.Leaks, testCase.SystemOut))
		}
		suite.TestCases = append(suite.TestCases, testCase)
	}
	suite.Time = jUnitDurationString(total)
	return jUnitXMLDocument{Suites: []jUnitXMLTestSuite{suite}}
}

func jUnitDurationString(d time.Duration) string {
	return fmt.Sprintf("%.3f", d.Seconds())
}
