package framework

import (
	"errors"
	"fmt"
	"runtime/debug"
	"strings"
)

type environment struct {
	results    Results
	testLogger TestLogger
	filter     Filter
}

func (e *environment) record(result TestResult, failed bool) {
	e.results.Tests = append(e.results.Tests, result)
	if failed {
		e.results.Failures = append(e.results.Failures, result)
	}
}

// Context is the framework's equivalent of *testing.T. It implements the TestingT interfaces of
// testify's assert and require packages.
type Context struct {
	env         *environment
	id          TestID
	debugLogger CapturingLogger
	failed      bool
	skipped     bool
	skipReason  string
	errors      []error
}

// Run executes action as the root of a test tree and returns the accumulated results. If filter
// is nil every test runs; if testLogger is nil nothing is reported while running.
func Run(
	filter Filter,
	testLogger TestLogger,
	action func(*Context),
) Results {
	if testLogger == nil {
		testLogger = NullTestLogger()
	}
	env := &environment{
		filter:     filter,
		testLogger: testLogger,
	}
	root := &Context{env: env}
	root.execute(action)
	return env.results
}

// execute runs action and records its outcome. A test that failed before skipping is recorded
// as failed, like testing.T does.
func (c *Context) execute(action func(*Context)) {
	defer func() {
		if r := recover(); r != nil {
			c.recovered(r)
		}
		switch {
		case c.Failed():
			c.env.record(TestResult{TestID: c.id, Errors: c.errors}, true)
		case c.skipped:
			c.env.record(TestResult{TestID: c.id, Skipped: true}, false)
		case len(c.id.Path) > 0:
			c.env.record(TestResult{TestID: c.id}, false)
		}
	}()

	action(c)
}

// recovered handles a panic out of a test body. FailNow and Skip panic with the context itself;
// anything else is an unexpected panic and fails the test.
func (c *Context) recovered(r interface{}) {
	if r == c && c.skipped {
		return
	}
	var err error
	switch {
	case r != c:
		err = fmt.Errorf("unexpected panic in test: %+v\n%s", r, string(debug.Stack()))
	case len(c.errors) == 0:
		err = errors.New("test failed with no failure message")
	}
	c.failed = true
	if err != nil {
		c.errors = append(c.errors, err)
		c.env.testLogger.TestError(c.id, err)
	}
}

// ID returns the full path of this test.
func (c *Context) ID() TestID {
	return c.id
}

// Run runs a subtest, unless the filter excludes it.
func (c *Context) Run(name string, action func(*Context)) {
	id := TestID{Path: append(append([]string(nil), c.id.Path...), name)}
	logger := c.env.testLogger

	logger.TestStarted(id)
	if c.env.filter != nil && !c.env.filter(id) {
		c.env.record(TestResult{TestID: id, Skipped: true}, false)
		logger.TestSkipped(id, "excluded by filter parameters")
		return
	}
	sub := &Context{id: id, env: c.env}
	sub.execute(action)
	if sub.skipped && !sub.Failed() {
		logger.TestSkipped(id, sub.skipReason)
		return
	}
	logger.TestFinished(id, sub.Failed(), sub.debugLogger.Output())
}

// Errorf records a failure and lets the test continue.
func (c *Context) Errorf(format string, args ...interface{}) {
	err := fmt.Errorf(format, args...)
	c.failed = true
	c.errors = append(c.errors, err)
	c.env.testLogger.TestError(c.id, reformatError(err))
}

// Failed reports whether the test has recorded a failure.
func (c *Context) Failed() bool {
	return c.failed
}

// FailNow marks the test failed and stops it. It must be called from the goroutine running the
// test.
func (c *Context) FailNow() {
	c.failed = true
	panic(c)
}

// Skip stops the test without a reason. Failures recorded before it still count.
func (c *Context) Skip() {
	c.SkipWithReason("")
}

// SkipWithReason stops the test and hands reason to the test logger.
func (c *Context) SkipWithReason(reason string) {
	c.skipped = true
	c.skipReason = reason
	panic(c)
}

// Debug adds a line to this test's debug log.
func (c *Context) Debug(message string, args ...interface{}) {
	c.debugLogger.Printf(message, args...)
}

// DebugLogger returns this test's debug log as a Logger, for code that takes one.
func (c *Context) DebugLogger() Logger {
	return &c.debugLogger
}

// testify's failure messages are indented with tabs and start with a blank line; strip that so
// they read well in console output.
func reformatError(err error) error {
	lines := strings.Split(strings.TrimLeft(err.Error(), "\n"), "\n")
	for i := range lines {
		lines[i] = strings.TrimLeft(lines[i], "\t")
	}
	return errors.New(strings.Join(lines, "\n"))
}
