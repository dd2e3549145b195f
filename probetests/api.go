package probetests

import (
	"fmt"

	"github.com/argprobe/marshal-contract-tests/framework"
	"github.com/argprobe/marshal-contract-tests/intercept"
	"github.com/argprobe/marshal-contract-tests/probe"

	"github.com/stretchr/testify/require"
)

// Capabilities that a target may claim. Tests that depend on one of them are skipped if the
// target does not claim it.
const (
	CapabilityInstanceProbe   = "instance-probe"
	CapabilityStaticProbe     = "static-probe"
	CapabilityConcurrentCalls = "concurrent-calls"
)

var AllCapabilities = []string{
	CapabilityConcurrentCalls,
	CapabilityInstanceProbe,
	CapabilityStaticProbe,
}

// T represents a test or subtest in the probe contract test suite.
//
// It implements the same basic functionality as Go's testing.T, but in an environment that is
// outside of the Go test runner, and with some extra features such as debug logging that are
// convenient for our use case. Those features are provided by our lower-level framework
// package.
//
// It also knows the forwarding layer under test, and has methods for invoking the probe through
// that layer and collecting the verifier's reports. The probe's diagnostic lines go to the
// test's debug log.
//
// To make test assertions, you can use the assert and require packages, passing the *T as if it
// were a *testing.T.
type T struct {
	context *framework.Context
	harness *framework.TestHarness
	layer   probe.Layer
	config  SuiteConfig
}

// Errorf is called by assertions to log a test failure. It does not cause an immediate exit.
func (t *T) Errorf(format string, args ...interface{}) {
	t.context.Errorf(format, args...)
}

// FailNow is called by assertions when a test should fail and immediately exit. The methods in
// the require package call FailNow.
func (t *T) FailNow() {
	t.context.FailNow()
}

// Run runs a subtest. This is equivalent to the Run method of testing.T.
func (t *T) Run(name string, action func(*T)) {
	t.context.Run(name, func(c *framework.Context) {
		action(&T{context: c, harness: t.harness, layer: t.layer, config: t.config})
	})
}

// ID returns the full path of the current test.
func (t *T) ID() framework.TestID {
	return t.context.ID()
}

// Config returns the suite configuration.
func (t *T) Config() SuiteConfig {
	return t.config
}

// Layer returns the forwarding layer under test. It is nil when the probe is called directly.
func (t *T) Layer() probe.Layer {
	return t.layer
}

// Debug logs some debug output for the test. The output will be passed to the test logger at
// the end of the test.
func (t *T) Debug(format string, args ...interface{}) {
	t.context.Debug(format, args...)
}

// RequireCapability skips this test if the target did not claim the specified capability.
func (t *T) RequireCapability(capability string) {
	if !t.harness.HasCapability(capability) {
		t.context.SkipWithReason(fmt.Sprintf("target does not have capability %q", capability))
	}
}

// NewReceiver returns a fresh, non-nil self reference that is unique to this call.
func (t *T) NewReceiver() *Receiver {
	return &Receiver{Tag: t.ID().String()}
}

// Receiver is the self reference the suite passes to the probe.
type Receiver struct {
	Tag string
}

// Invocation is the outcome of one call through the layer under test.
type Invocation struct {
	Returned interface{}
	Reports  []probe.Report
	Lines    []string
}

// InvokeInstance calls the instance probe through the layer under test and returns what came
// back. The invocation itself must not fail.
func (t *T) InvokeInstance(self interface{}, mask uint64) Invocation {
	return t.InvokeInstanceThrough(t.layer, self, mask)
}

// InvokeInstanceThrough is like InvokeInstance, but with an explicit layer.
func (t *T) InvokeInstanceThrough(layer probe.Layer, self interface{}, mask uint64) Invocation {
	t.RequireCapability(CapabilityInstanceProbe)
	var inv Invocation
	sink := &framework.CapturingLogger{}
	p := probe.New(layer, sink, func(r probe.Report) { inv.Reports = append(inv.Reports, r) })
	ret, err := p.InvokeInstance(self, mask)
	require.NoError(t, err)
	inv.Returned = ret
	inv.Lines = t.forwardLines(sink)
	return inv
}

// InvokeStatic calls the static probe through the layer under test.
func (t *T) InvokeStatic(self interface{}, mask uint64) Invocation {
	return t.InvokeStaticThrough(t.layer, self, mask)
}

// InvokeStaticThrough is like InvokeStatic, but with an explicit layer.
func (t *T) InvokeStaticThrough(layer probe.Layer, self interface{}, mask uint64) Invocation {
	t.RequireCapability(CapabilityStaticProbe)
	var inv Invocation
	sink := &framework.CapturingLogger{}
	p := probe.New(layer, sink, func(r probe.Report) { inv.Reports = append(inv.Reports, r) })
	require.NoError(t, p.InvokeStatic(self, mask))
	inv.Lines = t.forwardLines(sink)
	return inv
}

func (t *T) forwardLines(sink *framework.CapturingLogger) []string {
	lines := sink.Output().Messages()
	for _, line := range lines {
		t.Debug("%s", line)
	}
	return lines
}

// RequireReport returns the only report of an invocation. The test fails and exits if the probe
// body ran zero times or more than once.
func (t *T) RequireReport(inv Invocation) probe.Report {
	require.Len(t, inv.Reports, 1, "expected the probe body to run exactly once")
	return inv.Reports[0]
}

// RequireCleanReport is like RequireReport, and also fails the test for every mismatch found.
func (t *T) RequireCleanReport(inv Invocation) probe.Report {
	r := t.RequireReport(inv)
	for _, m := range r.Mismatches {
		t.Errorf("%s", m)
	}
	return r
}

// ComposeLayer returns a layer that applies the layer under test outside of inner.
func (t *T) ComposeLayer(inner probe.Layer) probe.Layer {
	if t.layer == nil {
		return inner
	}
	return intercept.Chain{t.layer, inner}
}
