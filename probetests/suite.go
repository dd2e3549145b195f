package probetests

import (
	"github.com/argprobe/marshal-contract-tests/framework"
	"github.com/argprobe/marshal-contract-tests/probe"
)

// RunTestSuite runs every contract test against layer, which may be nil to call the probe
// directly.
func RunTestSuite(
	harness *framework.TestHarness,
	layer probe.Layer,
	config SuiteConfig,
	filter framework.Filter,
	testLogger framework.TestLogger,
) framework.Results {
	return framework.Run(filter, testLogger, func(c *framework.Context) {
		t := &T{
			context: c,
			harness: harness,
			layer:   layer,
			config:  config,
		}

		t.Run("receiver", DoReceiverTests)
		t.Run("masks", DoMaskTests)
		t.Run("literals", DoLiteralTests)
		t.Run("null slot", DoNullSlotTests)
		t.Run("idempotence", DoIdempotenceTests)
		t.Run("invalid input", DoInvalidInputTests)
		t.Run("concurrency", DoConcurrencyTests)
		t.Run("sensitivity", DoSensitivityTests)
	})
}
