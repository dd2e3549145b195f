package probetests

import (
	"github.com/argprobe/marshal-contract-tests/probe"

	"github.com/stretchr/testify/assert"
)

func DoInvalidInputTests(t *T) {
	var nilReceiver *Receiver
	inputs := []struct {
		name string
		self interface{}
	}{
		{"untyped nil", nil},
		{"typed nil pointer", nilReceiver},
	}
	for _, input := range inputs {
		self := input.self
		t.Run(input.name, func(t *T) {
			t.Run("instance", func(t *T) {
				t.RequireCapability(CapabilityInstanceProbe)
				var reports []probe.Report
				p := probe.New(t.Layer(), t.context.DebugLogger(), func(r probe.Report) { reports = append(reports, r) })
				ret, err := p.InvokeInstance(self, 42)
				assert.ErrorIs(t, err, probe.ErrInvalidProbeInput)
				assert.Nil(t, ret)
				assert.Empty(t, reports, "probe body should not run for an invalid input")
			})
			t.Run("static", func(t *T) {
				t.RequireCapability(CapabilityStaticProbe)
				var reports []probe.Report
				p := probe.New(t.Layer(), t.context.DebugLogger(), func(r probe.Report) { reports = append(reports, r) })
				err := p.InvokeStatic(self, 42)
				assert.ErrorIs(t, err, probe.ErrInvalidProbeInput)
				assert.Empty(t, reports, "probe body should not run for an invalid input")
			})
		})
	}
}
