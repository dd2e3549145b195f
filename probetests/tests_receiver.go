package probetests

import (
	"github.com/argprobe/marshal-contract-tests/probe"

	"github.com/stretchr/testify/assert"
)

func DoReceiverTests(t *T) {
	t.Run("instance probe returns its receiver", func(t *T) {
		for _, mask := range t.Config().Masks {
			self := t.NewReceiver()
			inv := t.InvokeInstance(self, uint64(mask))
			t.RequireReport(inv)
			assert.True(t, probe.SameReference(self, inv.Returned),
				"mask %s: expected receiver %s back, got %s", mask, probe.FormatValue(self), probe.FormatValue(inv.Returned))
		}
	})

	t.Run("receiver arrives in the obj slot", func(t *T) {
		self := t.NewReceiver()
		r := t.RequireReport(t.InvokeInstance(self, 0xABCD))
		assert.True(t, probe.SameReference(self, r.Received.Obj), "obj slot held %s", probe.FormatValue(r.Received.Obj))
	})

	t.Run("static probe sees the self reference in the obj slot", func(t *T) {
		self := t.NewReceiver()
		r := t.RequireReport(t.InvokeStatic(self, 0xABCD))
		assert.True(t, probe.SameReference(self, r.Received.Obj), "obj slot held %s", probe.FormatValue(r.Received.Obj))
	})

	t.Run("map receiver", func(t *T) {
		self := map[string]int{"self": 1}
		inv := t.InvokeInstance(self, 42)
		t.RequireCleanReport(inv)
		assert.True(t, probe.SameReference(self, inv.Returned))
	})

	t.Run("value receiver", func(t *T) {
		inv := t.InvokeInstance("receiver", 42)
		t.RequireCleanReport(inv)
		assert.Equal(t, "receiver", inv.Returned)
	})
}
