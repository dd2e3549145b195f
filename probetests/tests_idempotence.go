package probetests

import (
	"github.com/stretchr/testify/assert"
)

func DoIdempotenceTests(t *T) {
	t.Run("static probe twice in sequence", func(t *T) {
		self := t.NewReceiver()
		first := t.InvokeStatic(self, 42)
		second := t.InvokeStatic(self, 42)
		t.RequireCleanReport(first)
		t.RequireCleanReport(second)
		assert.Equal(t, first.Lines, second.Lines, "diagnostic output differed between identical calls")
		assert.Equal(t, t.RequireReport(first).String(), t.RequireReport(second).String())
	})

	t.Run("instance probe twice in sequence", func(t *T) {
		self := t.NewReceiver()
		first := t.InvokeInstance(self, 42)
		second := t.InvokeInstance(self, 42)
		t.RequireCleanReport(first)
		t.RequireCleanReport(second)
		assert.Equal(t, first.Lines, second.Lines, "diagnostic output differed between identical calls")
	})

	t.Run("a different mask does not leak into the next call", func(t *T) {
		self := t.NewReceiver()
		t.InvokeStatic(self, 0xFFFFFFFFFFFFFFFF)
		r := t.RequireCleanReport(t.InvokeStatic(self, 42))
		assert.Equal(t, uint64(42), r.Received.MaskA)
		assert.Equal(t, uint64(42), r.Received.MaskB)
	})
}
