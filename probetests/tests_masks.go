package probetests

import (
	"github.com/argprobe/marshal-contract-tests/probe"

	"github.com/stretchr/testify/assert"
)

func DoMaskTests(t *T) {
	for _, mask := range t.Config().Masks {
		mask := mask
		t.Run(mask.String(), func(t *T) {
			t.Run("instance", func(t *T) {
				r := t.RequireReport(t.InvokeInstance(t.NewReceiver(), uint64(mask)))
				requireMasksIntact(t, r, mask)
			})
			t.Run("static", func(t *T) {
				r := t.RequireReport(t.InvokeStatic(t.NewReceiver(), uint64(mask)))
				requireMasksIntact(t, r, mask)
			})
		})
	}
}

func requireMasksIntact(t *T, r probe.Report, mask Mask) {
	if m, found := r.Mismatch(probe.SlotMaskB); found {
		t.Errorf("%s", m)
	}
	assert.Equal(t, probe.FormatValue(uint64(mask)), probe.FormatValue(r.Received.MaskA), "maskA")
	assert.Equal(t, probe.FormatValue(uint64(mask)), probe.FormatValue(r.Received.MaskB), "maskB")
}
