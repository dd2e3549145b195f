package probetests

import (
	"errors"
	"fmt"

	"github.com/argprobe/marshal-contract-tests/intercept"
	"github.com/argprobe/marshal-contract-tests/probe"

	"github.com/stretchr/testify/assert"
)

// DoSensitivityTests wraps the probe bodies in a layer that shifts the stack-class slots, inside
// the layer under test, and checks that the verifier notices.
func DoSensitivityTests(t *T) {
	for s := probe.SlotStack1; s <= probe.SlotStack8; s++ {
		slot := s
		t.Run(fmt.Sprintf("drop %s", slot), func(t *T) {
			requireShiftDetected(t, intercept.DropStackSlot(slot), slot)
		})
		t.Run(fmt.Sprintf("duplicate %s", slot), func(t *T) {
			requireShiftDetected(t, intercept.DuplicateStackSlot(slot), slot)
		})
	}

	t.Run("single clobbered mask is reported on maskB", func(t *T) {
		layer := t.ComposeLayer(intercept.ClobberSlot(probe.SlotMaskB, 0xDEADBEEF))
		r := t.RequireReport(t.InvokeStaticThrough(layer, t.NewReceiver(), 42))
		if assert.Len(t, r.Mismatches, 1) {
			m := r.Mismatches[0]
			assert.Equal(t, probe.SlotMaskB, m.Slot)
			assert.Equal(t, uint64(42), m.Expected)
			assert.Equal(t, uint64(0xDEADBEEF), m.Actual)
		}
	})
}

func requireShiftDetected(t *T, mutation probe.Layer, shifted probe.SlotID) {
	layer := t.ComposeLayer(mutation)
	for _, mask := range t.Config().Masks {
		instance := t.RequireReport(t.InvokeInstanceThrough(layer, t.NewReceiver(), uint64(mask)))
		requireDownstreamMismatches(t, instance, shifted, mask)
		static := t.RequireReport(t.InvokeStaticThrough(layer, t.NewReceiver(), uint64(mask)))
		requireDownstreamMismatches(t, static, shifted, mask)
	}
}

func requireDownstreamMismatches(t *T, r probe.Report, shifted probe.SlotID, mask Mask) {
	if len(r.Mismatches) < 2 {
		t.Errorf("%s probe, mask %s: shifting %s produced %d mismatch(es), expected at least 2",
			r.Variant, mask, shifted, len(r.Mismatches))
	}
	for _, m := range r.Mismatches {
		if m.Slot < shifted {
			t.Errorf("%s probe, mask %s: mismatch reported upstream of %s: %s", r.Variant, mask, shifted, m)
		}
		var asMismatch probe.ArgumentMismatch
		assert.True(t, errors.As(error(m), &asMismatch), "finding is not an ArgumentMismatch")
	}
}
