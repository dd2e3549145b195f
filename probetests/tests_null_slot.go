package probetests

import (
	"github.com/argprobe/marshal-contract-tests/probe"
)

func DoNullSlotTests(t *T) {
	t.Run("instance probe", func(t *T) {
		for _, mask := range t.Config().Masks {
			r := t.RequireReport(t.InvokeInstance(t.NewReceiver(), uint64(mask)))
			requireNullSlot(t, r, mask)
		}
	})

	t.Run("static probe", func(t *T) {
		for _, mask := range t.Config().Masks {
			r := t.RequireReport(t.InvokeStatic(t.NewReceiver(), uint64(mask)))
			requireNullSlot(t, r, mask)
		}
	})
}

func requireNullSlot(t *T, r probe.Report, mask Mask) {
	// Compared against an untyped nil on purpose: a typed nil pointer is a coerced value.
	if r.Received.ObjNull != nil {
		t.Errorf("mask %s: objNull arrived as %s (%T)", mask, probe.FormatValue(r.Received.ObjNull), r.Received.ObjNull)
	}
}
