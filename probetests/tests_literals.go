package probetests

import (
	"github.com/argprobe/marshal-contract-tests/probe"

	"github.com/stretchr/testify/assert"
)

// The literals compared as formatted text, so a failure shows the same rendering the probe's
// diagnostic lines use.
var (
	expectedRegisterValues = []string{"1", "2", "3", "4", "5", "6"}
	expectedStackValues    = []string{"true", "7", "'8'", "9", "10", "11", "12", "13"}
)

func DoLiteralTests(t *T) {
	t.Run("instance probe", func(t *T) {
		for _, mask := range t.Config().Masks {
			r := t.RequireCleanReport(t.InvokeInstance(t.NewReceiver(), uint64(mask)))
			requireLiterals(t, r)
		}
	})

	t.Run("static probe", func(t *T) {
		for _, mask := range t.Config().Masks {
			r := t.RequireCleanReport(t.InvokeStatic(t.NewReceiver(), uint64(mask)))
			requireLiterals(t, r)
		}
	})

	t.Run("register and stack values match the canonical set", func(t *T) {
		self := t.NewReceiver()
		r := t.RequireCleanReport(t.InvokeInstance(self, 0xABCD))
		assert.Equal(t, probe.Canonical(self, 0xABCD), r.Received)
	})
}

func requireLiterals(t *T, r probe.Report) {
	a := r.Received
	assert.Equal(t, expectedRegisterValues, formatAll(
		a.Register1, a.Register2, a.Register3, a.Register4, a.Register5, a.Register6), "register-class slots")
	assert.Equal(t, expectedStackValues, formatAll(
		a.Stack1, a.Stack2, a.Stack3, a.Stack4, a.Stack5, a.Stack6, a.Stack7, a.Stack8), "stack-class slots")
}

func formatAll(values ...interface{}) []string {
	ret := make([]string, 0, len(values))
	for _, v := range values {
		ret = append(ret, probe.FormatValue(v))
	}
	return ret
}
