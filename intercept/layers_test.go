package intercept

import (
	"testing"

	"github.com/argprobe/marshal-contract-tests/probe"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testMasks = []uint64{0, 1, 42, 0xABCD, 0x1020304050607080, 102030405060708090, 0xFFFFFFFFFFFFFFFF}

type invocation struct {
	returned interface{}
	report   probe.Report
}

func invokeBoth(t *testing.T, layer probe.Layer, self interface{}, mask uint64) (invocation, probe.Report) {
	t.Helper()
	var reports []probe.Report
	p := probe.New(layer, nil, func(r probe.Report) { reports = append(reports, r) })
	ret, err := p.InvokeInstance(self, mask)
	require.NoError(t, err)
	require.NoError(t, p.InvokeStatic(self, mask))
	require.Len(t, reports, 2)
	return invocation{returned: ret, report: reports[0]}, reports[1]
}

func TestFaithfulTargetsForwardEverySlot(t *testing.T) {
	for _, target := range Targets() {
		t.Run(target.Name, func(t *testing.T) {
			assert.False(t, target.Faulty)
			for _, mask := range testMasks {
				self := &testReceiver{Name: target.Name}
				instance, static := invokeBoth(t, target.Layer, self, mask)
				assert.Same(t, self, instance.returned)
				assert.True(t, instance.report.OK(), instance.report.String())
				assert.True(t, static.OK(), static.String())
				assert.Equal(t, probe.Canonical(self, mask), static.Received)
			}
		})
	}
}

func TestMutationsShiftAtLeastTwoSlots(t *testing.T) {
	mutations := Mutations()
	require.Len(t, mutations, 16)
	for _, target := range mutations {
		t.Run(target.Name, func(t *testing.T) {
			assert.True(t, target.Faulty)
			for _, mask := range testMasks {
				instance, static := invokeBoth(t, target.Layer, &testReceiver{}, mask)
				for _, r := range []probe.Report{instance.report, static} {
					assert.GreaterOrEqual(t, len(r.Mismatches), 2, "mask %#x %s:\n%s", mask, r.Variant, r)
					for _, m := range r.Mismatches {
						assert.Equal(t, probe.StackClass, m.Slot.Class(), "%s", m)
					}
				}
			}
		})
	}
}

func TestListenCallsBeforeAndAfterWithState(t *testing.T) {
	var events []string
	var afterState interface{}
	layer := Listen{
		Before: func(recv interface{}) interface{} {
			events = append(events, "before")
			return "state"
		},
		After: func(recv interface{}, state interface{}) {
			events = append(events, "after")
			afterState = state
		},
	}
	var reports []probe.Report
	p := probe.New(layer, nil, func(r probe.Report) {
		events = append(events, "probe")
		reports = append(reports, r)
	})

	self := &testReceiver{}
	ret, err := p.InvokeInstance(self, 42)
	require.NoError(t, err)
	assert.Same(t, self, ret)
	assert.Equal(t, []string{"before", "probe", "after"}, events)
	assert.Equal(t, "state", afterState)

	events = nil
	require.NoError(t, p.InvokeStatic(self, 42))
	assert.Equal(t, []string{"before", "probe", "after"}, events)
	for _, r := range reports {
		assert.True(t, r.OK())
	}
}

func TestListenReceiverIsNilForStaticProbe(t *testing.T) {
	var seen []interface{}
	layer := Listen{Before: func(recv interface{}) interface{} {
		seen = append(seen, recv)
		return nil
	}}
	p := probe.New(layer, nil, nil)
	self := &testReceiver{}
	_, err := p.InvokeInstance(self, 1)
	require.NoError(t, err)
	require.NoError(t, p.InvokeStatic(self, 1))
	require.Len(t, seen, 2)
	assert.Same(t, self, seen[0])
	assert.Nil(t, seen[1])
}

func TestChainOrder(t *testing.T) {
	var order []string
	mark := func(name string) Listen {
		return Listen{Before: func(interface{}) interface{} {
			order = append(order, name)
			return nil
		}}
	}
	p := probe.New(Chain{mark("outer"), mark("middle"), mark("inner")}, nil, nil)
	require.NoError(t, p.InvokeStatic(&testReceiver{}, 0))
	assert.Equal(t, []string{"outer", "middle", "inner"}, order)
}

func TestClobberSlotReportsOnlyThatSlot(t *testing.T) {
	_, static := invokeBoth(t, ClobberSlot(probe.SlotRegister3, 33), &testReceiver{}, 0)
	require.Len(t, static.Mismatches, 1)
	assert.Equal(t, probe.ArgumentMismatch{Slot: probe.SlotRegister3, Expected: int32(3), Actual: int32(33)}, static.Mismatches[0])
}

func TestDropStackSlotGolden(t *testing.T) {
	_, static := invokeBoth(t, DropStackSlot(probe.SlotStack4), "receiver", 42)
	g := goldie.New(t,
		goldie.WithFixtureDir("testdata"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, "drop_stack4_report", []byte(static.String()))
}

func TestLookup(t *testing.T) {
	target, ok := Lookup("trampoline")
	require.True(t, ok)
	assert.Equal(t, Trampoline{}, target.Layer)

	target, ok = Lookup("dup-stack8")
	require.True(t, ok)
	assert.True(t, target.Faulty)

	_, ok = Lookup("nonexistent")
	assert.False(t, ok)

	names := Names()
	assert.Contains(t, names, "direct")
	assert.Contains(t, names, "drop-stack1")
	assert.Len(t, names, len(Targets())+len(Mutations()))
}
