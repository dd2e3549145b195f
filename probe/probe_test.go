package probe

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type lineSink struct {
	lines []string
}

func (s *lineSink) Printf(format string, args ...interface{}) {
	s.lines = append(s.lines, fmt.Sprintf(format, args...))
}

func collectReports() (*[]Report, func(Report)) {
	var reports []Report
	return &reports, func(r Report) { reports = append(reports, r) }
}

func TestInvokeInstanceReturnsReceiver(t *testing.T) {
	reports, handler := collectReports()
	p := New(nil, nil, handler)
	for _, mask := range testMasks {
		self := &testReceiver{Name: fmt.Sprint(mask)}
		ret, err := p.InvokeInstance(self, mask)
		require.NoError(t, err)
		assert.Same(t, self, ret)
	}
	require.Len(t, *reports, len(testMasks))
	for _, r := range *reports {
		assert.Equal(t, InstanceVariant, r.Variant)
		assert.True(t, r.OK(), r.String())
	}
}

func TestInvokeStaticReportsCleanForEveryMask(t *testing.T) {
	reports, handler := collectReports()
	p := New(nil, nil, handler)
	for _, mask := range testMasks {
		require.NoError(t, p.InvokeStatic(&testReceiver{}, mask))
	}
	require.Len(t, *reports, len(testMasks))
	for i, r := range *reports {
		assert.Equal(t, StaticVariant, r.Variant)
		assert.True(t, r.OK(), r.String())
		assert.Equal(t, testMasks[i], r.Received.MaskA)
		assert.Equal(t, testMasks[i], r.Received.MaskB)
	}
}

func TestInvokeRejectsNilSelf(t *testing.T) {
	reports, handler := collectReports()
	p := New(nil, nil, handler)

	var typedNil *testReceiver
	for _, self := range []interface{}{nil, typedNil, map[string]int(nil), []int(nil)} {
		ret, err := p.InvokeInstance(self, 1)
		assert.True(t, errors.Is(err, ErrInvalidProbeInput), "%T: %v", self, err)
		assert.Nil(t, ret)

		err = p.InvokeStatic(self, 1)
		assert.True(t, errors.Is(err, ErrInvalidProbeInput), "%T: %v", self, err)
	}
	assert.Empty(t, *reports)
}

func TestSinkReceivesReportLines(t *testing.T) {
	sink := &lineSink{}
	p := New(nil, sink, nil)
	_, err := p.InvokeInstance("receiver", 0xABCD)
	require.NoError(t, err)

	require.Len(t, sink.lines, 2)
	assert.True(t, strings.HasPrefix(sink.lines[0], "argumentCheck: received registers [1 2 3 4 5 6]"), sink.lines[0])
	assert.Equal(t, "argumentCheck: all 18 arguments arrived intact", sink.lines[1])
}

func TestStaticProbeTwiceGivesIdenticalReports(t *testing.T) {
	self := &testReceiver{Name: "self"}

	first, second := &lineSink{}, &lineSink{}
	var firstReport, secondReport Report
	require.NoError(t, New(nil, first, func(r Report) { firstReport = r }).InvokeStatic(self, 42))
	require.NoError(t, New(nil, second, func(r Report) { secondReport = r }).InvokeStatic(self, 42))

	if diff := cmp.Diff(firstReport, secondReport); diff != "" {
		t.Errorf("reports differ (-first +second):\n%s", diff)
	}
	assert.Equal(t, first.lines, second.lines)
}

// swapMasks is a layer that exchanges the two mask slots.
type swapMasks struct{}

func (swapMasks) Instance(next InstanceFunc) InstanceFunc {
	return InstanceFuncOf(func(recv interface{}, a Args) interface{} {
		a.MaskA, a.MaskB = a.MaskB+1, a.MaskA
		return next.CallWith(recv, a)
	})
}

func (swapMasks) Static(next StaticFunc) StaticFunc {
	return StaticFuncOf(func(a Args) {
		a.MaskA, a.MaskB = a.MaskB+1, a.MaskA
		next.CallWith(a)
	})
}

func TestLayerWrapsBothProbes(t *testing.T) {
	reports, handler := collectReports()
	p := New(swapMasks{}, nil, handler)

	_, err := p.InvokeInstance(&testReceiver{}, 10)
	require.NoError(t, err)
	require.NoError(t, p.InvokeStatic(&testReceiver{}, 10))

	require.Len(t, *reports, 2)
	for _, r := range *reports {
		require.Len(t, r.Mismatches, 1)
		assert.Equal(t, ArgumentMismatch{Slot: SlotMaskB, Expected: uint64(11), Actual: uint64(10)}, r.Mismatches[0])
	}
}

func TestSameReference(t *testing.T) {
	a, b := &testReceiver{}, &testReceiver{}
	m := map[int]int{}
	s := []int{1, 2}

	assert.True(t, SameReference(a, a))
	assert.False(t, SameReference(a, b))
	assert.True(t, SameReference(m, m))
	assert.True(t, SameReference(s, s))
	assert.False(t, SameReference(s, s[:1]))
	assert.True(t, SameReference("x", "x"))
	assert.False(t, SameReference("x", 1))
	assert.True(t, SameReference(nil, nil))
	assert.False(t, SameReference(a, nil))
}

func TestSlotIDs(t *testing.T) {
	slots := AllSlots()
	require.Len(t, slots, SlotCount)
	assert.Equal(t, 18, SlotCount)

	for i, s := range slots {
		assert.Equal(t, i, s.Index())
		assert.True(t, s.Valid())
	}
	assert.Equal(t, "register1", SlotRegister1.String())
	assert.Equal(t, "stack8", SlotStack8.String())
	assert.Equal(t, "objNull", SlotObjNull.String())
	assert.Equal(t, "maskB", SlotMaskB.String())
	assert.Equal(t, "slot(0)", SlotID(0).String())

	assert.Equal(t, RegisterClass, SlotRegister6.Class())
	assert.Equal(t, StackClass, SlotStack1.Class())
	assert.Equal(t, StackClass, SlotMaskB.Class())
}
