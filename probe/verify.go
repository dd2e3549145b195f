package probe

import (
	"errors"
	"fmt"
	"math"
	"reflect"
	"strconv"
	"strings"

	"gopkg.in/launchdarkly/go-sdk-common.v2/ldvalue"
)

// Variant distinguishes the instance-bound probe from the static one.
type Variant int

const (
	InstanceVariant Variant = iota
	StaticVariant
)

func (v Variant) String() string {
	if v == InstanceVariant {
		return "instance"
	}
	return "static"
}

// ProbeName is the name used for the probe body in diagnostic lines.
func (v Variant) ProbeName() string {
	if v == InstanceVariant {
		return "argumentCheck"
	}
	return "argumentCheckStatic"
}

// Placeholder stands in for an expected value that is a condition rather than a literal.
type Placeholder string

// NonNilReference is the expected value of the obj slot in the instance variant.
const NonNilReference Placeholder = "<non-nil reference>"

// ArgumentMismatch is a finding for one slot whose value did not arrive as sent.
type ArgumentMismatch struct {
	Slot     SlotID
	Expected interface{}
	Actual   interface{}
}

func (m ArgumentMismatch) Error() string {
	return fmt.Sprintf("argument mismatch in %s: expected %s, got %s",
		m.Slot, FormatValue(m.Expected), FormatValue(m.Actual))
}

// Report is the result of verifying one probe invocation.
type Report struct {
	Variant    Variant
	Received   Args
	Mismatches []ArgumentMismatch
}

// Verify checks every slot of a against the values the invoker is known to send. All checks
// run; a mismatch in one slot never hides another.
func Verify(variant Variant, a Args) Report {
	r := Report{Variant: variant, Received: a}

	r.check(SlotRegister1, a.Register1 == ExpectedRegister1, ExpectedRegister1, a.Register1)
	r.check(SlotRegister2, a.Register2 == ExpectedRegister2, ExpectedRegister2, a.Register2)
	r.check(SlotRegister3, a.Register3 == ExpectedRegister3, ExpectedRegister3, a.Register3)
	r.check(SlotRegister4, a.Register4 == ExpectedRegister4, ExpectedRegister4, a.Register4)
	r.check(SlotRegister5, sameFloat32(a.Register5, ExpectedRegister5), ExpectedRegister5, a.Register5)
	r.check(SlotRegister6, sameFloat64(a.Register6, ExpectedRegister6), ExpectedRegister6, a.Register6)

	r.check(SlotStack1, a.Stack1 == ExpectedStack1, ExpectedStack1, a.Stack1)
	r.check(SlotStack2, a.Stack2 == ExpectedStack2, ExpectedStack2, a.Stack2)
	r.check(SlotStack3, a.Stack3 == ExpectedStack3, ExpectedStack3, a.Stack3)
	r.check(SlotStack4, a.Stack4 == ExpectedStack4, ExpectedStack4, a.Stack4)
	r.check(SlotStack5, a.Stack5 == ExpectedStack5, ExpectedStack5, a.Stack5)
	r.check(SlotStack6, a.Stack6 == ExpectedStack6, ExpectedStack6, a.Stack6)
	r.check(SlotStack7, sameFloat32(a.Stack7, ExpectedStack7), ExpectedStack7, a.Stack7)
	r.check(SlotStack8, sameFloat64(a.Stack8, ExpectedStack8), ExpectedStack8, a.Stack8)

	// A typed nil in an interface is a coerced value, not a null.
	r.check(SlotObjNull, a.ObjNull == nil, nil, a.ObjNull)

	// maskA is the reference value: maskB is the slot that travelled furthest.
	r.check(SlotMaskB, a.MaskA == a.MaskB, a.MaskA, a.MaskB)

	if variant == InstanceVariant {
		r.check(SlotObj, !IsNilReference(a.Obj), NonNilReference, a.Obj)
	}
	return r
}

func (r *Report) check(slot SlotID, ok bool, expected, actual interface{}) {
	if !ok {
		r.Mismatches = append(r.Mismatches, ArgumentMismatch{Slot: slot, Expected: expected, Actual: actual})
	}
}

func sameFloat32(a, b float32) bool { return math.Float32bits(a) == math.Float32bits(b) }

func sameFloat64(a, b float64) bool { return math.Float64bits(a) == math.Float64bits(b) }

// OK is true if no mismatches were found.
func (r Report) OK() bool {
	return len(r.Mismatches) == 0
}

// Mismatch returns the finding for the given slot, if there is one.
func (r Report) Mismatch(slot SlotID) (ArgumentMismatch, bool) {
	for _, m := range r.Mismatches {
		if m.Slot == slot {
			return m, true
		}
	}
	return ArgumentMismatch{}, false
}

// Err returns nil for a clean report, or all of the mismatches joined into one error.
func (r Report) Err() error {
	if r.OK() {
		return nil
	}
	errs := make([]error, 0, len(r.Mismatches))
	for _, m := range r.Mismatches {
		errs = append(errs, m)
	}
	return errors.Join(errs...)
}

// Lines renders the report as the text lines that are sent to a Sink.
func (r Report) Lines() []string {
	a := r.Received
	name := r.Variant.ProbeName()
	lines := []string{
		fmt.Sprintf("%s: received registers [%s] stack [%s] objNull=%s maskA=%s obj=%s maskB=%s",
			name,
			joinValues(a.Register1, a.Register2, a.Register3, a.Register4, a.Register5, a.Register6),
			joinValues(a.Stack1, a.Stack2, a.Stack3, a.Stack4, a.Stack5, a.Stack6, a.Stack7, a.Stack8),
			FormatValue(a.ObjNull), FormatValue(a.MaskA), FormatValue(a.Obj), FormatValue(a.MaskB)),
	}
	if r.OK() {
		return append(lines, fmt.Sprintf("%s: all %d arguments arrived intact", name, SlotCount))
	}
	lines = append(lines, fmt.Sprintf("%s: %d argument mismatch(es)", name, len(r.Mismatches)))
	for _, m := range r.Mismatches {
		lines = append(lines, fmt.Sprintf("  %s (%s slot %d): expected %s, got %s",
			m.Slot, m.Slot.Class(), int(m.Slot), FormatValue(m.Expected), FormatValue(m.Actual)))
	}
	return lines
}

func (r Report) String() string {
	return strings.Join(r.Lines(), "\n")
}

// Value returns a JSON-friendly representation of the report.
func (r Report) Value() ldvalue.Value {
	received := ldvalue.ObjectBuild()
	for _, s := range AllSlots() {
		received.Set(s.String(), slotValue(r.Received.Value(s)))
	}
	mismatches := ldvalue.ArrayBuild()
	for _, m := range r.Mismatches {
		mismatches.Add(ldvalue.ObjectBuild().
			Set("slot", ldvalue.String(m.Slot.String())).
			Set("position", ldvalue.Int(int(m.Slot))).
			Set("class", ldvalue.String(m.Slot.Class().String())).
			Set("expected", slotValue(m.Expected)).
			Set("actual", slotValue(m.Actual)).
			Build())
	}
	return ldvalue.ObjectBuild().
		Set("probe", ldvalue.String(r.Variant.ProbeName())).
		Set("variant", ldvalue.String(r.Variant.String())).
		Set("ok", ldvalue.Bool(r.OK())).
		Set("received", received.Build()).
		Set("mismatches", mismatches.Build()).
		Build()
}

const maxExactJSONInt = 1 << 53

func slotValue(v interface{}) ldvalue.Value {
	switch x := v.(type) {
	case nil:
		return ldvalue.Null()
	case bool:
		return ldvalue.Bool(x)
	case int8:
		return ldvalue.Int(int(x))
	case int16:
		return ldvalue.Int(int(x))
	case int32:
		return ldvalue.Int(int(x))
	case int64:
		if x > -maxExactJSONInt && x < maxExactJSONInt && int64(int(x)) == x {
			return ldvalue.Int(int(x))
		}
		return ldvalue.String(strconv.FormatInt(x, 10))
	case float32:
		return ldvalue.Float64(float64(x))
	case float64:
		return ldvalue.Float64(x)
	case Char:
		return ldvalue.String(string(rune(x)))
	}
	return ldvalue.String(FormatValue(v))
}

// FormatValue renders a slot value for diagnostics. Masks are shown as fixed-width hex so that
// corrupted bits line up visually; pointers are shown by type and address.
func FormatValue(v interface{}) string {
	switch x := v.(type) {
	case nil:
		return "null"
	case uint64:
		return fmt.Sprintf("0x%016x", x)
	case float32:
		return strconv.FormatFloat(float64(x), 'g', -1, 32)
	case float64:
		return strconv.FormatFloat(x, 'g', -1, 64)
	case Char:
		return x.String()
	case Placeholder:
		return string(x)
	}
	if IsNilReference(v) {
		return fmt.Sprintf("(%T)(nil)", v)
	}
	if s, ok := v.(fmt.Stringer); ok {
		return safeString(s)
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Ptr, reflect.UnsafePointer, reflect.Map, reflect.Chan, reflect.Func, reflect.Slice:
		return fmt.Sprintf("(%T)(%#x)", v, rv.Pointer())
	}
	return fmt.Sprintf("%v", v)
}

// safeString calls s.String, rendering a panic the way fmt does. A corrupted slot can hold a
// value whose String method does not expect it.
func safeString(s fmt.Stringer) (ret string) {
	defer func() {
		if r := recover(); r != nil {
			ret = fmt.Sprintf("%%!v(PANIC=String method: %v)", r)
		}
	}()
	return s.String()
}

func joinValues(values ...interface{}) string {
	ss := make([]string, 0, len(values))
	for _, v := range values {
		ss = append(ss, FormatValue(v))
	}
	return strings.Join(ss, " ")
}
