package intercept

import (
	"reflect"

	"github.com/argprobe/marshal-contract-tests/probe"
)

// Passthrough forwards every parameter to the next function unchanged. It adds one call frame
// with the full 18-slot signature.
type Passthrough struct{}

func (Passthrough) Instance(next probe.InstanceFunc) probe.InstanceFunc {
	return func(
		recv interface{},
		register1 int8, register2 int16, register3 int32, register4 int64, register5 float32, register6 float64,
		stack1 bool, stack2 int8, stack3 probe.Char, stack4 int16, stack5 int32, stack6 int64, stack7 float32, stack8 float64,
		objNull interface{}, maskA uint64, obj interface{}, maskB uint64,
	) interface{} {
		return next(recv,
			register1, register2, register3, register4, register5, register6,
			stack1, stack2, stack3, stack4, stack5, stack6, stack7, stack8,
			objNull, maskA, obj, maskB)
	}
}

func (Passthrough) Static(next probe.StaticFunc) probe.StaticFunc {
	return func(
		register1 int8, register2 int16, register3 int32, register4 int64, register5 float32, register6 float64,
		stack1 bool, stack2 int8, stack3 probe.Char, stack4 int16, stack5 int32, stack6 int64, stack7 float32, stack8 float64,
		objNull interface{}, maskA uint64, obj interface{}, maskB uint64,
	) {
		next(register1, register2, register3, register4, register5, register6,
			stack1, stack2, stack3, stack4, stack5, stack6, stack7, stack8,
			objNull, maskA, obj, maskB)
	}
}

// Listen calls Before ahead of the probe and After once it has returned. Whatever Before
// returns is handed to After, so a listener can carry state such as a start time across the
// call. The receiver passed to both is nil for the static probe. Either function may be nil.
type Listen struct {
	Before func(recv interface{}) interface{}
	After  func(recv interface{}, state interface{})
}

func (l Listen) before(recv interface{}) interface{} {
	if l.Before == nil {
		return nil
	}
	return l.Before(recv)
}

func (l Listen) after(recv interface{}, state interface{}) {
	if l.After != nil {
		l.After(recv, state)
	}
}

func (l Listen) Instance(next probe.InstanceFunc) probe.InstanceFunc {
	return probe.InstanceFuncOf(func(recv interface{}, a probe.Args) interface{} {
		state := l.before(recv)
		ret := next.CallWith(recv, a)
		l.after(recv, state)
		return ret
	})
}

func (l Listen) Static(next probe.StaticFunc) probe.StaticFunc {
	return probe.StaticFuncOf(func(a probe.Args) {
		state := l.before(nil)
		next.CallWith(a)
		l.after(nil, state)
	})
}

// Trampoline spills the arguments into a Frame, lets Rewrite edit the frame if it is set, and
// reloads the arguments from the frame before calling the next function. With a nil Rewrite it
// is a no-op layer that exercises the word encoding of every slot.
type Trampoline struct {
	Rewrite func(f *Frame)
}

func (t Trampoline) forward(a probe.Args) probe.Args {
	f := Encode(a)
	if t.Rewrite != nil {
		t.Rewrite(&f)
	}
	return f.Decode()
}

func (t Trampoline) Instance(next probe.InstanceFunc) probe.InstanceFunc {
	return probe.InstanceFuncOf(func(recv interface{}, a probe.Args) interface{} {
		return next.CallWith(recv, t.forward(a))
	})
}

func (t Trampoline) Static(next probe.StaticFunc) probe.StaticFunc {
	return probe.StaticFuncOf(func(a probe.Args) {
		next.CallWith(t.forward(a))
	})
}

// Reflective forwards through reflect.MakeFunc and reflect.Value.Call, so every argument is
// boxed into a reflect.Value and unboxed again on the way to the probe.
type Reflective struct{}

func (Reflective) Instance(next probe.InstanceFunc) probe.InstanceFunc {
	return reflectForward(next).(probe.InstanceFunc)
}

func (Reflective) Static(next probe.StaticFunc) probe.StaticFunc {
	return reflectForward(next).(probe.StaticFunc)
}

func reflectForward(next interface{}) interface{} {
	target := reflect.ValueOf(next)
	return reflect.MakeFunc(target.Type(), func(args []reflect.Value) []reflect.Value {
		return target.Call(args)
	}).Interface()
}

// DropStackSlot returns a layer that loses the word in slot s, so every later slot receives
// its neighbour's value.
func DropStackSlot(s probe.SlotID) Trampoline {
	return Trampoline{Rewrite: func(f *Frame) { f.Drop(s) }}
}

// DuplicateStackSlot returns a layer that passes the word in slot s twice, so every later slot
// receives its predecessor's value.
func DuplicateStackSlot(s probe.SlotID) Trampoline {
	return Trampoline{Rewrite: func(f *Frame) { f.Duplicate(s) }}
}

// ClobberSlot returns a layer that overwrites a single slot with word.
func ClobberSlot(s probe.SlotID, word uint64) Trampoline {
	return Trampoline{Rewrite: func(f *Frame) { f.Clobber(s, word) }}
}

// Chain applies layers so that the first one is outermost.
type Chain []probe.Layer

func (c Chain) Instance(next probe.InstanceFunc) probe.InstanceFunc {
	for i := len(c) - 1; i >= 0; i-- {
		next = c[i].Instance(next)
	}
	return next
}

func (c Chain) Static(next probe.StaticFunc) probe.StaticFunc {
	for i := len(c) - 1; i >= 0; i-- {
		next = c[i].Static(next)
	}
	return next
}
