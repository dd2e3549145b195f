package probe

import "fmt"

// Char is a 16-bit character, the same width as a UTF-16 code unit.
type Char uint16

func (c Char) String() string {
	return fmt.Sprintf("%q", rune(c))
}

// Args is the probe argument set. Field order is parameter order.
type Args struct {
	Register1 int8
	Register2 int16
	Register3 int32
	Register4 int64
	Register5 float32
	Register6 float64

	Stack1 bool
	Stack2 int8
	Stack3 Char
	Stack4 int16
	Stack5 int32
	Stack6 int64
	Stack7 float32
	Stack8 float64

	ObjNull interface{}
	MaskA   uint64
	Obj     interface{}
	MaskB   uint64
}

// The fixed literals carried by the scalar slots.
const (
	ExpectedRegister1 int8    = 1
	ExpectedRegister2 int16   = 2
	ExpectedRegister3 int32   = 3
	ExpectedRegister4 int64   = 4
	ExpectedRegister5 float32 = 5.0
	ExpectedRegister6 float64 = 6.0

	ExpectedStack1 bool    = true
	ExpectedStack2 int8    = 7
	ExpectedStack3 Char    = '8'
	ExpectedStack4 int16   = 9
	ExpectedStack5 int32   = 10
	ExpectedStack6 int64   = 11
	ExpectedStack7 float32 = 12.0
	ExpectedStack8 float64 = 13.0
)

// Canonical builds a fresh argument set for one invocation, with self in the obj slot and mask
// in both mask slots.
func Canonical(self interface{}, mask uint64) Args {
	return Args{
		Register1: ExpectedRegister1,
		Register2: ExpectedRegister2,
		Register3: ExpectedRegister3,
		Register4: ExpectedRegister4,
		Register5: ExpectedRegister5,
		Register6: ExpectedRegister6,
		Stack1:    ExpectedStack1,
		Stack2:    ExpectedStack2,
		Stack3:    ExpectedStack3,
		Stack4:    ExpectedStack4,
		Stack5:    ExpectedStack5,
		Stack6:    ExpectedStack6,
		Stack7:    ExpectedStack7,
		Stack8:    ExpectedStack8,
		ObjNull:   nil,
		MaskA:     mask,
		Obj:       self,
		MaskB:     mask,
	}
}

// Value returns the value held in the given slot, boxed. It returns nil for an invalid slot.
func (a Args) Value(slot SlotID) interface{} {
	switch slot {
	case SlotRegister1:
		return a.Register1
	case SlotRegister2:
		return a.Register2
	case SlotRegister3:
		return a.Register3
	case SlotRegister4:
		return a.Register4
	case SlotRegister5:
		return a.Register5
	case SlotRegister6:
		return a.Register6
	case SlotStack1:
		return a.Stack1
	case SlotStack2:
		return a.Stack2
	case SlotStack3:
		return a.Stack3
	case SlotStack4:
		return a.Stack4
	case SlotStack5:
		return a.Stack5
	case SlotStack6:
		return a.Stack6
	case SlotStack7:
		return a.Stack7
	case SlotStack8:
		return a.Stack8
	case SlotObjNull:
		return a.ObjNull
	case SlotMaskA:
		return a.MaskA
	case SlotObj:
		return a.Obj
	case SlotMaskB:
		return a.MaskB
	}
	return nil
}

// InstanceFunc is the positional signature of the instance-bound probe. The receiver is the
// explicit first parameter; the probe returns it.
type InstanceFunc func(
	recv interface{},
	register1 int8, register2 int16, register3 int32, register4 int64, register5 float32, register6 float64,
	stack1 bool, stack2 int8, stack3 Char, stack4 int16, stack5 int32, stack6 int64, stack7 float32, stack8 float64,
	objNull interface{}, maskA uint64, obj interface{}, maskB uint64,
) interface{}

// StaticFunc is the positional signature of the probe that has no receiver.
type StaticFunc func(
	register1 int8, register2 int16, register3 int32, register4 int64, register5 float32, register6 float64,
	stack1 bool, stack2 int8, stack3 Char, stack4 int16, stack5 int32, stack6 int64, stack7 float32, stack8 float64,
	objNull interface{}, maskA uint64, obj interface{}, maskB uint64,
)

// CallWith spreads a into the positional parameters of f.
func (f InstanceFunc) CallWith(recv interface{}, a Args) interface{} {
	return f(recv,
		a.Register1, a.Register2, a.Register3, a.Register4, a.Register5, a.Register6,
		a.Stack1, a.Stack2, a.Stack3, a.Stack4, a.Stack5, a.Stack6, a.Stack7, a.Stack8,
		a.ObjNull, a.MaskA, a.Obj, a.MaskB)
}

// CallWith spreads a into the positional parameters of f.
func (f StaticFunc) CallWith(a Args) {
	f(a.Register1, a.Register2, a.Register3, a.Register4, a.Register5, a.Register6,
		a.Stack1, a.Stack2, a.Stack3, a.Stack4, a.Stack5, a.Stack6, a.Stack7, a.Stack8,
		a.ObjNull, a.MaskA, a.Obj, a.MaskB)
}

// InstanceFuncOf turns a function over Args into an InstanceFunc.
func InstanceFuncOf(fn func(recv interface{}, a Args) interface{}) InstanceFunc {
	return func(
		recv interface{},
		register1 int8, register2 int16, register3 int32, register4 int64, register5 float32, register6 float64,
		stack1 bool, stack2 int8, stack3 Char, stack4 int16, stack5 int32, stack6 int64, stack7 float32, stack8 float64,
		objNull interface{}, maskA uint64, obj interface{}, maskB uint64,
	) interface{} {
		return fn(recv, Args{
			register1, register2, register3, register4, register5, register6,
			stack1, stack2, stack3, stack4, stack5, stack6, stack7, stack8,
			objNull, maskA, obj, maskB,
		})
	}
}

// StaticFuncOf turns a function over Args into a StaticFunc.
func StaticFuncOf(fn func(a Args)) StaticFunc {
	return func(
		register1 int8, register2 int16, register3 int32, register4 int64, register5 float32, register6 float64,
		stack1 bool, stack2 int8, stack3 Char, stack4 int16, stack5 int32, stack6 int64, stack7 float32, stack8 float64,
		objNull interface{}, maskA uint64, obj interface{}, maskB uint64,
	) {
		fn(Args{
			register1, register2, register3, register4, register5, register6,
			stack1, stack2, stack3, stack4, stack5, stack6, stack7, stack8,
			objNull, maskA, obj, maskB,
		})
	}
}
