package intercept

import (
	"fmt"
	"math"

	"github.com/argprobe/marshal-contract-tests/probe"
)

// Frame is the argument set spilled into machine words, the way a trampoline sees it: one
// 64-bit word per slot, with references replaced by 1-based indexes into Refs. Word 0 in a
// reference slot is null.
type Frame struct {
	Words [probe.SlotCount]uint64
	Refs  []interface{}
}

// Dangling is what a reference slot decodes to when its word is not a valid index into the
// reference table.
type Dangling uint64

func (d Dangling) String() string {
	return fmt.Sprintf("dangling(%#x)", uint64(d))
}

// Encode spills a into a Frame. Signed integers are sign-extended, floats keep their IEEE bits,
// booleans become 0 or 1 and characters are zero-extended.
func Encode(a probe.Args) Frame {
	var f Frame
	f.Words[probe.SlotRegister1.Index()] = uint64(int64(a.Register1))
	f.Words[probe.SlotRegister2.Index()] = uint64(int64(a.Register2))
	f.Words[probe.SlotRegister3.Index()] = uint64(int64(a.Register3))
	f.Words[probe.SlotRegister4.Index()] = uint64(a.Register4)
	f.Words[probe.SlotRegister5.Index()] = uint64(math.Float32bits(a.Register5))
	f.Words[probe.SlotRegister6.Index()] = math.Float64bits(a.Register6)
	f.Words[probe.SlotStack1.Index()] = boolWord(a.Stack1)
	f.Words[probe.SlotStack2.Index()] = uint64(int64(a.Stack2))
	f.Words[probe.SlotStack3.Index()] = uint64(a.Stack3)
	f.Words[probe.SlotStack4.Index()] = uint64(int64(a.Stack4))
	f.Words[probe.SlotStack5.Index()] = uint64(int64(a.Stack5))
	f.Words[probe.SlotStack6.Index()] = uint64(a.Stack6)
	f.Words[probe.SlotStack7.Index()] = uint64(math.Float32bits(a.Stack7))
	f.Words[probe.SlotStack8.Index()] = math.Float64bits(a.Stack8)
	f.Words[probe.SlotObjNull.Index()] = f.ref(a.ObjNull)
	f.Words[probe.SlotMaskA.Index()] = a.MaskA
	f.Words[probe.SlotObj.Index()] = f.ref(a.Obj)
	f.Words[probe.SlotMaskB.Index()] = a.MaskB
	return f
}

func (f *Frame) ref(v interface{}) uint64 {
	if v == nil {
		return 0
	}
	f.Refs = append(f.Refs, v)
	return uint64(len(f.Refs))
}

func boolWord(b bool) uint64 {
	if b {
		return 1
	}
	return 0
}

// Decode reads the argument set back out of the frame, reinterpreting each word as the type of
// the slot it occupies. Only the low byte of a boolean word is significant.
func (f Frame) Decode() probe.Args {
	w := f.Words
	return probe.Args{
		Register1: int8(w[probe.SlotRegister1.Index()]),
		Register2: int16(w[probe.SlotRegister2.Index()]),
		Register3: int32(w[probe.SlotRegister3.Index()]),
		Register4: int64(w[probe.SlotRegister4.Index()]),
		Register5: math.Float32frombits(uint32(w[probe.SlotRegister5.Index()])),
		Register6: math.Float64frombits(w[probe.SlotRegister6.Index()]),
		Stack1:    w[probe.SlotStack1.Index()]&0xff != 0,
		Stack2:    int8(w[probe.SlotStack2.Index()]),
		Stack3:    probe.Char(w[probe.SlotStack3.Index()]),
		Stack4:    int16(w[probe.SlotStack4.Index()]),
		Stack5:    int32(w[probe.SlotStack5.Index()]),
		Stack6:    int64(w[probe.SlotStack6.Index()]),
		Stack7:    math.Float32frombits(uint32(w[probe.SlotStack7.Index()])),
		Stack8:    math.Float64frombits(w[probe.SlotStack8.Index()]),
		ObjNull:   f.deref(w[probe.SlotObjNull.Index()]),
		MaskA:     w[probe.SlotMaskA.Index()],
		Obj:       f.deref(w[probe.SlotObj.Index()]),
		MaskB:     w[probe.SlotMaskB.Index()],
	}
}

func (f Frame) deref(w uint64) interface{} {
	if w == 0 {
		return nil
	}
	if w > uint64(len(f.Refs)) {
		return Dangling(w)
	}
	return f.Refs[w-1]
}

// Drop removes the word in slot s and shifts every later word down by one, leaving a zero word
// at the end.
func (f *Frame) Drop(s probe.SlotID) {
	i := s.Index()
	copy(f.Words[i:], f.Words[i+1:])
	f.Words[len(f.Words)-1] = 0
}

// Duplicate repeats the word in slot s and shifts every later word up by one, losing the last.
func (f *Frame) Duplicate(s probe.SlotID) {
	i := s.Index()
	copy(f.Words[i+1:], f.Words[i:len(f.Words)-1])
}

// Clobber overwrites the word in slot s.
func (f *Frame) Clobber(s probe.SlotID, word uint64) {
	f.Words[s.Index()] = word
}
