package probe

import "fmt"

// SlotID identifies one of the 18 positions in the probe signature. Values start at 1 to match
// the parameter position.
type SlotID int

const (
	SlotRegister1 SlotID = iota + 1
	SlotRegister2
	SlotRegister3
	SlotRegister4
	SlotRegister5
	SlotRegister6
	SlotStack1
	SlotStack2
	SlotStack3
	SlotStack4
	SlotStack5
	SlotStack6
	SlotStack7
	SlotStack8
	SlotObjNull
	SlotMaskA
	SlotObj
	SlotMaskB
)

// SlotCount is the number of parameters in the probe signature, not counting the receiver.
const SlotCount = int(SlotMaskB)

// SlotClass says whether a slot is conventionally passed in a register or on the stack.
type SlotClass int

const (
	RegisterClass SlotClass = iota
	StackClass
)

func (c SlotClass) String() string {
	if c == RegisterClass {
		return "register"
	}
	return "stack"
}

var slotNames = [...]string{
	SlotRegister1: "register1",
	SlotRegister2: "register2",
	SlotRegister3: "register3",
	SlotRegister4: "register4",
	SlotRegister5: "register5",
	SlotRegister6: "register6",
	SlotStack1:    "stack1",
	SlotStack2:    "stack2",
	SlotStack3:    "stack3",
	SlotStack4:    "stack4",
	SlotStack5:    "stack5",
	SlotStack6:    "stack6",
	SlotStack7:    "stack7",
	SlotStack8:    "stack8",
	SlotObjNull:   "objNull",
	SlotMaskA:     "maskA",
	SlotObj:       "obj",
	SlotMaskB:     "maskB",
}

// AllSlots returns every slot in parameter order.
func AllSlots() []SlotID {
	ret := make([]SlotID, 0, SlotCount)
	for s := SlotRegister1; s <= SlotMaskB; s++ {
		ret = append(ret, s)
	}
	return ret
}

// Valid reports whether s is one of the 18 defined slots.
func (s SlotID) Valid() bool {
	return s >= SlotRegister1 && s <= SlotMaskB
}

// Class returns RegisterClass for slots 1-6 and StackClass for everything after them.
func (s SlotID) Class() SlotClass {
	if s <= SlotRegister6 {
		return RegisterClass
	}
	return StackClass
}

// Index returns the zero-based parameter position of the slot.
func (s SlotID) Index() int {
	return int(s) - 1
}

func (s SlotID) String() string {
	if !s.Valid() {
		return fmt.Sprintf("slot(%d)", int(s))
	}
	return slotNames[s]
}
