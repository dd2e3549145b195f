package intercept

import (
	"fmt"
	"sort"

	"github.com/argprobe/marshal-contract-tests/probe"
)

// Target is a named layer that the contract tests can be run against.
type Target struct {
	Name        string
	Description string
	Layer       probe.Layer

	// Faulty is set for layers that corrupt arguments on purpose. The test suite is expected
	// to fail against them.
	Faulty bool
}

// Targets returns the forwarding layers that should pass every contract test.
func Targets() []Target {
	return []Target{
		{Name: "direct", Description: "probe bodies called with no layer in between"},
		{Name: "passthrough", Description: "one extra positional call frame", Layer: Passthrough{}},
		{Name: "listen", Description: "before/after listeners around the call", Layer: Listen{
			Before: func(recv interface{}) interface{} { return recv },
			After:  func(interface{}, interface{}) {},
		}},
		{Name: "trampoline", Description: "arguments spilled to machine words and reloaded", Layer: Trampoline{}},
		{Name: "reflect", Description: "arguments boxed through reflect.Value.Call", Layer: Reflective{}},
		{Name: "chain", Description: "listen, trampoline and reflect layers stacked", Layer: Chain{
			Listen{}, Trampoline{}, Reflective{}, Passthrough{},
		}},
	}
}

// Mutations returns layers that drop or duplicate one stack-class scalar slot.
func Mutations() []Target {
	var ret []Target
	for s := probe.SlotStack1; s <= probe.SlotStack8; s++ {
		ret = append(ret,
			Target{
				Name:        fmt.Sprintf("drop-%s", s),
				Description: fmt.Sprintf("loses the %s word and shifts later slots down", s),
				Layer:       DropStackSlot(s),
				Faulty:      true,
			},
			Target{
				Name:        fmt.Sprintf("dup-%s", s),
				Description: fmt.Sprintf("repeats the %s word and shifts later slots up", s),
				Layer:       DuplicateStackSlot(s),
				Faulty:      true,
			},
		)
	}
	return ret
}

// Lookup finds a target or mutation by name.
func Lookup(name string) (Target, bool) {
	for _, t := range append(Targets(), Mutations()...) {
		if t.Name == name {
			return t, true
		}
	}
	return Target{}, false
}

// Names returns the sorted names of every known target and mutation.
func Names() []string {
	var ret []string
	for _, t := range append(Targets(), Mutations()...) {
		ret = append(ret, t.Name)
	}
	sort.Strings(ret)
	return ret
}
