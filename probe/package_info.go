// Package probe contains the argument-marshalling probe: a fixed 18-slot call that is made
// through a forwarding layer, and the verifier that checks what arrived on the other side.
//
// The argument set mixes every scalar width (8/16/32/64-bit integers, both float widths, a
// boolean and a 16-bit character), a null reference, a live reference, and the same 64-bit
// mask twice, once before and once after the reference slots. A layer that gets slot count,
// alignment or the register/stack boundary wrong will corrupt at least one of these values.
//
// Mismatches are findings, not failures: the probe emits a Report listing every slot that
// diverged and returns normally.
package probe
