// Package probetests contains the probe contract tests themselves and their supporting API.
//
// Each test invokes the probe through the forwarding layer under test and checks what the
// verifier reported. Test harness infrastructure that is not specific to the probe, such as
// test contexts, filters and captured debug output, is in the lower-level framework package.
package probetests
