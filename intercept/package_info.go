// Package intercept contains forwarding layers that sit between the probe invoker and the probe
// bodies. Some forward faithfully in different ways (an extra call frame, listeners, a word
// frame, reflection); others corrupt the word frame on purpose so that the sensitivity of the
// verifier itself can be checked.
package intercept
