// Package framework contains the low-level implementation of test harness infrastructure
// that can be reused for different kinds of tests.
//
// The general model is:
//
// 1. The test harness describes a target, the system under test, by name and by the optional
// capabilities it claims to support.
//
// 2. There is a general notion of a test context which is similar to Go's *testing.T,
// allowing pieces of test logic to be associated with a test identifier and to accumulate
// success/failure results. Each test has its own debug log, which is handed to the TestLogger
// when the test finishes.
//
// The domain-specific code that knows what is being tested is responsible for building the
// target and for providing a domain-specific test API on top of the test context.
package framework
