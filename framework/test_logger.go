package framework

// TestLogger receives progress events while a suite runs. Events for one test arrive in order:
// TestStarted, any number of TestError, then exactly one of TestFinished or TestSkipped. A test
// that recorded an error before skipping ends with TestFinished.
type TestLogger interface {
	TestStarted(id TestID)
	TestError(id TestID, err error)
	TestFinished(id TestID, failed bool, debugOutput CapturedOutput)
	TestSkipped(id TestID, reason string)
}

type silentTestLogger struct{}

func (silentTestLogger) TestStarted(TestID)                        {}
func (silentTestLogger) TestError(TestID, error)                   {}
func (silentTestLogger) TestFinished(TestID, bool, CapturedOutput) {}
func (silentTestLogger) TestSkipped(TestID, string)                {}

// NullTestLogger returns a TestLogger that reports nothing.
func NullTestLogger() TestLogger { return silentTestLogger{} }
