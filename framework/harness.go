package framework

import (
	"sort"
)

// TargetInfo describes the system under test: what it is called and which optional behaviors
// it claims to support.
type TargetInfo struct {
	Name         string
	Description  string
	Capabilities []string
}

// TestHarness holds what every test in a run shares: the description of the target and the
// logger for harness-level debug output.
type TestHarness struct {
	targetInfo TargetInfo
	logger     Logger
}

// NewTestHarness creates a TestHarness for the described target. If debugLogger is nil, harness
// debug output is discarded.
func NewTestHarness(info TargetInfo, debugLogger Logger) *TestHarness {
	if debugLogger == nil {
		debugLogger = NullLogger()
	}
	caps := append([]string(nil), info.Capabilities...)
	sort.Strings(caps)
	info.Capabilities = caps
	h := &TestHarness{
		targetInfo: info,
		logger:     debugLogger,
	}
	h.logger.Printf("Test harness created for %q (%s), capabilities: %v", info.Name, info.Description, caps)
	return h
}

func (h *TestHarness) TargetInfo() TargetInfo {
	return h.targetInfo
}

func (h *TestHarness) Logger() Logger {
	return h.logger
}

func (h *TestHarness) HasCapability(desired string) bool {
	i := sort.SearchStrings(h.targetInfo.Capabilities, desired)
	return i < len(h.targetInfo.Capabilities) && h.targetInfo.Capabilities[i] == desired
}
