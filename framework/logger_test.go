package framework

import (
	"bytes"
	"sync"
	"testing"

	"gopkg.in/launchdarkly/go-sdk-common.v2/ldlog"
	"gopkg.in/launchdarkly/go-sdk-common.v2/ldlogtest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCapturingLoggerIsSafeForConcurrentUse(t *testing.T) {
	var logger CapturingLogger
	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			logger.Printf("message %d", i)
		}(i)
	}
	wg.Wait()
	assert.Len(t, logger.Output(), 10)
}

func TestCapturedOutputDump(t *testing.T) {
	var logger CapturingLogger
	logger.Printf("first")
	logger.Printf("second %s", "line")

	var buf bytes.Buffer
	logger.Output().Dump(&buf, ">> ")
	lines := bytes.Split(bytes.TrimSuffix(buf.Bytes(), []byte("\n")), []byte("\n"))
	require.Len(t, lines, 2)
	assert.Regexp(t, `^>> \[\d{4}-\d{2}-\d{2} \d{2}:\d{2}:\d{2}\.\d{3}\] first$`, string(lines[0]))
	assert.Regexp(t, `\] second line$`, string(lines[1]))
}

func TestLevelLoggerRoutesToLevel(t *testing.T) {
	mockLog := ldlogtest.NewMockLog()
	mockLog.Loggers.SetMinLevel(ldlog.Debug)

	NewLevelLogger(mockLog.Loggers, ldlog.Debug).Printf("debug %d", 1)
	NewLevelLogger(mockLog.Loggers, ldlog.Warn).Printf("warn %d", 2)

	assert.True(t, mockLog.HasMessageMatch(ldlog.Debug, "debug 1"))
	assert.True(t, mockLog.HasMessageMatch(ldlog.Warn, "warn 2"))
	assert.False(t, mockLog.HasMessageMatch(ldlog.Info, "warn 2"))
}

func TestNullLoggerDiscards(t *testing.T) {
	assert.NotPanics(t, func() { NullLogger().Printf("%s", "anything") })
}

func TestHarnessCapabilities(t *testing.T) {
	var logger CapturingLogger
	h := NewTestHarness(TargetInfo{Name: "t", Description: "d", Capabilities: []string{"z", "a", "m"}}, &logger)

	assert.True(t, h.HasCapability("a"))
	assert.True(t, h.HasCapability("m"))
	assert.True(t, h.HasCapability("z"))
	assert.False(t, h.HasCapability("b"))
	assert.Equal(t, []string{"a", "m", "z"}, h.TargetInfo().Capabilities)
	assert.Same(t, &logger, h.Logger())
	assert.Len(t, logger.Output(), 1)
}
