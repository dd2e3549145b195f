package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/argprobe/marshal-contract-tests/framework"
	"github.com/argprobe/marshal-contract-tests/probetests"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/launchdarkly/go-sdk-common.v2/ldlog"
)

func failure(path ...string) framework.TestResult {
	return framework.TestResult{TestID: framework.TestID{Path: path}, Errors: []error{errors.New("x")}}
}

func TestReadParams(t *testing.T) {
	var params commandParams
	require.True(t, params.Read([]string{"prog",
		"-layer", "trampoline", "-run", "^masks", "-skip", "static", "-mask", "1,0x10",
		"-parallel", "3", "-log-level", "DEBUG", "-debug",
	}))
	assert.Equal(t, "trampoline", params.layer)
	assert.Equal(t, []string{"^masks"}, params.filters.MustMatch.Patterns())
	assert.Equal(t, []string{"static"}, params.filters.MustNotMatch.Patterns())
	assert.Equal(t, probetests.MaskList{1, 0x10}, params.masks)
	assert.Equal(t, 3, params.parallelism)
	assert.Equal(t, ldlog.Debug, params.logLevel)
	assert.True(t, params.debug)
}

func TestReadParamsRejectsUnknownLayer(t *testing.T) {
	var params commandParams
	assert.False(t, params.Read([]string{"prog", "-layer", "nonexistent"}))
}

func TestParseLogLevel(t *testing.T) {
	for name, want := range map[string]ldlog.LogLevel{
		"debug": ldlog.Debug,
		"Info":  ldlog.Info,
		"warn":  ldlog.Warn,
		"error": ldlog.Error,
		"none":  ldlog.None,
	} {
		level, ok := parseLogLevel(name)
		assert.True(t, ok, name)
		assert.Equal(t, want, level, name)
	}
	_, ok := parseLogLevel("loud")
	assert.False(t, ok)
}

func TestSuiteConfigAppliesFlagOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "suite.yaml")
	require.NoError(t, os.WriteFile(path, []byte("masks: [5]\ninvocations: 7\nparallelism: 2\n"), 0o600))

	params := commandParams{configPath: path}
	config, err := params.suiteConfig()
	require.NoError(t, err)
	assert.Equal(t, probetests.MaskList{5}, config.Masks)
	assert.Equal(t, 7, config.Invocations)
	assert.Equal(t, 2, config.Parallelism)

	params.masks = probetests.MaskList{9}
	params.parallelism = 6
	config, err = params.suiteConfig()
	require.NoError(t, err)
	assert.Equal(t, probetests.MaskList{9}, config.Masks)
	assert.Equal(t, 7, config.Invocations)
	assert.Equal(t, 6, config.Parallelism)
}

func TestSuiteConfigWithoutFileUsesDefaults(t *testing.T) {
	var params commandParams
	config, err := params.suiteConfig()
	require.NoError(t, err)
	assert.Equal(t, probetests.DefaultSuiteConfig(), config)
}

func TestRerunCommand(t *testing.T) {
	var params commandParams
	require.True(t, params.Read([]string{"prog", "-layer", "reflect", "-skip", "concurrency", "-mask", "42"}))

	cmd := params.rerunCommand("./probe-tests", []framework.TestResult{
		failure("null slot", "static probe"),
		failure("masks", "0x2a", "instance"),
		failure("masks", "0x2a", "static"),
		failure(),
	})
	assert.Equal(t,
		`./probe-tests -layer reflect -mask 0x2a -run '^masks' -run '^null slot' -skip concurrency -debug`,
		cmd)
}

func TestConsoleTestLogger(t *testing.T) {
	color.NoColor = true
	var buf bytes.Buffer
	logger := &ConsoleTestLogger{Out: &buf, DebugOutputOnFailure: true}
	id := framework.TestID{Path: []string{"masks", "0x0"}}

	var debug framework.CapturingLogger
	debug.Printf("argumentCheck: all 18 arguments arrived intact")

	logger.TestStarted(id)
	logger.TestError(id, errors.New("first\nsecond"))
	logger.TestFinished(id, true, debug.Output())
	logger.TestSkipped(framework.TestID{Path: []string{"concurrency"}}, "no capability")

	out := buf.String()
	assert.Contains(t, out, "[masks/0x0]\n")
	assert.Contains(t, out, "  first\n  second\n")
	assert.Contains(t, out, "  FAILED: masks/0x0\n")
	assert.Contains(t, out, "    DEBUG [")
	assert.Contains(t, out, "] argumentCheck: all 18 arguments arrived intact\n")
	assert.Contains(t, out, "  SKIPPED: concurrency (no capability)\n")
}

func TestConsoleTestLoggerHidesDebugOutputOnSuccess(t *testing.T) {
	color.NoColor = true
	var buf bytes.Buffer
	logger := &ConsoleTestLogger{Out: &buf, DebugOutputOnFailure: true}

	var debug framework.CapturingLogger
	debug.Printf("hidden")
	logger.TestFinished(framework.TestID{Path: []string{"ok"}}, false, debug.Output())
	assert.Empty(t, buf.String())
}
