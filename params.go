package main

import (
	"flag"
	"fmt"
	"os"
	"regexp"
	"sort"
	"strings"

	"github.com/argprobe/marshal-contract-tests/framework"
	"github.com/argprobe/marshal-contract-tests/intercept"
	"github.com/argprobe/marshal-contract-tests/probetests"

	"github.com/alessio/shellescape"
	"gopkg.in/launchdarkly/go-sdk-common.v2/ldlog"
)

type commandParams struct {
	layer       string
	filters     framework.RegexFilters
	masks       probetests.MaskList
	configPath  string
	parallelism int
	selfCheck   bool
	printReport bool
	noColor     bool
	debug       bool
	debugAll    bool
	logLevel    ldlog.LogLevel
}

func (c *commandParams) Read(args []string) bool {
	var logLevelName string

	fs := flag.NewFlagSet("", flag.ExitOnError)
	fs.StringVar(&c.layer, "layer", "direct", "forwarding layer to test ("+strings.Join(intercept.Names(), ", ")+")")
	fs.Var(&c.filters.MustMatch, "run", "regex pattern(s) to select tests to run, matched against each test path")
	fs.Var(&c.filters.MustNotMatch, "skip", "regex pattern(s) to select tests not to run")
	fs.Var(&c.masks, "mask", "mask value(s) to pass in both mask slots, decimal or 0x hex (replaces the defaults)")
	fs.StringVar(&c.configPath, "config", "", "YAML file with suite settings")
	fs.IntVar(&c.parallelism, "parallel", 0, "maximum concurrent invocations or self-check suites")
	fs.BoolVar(&c.selfCheck, "self-check", false, "run the suite against every faulty layer and require it to fail")
	fs.BoolVar(&c.printReport, "report", false, "print the verifier's reports for one instance and one static call as JSON")
	fs.BoolVar(&c.noColor, "no-color", false, "disable colored output")
	fs.BoolVar(&c.debug, "debug", false, "enable debug logging for failed tests")
	fs.BoolVar(&c.debugAll, "debug-all", false, "enable debug logging for all tests")
	fs.StringVar(&logLevelName, "log-level", "warn", "harness log level (debug, info, warn, error, none)")

	if err := fs.Parse(args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, err)
		fs.Usage()
		return false
	}
	if _, ok := intercept.Lookup(c.layer); !ok {
		fmt.Fprintf(os.Stderr, "unknown layer %q\n", c.layer)
		fs.Usage()
		return false
	}
	level, ok := parseLogLevel(logLevelName)
	if !ok {
		fmt.Fprintf(os.Stderr, "unknown log level %q\n", logLevelName)
		fs.Usage()
		return false
	}
	c.logLevel = level
	return true
}

func parseLogLevel(name string) (ldlog.LogLevel, bool) {
	switch strings.ToLower(name) {
	case "debug":
		return ldlog.Debug, true
	case "info":
		return ldlog.Info, true
	case "warn":
		return ldlog.Warn, true
	case "error":
		return ldlog.Error, true
	case "none":
		return ldlog.None, true
	}
	return ldlog.None, false
}

// suiteConfig starts from the config file, if any, and applies flag overrides on top.
func (c *commandParams) suiteConfig() (probetests.SuiteConfig, error) {
	config := probetests.DefaultSuiteConfig()
	if c.configPath != "" {
		loaded, err := probetests.LoadSuiteConfig(c.configPath)
		if err != nil {
			return probetests.SuiteConfig{}, err
		}
		config = loaded
	}
	if len(c.masks) > 0 {
		config.Masks = c.masks
	}
	if c.parallelism > 0 {
		config.Parallelism = c.parallelism
	}
	return config, config.Validate()
}

// rerunCommand builds a shell command that repeats this run restricted to the top-level groups
// that had failures.
func (c *commandParams) rerunCommand(program string, failures []framework.TestResult) string {
	var cmd commandBuilder
	cmd.add(program, "-layer", c.layer)
	if c.configPath != "" {
		cmd.add("-config", c.configPath)
	}
	if len(c.masks) > 0 {
		cmd.add("-mask", c.masks.String())
	}
	groups := make(map[string]bool)
	for _, f := range failures {
		if len(f.TestID.Path) > 0 {
			groups[f.TestID.Path[0]] = true
		}
	}
	var names []string
	for g := range groups {
		names = append(names, g)
	}
	sort.Strings(names)
	for _, g := range names {
		cmd.add("-run", "^"+regexp.QuoteMeta(g))
	}
	for _, p := range c.filters.MustNotMatch.Patterns() {
		cmd.add("-skip", p)
	}
	cmd.add("-debug")
	return cmd.String()
}

type commandBuilder []string

func (b *commandBuilder) add(args ...string) {
	for _, a := range args {
		*b = append(*b, shellescape.Quote(a))
	}
}

func (b commandBuilder) String() string {
	return strings.Join(b, " ")
}
