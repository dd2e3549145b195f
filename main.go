package main

import (
	"context"
	"fmt"
	"os"

	"github.com/argprobe/marshal-contract-tests/framework"
	"github.com/argprobe/marshal-contract-tests/intercept"
	"github.com/argprobe/marshal-contract-tests/probe"
	"github.com/argprobe/marshal-contract-tests/probetests"

	"github.com/fatih/color"
	"gopkg.in/launchdarkly/go-sdk-common.v2/ldlog"
)

// selfReference is the object passed as the probe's self reference by -report.
type selfReference struct {
	Name string
}

func main() {
	var params commandParams
	if !params.Read(os.Args) {
		os.Exit(1)
	}
	if params.noColor {
		color.NoColor = true
	}

	loggers := ldlog.NewDefaultLoggers()
	loggers.SetMinLevel(params.logLevel)
	harnessLogger := framework.NewLevelLogger(loggers, ldlog.Debug)

	config, err := params.suiteConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Invalid suite configuration: %s\n", err)
		os.Exit(1)
	}
	loggers.Infof("Suite configuration: masks=%s invocations=%d parallelism=%d",
		config.Masks, config.Invocations, config.Parallelism)

	if params.selfCheck {
		os.Exit(runSelfCheck(params, config, harnessLogger))
	}

	target, _ := intercept.Lookup(params.layer)
	if target.Faulty {
		loggers.Warnf("Layer %q corrupts arguments on purpose; failures are expected", target.Name)
	}
	harness := framework.NewTestHarness(probetests.TargetInfo(target), harnessLogger)

	if params.printReport {
		printReports(target, config, loggers)
	}

	fmt.Println()
	framework.PrintFilterDescription(os.Stdout, harness, params.filters, probetests.AllCapabilities)

	fmt.Printf("Running probe contract tests against %q (%s)\n", target.Name, target.Description)

	testLogger := &ConsoleTestLogger{
		Out:                  os.Stdout,
		DebugOutputOnFailure: params.debug || params.debugAll,
		DebugOutputOnSuccess: params.debugAll,
	}

	results := probetests.RunTestSuite(harness, target.Layer, config, params.filters.AsFilter, testLogger)

	fmt.Println()
	framework.PrintResults(os.Stdout, results)
	if !results.OK() {
		fmt.Println()
		fmt.Println("To rerun the failed groups with debug output:")
		fmt.Printf("  %s\n", params.rerunCommand(os.Args[0], results.Failures))
		os.Exit(1)
	}
}

func runSelfCheck(params commandParams, config probetests.SuiteConfig, logger framework.Logger) int {
	mutations := intercept.Mutations()
	fmt.Printf("Running self-check against %d faulty layers\n", len(mutations))

	results, err := probetests.RunSelfCheck(context.Background(), mutations, config, params.filters.AsFilter, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Self-check error: %s\n", err)
		return 1
	}
	undetected := 0
	for _, r := range results {
		_, failed, _ := r.Results.Counts()
		if r.Detected() {
			fmt.Printf("  detected   %-16s %d failing test(s)\n", r.Target.Name, failed)
		} else {
			undetected++
			fmt.Printf("  %s %-16s %s\n", failedLabel("UNDETECTED"), r.Target.Name, r.Target.Description)
		}
	}
	fmt.Println()
	if undetected > 0 {
		fmt.Printf("%s: %d faulty layer(s) passed the suite\n", failedLabel("SELF-CHECK FAILED"), undetected)
		return 1
	}
	fmt.Println("Self-check passed: every faulty layer was detected")
	return 0
}

// printReports makes one instance and one static call with the first configured mask and prints
// the verifier's reports as JSON.
func printReports(target intercept.Target, config probetests.SuiteConfig, loggers ldlog.Loggers) {
	self := &selfReference{Name: "report"}
	mask := uint64(config.Masks[0])
	p := probe.New(target.Layer, framework.NewLevelLogger(loggers, ldlog.Debug), func(r probe.Report) {
		fmt.Println(r.Value().JSONString())
	})
	if _, err := p.InvokeInstance(self, mask); err != nil {
		loggers.Errorf("Instance probe: %s", err)
	}
	if err := p.InvokeStatic(self, mask); err != nil {
		loggers.Errorf("Static probe: %s", err)
	}
}
