package probetests

import (
	"context"

	"github.com/argprobe/marshal-contract-tests/framework"
	"github.com/argprobe/marshal-contract-tests/intercept"

	"golang.org/x/sync/errgroup"
)

// TargetInfo describes an intercept target to the framework. Every built-in layer supports the
// full probe contract, so it claims all capabilities.
func TargetInfo(target intercept.Target) framework.TargetInfo {
	return framework.TargetInfo{
		Name:         target.Name,
		Description:  target.Description,
		Capabilities: AllCapabilities,
	}
}

// SelfCheckResult is the outcome of running the suite against one faulty layer.
type SelfCheckResult struct {
	Target  intercept.Target
	Results framework.Results
}

// Detected is true if the suite caught the fault, meaning at least one test failed.
func (r SelfCheckResult) Detected() bool {
	return !r.Results.OK()
}

// RunSelfCheck runs the whole suite against each of the given faulty layers, up to
// config.Parallelism suites at a time. The results are in the same order as mutations. It
// returns early with ctx's error if ctx is cancelled.
func RunSelfCheck(
	ctx context.Context,
	mutations []intercept.Target,
	config SuiteConfig,
	filter framework.Filter,
	debugLogger framework.Logger,
) ([]SelfCheckResult, error) {
	results := make([]SelfCheckResult, len(mutations))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(config.Parallelism)
	for i, target := range mutations {
		i, target := i, target
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			harness := framework.NewTestHarness(TargetInfo(target), debugLogger)
			results[i] = SelfCheckResult{
				Target:  target,
				Results: RunTestSuite(harness, target.Layer, config, filter, framework.NullTestLogger()),
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
