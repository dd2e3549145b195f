package probetests

import (
	"fmt"

	"github.com/argprobe/marshal-contract-tests/probe"

	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"
)

func DoConcurrencyTests(t *T) {
	t.RequireCapability(CapabilityConcurrentCalls)

	t.Run("independent instance invocations", func(t *T) {
		t.RequireCapability(CapabilityInstanceProbe)
		require.NoError(t, fanOut(t, func(i int, mask uint64) error {
			self := &Receiver{Tag: fmt.Sprintf("%s#%d", t.ID(), i)}
			var reports []probe.Report
			p := probe.New(t.Layer(), nil, func(r probe.Report) { reports = append(reports, r) })
			ret, err := p.InvokeInstance(self, mask)
			if err != nil {
				return err
			}
			if !probe.SameReference(self, ret) {
				return fmt.Errorf("invocation %d: receiver not preserved, got %s", i, probe.FormatValue(ret))
			}
			return checkOwnReport(i, self, mask, reports)
		}))
	})

	t.Run("independent static invocations", func(t *T) {
		t.RequireCapability(CapabilityStaticProbe)
		require.NoError(t, fanOut(t, func(i int, mask uint64) error {
			self := &Receiver{Tag: fmt.Sprintf("%s#%d", t.ID(), i)}
			var reports []probe.Report
			p := probe.New(t.Layer(), nil, func(r probe.Report) { reports = append(reports, r) })
			if err := p.InvokeStatic(self, mask); err != nil {
				return err
			}
			return checkOwnReport(i, self, mask, reports)
		}))
	})

	t.Run("one probe shared by all goroutines", func(t *T) {
		t.RequireCapability(CapabilityInstanceProbe)
		p := probe.New(t.Layer(), t.context.DebugLogger(), nil)
		require.NoError(t, fanOut(t, func(i int, mask uint64) error {
			self := &Receiver{Tag: fmt.Sprintf("%s#%d", t.ID(), i)}
			ret, err := p.InvokeInstance(self, mask)
			if err != nil {
				return err
			}
			if !probe.SameReference(self, ret) {
				return fmt.Errorf("invocation %d: got another goroutine's receiver %s", i, probe.FormatValue(ret))
			}
			return nil
		}))
	})
}

// fanOut runs the configured number of invocations with bounded parallelism. Invocation i uses
// a mask derived from i so that values from different goroutines are distinguishable.
func fanOut(t *T, invoke func(i int, mask uint64) error) error {
	var g errgroup.Group
	g.SetLimit(t.Config().Parallelism)
	for i := 0; i < t.Config().Invocations; i++ {
		i := i
		mask := uint64(t.Config().Masks[i%len(t.Config().Masks)]) ^ uint64(i)<<32
		g.Go(func() error {
			return invoke(i, mask)
		})
	}
	return g.Wait()
}

func checkOwnReport(i int, self *Receiver, mask uint64, reports []probe.Report) error {
	if len(reports) != 1 {
		return fmt.Errorf("invocation %d: expected one report, got %d", i, len(reports))
	}
	r := reports[0]
	if err := r.Err(); err != nil {
		return fmt.Errorf("invocation %d: %w", i, err)
	}
	if r.Received.MaskA != mask || !probe.SameReference(self, r.Received.Obj) {
		return fmt.Errorf("invocation %d: report belongs to another invocation (maskA=%s, obj=%s)",
			i, probe.FormatValue(r.Received.MaskA), probe.FormatValue(r.Received.Obj))
	}
	return nil
}
