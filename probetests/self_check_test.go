package probetests

import (
	"context"
	"testing"

	"github.com/argprobe/marshal-contract-tests/framework"
	"github.com/argprobe/marshal-contract-tests/intercept"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSelfCheckDetectsEveryMutation(t *testing.T) {
	mutations := intercept.Mutations()
	results, err := RunSelfCheck(context.Background(), mutations, smallConfig(), nil, nil)
	require.NoError(t, err)
	require.Len(t, results, len(mutations))
	for i, r := range results {
		assert.Equal(t, mutations[i].Name, r.Target.Name)
		assert.True(t, r.Detected(), "mutation %s was not detected", r.Target.Name)
	}
}

func TestSelfCheckDoesNotFlagFaithfulTargets(t *testing.T) {
	results, err := RunSelfCheck(context.Background(), intercept.Targets(), smallConfig(), nil, framework.NullLogger())
	require.NoError(t, err)
	for _, r := range results {
		assert.False(t, r.Detected(), "%s: %s", r.Target.Name, describeFailures(r.Results))
	}
}

func TestSelfCheckStopsWhenCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := RunSelfCheck(ctx, intercept.Mutations(), smallConfig(), nil, nil)
	assert.ErrorIs(t, err, context.Canceled)
}
