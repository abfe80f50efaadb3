package costtracker

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryCostTracker_Accumulates(t *testing.T) {
	tracker := New()
	ctx := context.Background()

	require.NoError(t, tracker.RecordCost(ctx, CostEvent{Operation: "chat", AmountUSD: 0.25}))
	require.NoError(t, tracker.RecordCost(ctx, CostEvent{Operation: "categorization", AmountUSD: 0.5, Details: map[string]interface{}{"model_name": "gpt-4"}}))

	total, err := tracker.TotalCost(ctx)
	require.NoError(t, err)
	assert.InDelta(t, 0.75, total, 1e-9)

	byOp, err := tracker.CostByOperation(ctx)
	require.NoError(t, err)
	assert.InDelta(t, 0.25, byOp["chat"], 1e-9)
	assert.InDelta(t, 0.5, byOp["categorization"], 1e-9)

	byOp["chat"] = 100
	again, err := tracker.CostByOperation(ctx)
	require.NoError(t, err)
	assert.InDelta(t, 0.25, again["chat"], 1e-9)
}

func TestEstimate(t *testing.T) {
	assert.InDelta(t, 0.0035, Estimate(100, 50, 0.00002, 0.00003), 1e-12)
	assert.Equal(t, 0.0, Estimate(0, 0, 1, 1))
}
