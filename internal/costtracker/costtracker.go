package costtracker

import (
	"context"
	"sync"

	log "github.com/sirupsen/logrus"
)

// CostEvent represents a single AI usage event and its cost.
type CostEvent struct {
	Operation string // e.g., "chat", "categorization"
	AmountUSD float64
	Details   map[string]interface{}
}

// CostTracker provides methods to record and report costs.
type CostTracker interface {
	RecordCost(ctx context.Context, event CostEvent) error
	TotalCost(ctx context.Context) (float64, error)
	CostByOperation(ctx context.Context) (map[string]float64, error)
}

// New returns an in-process tracker. Totals live for the lifetime of the process.
func New() CostTracker {
	return &memoryCostTracker{byOperation: map[string]float64{}}
}

type memoryCostTracker struct {
	mu          sync.Mutex
	total       float64
	byOperation map[string]float64
}

func (m *memoryCostTracker) RecordCost(ctx context.Context, event CostEvent) error {
	m.mu.Lock()
	m.total += event.AmountUSD
	m.byOperation[event.Operation] += event.AmountUSD
	m.mu.Unlock()

	log.WithFields(log.Fields(event.Details)).
		WithField("operation", event.Operation).
		Debugf("Recorded AI usage cost %.8f USD", event.AmountUSD)
	return nil
}

func (m *memoryCostTracker) TotalCost(ctx context.Context) (float64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.total, nil
}

// CostByOperation returns a copy of the totals keyed by operation name.
func (m *memoryCostTracker) CostByOperation(ctx context.Context) (map[string]float64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make(map[string]float64, len(m.byOperation))
	for op, amount := range m.byOperation {
		out[op] = amount
	}
	return out, nil
}

// Estimate computes the USD cost of a call from per-token prices.
func Estimate(inputTokens, outputTokens int, inputPerToken, outputPerToken float64) float64 {
	return float64(inputTokens)*inputPerToken + float64(outputTokens)*outputPerToken
}
