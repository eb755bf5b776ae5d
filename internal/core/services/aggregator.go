package services

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/custodia-labs/trawl/internal/core/domain"
	"github.com/custodia-labs/trawl/internal/core/ports/driving"
	"github.com/custodia-labs/trawl/internal/logger"
)


// Aggregator fans one request out to every eligible provider and merges
// the answers. Failing providers are absorbed; they never fail the request.
type Aggregator struct {
	dispatcher *Dispatcher
	maxFanout  int
}

// NewAggregator creates an aggregator that invokes providers through dispatcher.
func NewAggregator(dispatcher *Dispatcher) *Aggregator {
	return &Aggregator{dispatcher: dispatcher}
}

// SetMaxFanout bounds the number of concurrent provider calls.
// Zero or negative means one goroutine per eligible provider.
func (a *Aggregator) SetMaxFanout(n int) {
	a.maxFanout = n
}

// Aggregate runs op against every eligible provider concurrently.
func (a *Aggregator) Aggregate(ctx context.Context, op domain.Operation, req driving.Request) domain.AggregateResult {
	req = foldRequest(req)
	reqID := requestID(ctx)
	sites := a.dispatcher.registry.Eligible(op, req.Category)

	logger.Section("Aggregate " + string(op))
	logger.Debug("Request %s: %d eligible providers", reqID, len(sites))

	start := time.Now()
	outcomes := make([]domain.Outcome, len(sites))
	elapsed := make([]time.Duration, len(sites))

	var g errgroup.Group
	if a.maxFanout > 0 {
		g.SetLimit(a.maxFanout)
	}
	for i, site := range sites {
		g.Go(func() error {
			taskStart := time.Now()
			outcomes[i] = a.dispatcher.dispatchSite(ctx, op, site, req)
			elapsed[i] = time.Since(taskStart)
			a.dispatcher.emit(ctx, reqID, outcomes[i], elapsed[i], true)
			return nil
		})
	}
	_ = g.Wait() // tasks never return errors

	result := domain.AggregateResult{
		Operation: op,
		Items:     []domain.Item{},
		Reports:   make([]domain.ProviderReport, len(sites)),
	}
	for i, out := range outcomes {
		result.Reports[i] = domain.ProviderReport{
			ProviderID: out.ProviderID,
			Kind:       out.Kind,
			Items:      len(out.Items),
			Total:      out.Total,
			Elapsed:    elapsed[i],
		}
		if !out.OK() {
			continue
		}
		result.Items = append(result.Items, out.Items...)
		result.Total += out.Total
	}

	result.Kind = domain.OutcomeSuccess
	if result.Total == 0 {
		result.Kind = domain.OutcomeEmpty
	}
	result.Elapsed = time.Since(start)

	logger.Debug("Request %s: %d items, total %d in %v", reqID, len(result.Items), result.Total, result.Elapsed)
	a.summarize(ctx, reqID, result)
	return result
}

func (a *Aggregator) summarize(ctx context.Context, reqID string, result domain.AggregateResult) {
	obs := a.dispatcher.observer
	if obs == nil {
		return
	}
	obs.Observe(ctx, domain.Event{
		RequestID:  reqID,
		Operation:  result.Operation,
		ProviderID: domain.AggregateProviderID,
		Kind:       result.Kind,
		Items:      len(result.Items),
		Total:      result.Total,
		Elapsed:    result.Elapsed,
		Aggregate:  true,
		Time:       time.Now(),
	})
}
