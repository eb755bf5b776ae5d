package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/custodia-labs/trawl/internal/core/domain"
	"github.com/custodia-labs/trawl/internal/core/ports/driven"
	"github.com/custodia-labs/trawl/internal/core/ports/driving"
	"github.com/custodia-labs/trawl/internal/logger"
)

// DefaultProviderTimeout bounds a single provider call.
const DefaultProviderTimeout = 15 * time.Second

// Dispatcher invokes one provider operation and classifies its outcome.
type Dispatcher struct {
	registry *Registry
	observer driven.Observer
	timeout  time.Duration
}

// NewDispatcher creates a dispatcher over the given registry.
// The observer may be nil.
func NewDispatcher(registry *Registry, observer driven.Observer) *Dispatcher {
	return &Dispatcher{
		registry: registry,
		observer: observer,
		timeout:  DefaultProviderTimeout,
	}
}

// SetTimeout sets the per-call deadline. Zero or negative disables it.
func (d *Dispatcher) SetTimeout(timeout time.Duration) {
	d.timeout = timeout
}

// Dispatch runs op against the provider named in req.
func (d *Dispatcher) Dispatch(ctx context.Context, op domain.Operation, req driving.Request) domain.Outcome {
	return d.dispatch(ctx, requestID(ctx), op, foldRequest(req))
}

func (d *Dispatcher) dispatch(ctx context.Context, reqID string, op domain.Operation, req driving.Request) domain.Outcome {
	start := time.Now()

	site, err := d.registry.Lookup(req.Site)
	if err != nil {
		out := domain.Outcome{Kind: domain.OutcomeProviderUnknown, Operation: op, ProviderID: req.Site}
		d.emit(ctx, reqID, out, time.Since(start), false)
		return out
	}

	out := d.dispatchSite(ctx, op, site, req)
	d.emit(ctx, reqID, out, time.Since(start), false)
	return out
}

// dispatchSite validates and runs op against a resolved site.
// It does not emit events.
func (d *Dispatcher) dispatchSite(ctx context.Context, op domain.Operation, site Site, req driving.Request) domain.Outcome {
	desc := &site.Descriptor
	out := domain.Outcome{Operation: op, ProviderID: desc.ID}

	if !desc.Supports(op) {
		out.Kind = domain.OutcomeOperationUnsupported
		return out
	}

	q, err := normalize(op, desc, req)
	if err != nil {
		var catErr *domain.CategoryError
		switch {
		case errors.As(err, &catErr):
			out.Kind = domain.OutcomeCategoryInvalid
			out.Available = catErr.Available
		default:
			out.Kind = domain.OutcomeCategoryUnsupported
		}
		return out
	}

	page, err := d.invoke(ctx, op, site.Provider, q)
	return classify(out, page, err)
}

type callResult struct {
	page *domain.Page
	err  error
}

// invoke calls the provider under the per-call deadline. A provider that
// ignores its context is abandoned when the deadline passes; its result is
// discarded.
func (d *Dispatcher) invoke(ctx context.Context, op domain.Operation, p driven.Provider, q domain.Query) (*domain.Page, error) {
	if d.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, d.timeout)
		defer cancel()
	}

	done := make(chan callResult, 1)
	go func() {
		defer func() {
			if r := recover(); r != nil {
				done <- callResult{err: fmt.Errorf("%w: panic: %v", domain.ErrProviderFault, r)}
			}
		}()
		page, err := call(ctx, op, p, q)
		done <- callResult{page: page, err: err}
	}()

	select {
	case res := <-done:
		return res.page, res.err
	case <-ctx.Done():
		return nil, fmt.Errorf("provider %s: %w", q.ProviderID, ctx.Err())
	}
}

func call(ctx context.Context, op domain.Operation, p driven.Provider, q domain.Query) (*domain.Page, error) {
	switch op {
	case domain.OpSearch:
		return p.Search(ctx, q.Text, q.Page, q.Limit)
	case domain.OpTrending:
		return p.Trending(ctx, q.Category, q.Page, q.Limit)
	case domain.OpRecent:
		return p.Recent(ctx, q.Category, q.Page, q.Limit)
	case domain.OpCategorySearch:
		return p.SearchByCategory(ctx, q.Text, q.Category, q.Page, q.Limit)
	default:
		return nil, domain.ErrOperationUnsupported
	}
}

// classify turns a provider's return values into an outcome.
func classify(out domain.Outcome, page *domain.Page, err error) domain.Outcome {
	switch {
	case err != nil:
		out.Cause = err
		switch {
		case errors.Is(err, domain.ErrBlocked),
			errors.Is(err, context.DeadlineExceeded),
			errors.Is(err, context.Canceled):
			out.Kind = domain.OutcomeBlocked
		case errors.Is(err, domain.ErrOperationUnsupported):
			out.Kind = domain.OutcomeOperationUnsupported
		default:
			out.Kind = domain.OutcomeProviderFault
		}
	case page == nil:
		out.Kind = domain.OutcomeBlocked
	case len(page.Items) == 0:
		out.Kind = domain.OutcomeEmpty
	default:
		out.Kind = domain.OutcomeSuccess
		out.Items = page.Items
		out.Total = page.Total
	}
	return out
}

func (d *Dispatcher) emit(ctx context.Context, reqID string, out domain.Outcome, elapsed time.Duration, aggregate bool) {
	if out.Cause != nil {
		logger.Debug("Provider %s %s: %s (%v)", out.ProviderID, out.Operation, out.Kind, out.Cause)
	}
	if d.observer == nil {
		return
	}
	d.observer.Observe(ctx, domain.Event{
		RequestID:  reqID,
		Operation:  out.Operation,
		ProviderID: out.ProviderID,
		Kind:       out.Kind,
		Items:      len(out.Items),
		Total:      out.Total,
		Elapsed:    elapsed,
		Aggregate:  aggregate,
		Results:    out.Items,
		Time:       time.Now(),
	})
}
