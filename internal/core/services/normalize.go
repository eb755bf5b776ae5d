package services

import (
	"slices"
	"strings"

	"github.com/custodia-labs/trawl/internal/core/domain"
	"github.com/custodia-labs/trawl/internal/core/ports/driving"
)

// ResolveLimit returns the page size to request from a provider.
// A request of 0, or one above the provider's maximum, gets the maximum.
func ResolveLimit(requested int, d *domain.ProviderDescriptor) int {
	if requested <= 0 || requested > d.MaxLimit {
		return d.MaxLimit
	}
	return requested
}

// foldRequest lower-cases the identifying fields of a request.
func foldRequest(req driving.Request) driving.Request {
	req.Site = strings.ToLower(strings.TrimSpace(req.Site))
	req.Query = strings.ToLower(strings.TrimSpace(req.Query))
	req.Category = strings.ToLower(strings.TrimSpace(req.Category))
	return req
}

// normalize validates a folded request against a descriptor and resolves it
// into a Query. The checks run in a fixed order: limit first, then category
// support, then category membership. A known category is passed on as the
// provider declared it.
//
// It returns domain.ErrCategoryUnsupported or a *domain.CategoryError.
func normalize(op domain.Operation, d *domain.ProviderDescriptor, req driving.Request) (domain.Query, error) {
	q := domain.Query{
		ProviderID: d.ID,
		Text:       req.Query,
		Page:       req.Page,
		Limit:      ResolveLimit(req.Limit, d),
	}
	if q.Page < 1 {
		q.Page = 1
	}

	if !op.TakesCategory() {
		return q, nil
	}

	category := req.Category
	if op == domain.OpCategorySearch {
		if !d.CategoryFilterable(op) {
			return q, domain.ErrCategoryUnsupported
		}
		label, ok := d.CategoryLabel(category)
		if category == "" || !ok {
			return q, &domain.CategoryError{Category: category, Available: slices.Clone(d.Categories)}
		}
		q.Category = label
		return q, nil
	}

	if category == "" {
		return q, nil
	}
	if !d.CategoryFilterable(op) {
		return q, domain.ErrCategoryUnsupported
	}
	label, ok := d.CategoryLabel(category)
	if !ok {
		return q, &domain.CategoryError{Category: category, Available: slices.Clone(d.Categories)}
	}
	q.Category = label
	return q, nil
}
