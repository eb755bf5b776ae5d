package services

import (
	"fmt"
	"slices"
	"strings"

	"github.com/custodia-labs/trawl/internal/core/domain"
	"github.com/custodia-labs/trawl/internal/core/ports/driven"
)

// Site pairs a provider descriptor with the provider that serves it.
type Site struct {
	Descriptor domain.ProviderDescriptor
	Provider   driven.Provider
}

// Registry is the capability table of every known provider.
// It is immutable once built, so concurrent reads need no locking.
type Registry struct {
	index map[string]int
	sites []Site
}

// NewRegistry builds a registry from sites, keeping their order.
// Ids are folded to lower case and category labels are kept as declared;
// duplicates and invalid descriptors are rejected.
func NewRegistry(sites ...Site) (*Registry, error) {
	r := &Registry{
		index: make(map[string]int, len(sites)),
		sites: make([]Site, 0, len(sites)),
	}

	for _, site := range sites {
		d := site.Descriptor
		d.ID = strings.ToLower(strings.TrimSpace(d.ID))
		d.Categories = slices.Clone(d.Categories)

		if err := d.Validate(); err != nil {
			return nil, fmt.Errorf("registering provider: %w", err)
		}
		if site.Provider == nil {
			return nil, fmt.Errorf("registering provider %s: %w: provider is nil", d.ID, domain.ErrInvalidInput)
		}
		if _, exists := r.index[d.ID]; exists {
			return nil, fmt.Errorf("registering provider %s: %w", d.ID, domain.ErrAlreadyExists)
		}

		r.index[d.ID] = len(r.sites)
		r.sites = append(r.sites, Site{Descriptor: d, Provider: site.Provider})
	}

	return r, nil
}

// Lookup returns the site registered under id, ignoring case.
func (r *Registry) Lookup(id string) (Site, error) {
	i, ok := r.index[strings.ToLower(strings.TrimSpace(id))]
	if !ok {
		return Site{}, domain.ErrProviderUnknown
	}
	return r.sites[i], nil
}

// List returns every descriptor in registration order.
func (r *Registry) List() []domain.ProviderDescriptor {
	result := make([]domain.ProviderDescriptor, len(r.sites))
	for i, site := range r.sites {
		d := site.Descriptor
		// Return a copy to prevent modification
		d.Categories = slices.Clone(d.Categories)
		result[i] = d
	}
	return result
}

// Sites returns every site in registration order.
func (r *Registry) Sites() []Site {
	return slices.Clone(r.sites)
}

// SearchableIDs returns the ids of providers supporting search.
func (r *Registry) SearchableIDs() []string {
	ids := make([]string, 0, len(r.sites))
	for _, site := range r.sites {
		if site.Descriptor.Supports(domain.OpSearch) {
			ids = append(ids, site.Descriptor.ID)
		}
	}
	return ids
}

// Eligible returns the sites that can answer op, in registration order.
// A non-empty category further restricts trending and recent to providers
// that filter those operations by category and know the label, and
// category search to providers that know the label.
func (r *Registry) Eligible(op domain.Operation, category string) []Site {
	category = strings.TrimSpace(category)

	var eligible []Site
	for _, site := range r.sites {
		d := &site.Descriptor
		if !d.Supports(op) {
			continue
		}
		if category != "" && op.TakesCategory() {
			if !d.CategoryFilterable(op) || !d.HasCategory(category) {
				continue
			}
		}
		if op == domain.OpCategorySearch && category == "" {
			continue
		}
		eligible = append(eligible, site)
	}
	return eligible
}

// Len returns the number of registered providers.
func (r *Registry) Len() int {
	return len(r.sites)
}
