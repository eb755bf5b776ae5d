package domain

import (
	"fmt"
	"strings"
)

// ProviderDescriptor describes one provider: what it can do and its limits.
// Descriptors are built once at startup and never mutated afterwards.
type ProviderDescriptor struct {
	// ID is the unique identifier, stored lower-cased (e.g., "1337x").
	ID string
	// Name is the human-readable display name.
	Name string
	// Capabilities lists the supported operations.
	Capabilities Capability
	// Categories is the ordered set of valid category labels, kept as
	// declared. Empty if the provider has no categories.
	Categories []string
	// TrendingHasCategory reports whether trending accepts a category filter.
	TrendingHasCategory bool
	// RecentHasCategory reports whether recent accepts a category filter.
	RecentHasCategory bool
	// DefaultLimit is the page size used when the caller does not choose one.
	DefaultLimit int
	// MaxLimit is the largest page size the provider serves.
	MaxLimit int
}

// Supports returns true if the provider declares the operation.
func (d *ProviderDescriptor) Supports(op Operation) bool {
	return d.Capabilities.Has(op)
}

// CategoryFilterable returns true if the operation accepts a category for this provider.
func (d *ProviderDescriptor) CategoryFilterable(op Operation) bool {
	switch op {
	case OpTrending:
		return d.TrendingHasCategory
	case OpRecent:
		return d.RecentHasCategory
	case OpCategorySearch:
		return d.Capabilities.Has(OpCategorySearch)
	default:
		return false
	}
}

// HasCategory returns true if the category is one of the provider's labels,
// ignoring case.
func (d *ProviderDescriptor) HasCategory(category string) bool {
	_, ok := d.CategoryLabel(category)
	return ok
}

// CategoryLabel returns the label matching category as the provider
// declared it, ignoring case and surrounding space.
func (d *ProviderDescriptor) CategoryLabel(category string) (string, bool) {
	category = strings.TrimSpace(category)
	for _, label := range d.Categories {
		if strings.EqualFold(label, category) {
			return label, true
		}
	}
	return "", false
}

// Validate checks the descriptor invariants.
func (d *ProviderDescriptor) Validate() error {
	if strings.TrimSpace(d.ID) == "" {
		return fmt.Errorf("%w: provider id is required", ErrInvalidInput)
	}
	if d.ID != strings.ToLower(d.ID) {
		return fmt.Errorf("%w: provider id %q must be lower-case", ErrInvalidInput, d.ID)
	}
	if d.Capabilities == CapNone {
		return fmt.Errorf("%w: provider %s declares no capabilities", ErrInvalidInput, d.ID)
	}
	if d.MaxLimit <= 0 {
		return fmt.Errorf("%w: provider %s max limit must be positive", ErrInvalidInput, d.ID)
	}
	if d.DefaultLimit <= 0 || d.DefaultLimit > d.MaxLimit {
		return fmt.Errorf("%w: provider %s default limit must be in 1..%d", ErrInvalidInput, d.ID, d.MaxLimit)
	}
	if d.Capabilities.Has(OpCategorySearch) && len(d.Categories) == 0 {
		return fmt.Errorf("%w: provider %s supports category search without categories", ErrInvalidInput, d.ID)
	}
	if (d.TrendingHasCategory || d.RecentHasCategory) && len(d.Categories) == 0 {
		return fmt.Errorf("%w: provider %s filters by category without categories", ErrInvalidInput, d.ID)
	}
	return nil
}

// Query is a request that has been normalised against a provider descriptor.
type Query struct {
	// ProviderID is the lower-cased provider id.
	ProviderID string
	// Text is the lower-cased search query (empty for trending and recent).
	Text string
	// Category is the declared category label, empty for none.
	Category string
	// Page is the 1-based page number.
	Page int
	// Limit is the resolved page size.
	Limit int
}
