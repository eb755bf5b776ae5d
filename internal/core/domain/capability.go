package domain

import (
	"fmt"
	"strings"
)

// Operation names a query a provider may answer.
type Operation string

const (
	// OpSearch is a free-text search.
	OpSearch Operation = "search"
	// OpTrending lists currently popular items.
	OpTrending Operation = "trending"
	// OpRecent lists recently added items.
	OpRecent Operation = "recent"
	// OpCategorySearch is a free-text search restricted to one category.
	OpCategorySearch Operation = "category"
)

// AllOperations returns every operation in canonical order.
func AllOperations() []Operation {
	return []Operation{OpSearch, OpTrending, OpRecent, OpCategorySearch}
}

// IsValid returns true if the operation is known.
func (o Operation) IsValid() bool {
	switch o {
	case OpSearch, OpTrending, OpRecent, OpCategorySearch:
		return true
	default:
		return false
	}
}

// TakesQuery returns true if the operation requires a search query.
func (o Operation) TakesQuery() bool {
	return o == OpSearch || o == OpCategorySearch
}

// TakesCategory returns true if the operation accepts a category at all.
func (o Operation) TakesCategory() bool {
	return o == OpTrending || o == OpRecent || o == OpCategorySearch
}

// Title returns the operation name for user-facing messages.
func (o Operation) Title() string {
	switch o {
	case OpSearch:
		return "Search"
	case OpTrending:
		return "Trending"
	case OpRecent:
		return "Recent"
	case OpCategorySearch:
		return "Category"
	default:
		return string(o)
	}
}

// Capability is a bitfield of operations a provider supports.
type Capability uint8

const (
	// CapNone supports nothing.
	CapNone Capability = 0
	// CapSearch supports OpSearch.
	CapSearch Capability = 1 << 0
	// CapTrending supports OpTrending.
	CapTrending Capability = 1 << 1
	// CapRecent supports OpRecent.
	CapRecent Capability = 1 << 2
	// CapCategorySearch supports OpCategorySearch.
	CapCategorySearch Capability = 1 << 3
)

// CapabilityFor returns the capability bit for an operation.
func CapabilityFor(op Operation) Capability {
	switch op {
	case OpSearch:
		return CapSearch
	case OpTrending:
		return CapTrending
	case OpRecent:
		return CapRecent
	case OpCategorySearch:
		return CapCategorySearch
	default:
		return CapNone
	}
}

// Has returns true if the operation is supported.
func (c Capability) Has(op Operation) bool {
	bit := CapabilityFor(op)
	return bit != CapNone && c&bit != 0
}

// Operations returns the supported operations in canonical order.
func (c Capability) Operations() []Operation {
	var ops []Operation
	for _, op := range AllOperations() {
		if c.Has(op) {
			ops = append(ops, op)
		}
	}
	return ops
}

// String returns a human-readable representation.
func (c Capability) String() string {
	if c == CapNone {
		return "none"
	}
	ops := c.Operations()
	parts := make([]string, len(ops))
	for i, op := range ops {
		parts[i] = string(op)
	}
	return strings.Join(parts, ",")
}

// ParseCapabilities builds a Capability from operation names.
// Names are case-insensitive; an unknown name is an error.
func ParseCapabilities(names []string) (Capability, error) {
	var c Capability
	for _, name := range names {
		op := Operation(strings.ToLower(strings.TrimSpace(name)))
		if !op.IsValid() {
			return CapNone, fmt.Errorf("%w: unknown capability %q", ErrInvalidInput, name)
		}
		c |= CapabilityFor(op)
	}
	return c, nil
}
