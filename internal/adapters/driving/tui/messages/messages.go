// Package messages defines Bubbletea message types for the TUI.
package messages

import (
	"time"

	"github.com/custodia-labs/trawl/internal/core/domain"
)

// AllSites is the site selector value that fans a search out to every provider.
const AllSites = "all"

// SearchCompleted carries the answer of a search back to the view.
type SearchCompleted struct {
	Site    string
	Items   []domain.Item
	Total   int
	Elapsed time.Duration
	Err     error
}

// ActionCompleted reports the result of an item action.
type ActionCompleted struct {
	Message string
	Err     error
}

// ErrorOccurred signals that an error happened.
type ErrorOccurred struct {
	Err error
}
