package driven

import (
	"context"
	"time"

	"github.com/custodia-labs/trawl/internal/core/domain"
)

// Provider is a content-indexing backend.
// Each provider kind (torznab, jsonapi, file, etc.) implements this interface.
//
// A nil page with a nil error is the "absent" answer: the backend could not
// be reached or gave nothing usable. Providers may also return an error
// wrapping domain.ErrBlocked for the same situation. An empty category means
// no category filter.
type Provider interface {
	// Search performs a free-text search.
	Search(ctx context.Context, query string, page, limit int) (*domain.Page, error)

	// Trending lists currently popular items.
	Trending(ctx context.Context, category string, page, limit int) (*domain.Page, error)

	// Recent lists recently added items.
	Recent(ctx context.Context, category string, page, limit int) (*domain.Page, error)

	// SearchByCategory performs a free-text search within one category.
	SearchByCategory(ctx context.Context, query, category string, page, limit int) (*domain.Page, error)
}

// ProviderSpec is the kind-specific configuration a ProviderFactory builds from.
type ProviderSpec struct {
	// Kind selects the implementation (e.g., "torznab", "jsonapi", "file").
	Kind string
	// ID is the provider id the instance will serve.
	ID string
	// BaseURL is the backend endpoint for network providers.
	BaseURL string
	// APIKey is an optional credential passed to the backend.
	APIKey string
	// Path is the dataset path for file providers.
	Path string
	// Rate is the maximum requests per second (0 = unlimited).
	Rate float64
	// Timeout bounds one upstream HTTP request (0 = client default).
	Timeout time.Duration
	// UserAgent overrides the default User-Agent header.
	UserAgent string
	// CategoryIDs maps category labels to backend-specific identifiers.
	CategoryIDs map[string]string
	// Endpoints maps operations to URL templates for template-driven providers.
	Endpoints map[domain.Operation]string
	// OAuth enables client-credentials authentication for network providers.
	OAuth *OAuthSpec
}

// OAuthSpec is an OAuth2 client-credentials grant.
type OAuthSpec struct {
	TokenURL     string
	ClientID     string
	ClientSecret string
	Scopes       []string
}

// ProviderFactory creates providers from configuration.
type ProviderFactory interface {
	// Create builds a provider for the spec.
	Create(spec ProviderSpec) (Provider, error)

	// SupportedKinds lists the kinds this factory can build.
	SupportedKinds() []string
}
