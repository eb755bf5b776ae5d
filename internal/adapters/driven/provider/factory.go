package provider

import (
	"context"
	"fmt"
	"io"
	"slices"
	"sync"

	"golang.org/x/oauth2/clientcredentials"

	"github.com/custodia-labs/trawl/internal/adapters/driven/provider/file"
	"github.com/custodia-labs/trawl/internal/adapters/driven/provider/httpclient"
	"github.com/custodia-labs/trawl/internal/adapters/driven/provider/jsonapi"
	"github.com/custodia-labs/trawl/internal/adapters/driven/provider/torznab"
	"github.com/custodia-labs/trawl/internal/core/domain"
	"github.com/custodia-labs/trawl/internal/core/ports/driven"
)

// Ensure Factory implements the interface.
var _ driven.ProviderFactory = (*Factory)(nil)

// Builder creates a provider from a spec.
type Builder func(spec driven.ProviderSpec) (driven.Provider, error)

// Factory builds providers by kind. Providers holding resources (file
// watchers) are tracked and released by Close.
type Factory struct {
	mu       sync.Mutex
	builders map[string]Builder
	closers  []io.Closer
}

// NewFactory creates a factory with the built-in kinds registered.
// File providers watch their dataset until ctx is done or Close is called.
func NewFactory(ctx context.Context) *Factory {
	f := &Factory{builders: make(map[string]Builder)}

	f.Register(torznab.Kind, func(spec driven.ProviderSpec) (driven.Provider, error) {
		return torznab.New(spec, newClient(ctx, spec))
	})
	f.Register(jsonapi.Kind, func(spec driven.ProviderSpec) (driven.Provider, error) {
		return jsonapi.New(spec, newClient(ctx, spec))
	})
	f.Register(file.Kind, func(spec driven.ProviderSpec) (driven.Provider, error) {
		p, err := file.New(spec)
		if err != nil {
			return nil, err
		}
		if err := p.Watch(ctx); err != nil {
			return nil, err
		}
		return p, nil
	})

	return f
}

// newClient builds the HTTP client for a network provider. With an OAuth
// spec, requests carry a bearer token fetched and refreshed through ctx.
func newClient(ctx context.Context, spec driven.ProviderSpec) *httpclient.Client {
	opts := httpclient.Options{
		Timeout:   spec.Timeout,
		Rate:      spec.Rate,
		UserAgent: spec.UserAgent,
	}
	if spec.OAuth != nil && spec.OAuth.TokenURL != "" {
		cfg := clientcredentials.Config{
			ClientID:     spec.OAuth.ClientID,
			ClientSecret: spec.OAuth.ClientSecret,
			TokenURL:     spec.OAuth.TokenURL,
			Scopes:       spec.OAuth.Scopes,
		}
		hc := cfg.Client(ctx)
		hc.Timeout = spec.Timeout
		if hc.Timeout <= 0 {
			hc.Timeout = httpclient.DefaultTimeout
		}
		opts.HTTPClient = hc
	}
	return httpclient.New(opts)
}

// Register adds or replaces the builder for kind.
func (f *Factory) Register(kind string, builder Builder) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.builders[kind] = builder
}

// Create builds a provider for spec.Kind.
func (f *Factory) Create(spec driven.ProviderSpec) (driven.Provider, error) {
	f.mu.Lock()
	builder, ok := f.builders[spec.Kind]
	f.mu.Unlock()
	if !ok {
		return nil, fmt.Errorf("site %s: %w: unknown kind %q", spec.ID, domain.ErrInvalidInput, spec.Kind)
	}

	p, err := builder(spec)
	if err != nil {
		return nil, err
	}

	if c, ok := p.(io.Closer); ok {
		f.mu.Lock()
		f.closers = append(f.closers, c)
		f.mu.Unlock()
	}
	return p, nil
}

// SupportedKinds lists registered kinds in sorted order.
func (f *Factory) SupportedKinds() []string {
	f.mu.Lock()
	defer f.mu.Unlock()

	kinds := make([]string, 0, len(f.builders))
	for kind := range f.builders {
		kinds = append(kinds, kind)
	}
	slices.Sort(kinds)
	return kinds
}

// Close releases every provider that holds resources.
func (f *Factory) Close() error {
	f.mu.Lock()
	closers := f.closers
	f.closers = nil
	f.mu.Unlock()

	var firstErr error
	for _, c := range closers {
		if err := c.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
