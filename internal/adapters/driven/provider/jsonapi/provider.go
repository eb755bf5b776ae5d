// Package jsonapi implements a provider for JSON HTTP APIs.
//
// Each operation maps to a URL template relative to the base URL. Templates
// may use the placeholders {query}, {category}, {page}, {limit} and {apikey};
// query and category values are URL-escaped. Category labels are translated
// through the provider spec's category id map when an entry exists.
//
// The response must be either a JSON array of items or an object with a
// "data" array and an optional "total".
package jsonapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/custodia-labs/trawl/internal/adapters/driven/provider/httpclient"
	"github.com/custodia-labs/trawl/internal/core/domain"
	"github.com/custodia-labs/trawl/internal/core/ports/driven"
)

// Kind is the catalogue kind served by this package.
const Kind = "jsonapi"

// Ensure Provider implements the interface.
var _ driven.Provider = (*Provider)(nil)

// Provider queries a JSON API.
type Provider struct {
	id          string
	baseURL     string
	apiKey      string
	endpoints   map[domain.Operation]string
	categoryIDs map[string]string
	client      *httpclient.Client
}

// New creates a provider from a spec.
func New(spec driven.ProviderSpec, client *httpclient.Client) (*Provider, error) {
	if spec.BaseURL == "" {
		return nil, fmt.Errorf("jsonapi %s: %w: base_url is required", spec.ID, domain.ErrInvalidInput)
	}
	if _, err := url.Parse(spec.BaseURL); err != nil {
		return nil, fmt.Errorf("jsonapi %s: %w: base_url: %v", spec.ID, domain.ErrInvalidInput, err)
	}
	if len(spec.Endpoints) == 0 {
		return nil, fmt.Errorf("jsonapi %s: %w: no endpoints configured", spec.ID, domain.ErrInvalidInput)
	}
	if client == nil {
		client = httpclient.New(httpclient.Options{Timeout: spec.Timeout, Rate: spec.Rate, UserAgent: spec.UserAgent})
	}

	return &Provider{
		id:          spec.ID,
		baseURL:     strings.TrimRight(spec.BaseURL, "/"),
		apiKey:      spec.APIKey,
		endpoints:   spec.Endpoints,
		categoryIDs: spec.CategoryIDs,
		client:      client,
	}, nil
}

// Search performs a free-text search.
func (p *Provider) Search(ctx context.Context, query string, page, limit int) (*domain.Page, error) {
	return p.fetch(ctx, domain.OpSearch, query, "", page, limit)
}

// Trending lists popular items.
func (p *Provider) Trending(ctx context.Context, category string, page, limit int) (*domain.Page, error) {
	return p.fetch(ctx, domain.OpTrending, "", category, page, limit)
}

// Recent lists recently added items.
func (p *Provider) Recent(ctx context.Context, category string, page, limit int) (*domain.Page, error) {
	return p.fetch(ctx, domain.OpRecent, "", category, page, limit)
}

// SearchByCategory searches within one category.
func (p *Provider) SearchByCategory(ctx context.Context, query, category string, page, limit int) (*domain.Page, error) {
	return p.fetch(ctx, domain.OpCategorySearch, query, category, page, limit)
}

func (p *Provider) fetch(ctx context.Context, op domain.Operation, query, category string, page, limit int) (*domain.Page, error) {
	tmpl, ok := p.endpoints[op]
	if !ok {
		return nil, domain.ErrOperationUnsupported
	}

	target := p.baseURL + p.expand(tmpl, query, category, page, limit)
	body, err := p.client.Get(ctx, target, "application/json")
	if err != nil {
		return nil, fmt.Errorf("jsonapi %s %s: %w", p.id, op, err)
	}

	items, total, err := decode(body)
	if err != nil {
		return nil, fmt.Errorf("jsonapi %s %s: decoding response: %w", p.id, op, err)
	}
	if items == nil {
		return nil, nil
	}

	for i := range items {
		if items[i].ProviderID == "" {
			items[i].ProviderID = p.id
		}
	}
	if total < len(items) {
		total = len(items)
	}
	return &domain.Page{Items: items, Total: total}, nil
}

func (p *Provider) expand(tmpl, query, category string, page, limit int) string {
	if id, ok := p.categoryIDs[category]; ok {
		category = id
	}
	r := strings.NewReplacer(
		"{query}", url.QueryEscape(query),
		"{category}", url.QueryEscape(category),
		"{page}", strconv.Itoa(page),
		"{limit}", strconv.Itoa(limit),
		"{apikey}", url.QueryEscape(p.apiKey),
	)
	return r.Replace(tmpl)
}

type envelope struct {
	Data  []domain.Item `json:"data"`
	Total int           `json:"total"`
}

// decode accepts a bare item array or an envelope.
// A null or missing data array yields nil items.
func decode(body []byte) ([]domain.Item, int, error) {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return nil, 0, nil
	}

	if trimmed[0] == '[' {
		var items []domain.Item
		if err := json.Unmarshal(trimmed, &items); err != nil {
			return nil, 0, err
		}
		if items == nil {
			items = []domain.Item{}
		}
		return items, len(items), nil
	}

	var env envelope
	if err := json.Unmarshal(trimmed, &env); err != nil {
		return nil, 0, err
	}
	return env.Data, env.Total, nil
}
