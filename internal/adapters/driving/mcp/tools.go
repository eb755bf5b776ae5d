package mcp

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/trawl/internal/core/domain"
	"github.com/custodia-labs/trawl/internal/core/ports/driving"
)

// SearchInput is the input schema for the search tool.
type SearchInput struct {
	Site  string `json:"site" jsonschema:"the provider id to search"`
	Query string `json:"query" jsonschema:"the search query"`
	Limit int    `json:"limit,omitempty" jsonschema:"maximum number of results (0 uses the provider limit)"`
	Page  int    `json:"page,omitempty" jsonschema:"1-based page number"`
}

// ListingInput is the input schema for the trending and recent tools.
type ListingInput struct {
	Site     string `json:"site" jsonschema:"the provider id to query"`
	Category string `json:"category,omitempty" jsonschema:"optional category filter"`
	Limit    int    `json:"limit,omitempty" jsonschema:"maximum number of results (0 uses the provider limit)"`
	Page     int    `json:"page,omitempty" jsonschema:"1-based page number"`
}

// CategorySearchInput is the input schema for the category_search tool.
type CategorySearchInput struct {
	Site     string `json:"site" jsonschema:"the provider id to search"`
	Query    string `json:"query" jsonschema:"the search query"`
	Category string `json:"category" jsonschema:"the category to search within"`
	Limit    int    `json:"limit,omitempty" jsonschema:"maximum number of results (0 uses the provider limit)"`
	Page     int    `json:"page,omitempty" jsonschema:"1-based page number"`
}

// SearchAllInput is the input schema for the search_all tool.
type SearchAllInput struct {
	Query string `json:"query" jsonschema:"the search query"`
	Limit int    `json:"limit,omitempty" jsonschema:"maximum number of results per provider"`
}

// ListingAllInput is the input schema for the trending_all and recent_all tools.
type ListingAllInput struct {
	Category string `json:"category,omitempty" jsonschema:"optional category filter applied to every provider"`
	Limit    int    `json:"limit,omitempty" jsonschema:"maximum number of results per provider"`
}

// ListSitesInput is the (empty) input schema for the list_sites tool.
type ListSitesInput struct{}

// ResultsOutput is the output schema for every query tool.
type ResultsOutput struct {
	Items []domain.Item `json:"items"`
	Count int           `json:"count"`
	Total int           `json:"total"`
	// Seconds is the fan-out wall time; only set by the *_all tools.
	Seconds float64 `json:"seconds,omitempty"`
}

// SiteOutput describes one provider.
type SiteOutput struct {
	ID                  string   `json:"id"`
	Name                string   `json:"name"`
	Operations          []string `json:"operations"`
	Categories          []string `json:"categories,omitempty"`
	TrendingHasCategory bool     `json:"trending_has_category"`
	RecentHasCategory   bool     `json:"recent_has_category"`
	MaxLimit            int      `json:"max_limit"`
}

// ListSitesOutput is the output schema for the list_sites tool.
type ListSitesOutput struct {
	Sites []SiteOutput `json:"sites"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "search",
		Description: "Search one provider for items matching a query",
	}, s.handleSearch)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "trending",
		Description: "List trending items from one provider",
	}, s.handleTrending)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "recent",
		Description: "List recently added items from one provider",
	}, s.handleRecent)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "category_search",
		Description: "Search one provider within a single category",
	}, s.handleCategorySearch)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "search_all",
		Description: "Search every provider at once and merge the results",
	}, s.handleSearchAll)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "trending_all",
		Description: "List trending items from every provider that supports it",
	}, s.handleTrendingAll)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "recent_all",
		Description: "List recent items from every provider that supports it",
	}, s.handleRecentAll)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "list_sites",
		Description: "List the configured providers and what they support",
	}, s.handleListSites)
}

func (s *Server) handleSearch(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input SearchInput,
) (*mcp.CallToolResult, ResultsOutput, error) {
	return s.dispatch(ctx, domain.OpSearch, driving.Request{
		Site: input.Site, Query: input.Query, Limit: input.Limit, Page: input.Page,
	})
}

func (s *Server) handleTrending(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input ListingInput,
) (*mcp.CallToolResult, ResultsOutput, error) {
	return s.dispatch(ctx, domain.OpTrending, listingRequest(input))
}

func (s *Server) handleRecent(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input ListingInput,
) (*mcp.CallToolResult, ResultsOutput, error) {
	return s.dispatch(ctx, domain.OpRecent, listingRequest(input))
}

func (s *Server) handleCategorySearch(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input CategorySearchInput,
) (*mcp.CallToolResult, ResultsOutput, error) {
	return s.dispatch(ctx, domain.OpCategorySearch, driving.Request{
		Site:     input.Site,
		Query:    input.Query,
		Category: input.Category,
		Limit:    input.Limit,
		Page:     input.Page,
	})
}

func (s *Server) handleSearchAll(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input SearchAllInput,
) (*mcp.CallToolResult, ResultsOutput, error) {
	return s.aggregate(ctx, domain.OpSearch, driving.Request{Query: input.Query, Limit: input.Limit})
}

func (s *Server) handleTrendingAll(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input ListingAllInput,
) (*mcp.CallToolResult, ResultsOutput, error) {
	return s.aggregate(ctx, domain.OpTrending, driving.Request{Category: input.Category, Limit: input.Limit})
}

func (s *Server) handleRecentAll(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input ListingAllInput,
) (*mcp.CallToolResult, ResultsOutput, error) {
	return s.aggregate(ctx, domain.OpRecent, driving.Request{Category: input.Category, Limit: input.Limit})
}

func (s *Server) handleListSites(
	_ context.Context,
	_ *mcp.CallToolRequest,
	_ ListSitesInput,
) (*mcp.CallToolResult, ListSitesOutput, error) {
	sites := s.ports.Gateway.Sites()
	out := ListSitesOutput{Sites: make([]SiteOutput, len(sites))}
	for i := range sites {
		out.Sites[i] = siteOutput(&sites[i])
	}
	return nil, out, nil
}

func (s *Server) dispatch(
	ctx context.Context,
	op domain.Operation,
	req driving.Request,
) (*mcp.CallToolResult, ResultsOutput, error) {
	out := s.ports.Gateway.Dispatch(ctx, op, req)
	if err := outcomeError(out); err != nil {
		return nil, ResultsOutput{}, err
	}
	return nil, ResultsOutput{Items: out.Items, Count: len(out.Items), Total: out.Total}, nil
}

func (s *Server) aggregate(
	ctx context.Context,
	op domain.Operation,
	req driving.Request,
) (*mcp.CallToolResult, ResultsOutput, error) {
	res := s.ports.Gateway.Aggregate(ctx, op, req)
	if !res.OK() {
		return nil, ResultsOutput{}, &OutcomeError{Kind: res.Kind, Message: domain.MsgEmpty}
	}
	return nil, ResultsOutput{
		Items:   res.Items,
		Count:   len(res.Items),
		Total:   res.Total,
		Seconds: res.Elapsed.Seconds(),
	}, nil
}

func listingRequest(input ListingInput) driving.Request {
	return driving.Request{
		Site:     input.Site,
		Category: input.Category,
		Limit:    input.Limit,
		Page:     input.Page,
	}
}

func siteOutput(d *domain.ProviderDescriptor) SiteOutput {
	ops := d.Capabilities.Operations()
	names := make([]string, len(ops))
	for i, op := range ops {
		names[i] = string(op)
	}
	return SiteOutput{
		ID:                  d.ID,
		Name:                d.Name,
		Operations:          names,
		Categories:          d.Categories,
		TrendingHasCategory: d.TrendingHasCategory,
		RecentHasCategory:   d.RecentHasCategory,
		MaxLimit:            d.MaxLimit,
	}
}
