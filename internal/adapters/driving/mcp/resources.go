package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

const (
	// uriScheme is the custom URI scheme for trawl resources.
	uriScheme = "trawl://"

	historyLimit = 50
)

// registerResources registers all resource handlers with the MCP server.
func (s *Server) registerResources() {
	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "sites",
		Name:        "sites",
		Description: "Configured providers and their capabilities",
		MIMEType:    "application/json",
	}, s.handleSitesResource)

	s.server.AddResourceTemplate(&mcp.ResourceTemplate{
		URITemplate: uriScheme + "sites/{siteId}",
		Name:        "site",
		Description: "Capabilities of a single provider",
		MIMEType:    "application/json",
	}, s.handleSiteResource)

	if s.ports.History != nil {
		s.server.AddResource(&mcp.Resource{
			URI:         uriScheme + "history",
			Name:        "history",
			Description: "Items recently returned by providers",
			MIMEType:    "application/json",
		}, s.handleHistoryResource)
	}
}

func (s *Server) handleSitesResource(
	_ context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	sites := s.ports.Gateway.Sites()
	out := make([]SiteOutput, len(sites))
	for i := range sites {
		out[i] = siteOutput(&sites[i])
	}
	return jsonResource(req.Params.URI, out)
}

func (s *Server) handleSiteResource(
	_ context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	id := extractSiteID(req.Params.URI)
	if id == "" {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	sites := s.ports.Gateway.Sites()
	for i := range sites {
		if sites[i].ID == id {
			return jsonResource(req.Params.URI, siteOutput(&sites[i]))
		}
	}
	return nil, mcp.ResourceNotFoundError(req.Params.URI)
}

func (s *Server) handleHistoryResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	items, err := s.ports.History.Recent(ctx, "", historyLimit)
	if err != nil {
		return nil, fmt.Errorf("listing history: %w", err)
	}
	return jsonResource(req.Params.URI, items)
}

func jsonResource(uri string, v any) (*mcp.ReadResourceResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling resource: %w", err)
	}
	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}

// extractSiteID extracts the provider id from a URI like trawl://sites/{siteId}.
func extractSiteID(uri string) string {
	const prefix = uriScheme + "sites/"

	if !strings.HasPrefix(uri, prefix) {
		return ""
	}
	id := strings.TrimPrefix(uri, prefix)
	if strings.Contains(id, "/") {
		return ""
	}
	return strings.ToLower(id)
}
