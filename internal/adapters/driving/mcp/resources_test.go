package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/trawl/internal/core/domain"
)

func readRequest(uri string) *mcp.ReadResourceRequest {
	return &mcp.ReadResourceRequest{Params: &mcp.ReadResourceParams{URI: uri}}
}

func TestServer_handleSitesResource(t *testing.T) {
	server := newTestServer(t, &mockGateway{sites: testSites()})

	res, err := server.handleSitesResource(context.Background(), readRequest("trawl://sites"))

	require.NoError(t, err)
	require.Len(t, res.Contents, 1)
	assert.Equal(t, "application/json", res.Contents[0].MIMEType)

	var sites []SiteOutput
	require.NoError(t, json.Unmarshal([]byte(res.Contents[0].Text), &sites))
	require.Len(t, sites, 1)
	assert.Equal(t, "Nyaa", sites[0].Name)
}

func TestServer_handleSiteResource(t *testing.T) {
	server := newTestServer(t, &mockGateway{sites: testSites()})

	t.Run("known site", func(t *testing.T) {
		res, err := server.handleSiteResource(context.Background(), readRequest("trawl://sites/NYAA"))
		require.NoError(t, err)
		assert.Contains(t, res.Contents[0].Text, `"id": "nyaa"`)
	})

	t.Run("unknown site", func(t *testing.T) {
		_, err := server.handleSiteResource(context.Background(), readRequest("trawl://sites/other"))
		assert.Error(t, err)
	})
}

func TestServer_handleHistoryResource(t *testing.T) {
	ctx := context.Background()

	t.Run("lists items", func(t *testing.T) {
		history := &mockHistory{items: []domain.SeenItem{{ID: 1, Name: "a", ProviderID: "nyaa"}}}
		server, err := NewServer(&Ports{Gateway: &mockGateway{}, History: history}, "dev")
		require.NoError(t, err)

		res, err := server.handleHistoryResource(ctx, readRequest("trawl://history"))

		require.NoError(t, err)
		assert.Contains(t, res.Contents[0].Text, `"provider": "nyaa"`)
	})

	t.Run("store error", func(t *testing.T) {
		history := &mockHistory{err: errors.New("disk gone")}
		server, err := NewServer(&Ports{Gateway: &mockGateway{}, History: history}, "dev")
		require.NoError(t, err)

		_, err = server.handleHistoryResource(ctx, readRequest("trawl://history"))

		require.Error(t, err)
		assert.Contains(t, err.Error(), "listing history")
	})
}

func TestExtractSiteID(t *testing.T) {
	tests := []struct {
		uri  string
		want string
	}{
		{"trawl://sites/1337x", "1337x"},
		{"trawl://sites/Nyaa", "nyaa"},
		{"trawl://sites/a/b", ""},
		{"trawl://history", ""},
		{"other://sites/x", ""},
	}
	for _, tt := range tests {
		t.Run(tt.uri, func(t *testing.T) {
			assert.Equal(t, tt.want, extractSiteID(tt.uri))
		})
	}
}
