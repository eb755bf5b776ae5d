// Package torznab implements a provider for Torznab/Newznab indexer feeds
// such as those exposed by Jackett and Prowlarr.
//
// Search and category search map to t=search; recent is an empty-query
// search, which indexers answer with their newest releases. Trending has no
// Torznab equivalent and is unsupported.
package torznab

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/beevik/etree"
	"github.com/dustin/go-humanize"

	"github.com/custodia-labs/trawl/internal/adapters/driven/provider/httpclient"
	"github.com/custodia-labs/trawl/internal/core/domain"
	"github.com/custodia-labs/trawl/internal/core/ports/driven"
)

// Kind is the catalogue kind served by this package.
const Kind = "torznab"

// Ensure Provider implements the interface.
var _ driven.Provider = (*Provider)(nil)

// Provider queries a Torznab endpoint.
type Provider struct {
	id          string
	endpoint    *url.URL
	apiKey      string
	categoryIDs map[string]string
	client      *httpclient.Client
}

// New creates a provider from a spec. BaseURL is the indexer's API url
// (the part before "?t=").
func New(spec driven.ProviderSpec, client *httpclient.Client) (*Provider, error) {
	if spec.BaseURL == "" {
		return nil, fmt.Errorf("torznab %s: %w: base_url is required", spec.ID, domain.ErrInvalidInput)
	}
	endpoint, err := url.Parse(spec.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("torznab %s: %w: base_url: %v", spec.ID, domain.ErrInvalidInput, err)
	}
	if client == nil {
		client = httpclient.New(httpclient.Options{Timeout: spec.Timeout, Rate: spec.Rate, UserAgent: spec.UserAgent})
	}

	return &Provider{
		id:          spec.ID,
		endpoint:    endpoint,
		apiKey:      spec.APIKey,
		categoryIDs: spec.CategoryIDs,
		client:      client,
	}, nil
}

// Search performs a free-text search.
func (p *Provider) Search(ctx context.Context, query string, page, limit int) (*domain.Page, error) {
	return p.fetch(ctx, domain.OpSearch, query, "", page, limit)
}

// Trending is not supported by Torznab.
func (p *Provider) Trending(context.Context, string, int, int) (*domain.Page, error) {
	return nil, domain.ErrOperationUnsupported
}

// Recent lists the indexer's newest releases.
func (p *Provider) Recent(ctx context.Context, category string, page, limit int) (*domain.Page, error) {
	return p.fetch(ctx, domain.OpRecent, "", category, page, limit)
}

// SearchByCategory searches within one category.
func (p *Provider) SearchByCategory(ctx context.Context, query, category string, page, limit int) (*domain.Page, error) {
	return p.fetch(ctx, domain.OpCategorySearch, query, category, page, limit)
}

func (p *Provider) fetch(ctx context.Context, op domain.Operation, query, category string, page, limit int) (*domain.Page, error) {
	body, err := p.client.Get(ctx, p.buildURL(query, category, page, limit), "application/rss+xml, application/xml")
	if err != nil {
		return nil, fmt.Errorf("torznab %s %s: %w", p.id, op, err)
	}

	result, err := parseFeed(body, p.id)
	if err != nil {
		return nil, fmt.Errorf("torznab %s %s: %w", p.id, op, err)
	}
	return result, nil
}

func (p *Provider) buildURL(query, category string, page, limit int) string {
	u := *p.endpoint
	q := u.Query()
	q.Set("t", "search")
	q.Set("q", query)
	if p.apiKey != "" {
		q.Set("apikey", p.apiKey)
	}
	if category != "" {
		if id, ok := p.categoryIDs[category]; ok {
			category = id
		}
		q.Set("cat", category)
	}
	if limit > 0 {
		q.Set("limit", strconv.Itoa(limit))
		q.Set("offset", strconv.Itoa((page-1)*limit))
	}
	u.RawQuery = q.Encode()
	return u.String()
}

// parseFeed converts an RSS document with torznab attributes into a page.
// A document without a channel is treated as absent.
func parseFeed(body []byte, providerID string) (*domain.Page, error) {
	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(body); err != nil {
		return nil, fmt.Errorf("feed is not well-formed: %w", err)
	}

	root := doc.Root()
	if root == nil {
		return nil, nil
	}
	if root.Tag == "error" {
		return nil, feedError(root)
	}

	channel := root.SelectElement("channel")
	if channel == nil {
		return nil, nil
	}

	elements := channel.SelectElements("item")
	items := make([]domain.Item, 0, len(elements))
	for _, el := range elements {
		items = append(items, parseItem(el, providerID))
	}

	total := len(items)
	if resp := channel.SelectElement("response"); resp != nil {
		if n, err := strconv.Atoi(resp.SelectAttrValue("total", "")); err == nil && n > total {
			total = n
		}
	}
	return &domain.Page{Items: items, Total: total}, nil
}

func parseItem(el *etree.Element, providerID string) domain.Item {
	item := domain.Item{
		Name:       text(el, "title"),
		Date:       text(el, "pubDate"),
		URL:        text(el, "comments"),
		ProviderID: providerID,
	}
	if item.URL == "" {
		item.URL = text(el, "guid")
	}
	if enc := el.SelectElement("enclosure"); enc != nil {
		item.Torrent = enc.SelectAttrValue("url", "")
	}
	if item.Torrent == "" {
		item.Torrent = text(el, "link")
	}
	if size := text(el, "size"); size != "" {
		item.Size = formatSize(size)
	}

	var seeders, peers int
	var havePeers bool
	for _, attr := range el.SelectElements("attr") {
		value := attr.SelectAttrValue("value", "")
		switch attr.SelectAttrValue("name", "") {
		case "seeders":
			item.Seeders = value
			seeders, _ = strconv.Atoi(value)
		case "peers":
			peers, _ = strconv.Atoi(value)
			havePeers = true
		case "leechers":
			item.Leechers = value
		case "magneturl":
			item.Magnet = value
		case "infohash":
			item.Hash = strings.ToUpper(value)
		case "size":
			if item.Size == "" {
				item.Size = formatSize(value)
			}
		case "category":
			if item.Category == "" {
				item.Category = value
			}
		case "poster":
			item.UploadedBy = value
		case "coverurl":
			item.Poster = value
		}
	}
	// Torznab peers count seeders too.
	if item.Leechers == "" && havePeers && peers >= seeders {
		item.Leechers = strconv.Itoa(peers - seeders)
	}
	if item.Magnet == "" && item.Hash != "" {
		item.Magnet = "magnet:?xt=urn:btih:" + item.Hash + "&dn=" + url.QueryEscape(item.Name)
	}
	if strings.HasPrefix(item.Torrent, "magnet:") {
		if item.Magnet == "" {
			item.Magnet = item.Torrent
		}
		item.Torrent = ""
	}
	return item
}

// Torznab error codes meaning the indexer refuses us.
var refusalCodes = map[string]bool{
	"100": true, // incorrect credentials
	"101": true, // account suspended
	"102": true, // insufficient privileges
	"500": true, // request limit reached
}

func feedError(el *etree.Element) error {
	code := el.SelectAttrValue("code", "")
	desc := el.SelectAttrValue("description", "")
	if refusalCodes[code] {
		return fmt.Errorf("%w: indexer error %s: %s", domain.ErrBlocked, code, desc)
	}
	return fmt.Errorf("indexer error %s: %s", code, desc)
}

func text(el *etree.Element, tag string) string {
	child := el.SelectElement(tag)
	if child == nil {
		return ""
	}
	return strings.TrimSpace(child.Text())
}

func formatSize(raw string) string {
	n, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return raw
	}
	return humanize.Bytes(n)
}
