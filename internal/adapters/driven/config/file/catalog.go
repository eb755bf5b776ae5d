package file

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/custodia-labs/trawl/internal/core/domain"
	"github.com/custodia-labs/trawl/internal/core/ports/driven"
)

// CatalogFileName is the default sites catalogue name inside the data dir.
const CatalogFileName = "sites.toml"

// Catalog is the parsed sites catalogue.
type Catalog struct {
	Sites []SiteEntry `toml:"site" yaml:"site"`
}

// SiteEntry declares one provider.
type SiteEntry struct {
	ID                  string            `toml:"id" yaml:"id"`
	Name                string            `toml:"name" yaml:"name"`
	Kind                string            `toml:"kind" yaml:"kind"`
	Capabilities        []string          `toml:"capabilities" yaml:"capabilities"`
	Categories          []string          `toml:"categories" yaml:"categories"`
	TrendingHasCategory bool              `toml:"trending_has_category" yaml:"trending_has_category"`
	RecentHasCategory   bool              `toml:"recent_has_category" yaml:"recent_has_category"`
	DefaultLimit        int               `toml:"default_limit" yaml:"default_limit"`
	MaxLimit            int               `toml:"max_limit" yaml:"max_limit"`
	BaseURL             string            `toml:"base_url" yaml:"base_url"`
	APIKey              string            `toml:"api_key" yaml:"api_key"`
	Path                string            `toml:"path" yaml:"path"`
	Rate                float64           `toml:"rate" yaml:"rate"`
	Timeout             string            `toml:"timeout" yaml:"timeout"`
	UserAgent           string            `toml:"user_agent" yaml:"user_agent"`
	CategoryIDs         map[string]string `toml:"category_ids" yaml:"category_ids"`
	Endpoints           map[string]string `toml:"endpoints" yaml:"endpoints"`
	OAuth               *OAuthEntry       `toml:"oauth" yaml:"oauth"`
}

// OAuthEntry declares client-credentials authentication for a site.
type OAuthEntry struct {
	TokenURL     string   `toml:"token_url" yaml:"token_url"`
	ClientID     string   `toml:"client_id" yaml:"client_id"`
	ClientSecret string   `toml:"client_secret" yaml:"client_secret"`
	Scopes       []string `toml:"scopes" yaml:"scopes"`
}

// LoadCatalog reads a catalogue file. The format follows the extension:
// .yaml/.yml is YAML, anything else TOML. Unknown keys are rejected.
// Relative dataset paths are resolved against the catalogue's directory.
func LoadCatalog(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading sites catalogue: %w", err)
	}

	var cat *Catalog
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		cat, err = ParseCatalogYAML(data)
	default:
		cat, err = ParseCatalogTOML(data)
	}
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}

	dir := filepath.Dir(path)
	for i := range cat.Sites {
		p := cat.Sites[i].Path
		if p != "" && !filepath.IsAbs(p) {
			cat.Sites[i].Path = filepath.Join(dir, p)
		}
	}
	return cat, nil
}

// ParseCatalogTOML decodes a TOML catalogue.
func ParseCatalogTOML(data []byte) (*Catalog, error) {
	var cat Catalog
	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&cat); err != nil {
		var strict *toml.StrictMissingError
		if errors.As(err, &strict) {
			return nil, fmt.Errorf("%w: %s", domain.ErrInvalidInput, strict.String())
		}
		return nil, err
	}
	return &cat, nil
}

// ParseCatalogYAML decodes a YAML catalogue.
func ParseCatalogYAML(data []byte) (*Catalog, error) {
	var cat Catalog
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cat); err != nil {
		return nil, err
	}
	return &cat, nil
}

// Descriptor builds the provider descriptor declared by the entry.
// Limits default to each other when only one is set.
func (e *SiteEntry) Descriptor() (domain.ProviderDescriptor, error) {
	caps, err := domain.ParseCapabilities(e.Capabilities)
	if err != nil {
		return domain.ProviderDescriptor{}, fmt.Errorf("site %s: %w", e.ID, err)
	}

	id := strings.ToLower(strings.TrimSpace(e.ID))
	name := e.Name
	if name == "" {
		name = id
	}

	maxLimit, defaultLimit := e.MaxLimit, e.DefaultLimit
	if maxLimit == 0 {
		maxLimit = defaultLimit
	}
	if defaultLimit == 0 {
		defaultLimit = maxLimit
	}

	d := domain.ProviderDescriptor{
		ID:                  id,
		Name:                name,
		Capabilities:        caps,
		Categories:          e.Categories,
		TrendingHasCategory: e.TrendingHasCategory,
		RecentHasCategory:   e.RecentHasCategory,
		DefaultLimit:        defaultLimit,
		MaxLimit:            maxLimit,
	}
	if err := d.Validate(); err != nil {
		return domain.ProviderDescriptor{}, err
	}
	return d, nil
}

// Spec builds the provider factory input declared by the entry.
func (e *SiteEntry) Spec() (driven.ProviderSpec, error) {
	spec := driven.ProviderSpec{
		Kind:        strings.ToLower(e.Kind),
		ID:          strings.ToLower(strings.TrimSpace(e.ID)),
		BaseURL:     e.BaseURL,
		APIKey:      e.APIKey,
		Path:        e.Path,
		Rate:        e.Rate,
		UserAgent:   e.UserAgent,
		CategoryIDs: e.CategoryIDs,
	}

	if e.Timeout != "" {
		timeout, err := time.ParseDuration(e.Timeout)
		if err != nil {
			return driven.ProviderSpec{}, fmt.Errorf("site %s: %w: timeout %q", e.ID, domain.ErrInvalidInput, e.Timeout)
		}
		spec.Timeout = timeout
	}

	if len(e.Endpoints) > 0 {
		spec.Endpoints = make(map[domain.Operation]string, len(e.Endpoints))
		for name, tmpl := range e.Endpoints {
			op := domain.Operation(strings.ToLower(name))
			if !op.IsValid() {
				return driven.ProviderSpec{}, fmt.Errorf("site %s: %w: unknown endpoint %q", e.ID, domain.ErrInvalidInput, name)
			}
			spec.Endpoints[op] = tmpl
		}
	}

	if e.OAuth != nil {
		if e.OAuth.TokenURL == "" || e.OAuth.ClientID == "" {
			return driven.ProviderSpec{}, fmt.Errorf("site %s: %w: oauth needs token_url and client_id", e.ID, domain.ErrInvalidInput)
		}
		spec.OAuth = &driven.OAuthSpec{
			TokenURL:     e.OAuth.TokenURL,
			ClientID:     e.OAuth.ClientID,
			ClientSecret: e.OAuth.ClientSecret,
			Scopes:       e.OAuth.Scopes,
		}
	}
	return spec, nil
}
