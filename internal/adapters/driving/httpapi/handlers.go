package httpapi

import (
	"net"
	"net/http"

	"github.com/custodia-labs/trawl/internal/core/domain"
)

type healthResponse struct {
	App     string `json:"app"`
	Version string `json:"version"`
	IP      string `json:"ip"`
	Uptime  int    `json:"uptime"`
}

type sitesResponse struct {
	SupportedSites []string `json:"supported_sites"`
}

// siteConfig is the public view of one provider descriptor.
type siteConfig struct {
	Name                    string   `json:"name"`
	Capabilities            []string `json:"capabilities"`
	DefaultLimit            int      `json:"default_limit"`
	Limit                   int      `json:"limit"`
	TrendingAvailable       bool     `json:"trending_available"`
	TrendingCategory        bool     `json:"trending_category"`
	RecentAvailable         bool     `json:"recent_available"`
	RecentCategoryAvailable bool     `json:"recent_category_available"`
	SearchByCategory        bool     `json:"search_by_category"`
	Categories              []string `json:"categories"`
}

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	s.single(w, r, domain.OpSearch)
}

func (s *Server) handleTrending(w http.ResponseWriter, r *http.Request) {
	s.single(w, r, domain.OpTrending)
}

func (s *Server) handleRecent(w http.ResponseWriter, r *http.Request) {
	s.single(w, r, domain.OpRecent)
}

func (s *Server) handleCategory(w http.ResponseWriter, r *http.Request) {
	s.single(w, r, domain.OpCategorySearch)
}

func (s *Server) handleAllSearch(w http.ResponseWriter, r *http.Request) {
	s.aggregate(w, r, domain.OpSearch)
}

func (s *Server) handleAllTrending(w http.ResponseWriter, r *http.Request) {
	s.aggregate(w, r, domain.OpTrending)
}

func (s *Server) handleAllRecent(w http.ResponseWriter, r *http.Request) {
	s.aggregate(w, r, domain.OpRecent)
}

func (s *Server) single(w http.ResponseWriter, r *http.Request, op domain.Operation) {
	req, err := singleRequest(r.URL.Query(), op)
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, errorResponse{Error: err.Error()})
		return
	}
	writeOutcome(w, s.ports.Gateway.Dispatch(r.Context(), op, req))
}

func (s *Server) aggregate(w http.ResponseWriter, r *http.Request, op domain.Operation) {
	req, err := aggregateRequest(r.URL.Query(), op)
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, errorResponse{Error: err.Error()})
		return
	}
	writeAggregate(w, s.ports.Gateway.Aggregate(r.Context(), op, req))
}

func (s *Server) handleSites(w http.ResponseWriter, _ *http.Request) {
	ids := s.ports.Gateway.SearchableSites()
	if ids == nil {
		ids = []string{}
	}
	writeJSON(w, http.StatusOK, sitesResponse{SupportedSites: ids})
}

func (s *Server) handleSitesConfig(w http.ResponseWriter, _ *http.Request) {
	sites := s.ports.Gateway.Sites()
	out := make(map[string]siteConfig, len(sites))
	for i := range sites {
		out[sites[i].ID] = newSiteConfig(&sites[i])
	}
	writeJSON(w, http.StatusOK, out)
}

func newSiteConfig(d *domain.ProviderDescriptor) siteConfig {
	ops := d.Capabilities.Operations()
	caps := make([]string, len(ops))
	for i, op := range ops {
		caps[i] = string(op)
	}
	return siteConfig{
		Name:                    d.Name,
		Capabilities:            caps,
		DefaultLimit:            d.DefaultLimit,
		Limit:                   d.MaxLimit,
		TrendingAvailable:       d.Supports(domain.OpTrending),
		TrendingCategory:        d.TrendingHasCategory,
		RecentAvailable:         d.Supports(domain.OpRecent),
		RecentCategoryAvailable: d.RecentHasCategory,
		SearchByCategory:        d.Supports(domain.OpCategorySearch),
		Categories:              available(d.Categories),
	}
}

func (s *Server) handleStats(w http.ResponseWriter, _ *http.Request) {
	if s.ports.Stats == nil {
		writeError(w, http.StatusNotFound, errorResponse{Error: "Stats not enabled."})
		return
	}
	writeJSON(w, http.StatusOK, s.ports.Stats.Snapshot())
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, healthResponse{
		App:     AppName,
		Version: "v" + s.version,
		IP:      clientIP(r),
		Uptime:  uptimeSeconds(s.now().Sub(s.started)),
	})
}

func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
