package usecase

import (
	"context"
	"log/slog"
	"net/url"
	"strings"

	"golang.org/x/time/rate"

	"github.com/madewithnestle/ai-chatbot/internal/core/ports"
)

type GathererConfig struct {
	// TrustedSites are searched one by one with a site-scoped query.
	TrustedSites []string
	// AllowedDomains is the hard inclusion filter for accepted URLs.
	AllowedDomains []string
	MaxResults     int
	PerSiteResults int
	// SiteQueriesPerSecond paces the site-scoped loop to avoid hammering
	// the search backend.
	SiteQueriesPerSecond float64
}

func DefaultGathererConfig() GathererConfig {
	return GathererConfig{
		TrustedSites: []string{
			"madewithnestle.ca",
			"nestle.com",
			"nestle.ca",
			"corporate.nestle.ca",
		},
		AllowedDomains: []string{
			"nestle.com",
			"nestle.ca",
			"madewithnestle.ca",
			"corporate.nestle.ca",
			"nestleprofessional.ca",
			"nespresso.com",
			"gerber.com",
		},
		MaxResults:           5,
		PerSiteResults:       2,
		SiteQueriesPerSecond: 1,
	}
}

func (c GathererConfig) normalize() GathererConfig {
	def := DefaultGathererConfig()
	out := c
	if len(out.TrustedSites) == 0 {
		out.TrustedSites = def.TrustedSites
	}
	if len(out.AllowedDomains) == 0 {
		out.AllowedDomains = def.AllowedDomains
	}
	if out.MaxResults <= 0 {
		out.MaxResults = def.MaxResults
	}
	if out.PerSiteResults <= 0 {
		out.PerSiteResults = def.PerSiteResults
	}
	if out.SiteQueriesPerSecond <= 0 {
		out.SiteQueriesPerSecond = def.SiteQueriesPerSecond
	}
	return out
}

// Gatherer collects brand-domain evidence URLs for a query: site-scoped
// searches over the trusted sites, then one general search, with cleaning,
// an allow-list filter, and first-seen deduplication. Search failures and
// empty result sets degrade to the curated fallback URL table.
type Gatherer struct {
	search  ports.SearchProvider
	cfg     GathererConfig
	limiter *rate.Limiter
	logger  *slog.Logger
}

func NewGatherer(search ports.SearchProvider, cfg GathererConfig, logger *slog.Logger) *Gatherer {
	if logger == nil {
		logger = slog.Default()
	}
	cfg = cfg.normalize()
	return &Gatherer{
		search:  search,
		cfg:     cfg,
		limiter: rate.NewLimiter(rate.Limit(cfg.SiteQueriesPerSecond), 1),
		logger:  logger,
	}
}

// Gather never fails: any search error or empty harvest yields the static
// fallback list instead.
func (g *Gatherer) Gather(ctx context.Context, query string, maxResults int) []string {
	if maxResults <= 0 || maxResults > g.cfg.MaxResults {
		maxResults = g.cfg.MaxResults
	}

	urls := g.collect(ctx, query, maxResults)
	if len(urls) == 0 {
		g.logger.Info("web_search_fallback", "query", query)
		return FallbackSources(query)
	}
	return urls
}

func (g *Gatherer) collect(ctx context.Context, query string, maxResults int) []string {
	seen := make(map[string]struct{})
	out := make([]string, 0, maxResults)

	for _, site := range g.cfg.TrustedSites {
		if len(out) >= maxResults {
			break
		}
		if err := g.limiter.Wait(ctx); err != nil {
			return out
		}

		results, err := g.search.SearchSite(ctx, query, site)
		if err != nil {
			g.logger.Warn("site_search_failed", "site", site, "error", err)
			continue
		}
		out = g.appendFiltered(out, seen, results, g.cfg.PerSiteResults, maxResults)
	}

	if len(out) < maxResults {
		results, err := g.search.SearchGeneral(ctx, query)
		if err != nil {
			g.logger.Warn("general_search_failed", "error", err)
		} else {
			out = g.appendFiltered(out, seen, results, maxResults, maxResults)
		}
	}
	return out
}

func (g *Gatherer) appendFiltered(out []string, seen map[string]struct{}, raw []string, batchLimit, maxResults int) []string {
	accepted := 0
	for _, candidate := range raw {
		if accepted == batchLimit || len(out) == maxResults {
			break
		}
		cleaned := CleanURL(candidate)
		if cleaned == "" || !g.allowed(cleaned) {
			continue
		}
		if _, ok := seen[cleaned]; ok {
			continue
		}
		seen[cleaned] = struct{}{}
		out = append(out, cleaned)
		accepted++
	}
	return out
}

// allowed is a hard filter, not a ranking signal: URLs outside the brand
// domains are discarded even when the search backend returned them.
func (g *Gatherer) allowed(rawURL string) bool {
	parsed, err := url.Parse(rawURL)
	if err != nil || parsed.Host == "" {
		return false
	}
	host := strings.ToLower(strings.TrimPrefix(parsed.Hostname(), "www."))
	for _, domain := range g.cfg.AllowedDomains {
		if host == domain || strings.HasSuffix(host, "."+domain) {
			return true
		}
	}
	return false
}

// CleanURL strips DuckDuckGo redirect wrapping and trailing tracking
// parameters from a raw search result, returning the underlying destination
// or empty when nothing usable remains.
func CleanURL(raw string) string {
	if raw == "" {
		return ""
	}

	if idx := strings.Index(raw, "uddg="); idx >= 0 {
		wrapped := raw[idx+len("uddg="):]
		if amp := strings.Index(wrapped, "&"); amp >= 0 {
			wrapped = wrapped[:amp]
		}
		unescaped, err := url.QueryUnescape(wrapped)
		if err != nil {
			return ""
		}
		return unescaped
	}

	if strings.HasPrefix(raw, "http://") || strings.HasPrefix(raw, "https://") {
		if amp := strings.Index(raw, "&"); amp >= 0 {
			return raw[:amp]
		}
		return raw
	}
	return raw
}
