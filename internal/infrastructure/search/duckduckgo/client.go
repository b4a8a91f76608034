package duckduckgo

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/madewithnestle/ai-chatbot/internal/core/domain"
	"github.com/madewithnestle/ai-chatbot/internal/infrastructure/resilience"
)

const (
	defaultBaseURL   = "https://html.duckduckgo.com/html/"
	defaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"
)

// Client issues searches against the DuckDuckGo HTML endpoint and scrapes
// result links out of the response. Results are raw hrefs; cleaning and
// allow-list filtering happen in the gatherer.
type Client struct {
	baseURL    string
	userAgent  string
	httpClient *http.Client
	exec       *resilience.Executor
}

func New(baseURL, userAgent string, timeout time.Duration, exec *resilience.Executor) *Client {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	if userAgent == "" {
		userAgent = defaultUserAgent
	}
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	if exec == nil {
		exec = resilience.NewExecutor(resilience.DefaultConfig())
	}
	return &Client{
		baseURL:    baseURL,
		userAgent:  userAgent,
		httpClient: &http.Client{Timeout: timeout},
		exec:       exec,
	}
}

// SearchSite runs a site-scoped query and keeps only hrefs pointing at that
// site.
func (c *Client) SearchSite(ctx context.Context, query, site string) ([]string, error) {
	results, err := c.search(ctx, fmt.Sprintf("site:%s %s", site, query))
	if err != nil {
		return nil, err
	}

	out := make([]string, 0, len(results))
	for _, href := range results {
		if strings.Contains(href, site) {
			out = append(out, href)
		}
	}
	return out, nil
}

// SearchGeneral runs one brand-biased query across the main brand sites.
func (c *Client) SearchGeneral(ctx context.Context, query string) ([]string, error) {
	return c.search(ctx, fmt.Sprintf("Nestlé %s site:nestle.com OR site:madewithnestle.ca", query))
}

func (c *Client) search(ctx context.Context, query string) ([]string, error) {
	var hrefs []string
	err := c.exec.Execute(ctx, "web_search", func(ctx context.Context) error {
		found, err := c.fetchResults(ctx, query)
		if err != nil {
			return err
		}
		hrefs = found
		return nil
	}, resilience.ClassifyHTTPError)
	if err != nil {
		return nil, domain.WrapError(domain.ErrSearchFailure, "duckduckgo search", err)
	}
	return hrefs, nil
}

func (c *Client) fetchResults(ctx context.Context, query string) ([]string, error) {
	searchURL := c.baseURL + "?q=" + url.QueryEscape(query)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, searchURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create search request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("search request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return nil, &resilience.HTTPStatusError{
			Operation:  "web_search",
			StatusCode: resp.StatusCode,
			Status:     resp.Status,
			Body:       string(body),
		}
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("parse search response: %w", err)
	}

	var hrefs []string
	doc.Find("a.result__a").Each(func(_ int, sel *goquery.Selection) {
		if href, ok := sel.Attr("href"); ok && href != "" {
			hrefs = append(hrefs, href)
		}
	})
	return hrefs, nil
}
