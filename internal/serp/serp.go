// Package serp talks to the optional live keyword sources: a free
// autocomplete suggestion endpoint and a credentialed SERP API for positions
// and backlink hints. Every call degrades to an empty result on failure; the
// estimation engine treats absence as "synthesize instead".
package serp

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"golang.org/x/time/rate"

	"github.com/sitelens/sitelens/internal/interfaces"
	"github.com/sitelens/sitelens/internal/model"
	"github.com/sitelens/sitelens/internal/utils"
)

const (
	DefaultAutocompleteURL = "https://www.google.com/complete/search"
	DefaultSerpURL         = "https://serpapi.com/search"

	maxKeywordCandidates = 15
	maxBacklinkHints     = 5
)

// Config for the client. An empty APIKey disables SERP position and backlink
// hint lookups; autocomplete needs no credential.
type Config struct {
	APIKey          string
	AutocompleteURL string
	SerpURL         string

	// RequestsPerSecond throttles outbound calls to both sources; the free
	// tiers are small. Zero means 5 rps.
	RequestsPerSecond float64
}

// Hint is one referring-domain candidate discovered through a site: query.
type Hint struct {
	Domain string
	Title  string
	URL    string
}

type Client struct {
	cfg     Config
	wc      interfaces.WebClient
	limiter *rate.Limiter
	logger  interfaces.Logger
}

func NewClient(cfg Config, wc interfaces.WebClient, logger interfaces.Logger) *Client {
	if cfg.AutocompleteURL == "" {
		cfg.AutocompleteURL = DefaultAutocompleteURL
	}
	if cfg.SerpURL == "" {
		cfg.SerpURL = DefaultSerpURL
	}
	rps := cfg.RequestsPerSecond
	if rps <= 0 {
		rps = 5
	}
	return &Client{
		cfg:     cfg,
		wc:      wc,
		limiter: rate.NewLimiter(rate.Limit(rps), 1),
		logger:  logger.With(interfaces.Field{Key: "component", Value: "serp"}),
	}
}

// HasAPIKey reports whether credentialed lookups are available.
func (c *Client) HasAPIKey() bool { return c.cfg.APIKey != "" }

// Suggestions fetches autocomplete suggestions for query. Returns nil on any
// failure.
func (c *Client) Suggestions(ctx context.Context, query string) []string {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil
	}

	reqURL := fmt.Sprintf("%s?client=firefox&q=%s", c.cfg.AutocompleteURL, url.QueryEscape(query))
	resp, err := c.wc.Get(ctx, reqURL)
	if err != nil || !resp.OK() {
		c.logger.Debug("autocomplete fetch failed", interfaces.Field{Key: "query", Value: query})
		return nil
	}

	// Firefox-client format: [query, [suggestion, ...], ...]. Suggestions may
	// themselves be [text, ...] pairs depending on the endpoint.
	var raw []json.RawMessage
	if err := json.Unmarshal(resp.Body, &raw); err != nil || len(raw) < 2 {
		return nil
	}
	var items []json.RawMessage
	if err := json.Unmarshal(raw[1], &items); err != nil {
		return nil
	}

	var out []string
	for _, item := range items {
		if len(out) >= 10 {
			break
		}
		var s string
		if err := json.Unmarshal(item, &s); err == nil {
			out = append(out, s)
			continue
		}
		var pair []json.RawMessage
		if err := json.Unmarshal(item, &pair); err == nil && len(pair) > 0 {
			if err := json.Unmarshal(pair[0], &s); err == nil {
				out = append(out, s)
			}
		}
	}
	return out
}

// KeywordCandidates discovers keyword candidates for a domain by running the
// brand through a fixed set of autocomplete query patterns, then deduping and
// filtering to at most 15.
func (c *Client) KeywordCandidates(ctx context.Context, brand string) []string {
	queries := []string{
		brand,
		brand + " login",
		brand + " app",
		"what is " + brand,
		brand + " alternatives",
		"best " + brand,
		brand + " review",
		brand + " pricing",
	}

	var all []string
	for _, q := range queries {
		all = append(all, c.Suggestions(ctx, q)...)
	}

	lowerBrand := strings.ToLower(brand)
	seen := map[string]bool{}
	var out []string
	for _, kw := range all {
		if seen[kw] {
			continue
		}
		seen[kw] = true
		if !strings.Contains(strings.ToLower(kw), lowerBrand) && len(kw) <= 5 {
			continue
		}
		out = append(out, kw)
		if len(out) >= maxKeywordCandidates {
			break
		}
	}
	return out
}

// serpResponse is the subset of the SERP API payload we read.
type serpResponse struct {
	OrganicResults []struct {
		Position int    `json:"position"`
		Link     string `json:"link"`
		Title    string `json:"title"`
		Domain   string `json:"domain"`
	} `json:"organic_results"`
}

func (c *Client) search(ctx context.Context, query string, num int) (*serpResponse, error) {
	if !c.HasAPIKey() {
		return nil, fmt.Errorf("no serp api key configured")
	}
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	params := url.Values{}
	params.Set("engine", "google")
	params.Set("q", query)
	params.Set("api_key", c.cfg.APIKey)
	params.Set("num", fmt.Sprintf("%d", num))

	resp, err := c.wc.Do(ctx, &model.Request{
		Method: http.MethodGet,
		URL:    c.cfg.SerpURL + "?" + params.Encode(),
	})
	if err != nil {
		return nil, err
	}
	if !resp.OK() {
		return nil, fmt.Errorf("serp api status %d", resp.StatusCode)
	}

	var parsed serpResponse
	if err := json.Unmarshal(resp.Body, &parsed); err != nil {
		return nil, fmt.Errorf("decode serp response: %w", err)
	}
	return &parsed, nil
}

// Position looks up where domain ranks for keyword: the 1-based index of the
// first organic result whose link or domain contains the target. found=false
// covers both "not ranked" and every failure path.
func (c *Client) Position(ctx context.Context, keyword, domain string) (position int, found bool) {
	parsed, err := c.search(ctx, keyword, 50)
	if err != nil {
		c.logger.Debug("serp position lookup failed",
			interfaces.Field{Key: "keyword", Value: keyword},
			interfaces.Field{Key: "error", Value: err.Error()})
		return 0, false
	}

	for i, result := range parsed.OrganicResults {
		if strings.Contains(result.Link, domain) || strings.Contains(result.Domain, domain) {
			return i + 1, true
		}
	}
	return 0, false
}

// BacklinkHints runs a site: query and returns up to 5 non-self referring
// domains. Hosts collapse to their registrable domain so subdomains of the
// target never count as referrers. Purely best-effort.
func (c *Client) BacklinkHints(ctx context.Context, domain string) []Hint {
	parsed, err := c.search(ctx, "site:"+domain, 20)
	if err != nil {
		c.logger.Debug("backlink hint lookup failed",
			interfaces.Field{Key: "domain", Value: domain},
			interfaces.Field{Key: "error", Value: err.Error()})
		return nil
	}

	self := utils.RegistrableDomain(domain)
	var hints []Hint
	for _, result := range parsed.OrganicResults {
		if result.Link == "" {
			continue
		}
		u, err := url.Parse(result.Link)
		if err != nil || u.Hostname() == "" {
			continue
		}
		host := utils.RegistrableDomain(u.Hostname())
		if host == self {
			continue
		}
		hints = append(hints, Hint{
			Domain: host,
			Title:  result.Title,
			URL:    result.Link,
		})
		if len(hints) >= maxBacklinkHints {
			break
		}
	}
	return hints
}
