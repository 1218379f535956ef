// Package perf fetches page performance metrics from a PageSpeed-Insights
// style API. Performance data is externally sourced; the scan degrades to a
// nil profile when the API is unavailable.
package perf

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"

	"github.com/sitelens/sitelens/internal/interfaces"
	"github.com/sitelens/sitelens/internal/model"
)

const DefaultAPIBaseURL = "https://www.googleapis.com/pagespeedonline/v5/runPagespeed"

// Config for the client. APIKey is optional for low volumes but recommended.
type Config struct {
	APIKey     string
	APIBaseURL string
}

// Report is what a page-speed run yields: the performance metrics plus the
// API's own SEO score, which scans merge with the local one.
type Report struct {
	Performance model.PerformanceMetrics
	SEOScore    int
}

type Client struct {
	cfg    Config
	wc     interfaces.WebClient
	logger interfaces.Logger
}

func NewClient(cfg Config, wc interfaces.WebClient, logger interfaces.Logger) *Client {
	if cfg.APIBaseURL == "" {
		cfg.APIBaseURL = DefaultAPIBaseURL
	}
	return &Client{
		cfg:    cfg,
		wc:     wc,
		logger: logger.With(interfaces.Field{Key: "component", Value: "perf"}),
	}
}

// psiResponse is the subset of the Lighthouse payload we read.
type psiResponse struct {
	LighthouseResult struct {
		Categories struct {
			Performance struct {
				Score float64 `json:"score"`
			} `json:"performance"`
			SEO struct {
				Score float64 `json:"score"`
			} `json:"seo"`
		} `json:"categories"`
		Audits map[string]struct {
			NumericValue float64 `json:"numericValue"`
		} `json:"audits"`
	} `json:"lighthouseResult"`
}

// Analyze runs a mobile performance+SEO audit for pageURL. Returns nil on
// any failure; performance is a best-effort signal.
func (c *Client) Analyze(ctx context.Context, pageURL string) *Report {
	params := url.Values{}
	params.Set("url", pageURL)
	params.Set("strategy", "mobile")
	params.Add("category", "PERFORMANCE")
	params.Add("category", "SEO")
	if c.cfg.APIKey != "" {
		params.Set("key", c.cfg.APIKey)
	}

	resp, err := c.wc.Get(ctx, c.cfg.APIBaseURL+"?"+params.Encode())
	if err != nil || !resp.OK() {
		status := 0
		if resp != nil {
			status = resp.StatusCode
		}
		c.logger.Warn("pagespeed fetch failed",
			interfaces.Field{Key: "url", Value: pageURL},
			interfaces.Field{Key: "status", Value: status})
		return nil
	}

	var parsed psiResponse
	if err := json.Unmarshal(resp.Body, &parsed); err != nil {
		c.logger.Warn("pagespeed decode failed",
			interfaces.Field{Key: "error", Value: fmt.Sprintf("%v", err)})
		return nil
	}

	audit := func(name string) float64 {
		return parsed.LighthouseResult.Audits[name].NumericValue
	}

	return &Report{
		Performance: model.PerformanceMetrics{
			Score: int(parsed.LighthouseResult.Categories.Performance.Score*100 + 0.5),
			FCP:   audit("first-contentful-paint"),
			LCP:   audit("largest-contentful-paint"),
			CLS:   audit("cumulative-layout-shift"),
			TBT:   audit("total-blocking-time"),
			SI:    audit("speed-index"),
		},
		SEOScore: int(parsed.LighthouseResult.Categories.SEO.Score*100 + 0.5),
	}
}
