// Package authority maps a domain to a 0-100 authority score: a static table
// of well-known domains first, then an external page-rank API, then a
// domain-suffix heuristic so no domain ever goes unscored.
package authority

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/sitelens/sitelens/internal/interfaces"
	"github.com/sitelens/sitelens/internal/model"
	"github.com/sitelens/sitelens/internal/utils"
)

// DefaultAPIBaseURL is the OpenPageRank-compatible endpoint queried in step 2.
const DefaultAPIBaseURL = "https://openpagerank.com/api/v1.0/getPageRank"

// Config for the resolver. An empty APIKey disables the external lookup and
// goes straight from the static table to the suffix heuristic.
type Config struct {
	APIKey     string
	APIBaseURL string
}

type Resolver struct {
	cfg    Config
	wc     interfaces.WebClient
	logger interfaces.Logger
}

func NewResolver(cfg Config, wc interfaces.WebClient, logger interfaces.Logger) *Resolver {
	if cfg.APIBaseURL == "" {
		cfg.APIBaseURL = DefaultAPIBaseURL
	}
	return &Resolver{
		cfg:    cfg,
		wc:     wc,
		logger: logger.With(interfaces.Field{Key: "component", Value: "authority"}),
	}
}

// pageRankResponse is the wire shape of the external authority API.
type pageRankResponse struct {
	StatusCode int `json:"status_code"`
	Response   []struct {
		Domain          string  `json:"domain"`
		PageRankInteger int     `json:"page_rank_integer"`
		PageRankDecimal float64 `json:"page_rank_decimal"`
		Rank            string  `json:"rank"`
	} `json:"response"`
}

// Resolve returns the authority score for domain. The static table always
// wins over the external API: well-known domains have well-known authority
// and the API data for them can be noisy or rate limited. Every failure path
// lands on the suffix heuristic, so Resolve cannot fail.
func (r *Resolver) Resolve(ctx context.Context, domain string) model.AuthorityScore {
	domain = strings.ToLower(strings.TrimPrefix(domain, "www."))

	if score, ok := staticTable[domain]; ok {
		return model.AuthorityScore{Score: score, Source: model.AuthorityStaticTable}
	}

	if r.cfg.APIKey != "" {
		if score, rank, err := r.lookup(ctx, domain); err == nil {
			return model.AuthorityScore{Score: score, Rank: rank, Source: model.AuthorityExternalAPI}
		} else {
			r.logger.Warn("authority api lookup failed, using suffix heuristic",
				interfaces.Field{Key: "domain", Value: domain},
				interfaces.Field{Key: "error", Value: err.Error()})
		}
	}

	return model.AuthorityScore{Score: suffixScore(domain), Source: model.AuthorityHeuristicFallback}
}

func (r *Resolver) lookup(ctx context.Context, domain string) (score int, rank string, err error) {
	reqURL := fmt.Sprintf("%s?domains[]=%s", r.cfg.APIBaseURL, url.QueryEscape(domain))
	resp, err := r.wc.Do(ctx, &model.Request{
		Method:  http.MethodGet,
		URL:     reqURL,
		Headers: http.Header{"API-OPR": []string{r.cfg.APIKey}},
	})
	if err != nil {
		return 0, "", err
	}
	if !resp.OK() {
		return 0, "", fmt.Errorf("authority api status %d", resp.StatusCode)
	}

	var parsed pageRankResponse
	if err := json.Unmarshal(resp.Body, &parsed); err != nil {
		return 0, "", fmt.Errorf("decode authority response: %w", err)
	}
	if parsed.StatusCode != 200 || len(parsed.Response) == 0 {
		return 0, "", fmt.Errorf("authority api returned no data for %s", domain)
	}

	entry := parsed.Response[0]
	s := entry.PageRankInteger
	if s < 0 {
		s = 0
	}
	if s > 100 {
		s = 100
	}
	return s, entry.Rank, nil
}

// suffixScore is the last-resort heuristic by top-level-domain suffix.
func suffixScore(domain string) int {
	switch utils.Suffix(domain) {
	case "edu":
		return 75
	case "gov":
		return 80
	case "org":
		return 65
	default:
		return 55
	}
}
