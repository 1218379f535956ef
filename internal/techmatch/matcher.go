// Package techmatch detects a page's technology stack by scanning raw HTML
// and response headers against an ordered signature catalog.
package techmatch

import (
	"net/http"
	"strings"

	"github.com/sitelens/sitelens/internal/model"
)

// predicate reports whether a signature matches the fetched page. Predicates
// operate on the raw fetched text; no case normalization happens unless a
// predicate lowercases explicitly.
type predicate func(html string, headers http.Header) bool

// rule pairs a predicate with the vendor it identifies.
type rule struct {
	vendor string
	match  predicate
}

func htmlContains(substrs ...string) predicate {
	return func(html string, _ http.Header) bool {
		for _, s := range substrs {
			if strings.Contains(html, s) {
				return true
			}
		}
		return false
	}
}

func headerPresent(keys ...string) predicate {
	return func(_ string, headers http.Header) bool {
		for _, k := range keys {
			if headers.Get(k) != "" {
				return true
			}
		}
		return false
	}
}

func headerContains(key, substr string) predicate {
	return func(_ string, headers http.Header) bool {
		return strings.Contains(strings.ToLower(headers.Get(key)), substr)
	}
}

func anyOf(ps ...predicate) predicate {
	return func(html string, headers http.Header) bool {
		for _, p := range ps {
			if p(html, headers) {
				return true
			}
		}
		return false
	}
}

// Match scans html and headers against the signature catalog and returns the
// categorized profile. It is a pure function of its inputs: fetch failures
// upstream hand in empty html/headers and get an all-empty profile back.
func Match(html string, headers http.Header) *model.TechProfile {
	if headers == nil {
		headers = http.Header{}
	}

	profile := &model.TechProfile{
		CMS:       firstMatch(cmsRules, html, headers),
		Framework: firstMatch(frameworkRules, html, headers),
		Server:    serverValue(headers),
		CDN:       firstMatch(cdnRules, html, headers),
		Hosting:   firstMatch(hostingRules, html, headers),
		Edge:      firstMatch(edgeRules, html, headers),

		Analytics:  allMatches(analyticsRules, html, headers),
		Marketing:  allMatches(marketingRules, html, headers),
		Payments:   allMatches(paymentsRules, html, headers),
		Chat:       allMatches(chatRules, html, headers),
		ABTesting:  allMatches(abTestingRules, html, headers),
		Monitoring: allMatches(monitoringRules, html, headers),
		Security:   allMatches(securityRules, html, headers),
		Fonts:      allMatches(fontsRules, html, headers),
		Databases:  allMatches(databasesRules, html, headers),
		Libraries:  allMatches(librariesRules, html, headers),
	}
	return profile
}

// firstMatch evaluates rules top to bottom and stops at the first hit.
// Catalog order encodes specificity (e.g. Next.js before React), not
// confidence.
func firstMatch(rules []rule, html string, headers http.Header) string {
	for _, r := range rules {
		if r.match(html, headers) {
			return r.vendor
		}
	}
	return ""
}

// allMatches accumulates every matching vendor in catalog order, deduping
// defensively in case the catalog ever repeats a vendor.
func allMatches(rules []rule, html string, headers http.Header) []string {
	var out []string
	seen := map[string]bool{}
	for _, r := range rules {
		if seen[r.vendor] {
			continue
		}
		if r.match(html, headers) {
			out = append(out, r.vendor)
			seen[r.vendor] = true
		}
	}
	return out
}

// serverValue reports the raw Server header, falling back to X-Powered-By.
// Unlike the other categories this passes the header value through instead of
// mapping to a vendor name.
func serverValue(headers http.Header) string {
	if v := headers.Get("Server"); v != "" {
		return v
	}
	return headers.Get("X-Powered-By")
}
