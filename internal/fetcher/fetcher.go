package fetcher

import (
	"context"
	"net/url"

	"github.com/temoto/robotstxt"

	"github.com/sitelens/sitelens/internal/interfaces"
	"github.com/sitelens/sitelens/internal/model"
)

// PageSignals is everything the fetcher could gather for one target. Any
// field may be nil/false: fetch failures degrade to absent signals here and
// are never surfaced as errors to callers.
type PageSignals struct {
	// Page is the raw fetch of the target URL itself, nil when unreachable.
	Page *model.Response

	// RobotsReachable is true when GET /robots.txt returned 2xx.
	RobotsReachable bool

	// Robots is the parsed robots.txt when reachable and parseable.
	Robots *robotstxt.RobotsData

	// SitemapURLs are the Sitemap directives found in robots.txt.
	SitemapURLs []string

	// SitemapReachable is true when a sitemap probe returned 2xx, trying
	// robots.txt-declared sitemaps first and /sitemap.xml as the default.
	SitemapReachable bool
}

// Fetcher issues the outbound requests for one scan: the target page plus the
// robots.txt and sitemap probes.
type Fetcher struct {
	wc     interfaces.WebClient
	logger interfaces.Logger
}

func New(wc interfaces.WebClient, logger interfaces.Logger) *Fetcher {
	return &Fetcher{
		wc:     wc,
		logger: logger.With(interfaces.Field{Key: "component", Value: "fetcher"}),
	}
}

// FetchPage fetches the target URL. Returns nil on any error or non-2xx
// status; the caller's analysis components treat nil as "no signal".
func (f *Fetcher) FetchPage(ctx context.Context, pageURL string) *model.Response {
	resp, err := f.wc.Get(ctx, pageURL)
	if err != nil {
		f.logger.Warn("page fetch failed",
			interfaces.Field{Key: "url", Value: pageURL},
			interfaces.Field{Key: "error", Value: err.Error()})
		return nil
	}
	if !resp.OK() {
		f.logger.Warn("page fetch non-2xx",
			interfaces.Field{Key: "url", Value: pageURL},
			interfaces.Field{Key: "status", Value: resp.StatusCode})
		return nil
	}
	return resp
}

// FetchSignals gathers the full signal set for pageURL. The page fetch and
// the robots/sitemap probes fail independently of each other.
func (f *Fetcher) FetchSignals(ctx context.Context, pageURL string) *PageSignals {
	sig := &PageSignals{}
	sig.Page = f.FetchPage(ctx, pageURL)

	base, err := url.Parse(pageURL)
	if err != nil {
		return sig
	}

	f.probeRobots(ctx, base, sig)
	f.probeSitemap(ctx, base, sig)
	return sig
}

func (f *Fetcher) probeRobots(ctx context.Context, base *url.URL, sig *PageSignals) {
	robotsURL := base.ResolveReference(&url.URL{Path: "/robots.txt"}).String()
	resp, err := f.wc.Get(ctx, robotsURL)
	if err != nil || !resp.OK() {
		return
	}
	sig.RobotsReachable = true

	data, err := robotstxt.FromBytes(resp.Body)
	if err != nil {
		f.logger.Debug("robots.txt unparseable",
			interfaces.Field{Key: "url", Value: robotsURL})
		return
	}
	sig.Robots = data
	sig.SitemapURLs = append(sig.SitemapURLs, data.Sitemaps...)
}

func (f *Fetcher) probeSitemap(ctx context.Context, base *url.URL, sig *PageSignals) {
	candidates := make([]string, 0, len(sig.SitemapURLs)+1)
	candidates = append(candidates, sig.SitemapURLs...)
	candidates = append(candidates, base.ResolveReference(&url.URL{Path: "/sitemap.xml"}).String())

	for _, candidate := range candidates {
		resp, err := f.wc.Get(ctx, candidate)
		if err == nil && resp.OK() {
			sig.SitemapReachable = true
			return
		}
	}
}
