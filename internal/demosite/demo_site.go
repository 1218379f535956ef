// Package demosite serves a small fixture website for exercising scans
// locally: its pages carry recognizable technology fingerprints and SEO
// markers in various states of repair, plus robots.txt and sitemap.xml.
package demosite

import (
	"fmt"
	"net/http"
	"sync"
)

// Page is one servable fixture page. Versions allows flipping a page's
// content at runtime so repeated scans produce different snapshots to diff.
type Page struct {
	Path        string
	ContentType string
	Headers     map[string]string
	Versions    []string
}

// Site is the fixture HTTP server.
type Site struct {
	cfg      Config
	pages    map[string]Page
	versions map[string]int
	mu       sync.RWMutex
}

// NewSite creates a fixture site with the built-in page set.
func NewSite(cfg Config) *Site {
	pages := make(map[string]Page)
	versions := make(map[string]int)
	for _, p := range builtinPages() {
		pages[p.Path] = p
		versions[p.Path] = 0
	}
	return &Site{cfg: cfg, pages: pages, versions: versions}
}

// Start runs the site until the listener fails.
func (s *Site) Start() error {
	addr := fmt.Sprintf(":%d", s.cfg.Port)
	fmt.Printf("Fixture site on http://localhost%s\n", addr)
	return http.ListenAndServe(addr, s.Handler())
}

// Handler returns the site's route table, usable directly in tests.
func (s *Site) Handler() http.Handler {
	mux := http.NewServeMux()
	for path := range s.pages {
		mux.HandleFunc(path, s.pageHandler(path))
	}
	mux.HandleFunc("/demo/bump", s.bumpHandler)
	mux.HandleFunc("/demo/reset", s.resetHandler)
	return mux
}

func (s *Site) pageHandler(path string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s.mu.RLock()
		page, ok := s.pages[path]
		version := s.versions[path]
		s.mu.RUnlock()

		if !ok || len(page.Versions) == 0 {
			http.NotFound(w, r)
			return
		}
		if version >= len(page.Versions) {
			version = len(page.Versions) - 1
		}

		for k, v := range page.Headers {
			w.Header().Set(k, v)
		}
		contentType := page.ContentType
		if contentType == "" {
			contentType = "text/html; charset=utf-8"
		}
		w.Header().Set("Content-Type", contentType)
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(page.Versions[version]))
	}
}

// bumpHandler advances every page to its next version, wrapping around.
func (s *Site) bumpHandler(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	for path, page := range s.pages {
		if len(page.Versions) > 1 {
			s.versions[path] = (s.versions[path] + 1) % len(page.Versions)
		}
	}
	s.mu.Unlock()
	fmt.Fprintln(w, "bumped")
}

func (s *Site) resetHandler(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	for path := range s.versions {
		s.versions[path] = 0
	}
	s.mu.Unlock()
	fmt.Fprintln(w, "reset")
}

func builtinPages() []Page {
	return []Page{
		{
			Path: "/",
			Headers: map[string]string{
				"Server":       "nginx/1.24.0",
				"X-Powered-By": "PHP/8.2",
			},
			Versions: []string{wellFormedHome, wellFormedHomeV2},
		},
		{
			Path: "/app",
			Headers: map[string]string{
				"Server": "Vercel",
				"CF-Ray": "8a2f1c3d4e5f6789-FRA",
			},
			Versions: []string{spaPage},
		},
		{
			Path:     "/bare",
			Versions: []string{barePage},
		},
		{
			Path:        "/robots.txt",
			ContentType: "text/plain",
			Versions:    []string{robotsTxt},
		},
		{
			Path:        "/sitemap.xml",
			ContentType: "application/xml",
			Versions:    []string{sitemapXML},
		},
	}
}

// wellFormedHome is a WordPress-flavored page with every SEO box ticked:
// in-range title and description, one h1, canonical, social tags, img alts.
const wellFormedHome = `<!DOCTYPE html>
<html lang="en">
<head>
<title>Acme Widgets - Handcrafted Widgets Since 1990</title>
<meta name="description" content="Acme Widgets designs and manufactures handcrafted widgets for discerning customers worldwide. Browse our catalog of over 500 widget designs today.">
<link rel="canonical" href="http://localhost:9999/">
<meta property="og:title" content="Acme Widgets">
<meta property="og:image" content="/wp-content/uploads/hero.jpg">
<meta name="twitter:card" content="summary_large_image">
<link rel="stylesheet" href="/wp-content/themes/acme/style.css">
<script src="/wp-includes/js/jquery/jquery.min.js"></script>
<script async src="https://www.googletagmanager.com/gtag/js?id=G-XXXX"></script>
<script>window.dataLayer = window.dataLayer || []; function gtag(){dataLayer.push(arguments);} gtag('js', new Date());</script>
<link href="https://fonts.googleapis.com/css2?family=Inter" rel="stylesheet">
</head>
<body>
<h1>Handcrafted Widgets Since 1990</h1>
<img src="/wp-content/uploads/hero.jpg" alt="A selection of widgets">
<p>Welcome to Acme Widgets.</p>
</body>
</html>`

// wellFormedHomeV2 swaps some copy so a rescan-and-diff has text changes.
const wellFormedHomeV2 = `<!DOCTYPE html>
<html lang="en">
<head>
<title>Acme Widgets - Handcrafted Widgets Since 1990</title>
<meta name="description" content="Acme Widgets designs and manufactures handcrafted widgets for discerning customers worldwide. Browse our catalog of over 500 widget designs today.">
<link rel="canonical" href="http://localhost:9999/">
<meta property="og:title" content="Acme Widgets">
<meta property="og:image" content="/wp-content/uploads/hero.jpg">
<meta name="twitter:card" content="summary_large_image">
<link rel="stylesheet" href="/wp-content/themes/acme/style.css">
<script src="/wp-includes/js/jquery/jquery.min.js"></script>
<script async src="https://www.googletagmanager.com/gtag/js?id=G-XXXX"></script>
<link href="https://fonts.googleapis.com/css2?family=Inter" rel="stylesheet">
</head>
<body>
<h1>Handcrafted Widgets Since 1990</h1>
<img src="/wp-content/uploads/hero.jpg" alt="A selection of widgets">
<p>Summer sale: all widgets 20 percent off through August.</p>
</body>
</html>`

// spaPage looks like a Next.js app with payment, chat and monitoring
// scripts, and deliberately weak SEO: no description, two h1s, noindex.
const spaPage = `<!DOCTYPE html>
<html>
<head>
<title>App</title>
<meta name="robots" content="noindex, nofollow">
<script src="/_next/static/chunks/main.js"></script>
<script id="__NEXT_DATA__" type="application/json">{"props":{}}</script>
<script src="https://js.stripe.com/v3/"></script>
<script src="https://widget.intercom.io/widget/abc"></script>
<script src="https://browser.sentry-cdn.com/7.0.0/bundle.min.js"></script>
</head>
<body>
<h1>Dashboard</h1>
<h1>Welcome back</h1>
<img src="/chart.png">
<div id="__next"></div>
</body>
</html>`

// barePage has nothing a scanner could credit.
const barePage = `<html><body><p>hello</p></body></html>`

const robotsTxt = `User-agent: *
Disallow: /demo/

Sitemap: http://localhost:9999/sitemap.xml
`

const sitemapXML = `<?xml version="1.0" encoding="UTF-8"?>
<urlset xmlns="http://www.sitemaps.org/schemas/sitemap/0.9">
  <url><loc>http://localhost:9999/</loc></url>
  <url><loc>http://localhost:9999/app</loc></url>
</urlset>
`
