// Package seo extracts a fixed set of on-page markers and folds them, with
// the robots.txt/sitemap probe outcomes, into a weighted 0-100 health score.
package seo

import (
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/sitelens/sitelens/internal/model"
)

// Scoring weights. Hand-tuned in the product; changing any of them is a
// product decision, not a bug fix. Signals extracted but absent from this
// table (canonical, meta robots, Open Graph, Twitter card, image alts) are
// deliberately unscored so the number stays comparable across scans.
const (
	weightTitle    = 20 // title present and 30-60 chars
	weightMetaDesc = 20 // description present and 120-160 chars
	weightH1       = 15
	weightSsl      = 20
	weightRobots   = 10
	weightSitemap  = 15
)

const (
	titleMinLen, titleMaxLen       = 30, 60
	metaDescMinLen, metaDescMaxLen = 120, 160
)

// Evaluate parses the fixed marker set out of html and derives the score.
// robotsReachable and sitemapReachable come from the fetcher's probes; their
// failures default to false without aborting evaluation. Callers must not
// invoke Evaluate when the page fetch itself failed.
func Evaluate(html string, pageURL string, robotsReachable, sitemapReachable bool) *model.SEOHealth {
	h := &model.SEOHealth{
		HasSsl:           strings.HasPrefix(strings.ToLower(pageURL), "https:"),
		HasRobotsTxt:     robotsReachable,
		HasSitemap:       sitemapReachable,
		ImageAltsPresent: true, // until an <img> without alt shows up
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err == nil {
		extractMarkers(doc, h)
	}

	h.Score = score(h)
	return h
}

func extractMarkers(doc *goquery.Document, h *model.SEOHealth) {
	if title := doc.Find("title").First(); title.Length() > 0 {
		text := title.Text()
		h.HasTitle = text != ""
		h.TitleLength = len([]rune(text))
	}

	doc.Find("meta").Each(func(_ int, s *goquery.Selection) {
		name, _ := s.Attr("name")
		content, _ := s.Attr("content")
		property, _ := s.Attr("property")

		switch {
		case strings.EqualFold(name, "description"):
			if !h.HasMetaDescription { // first match only
				h.HasMetaDescription = true
				h.MetaDescriptionLength = len([]rune(content))
			}
		case strings.EqualFold(name, "robots"):
			if !h.HasMetaRobots {
				h.HasMetaRobots = true
				h.IsNoindex = strings.Contains(strings.ToLower(content), "noindex")
			}
		}

		if strings.HasPrefix(strings.ToLower(property), "og:") {
			h.HasOpenGraph = true
		}
		if strings.HasPrefix(strings.ToLower(name), "twitter:") {
			h.HasTwitterCard = true
		}
	})

	h.H1Count = doc.Find("h1").Length()
	h.HasH1 = h.H1Count > 0

	doc.Find("link").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		rel, _ := s.Attr("rel")
		if strings.EqualFold(rel, "canonical") {
			if _, ok := s.Attr("href"); ok {
				h.HasCanonical = true
				return false
			}
		}
		return true
	})

	// False as soon as a single image lacks an alt attribute; an empty
	// alt="" still counts as present.
	doc.Find("img").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		if _, ok := s.Attr("alt"); !ok {
			h.ImageAltsPresent = false
			return false
		}
		return true
	})
}

// score sums the weight table. Each condition is independent; max 100.
func score(h *model.SEOHealth) int {
	s := 0
	if h.HasTitle && h.TitleLength >= titleMinLen && h.TitleLength <= titleMaxLen {
		s += weightTitle
	}
	if h.HasMetaDescription && h.MetaDescriptionLength >= metaDescMinLen && h.MetaDescriptionLength <= metaDescMaxLen {
		s += weightMetaDesc
	}
	if h.HasH1 {
		s += weightH1
	}
	if h.HasSsl {
		s += weightSsl
	}
	if h.HasRobotsTxt {
		s += weightRobots
	}
	if h.HasSitemap {
		s += weightSitemap
	}
	return s
}
