package model

// SEOHealth captures the fixed set of on-page markers plus the robots.txt and
// sitemap probe outcomes, and the derived 0-100 score.
//
// The score is a weighted sum over a fixed subset of these fields only (title
// length band, meta description length band, h1 presence, ssl, robots.txt,
// sitemap). Canonical, meta-robots/noindex, Open Graph, Twitter card and image
// alt coverage are reported but deliberately excluded from the score so it
// stays comparable across scans.
type SEOHealth struct {
	Score int `json:"score"`

	HasTitle    bool `json:"hasTitle"`
	TitleLength int  `json:"titleLength"`

	HasMetaDescription    bool `json:"hasMetaDescription"`
	MetaDescriptionLength int  `json:"metaDescriptionLength"`

	HasH1   bool `json:"hasH1"`
	H1Count int  `json:"h1Count"`

	HasCanonical  bool `json:"hasCanonical"`
	HasMetaRobots bool `json:"hasMetaRobots"`
	IsNoindex     bool `json:"isNoindex"`

	HasOpenGraph     bool `json:"hasOpenGraph"`
	HasTwitterCard   bool `json:"hasTwitterCard"`
	ImageAltsPresent bool `json:"imageAltsPresent"`

	HasSsl       bool `json:"hasSsl"`
	HasRobotsTxt bool `json:"hasRobotsTxt"`
	HasSitemap   bool `json:"hasSitemap"`
}
