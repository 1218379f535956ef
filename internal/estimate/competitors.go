package estimate

// competitorTable suggests industry competitors for well-known domains. A
// SERP-overlap lookup could replace this, but a static map covers the demo
// set and keeps the panel populated for everything else via the generic
// fallback.
var competitorTable = map[string][]string{
	"amazon.com":   {"ebay.com", "walmart.com", "target.com", "bestbuy.com"},
	"google.com":   {"bing.com", "yahoo.com", "duckduckgo.com"},
	"youtube.com":  {"vimeo.com", "dailymotion.com", "twitch.tv"},
	"facebook.com": {"twitter.com", "instagram.com", "linkedin.com"},
	"github.com":   {"gitlab.com", "bitbucket.org", "sourceforge.net"},
	"netflix.com":  {"hulu.com", "disneyplus.com", "max.com"},
	"shopify.com":  {"bigcommerce.com", "woocommerce.com", "squarespace.com"},
	"stripe.com":   {"adyen.com", "paypal.com", "squareup.com"},
}

var genericCompetitors = []string{"competitor1.com", "competitor2.com", "competitor3.com"}

// Competitors returns suggested competitor domains for domain.
func Competitors(domain string) []string {
	if list, ok := competitorTable[domain]; ok {
		out := make([]string, len(list))
		copy(out, list)
		return out
	}
	out := make([]string, len(genericCompetitors))
	copy(out, genericCompetitors)
	return out
}
