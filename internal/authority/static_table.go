package authority

// staticTable holds hand-assigned scores for well-known high-traffic domains.
// Entries here always override the external API: their authority is not in
// question and API data for them tends to be rate limited or noisy.
var staticTable = map[string]int{
	"google.com":        100,
	"youtube.com":       99,
	"facebook.com":      96,
	"instagram.com":     94,
	"twitter.com":       94,
	"x.com":             94,
	"wikipedia.org":     98,
	"amazon.com":        96,
	"reddit.com":        91,
	"linkedin.com":      98,
	"netflix.com":       93,
	"apple.com":         97,
	"microsoft.com":     97,
	"github.com":        94,
	"stackoverflow.com": 92,
	"medium.com":        94,
	"nytimes.com":       94,
	"bbc.com":           93,
	"cnn.com":           92,
	"ebay.com":          90,
	"walmart.com":       89,
	"paypal.com":        91,
	"adobe.com":         94,
	"wordpress.org":     93,
	"mozilla.org":       91,
	"cloudflare.com":    90,
	"shopify.com":       90,
	"stripe.com":        89,
}
