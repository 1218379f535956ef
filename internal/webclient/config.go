package webclient

import "time"

// Client selects the fetch backend.
type Client string

const (
	ClientNetHTTP  Client = "nethttp"
	ClientChromedp Client = "chromedp"
)

// Config is the minimal configuration required for constructing a WebClient.
type Config struct {
	Client Client

	// Timeout bounds a single fetch. Zero means the 30s default.
	Timeout time.Duration

	// UserAgent is sent on every request; some origins serve different markup
	// to empty or default Go user agents.
	UserAgent string
}

// DefaultUserAgent mirrors what the analysis catalogs were tuned against.
const DefaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36"
