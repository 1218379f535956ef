package interfaces

import (
	"context"

	"github.com/sitelens/sitelens/internal/model"
)

// WebClient abstracts the outbound HTTP backend so scans can run against either
// a plain net/http client or a rendering (chromedp) client.
type WebClient interface {
	Do(ctx context.Context, req *model.Request) (*model.Response, error)

	// Get is a convenience method for simple GET requests
	Get(ctx context.Context, url string) (*model.Response, error)

	Close() error
}
