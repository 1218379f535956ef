package webclient

import (
	"fmt"

	"github.com/sitelens/sitelens/internal/interfaces"
)

// NewWebClient constructs the backend selected by cfg.Client. An empty
// backend name falls back to nethttp.
func NewWebClient(cfg Config, logger interfaces.Logger) (interfaces.WebClient, error) {
	switch cfg.Client {
	case ClientNetHTTP, "":
		return NewNetHTTPClient(cfg, logger, nil)
	case ClientChromedp:
		return NewChromedpClient(cfg, logger)
	default:
		return nil, fmt.Errorf("unknown webclient backend %q", cfg.Client)
	}
}
