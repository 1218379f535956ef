package server

import (
	"github.com/sitelens/sitelens/internal/app"
	"github.com/sitelens/sitelens/internal/interfaces"
)

type Config struct {
	// ListenAddr is the HTTP listen address for the API server.
	ListenAddr string

	// AppConfig configures the scan pipeline. Nil means app.DefaultConfig().
	AppConfig *app.Config

	// Logger is optional; nil gets a stdout JSON logger.
	Logger interfaces.Logger
}
