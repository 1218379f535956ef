package app

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/sitelens/sitelens/internal/authority"
	"github.com/sitelens/sitelens/internal/insight"
	"github.com/sitelens/sitelens/internal/perf"
	"github.com/sitelens/sitelens/internal/serp"
	"github.com/sitelens/sitelens/internal/webclient"
)

// Config wires the runtime options for a server or one-shot scan run.
type Config struct {
	// ListenAddr is the HTTP listen address.
	ListenAddr string

	// StorageRoot is where the scan database lives.
	StorageRoot string

	// ScanTimeout bounds one whole scan including all external calls.
	ScanTimeout time.Duration

	// HistorySize caps the in-memory recent-scan ring.
	HistorySize int

	WebClientCfg webclient.Config
	AuthorityCfg authority.Config
	SerpCfg      serp.Config
	PerfCfg      perf.Config
	InsightCfg   insight.Config
}

// DefaultConfig returns a Config populated with sensible development defaults.
func DefaultConfig() *Config {
	return &Config{
		ListenAddr:  ":8080",
		StorageRoot: "~/.config/sitelens",
		ScanTimeout: 60 * time.Second,
		HistorySize: 20,
		WebClientCfg: webclient.Config{
			Client:  webclient.ClientNetHTTP,
			Timeout: 30 * time.Second,
		},
	}
}

// LoadConfig builds a Config from defaults, an optional config file and
// SITELENS_* environment variables. API credentials normally arrive through
// the environment (SITELENS_OPENPAGERANK_API_KEY and friends).
func LoadConfig(path string) (*Config, error) {
	v := viper.New()

	v.SetDefault("server.listen_addr", ":8080")
	v.SetDefault("server.scan_timeout", "60s")
	v.SetDefault("server.history_size", 20)
	v.SetDefault("storage.root", "~/.config/sitelens")
	v.SetDefault("webclient.backend", string(webclient.ClientNetHTTP))
	v.SetDefault("webclient.timeout", "30s")
	v.SetDefault("serp.requests_per_second", 5.0)

	v.SetEnvPrefix("SITELENS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	cfg := DefaultConfig()
	cfg.ListenAddr = v.GetString("server.listen_addr")
	cfg.ScanTimeout = v.GetDuration("server.scan_timeout")
	cfg.HistorySize = v.GetInt("server.history_size")
	cfg.StorageRoot = v.GetString("storage.root")

	cfg.WebClientCfg.Client = webclient.Client(v.GetString("webclient.backend"))
	cfg.WebClientCfg.Timeout = v.GetDuration("webclient.timeout")
	cfg.WebClientCfg.UserAgent = v.GetString("webclient.user_agent")

	cfg.AuthorityCfg.APIKey = v.GetString("openpagerank.api_key")
	cfg.AuthorityCfg.APIBaseURL = v.GetString("openpagerank.base_url")

	cfg.SerpCfg.APIKey = v.GetString("serp.api_key")
	cfg.SerpCfg.SerpURL = v.GetString("serp.base_url")
	cfg.SerpCfg.AutocompleteURL = v.GetString("serp.autocomplete_url")
	cfg.SerpCfg.RequestsPerSecond = v.GetFloat64("serp.requests_per_second")

	cfg.PerfCfg.APIKey = v.GetString("pagespeed.api_key")
	cfg.PerfCfg.APIBaseURL = v.GetString("pagespeed.base_url")

	cfg.InsightCfg.APIKey = v.GetString("insight.api_key")
	cfg.InsightCfg.APIBaseURL = v.GetString("insight.base_url")
	cfg.InsightCfg.Model = v.GetString("insight.model")

	if cfg.ScanTimeout <= 0 {
		return nil, fmt.Errorf("server.scan_timeout must be positive")
	}
	if cfg.HistorySize <= 0 {
		return nil, fmt.Errorf("server.history_size must be positive")
	}
	return cfg, nil
}
