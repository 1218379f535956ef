// Command sitelens runs the website-intelligence API server, or a single
// scan when -scan is given.
//
// Usage:
//
//	sitelens [-config sitelens.yaml] [-addr :8080]
//	sitelens -scan https://stripe.com
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"github.com/sitelens/sitelens/internal/app"
	"github.com/sitelens/sitelens/internal/logging"
	"github.com/sitelens/sitelens/internal/server"
)

func main() {
	var (
		configPath = flag.String("config", "", "Path to a config file (optional)")
		addr       = flag.String("addr", "", "HTTP listen address override")
		scanURL    = flag.String("scan", "", "Run one scan for this URL, print the result and exit")
	)
	flag.Parse()

	// Credentials live in .env during development; missing file is fine.
	_ = godotenv.Load()

	logger := logging.NewStdoutLogger("sitelens")

	cfg, err := app.LoadConfig(*configPath)
	if err != nil {
		logger.Error("loading config", logging.Field{Key: "error", Value: err.Error()})
		os.Exit(1)
	}
	if *addr != "" {
		cfg.ListenAddr = *addr
	}

	srv, err := server.NewServer(server.Config{
		ListenAddr: cfg.ListenAddr,
		AppConfig:  cfg,
		Logger:     logger,
	})
	if err != nil {
		logger.Error("starting server", logging.Field{Key: "error", Value: err.Error()})
		os.Exit(1)
	}
	defer srv.Close()

	if *scanURL != "" {
		res, err := srv.Scanner().RunScan(context.Background(), "", *scanURL, nil)
		if err != nil {
			logger.Error("running scan", logging.Field{Key: "error", Value: err.Error()})
			os.Exit(1)
		}
		out, _ := json.MarshalIndent(res, "", "  ")
		fmt.Println(string(out))
		return
	}

	logger.Info("listening", logging.Field{Key: "addr", Value: cfg.ListenAddr})
	if err := srv.HTTPServer().ListenAndServe(); err != nil {
		logger.Error("server stopped", logging.Field{Key: "error", Value: err.Error()})
		os.Exit(1)
	}
}
