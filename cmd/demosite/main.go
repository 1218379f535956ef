// Command demosite starts the SiteLens fixture website for exercising scans
// against a local target.
// Usage: go run ./cmd/demosite [port]
// Default port: 9999
package main

import (
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/sitelens/sitelens/internal/demosite"
)

func main() {
	cfg := demosite.DefaultConfig()

	if len(os.Args) > 1 {
		port, err := strconv.Atoi(os.Args[1])
		if err != nil || port < 1 || port > 65535 {
			log.Fatalf("Invalid port: %s", os.Args[1])
		}
		cfg.Port = port
	}

	fmt.Println("SiteLens fixture site")
	fmt.Println()
	fmt.Println("Pages:")
	fmt.Println("  /           well-formed WordPress-style home page")
	fmt.Println("  /app        Next.js-style app shell with weak SEO")
	fmt.Println("  /bare       page with no detectable signals")
	fmt.Println("  /demo/bump  rotate page versions (for snapshot diffs)")
	fmt.Println("  /demo/reset restore initial versions")
	fmt.Println()

	site := demosite.NewSite(cfg)
	if err := site.Start(); err != nil {
		log.Fatalf("Site error: %v", err)
	}
}
