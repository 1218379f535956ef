package utils

import (
	"fmt"
	"net"
	"net/url"
	"strings"

	"golang.org/x/net/idna"
	"golang.org/x/net/publicsuffix"
)

// Target is a parsed, normalized scan target. Domain is the lowercased host
// with any "www." prefix and port stripped; it keys authority lookup and
// estimation seeding.
type Target struct {
	URL    *url.URL
	Domain string
}

// ParseTarget validates that raw is an absolute http(s) URL and derives the
// normalized domain. This is the one place a scan can fail up front; every
// later stage degrades instead of failing.
func ParseTarget(raw string) (*Target, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, fmt.Errorf("empty url")
	}
	u, err := url.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("parse url %q: %w", raw, err)
	}
	if !u.IsAbs() || (u.Scheme != "http" && u.Scheme != "https") {
		return nil, fmt.Errorf("url %q is not an absolute http(s) url", raw)
	}
	host := strings.ToLower(u.Hostname())
	if host == "" {
		return nil, fmt.Errorf("url %q has no host", raw)
	}
	// Unicode hosts go through punycode so the domain is stable as a key.
	if ascii, err := idna.Lookup.ToASCII(host); err == nil {
		host = ascii
	}
	host = strings.TrimPrefix(host, "www.")

	return &Target{URL: u, Domain: host}, nil
}

// Brand returns the brand-ish first label of a domain ("stripe" for
// "stripe.com"), used to seed autocomplete queries.
func Brand(domain string) string {
	domain = strings.TrimPrefix(strings.ToLower(domain), "www.")
	if i := strings.IndexByte(domain, '.'); i > 0 {
		return domain[:i]
	}
	return domain
}

// RegistrableDomain collapses a host to its eTLD+1 ("blog.example.co.uk" ->
// "example.co.uk"). Bare IPs and hosts the public suffix list has no answer
// for (e.g. localhost) come back unchanged.
func RegistrableDomain(host string) string {
	host = strings.ToLower(strings.TrimSuffix(host, "."))
	if net.ParseIP(host) != nil {
		return host
	}
	d, err := publicsuffix.EffectiveTLDPlusOne(host)
	if err != nil {
		return host
	}
	return d
}

// Suffix returns the final dot-separated label of a domain ("org" for
// "example.org"), or "" when there is none.
func Suffix(domain string) string {
	if i := strings.LastIndexByte(domain, '.'); i >= 0 && i+1 < len(domain) {
		return domain[i+1:]
	}
	return ""
}

// SeedFor derives a deterministic PRNG seed from a domain: the sum of its
// byte values. Matches the demo-stable seeding the estimation engine expects.
func SeedFor(domain string) int64 {
	var sum int64
	for i := 0; i < len(domain); i++ {
		sum += int64(domain[i])
	}
	return sum
}
