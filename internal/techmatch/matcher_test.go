package techmatch_test

import (
	"net/http"
	"reflect"
	"testing"

	"github.com/sitelens/sitelens/internal/techmatch"
)

const wordpressPage = `<!DOCTYPE html>
<html><head>
<link rel="stylesheet" href="/wp-content/themes/acme/style.css">
<script src="/wp-includes/js/jquery/jquery.min.js"></script>
<script async src="https://www.googletagmanager.com/gtag/js?id=G-1"></script>
<link href="https://fonts.googleapis.com/css2?family=Inter" rel="stylesheet">
</head><body></body></html>`

func TestMatch_WordPressPage(t *testing.T) {
	t.Parallel()

	headers := http.Header{}
	headers.Set("Server", "nginx/1.24.0")

	profile := techmatch.Match(wordpressPage, headers)

	if profile.CMS != "WordPress" {
		t.Errorf("CMS = %q, want WordPress", profile.CMS)
	}
	if profile.Server != "nginx/1.24.0" {
		t.Errorf("Server = %q, want raw header value", profile.Server)
	}
	if len(profile.Libraries) == 0 || profile.Libraries[0] != "jQuery" {
		t.Errorf("Libraries = %v, want jQuery first", profile.Libraries)
	}
	found := false
	for _, a := range profile.Analytics {
		if a == "Google Analytics" {
			found = true
		}
	}
	if !found {
		t.Errorf("Analytics = %v, want Google Analytics", profile.Analytics)
	}
	if len(profile.Fonts) != 1 || profile.Fonts[0] != "Google Fonts" {
		t.Errorf("Fonts = %v, want [Google Fonts]", profile.Fonts)
	}
}

func TestMatch_NextJSBeforeReact(t *testing.T) {
	t.Parallel()

	html := `<script id="__NEXT_DATA__"></script><script src="/_next/static/chunks/react.js"></script>`
	profile := techmatch.Match(html, nil)

	if profile.Framework != "Next.js" {
		t.Errorf("Framework = %q, want Next.js to shadow React", profile.Framework)
	}
}

func TestMatch_HeaderSignatures(t *testing.T) {
	t.Parallel()

	headers := http.Header{}
	headers.Set("CF-Ray", "8a2f-FRA")
	headers.Set("X-Vercel-Id", "fra1::abcd")
	headers.Set("X-Powered-By", "Express")

	profile := techmatch.Match("", headers)

	if profile.CDN != "Cloudflare" {
		t.Errorf("CDN = %q, want Cloudflare", profile.CDN)
	}
	if profile.Hosting != "Vercel" {
		t.Errorf("Hosting = %q, want Vercel", profile.Hosting)
	}
	// No Server header: X-Powered-By is the fallback.
	if profile.Server != "Express" {
		t.Errorf("Server = %q, want Express", profile.Server)
	}
}

func TestMatch_EmptyInputs(t *testing.T) {
	t.Parallel()

	profile := techmatch.Match("", nil)
	if !profile.Empty() {
		t.Errorf("expected empty profile, got %+v", profile)
	}
}

func TestMatch_Idempotent(t *testing.T) {
	t.Parallel()

	headers := http.Header{}
	headers.Set("Server", "cloudflare")
	headers.Set("CF-Ray", "1")

	first := techmatch.Match(wordpressPage, headers)
	second := techmatch.Match(wordpressPage, headers)

	if !reflect.DeepEqual(first, second) {
		t.Errorf("Match not deterministic:\n%+v\n%+v", first, second)
	}
}
