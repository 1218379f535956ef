package fetcher_test

import (
	"context"
	"testing"

	"github.com/sitelens/sitelens/internal/fetcher"
	"github.com/sitelens/sitelens/internal/testutil"
)

func TestFetchPage_NilOnFailure(t *testing.T) {
	t.Parallel()

	wc := &testutil.DummyWebClient{
		FailURLs:    map[string]bool{"https://down.example/": true},
		StatusCodes: map[string]int{"https://teapot.example/": 418},
	}
	f := fetcher.New(wc, &testutil.DummyLogger{})

	if resp := f.FetchPage(context.Background(), "https://down.example/"); resp != nil {
		t.Error("expected nil for a failed fetch")
	}
	if resp := f.FetchPage(context.Background(), "https://teapot.example/"); resp != nil {
		t.Error("expected nil for a non-2xx fetch")
	}
	if resp := f.FetchPage(context.Background(), "https://up.example/"); resp == nil {
		t.Error("expected a response for a 200 fetch")
	}
}

func TestFetchSignals_AllReachable(t *testing.T) {
	t.Parallel()

	robots := "User-agent: *\nDisallow: /admin\n\nSitemap: https://acme.dev/custom-map.xml\n"
	wc := &testutil.DummyWebClient{
		Responses: map[string][]byte{
			"https://acme.dev/robots.txt": []byte(robots),
		},
	}
	f := fetcher.New(wc, &testutil.DummyLogger{})

	sig := f.FetchSignals(context.Background(), "https://acme.dev/")

	if sig.Page == nil {
		t.Fatal("expected page response")
	}
	if !sig.RobotsReachable {
		t.Error("robots.txt probe should be reachable")
	}
	if sig.Robots == nil {
		t.Error("expected parsed robots data")
	}
	if len(sig.SitemapURLs) != 1 || sig.SitemapURLs[0] != "https://acme.dev/custom-map.xml" {
		t.Errorf("SitemapURLs = %v, want the robots.txt declaration", sig.SitemapURLs)
	}
	if !sig.SitemapReachable {
		t.Error("sitemap probe should be reachable")
	}

	// The declared sitemap must be probed before the /sitemap.xml default.
	urls := wc.RequestedURLs()
	sawCustom := false
	for _, u := range urls {
		if u == "https://acme.dev/custom-map.xml" {
			sawCustom = true
		}
		if u == "https://acme.dev/sitemap.xml" && sawCustom {
			t.Error("default sitemap probed after the declared one succeeded")
		}
	}
	if !sawCustom {
		t.Errorf("declared sitemap never probed, requests: %v", urls)
	}
}

func TestFetchSignals_DegradesIndependently(t *testing.T) {
	t.Parallel()

	wc := &testutil.DummyWebClient{
		FailURLs: map[string]bool{
			"https://acme.dev/":           true,
			"https://acme.dev/robots.txt": true,
		},
	}
	f := fetcher.New(wc, &testutil.DummyLogger{})

	sig := f.FetchSignals(context.Background(), "https://acme.dev/")

	if sig.Page != nil {
		t.Error("expected nil page")
	}
	if sig.RobotsReachable {
		t.Error("robots should be unreachable")
	}
	// The default sitemap probe still runs and succeeds.
	if !sig.SitemapReachable {
		t.Error("sitemap probe should still succeed on its own")
	}
}

func TestFetchSignals_UnparseableRobotsStillReachable(t *testing.T) {
	t.Parallel()

	wc := &testutil.DummyWebClient{
		Responses: map[string][]byte{
			// robotstxt tolerates almost anything, but reachability must not
			// depend on parse success either way.
			"https://acme.dev/robots.txt": []byte("User-agent: *\nAllow: /\n"),
		},
	}
	f := fetcher.New(wc, &testutil.DummyLogger{})

	sig := f.FetchSignals(context.Background(), "https://acme.dev/")
	if !sig.RobotsReachable {
		t.Error("robots.txt returned 200, must count as reachable")
	}
}
