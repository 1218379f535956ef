package serp_test

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/sitelens/sitelens/internal/serp"
	"github.com/sitelens/sitelens/internal/testutil"
)

func newClient(wc *testutil.DummyWebClient, apiKey string) *serp.Client {
	return serp.NewClient(serp.Config{
		APIKey:            apiKey,
		AutocompleteURL:   "https://ac.test",
		SerpURL:           "https://serp.test",
		RequestsPerSecond: 1000, // don't throttle tests
	}, wc, &testutil.DummyLogger{})
}

func serpBody(t *testing.T, results []map[string]any) []byte {
	t.Helper()
	body, err := json.Marshal(map[string]any{"organic_results": results})
	if err != nil {
		t.Fatal(err)
	}
	return body
}

func TestSuggestions_FirefoxFormat(t *testing.T) {
	t.Parallel()

	wc := &testutil.DummyWebClient{
		Responses: map[string][]byte{
			"https://ac.test?client=firefox&q=acme": []byte(`["acme",["acme pricing","acme login","acme api"]]`),
		},
	}
	c := newClient(wc, "")

	got := c.Suggestions(context.Background(), "acme")

	want := []string{"acme pricing", "acme login", "acme api"}
	if len(got) != len(want) {
		t.Fatalf("Suggestions = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Suggestions[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestSuggestions_PairFormat(t *testing.T) {
	t.Parallel()

	wc := &testutil.DummyWebClient{
		Responses: map[string][]byte{
			"https://ac.test?client=firefox&q=acme": []byte(`["acme",[["acme pricing",0],["acme login",0]]]`),
		},
	}
	c := newClient(wc, "")

	got := c.Suggestions(context.Background(), "acme")
	if len(got) != 2 || got[0] != "acme pricing" {
		t.Errorf("Suggestions = %v, want the pair texts", got)
	}
}

func TestSuggestions_FailuresReturnNil(t *testing.T) {
	t.Parallel()

	wc := &testutil.DummyWebClient{
		FailURLs:  map[string]bool{"https://ac.test?client=firefox&q=down": true},
		Responses: map[string][]byte{"https://ac.test?client=firefox&q=garbled": []byte("<html>")},
	}
	c := newClient(wc, "")

	if got := c.Suggestions(context.Background(), "down"); got != nil {
		t.Errorf("Suggestions on error = %v, want nil", got)
	}
	if got := c.Suggestions(context.Background(), "garbled"); got != nil {
		t.Errorf("Suggestions on bad payload = %v, want nil", got)
	}
}

func TestKeywordCandidates_DedupesAndFilters(t *testing.T) {
	t.Parallel()

	wc := &testutil.DummyWebClient{
		Responses: map[string][]byte{
			"https://ac.test?client=firefox&q=acme":       []byte(`["acme",["acme pricing","acme pricing","ok","a very long unrelated query"]]`),
			"https://ac.test?client=firefox&q=acme+login": []byte(`["acme login",["acme login page"]]`),
		},
	}
	c := newClient(wc, "")

	got := c.KeywordCandidates(context.Background(), "acme")

	for i, kw := range got {
		for j := i + 1; j < len(got); j++ {
			if kw == got[j] {
				t.Errorf("duplicate candidate %q", kw)
			}
		}
	}
	// "ok" is short and brand-free, it must be dropped; the long tail query
	// survives on length alone.
	for _, kw := range got {
		if kw == "ok" {
			t.Error("short brand-free candidate was not filtered")
		}
	}
	found := false
	for _, kw := range got {
		if kw == "a very long unrelated query" {
			found = true
		}
	}
	if !found {
		t.Errorf("long-tail candidate missing from %v", got)
	}
	if len(got) > 15 {
		t.Errorf("candidates over cap: %d", len(got))
	}
}

func TestPosition(t *testing.T) {
	t.Parallel()

	body := serpBody(t, []map[string]any{
		{"position": 1, "link": "https://bigcorp.com/a", "title": "Bigcorp"},
		{"position": 2, "link": "https://acme.dev/pricing", "title": "Acme Pricing"},
	})
	wc := &testutil.DummyWebClient{
		Responses: map[string][]byte{
			"https://serp.test?api_key=k&engine=google&num=50&q=acme+pricing": body,
		},
	}
	c := newClient(wc, "k")

	pos, found := c.Position(context.Background(), "acme pricing", "acme.dev")
	if !found || pos != 2 {
		t.Errorf("Position = (%d, %v), want (2, true)", pos, found)
	}

	_, found = c.Position(context.Background(), "acme pricing", "other.dev")
	if found {
		t.Error("expected not found for an absent domain")
	}
}

func TestPosition_NoAPIKey(t *testing.T) {
	t.Parallel()

	wc := &testutil.DummyWebClient{}
	c := newClient(wc, "")

	if _, found := c.Position(context.Background(), "acme", "acme.dev"); found {
		t.Error("expected not found without an API key")
	}
	if len(wc.Requests) != 0 {
		t.Errorf("expected no outbound calls without a key, saw %v", wc.RequestedURLs())
	}
}

func TestBacklinkHints_SkipsSelfAndCaps(t *testing.T) {
	t.Parallel()

	results := []map[string]any{
		{"link": "https://acme.dev/about", "title": "About Acme"},
		{"link": "https://blog.acme.dev/post", "title": "Acme Blog"},
		{"link": "https://news.site1.com/a", "title": "Story 1"},
		{"link": "https://news.site2.com/b", "title": "Story 2"},
		{"link": "https://news.site3.com/c", "title": "Story 3"},
		{"link": "https://news.site4.com/d", "title": "Story 4"},
		{"link": "https://news.site5.com/e", "title": "Story 5"},
		{"link": "https://news.site6.com/f", "title": "Story 6"},
	}
	wc := &testutil.DummyWebClient{
		Responses: map[string][]byte{
			"https://serp.test?api_key=k&engine=google&num=20&q=site%3Aacme.dev": serpBody(t, results),
		},
	}
	c := newClient(wc, "k")

	hints := c.BacklinkHints(context.Background(), "acme.dev")

	if len(hints) != 5 {
		t.Fatalf("hints = %d, want cap of 5", len(hints))
	}
	// Self and its subdomains are skipped, referrers collapse to eTLD+1.
	for _, h := range hints {
		if h.Domain == "acme.dev" {
			t.Error("self link not skipped")
		}
	}
	if hints[0].Domain != "site1.com" || hints[0].Title != "Story 1" {
		t.Errorf("first hint = %+v", hints[0])
	}
}
