package authority_test

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/sitelens/sitelens/internal/authority"
	"github.com/sitelens/sitelens/internal/model"
	"github.com/sitelens/sitelens/internal/testutil"
)

func apiBody(t *testing.T, domain string, score int, rank string) []byte {
	t.Helper()
	body, err := json.Marshal(map[string]any{
		"status_code": 200,
		"response": []map[string]any{
			{"domain": domain, "page_rank_integer": score, "rank": rank},
		},
	})
	if err != nil {
		t.Fatal(err)
	}
	return body
}

func TestResolve_StaticTableWinsOverAPI(t *testing.T) {
	t.Parallel()

	// The dummy would answer with 12; the table must shadow it entirely.
	wc := &testutil.DummyWebClient{
		Responses: map[string][]byte{
			"https://api.test/getPageRank?domains[]=google.com": apiBody(t, "google.com", 12, "999"),
		},
	}
	r := authority.NewResolver(authority.Config{APIKey: "k", APIBaseURL: "https://api.test/getPageRank"}, wc, &testutil.DummyLogger{})

	score := r.Resolve(context.Background(), "www.google.com")

	if score.Score != 100 {
		t.Errorf("Score = %d, want 100 from static table", score.Score)
	}
	if score.Source != model.AuthorityStaticTable {
		t.Errorf("Source = %q, want static table", score.Source)
	}
	if len(wc.Requests) != 0 {
		t.Errorf("expected no API call for a static-table domain, saw %v", wc.RequestedURLs())
	}
}

func TestResolve_ExternalAPI(t *testing.T) {
	t.Parallel()

	url := "https://api.test/getPageRank?domains[]=smallsite.io"
	wc := &testutil.DummyWebClient{
		Responses: map[string][]byte{url: apiBody(t, "smallsite.io", 37, "150000")},
	}
	r := authority.NewResolver(authority.Config{APIKey: "k", APIBaseURL: "https://api.test/getPageRank"}, wc, &testutil.DummyLogger{})

	score := r.Resolve(context.Background(), "smallsite.io")

	if score.Score != 37 {
		t.Errorf("Score = %d, want 37 from API", score.Score)
	}
	if score.Rank != "150000" {
		t.Errorf("Rank = %q, want 150000", score.Rank)
	}
	if score.Source != model.AuthorityExternalAPI {
		t.Errorf("Source = %q, want external API", score.Source)
	}
}

func TestResolve_APIFailureFallsBack(t *testing.T) {
	t.Parallel()

	url := "https://api.test/getPageRank?domains[]=smallsite.org"
	wc := &testutil.DummyWebClient{FailURLs: map[string]bool{url: true}}
	r := authority.NewResolver(authority.Config{APIKey: "k", APIBaseURL: "https://api.test/getPageRank"}, wc, &testutil.DummyLogger{})

	score := r.Resolve(context.Background(), "smallsite.org")

	if score.Score != 65 {
		t.Errorf("Score = %d, want 65 for .org fallback", score.Score)
	}
	if score.Source != model.AuthorityHeuristicFallback {
		t.Errorf("Source = %q, want heuristic fallback", score.Source)
	}
}

func TestResolve_SuffixHeuristic(t *testing.T) {
	t.Parallel()

	r := authority.NewResolver(authority.Config{}, &testutil.DummyWebClient{}, &testutil.DummyLogger{})

	cases := map[string]int{
		"mit.edu":      75,
		"usa.gov":      80,
		"example.org":  65,
		"example.com":  55,
		"localhost":    55,
		"smallsite.io": 55,
	}
	for domain, want := range cases {
		got := r.Resolve(context.Background(), domain)
		if got.Score != want {
			t.Errorf("Resolve(%q) = %d, want %d", domain, got.Score, want)
		}
		if got.Source != model.AuthorityHeuristicFallback {
			t.Errorf("Resolve(%q) source = %q, want heuristic fallback", domain, got.Source)
		}
	}
}

func TestResolve_ClampsAPIScore(t *testing.T) {
	t.Parallel()

	url := "https://api.test/getPageRank?domains[]=big.io"
	wc := &testutil.DummyWebClient{
		Responses: map[string][]byte{url: apiBody(t, "big.io", 140, "1")},
	}
	r := authority.NewResolver(authority.Config{APIKey: "k", APIBaseURL: "https://api.test/getPageRank"}, wc, &testutil.DummyLogger{})

	if got := r.Resolve(context.Background(), "big.io"); got.Score != 100 {
		t.Errorf("Score = %d, want clamp to 100", got.Score)
	}
}
