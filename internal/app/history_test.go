package app_test

import (
	"fmt"
	"testing"
	"time"

	"github.com/sitelens/sitelens/internal/app"
	"github.com/sitelens/sitelens/internal/model"
)

func result(domain string, seoScore int) *model.ScanResult {
	return &model.ScanResult{
		ID:        "id-" + domain,
		URL:       "https://" + domain,
		Domain:    domain,
		Timestamp: time.Now(),
		SEO:       &model.SEOHealth{Score: seoScore},
		Authority: &model.AuthorityScore{Score: 50},
		Status:    model.ScanCompleted,
	}
}

func TestHistory_NewestFirst(t *testing.T) {
	t.Parallel()

	h := app.NewHistory(10)
	h.Push(result("first.dev", 10))
	h.Push(result("second.dev", 20))

	entries := h.Recent()
	if len(entries) != 2 {
		t.Fatalf("len = %d, want 2", len(entries))
	}
	if entries[0].Domain != "second.dev" || entries[1].Domain != "first.dev" {
		t.Errorf("order = [%s, %s], want newest first", entries[0].Domain, entries[1].Domain)
	}
	if entries[0].SEOScore != 20 || entries[0].Authority != 50 {
		t.Errorf("summary fields not captured: %+v", entries[0])
	}
}

func TestHistory_EvictsOldest(t *testing.T) {
	t.Parallel()

	h := app.NewHistory(3)
	for i := 0; i < 5; i++ {
		h.Push(result(fmt.Sprintf("site%d.dev", i), i))
	}

	entries := h.Recent()
	if len(entries) != 3 {
		t.Fatalf("len = %d, want cap of 3", len(entries))
	}
	if entries[0].Domain != "site4.dev" || entries[2].Domain != "site2.dev" {
		t.Errorf("unexpected retained window: %+v", entries)
	}
	if h.Len() != 3 {
		t.Errorf("Len = %d", h.Len())
	}
}

func TestHistory_RecentReturnsCopy(t *testing.T) {
	t.Parallel()

	h := app.NewHistory(5)
	h.Push(result("acme.dev", 1))

	entries := h.Recent()
	entries[0].Domain = "mutated"

	if h.Recent()[0].Domain != "acme.dev" {
		t.Error("Recent must return a copy")
	}
}

func TestHistory_ErrorResultsWithoutSubprofiles(t *testing.T) {
	t.Parallel()

	h := app.NewHistory(5)
	h.Push(&model.ScanResult{
		URL:    "not a url",
		Status: model.ScanError,
	})

	entries := h.Recent()
	if len(entries) != 1 {
		t.Fatalf("len = %d", len(entries))
	}
	if entries[0].Status != string(model.ScanError) {
		t.Errorf("status = %q", entries[0].Status)
	}
	if entries[0].SEOScore != 0 || entries[0].Authority != 0 {
		t.Error("nil subprofiles must zero the summary scores")
	}
}
