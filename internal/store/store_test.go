package store_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/sitelens/sitelens/internal/model"
	"github.com/sitelens/sitelens/internal/store"
	"github.com/sitelens/sitelens/internal/testutil"
)

func newTestStore(t *testing.T) *store.SQLiteStore {
	t.Helper()
	s, err := store.Open(t.TempDir(), &testutil.DummyLogger{})
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func sampleScan(domain string, ts time.Time) *model.ScanResult {
	return &model.ScanResult{
		URL:       "https://" + domain,
		Domain:    domain,
		Timestamp: ts,
		SEO:       &model.SEOHealth{Score: 75, HasTitle: true},
		Authority: &model.AuthorityScore{Score: 60, Source: model.AuthorityHeuristicFallback},
		Status:    model.ScanCompleted,
	}
}

func TestSaveAndGetScan(t *testing.T) {
	t.Parallel()
	s := newTestStore(t)
	ctx := context.Background()

	id, err := s.SaveScan(ctx, "alice", sampleScan("acme.dev", time.Now()), []byte("<html>v1</html>"))
	if err != nil {
		t.Fatalf("SaveScan: %v", err)
	}
	if id == "" {
		t.Fatal("empty scan id")
	}

	got, err := s.GetScan(ctx, id)
	if err != nil {
		t.Fatalf("GetScan: %v", err)
	}
	if got.ID != id {
		t.Errorf("ID = %q, want %q", got.ID, id)
	}
	if got.Domain != "acme.dev" || got.SEO == nil || got.SEO.Score != 75 {
		t.Errorf("round-trip mismatch: %+v", got)
	}
	if got.Insight != nil {
		t.Error("fresh scan must have no insight")
	}

	snap, err := s.GetSnapshot(ctx, id)
	if err != nil {
		t.Fatalf("GetSnapshot: %v", err)
	}
	if string(snap) != "<html>v1</html>" {
		t.Errorf("snapshot = %q", snap)
	}
}

func TestGetScan_NotFound(t *testing.T) {
	t.Parallel()
	s := newTestStore(t)

	_, err := s.GetScan(context.Background(), "nope")
	if !errors.Is(err, store.ErrScanNotFound) {
		t.Errorf("err = %v, want ErrScanNotFound", err)
	}

	_, err = s.GetSnapshot(context.Background(), "nope")
	if !errors.Is(err, store.ErrScanNotFound) {
		t.Errorf("snapshot err = %v, want ErrScanNotFound", err)
	}
}

func TestListScans_OwnershipAndOrder(t *testing.T) {
	t.Parallel()
	s := newTestStore(t)
	ctx := context.Background()

	base := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)
	if _, err := s.SaveScan(ctx, "alice", sampleScan("old.dev", base), nil); err != nil {
		t.Fatal(err)
	}
	if _, err := s.SaveScan(ctx, "alice", sampleScan("new.dev", base.Add(time.Hour)), nil); err != nil {
		t.Fatal(err)
	}
	if _, err := s.SaveScan(ctx, "bob", sampleScan("other.dev", base), nil); err != nil {
		t.Fatal(err)
	}

	scans, err := s.ListScans(ctx, "alice", 0)
	if err != nil {
		t.Fatalf("ListScans: %v", err)
	}
	if len(scans) != 2 {
		t.Fatalf("len = %d, want 2", len(scans))
	}
	if scans[0].Domain != "new.dev" || scans[1].Domain != "old.dev" {
		t.Errorf("order = [%s, %s], want newest first", scans[0].Domain, scans[1].Domain)
	}

	limited, err := s.ListScans(ctx, "alice", 1)
	if err != nil {
		t.Fatal(err)
	}
	if len(limited) != 1 || limited[0].Domain != "new.dev" {
		t.Errorf("limited = %+v", limited)
	}
}

func TestAttachInsight_FirstWins(t *testing.T) {
	t.Parallel()
	s := newTestStore(t)
	ctx := context.Background()

	id, err := s.SaveScan(ctx, "", sampleScan("acme.dev", time.Now()), nil)
	if err != nil {
		t.Fatal(err)
	}

	first := &model.Insight{Summary: "first", Generated: true}
	if err := s.AttachInsight(ctx, id, first); err != nil {
		t.Fatalf("AttachInsight: %v", err)
	}
	if err := s.AttachInsight(ctx, id, &model.Insight{Summary: "second"}); err != nil {
		t.Fatalf("second AttachInsight: %v", err)
	}

	got, err := s.GetScan(ctx, id)
	if err != nil {
		t.Fatal(err)
	}
	if got.Insight == nil || got.Insight.Summary != "first" {
		t.Errorf("Insight = %+v, want the first attachment kept", got.Insight)
	}
}

func TestAttachInsight_MissingScan(t *testing.T) {
	t.Parallel()
	s := newTestStore(t)

	err := s.AttachInsight(context.Background(), "nope", &model.Insight{Summary: "x"})
	if !errors.Is(err, store.ErrScanNotFound) {
		t.Errorf("err = %v, want ErrScanNotFound", err)
	}
}

func TestDiffSnapshots(t *testing.T) {
	t.Parallel()
	s := newTestStore(t)
	ctx := context.Background()

	v1, err := s.SaveScan(ctx, "", sampleScan("acme.dev", time.Now()), []byte("<p>hello world</p>"))
	if err != nil {
		t.Fatal(err)
	}
	v2, err := s.SaveScan(ctx, "", sampleScan("acme.dev", time.Now()), []byte("<p>goodbye world</p>"))
	if err != nil {
		t.Fatal(err)
	}

	diff, err := s.DiffSnapshots(ctx, v1, v2)
	if err != nil {
		t.Fatalf("DiffSnapshots: %v", err)
	}
	if !diff.Changed {
		t.Error("expected Changed for different snapshots")
	}
	if diff.Domain != "acme.dev" {
		t.Errorf("Domain = %q", diff.Domain)
	}
	sawInsert, sawDelete := false, false
	for _, span := range diff.Spans {
		switch span.Op {
		case "insert":
			sawInsert = true
		case "delete":
			sawDelete = true
		}
	}
	if !sawInsert || !sawDelete {
		t.Errorf("expected both insert and delete spans, got %+v", diff.Spans)
	}
}

func TestDiffSnapshots_IdenticalUnchanged(t *testing.T) {
	t.Parallel()
	s := newTestStore(t)
	ctx := context.Background()

	snap := []byte("<p>same</p>")
	v1, _ := s.SaveScan(ctx, "", sampleScan("acme.dev", time.Now()), snap)
	v2, _ := s.SaveScan(ctx, "", sampleScan("acme.dev", time.Now()), snap)

	diff, err := s.DiffSnapshots(ctx, v1, v2)
	if err != nil {
		t.Fatal(err)
	}
	if diff.Changed {
		t.Error("identical snapshots must not be marked changed")
	}
}

func TestDiffSnapshots_DomainMismatch(t *testing.T) {
	t.Parallel()
	s := newTestStore(t)
	ctx := context.Background()

	v1, _ := s.SaveScan(ctx, "", sampleScan("acme.dev", time.Now()), []byte("a"))
	v2, _ := s.SaveScan(ctx, "", sampleScan("other.dev", time.Now()), []byte("b"))

	if _, err := s.DiffSnapshots(ctx, v1, v2); !errors.Is(err, store.ErrDomainMismatch) {
		t.Errorf("err = %v, want ErrDomainMismatch", err)
	}
}

func TestDiffSnapshots_MissingScan(t *testing.T) {
	t.Parallel()
	s := newTestStore(t)

	if _, err := s.DiffSnapshots(context.Background(), "a", "b"); !errors.Is(err, store.ErrScanNotFound) {
		t.Errorf("err = %v, want ErrScanNotFound", err)
	}
}
