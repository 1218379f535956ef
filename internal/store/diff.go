package store

import (
	"context"
	"fmt"

	"github.com/sergi/go-diff/diffmatchpatch"
)

// DiffSpan is one run of the snapshot diff.
type DiffSpan struct {
	Op   string `json:"op"` // "insert" | "delete" | "equal"
	Text string `json:"text"`
}

// SnapshotDiff compares the HTML captured by two scans.
type SnapshotDiff struct {
	BaseID  string     `json:"base_id"`
	HeadID  string     `json:"head_id"`
	Domain  string     `json:"domain"`
	Changed bool       `json:"changed"`
	Spans   []DiffSpan `json:"spans"`
}

// DiffSnapshots diffs the snapshots of two scans of the same domain. Diffing
// across domains is refused: the output would be noise, not change tracking.
func (s *SQLiteStore) DiffSnapshots(ctx context.Context, baseID, headID string) (*SnapshotDiff, error) {
	baseDomain, baseSnap, err := s.snapshotWithDomain(ctx, baseID)
	if err != nil {
		return nil, err
	}
	headDomain, headSnap, err := s.snapshotWithDomain(ctx, headID)
	if err != nil {
		return nil, err
	}
	if baseDomain != headDomain {
		return nil, ErrDomainMismatch
	}

	dmp := diffmatchpatch.New()
	diffs := dmp.DiffMain(string(baseSnap), string(headSnap), true)
	diffs = dmp.DiffCleanupSemantic(diffs)

	out := &SnapshotDiff{BaseID: baseID, HeadID: headID, Domain: baseDomain}
	for _, d := range diffs {
		span := DiffSpan{Text: d.Text}
		switch d.Type {
		case diffmatchpatch.DiffInsert:
			span.Op = "insert"
			out.Changed = true
		case diffmatchpatch.DiffDelete:
			span.Op = "delete"
			out.Changed = true
		default:
			span.Op = "equal"
		}
		out.Spans = append(out.Spans, span)
	}
	return out, nil
}

func (s *SQLiteStore) snapshotWithDomain(ctx context.Context, id string) (string, []byte, error) {
	var domain string
	var snapshot []byte
	err := s.db.QueryRowContext(ctx,
		`SELECT domain, snapshot FROM scans WHERE id = ?`, id).Scan(&domain, &snapshot)
	if err != nil {
		return "", nil, fmt.Errorf("snapshot for %s: %w", id, ErrScanNotFound)
	}
	return domain, snapshot, nil
}
