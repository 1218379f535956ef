package interfaces

import (
	"context"

	"github.com/sitelens/sitelens/internal/model"
)

// ScanStore persists completed scan records. Records are immutable once saved
// except for a later-attached AI insight payload.
type ScanStore interface {
	// SaveScan persists a completed scan (with its raw HTML snapshot) and
	// returns the opaque id it was stored under.
	SaveScan(ctx context.Context, userID string, result *model.ScanResult, snapshot []byte) (string, error)

	// GetScan returns the scan stored under id.
	GetScan(ctx context.Context, id string) (*model.ScanResult, error)

	// ListScans returns the scans owned by userID, most recent first.
	ListScans(ctx context.Context, userID string, limit int) ([]*model.ScanResult, error)

	// AttachInsight records an AI insight against an existing scan. This is the
	// only mutation allowed after SaveScan.
	AttachInsight(ctx context.Context, id string, insight *model.Insight) error

	// GetSnapshot returns the raw HTML captured for a scan.
	GetSnapshot(ctx context.Context, id string) ([]byte, error)

	Close() error
}
