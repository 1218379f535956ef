package app

import (
	"sync"
	"time"

	"github.com/sitelens/sitelens/internal/model"
)

// HistoryEntry is the condensed view of a finished scan kept for the
// recent-activity listing.
type HistoryEntry struct {
	ID        string    `json:"id"`
	URL       string    `json:"url"`
	Domain    string    `json:"domain"`
	Timestamp time.Time `json:"timestamp"`
	Status    string    `json:"status"`
	SEOScore  int       `json:"seoScore"`
	Authority int       `json:"authority"`
}

// History is a bounded most-recent-first ring of scan summaries. It is
// owned by whoever serves requests and handed to the orchestrator, never
// shared through package state.
type History struct {
	mu      sync.Mutex
	max     int
	entries []HistoryEntry
}

// NewHistory returns a History holding at most max entries. max must be
// positive.
func NewHistory(max int) *History {
	if max <= 0 {
		max = 1
	}
	return &History{max: max}
}

// Push records a finished scan, evicting the oldest entry when full.
func (h *History) Push(res *model.ScanResult) {
	entry := HistoryEntry{
		ID:        res.ID,
		URL:       res.URL,
		Domain:    res.Domain,
		Timestamp: res.Timestamp,
		Status:    string(res.Status),
	}
	if res.SEO != nil {
		entry.SEOScore = res.SEO.Score
	}
	if res.Authority != nil {
		entry.Authority = res.Authority.Score
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	h.entries = append([]HistoryEntry{entry}, h.entries...)
	if len(h.entries) > h.max {
		h.entries = h.entries[:h.max]
	}
}

// Recent returns a copy of the stored entries, newest first.
func (h *History) Recent() []HistoryEntry {
	h.mu.Lock()
	defer h.mu.Unlock()
	out := make([]HistoryEntry, len(h.entries))
	copy(out, h.entries)
	return out
}

// Len reports how many entries are currently held.
func (h *History) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.entries)
}
