package model

import "time"

// ScanStatus is the lifecycle state of a scan record.
type ScanStatus string

const (
	ScanScanning  ScanStatus = "scanning"
	ScanCompleted ScanStatus = "completed"
	ScanError     ScanStatus = "error"
)

// ScanRequest is what callers submit. URL must parse as an absolute URL; the
// derived domain keys authority lookup and estimation seeding.
type ScanRequest struct {
	URL string `json:"url"`
}

// PerformanceMetrics come from an external page-speed collaborator. All
// timings are milliseconds except CLS which is unitless.
type PerformanceMetrics struct {
	Score int     `json:"score"`
	FCP   float64 `json:"fcp"`
	LCP   float64 `json:"lcp"`
	CLS   float64 `json:"cls"`
	TBT   float64 `json:"tbt"`
	SI    float64 `json:"si"`
}

// Competitor is one entry of the suggested-competitor list.
type Competitor struct {
	Domain    string `json:"domain"`
	Title     string `json:"title,omitempty"`
	Authority int    `json:"authority,omitempty"`
}

// RoadmapPhase is one phase of an AI-generated improvement roadmap.
type RoadmapPhase struct {
	Phase   string   `json:"phase"`
	Actions []string `json:"actions"`
}

// Insight is the AI-analysis payload optionally attached to a persisted scan.
type Insight struct {
	Summary       string         `json:"summary"`
	Gaps          []string       `json:"gaps"`
	BridgeRoadmap []RoadmapPhase `json:"bridge_roadmap"`
	Generated     bool           `json:"generated"` // false for the canned fallback
}

// ScanResult is the composite record produced by one scan. It is constructed
// once and immutable thereafter, except for Insight which an external
// collaborator may attach later.
type ScanResult struct {
	ID        string    `json:"id,omitempty"`
	URL       string    `json:"url"`
	Domain    string    `json:"domain"`
	Timestamp time.Time `json:"timestamp"`

	Tech        *TechProfile        `json:"techStack,omitempty"`
	Performance *PerformanceMetrics `json:"performance,omitempty"`
	SEO         *SEOHealth          `json:"seoHealth,omitempty"`
	Authority   *AuthorityScore     `json:"authority,omitempty"`
	Backlinks   *BacklinkProfile    `json:"backlinks,omitempty"`
	Keywords    *KeywordSet         `json:"keywords,omitempty"`
	Traffic     *TrafficProfile     `json:"traffic,omitempty"`
	Competitors []Competitor        `json:"competitors,omitempty"`

	Insight *Insight `json:"insight,omitempty"`

	Status ScanStatus `json:"status"`
	Error  string     `json:"error,omitempty"`
}
