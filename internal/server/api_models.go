package server

// StartScanRequest is the payload for starting a scan, synchronous or as a
// background job.
type StartScanRequest struct {
	URL    string `json:"url" example:"https://stripe.com"`
	UserID string `json:"userId" example:"demo"`

	// Async switches to job mode: the response is the accepted job, progress
	// streams over /ws/jobs/{jobID}.
	Async bool `json:"async,omitempty"`
}

// InsightResponse wraps the AI analysis attached to a scan.
type InsightResponse struct {
	ScanID  string `json:"scanId" example:"7f8b1c2d"`
	Insight any    `json:"insight"`
}

// ErrorResponse is a uniform error payload returned by the API.
type ErrorResponse struct {
	Error string `json:"error" example:"scan not found"`
}
