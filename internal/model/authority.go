package model

// AuthoritySource records where an authority score came from.
type AuthoritySource string

const (
	AuthorityStaticTable       AuthoritySource = "static-table"
	AuthorityExternalAPI       AuthoritySource = "external-api"
	AuthorityHeuristicFallback AuthoritySource = "heuristic-fallback"
)

// AuthorityScore is a 0-100 proxy for a domain's overall trust/importance,
// analogous to commercial domain-rating metrics.
type AuthorityScore struct {
	Score  int             `json:"score"`
	Rank   string          `json:"rank,omitempty"`
	Source AuthoritySource `json:"source"`
}

// Fraction returns the score scaled into [0,1].
func (a AuthorityScore) Fraction() float64 {
	return float64(a.Score) / 100.0
}
