package model

// DataSource is the provenance tier attached to estimated outputs. "real"
// means every contributing datum came from a live external source, "hybrid"
// means at least one did, "estimated" is the formula-only fallback.
type DataSource string

const (
	SourceReal      DataSource = "real"
	SourceHybrid    DataSource = "hybrid"
	SourceEstimated DataSource = "estimated"
)

// rank orders tiers from best to worst so Merge can pick the worst.
func (d DataSource) rank() int {
	switch d {
	case SourceReal:
		return 0
	case SourceHybrid:
		return 1
	default:
		return 2
	}
}

// Merge combines two provenance tiers; the worst tier wins. Combining real
// with estimated gives hybrid, since the result then contains a mix of live
// and synthesized data.
func (d DataSource) Merge(other DataSource) DataSource {
	if d == other {
		return d
	}
	if (d == SourceReal && other == SourceEstimated) || (d == SourceEstimated && other == SourceReal) {
		return SourceHybrid
	}
	if d.rank() > other.rank() {
		return d
	}
	return other
}

// TierFor derives a tier from how many of total contributing data points were
// live. total <= 0 is treated as fully estimated.
func TierFor(live, total int) DataSource {
	switch {
	case total <= 0 || live <= 0:
		return SourceEstimated
	case live >= total:
		return SourceReal
	default:
		return SourceHybrid
	}
}
