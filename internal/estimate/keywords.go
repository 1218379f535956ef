package estimate

import (
	"math"
	"math/rand"
	"regexp"
	"strings"

	"github.com/sitelens/sitelens/internal/model"
	"github.com/sitelens/sitelens/internal/utils"
)

const (
	brandBaseVolume         = 50000
	informationalBaseVolume = 10000
	longTailBaseVolume      = 100

	keywordSampleSize = 8

	// Ranked-count multiplier for the population extrapolation: real SEO
	// tools surface thousands of keywords per domain, our sample is tiny.
	populationMultiplier = 500
)

// Interrogative/superlative prefixes that mark an informational query. The
// volume check uses the long list; the difficulty check uses the shorter one.
// That asymmetry is inherited product behavior, keep both lists as they are.
var (
	informationalVolumeRe     = regexp.MustCompile(`(?i)^(what|how|why|where|when|is|the|best|top|free|online)`)
	informationalDifficultyRe = regexp.MustCompile(`(?i)^(what|how|why|where|when|best|top|free)`)
)

// estimateKeywords builds the ranked keyword set. Live autocomplete hints and
// SERP positions are used where present; everything missing is synthesized.
func (e *Engine) estimateKeywords(in Inputs, rng *rand.Rand) *model.KeywordSet {
	brand := utils.Brand(in.Domain)

	candidates := in.KeywordHints
	if len(candidates) == 0 {
		candidates = fallbackCandidates(brand)
	}

	liveCount := 0
	ranked := make([]model.Keyword, 0, len(candidates))
	for _, kw := range candidates {
		position, live := in.SerpPositions[kw]
		if live && position >= 1 {
			liveCount++
		} else {
			position = estimatePosition(kw, brand, rng)
		}

		volume := estimateVolume(kw, position, rng)
		ranked = append(ranked, model.Keyword{
			Keyword:      kw,
			Position:     position,
			SearchVolume: volume,
			Difficulty:   estimateDifficulty(kw, in.Authority.Score),
			Traffic:      trafficFromPosition(volume, position),
		})
	}

	// Distribution buckets are cumulative and counted over the full ranked
	// set, not the returned sample.
	var dist model.PositionDistribution
	for _, k := range ranked {
		if k.Position <= 3 {
			dist.Top3++
		}
		if k.Position <= 10 {
			dist.Top10++
		}
		if k.Position <= 20 {
			dist.Top20++
		}
		if k.Position <= 50 {
			dist.Top50++
		}
		if k.Position <= 100 {
			dist.Top100++
		}
	}

	total := in.Authority.Score * 100
	if len(ranked) > 5 {
		total = len(ranked) * populationMultiplier
	}

	sample := ranked
	if len(sample) > keywordSampleSize {
		sample = sample[:keywordSampleSize]
	}

	return &model.KeywordSet{
		Keywords:             sample,
		TotalKeywords:        total,
		PositionDistribution: dist,
		DataSource:           model.TierFor(liveCount, len(ranked)),
	}
}

// fallbackCandidates synthesizes brand-pattern keywords when no live hints
// exist, so downstream output is never empty. These mirror the autocomplete
// seed patterns.
func fallbackCandidates(brand string) []string {
	return []string{
		brand,
		brand + " login",
		brand + " app",
		"what is " + brand,
		brand + " alternatives",
		"best " + brand,
		brand + " review",
		brand + " pricing",
	}
}

// estimatePosition guesses where a keyword ranks when no live position is
// known: exact brand terms rank #1, brand-prefixed terms land in the top 5,
// everything else somewhere in 10-59.
func estimatePosition(keyword, brand string, rng *rand.Rand) int {
	kw := strings.ToLower(keyword)
	b := strings.ToLower(brand)
	switch {
	case kw == b:
		return 1
	case strings.HasPrefix(kw, b):
		return rng.Intn(5) + 1
	default:
		return rng.Intn(50) + 10
	}
}

// estimateVolume estimates monthly search volume from keyword shape: short
// non-interrogative terms read as brand queries (high volume), interrogative
// prefixes as informational (medium), the rest as long tail (low). Position
// scales it up a little, plus bounded jitter.
func estimateVolume(keyword string, position int, rng *rand.Rand) int {
	informational := informationalVolumeRe.MatchString(keyword)

	base := longTailBaseVolume
	if len(keyword) < 15 && !informational {
		base = brandBaseVolume
	} else if informational {
		base = informationalBaseVolume
	}

	mult := 1.0
	if position <= 3 {
		mult = 1.5
	} else if position <= 10 {
		mult = 1.2
	}

	return int(math.Floor(float64(base) * mult * jitter(rng, 0.8, 1.2)))
}

// estimateDifficulty estimates how hard the keyword is to rank for. Brand
// terms get easier for the brand owner as its authority rises (floored at
// 20); informational queries sit at 70, commercial ones at 80.
func estimateDifficulty(keyword string, authority int) int {
	difficulty := 80
	if len(keyword) < 15 {
		difficulty = 100 - authority
		if difficulty < 20 {
			difficulty = 20
		}
	} else if informationalDifficultyRe.MatchString(keyword) {
		difficulty = 70
	}
	return clampInt(difficulty, 10, 100)
}

// trafficFromPosition approximates a CTR curve: positions 1-10 capture
// 10% - 2.8% of the volume, everything below gets a trickle.
func trafficFromPosition(volume, position int) int {
	if position <= 10 {
		return int(math.Floor(float64(volume) * (0.1 - float64(position-1)*0.008)))
	}
	return int(math.Floor(float64(volume) * 0.001))
}
