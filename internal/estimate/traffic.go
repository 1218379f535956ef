package estimate

import (
	"math"
	"math/rand"

	"github.com/sitelens/sitelens/internal/model"
)

// estimateTraffic derives the traffic profile from the keyword set and the
// authority tier baseline.
//
// Monthly visits are the MAXIMUM of the summed per-keyword traffic and an
// authority-band baseline. That means the headline number can have no
// traceable derivation from the displayed keyword list; this is intentional
// smoothing so high-authority domains are never under-reported when keyword
// sampling is sparse. Do not "fix" it into a pure keyword sum.
func (e *Engine) estimateTraffic(in Inputs, keywords *model.KeywordSet, rng *rand.Rand) *model.TrafficProfile {
	frac := in.Authority.Fraction()

	keywordTraffic := 0
	for _, k := range keywords.Keywords {
		keywordTraffic += k.Traffic
	}

	base := math.Max(float64(keywordTraffic), authorityBaseline(frac))

	// Organic is the base; direct adds 35-50% on top, the other channels a
	// further flat 20%.
	directRatio := jitter(rng, 0.35, 0.5)
	monthly := int(math.Floor(base * (1 + directRatio + 0.2)))

	sources := trafficSources(base, float64(monthly), directRatio, rng)

	bounce := clampInt(int(math.Floor(40-frac*15+rng.Float64()*10)), 25, 50)
	pages := math.Round((1.5+frac*2+rng.Float64())*10) / 10
	duration := int(math.Floor(60 + frac*180 + rng.Float64()*60))

	// Traffic can only be as live as the keyword data feeding it; the
	// authority baseline and all channel splits are synthesized.
	tier := model.SourceEstimated
	if keywords.DataSource != model.SourceEstimated {
		tier = model.SourceHybrid
	}

	return &model.TrafficProfile{
		MonthlyVisits:      monthly,
		TrafficSources:     sources,
		TrafficHistory:     e.trafficHistory(monthly, rng),
		BounceRate:         bounce,
		PagesPerSession:    pages,
		AvgSessionDuration: duration,
		TopCountries:       topCountries(rng),
		DataSource:         tier,
	}
}

// authorityBaseline maps an authority fraction to a monthly-visit
// order-of-magnitude band, from ~1K for unknown domains to billions for the
// top of the web.
func authorityBaseline(frac float64) float64 {
	switch {
	case frac >= 0.95:
		return math.Floor(1e8 * (1 + (frac-0.95)*25))
	case frac >= 0.90:
		return math.Floor(1e7 * (1 + (frac-0.90)*9))
	case frac >= 0.80:
		return math.Floor(1e6 * (1 + (frac-0.80)*9))
	case frac >= 0.70:
		return math.Floor(1e5 * (1 + (frac-0.70)*9))
	case frac >= 0.50:
		return math.Floor(1e4 * (1 + (frac-0.50)*9))
	default:
		return math.Floor(1e3 * (1 + frac*9))
	}
}

// trafficSources splits monthly visits into channel percentages summing to
// exactly 100. Referral/social/paid/email get fixed small shares; organic is
// back-computed and absorbs the rounding remainder.
func trafficSources(base, monthly, directRatio float64, rng *rand.Rand) model.TrafficSources {
	organic := 60
	if monthly > 0 {
		organic = int(math.Floor(base / monthly * 100))
	}
	direct := int(math.Floor(directRatio * 100))
	referral := 5 + rng.Intn(10)
	social := 3 + rng.Intn(7)
	paid := rng.Intn(5)
	email := rng.Intn(3)

	remainder := 100 - (organic + direct + referral + social + paid + email)
	organic += remainder
	if organic < 0 {
		organic = 0
		// Shave the overflow off direct instead; sum must stay 100.
		direct = 100 - (referral + social + paid + email)
	}

	return model.TrafficSources{
		Organic:  organic,
		Direct:   direct,
		Referral: referral,
		Social:   social,
		Paid:     paid,
		Email:    email,
	}
}

// trafficHistory builds the six most-recent-months series with ~2% monthly
// growth into the current figure plus small jitter.
func (e *Engine) trafficHistory(monthly int, rng *rand.Rand) []model.MonthVisits {
	const growthRate = 0.02
	base := float64(monthly) * 0.9

	now := e.now()
	out := make([]model.MonthVisits, 0, 6)
	for i := 5; i >= 0; i-- {
		m := now.AddDate(0, -i, 0)
		step := 5 - i
		visits := math.Floor(base*math.Pow(1+growthRate, float64(step)) + rng.Float64()*base*0.05)
		out = append(out, model.MonthVisits{
			Month:  m.Format("Jan"),
			Visits: int(visits),
		})
	}
	return out
}

// topCountries produces the fixed five-country split with bounded jitter,
// renormalized so percentages sum to exactly 100.
func topCountries(rng *rand.Rand) []model.CountryShare {
	countries := []model.CountryShare{
		{Country: "United States", Percentage: 45 + rng.Intn(15)},
		{Country: "United Kingdom", Percentage: 8 + rng.Intn(8)},
		{Country: "Canada", Percentage: 5 + rng.Intn(5)},
		{Country: "Germany", Percentage: 4 + rng.Intn(5)},
		{Country: "Australia", Percentage: 3 + rng.Intn(4)},
	}

	total := 0
	for _, c := range countries {
		total += c.Percentage
	}
	sum := 0
	for i := range countries {
		countries[i].Percentage = int(math.Floor(float64(countries[i].Percentage) / float64(total) * 100))
		sum += countries[i].Percentage
	}
	countries[0].Percentage += 100 - sum
	return countries
}
