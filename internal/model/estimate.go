package model

// Keyword is one ranked keyword with its estimated metrics.
type Keyword struct {
	Keyword      string `json:"keyword"`
	Position     int    `json:"position"`
	SearchVolume int    `json:"searchVolume"`
	Difficulty   int    `json:"difficulty"`
	Traffic      int    `json:"traffic"`
}

// PositionDistribution is a cumulative histogram over ranking buckets:
// Top10 counts everything in Top3 as well, and so on up to Top100. It is
// counted from the full ranked set, not just the returned sample.
type PositionDistribution struct {
	Top3   int `json:"top3"`
	Top10  int `json:"top10"`
	Top20  int `json:"top20"`
	Top50  int `json:"top50"`
	Top100 int `json:"top100"`
}

// KeywordSet is the keyword-ranking output of a scan. TotalKeywords is an
// extrapolated population estimate, not len(Keywords).
type KeywordSet struct {
	Keywords             []Keyword            `json:"keywords"`
	TotalKeywords        int                  `json:"totalKeywords"`
	PositionDistribution PositionDistribution `json:"positionDistribution"`
	DataSource           DataSource           `json:"dataSource"`
}

// Backlink is one referring-domain record.
type Backlink struct {
	Domain     string `json:"domain"`
	DR         int    `json:"dr"`
	AnchorText string `json:"anchorText"`
	Type       string `json:"type"` // "dofollow" | "nofollow"
}

// AuthorityDistribution buckets referring domains by their domain rating,
// expressed as percentages summing to roughly 100.
type AuthorityDistribution struct {
	DR0to30   int `json:"dr0to30"`
	DR31to50  int `json:"dr31to50"`
	DR51to70  int `json:"dr51to70"`
	DR71to100 int `json:"dr71to100"`
}

// BacklinkProfile is the backlink output of a scan.
type BacklinkProfile struct {
	TotalBacklinks        int                   `json:"totalBacklinks"`
	ReferringDomains      int                   `json:"referringDomains"`
	DomainRating          int                   `json:"domainRating"`
	TopBacklinks          []Backlink            `json:"topBacklinks"`
	NewBacklinks30d       int                   `json:"newBacklinks30d"`
	LostBacklinks30d      int                   `json:"lostBacklinks30d"`
	AuthorityDistribution AuthorityDistribution `json:"authorityDistribution"`
	DataSource            DataSource            `json:"dataSource"`
}

// TrafficSources splits monthly visits into percentage shares. The shares
// always sum to exactly 100; any rounding remainder is folded into Organic.
type TrafficSources struct {
	Organic  int `json:"organic"`
	Direct   int `json:"direct"`
	Referral int `json:"referral"`
	Social   int `json:"social"`
	Paid     int `json:"paid"`
	Email    int `json:"email"`
}

// MonthVisits is one point of the six-month traffic history.
type MonthVisits struct {
	Month  string `json:"month"`
	Visits int    `json:"visits"`
}

// CountryShare is one entry of the geographic distribution.
type CountryShare struct {
	Country    string `json:"country"`
	Percentage int    `json:"percentage"`
}

// TrafficProfile is the traffic output of a scan.
type TrafficProfile struct {
	MonthlyVisits      int            `json:"monthlyVisits"`
	TrafficSources     TrafficSources `json:"trafficSources"`
	TrafficHistory     []MonthVisits  `json:"trafficHistory"`
	BounceRate         int            `json:"bounceRate"`
	PagesPerSession    float64        `json:"pagesPerSession"`
	AvgSessionDuration int            `json:"avgSessionDuration"`
	TopCountries       []CountryShare `json:"topCountries"`
	DataSource         DataSource     `json:"dataSource"`
}
