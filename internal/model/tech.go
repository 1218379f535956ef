package model

// TechProfile is the categorized technology fingerprint of a page. Single-
// valued categories hold the first catalog match; list categories accumulate
// every match in catalog order. Empty values mean "nothing detected".
type TechProfile struct {
	CMS       string `json:"cms,omitempty"`
	Framework string `json:"framework,omitempty"`
	Server    string `json:"server,omitempty"`
	CDN       string `json:"cdn,omitempty"`
	Hosting   string `json:"hosting,omitempty"`
	Edge      string `json:"edge,omitempty"`

	Analytics  []string `json:"analytics,omitempty"`
	Marketing  []string `json:"marketing,omitempty"`
	Payments   []string `json:"payments,omitempty"`
	Chat       []string `json:"chat,omitempty"`
	ABTesting  []string `json:"abTesting,omitempty"`
	Monitoring []string `json:"monitoring,omitempty"`
	Security   []string `json:"security,omitempty"`
	Fonts      []string `json:"fonts,omitempty"`
	Databases  []string `json:"databases,omitempty"`
	Libraries  []string `json:"libraries,omitempty"`
}

// Empty reports whether nothing at all was detected.
func (t *TechProfile) Empty() bool {
	if t == nil {
		return true
	}
	if t.CMS != "" || t.Framework != "" || t.Server != "" || t.CDN != "" || t.Hosting != "" || t.Edge != "" {
		return false
	}
	for _, l := range [][]string{
		t.Analytics, t.Marketing, t.Payments, t.Chat, t.ABTesting,
		t.Monitoring, t.Security, t.Fonts, t.Databases, t.Libraries,
	} {
		if len(l) > 0 {
			return false
		}
	}
	return true
}
