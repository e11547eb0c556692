package domain

import "time"

// URLAnalytics is the per-link counter view returned to the owner.
type URLAnalytics struct {
	ShortCode   string     `json:"shortCode"`
	CustomAlias *string    `json:"customAlias,omitempty"`
	ClickCount  int64      `json:"clickCount"`
	LastClicked *time.Time `json:"lastClicked,omitempty"`
}

// GlobalAnalytics aggregates across all of an owner's records,
// active and inactive.
type GlobalAnalytics struct {
	TotalURLs   int64 `json:"totalUrls"`
	TotalClicks int64 `json:"totalClicks"`
}
