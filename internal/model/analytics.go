package model

// AnalyticsSnapshot holds the registry counters for one calendar day.
type AnalyticsSnapshot struct {
	Date         string `json:"date"`
	TotalItems   int    `json:"total_items"`
	FoundItems   int    `json:"found_items"`
	LostItems    int    `json:"lost_items"`
	ClaimedItems int    `json:"claimed_items"`
	MatchesFound int    `json:"matches_found"`
	NewUsers     int    `json:"new_users"`
}

// SiteInfo is the editable site metadata shown on public pages.
type SiteInfo struct {
	SiteName       string `json:"site_name"`
	AboutContent   string `json:"about_content,omitempty"`
	ContactEmail   string `json:"contact_email,omitempty"`
	ContactPhone   string `json:"contact_phone,omitempty"`
	ContactAddress string `json:"contact_address,omitempty"`
}

// DefaultSiteInfo returns the site metadata used until an admin edits it.
func DefaultSiteInfo() SiteInfo {
	return SiteInfo{
		SiteName:     "FOUND IT",
		AboutContent: "Welcome to FOUND IT - Your Smart Lost and Found System!",
		ContactEmail: "admin@foundit.com",
	}
}
