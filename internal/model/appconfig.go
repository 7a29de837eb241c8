package model

// AppConfig holds application-wide preferences and default settings.
type AppConfig struct {
	// Quoting defaults applied when the user does not choose otherwise
	DefaultCustomer string `json:"default_customer"`

	// Optional paths to user-supplied catalog and preference files.
	// Empty means the built-in catalog and no preference file.
	CatalogPath     string `json:"catalog_path"`
	PreferencesPath string `json:"preferences_path"`

	// How long fetched customer preferences stay cached, in minutes.
	// 0 disables caching.
	PreferenceTTLMinutes int `json:"preference_ttl_minutes"`

	// Application preferences
	AutoSaveInterval int      `json:"auto_save_interval"` // minutes, 0 = disabled
	RecentQuotes     []string `json:"recent_quotes"`
}

// maxRecentQuotes caps the recent-quote list.
const maxRecentQuotes = 10

// DefaultAppConfig returns an AppConfig populated with sensible defaults.
func DefaultAppConfig() AppConfig {
	return AppConfig{
		PreferenceTTLMinutes: 5,
		AutoSaveInterval:     0,
		RecentQuotes:         []string{},
	}
}

// AddRecentQuote pushes a quote file path to the front of the recent list,
// deduplicating and trimming to the cap.
func (c *AppConfig) AddRecentQuote(path string) {
	updated := []string{path}
	for _, p := range c.RecentQuotes {
		if p == path {
			continue
		}
		updated = append(updated, p)
		if len(updated) == maxRecentQuotes {
			break
		}
	}
	c.RecentQuotes = updated
}
