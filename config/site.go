package config

import "strings"

// SiteConfig holds presentation settings for the public site.
type SiteConfig struct {
	Name string `env:"SITE_NAME" envDefault:"Jobboard"`

	// AnalyticsID is a Google Analytics measurement id (G-XXXX). Empty disables analytics.
	AnalyticsID string `env:"ANALYTICS_MEASUREMENT_ID"`

	// CatalogPath loads the job catalog from disk instead of the embedded seed.
	CatalogPath string `env:"JOB_CATALOG_PATH"`
}

// Sanitize trims values.
func (s *SiteConfig) Sanitize() {
	s.Name = strings.TrimSpace(s.Name)
	s.AnalyticsID = strings.TrimSpace(s.AnalyticsID)
	s.CatalogPath = strings.TrimSpace(s.CatalogPath)
}
