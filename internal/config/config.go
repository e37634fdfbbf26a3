package config

// Config holds the site-wide settings, populated by viper from
// config.yaml, BLOG_* environment variables, and defaults.
type Config struct {
	SiteTitle string `mapstructure:"siteTitle"`
	Author    string `mapstructure:"author"`
	BaseURL   string `mapstructure:"baseURL"`

	ContentDir string `mapstructure:"contentDir"`
	StaticDir  string `mapstructure:"staticDir"`
	OutputDir  string `mapstructure:"outputDir"`

	// PageSize is the listing page size, carried into the manifest for
	// the rendering collaborator.
	PageSize int `mapstructure:"pageSize"`
	// RecentCount is how many posts "latest" views show by default.
	RecentCount int `mapstructure:"recentCount"`

	// Strict makes content parse errors fatal instead of skipping the
	// offending file.
	Strict bool `mapstructure:"strict"`
}
