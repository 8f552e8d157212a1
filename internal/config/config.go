package config

// Config holds runtime settings for the dashboard.
type Config struct {
	StorageDriver string
	DatabaseDSN   string
	SessionKey    string
	SnapshotKey   string
	Locale        string
	Verifier      string
	LogLevel      string
	LogFormat     string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.StorageDriver = "sqlite"
	c.DatabaseDSN = "dashboard.db"
	c.SessionKey = "rbac-storage"
	c.SnapshotKey = "users"
	c.Locale = "en"
	c.Verifier = "plain"
	c.LogLevel = "info"
	c.LogFormat = "text"
}

// LoadConfig applies defaults, then JSON (if given), then flags.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
