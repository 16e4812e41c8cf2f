package bapanel

import (
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds the loader configuration. All fields have working
// defaults so a missing config file is not an error.
type Config struct {
	// DB is the path of the SQLite store.
	DB string `yaml:"db"`

	// Log is the path of the loader log file.
	Log string `yaml:"log"`

	// BatchSize is the number of tools written between validation
	// checkpoints.
	BatchSize int `yaml:"batch_size"`

	Scrape ScrapeConfig `yaml:"scrape"`
}

// ScrapeConfig configures the website description scrape.
type ScrapeConfig struct {
	// BaseURL is the root of the project website.
	BaseURL string `yaml:"base_url"`

	// Pages are category page paths relative to BaseURL. When empty,
	// pages are discovered from the site's sitemap.
	Pages []string `yaml:"pages"`

	// RPS caps outbound requests per second.
	RPS float64 `yaml:"rps"`
}

// DefaultConfig returns the loader configuration defaults.
func DefaultConfig() Config {
	return Config{
		DB:        "blackarch_tools.db",
		Log:       "bapanel_etl.log",
		BatchSize: 50,
		Scrape: ScrapeConfig{
			BaseURL: "https://blackarch.org",
			Pages: []string{
				"/exploitation.html",
				"/scanner.html",
				"/webapp.html",
				"/fuzzer.html",
				"/recon.html",
			},
			RPS: 1,
		},
	}
}

// LoadConfig reads the configuration file at path, filling unset fields
// from the defaults. A missing file yields the defaults unchanged.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	} else if err != nil {
		return cfg, err
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, Errorf(EINVALID, "parse config %s: %v", path, err)
	}
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = DefaultConfig().BatchSize
	}
	if cfg.Scrape.RPS <= 0 {
		cfg.Scrape.RPS = DefaultConfig().Scrape.RPS
	}
	return cfg, nil
}
