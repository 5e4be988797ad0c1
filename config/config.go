package config

import (
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"
)

// Site holds the publishing site's identity used in channel headers.
type Site struct {
	Title       string `toml:"title"`
	URL         string `toml:"url"`
	Description string `toml:"description"`
	Language    string `toml:"language"`
	Charset     string `toml:"charset"`
	Copyright   string `toml:"copyright"`
	LogoURL     string `toml:"logo_url"`
	WideLogoURL string `toml:"wide_logo_url"`
	TrackingID  string `toml:"tracking_id"`
}

// Feed holds delivery-wide rendering settings.
type Feed struct {
	// DisplayTimezone is the IANA zone all displayed dates are converted
	// to. Empty means dates pass through unconverted.
	DisplayTimezone string `toml:"display_timezone"`
	ExpiresHours    int    `toml:"expires_hours"`
}

// Store points at the article repository database.
type Store struct {
	Database string `toml:"database"`
}

// Media points at the external asset lookup service.
type Media struct {
	Endpoint string        `toml:"endpoint"`
	Timeout  time.Duration `toml:"timeout"`
}

// Config represents the top-level configuration
type Config struct {
	Site  Site  `toml:"site"`
	Feed  Feed  `toml:"feed"`
	Store Store `toml:"store"`
	Media Media `toml:"media"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		Site: Site{
			Language: "ja",
			Charset:  "UTF-8",
		},
		Feed: Feed{
			DisplayTimezone: "Asia/Tokyo",
			ExpiresHours:    1,
		},
		Store: Store{
			Database: "articles.db",
		},
	}
}

func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	config := Default()
	if err := toml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("error parsing config file: %w", err)
	}

	return config, nil
}

// Location resolves the configured display timezone. A nil location means
// dates are rendered without conversion.
func (c *Config) Location() (*time.Location, error) {
	if c.Feed.DisplayTimezone == "" {
		return nil, nil
	}
	loc, err := time.LoadLocation(c.Feed.DisplayTimezone)
	if err != nil {
		return nil, fmt.Errorf("error loading display timezone: %w", err)
	}
	return loc, nil
}
