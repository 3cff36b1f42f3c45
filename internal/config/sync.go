package config

import "time"

const (
	DefaultHexAPIURL   = "https://hex.pm/api"
	DefaultSyncTimeout = 60 * time.Second
	DefaultUserAgent   = "catalog-sync"
)

// SyncConfig controls package synchronisation against the hex.pm registry.
type SyncConfig struct {
	// HexAPIURL is the registry API root; packages are fetched from
	// {HexAPIURL}/packages/{name}.
	HexAPIURL string `koanf:"hex_api_url" validate:"required,url"`

	// Timeout bounds a single sync task, HTTP round trip included.
	Timeout time.Duration `koanf:"timeout" validate:"min=1s"`

	UserAgent string `koanf:"user_agent" validate:"required"`
}

func DefaultSyncConfig() *SyncConfig {
	return &SyncConfig{
		HexAPIURL: DefaultHexAPIURL,
		Timeout:   DefaultSyncTimeout,
		UserAgent: DefaultUserAgent,
	}
}

// applyDefaults fills fields left empty by a partially configured block.
func (c *SyncConfig) applyDefaults() {
	if c.HexAPIURL == "" {
		c.HexAPIURL = DefaultHexAPIURL
	}
	if c.Timeout == 0 {
		c.Timeout = DefaultSyncTimeout
	}
	if c.UserAgent == "" {
		c.UserAgent = DefaultUserAgent
	}
}
