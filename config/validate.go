package config

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/Klingon-tech/helium-wallet/internal/log"
)

// Validate checks the configuration for obvious mistakes and normalizes
// string settings.
func Validate(cfg *Config) error {
	if cfg == nil {
		return fmt.Errorf("config is nil")
	}

	cfg.Format = strings.ToLower(strings.TrimSpace(cfg.Format))
	switch cfg.Format {
	case "table", "json":
	default:
		return fmt.Errorf("format must be table or json, got %q", cfg.Format)
	}

	if cfg.Timeout <= 0 {
		return fmt.Errorf("timeout must be positive, got %s", cfg.Timeout)
	}
	if !log.ValidLevel(cfg.Log.Level) {
		return fmt.Errorf("log.level must be debug, info, warn, error or disabled, got %q", cfg.Log.Level)
	}

	files := cfg.Files[:0]
	for _, f := range cfg.Files {
		if f = strings.TrimSpace(f); f != "" {
			files = append(files, f)
		}
	}
	if len(files) == 0 {
		return fmt.Errorf("at least one wallet file is required")
	}
	cfg.Files = files

	if cfg.APIURL != "" {
		cfg.APIURL = strings.TrimRight(strings.TrimSpace(cfg.APIURL), "/")
		u, err := url.Parse(cfg.APIURL)
		if err != nil {
			return fmt.Errorf("api_url: %w", err)
		}
		if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			return fmt.Errorf("api_url must be an http(s) URL, got %q", cfg.APIURL)
		}
	}
	return nil
}
