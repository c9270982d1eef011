package config

import (
	"fmt"
	"strings"
)

// Validate performs business-rule validation on the loaded configuration.
// It must be called after loading; Load calls it automatically.
func (c *Config) Validate() error {
	if c.Server.RateLimit < 0 {
		return fmt.Errorf("server.rate_limit must be >= 0 (got %d)", c.Server.RateLimit)
	}

	if err := c.validateDictionary(); err != nil {
		return fmt.Errorf("dictionary: %w", err)
	}

	if err := c.Search.validate(); err != nil {
		return fmt.Errorf("search: %w", err)
	}

	switch strings.ToLower(c.Log.Format) {
	case "json", "text":
	default:
		return fmt.Errorf("log.format must be json or text (got %q)", c.Log.Format)
	}

	return nil
}

func (c *Config) validateDictionary() error {
	switch c.Dictionary.Source {
	case SourceFile:
		if strings.TrimSpace(c.Dictionary.Path) == "" {
			return fmt.Errorf("path is required for source %q", SourceFile)
		}
	case SourcePostgres:
		if strings.TrimSpace(c.Database.DSN) == "" {
			return fmt.Errorf("database.dsn is required for source %q", SourcePostgres)
		}
	default:
		return fmt.Errorf("source must be %q or %q (got %q)", SourceFile, SourcePostgres, c.Dictionary.Source)
	}
	return nil
}

func (s *SearchConfig) validate() error {
	if s.Workers < 1 {
		return fmt.Errorf("workers must be >= 1 (got %d)", s.Workers)
	}
	if s.PatternCacheSize < 0 {
		return fmt.Errorf("pattern_cache_size must be >= 0 (got %d)", s.PatternCacheSize)
	}
	if s.MaxPatternLength < 0 {
		return fmt.Errorf("max_pattern_length must be >= 0 (got %d)", s.MaxPatternLength)
	}
	return nil
}
