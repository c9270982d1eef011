package seeder

import (
	"fmt"
	"os"

	"github.com/ilyakaznacheev/cleanenv"
)

// Config holds dictionary import settings.
type Config struct {
	// DictionaryPath is a CMU text (.txt) or compiled dictionary file.
	DictionaryPath string `yaml:"dictionary_path" env:"SEEDER_DICTIONARY_PATH" env-default:"./cmudict.txt"`
	BatchSize      int    `yaml:"batch_size"      env:"SEEDER_BATCH_SIZE"      env-default:"1000"`
	DryRun         bool   `yaml:"dry_run"         env:"SEEDER_DRY_RUN"`
	// Truncate empties the table before importing, in the same transaction.
	Truncate bool `yaml:"truncate" env:"SEEDER_TRUNCATE"`
}

// LoadConfig reads seeder configuration from a YAML file and environment variables.
// Priority: ENV > YAML > defaults (via env-default tags).
func LoadConfig(path string) (*Config, error) {
	var cfg Config

	if path != "" {
		if _, err := os.Stat(path); err == nil {
			if err := cleanenv.ReadConfig(path, &cfg); err != nil {
				return nil, fmt.Errorf("seeder config: read %s: %w", path, err)
			}
			return &cfg, cfg.Validate()
		}
		return nil, fmt.Errorf("seeder config: file %s not found", path)
	}

	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("seeder config: read env: %w", err)
	}

	return &cfg, cfg.Validate()
}

// Validate checks the loaded settings.
func (c *Config) Validate() error {
	if c.DictionaryPath == "" {
		return fmt.Errorf("seeder config: dictionary_path is required")
	}
	if c.BatchSize <= 0 {
		return fmt.Errorf("seeder config: batch_size must be > 0 (got %d)", c.BatchSize)
	}
	return nil
}
