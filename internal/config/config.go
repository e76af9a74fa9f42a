package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

const (
	DefaultDeckName = "Imported Flashcards"
	DefaultDPI      = 300.0
)

var ErrInvalid = errors.New("invalid configuration")

type Config struct {
	DeckName string  `yaml:"deck_name" validate:"required"`
	DPI      float64 `yaml:"dpi" validate:"gte=36,lte=1200"`
	// StableIDs derives deck and note type IDs from the source file so a
	// regenerated package merges with an earlier import.
	StableIDs bool `yaml:"stable_ids"`
	// TempDir is where package media is staged. Empty means the system
	// temp directory.
	TempDir string `yaml:"temp_dir"`
}

func Default() *Config {
	return &Config{
		DeckName: DefaultDeckName,
		DPI:      DefaultDPI,
	}
}

// Load reads a YAML config file on top of the defaults. An empty path
// returns the defaults. Values are not validated here so that callers can
// apply overrides first and then call Validate.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}

	if cfg.DeckName == "" {
		cfg.DeckName = DefaultDeckName
	}
	if cfg.DPI == 0 {
		cfg.DPI = DefaultDPI
	}
	return cfg, nil
}

var validate = validator.New()

func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	return nil
}
