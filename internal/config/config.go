package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config represents the top-level bankfeed.yaml configuration.
type Config struct {
	Business     BusinessConfig `yaml:"business"`
	Currency     string         `yaml:"currency"`
	BankAccounts []BankAccount  `yaml:"bank_accounts,omitempty"`
	Import       ImportConfig   `yaml:"import"`
}

// BusinessConfig identifies the business entity the ledgers belong to.
type BusinessConfig struct {
	Name string `yaml:"name"`
}

// BankAccount maps one bank feed to a ledger file.
type BankAccount struct {
	ID             string `yaml:"id"`
	Name           string `yaml:"name"`
	Bank           string `yaml:"bank"`
	LastFour       string `yaml:"last_four"`
	OpeningBalance string `yaml:"opening_balance"`
}

// ImportConfig controls import defaults.
type ImportConfig struct {
	SkipDuplicates bool   `yaml:"skip_duplicates"`
	CategoryID     string `yaml:"default_category,omitempty"`
}

// Load reads a bankfeed.yaml file from disk.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	return &cfg, nil
}

// Save writes a Config to a YAML file.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

// Default returns a Config with sensible defaults for a new workspace.
func Default(businessName string) *Config {
	return &Config{
		Business: BusinessConfig{Name: businessName},
		Currency: "ZAR",
		Import: ImportConfig{
			SkipDuplicates: true,
		},
	}
}
