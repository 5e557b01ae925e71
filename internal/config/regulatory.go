package config

import (
	"fmt"
	"os"

	"github.com/scott198989/securepoint-sub000/internal/domain"
	"github.com/scott198989/securepoint-sub000/internal/rates"
	"gopkg.in/yaml.v3"
)

// LoadRegulatory reads a regulatory override file. Only the years and states it names
// replace the embedded tables.
func LoadRegulatory(filename string) (domain.RegulatoryConfig, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return domain.RegulatoryConfig{}, fmt.Errorf("failed to read file %s: %w", filename, err)
	}
	return ParseRegulatory(data)
}

// ParseRegulatory decodes a regulatory override document
func ParseRegulatory(data []byte) (domain.RegulatoryConfig, error) {
	var cfg domain.RegulatoryConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return domain.RegulatoryConfig{}, fmt.Errorf("failed to parse YAML: %w", err)
	}
	for _, fy := range cfg.FederalTax {
		if fy.Year == 0 {
			return domain.RegulatoryConfig{}, fmt.Errorf("federal_tax entry is missing its year")
		}
	}
	for _, f := range cfg.FICA {
		if f.Year == 0 {
			return domain.RegulatoryConfig{}, fmt.Errorf("fica entry is missing its year")
		}
	}
	return cfg, nil
}

// LoadTables returns the embedded tables, merged with the override file when one is named
func LoadTables(filename string) (*rates.Tables, error) {
	if filename == "" {
		return rates.Default(), nil
	}
	override, err := LoadRegulatory(filename)
	if err != nil {
		return nil, err
	}
	tables, err := rates.Default().Merge(override)
	if err != nil {
		return nil, fmt.Errorf("regulatory override %s: %w", filename, err)
	}
	return tables, nil
}
