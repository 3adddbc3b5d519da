package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"ctlpay/internal/models"
)

// DefaultOperators returns the built-in mobile-money fee schedule.
func DefaultOperators() []models.Operator {
	return []models.Operator{
		{
			Key:         "orange",
			DisplayName: "Orange Money",
			FeeRate:     0.01,
			Icon:        "🎯",
			AccentColor: "#FF6600",
		},
		{
			Key:         "mtn",
			DisplayName: "MTN Mobile Money",
			FeeRate:     0.015,
			Icon:        "🔷",
			AccentColor: "#FFCC00",
		},
	}
}

type operatorsFile struct {
	Operators []models.Operator `yaml:"operateurs"`
}

// LoadOperators reads the operator fee schedule from a YAML file, falling
// back to the built-in defaults when no path is configured. A schedule
// entry with a fee rate outside [0, 1) is a configuration error.
func LoadOperators(path string) ([]models.Operator, error) {
	if path == "" {
		return DefaultOperators(), nil
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read operators file: %w", err)
	}

	var file operatorsFile
	if err := yaml.Unmarshal(raw, &file); err != nil {
		return nil, fmt.Errorf("failed to parse operators file: %w", err)
	}
	if len(file.Operators) == 0 {
		return nil, fmt.Errorf("operators file %s defines no operators", path)
	}

	for i := range file.Operators {
		op := &file.Operators[i]
		if !op.Valid() {
			return nil, fmt.Errorf("operator %q has invalid fee rate %v", op.Key, op.FeeRate)
		}
	}
	return file.Operators, nil
}
