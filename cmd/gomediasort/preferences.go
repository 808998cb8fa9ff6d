package main

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v2"
)

// preferences remembers the last identifier and date format used.
type preferences struct {
	LastIdentifier string `yaml:"last_identifier,omitempty"`
	LastDateFormat string `yaml:"last_date_format,omitempty"`
}

func loadPreferences(path string) (preferences, error) {
	var prefs preferences
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return prefs, nil
		}
		return prefs, fmt.Errorf("failed to read preferences: %v", err)
	}

	if err := yaml.Unmarshal(data, &prefs); err != nil {
		return prefs, fmt.Errorf("failed to parse preferences: %v", err)
	}
	return prefs, nil
}

// savePreferences stores the non-empty values of cfg, keeping the previous
// value of anything left empty.
func savePreferences(path string, cfg config) error {
	prefs, err := loadPreferences(path)
	if err != nil {
		prefs = preferences{}
	}

	if cfg.Identifier != "" {
		prefs.LastIdentifier = cfg.Identifier
	}
	if cfg.DateFormat != "" {
		prefs.LastDateFormat = cfg.DateFormat
	}

	data, err := yaml.Marshal(prefs)
	if err != nil {
		return fmt.Errorf("failed to encode preferences: %v", err)
	}
	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("failed to write preferences: %v", err)
	}
	return nil
}

// applyPreferences fills identifier and date format from prefs when neither
// the config file nor the command line set them.
func applyPreferences(cfg *config, prefs preferences) {
	if cfg.Identifier == "" {
		cfg.Identifier = prefs.LastIdentifier
	}
	if cfg.DateFormat == "" {
		cfg.DateFormat = prefs.LastDateFormat
	}
}
