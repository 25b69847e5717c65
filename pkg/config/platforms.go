// ABOUTME: Loads the platform table from a YAML file
// ABOUTME: Lets operators adjust listing URLs and hint sets without a rebuild

package config

import (
	"fmt"
	"os"

	"coursefinder-api/core/domain"
	"gopkg.in/yaml.v3"
)

// PlatformsFile is the YAML document shape
type PlatformsFile struct {
	Platforms []domain.PlatformConfig `yaml:"platforms"`
}

// LoadPlatforms reads and validates platform configurations from path
func LoadPlatforms(path string) ([]domain.PlatformConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading platforms file: %w", err)
	}
	return ParsePlatforms(data)
}

// ParsePlatforms decodes and validates a YAML platform table
func ParsePlatforms(data []byte) ([]domain.PlatformConfig, error) {
	var file PlatformsFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parsing platforms file: %w", err)
	}

	if len(file.Platforms) == 0 {
		return nil, fmt.Errorf("platforms file defines no platforms")
	}

	seen := make(map[string]bool, len(file.Platforms))
	for i, p := range file.Platforms {
		if p.Name == "" {
			return nil, fmt.Errorf("platform %d: name cannot be empty", i)
		}
		if seen[p.Name] {
			return nil, fmt.Errorf("platform %q is defined twice", p.Name)
		}
		seen[p.Name] = true
		if p.ListingURL == "" {
			return nil, fmt.Errorf("platform %q: listing_url cannot be empty", p.Name)
		}
		if len(p.HintSets) == 0 {
			return nil, fmt.Errorf("platform %q: at least one hint set is required", p.Name)
		}
		for j, rule := range p.HintSets {
			if rule.Tag == "" {
				return nil, fmt.Errorf("platform %q: hint set %d has no tag", p.Name, j)
			}
		}
	}

	return file.Platforms, nil
}
