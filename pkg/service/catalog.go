// Copyright (c) 2025 Nocturne Labs. All Rights Reserved.
// This is licensed software from Nocturne Labs, for limitations
// and restrictions contact your company contract manager.

package service

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Catalog is the static reward catalog: an ordered list of reward names.
// It is read once at startup and never mutated.
type Catalog struct {
	Rewards []string `yaml:"rewards"`
}

// LoadCatalog loads the reward catalog from a YAML file.
// Supports environment variable expansion in the form ${VAR_NAME} or ${VAR_NAME:default}.
func LoadCatalog(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog file %s: %w", path, err)
	}

	expanded := expandEnvVars(string(data))

	var catalog Catalog
	if err := yaml.Unmarshal([]byte(expanded), &catalog); err != nil {
		return nil, fmt.Errorf("failed to parse YAML catalog: %w", err)
	}

	if err := catalog.Validate(); err != nil {
		return nil, fmt.Errorf("invalid catalog: %w", err)
	}

	return &catalog, nil
}

// Validate checks the catalog for blank entries. An empty catalog is
// accepted: the allocator degrades to zero-reward draws rather than
// refusing to start.
func (c *Catalog) Validate() error {
	for i, name := range c.Rewards {
		if strings.TrimSpace(name) == "" {
			return fmt.Errorf("reward %d has an empty name", i)
		}
	}
	return nil
}

// expandEnvVars expands environment variables in the format ${VAR} or ${VAR:default}.
func expandEnvVars(s string) string {
	return os.Expand(s, func(key string) string {
		parts := strings.SplitN(key, ":", 2)
		varName := parts[0]
		defaultValue := ""
		if len(parts) == 2 {
			defaultValue = parts[1]
		}

		value := os.Getenv(varName)
		if value == "" {
			return defaultValue
		}
		return value
	})
}
