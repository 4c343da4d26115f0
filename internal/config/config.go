package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/tidwall/jsonc"
	"gopkg.in/yaml.v3"

	"github.com/shinji-kodama/shipit/internal/model"
)

// Config is the parsed shipit project configuration.
// The zero value is a valid configuration with every default applied later.
type Config struct {
	// Mirror customizes the tree mirror workflow.
	Mirror MirrorConfig `json:"mirror,omitempty" yaml:"mirror,omitempty"`

	// Deploy declares the optional deployment target. Environment
	// variables override these values (see deploy.ResolveTarget).
	Deploy model.DeployTarget `json:"deploy,omitempty" yaml:"deploy,omitempty"`
}

// MirrorConfig customizes the tree mirror workflow.
type MirrorConfig struct {
	// Source is the source root to mirror from. Defaults to ~/.shipit.
	Source string `json:"source,omitempty" yaml:"source,omitempty"`

	// Dest is the destination root to mirror into. Defaults to ./.shipit.
	Dest string `json:"dest,omitempty" yaml:"dest,omitempty"`

	// Subtrees are the named subtrees replicated from Source to Dest.
	// Defaults to commands, scripts, rules.
	Subtrees []string `json:"subtrees,omitempty" yaml:"subtrees,omitempty"`
}

// candidateNames lists the configuration file names in priority order.
// The first one that exists wins; the rest are ignored.
var candidateNames = []string{
	"shipit.json",
	"shipit.jsonc",
	"shipit.yaml",
	"shipit.yml",
}

// Load reads the project configuration from dir.
//
// Returns a zero Config (and no error) when no configuration file exists.
// A file that exists but cannot be parsed is an error — a half-read
// configuration silently falling back to defaults would be worse than
// failing loudly.
func Load(dir string) (*Config, error) {
	for _, name := range candidateNames {
		path := filepath.Join(dir, name)
		data, err := os.ReadFile(path)
		if err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return nil, fmt.Errorf("failed to read %s: %w", path, err)
		}
		return parse(path, data)
	}
	return &Config{}, nil
}

// parse decodes data according to the file extension.
func parse(path string, data []byte) (*Config, error) {
	var cfg Config

	switch strings.ToLower(filepath.Ext(path)) {
	case ".json", ".jsonc":
		// Strip JSONC comments (// and /* */) and trailing commas before
		// parsing. Operators comment these files the same way they
		// comment devcontainer.json.
		clean := jsonc.ToJSON(data)
		if err := json.Unmarshal(clean, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", path, err)
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", path, err)
		}
	default:
		return nil, fmt.Errorf("unsupported config file extension: %s", path)
	}

	return &cfg, nil
}
