package protocol

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/andareed/epochx/epoch"
)

// DefaultAnchor is the reference point of the shared clock when a config
// does not name one: Thursday 2024-02-08T00:00:00Z is epoch 0.
var DefaultAnchor = Anchor{ReferenceTimestamp: 1707350400, ReferenceEpoch: 0}

//go:embed default.json
var defaultConfig []byte

type Format string

const (
	FormatJSON Format = "json"
	FormatTOML Format = "toml"
)

type Anchor struct {
	ReferenceTimestamp int64 `json:"referenceTimestamp"`
	ReferenceEpoch     int64 `json:"referenceEpoch"`
}

func (a Anchor) Reference() epoch.Reference {
	return epoch.Reference{Timestamp: a.ReferenceTimestamp, Epoch: a.ReferenceEpoch}
}

type Config struct {
	Anchor    *Anchor    `json:"anchor,omitempty"`
	Protocols []Protocol `json:"protocols"`
}

// ClockAnchor returns the configured anchor or DefaultAnchor.
func (c *Config) ClockAnchor() Anchor {
	if c.Anchor == nil {
		return DefaultAnchor
	}
	return *c.Anchor
}

func (c *Config) Registry() (*Registry, error) {
	return NewRegistry(c.Protocols)
}

// Default returns the built-in configuration.
func Default() (*Config, error) {
	return Parse(defaultConfig, FormatJSON)
}

// Load reads a configuration file, choosing the format by extension.
func Load(path string) (*Config, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load config file %q: %w", path, err)
	}
	cfg, err := Parse(b, format)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

func FormatFromPath(path string) (Format, error) {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".json":
		return FormatJSON, nil
	case ".toml":
		return FormatTOML, nil
	default:
		return "", fmt.Errorf("unsupported config extension %q (want .json or .toml)", ext)
	}
}

// Parse validates data against Schema and decodes it. Any failure wraps
// ErrInvalidConfig.
func Parse(data []byte, format Format) (*Config, error) {
	doc, err := normalize(data, format)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}

	var instance any
	if err := json.Unmarshal(doc, &instance); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	rs, err := resolvedSchema()
	if err != nil {
		return nil, fmt.Errorf("resolve config schema: %w", err)
	}
	if err := rs.Validate(instance); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}

	var cfg Config
	if err := json.Unmarshal(doc, &cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	if cfg.Anchor != nil {
		if err := checkReference(cfg.Anchor.Reference()); err != nil {
			return nil, fmt.Errorf("%w: anchor: %v", ErrInvalidConfig, err)
		}
	}
	// Duplicate ids are not expressible in the schema.
	if _, err := cfg.Registry(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// normalize turns any supported format into a JSON document so that one
// schema covers them all.
func normalize(data []byte, format Format) ([]byte, error) {
	switch format {
	case FormatJSON:
		return data, nil
	case FormatTOML:
		var m map[string]any
		if err := toml.Unmarshal(data, &m); err != nil {
			return nil, err
		}
		return json.Marshal(m)
	default:
		return nil, fmt.Errorf("unsupported config format %q", format)
	}
}
