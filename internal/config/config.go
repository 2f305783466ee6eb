package config

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"remoteselect/internal/domain"
)

// Defaults
const (
	DefaultMaxVisibleCount   = 10
	DefaultDebounceMS        = 300
	DefaultTimeoutMS         = 10000
	DefaultPlaceholder       = "Select an item..."
	DefaultSearchPlaceholder = "Search..."
)

// Config represents the mount-time configuration of a select control
type Config struct {
	Endpoint         string `toml:"endpoint" yaml:"endpoint" json:"endpoint"`
	KeyProperty      string `toml:"key_property" yaml:"key_property" json:"key_property"`
	DisplayTemplate  string `toml:"display_template" yaml:"display_template" json:"display_template"`
	MaxVisibleCount  int    `toml:"max_visible_count" yaml:"max_visible_count" json:"max_visible_count"`
	InitialSelection string `toml:"initial_selection,omitempty" yaml:"initial_selection,omitempty" json:"initial_selection,omitempty"`

	Fetch      FetchSettings `toml:"fetch" yaml:"fetch" json:"fetch"`
	UISettings UISettings    `toml:"ui" yaml:"ui" json:"ui"`
}

// FetchSettings controls the fetch pipeline
type FetchSettings struct {
	DebounceMS int `toml:"debounce_ms" yaml:"debounce_ms" json:"debounce_ms"`
	TimeoutMS  int `toml:"timeout_ms" yaml:"timeout_ms" json:"timeout_ms"`
}

// Debounce returns the quiet window as a duration
func (f FetchSettings) Debounce() time.Duration {
	return time.Duration(f.DebounceMS) * time.Millisecond
}

// Timeout returns the per-request timeout as a duration
func (f FetchSettings) Timeout() time.Duration {
	return time.Duration(f.TimeoutMS) * time.Millisecond
}

// UISettings represents presentation configuration for host adapters
type UISettings struct {
	Placeholder       string `toml:"placeholder" yaml:"placeholder" json:"placeholder"`
	SearchPlaceholder string `toml:"search_placeholder" yaml:"search_placeholder" json:"search_placeholder"`
	ExitOnSelect      bool   `toml:"exit_on_select" yaml:"exit_on_select" json:"exit_on_select"`
	Mouse             bool   `toml:"mouse" yaml:"mouse" json:"mouse"`
}

// ConfigService handles configuration management
type ConfigService interface {
	Load() (*Config, error)
	LoadFromPath(path string) (*Config, error)
	SaveToPath(config *Config, path string) error
	Path() string
}

// configService is the concrete implementation
type configService struct {
	filePath string
}

// NewConfigService creates a config service rooted at the user config directory
func NewConfigService() ConfigService {
	configDir, err := os.UserConfigDir()
	if err != nil {
		// Fallback to home directory
		configDir, err = os.UserHomeDir()
		if err != nil {
			configDir = "."
		}
		configDir = filepath.Join(configDir, ".config")
	}

	return &configService{
		filePath: filepath.Join(configDir, "remoteselect", "config.toml"),
	}
}

// NewConfigServiceAt creates a config service with an explicit default path
func NewConfigServiceAt(path string) ConfigService {
	return &configService{filePath: path}
}

// Path returns the default config path
func (cs *configService) Path() string {
	return cs.filePath
}

// Load loads the configuration from the default path.
// A missing file yields DefaultConfig.
func (cs *configService) Load() (*Config, error) {
	if _, err := os.Stat(cs.filePath); os.IsNotExist(err) {
		return DefaultConfig(), nil
	}
	return cs.LoadFromPath(cs.filePath)
}

// LoadFromPath loads configuration from a specific path.
// The format is picked from the file extension.
func (cs *configService) LoadFromPath(path string) (*Config, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, fmt.Errorf("config file not found: %s", path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg, err := Parse(data, formatFor(path))
	if err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	return cfg, nil
}

// SaveToPath saves configuration to a specific path
func (cs *configService) SaveToPath(config *Config, path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := Marshal(config, formatFor(path))
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	log.Printf("Config saved to %s", path)
	return nil
}

// Format is a config file encoding
type Format string

const (
	FormatTOML Format = "toml"
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
)

func formatFor(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	case ".json":
		return FormatJSON
	default:
		return FormatTOML
	}
}

// Parse decodes a config on top of DefaultConfig so absent keys keep their defaults
func Parse(data []byte, format Format) (*Config, error) {
	cfg := DefaultConfig()

	var err error
	switch format {
	case FormatYAML:
		err = yaml.Unmarshal(data, cfg)
	case FormatJSON:
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		err = dec.Decode(cfg)
	default:
		err = toml.Unmarshal(data, cfg)
	}
	if err != nil {
		return nil, err
	}

	cfg.Normalize()
	return cfg, nil
}

// Marshal encodes a config in the given format
func Marshal(cfg *Config, format Format) ([]byte, error) {
	switch format {
	case FormatYAML:
		return yaml.Marshal(cfg)
	case FormatJSON:
		return json.MarshalIndent(cfg, "", "  ")
	default:
		return toml.Marshal(cfg)
	}
}

// Normalize replaces non-positive sizes and durations with their defaults
func (c *Config) Normalize() {
	if c.MaxVisibleCount <= 0 {
		if c.MaxVisibleCount < 0 {
			log.Printf("Config: max_visible_count %d is not positive, using %d", c.MaxVisibleCount, DefaultMaxVisibleCount)
		}
		c.MaxVisibleCount = DefaultMaxVisibleCount
	}
	if c.Fetch.DebounceMS <= 0 {
		c.Fetch.DebounceMS = DefaultDebounceMS
	}
	if c.Fetch.TimeoutMS <= 0 {
		c.Fetch.TimeoutMS = DefaultTimeoutMS
	}
	if c.UISettings.Placeholder == "" {
		c.UISettings.Placeholder = DefaultPlaceholder
	}
	if c.UISettings.SearchPlaceholder == "" {
		c.UISettings.SearchPlaceholder = DefaultSearchPlaceholder
	}
}

// Validate checks the required mount-time fields
func (c *Config) Validate() error {
	cerr := &domain.ConfigurationError{}

	if strings.TrimSpace(c.Endpoint) == "" {
		cerr.Missing = append(cerr.Missing, "endpoint")
	} else if u, err := url.Parse(c.Endpoint); err != nil {
		cerr.Invalid = append(cerr.Invalid, fmt.Sprintf("endpoint: %v", err))
	} else if u.Scheme == "" || u.Host == "" {
		cerr.Invalid = append(cerr.Invalid, "endpoint: must be an absolute URL")
	}
	if strings.TrimSpace(c.KeyProperty) == "" {
		cerr.Missing = append(cerr.Missing, "key_property")
	}
	if c.DisplayTemplate == "" {
		cerr.Missing = append(cerr.Missing, "display_template")
	}

	if len(cerr.Missing) > 0 || len(cerr.Invalid) > 0 {
		return cerr
	}
	return nil
}

// DefaultConfig returns the default configuration.
// Endpoint, key property and template are left empty on purpose: they must be supplied.
func DefaultConfig() *Config {
	return &Config{
		MaxVisibleCount: DefaultMaxVisibleCount,
		Fetch: FetchSettings{
			DebounceMS: DefaultDebounceMS,
			TimeoutMS:  DefaultTimeoutMS,
		},
		UISettings: UISettings{
			Placeholder:       DefaultPlaceholder,
			SearchPlaceholder: DefaultSearchPlaceholder,
			Mouse:             true,
		},
	}
}

// SampleConfig returns a config pointing at the bundled demo item source
func SampleConfig() *Config {
	cfg := DefaultConfig()
	cfg.Endpoint = "http://localhost:3000/items"
	cfg.KeyProperty = "id"
	cfg.DisplayTemplate = "text (id)"
	return cfg
}
