package config

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"emperror.dev/errors"
	"github.com/pelletier/go-toml/v2"

	"ghgrip/internal/domain"
	"ghgrip/internal/eventbus"
)

const (
	DefaultPageSize       = 20
	MaxPageSize           = 100
	DefaultRequestTimeout = 30 * time.Second
)

// Config represents the application configuration
type Config struct {
	Version        int        `toml:"version"`
	Endpoint       string     `toml:"endpoint,omitempty"`
	PageSize       int        `toml:"page_size"`
	Sort           string     `toml:"sort"`
	RequestTimeout string     `toml:"request_timeout"`
	UISettings     UISettings `toml:"ui"`
}

// UISettings represents UI-related configuration
type UISettings struct {
	ShowDescription    bool `toml:"show_description"`
	ShowTimestamps     bool `toml:"show_timestamps"`
	RefetchAfterRename bool `toml:"refetch_after_rename"`
	AutosaveOnExit     bool `toml:"autosave_on_exit"`
}

// SortKey returns the configured sort key, falling back to the default
func (c *Config) SortKey() domain.SortKey {
	key, err := domain.ParseSortKey(c.Sort)
	if err != nil {
		return domain.DefaultSortKey
	}
	return key
}

// Timeout returns the per-request timeout
func (c *Config) Timeout() time.Duration {
	d, err := time.ParseDuration(strings.TrimSpace(c.RequestTimeout))
	if err != nil || d <= 0 {
		return DefaultRequestTimeout
	}
	return d
}

// Validate checks values that can't be silently defaulted
func (c *Config) Validate() error {
	if c.PageSize < 0 || c.PageSize > MaxPageSize {
		return errors.WithDetails(errors.Errorf("page_size must be between 1 and %d", MaxPageSize), "page_size", c.PageSize)
	}
	if c.Sort != "" {
		if _, err := domain.ParseSortKey(c.Sort); err != nil {
			return errors.Wrap(err, "invalid sort")
		}
	}
	if c.RequestTimeout != "" {
		if _, err := time.ParseDuration(strings.TrimSpace(c.RequestTimeout)); err != nil {
			return errors.Wrap(err, "invalid request_timeout")
		}
	}
	return nil
}

func (c *Config) normalize() {
	if c.PageSize == 0 {
		c.PageSize = DefaultPageSize
	}
	if c.Version == 0 {
		c.Version = 1
	}
}

// ConfigService handles configuration management
type ConfigService interface {
	Load() (*Config, error)
	Save(config *Config) error
	LoadFromPath(path string) (*Config, error)
	SaveToPath(config *Config, path string) error
	Path() string
}

// configService is the concrete implementation
type configService struct {
	bus      eventbus.EventBus
	filePath string
}

// DefaultPath returns $XDG_CONFIG_HOME/ghgrip/config.toml or the platform equivalent
func DefaultPath() string {
	configDir, err := os.UserConfigDir()
	if err != nil {
		configDir, err = os.UserHomeDir()
		if err != nil {
			configDir = "."
		}
		configDir = filepath.Join(configDir, ".config")
	}
	return filepath.Join(configDir, "ghgrip", "config.toml")
}

// NewConfigService creates a config service for path, or the default path when empty
func NewConfigService(path string) ConfigService {
	if path == "" {
		path = DefaultPath()
	}
	return &configService{filePath: path}
}

// NewConfigServiceWithBus creates a config service with event bus support
func NewConfigServiceWithBus(path string, bus eventbus.EventBus) ConfigService {
	cs := NewConfigService(path).(*configService)
	cs.bus = bus
	return cs
}

func (cs *configService) Path() string {
	return cs.filePath
}

// Load loads the configuration from file. A missing file yields defaults.
func (cs *configService) Load() (*Config, error) {
	cfg, err := cs.LoadFromPath(cs.filePath)
	if errors.Is(err, os.ErrNotExist) {
		cfg, err = DefaultConfig(), nil
	}
	if err != nil {
		return nil, err
	}

	if cs.bus != nil {
		cs.bus.Publish(eventbus.ConfigLoadedEvent{
			Path: cs.filePath,
			Sort: cfg.SortKey(),
		})
	}

	return cfg, nil
}

// Save saves the configuration to file
func (cs *configService) Save(config *Config) error {
	if err := cs.SaveToPath(config, cs.filePath); err != nil {
		return err
	}

	if cs.bus != nil {
		cs.bus.Publish(eventbus.ConfigSavedEvent{})
	}

	return nil
}

// LoadFromPath loads configuration from a specific path
func (cs *configService) LoadFromPath(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read config file %s", path)
	}

	cfg := DefaultConfig()
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, errors.Wrapf(err, "failed to parse config file %s", path)
	}
	cfg.normalize()

	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrapf(err, "config file %s", path)
	}

	return cfg, nil
}

// SaveToPath saves configuration to a specific path
func (cs *configService) SaveToPath(config *Config, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return errors.Wrap(err, "failed to create config directory")
	}

	data, err := toml.Marshal(config)
	if err != nil {
		return errors.Wrap(err, "failed to marshal config")
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return errors.Wrap(err, "failed to write config file")
	}

	return nil
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Version:        1,
		PageSize:       DefaultPageSize,
		Sort:           domain.DefaultSortKey.String(),
		RequestTimeout: DefaultRequestTimeout.String(),
		UISettings: UISettings{
			ShowDescription:    true,
			ShowTimestamps:     true,
			RefetchAfterRename: true,
			AutosaveOnExit:     true,
		},
	}
}
