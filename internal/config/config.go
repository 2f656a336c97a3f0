// Package config loads the CDSS core configuration via Viper: defaults,
// optional YAML file, environment overrides with the CDSS prefix.
package config

import (
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"

	"github.com/cdss-core/internal/domain"
)

// Config is the complete service configuration.
type Config struct {
	Logging LoggingConfig `mapstructure:"logging"`
	Engine  EngineConfig  `mapstructure:"engine"`
}

// LoggingConfig controls the logrus logger.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// EngineConfig controls the evaluation core.
type EngineConfig struct {
	// CacheSize is the evaluation-result LRU capacity; 0 disables caching.
	CacheSize int `mapstructure:"cache_size"`
	// DisabledRules lists rule IDs to deactivate at catalog construction.
	DisabledRules []string `mapstructure:"disabled_rules"`
	// Modules restricts which clinical modules the host has licensed;
	// empty means all.
	Modules []string `mapstructure:"modules"`
}

// Manager loads and validates the configuration.
type Manager struct {
	config *Config
}

// NewManager creates a configuration manager and loads configuration from
// defaults, an optional config file, and CDSS_* environment variables.
func NewManager() (*Manager, error) {
	m := &Manager{}
	if err := m.load(); err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	return m, nil
}

func (m *Manager) load() error {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")
	viper.AddConfigPath("/etc/cdss-core/")

	viper.SetEnvPrefix("CDSS")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	m.setDefaults()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return fmt.Errorf("error reading config file: %w", err)
		}
		// No config file: defaults and environment variables apply.
	}

	config := &Config{}
	if err := viper.Unmarshal(config); err != nil {
		return fmt.Errorf("error unmarshaling config: %w", err)
	}

	m.config = config
	return nil
}

func (m *Manager) setDefaults() {
	viper.SetDefault("logging.level", "info")
	viper.SetDefault("logging.format", "json")

	viper.SetDefault("engine.cache_size", 256)
	viper.SetDefault("engine.disabled_rules", []string{})
	viper.SetDefault("engine.modules", []string{})
}

// GetConfig returns the loaded configuration.
func (m *Manager) GetConfig() *Config {
	return m.config
}

// Validate checks the configuration for values the core cannot run with.
func (m *Manager) Validate() error {
	validLevels := map[string]bool{
		"debug": true, "info": true, "warn": true, "error": true, "fatal": true, "panic": true,
	}
	if !validLevels[strings.ToLower(m.config.Logging.Level)] {
		return fmt.Errorf("invalid log level: %s", m.config.Logging.Level)
	}

	switch strings.ToLower(m.config.Logging.Format) {
	case "json", "text":
	default:
		return fmt.Errorf("invalid log format: %s", m.config.Logging.Format)
	}

	if m.config.Engine.CacheSize < 0 {
		return fmt.Errorf("engine cache size must not be negative: %d", m.config.Engine.CacheSize)
	}

	for _, name := range m.config.Engine.Modules {
		if !domain.Module(name).IsValid() {
			return fmt.Errorf("unknown clinical module %q, allowed values: %v", name, domain.AllModules)
		}
	}

	return nil
}

// NewLogger builds the logrus logger described by the logging section.
func (m *Manager) NewLogger() *logrus.Logger {
	logger := logrus.New()

	level, err := logrus.ParseLevel(m.config.Logging.Level)
	if err != nil {
		level = logrus.InfoLevel
	}
	logger.SetLevel(level)

	if strings.ToLower(m.config.Logging.Format) == "text" {
		logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	} else {
		logger.SetFormatter(&logrus.JSONFormatter{})
	}

	return logger
}
