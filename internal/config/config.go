// Package config provides Viper-based configuration loading for the combat
// engine.
package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// LoggingConfig holds structured logging settings.
type LoggingConfig struct {
	// Level is the minimum log level: "debug", "info", "warn", "error".
	Level string `mapstructure:"level"`
	// Format is the log output format: "json" or "console".
	Format string `mapstructure:"format"`
}

// ContentConfig holds paths to the YAML content definitions.
type ContentConfig struct {
	// WeaponsPath is the YAML file defining weapon archetypes.
	WeaponsPath string `mapstructure:"weapons_path"`
	// ItemsPath is the YAML file defining usable items.
	ItemsPath string `mapstructure:"items_path"`
	// StatusesPath is the YAML file defining status effects.
	StatusesPath string `mapstructure:"statuses_path"`
}

// ScriptingConfig holds Lua plugin settings.
type ScriptingConfig struct {
	// Enabled toggles loading of Lua plugins.
	Enabled bool `mapstructure:"enabled"`
	// PluginDir is the directory scanned for *.lua plugin files.
	PluginDir string `mapstructure:"plugin_dir"`
	// InstructionLimit is the maximum Lua opcodes per script execution;
	// 0 uses the built-in default.
	InstructionLimit int `mapstructure:"instruction_limit"`
}

// CombatConfig holds encounter defaults.
type CombatConfig struct {
	// Lighting is the default lighting condition: "bright", "normal",
	// "dim", or "dark".
	Lighting string `mapstructure:"lighting"`
	// Weather is the default weather condition: "clear", "rain", "fog",
	// or "storm".
	Weather string `mapstructure:"weather"`
	// MaxTurns bounds an encounter; 0 means unbounded.
	MaxTurns int `mapstructure:"max_turns"`
}

// Config is the top-level application configuration.
type Config struct {
	Logging   LoggingConfig   `mapstructure:"logging"`
	Content   ContentConfig   `mapstructure:"content"`
	Scripting ScriptingConfig `mapstructure:"scripting"`
	Combat    CombatConfig    `mapstructure:"combat"`
}

// Validate checks all configuration invariants.
//
// Postcondition: Returns nil if configuration is valid, or an error
// describing all violations.
func (c Config) Validate() error {
	var errs []string

	if err := validateLogging(c.Logging); err != nil {
		errs = append(errs, err.Error())
	}
	if err := validateScripting(c.Scripting); err != nil {
		errs = append(errs, err.Error())
	}
	if err := validateCombat(c.Combat); err != nil {
		errs = append(errs, err.Error())
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration validation failed: %s", strings.Join(errs, "; "))
	}
	return nil
}

func validateLogging(l LoggingConfig) error {
	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[l.Level] {
		return fmt.Errorf("logging.level must be one of [debug, info, warn, error], got %q", l.Level)
	}
	validFormats := map[string]bool{"json": true, "console": true}
	if !validFormats[l.Format] {
		return fmt.Errorf("logging.format must be one of [json, console], got %q", l.Format)
	}
	return nil
}

func validateScripting(s ScriptingConfig) error {
	var errs []string
	if s.Enabled && s.PluginDir == "" {
		errs = append(errs, "scripting.plugin_dir must not be empty when scripting is enabled")
	}
	if s.InstructionLimit < 0 {
		errs = append(errs, fmt.Sprintf("scripting.instruction_limit must be >= 0, got %d", s.InstructionLimit))
	}
	if len(errs) > 0 {
		return fmt.Errorf("%s", strings.Join(errs, "; "))
	}
	return nil
}

func validateCombat(c CombatConfig) error {
	var errs []string
	validLighting := map[string]bool{"bright": true, "normal": true, "dim": true, "dark": true}
	if !validLighting[c.Lighting] {
		errs = append(errs, fmt.Sprintf("combat.lighting must be one of [bright, normal, dim, dark], got %q", c.Lighting))
	}
	validWeather := map[string]bool{"clear": true, "rain": true, "fog": true, "storm": true}
	if !validWeather[c.Weather] {
		errs = append(errs, fmt.Sprintf("combat.weather must be one of [clear, rain, fog, storm], got %q", c.Weather))
	}
	if c.MaxTurns < 0 {
		errs = append(errs, fmt.Sprintf("combat.max_turns must be >= 0, got %d", c.MaxTurns))
	}
	if len(errs) > 0 {
		return fmt.Errorf("%s", strings.Join(errs, "; "))
	}
	return nil
}

// Load reads configuration from the given file path, applies environment
// variable overrides, and validates the result.
//
// Precondition: path must be a valid file path to a YAML configuration file.
// Postcondition: Returns a valid Config or a non-nil error.
func Load(path string) (Config, error) {
	v := viper.New()
	v.SetConfigFile(path)

	// Environment variable overrides with SKIRMISH_ prefix
	v.SetEnvPrefix("SKIRMISH")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults
	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		return Config{}, fmt.Errorf("reading config file: %w", err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshalling config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// LoadFromViper builds a Config from an already-configured Viper instance.
//
// Precondition: v must be non-nil and have configuration values set.
// Postcondition: Returns a valid Config or a non-nil error.
func LoadFromViper(v *viper.Viper) (Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshalling config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")

	v.SetDefault("content.weapons_path", "content/weapons.yaml")
	v.SetDefault("content.items_path", "content/items.yaml")
	v.SetDefault("content.statuses_path", "content/statuses.yaml")

	v.SetDefault("scripting.enabled", false)
	v.SetDefault("scripting.plugin_dir", "plugins")
	v.SetDefault("scripting.instruction_limit", 0)

	v.SetDefault("combat.lighting", "normal")
	v.SetDefault("combat.weather", "clear")
	v.SetDefault("combat.max_turns", 0)
}
