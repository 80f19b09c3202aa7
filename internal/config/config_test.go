package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func validConfig() Config {
	return Config{
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
		},
		Content: ContentConfig{
			WeaponsPath:  "content/weapons.yaml",
			ItemsPath:    "content/items.yaml",
			StatusesPath: "content/statuses.yaml",
		},
		Scripting: ScriptingConfig{
			Enabled:          true,
			PluginDir:        "plugins",
			InstructionLimit: 100_000,
		},
		Combat: CombatConfig{
			Lighting: "normal",
			Weather:  "clear",
			MaxTurns: 50,
		},
	}
}

func TestValidConfig(t *testing.T) {
	cfg := validConfig()
	assert.NoError(t, cfg.Validate())
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "test.yaml")
	err := os.WriteFile(path, []byte(`
logging:
  level: debug
  format: console
content:
  weapons_path: data/weapons.yaml
scripting:
  enabled: true
  plugin_dir: mods
  instruction_limit: 50000
combat:
  lighting: dim
  weather: rain
  max_turns: 20
`), 0644)
	require.NoError(t, err)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "data/weapons.yaml", cfg.Content.WeaponsPath)
	assert.Equal(t, "content/items.yaml", cfg.Content.ItemsPath, "defaults fill unset keys")
	assert.True(t, cfg.Scripting.Enabled)
	assert.Equal(t, "mods", cfg.Scripting.PluginDir)
	assert.Equal(t, 50000, cfg.Scripting.InstructionLimit)
	assert.Equal(t, "dim", cfg.Combat.Lighting)
	assert.Equal(t, "rain", cfg.Combat.Weather)
	assert.Equal(t, 20, cfg.Combat.MaxTurns)
}

func TestLoadInvalidPath(t *testing.T) {
	_, err := Load("/nonexistent/path.yaml")
	assert.Error(t, err)
}

func TestValidateLoggingLevel(t *testing.T) {
	for _, level := range []string{"debug", "info", "warn", "error"} {
		cfg := validConfig()
		cfg.Logging.Level = level
		assert.NoError(t, cfg.Validate(), "level %q should be valid", level)
	}
	cfg := validConfig()
	cfg.Logging.Level = "trace"
	assert.Error(t, cfg.Validate())
}

func TestValidateLoggingFormat(t *testing.T) {
	for _, format := range []string{"json", "console"} {
		cfg := validConfig()
		cfg.Logging.Format = format
		assert.NoError(t, cfg.Validate(), "format %q should be valid", format)
	}
	cfg := validConfig()
	cfg.Logging.Format = "xml"
	assert.Error(t, cfg.Validate())
}

func TestValidateScriptingRequiresPluginDir(t *testing.T) {
	cfg := validConfig()
	cfg.Scripting.PluginDir = ""
	assert.Error(t, cfg.Validate())

	cfg.Scripting.Enabled = false
	assert.NoError(t, cfg.Validate(), "plugin_dir is only required when scripting is enabled")
}

func TestValidateScriptingInstructionLimit(t *testing.T) {
	cfg := validConfig()
	cfg.Scripting.InstructionLimit = -1
	assert.Error(t, cfg.Validate())

	cfg.Scripting.InstructionLimit = 0
	assert.NoError(t, cfg.Validate(), "zero means the built-in default")
}

func TestValidateCombatLighting(t *testing.T) {
	for _, lighting := range []string{"bright", "normal", "dim", "dark"} {
		cfg := validConfig()
		cfg.Combat.Lighting = lighting
		assert.NoError(t, cfg.Validate(), "lighting %q should be valid", lighting)
	}
	cfg := validConfig()
	cfg.Combat.Lighting = "pitch-black"
	assert.Error(t, cfg.Validate())
}

func TestValidateCombatWeather(t *testing.T) {
	for _, weather := range []string{"clear", "rain", "fog", "storm"} {
		cfg := validConfig()
		cfg.Combat.Weather = weather
		assert.NoError(t, cfg.Validate(), "weather %q should be valid", weather)
	}
	cfg := validConfig()
	cfg.Combat.Weather = "hail"
	assert.Error(t, cfg.Validate())
}

func TestValidateCombatMaxTurns(t *testing.T) {
	cfg := validConfig()
	cfg.Combat.MaxTurns = -1
	assert.Error(t, cfg.Validate())
}

// Property-based tests

func TestPropertyInstructionLimitNonNegative(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		limit := rapid.IntRange(0, 10_000_000).Draw(t, "limit")
		cfg := validConfig()
		cfg.Scripting.InstructionLimit = limit
		if err := cfg.Validate(); err != nil {
			t.Fatalf("valid instruction limit %d rejected: %v", limit, err)
		}
	})
}

func TestPropertyNegativeInstructionLimitRejected(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		limit := rapid.IntRange(-1_000_000, -1).Draw(t, "limit")
		cfg := validConfig()
		cfg.Scripting.InstructionLimit = limit
		if err := cfg.Validate(); err == nil {
			t.Fatalf("negative instruction limit %d accepted", limit)
		}
	})
}

func TestPropertyMaxTurnsNonNegative(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		turns := rapid.IntRange(0, 100_000).Draw(t, "turns")
		cfg := validConfig()
		cfg.Combat.MaxTurns = turns
		if err := cfg.Validate(); err != nil {
			t.Fatalf("valid max_turns %d rejected: %v", turns, err)
		}
	})
}
