package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// FileName is the config file name looked up in every search location.
const FileName = "ballfall.yaml"

// LoadBallfall loads the game configuration.
// Search order: customPath -> ~/.ballfall/configs/ballfall.yaml -> ./configs/ballfall.yaml -> embedded default
//
// Values are decoded on top of DefaultBallfallConfig, so a partial file only
// overrides the keys it names. The result is not normalized; callers run
// Validate and Normalize.
func LoadBallfall(customPath string) (BallfallConfig, error) {
	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return DefaultBallfallConfig(), fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		cfg, err := parseBallfall(data)
		if err != nil {
			return DefaultBallfallConfig(), fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		return cfg, nil
	}

	// Try user config directory
	if userCfgPath := userConfigPath(FileName); userCfgPath != "" {
		if data, err := os.ReadFile(userCfgPath); err == nil {
			if cfg, err := parseBallfall(data); err == nil {
				return cfg, nil
			}
		}
	}

	// Try local configs directory
	if data, err := os.ReadFile(filepath.Join("configs", FileName)); err == nil {
		if cfg, err := parseBallfall(data); err == nil {
			return cfg, nil
		}
	}

	// Use embedded default YAML
	cfg, err := parseBallfall(defaultBallfallYAML)
	if err != nil {
		return DefaultBallfallConfig(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

func parseBallfall(data []byte) (BallfallConfig, error) {
	cfg := DefaultBallfallConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".ballfall", "configs", filename)
}

// UserConfigPath returns the per-user config location.
func UserConfigPath() string {
	return userConfigPath(FileName)
}

// WriteDefault writes the embedded default YAML to path, creating parent
// directories. An existing file is left untouched unless force is set.
func WriteDefault(path string, force bool) error {
	if !force {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("config %s already exists", path)
		}
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if err := os.WriteFile(path, defaultBallfallYAML, 0o644); err != nil {
		return fmt.Errorf("failed to write config %s: %w", path, err)
	}
	return nil
}

// Marshal returns the YAML form of cfg.
func Marshal(cfg BallfallConfig) ([]byte, error) {
	return yaml.Marshal(cfg)
}

// ApplyBallfallPreset modifies the config based on a difficulty preset.
// Fixed keeps the configured rank and disables speed progression.
func ApplyBallfallPreset(cfg *BallfallConfig, preset DifficultyPreset) {
	if IsFixedPreset(preset) {
		cfg.Difficulty.Enabled = false
		return
	}
	cfg.Difficulty.Enabled = true
	cfg.Difficulty.Rank = preset.Rank()
	cfg.Difficulty.InitialLevel = InitialLevelForPreset(preset)

	// Blocking balls show up sooner on harder presets.
	switch preset {
	case DifficultyEasy:
		cfg.Factory.MinPiecesBeforeBlocking = 40
	case DifficultyExpert:
		cfg.Factory.MinPiecesBeforeBlocking = 12
	case DifficultyInsane:
		cfg.Factory.MinPiecesBeforeBlocking = 6
	}
}
