package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// FileName is the config file name looked up in the search directories.
const FileName = "brickhole.yaml"

// Load loads and validates the configuration.
// Search order: customPath -> ~/.brickhole/configs/brickhole.yaml -> ./configs/brickhole.yaml -> embedded default.
// Only a custom path that cannot be read or parsed is an error; broken files in
// the search directories are skipped.
func Load(customPath string) (BrickholeConfig, error) {
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return BrickholeConfig{}, fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		cfg, err := Parse(data)
		if err != nil {
			return BrickholeConfig{}, fmt.Errorf("config %s: %w", customPath, err)
		}
		return cfg, nil
	}

	for _, path := range []string{userConfigPath(FileName), filepath.Join("configs", FileName)} {
		if path == "" {
			continue
		}
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		if cfg, err := Parse(data); err == nil {
			return cfg, nil
		}
	}

	cfg, err := Parse(defaultBrickholeYAML)
	if err != nil {
		return DefaultBrickholeConfig(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

// Parse decodes YAML on top of the built-in defaults, so partial files only
// override the keys they name, then validates the result.
func Parse(data []byte) (BrickholeConfig, error) {
	cfg := DefaultBrickholeConfig()
	// Lists in the file replace the default lists wholesale.
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return BrickholeConfig{}, fmt.Errorf("failed to parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return BrickholeConfig{}, err
	}
	return cfg, nil
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".brickhole", "configs", filename)
}

// ApplyPreset modifies the config based on a difficulty preset.
func ApplyPreset(cfg *BrickholeConfig, preset DifficultyPreset) {
	if preset == "" {
		return
	}
	if preset == DifficultyFixed {
		cfg.Difficulty.Enabled = false
	} else {
		cfg.Difficulty.Enabled = true
		cfg.Difficulty.InitialLevel = InitialLevelForPreset(preset)
	}

	switch preset {
	case DifficultyEasy:
		cfg.Gameplay.Lives = 5
		cfg.Paddle.Width = 120
		cfg.Physics.LaunchSpeed = 4
	case DifficultyHard:
		cfg.Gameplay.Lives = 2
		cfg.Paddle.Width = 80
		cfg.Physics.LaunchSpeed = 6
	}
	if cfg.Paddle.MinWidth > cfg.Paddle.Width {
		cfg.Paddle.MinWidth = cfg.Paddle.Width
	}
}
