// Package config provides configuration helpers and TOML parsing.
package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// FileConfig represents the TOML configuration file.
type FileConfig struct {
	LogLevel *string    `toml:"log-level"`
	Play     PlayConfig `toml:"play"`
}

// PlayConfig maps game-related settings.
type PlayConfig struct {
	Variant     *string  `toml:"variant"`
	Mode        *string  `toml:"mode"`
	Difficulty  *string  `toml:"difficulty"`
	WordList    *string  `toml:"wordlist"`
	Puzzles     *string  `toml:"puzzles"`
	FocusWeak   *bool    `toml:"focus-weak"`
	WeakTop     *int     `toml:"weak-top"`
	WeakFactor  *float64 `toml:"weak-factor"`
	WeakWindow  *int     `toml:"weak-window"`
	Sound       *bool    `toml:"sound"`
	MusicVolume *float64 `toml:"music-volume"`
	Recognizer  *string  `toml:"recognizer"`
	FPS         *int     `toml:"fps"`
}

// LoadConfig reads a TOML config from the given path. Missing file is not an error.
func LoadConfig(path string) (FileConfig, error) {
	if path == "" {
		return FileConfig{}, fmt.Errorf("config path is empty")
	}
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return FileConfig{}, nil
		}
		return FileConfig{}, fmt.Errorf("failed to stat config: %w", err)
	}
	var cfg FileConfig
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return FileConfig{}, fmt.Errorf("failed to decode config: %w", err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return FileConfig{}, fmt.Errorf("unknown config key %q", undecoded[0].String())
	}
	return cfg, nil
}
