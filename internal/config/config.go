// Package config provides configuration types and defaults for buzzkit.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// PlayerConfig defines one contestant seat.
type PlayerConfig struct {
	Name string `mapstructure:"name"`
	Key  string `mapstructure:"key"`        // keyboard key acting as this seat's buzz button
	Buzz string `mapstructure:"buzz_sound"` // optional WAV path overriding the shared buzz cue
}

// KeysConfig maps the host's buttons to keyboard keys.
type KeysConfig struct {
	Correct string `mapstructure:"correct"`
	Wrong   string `mapstructure:"wrong"`
	Reset   string `mapstructure:"reset"`
}

// RulesConfig holds gameplay behavior switches.
type RulesConfig struct {
	// ResetAbortsRound lets the reset key cancel a round that is still
	// awaiting judgment. Off by default: the host must rule first.
	ResetAbortsRound bool `mapstructure:"reset_aborts_round"`
}

// SoundConfig holds audio cue settings.
type SoundConfig struct {
	Enabled bool `mapstructure:"enabled"`
}

// HistoryConfig holds match journal settings.
type HistoryConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Path    string `mapstructure:"path"` // sqlite file; empty means the default data path
}

// Config holds all configuration options for buzzkit.
type Config struct {
	Players      []PlayerConfig `mapstructure:"players"`
	Keys         KeysConfig     `mapstructure:"keys"`
	Rules        RulesConfig    `mapstructure:"rules"`
	Sound        SoundConfig    `mapstructure:"sound"`
	History      HistoryConfig  `mapstructure:"history"`
	ScanInterval time.Duration  `mapstructure:"scan_interval"`
	LogFile      string         `mapstructure:"log_file"`
	LogLevel     string         `mapstructure:"log_level"`
}

// MaxPlayers bounds the roster: every seat needs its own key and panel.
const MaxPlayers = 8

// DefaultPlayers returns the stock four-seat roster on the number row.
func DefaultPlayers() []PlayerConfig {
	return []PlayerConfig{
		{Name: "Player 1", Key: "1"},
		{Name: "Player 2", Key: "2"},
		{Name: "Player 3", Key: "3"},
		{Name: "Player 4", Key: "4"},
	}
}

// Defaults returns a Config with sensible default values.
func Defaults() Config {
	return Config{
		Players: DefaultPlayers(),
		Keys: KeysConfig{
			Correct: "c",
			Wrong:   "x",
			Reset:   "r",
		},
		Rules:        RulesConfig{ResetAbortsRound: false},
		Sound:        SoundConfig{Enabled: true},
		History:      HistoryConfig{Enabled: true},
		ScanInterval: 50 * time.Millisecond,
		LogLevel:     "info",
	}
}

// Validate checks the configuration for errors.
func (c Config) Validate() error {
	if len(c.Players) == 0 {
		return fmt.Errorf("at least one player is required")
	}
	if len(c.Players) > MaxPlayers {
		return fmt.Errorf("at most %d players are supported, got %d", MaxPlayers, len(c.Players))
	}

	seen := map[string]string{}
	claim := func(key, owner string) error {
		if key == "" {
			return fmt.Errorf("%s: key is required", owner)
		}
		if prev, dup := seen[key]; dup {
			return fmt.Errorf("key %q bound to both %s and %s", key, prev, owner)
		}
		seen[key] = owner
		return nil
	}

	for i, p := range c.Players {
		if p.Name == "" {
			return fmt.Errorf("player %d: name is required", i)
		}
		if err := claim(p.Key, fmt.Sprintf("player %d (%s)", i, p.Name)); err != nil {
			return err
		}
	}
	if err := claim(c.Keys.Correct, "keys.correct"); err != nil {
		return err
	}
	if err := claim(c.Keys.Wrong, "keys.wrong"); err != nil {
		return err
	}
	if err := claim(c.Keys.Reset, "keys.reset"); err != nil {
		return err
	}

	if c.ScanInterval <= 0 {
		return fmt.Errorf("scan_interval must be positive, got %s", c.ScanInterval)
	}
	return nil
}

// DefaultConfigTemplate returns the default config as a YAML string with comments.
func DefaultConfigTemplate() string {
	return `# buzzkit configuration

# Contestant seats. Each seat needs a display name and the keyboard key
# that acts as its buzz button. Add or remove seats to change the player
# count (1-8); the count is fixed once a game starts.
players:
  - name: Player 1
    key: "1"
  - name: Player 2
    key: "2"
  - name: Player 3
    key: "3"
  - name: Player 4
    key: "4"

# Seat options:
#   name: display name (required)
#   key: buzz key (required, must be unique across seats and host keys)
#   buzz_sound: path to a WAV file replacing the shared buzz cue

# Host keys. While no buzz is pending, the correct key doubles as a
# global reset.
keys:
  correct: c
  wrong: x
  reset: r

rules:
  # Allow the reset key to abort a round that is awaiting judgment.
  # When false (default) reset is ignored until the host rules.
  reset_aborts_round: false

sound:
  enabled: true

# Append-only match journal, reviewable with 'buzzkit history'.
# Scores always start from zero; the journal is never read back into a
# running game.
history:
  enabled: true
  # path: /custom/path/history.db

# How often buttons are sampled. Human-operated buttons do not need
# anything tighter than the default.
scan_interval: 50ms

# Diagnostics. The terminal belongs to the console, so logs go to a file.
# log_file: ~/.local/state/buzzkit/buzzkit.log
log_level: info
`
}

// WriteDefaultConfig creates a config file at the given path with default
// settings and comments. Creates the parent directory if it doesn't exist.
func WriteDefaultConfig(configPath string) error {
	dir := filepath.Dir(configPath)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	if err := os.WriteFile(configPath, []byte(DefaultConfigTemplate()), 0o600); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}

// DefaultConfigPath returns the conventional config file location.
func DefaultConfigPath() (string, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("resolving user config directory: %w", err)
	}
	return filepath.Join(base, "buzzkit", "config.yaml"), nil
}

// DefaultHistoryPath returns the conventional journal location, used
// when history.path is unset.
func DefaultHistoryPath() (string, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("resolving user config directory: %w", err)
	}
	return filepath.Join(base, "buzzkit", "history.db"), nil
}
