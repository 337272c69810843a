package config

import (
	"errors"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"
)

// HotkeyConfig holds the two cycle hotkeys.
type HotkeyConfig struct {
	Input  string `toml:"input"`
	Output string `toml:"output"`
	Device string `toml:"device"` // Linux only: evdev keyboard path, empty to auto-detect
}

// SelectionConfig controls how default-device writes are treated.
type SelectionConfig struct {
	// Confirm re-reads the default device after each write.
	Confirm bool `toml:"confirm"`
}

// WatchConfig holds change notification settings.
type WatchConfig struct {
	PollIntervalMs int `toml:"poll_interval_ms"` // used by backends without native notifications
}

// PulseConfig holds pactl settings.
type PulseConfig struct {
	TimeoutMs int `toml:"timeout_ms"`
}

// AudioConfig holds switch chime settings.
type AudioConfig struct {
	ChimeEnabled bool   `toml:"chime_enabled"`
	Chime        string `toml:"chime"` // WAV path, empty for the built-in tone
}

// ToastConfig holds notification settings.
type ToastConfig struct {
	DurationMs int `toml:"duration_ms"`
}

// CustomTheme is a user-defined color palette.
type CustomTheme struct {
	Name       string `toml:"name"`
	Primary    string `toml:"primary"`
	Secondary  string `toml:"secondary"`
	Accent     string `toml:"accent"`
	Error      string `toml:"error"`
	Success    string `toml:"success"`
	Warning    string `toml:"warning"`
	Background string `toml:"background"`
	Text       string `toml:"text"`
	Dimmed     string `toml:"dimmed"`
	Separator  string `toml:"separator"`
}

// Config is the top-level configuration.
type Config struct {
	Theme        string          `toml:"theme"`
	Backend      string          `toml:"backend"` // auto, coreaudio, pulse, portaudio, miniaudio
	Hotkey       HotkeyConfig    `toml:"hotkey"`
	Selection    SelectionConfig `toml:"selection"`
	Watch        WatchConfig     `toml:"watch"`
	Pulse        PulseConfig     `toml:"pulse"`
	Audio        AudioConfig     `toml:"audio"`
	Toast        ToastConfig     `toml:"toast"`
	CustomThemes []CustomTheme   `toml:"custom_theme"`
}

// Default returns a Config populated with all default values.
func Default() *Config {
	return &Config{
		Theme:   "synthwave",
		Backend: "auto",
		Hotkey: HotkeyConfig{
			Input:  defaultInputHotkey,
			Output: defaultOutputHotkey,
			Device: "",
		},
		Selection: SelectionConfig{
			Confirm: false,
		},
		Watch: WatchConfig{
			PollIntervalMs: 2000,
		},
		Pulse: PulseConfig{
			TimeoutMs: 2000,
		},
		Audio: AudioConfig{
			ChimeEnabled: false,
			Chime:        "",
		},
		Toast: ToastConfig{
			DurationMs: 2000,
		},
	}
}

// PollInterval returns the watch poll interval as a duration.
func (c *Config) PollInterval() time.Duration {
	return time.Duration(c.Watch.PollIntervalMs) * time.Millisecond
}

// PulseTimeout returns the per-call pactl timeout as a duration.
func (c *Config) PulseTimeout() time.Duration {
	return time.Duration(c.Pulse.TimeoutMs) * time.Millisecond
}

// ToastDuration returns how long a toast stays visible.
func (c *Config) ToastDuration() time.Duration {
	return time.Duration(c.Toast.DurationMs) * time.Millisecond
}

// DefaultPath returns the default config file path
// (<config home>/soundswitch/config.toml).
func DefaultPath() string {
	dir := configHome()
	if dir == "" {
		return ""
	}
	return filepath.Join(dir, "soundswitch", "config.toml")
}

// Save writes the config as TOML to the given path, creating parent
// directories if needed. The write is atomic: data is written to a
// temporary file and renamed into place.
func Save(path string, cfg *Config) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(dir, ".soundswitch-config-*.tmp")
	if err != nil {
		return err
	}
	tmpPath := tmp.Name()

	if err := toml.NewEncoder(tmp).Encode(cfg); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return err
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return err
	}
	return os.Rename(tmpPath, path)
}

// Load reads the TOML config from path. If the file does not exist,
// it returns the default config without error.
func Load(path string) (*Config, error) {
	cfg := Default()

	_, err := os.Stat(path)
	if errors.Is(err, os.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return nil, err
	}

	_, err = toml.DecodeFile(path, cfg)
	if err != nil {
		return nil, err
	}

	return cfg, nil
}
