package config

import (
	"os"
	"path/filepath"
)

const (
	defaultInputHotkey  = "Option+9"
	defaultOutputHotkey = "Option+0"
)

// configHome is ~/.config on macOS too, matching where Unix tools keep
// their dotfiles.
func configHome() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config")
}
