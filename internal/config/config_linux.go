package config

import "github.com/adrg/xdg"

const (
	defaultInputHotkey  = "Alt+9"
	defaultOutputHotkey = "Alt+0"
)

// configHome honors XDG_CONFIG_HOME and defaults to ~/.config.
func configHome() string {
	return xdg.ConfigHome
}
