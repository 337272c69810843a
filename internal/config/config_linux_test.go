package config

import (
	"path/filepath"
	"testing"

	"github.com/adrg/xdg"
)

func TestDefaultPathHonorsXDG(t *testing.T) {
	dir := t.TempDir()
	// Cleanups run last-in first-out, so this reload sees the restored env.
	t.Cleanup(xdg.Reload)
	t.Setenv("XDG_CONFIG_HOME", dir)
	xdg.Reload()

	want := filepath.Join(dir, "soundswitch", "config.toml")
	if got := DefaultPath(); got != want {
		t.Errorf("DefaultPath() = %q, want %q", got, want)
	}
}
