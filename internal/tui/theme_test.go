package tui

import (
	"testing"

	"github.com/Danondso/soundswitch/internal/config"
)

func TestLoadThemeFallsBack(t *testing.T) {
	if got := LoadTheme("nope").Name; got != "Synthwave" {
		t.Errorf("expected Synthwave fallback, got %s", got)
	}
	if got := LoadTheme("GRUVBOX").Name; got != "Gruvbox" {
		t.Errorf("expected case-insensitive lookup, got %s", got)
	}
}

func TestNextThemeWraps(t *testing.T) {
	names := ThemeNames()
	last := names[len(names)-1]
	if got := NextTheme(last).Name; got != LoadTheme(names[0]).Name {
		t.Errorf("expected wrap to %s, got %s", names[0], got)
	}
	if got := NextTheme("unknown").Name; got != "Synthwave" {
		t.Errorf("expected unknown theme to restart cycle, got %s", got)
	}
}

func TestRegisterCustomThemes(t *testing.T) {
	RegisterCustomThemes([]config.CustomTheme{
		{Name: "Gruvbox", Primary: "#000000"},
		{Name: ""},
		{Name: "Paper", Primary: "#111111", Background: "#FFFFFF"},
	})
	if LoadTheme("gruvbox").Primary == "#000000" {
		t.Error("expected built-in theme to be protected")
	}
	paper := LoadTheme("paper")
	if paper.Name != "Paper" || paper.Background != "#FFFFFF" {
		t.Errorf("expected custom theme registered, got %+v", paper)
	}
}
