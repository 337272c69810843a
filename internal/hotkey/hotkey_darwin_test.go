//go:build darwin

package hotkey

import (
	"testing"

	"golang.design/x/hotkey"
)

func TestParseHotkeyCombo(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		wantMods []Modifier
		wantKey  Key
		wantErr  bool
	}{
		{"input default", "Option+9", []Modifier{hotkey.ModOption}, hotkey.Key9, false},
		{"output default", "Option+0", []Modifier{hotkey.ModOption}, hotkey.Key0, false},
		{"ctrl+f5", "Ctrl+F5", []Modifier{hotkey.ModCtrl}, hotkey.KeyF5, false},
		{"ctrl+shift+s", "Ctrl+Shift+S", []Modifier{hotkey.ModCtrl, hotkey.ModShift}, hotkey.KeyS, false},
		{"cmd+option+a", "Cmd+Option+A", []Modifier{hotkey.ModCmd, hotkey.ModOption}, hotkey.KeyA, false},
		{"alt is option", "Alt+Space", []Modifier{hotkey.ModOption}, hotkey.KeySpace, false},
		{"case insensitive", "option+space", []Modifier{hotkey.ModOption}, hotkey.KeySpace, false},
		{"spaces around parts", " Option + 9 ", []Modifier{hotkey.ModOption}, hotkey.Key9, false},
		{"empty", "", nil, 0, true},
		{"no modifier", "Space", nil, 0, true},
		{"unknown modifier", "Super+Space", nil, 0, true},
		{"unknown key", "Option+Unknown", nil, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			combo, err := ParseHotkeyCombo(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Errorf("expected error for input %q, got nil", tt.input)
				}
				return
			}
			if err != nil {
				t.Errorf("unexpected error for input %q: %v", tt.input, err)
				return
			}
			if len(combo.Mods) != len(tt.wantMods) {
				t.Errorf("ParseHotkeyCombo(%q) mods = %v, want %v", tt.input, combo.Mods, tt.wantMods)
				return
			}
			for i := range combo.Mods {
				if combo.Mods[i] != tt.wantMods[i] {
					t.Errorf("ParseHotkeyCombo(%q) mod[%d] = %v, want %v", tt.input, i, combo.Mods[i], tt.wantMods[i])
				}
			}
			if combo.Key != tt.wantKey {
				t.Errorf("ParseHotkeyCombo(%q) key = %v, want %v", tt.input, combo.Key, tt.wantKey)
			}
		})
	}
}
