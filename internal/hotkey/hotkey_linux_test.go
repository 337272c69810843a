//go:build linux

package hotkey

import (
	"testing"

	evdev "github.com/holoplot/go-evdev"
)

func TestKeyCodeFromName(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected evdev.EvCode
		wantErr  bool
	}{
		{"right ctrl", "KEY_RIGHTCTRL", 97, false},
		{"f12", "KEY_F12", 88, false},
		{"f5 bare", "F5", 63, false},
		{"digit 9", "9", 10, false},
		{"digit 0", "KEY_0", 11, false},
		{"letter", "q", 16, false},
		{"case insensitive", "key_rightctrl", 97, false},
		{"with whitespace", "  KEY_F12  ", 88, false},
		{"unknown key", "KEY_NONEXISTENT", 0, true},
		{"empty string", "", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, err := KeyCodeFromName(tt.input)
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
			if code != tt.expected {
				t.Errorf("KeyCodeFromName(%q) = %d, want %d", tt.input, code, tt.expected)
			}
		})
	}
}

func TestParseHotkeyCombo(t *testing.T) {
	tests := []struct {
		input    string
		wantMods int
		wantKey  evdev.EvCode
		wantErr  bool
	}{
		{"Alt+9", 1, 10, false},
		{"Alt+0", 1, 11, false},
		{"Ctrl+Shift+F5", 2, 63, false},
		{"KEY_LEFTALT+KEY_0", 1, 11, false},
		{"KEY_F12", 0, 88, false},
		{"", 0, 0, true},
		{"Hyper+9", 0, 0, true},
		{"Alt+Nope", 0, 0, true},
	}
	for _, tt := range tests {
		c, err := ParseHotkeyCombo(tt.input)
		if tt.wantErr {
			if err == nil {
				t.Errorf("ParseHotkeyCombo(%q): expected error", tt.input)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseHotkeyCombo(%q): unexpected error %v", tt.input, err)
			continue
		}
		if len(c.Mods) != tt.wantMods || c.Key != tt.wantKey {
			t.Errorf("ParseHotkeyCombo(%q) = %+v, want %d mods key %d", tt.input, c, tt.wantMods, tt.wantKey)
		}
	}
}

func TestChordRequiresModifiers(t *testing.T) {
	c, err := ParseHotkeyCombo("Alt+9")
	if err != nil {
		t.Fatal(err)
	}
	ch := newChord(c)

	if got := ch.feed(10, 1); got != 0 {
		t.Errorf("expected no fire without Alt, got %d", got)
	}
	ch.feed(10, 0)

	ch.feed(100, 1) // right alt
	if got := ch.feed(10, 1); got != 1 {
		t.Errorf("expected fire with right Alt held, got %d", got)
	}
	if got := ch.feed(10, 2); got != 0 {
		t.Errorf("expected repeat ignored, got %d", got)
	}
	if got := ch.feed(10, 0); got != -1 {
		t.Errorf("expected release, got %d", got)
	}
	ch.feed(100, 0)
	if got := ch.feed(10, 1); got != 0 {
		t.Errorf("expected no fire after Alt released, got %d", got)
	}
}
