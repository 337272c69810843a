//go:build darwin

package hotkey

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"golang.design/x/hotkey"
)

// Re-exported so callers and tests need not import golang.design/x/hotkey.
type (
	Modifier = hotkey.Modifier
	Key      = hotkey.Key
)

var modifierMap = map[string]hotkey.Modifier{
	"OPTION": hotkey.ModOption,
	"ALT":    hotkey.ModOption,
	"CTRL":   hotkey.ModCtrl,
	"SHIFT":  hotkey.ModShift,
	"CMD":    hotkey.ModCmd,
}

var keyMap = map[string]hotkey.Key{
	"SPACE": hotkey.KeySpace, "RETURN": hotkey.KeyReturn, "ESCAPE": hotkey.KeyEscape,
	"DELETE": hotkey.KeyDelete, "TAB": hotkey.KeyTab,
	"LEFT": hotkey.KeyLeft, "RIGHT": hotkey.KeyRight, "UP": hotkey.KeyUp, "DOWN": hotkey.KeyDown,

	"0": hotkey.Key0, "1": hotkey.Key1, "2": hotkey.Key2, "3": hotkey.Key3, "4": hotkey.Key4,
	"5": hotkey.Key5, "6": hotkey.Key6, "7": hotkey.Key7, "8": hotkey.Key8, "9": hotkey.Key9,

	"A": hotkey.KeyA, "B": hotkey.KeyB, "C": hotkey.KeyC, "D": hotkey.KeyD, "E": hotkey.KeyE,
	"F": hotkey.KeyF, "G": hotkey.KeyG, "H": hotkey.KeyH, "I": hotkey.KeyI, "J": hotkey.KeyJ,
	"K": hotkey.KeyK, "L": hotkey.KeyL, "M": hotkey.KeyM, "N": hotkey.KeyN, "O": hotkey.KeyO,
	"P": hotkey.KeyP, "Q": hotkey.KeyQ, "R": hotkey.KeyR, "S": hotkey.KeyS, "T": hotkey.KeyT,
	"U": hotkey.KeyU, "V": hotkey.KeyV, "W": hotkey.KeyW, "X": hotkey.KeyX, "Y": hotkey.KeyY,
	"Z": hotkey.KeyZ,

	"F1": hotkey.KeyF1, "F2": hotkey.KeyF2, "F3": hotkey.KeyF3, "F4": hotkey.KeyF4,
	"F5": hotkey.KeyF5, "F6": hotkey.KeyF6, "F7": hotkey.KeyF7, "F8": hotkey.KeyF8,
	"F9": hotkey.KeyF9, "F10": hotkey.KeyF10, "F11": hotkey.KeyF11, "F12": hotkey.KeyF12,
	"F13": hotkey.KeyF13, "F14": hotkey.KeyF14, "F15": hotkey.KeyF15, "F16": hotkey.KeyF16,
	"F17": hotkey.KeyF17, "F18": hotkey.KeyF18, "F19": hotkey.KeyF19, "F20": hotkey.KeyF20,
}

// Combo is a parsed modifier+key combination.
type Combo struct {
	Mods []hotkey.Modifier
	Key  hotkey.Key
	Name string
}

// ParseHotkeyCombo parses a combo such as "Option+9" or "Ctrl+Shift+F5".
// At least one modifier is required so a bare key is never stolen from
// other applications.
func ParseHotkeyCombo(combo string) (Combo, error) {
	combo = strings.TrimSpace(combo)
	if combo == "" {
		return Combo{}, fmt.Errorf("empty hotkey combo")
	}

	parts := strings.Split(combo, "+")
	if len(parts) < 2 {
		return Combo{}, fmt.Errorf("hotkey must be modifier+key (e.g. Option+9), got: %s", combo)
	}

	var mods []hotkey.Modifier
	for _, part := range parts[:len(parts)-1] {
		part = strings.TrimSpace(part)
		mod, ok := modifierMap[strings.ToUpper(part)]
		if !ok {
			return Combo{}, fmt.Errorf("unknown modifier: %s (valid: Option, Alt, Ctrl, Shift, Cmd)", part)
		}
		mods = append(mods, mod)
	}

	keyStr := strings.TrimSpace(parts[len(parts)-1])
	key, ok := keyMap[strings.ToUpper(keyStr)]
	if !ok {
		return Combo{}, fmt.Errorf("unknown key: %s", keyStr)
	}

	return Combo{Mods: mods, Key: key, Name: combo}, nil
}

// NewFromConfig parses combo and returns a Listener for it. The keyboard
// device path is only meaningful on Linux.
func NewFromConfig(combo, _ string) (Listener, error) {
	c, err := ParseHotkeyCombo(combo)
	if err != nil {
		return nil, err
	}
	return NewListener(c), nil
}

// darwinListener implements the Listener interface using golang.design/x/hotkey.
type darwinListener struct {
	combo Combo
	mu    sync.Mutex
	hk    *hotkey.Hotkey
}

// NewListener creates a darwin hotkey Listener for combo.
func NewListener(combo Combo) Listener {
	return &darwinListener{combo: combo}
}

// Start registers the hotkey and listens for press/release events.
// It blocks until the context is cancelled.
func (l *darwinListener) Start(ctx context.Context, onDown func(), onUp func()) error {
	hk := hotkey.New(l.combo.Mods, l.combo.Key)
	if err := hk.Register(); err != nil {
		return fmt.Errorf("register hotkey %s: %w", l.combo.Name, err)
	}
	l.mu.Lock()
	l.hk = hk
	l.mu.Unlock()

	for {
		select {
		case <-ctx.Done():
			l.Stop()
			return ctx.Err()
		case <-hk.Keydown():
			if onDown != nil {
				onDown()
			}
		case <-hk.Keyup():
			if onUp != nil {
				onUp()
			}
		}
	}
}

// Stop unregisters the hotkey.
func (l *darwinListener) Stop() {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.hk != nil {
		l.hk.Unregister()
		l.hk = nil
	}
}

// KeyName returns the configured hotkey combo string.
func (l *darwinListener) KeyName() string {
	return l.combo.Name
}
