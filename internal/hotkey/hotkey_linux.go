//go:build linux

package hotkey

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"sync"

	evdev "github.com/holoplot/go-evdev"
)

// keyNameMap maps evdev key names to codes.
var keyNameMap = map[string]evdev.EvCode{
	"KEY_ESC":   evdev.KEY_ESC,
	"KEY_TAB":   evdev.KEY_TAB,
	"KEY_ENTER": evdev.KEY_ENTER,
	"KEY_SPACE": evdev.KEY_SPACE,
	"KEY_MINUS": evdev.KEY_MINUS,
	"KEY_EQUAL": evdev.KEY_EQUAL,
	"KEY_GRAVE": evdev.KEY_GRAVE,
	"KEY_UP":    evdev.KEY_UP,
	"KEY_DOWN":  evdev.KEY_DOWN,
	"KEY_LEFT":  evdev.KEY_LEFT,
	"KEY_RIGHT": evdev.KEY_RIGHT,

	"KEY_LEFTCTRL":   evdev.KEY_LEFTCTRL,
	"KEY_RIGHTCTRL":  evdev.KEY_RIGHTCTRL,
	"KEY_LEFTSHIFT":  evdev.KEY_LEFTSHIFT,
	"KEY_RIGHTSHIFT": evdev.KEY_RIGHTSHIFT,
	"KEY_LEFTALT":    evdev.KEY_LEFTALT,
	"KEY_RIGHTALT":   evdev.KEY_RIGHTALT,
	"KEY_LEFTMETA":   evdev.KEY_LEFTMETA,
	"KEY_RIGHTMETA":  evdev.KEY_RIGHTMETA,

	"KEY_F11": evdev.KEY_F11,
	"KEY_F12": evdev.KEY_F12,
}

func init() {
	// KEY_1..KEY_9, KEY_0 and KEY_F1..KEY_F10 are contiguous.
	for i := 1; i <= 9; i++ {
		keyNameMap["KEY_"+strconv.Itoa(i)] = evdev.KEY_1 + evdev.EvCode(i-1)
	}
	keyNameMap["KEY_0"] = evdev.KEY_0
	for i := 1; i <= 10; i++ {
		keyNameMap["KEY_F"+strconv.Itoa(i)] = evdev.KEY_F1 + evdev.EvCode(i-1)
	}
	letters := map[string]evdev.EvCode{
		"A": evdev.KEY_A, "B": evdev.KEY_B, "C": evdev.KEY_C, "D": evdev.KEY_D, "E": evdev.KEY_E,
		"F": evdev.KEY_F, "G": evdev.KEY_G, "H": evdev.KEY_H, "I": evdev.KEY_I, "J": evdev.KEY_J,
		"K": evdev.KEY_K, "L": evdev.KEY_L, "M": evdev.KEY_M, "N": evdev.KEY_N, "O": evdev.KEY_O,
		"P": evdev.KEY_P, "Q": evdev.KEY_Q, "R": evdev.KEY_R, "S": evdev.KEY_S, "T": evdev.KEY_T,
		"U": evdev.KEY_U, "V": evdev.KEY_V, "W": evdev.KEY_W, "X": evdev.KEY_X, "Y": evdev.KEY_Y,
		"Z": evdev.KEY_Z,
	}
	for l, code := range letters {
		keyNameMap["KEY_"+l] = code
	}
}

// modifierMap maps friendly modifier names to the keys that satisfy them.
var modifierMap = map[string][]evdev.EvCode{
	"ALT":    {evdev.KEY_LEFTALT, evdev.KEY_RIGHTALT},
	"OPTION": {evdev.KEY_LEFTALT, evdev.KEY_RIGHTALT},
	"CTRL":   {evdev.KEY_LEFTCTRL, evdev.KEY_RIGHTCTRL},
	"SHIFT":  {evdev.KEY_LEFTSHIFT, evdev.KEY_RIGHTSHIFT},
	"META":   {evdev.KEY_LEFTMETA, evdev.KEY_RIGHTMETA},
	"SUPER":  {evdev.KEY_LEFTMETA, evdev.KEY_RIGHTMETA},
	"CMD":    {evdev.KEY_LEFTMETA, evdev.KEY_RIGHTMETA},
}

// KeyCodeFromName maps a key name to its code. Both evdev names
// ("KEY_F12") and bare names ("F12", "9") are accepted.
func KeyCodeFromName(name string) (evdev.EvCode, error) {
	upper := strings.ToUpper(strings.TrimSpace(name))
	if upper == "" {
		return 0, fmt.Errorf("empty key name")
	}
	if !strings.HasPrefix(upper, "KEY_") {
		upper = "KEY_" + upper
	}
	code, ok := keyNameMap[upper]
	if !ok {
		return 0, fmt.Errorf("unknown key name: %s", name)
	}
	return code, nil
}

// Combo is a parsed modifier+key combination. Each entry of Mods is
// satisfied when any one of its codes is held.
type Combo struct {
	Mods [][]evdev.EvCode
	Key  evdev.EvCode
	Name string
}

// ParseHotkeyCombo parses "Alt+9", "Ctrl+Shift+F5", "KEY_LEFTALT+KEY_0" or a
// bare key such as "KEY_F12".
func ParseHotkeyCombo(combo string) (Combo, error) {
	combo = strings.TrimSpace(combo)
	if combo == "" {
		return Combo{}, fmt.Errorf("empty hotkey combo")
	}
	parts := strings.Split(combo, "+")

	var mods [][]evdev.EvCode
	for _, part := range parts[:len(parts)-1] {
		part = strings.ToUpper(strings.TrimSpace(part))
		if codes, ok := modifierMap[part]; ok {
			mods = append(mods, codes)
			continue
		}
		code, err := KeyCodeFromName(part)
		if err != nil {
			return Combo{}, fmt.Errorf("unknown modifier: %s (valid: Alt, Ctrl, Shift, Meta or a KEY_ name)", part)
		}
		mods = append(mods, []evdev.EvCode{code})
	}

	key, err := KeyCodeFromName(parts[len(parts)-1])
	if err != nil {
		return Combo{}, err
	}
	return Combo{Mods: mods, Key: key, Name: combo}, nil
}

// FindKeyboard opens a specific device path, or auto-detects a keyboard
// by scanning /dev/input/event* for devices that support letter keys.
func FindKeyboard(devicePath string) (*evdev.InputDevice, error) {
	if devicePath != "" {
		dev, err := evdev.Open(devicePath)
		if err != nil {
			return nil, fmt.Errorf("open device %s: %w", devicePath, err)
		}
		return dev, nil
	}

	matches, err := filepath.Glob("/dev/input/event*")
	if err != nil {
		return nil, fmt.Errorf("glob /dev/input/event*: %w", err)
	}

	// Sort numerically so event7 comes before event10
	sort.Slice(matches, func(i, j int) bool {
		ni, _ := strconv.Atoi(strings.TrimPrefix(matches[i], "/dev/input/event"))
		nj, _ := strconv.Atoi(strings.TrimPrefix(matches[j], "/dev/input/event"))
		return ni < nj
	})

	for _, path := range matches {
		dev, err := evdev.Open(path)
		if err != nil {
			continue
		}
		if isKeyboard(dev) {
			return dev, nil
		}
		_ = dev.Close()
	}

	return nil, fmt.Errorf("no keyboard device found in /dev/input/event* (is the user in the input group?)")
}

// isKeyboard reports whether dev has letter keys and no relative axes.
func isKeyboard(dev *evdev.InputDevice) bool {
	for _, evType := range dev.CapableTypes() {
		if evType == evdev.EV_REL {
			return false
		}
	}
	hasA, hasZ := false, false
	for _, code := range dev.CapableEvents(evdev.EV_KEY) {
		switch code {
		case evdev.KEY_A:
			hasA = true
		case evdev.KEY_Z:
			hasZ = true
		}
	}
	return hasA && hasZ
}

// NewFromConfig parses combo and opens the keyboard at devicePath (or the
// first keyboard found). Each listener opens its own file descriptor, and
// evdev delivers every event to all of them.
func NewFromConfig(combo, devicePath string) (Listener, error) {
	c, err := ParseHotkeyCombo(combo)
	if err != nil {
		return nil, err
	}
	dev, err := FindKeyboard(devicePath)
	if err != nil {
		return nil, err
	}
	return NewListener(dev, c), nil
}

// chord tracks held keys and decides when a combo fires.
type chord struct {
	combo Combo
	held  map[evdev.EvCode]bool
	down  bool
}

func newChord(c Combo) *chord {
	return &chord{combo: c, held: make(map[evdev.EvCode]bool)}
}

func (c *chord) modsHeld() bool {
	for _, alts := range c.combo.Mods {
		ok := false
		for _, code := range alts {
			if c.held[code] {
				ok = true
				break
			}
		}
		if !ok {
			return false
		}
	}
	return true
}

// feed applies one key event (value 1 press, 0 release, 2 repeat) and
// returns +1 when the combo went down, -1 when it went up, 0 otherwise.
func (c *chord) feed(code evdev.EvCode, value int32) int {
	switch value {
	case 1:
		c.held[code] = true
		if code == c.combo.Key && !c.down && c.modsHeld() {
			c.down = true
			return 1
		}
	case 0:
		delete(c.held, code)
		if code == c.combo.Key && c.down {
			c.down = false
			return -1
		}
	}
	return 0
}

// linuxListener listens for a global hotkey via evdev.
type linuxListener struct {
	dev    *evdev.InputDevice
	combo  Combo
	mu     sync.Mutex
	closed bool
}

// NewListener creates a Listener for combo on dev.
func NewListener(dev *evdev.InputDevice, combo Combo) Listener {
	return &linuxListener{dev: dev, combo: combo}
}

// Start blocks and reads evdev events, calling onDown when the combo is
// pressed and onUp when its key is released. It returns when the context
// is cancelled or the device is closed.
func (l *linuxListener) Start(ctx context.Context, onDown func(), onUp func()) error {
	errCh := make(chan error, 1)
	ch := newChord(l.combo)

	go func() {
		for {
			ev, err := l.dev.ReadOne()
			if err != nil {
				l.mu.Lock()
				closed := l.closed
				l.mu.Unlock()
				if closed || os.IsNotExist(err) || strings.Contains(err.Error(), "file already closed") || strings.Contains(err.Error(), "bad file descriptor") {
					errCh <- nil
					return
				}
				errCh <- fmt.Errorf("read event: %w", err)
				return
			}
			if ev.Type != evdev.EV_KEY {
				continue
			}
			switch ch.feed(ev.Code, ev.Value) {
			case 1:
				if onDown != nil {
					onDown()
				}
			case -1:
				if onUp != nil {
					onUp()
				}
			}
		}
	}()

	select {
	case <-ctx.Done():
		l.Stop()
		<-errCh
		return ctx.Err()
	case err := <-errCh:
		return err
	}
}

// Stop closes the evdev device and stops the listener.
func (l *linuxListener) Stop() {
	l.mu.Lock()
	defer l.mu.Unlock()
	if !l.closed {
		l.closed = true
		_ = l.dev.Close()
	}
}

// KeyName returns the configured combo string.
func (l *linuxListener) KeyName() string {
	return l.combo.Name
}
