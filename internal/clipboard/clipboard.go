// Package clipboard copies device names and IDs to the system clipboard.
package clipboard

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"time"

	atclip "github.com/atotto/clipboard"
)

// isWayland returns true if the session is running under Wayland.
func isWayland() bool {
	return os.Getenv("WAYLAND_DISPLAY") != ""
}

// CopyText writes text to the clipboard. On Wayland it uses wl-copy since
// the X11 selection is not visible to native Wayland clients.
func CopyText(text string) error {
	if isWayland() {
		if _, err := exec.LookPath("wl-copy"); err == nil {
			return copyWayland(text)
		}
	}
	if err := atclip.WriteAll(text); err != nil {
		return fmt.Errorf("write to clipboard: %w", err)
	}
	return nil
}

func copyWayland(text string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	cmd := exec.CommandContext(ctx, "wl-copy", "--", text)
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("wl-copy: %w", err)
	}
	return nil
}

// Available reports whether any clipboard backend can be used.
func Available() bool {
	if isWayland() {
		if _, err := exec.LookPath("wl-copy"); err == nil {
			return true
		}
	}
	return !atclip.Unsupported
}
