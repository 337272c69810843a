package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// ToastKind selects a toast's icon and color.
type ToastKind int

const (
	ToastSuccess ToastKind = iota
	ToastInfo
	ToastWarning
	ToastError
)

// Icon returns the glyph shown before the toast message.
func (k ToastKind) Icon() string {
	switch k {
	case ToastSuccess:
		return "✓"
	case ToastWarning:
		return "⚠"
	case ToastError:
		return "✗"
	default:
		return "ℹ"
	}
}

// DefaultToastDuration is used when no duration is configured.
const DefaultToastDuration = 2 * time.Second

// Toast is a transient notification shown under the device lists.
type Toast struct {
	ID       int
	Message  string
	Kind     ToastKind
	Duration time.Duration
}

type toastExpiredMsg struct {
	id int
}

// showToast replaces any visible toast and schedules its expiry.
func (m *Model) showToast(kind ToastKind, message string) tea.Cmd {
	m.toastSeq++
	d := m.ToastDuration
	if d <= 0 {
		d = DefaultToastDuration
	}
	m.Toast = &Toast{ID: m.toastSeq, Message: message, Kind: kind, Duration: d}
	id := m.toastSeq
	return tea.Tick(d, func(time.Time) tea.Msg {
		return toastExpiredMsg{id: id}
	})
}
