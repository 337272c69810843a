package tui

import (
	"errors"
	"fmt"
	"io"
	"log"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/Danondso/soundswitch/internal/chime"
	"github.com/Danondso/soundswitch/internal/config"
	"github.com/Danondso/soundswitch/internal/device"
)

// Messages sent through the Bubble Tea update loop.

// RefreshRequestMsg asks the model to re-query the OS. The change
// notification bridge sends one per burst of device events.
type RefreshRequestMsg struct{}

// RefreshedMsg carries the result of a query.
type RefreshedMsg struct {
	Snapshot device.Snapshot
}

// CycleMsg advances one direction to its next device. Hotkeys send it.
type CycleMsg struct {
	Dir device.Direction
}

// DeviceSelectedMsg carries the result of a default-device write.
type DeviceSelectedMsg struct {
	Dir       device.Direction
	Requested device.Device
	Device    device.Device // what the OS reports after the write
	Err       error
}

// ConfigReloadedMsg carries a config file that changed on disk.
type ConfigReloadedMsg struct {
	Config *config.Config
}

// HotkeyErrorMsg reports a hotkey that could not be registered.
type HotkeyErrorMsg struct {
	KeyName string
	Err     error
}

// DebugEntry is a structured debug log entry.
type DebugEntry struct {
	Time     string // e.g. "11:27:53"
	Category string // e.g. "hotkey", "select", "refresh"
	Message  string
}

// DebugLogMsg carries a structured debug log entry into the TUI.
type DebugLogMsg struct {
	Entry DebugEntry
}

const maxDebugLines = 50

// Options configures a Model.
type Options struct {
	HAL           device.HAL
	Registry      *device.Registry
	Confirm       bool
	BackendName   string
	InputHotkey   string
	OutputHotkey  string
	Version       string
	ToastDuration time.Duration
	Chime         *chime.Player
	Copy          func(text string) error
	Theme         string
	Logger        *log.Logger
	Debug         bool
}

// Model is the Bubble Tea model for the soundswitch TUI.
type Model struct {
	HAL           device.HAL
	Registry      *device.Registry
	Confirm       bool
	BackendName   string
	InputHotkey   string
	OutputHotkey  string
	Version       string
	ToastDuration time.Duration
	Chime         *chime.Player
	Copy          func(text string) error
	Theme         Theme
	Logger        *log.Logger
	DebugMode     bool
	DebugEntries  []DebugEntry

	Cursor    int
	Toast     *Toast
	ShowAbout bool
	Loaded    bool

	help     help.Model
	toastSeq int
}

// NewModel creates a new TUI model.
func NewModel(opts Options) Model {
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	theme := ApplyTheme(opts.Theme)
	return Model{
		HAL:           opts.HAL,
		Registry:      opts.Registry,
		Confirm:       opts.Confirm,
		BackendName:   opts.BackendName,
		InputHotkey:   opts.InputHotkey,
		OutputHotkey:  opts.OutputHotkey,
		Version:       opts.Version,
		ToastDuration: opts.ToastDuration,
		Chime:         opts.Chime,
		Copy:          opts.Copy,
		Theme:         theme,
		Logger:        logger,
		DebugMode:     opts.Debug,
		help:          newHelp(),
	}
}

// Init returns the initial command.
func (m Model) Init() tea.Cmd {
	return m.queryCmd()
}

// row is one selectable line of the menu.
type row struct {
	dir device.Direction
	dev device.Device
}

// rows returns inputs then outputs, the order they are rendered in.
func rows(snap device.Snapshot) []row {
	out := make([]row, 0, len(snap.Inputs)+len(snap.Outputs))
	for _, d := range snap.Inputs {
		out = append(out, row{dir: device.Input, dev: d})
	}
	for _, d := range snap.Outputs {
		out = append(out, row{dir: device.Output, dev: d})
	}
	return out
}

func (m *Model) clampCursor(n int) {
	if m.Cursor >= n {
		m.Cursor = n - 1
	}
	if m.Cursor < 0 {
		m.Cursor = 0
	}
}

// Update handles messages and transitions state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case RefreshRequestMsg:
		return m, m.queryCmd()

	case RefreshedMsg:
		if !m.Registry.Replace(msg.Snapshot) {
			m.Logger.Printf("refresh: dropped stale seq=%d", msg.Snapshot.Seq)
			return m, nil
		}
		m.Loaded = true
		m.clampCursor(len(rows(m.Registry.Snapshot())))
		m.Logger.Printf("refresh: seq=%d inputs=%d outputs=%d",
			msg.Snapshot.Seq, len(msg.Snapshot.Inputs), len(msg.Snapshot.Outputs))
		return m, nil

	case CycleMsg:
		snap := m.Registry.Snapshot()
		next, ok := device.Next(snap.Devices(msg.Dir), snap.Current(msg.Dir))
		if !ok {
			m.Logger.Printf("select: cycle %s skipped, %d device(s)", msg.Dir, len(snap.Devices(msg.Dir)))
			return m, nil
		}
		return m, m.selectCmd(msg.Dir, next)

	case DeviceSelectedMsg:
		return m.handleSelected(msg)

	case ConfigReloadedMsg:
		return m, m.applyConfig(msg.Config)

	case HotkeyErrorMsg:
		m.Logger.Printf("hotkey: %s: %v", msg.KeyName, msg.Err)
		return m, m.showToast(ToastWarning, fmt.Sprintf("Hotkey %s unavailable: %v", msg.KeyName, msg.Err))

	case toastExpiredMsg:
		if m.Toast != nil && m.Toast.ID == msg.id {
			m.Toast = nil
		}

	case DebugLogMsg:
		m.DebugEntries = append(m.DebugEntries, msg.Entry)
		if len(m.DebugEntries) > maxDebugLines {
			m.DebugEntries = m.DebugEntries[len(m.DebugEntries)-maxDebugLines:]
		}
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, keys.About):
		m.ShowAbout = !m.ShowAbout
		return m, nil
	case key.Matches(msg, keys.Close):
		m.ShowAbout = false
		return m, nil
	case key.Matches(msg, keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	case key.Matches(msg, keys.Theme):
		m.Theme = NextTheme(m.Theme.Name)
		applyTheme(m.Theme)
		m.help.Styles = helpStyles()
		return m, nil
	}
	if m.ShowAbout {
		return m, nil
	}

	all := rows(m.Registry.Snapshot())
	switch {
	case key.Matches(msg, keys.Up):
		if m.Cursor > 0 {
			m.Cursor--
		}
	case key.Matches(msg, keys.Down):
		if m.Cursor < len(all)-1 {
			m.Cursor++
		}
	case key.Matches(msg, keys.Select):
		if m.Cursor < len(all) {
			r := all[m.Cursor]
			return m, m.selectCmd(r.dir, r.dev)
		}
	case key.Matches(msg, keys.CycleInput):
		return m.Update(CycleMsg{Dir: device.Input})
	case key.Matches(msg, keys.CycleOutput):
		return m.Update(CycleMsg{Dir: device.Output})
	case key.Matches(msg, keys.Refresh):
		return m, m.queryCmd()
	case key.Matches(msg, keys.Copy):
		if m.Cursor < len(all) && m.Copy != nil {
			name := all[m.Cursor].dev.Name
			if err := m.Copy(name); err != nil {
				m.Logger.Printf("select: copy failed: %v", err)
				return m, m.showToast(ToastError, "Copy failed")
			}
			return m, m.showToast(ToastInfo, fmt.Sprintf("Copied %q", name))
		}
	}
	return m, nil
}

// applyConfig takes the settings that can change without a restart.
// Hotkeys and the backend are bound at startup.
func (m *Model) applyConfig(cfg *config.Config) tea.Cmd {
	RegisterCustomThemes(cfg.CustomThemes)
	m.Theme = ApplyTheme(cfg.Theme)
	m.help.Styles = helpStyles()
	m.Confirm = cfg.Selection.Confirm
	m.ToastDuration = cfg.ToastDuration()
	m.Logger.Printf("watch: config reloaded theme=%s confirm=%v", m.Theme.Name, m.Confirm)
	return m.showToast(ToastInfo, "Config reloaded")
}

func (m Model) handleSelected(msg DeviceSelectedMsg) (tea.Model, tea.Cmd) {
	label := "Input"
	if msg.Dir == device.Output {
		label = "Output"
	}

	if msg.Err != nil {
		m.Logger.Printf("select: %v", msg.Err)
		if errors.Is(msg.Err, device.ErrNotApplied) && msg.Device.ID != "" {
			m.Registry.SetCurrent(msg.Dir, msg.Device)
		}
		text := fmt.Sprintf("Could not switch %s to %s", label, msg.Requested.Name)
		if errors.Is(msg.Err, device.ErrReadOnly) {
			text = fmt.Sprintf("%s backend cannot change defaults", m.BackendName)
		}
		return m, m.showToast(ToastError, text)
	}

	m.Registry.SetCurrent(msg.Dir, msg.Device)
	m.Logger.Printf("select: %s -> %s (%s)", msg.Dir, msg.Device.Name, msg.Device.ID)
	if msg.Dir == device.Output {
		m.Chime.Play()
	}
	return m, m.showToast(ToastSuccess, fmt.Sprintf("%s: %s", label, msg.Device.Name))
}

func (m Model) queryCmd() tea.Cmd {
	hal := m.HAL
	return func() tea.Msg {
		return RefreshedMsg{Snapshot: device.Query(hal)}
	}
}

func (m Model) selectCmd(dir device.Direction, dev device.Device) tea.Cmd {
	hal := m.HAL
	confirm := m.Confirm
	return func() tea.Msg {
		got, err := device.Write(hal, dir, dev, confirm)
		return DeviceSelectedMsg{Dir: dir, Requested: dev, Device: got, Err: err}
	}
}
