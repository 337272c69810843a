package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/truncate"
	"github.com/muesli/reflow/wordwrap"

	"github.com/Danondso/soundswitch/internal/device"
)

// 80s Miami / Synthwave color palette
var (
	hotPink      = lipgloss.Color("#FF6AC1")
	cyan         = lipgloss.Color("#00E5FF")
	purple       = lipgloss.Color("#B388FF")
	coral        = lipgloss.Color("#FF8A80")
	teal         = lipgloss.Color("#64FFDA")
	sunsetOrange = lipgloss.Color("#FFAB40")
	darkBg       = lipgloss.Color("#1A1A2E")
	softWhite    = lipgloss.Color("#E0E0E0")
	dimmed       = lipgloss.Color("#666666")
)

// Styles
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(hotPink).
			Background(darkBg).
			MarginBottom(1)

	borderStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(cyan).
			Padding(1, 2).
			Background(darkBg)

	labelStyle = lipgloss.NewStyle().
			Foreground(cyan).
			Background(darkBg).
			Bold(true)

	bodyStyle = lipgloss.NewStyle().
			Foreground(softWhite).
			Background(darkBg)

	cursorStyle = lipgloss.NewStyle().
			Foreground(purple).
			Background(darkBg).
			Bold(true)

	currentStyle = lipgloss.NewStyle().
			Foreground(teal).
			Background(darkBg).
			Bold(true)

	hotkeyStyle = lipgloss.NewStyle().
			Foreground(cyan).
			Background(darkBg)

	quitStyle = lipgloss.NewStyle().
			Foreground(dimmed).
			Background(darkBg)

	toastSuccessStyle = lipgloss.NewStyle().
				Foreground(teal).
				Background(darkBg).
				Bold(true)

	toastInfoStyle = lipgloss.NewStyle().
			Foreground(cyan).
			Background(darkBg).
			Bold(true)

	toastWarningStyle = lipgloss.NewStyle().
				Foreground(sunsetOrange).
				Background(darkBg).
				Bold(true)

	toastErrorStyle = lipgloss.NewStyle().
			Foreground(coral).
			Background(darkBg).
			Bold(true)

	debugTitleStyle = lipgloss.NewStyle().
			Foreground(dimmed).
			Background(darkBg).
			Bold(true)

	debugRuleStyle = lipgloss.NewStyle().
			Foreground(dimmed).
			Background(darkBg)

	debugHeaderStyle = lipgloss.NewStyle().
				Foreground(dimmed).
				Background(darkBg).
				Bold(true)

	debugTimeStyle = lipgloss.NewStyle().
			Foreground(dimmed).
			Background(darkBg)

	debugCategoryStyle = lipgloss.NewStyle().
				Foreground(sunsetOrange).
				Background(darkBg)

	debugMsgStyle = lipgloss.NewStyle().
			Foreground(dimmed).
			Background(darkBg)

	debugSepStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#444444")).
			Background(darkBg)
)

// panelWidth is the total outer width of the main panel.
// borderStyle has: border (1+1) = 2, padding (2+2) = 4, total chrome = 6.
const panelWidth = 80
const panelWidthForStyle = panelWidth - 2 // passed to borderStyle.Width()
const panelContentWidth = panelWidth - 6  // actual usable text area

const (
	markCurrent = "◉"
	markOther   = "○"
)

// View renders the TUI.
func (m Model) View() string {
	var b strings.Builder

	titleText := "  SOUNDSWITCH  "
	barTotal := panelContentWidth - len(titleText)
	barLeft := barTotal / 2
	barRight := barTotal - barLeft
	title := strings.Repeat("▓", barLeft) + titleText + strings.Repeat("▓", barRight)
	b.WriteString(titleStyle.Render(title))
	b.WriteString("\n")

	snap := m.Registry.Snapshot()
	b.WriteString(m.renderStatusBar(snap))
	b.WriteString("\n\n")

	if m.ShowAbout {
		b.WriteString(m.renderAbout())
	} else {
		b.WriteString(m.renderDevices(snap))
	}

	if m.Toast != nil {
		b.WriteString("\n\n")
		b.WriteString(renderToast(*m.Toast))
	}

	b.WriteString("\n\n")
	b.WriteString(m.renderHints())

	if m.DebugMode || len(m.DebugEntries) > 0 {
		b.WriteString("\n\n")
		b.WriteString(m.renderDebugPanel())
	}

	return borderStyle.Width(panelWidthForStyle).Render(b.String())
}

func (m Model) renderStatusBar(snap device.Snapshot) string {
	if !m.Loaded {
		return quitStyle.Render("Output: ...  Backend: " + m.BackendName)
	}
	out := "none"
	if snap.CurrentOutput != nil {
		out = snap.CurrentOutput.Name
	}
	return quitStyle.Render("Output: ") + currentStyle.Render(out) +
		quitStyle.Render("  Backend: "+m.BackendName)
}

func (m Model) renderDevices(snap device.Snapshot) string {
	var b strings.Builder
	idx := 0
	section := func(label string, list []device.Device, current *device.Device) {
		b.WriteString(labelStyle.Render(label))
		if len(list) == 0 {
			b.WriteString("\n")
			b.WriteString(quitStyle.Render("  (none)"))
		}
		for _, d := range list {
			b.WriteString("\n")
			b.WriteString(m.renderRow(d, current != nil && current.Equal(d), idx == m.Cursor))
			idx++
		}
	}
	section("Input Devices", snap.Inputs, snap.CurrentInput)
	b.WriteString("\n\n")
	section("Output Devices", snap.Outputs, snap.CurrentOutput)
	return b.String()
}

func (m Model) renderRow(d device.Device, current, selected bool) string {
	pointer := "  "
	if selected {
		pointer = "> "
	}
	mark := quitStyle.Render(markOther)
	if current {
		mark = currentStyle.Render(markCurrent)
	}

	name := truncate.StringWithTail(d.Name, panelContentWidth-6, "...")
	style := bodyStyle
	if selected {
		style = cursorStyle
	}
	return style.Render(pointer) + mark + style.Render(" "+name)
}

func renderToast(t Toast) string {
	style := toastInfoStyle
	switch t.Kind {
	case ToastSuccess:
		style = toastSuccessStyle
	case ToastWarning:
		style = toastWarningStyle
	case ToastError:
		style = toastErrorStyle
	}
	msg := truncate.StringWithTail(t.Message, panelContentWidth-2, "...")
	return style.Render(t.Kind.Icon() + " " + msg)
}

func (m Model) renderHints() string {
	var b strings.Builder
	if m.InputHotkey != "" {
		b.WriteString(hotkeyStyle.Render(fmt.Sprintf("%s to toggle input devices", m.InputHotkey)))
		b.WriteString("\n")
	}
	if m.OutputHotkey != "" {
		b.WriteString(hotkeyStyle.Render(fmt.Sprintf("%s to toggle output devices", m.OutputHotkey)))
		b.WriteString("\n")
	}
	b.WriteString(m.help.View(keys))
	return b.String()
}

const aboutText = "Switch the system default audio input and output devices from the " +
	"keyboard. Global hotkeys cycle through each direction while any application has focus."

func (m Model) renderAbout() string {
	var b strings.Builder
	b.WriteString(labelStyle.Render("About"))
	b.WriteString("\n")
	b.WriteString(bodyStyle.Render("soundswitch " + m.Version))
	b.WriteString("\n")
	b.WriteString(bodyStyle.Render(wordwrap.String(aboutText, panelContentWidth)))
	b.WriteString("\n")
	b.WriteString(quitStyle.Render("Copyright © Danondso. Press a or esc to close."))
	return b.String()
}

const debugPanelMaxLines = 5

// Debug table column widths. Row content must fit within panelContentWidth.
const (
	colTimeWidth     = 15
	colCategoryWidth = 10
	colSepWidth      = 3 // " │ "
	colMsgWidth      = panelContentWidth - colTimeWidth - colCategoryWidth - colSepWidth*2
)

func (m Model) renderDebugPanel() string {
	sep := debugSepStyle.Render(" │ ")
	rule := debugRuleStyle.Render(strings.Repeat("─", panelContentWidth))

	var db strings.Builder

	db.WriteString(debugTitleStyle.Render("Debug"))
	db.WriteString("\n")
	db.WriteString(rule)
	db.WriteString("\n")

	db.WriteString(
		debugHeaderStyle.Width(colTimeWidth).Render("TIME") +
			sep +
			debugHeaderStyle.Width(colCategoryWidth).Render("TYPE") +
			sep +
			debugHeaderStyle.Width(colMsgWidth).Render("MESSAGE"))
	db.WriteString("\n")
	db.WriteString(rule)

	entries := m.DebugEntries
	if len(entries) > debugPanelMaxLines {
		entries = entries[len(entries)-debugPanelMaxLines:]
	}
	for _, entry := range entries {
		timeStr := entry.Time
		if len(timeStr) > colTimeWidth {
			timeStr = timeStr[:colTimeWidth]
		}

		cat := entry.Category
		if len(cat) > colCategoryWidth {
			cat = cat[:colCategoryWidth]
		}

		msg := truncate.StringWithTail(entry.Message, colMsgWidth, "...")

		db.WriteString("\n")
		db.WriteString(
			debugTimeStyle.Width(colTimeWidth).Render(timeStr) +
				sep +
				debugCategoryStyle.Width(colCategoryWidth).Render(cat) +
				sep +
				debugMsgStyle.Width(colMsgWidth).Render(msg))
	}

	return db.String()
}
