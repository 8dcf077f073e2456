package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/wippyai/textcore/encoder"
	"github.com/wippyai/textcore/locale"
	"github.com/wippyai/textcore/ustring"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	codecStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#87CEEB"))

	resultStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#90EE90"))

	lossyStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFD700"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))
)

type interactiveModel struct {
	err     error
	loc     locale.Locale
	input   textinput.Model
	infos   []charInfo
	encoded []byte
	stats   encoder.Stats
}

func newInteractiveModel(loc locale.Locale, text string) *interactiveModel {
	ti := textinput.New()
	ti.Placeholder = "type text to encode"
	ti.Prompt = "> "
	ti.Width = 60
	ti.SetValue(text)
	ti.Focus()

	m := &interactiveModel{loc: loc, input: ti}
	m.refresh()
	return m
}

func (m *interactiveModel) Init() tea.Cmd {
	return textinput.Blink
}

// refresh re-encodes the current input.
func (m *interactiveModel) refresh() {
	s := ustring.FromUTF8(m.input.Value())
	m.infos, m.err = inspectString(s, m.loc)
	if m.err != nil {
		return
	}
	m.encoded, m.stats, m.err = s.Encode(m.loc)
}

func (m *interactiveModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "ctrl+c", "esc":
			return m, tea.Quit
		}
	}

	before := m.input.Value()
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	if m.input.Value() != before {
		m.refresh()
	}
	return m, cmd
}

func (m *interactiveModel) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("Transcode"))
	b.WriteString(" ")
	b.WriteString(m.loc.Name())
	b.WriteString(" ")
	b.WriteString(codecStyle.Render(m.loc.Codec().Name()))
	b.WriteString("\n\n")
	b.WriteString(m.input.View())
	b.WriteString("\n\n")

	if m.err != nil {
		b.WriteString(errorStyle.Render(fmt.Sprintf("Error: %v", m.err)))
		b.WriteString("\n\n")
	} else if len(m.infos) > 0 {
		b.WriteString(renderTable(m.infos))
		b.WriteString("\n\n")
		b.WriteString(resultStyle.Render(fmt.Sprintf("%d bytes: %s", len(m.encoded), hexBytes(m.encoded))))
		b.WriteString("\n")
		if m.stats.Lossy() {
			b.WriteString(lossyStyle.Render(fmt.Sprintf("replaced %d • substituted %d • dropped %d",
				m.stats.Replaced, m.stats.Substituted, m.stats.Dropped)))
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}

	b.WriteString(helpStyle.Render("type to re-encode • esc quit"))
	return b.String()
}

func runInteractive(loc locale.Locale, text string) error {
	p := tea.NewProgram(newInteractiveModel(loc, text), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
