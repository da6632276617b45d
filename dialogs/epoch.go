package dialogs

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/andareed/epochx/epoch"
	"github.com/andareed/epochx/logging"
)

// --- Messages ---------------------------------------------------------------

type (
	EpochConfirmedMsg struct {
		ProtocolID string
		Epoch      int64
	}
	EpochCanceledMsg struct{}
)

// --- Epoch entry dialog (modal) ---------------------------------------------

// EpochEntry asks for the epoch number one protocol should display.
type EpochEntry struct {
	input      textinput.Model
	visible    bool
	protocolID string
	title      string
	errorMsg   string
}

func NewEpochEntryDialog(protocolID, protocolName string, current int64) *EpochEntry {
	ti := textinput.New()
	ti.Placeholder = strconv.FormatInt(current, 10)
	ti.Prompt = "Epoch: "
	ti.CharLimit = 20
	ti.Width = 24
	ti.Validate = func(s string) error {
		if s == "" || s == "-" {
			return nil
		}
		_, err := strconv.ParseInt(s, 10, 64)
		return err
	}
	ti.SetValue(strconv.FormatInt(current, 10))
	ti.CursorEnd()
	return &EpochEntry{
		input:      ti,
		visible:    true,
		protocolID: protocolID,
		title:      fmt.Sprintf("Set epoch for %s", protocolName),
	}
}

func (d *EpochEntry) Init() tea.Cmd { return d.input.Focus() }

func (d *EpochEntry) ProtocolID() string { return d.protocolID }

func (d *EpochEntry) Update(msg tea.Msg) (Dialog, tea.Cmd) {
	if !d.visible {
		return d, nil
	}
	if m, ok := msg.(tea.KeyMsg); ok {
		switch m.String() {
		case "enter":
			val := strings.TrimSpace(d.input.Value())
			if val == "" {
				val = d.input.Placeholder
			}
			n, err := strconv.ParseInt(val, 10, 64)
			if err != nil {
				logging.Debugf("EpochEntry: rejecting %q: %v", val, err)
				d.errorMsg = fmt.Sprintf("%q is not an epoch number", val)
				return d, nil
			}
			if n > epoch.MaxEpoch || n < -epoch.MaxEpoch {
				d.errorMsg = fmt.Sprintf("%d is out of range", n)
				return d, nil
			}
			id := d.protocolID
			return d, func() tea.Msg { return EpochConfirmedMsg{ProtocolID: id, Epoch: n} }
		case "esc":
			return d, func() tea.Msg { return EpochCanceledMsg{} }
		}
	}
	d.errorMsg = ""
	var cmd tea.Cmd
	d.input, cmd = d.input.Update(msg)
	return d, cmd
}

func (d *EpochEntry) View() string {
	if !d.visible {
		return ""
	}
	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("252")).
		BorderBackground(lipgloss.Color("236")).
		Padding(1, 2).
		Width(48)

	title := lipgloss.NewStyle().Bold(true).Render(d.title)
	help := lipgloss.NewStyle().
		Faint(true).
		Render("enter to apply • esc to cancel")

	content := fmt.Sprintf("%s\n\n%s\n\n%s", title, d.input.View(), help)
	if d.errorMsg != "" {
		content += "\n" + lipgloss.NewStyle().Foreground(lipgloss.Color("1")).Render(d.errorMsg)
	}
	return box.Render(content)
}

func (d *EpochEntry) Show() {
	d.visible = true
	d.input.Focus()
}

func (d *EpochEntry) Hide() {
	d.visible = false
	d.input.Blur()
}

func (d *EpochEntry) Focus() tea.Cmd { return d.input.Focus() }
func (d *EpochEntry) Blur()          { d.input.Blur() }
func (d *EpochEntry) IsVisible() bool { return d.visible }
