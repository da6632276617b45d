package dialogs

import (
	"testing"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runes(s string) tea.KeyMsg { return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)} }

func TestEpochEntry_Confirm(t *testing.T) {
	d := NewEpochEntryDialog("alpha", "Protocol Alpha", 5)
	d.Focus()

	d.Update(tea.KeyMsg{Type: tea.KeyBackspace})
	d.Update(runes("1"))
	d.Update(runes("2"))
	_, cmd := d.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)

	assert.Equal(t, EpochConfirmedMsg{ProtocolID: "alpha", Epoch: 12}, cmd())
	assert.Equal(t, "alpha", d.ProtocolID())
}

func TestEpochEntry_EmptyUsesCurrent(t *testing.T) {
	d := NewEpochEntryDialog("beta", "Protocol Beta", 7)
	d.Focus()
	d.Update(tea.KeyMsg{Type: tea.KeyBackspace})

	_, cmd := d.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)
	assert.Equal(t, EpochConfirmedMsg{ProtocolID: "beta", Epoch: 7}, cmd())
}

func TestEpochEntry_RejectsNonNumber(t *testing.T) {
	d := NewEpochEntryDialog("alpha", "Protocol Alpha", 3)
	d.Focus()
	d.Update(tea.KeyMsg{Type: tea.KeyBackspace})
	d.Update(runes("-"))

	_, cmd := d.Update(tea.KeyMsg{Type: tea.KeyEnter})
	assert.Nil(t, cmd)
	assert.Contains(t, d.View(), "not an epoch number")
	assert.True(t, d.IsVisible())
}

func TestEpochEntry_RejectsOutOfRange(t *testing.T) {
	for _, in := range []string{"9000000000000000000", "-9223372036854775808"} {
		d := NewEpochEntryDialog("alpha", "Protocol Alpha", 3)
		d.Focus()
		d.Update(tea.KeyMsg{Type: tea.KeyBackspace})
		d.Update(runes(in))

		_, cmd := d.Update(tea.KeyMsg{Type: tea.KeyEnter})
		assert.Nil(t, cmd, "input %s", in)
		assert.Contains(t, d.View(), "out of range")
		assert.True(t, d.IsVisible())
	}

	d := NewEpochEntryDialog("alpha", "Protocol Alpha", 3)
	d.Focus()
	d.Update(tea.KeyMsg{Type: tea.KeyBackspace})
	d.Update(runes("-1125899906842624"))
	_, cmd := d.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)
	assert.Equal(t, EpochConfirmedMsg{ProtocolID: "alpha", Epoch: -1 << 50}, cmd())
}

func TestEpochEntry_Cancel(t *testing.T) {
	d := NewEpochEntryDialog("alpha", "Protocol Alpha", 3)
	_, cmd := d.Update(tea.KeyMsg{Type: tea.KeyEsc})
	require.NotNil(t, cmd)
	assert.Equal(t, EpochCanceledMsg{}, cmd())

	d.Hide()
	assert.Empty(t, d.View())
}

func TestHelp(t *testing.T) {
	b := key.NewBinding(key.WithKeys("q"), key.WithHelp("q", "quit"))
	d := NewHelpDialog([]key.Binding{b})
	assert.Contains(t, d.View(), "quit")

	d.Update(tea.KeyMsg{Type: tea.KeyEsc})
	assert.False(t, d.IsVisible())
	assert.Empty(t, d.View())
}
