package main

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/jonboulle/clockwork"

	"github.com/andareed/epochx/clipboard"
	"github.com/andareed/epochx/dialogs"
	"github.com/andareed/epochx/epoch"
	"github.com/andareed/epochx/explorer"
	"github.com/andareed/epochx/logging"
	"github.com/andareed/epochx/protocol"
)

type copier interface {
	Copy(text string) error
}

type copyFunc func(string) error

func (f copyFunc) Copy(text string) error { return f(text) }

type copyDoneMsg struct {
	what string
	err  error
}

type model struct {
	explorer *explorer.Explorer
	clock    clockwork.Clock
	refresh  *refresher
	copier   copier
	loc      *time.Location

	// now is the instant everything on screen is computed against. It only
	// moves on refresh ticks so a frame is internally consistent.
	now time.Time

	cursor   int
	expanded map[string]bool

	ui           uiState
	activeDialog dialogs.Dialog

	configName     string
	terminalWidth  int
	terminalHeight int
	ready          bool
}

type modelOptions struct {
	Clock      clockwork.Clock
	Copier     copier
	Location   *time.Location
	Theme      themeName
	ConfigName string
}

func newModel(ex *explorer.Explorer, opts modelOptions) *model {
	if opts.Clock == nil {
		opts.Clock = clockwork.NewRealClock()
	}
	if opts.Copier == nil {
		opts.Copier = copyFunc(clipboard.Copy)
	}
	if opts.Location == nil {
		opts.Location = time.Local
	}
	if opts.Theme == "" {
		opts.Theme = themeDark
	}
	m := &model{
		explorer:   ex,
		clock:      opts.Clock,
		refresh:    newRefresher(opts.Clock),
		copier:     opts.Copier,
		loc:        opts.Location,
		now:        opts.Clock.Now(),
		expanded:   make(map[string]bool),
		configName: opts.ConfigName,
	}
	m.setTheme(opts.Theme)
	return m
}

func (m *model) Init() tea.Cmd {
	logging.Infof("epochx: Initialised with %d protocols", m.explorer.Registry().Len())
	return tea.Batch(tea.SetWindowTitle("Epoch Explorer"), m.refresh.next())
}

func (m *model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.terminalWidth = msg.Width
		m.terminalHeight = msg.Height
		m.ready = true
		return m, nil

	case tickMsg:
		if m.refresh.stopped() {
			return m, nil
		}
		m.now = msg.at
		return m, m.refresh.next()

	case clearNoticeMsg:
		m.clearNotice(msg)
		return m, nil

	case copyDoneMsg:
		if msg.err != nil {
			logging.Warnf("copy %s failed: %v", msg.what, msg.err)
			return m, m.startNotice(fmt.Sprintf("Copy failed: %v", msg.err), noticeError, 3*noticeDuration)
		}
		return m, m.startNotice("Copied "+msg.what, noticeSuccess, noticeDuration)

	case dialogs.EpochConfirmedMsg:
		m.closeDialog()
		return m, m.setProtocolEpoch(msg.ProtocolID, msg.Epoch)

	case dialogs.EpochCanceledMsg:
		m.closeDialog()
		return m, nil

	case tea.KeyMsg:
		if m.ui.mode == modeDialog && m.activeDialog != nil {
			return m.updateDialog(msg)
		}
		return m.handleViewModeKey(msg)
	}

	if m.ui.mode == modeDialog && m.activeDialog != nil {
		return m.updateDialog(msg)
	}
	return m, nil
}

func (m *model) updateDialog(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	m.activeDialog, cmd = m.activeDialog.Update(msg)
	if !m.activeDialog.IsVisible() {
		m.closeDialog()
	}
	return m, cmd
}

func (m *model) openDialog(d dialogs.Dialog) tea.Cmd {
	m.activeDialog = d
	m.ui.mode = modeDialog
	return tea.Batch(d.Init(), d.Focus())
}

func (m *model) closeDialog() {
	if m.activeDialog != nil {
		m.activeDialog.Hide()
	}
	m.activeDialog = nil
	m.ui.mode = modeView
}

func (m *model) quit() (tea.Model, tea.Cmd) {
	m.refresh.stop()
	logging.Infof("epochx: quitting, offsets %+v", m.explorer.Offsets())
	return m, tea.Quit
}

func (m *model) handleViewModeKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, Keys.Quit):
		return m.quit()

	case key.Matches(msg, Keys.OpenHelp):
		return m, m.openDialog(dialogs.NewHelpDialog(Keys.Legend()))

	case key.Matches(msg, Keys.GlobalPrev):
		return m, m.shiftGlobal(m.explorer.DecrementGlobal)
	case key.Matches(msg, Keys.GlobalNext):
		return m, m.shiftGlobal(m.explorer.IncrementGlobal)
	case key.Matches(msg, Keys.GlobalReset):
		m.explorer.ResetGlobal()
		return m, m.startNotice("Reset to current epoch", noticeInfo, noticeDuration)

	case key.Matches(msg, Keys.RowUp):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(msg, Keys.RowDown):
		if m.cursor < m.explorer.Registry().Len()-1 {
			m.cursor++
		}
	case key.Matches(msg, Keys.Toggle):
		if id, ok := m.selectedID(); ok {
			m.expanded[id] = !m.expanded[id]
		}
	case key.Matches(msg, Keys.CollapseAll):
		clear(m.expanded)

	case key.Matches(msg, Keys.ProtocolPrev):
		return m, m.withSelected(func(id string) error { return m.explorer.DecrementProtocol(id, m.now) })
	case key.Matches(msg, Keys.ProtocolNext):
		return m, m.withSelected(func(id string) error { return m.explorer.IncrementProtocol(id, m.now) })
	case key.Matches(msg, Keys.ProtocolReset):
		return m, m.withSelected(m.explorer.ResetProtocol)
	case key.Matches(msg, Keys.ProtocolSet):
		return m, m.openEpochEntry()

	case key.Matches(msg, Keys.CopyTimestamp):
		return m, m.copyCmd("timestamp", strconv.FormatInt(m.now.Unix(), 10))
	case key.Matches(msg, Keys.CopyStart):
		w := m.focusedWindow()
		return m, m.copyCmd("epoch start", strconv.FormatInt(w.Start, 10))
	case key.Matches(msg, Keys.CopyEnd):
		w := m.focusedWindow()
		return m, m.copyCmd("epoch end", strconv.FormatInt(w.End, 10))
	case key.Matches(msg, Keys.CopyDelta):
		d := explorer.DeltaUntilEnd(m.focusedWindow(), m.now)
		return m, m.copyCmd("time delta", strconv.FormatInt(int64(d/time.Second), 10))

	case key.Matches(msg, Keys.ToggleTheme):
		m.setTheme(m.ui.theme.toggle())
	}
	return m, nil
}

func (m *model) setTheme(t themeName) {
	m.ui.theme = t
	m.ui.styles = newStyles(t)
}

func (m *model) shiftGlobal(op func(now time.Time) error) tea.Cmd {
	if err := op(m.now); err != nil {
		logging.Warnf("global offset: %v", err)
		return m.startNotice(err.Error(), noticeError, 2*noticeDuration)
	}
	logging.Debugf("global offset -> %d", m.explorer.Offsets().Global)
	return nil
}

func (m *model) selectedID() (string, bool) {
	ids := m.explorer.Registry().IDs()
	if m.cursor < 0 || m.cursor >= len(ids) {
		return "", false
	}
	return ids[m.cursor], true
}

// withSelected applies op to the selected protocol and expands its card so
// the change is visible.
func (m *model) withSelected(op func(id string) error) tea.Cmd {
	id, ok := m.selectedID()
	if !ok {
		return m.startNotice("No protocol selected", noticeWarn, noticeDuration)
	}
	if err := op(id); err != nil {
		logging.Warnf("protocol %q: %v", id, err)
		return m.startNotice(err.Error(), noticeError, 2*noticeDuration)
	}
	m.expanded[id] = true
	return nil
}

func (m *model) openEpochEntry() tea.Cmd {
	id, ok := m.selectedID()
	if !ok {
		return m.startNotice("No protocol selected", noticeWarn, noticeDuration)
	}
	v, err := m.explorer.Protocol(id, m.now)
	if err != nil {
		return m.startNotice(err.Error(), noticeError, 2*noticeDuration)
	}
	return m.openDialog(dialogs.NewEpochEntryDialog(id, v.Protocol.Name, v.Epoch))
}

func (m *model) setProtocolEpoch(id string, target int64) tea.Cmd {
	if err := m.explorer.SetProtocolEpoch(id, target, m.now); err != nil {
		logging.Warnf("set epoch %d for %q: %v", target, id, err)
		if errors.Is(err, protocol.ErrUnknownProtocol) {
			return m.startNotice(fmt.Sprintf("Unknown protocol %q", id), noticeError, 2*noticeDuration)
		}
		return m.startNotice(err.Error(), noticeError, 2*noticeDuration)
	}
	m.expanded[id] = true
	logging.Debugf("protocol %q set to epoch %d, offsets %+v", id, target, m.explorer.Offsets())
	return nil
}

// focusedWindow is the selected protocol's window when its card is expanded,
// otherwise the shared clock's window.
func (m *model) focusedWindow() epoch.Window {
	if id, ok := m.selectedID(); ok && m.expanded[id] {
		if v, err := m.explorer.Protocol(id, m.now); err == nil {
			return v.Window
		}
	}
	return m.explorer.Clock(m.now).Window
}

func (m *model) copyCmd(what, text string) tea.Cmd {
	c := m.copier
	return func() tea.Msg {
		return copyDoneMsg{what: what, err: c.Copy(text)}
	}
}
