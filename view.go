package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/andareed/epochx/explorer"
	"github.com/andareed/epochx/logging"
)

const cardWidth = 26

func (m *model) View() string {
	if !m.ready {
		return "loading..."
	}

	if m.activeDialog != nil && m.activeDialog.IsVisible() {
		return lipgloss.Place(
			m.terminalWidth, m.terminalHeight,
			lipgloss.Center, lipgloss.Center,
			m.activeDialog.View(),
			lipgloss.WithWhitespaceChars(" "),
			lipgloss.WithWhitespaceBackground(lipgloss.Color("236")),
		)
	}

	clock := m.clockView()
	contentW := max(lipgloss.Width(clock), m.terminalWidth-4)

	parts := []string{
		clock,
		"",
		m.protocolsView(contentW),
		"",
		m.footerView(contentW),
	}
	return m.ui.styles.app.Render(lipgloss.JoinVertical(lipgloss.Left, parts...))
}

func (m *model) clockView() string {
	st := m.ui.styles
	c := m.explorer.Clock(m.now)

	header := lipgloss.JoinVertical(lipgloss.Center,
		st.title.Render("Epoch Explorer"),
		st.clock.Render(m.now.In(m.loc).Format(wallClockLayout)),
		st.muted.Render("Current Unix Timestamp: ")+st.mono.Render(strconv.FormatInt(c.Timestamp, 10)),
	)

	start := st.card.Width(cardWidth).Render(lipgloss.JoinVertical(lipgloss.Center,
		st.heading.Render("Epoch Start"),
		st.mono.Render(strconv.FormatInt(c.Window.Start, 10)),
		st.faint.Render(formatUnixTimestamp(c.Window.Start, m.loc)),
	))

	diff := st.muted.Render("Current Epoch " + diffLabel(c.Offset))
	if c.Offset != 0 {
		diff = st.shifted.Render("Current Epoch " + diffLabel(c.Offset))
	}
	adjust := st.cardActive.Width(cardWidth).Render(lipgloss.JoinVertical(lipgloss.Center,
		st.heading.Render("Adjust Epoch"),
		st.mono.Render(fmt.Sprintf("‹  Epoch %d  ›", c.Epoch)),
		diff,
	))

	end := st.card.Width(cardWidth).Render(lipgloss.JoinVertical(lipgloss.Center,
		st.heading.Render("Epoch End"),
		st.mono.Render(strconv.FormatInt(c.Window.End, 10)),
		st.faint.Render(formatUnixTimestamp(c.Window.End, m.loc)),
	))

	cards := lipgloss.JoinHorizontal(lipgloss.Top, start, " ", adjust, " ", end)
	return lipgloss.JoinVertical(lipgloss.Center, header, "", cards)
}

func (m *model) protocolsView(width int) string {
	st := m.ui.styles
	views := m.explorer.Protocols(m.now)

	lines := []string{st.heading.Render("Protocols")}
	for i, v := range views {
		lines = append(lines, m.protocolRow(i, v, width))
		if m.expanded[v.Protocol.ID] {
			lines = append(lines, m.protocolDetail(v))
		}
	}
	return strings.Join(lines, "\n")
}

func (m *model) protocolRow(i int, v explorer.ProtocolView, width int) string {
	st := m.ui.styles
	rowStyle := st.protoRow
	if i == m.cursor {
		rowStyle = st.protoSel
	}

	marker := "▸"
	if m.expanded[v.Protocol.ID] {
		marker = "▾"
	}
	name := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(v.Protocol.Color)).Render(v.Protocol.Name)
	epochText := st.text.Render(fmt.Sprintf("Epoch %d", v.Epoch))
	if v.Diff != 0 {
		epochText += " " + st.shifted.Render(diffLabel(v.Diff))
	}

	row := fmt.Sprintf("%s %s  %s", marker, name, epochText)
	return rowStyle.Width(max(0, width)).Render(row)
}

func (m *model) protocolDetail(v explorer.ProtocolView) string {
	st := m.ui.styles
	delta := explorer.DeltaUntilEnd(v.Window, m.now)

	lines := []string{
		st.muted.Render("Start ") + st.mono.Render(strconv.FormatInt(v.Window.Start, 10)) + "  " + st.faint.Render(formatUnixTimestamp(v.Window.Start, m.loc)),
		st.muted.Render("End   ") + st.mono.Render(strconv.FormatInt(v.Window.End, 10)) + "  " + st.faint.Render(formatUnixTimestamp(v.Window.End, m.loc)),
		st.muted.Render("Ends in ") + st.text.Render(formatDelta(delta)),
		st.faint.Render(fmt.Sprintf("offset %d · reference epoch %d at %d", v.Offset, v.Protocol.ReferenceEpoch, v.Protocol.ReferenceTimestamp)),
	}
	if logging.IsDebugMode() {
		lines = append(lines, st.faint.Render(fmt.Sprintf("dbg base=%d diff=%d logo=%s", v.Base, v.Diff, v.Protocol.Logo)))
	}
	return st.detail.Render(strings.Join(lines, "\n"))
}
