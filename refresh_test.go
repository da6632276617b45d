package main

import (
	"context"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func waitMsg(t *testing.T, ch <-chan tea.Msg) tea.Msg {
	t.Helper()
	select {
	case msg := <-ch:
		return msg
	case <-time.After(5 * time.Second):
		t.Fatal("refresher did not return")
		return nil
	}
}

func TestRefresher_TicksOnWholeSecond(t *testing.T) {
	start := testNow.Add(250 * time.Millisecond)
	fc := clockwork.NewFakeClockAt(start)
	r := newRefresher(fc)

	got := make(chan tea.Msg, 1)
	go func() { got <- r.next()() }()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	require.NoError(t, fc.BlockUntilContext(ctx, 1))

	fc.Advance(750 * time.Millisecond)
	msg := waitMsg(t, got)
	tick, ok := msg.(tickMsg)
	require.True(t, ok, "got %T", msg)
	assert.Equal(t, testNow.Add(time.Second).Unix(), tick.at.Unix())
}

func TestRefresher_StopCancelsPendingTick(t *testing.T) {
	fc := clockwork.NewFakeClockAt(testNow)
	r := newRefresher(fc)

	got := make(chan tea.Msg, 1)
	go func() { got <- r.next()() }()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	require.NoError(t, fc.BlockUntilContext(ctx, 1))

	r.stop()
	assert.Nil(t, waitMsg(t, got))
	assert.True(t, r.stopped())

	// stop is idempotent.
	r.stop()
	assert.True(t, r.stopped())
}
