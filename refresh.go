package main

import (
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/jonboulle/clockwork"
)

const refreshInterval = time.Second

type tickMsg struct{ at time.Time }

// refresher schedules the once-a-second wall clock tick. Each tick schedules
// the next one; stop cancels the pending tick and every later one.
type refresher struct {
	clock clockwork.Clock
	done  chan struct{}
	once  sync.Once
}

func newRefresher(clock clockwork.Clock) *refresher {
	return &refresher{clock: clock, done: make(chan struct{})}
}

// next fires on the next whole second so the displayed seconds change in
// step with the wall clock.
func (r *refresher) next() tea.Cmd {
	return func() tea.Msg {
		now := r.clock.Now()
		wait := refreshInterval - time.Duration(now.Nanosecond())
		t := r.clock.NewTimer(wait)
		defer t.Stop()
		select {
		case at := <-t.Chan():
			return tickMsg{at: at}
		case <-r.done:
			return nil
		}
	}
}

func (r *refresher) stop() {
	r.once.Do(func() { close(r.done) })
}

func (r *refresher) stopped() bool {
	select {
	case <-r.done:
		return true
	default:
		return false
	}
}
