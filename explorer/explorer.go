// Package explorer combines the protocol registry, the offset store and the
// current time into the values the UI displays.
//
// The shared clock shows anchor epoch + global offset. A protocol view shows
// that protocol's epoch + global offset + its own offset. Protocol offsets
// never leak into the shared clock.
package explorer

import (
	"fmt"
	"time"

	"github.com/andareed/epochx/epoch"
	"github.com/andareed/epochx/offsets"
	"github.com/andareed/epochx/protocol"
)

// ClockView is the shared clock at one instant.
type ClockView struct {
	Timestamp int64
	Epoch     int64
	Window    epoch.Window
	// Offset is the global offset in weeks.
	Offset int64
}

// ProtocolView is one protocol's displayed epoch at one instant.
type ProtocolView struct {
	Protocol protocol.Protocol
	// Base is the unshifted epoch covering the current time.
	Base   int64
	Epoch  int64
	Window epoch.Window
	// Offset is the protocol's own offset, Diff the total shift applied.
	Offset int64
	Diff   int64
}

type Explorer struct {
	registry *protocol.Registry
	anchor   epoch.Reference
	offsets  *offsets.Store
}

func New(registry *protocol.Registry, anchor epoch.Reference) *Explorer {
	return &Explorer{
		registry: registry,
		anchor:   anchor,
		offsets:  offsets.New(registry.IDs()...),
	}
}

// FromConfig builds an Explorer from a loaded configuration.
func FromConfig(cfg *protocol.Config) (*Explorer, error) {
	reg, err := cfg.Registry()
	if err != nil {
		return nil, err
	}
	return New(reg, cfg.ClockAnchor().Reference()), nil
}

func (e *Explorer) Registry() *protocol.Registry { return e.registry }
func (e *Explorer) Offsets() offsets.State      { return e.offsets.Snapshot() }

func (e *Explorer) Clock(now time.Time) ClockView {
	ts := now.Unix()
	g := e.offsets.Global()
	return ClockView{
		Timestamp: ts,
		Epoch:     e.anchor.EpochAt(ts) + g,
		Window:    epoch.Boundary(ts).Shift(g),
		Offset:    g,
	}
}

// Protocol returns the view for id. An unknown id yields a zero view and an
// error wrapping protocol.ErrUnknownProtocol.
func (e *Explorer) Protocol(id string, now time.Time) (ProtocolView, error) {
	p, err := e.registry.Lookup(id)
	if err != nil {
		return ProtocolView{}, err
	}
	return e.view(p, now.Unix()), nil
}

// Protocols returns every view in registry order.
func (e *Explorer) Protocols(now time.Time) []ProtocolView {
	ts := now.Unix()
	all := e.registry.All()
	views := make([]ProtocolView, len(all))
	for i, p := range all {
		views[i] = e.view(p, ts)
	}
	return views
}

func (e *Explorer) view(p protocol.Protocol, ts int64) ProtocolView {
	base := p.Reference().EpochAt(ts)
	po := e.offsets.Protocol(p.ID)
	diff := e.offsets.Global() + po
	return ProtocolView{
		Protocol: p,
		Base:     base,
		Epoch:    base + diff,
		Window:   epoch.Boundary(ts).Shift(diff),
		Offset:   po,
		Diff:     diff,
	}
}

// Mutations that move a window are checked at now: when the clock or any
// protocol window would leave the representable range the change is undone
// and an error wrapping epoch.ErrOutOfRange is returned.

func (e *Explorer) IncrementGlobal(now time.Time) error {
	return e.shiftGlobal(1, now)
}

func (e *Explorer) DecrementGlobal(now time.Time) error {
	return e.shiftGlobal(-1, now)
}

// SetGlobal replaces the global offset, keeping protocol offsets.
func (e *Explorer) SetGlobal(n int64, now time.Time) error {
	return e.apply(now, func() error {
		e.offsets.SetGlobal(n)
		return nil
	})
}

// ResetGlobal also clears every protocol offset.
func (e *Explorer) ResetGlobal() { e.offsets.ResetGlobal() }

func (e *Explorer) IncrementProtocol(id string, now time.Time) error {
	return e.ShiftProtocol(id, 1, now)
}

func (e *Explorer) DecrementProtocol(id string, now time.Time) error {
	return e.ShiftProtocol(id, -1, now)
}

// ShiftProtocol adds n to id's own offset.
func (e *Explorer) ShiftProtocol(id string, n int64, now time.Time) error {
	return e.apply(now, func() error {
		p, ok := epoch.AddShift(e.offsets.Protocol(id), n)
		if !ok {
			return fmt.Errorf("%w: protocol %q offset", epoch.ErrOutOfRange, id)
		}
		return e.offsets.SetProtocol(id, p)
	})
}

func (e *Explorer) ResetProtocol(id string) error { return e.offsets.ResetProtocol(id) }

// SetProtocolEpoch shifts id so that its displayed epoch at now is target,
// whatever the global offset.
func (e *Explorer) SetProtocolEpoch(id string, target int64, now time.Time) error {
	p, err := e.registry.Lookup(id)
	if err != nil {
		return err
	}
	if target > epoch.MaxEpoch || target < -epoch.MaxEpoch {
		return fmt.Errorf("%w: epoch %d", epoch.ErrOutOfRange, target)
	}
	return e.apply(now, func() error {
		return e.offsets.SetProtocolTarget(id, target, p.Reference().EpochAt(now.Unix()))
	})
}

func (e *Explorer) shiftGlobal(d int64, now time.Time) error {
	return e.apply(now, func() error {
		g, ok := epoch.AddShift(e.offsets.Global(), d)
		if !ok {
			return fmt.Errorf("%w: global offset", epoch.ErrOutOfRange)
		}
		e.offsets.SetGlobal(g)
		return nil
	})
}

func (e *Explorer) apply(now time.Time, op func() error) error {
	saved := e.offsets.Snapshot()
	if err := op(); err != nil {
		e.offsets.Restore(saved)
		return err
	}
	if err := e.check(now.Unix()); err != nil {
		e.offsets.Restore(saved)
		return err
	}
	return nil
}

// check verifies that every window the current offsets produce at ts starts
// within [epoch.MinTimestamp, epoch.MaxTimestamp].
func (e *Explorer) check(ts int64) error {
	if !epoch.InRange(ts) {
		return fmt.Errorf("%w: timestamp %d", epoch.ErrOutOfRange, ts)
	}
	w := epoch.Boundary(ts)
	st := e.offsets.Snapshot()
	if _, err := w.CheckedShift(st.Global); err != nil {
		return err
	}
	for id, p := range st.Protocols {
		d, ok := epoch.AddShift(st.Global, p)
		if !ok {
			return fmt.Errorf("%w: protocol %q offset", epoch.ErrOutOfRange, id)
		}
		if _, err := w.CheckedShift(d); err != nil {
			return fmt.Errorf("protocol %q: %w", id, err)
		}
	}
	return nil
}

// DeltaUntilEnd is the time from now to the end of w. Negative when w is
// already over.
func DeltaUntilEnd(w epoch.Window, now time.Time) time.Duration {
	return time.Duration(w.End-now.Unix()) * time.Second
}
