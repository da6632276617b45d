// Package epoch maps wall-clock time onto weekly windows and numbers those
// windows relative to a reference point.
//
// Windows start on Thursday 00:00:00 UTC. The Unix epoch itself fell on a
// Thursday, so a window start is always a whole multiple of WeekSeconds.
package epoch

import (
	"errors"
	"fmt"
	"math"
	"time"
)

// WeekSeconds is the length of one epoch window.
const WeekSeconds int64 = 7 * 24 * 60 * 60

// Timestamps are kept within half the int64 range and epoch numbers within a
// quarter of it, so the sum or difference of any two cannot overflow.
const (
	MaxWeeks     = math.MaxInt64 / 2 / WeekSeconds
	MaxTimestamp = MaxWeeks * WeekSeconds
	MinTimestamp = -MaxTimestamp
	MaxEpoch     = math.MaxInt64 / 4
)

var ErrOutOfRange = errors.New("epoch out of range")

// InRange reports whether ts is a valid Boundary input.
func InRange(ts int64) bool {
	return ts >= MinTimestamp && ts <= MaxTimestamp
}

// Window is a half-open interval [Start, End) of Unix seconds.
type Window struct {
	Start int64
	End   int64
}

// Boundary returns the window containing ts. ts must be within
// [MinTimestamp, MaxTimestamp]; outside it the result wraps.
func Boundary(ts int64) Window {
	start := floorDiv(ts, WeekSeconds) * WeekSeconds
	return Window{Start: start, End: start + WeekSeconds}
}

// BoundaryTime is Boundary for a time.Time.
func BoundaryTime(t time.Time) Window {
	return Boundary(t.Unix())
}

func (w Window) Contains(ts int64) bool {
	return ts >= w.Start && ts < w.End
}

// Shift moves the window by n whole weeks. Use CheckedShift for n that is
// not already known to fit.
func (w Window) Shift(n int64) Window {
	return Window{Start: w.Start + n*WeekSeconds, End: w.End + n*WeekSeconds}
}

// CheckedShift is Shift that fails with ErrOutOfRange when the shifted
// window would start outside [MinTimestamp, MaxTimestamp]. w must come from
// Boundary of an in-range timestamp.
func (w Window) CheckedShift(n int64) (Window, error) {
	lo := (MinTimestamp - w.Start) / WeekSeconds
	hi := (MaxTimestamp - w.Start) / WeekSeconds
	if n < lo || n > hi {
		return Window{}, fmt.Errorf("%w: shift of %d weeks from %d", ErrOutOfRange, n, w.Start)
	}
	return w.Shift(n), nil
}

// AddShift returns a+b, or false when the sum overflows.
func AddShift(a, b int64) (int64, bool) {
	s := a + b
	if (b > 0 && s < a) || (b < 0 && s > a) {
		return 0, false
	}
	return s, true
}

func (w Window) StartTime() time.Time { return time.Unix(w.Start, 0).UTC() }
func (w Window) EndTime() time.Time   { return time.Unix(w.End, 0).UTC() }

func (w Window) String() string {
	return fmt.Sprintf("[%s, %s)", w.StartTime().Format(time.RFC3339), w.EndTime().Format(time.RFC3339))
}

// Reference anchors an epoch numbering: Timestamp falls inside epoch Epoch.
type Reference struct {
	Timestamp int64
	Epoch     int64
}

// Number returns the epoch number covering ts.
func Number(ref Reference, ts int64) int64 {
	// Both starts are aligned so the division is exact.
	return ref.Epoch + (Boundary(ts).Start-Boundary(ref.Timestamp).Start)/WeekSeconds
}

func (r Reference) EpochAt(ts int64) int64 {
	return Number(r, ts)
}

// Window returns the window numbered n.
func (r Reference) Window(n int64) Window {
	return Boundary(r.Timestamp).Shift(n - r.Epoch)
}

func floorDiv(a, b int64) int64 {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}
