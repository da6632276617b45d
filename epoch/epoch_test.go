package epoch

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func unix(t *testing.T, s string) int64 {
	t.Helper()
	ts, err := time.Parse(time.RFC3339, s)
	require.NoError(t, err)
	return ts.Unix()
}

func TestBoundary_StartsOnThursdayMidnightUTC(t *testing.T) {
	for _, ts := range []int64{
		0, 1, -1, WeekSeconds - 1, WeekSeconds, -WeekSeconds, -WeekSeconds - 1,
		1707350400, 1707350399, 1708000000, 1760000000, -2208988800,
	} {
		w := Boundary(ts)
		assert.LessOrEqual(t, w.Start, ts, "ts=%d", ts)
		assert.Less(t, ts, w.End, "ts=%d", ts)
		assert.Equal(t, w.Start+WeekSeconds, w.End)

		st := w.StartTime()
		assert.Equal(t, time.Thursday, st.Weekday(), "ts=%d", ts)
		assert.Zero(t, st.Hour())
		assert.Zero(t, st.Minute())
		assert.Zero(t, st.Second())
	}
}

func TestBoundary_Idempotent(t *testing.T) {
	for ts := int64(-3 * WeekSeconds); ts < 3*WeekSeconds; ts += 3541 {
		w := Boundary(ts)
		assert.Equal(t, w, Boundary(w.Start), "ts=%d", ts)
	}
}

func TestBoundary_DayEdges(t *testing.T) {
	// Wednesday 23:59:59 belongs to the previous window.
	wed := unix(t, "2024-02-14T23:59:59Z")
	thu := unix(t, "2024-02-15T00:00:00Z")

	assert.Equal(t, unix(t, "2024-02-08T00:00:00Z"), Boundary(wed).Start)
	assert.Equal(t, thu, Boundary(thu).Start)

	sun := unix(t, "2024-02-18T08:30:00Z")
	assert.Equal(t, thu, Boundary(sun).Start)
}

func TestBoundaryTime_IgnoresLocation(t *testing.T) {
	loc := time.FixedZone("UTC+10", 10*3600)
	// Thursday 05:00 local is still Wednesday in UTC.
	local := time.Date(2024, 2, 15, 5, 0, 0, 0, loc)
	assert.Equal(t, unix(t, "2024-02-08T00:00:00Z"), BoundaryTime(local).Start)
}

func TestNumber_ReferenceIdentities(t *testing.T) {
	refs := []Reference{
		{Timestamp: 1707350400, Epoch: 0},
		{Timestamp: 1707955200, Epoch: 1},
		{Timestamp: 1708560000 + 4000, Epoch: 42},
		{Timestamp: -90000, Epoch: -7},
	}
	for _, ref := range refs {
		r := ref.Timestamp
		assert.Equal(t, ref.Epoch, Number(ref, r))
		assert.Equal(t, ref.Epoch+1, Number(ref, r+WeekSeconds))
		assert.Equal(t, ref.Epoch-1, Number(ref, r-WeekSeconds))
		assert.Equal(t, ref.Epoch+520, Number(ref, r+520*WeekSeconds))
		assert.Equal(t, ref.Epoch-520, Number(ref, r-520*WeekSeconds))
	}
}

func TestNumber_Example(t *testing.T) {
	ref := Reference{Timestamp: unix(t, "2024-02-08T00:00:00Z"), Epoch: 0}
	q := unix(t, "2024-02-15T12:00:00Z")

	assert.Equal(t, int64(1), ref.EpochAt(q))

	w := Boundary(q)
	assert.Equal(t, unix(t, "2024-02-15T00:00:00Z"), w.Start)
	assert.Equal(t, unix(t, "2024-02-22T00:00:00Z"), w.End)
	assert.Equal(t, w, ref.Window(1))
	assert.Equal(t, "[2024-02-15T00:00:00Z, 2024-02-22T00:00:00Z)", w.String())
}

func TestReference_WindowInvertsNumber(t *testing.T) {
	ref := Reference{Timestamp: 1707955200 + 12345, Epoch: 1}
	for n := int64(-10); n <= 10; n++ {
		w := ref.Window(n)
		assert.Equal(t, n, ref.EpochAt(w.Start))
		assert.Equal(t, n, ref.EpochAt(w.End-1))
		assert.True(t, w.Contains(w.Start))
		assert.False(t, w.Contains(w.End))
	}
}

func TestWindow_Shift(t *testing.T) {
	w := Boundary(1707350400)
	assert.Equal(t, w, w.Shift(3).Shift(-3))
	assert.Equal(t, w.Start+2*WeekSeconds, w.Shift(2).Start)
}

func TestBoundary_RangeEdges(t *testing.T) {
	for _, ts := range []int64{MinTimestamp, MinTimestamp + 1, MaxTimestamp - 1, MaxTimestamp} {
		w := Boundary(ts)
		assert.True(t, w.Contains(ts), "ts=%d window=%+v", ts, w)
		assert.Zero(t, w.Start%WeekSeconds)
	}
	assert.True(t, InRange(0))
	assert.False(t, InRange(MaxTimestamp+1))
	assert.False(t, InRange(MinTimestamp-1))
}

func TestWindow_CheckedShift(t *testing.T) {
	w := Boundary(unix(t, "2024-02-15T12:00:00Z"))

	got, err := w.CheckedShift(1 << 40)
	require.NoError(t, err)
	assert.Equal(t, w.Shift(1<<40), got)
	ref := Reference{Timestamp: w.Start, Epoch: 0}
	assert.Equal(t, int64(1<<40), ref.EpochAt(got.Start))

	for _, n := range []int64{1 << 50, -(1 << 50), MaxWeeks + 1, -MaxWeeks - 10000} {
		_, err := w.CheckedShift(n)
		assert.ErrorIs(t, err, ErrOutOfRange, "n=%d", n)
	}

	top := Boundary(MaxTimestamp)
	_, err = top.CheckedShift(1)
	assert.ErrorIs(t, err, ErrOutOfRange)
	_, err = top.CheckedShift(-2 * MaxWeeks)
	assert.NoError(t, err)
}

func TestAddShift(t *testing.T) {
	s, ok := AddShift(3, -5)
	assert.True(t, ok)
	assert.Equal(t, int64(-2), s)

	_, ok = AddShift(MaxTimestamp*2, MaxTimestamp)
	assert.False(t, ok)
	_, ok = AddShift(-MaxTimestamp*2, -MaxTimestamp)
	assert.False(t, ok)
}
