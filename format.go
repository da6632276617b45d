package main

import (
	"fmt"
	"strconv"
	"time"
)

const (
	wallClockLayout = "Monday, January 2, 2006 15:04:05"
	timestampLayout = "01/02/2006 15:04:05"
)

// formatUnixTimestamp renders ts in loc followed by the zone's UTC offset in
// hours, e.g. "02/15/2024 00:00:00 (UTC+0)".
func formatUnixTimestamp(ts int64, loc *time.Location) string {
	t := time.Unix(ts, 0).In(loc)
	_, off := t.Zone()
	return fmt.Sprintf("%s (%s)", t.Format(timestampLayout), utcOffsetLabel(off))
}

func utcOffsetLabel(offsetSeconds int) string {
	hours := strconv.FormatFloat(float64(offsetSeconds)/3600, 'f', -1, 64)
	if offsetSeconds >= 0 {
		return "UTC+" + hours
	}
	return "UTC" + hours
}

// diffLabel renders an epoch shift as "(0)", "(+2)" or "(-1)".
func diffLabel(n int64) string {
	switch {
	case n > 0:
		return fmt.Sprintf("(+%d)", n)
	case n < 0:
		return fmt.Sprintf("(%d)", n)
	default:
		return "(0)"
	}
}

func formatDelta(d time.Duration) string {
	sign := ""
	if d < 0 {
		sign = "-"
		d = -d
	}
	d = d.Truncate(time.Second)
	days := d / (24 * time.Hour)
	d -= days * 24 * time.Hour
	if days > 0 {
		return fmt.Sprintf("%s%dd%s", sign, days, d)
	}
	return sign + d.String()
}
