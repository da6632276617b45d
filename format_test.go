package main

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFormatUnixTimestamp(t *testing.T) {
	assert.Equal(t, "02/15/2024 00:00:00 (UTC+0)", formatUnixTimestamp(1707955200, time.UTC))

	ist := time.FixedZone("IST", 5*3600+30*60)
	assert.Equal(t, "02/15/2024 05:30:00 (UTC+5.5)", formatUnixTimestamp(1707955200, ist))

	pst := time.FixedZone("PST", -8*3600)
	assert.Equal(t, "02/14/2024 16:00:00 (UTC-8)", formatUnixTimestamp(1707955200, pst))
}

func TestDiffLabel(t *testing.T) {
	assert.Equal(t, "(0)", diffLabel(0))
	assert.Equal(t, "(+2)", diffLabel(2))
	assert.Equal(t, "(-1)", diffLabel(-1))
}

func TestFormatDelta(t *testing.T) {
	tests := []struct {
		in   time.Duration
		want string
	}{
		{6*24*time.Hour + 12*time.Hour, "6d12h0m0s"},
		{90 * time.Second, "1m30s"},
		{1500 * time.Millisecond, "1s"},
		{0, "0s"},
		{-25 * time.Hour, "-1d1h0m0s"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, formatDelta(tt.in), "formatDelta(%s)", tt.in)
	}
}
