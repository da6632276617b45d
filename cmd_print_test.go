package main

import (
	"bytes"
	"encoding/json"
	"math"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andareed/epochx/epoch"
	"github.com/andareed/epochx/protocol"
)

func defaultConfig(t *testing.T) *protocol.Config {
	t.Helper()
	cfg, err := protocol.Default()
	require.NoError(t, err)
	return cfg
}

func TestRunPrint_JSON(t *testing.T) {
	var buf bytes.Buffer
	err := runPrint(&buf, defaultConfig(t), testNow, printFlags{
		format:       "json",
		globalOffset: 1,
		offsets:      map[string]int64{"beta": 2, "gamma": -3},
	})
	require.NoError(t, err)

	var out printOutput
	require.NoError(t, json.Unmarshal(buf.Bytes(), &out))
	assert.Equal(t, testNow.Unix(), out.Timestamp)
	assert.Equal(t, int64(2), out.Epoch)
	assert.Equal(t, int64(1708560000), out.Start)
	assert.Equal(t, int64(1709164800), out.End)

	require.Len(t, out.Protocols, 3)
	got := map[string]printRow{}
	for _, r := range out.Protocols {
		got[r.ID] = r
	}
	assert.Equal(t, int64(2), got["alpha"].Epoch)
	assert.Equal(t, int64(1), got["alpha"].Diff)
	assert.Equal(t, int64(4), got["beta"].Epoch)
	assert.Equal(t, int64(3), got["beta"].Diff)
	assert.Equal(t, int64(-1), got["gamma"].Epoch)
	assert.Equal(t, int64(-2), got["gamma"].Diff)

	// gamma sits two weeks before the current one.
	assert.Equal(t, int64(1707955200-2*604800), got["gamma"].Start)
	assert.Equal(t, got["gamma"].End-testNow.Unix(), got["gamma"].EndsInSecs)
}

func TestRunPrint_Table(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, runPrint(&buf, defaultConfig(t), testNow, printFlags{format: "table"}))

	out := buf.String()
	assert.Contains(t, out, "Timestamp: 1707998400 (02/15/2024 12:00:00 (UTC+0))")
	assert.Contains(t, out, "Epoch:     1 [1707955200, 1708560000)")
	assert.Contains(t, out, "Protocol Alpha")
	assert.Contains(t, out, "Protocol Beta")
	assert.Contains(t, out, "Protocol Gamma")
	assert.Contains(t, out, "6d12h0m0s")
}

func TestRunPrint_Errors(t *testing.T) {
	var buf bytes.Buffer
	err := runPrint(&buf, defaultConfig(t), testNow, printFlags{
		format:  "json",
		offsets: map[string]int64{"delta": 1},
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, protocol.ErrUnknownProtocol)
	assert.Contains(t, err.Error(), "--offset")

	err = runPrint(&buf, defaultConfig(t), testNow, printFlags{format: "yaml"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--format")
}

func TestRunPrint_LargeGlobalOffset(t *testing.T) {
	var buf bytes.Buffer
	err := runPrint(&buf, defaultConfig(t), testNow, printFlags{
		format:       "json",
		globalOffset: 1 << 40,
		offsets:      map[string]int64{"alpha": -(1 << 41)},
	})
	require.NoError(t, err)

	var out printOutput
	require.NoError(t, json.Unmarshal(buf.Bytes(), &out))
	assert.Equal(t, int64(1+1<<40), out.Epoch)
	assert.Equal(t, int64(1707955200)+(1<<40)*epoch.WeekSeconds, out.Start)
	assert.Equal(t, int64(1-1<<40), out.Protocols[0].Epoch)
	assert.Equal(t, int64(1+1<<40), out.Protocols[1].Epoch)
}

func TestRunPrint_OutOfRange(t *testing.T) {
	tests := []struct {
		name string
		at   time.Time
		f    printFlags
		flag string
	}{
		{"global offset", testNow, printFlags{globalOffset: math.MaxInt64}, "--global-offset"},
		{"protocol offset", testNow, printFlags{offsets: map[string]int64{"beta": math.MinInt64}}, "--offset"},
		{"combined", testNow, printFlags{globalOffset: epoch.MaxWeeks/2 + 1, offsets: map[string]int64{"beta": epoch.MaxWeeks / 2}}, "--offset"},
		{"timestamp", time.Unix(math.MaxInt64, 0), printFlags{}, "--at"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			err := runPrint(&buf, defaultConfig(t), tt.at, tt.f)
			require.ErrorIs(t, err, epoch.ErrOutOfRange)
			assert.Contains(t, err.Error(), tt.flag)
			assert.Zero(t, buf.Len())
		})
	}
}

func TestWriteSchema(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, writeSchema(&buf))

	var doc map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &doc))
	assert.Contains(t, doc, "properties")
	assert.Contains(t, buf.String(), "referenceTimestamp")
}

func TestValidateCommand(t *testing.T) {
	path := filepath.Join(t.TempDir(), "protocols.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
[[protocols]]
id = "solo"
name = "Solo"
color = "#112233"
logo = "solo.svg"
referenceTimestamp = 1707955200
referenceEpoch = 10
`), 0o600))

	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs([]string{"validate", path})
	require.NoError(t, cmd.Execute())
	assert.Contains(t, out.String(), "ok, 1 protocols, anchor epoch 0 at 1707350400")

	bad := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(bad, []byte(`{"protocols": []}`), 0o600))
	cmd = newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs([]string{"validate", bad})
	err := cmd.Execute()
	require.Error(t, err)
	assert.ErrorIs(t, err, protocol.ErrInvalidConfig)
}

func TestPrintCommand_Flags(t *testing.T) {
	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"print", "--at", "1707998400", "-g", "-1", "-o", "alpha=3", "-f", "json"})
	require.NoError(t, cmd.Execute())

	var got printOutput
	require.NoError(t, json.Unmarshal(out.Bytes(), &got))
	assert.Equal(t, int64(0), got.Epoch)
	require.Len(t, got.Protocols, 3)
	assert.Equal(t, "alpha", got.Protocols[0].ID)
	assert.Equal(t, int64(3), got.Protocols[0].Epoch)
	assert.Equal(t, int64(0), got.Protocols[1].Epoch)
}
