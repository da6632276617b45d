package main

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strconv"
	"time"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/andareed/epochx/epoch"
	"github.com/andareed/epochx/explorer"
	"github.com/andareed/epochx/logging"
	"github.com/andareed/epochx/protocol"
)

type printFlags struct {
	at           int64
	globalOffset int64
	offsets      map[string]int64
	format       string
	verbose      bool
}

func newPrintCmd(root *rootFlags) *cobra.Command {
	var f printFlags
	cmd := &cobra.Command{
		Use:   "print",
		Short: "Print every protocol's epoch and window at one instant",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			logging.Configure(cmd.ErrOrStderr(), f.verbose)
			cfg, err := loadConfig(root.configPath)
			if err != nil {
				return err
			}
			at := time.Now()
			if cmd.Flags().Changed("at") {
				at = time.Unix(f.at, 0)
			}
			return runPrint(cmd.OutOrStdout(), cfg, at, f)
		},
	}
	cmd.Flags().Int64Var(&f.at, "at", 0, "unix timestamp to evaluate (default: now)")
	cmd.Flags().Int64VarP(&f.globalOffset, "global-offset", "g", 0, "shift every protocol by this many epochs")
	cmd.Flags().StringToInt64VarP(&f.offsets, "offset", "o", nil, "per-protocol shift, id=n (repeatable)")
	cmd.Flags().StringVarP(&f.format, "format", "f", "table", "output format: table or json")
	cmd.Flags().BoolVarP(&f.verbose, "verbose", "v", false, "debug logging to stderr")
	return cmd
}

type printRow struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Epoch      int64  `json:"epoch"`
	Diff       int64  `json:"diff"`
	Start      int64  `json:"start"`
	End        int64  `json:"end"`
	EndsInSecs int64  `json:"endsInSeconds"`
}

type printOutput struct {
	Timestamp int64      `json:"timestamp"`
	Epoch     int64      `json:"epoch"`
	Start     int64      `json:"start"`
	End       int64      `json:"end"`
	Protocols []printRow `json:"protocols"`
}

func runPrint(w io.Writer, cfg *protocol.Config, at time.Time, f printFlags) error {
	if !epoch.InRange(at.Unix()) {
		return fmt.Errorf("invalid argument %d for --at: %w", at.Unix(), epoch.ErrOutOfRange)
	}
	ex, err := explorer.FromConfig(cfg)
	if err != nil {
		return err
	}
	if err := ex.SetGlobal(f.globalOffset, at); err != nil {
		return fmt.Errorf("invalid argument %d for --global-offset: %w", f.globalOffset, err)
	}

	ids := make([]string, 0, len(f.offsets))
	for id := range f.offsets {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	for _, id := range ids {
		if err := ex.ShiftProtocol(id, f.offsets[id], at); err != nil {
			return fmt.Errorf("invalid argument %s=%d for --offset: %w", id, f.offsets[id], err)
		}
	}
	logging.Debugf("print at %d with offsets %+v", at.Unix(), ex.Offsets())

	c := ex.Clock(at)
	out := printOutput{Timestamp: c.Timestamp, Epoch: c.Epoch, Start: c.Window.Start, End: c.Window.End}
	for _, v := range ex.Protocols(at) {
		out.Protocols = append(out.Protocols, printRow{
			ID:         v.Protocol.ID,
			Name:       v.Protocol.Name,
			Epoch:      v.Epoch,
			Diff:       v.Diff,
			Start:      v.Window.Start,
			End:        v.Window.End,
			EndsInSecs: int64(explorer.DeltaUntilEnd(v.Window, at) / time.Second),
		})
	}

	switch f.format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(out)
	case "table", "":
		printTable(w, out)
		return nil
	default:
		return fmt.Errorf("invalid argument %q for --format (want table or json)", f.format)
	}
}

func printTable(w io.Writer, out printOutput) {
	fmt.Fprintf(w, "Timestamp: %d (%s)\n", out.Timestamp, formatUnixTimestamp(out.Timestamp, time.UTC))
	fmt.Fprintf(w, "Epoch:     %d [%d, %d)\n", out.Epoch, out.Start, out.End)

	table := tablewriter.NewWriter(w)
	table.SetAutoWrapText(false)
	table.SetHeaderAlignment(tablewriter.ALIGN_CENTER)
	table.SetAutoFormatHeaders(false)
	table.SetBorder(true)
	table.SetHeader([]string{"Protocol", "Name", "Epoch", "Shift", "Start", "End", "Ends In"})
	for _, r := range out.Protocols {
		table.Append([]string{
			r.ID,
			r.Name,
			strconv.FormatInt(r.Epoch, 10),
			diffLabel(r.Diff),
			formatUnixTimestamp(r.Start, time.UTC),
			formatUnixTimestamp(r.End, time.UTC),
			formatDelta(time.Duration(r.EndsInSecs) * time.Second),
		})
	}
	table.Render()
}

func newValidateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate <config-file>",
		Short: "Validate a protocol config file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := protocol.Load(args[0])
			if err != nil {
				return err
			}
			a := cfg.ClockAnchor()
			fmt.Fprintf(cmd.OutOrStdout(), "%s: ok, %d protocols, anchor epoch %d at %d\n",
				args[0], len(cfg.Protocols), a.ReferenceEpoch, a.ReferenceTimestamp)
			return nil
		},
	}
}

func newSchemaCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "schema",
		Short: "Print the JSON Schema protocol config files are validated against",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return writeSchema(cmd.OutOrStdout())
		},
	}
}

func writeSchema(w io.Writer) error {
	b, err := json.MarshalIndent(protocol.Schema(), "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, string(b))
	return err
}
