package main

import (
	"fmt"
	"log"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/andareed/epochx/explorer"
	"github.com/andareed/epochx/logging"
	"github.com/andareed/epochx/protocol"
)

// Version is overridden at build time with -ldflags "-X main.Version=...".
var Version = "dev"

type rootFlags struct {
	configPath string
	logFile    string
	theme      string
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var f rootFlags
	cmd := &cobra.Command{
		Use:           "epochx",
		Short:         "Browse weekly epochs of several protocols from the terminal",
		Version:       Version,
		SilenceUsage:  true,
		Args:          cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runTUI(f)
		},
	}
	cmd.PersistentFlags().StringVarP(&f.configPath, "config", "c", "", "protocol config file (.json or .toml); built-in protocols when empty")
	cmd.Flags().StringVar(&f.logFile, "debug", "", "write debug logs to file")
	cmd.Flags().StringVar(&f.theme, "theme", "", "colour theme: dark or light (default: detect)")

	cmd.AddCommand(
		newPrintCmd(&f),
		newValidateCmd(),
		newSchemaCmd(),
		newVersionCmd(),
	)
	return cmd
}

// loadConfig fails fast on an invalid file; an empty path means the built-in
// protocols.
func loadConfig(path string) (*protocol.Config, error) {
	if path == "" {
		return protocol.Default()
	}
	return protocol.Load(path)
}

func runTUI(f rootFlags) error {
	cleanup, err := logging.SetupLogging(f.logFile)
	if err != nil {
		log.Fatalf("Failed to setup logging %v", err)
	}
	defer cleanup()

	logging.Infof("epochx: Started (version %s)", Version)

	theme, ok := parseTheme(f.theme)
	if !ok {
		return fmt.Errorf("invalid argument %q for --theme (want dark or light)", f.theme)
	}

	cfg, err := loadConfig(f.configPath)
	if err != nil {
		logging.Errorf("config: %v", err)
		return err
	}
	ex, err := explorer.FromConfig(cfg)
	if err != nil {
		return err
	}

	m := newModel(ex, modelOptions{Theme: theme, ConfigName: f.configPath})
	if _, err := tea.NewProgram(m, tea.WithAltScreen()).Run(); err != nil {
		logging.Errorf("Tea program error: %v", err)
		return err
	}
	return nil
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintln(cmd.OutOrStdout(), "Version:", Version)
		},
	}
}
