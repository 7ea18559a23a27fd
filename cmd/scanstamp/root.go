package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

// NewRootCmd creates the root command.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "scanstamp",
		Short: "Straighten and stamp scanned PDF documents",
		Long: `scanstamp normalizes batches of scanned PDF documents.

Each page is rotated upright using an orientation oracle (Tesseract or
Google Document AI), its content is scaled down around the page center,
and a two-column header and footer are printed in the freed margins.
Every run writes numbered output files and an Index.txt manifest into a
new timestamped directory, or nothing at all if any file fails.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose logging")
	cmd.PersistentFlags().StringP("config", "c", "", "Path to the configuration file")

	cmd.AddCommand(NewRunCmd())
	cmd.AddCommand(NewDetectCmd())
	cmd.AddCommand(NewInitCmd())

	return cmd
}

// Execute runs the root command.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// setupLogger creates a structured logger based on verbosity setting.
func setupLogger(verbose bool) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})
	return slog.New(handler)
}

// loggerFor reads the verbose flag and installs the logger as default.
func loggerFor(cmd *cobra.Command) (*slog.Logger, error) {
	verbose, err := cmd.Flags().GetBool("verbose")
	if err != nil {
		return nil, err
	}
	logger := setupLogger(verbose)
	slog.SetDefault(logger)
	return logger, nil
}
