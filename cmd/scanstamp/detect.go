package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/gardar/scanstamp/pkg/batch"
	"github.com/gardar/scanstamp/pkg/config"
	"github.com/gardar/scanstamp/pkg/pdfdoc"
)

// NewDetectCmd creates the detect command.
func NewDetectCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "detect file.pdf...",
		Short: "Print the detected orientation of every page",
		Long: `Detect runs the configured orientation oracle and prints the raw
reading for each page without writing any output.`,
		Args: cobra.MinimumNArgs(1),
		RunE: runDetectCmd,
	}
	cmd.Flags().String("oracle", "", "Orientation backend: tesseract, documentai or none (default "+config.DefaultBackend+")")
	return cmd
}

func runDetectCmd(cmd *cobra.Command, args []string) error {
	logger, err := loggerFor(cmd)
	if err != nil {
		return err
	}
	cfg, err := loadConfig(cmd, logger)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("oracle") {
		if cfg.Oracle.Backend, err = cmd.Flags().GetString("oracle"); err != nil {
			return err
		}
	}
	if !batch.ValidExtensions(args) {
		return batch.ErrInvalidExtension
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	reader, err := newReader(ctx, cfg.Oracle, logger)
	if err != nil {
		return err
	}
	defer reader.Close()

	out := cmd.OutOrStdout()
	for _, path := range args {
		raw, err := os.ReadFile(path) //nolint:gosec // paths come from the user
		if err != nil {
			return err
		}
		doc, err := pdfdoc.Open(raw)
		if err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
		readings, err := reader.Readings(ctx, raw, doc.PageCount())
		if err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
		fmt.Fprintln(out, path)
		for _, r := range readings {
			fmt.Fprintf(out, "Page %d rot: %d  %.2f confidence\n", r.PageIndex+1, r.Degrees, r.Confidence)
		}
	}
	return nil
}
