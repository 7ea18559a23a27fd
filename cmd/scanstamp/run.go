package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/gardar/scanstamp/pkg/batch"
	"github.com/gardar/scanstamp/pkg/config"
	"github.com/gardar/scanstamp/pkg/pdfdoc"
	"github.com/gardar/scanstamp/pkg/stamp"
)

// NewRunCmd creates the run command.
func NewRunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run [flags] file.pdf...",
		Short: "Normalize a batch of PDF files",
		Long: `Run processes the given PDF files as one batch.

Output files are named after the configured base counter (100000.pdf,
100001.pdf, ...) and listed in Index.txt next to them. Pages whose
orientation was detected with low confidence are reported at the end so
they can be checked by hand.

A batch that has started always ends with every file written or with the
output directory removed; interrupts are ignored until then.

The tesseract backend is only available in binaries built with -tags ocr.
Other builds default to --oracle none, which leaves page orientation
unchanged.

Examples:
  # Process two files with the settings from ~/.config/scanstamp
  scanstamp run a.pdf b.pdf

  # Only rotate pages, no scaling and no stamps
  scanstamp run --only-rotate scans/*.pdf

  # Write into a specific directory without running OCR
  scanstamp run --oracle none --output-root /tmp/out a.pdf`,
		Args: cobra.MinimumNArgs(1),
		RunE: runRunCmd,
	}

	cmd.Flags().StringP("output-root", "o", "", "Directory run folders are created in (default: PDF-Output on the desktop)")
	cmd.Flags().String("oracle", "", "Orientation backend: tesseract, documentai or none (default "+config.DefaultBackend+")")
	cmd.Flags().Bool("only-rotate", false, "Only rotate pages, skip scaling and stamps")
	cmd.Flags().Bool("allow-duplicates", false, "Queue files given more than once")

	return cmd
}

func runRunCmd(cmd *cobra.Command, args []string) error {
	logger, err := loggerFor(cmd)
	if err != nil {
		return err
	}
	cfg, err := loadConfig(cmd, logger)
	if err != nil {
		return err
	}
	if err := applyRunFlags(cmd, &cfg); err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	engine, err := pdfdoc.NewEngine(cfg.Font, cfg.FontSize, stamp.DefaultLayout.Padding, logger)
	if err != nil {
		return err
	}

	allowDuplicates, err := cmd.Flags().GetBool("allow-duplicates")
	if err != nil {
		return err
	}
	session := batch.NewSession(engine)
	rep, err := session.Add(args, func(string) bool { return allowDuplicates })
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	printAddReport(out, rep)

	reader, err := newReader(ctx, cfg.Oracle, logger)
	if err != nil {
		return err
	}
	defer reader.Close()

	p := &batch.Processor{Config: cfg, Engine: engine, Reader: reader, Logger: logger}
	res, err := p.Run(ctx, session)
	if res != nil {
		printFlags(out, res.LowConfidence)
	}
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "Output: %s\n", res.OutputDir)
	for _, e := range res.Entries {
		fmt.Fprintln(out, e)
	}
	return nil
}

func applyRunFlags(cmd *cobra.Command, cfg *config.Config) error {
	flags := cmd.Flags()
	if flags.Changed("output-root") {
		v, err := flags.GetString("output-root")
		if err != nil {
			return err
		}
		cfg.OutputRoot = v
	}
	if flags.Changed("oracle") {
		v, err := flags.GetString("oracle")
		if err != nil {
			return err
		}
		cfg.Oracle.Backend = v
	}
	if flags.Changed("only-rotate") {
		v, err := flags.GetBool("only-rotate")
		if err != nil {
			return err
		}
		cfg.OnlyRotatePages = v
	}
	return nil
}

func printAddReport(w io.Writer, rep batch.AddReport) {
	for _, d := range rep.Duplicates {
		fmt.Fprintf(w, "Skipped duplicate: %s\n", d)
	}
	if len(rep.Corrupt) == 0 {
		return
	}
	fmt.Fprintln(w, "The following files are corrupt or unreadable and were not added:")
	for _, fe := range rep.Corrupt {
		fmt.Fprintf(w, "  %s: %v\n", fe.File, fe.Err)
	}
}

func printFlags(w io.Writer, flags []batch.Flag) {
	if len(flags) == 0 {
		return
	}
	fmt.Fprintln(w, "Check the rotation of these pages:")
	for _, f := range flags {
		fmt.Fprintf(w, "  file %d (%s) page %d, confidence %.2f\n", f.FileIndex+1, f.File, f.PageNumber, f.Confidence)
	}
}
