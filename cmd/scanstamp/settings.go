package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/gardar/scanstamp/pkg/config"
	"github.com/gardar/scanstamp/pkg/gdocai"
	"github.com/gardar/scanstamp/pkg/orient"
)

// loadConfig finds and loads the configuration. Without a file the
// defaults are used.
func loadConfig(cmd *cobra.Command, logger *slog.Logger) (config.Config, error) {
	explicit, err := cmd.Flags().GetString("config")
	if err != nil {
		return config.Config{}, err
	}
	path := config.FindConfigFile(explicit)
	if path == "" {
		if explicit != "" {
			return config.Config{}, fmt.Errorf("%w: %s", config.ErrConfigNotFound, explicit)
		}
		logger.Debug("no configuration file, using defaults")
		return config.Default(), nil
	}
	cfg, err := config.Load(path)
	if err != nil {
		return config.Config{}, fmt.Errorf("loading %s: %w", path, err)
	}
	logger.Debug("configuration loaded", "path", path)
	return cfg, nil
}

// newReader builds the orientation reader for the configured backend.
// The caller closes it.
func newReader(ctx context.Context, cfg config.OracleConfig, logger *slog.Logger) (orient.Reader, error) {
	switch cfg.Backend {
	case config.BackendTesseract:
		gs := orient.Ghostscript{Path: cfg.Ghostscript}
		if !gs.Available() {
			return nil, errors.New("ghostscript not found: install gs or set oracle.ghostscript")
		}
		oracle, err := orient.NewTesseract(cfg.Language, cfg.TessdataPrefix)
		if err != nil {
			return nil, err
		}
		return &orient.RasterReader{Rasterizer: gs, Oracle: oracle, DPI: cfg.DPI, Logger: logger}, nil
	case config.BackendDocumentAI:
		client, err := gdocai.NewClient(ctx, cfg.DocumentAI)
		if err != nil {
			return nil, err
		}
		return &orient.DocumentAI{Processor: client, Logger: logger, DumpResponse: cfg.DumpResponses}, nil
	case config.BackendNone:
		return orient.Fixed{Confidence: 10}, nil
	}
	return nil, fmt.Errorf("%w: %q", config.ErrInvalidBackend, cfg.Backend)
}
