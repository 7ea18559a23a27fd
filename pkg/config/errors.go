package config

import "errors"

// Validation errors returned by Config.Validate.
var (
	// ErrInvalidScale is returned when the content scale is not in (0, 1].
	ErrInvalidScale = errors.New("invalid scale_factor: must be greater than 0 and at most 1")

	// ErrInvalidFontSize is returned when the font size is not positive.
	ErrInvalidFontSize = errors.New("invalid font_size: must be positive")

	// ErrEmptyFont is returned when no font name is configured.
	ErrEmptyFont = errors.New("invalid font: must not be empty")

	// ErrInvalidMargin is returned for negative margins.
	ErrInvalidMargin = errors.New("invalid margin: must be non-negative")

	// ErrInvalidBackend is returned for an unknown oracle backend.
	ErrInvalidBackend = errors.New("invalid oracle backend: must be tesseract, documentai or none")

	// ErrInvalidDPI is returned when the raster resolution is not positive.
	ErrInvalidDPI = errors.New("invalid oracle dpi: must be positive")

	// ErrConfigNotFound is returned when an explicitly named config file
	// does not exist.
	ErrConfigNotFound = errors.New("configuration file not found")

	// ErrDesktopUnavailable is returned when no output root is configured
	// and the desktop directory cannot be determined.
	ErrDesktopUnavailable = errors.New("desktop directory unavailable")
)
