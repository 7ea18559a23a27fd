package config

import "fmt"

// Validate checks the configuration and returns the first problem found.
func (c Config) Validate() error {
	if c.ScaleFactor <= 0 || c.ScaleFactor > 1 {
		return ErrInvalidScale
	}
	if c.Font == "" {
		return ErrEmptyFont
	}
	if c.FontSize <= 0 {
		return ErrInvalidFontSize
	}
	if c.MarginTop < 0 || c.MarginBottom < 0 {
		return ErrInvalidMargin
	}
	switch c.Oracle.Backend {
	case BackendTesseract:
		if c.Oracle.DPI <= 0 {
			return ErrInvalidDPI
		}
	case BackendDocumentAI:
		if err := c.Oracle.DocumentAI.Validate(); err != nil {
			return fmt.Errorf("oracle: %w", err)
		}
	case BackendNone:
	default:
		return ErrInvalidBackend
	}
	return nil
}
