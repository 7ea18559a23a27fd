//go:build ocr

package config

// DefaultBackend is the oracle used when the configuration names none.
const DefaultBackend = BackendTesseract
