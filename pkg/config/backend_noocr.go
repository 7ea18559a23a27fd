//go:build !ocr

package config

// DefaultBackend is the oracle used when the configuration names none.
// Tesseract is only compiled in with -tags ocr.
const DefaultBackend = BackendNone
