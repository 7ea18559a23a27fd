// Package gdocai talks to Google Document AI.
//
// It is used as an orientation engine: Document AI's OCR processor reports a
// layout orientation and a confidence for every page it reads, which is
// enough to decide how a scanned page has to be turned.
//
// Usage Requirements:
//
// - Google Cloud project with Document AI API enabled
// - Document AI processor configured for OCR
// - Authentication via GOOGLE_APPLICATION_CREDENTIALS environment variable
package gdocai
