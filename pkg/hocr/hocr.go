// Package hocr reads hOCR, the HTML-based format OCR engines such as
// Tesseract use to report recognized text with positions and per-word
// confidences.
//
// The object model is deliberately flat: a document has pages, a page has
// lines and a line has words. Areas and paragraphs are walked through but
// not kept, since only line and word geometry matter to callers.
//
// Main Functions:
//
// - ParseHOCR: parses hOCR HTML into the object model
// - Words: flattens a page into its words in reading order
// - AllWords: the words of every page
package hocr
