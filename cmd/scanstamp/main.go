// Package main provides the scanstamp command.
//
// scanstamp straightens scanned PDFs: every page is turned upright based on
// an orientation oracle, its content is shrunk to make room for a header
// and a footer, and the stamp text is printed in those margins. A batch of
// files is processed as one unit into a timestamped output directory.
//
// Usage:
//
//	scanstamp run [flags] file.pdf...
//	scanstamp detect file.pdf...
//	scanstamp init
//
// See --help for all available options.
package main

func main() {
	Execute()
}
