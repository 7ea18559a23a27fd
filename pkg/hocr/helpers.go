package hocr

// Words returns every word on the page in reading order.
func Words(page Page) []Word {
	var words []Word
	for _, line := range page.Lines {
		words = append(words, line.Words...)
	}
	return words
}

// AllWords returns the words of every page.
func AllWords(doc HOCR) []Word {
	var words []Word
	for _, p := range doc.Pages {
		words = append(words, Words(p)...)
	}
	return words
}
