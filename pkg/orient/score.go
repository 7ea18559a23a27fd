package orient

import (
	"sort"
	"unicode"

	"github.com/gardar/scanstamp/pkg/hocr"
)

// candidates are the turns an oracle tries, in preference order for ties.
var candidates = []int{0, 90, 270, 180}

// Speckles recognized as one or two characters, or as a word only a few
// pixels across, score high on sideways pages.
const (
	minWordRunes  = 3
	minWordPixels = 8
)

// ScoreWords is the mean confidence of the words that look like real words.
func ScoreWords(words []hocr.Word) float64 {
	var sum float64
	var n int
	for _, w := range words {
		if countAlnum(w.Text) < minWordRunes || speckle(w.BBox) {
			continue
		}
		sum += w.Confidence
		n++
	}
	if n == 0 {
		return 0
	}
	return sum / float64(n)
}

// speckle reports whether a word box is too small to hold real text at the
// resolution pages are rendered at. Words without a box are kept.
func speckle(b hocr.BoundingBox) bool {
	if b == (hocr.BoundingBox{}) {
		return false
	}
	return b.Width() < minWordPixels || b.Height() < minWordPixels
}

func countAlnum(s string) int {
	n := 0
	for _, r := range s {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			n++
		}
	}
	return n
}

// Pick chooses the best-scoring turn. Confidence is the lead over the
// runner-up in tenths of a score point, so word confidences (0..100) give
// a confidence in 0..10.
func Pick(scores map[int]float64) (degrees int, confidence float64) {
	type scored struct {
		deg   int
		score float64
		rank  int
	}
	var all []scored
	for rank, deg := range candidates {
		if s, ok := scores[deg]; ok {
			all = append(all, scored{deg, s, rank})
		}
	}
	if len(all) == 0 {
		return 0, 0
	}
	sort.SliceStable(all, func(i, j int) bool {
		if all[i].score != all[j].score {
			return all[i].score > all[j].score
		}
		return all[i].rank < all[j].rank
	})
	if len(all) == 1 {
		return all[0].deg, all[0].score / 10
	}
	return all[0].deg, (all[0].score - all[1].score) / 10
}
