package batch

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
)

// ManifestName is the file written next to the outputs on commit.
const ManifestName = "Index.txt"

const manifestHeader = "---- Index of processed files ----"

// Entry maps an output file to the input it was made from.
type Entry struct {
	Output   string
	Original string
}

func (e Entry) String() string {
	return e.Output + " - " + e.Original
}

// OutputName is the file name of the n-th output.
func OutputName(n int) string {
	return strconv.Itoa(n) + ".pdf"
}

// WriteManifest writes Index.txt into dir.
func WriteManifest(dir string, entries []Entry) error {
	f, err := os.Create(filepath.Join(dir, ManifestName))
	if err != nil {
		return err
	}
	w := bufio.NewWriter(f)
	fmt.Fprintln(w, manifestHeader)
	fmt.Fprintln(w)
	for _, e := range entries {
		fmt.Fprintln(w, e)
	}
	if err := w.Flush(); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
