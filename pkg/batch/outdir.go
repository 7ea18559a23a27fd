package batch

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// DirLayout is the time format of run directory names.
const DirLayout = "2006-01-02_15-04-05"

// CreateOutputDir creates a new run directory under root named after now.
// If the name is taken, _1, _2 and so on are appended until a free name
// is found. root is created if needed.
func CreateOutputDir(root string, now time.Time) (string, error) {
	if err := os.MkdirAll(root, 0o755); err != nil {
		return "", err
	}
	base := filepath.Join(root, now.Format(DirLayout))
	dir := base
	for n := 1; ; n++ {
		err := os.Mkdir(dir, 0o755)
		if err == nil {
			return dir, nil
		}
		if !errors.Is(err, os.ErrExist) {
			return "", err
		}
		dir = fmt.Sprintf("%s_%d", base, n)
	}
}
