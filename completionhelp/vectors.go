package completionhelp

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/lainio/err2"
	"github.com/lainio/err2/try"
)

// VectorFiles returns the JSON file names of the vectors directory for the
// shell completion.
func VectorFiles(dir string) (names []string) {
	defer err2.Catch(err2.Err(func(err error) {
		_, _ = fmt.Fprintln(os.Stderr, err)
	}))

	files := try.To1(filepath.Glob(filepath.Join(dir, "*.json")))
	names = make([]string, 0, len(files))
	for _, f := range files {
		names = append(names, filepath.Base(f))
	}
	sort.Strings(names)
	return names
}
