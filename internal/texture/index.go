package texture

import (
	"os"
	"path/filepath"
	"strings"
)

// extRank orders atlas formats when several files share a stem; lower wins.
var extRank = map[string]int{".png": 0, ".tga": 1, ".jpg": 2, ".jpeg": 2}

// Index maps lowercase file stems to atlas paths found under a directory.
type Index struct {
	entries map[string]string // stem.lower() → full path
}

// BuildIndex scans dir and its subdirectories for PNG, TGA and JPEG files.
// Directories listed in skip are not entered; unreadable entries are ignored.
func BuildIndex(dir string, skip ...string) *Index {
	idx := &Index{entries: make(map[string]string)}

	skipAbs := make(map[string]bool, len(skip))
	for _, s := range skip {
		if abs, err := filepath.Abs(s); err == nil {
			skipAbs[abs] = true
		}
	}

	filepath.WalkDir(dir, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if d.IsDir() {
			if abs, _ := filepath.Abs(path); path != dir && skipAbs[abs] {
				return filepath.SkipDir
			}
			return nil
		}
		ext := strings.ToLower(filepath.Ext(path))
		rank, ok := extRank[ext]
		if !ok {
			return nil
		}
		stem := strings.ToLower(strings.TrimSuffix(filepath.Base(path), filepath.Ext(path)))

		existing, exists := idx.entries[stem]
		if !exists || rank < extRank[strings.ToLower(filepath.Ext(existing))] {
			idx.entries[stem] = path
		}
		return nil
	})

	return idx
}

// ResolvePath returns the atlas path for a model file or texture name, or ("", false).
// Both "models/zombie.csmodel.json" and "Zombie.png" resolve the stem "zombie".
func (idx *Index) ResolvePath(name string) (string, bool) {
	name = strings.ReplaceAll(name, "\\", "/")
	stem := strings.ToLower(filepath.Base(name))
	if i := strings.IndexByte(stem, '.'); i > 0 {
		stem = stem[:i]
	}
	path, ok := idx.entries[stem]
	return path, ok
}

// Len returns the number of indexed atlases.
func (idx *Index) Len() int {
	return len(idx.entries)
}
