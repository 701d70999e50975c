package texture

import (
	"os"
	"path/filepath"
	"strings"
)

// imageExts are the decodable texture extensions with their priority when the
// same stem exists under several extensions. TGA and PNG carry alpha, so they
// win over JPEG/BMP.
var imageExts = map[string]int{
	".tga":  0,
	".png":  1,
	".bmp":  2,
	".jpg":  3,
	".jpeg": 4,
}

// Index maps lowercase texture stems to filesystem paths. OBJ exports often
// reference textures with mismatched case or a stale extension, so lookup is
// by stem, case-insensitive.
type Index struct {
	entries map[string]string // stem.lower() → full path
}

// BuildIndex scans modelDir and its subdirectories for decodable image files.
func BuildIndex(modelDir string) *Index {
	idx := &Index{entries: make(map[string]string)}

	filepath.WalkDir(modelDir, func(path string, d os.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return nil
		}
		ext := strings.ToLower(filepath.Ext(path))
		prio, ok := imageExts[ext]
		if !ok {
			return nil
		}
		stem := strings.ToLower(strings.TrimSuffix(filepath.Base(path), filepath.Ext(path)))

		existing, exists := idx.entries[stem]
		if !exists {
			idx.entries[stem] = path
		} else if prio < imageExts[strings.ToLower(filepath.Ext(existing))] {
			idx.entries[stem] = path
		}
		return nil
	})

	return idx
}

// ResolvePath returns the filesystem path for a texture name, or ("", false).
func (idx *Index) ResolvePath(texName string) (string, bool) {
	// Strip path prefix (e.g., "textures\\brick.png" → "brick")
	texName = strings.ReplaceAll(texName, "\\", "/")
	base := filepath.Base(texName)
	stem := strings.ToLower(strings.TrimSuffix(base, filepath.Ext(base)))

	path, ok := idx.entries[stem]
	return path, ok
}

// Len returns the number of indexed textures.
func (idx *Index) Len() int {
	return len(idx.entries)
}
