package gazetteer

import (
	"fmt"
	"path/filepath"
	"strings"
)

// FileName is the per-state place file name for a Gazetteer release.
func FileName(year int, prefix string) string {
	return fmt.Sprintf("%d_gaz_place_%s.txt", year, prefix)
}

// SourceURL builds the download location of a state's place file.
func SourceURL(base string, year int, prefix string) string {
	return fmt.Sprintf("%s/%d_Gazetteer/%s", strings.TrimRight(base, "/"), year, FileName(year, prefix))
}

// CachePath is where the verbatim copy of a state's place file is kept.
func CachePath(workdir string, year int, prefix string) string {
	return filepath.Join(workdir, FileName(year, prefix))
}
