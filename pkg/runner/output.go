package runner

import (
	"path/filepath"
	"strings"
)

// htmlExtension is appended to exported files.
const htmlExtension = ".html"

// OutputPath returns the HTML path for source.
//
// Without outDir the file lands beside its source. With outDir the layout
// relative to workDir is mirrored; sources outside workDir are flattened to
// their base name.
func OutputPath(source, workDir, outDir string) string {
	name := strings.TrimSuffix(source, filepath.Ext(source)) + htmlExtension
	if outDir == "" {
		return name
	}

	rel, err := filepath.Rel(workDir, name)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		rel = filepath.Base(name)
	}

	if !filepath.IsAbs(outDir) {
		outDir = filepath.Join(workDir, outDir)
	}
	return filepath.Join(outDir, rel)
}
