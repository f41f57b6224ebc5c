package runner

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"
)

// Discover finds Markdown files matching opts under the given working directory.
// It returns a deterministically sorted list of absolute file paths.
func Discover(ctx context.Context, opts Options) ([]string, error) {
	workDir, err := resolveWorkDir(opts.WorkingDir)
	if err != nil {
		return nil, fmt.Errorf("resolve working directory: %w", err)
	}

	w := &walker{
		opts:       opts,
		workDir:    workDir,
		outDir:     absOutDir(workDir, opts.OutDir),
		extensions: opts.effectiveExtensions(),
		seen:       make(map[string]struct{}),
	}

	for _, inputPath := range opts.effectivePaths() {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("discovery cancelled: %w", err)
		}

		absPath := inputPath
		if !filepath.IsAbs(absPath) {
			absPath = filepath.Join(workDir, absPath)
		}
		absPath = filepath.Clean(absPath)

		info, err := os.Stat(absPath)
		if err != nil {
			return nil, fmt.Errorf("stat %s: %w", inputPath, err)
		}

		if info.IsDir() {
			if err := w.walk(ctx, absPath); err != nil {
				return nil, err
			}
			continue
		}
		w.consider(absPath)
	}

	slices.Sort(w.files)
	return w.files, nil
}

// walker accumulates the files of one Discover call.
type walker struct {
	opts       Options
	workDir    string
	outDir     string
	extensions []string

	seen  map[string]struct{}
	files []string
}

// consider records path if it passes the extension and glob filters.
func (w *walker) consider(path string) {
	if _, dup := w.seen[path]; dup {
		return
	}
	if !w.matches(path) {
		return
	}
	w.seen[path] = struct{}{}
	w.files = append(w.files, path)
}

// walk adds the matching files below root. Hidden entries and the export
// directory are skipped. Directory symlinks are followed only when requested.
func (w *walker) walk(ctx context.Context, root string) error {
	err := filepath.WalkDir(root, func(path string, entry fs.DirEntry, walkErr error) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		if walkErr != nil {
			if os.IsPermission(walkErr) {
				return nil
			}
			return walkErr
		}

		hidden := strings.HasPrefix(entry.Name(), ".")

		if entry.IsDir() {
			if path == root {
				return nil
			}
			if hidden || path == w.outDir || w.excluded(path) {
				return filepath.SkipDir
			}
			return nil
		}

		if entry.Type()&fs.ModeSymlink != 0 {
			target, err := filepath.EvalSymlinks(path)
			if err != nil {
				return nil //nolint:nilerr // Broken symlinks are skipped.
			}
			info, err := os.Stat(target)
			if err != nil {
				return nil //nolint:nilerr // Unreadable symlink targets are skipped.
			}
			if info.IsDir() {
				if !w.opts.FollowSymlinks || hidden {
					return nil
				}
				// WalkDir does not descend through a symlinked root, so walk the target.
				return w.walk(ctx, target)
			}
		}

		if !hidden {
			w.consider(path)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("walk directory %s: %w", root, err)
	}
	return nil
}

// rel returns path relative to the working directory for glob matching.
func (w *walker) rel(path string) string {
	rel, err := filepath.Rel(w.workDir, path)
	if err != nil {
		return path
	}
	return rel
}

func (w *walker) excluded(path string) bool {
	return matchesAny(w.rel(path), w.opts.ExcludeGlobs)
}

// matches checks the extension, exclude and include filters for a file.
func (w *walker) matches(path string) bool {
	if !hasMatchingExtension(path, w.extensions) {
		return false
	}
	rel := w.rel(path)
	if matchesAny(rel, w.opts.ExcludeGlobs) {
		return false
	}
	return len(w.opts.IncludeGlobs) == 0 || matchesAny(rel, w.opts.IncludeGlobs)
}

// absOutDir returns the absolute export directory, or "" when exporting beside sources.
func absOutDir(workDir, outDir string) string {
	if outDir == "" {
		return ""
	}
	if filepath.IsAbs(outDir) {
		return filepath.Clean(outDir)
	}
	return filepath.Join(workDir, outDir)
}

// resolveWorkDir resolves the working directory, defaulting to os.Getwd().
func resolveWorkDir(workDir string) (string, error) {
	if workDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("get working directory: %w", err)
		}
		return wd, nil
	}
	absPath, err := filepath.Abs(workDir)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path: %w", err)
	}
	return absPath, nil
}

func hasMatchingExtension(path string, extensions []string) bool {
	ext := filepath.Ext(path)
	return slices.ContainsFunc(extensions, func(e string) bool {
		return strings.EqualFold(e, ext)
	})
}

func matchesAny(relPath string, patterns []string) bool {
	return slices.ContainsFunc(patterns, func(pattern string) bool {
		return matchGlob(relPath, pattern)
	})
}

// matchGlob matches a slash-separated relative path against a glob pattern.
// A "**" segment matches zero or more path segments. Patterns without a
// slash also match the base name, so "*.draft.md" applies at any depth.
func matchGlob(path, pattern string) bool {
	path = filepath.ToSlash(path)
	pattern = filepath.ToSlash(pattern)

	if !strings.Contains(pattern, "/") && !strings.Contains(pattern, "**") {
		if matched, err := filepath.Match(pattern, filepath.Base(path)); err == nil && matched {
			return true
		}
	}

	return matchSegments(strings.Split(path, "/"), strings.Split(pattern, "/"))
}

// matchSegments matches path segments against pattern segments.
func matchSegments(path, pattern []string) bool {
	for len(pattern) > 0 {
		head := pattern[0]
		if head == "**" {
			rest := pattern[1:]
			for skip := 0; skip <= len(path); skip++ {
				if matchSegments(path[skip:], rest) {
					return true
				}
			}
			return false
		}

		if len(path) == 0 {
			return false
		}
		if matched, err := filepath.Match(head, path[0]); err != nil || !matched {
			return false
		}
		path, pattern = path[1:], pattern[1:]
	}
	return len(path) == 0
}
