// Package scanner discovers analyzable source files under a root directory.
package scanner

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/augurlabs/augur/pkg/config"
	"github.com/augurlabs/augur/pkg/parser"
)

// Scanner finds source files in a directory, applying the configured
// exclusion rules.
type Scanner struct {
	config *config.Config
}

// New creates a file scanner. A nil config uses the defaults.
func New(cfg *config.Config) *Scanner {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	return &Scanner{config: cfg}
}

// isExcluded checks a root-relative path against the exclusion rules.
// Patterns use doublestar glob syntax matched against the relative path.
func (s *Scanner) isExcluded(relPath string, isDir bool) bool {
	if isDir {
		base := filepath.Base(relPath)
		for _, dir := range s.config.Exclude.Dirs {
			if base == dir {
				return true
			}
		}
		return false
	}

	ext := filepath.Ext(relPath)
	for _, excludeExt := range s.config.Exclude.Extensions {
		if ext == excludeExt {
			return true
		}
	}

	slashPath := filepath.ToSlash(relPath)
	for _, pattern := range s.config.Exclude.Patterns {
		if matched, err := doublestar.Match(pattern, slashPath); err == nil && matched {
			return true
		}
	}
	return false
}

// ScanDir recursively scans a directory for source files in supported
// languages. Symlinks that resolve outside the root are skipped.
func (s *Scanner) ScanDir(root string) ([]string, error) {
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return nil, err
	}
	absRoot, err = filepath.EvalSymlinks(absRoot)
	if err != nil {
		return nil, err
	}

	files := make([]string, 0, 1024)
	walkErr := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}

		relPath, _ := filepath.Rel(root, path)

		if d.Type()&fs.ModeSymlink != 0 {
			resolved, err := filepath.EvalSymlinks(path)
			if err != nil || !isWithinRoot(resolved, absRoot) {
				if d.IsDir() {
					return filepath.SkipDir
				}
				return nil
			}
		}

		if d.IsDir() {
			if relPath != "." && s.isExcluded(relPath, true) {
				return filepath.SkipDir
			}
			return nil
		}

		if s.isExcluded(relPath, false) {
			return nil
		}
		if parser.DetectLanguage(path) != parser.LangUnknown {
			files = append(files, path)
		}
		return nil
	})

	return files, walkErr
}

// isWithinRoot reports whether path is contained in root after symlink
// resolution.
func isWithinRoot(path, root string) bool {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return false
	}
	absPath = filepath.Clean(absPath)
	root = filepath.Clean(root)
	return absPath == root || strings.HasPrefix(absPath, root+string(filepath.Separator))
}

// ScanFile checks whether a single file should be analyzed.
func (s *Scanner) ScanFile(path string) (bool, error) {
	info, err := os.Stat(path)
	if err != nil {
		return false, err
	}
	if info.IsDir() {
		return false, nil
	}
	if s.isExcluded(filepath.Base(path), false) {
		return false, nil
	}
	return parser.DetectLanguage(path) != parser.LangUnknown, nil
}

// GroupByLanguage groups files by their detected language.
func (s *Scanner) GroupByLanguage(files []string) map[parser.Language][]string {
	groups := make(map[parser.Language][]string)
	for _, f := range files {
		lang := parser.DetectLanguage(f)
		if lang != parser.LangUnknown {
			groups[lang] = append(groups[lang], f)
		}
	}
	return groups
}

// FilterBySize drops files larger than maxSize bytes, returning the kept
// list and the skipped count. maxSize 0 disables the limit.
func FilterBySize(files []string, maxSize int64) ([]string, int) {
	if maxSize <= 0 {
		return files, 0
	}

	filtered := make([]string, 0, len(files))
	skipped := 0
	for _, f := range files {
		info, err := os.Stat(f)
		if err != nil || info.Size() > maxSize {
			skipped++
			continue
		}
		filtered = append(filtered, f)
	}
	return filtered, skipped
}
