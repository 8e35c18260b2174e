// Package scanner discovers JavaScript-family source files under a set of
// root paths, honoring ignore patterns and .gitignore files.
package scanner

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/go-git/go-billy/v5/osfs"
	"github.com/go-git/go-git/v5/plumbing/format/gitignore"

	"github.com/saintedlama/jsinspect/pkg/config"
	"github.com/saintedlama/jsinspect/pkg/parser"
)

// Scanner finds source files in a directory tree.
type Scanner struct {
	config   *config.Config
	matchers []gitignore.Matcher
}

// New creates a new file scanner.
func New(cfg *config.Config) *Scanner {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	return &Scanner{config: cfg}
}

// ScanPaths scans files and directories and returns all source files in a
// deterministic order: roots in input order, files in walk order.
func (s *Scanner) ScanPaths(paths []string) ([]string, error) {
	if len(paths) == 0 {
		paths = []string{"."}
	}

	var files []string
	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil {
			return nil, err
		}
		if !info.IsDir() {
			if parser.DetectLanguage(path) != parser.LangUnknown {
				files = append(files, path)
			}
			continue
		}
		found, err := s.scanDir(path)
		if err != nil {
			return nil, err
		}
		files = append(files, found...)
	}
	return files, nil
}

// scanDir recursively scans a directory for source files. Symlinks that
// resolve outside the root are skipped.
func (s *Scanner) scanDir(root string) ([]string, error) {
	files := make([]string, 0, 256)

	absRoot, err := filepath.Abs(root)
	if err != nil {
		return nil, err
	}
	absRoot, err = filepath.EvalSymlinks(absRoot)
	if err != nil {
		return nil, err
	}

	s.loadGitignore(root)

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

		if parser.DetectLanguage(path) == parser.LangUnknown {
			return nil
		}
		if s.isExcluded(relPath, false) {
			return nil
		}

		files = append(files, path)
		return nil
	})
	if walkErr != nil {
		return nil, walkErr
	}

	return files, nil
}

// loadGitignore collects .gitignore patterns from the enclosing git
// repository when enabled.
func (s *Scanner) loadGitignore(root string) {
	s.matchers = nil
	if !s.config.Gitignore {
		return
	}

	gitRoot := findGitRoot(root)
	if gitRoot == "" {
		return
	}

	fs := osfs.New(gitRoot)
	patterns, err := gitignore.ReadPatterns(fs, nil)
	if err != nil || len(patterns) == 0 {
		return
	}
	s.matchers = append(s.matchers, gitignore.NewMatcher(patterns))
}

// isExcluded checks a relative path against ignore patterns and gitignore
// matchers.
func (s *Scanner) isExcluded(relPath string, isDir bool) bool {
	slashPath := filepath.ToSlash(relPath)
	for _, pattern := range s.config.Ignore {
		if matched, _ := doublestar.Match(pattern, slashPath); matched {
			return true
		}
		// A dir pattern like **/node_modules/** should also stop descent
		// into the directory itself.
		if isDir {
			if matched, _ := doublestar.Match(pattern, slashPath+"/"); matched {
				return true
			}
			if matched, _ := doublestar.Match(strings.TrimSuffix(pattern, "/**"), slashPath); matched {
				return true
			}
		}
	}

	if len(s.matchers) > 0 {
		parts := strings.Split(relPath, string(filepath.Separator))
		for _, m := range s.matchers {
			if m.Match(parts, isDir) {
				return true
			}
		}
	}

	return false
}

// findGitRoot walks upward looking for a .git directory. Returns "" when
// not inside a git repository.
func findGitRoot(start string) string {
	dir, err := filepath.Abs(start)
	if err != nil {
		return ""
	}
	for {
		if info, err := os.Stat(filepath.Join(dir, ".git")); err == nil && info.IsDir() {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return ""
		}
		dir = parent
	}
}

// isWithinRoot reports whether path is inside root after symlink
// resolution.
func isWithinRoot(path, root string) bool {
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return false
	}
	return rel == "." || (!strings.HasPrefix(rel, "..") && !filepath.IsAbs(rel))
}
