// Package fragment handles change fragment files: small files under the
// changelog directory, each representing one pending changelog entry and
// typically referencing the pull request that introduced it.
package fragment

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"

	fragreferrors "fragref.dev/fragref/internal/errors"
)

// Fragment is one change fragment file
type Fragment struct {
	// Path is the fragment path relative to the repository root
	Path string

	// Unresolved is the number of placeholder PR references in the file
	Unresolved int

	// Resolved is the number of numeric PR references in the file
	Resolved int
}

// Scanner finds and rewrites PR references in change fragments
type Scanner struct {
	root        string // repository root
	dir         string // changelog directory, relative to root
	placeholder *regexp.Regexp
	resolved    *regexp.Regexp
}

// NewScanner creates a scanner for the changelog directory dir (relative to
// the repository root) with the given placeholder token, e.g. "NUMBER".
// Two reference syntaxes are recognized: the RST role form :pr:`NUMBER`
// and the shorthand form #NUMBER.
func NewScanner(root, dir, placeholder string) *Scanner {
	token := regexp.QuoteMeta(placeholder)
	return &Scanner{
		root:        root,
		dir:         dir,
		placeholder: regexp.MustCompile(":pr:`" + token + "`|#" + token + `\b`),
		resolved:    regexp.MustCompile(":pr:`[0-9]+`|#[0-9]+"),
	}
}

// Dir returns the changelog directory relative to the repository root
func (s *Scanner) Dir() string {
	return s.dir
}

// Scan returns all change fragments in the changelog directory, sorted by
// path. Dotfiles, subdirectories, and executable files (helper scripts) are
// not fragments and are skipped.
func (s *Scanner) Scan() ([]Fragment, error) {
	absDir := filepath.Join(s.root, s.dir)
	entries, err := os.ReadDir(absDir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", fragreferrors.ErrNoChangelogDir, s.dir)
		}
		return nil, fmt.Errorf("failed to read %s: %w", s.dir, err)
	}

	var fragments []Fragment
	for _, entry := range entries {
		if entry.IsDir() || entry.Name()[0] == '.' {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			return nil, fmt.Errorf("failed to stat %s: %w", entry.Name(), err)
		}
		if info.Mode()&0111 != 0 {
			// Executable files in the changelog dir are tooling, not entries
			continue
		}

		data, err := os.ReadFile(filepath.Join(absDir, entry.Name()))
		if err != nil {
			return nil, fmt.Errorf("failed to read fragment %s: %w", entry.Name(), err)
		}

		fragments = append(fragments, Fragment{
			Path:       filepath.Join(s.dir, entry.Name()),
			Unresolved: len(s.placeholder.FindAll(data, -1)),
			Resolved:   len(s.resolved.FindAll(data, -1)),
		})
	}

	sort.Slice(fragments, func(i, j int) bool {
		return fragments[i].Path < fragments[j].Path
	})

	return fragments, nil
}

// Unresolved returns only the fragments that still carry placeholder references
func (s *Scanner) Unresolved() ([]Fragment, error) {
	fragments, err := s.Scan()
	if err != nil {
		return nil, err
	}

	var unresolved []Fragment
	for _, f := range fragments {
		if f.Unresolved > 0 {
			unresolved = append(unresolved, f)
		}
	}
	return unresolved, nil
}

// Rewrite replaces every placeholder reference in the fragment at path
// (relative to the repository root) with the given PR number, in place.
// It returns the number of references replaced. Files with no placeholder
// are left byte-identical.
func (s *Scanner) Rewrite(path string, prNumber int) (int, error) {
	absPath := filepath.Join(s.root, path)

	data, err := os.ReadFile(absPath)
	if err != nil {
		return 0, fmt.Errorf("failed to read fragment %s: %w", path, err)
	}

	matches := len(s.placeholder.FindAll(data, -1))
	if matches == 0 {
		return 0, nil
	}

	number := strconv.Itoa(prNumber)
	rewritten := s.placeholder.ReplaceAllFunc(data, func(match []byte) []byte {
		if match[0] == '#' {
			return []byte("#" + number)
		}
		return []byte(":pr:`" + number + "`")
	})

	info, err := os.Stat(absPath)
	if err != nil {
		return 0, fmt.Errorf("failed to stat fragment %s: %w", path, err)
	}

	if err := os.WriteFile(absPath, rewritten, info.Mode().Perm()); err != nil {
		return 0, fmt.Errorf("failed to write fragment %s: %w", path, err)
	}

	return matches, nil
}
