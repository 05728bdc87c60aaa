package git

import (
	"context"
	"fmt"
	"strings"
)

// ChangedPaths returns the working-tree paths under dir that differ from HEAD,
// parsed from porcelain status output. Untracked files are included.
func (r *Repository) ChangedPaths(ctx context.Context, dir string) ([]string, error) {
	lines, err := r.runner.RunLines(ctx, "status", "--porcelain", "--", dir)
	if err != nil {
		return nil, fmt.Errorf("failed to check status of %s: %w", dir, err)
	}

	var paths []string
	for _, line := range lines {
		// Porcelain format: XY <path>, with a rename arrow for R entries
		if len(line) < 4 {
			continue
		}
		path := strings.TrimSpace(line[3:])
		if idx := strings.Index(path, " -> "); idx != -1 {
			path = path[idx+4:]
		}
		paths = append(paths, path)
	}
	return paths, nil
}

// HasChanges reports whether anything under dir differs from the committed state
func (r *Repository) HasChanges(ctx context.Context, dir string) (bool, error) {
	paths, err := r.ChangedPaths(ctx, dir)
	if err != nil {
		return false, err
	}
	return len(paths) > 0, nil
}

// StageDir stages exactly the given directory
func (r *Repository) StageDir(ctx context.Context, dir string) error {
	_, err := r.runner.Run(ctx, "add", "--", dir)
	if err != nil {
		return fmt.Errorf("failed to stage %s: %w", dir, err)
	}
	return nil
}
