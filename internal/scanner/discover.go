package scanner

import (
	"context"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Discover walks each root and returns the directories below it, up to
// opts.MaxDepth levels deep. Roots that do not exist are skipped. Results
// are deduplicated by absolute path and sorted by path.
func Discover(ctx context.Context, roots []string, opts Options) ([]Dir, error) {
	maxDepth := opts.MaxDepth
	if maxDepth <= 0 {
		maxDepth = 1
	}

	var dirs []Dir
	seen := make(map[string]bool)

	for _, root := range roots {
		abs, err := filepath.Abs(root)
		if err != nil {
			return nil, err
		}
		if _, err := os.Stat(abs); err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return nil, err
		}

		found, err := walk(ctx, abs, 1, maxDepth, opts)
		if err != nil {
			return nil, err
		}
		for _, d := range found {
			if seen[d.Path] {
				continue
			}
			seen[d.Path] = true
			dirs = append(dirs, d)
		}
	}

	sort.Slice(dirs, func(i, j int) bool { return dirs[i].Path < dirs[j].Path })
	return dirs, nil
}

func walk(ctx context.Context, dir string, depth, maxDepth int, opts Options) ([]Dir, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		// Unreadable subdirectories are skipped rather than failing the scan.
		if depth > 1 && os.IsPermission(err) {
			return nil, nil
		}
		return nil, err
	}

	var dirs []Dir
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		if !opts.IncludeHidden && strings.HasPrefix(entry.Name(), ".") {
			continue
		}

		path := filepath.Join(dir, entry.Name())
		d := Dir{
			Path:   path,
			Name:   entry.Name(),
			Depth:  depth,
			HasGit: exists(filepath.Join(path, ".git")),
		}

		if !opts.GitOnly || d.HasGit {
			dirs = append(dirs, d)
		}
		if d.HasGit && opts.GitOnly {
			continue
		}
		if depth < maxDepth {
			sub, err := walk(ctx, path, depth+1, maxDepth, opts)
			if err != nil {
				return nil, err
			}
			dirs = append(dirs, sub...)
		}
	}
	return dirs, nil
}

// exists reports whether path can be stat'ed.
func exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// Paths returns the Path of every dir, in order.
func Paths(dirs []Dir) []string {
	paths := make([]string, len(dirs))
	for i, d := range dirs {
		paths[i] = d.Path
	}
	return paths
}
