package gitctx

import (
	"fmt"
	"os/exec"
	"path/filepath"
	"sort"
	"strings"
)

// Root returns the repository top level for the given directory.
func Root(dir string) (string, error) {
	out, err := gitOutput(dir, "rev-parse", "--show-toplevel")
	if err != nil {
		return "", fmt.Errorf("not a git repository: %w", err)
	}
	return strings.TrimSpace(out), nil
}

// ChangedFiles returns the absolute paths of files that differ from HEAD:
// modified, staged, and untracked. Deleted files are omitted since there is
// nothing left to review.
func ChangedFiles(dir string) ([]string, error) {
	root, err := Root(dir)
	if err != nil {
		return nil, err
	}
	out, err := gitOutput(dir, "status", "--porcelain")
	if err != nil {
		return nil, fmt.Errorf("git status: %w", err)
	}

	seen := make(map[string]bool)
	var files []string
	for _, line := range strings.Split(out, "\n") {
		if len(line) < 4 {
			continue
		}
		status, path := line[:2], line[3:]
		if strings.Contains(status, "D") {
			continue
		}
		// Renames report "old -> new"; only the new path exists.
		if i := strings.Index(path, " -> "); i >= 0 {
			path = path[i+4:]
		}
		path = strings.Trim(path, `"`)
		abs := filepath.Join(root, path)
		if !seen[abs] {
			seen[abs] = true
			files = append(files, abs)
		}
	}

	sort.Strings(files)
	return files, nil
}

func gitOutput(dir string, args ...string) (string, error) {
	cmd := exec.Command("git", args...)
	cmd.Dir = dir
	out, err := cmd.Output()
	if err != nil {
		if exitErr, ok := err.(*exec.ExitError); ok {
			return string(out), fmt.Errorf("%s: %s", err, string(exitErr.Stderr))
		}
		return "", err
	}
	return string(out), nil
}
