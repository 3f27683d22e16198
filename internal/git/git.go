package git

import (
	"fmt"
	"os/exec"
	"path/filepath"
	"strings"
)

// FileStatus is the git status of one vault file
type FileStatus struct {
	Path    string
	Tracked bool
	Ignored bool
}

// Status contains git exposure information for a vault
type Status struct {
	IsRepo bool
	Files  []FileStatus
}

// IsGitRepo checks if workDir is inside a git repository
func IsGitRepo(workDir string) bool {
	cmd := exec.Command("git", "rev-parse", "--is-inside-work-tree")
	cmd.Dir = workDir
	err := cmd.Run()
	return err == nil
}

// IsTracked checks if a file is tracked by git
func IsTracked(workDir, path string) bool {
	cmd := exec.Command("git", "ls-files", "--", path)
	cmd.Dir = workDir
	output, err := cmd.Output()

	if err != nil {
		return false
	}

	return len(strings.TrimSpace(string(output))) > 0
}

// IsIgnored checks if a file is ignored by git (handles all .gitignore files)
func IsIgnored(workDir, path string) bool {
	cmd := exec.Command("git", "check-ignore", "-q", "--", path)
	cmd.Dir = workDir
	err := cmd.Run()

	// git check-ignore returns exit code 0 if file is ignored
	return err == nil
}

// Check reports the git status of the given files, which must share the
// directory of the first one
func Check(paths ...string) (*Status, error) {
	status := &Status{}
	if len(paths) == 0 {
		return status, nil
	}

	dir, err := filepath.Abs(filepath.Dir(paths[0]))
	if err != nil {
		return nil, fmt.Errorf("failed to resolve vault directory: %w", err)
	}
	if !IsGitRepo(dir) {
		return status, nil
	}
	status.IsRepo = true

	for _, p := range paths {
		name := filepath.Base(p)
		status.Files = append(status.Files, FileStatus{
			Path:    name,
			Tracked: IsTracked(dir, name),
			Ignored: IsIgnored(dir, name),
		})
	}
	return status, nil
}

// Warnings returns one line per exposed file. Empty when the vault is
// outside any repository or fully ignored.
func (s *Status) Warnings() []string {
	if !s.IsRepo {
		return nil
	}

	var out []string
	for _, f := range s.Files {
		switch {
		case f.Tracked:
			out = append(out, fmt.Sprintf("%s is tracked by git (run: git rm --cached %s)", f.Path, f.Path))
		case !f.Ignored:
			out = append(out, fmt.Sprintf("%s is inside a git repository and not in .gitignore", f.Path))
		}
	}
	return out
}
