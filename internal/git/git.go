package git

import (
	"fmt"
	"os/exec"
	"path/filepath"
	"strings"
)

// FileStatus is the git exposure of one file
type FileStatus struct {
	Label   string
	Path    string
	InRepo  bool
	Tracked bool
	Ignored bool
}

// Exposed reports whether the file could be committed or already is
func (s FileStatus) Exposed() bool {
	return s.InRepo && (s.Tracked || !s.Ignored)
}

// Available reports whether a git binary is on PATH
func Available() bool {
	_, err := exec.LookPath("git")
	return err == nil
}

// IsGitRepo checks if the working directory is inside a git repository
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

// Check returns the git status of the file at path, labelled for display.
// Files outside any work tree, or hosts without git, report InRepo false.
func Check(label, path string) FileStatus {
	status := FileStatus{Label: label, Path: path}
	if !Available() {
		return status
	}

	dir := filepath.Dir(path)
	if !IsGitRepo(dir) {
		return status
	}
	status.InRepo = true

	name := filepath.Base(path)
	status.Tracked = IsTracked(dir, name)
	status.Ignored = IsIgnored(dir, name)
	return status
}

// FormatStatus formats exposure warnings for display.
// Returns an empty string when no file is inside a repository.
func FormatStatus(statuses []FileStatus) string {
	var result strings.Builder
	for _, s := range statuses {
		if !s.InRepo {
			continue
		}
		if result.Len() == 0 {
			result.WriteString("\nGit Integration:\n")
		}
		switch {
		case s.Tracked:
			result.WriteString(fmt.Sprintf("   error: %s is tracked by git (run: git rm --cached %s)\n", s.Label, s.Path))
		case !s.Ignored:
			result.WriteString(fmt.Sprintf("   warning: %s is inside a git work tree and not in .gitignore\n", s.Label))
		default:
			result.WriteString(fmt.Sprintf("   ok: %s is in .gitignore\n", s.Label))
		}
	}
	return result.String()
}
