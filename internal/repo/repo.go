// Package repo enumerates the tracked text files of a git work tree.
package repo

import (
	"bufio"
	"bytes"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

// Resolve turns a work-tree path into its absolute form plus the location of
// its metadata directory. An unresolvable work tree is a configuration error
// and fatal to the whole run.
func Resolve(workTree string) (root string, gitDir string, err error) {
	if workTree == "" {
		return "", "", fmt.Errorf("no work tree given")
	}
	root, err = filepath.Abs(workTree)
	if err != nil {
		return "", "", fmt.Errorf("resolving work tree %q: %w", workTree, err)
	}
	info, err := os.Stat(root)
	if err != nil || !info.IsDir() {
		return "", "", fmt.Errorf("work tree %q is not a directory", workTree)
	}
	gitDir = filepath.Join(root, ".git")
	if _, err := os.Stat(gitDir); err != nil {
		return "", "", fmt.Errorf("work tree %q has no .git: %w", workTree, err)
	}
	return root, gitDir, nil
}

// ListTextFiles returns the repository's tracked files in git's enumeration
// order, excluding files git classifies as binary in the index.
func ListTextFiles(gitDir string) ([]string, error) {
	cmd := exec.Command("git", "ls-files", "--format", "%(path) %(eolinfo:index)")
	cmd.Env = append(os.Environ(), "GIT_DIR="+gitDir)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("git ls-files: %s: %w", strings.TrimSpace(stderr.String()), err)
	}

	return parseLsFiles(&stdout)
}

// parseLsFiles reads "<path> <eolinfo>" lines and keeps text-classified
// entries. Entries that do not split into exactly two fields are skipped.
func parseLsFiles(r *bytes.Buffer) ([]string, error) {
	var files []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		parts := strings.Fields(scanner.Text())
		if len(parts) != 2 {
			continue
		}
		if strings.Contains(parts[1], "-text") {
			continue
		}
		files = append(files, parts[0])
	}
	return files, scanner.Err()
}

// Window restricts an enumeration to a contiguous sub-range: drop the first
// skip entries, then keep at most take. A non-positive take keeps everything
// after the skip.
func Window(files []string, skip, take int) []string {
	if skip < 0 {
		skip = 0
	}
	if skip >= len(files) {
		return nil
	}
	files = files[skip:]
	if take > 0 && take < len(files) {
		files = files[:take]
	}
	return files
}
