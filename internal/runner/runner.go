// Package runner invokes an external blame executable against one file and
// captures its output.
package runner

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"time"
)

// Runner invokes blame executables with the git environment of one work
// tree. It is immutable for the duration of a run and safe for concurrent
// use.
type Runner struct {
	WorkTree  string
	GitDir    string
	ExtraArgs string
	// Timeout bounds one invocation; zero means wait forever, matching the
	// reference behavior. A timed-out invocation is an execution failure,
	// not a distinct outcome.
	Timeout time.Duration
}

// Blame runs `<executable> blame <extra-args> <file>` through the shell with
// GIT_DIR and GIT_WORK_TREE set, returning the captured standard output.
// A non-zero exit or timeout returns an error carrying the tool's stderr;
// the caller records it as that file's execution failure and continues.
func (r *Runner) Blame(ctx context.Context, executable, file string) ([]byte, error) {
	if r.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.Timeout)
		defer cancel()
	}

	parts := []string{executable, "blame"}
	if r.ExtraArgs != "" {
		parts = append(parts, r.ExtraArgs)
	}
	parts = append(parts, file)

	cmd := exec.CommandContext(ctx, "bash", "-c", strings.Join(parts, " "))
	cmd.Env = append(os.Environ(), "GIT_DIR="+r.GitDir, "GIT_WORK_TREE="+r.WorkTree)
	if r.Timeout > 0 {
		// Don't wait on inherited pipes if the tool ignores the kill.
		cmd.WaitDelay = time.Second
	}

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return nil, fmt.Errorf("%s blame %s: timed out after %s", executable, file, r.Timeout)
		}
		return nil, fmt.Errorf("%s blame %s: %s: %w", executable, file, strings.TrimSpace(stderr.String()), err)
	}

	return stdout.Bytes(), nil
}
