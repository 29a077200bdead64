package gitstatus

import (
	"os/exec"
)

// Runner executes a git command and returns its output.
// This abstraction allows mocking in tests.
type Runner func(workDir string, args ...string) (string, error)

// Collector obtains the raw status and stash texts for a working directory.
type Collector struct {
	WorkDir string
	Runner  Runner // if nil, uses the real git subprocess
}

func defaultRunner(workDir string, args ...string) (string, error) {
	cmd := exec.Command("git", args...)
	cmd.Dir = workDir
	out, err := cmd.Output()
	return string(out), err
}

// Collect runs git and summarizes the result. Any failure — not a
// repository, git missing, whatever — yields a zero Status so the caller
// omits the section; the status line never fails because of git.
func (c *Collector) Collect() Status {
	runner := c.Runner
	if runner == nil {
		runner = defaultRunner
	}

	statusText, err := runner(c.WorkDir, "status", "--porcelain", "--branch")
	if err != nil {
		return Status{}
	}
	// Stash list failing is not fatal; the rest of the status still renders.
	stashText, _ := runner(c.WorkDir, "stash", "list")

	return Summarize(statusText, stashText)
}
