// Package tickets reports issue-tracker counts for the working directory.
// It prefers an external tracker command; when none is configured or the
// command fails it falls back to scanning a directory-local .tickets store
// of YAML issue files. Either path failing means the section is omitted.
package tickets

import (
	"encoding/json"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Counts holds the per-status ticket tallies the status line cares about.
type Counts struct {
	InProgress int
	InReview   int
}

// Zero reports whether there is nothing to render.
func (c Counts) Zero() bool {
	return c.InProgress == 0 && c.InReview == 0
}

// Runner executes the tracker command and returns its stdout.
type Runner func(workDir, name string, args ...string) ([]byte, error)

// Collector obtains ticket counts for one directory.
type Collector struct {
	WorkDir string
	Command string // e.g. "tk"; empty skips straight to the local store
	Runner  Runner
}

func defaultRunner(workDir, name string, args ...string) ([]byte, error) {
	cmd := exec.Command(name, args...)
	cmd.Dir = workDir
	return cmd.Output()
}

// trackerReport is the JSON shape of the external tracker command.
type trackerReport struct {
	ByStatus map[string]int `json:"by_status"`
}

// issueFile is the YAML shape of a .tickets/*.yaml entry.
type issueFile struct {
	Status string `yaml:"status"`
}

// Collect returns the counts, or ok=false when no tracker data exists.
func (c *Collector) Collect() (Counts, bool) {
	if counts, ok := c.fromCommand(); ok {
		return counts, true
	}
	return c.fromStore()
}

func (c *Collector) fromCommand() (Counts, bool) {
	if c.Command == "" {
		return Counts{}, false
	}
	runner := c.Runner
	if runner == nil {
		runner = defaultRunner
	}
	out, err := runner(c.WorkDir, c.Command, "status", "--json")
	if err != nil {
		return Counts{}, false
	}
	var report trackerReport
	if err := json.Unmarshal(out, &report); err != nil {
		return Counts{}, false
	}
	return Counts{
		InProgress: report.ByStatus["in_progress"],
		InReview:   report.ByStatus["in_review"],
	}, true
}

// fromStore scans WorkDir/.tickets/*.yaml and tallies their status fields.
func (c *Collector) fromStore() (Counts, bool) {
	dir := filepath.Join(c.WorkDir, ".tickets")
	entries, err := os.ReadDir(dir)
	if err != nil {
		return Counts{}, false
	}

	var counts Counts
	found := false
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || (!strings.HasSuffix(name, ".yaml") && !strings.HasSuffix(name, ".yml")) {
			continue
		}
		data, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			continue
		}
		var issue issueFile
		if err := yaml.Unmarshal(data, &issue); err != nil {
			continue
		}
		found = true
		switch strings.ToLower(strings.TrimSpace(issue.Status)) {
		case "in_progress", "in-progress":
			counts.InProgress++
		case "in_review", "in-review":
			counts.InReview++
		}
	}
	return counts, found
}
