// Package gitstatus summarizes a repository's porcelain-v1 status into a
// set of independent indicator flags. The flags are deliberately not
// mutually exclusive: a staged deletion sets both Staged and Deleted.
package gitstatus

import (
	"regexp"
	"strings"
)

// Status is the summarized repository state for one invocation.
type Status struct {
	Branch string
	Ahead  int
	Behind int

	Conflict  bool
	Stashed   bool
	Staged    bool
	Renamed   bool
	Deleted   bool
	Modified  bool // worktree differs from index
	Untracked bool
}

// Zero reports whether the status carries nothing worth rendering.
func (s Status) Zero() bool {
	return s == Status{}
}

var (
	aheadBehindRe = regexp.MustCompile(`\[ahead (\d+),? behind (\d+)\]`)
	aheadRe       = regexp.MustCompile(`\[ahead (\d+)\]`)
	behindRe      = regexp.MustCompile(`\[behind (\d+)\]`)
)

// conflictCodes are the two-character entries meaning both sides are
// unmerged, or both sides independently added/deleted the path.
var conflictCodes = map[string]bool{
	"UU": true, "AA": true, "DD": true,
	"AU": true, "UA": true, "DU": true, "UD": true,
}

// Summarize parses `git status --porcelain --branch` output plus the
// `git stash list` output into a Status. Malformed lines are skipped.
func Summarize(statusText, stashText string) Status {
	var s Status
	lines := strings.Split(statusText, "\n")
	if len(lines) == 0 {
		return s
	}

	header, entries := lines[0], lines[1:]
	if strings.HasPrefix(header, "## ") {
		s.Branch, s.Ahead, s.Behind = parseHeader(strings.TrimPrefix(header, "## "))
	} else if header != "" {
		// No header line: the first line is already an entry.
		entries = lines
	}

	for _, line := range entries {
		if len(line) < 2 {
			continue
		}
		code := line[:2]
		x, y := code[0], code[1]

		if conflictCodes[code] {
			s.Conflict = true
		}
		if code == "??" {
			s.Untracked = true
			continue
		}
		switch x {
		case 'M', 'A', 'R', 'C', 'D':
			s.Staged = true
		}
		if x == 'R' {
			s.Renamed = true
		}
		if x == 'D' {
			s.Deleted = true
		}
		if y == 'M' || y == 'D' {
			s.Modified = true
		}
	}

	s.Stashed = strings.TrimSpace(stashText) != ""
	return s
}

// parseHeader extracts the branch name and ahead/behind counts from the
// porcelain branch header, e.g. "main...origin/main [ahead 2, behind 1]".
func parseHeader(header string) (branch string, ahead, behind int) {
	branch = header
	if i := strings.Index(branch, "..."); i >= 0 {
		branch = branch[:i]
	}
	// Detached HEAD or initial commit headers keep their full text only
	// up to any bracketed suffix.
	if i := strings.Index(branch, " ["); i >= 0 {
		branch = branch[:i]
	}
	branch = strings.TrimSpace(branch)

	if m := aheadBehindRe.FindStringSubmatch(header); m != nil {
		ahead, behind = atoi(m[1]), atoi(m[2])
	} else if m := aheadRe.FindStringSubmatch(header); m != nil {
		ahead = atoi(m[1])
	} else if m := behindRe.FindStringSubmatch(header); m != nil {
		behind = atoi(m[1])
	}
	return branch, ahead, behind
}

func atoi(s string) int {
	n := 0
	for _, c := range s {
		n = n*10 + int(c-'0')
	}
	return n
}
