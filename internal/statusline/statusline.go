// Package statusline composes the single-line status summary from an
// ordered set of independently toggleable sections. Sections render pure
// fragments from already-collected data; an empty fragment contributes
// nothing, not even a separator, so missing collaborators degrade silently.
package statusline

import (
	"strings"
	"time"

	"github.com/mgrude/ccstatus/internal/config"
	"github.com/mgrude/ccstatus/internal/gitstatus"
	"github.com/mgrude/ccstatus/internal/input"
	"github.com/mgrude/ccstatus/internal/tickets"
	"github.com/mgrude/ccstatus/internal/usage"
)

// Data is everything a section may consume. It is assembled once per
// invocation and read-only from the sections' point of view.
type Data struct {
	Cfg      config.Config
	Now      time.Time
	Hostname string

	Payload *input.Payload
	Git     gitstatus.Status
	Tickets *tickets.Counts // nil when the tracker is unavailable
	Usage   *usage.Snapshot // nil when no snapshot exists
}

// Section is one conditionally-visible fragment of the line.
type Section struct {
	Name    string
	Enabled func(config.Config) bool
	Render  func(*Data) string // "" means omit, no separator
}

// Sections is the fixed pipeline order.
var Sections = []Section{
	{"timestamp", func(c config.Config) bool { return c.ShowTimestamp }, renderTimestamp},
	{"hostname", func(c config.Config) bool { return c.ShowHostname }, renderHostname},
	{"directory", func(c config.Config) bool { return c.ShowDirectory }, renderDirectory},
	{"git", func(c config.Config) bool { return c.ShowGit }, renderGit},
	{"tickets", func(c config.Config) bool { return c.ShowTickets }, renderTickets},
	{"lines", func(c config.Config) bool { return c.ShowLineChanges }, renderLineChanges},
	{"session", func(c config.Config) bool { return c.ShowSession }, renderSession},
	{"usage", func(c config.Config) bool { return c.ShowUsage }, renderUsage},
	{"cost", func(c config.Config) bool { return c.ShowCost }, renderCost},
}

// Render runs the pipeline: enabled sections render in order and non-empty
// fragments are joined with exactly one space.
func Render(d *Data) string {
	fragments := make([]string, 0, len(Sections))
	for _, s := range Sections {
		if !s.Enabled(d.Cfg) {
			continue
		}
		if f := s.Render(d); f != "" {
			fragments = append(fragments, f)
		}
	}
	return strings.Join(fragments, " ")
}
