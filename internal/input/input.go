// Package input decodes the session payload the host writes to stdin.
// Every field is optional; numeric fields use pointers so "absent" and
// "zero" stay distinguishable for the renderers.
package input

import (
	"encoding/json"
	"io"
)

// Payload is the session/workspace JSON received on stdin.
type Payload struct {
	Cwd       string    `json:"cwd"`
	Workspace Workspace `json:"workspace"`
	Model     Model     `json:"model"`
	Context   Context   `json:"context_window"`
	Cost      Cost      `json:"cost"`
}

type Workspace struct {
	CurrentDir string `json:"current_dir"`
}

type Model struct {
	DisplayName string `json:"display_name"`
}

type Context struct {
	UsedPercentage *float64 `json:"used_percentage"`
	WindowSize     *int     `json:"context_window_size"`
}

type Cost struct {
	TotalCostUSD      *float64 `json:"total_cost_usd"`
	TotalLinesAdded   *int     `json:"total_lines_added"`
	TotalLinesRemoved *int     `json:"total_lines_removed"`
}

// WorkDir prefers workspace.current_dir over the top-level cwd.
func (p *Payload) WorkDir() string {
	if p.Workspace.CurrentDir != "" {
		return p.Workspace.CurrentDir
	}
	return p.Cwd
}

// Decode reads the payload from r. Decoding is the only fatal point of the
// status line: everything downstream degrades field by field.
func Decode(r io.Reader) (*Payload, error) {
	var p Payload
	if err := json.NewDecoder(r).Decode(&p); err != nil {
		return nil, err
	}
	return &p, nil
}
