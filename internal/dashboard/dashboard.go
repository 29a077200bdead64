// Package dashboard renders the multi-panel usage view: one labeled panel
// per quota category with a fixed-width progress bar, the band-colored
// percentage, and a verbose reset line.
package dashboard

import (
	"fmt"
	"strings"
	"time"

	"github.com/mgrude/ccstatus/internal/classify"
	"github.com/mgrude/ccstatus/internal/statusline"
	"github.com/mgrude/ccstatus/internal/theme"
	"github.com/mgrude/ccstatus/internal/timefmt"
	"github.com/mgrude/ccstatus/internal/usage"
)

// BarWidth is the fixed progress bar width in cells.
const BarWidth = 50

// Bar renders a two-tone bar: floor(percent*width/100) filled cells.
func Bar(percent, width int) string {
	if percent < 0 {
		percent = 0
	}
	if percent > 100 {
		percent = 100
	}
	filled := percent * width / 100
	return strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
}

// Panel is one rendered category, assembled before styling so tests can
// check the plumbing without ANSI noise.
type Panel struct {
	Title   string
	Percent int
	Extra   string // optional extra-info line, e.g. spend amounts
	Reset   string // verbose reset line; empty when unknown
}

// Panels derives the displayable panels from a snapshot. Categories without
// a percentage are skipped entirely.
func Panels(u *usage.Snapshot, now time.Time) []Panel {
	type category struct {
		title   string
		percent *float64
		reset   string
		extra   string
	}
	var extraInfo string
	if u.ExtraSpent != nil && u.ExtraLimit != nil {
		extraInfo = fmt.Sprintf("$%s of $%s spent",
			statusline.FormatAmount(*u.ExtraSpent), statusline.FormatAmount(*u.ExtraLimit))
	}
	categories := []category{
		{"Current session", u.SessionPercent, u.SessionReset, ""},
		{"Current week (all models)", u.WeekPercent, u.WeekReset, ""},
		{"Current week (Sonnet only)", u.SonnetPercent, u.SonnetReset, ""},
		{"Extra usage", u.ExtraPercent, u.ExtraReset, extraInfo},
	}

	var panels []Panel
	for _, c := range categories {
		if c.percent == nil {
			continue
		}
		p := Panel{Title: c.title, Percent: int(*c.percent), Extra: c.extra}
		if target, ok := timefmt.Parse(c.reset); ok {
			p.Reset = timefmt.ResetLine(target, now)
		}
		panels = append(panels, p)
	}
	return panels
}

// Render produces the full dashboard. It returns usage.ErrNoData when the
// snapshot holds no percentages at all — the only user-visible failure.
func Render(u *usage.Snapshot, now time.Time) (string, error) {
	if u == nil || !u.HasPercentages() {
		return "", usage.ErrNoData
	}

	var sb strings.Builder
	for i, p := range Panels(u, now) {
		if i > 0 {
			sb.WriteString("\n")
		}
		band := classify.Classify(float64(p.Percent), classify.Usage)
		sb.WriteString(theme.Title.Render(p.Title) + "\n")
		sb.WriteString(theme.Band(band).Render(Bar(p.Percent, BarWidth)) + "\n")
		sb.WriteString(theme.Band(band).Render(fmt.Sprintf("%d%% used", p.Percent)) + "\n")
		if p.Extra != "" {
			sb.WriteString(p.Extra + "\n")
		}
		if p.Reset != "" {
			sb.WriteString(theme.Dim.Render(p.Reset) + "\n")
		}
	}

	if updated, ok := timefmt.Parse(u.LastUpdated); ok {
		sb.WriteString("\n" + theme.Dim.Render(
			"Updated "+updated.Format("15:04")+staleSuffix(updated, now)) + "\n")
	}
	return sb.String(), nil
}

func staleSuffix(updated, now time.Time) string {
	age := now.Sub(updated)
	if age > usage.CacheMaxAge {
		return " (stale)"
	}
	return ""
}
