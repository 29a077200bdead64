package statusline

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/dustin/go-humanize"

	"github.com/mgrude/ccstatus/internal/classify"
	"github.com/mgrude/ccstatus/internal/theme"
	"github.com/mgrude/ccstatus/internal/timefmt"
	"github.com/mgrude/ccstatus/internal/usage"
)

func renderTimestamp(d *Data) string {
	return theme.Dim.Render(d.Now.Format("15:04"))
}

func renderHostname(d *Data) string {
	if d.Hostname == "" {
		return ""
	}
	return theme.Dim.Render("@" + d.Hostname)
}

func renderDirectory(d *Data) string {
	if d.Payload == nil {
		return ""
	}
	dir := d.Payload.WorkDir()
	if dir == "" {
		return ""
	}
	if home, err := os.UserHomeDir(); err == nil && home != "" {
		if dir == home {
			dir = "~"
		} else if strings.HasPrefix(dir, home+string(filepath.Separator)) {
			dir = "~" + dir[len(home):]
		}
	}
	return theme.Accent.Render(dir)
}

// Git indicator glyphs, in their fixed render order.
const (
	glyphConflict  = "✖"
	glyphDiverged  = "⇕"
	glyphAhead     = "⇡"
	glyphBehind    = "⇣"
	glyphStash     = "≡"
	glyphStaged    = "+"
	glyphRenamed   = "»"
	glyphDeleted   = "✘"
	glyphModified  = "!"
	glyphUntracked = "?"
)

func renderGit(d *Data) string {
	g := d.Git
	if g.Zero() {
		return ""
	}

	var ind []string
	if g.Conflict {
		ind = append(ind, theme.Alert.Render(glyphConflict))
	}
	switch {
	case g.Ahead > 0 && g.Behind > 0:
		// Diverged collapses into one combined glyph.
		ind = append(ind, theme.Alert.Render(glyphDiverged))
	case g.Ahead > 0:
		ind = append(ind, theme.Accent.Render(fmt.Sprintf("%s%d", glyphAhead, g.Ahead)))
	case g.Behind > 0:
		ind = append(ind, theme.Accent.Render(fmt.Sprintf("%s%d", glyphBehind, g.Behind)))
	}
	if g.Stashed {
		ind = append(ind, theme.Dim.Render(glyphStash))
	}
	if g.Staged {
		ind = append(ind, theme.Added.Render(glyphStaged))
	}
	if g.Renamed {
		ind = append(ind, theme.Accent.Render(glyphRenamed))
	}
	if g.Deleted {
		ind = append(ind, theme.Removed.Render(glyphDeleted))
	}
	if g.Modified {
		ind = append(ind, theme.Band(classify.Medium).Render(glyphModified))
	}
	if g.Untracked {
		ind = append(ind, theme.Dim.Render(glyphUntracked))
	}

	if g.Branch == "" && len(ind) == 0 {
		return ""
	}
	frag := theme.Branch.Render(g.Branch)
	if len(ind) > 0 {
		if frag != "" {
			frag += " "
		}
		frag += strings.Join(ind, "")
	}
	return frag
}

func renderTickets(d *Data) string {
	if d.Tickets == nil || d.Tickets.Zero() {
		return ""
	}
	var parts []string
	if d.Tickets.InProgress > 0 {
		parts = append(parts, theme.Band(classify.Medium).Render(fmt.Sprintf("▶%d", d.Tickets.InProgress)))
	}
	if d.Tickets.InReview > 0 {
		parts = append(parts, theme.Accent.Render(fmt.Sprintf("⊙%d", d.Tickets.InReview)))
	}
	return strings.Join(parts, " ")
}

func renderLineChanges(d *Data) string {
	if d.Payload == nil {
		return ""
	}
	added, removed := d.Payload.Cost.TotalLinesAdded, d.Payload.Cost.TotalLinesRemoved
	if added == nil && removed == nil {
		return ""
	}
	var parts []string
	if added != nil {
		parts = append(parts, theme.Added.Render(fmt.Sprintf("+%d", *added)))
	}
	if removed != nil {
		parts = append(parts, theme.Removed.Render(fmt.Sprintf("-%d", *removed)))
	}
	return strings.Join(parts, "/")
}

func renderSession(d *Data) string {
	if d.Payload == nil {
		return ""
	}
	var parts []string
	if name := d.Payload.Model.DisplayName; name != "" {
		parts = append(parts, theme.Model.Render(name))
	}
	if pct := d.Payload.Context.UsedPercentage; pct != nil {
		band := classify.Classify(*pct, classify.Context)
		ctx := theme.Band(band).Render(fmt.Sprintf("%d%%", int(*pct)))
		if size := d.Payload.Context.WindowSize; size != nil && *size > 0 {
			ctx += theme.Dim.Render(fmt.Sprintf("(%s)", humanize.Comma(int64(*size))))
		}
		parts = append(parts, ctx)
	}
	return strings.Join(parts, " ")
}

// renderUsage composes the quota block: session %, week %, model-specific
// %, extra spend, and the time to the next cache refresh. Every sub-fragment
// is independently omittable.
func renderUsage(d *Data) string {
	u := d.Usage
	if u == nil {
		return ""
	}
	var parts []string

	if f := quotaFragment("U:", u.SessionPercent, u.SessionReset, d); f != "" {
		parts = append(parts, f)
	}
	if f := quotaFragment("W:", u.WeekPercent, u.WeekReset, d); f != "" {
		parts = append(parts, f)
	}
	if d.Cfg.ShowSonnet && u.SonnetPercent != nil && int(*u.SonnetPercent) >= d.Cfg.SonnetShowThreshold {
		if f := quotaFragment("S:", u.SonnetPercent, u.SonnetReset, d); f != "" {
			parts = append(parts, f)
		}
	}
	if f := extraFragment(u, d); f != "" {
		parts = append(parts, f)
	}
	if f := refreshFragment(u, d); f != "" {
		parts = append(parts, f)
	}
	return strings.Join(parts, " ")
}

// quotaFragment renders a labeled percentage, paired with the compact
// countdown to its reset when the reset timestamp parses.
func quotaFragment(label string, percent *float64, reset string, d *Data) string {
	if percent == nil {
		return ""
	}
	band := classify.Classify(*percent, classify.Usage)
	frag := theme.Dim.Render(label) + theme.Band(band).Render(fmt.Sprintf("%d%%", int(*percent)))
	if target, ok := timefmt.Parse(reset); ok {
		if cd, ok := timefmt.Countdown(target, d.Now); ok {
			frag += theme.Dim.Render("(" + cd + ")")
		}
	}
	return frag
}

// extraFragment shows the extra spend only once the session quota is high
// enough to matter and both amounts are known.
func extraFragment(u *usage.Snapshot, d *Data) string {
	if u.SessionPercent == nil || int(*u.SessionPercent) < d.Cfg.ExtraShowThreshold {
		return ""
	}
	if u.ExtraSpent == nil || u.ExtraLimit == nil {
		return ""
	}
	band := classify.Low
	if u.ExtraPercent != nil {
		band = classify.Classify(*u.ExtraPercent, classify.Usage)
	}
	frag := theme.Band(band).Render("$" + FormatAmount(*u.ExtraSpent) + "/" + FormatAmount(*u.ExtraLimit))
	if target, ok := timefmt.Parse(u.ExtraReset); ok {
		if cd, ok := timefmt.Countdown(target, d.Now); ok {
			frag += theme.Dim.Render("(" + cd + ")")
		}
	}
	return frag
}

// refreshFragment renders the time left until the usage cache expires.
func refreshFragment(u *usage.Snapshot, d *Data) string {
	updated, ok := timefmt.Parse(u.LastUpdated)
	if !ok {
		return ""
	}
	cd, ok := timefmt.Countdown(updated.Add(usage.CacheMaxAge), d.Now)
	if !ok {
		return ""
	}
	return theme.Dim.Render("⟳" + cd)
}

func renderCost(d *Data) string {
	if d.Payload == nil || d.Payload.Cost.TotalCostUSD == nil {
		return ""
	}
	return theme.Cost.Render(fmt.Sprintf("[$%.2f]", *d.Payload.Cost.TotalCostUSD))
}

// FormatAmount renders a dollar amount with up to two decimals, trimming
// trailing zeros and a trailing dot: 1.50 → "1.5", 2.00 → "2", 3.14 → "3.14".
func FormatAmount(v float64) string {
	s := fmt.Sprintf("%.2f", v)
	s = strings.TrimRight(s, "0")
	return strings.TrimRight(s, ".")
}
