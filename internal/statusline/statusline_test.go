package statusline

import (
	"fmt"
	"os"
	"strings"
	"testing"
	"time"

	"pgregory.net/rapid"

	"github.com/mgrude/ccstatus/internal/config"
	"github.com/mgrude/ccstatus/internal/gitstatus"
	"github.com/mgrude/ccstatus/internal/input"
	"github.com/mgrude/ccstatus/internal/theme"
	"github.com/mgrude/ccstatus/internal/tickets"
	"github.com/mgrude/ccstatus/internal/usage"
)

func TestMain(m *testing.M) {
	theme.Plain()
	os.Exit(m.Run())
}

func fl(v float64) *float64 { return &v }
func in(v int) *int         { return &v }

// isoIn renders an ISO timestamp d from now, in the local-naive layout the
// usage fetcher produces.
func isoIn(now time.Time, d time.Duration) string {
	return now.Add(d).Format("2006-01-02T15:04:05")
}

// baseData disables the timestamp so expectations stay deterministic;
// tests that want it turn it back on.
func baseData() *Data {
	cfg := config.Defaults()
	cfg.ShowTimestamp = false
	return &Data{
		Cfg: cfg,
		Now: time.Now(),
	}
}

func TestRenderCostOnly(t *testing.T) {
	d := baseData()
	d.Payload = &input.Payload{Cost: input.Cost{TotalCostUSD: fl(1.37)}}

	got := Render(d)
	if got != "[$1.37]" {
		t.Errorf("Render = %q, want cost fragment only", got)
	}
}

func TestRenderEmptyData(t *testing.T) {
	d := baseData()
	d.Cfg.ShowTimestamp = false
	if got := Render(d); got != "" {
		t.Errorf("Render of empty data = %q, want empty", got)
	}
}

func TestRenderSingleSpaceJoin(t *testing.T) {
	d := baseData()
	d.Cfg.ShowTimestamp = false
	d.Payload = &input.Payload{
		Workspace: input.Workspace{CurrentDir: "/proj"},
		Cost:      input.Cost{TotalCostUSD: fl(2)},
	}
	got := Render(d)
	if got != "/proj [$2.00]" {
		t.Errorf("Render = %q", got)
	}
	if strings.Contains(got, "  ") {
		t.Errorf("double separator in %q", got)
	}
}

func TestGitFragment(t *testing.T) {
	d := baseData()
	d.Git = gitstatus.Status{Branch: "main", Ahead: 2, Staged: true, Untracked: true}
	got := renderGit(d)
	if got != "main ⇡2+?" {
		t.Errorf("git fragment = %q", got)
	}
}

func TestGitFragmentDiverged(t *testing.T) {
	d := baseData()
	d.Git = gitstatus.Status{Branch: "main", Ahead: 1, Behind: 3}
	got := renderGit(d)
	if !strings.Contains(got, glyphDiverged) {
		t.Errorf("diverged fragment %q missing combined glyph", got)
	}
	if strings.Contains(got, glyphAhead) || strings.Contains(got, glyphBehind) {
		t.Errorf("diverged fragment %q must not show separate ahead/behind", got)
	}
}

func TestGitFragmentIndicatorOrder(t *testing.T) {
	d := baseData()
	d.Git = gitstatus.Status{
		Branch: "b", Conflict: true, Ahead: 1, Stashed: true, Staged: true,
		Renamed: true, Deleted: true, Modified: true, Untracked: true,
	}
	got := renderGit(d)
	want := "b " + glyphConflict + glyphAhead + "1" + glyphStash + glyphStaged +
		glyphRenamed + glyphDeleted + glyphModified + glyphUntracked
	if got != want {
		t.Errorf("git fragment = %q, want %q", got, want)
	}
}

func TestGitFragmentOmitted(t *testing.T) {
	d := baseData()
	if got := renderGit(d); got != "" {
		t.Errorf("zero status rendered %q", got)
	}
}

func TestSessionFragment(t *testing.T) {
	d := baseData()
	d.Payload = &input.Payload{
		Model:   input.Model{DisplayName: "Opus"},
		Context: input.Context{UsedPercentage: fl(42.9), WindowSize: in(200000)},
	}
	got := renderSession(d)
	if got != "Opus 42%(200,000)" {
		t.Errorf("session fragment = %q", got)
	}
}

func TestUsageBlock(t *testing.T) {
	d := baseData()
	d.Usage = &usage.Snapshot{
		SessionPercent: fl(42),
		SessionReset:   isoIn(d.Now, 3*time.Hour+14*time.Minute+30*time.Second),
		WeekPercent:    fl(10),
	}
	got := renderUsage(d)
	if got != "U:42%(3h14m) W:10%" {
		t.Errorf("usage block = %q", got)
	}
}

func TestUsageBlockUnparseableReset(t *testing.T) {
	d := baseData()
	d.Usage = &usage.Snapshot{SessionPercent: fl(42), SessionReset: "whenever"}
	if got := renderUsage(d); got != "U:42%" {
		t.Errorf("usage block = %q, want bare percent", got)
	}
}

func TestSonnetThreshold(t *testing.T) {
	d := baseData()
	d.Usage = &usage.Snapshot{SonnetPercent: fl(24)}
	if got := renderUsage(d); got != "" {
		t.Errorf("sonnet below threshold rendered %q", got)
	}

	d.Usage.SonnetPercent = fl(25)
	if got := renderUsage(d); got != "S:25%" {
		t.Errorf("sonnet at threshold = %q", got)
	}

	d.Cfg.ShowSonnet = false
	if got := renderUsage(d); got != "" {
		t.Errorf("disabled sonnet rendered %q", got)
	}
}

func TestExtraSpendConditions(t *testing.T) {
	d := baseData()

	full := &usage.Snapshot{
		SessionPercent: fl(60),
		ExtraSpent:     fl(1.5),
		ExtraLimit:     fl(2),
	}
	d.Usage = full
	if got := renderUsage(d); got != "U:60% $1.5/2" {
		t.Errorf("extra spend block = %q", got)
	}

	// Below the session threshold: extra omitted.
	d.Usage = &usage.Snapshot{SessionPercent: fl(59), ExtraSpent: fl(1.5), ExtraLimit: fl(2)}
	if got := renderUsage(d); strings.Contains(got, "$") {
		t.Errorf("extra shown below threshold: %q", got)
	}

	// Missing session percent: extra omitted regardless of amounts.
	d.Usage = &usage.Snapshot{ExtraSpent: fl(1.5), ExtraLimit: fl(2)}
	if got := renderUsage(d); got != "" {
		t.Errorf("extra shown without session percent: %q", got)
	}

	// Missing either amount: omitted.
	d.Usage = &usage.Snapshot{SessionPercent: fl(90), ExtraSpent: fl(1.5)}
	if got := renderUsage(d); strings.Contains(got, "$") {
		t.Errorf("extra shown without limit: %q", got)
	}
}

func TestRefreshFragment(t *testing.T) {
	d := baseData()
	d.Usage = &usage.Snapshot{LastUpdated: isoIn(d.Now, -4*time.Minute)}
	got := renderUsage(d)
	if !strings.HasPrefix(got, "⟳") {
		t.Errorf("refresh fragment = %q", got)
	}

	// Cache older than its lifetime: nothing left to count down.
	d.Usage = &usage.Snapshot{LastUpdated: isoIn(d.Now, -11*time.Minute)}
	if got := renderUsage(d); got != "" {
		t.Errorf("expired refresh rendered %q", got)
	}
}

func TestFormatAmount(t *testing.T) {
	cases := []struct {
		in   float64
		want string
	}{
		{1.50, "1.5"},
		{2.00, "2"},
		{3.14, "3.14"},
		{0.50, "0.5"},
		{10, "10"},
	}
	for _, c := range cases {
		if got := FormatAmount(c.in); got != c.want {
			t.Errorf("FormatAmount(%v) = %q, want %q", c.in, got, c.want)
		}
	}
}

// Property: disabling one section removes exactly that fragment and one
// adjacent separator, leaving order untouched.
func TestSectionOmissionProperty(t *testing.T) {
	d := baseData()
	d.Hostname = "devbox"
	d.Cfg.ShowTimestamp = true
	d.Cfg.ShowHostname = true
	d.Payload = &input.Payload{
		Workspace: input.Workspace{CurrentDir: "/proj"},
		Model:     input.Model{DisplayName: "Opus"},
		Context:   input.Context{UsedPercentage: fl(50)},
		Cost: input.Cost{
			TotalCostUSD:      fl(1.37),
			TotalLinesAdded:   in(5),
			TotalLinesRemoved: in(2),
		},
	}
	d.Git = gitstatus.Status{Branch: "main", Staged: true}
	d.Tickets = &tickets.Counts{InProgress: 2}
	d.Usage = &usage.Snapshot{SessionPercent: fl(30)}

	// All sections render something with this data.
	baseline := Render(d)
	baseFrags := strings.Split(baseline, " ")

	disable := map[string]func(*config.Config){
		"timestamp": func(c *config.Config) { c.ShowTimestamp = false },
		"hostname":  func(c *config.Config) { c.ShowHostname = false },
		"directory": func(c *config.Config) { c.ShowDirectory = false },
		"git":       func(c *config.Config) { c.ShowGit = false },
		"tickets":   func(c *config.Config) { c.ShowTickets = false },
		"lines":     func(c *config.Config) { c.ShowLineChanges = false },
		"session":   func(c *config.Config) { c.ShowSession = false },
		"usage":     func(c *config.Config) { c.ShowUsage = false },
		"cost":      func(c *config.Config) { c.ShowCost = false },
	}

	rapid.Check(t, func(t *rapid.T) {
		idx := rapid.IntRange(0, len(Sections)-1).Draw(t, "section")
		sec := Sections[idx]

		cfg := d.Cfg
		disable[sec.Name](&cfg)
		modified := *d
		modified.Cfg = cfg

		got := Render(&modified)
		gotFrags := strings.Split(got, " ")

		// The section may render multiple space-joined parts; reconstruct
		// the expectation from the section's own fragment.
		frag := sec.Render(d)
		fragParts := strings.Split(frag, " ")
		want := append([]string{}, baseFrags[:indexOf(baseFrags, fragParts[0])]...)
		want = append(want, baseFrags[indexOf(baseFrags, fragParts[0])+len(fragParts):]...)

		if strings.Join(want, " ") != strings.Join(gotFrags, " ") {
			t.Fatalf("disabling %s: got %q, want %q (baseline %q)",
				sec.Name, got, strings.Join(want, " "), baseline)
		}
	})
}

func indexOf(haystack []string, needle string) int {
	for i, s := range haystack {
		if s == needle {
			return i
		}
	}
	return -1
}

func TestRenderOrderStable(t *testing.T) {
	d := baseData()
	d.Cfg.ShowTimestamp = false
	d.Payload = &input.Payload{
		Workspace: input.Workspace{CurrentDir: "/proj"},
		Cost:      input.Cost{TotalCostUSD: fl(0.5)},
	}
	d.Git = gitstatus.Status{Branch: "dev"}
	got := Render(d)
	want := fmt.Sprintf("/proj dev [$%.2f]", 0.5)
	if got != want {
		t.Errorf("Render = %q, want %q", got, want)
	}
}
