// Package livedash provides a Bubble Tea view of the usage dashboard that
// re-reads the snapshot on a ticker, so quota consumption can be watched
// while a session runs.
package livedash

import (
	"strconv"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/mgrude/ccstatus/internal/classify"
	"github.com/mgrude/ccstatus/internal/dashboard"
	"github.com/mgrude/ccstatus/internal/theme"
	"github.com/mgrude/ccstatus/internal/usage"
)

// refreshEvery is how often the cached snapshot is re-read. The cache has
// its own lifetime; polling faster only picks up external refreshes sooner.
const refreshEvery = 30 * time.Second

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("15")).
			Background(lipgloss.Color("62")).
			Padding(0, 2)

	panelStyle = lipgloss.NewStyle().Padding(0, 2)

	hintStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
)

type tickMsg time.Time

type snapshotMsg struct {
	snap *usage.Snapshot
	err  error
}

// Model is the root Bubble Tea model for the live dashboard.
type Model struct {
	source *usage.Source
	snap   *usage.Snapshot
	err    error
	bar    progress.Model
	width  int
}

// New creates a live dashboard over the given snapshot source.
func New(source *usage.Source) Model {
	bar := progress.New(progress.WithDefaultGradient())
	bar.Width = dashboard.BarWidth
	return Model{source: source, bar: bar}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.load(false), tick())
}

func tick() tea.Cmd {
	return tea.Tick(refreshEvery, func(t time.Time) tea.Msg { return tickMsg(t) })
}

func (m Model) load(force bool) tea.Cmd {
	source := m.source
	return func() tea.Msg {
		snap, err := source.Load(force)
		return snapshotMsg{snap: snap, err: err}
	}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case "r":
			return m, m.load(true)
		}
	case tea.WindowSizeMsg:
		m.width = msg.Width
	case tickMsg:
		return m, tea.Batch(m.load(false), tick())
	case snapshotMsg:
		m.snap, m.err = msg.snap, msg.err
	}
	return m, nil
}

func (m Model) View() string {
	title := titleStyle.Render("ccstatus — usage")
	body := m.renderBody()
	hint := hintStyle.Render("  r refresh  q quit")
	return lipgloss.JoinVertical(lipgloss.Left, title, "", body, "", hint)
}

func (m Model) renderBody() string {
	if m.err != nil {
		return panelStyle.Render(theme.Alert.Render("no usage data: " + m.err.Error()))
	}
	if m.snap == nil {
		return panelStyle.Render("Loading…")
	}

	var sections []string
	for _, p := range dashboard.Panels(m.snap, time.Now()) {
		band := classify.Classify(float64(p.Percent), classify.Usage)
		lines := theme.Title.Render(p.Title) + "\n" +
			m.bar.ViewAs(float64(p.Percent)/100) + "\n" +
			theme.Band(band).Render(strconv.Itoa(p.Percent)+"% used")
		if p.Extra != "" {
			lines += "\n" + p.Extra
		}
		if p.Reset != "" {
			lines += "\n" + theme.Dim.Render(p.Reset)
		}
		sections = append(sections, panelStyle.Render(lines))
	}
	if len(sections) == 0 {
		return panelStyle.Render(theme.Alert.Render("no usage percentages available"))
	}
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// Run starts the live dashboard in the alternate screen.
func Run(source *usage.Source) error {
	p := tea.NewProgram(New(source), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
