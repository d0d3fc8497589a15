package tui

import (
	"fmt"
	"slices"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/side-effects/internal/campaign"
	"github.com/vovakirdan/side-effects/internal/sides"
)

// ReportChoice is what the player picked on the between-levels screen.
type ReportChoice int

const (
	ChoiceNone ReportChoice = iota
	ChoiceNext
	ChoiceRetry
	ChoiceQuit
)

// ReportKeyMap defines the key bindings for the between-levels screen.
type ReportKeyMap struct {
	Up       key.Binding
	Down     key.Binding
	PrevType key.Binding
	NextType key.Binding
	Continue key.Binding
	Retry    key.Binding
	Quit     key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k ReportKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.PrevType, k.NextType, k.Continue, k.Retry, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k ReportKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.PrevType, k.NextType},
		{k.Continue, k.Retry, k.Quit},
	}
}

// DefaultReportKeyMap returns the default key bindings.
func DefaultReportKeyMap() ReportKeyMap {
	return ReportKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "w", "k"),
			key.WithHelp("up/w", "prev side"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "s", "j"),
			key.WithHelp("down/s", "next side"),
		),
		PrevType: key.NewBinding(
			key.WithKeys("left", "a", "h"),
			key.WithHelp("left/a", "prev effect"),
		),
		NextType: key.NewBinding(
			key.WithKeys("right", "d", "l"),
			key.WithHelp("right/d", "next effect"),
		),
		Continue: key.NewBinding(
			key.WithKeys("enter", " "),
			key.WithHelp("enter", "continue"),
		),
		Retry: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "replay level"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

var (
	reportTitleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	passStyle        = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("10"))
	failStyle        = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("9"))
	unlockStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("14"))
	cursorStyle      = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229")).Background(lipgloss.Color("57"))
	dimStyle         = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	panelStyle       = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(lipgloss.Color("240")).
				Padding(0, 2)
)

// ReportModel is the between-levels screen: the score report, the newly
// unlocked side types and the side configuration for the next attempt.
type ReportModel struct {
	campaign *campaign.Campaign
	result   campaign.Result
	cursor   sides.ID
	keys     ReportKeyMap
	help     help.Model
	width    int
	height   int
	choice   ReportChoice
}

// NewReportModel creates the screen for a finished level.
func NewReportModel(c *campaign.Campaign, r campaign.Result, width, height int) ReportModel {
	h := help.New()
	h.Width = width
	return ReportModel{
		campaign: c,
		result:   r,
		keys:     DefaultReportKeyMap(),
		help:     h,
		width:    width,
		height:   height,
	}
}

// Init initializes the report model.
func (m ReportModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the report screen.
func (m ReportModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.choice = ChoiceQuit
		case key.Matches(msg, m.keys.Up):
			m.cursor = (m.cursor + sides.Count - 1) % sides.Count
		case key.Matches(msg, m.keys.Down):
			m.cursor = (m.cursor + 1) % sides.Count
		case key.Matches(msg, m.keys.PrevType):
			m.cycle(-1)
		case key.Matches(msg, m.keys.NextType):
			m.cycle(1)
		case key.Matches(msg, m.keys.Retry):
			m.choice = ChoiceRetry
		case key.Matches(msg, m.keys.Continue):
			m.choice = ChoiceRetry
			if m.result.Passed {
				m.choice = ChoiceNext
			}
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
	}
	return m, nil
}

// cycle moves the selected side to the next selectable type in dir.
func (m *ReportModel) cycle(dir int) {
	types := m.campaign.SelectableTypes(m.cursor)
	if len(types) == 0 {
		return
	}
	i := slices.Index(types, m.campaign.Sides().Get(m.cursor))
	i = (i + dir + len(types)) % len(types)
	m.campaign.ConfigureSide(m.cursor, types[i])
}

// Choice returns what the player picked, or ChoiceNone.
func (m ReportModel) Choice() ReportChoice {
	return m.choice
}

// View renders the report screen.
func (m ReportModel) View() string {
	var b strings.Builder

	r := m.result
	b.WriteString(reportTitleStyle.Render(fmt.Sprintf("LEVEL %d COMPLETE", r.Level)))
	b.WriteString("\n\n")
	fmt.Fprintf(&b, "Score %d   (needed %d)   ", r.Score, r.MinScore)
	if r.Passed {
		b.WriteString(passStyle.Render("PASSED"))
	} else {
		b.WriteString(failStyle.Render("FAILED"))
	}
	b.WriteString("\n")

	for _, t := range r.Unlocked {
		b.WriteString("\n")
		b.WriteString(unlockStyle.Render("Unlocked: " + t.Name()))
		b.WriteString("\n")
		b.WriteString(dimStyle.Render("  " + t.Description()))
	}
	b.WriteString("\n\n")

	b.WriteString(m.renderSides())
	b.WriteString("\n\n")

	next := "Enter: replay level"
	if r.Passed {
		next = "Enter: next level"
	}
	b.WriteString(dimStyle.Render(next))
	b.WriteString("\n")
	b.WriteString(dimStyle.Render(m.help.View(m.keys)))

	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, panelStyle.Render(b.String()))
}

func (m ReportModel) renderSides() string {
	cfg := m.campaign.Sides()
	var b strings.Builder
	b.WriteString("Sides\n")
	for id := sides.ID(0); id < sides.Count; id++ {
		line := fmt.Sprintf(" %d  < %-20s > ", id, cfg.Get(id).Name())
		if id == m.cursor {
			b.WriteString(cursorStyle.Render(line))
			b.WriteString("  ")
			b.WriteString(dimStyle.Render(cfg.Get(id).Description()))
		} else {
			b.WriteString(line)
		}
		b.WriteString("\n")
	}
	b.WriteString(dimStyle.Render(fmt.Sprintf("%d effects unlocked", len(m.campaign.Unlocked()))))
	return b.String()
}
