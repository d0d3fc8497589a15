package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/side-effects/internal/campaign"
)

// TitleChoice is what the player picked on the title screen.
type TitleChoice int

const (
	TitleNone TitleChoice = iota
	TitleContinue
	TitleNewCampaign
	TitleResetProgress
	TitleQuit
)

const introText = `Balls of four colors rain into the arena.
Bat each one into the corner of its own color with your square.
Every side of the square carries an effect. Pass a level to unlock more.`

// TitleItem is one entry of the title menu.
type TitleItem struct {
	Label  string
	Choice TitleChoice
}

// TitleKeyMap defines the key bindings for the title screen.
type TitleKeyMap struct {
	Up     key.Binding
	Down   key.Binding
	Select key.Binding
	Quit   key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k TitleKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Select, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k TitleKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}

// DefaultTitleKeyMap returns the default key bindings.
func DefaultTitleKeyMap() TitleKeyMap {
	return TitleKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "w", "k"),
			key.WithHelp("up/w", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "s", "j"),
			key.WithHelp("down/s", "down"),
		),
		Select: key.NewBinding(
			key.WithKeys("enter", " "),
			key.WithHelp("enter", "select"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229")).Padding(0, 2)
	introStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("252")).Align(lipgloss.Center)
	statusStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
)

// TitleModel is the screen shown before the first level: resume the saved
// campaign, start over or wipe the saved progress.
type TitleModel struct {
	items   []TitleItem
	cursor  int
	keys    TitleKeyMap
	help    help.Model
	width   int
	height  int
	status  string
	confirm bool // Reset progress was selected once and awaits a second enter
	choice  TitleChoice
}

// NewTitleModel builds the menu for c. Continue is offered once the campaign
// is past level 1.
func NewTitleModel(c *campaign.Campaign, width, height int) TitleModel {
	var items []TitleItem
	if lvl := c.Level().ID; lvl > 1 {
		items = append(items, TitleItem{Label: fmt.Sprintf("Continue (level %d)", lvl), Choice: TitleContinue})
	}
	items = append(items,
		TitleItem{Label: "New campaign", Choice: TitleNewCampaign},
		TitleItem{Label: "Reset progress", Choice: TitleResetProgress},
		TitleItem{Label: "Quit", Choice: TitleQuit},
	)

	h := help.New()
	h.Width = width
	return TitleModel{
		items:  items,
		keys:   DefaultTitleKeyMap(),
		help:   h,
		width:  width,
		height: height,
	}
}

// WithStatus returns the model with a one-line message under the menu.
func (m TitleModel) WithStatus(s string) TitleModel {
	m.status = s
	return m
}

// Init initializes the title model.
func (m TitleModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the title screen.
func (m TitleModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg), nil

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
	}
	return m, nil
}

func (m TitleModel) handleKey(msg tea.KeyMsg) TitleModel {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.choice = TitleQuit
		return m

	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}

	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(m.items)-1 {
			m.cursor++
		}

	case key.Matches(msg, m.keys.Select):
		item := m.items[m.cursor]
		if item.Choice == TitleResetProgress && !m.confirm {
			m.confirm = true
			m.status = "Press enter again to erase the saved campaign"
			return m
		}
		m.choice = item.Choice
		return m
	}

	m.confirm = false
	m.status = ""
	return m
}

// Choice returns what the player picked, or TitleNone.
func (m TitleModel) Choice() TitleChoice {
	return m.choice
}

// View renders the title screen.
func (m TitleModel) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("S I D E   E F F E C T S"))
	b.WriteString("\n\n")
	b.WriteString(introStyle.Render(introText))
	b.WriteString("\n\n")

	for i, item := range m.items {
		line := "  " + item.Label + "  "
		if i == m.cursor {
			line = cursorStyle.Render("> " + item.Label + "  ")
		}
		b.WriteString(line)
		b.WriteString("\n")
	}

	b.WriteString("\n")
	if m.status != "" {
		b.WriteString(statusStyle.Render(m.status))
	}
	b.WriteString("\n")
	b.WriteString(m.help.View(m.keys))

	content := lipgloss.NewStyle().Align(lipgloss.Center).Render(b.String())
	if m.width <= 0 || m.height <= 0 {
		return content
	}
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, content)
}
