package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/side-effects/internal/storage"
)

const (
	minWidthSideBySide = 90  // Narrower terminals stack the tables
	maxResults         = 100 // Results loaded per level
)

// ScoreboardKeyMap defines the key bindings for the results browser.
type ScoreboardKeyMap struct {
	PrevLevel key.Binding
	NextLevel key.Binding
	Up        key.Binding
	Down      key.Binding
	Close     key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k ScoreboardKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.PrevLevel, k.NextLevel, k.Up, k.Down, k.Close}
}

// FullHelp returns key bindings for the full help view.
func (k ScoreboardKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}

// DefaultScoreboardKeyMap returns default key bindings.
func DefaultScoreboardKeyMap() ScoreboardKeyMap {
	return ScoreboardKeyMap{
		PrevLevel: key.NewBinding(
			key.WithKeys("left", "h", "shift+tab"),
			key.WithHelp("left", "prev level"),
		),
		NextLevel: key.NewBinding(
			key.WithKeys("right", "l", "tab"),
			key.WithHelp("right", "next level"),
		),
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("up", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("down", "scroll down"),
		),
		Close: key.NewBinding(
			key.WithKeys("q", "esc", "ctrl+c"),
			key.WithHelp("q", "close"),
		),
	}
}

var (
	boardTitleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	boardBoxStyle   = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 1)
	boardEmptyStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Italic(true).
			Padding(1, 2)
)

// ScoreboardModel is the results browser: a summary row per played level
// and the best attempts of the selected level.
type ScoreboardModel struct {
	store   *storage.Store
	levels  []storage.LevelStats
	results []storage.Result
	loadErr error

	summary table.Model
	detail  table.Model
	help    help.Model
	keys    ScoreboardKeyMap

	width    int
	height   int
	quitting bool
}

// NewScoreboardModel creates a results browser reading from store.
func NewScoreboardModel(store *storage.Store, width, height int) ScoreboardModel {
	m := ScoreboardModel{
		store:  store,
		help:   help.New(),
		keys:   DefaultScoreboardKeyMap(),
		width:  width,
		height: height,
	}
	if store != nil {
		m.levels, m.loadErr = store.LevelStats()
	}
	m.layout()
	m.loadResults()
	return m
}

// tableHeight is the number of rows each table shows.
func (m ScoreboardModel) tableHeight() int {
	h := m.height - 8 // Title, help, borders
	if m.width < minWidthSideBySide {
		h /= 2
	}
	return max(h, 3)
}

// layout rebuilds both tables for the current size.
func (m *ScoreboardModel) layout() {
	styles := table.DefaultStyles()
	styles.Header = styles.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	styles.Selected = styles.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)

	cursor := m.summary.Cursor()

	m.summary = table.New(
		table.WithColumns([]table.Column{
			{Title: "Level", Width: 5},
			{Title: "Best", Width: 5},
			{Title: "Passed", Width: 7},
		}),
		table.WithFocused(true),
		table.WithHeight(m.tableHeight()),
		table.WithStyles(styles),
	)
	rows := make([]table.Row, len(m.levels))
	for i, ls := range m.levels {
		rows[i] = table.Row{
			fmt.Sprintf("%d", ls.Level),
			fmt.Sprintf("%d", ls.BestScore),
			fmt.Sprintf("%d/%d", ls.Passes, ls.Attempts),
		}
	}
	m.summary.SetRows(rows)
	if cursor < len(rows) {
		m.summary.SetCursor(cursor)
	}

	playerWidth := 10
	if m.width >= minWidthSideBySide {
		playerWidth += min(m.width-minWidthSideBySide, 14)
	}
	styles.Selected = lipgloss.NewStyle()
	m.detail = table.New(
		table.WithColumns([]table.Column{
			{Title: "Rank", Width: 5},
			{Title: "Score", Width: 6},
			{Title: "Result", Width: 6},
			{Title: "Player", Width: playerWidth},
			{Title: "Date", Width: 12},
		}),
		table.WithHeight(m.tableHeight()),
		table.WithStyles(styles),
	)
	m.fillDetail()
}

// selectedLevel returns the level under the summary cursor.
func (m ScoreboardModel) selectedLevel() (int, bool) {
	i := m.summary.Cursor()
	if i < 0 || i >= len(m.levels) {
		return 0, false
	}
	return m.levels[i].Level, true
}

// loadResults loads the best attempts of the selected level.
func (m *ScoreboardModel) loadResults() {
	m.results = nil
	if lvl, ok := m.selectedLevel(); ok && m.store != nil {
		if results, err := m.store.TopScores(lvl, maxResults); err == nil {
			m.results = results
		}
	}
	m.fillDetail()
}

func (m *ScoreboardModel) fillDetail() {
	rows := make([]table.Row, len(m.results))
	for i, r := range m.results {
		result := "fail"
		if r.Passed {
			result = "pass"
		}
		player := r.Player
		if player == "" {
			player = "local"
		}
		rows[i] = table.Row{
			fmt.Sprintf("#%d", i+1),
			fmt.Sprintf("%d", r.Score),
			result,
			player,
			r.CreatedAt.Format("Jan 02 15:04"),
		}
	}
	m.detail.SetRows(rows)
	m.detail.GotoTop()
}

// Init initializes the scoreboard model.
func (m ScoreboardModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the scoreboard.
func (m ScoreboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Close):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.NextLevel), key.Matches(msg, m.keys.PrevLevel):
			if n := len(m.levels); n > 0 {
				step := 1
				if key.Matches(msg, m.keys.PrevLevel) {
					step = n - 1
				}
				m.summary.SetCursor((m.summary.Cursor() + step) % n)
				m.loadResults()
			}
			return m, nil

		case key.Matches(msg, m.keys.Up), key.Matches(msg, m.keys.Down):
			var cmd tea.Cmd
			m.detail, cmd = m.detail.Update(msg)
			return m, cmd
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.layout()
	}
	return m, nil
}

// View renders the scoreboard.
func (m ScoreboardModel) View() string {
	if m.quitting {
		return ""
	}

	title := "RESULTS"
	if lvl, ok := m.selectedLevel(); ok {
		title = fmt.Sprintf("RESULTS - LEVEL %d", lvl)
	}

	var body string
	switch {
	case m.loadErr != nil:
		body = boardEmptyStyle.Render("Could not read results:\n" + m.loadErr.Error())
	case len(m.levels) == 0:
		body = boardEmptyStyle.Render("No results recorded yet.\nFinish a level to get on the board!")
	case m.width >= minWidthSideBySide:
		body = lipgloss.JoinHorizontal(lipgloss.Top,
			boardBoxStyle.Render(m.summary.View()), "  ", boardBoxStyle.Render(m.detail.View()))
	default:
		body = lipgloss.JoinVertical(lipgloss.Left,
			boardBoxStyle.Render(m.summary.View()), boardBoxStyle.Render(m.detail.View()))
	}

	var b strings.Builder
	b.WriteString(lipgloss.PlaceHorizontal(m.width, lipgloss.Center, boardTitleStyle.Render(title)))
	b.WriteString("\n\n")
	b.WriteString(lipgloss.PlaceHorizontal(m.width, lipgloss.Center, body))
	b.WriteString("\n")
	b.WriteString(dimStyle.Render(m.help.View(m.keys)))
	return b.String()
}

// IsQuitting reports whether the browser was closed.
func (m ScoreboardModel) IsQuitting() bool {
	return m.quitting
}

// RunScoreboard runs the results browser until the player closes it.
func RunScoreboard(store *storage.Store, width, height int) error {
	p := tea.NewProgram(
		NewScoreboardModel(store, width, height),
		tea.WithAltScreen(),
	)
	_, err := p.Run()
	return err
}
