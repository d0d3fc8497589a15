package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/side-effects/internal/campaign"
)

func titleUpdate(t *testing.T, m TitleModel, msg tea.Msg) TitleModel {
	t.Helper()
	next, _ := m.Update(msg)
	tm, ok := next.(TitleModel)
	if !ok {
		t.Fatalf("Update returned %T", next)
	}
	return tm
}

func TestTitleItems(t *testing.T) {
	c := campaign.New(campaign.Options{})
	m := NewTitleModel(c, 80, 24)

	want := []TitleChoice{TitleNewCampaign, TitleResetProgress, TitleQuit}
	if len(m.items) != len(want) {
		t.Fatalf("items = %v", m.items)
	}
	for i, item := range m.items {
		if item.Choice != want[i] {
			t.Errorf("item %d = %v, want %v", i, item.Choice, want[i])
		}
	}
}

func TestTitleCursorStaysInMenu(t *testing.T) {
	m := NewTitleModel(campaign.New(campaign.Options{}), 80, 24)

	m = titleUpdate(t, m, tea.KeyMsg{Type: tea.KeyUp})
	if m.cursor != 0 {
		t.Errorf("cursor = %d after up at the top", m.cursor)
	}
	for range 10 {
		m = titleUpdate(t, m, tea.KeyMsg{Type: tea.KeyDown})
	}
	if m.cursor != len(m.items)-1 {
		t.Errorf("cursor = %d, want last item", m.cursor)
	}
	m = titleUpdate(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if m.Choice() != TitleQuit {
		t.Errorf("choice = %v, want quit", m.Choice())
	}
}

func TestTitleResetNeedsConfirmation(t *testing.T) {
	m := NewTitleModel(campaign.New(campaign.Options{}), 80, 24)
	m = titleUpdate(t, m, tea.KeyMsg{Type: tea.KeyDown})

	m = titleUpdate(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if m.Choice() != TitleNone || !m.confirm {
		t.Fatal("first enter on reset should only arm the confirmation")
	}

	// Moving away disarms it.
	m = titleUpdate(t, m, tea.KeyMsg{Type: tea.KeyUp})
	m = titleUpdate(t, m, tea.KeyMsg{Type: tea.KeyDown})
	if m.confirm || m.status != "" {
		t.Fatal("moving the cursor should cancel the confirmation")
	}

	m = titleUpdate(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	m = titleUpdate(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if m.Choice() != TitleResetProgress {
		t.Errorf("choice = %v, want reset", m.Choice())
	}
}

func TestTitleResize(t *testing.T) {
	m := NewTitleModel(campaign.New(campaign.Options{}), 80, 24)
	m = titleUpdate(t, m, tea.WindowSizeMsg{Width: 100, Height: 30})
	if m.width != 100 || m.height != 30 || m.help.Width != 100 {
		t.Errorf("size = %dx%d help %d", m.width, m.height, m.help.Width)
	}
	if m.View() == "" {
		t.Error("view should render")
	}
}
