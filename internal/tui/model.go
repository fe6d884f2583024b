package tui

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/tallyhq/tally/internal/engine"
)

// Model is the today dashboard: every habit due today with its completion
// state and streak, toggled in place.
type Model struct {
	eng      *engine.Engine
	list     list.Model
	keys     KeyMap
	err      error
	quitting bool
}

func NewModel(eng *engine.Engine) Model {
	keys := DefaultKeyMap()

	l := list.New(nil, list.NewDefaultDelegate(), 0, 0)
	l.Title = "Due today — " + eng.Today()
	l.Styles.Title = titleStyle
	l.SetShowStatusBar(false)
	l.AdditionalShortHelpKeys = func() []key.Binding {
		return []key.Binding{keys.Toggle, keys.Refresh}
	}

	m := Model{
		eng:  eng,
		list: l,
		keys: keys,
	}
	m.refresh()
	return m
}

func (m *Model) refresh() {
	entries, err := m.eng.TodaysAgenda()
	if err != nil {
		m.err = err
		return
	}
	m.err = nil

	items := make([]list.Item, 0, len(entries))
	for _, entry := range entries {
		items = append(items, Item{Entry: entry})
	}
	m.list.SetItems(items)
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		h, v := docStyle.GetFrameSize()
		m.list.SetSize(msg.Width-h, msg.Height-v)

	case tea.KeyMsg:
		// Don't intercept keys while the list filter input is active.
		if m.list.FilterState() == list.Filtering {
			break
		}
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.Toggle):
			if item, ok := m.list.SelectedItem().(Item); ok {
				if _, err := m.eng.Toggle(item.Entry.Habit.ID, ""); err != nil {
					m.err = err
				} else {
					m.refresh()
				}
			}
			return m, nil

		case key.Matches(msg, m.keys.Refresh):
			m.refresh()
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	if m.quitting {
		return ""
	}
	if m.err != nil {
		return docStyle.Render(errStyle.Render("Error: "+m.err.Error()) + "\n\n" + m.list.View())
	}
	return docStyle.Render(m.list.View())
}
