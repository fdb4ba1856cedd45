package picker

import (
	"fmt"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
)

// writeClipboard is mockable for tests.
var writeClipboard = clipboard.WriteAll

const (
	defaultWidth  = 80
	defaultHeight = 20
)

// model is the bubbletea model behind Select.
type model struct {
	list    list.Model
	keys    keyMap
	chosen  string
	aborted bool
}

func newModel(prompt string, options []string) model {
	items := make([]list.Item, len(options))
	for i, o := range options {
		items[i] = option(o)
	}

	keys := defaultKeyMap()
	l := list.New(items, optionDelegate{}, defaultWidth, defaultHeight)
	l.Title = prompt
	l.SetShowStatusBar(true)
	l.SetFilteringEnabled(true)
	l.SetShowHelp(true)
	l.Styles.Title = titleStyle
	l.Styles.StatusBar = statusBarStyle
	// Quitting is handled here so that it can be told apart from a choice.
	l.KeyMap.Quit.SetEnabled(false)
	l.KeyMap.ForceQuit.SetEnabled(false)
	l.AdditionalShortHelpKeys = func() []key.Binding {
		return []key.Binding{keys.Choose, keys.Copy, keys.Abort}
	}
	l.AdditionalFullHelpKeys = l.AdditionalShortHelpKeys

	return model{list: l, keys: keys}
}

func (m model) Init() tea.Cmd {
	return nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.list.SetSize(msg.Width, msg.Height)
		return m, nil

	case tea.KeyMsg:
		if key.Matches(msg, m.keys.ForceQuit) {
			m.aborted = true
			return m, tea.Quit
		}
		// While the filter is being typed every key belongs to it.
		if m.list.FilterState() == list.Filtering {
			break
		}
		switch {
		case key.Matches(msg, m.keys.Choose):
			if o, ok := m.list.SelectedItem().(option); ok {
				m.chosen = string(o)
				return m, tea.Quit
			}
			return m, nil
		case key.Matches(msg, m.keys.Copy):
			return m, m.copySelected()
		case key.Matches(msg, m.keys.Abort):
			if m.list.FilterState() == list.FilterApplied {
				m.list.ResetFilter()
				return m, nil
			}
			m.aborted = true
			return m, tea.Quit
		}
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m *model) copySelected() tea.Cmd {
	o, ok := m.list.SelectedItem().(option)
	if !ok {
		return nil
	}
	if err := writeClipboard(string(o)); err != nil {
		return m.list.NewStatusMessage(fmt.Sprintf("Copy failed: %v", err))
	}
	return m.list.NewStatusMessage(fmt.Sprintf("Copied %s", o))
}

func (m model) View() string {
	return m.list.View()
}
