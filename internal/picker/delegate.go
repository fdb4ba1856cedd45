package picker

import (
	"fmt"
	"io"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("170")).
			PaddingLeft(1)
	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("170")).
			Bold(true)
	statusBarStyle = lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "60", Dark: "110"}).
			PaddingLeft(2)
)

// option is one selectable name.
type option string

func (o option) FilterValue() string { return string(o) }

// optionDelegate renders one option per line with a cursor marker.
type optionDelegate struct{}

func (d optionDelegate) Height() int                             { return 1 }
func (d optionDelegate) Spacing() int                            { return 0 }
func (d optionDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd { return nil }

func (d optionDelegate) Render(w io.Writer, m list.Model, index int, listItem list.Item) {
	o, ok := listItem.(option)
	if !ok {
		return
	}

	// Two columns of cursor, two of padding.
	name := truncate(string(o), m.Width()-4)
	if index == m.Index() {
		fmt.Fprint(w, selectedStyle.Render("> "+name))
		return
	}
	fmt.Fprint(w, "  "+name)
}

// truncate shortens s to at most width display columns, marking the cut
// with an ellipsis. A non-positive width leaves s unchanged.
func truncate(s string, width int) string {
	if width <= 0 || runewidth.StringWidth(s) <= width {
		return s
	}
	return runewidth.Truncate(s, width, "…")
}
