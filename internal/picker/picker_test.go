package picker

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func updateModel(m model, msg tea.Msg) (model, tea.Cmd) {
	next, cmd := m.Update(msg)
	return next.(model), cmd
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func isQuit(t *testing.T, cmd tea.Cmd) bool {
	t.Helper()
	if cmd == nil {
		return false
	}
	_, ok := cmd().(tea.QuitMsg)
	return ok
}

func TestModelChoose(t *testing.T) {
	m := newModel("Namespace", []string{"apps", "default", "monitoring"})
	m, _ = updateModel(m, tea.WindowSizeMsg{Width: 80, Height: 20})

	m, _ = updateModel(m, tea.KeyMsg{Type: tea.KeyDown})
	m, cmd := updateModel(m, tea.KeyMsg{Type: tea.KeyEnter})

	assert.True(t, isQuit(t, cmd))
	assert.Equal(t, "default", m.chosen)
	assert.False(t, m.aborted)
}

func TestModelAbort(t *testing.T) {
	tests := []struct {
		name string
		msg  tea.KeyMsg
	}{
		{name: "q", msg: runes("q")},
		{name: "esc", msg: tea.KeyMsg{Type: tea.KeyEsc}},
		{name: "ctrl+c", msg: tea.KeyMsg{Type: tea.KeyCtrlC}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := newModel("Pod", []string{"web-1"})
			m, cmd := updateModel(m, tt.msg)
			assert.True(t, isQuit(t, cmd))
			assert.True(t, m.aborted)
			assert.Empty(t, m.chosen)
		})
	}
}

func TestModelFilterThenChoose(t *testing.T) {
	m := newModel("Pod", []string{"api-0", "web-1", "worker-2"})
	m, _ = updateModel(m, tea.WindowSizeMsg{Width: 80, Height: 20})

	m, _ = updateModel(m, runes("/"))
	require.Equal(t, list.Filtering, m.list.FilterState())

	// Typed into the filter, not a quit.
	m, _ = updateModel(m, runes("q"))
	assert.False(t, m.aborted)
	assert.Equal(t, list.Filtering, m.list.FilterState())

	m.list.SetFilterText("web")
	require.Equal(t, list.FilterApplied, m.list.FilterState())

	m, cmd := updateModel(m, tea.KeyMsg{Type: tea.KeyEnter})
	assert.True(t, isQuit(t, cmd))
	assert.Equal(t, "web-1", m.chosen)
}

func TestModelEscClearsAppliedFilter(t *testing.T) {
	m := newModel("Pod", []string{"api-0", "web-1"})
	m.list.SetFilterText("web")
	require.Equal(t, list.FilterApplied, m.list.FilterState())

	m, cmd := updateModel(m, tea.KeyMsg{Type: tea.KeyEsc})
	assert.False(t, isQuit(t, cmd))
	assert.False(t, m.aborted)
	assert.Equal(t, list.Unfiltered, m.list.FilterState())
}

func TestModelCopy(t *testing.T) {
	original := writeClipboard
	defer func() { writeClipboard = original }()

	var copied string
	writeClipboard = func(s string) error {
		copied = s
		return nil
	}

	m := newModel("Pod", []string{"web-1", "web-2"})
	m, _ = updateModel(m, tea.KeyMsg{Type: tea.KeyDown})
	m, cmd := updateModel(m, runes("y"))

	assert.Equal(t, "web-2", copied)
	assert.NotNil(t, cmd, "a status message is shown")
	assert.Empty(t, m.chosen)
	assert.False(t, m.aborted)
}

func TestModelCopyFailure(t *testing.T) {
	original := writeClipboard
	defer func() { writeClipboard = original }()
	writeClipboard = func(string) error { return errors.New("no clipboard utility") }

	m := newModel("Pod", []string{"web-1"})
	_, cmd := updateModel(m, runes("y"))
	assert.NotNil(t, cmd, "a status message is shown")
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		name  string
		in    string
		width int
		want  string
	}{
		{name: "fits", in: "web-1", width: 10, want: "web-1"},
		{name: "cut", in: "very-long-pod-name", width: 8, want: "very-lo…"},
		{name: "wide runes", in: "日本語のポッド", width: 7, want: "日本語…"},
		{name: "no width", in: "web-1", width: 0, want: "web-1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, truncate(tt.in, tt.width))
		})
	}
}

func TestDelegateRender(t *testing.T) {
	m := newModel("Pod", []string{"web-1", "web-2"})
	var buf bytes.Buffer

	optionDelegate{}.Render(&buf, m.list, 1, option("web-2"))
	assert.Equal(t, "  web-2", buf.String())

	buf.Reset()
	optionDelegate{}.Render(&buf, m.list, 0, option("web-1"))
	assert.Contains(t, buf.String(), "> web-1")
}

func TestSelectNoOptions(t *testing.T) {
	p := &Picker{Input: strings.NewReader(""), Output: &bytes.Buffer{}}
	_, err := p.Select(context.Background(), "Pod", nil)
	assert.ErrorIs(t, err, ErrNoOptions)
}

func TestSelectRunsProgram(t *testing.T) {
	p := &Picker{Input: strings.NewReader("j\r"), Output: &bytes.Buffer{}}
	got, err := p.Select(context.Background(), "Pod", []string{"web-1", "web-2"})
	require.NoError(t, err)
	assert.Equal(t, "web-2", got)
}

func TestSelectAborted(t *testing.T) {
	p := &Picker{Input: strings.NewReader("q"), Output: &bytes.Buffer{}}
	_, err := p.Select(context.Background(), "Pod", []string{"web-1"})
	assert.ErrorIs(t, err, ErrAborted)
}
