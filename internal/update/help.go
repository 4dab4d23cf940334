package update

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"

	"github.com/sandeepkv93/assistd/internal/views"
)

type KeyBinding struct {
	Key    string
	Action string
}

type helpKeyMap struct {
	short []key.Binding
	full  [][]key.Binding
}

func (k helpKeyMap) ShortHelp() []key.Binding  { return k.short }
func (k helpKeyMap) FullHelp() [][]key.Binding { return k.full }

// renderHelpIfVisible lists the contextual bindings as plain lines and the
// full set through the bubbles help widget.
func (m Model) renderHelpIfVisible() string {
	if !m.HelpVisible {
		return ""
	}
	contextual := m.viewBindings()
	lines := make([]string, 0, len(contextual))
	for _, kb := range contextual {
		lines = append(lines, fmt.Sprintf("- %s: %s", kb.Key, kb.Action))
	}
	all := toKeyBindings(append(m.globalBindings(), contextual...))
	return views.RenderHelpPanel(views.HelpPanelData{
		CurrentView: string(m.CurrentView),
		Bindings:    lines,
		HelpView:    m.helpModel.View(helpKeyMap{short: all, full: [][]key.Binding{all}}),
	})
}

func (m Model) globalBindings() []KeyBinding {
	return []KeyBinding{
		{Key: m.Keys.Tasks, Action: "switch to Tasks"},
		{Key: m.Keys.Notes, Action: "switch to Notes"},
		{Key: m.Keys.Budget, Action: "switch to Budget"},
		{Key: m.Keys.Progress, Action: "switch to Progress"},
		{Key: "/", Action: "talk to the assistant"},
		{Key: m.Keys.Help, Action: "toggle help panel"},
		{Key: m.Keys.Quit, Action: "quit app"},
	}
}

func (m Model) viewBindings() []KeyBinding {
	switch m.CurrentView {
	case ViewTasks:
		return []KeyBinding{
			{Key: "j/k", Action: "move selection"},
			{Key: "space", Action: "complete selected task"},
			{Key: "d", Action: "delete selected task"},
			{Key: "p", Action: "cycle priority"},
			{Key: "s", Action: "cycle sort order"},
			{Key: "a", Action: "add task"},
		}
	case ViewNotes:
		return []KeyBinding{
			{Key: "j/k", Action: "move selection"},
			{Key: "n", Action: "write a new note"},
			{Key: "d", Action: "delete selected note"},
		}
	case ViewBudget:
		return []KeyBinding{
			{Key: "j/k", Action: "move selection"},
			{Key: "d", Action: "delete selected transaction"},
		}
	default:
		return []KeyBinding{{Key: "-", Action: "read only: points, streak, badges and heatmap"}}
	}
}

func toKeyBindings(in []KeyBinding) []key.Binding {
	out := make([]key.Binding, len(in))
	for i, kb := range in {
		out[i] = key.NewBinding(key.WithKeys(kb.Key), key.WithHelp(kb.Key, kb.Action))
	}
	return out
}
