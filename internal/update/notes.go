package update

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/sandeepkv93/assistd/internal/model"
	"github.com/sandeepkv93/assistd/internal/views"
)

const notePreviewLen = 48

func (m Model) handleNotesKey(msg tea.KeyMsg) Model {
	ids := noteIDs(m.App.Notes(m.Filter))
	switch msg.String() {
	case "j", "down":
		m.SelectedNoteID = moveSelection(ids, m.SelectedNoteID, 1)
	case "k", "up":
		m.SelectedNoteID = moveSelection(ids, m.SelectedNoteID, -1)
	case "d":
		note, ok := m.selectedNote()
		if !ok {
			return m
		}
		if err := m.App.DeleteNote(note.ID); err != nil {
			return m.fail(err)
		}
		m.SelectedNoteID = ""
		m.Status = StatusBar{Text: "note deleted"}
	case "n":
		m.NoteCapture = true
		m.noteArea.Reset()
		m.noteArea.Focus()
		m.Status = StatusBar{Text: "new note: ctrl+s save, esc cancel"}
	}
	return m
}

func (m Model) handleNoteCaptureKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.NoteCapture = false
		m.noteArea.Blur()
		m.Status = StatusBar{Text: "note discarded"}
		return m, nil
	case "ctrl+s":
		content := strings.TrimSpace(m.noteArea.Value())
		note, err := m.App.AddNote(content, "", extractTags(content))
		if err != nil {
			return m.fail(err), nil
		}
		m.NoteCapture = false
		m.noteArea.Blur()
		m.SelectedNoteID = note.ID
		m.Status = StatusBar{Text: "note saved"}
		return m, nil
	}
	var cmd tea.Cmd
	m.noteArea, cmd = m.noteArea.Update(msg)
	return m, cmd
}

// extractTags collects #hashtags from note content.
func extractTags(content string) []string {
	var tags []string
	for _, word := range strings.Fields(content) {
		if len(word) > 1 && strings.HasPrefix(word, "#") {
			tags = append(tags, strings.Trim(word, "#.,;:!?"))
		}
	}
	return tags
}

func (m Model) selectedNote() (model.Note, bool) {
	notes := m.App.Notes(m.Filter)
	id := moveSelection(noteIDs(notes), m.SelectedNoteID, 0)
	for _, n := range notes {
		if n.ID == id {
			return n, true
		}
	}
	return model.Note{}, false
}

func noteIDs(notes []model.Note) []string {
	ids := make([]string, len(notes))
	for i, n := range notes {
		ids[i] = n.ID
	}
	return ids
}

func (m Model) renderNotesView() string {
	notes := m.App.Notes(m.Filter)
	items := make([]views.NoteItemData, 0, len(notes))
	for _, n := range notes {
		preview := strings.ReplaceAll(n.Content, "\n", " ")
		if r := []rune(preview); len(r) > notePreviewLen {
			preview = string(r[:notePreviewLen-3]) + "..."
		}
		items = append(items, views.NoteItemData{ID: n.ID, Preview: preview, Category: n.Category, Tags: n.Tags})
	}
	selected, _ := m.selectedNote()
	return views.RenderNotesPanel(views.NotesPanelData{
		Items:      items,
		SelectedID: selected.ID,
		Query:      m.Filter,
	})
}

func (m Model) renderNoteDetail() string {
	if m.NoteCapture {
		return "new note:\n" + m.noteArea.View()
	}
	if _, ok := m.selectedNote(); !ok {
		return "note:\n(no selection)"
	}
	return "note:\n" + m.noteViewport.View()
}
