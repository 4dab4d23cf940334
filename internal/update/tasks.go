package update

import (
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/sandeepkv93/assistd/internal/model"
	"github.com/sandeepkv93/assistd/internal/progress"
	"github.com/sandeepkv93/assistd/internal/store"
	"github.com/sandeepkv93/assistd/internal/views"
)

var sortCycle = []store.SortBy{store.SortByDueDate, store.SortByPriority, store.SortByCategory}

var priorityCycle = map[model.Priority]model.Priority{
	model.PriorityLow:    model.PriorityMedium,
	model.PriorityMedium: model.PriorityHigh,
	model.PriorityHigh:   model.PriorityLow,
}

func (m Model) handleTasksKey(msg tea.KeyMsg) Model {
	tasks := m.App.Tasks(m.Filter)
	switch msg.String() {
	case "j", "down":
		m.SelectedTaskID = moveSelection(taskIDs(tasks), m.SelectedTaskID, 1)
	case "k", "up":
		m.SelectedTaskID = moveSelection(taskIDs(tasks), m.SelectedTaskID, -1)
	case " ", "enter":
		return m.completeSelectedTask()
	case "d":
		id := m.currentTaskID()
		if id == "" {
			return m
		}
		if err := m.App.DeleteTask(id); err != nil {
			return m.fail(err)
		}
		m.SelectedTaskID = moveSelection(taskIDs(m.App.Tasks(m.Filter)), "", 0)
		m.Status = StatusBar{Text: "task deleted"}
	case "p":
		task, ok := m.currentTask()
		if !ok {
			return m
		}
		next := priorityCycle[task.Priority]
		if _, err := m.App.EditTask(task.ID, model.TaskPatch{Priority: &next}); err != nil {
			return m.fail(err)
		}
		m.Status = StatusBar{Text: fmt.Sprintf("priority set to %s", next)}
	case "s":
		next := sortCycle[0]
		for i, s := range sortCycle {
			if s == m.App.Sort() {
				next = sortCycle[(i+1)%len(sortCycle)]
			}
		}
		m.App.SetSort(next)
		m.Status = StatusBar{Text: fmt.Sprintf("sorted by %s", next)}
	case "a":
		return m.openPalette("add task ")
	}
	return m
}

func (m Model) completeSelectedTask() Model {
	id := m.currentTaskID()
	if id == "" {
		return m
	}
	task, changed, err := m.App.CompleteTask(id)
	if err != nil {
		return m.fail(err)
	}
	if !changed {
		m.Status = StatusBar{Text: fmt.Sprintf("%q is already completed.", task.Text)}
		return m
	}
	m.Status = StatusBar{Text: fmt.Sprintf("Marked %q as completed. Good job! (+%d)", task.Text, m.App.PointsPerTask())}
	m.notify("Task", m.Status.Text, "info")
	return m
}

func (m Model) fail(err error) Model {
	m.LastError = err
	text := err.Error()
	if errors.Is(err, model.ErrNotFound) {
		text = "that item no longer exists"
	}
	m.Status = StatusBar{Text: text, IsError: true}
	m.notify("Error", text, "error")
	return m
}

func (m Model) currentTask() (model.Task, bool) {
	id := m.currentTaskID()
	if id == "" {
		return model.Task{}, false
	}
	task, err := m.App.Task(id)
	return task, err == nil
}

// currentTaskID resolves the selection, falling back to the first visible task.
func (m Model) currentTaskID() string {
	ids := taskIDs(m.App.Tasks(m.Filter))
	return moveSelection(ids, m.SelectedTaskID, 0)
}

func taskIDs(tasks []model.Task) []string {
	ids := make([]string, len(tasks))
	for i, t := range tasks {
		ids[i] = t.ID
	}
	return ids
}

// moveSelection steps delta positions from current, clamping at both ends.
// An unknown current selects the first id.
func moveSelection(ids []string, current string, delta int) string {
	if len(ids) == 0 {
		return ""
	}
	idx := -1
	for i, id := range ids {
		if id == current {
			idx = i
			break
		}
	}
	if idx < 0 {
		return ids[0]
	}
	idx += delta
	if idx < 0 {
		idx = 0
	}
	if idx >= len(ids) {
		idx = len(ids) - 1
	}
	return ids[idx]
}

func (m Model) renderTasksView() string {
	now := m.App.Now()
	tasks := m.App.Tasks(m.Filter)
	items := make([]views.TaskItemData, 0, len(tasks))
	pending := 0
	for _, t := range tasks {
		item := views.TaskItemData{
			ID:        t.ID,
			Text:      t.Text,
			Completed: t.Completed,
			Priority:  string(t.Priority),
			Category:  t.Category,
		}
		if t.DueDate != nil {
			item.Due = t.DueDate.Format("Jan 2")
			item.Overdue = !t.Completed && progress.DaysBetween(*t.DueDate, now) > 0
		}
		if !t.Completed {
			pending++
		}
		items = append(items, item)
	}
	return views.RenderTasksPanel(views.TasksPanelData{
		Items:      items,
		SelectedID: m.currentTaskID(),
		SortBy:     string(m.App.Sort()),
		Filter:     m.Filter,
		Pending:    pending,
		Total:      len(tasks),
	})
}
