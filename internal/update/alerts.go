package update

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/sandeepkv93/assistd/internal/app"
	"github.com/sandeepkv93/assistd/internal/scheduler"
	"github.com/sandeepkv93/assistd/internal/voice"
)

type AlertMsg struct {
	Alert scheduler.Alert
}

// NewModelWithScheduler attaches an alert engine. The engine must already be
// started; the model plans due-date and day-rollover alerts on it.
func NewModelWithScheduler(a *app.App, ch *voice.Channel, engine *scheduler.Engine) Model {
	m := NewModel(a, ch)
	m.Scheduler = engine
	m.alerted = make(map[string]bool)
	m.planAlerts()
	if engine != nil {
		_ = engine.Schedule(scheduler.Alert{ID: "rollover", Kind: scheduler.KindRollover, At: scheduler.NextRollover(a.Now())})
	}
	return m
}

func alertKey(taskID string, due time.Time) string {
	return taskID + "@" + due.Format("2006-01-02")
}

func waitForAlertCmd(ch <-chan scheduler.Alert) tea.Cmd {
	return func() tea.Msg {
		a, ok := <-ch
		if !ok {
			return nil
		}
		return AlertMsg{Alert: a}
	}
}

// planAlerts keeps one due alert per incomplete dated task.
func (m Model) planAlerts() {
	if m.Scheduler == nil {
		return
	}
	var due []scheduler.DueTask
	for _, t := range m.App.Tasks("") {
		if t.Completed || t.DueDate == nil {
			m.Scheduler.CancelTask(t.ID)
			continue
		}
		if m.alerted[alertKey(t.ID, *t.DueDate)] {
			continue
		}
		due = append(due, scheduler.DueTask{ID: t.ID, Due: *t.DueDate})
	}
	for _, a := range scheduler.DueAlerts(due, m.App.Now()) {
		if err := m.Scheduler.Schedule(a); err != nil {
			return
		}
	}
}

func (m Model) onAlert(a scheduler.Alert) (Model, tea.Cmd) {
	switch a.Kind {
	case scheduler.KindDue:
		task, err := m.App.Task(a.TaskID)
		if err == nil && task.DueDate != nil {
			m.alerted[alertKey(task.ID, *task.DueDate)] = true
		}
		if err == nil && !task.Completed {
			m.notify("Due", fmt.Sprintf("%q is due today.", task.Text), "info")
		}
	case scheduler.KindRollover:
		clear(m.alerted)
		m.Status = StatusBar{Text: "good morning! it's " + m.App.Now().Format("Monday, January 2")}
		_ = m.Scheduler.Schedule(scheduler.Alert{ID: "rollover", Kind: scheduler.KindRollover, At: scheduler.NextRollover(m.App.Now())})
		m.planAlerts()
	}
	return m, waitForAlertCmd(m.Scheduler.C())
}
