package update

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/sandeepkv93/assistd/internal/views"
)

func (m Model) Init() tea.Cmd {
	if m.Scheduler != nil {
		return waitForAlertCmd(m.Scheduler.C())
	}
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.update(msg)
	next.syncBubbleData()
	next.planAlerts()
	return next, cmd
}

func (m Model) update(msg tea.Msg) (Model, tea.Cmd) {
	switch typed := msg.(type) {
	case tea.KeyMsg:
		if m.Palette.Active {
			if typed.String() == m.Keys.Help {
				m.HelpVisible = !m.HelpVisible
				return m, nil
			}
			return m.handlePaletteKey(typed), nil
		}
		if m.NoteCapture {
			return m.handleNoteCaptureKey(typed)
		}

		switch typed.String() {
		case "/":
			return m.openPalette(""), nil
		case m.Keys.Tasks:
			m.CurrentView = ViewTasks
			return m, nil
		case m.Keys.Notes:
			m.CurrentView = ViewNotes
			return m, nil
		case m.Keys.Budget:
			m.CurrentView = ViewBudget
			return m, nil
		case m.Keys.Progress:
			m.CurrentView = ViewProgress
			return m, nil
		case m.Keys.Help:
			m.HelpVisible = !m.HelpVisible
			if m.HelpVisible {
				m.Status = StatusBar{Text: "help shown"}
			} else {
				m.Status = StatusBar{Text: "help hidden"}
			}
			return m, nil
		case "ctrl+c", m.Keys.Quit:
			m.Quitting = true
			return m, tea.Quit
		}
		switch m.CurrentView {
		case ViewTasks:
			return m.handleTasksKey(typed), nil
		case ViewNotes:
			return m.handleNotesKey(typed), nil
		case ViewBudget:
			return m.handleBudgetKey(typed), nil
		}
	case SwitchViewMsg:
		if isKnownView(typed.View) {
			m.CurrentView = typed.View
		}
		return m, nil
	case SetStatusMsg:
		m.Status = StatusBar{Text: typed.Text, IsError: typed.IsError}
		m.notify("Status", typed.Text, levelFromError(typed.IsError))
		return m, nil
	case ClearStatusMsg:
		m.Status = StatusBar{}
		return m, nil
	case AppErrorMsg:
		m.LastError = typed.Err
		if typed.Err != nil {
			m.Status = StatusBar{Text: typed.Err.Error(), IsError: true}
			m.notify("Error", typed.Err.Error(), "error")
		}
		return m, nil
	case AlertMsg:
		if m.Scheduler == nil {
			return m, nil
		}
		return m.onAlert(typed.Alert)
	case TranscriptMsg:
		reply, activated := m.Voice.Hear(typed.Text)
		if activated && reply != "" {
			m.Status = StatusBar{Text: reply}
			m.notify("Jarvis", reply, "info")
		}
		return m, nil
	}

	return m, nil
}

func (m Model) View() string {
	status := ""
	if m.Status.Text != "" {
		if m.Status.IsError {
			status = fmt.Sprintf("status: error: %s", m.Status.Text)
		} else {
			status = fmt.Sprintf("status: %s", m.Status.Text)
		}
	}
	leftPane := ""
	rightPane := ""
	switch m.CurrentView {
	case ViewTasks:
		leftPane = m.renderTasksView()
		rightPane = m.renderRecommendation()
	case ViewNotes:
		leftPane = m.renderNotesView()
		rightPane = m.renderNoteDetail()
	case ViewBudget:
		leftPane = m.renderBudgetView()
	case ViewProgress:
		leftPane = m.renderProgressView()
	}
	rightPane = strings.TrimSpace(strings.Join([]string{rightPane, m.renderCommandPalette(), m.renderHelpIfVisible()}, "\n\n"))

	return views.RenderApp(views.AppData{
		Theme:        string(m.App.Theme()),
		Header:       fmt.Sprintf("assistd | view: %s | points: %d | streak: %d", m.CurrentView, m.App.ProgressState().Points, m.App.ProgressState().Streak),
		LeftPane:     leftPane,
		RightPane:    rightPane,
		StatusLine:   status,
		IsError:      m.Status.IsError,
		Notification: m.renderNotificationsView(),
		Footer:       fmt.Sprintf("keys: %s tasks | %s notes | %s budget | %s progress | / cmd | %s help | %s quit", m.Keys.Tasks, m.Keys.Notes, m.Keys.Budget, m.Keys.Progress, m.Keys.Help, m.Keys.Quit),
	})
}

func isKnownView(v View) bool {
	switch v {
	case ViewTasks, ViewNotes, ViewBudget, ViewProgress:
		return true
	default:
		return false
	}
}

func levelFromError(isErr bool) string {
	if isErr {
		return "error"
	}
	return "info"
}
