package update

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/table"

	"github.com/sandeepkv93/assistd/internal/views"
)

const maxNotifications = 40

func (m Model) renderCommandPalette() string {
	return views.RenderCommandPalette(m.Palette.Active, m.Palette.Input)
}

func (m Model) renderNotificationsView() string {
	if len(m.Notifications) == 0 {
		return ""
	}
	n := m.Notifications[len(m.Notifications)-1]
	return views.RenderNotification(n.Level, n.Body)
}

func (m Model) renderRecommendation() string {
	task, ok := m.App.Recommendation()
	if !ok {
		return "next up:\n(nothing pending)"
	}
	line := task.Text
	if task.DueDate != nil {
		line += " (due " + task.DueDate.Format("Mon Jan 2") + ")"
	}
	return "next up:\n" + line
}

func (m Model) renderProgressView() string {
	p := m.App.Progress()
	data := views.ProgressPanelData{
		Points:         p.Points,
		Streak:         p.Streak,
		Badges:         p.Badges,
		Completed:      p.TasksCompleted,
		Total:          p.TasksTotal,
		ProgressView:   m.completion.ViewAs(p.CompletionRate),
		CompletedToday: p.CompletedToday,
		Heatmap:        m.App.Heatmap(),
	}
	if task, ok := m.App.Recommendation(); ok {
		data.Recommendation = task.Text
	}
	return views.RenderProgressPanel(data)
}

func (m Model) renderBudgetView() string {
	b := m.App.Budget()
	months := make([]views.MonthData, 0, len(b.Months))
	for _, ms := range b.Months {
		months = append(months, views.MonthData{Month: ms.Month, Expense: ms.Expense, Income: ms.Income})
	}
	return views.RenderBudgetPanel(views.BudgetPanelData{
		Month:     b.Month.Month,
		Expense:   b.Month.Expense,
		Income:    b.Month.Income,
		Net:       b.Month.Net(),
		Goal:      b.MonthlyGoal,
		GoalLeft:  b.GoalLeft,
		OverGoal:  b.OverGoal,
		TableView: m.budgetTable.View(),
		Months:    months,
	})
}

// notify records a notification and turns pending badge unlocks into their
// own notifications.
func (m *Model) notify(title, body, level string) {
	if strings.TrimSpace(body) != "" {
		m.pushNotification(Notification{Title: title, Body: body, Level: level, At: m.App.Now()})
	}
	for _, badge := range m.App.TakeNotices() {
		m.pushNotification(Notification{
			Title: "Badge",
			Body:  fmt.Sprintf("You earned the %q badge!", badge),
			Level: "info",
			At:    m.App.Now(),
		})
	}
}

func (m *Model) pushNotification(n Notification) {
	m.Notifications = append(m.Notifications, n)
	if len(m.Notifications) > maxNotifications {
		m.Notifications = m.Notifications[len(m.Notifications)-maxNotifications:]
	}
}

func (m *Model) syncBubbleData() {
	txs := m.App.Budget().Transactions
	rows := make([]table.Row, 0, len(txs))
	cursor := 0
	for i, tx := range txs {
		rows = append(rows, table.Row{
			tx.Date.Format("2006-01-02"),
			string(tx.Type),
			fmt.Sprintf("$%.2f", tx.Amount),
			tx.Category,
		})
		if tx.ID == m.SelectedTxID {
			cursor = i
		}
	}
	m.budgetTable.SetRows(rows)
	if len(rows) > 0 {
		m.budgetTable.SetCursor(cursor)
	}

	if note, ok := m.selectedNote(); ok {
		m.noteViewport.SetContent(views.RenderMarkdown(note.Content, string(m.App.Theme())))
	} else {
		m.noteViewport.SetContent("")
	}
}
