package views

import (
	"fmt"
	"strings"
)

type TaskItemData struct {
	ID        string
	Text      string
	Completed bool
	Priority  string
	Category  string
	Due       string
	Overdue   bool
}

type TasksPanelData struct {
	Items      []TaskItemData
	SelectedID string
	SortBy     string
	Filter     string
	Pending    int
	Total      int
}

type NoteItemData struct {
	ID       string
	Preview  string
	Category string
	Tags     []string
}

type NotesPanelData struct {
	Items      []NoteItemData
	SelectedID string
	Query      string
}

type BudgetPanelData struct {
	Month     string
	Expense   float64
	Income    float64
	Net       float64
	Goal      float64
	GoalLeft  float64
	OverGoal  bool
	TableView string
	Months    []MonthData
}

type MonthData struct {
	Month   string
	Expense float64
	Income  float64
}

type ProgressPanelData struct {
	Points         int
	Streak         int
	Badges         []string
	Completed      int
	Total          int
	ProgressView   string
	CompletedToday int
	Heatmap        []int
	Recommendation string
}

type HelpPanelData struct {
	CurrentView string
	Bindings    []string
	HelpView    string
}

func RenderTasksPanel(data TasksPanelData) string {
	var b strings.Builder
	b.WriteString("tasks:\n")
	b.WriteString(fmt.Sprintf("pending: %d of %d | sort: %s", data.Pending, data.Total, data.SortBy))
	if data.Filter != "" {
		b.WriteString(fmt.Sprintf(" | filter: %s", data.Filter))
	}
	b.WriteString("\nactions: [j/k]move [space]complete [d]delete [p]priority [s]sort [a]add\n")
	if len(data.Items) == 0 {
		b.WriteString("\n(no tasks yet, press [a] or / to add one)")
		return b.String()
	}
	b.WriteString("\n")
	for _, item := range data.Items {
		cursor := " "
		if item.ID == data.SelectedID {
			cursor = ">"
		}
		check := "[ ]"
		if item.Completed {
			check = "[x]"
		}
		b.WriteString(fmt.Sprintf("%s %s %s %s", cursor, check, priorityBadge(item), item.Text))
		if item.Due != "" {
			b.WriteString(" due:" + item.Due)
		}
		if item.Category != "" {
			b.WriteString(" #" + item.Category)
		}
		b.WriteString("\n")
	}
	return strings.TrimSpace(b.String())
}

func priorityBadge(item TaskItemData) string {
	switch {
	case item.Completed:
		return "[DONE]"
	case item.Overdue || item.Priority == "high":
		return "[RED]"
	case item.Priority == "medium":
		return "[YELLOW]"
	default:
		return "[GREEN]"
	}
}

func RenderNotesPanel(data NotesPanelData) string {
	var b strings.Builder
	b.WriteString("notes:\n")
	if data.Query != "" {
		b.WriteString(fmt.Sprintf("search: %s\n", data.Query))
	}
	b.WriteString("actions: [j/k]move [d]delete [n]new\n")
	if len(data.Items) == 0 {
		b.WriteString("\n(no notes)")
		return b.String()
	}
	b.WriteString("\n")
	for _, item := range data.Items {
		cursor := " "
		if item.ID == data.SelectedID {
			cursor = ">"
		}
		b.WriteString(fmt.Sprintf("%s %s", cursor, item.Preview))
		if item.Category != "" {
			b.WriteString(" [" + item.Category + "]")
		}
		if len(item.Tags) > 0 {
			b.WriteString(" #" + strings.Join(item.Tags, " #"))
		}
		b.WriteString("\n")
	}
	return strings.TrimSpace(b.String())
}

func RenderBudgetPanel(data BudgetPanelData) string {
	var b strings.Builder
	b.WriteString("budget:\n")
	b.WriteString(fmt.Sprintf("month: %s | expense: $%.2f | income: $%.2f | net: $%.2f\n", data.Month, data.Expense, data.Income, data.Net))
	if data.Goal > 0 {
		state := "on track"
		if data.OverGoal {
			state = "over goal"
		}
		b.WriteString(fmt.Sprintf("goal: $%.2f | left: $%.2f (%s)\n", data.Goal, data.GoalLeft, state))
	}
	b.WriteString("actions: [j/k]move [d]delete\n")
	b.WriteString(data.TableView)
	if len(data.Months) > 1 {
		b.WriteString("\n\nhistory:\n")
		for _, m := range data.Months {
			b.WriteString(fmt.Sprintf("- %s  -$%.2f  +$%.2f\n", m.Month, m.Expense, m.Income))
		}
	}
	return strings.TrimSpace(b.String())
}

func RenderProgressPanel(data ProgressPanelData) string {
	var b strings.Builder
	b.WriteString("progress:\n")
	b.WriteString(fmt.Sprintf("points: %d | streak: %d | today: %d\n", data.Points, data.Streak, data.CompletedToday))
	b.WriteString(fmt.Sprintf("tasks done: %d/%d %s\n", data.Completed, data.Total, data.ProgressView))
	if data.Recommendation != "" {
		b.WriteString("next up: " + data.Recommendation + "\n")
	}
	b.WriteString("\nbadges:\n")
	if len(data.Badges) == 0 {
		b.WriteString("  (none yet)\n")
	}
	for _, badge := range data.Badges {
		b.WriteString("  * " + badge + "\n")
	}
	if len(data.Heatmap) > 0 {
		b.WriteString(fmt.Sprintf("\nlast %d days:\n", len(data.Heatmap)))
		b.WriteString(RenderHeatmap(data.Heatmap))
	}
	return strings.TrimSpace(b.String())
}

var heatShades = []rune{'.', '░', '▒', '▓', '█'}

// RenderHeatmap draws one cell per day, oldest first, in rows of ten.
func RenderHeatmap(counts []int) string {
	var b strings.Builder
	for i, n := range counts {
		if i > 0 && i%10 == 0 {
			b.WriteString("\n")
		}
		if n >= len(heatShades) {
			n = len(heatShades) - 1
		}
		if n < 0 {
			n = 0
		}
		b.WriteRune(heatShades[n])
		b.WriteRune(' ')
	}
	return strings.TrimRight(b.String(), " ")
}

func RenderCommandPalette(active bool, input string) string {
	if !active {
		return ""
	}
	return fmt.Sprintf("command: /%s", input)
}

func RenderNotification(level string, body string) string {
	if strings.TrimSpace(body) == "" {
		return ""
	}
	return fmt.Sprintf("notification: [%s] %s", strings.ToUpper(level), body)
}

func RenderHelpPanel(data HelpPanelData) string {
	return fmt.Sprintf("help:\n%s view:\n%s\n%s",
		strings.ToLower(data.CurrentView),
		strings.Join(data.Bindings, "\n"),
		data.HelpView,
	)
}
