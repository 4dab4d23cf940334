package views

import (
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
)

type AppData struct {
	Theme        string
	Header       string
	LeftPane     string
	RightPane    string
	StatusLine   string
	IsError      bool
	Footer       string
	Notification string
}

type palette struct {
	accent lipgloss.Color
	ok     lipgloss.Color
	muted  lipgloss.Color
	border lipgloss.Color
	glow   string
}

var palettes = map[string]palette{
	"light":   {accent: "12", ok: "10", muted: "8", border: "7", glow: "light"},
	"dark":    {accent: "14", ok: "10", muted: "8", border: "8", glow: "dark"},
	"vibrant": {accent: "13", ok: "11", muted: "6", border: "5", glow: "dracula"},
}

var errorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))

func paletteFor(theme string) palette {
	if p, ok := palettes[theme]; ok {
		return p
	}
	return palettes["light"]
}

func RenderApp(data AppData) string {
	p := paletteFor(data.Theme)
	headerStyle := lipgloss.NewStyle().Bold(true).Foreground(p.accent)
	statusStyle := lipgloss.NewStyle().Foreground(p.ok)
	panelStyle := lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(p.border).Padding(0, 1)
	footerStyle := lipgloss.NewStyle().Foreground(p.muted)

	left := panelStyle.Width(58).Render(data.LeftPane)
	right := panelStyle.Width(58).Render(data.RightPane)
	row := lipgloss.JoinHorizontal(lipgloss.Top, left, right)

	status := statusStyle.Render(data.StatusLine)
	if data.IsError {
		status = errorStyle.Render(data.StatusLine)
	}

	lines := []string{
		headerStyle.Render(data.Header),
		row,
		status,
	}
	if data.Notification != "" {
		lines = append(lines, panelStyle.Render(data.Notification))
	}
	if data.Footer != "" {
		lines = append(lines, footerStyle.Render(data.Footer))
	}
	return strings.Join(lines, "\n")
}

// RenderMarkdown renders note content with the glamour style matching theme.
// Rendering errors fall back to the raw text.
func RenderMarkdown(md, theme string) string {
	if strings.TrimSpace(md) == "" {
		return ""
	}
	out, err := glamour.Render(md, paletteFor(theme).glow)
	if err != nil {
		return md
	}
	return strings.TrimSpace(out)
}
