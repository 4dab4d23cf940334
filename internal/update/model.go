package update

import (
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"

	"github.com/sandeepkv93/assistd/internal/app"
	"github.com/sandeepkv93/assistd/internal/scheduler"
	"github.com/sandeepkv93/assistd/internal/voice"
)

type View string

const (
	ViewTasks    View = "Tasks"
	ViewNotes    View = "Notes"
	ViewBudget   View = "Budget"
	ViewProgress View = "Progress"
)

type StatusBar struct {
	Text    string
	IsError bool
}

type GlobalKeyMap struct {
	Tasks    string
	Notes    string
	Budget   string
	Progress string
	Help     string
	Quit     string
}

type CommandPaletteState struct {
	Active bool
	Input  string
}

type Notification struct {
	Title string
	Body  string
	Level string
	At    time.Time
}

// Model is the bubbletea host. All domain state lives in App; the model only
// keeps selection and widget state.
type Model struct {
	CurrentView    View
	App            *app.App
	Voice          *voice.Channel
	Scheduler      *scheduler.Engine
	SelectedTaskID string
	SelectedNoteID string
	SelectedTxID   string
	Filter         string
	Palette        CommandPaletteState
	NoteCapture    bool
	HelpVisible    bool
	Notifications  []Notification
	Status         StatusBar
	Keys           GlobalKeyMap
	Quitting       bool
	LastError      error
	// Bubble components used for rich TUI controls
	commandInput textinput.Model
	noteArea     textarea.Model
	budgetTable  table.Model
	completion   progress.Model
	helpModel    help.Model
	noteViewport viewport.Model
	// due alerts already delivered, keyed by task id and due day
	alerted map[string]bool
}

type SwitchViewMsg struct {
	View View
}

type SetStatusMsg struct {
	Text    string
	IsError bool
}

type ClearStatusMsg struct{}

type AppErrorMsg struct {
	Err error
}

// TranscriptMsg carries recognised speech; it only acts when it starts with a
// wake phrase.
type TranscriptMsg struct {
	Text string
}

func NewModel(a *app.App, ch *voice.Channel) Model {
	if ch == nil {
		ch = voice.NewChannel(a)
	}
	m := Model{
		CurrentView: ViewTasks,
		App:         a,
		Voice:       ch,
		Keys: GlobalKeyMap{
			Tasks:    "1",
			Notes:    "2",
			Budget:   "3",
			Progress: "4",
			Help:     "?",
			Quit:     "q",
		},
	}
	m.initBubbleComponents()
	m.syncBubbleData()
	return m
}

func (m *Model) initBubbleComponents() {
	m.commandInput = textinput.New()
	m.commandInput.Prompt = "/"
	m.commandInput.CharLimit = 256
	m.commandInput.Width = 48

	m.noteArea = textarea.New()
	m.noteArea.SetWidth(54)
	m.noteArea.SetHeight(6)
	m.noteArea.ShowLineNumbers = false
	m.noteArea.Placeholder = "Note (markdown)"

	cols := []table.Column{
		{Title: "Date", Width: 10},
		{Title: "Type", Width: 8},
		{Title: "Amount", Width: 10},
		{Title: "Category", Width: 16},
	}
	m.budgetTable = table.New(table.WithColumns(cols), table.WithRows([]table.Row{}), table.WithFocused(true), table.WithHeight(10))

	m.completion = progress.New(progress.WithDefaultGradient(), progress.WithWidth(24))
	m.helpModel = help.New()
	m.noteViewport = viewport.New(54, 12)
}
