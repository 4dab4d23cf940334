package app

import (
	"errors"
	"fmt"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/sandeepkv93/assistd/internal/commands"
	"github.com/sandeepkv93/assistd/internal/model"
)

const (
	replyNoPendingTasks = "You have no pending tasks!"
	replyNeedTaskText   = "Please tell me what task to add."
	replyNeedTaskName   = "Please tell me which task to complete."
	replyNeedNoteText   = "Please tell me what to note down."
	replyNeedAmount     = "Please include a positive amount."
	replyNeedTheme      = "Please choose a theme: light, dark or vibrant."
)

var titleCase = cases.Title(language.English)

// Handle interprets free text and executes it, returning the reply.
func (a *App) Handle(text string) string {
	return a.Execute(commands.Interpret(text))
}

// Execute runs an intent against the stores. Errors never escape: they turn
// into reply text.
func (a *App) Execute(in commands.Intent) string {
	res, err := commands.Execute(in, a.handlers())
	if err != nil {
		a.log.Error("command failed", "kind", in.Kind, "err", err)
		return commands.ReplyUnrecognized
	}
	return withNotices(res.Reply, a.TakeNotices())
}

func withNotices(reply string, badges []string) string {
	if len(badges) == 0 {
		return reply
	}
	var b strings.Builder
	b.WriteString(reply)
	for _, name := range badges {
		fmt.Fprintf(&b, " You earned the %q badge!", name)
	}
	return b.String()
}

func (a *App) handlers() commands.Handlers {
	return commands.Handlers{
		GetTime: func() (commands.Result, error) {
			return reply("The current time is %s.", a.now().Format("3:04 PM"))
		},
		GetDate: func() (commands.Result, error) {
			return reply("Today is %s.", a.now().Format("Monday, January 2, 2006"))
		},
		ListTasks:    a.replyListTasks,
		AddTask:      a.replyAddTask,
		CompleteTask: a.replyCompleteTask,
		AddNote:      a.replyAddNote,
		SetTheme:     a.replySetTheme,
		GetPoints: func() (commands.Result, error) {
			return reply("You have %d points. Keep going!", a.progress.State().Points)
		},
		GetStreak: func() (commands.Result, error) {
			n := a.progress.State().Streak
			return reply("Your current streak is %d %s.", n, plural(n, "day", "days"))
		},
		LogExpense: func(args commands.MoneyArgs) (commands.Result, error) {
			return a.replyMoney(model.TransactionExpense, args)
		},
		LogIncome: func(args commands.MoneyArgs) (commands.Result, error) {
			return a.replyMoney(model.TransactionIncome, args)
		},
	}
}

func reply(format string, args ...any) (commands.Result, error) {
	return commands.Result{Reply: fmt.Sprintf(format, args...)}, nil
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}

func (a *App) replyListTasks() (commands.Result, error) {
	var pending []string
	for _, t := range a.tasks.List(a.sortBy, "") {
		if !t.Completed {
			pending = append(pending, t.Text)
		}
	}
	if len(pending) == 0 {
		return reply(replyNoPendingTasks)
	}
	return reply("You have %d pending %s: %s.", len(pending), plural(len(pending), "task", "tasks"), strings.Join(pending, ", "))
}

func (a *App) replyAddTask(args commands.AddTaskArgs) (commands.Result, error) {
	if args.Text == "" {
		return reply(replyNeedTaskText)
	}
	due, err := ResolveDue(args.Due, a.now())
	if err != nil {
		return reply("I couldn't understand the due date %q.", args.Due)
	}
	task, err := a.AddTask(args.Text, due, "", "")
	if err != nil {
		return reply(replyNeedTaskText)
	}
	if task.DueDate != nil {
		return reply("Added task %q, due %s.", task.Text, task.DueDate.Format("Mon Jan 2"))
	}
	return reply("Added task %q.", task.Text)
}

func (a *App) replyCompleteTask(args commands.CompleteTaskArgs) (commands.Result, error) {
	if args.NameQuery == "" {
		return reply(replyNeedTaskName)
	}
	task, ok := a.tasks.FindByText(args.NameQuery)
	if !ok {
		return reply("Task %q not found.", args.NameQuery)
	}
	task, changed, err := a.CompleteTask(task.ID)
	switch {
	case errors.Is(err, model.ErrNotFound):
		return reply("Task %q not found.", args.NameQuery)
	case err != nil:
		return commands.Result{}, err
	case !changed:
		return reply("%q is already completed.", task.Text)
	}
	return reply("Marked %q as completed. Good job!", task.Text)
}

func (a *App) replyAddNote(args commands.AddNoteArgs) (commands.Result, error) {
	if args.Text == "" {
		return reply(replyNeedNoteText)
	}
	if _, err := a.AddNote(args.Text, "", nil); err != nil {
		return reply(replyNeedNoteText)
	}
	return reply("Added note: %q.", args.Text)
}

func (a *App) replySetTheme(args commands.SetThemeArgs) (commands.Result, error) {
	theme, err := a.SetTheme(args.Name)
	if err != nil {
		return reply(replyNeedTheme)
	}
	return reply("%s theme activated.", titleCase.String(string(theme)))
}

func (a *App) replyMoney(kind model.TransactionType, args commands.MoneyArgs) (commands.Result, error) {
	if args.Amount <= 0 {
		return reply(replyNeedAmount)
	}
	tx, err := a.AddTransaction(kind, args.Amount, args.Category, args.Category, a.now())
	if err != nil {
		return reply(replyNeedAmount)
	}
	return reply("Logged %s of $%.2f for %s.", kind, tx.Amount, tx.Category)
}
