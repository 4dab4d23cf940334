package commands

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/sandeepkv93/assistd/internal/model"
)

type Kind string

const (
	KindUnrecognized Kind = "unrecognized"
	KindGetTime      Kind = "get_time"
	KindGetDate      Kind = "get_date"
	KindListTasks    Kind = "list_tasks"
	KindAddTask      Kind = "add_task"
	KindCompleteTask Kind = "complete_task"
	KindAddNote      Kind = "add_note"
	KindSetTheme     Kind = "set_theme"
	KindGetPoints    Kind = "get_points"
	KindGetStreak    Kind = "get_streak"
	KindLogExpense   Kind = "log_expense"
	KindLogIncome    Kind = "log_income"
)

type ErrorCode string

const (
	ErrCodeInvalidArgument ErrorCode = "invalid_argument"
	ErrCodeHandlerMissing  ErrorCode = "handler_missing"
	ErrCodeUnknownCommand  ErrorCode = "unknown_command"
)

type CommandError struct {
	Code    ErrorCode
	Message string
}

func (e *CommandError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

type AddTaskArgs struct {
	Text string
	// Due is the raw phrase after " due ", resolved against a clock by the executor.
	Due string
}

type CompleteTaskArgs struct {
	NameQuery string
}

type AddNoteArgs struct {
	Text string
}

type SetThemeArgs struct {
	Name string
}

type MoneyArgs struct {
	Amount   float64
	Category string
}

// Intent is the classified meaning of an utterance. Exactly one args pointer
// is set for kinds that carry parameters.
type Intent struct {
	Kind     Kind
	Raw      string
	AddTask  *AddTaskArgs
	Complete *CompleteTaskArgs
	AddNote  *AddNoteArgs
	Theme    *SetThemeArgs
	Money    *MoneyArgs
}

// rule matches when any trigger appears in the utterance. amountTriggers only
// count when the utterance also carries a number, so "how many points have i
// earned" stays a points query.
type rule struct {
	kind           Kind
	triggers       []string
	amountTriggers []string
	extract        func(text string, in *Intent)
}

var (
	addTaskPattern      = regexp.MustCompile(`add task\s+(.+?)(?:\s+due\s+(.+))?$`)
	completeTaskPattern = regexp.MustCompile(`(?:complete|finish) task\s+(.+)`)
	addNotePattern      = regexp.MustCompile(`add note\s+(.+)`)
	amountPattern       = regexp.MustCompile(`\$?(\d+(?:\.\d+)?)`)
	categoryPattern     = regexp.MustCompile(`\sfor\s+(.+)$`)
	themeNames          = []model.Theme{model.ThemeDark, model.ThemeLight, model.ThemeVibrant}
)

// rules is evaluated top to bottom; the first trigger contained in the
// utterance wins, so multi-word triggers sit above the single words they contain.
var rules = []rule{
	{kind: KindCompleteTask, triggers: []string{"complete task", "finish task"}, extract: extractComplete},
	{kind: KindAddTask, triggers: []string{"add task"}, extract: extractAddTask},
	{kind: KindAddNote, triggers: []string{"add note"}, extract: extractAddNote},
	{kind: KindLogExpense, triggers: []string{"log expense", "expense"}, amountTriggers: []string{"spent"}, extract: extractMoney},
	{kind: KindLogIncome, triggers: []string{"log income", "income"}, amountTriggers: []string{"earned"}, extract: extractMoney},
	{kind: KindSetTheme, triggers: []string{"theme"}, extract: extractTheme},
	{kind: KindListTasks, triggers: []string{"tasks", "task list", "to-do", "todo"}},
	{kind: KindGetPoints, triggers: []string{"points"}},
	{kind: KindGetStreak, triggers: []string{"streak"}},
	{kind: KindGetTime, triggers: []string{"time"}},
	{kind: KindGetDate, triggers: []string{"date"}},
}

// Interpret classifies an utterance. It is pure: no clock, no store access.
func Interpret(utterance string) Intent {
	text := strings.Join(strings.Fields(strings.ToLower(utterance)), " ")
	for _, r := range rules {
		if !r.matches(text) {
			continue
		}
		in := Intent{Kind: r.kind, Raw: text}
		if r.extract != nil {
			r.extract(text, &in)
		}
		return in
	}
	return Intent{Kind: KindUnrecognized, Raw: text}
}

func (r rule) matches(text string) bool {
	if containsAny(text, r.triggers) {
		return true
	}
	return containsAny(text, r.amountTriggers) && amountPattern.MatchString(text)
}

func containsAny(text string, triggers []string) bool {
	for _, trig := range triggers {
		if strings.Contains(text, trig) {
			return true
		}
	}
	return false
}

func extractAddTask(text string, in *Intent) {
	args := &AddTaskArgs{}
	if m := addTaskPattern.FindStringSubmatch(text); m != nil {
		args.Text = strings.TrimSpace(m[1])
		args.Due = strings.TrimSpace(m[2])
	}
	in.AddTask = args
}

func extractComplete(text string, in *Intent) {
	args := &CompleteTaskArgs{}
	if m := completeTaskPattern.FindStringSubmatch(text); m != nil {
		args.NameQuery = strings.TrimSpace(m[1])
	}
	in.Complete = args
}

func extractAddNote(text string, in *Intent) {
	args := &AddNoteArgs{}
	if m := addNotePattern.FindStringSubmatch(text); m != nil {
		args.Text = strings.TrimSpace(m[1])
	}
	in.AddNote = args
}

func extractMoney(text string, in *Intent) {
	args := &MoneyArgs{Category: model.DefaultCategory}
	if m := amountPattern.FindStringSubmatch(text); m != nil {
		if v, err := strconv.ParseFloat(m[1], 64); err == nil {
			args.Amount = v
		}
	}
	if m := categoryPattern.FindStringSubmatch(text); m != nil {
		args.Category = strings.TrimSpace(m[1])
	}
	in.Money = args
}

func extractTheme(text string, in *Intent) {
	args := &SetThemeArgs{}
	for _, name := range themeNames {
		if strings.Contains(text, string(name)) {
			args.Name = string(name)
			break
		}
	}
	in.Theme = args
}
