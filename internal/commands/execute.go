package commands

import "fmt"

const ReplyUnrecognized = "Sorry, I didn't understand that command."

type Result struct {
	Reply string
}

type Handlers struct {
	GetTime      func() (Result, error)
	GetDate      func() (Result, error)
	ListTasks    func() (Result, error)
	AddTask      func(AddTaskArgs) (Result, error)
	CompleteTask func(CompleteTaskArgs) (Result, error)
	AddNote      func(AddNoteArgs) (Result, error)
	SetTheme     func(SetThemeArgs) (Result, error)
	GetPoints    func() (Result, error)
	GetStreak    func() (Result, error)
	LogExpense   func(MoneyArgs) (Result, error)
	LogIncome    func(MoneyArgs) (Result, error)
}

// Execute dispatches an intent to its handler. Unrecognized intents never
// reach a handler.
func Execute(in Intent, h Handlers) (Result, error) {
	switch in.Kind {
	case KindUnrecognized:
		return Result{Reply: ReplyUnrecognized}, nil
	case KindGetTime:
		return call0(h.GetTime, in.Kind)
	case KindGetDate:
		return call0(h.GetDate, in.Kind)
	case KindListTasks:
		return call0(h.ListTasks, in.Kind)
	case KindGetPoints:
		return call0(h.GetPoints, in.Kind)
	case KindGetStreak:
		return call0(h.GetStreak, in.Kind)
	case KindAddTask:
		return call1(h.AddTask, in.AddTask, in.Kind)
	case KindCompleteTask:
		return call1(h.CompleteTask, in.Complete, in.Kind)
	case KindAddNote:
		return call1(h.AddNote, in.AddNote, in.Kind)
	case KindSetTheme:
		return call1(h.SetTheme, in.Theme, in.Kind)
	case KindLogExpense:
		return call1(h.LogExpense, in.Money, in.Kind)
	case KindLogIncome:
		return call1(h.LogIncome, in.Money, in.Kind)
	default:
		return Result{}, &CommandError{Code: ErrCodeUnknownCommand, Message: fmt.Sprintf("unknown intent kind: %s", in.Kind)}
	}
}

func call0(fn func() (Result, error), kind Kind) (Result, error) {
	if fn == nil {
		return Result{}, missing(kind)
	}
	return fn()
}

func call1[T any](fn func(T) (Result, error), args *T, kind Kind) (Result, error) {
	if fn == nil {
		return Result{}, missing(kind)
	}
	if args == nil {
		return Result{}, &CommandError{Code: ErrCodeInvalidArgument, Message: fmt.Sprintf("%s intent has no arguments", kind)}
	}
	return fn(*args)
}

func missing(kind Kind) error {
	return &CommandError{Code: ErrCodeHandlerMissing, Message: fmt.Sprintf("%s handler not configured", kind)}
}
