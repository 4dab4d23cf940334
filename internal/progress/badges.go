package progress

// Stats is the snapshot every badge predicate is evaluated against.
type Stats struct {
	Points         int
	Streak         int
	Tasks          int
	CompletedTasks int
	Transactions   int
	MonthExpense   float64
	MonthlyGoal    float64
}

type Badge struct {
	Name      string
	Predicate func(Stats) bool
}

type Thresholds struct {
	ProductivityPoints    int
	TaskMasterCount       int
	BudgetMinTransactions int
}

func DefaultThresholds() Thresholds {
	return Thresholds{
		ProductivityPoints:    50,
		TaskMasterCount:       10,
		BudgetMinTransactions: 5,
	}
}

const (
	BadgeProductivityPro = "Productivity Pro"
	BadgeFiveDayStreak   = "5-Day Streak"
	BadgeTenDayStreak    = "10-Day Streak"
	BadgeAllTasksDone    = "All Tasks Done"
	BadgeTaskMaster      = "Task Master"
	BadgeBudgetKeeper    = "Budget Keeper"
)

// Catalog returns the badge list in award order.
func Catalog(th Thresholds) []Badge {
	return []Badge{
		{Name: BadgeProductivityPro, Predicate: func(s Stats) bool { return s.Points >= th.ProductivityPoints }},
		{Name: BadgeFiveDayStreak, Predicate: func(s Stats) bool { return s.Streak >= 5 }},
		{Name: BadgeTenDayStreak, Predicate: func(s Stats) bool { return s.Streak >= 10 }},
		{Name: BadgeAllTasksDone, Predicate: func(s Stats) bool { return s.Tasks > 0 && s.CompletedTasks == s.Tasks }},
		{Name: BadgeTaskMaster, Predicate: func(s Stats) bool { return s.CompletedTasks >= th.TaskMasterCount }},
		{Name: BadgeBudgetKeeper, Predicate: func(s Stats) bool {
			return s.Transactions >= th.BudgetMinTransactions && s.MonthlyGoal > 0 && s.MonthExpense <= s.MonthlyGoal
		}},
	}
}
