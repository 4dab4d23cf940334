package scheduler

import "time"

// DueTask is the slice of a task the planner needs.
type DueTask struct {
	ID  string
	Due time.Time
}

// DueAlertHour is the local hour a due-day alert fires.
const DueAlertHour = 9

// NextRollover is the first instant of the day after now, in now's location.
func NextRollover(now time.Time) time.Time {
	y, m, d := now.Date()
	return time.Date(y, m, d+1, 0, 0, 0, 0, now.Location())
}

// DueAlerts plans one alert per task on its due day at DueAlertHour. Tasks
// whose alert time has already passed today are alerted immediately; tasks
// due on an earlier day get nothing.
func DueAlerts(tasks []DueTask, now time.Time) []Alert {
	var out []Alert
	today := dayOf(now)
	for _, t := range tasks {
		due := dayOf(t.Due)
		if due.Before(today) {
			continue
		}
		at := time.Date(due.Year(), due.Month(), due.Day(), DueAlertHour, 0, 0, 0, now.Location())
		if at.Before(now) {
			at = now
		}
		out = append(out, Alert{ID: "due:" + t.ID, TaskID: t.ID, Kind: KindDue, At: at})
	}
	return out
}

func dayOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
