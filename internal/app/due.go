package app

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/sandeepkv93/assistd/internal/model"
	"github.com/sandeepkv93/assistd/internal/progress"
)

var inDaysPattern = regexp.MustCompile(`^in (\d+) days?$`)

var weekdays = map[string]time.Weekday{
	"sunday": time.Sunday, "monday": time.Monday, "tuesday": time.Tuesday,
	"wednesday": time.Wednesday, "thursday": time.Thursday, "friday": time.Friday,
	"saturday": time.Saturday,
}

// ResolveDue turns a spoken due phrase into a calendar day relative to now.
// An empty phrase means no due date.
func ResolveDue(phrase string, now time.Time) (*time.Time, error) {
	phrase = strings.TrimSpace(strings.ToLower(phrase))
	if phrase == "" {
		return nil, nil
	}
	today := progress.CalendarDay(now)
	var day time.Time
	switch {
	case phrase == "today" || phrase == "tonight":
		day = today
	case phrase == "tomorrow":
		day = today.AddDate(0, 0, 1)
	case phrase == "next week":
		day = today.AddDate(0, 0, 7)
	default:
		if wd, ok := weekdays[strings.TrimPrefix(phrase, "next ")]; ok {
			ahead := (int(wd) - int(today.Weekday()) + 7) % 7
			if strings.HasPrefix(phrase, "next ") && ahead == 0 {
				ahead = 7
			}
			day = today.AddDate(0, 0, ahead)
			break
		}
		if m := inDaysPattern.FindStringSubmatch(phrase); m != nil {
			n, _ := strconv.Atoi(m[1])
			day = today.AddDate(0, 0, n)
			break
		}
		parsed, err := time.ParseInLocation("2006-01-02", phrase, now.Location())
		if err != nil {
			return nil, fmt.Errorf("%w: cannot understand due date %q", model.ErrValidation, phrase)
		}
		day = progress.CalendarDay(parsed)
	}
	return &day, nil
}
