package reservations

import (
	"fmt"
	"time"
)

const DateLayout = time.DateOnly

type Repeat string

const (
	RepeatNone    Repeat = "none"
	RepeatWeekly  Repeat = "weekly"
	RepeatMonthly Repeat = "monthly"
)

func ParseRepeat(s string) (Repeat, error) {
	switch Repeat(s) {
	case "", RepeatNone:
		return RepeatNone, nil
	case RepeatWeekly, RepeatMonthly:
		return Repeat(s), nil
	default:
		return "", fmt.Errorf("%w: unknown repeat type %q", ErrInvalidArgument, s)
	}
}

// occurrences returns count dates starting at start. Every step is taken from
// start, not from the previous occurrence.
func (r Repeat) occurrences(start time.Time, count int) []string {
	dates := make([]string, 0, count)

	for i := 0; i < count; i++ {
		var next time.Time
		switch r {
		case RepeatWeekly:
			next = start.AddDate(0, 0, 7*i)
		case RepeatMonthly:
			next = start.AddDate(0, i, 0)
		default:
			next = start
		}

		dates = append(dates, next.Format(DateLayout))
	}

	return dates
}
