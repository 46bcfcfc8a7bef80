// Package calendar computes canonical contest weekend dates. Major HF
// contests run on a fixed weekend of a fixed month (e.g. CQ WW SSB on the
// last full weekend of October), so the reference instant for "hours into the
// contest" is derived from a (month, week-of-month) rule rather than from the
// log itself.
package calendar

import (
	"errors"
	"fmt"
	"time"
)

// ErrNoFullWeekend is wrapped by ContestDates when a rule selects a weekend
// that does not exist in the requested year.
var ErrNoFullWeekend = errors.New("no matching full weekend")

// LastWeekend selects the last full weekend of the month.
const LastWeekend = -1

// Rule selects a contest weekend: the Nth full weekend (Saturday and Sunday
// in the same calendar month) of Month, or the last one when Week is
// LastWeekend.
type Rule struct {
	Month time.Month `yaml:"month"`
	Week  int        `yaml:"week"`
}

// Weekend is one Saturday/Sunday pair.
type Weekend struct {
	Saturday time.Time // midnight UTC
	Sunday   time.Time // midnight UTC
	Ordinal  int       // 1-based full-weekend number within the month
}

// FullWeekends enumerates the full weekends of the year's ISO weeks in
// chronological order. ISO week membership matters at year boundaries: a
// January 1 Saturday belongs to the previous ISO year (Jan 1, 2022 is in ISO
// week 52 of 2021), so it is not a weekend of 2022. A weekend whose Saturday
// and Sunday straddle a month boundary is not counted for either month.
func FullWeekends(year int) []Weekend {
	var weekends []Weekend
	ordinals := map[time.Month]int{}

	// January 4 is always inside ISO week 1.
	jan4 := time.Date(year, time.January, 4, 0, 0, 0, 0, time.UTC)
	monday := jan4.AddDate(0, 0, -((int(jan4.Weekday()) + 6) % 7))
	for week := 1; week <= 53; week++ {
		saturday := monday.AddDate(0, 0, (week-1)*7+5)
		if isoYear, _ := saturday.ISOWeek(); isoYear != year {
			// Week 53 exists only in long ISO years.
			continue
		}
		sunday := saturday.AddDate(0, 0, 1)
		if sunday.Month() != saturday.Month() {
			continue
		}
		ordinals[saturday.Month()]++
		weekends = append(weekends, Weekend{
			Saturday: saturday,
			Sunday:   sunday,
			Ordinal:  ordinals[saturday.Month()],
		})
	}
	return weekends
}

// ContestDates returns the start (Saturday 00:00:00 UTC) and end (Sunday
// 23:59:59 UTC) of the weekend the rule selects. The end is a reference for
// hour-of-contest math, not a hard filter; contacts outside the window keep
// their negative or >48h hours.
func ContestDates(rule Rule, year int) (start, end time.Time, err error) {
	if rule.Month < time.January || rule.Month > time.December {
		return time.Time{}, time.Time{}, fmt.Errorf(
			"calendar: month %d out of range: %w", rule.Month, ErrNoFullWeekend)
	}

	var selected *Weekend
	for _, w := range FullWeekends(year) {
		if w.Saturday.Month() != rule.Month {
			continue
		}
		if rule.Week == LastWeekend {
			latest := w
			selected = &latest // keep overwriting; the last one wins
			continue
		}
		if w.Ordinal == rule.Week {
			picked := w
			selected = &picked
			break
		}
	}
	if selected == nil {
		return time.Time{}, time.Time{}, fmt.Errorf(
			"calendar: %s %d week %d: %w", rule.Month, year, rule.Week, ErrNoFullWeekend)
	}
	start = selected.Saturday
	end = selected.Sunday.Add(24*time.Hour - time.Second)
	return start, end, nil
}

// HourOfContest converts a timestamp into fractional hours since the contest
// start. Values can be negative or exceed 48 for pre/post-contest contacts;
// they are never clamped.
func HourOfContest(t, start time.Time) float64 {
	return t.Sub(start).Hours()
}
