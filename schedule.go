package sip

import (
	"time"

	"github.com/etnz/sip/date"
	"github.com/robfig/cron/v3"
	"github.com/shopspring/decimal"
)

var (
	daysPerMonth  = decimal.NewFromInt(30)
	weeksPerMonth = decimal.RequireFromString("4.33")
)

// Schedule computes execution previews for a frequency: when the next
// execution happens and what a per-execution amount represents per month.
//
// A Schedule never rejects input. A blank custom interval reads as 1, and an
// unset frequency behaves as daily for the next occurrence. IsValid tells
// whether the selection can be submitted.
type Schedule struct {
	frequency Frequency
	interval  Interval
}

// check that schedules can be used wherever a cron schedule is expected.
var (
	_ cron.Schedule = (*Schedule)(nil)
	_ cron.Schedule = anchored{}
)

// NewSchedule returns a schedule with no frequency and a custom interval of 1 day.
func NewSchedule() *Schedule {
	return &Schedule{interval: Interval{Value: 1, Unit: Days}}
}

func (s *Schedule) Frequency() Frequency { return s.frequency }
func (s *Schedule) Interval() Interval   { return s.interval }

// SetFrequency changes the frequency. The custom interval is kept as is, so
// that switching back to Custom restores it.
func (s *Schedule) SetFrequency(f Frequency) { s.frequency = f }

// SetCustomInterval stores the custom interval as entered.
func (s *Schedule) SetCustomInterval(value int, unit Unit) {
	s.interval = Interval{Value: value, Unit: unit}
}

// NextOccurrence returns the execution following from.
func (s *Schedule) NextOccurrence(from time.Time) time.Time { return s.advance(from, 1) }

// Occurrences returns the n executions following from. Month based
// frequencies are counted from from itself, so that a plan started on the
// 31st keeps running on the last day of shorter months.
func (s *Schedule) Occurrences(from time.Time, n int) []time.Time {
	return Upcoming(s.From(from), from, n)
}

// From returns the cron schedule of executions counted from start: start
// itself, then one period after start, two periods after start, and so on.
func (s *Schedule) From(start time.Time) cron.Schedule {
	return anchored{schedule: *s, start: start}
}

// anchored is a Schedule counted from a fixed start, so that successive
// executions never drift.
type anchored struct {
	schedule Schedule
	start    time.Time
}

// Next returns the first execution strictly after t.
func (a anchored) Next(t time.Time) time.Time {
	if a.start.After(t) {
		return a.start
	}
	k := int(t.Sub(a.start) / a.schedule.longestPeriod())
	for k > 0 && a.schedule.advance(a.start, k).After(t) {
		k--
	}
	for !a.schedule.advance(a.start, k).After(t) {
		k++
	}
	return a.schedule.advance(a.start, k)
}

// longestPeriod bounds the duration of one period, months counting 31 days.
func (s *Schedule) longestPeriod() time.Duration {
	days := 1
	switch s.frequency {
	case Weekly:
		days = 7
	case Monthly:
		days = 31
	case Custom:
		switch s.interval.Unit {
		case Weeks:
			days = 7 * s.interval.Count()
		case Months:
			days = 31 * s.interval.Count()
		default:
			days = s.interval.Count()
		}
	}
	return time.Duration(days) * 24 * time.Hour
}

// advance returns from shifted by k periods.
func (s *Schedule) advance(from time.Time, k int) time.Time {
	switch s.frequency {
	case Weekly:
		return date.AddDays(from, 7*k)
	case Monthly:
		return date.AddMonths(from, k)
	case Custom:
		n := s.interval.Count() * k
		switch s.interval.Unit {
		case Weeks:
			return date.AddDays(from, n*7)
		case Months:
			return date.AddMonths(from, n)
		default:
			return date.AddDays(from, n)
		}
	default:
		// Daily, and anything not chosen yet.
		return date.AddDays(from, k)
	}
}

// Next implements cron.Schedule.
func (s *Schedule) Next(t time.Time) time.Time { return s.NextOccurrence(t) }

// MonthlyEquivalent estimates the monthly total of a per-execution amount.
// A month is 30 days or 4.33 weeks; an unset frequency contributes nothing.
func (s *Schedule) MonthlyEquivalent(amount Money) Money {
	switch s.frequency {
	case Daily:
		return amount.Mul(daysPerMonth)
	case Weekly:
		return amount.Mul(weeksPerMonth)
	case Monthly:
		return amount
	case Custom:
		return amount.Mul(daysPerMonth).Div(decimal.NewFromInt(int64(s.interval.Days())))
	default:
		return M(0, amount.Currency())
	}
}

// IsValid reports whether a frequency is picked and, for a custom one, whether its value is positive.
func (s *Schedule) IsValid() bool {
	return s.frequency != Unset && (s.frequency != Custom || s.interval.Value > 0)
}

// Upcoming returns the n executions following from, according to any cron schedule.
// Each execution is computed from the previous one.
func Upcoming(s cron.Schedule, from time.Time, n int) []time.Time {
	next := make([]time.Time, 0, n)
	for i := 0; i < n; i++ {
		from = s.Next(from)
		next = append(next, from)
	}
	return next
}
