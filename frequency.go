package sip

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Frequency is the recurrence pattern of a plan.
type Frequency int

const (
	Unset Frequency = iota // no frequency picked yet
	Daily
	Weekly
	Monthly
	Custom
)

func (f Frequency) String() string {
	switch f {
	case Unset:
		return ""
	case Daily:
		return "daily"
	case Weekly:
		return "weekly"
	case Monthly:
		return "monthly"
	case Custom:
		return "custom"
	default:
		return fmt.Sprintf("frequency(%d)", int(f))
	}
}

// ParseFrequency parses a frequency name. The empty string is Unset.
func ParseFrequency(s string) (Frequency, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "":
		return Unset, nil
	case "daily", "day":
		return Daily, nil
	case "weekly", "week":
		return Weekly, nil
	case "monthly", "month":
		return Monthly, nil
	case "custom":
		return Custom, nil
	default:
		return Unset, fmt.Errorf("unknown frequency %q", s)
	}
}

func (f Frequency) MarshalJSON() ([]byte, error) { return json.Marshal(f.String()) }

func (f *Frequency) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	v, err := ParseFrequency(s)
	if err != nil {
		return err
	}
	*f = v
	return nil
}

// Unit is the time unit of a custom interval.
type Unit int

const (
	Days Unit = iota
	Weeks
	Months
)

func (u Unit) String() string {
	switch u {
	case Days:
		return "days"
	case Weeks:
		return "weeks"
	case Months:
		return "months"
	default:
		return fmt.Sprintf("unit(%d)", int(u))
	}
}

// ParseUnit parses a unit name, singular or plural.
func ParseUnit(s string) (Unit, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "days", "day", "d":
		return Days, nil
	case "weeks", "week", "w":
		return Weeks, nil
	case "months", "month", "m":
		return Months, nil
	default:
		return Days, fmt.Errorf("unknown interval unit %q", s)
	}
}

func (u Unit) MarshalJSON() ([]byte, error) { return json.Marshal(u.String()) }

func (u *Unit) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	v, err := ParseUnit(s)
	if err != nil {
		return err
	}
	*u = v
	return nil
}

// Interval is a custom recurrence like "every 2 weeks".
//
// Value is kept as entered: zero or negative stands for a blank or invalid
// input and reads as 1 in computations.
type Interval struct {
	Value int  `json:"value"`
	Unit  Unit `json:"unit"`
}

// Count returns the number of units in the interval, 1 when Value is not positive.
func (i Interval) Count() int {
	if i.Value <= 0 {
		return 1
	}
	return i.Value
}

// Days approximates the interval length in days, counting 30 days a month.
func (i Interval) Days() int {
	switch i.Unit {
	case Weeks:
		return i.Count() * 7
	case Months:
		return i.Count() * 30
	default:
		return i.Count()
	}
}

func (i Interval) String() string { return fmt.Sprintf("%d %s", i.Value, i.Unit) }
