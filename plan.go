package sip

import (
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/etnz/sip/date"
	"github.com/google/uuid"
)

var (
	ErrIncomplete  = errors.New("plan is incomplete")
	ErrTransition  = errors.New("invalid status change")
	ErrUnknownPlan = errors.New("unknown plan")
)

// Status is the lifecycle state of a plan.
type Status int

const (
	AnyStatus Status = iota // only meaningful in a Filter
	Active
	Paused
	Cancelled
)

func (s Status) String() string {
	switch s {
	case AnyStatus:
		return "all"
	case Active:
		return "active"
	case Paused:
		return "paused"
	case Cancelled:
		return "cancelled"
	default:
		return fmt.Sprintf("status(%d)", int(s))
	}
}

// ParseStatus parses a status name, "all" and "" are AnyStatus.
func ParseStatus(s string) (Status, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "all":
		return AnyStatus, nil
	case "active":
		return Active, nil
	case "paused":
		return Paused, nil
	case "cancelled", "canceled":
		return Cancelled, nil
	default:
		return AnyStatus, fmt.Errorf("unknown status %q", s)
	}
}

// Plan is a confirmed systematic investment plan.
type Plan struct {
	ID            uuid.UUID
	Created       time.Time
	Status        Status
	Frequency     Frequency
	Interval      Interval // only meaningful for Custom
	Amount        Money    // per execution
	Legs          []Leg
	NextExecution time.Time // zero when the plan is not running
}

// NewPlan confirms the plan described by state, created at now.
func NewPlan(state *WizardState, now time.Time) (*Plan, error) {
	if err := NewWizard(state).Run(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrIncomplete, err)
	}
	amount := state.Contribution()
	return &Plan{
		ID:            uuid.New(),
		Created:       now,
		Status:        Active,
		Frequency:     state.Schedule.Frequency(),
		Interval:      state.Schedule.Interval(),
		Amount:        amount,
		Legs:          Legs(state.Book, amount),
		NextExecution: state.Schedule.NextOccurrence(now),
	}, nil
}

// Schedule returns the schedule of the plan.
func (p *Plan) Schedule() *Schedule {
	return &Schedule{frequency: p.Frequency, interval: p.Interval}
}

// Upcoming returns the next n executions of a running plan, starting with
// NextExecution. It returns nil for a plan that is not running.
func (p *Plan) Upcoming(n int) []time.Time {
	if p.NextExecution.IsZero() || n <= 0 {
		return nil
	}
	return append([]time.Time{p.NextExecution}, Upcoming(p.Schedule().From(p.NextExecution), p.NextExecution, n-1)...)
}

// MonthlyEquivalent estimates how much the plan invests per month.
func (p *Plan) MonthlyEquivalent() Money { return p.Schedule().MonthlyEquivalent(p.Amount) }

// HasAsset reports whether the plan buys asset.
func (p *Plan) HasAsset(asset Asset) bool {
	return slices.ContainsFunc(p.Legs, func(l Leg) bool { return l.Asset == asset })
}

// Pause stops an active plan.
func (p *Plan) Pause() error {
	if p.Status != Active {
		return fmt.Errorf("cannot pause a %s plan: %w", p.Status, ErrTransition)
	}
	p.Status, p.NextExecution = Paused, time.Time{}
	return nil
}

// Resume restarts a paused plan, its next execution is one period after now.
func (p *Plan) Resume(now time.Time) error {
	if p.Status != Paused {
		return fmt.Errorf("cannot resume a %s plan: %w", p.Status, ErrTransition)
	}
	p.Status, p.NextExecution = Active, p.Schedule().NextOccurrence(now)
	return nil
}

// Cancel terminates a plan for good.
func (p *Plan) Cancel() error {
	if p.Status != Active && p.Status != Paused {
		return fmt.Errorf("cannot cancel a %s plan: %w", p.Status, ErrTransition)
	}
	p.Status, p.NextExecution = Cancelled, time.Time{}
	return nil
}

func (p *Plan) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Append("id", p.ID)
	w.Append("createdAt", p.Created)
	w.Append("status", p.Status.String())
	w.Append("frequency", p.Frequency)
	if p.Frequency == Custom {
		w.Append("customInterval", p.Interval)
	}
	w.Append("amountPerExecution", p.Amount)
	w.Append("tokens", p.Legs)
	w.Optional("nextExecution", p.NextExecution)
	return w.MarshalJSON()
}

func (p *Plan) UnmarshalJSON(data []byte) error {
	var jp struct {
		ID            uuid.UUID `json:"id"`
		Created       string    `json:"createdAt"`
		Status        string    `json:"status"`
		Frequency     Frequency `json:"frequency"`
		Interval      Interval  `json:"customInterval"`
		Amount        Money     `json:"amountPerExecution"`
		Legs          []Leg     `json:"tokens"`
		NextExecution time.Time `json:"nextExecution"`
	}
	if err := json.Unmarshal(data, &jp); err != nil {
		return err
	}
	status, err := ParseStatus(jp.Status)
	if err != nil {
		return err
	}
	if status == AnyStatus {
		return fmt.Errorf("plan %s has no status", jp.ID)
	}
	created, err := parseCreated(jp.Created)
	if err != nil {
		return fmt.Errorf("plan %s: %w", jp.ID, err)
	}
	*p = Plan{
		ID:            jp.ID,
		Created:       created,
		Status:        status,
		Frequency:     jp.Frequency,
		Interval:      jp.Interval,
		Amount:        jp.Amount,
		Legs:          jp.Legs,
		NextExecution: jp.NextExecution,
	}
	return nil
}

// parseCreated reads a creation instant. Day only values, as written by
// earlier versions, are midnight UTC.
func parseCreated(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
		return t, nil
	}
	d, err := date.Parse(s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid createdAt %q", s)
	}
	return d.In(time.UTC), nil
}

// Filter selects plans. Zero fields match everything.
type Filter struct {
	Status    Status
	Asset     Asset
	Frequency Frequency
}

// Match reports whether p passes the filter.
func (f Filter) Match(p *Plan) bool {
	return (f.Status == AnyStatus || p.Status == f.Status) &&
		(f.Asset == "" || p.HasAsset(f.Asset)) &&
		(f.Frequency == Unset || p.Frequency == f.Frequency)
}

// FilterPlans returns the plans matching f, in their original order.
func FilterPlans(plans []*Plan, f Filter) []*Plan {
	var res []*Plan
	for _, p := range plans {
		if f.Match(p) {
			res = append(res, p)
		}
	}
	return res
}

// SortKey is a plan attribute plans can be sorted by.
type SortKey int

const (
	ByCreated SortKey = iota
	ByNextExecution
	ByAmount
)

// ParseSortKey parses "created", "next" or "amount".
func ParseSortKey(s string) (SortKey, error) {
	switch strings.ToLower(s) {
	case "created", "createdat", "":
		return ByCreated, nil
	case "next", "nextexecution":
		return ByNextExecution, nil
	case "amount":
		return ByAmount, nil
	default:
		return ByCreated, fmt.Errorf("unknown sort key %q", s)
	}
}

// SortPlans sorts plans in place. Plans that are not running sort as the
// earliest next execution.
func SortPlans(plans []*Plan, key SortKey, ascending bool) {
	slices.SortStableFunc(plans, func(a, b *Plan) int {
		var c int
		switch key {
		case ByNextExecution:
			c = a.NextExecution.Compare(b.NextExecution)
		case ByAmount:
			c = a.Amount.Decimal().Cmp(b.Amount.Decimal())
		default:
			c = a.Created.Compare(b.Created)
		}
		if !ascending {
			c = -c
		}
		return c
	})
}

// FindPlan returns the plan whose ID starts with prefix.
func FindPlan(plans []*Plan, prefix string) (*Plan, error) {
	prefix = strings.ToLower(strings.TrimSpace(prefix))
	if prefix == "" {
		return nil, fmt.Errorf("empty plan id: %w", ErrUnknownPlan)
	}
	var found *Plan
	for _, p := range plans {
		if strings.HasPrefix(p.ID.String(), prefix) {
			if found != nil {
				return nil, fmt.Errorf("plan id %q is ambiguous", prefix)
			}
			found = p
		}
	}
	if found == nil {
		return nil, fmt.Errorf("plan %q: %w", prefix, ErrUnknownPlan)
	}
	return found, nil
}
