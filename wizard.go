package sip

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// MinimumAmount is the smallest contribution per execution, in stablecoin units.
var MinimumAmount = decimal.NewFromInt(10)

// Stablecoin is a coin a plan can be funded with.
type Stablecoin struct {
	Symbol  string
	Name    string
	Balance Money // demo wallet balance
}

// Stablecoins lists the supported funding coins, the first one is the default.
var Stablecoins = []Stablecoin{
	{Symbol: "USDT", Name: "Tether USD", Balance: M(2500.75, "USDT")},
	{Symbol: "BUSD", Name: "Binance USD", Balance: M(1850.32, "BUSD")},
}

// LookupStablecoin returns the stablecoin with the given symbol.
func LookupStablecoin(symbol string) (Stablecoin, bool) {
	symbol = strings.ToUpper(symbol)
	for _, c := range Stablecoins {
		if c.Symbol == symbol {
			return c, true
		}
	}
	return Stablecoin{}, false
}

// Step is a step of the plan creation wizard.
type Step int

const (
	StepAssets Step = iota + 1
	StepAmount
	StepFrequency
	StepReview
)

func (s Step) String() string {
	switch s {
	case StepAssets:
		return "assets"
	case StepAmount:
		return "amount"
	case StepFrequency:
		return "frequency"
	case StepReview:
		return "review"
	default:
		return fmt.Sprintf("step(%d)", int(s))
	}
}

// Issue identifies a reason why a step cannot be completed.
type Issue int

const (
	NoAssets Issue = iota + 1
	AllocationTotal
	AmountMissing
	AmountBelowMinimum
	AmountAboveBalance
	NoFrequency
	CustomInterval
)

func (i Issue) String() string {
	switch i {
	case NoAssets:
		return "no-assets"
	case AllocationTotal:
		return "allocation-total"
	case AmountMissing:
		return "amount-missing"
	case AmountBelowMinimum:
		return "amount-below-minimum"
	case AmountAboveBalance:
		return "amount-above-balance"
	case NoFrequency:
		return "no-frequency"
	case CustomInterval:
		return "custom-interval"
	default:
		return fmt.Sprintf("issue(%d)", int(i))
	}
}

// StepError is returned when trying to leave a step that has issues.
type StepError struct {
	Step   Step
	Issues []Issue
}

func (e *StepError) Error() string {
	codes := make([]string, len(e.Issues))
	for i, issue := range e.Issues {
		codes[i] = issue.String()
	}
	return fmt.Sprintf("step %d (%s) is incomplete: %s", int(e.Step), e.Step, strings.Join(codes, ", "))
}

// WizardState is everything the user entered while creating a plan.
type WizardState struct {
	Book       *AllocationBook
	Schedule   *Schedule
	Amount     decimal.Decimal // per execution, zero when not entered
	Stablecoin string
}

// NewWizardState returns the state of a wizard that was just opened.
func NewWizardState() *WizardState {
	return &WizardState{
		Book:       NewAllocationBook(),
		Schedule:   NewSchedule(),
		Stablecoin: Stablecoins[0].Symbol,
	}
}

// Contribution returns the amount per execution in the funding stablecoin.
func (s *WizardState) Contribution() Money { return M(s.Amount, s.Stablecoin) }

// Check returns the issues preventing step from being completed.
func (s *WizardState) Check(step Step) []Issue {
	var issues []Issue
	switch step {
	case StepAssets:
		if s.Book.Len() == 0 {
			issues = append(issues, NoAssets)
		} else if s.Book.Total() != 100 {
			issues = append(issues, AllocationTotal)
		}
	case StepAmount:
		switch {
		case !s.Amount.IsPositive():
			issues = append(issues, AmountMissing)
		case s.Amount.LessThan(MinimumAmount):
			issues = append(issues, AmountBelowMinimum)
		}
	case StepFrequency:
		switch {
		case s.Schedule.Frequency() == Unset:
			issues = append(issues, NoFrequency)
		case !s.Schedule.IsValid():
			issues = append(issues, CustomInterval)
		}
	}
	return issues
}

// CanProceed reports whether step has no issues.
func (s *WizardState) CanProceed(step Step) bool { return len(s.Check(step)) == 0 }

// Ready reports whether every step can be completed.
func (s *WizardState) Ready() bool {
	for step := StepAssets; step <= StepReview; step++ {
		if !s.CanProceed(step) {
			return false
		}
	}
	return true
}

// Warnings returns issues worth showing that do not block the wizard.
func (s *WizardState) Warnings() []Issue {
	coin, ok := LookupStablecoin(s.Stablecoin)
	if ok && s.Amount.GreaterThan(coin.Balance.Decimal()) {
		return []Issue{AmountAboveBalance}
	}
	return nil
}

// Wizard walks a WizardState through its steps.
type Wizard struct {
	State *WizardState
	step  Step
}

// NewWizard returns a wizard on its first step.
func NewWizard(state *WizardState) *Wizard {
	return &Wizard{State: state, step: StepAssets}
}

// Step returns the current step.
func (w *Wizard) Step() Step { return w.step }

// Next moves to the next step if the current one has no issues. On the last
// step it stays there and reports that the plan can be confirmed.
func (w *Wizard) Next() (confirm bool, err error) {
	if issues := w.State.Check(w.step); len(issues) > 0 {
		return false, &StepError{Step: w.step, Issues: issues}
	}
	if w.step == StepReview {
		return true, nil
	}
	w.step++
	return false, nil
}

// Previous moves back one step, it does nothing on the first step.
func (w *Wizard) Previous() {
	if w.step > StepAssets {
		w.step--
	}
}

// Run calls Next until the plan can be confirmed or a step fails.
func (w *Wizard) Run() error {
	for {
		confirm, err := w.Next()
		if err != nil {
			return err
		}
		if confirm {
			return nil
		}
	}
}

// IsStepError reports whether err is a StepError and returns it.
func IsStepError(err error) (*StepError, bool) {
	var se *StepError
	ok := errors.As(err, &se)
	return se, ok
}
